package repo

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/BuzzLyutic/task-market/internal/auth"
	"github.com/BuzzLyutic/task-market/internal/model"
)

var (
	ErrorNotFound      = errors.New("not found")
	ErrMalformedResult = errors.New("malformed result")
)

// RemoteError is an error reported by the backend itself, as opposed to a
// failure to reach it.
type RemoteError struct {
	Code    string
	Message string
}

func (e *RemoteError) Error() string {
	return e.Message
}

const taskColumns = `
	id::text, title, description, category, store, dropoff_address, dropoff_instructions,
	urgency, reward_cents, estimated_minutes, created_by::text, accepted_by::text,
	task_current_status, moderation_status, moderation_reason,
	accepted_at, updated_at, created_at`

type TaskRepo struct {
	pool *pgxpool.Pool
}

func NewTaskRepo(pool *pgxpool.Pool) *TaskRepo {
	return &TaskRepo{
		pool: pool,
	}
}

func (r *TaskRepo) AcceptTask(ctx context.Context, id string) (model.Task, error) {
	var t model.Task
	err := r.asCaller(ctx, func(tx pgx.Tx) error {
		var err error
		t, err = scanTask(tx.QueryRow(ctx, `SELECT `+taskColumns+` FROM accept_task($1)`, id))
		return err
	})
	return t, r.mapError(err)
}

func (r *TaskRepo) UpdateTaskStatusRPC(ctx context.Context, id string, next model.TaskStatus) (*model.Task, error) {
	var t model.Task
	err := r.asCaller(ctx, func(tx pgx.Tx) error {
		var err error
		t, err = scanTask(tx.QueryRow(ctx, `SELECT `+taskColumns+` FROM update_task_status($1, $2)`, id, string(next)))
		return err
	})
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, r.mapError(err)
	}
	return &t, nil
}

func (r *TaskRepo) SetTaskStatus(ctx context.Context, id string, next model.TaskStatus, at time.Time) (model.Task, error) {
	var t model.Task
	err := r.asCaller(ctx, func(tx pgx.Tx) error {
		var err error
		t, err = scanTask(tx.QueryRow(ctx, `
			UPDATE tasks
			SET task_current_status = $2, updated_at = $3
			WHERE id = $1
			RETURNING `+taskColumns,
			id, string(next), at))
		return err
	})
	return t, r.mapError(err)
}

func (r *TaskRepo) Get(ctx context.Context, id string) (model.Task, error) {
	var t model.Task
	err := r.asCaller(ctx, func(tx pgx.Tx) error {
		var err error
		t, err = scanTask(tx.QueryRow(ctx, `SELECT `+taskColumns+` FROM tasks WHERE id = $1`, id))
		return err
	})
	return t, r.mapError(err)
}

func (r *TaskRepo) List(ctx context.Context, filter model.TaskFilter) ([]model.Task, error) {
	var status *string
	if filter.Status != nil {
		s := string(*filter.Status)
		status = &s
	}

	tasks := make([]model.Task, 0, filter.Limit)
	err := r.asCaller(ctx, func(tx pgx.Tx) error {
		rows, err := tx.Query(ctx, `
			SELECT `+taskColumns+`
			FROM tasks
			WHERE ($1::text IS NULL OR task_current_status = $1)
			  AND ($2::text = '' OR title ILIKE '%' || $2 || '%')
			ORDER BY created_at DESC, id DESC
			LIMIT $3
		`, status, filter.Query, filter.Limit)
		if err != nil {
			return err
		}
		defer rows.Close()

		for rows.Next() {
			t, err := scanTask(rows)
			if err != nil {
				return err
			}
			tasks = append(tasks, t)
		}
		return rows.Err()
	})
	if err != nil {
		return nil, r.mapError(err)
	}
	return tasks, nil
}

type moderationRow struct {
	Status string  `json:"status"`
	Reason *string `json:"reason"`
	TaskID *string `json:"task_id"`
	Error  *string `json:"error"`
}

func (r *TaskRepo) ModerateTaskAndSave(ctx context.Context, d model.TaskDraft) (model.ModerationResult, error) {
	var taskID *string
	if d.TaskID != "" {
		taskID = &d.TaskID
	}

	var raw []byte
	err := r.asCaller(ctx, func(tx pgx.Tx) error {
		return tx.QueryRow(ctx, `
			SELECT moderate_task_and_save($1, $2, $3, $4, $5, $6, $7, $8, $9, $10::uuid)
		`, d.Title, d.Description, d.DropoffInstructions, d.Store, d.DropoffAddress,
			d.Category, d.Urgency, d.EstimatedMinutes, d.RewardCents, taskID).Scan(&raw)
	})
	if err != nil {
		return model.ModerationResult{}, r.mapCallError(err)
	}

	var row moderationRow
	if err := json.Unmarshal(raw, &row); err != nil {
		return model.ModerationResult{}, fmt.Errorf("decode moderation result: %w: %v", ErrMalformedResult, err)
	}

	res := model.ModerationResult{Status: model.ModerationStatus(row.Status)}
	if row.Reason != nil {
		res.Reason = *row.Reason
	}
	if row.TaskID != nil {
		res.TaskID = *row.TaskID
	}
	if row.Error != nil {
		res.Error = *row.Error
	}
	return res, nil
}

// asCaller runs fn in a transaction scoped to the caller identity, which is
// what the backend's functions and row-level policies read.
func (r *TaskRepo) asCaller(ctx context.Context, fn func(pgx.Tx) error) error {
	userID, _ := auth.UserFrom(ctx)
	return pgx.BeginFunc(ctx, r.pool, func(tx pgx.Tx) error {
		if _, err := tx.Exec(ctx, `SELECT set_config('request.jwt.claim.sub', $1, true)`, userID); err != nil {
			return err
		}
		return fn(tx)
	})
}

func scanTask(row pgx.Row) (model.Task, error) {
	var (
		t                        model.Task
		status, moderationStatus string
	)
	err := row.Scan(
		&t.ID, &t.Title, &t.Description, &t.Category, &t.Store, &t.DropoffAddress, &t.DropoffInstructions,
		&t.Urgency, &t.RewardCents, &t.EstimatedMinutes, &t.CreatedBy, &t.AcceptedBy,
		&status, &moderationStatus, &t.ModerationReason,
		&t.AcceptedAt, &t.UpdatedAt, &t.CreatedAt,
	)
	t.Status = model.TaskStatus(status)
	t.ModerationStatus = model.ModerationStatus(moderationStatus)
	return t, err
}

func (r *TaskRepo) mapError(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, pgx.ErrNoRows) {
		return ErrorNotFound
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		// invalid_text_representation: a malformed id can't match any row
		if pgErr.Code == "22P02" {
			return ErrorNotFound
		}
		return &RemoteError{Code: pgErr.Code, Message: pgErr.Message}
	}
	return err
}

// mapCallError keeps every backend-reported error as a RemoteError. Only
// record lookups read a malformed id as not found.
func (r *TaskRepo) mapCallError(err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return &RemoteError{Code: pgErr.Code, Message: pgErr.Message}
	}
	return r.mapError(err)
}
