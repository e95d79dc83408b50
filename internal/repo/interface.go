package repo

import (
	"context"
	"time"

	"github.com/BuzzLyutic/task-market/internal/model"
)

// TaskRepository is the backend surface the task layer relays to. Every call
// runs under the caller identity found in ctx.
type TaskRepository interface {
	AcceptTask(ctx context.Context, id string) (model.Task, error)
	// UpdateTaskStatusRPC returns a nil task and nil error when the remote
	// procedure succeeded without returning a record.
	UpdateTaskStatusRPC(ctx context.Context, id string, next model.TaskStatus) (*model.Task, error)
	SetTaskStatus(ctx context.Context, id string, next model.TaskStatus, at time.Time) (model.Task, error)
	Get(ctx context.Context, id string) (model.Task, error)
	List(ctx context.Context, filter model.TaskFilter) ([]model.Task, error)
}

// ModerationRepository submits drafts to the backend's moderate-and-persist
// procedure.
type ModerationRepository interface {
	ModerateTaskAndSave(ctx context.Context, draft model.TaskDraft) (model.ModerationResult, error)
}
