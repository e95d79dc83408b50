package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/BuzzLyutic/task-market/internal/model"
	"github.com/BuzzLyutic/task-market/internal/repo"
)

// UpdatePath tells which backend call produced a status update.
type UpdatePath string

const (
	ViaRPC      UpdatePath = "rpc"
	ViaFallback UpdatePath = "fallback"
)

type StatusUpdate struct {
	Task model.Task `json:"task"`
	Via  UpdatePath `json:"via"`
}

const (
	msgUpdateFailed = "Failed to update task status. Please try again."
	msgFetchFailed  = "Failed to load task. Please try again."
	msgListFailed   = "Failed to load tasks. Please try again."
)

// TaskService relays lifecycle operations to the backend. Which transitions
// are legal is decided there, not here.
type TaskService struct {
	repo   repo.TaskRepository
	logger *zap.Logger
	now    func() time.Time
}

func NewTaskService(repo repo.TaskRepository, logger *zap.Logger) *TaskService {
	return &TaskService{
		repo:   repo,
		logger: logger,
		now:    time.Now,
	}
}

func (s *TaskService) AcceptTask(ctx context.Context, id string) (model.Task, error) {
	task, err := s.repo.AcceptTask(ctx, id)
	if err != nil {
		s.logger.Warn("accept_task failed", zap.String("task_id", id), zap.Error(err))
		return model.Task{}, classifyAccept(err)
	}
	return task, nil
}

// UpdateTaskStatus tries the backend's transition procedure first and, when it
// errors or returns nothing, writes the status directly. Each path is
// attempted once.
func (s *TaskService) UpdateTaskStatus(ctx context.Context, id string, next model.TaskStatus) (StatusUpdate, error) {
	if !next.Valid() {
		return StatusUpdate{}, ErrValidation
	}

	task, err := s.repo.UpdateTaskStatusRPC(ctx, id, next)
	if err == nil && task != nil {
		return StatusUpdate{Task: *task, Via: ViaRPC}, nil
	}
	if err != nil {
		s.logger.Info("update_task_status rpc unavailable, updating record directly",
			zap.String("task_id", id), zap.String("status", string(next)), zap.Error(err))
	}

	updated, err := s.repo.SetTaskStatus(ctx, id, next, s.now())
	if err != nil {
		s.logger.Warn("task status update failed", zap.String("task_id", id), zap.Error(err))
		return StatusUpdate{}, classifyFetch(err, msgUpdateFailed)
	}
	return StatusUpdate{Task: updated, Via: ViaFallback}, nil
}

func (s *TaskService) GetTask(ctx context.Context, id string) (model.Task, error) {
	task, err := s.repo.Get(ctx, id)
	if err != nil {
		return model.Task{}, classifyFetch(err, msgFetchFailed)
	}
	return task, nil
}

func (s *TaskService) ListTasks(ctx context.Context, filter model.TaskFilter) ([]model.Task, error) {
	if filter.Limit <= 0 || filter.Limit > 100 {
		filter.Limit = 20
	}
	if filter.Status != nil && !filter.Status.Valid() {
		return nil, ErrValidation
	}
	filter.Query = strings.TrimSpace(filter.Query)

	tasks, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, classifyFetch(err, msgListFailed)
	}
	return tasks, nil
}

func classifyFetch(err error, fallback string) *Error {
	var remote *repo.RemoteError
	switch {
	case errors.Is(err, repo.ErrorNotFound):
		return &Error{Kind: KindNotFound, Message: ErrTaskNotFound.Message, Err: err}
	case errors.As(err, &remote):
		return backendError(KindBackend, remote, fallback)
	default:
		return &Error{Kind: KindTransport, Message: fallback, Err: err}
	}
}
