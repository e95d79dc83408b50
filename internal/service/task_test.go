package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/BuzzLyutic/task-market/internal/model"
	"github.com/BuzzLyutic/task-market/internal/repo"
)

// MockTaskRepository - мок репозитория
type MockTaskRepository struct {
	mock.Mock
}

func (m *MockTaskRepository) AcceptTask(ctx context.Context, id string) (model.Task, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(model.Task), args.Error(1)
}

func (m *MockTaskRepository) UpdateTaskStatusRPC(ctx context.Context, id string, next model.TaskStatus) (*model.Task, error) {
	args := m.Called(ctx, id, next)
	task, _ := args.Get(0).(*model.Task)
	return task, args.Error(1)
}

func (m *MockTaskRepository) SetTaskStatus(ctx context.Context, id string, next model.TaskStatus, at time.Time) (model.Task, error) {
	args := m.Called(ctx, id, next, at)
	return args.Get(0).(model.Task), args.Error(1)
}

func (m *MockTaskRepository) Get(ctx context.Context, id string) (model.Task, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(model.Task), args.Error(1)
}

func (m *MockTaskRepository) List(ctx context.Context, filter model.TaskFilter) ([]model.Task, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).([]model.Task), args.Error(1)
}

func newTestService(m *MockTaskRepository) *TaskService {
	s := NewTaskService(m, zap.NewNop())
	s.now = func() time.Time { return time.Date(2024, 9, 1, 12, 0, 0, 0, time.UTC) }
	return s
}

func remote(msg string) error {
	return &repo.RemoteError{Code: "P0001", Message: msg}
}

func TestTaskService_AcceptTask(t *testing.T) {
	tests := []struct {
		name       string
		backendErr error
		wantErr    *Error
		wantMsg    string
	}{
		{
			name:       "not authenticated",
			backendErr: remote("not_authenticated"),
			wantErr:    ErrNotAuthenticated,
			wantMsg:    "Please sign in to accept tasks.",
		},
		{
			name:       "task not found",
			backendErr: remote("task_not_found"),
			wantErr:    ErrTaskNotFound,
			wantMsg:    "Task not found.",
		},
		{
			name:       "own task",
			backendErr: remote("cannot_accept_own_task"),
			wantErr:    ErrOwnTask,
			wantMsg:    "You cannot accept your own task.",
		},
		{
			name:       "already taken",
			backendErr: remote("task_not_posted: already taken"),
			wantErr:    ErrTaskNotPosted,
			wantMsg:    "This task has already been accepted or is no longer available.",
		},
		{
			name:       "first match wins",
			backendErr: remote("task_not_posted or not_authenticated"),
			wantErr:    ErrNotAuthenticated,
			wantMsg:    "Please sign in to accept tasks.",
		},
		{
			name:       "found before ownership",
			backendErr: remote("cannot_accept_own_task/task_not_found"),
			wantErr:    ErrTaskNotFound,
			wantMsg:    "Task not found.",
		},
		{
			name:       "unrecognized backend error",
			backendErr: remote("deadlock detected"),
			wantErr:    ErrAcceptFailed,
			wantMsg:    "Failed to accept task. Please try again.",
		},
		{
			name:       "transport failure",
			backendErr: errors.New("dial tcp 127.0.0.1:5432: connect: connection refused"),
			wantErr:    ErrAcceptFailed,
			wantMsg:    "Failed to accept task. Please try again.",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := new(MockTaskRepository)
			m.On("AcceptTask", mock.Anything, "t1").Return(model.Task{}, tt.backendErr)

			_, err := newTestService(m).AcceptTask(context.Background(), "t1")

			require.Error(t, err)
			assert.ErrorIs(t, err, tt.wantErr)
			assert.EqualError(t, err, tt.wantMsg)
			assert.ErrorIs(t, err, tt.backendErr)
			m.AssertExpectations(t)
		})
	}

	t.Run("success", func(t *testing.T) {
		m := new(MockTaskRepository)
		runner := "u2"
		m.On("AcceptTask", mock.Anything, "t1").Return(model.Task{
			ID: "t1", Status: model.StatusAccepted, AcceptedBy: &runner,
		}, nil)

		task, err := newTestService(m).AcceptTask(context.Background(), "t1")

		require.NoError(t, err)
		assert.Equal(t, model.StatusAccepted, task.Status)
		assert.Equal(t, "u2", *task.AcceptedBy)
		m.AssertExpectations(t)
	})
}

func TestTaskService_UpdateTaskStatus(t *testing.T) {
	now := time.Date(2024, 9, 1, 12, 0, 0, 0, time.UTC)

	t.Run("rpc result is authoritative", func(t *testing.T) {
		m := new(MockTaskRepository)
		rpcTask := &model.Task{ID: "t1", Status: model.StatusInProgress, Title: "from rpc"}
		m.On("UpdateTaskStatusRPC", mock.Anything, "t1", model.StatusInProgress).Return(rpcTask, nil)

		got, err := newTestService(m).UpdateTaskStatus(context.Background(), "t1", model.StatusInProgress)

		require.NoError(t, err)
		assert.Equal(t, ViaRPC, got.Via)
		assert.Equal(t, *rpcTask, got.Task)
		m.AssertNotCalled(t, "SetTaskStatus", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("rpc error falls back to direct update", func(t *testing.T) {
		m := new(MockTaskRepository)
		m.On("UpdateTaskStatusRPC", mock.Anything, "t1", model.StatusCompleted).Return(nil, remote("function update_task_status does not exist"))
		m.On("SetTaskStatus", mock.Anything, "t1", model.StatusCompleted, now).Return(model.Task{ID: "t1", Status: model.StatusCompleted, UpdatedAt: now}, nil)

		got, err := newTestService(m).UpdateTaskStatus(context.Background(), "t1", model.StatusCompleted)

		require.NoError(t, err)
		assert.Equal(t, ViaFallback, got.Via)
		assert.Equal(t, model.StatusCompleted, got.Task.Status)
		assert.Equal(t, now, got.Task.UpdatedAt)
		m.AssertExpectations(t)
		m.AssertNumberOfCalls(t, "UpdateTaskStatusRPC", 1)
		m.AssertNumberOfCalls(t, "SetTaskStatus", 1)
	})

	t.Run("rpc without data falls back", func(t *testing.T) {
		m := new(MockTaskRepository)
		m.On("UpdateTaskStatusRPC", mock.Anything, "t1", model.StatusCancelled).Return(nil, nil)
		m.On("SetTaskStatus", mock.Anything, "t1", model.StatusCancelled, now).Return(model.Task{ID: "t1", Status: model.StatusCancelled}, nil)

		got, err := newTestService(m).UpdateTaskStatus(context.Background(), "t1", model.StatusCancelled)

		require.NoError(t, err)
		assert.Equal(t, ViaFallback, got.Via)
		m.AssertExpectations(t)
	})

	t.Run("fallback error carries backend message", func(t *testing.T) {
		m := new(MockTaskRepository)
		m.On("UpdateTaskStatusRPC", mock.Anything, "t1", model.StatusCompleted).Return(nil, remote("invalid_transition"))
		m.On("SetTaskStatus", mock.Anything, "t1", model.StatusCompleted, now).Return(model.Task{}, remote("permission denied for table tasks"))

		_, err := newTestService(m).UpdateTaskStatus(context.Background(), "t1", model.StatusCompleted)

		require.Error(t, err)
		assert.EqualError(t, err, "permission denied for table tasks")
		assert.True(t, IsKind(err, KindBackend))
		m.AssertExpectations(t)
	})

	t.Run("fallback hidden by row policy", func(t *testing.T) {
		m := new(MockTaskRepository)
		m.On("UpdateTaskStatusRPC", mock.Anything, "t1", model.StatusCompleted).Return(nil, remote("not_task_participant"))
		m.On("SetTaskStatus", mock.Anything, "t1", model.StatusCompleted, now).Return(model.Task{}, repo.ErrorNotFound)

		_, err := newTestService(m).UpdateTaskStatus(context.Background(), "t1", model.StatusCompleted)

		assert.ErrorIs(t, err, ErrTaskNotFound)
		assert.ErrorIs(t, err, repo.ErrorNotFound)
	})

	t.Run("fallback transport failure", func(t *testing.T) {
		m := new(MockTaskRepository)
		m.On("UpdateTaskStatusRPC", mock.Anything, "t1", model.StatusCompleted).Return(nil, context.DeadlineExceeded)
		m.On("SetTaskStatus", mock.Anything, "t1", model.StatusCompleted, now).Return(model.Task{}, context.DeadlineExceeded)

		_, err := newTestService(m).UpdateTaskStatus(context.Background(), "t1", model.StatusCompleted)

		assert.True(t, IsKind(err, KindTransport))
		assert.EqualError(t, err, "Failed to update task status. Please try again.")
	})

	t.Run("unknown status makes no calls", func(t *testing.T) {
		m := new(MockTaskRepository)

		_, err := newTestService(m).UpdateTaskStatus(context.Background(), "t1", model.TaskStatus("done"))

		assert.ErrorIs(t, err, ErrValidation)
		m.AssertNotCalled(t, "UpdateTaskStatusRPC", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("no client side transition check", func(t *testing.T) {
		m := new(MockTaskRepository)
		m.On("UpdateTaskStatusRPC", mock.Anything, "t1", model.StatusPosted).Return(&model.Task{ID: "t1", Status: model.StatusPosted}, nil)

		got, err := newTestService(m).UpdateTaskStatus(context.Background(), "t1", model.StatusPosted)

		require.NoError(t, err)
		assert.Equal(t, model.StatusPosted, got.Task.Status)
	})
}

func TestTaskService_GetTask(t *testing.T) {
	tests := []struct {
		name     string
		repoErr  error
		wantKind Kind
		wantMsg  string
	}{
		{name: "not found", repoErr: repo.ErrorNotFound, wantKind: KindNotFound, wantMsg: "Task not found."},
		{name: "backend error", repoErr: remote("permission denied"), wantKind: KindBackend, wantMsg: "permission denied"},
		{name: "backend error without message", repoErr: remote(""), wantKind: KindBackend, wantMsg: "Failed to load task. Please try again."},
		{name: "transport", repoErr: errors.New("connection reset"), wantKind: KindTransport, wantMsg: "Failed to load task. Please try again."},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := new(MockTaskRepository)
			m.On("Get", mock.Anything, "t1").Return(model.Task{}, tt.repoErr)

			_, err := newTestService(m).GetTask(context.Background(), "t1")

			require.Error(t, err)
			assert.True(t, IsKind(err, tt.wantKind))
			assert.EqualError(t, err, tt.wantMsg)
		})
	}

	t.Run("found", func(t *testing.T) {
		m := new(MockTaskRepository)
		m.On("Get", mock.Anything, "t1").Return(model.Task{ID: "t1", Title: "Coffee"}, nil)

		task, err := newTestService(m).GetTask(context.Background(), "t1")

		require.NoError(t, err)
		assert.Equal(t, "Coffee", task.Title)
	})
}

func TestTaskService_ListTasks(t *testing.T) {
	tests := []struct {
		name      string
		limit     int
		wantLimit int
	}{
		{name: "default limit", limit: 0, wantLimit: 20},
		{name: "custom limit", limit: 50, wantLimit: 50},
		{name: "limit too high", limit: 200, wantLimit: 20},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := new(MockTaskRepository)
			m.On("List", mock.Anything, mock.MatchedBy(func(f model.TaskFilter) bool {
				return f.Limit == tt.wantLimit && f.Query == "coffee"
			})).Return([]model.Task{}, nil)

			_, err := newTestService(m).ListTasks(context.Background(), model.TaskFilter{Query: "  coffee ", Limit: tt.limit})

			require.NoError(t, err)
			m.AssertExpectations(t)
		})
	}

	t.Run("unknown status filter", func(t *testing.T) {
		m := new(MockTaskRepository)
		bad := model.TaskStatus("archived")

		_, err := newTestService(m).ListTasks(context.Background(), model.TaskFilter{Status: &bad})

		assert.ErrorIs(t, err, ErrValidation)
		m.AssertNotCalled(t, "List", mock.Anything, mock.Anything)
	})
}
