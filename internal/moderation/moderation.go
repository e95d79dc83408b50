package moderation

import (
	"context"
	"errors"

	"github.com/sourcegraph/conc/panics"
	"go.uber.org/zap"

	"github.com/BuzzLyutic/task-market/internal/model"
	"github.com/BuzzLyutic/task-market/internal/repo"
)

const (
	DefaultCategory         = "delivery"
	DefaultUrgency          = "medium"
	DefaultEstimatedMinutes = 30
	DefaultRewardCents      = 200

	MsgNetworkError = "Network error. Please check your connection."
	MsgTaskNotFound = "Task not found."
	msgCallFailed   = "Moderation failed. Please try again."
)

type Service struct {
	repo   repo.ModerationRepository
	logger *zap.Logger
}

func NewService(repo repo.ModerationRepository, logger *zap.Logger) *Service {
	return &Service{repo: repo, logger: logger}
}

// ModerateAndSaveTask submits the draft to the backend, which classifies and
// persists it. It always returns a result: every failure comes back as a
// blocked result with Error set.
func (s *Service) ModerateAndSaveTask(ctx context.Context, draft model.TaskDraft) model.ModerationResult {
	draft = withDefaults(draft)

	var (
		catcher panics.Catcher
		res     model.ModerationResult
		err     error
	)
	catcher.Try(func() {
		res, err = s.repo.ModerateTaskAndSave(ctx, draft)
	})
	if r := catcher.Recovered(); r != nil {
		s.logger.Error("moderation call panicked", zap.Error(r.AsError()))
		return blocked(MsgNetworkError)
	}

	if err != nil {
		var remote *repo.RemoteError
		if errors.As(err, &remote) {
			s.logger.Warn("moderate_task_and_save failed", zap.Error(err))
			if remote.Message == "" {
				return blocked(msgCallFailed)
			}
			return blocked(remote.Message)
		}
		// The backend answered in both cases below.
		if errors.Is(err, repo.ErrorNotFound) {
			s.logger.Warn("moderated task not found", zap.String("task_id", draft.TaskID), zap.Error(err))
			return blocked(MsgTaskNotFound)
		}
		if errors.Is(err, repo.ErrMalformedResult) {
			s.logger.Error("moderation result unreadable", zap.Error(err))
			return blocked(msgCallFailed)
		}
		s.logger.Warn("moderation transport failure", zap.Error(err))
		return blocked(MsgNetworkError)
	}

	if res.Error != "" {
		return blocked(res.Error)
	}

	return model.ModerationResult{
		Status: res.Status,
		Reason: res.Reason,
		TaskID: res.TaskID,
	}
}

func blocked(msg string) model.ModerationResult {
	return model.ModerationResult{Status: model.ModerationBlocked, Error: msg}
}

func withDefaults(d model.TaskDraft) model.TaskDraft {
	if d.Category == "" {
		d.Category = DefaultCategory
	}
	if d.Urgency == "" {
		d.Urgency = DefaultUrgency
	}
	if d.EstimatedMinutes == 0 {
		d.EstimatedMinutes = DefaultEstimatedMinutes
	}
	if d.RewardCents == 0 {
		d.RewardCents = DefaultRewardCents
	}
	return d
}
