package handler

import (
	"encoding/json"
	"fmt"
	"net/http"

	"go.uber.org/zap"

	"github.com/BuzzLyutic/task-market/internal/model"
	"github.com/BuzzLyutic/task-market/internal/moderation"
	"github.com/BuzzLyutic/task-market/internal/view"
	"github.com/BuzzLyutic/task-market/pkg/respond"
)

type ModerationHandler struct {
	service *moderation.Service
	logger  *zap.Logger
}

func NewModerationHandler(srv *moderation.Service, logger *zap.Logger) *ModerationHandler {
	return &ModerationHandler{
		service: srv,
		logger:  logger,
	}
}

type moderationResponse struct {
	Result   model.ModerationResult `json:"result"`
	Label    string                 `json:"label"`
	Visible  bool                   `json:"publicly_visible"`
	Editable bool                   `json:"editable"`
	Banner   *view.Banner           `json:"banner"`
}

// Moderate always answers 200: a blocked or failed submission is a result,
// not an HTTP error.
func (h *ModerationHandler) Moderate(w http.ResponseWriter, r *http.Request) {
	if r.ContentLength == 0 {
		respond.Error(w, r, http.StatusBadRequest, "empty request body")
		return
	}

	var draft model.TaskDraft
	if err := json.NewDecoder(r.Body).Decode(&draft); err != nil {
		h.logger.Warn("rejected malformed moderation request", zap.Error(err))
		respond.Error(w, r, http.StatusBadRequest, fmt.Sprintf("invalid json: %v", err))
		return
	}

	res := h.service.ModerateAndSaveTask(r.Context(), draft)
	respond.JSON(w, r, http.StatusOK, describe(res, true))
}

func (h *ModerationHandler) Banner(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	res := model.ModerationResult{
		Status: model.ModerationStatus(q.Get("status")),
		Reason: q.Get("reason"),
		TaskID: q.Get("task_id"),
	}
	respond.JSON(w, r, http.StatusOK, describe(res, q.Get("dismissable") == "true"))
}

func describe(res model.ModerationResult, dismissable bool) moderationResponse {
	props := view.BannerProps{
		Status:      res.Status,
		Reason:      res.Reason,
		Dismissable: dismissable,
	}
	if res.TaskID != "" {
		props.EditTarget = "/tasks/" + res.TaskID + "/edit"
	}

	return moderationResponse{
		Result:   res,
		Label:    moderation.StatusLabel(res.Status),
		Visible:  moderation.IsTaskPubliclyVisible(res.Status),
		Editable: moderation.CanEditTask(res.Status),
		Banner:   view.ModerationBanner(props),
	}
}
