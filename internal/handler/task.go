package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/BuzzLyutic/task-market/internal/model"
	"github.com/BuzzLyutic/task-market/internal/service"
	"github.com/BuzzLyutic/task-market/pkg/respond"
)

type TaskHandler struct {
	service *service.TaskService
	logger  *zap.Logger
}

func NewTaskHandler(srv *service.TaskService, logger *zap.Logger) *TaskHandler {
	return &TaskHandler{
		service: srv,
		logger:  logger,
	}
}

func (h *TaskHandler) Get(w http.ResponseWriter, r *http.Request) {
	task, err := h.service.GetTask(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		handleErrors(w, r, h.logger, err)
		return
	}
	respond.JSON(w, r, http.StatusOK, task)
}

func (h *TaskHandler) List(w http.ResponseWriter, r *http.Request) {
	var filter model.TaskFilter
	if status := r.URL.Query().Get("status"); status != "" {
		s := model.TaskStatus(status)
		filter.Status = &s
	}
	filter.Query = r.URL.Query().Get("q")
	filter.Limit, _ = strconv.Atoi(r.URL.Query().Get("limit"))

	tasks, err := h.service.ListTasks(r.Context(), filter)
	if err != nil {
		handleErrors(w, r, h.logger, err)
		return
	}
	respond.JSON(w, r, http.StatusOK, tasks)
}

func (h *TaskHandler) Accept(w http.ResponseWriter, r *http.Request) {
	task, err := h.service.AcceptTask(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		handleErrors(w, r, h.logger, err)
		return
	}
	respond.JSON(w, r, http.StatusOK, task)
}

type statusRequest struct {
	Status model.TaskStatus `json:"status"`
}

func (h *TaskHandler) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	var req statusRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond.Error(w, r, http.StatusBadRequest, "invalid json")
		return
	}

	update, err := h.service.UpdateTaskStatus(r.Context(), chi.URLParam(r, "id"), req.Status)
	if err != nil {
		handleErrors(w, r, h.logger, err)
		return
	}
	respond.JSON(w, r, http.StatusOK, update)
}

func handleErrors(w http.ResponseWriter, r *http.Request, logger *zap.Logger, err error) {
	var svcErr *service.Error
	if !errors.As(err, &svcErr) {
		logger.Error("internal error", zap.Error(err))
		respond.Error(w, r, http.StatusInternalServerError, "internal error")
		return
	}

	switch svcErr.Kind {
	case service.KindAuth:
		respond.Error(w, r, http.StatusUnauthorized, svcErr.Message)
	case service.KindNotFound:
		respond.Error(w, r, http.StatusNotFound, svcErr.Message)
	case service.KindOwnership:
		respond.Error(w, r, http.StatusForbidden, svcErr.Message)
	case service.KindInvalidState:
		respond.Error(w, r, http.StatusConflict, svcErr.Message)
	case service.KindValidation:
		respond.Error(w, r, http.StatusBadRequest, svcErr.Message)
	case service.KindTransport:
		respond.Error(w, r, http.StatusServiceUnavailable, svcErr.Message)
	default:
		logger.Error("backend error", zap.Error(svcErr.Unwrap()))
		respond.Error(w, r, http.StatusBadGateway, svcErr.Message)
	}
}
