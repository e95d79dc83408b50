package respond

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/BuzzLyutic/task-market/internal/model"
)

func record(write func(w http.ResponseWriter, r *http.Request)) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	write(w, httptest.NewRequest(http.MethodGet, "/api/tasks", nil))
	return w
}

func TestJSON_Task(t *testing.T) {
	task := model.Task{
		ID:               "t1",
		Title:            "Pick up groceries",
		Status:           model.StatusPosted,
		ModerationStatus: model.ModerationApproved,
		RewardCents:      450,
	}

	w := record(func(w http.ResponseWriter, r *http.Request) {
		JSON(w, r, http.StatusOK, task)
	})

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "application/json", w.Header().Get("Content-Type"))

	var got model.Task
	require.NoError(t, json.NewDecoder(w.Body).Decode(&got))
	assert.Equal(t, task.ID, got.ID)
	assert.Equal(t, model.StatusPosted, got.Status)
	assert.Equal(t, int64(450), got.RewardCents)
	assert.Nil(t, got.AcceptedBy)
}

func TestJSON_EmptyTaskList(t *testing.T) {
	w := record(func(w http.ResponseWriter, r *http.Request) {
		JSON(w, r, http.StatusOK, []model.Task{})
	})
	assert.Equal(t, "[]\n", w.Body.String())
}

func TestError(t *testing.T) {
	tests := []struct {
		name    string
		code    int
		message string
	}{
		{name: "invalid token", code: http.StatusUnauthorized, message: "invalid token"},
		{name: "own task", code: http.StatusForbidden, message: "You cannot accept your own task."},
		{name: "already taken", code: http.StatusConflict, message: "This task has already been accepted or is no longer available."},
		{name: "backend unreachable", code: http.StatusServiceUnavailable, message: "Failed to load task."},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := record(func(w http.ResponseWriter, r *http.Request) {
				Error(w, r, tt.code, tt.message)
			})

			assert.Equal(t, tt.code, w.Code)
			assert.JSONEq(t, `{"error":`+quote(tt.message)+`}`, w.Body.String())
		})
	}
}

func quote(s string) string {
	b, _ := json.Marshal(s)
	return string(b)
}
