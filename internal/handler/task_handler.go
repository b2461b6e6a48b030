package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/hitoshi/taskdeck/internal/middleware"
	"github.com/hitoshi/taskdeck/internal/model"
)

// TaskServiceInterface はタスクハンドラーが必要とするサービスインターフェース。
type TaskServiceInterface interface {
	ListTasks(ctx context.Context, userID string) ([]*model.Task, error)
	CreateTask(ctx context.Context, userID, title string) (*model.Task, error)
	UpdateTask(ctx context.Context, userID, taskID string, update model.TaskUpdate) (*model.Task, error)
	DeleteTask(ctx context.Context, userID, taskID string) (*model.Task, error)
}

// TaskMetrics はタスク操作のメトリクスを記録するインターフェース。
type TaskMetrics interface {
	RecordTaskOperation(operation string)
}

// TaskHandler はタスクCRUDのHTTPハンドラー。
// すべてのエンドポイントはセッションミドルウェアの背後に置かれ、
// リクエストコンテキストに認証済みユーザーIDが入っていることを前提とする。
type TaskHandler struct {
	service TaskServiceInterface
	metrics TaskMetrics
}

// NewTaskHandler はTaskHandlerを生成する。metricsはnilでもよい。
func NewTaskHandler(service TaskServiceInterface, metrics TaskMetrics) *TaskHandler {
	return &TaskHandler{
		service: service,
		metrics: metrics,
	}
}

// ListTasks は現在のユーザーが所有するタスク一覧を返す。
// GET /api/tasks
func (h *TaskHandler) ListTasks(w http.ResponseWriter, r *http.Request) {
	userID, err := middleware.UserIDFromContext(r.Context())
	if err != nil {
		middleware.WriteUnauthorized(w, "Unauthorized")
		return
	}

	tasks, err := h.service.ListTasks(r.Context(), userID)
	if err != nil {
		writeAPIError(w, err)
		return
	}

	data := make([]taskResponse, len(tasks))
	for i, task := range tasks {
		data[i] = newTaskResponse(task)
	}

	h.record("list")
	writeJSON(w, http.StatusOK, map[string]any{
		"success": true,
		"data":    data,
	})
}

type createTaskRequest struct {
	Title string `json:"title"`
}

// CreateTask は新しいタスクを作成する。
// POST /api/tasks
func (h *TaskHandler) CreateTask(w http.ResponseWriter, r *http.Request) {
	userID, err := middleware.UserIDFromContext(r.Context())
	if err != nil {
		middleware.WriteUnauthorized(w, "Unauthorized")
		return
	}

	var req createTaskRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		middleware.WriteValidationError(w, nil)
		return
	}

	if strings.TrimSpace(req.Title) == "" {
		middleware.WriteValidationError(w, map[string]string{"title": "Title is required"})
		return
	}

	task, err := h.service.CreateTask(r.Context(), userID, req.Title)
	if err != nil {
		writeAPIError(w, err)
		return
	}

	h.record("create")
	writeJSON(w, http.StatusCreated, map[string]any{
		"success": true,
		"task":    newTaskResponse(task),
	})
}

type updateTaskRequest struct {
	Title     *string `json:"title"`
	Completed *bool   `json:"completed"`
}

// UpdateTask は指定タスクの部分更新を行う。
// PUT /api/tasks/{taskId}
func (h *TaskHandler) UpdateTask(w http.ResponseWriter, r *http.Request) {
	userID, err := middleware.UserIDFromContext(r.Context())
	if err != nil {
		middleware.WriteUnauthorized(w, "Unauthorized")
		return
	}

	taskID := chi.URLParam(r, "taskId")

	var req updateTaskRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		middleware.WriteValidationError(w, nil)
		return
	}

	if req.Title != nil && strings.TrimSpace(*req.Title) == "" {
		middleware.WriteValidationError(w, map[string]string{"title": "Title must not be empty"})
		return
	}

	task, err := h.service.UpdateTask(r.Context(), userID, taskID, model.TaskUpdate{
		Title:     req.Title,
		Completed: req.Completed,
	})
	if err != nil {
		writeAPIError(w, err)
		return
	}

	h.record("update")
	writeJSON(w, http.StatusOK, map[string]any{
		"success": true,
		"task":    newTaskResponse(task),
	})
}

// DeleteTask は指定タスクを削除する。
// DELETE /api/tasks/{taskId}
func (h *TaskHandler) DeleteTask(w http.ResponseWriter, r *http.Request) {
	userID, err := middleware.UserIDFromContext(r.Context())
	if err != nil {
		middleware.WriteUnauthorized(w, "Unauthorized")
		return
	}

	taskID := chi.URLParam(r, "taskId")

	if _, err := h.service.DeleteTask(r.Context(), userID, taskID); err != nil {
		writeAPIError(w, err)
		return
	}

	h.record("delete")
	writeJSON(w, http.StatusOK, map[string]any{
		"success": true,
		"message": "Task deleted successfully",
	})
}

func (h *TaskHandler) record(operation string) {
	if h.metrics != nil {
		h.metrics.RecordTaskOperation(operation)
	}
}
