// Package handler はHTTPハンドラーを提供する。
package handler

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/hitoshi/taskdeck/internal/middleware"
	"github.com/hitoshi/taskdeck/internal/model"
)

// taskResponse はタスクのワイヤ表現。所有者のユーザーIDは含めない。
type taskResponse struct {
	ID        string     `json:"id"`
	Title     string     `json:"title"`
	Completed bool       `json:"completed"`
	CreatedAt time.Time  `json:"createdAt"`
	UpdatedAt *time.Time `json:"updatedAt,omitempty"`
}

// newTaskResponse はドメインモデルからワイヤ表現を構築する。
func newTaskResponse(task *model.Task) taskResponse {
	return taskResponse{
		ID:        task.ID,
		Title:     task.Title,
		Completed: task.Completed,
		CreatedAt: task.CreatedAt,
		UpdatedAt: task.UpdatedAt,
	}
}

// writeJSON は指定ステータスでJSONレスポンスを書き込む。
func writeJSON(w http.ResponseWriter, statusCode int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	json.NewEncoder(w).Encode(body)
}

// writeAPIError はAPIErrorをHTTPステータスにマッピングして書き込む。
// APIError以外のエラーは詳細をログに残し、一般的な500を返す。
func writeAPIError(w http.ResponseWriter, err error) {
	apiErr, ok := err.(*model.APIError)
	if !ok {
		slog.Error("unexpected error", slog.String("error", err.Error()))
		middleware.WriteInternalServerError(w)
		return
	}

	middleware.WriteErrorResponse(w, statusForAPIError(apiErr), apiErr)
}

// statusForAPIError はエラーコードをHTTPステータスコードに変換する。
// TASK_NOT_OWNEDはTASK_NOT_FOUNDと同じ404で返し、存在の有無を漏らさない。
func statusForAPIError(apiErr *model.APIError) int {
	switch apiErr.Code {
	case model.ErrCodeValidation, model.ErrCodeEmptyTitle:
		return http.StatusBadRequest
	case model.ErrCodeNotAuthenticated, model.ErrCodeUserNotFound, model.ErrCodeWrongPassword:
		return http.StatusUnauthorized
	case model.ErrCodeEmailExists:
		return http.StatusConflict
	case model.ErrCodeTaskNotFound, model.ErrCodeTaskNotOwned:
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}
