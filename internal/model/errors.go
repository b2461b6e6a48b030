// Package model はドメインモデルを定義する。
package model

import "fmt"

// APIError は統一エラーフォーマットを表す。
// MessageはそのままAPIレスポンスのerrorフィールドに載るため、
// 露出してよい文言のみを設定する。
type APIError struct {
	Code     string // エラーコード
	Message  string // エラーメッセージ（クライアントに露出する）
	Category string // カテゴリ: auth, validation, task, system
}

// Error はerrorインターフェースを実装する。
func (e *APIError) Error() string {
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

// 定義済みエラーコード
const (
	ErrCodeValidation       = "VALIDATION_ERROR"
	ErrCodeNotAuthenticated = "NOT_AUTHENTICATED"
	ErrCodeEmailExists      = "EMAIL_ALREADY_EXISTS"
	ErrCodeUserNotFound     = "USER_NOT_FOUND"
	ErrCodeWrongPassword    = "WRONG_PASSWORD"
	ErrCodeTaskNotFound     = "TASK_NOT_FOUND"
	ErrCodeTaskNotOwned     = "TASK_NOT_OWNED"
	ErrCodeEmptyTitle       = "EMPTY_TITLE"
	ErrCodeInternal         = "INTERNAL_ERROR"
)

// NewNotAuthenticatedError は未認証エラーを生成する。
func NewNotAuthenticatedError() *APIError {
	return &APIError{
		Code:     ErrCodeNotAuthenticated,
		Message:  "Not authenticated. Please log in again.",
		Category: "auth",
	}
}

// NewEmailExistsError はメールアドレス重複エラーを生成する。
func NewEmailExistsError() *APIError {
	return &APIError{
		Code:     ErrCodeEmailExists,
		Message:  "User with this email already exists",
		Category: "auth",
	}
}

// NewUserNotFoundError は該当アカウントが存在しない場合のエラーを生成する。
func NewUserNotFoundError() *APIError {
	return &APIError{
		Code:     ErrCodeUserNotFound,
		Message:  "No account found with this email",
		Category: "auth",
	}
}

// NewWrongPasswordError はパスワード不一致エラーを生成する。
func NewWrongPasswordError() *APIError {
	return &APIError{
		Code:     ErrCodeWrongPassword,
		Message:  "Incorrect password",
		Category: "auth",
	}
}

// NewTaskNotFoundError はタスク未検出エラーを生成する。
func NewTaskNotFoundError(taskID string) *APIError {
	return &APIError{
		Code:     ErrCodeTaskNotFound,
		Message:  "Task not found",
		Category: "task",
	}
}

// NewTaskNotOwnedError は所有者不一致エラーを生成する。
// 存在有無を漏らさないため、メッセージはNotFoundと同一にする。
func NewTaskNotOwnedError(taskID string) *APIError {
	return &APIError{
		Code:     ErrCodeTaskNotOwned,
		Message:  "Task not found",
		Category: "task",
	}
}

// NewEmptyTitleError はタイトル空エラーを生成する。
func NewEmptyTitleError() *APIError {
	return &APIError{
		Code:     ErrCodeEmptyTitle,
		Message:  "Task title cannot be empty",
		Category: "validation",
	}
}

// NewValidationError は入力不正エラーを生成する。
func NewValidationError(message string) *APIError {
	return &APIError{
		Code:     ErrCodeValidation,
		Message:  message,
		Category: "validation",
	}
}
