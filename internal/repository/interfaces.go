// Package repository はデータ永続化のインターフェースを定義する。
package repository

import (
	"context"

	"github.com/hitoshi/taskdeck/internal/model"
)

// AccountRepository はアカウントデータの永続化インターフェース。
// アカウントはメールアドレスを一意キーとして保持される。
type AccountRepository interface {
	// FindByEmail は指定メールアドレスのアカウントを取得する。見つからない場合はnilを返す。
	FindByEmail(ctx context.Context, email string) (*model.Account, error)

	// FindByID は指定IDのアカウントを取得する。見つからない場合はnilを返す。
	// セカンダリインデックスは持たず、全件走査で解決する。
	FindByID(ctx context.Context, id string) (*model.Account, error)

	// Create はアカウントを作成する。
	// メールアドレスが既に登録されている場合はErrDuplicateEmailを返す。
	Create(ctx context.Context, account *model.Account) error
}

// SessionRepository はセッションデータの永続化インターフェース。
type SessionRepository interface {
	// Create はセッションを作成する。
	Create(ctx context.Context, session *model.Session) error

	// FindByToken は指定トークンのセッションを取得する。見つからない場合はnilを返す。
	FindByToken(ctx context.Context, token string) (*model.Session, error)

	// DeleteByToken は指定トークンのセッションを削除する。
	// トークンが存在しない場合もエラーにしない（冪等）。
	DeleteByToken(ctx context.Context, token string) error
}

// TaskRepository はタスクデータの永続化インターフェース。
type TaskRepository interface {
	// FindByID は指定IDのタスクを取得する。見つからない場合はnilを返す。
	FindByID(ctx context.Context, id string) (*model.Task, error)

	// ListByUserID は指定ユーザーが所有するタスク一覧を返す。
	// 全件走査を所有者でフィルタしたもので、挿入順を保持する。
	ListByUserID(ctx context.Context, userID string) ([]*model.Task, error)

	// Create はタスクを作成する。
	Create(ctx context.Context, task *model.Task) error

	// UpdateFields は指定タスクにnil以外のフィールドを適用し、
	// updated_atを現在時刻に更新した結果を返す。読み取りから書き込みまでを
	// 単一のストア操作として原子的に行う。タスクが存在しない場合はnilを返す。
	UpdateFields(ctx context.Context, id string, update model.TaskUpdate) (*model.Task, error)

	// DeleteByID は指定IDのタスクを削除し、削除したレコードを返す。
	// タスクが存在しない場合はnilを返す。
	DeleteByID(ctx context.Context, id string) (*model.Task, error)
}
