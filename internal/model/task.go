// Package model はドメインモデルを定義する。
package model

import "time"

// Task はユーザーが所有するタスクを表す。
// UserIDは作成時に確定し、以降変更されない。title/completedは所有者のみが更新できる。
type Task struct {
	ID        string
	UserID    string
	Title     string
	Completed bool
	CreatedAt time.Time
	UpdatedAt *time.Time
}

// TaskUpdate はタスクの部分更新を表す。
// nilのフィールドは変更せず、既存の値を維持する。
type TaskUpdate struct {
	Title     *string
	Completed *bool
}
