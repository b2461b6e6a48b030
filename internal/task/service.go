// Package task はタスク管理のドメインロジックを提供する。
package task

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/hitoshi/taskdeck/internal/model"
	"github.com/hitoshi/taskdeck/internal/repository"
)

// Service はタスクCRUDのサービス層。
// すべての操作はセッション解決済みのユーザーIDを前提とし、
// 更新・削除は所有者チェックを通過した場合のみ実行する。
type Service struct {
	taskRepo repository.TaskRepository
}

// NewService はServiceを生成する。
func NewService(taskRepo repository.TaskRepository) *Service {
	return &Service{taskRepo: taskRepo}
}

// ListTasks は指定ユーザーが所有するタスク一覧を返す。
// ストアの全件走査を所有者でフィルタしたもので、挿入順で返る。
func (s *Service) ListTasks(ctx context.Context, userID string) ([]*model.Task, error) {
	tasks, err := s.taskRepo.ListByUserID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list tasks: %w", err)
	}
	return tasks, nil
}

// CreateTask は新しいタスクを作成する。
// タイトルは前後の空白を除去し、空になる場合はEMPTY_TITLEを返す。
func (s *Service) CreateTask(ctx context.Context, userID, title string) (*model.Task, error) {
	trimmed := strings.TrimSpace(title)
	if trimmed == "" {
		return nil, model.NewEmptyTitleError()
	}

	task := &model.Task{
		ID:        uuid.New().String(),
		UserID:    userID,
		Title:     trimmed,
		Completed: false,
		CreatedAt: time.Now(),
	}

	if err := s.taskRepo.Create(ctx, task); err != nil {
		return nil, fmt.Errorf("failed to create task: %w", err)
	}

	return task, nil
}

// UpdateTask は指定タスクにnil以外のフィールドを適用し、updated_atを更新する。
// タスクが存在しない場合はTASK_NOT_FOUND、所有者が異なる場合はTASK_NOT_OWNEDを返す。
// 存在チェックが所有者チェックより先に行われる。
func (s *Service) UpdateTask(ctx context.Context, userID, taskID string, update model.TaskUpdate) (*model.Task, error) {
	if err := s.checkOwnership(ctx, userID, taskID); err != nil {
		return nil, err
	}

	updated, err := s.taskRepo.UpdateFields(ctx, taskID, update)
	if err != nil {
		return nil, fmt.Errorf("failed to update task: %w", err)
	}
	if updated == nil {
		// 所有者チェック後に削除が割り込んだ場合
		return nil, model.NewTaskNotFoundError(taskID)
	}

	return updated, nil
}

// DeleteTask は指定タスクを削除し、削除したレコードを返す。
// 所有者チェックはUpdateTaskと同一。
func (s *Service) DeleteTask(ctx context.Context, userID, taskID string) (*model.Task, error) {
	if err := s.checkOwnership(ctx, userID, taskID); err != nil {
		return nil, err
	}

	deleted, err := s.taskRepo.DeleteByID(ctx, taskID)
	if err != nil {
		return nil, fmt.Errorf("failed to delete task: %w", err)
	}
	if deleted == nil {
		return nil, model.NewTaskNotFoundError(taskID)
	}

	return deleted, nil
}

// checkOwnership はタスクの存在と所有者を検証する。
// 所有者IDは作成後に変わらないため、後続の更新とは別の操作で検証してよい。
func (s *Service) checkOwnership(ctx context.Context, userID, taskID string) error {
	task, err := s.taskRepo.FindByID(ctx, taskID)
	if err != nil {
		return fmt.Errorf("failed to find task: %w", err)
	}
	if task == nil {
		return model.NewTaskNotFoundError(taskID)
	}
	if task.UserID != userID {
		return model.NewTaskNotOwnedError(taskID)
	}
	return nil
}
