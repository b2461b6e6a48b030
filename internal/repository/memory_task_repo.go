package repository

import (
	"context"
	"sync"
	"time"

	"github.com/hitoshi/taskdeck/internal/model"
)

// MemoryTaskRepo はプロセス内メモリを使用したタスクリポジトリ。
// IDをキーとするマップに加えて挿入順のインデックスを保持し、
// ListByUserIDの走査順を決定的にする。各操作はRWMutexで直列化され、
// 同一タスクへの並行更新でもフィールドの欠落が起きない。
type MemoryTaskRepo struct {
	mu    sync.RWMutex
	byID  map[string]*model.Task
	order []string
}

// NewMemoryTaskRepo はMemoryTaskRepoを生成する。
func NewMemoryTaskRepo() *MemoryTaskRepo {
	return &MemoryTaskRepo{
		byID: make(map[string]*model.Task),
	}
}

// FindByID は指定IDのタスクを取得する。見つからない場合はnilを返す。
func (r *MemoryTaskRepo) FindByID(ctx context.Context, id string) (*model.Task, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	task, ok := r.byID[id]
	if !ok {
		return nil, nil
	}
	clone := *task
	return &clone, nil
}

// ListByUserID は指定ユーザーのタスク一覧を挿入順で返す。
// 所有者によるフィルタ付きの全件走査であり、インデックスは使わない。
func (r *MemoryTaskRepo) ListByUserID(ctx context.Context, userID string) ([]*model.Task, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	tasks := []*model.Task{}
	for _, id := range r.order {
		task, ok := r.byID[id]
		if !ok {
			continue
		}
		if task.UserID != userID {
			continue
		}
		clone := *task
		tasks = append(tasks, &clone)
	}
	return tasks, nil
}

// Create はタスクを作成する。
func (r *MemoryTaskRepo) Create(ctx context.Context, task *model.Task) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	clone := *task
	r.byID[task.ID] = &clone
	r.order = append(r.order, task.ID)
	return nil
}

// UpdateFields はnil以外のフィールドを適用し、updated_atを現在時刻にする。
// 読み取り・マージ・書き込みをロック内で一括して行う。存在しない場合はnilを返す。
func (r *MemoryTaskRepo) UpdateFields(ctx context.Context, id string, update model.TaskUpdate) (*model.Task, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	task, ok := r.byID[id]
	if !ok {
		return nil, nil
	}

	if update.Title != nil {
		task.Title = *update.Title
	}
	if update.Completed != nil {
		task.Completed = *update.Completed
	}
	now := time.Now()
	task.UpdatedAt = &now

	clone := *task
	return &clone, nil
}

// DeleteByID は指定IDのタスクを削除し、削除したレコードを返す。
// 存在しない場合はnilを返す。
func (r *MemoryTaskRepo) DeleteByID(ctx context.Context, id string) (*model.Task, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	task, ok := r.byID[id]
	if !ok {
		return nil, nil
	}

	delete(r.byID, id)
	for i, orderedID := range r.order {
		if orderedID == id {
			r.order = append(r.order[:i], r.order[i+1:]...)
			break
		}
	}

	clone := *task
	return &clone, nil
}

// compile-time interface check
var _ TaskRepository = (*MemoryTaskRepo)(nil)
