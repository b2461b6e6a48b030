package repository

import (
	"context"
	"sync"

	"github.com/hitoshi/taskdeck/internal/model"
)

// MemoryAccountRepo はプロセス内メモリを使用したアカウントリポジトリ。
// メールアドレスをキーとするマップで、RWMutexにより各操作を原子的に行う。
// 永続化・エビクションは行わない。
type MemoryAccountRepo struct {
	mu      sync.RWMutex
	byEmail map[string]*model.Account
}

// NewMemoryAccountRepo はMemoryAccountRepoを生成する。
func NewMemoryAccountRepo() *MemoryAccountRepo {
	return &MemoryAccountRepo{
		byEmail: make(map[string]*model.Account),
	}
}

// FindByEmail は指定メールアドレスのアカウントを取得する。見つからない場合はnilを返す。
func (r *MemoryAccountRepo) FindByEmail(ctx context.Context, email string) (*model.Account, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	account, ok := r.byEmail[email]
	if !ok {
		return nil, nil
	}
	clone := *account
	return &clone, nil
}

// FindByID は指定IDのアカウントを全件走査で取得する。見つからない場合はnilを返す。
func (r *MemoryAccountRepo) FindByID(ctx context.Context, id string) (*model.Account, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, account := range r.byEmail {
		if account.ID == id {
			clone := *account
			return &clone, nil
		}
	}
	return nil, nil
}

// Create はアカウントを作成する。重複チェックと登録をロック内で一括して行う。
func (r *MemoryAccountRepo) Create(ctx context.Context, account *model.Account) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.byEmail[account.Email]; ok {
		return ErrDuplicateEmail
	}

	clone := *account
	r.byEmail[account.Email] = &clone
	return nil
}

// compile-time interface check
var _ AccountRepository = (*MemoryAccountRepo)(nil)
