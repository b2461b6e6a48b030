package repository

import (
	"context"
	"sync"

	"github.com/hitoshi/taskdeck/internal/model"
)

// MemorySessionRepo はプロセス内メモリを使用したセッションリポジトリ。
// トークンをキーとするマップで保持する。期限掃除は行わず、
// セッションは明示的なログアウトかプロセス再起動まで生存する。
type MemorySessionRepo struct {
	mu      sync.RWMutex
	byToken map[string]*model.Session
}

// NewMemorySessionRepo はMemorySessionRepoを生成する。
func NewMemorySessionRepo() *MemorySessionRepo {
	return &MemorySessionRepo{
		byToken: make(map[string]*model.Session),
	}
}

// Create はセッションを作成する。
func (r *MemorySessionRepo) Create(ctx context.Context, session *model.Session) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	clone := *session
	r.byToken[session.Token] = &clone
	return nil
}

// FindByToken は指定トークンのセッションを取得する。見つからない場合はnilを返す。
func (r *MemorySessionRepo) FindByToken(ctx context.Context, token string) (*model.Session, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	session, ok := r.byToken[token]
	if !ok {
		return nil, nil
	}
	clone := *session
	return &clone, nil
}

// DeleteByToken は指定トークンのセッションを削除する。存在しない場合も何もしない。
func (r *MemorySessionRepo) DeleteByToken(ctx context.Context, token string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	delete(r.byToken, token)
	return nil
}

// compile-time interface check
var _ SessionRepository = (*MemorySessionRepo)(nil)
