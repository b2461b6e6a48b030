// Package auth はアカウント登録、認証、セッション管理を提供する。
package auth

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/hitoshi/taskdeck/internal/model"
	"github.com/hitoshi/taskdeck/internal/repository"
)

// Service は認証に関するビジネスロジックを提供する。
// リクエストのセッショントークンを受け取り、認証済みユーザーを解決する。
// ページ側とREST側の両方がここを通る。
type Service struct {
	accountRepo repository.AccountRepository
	sessionRepo repository.SessionRepository
	verifier    CredentialVerifier
	tokens      TokenIssuer
}

// NewService はServiceを生成する。
func NewService(
	accountRepo repository.AccountRepository,
	sessionRepo repository.SessionRepository,
	verifier CredentialVerifier,
	tokens TokenIssuer,
) *Service {
	return &Service{
		accountRepo: accountRepo,
		sessionRepo: sessionRepo,
		verifier:    verifier,
		tokens:      tokens,
	}
}

// Register は新規アカウントを作成する。
// メールアドレスが登録済みの場合はEMAIL_ALREADY_EXISTSを返す。
func (s *Service) Register(ctx context.Context, name, email, password string) (*model.UserSummary, error) {
	existing, err := s.accountRepo.FindByEmail(ctx, email)
	if err != nil {
		return nil, fmt.Errorf("failed to check existing account: %w", err)
	}
	if existing != nil {
		return nil, model.NewEmailExistsError()
	}

	stored, err := s.verifier.Hash(password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	account := &model.Account{
		ID:        uuid.New().String(),
		Name:      name,
		Email:     email,
		Password:  stored,
		CreatedAt: time.Now(),
	}

	if err := s.accountRepo.Create(ctx, account); err != nil {
		// 事前チェックとCreateの間に同一メールの登録が割り込んだ場合
		if errors.Is(err, repository.ErrDuplicateEmail) {
			return nil, model.NewEmailExistsError()
		}
		return nil, fmt.Errorf("failed to create account: %w", err)
	}

	slog.Info("new account created",
		slog.String("user_id", account.ID),
		slog.String("email", account.Email),
	)

	return &model.UserSummary{ID: account.ID, Name: account.Name, Email: account.Email}, nil
}

// Authenticate はメールアドレスとパスワードを照合し、セッションを発行する。
// 成功時はトークンとユーザー情報を返す。トークンのCookieへの保存は呼び出し側が行う。
func (s *Service) Authenticate(ctx context.Context, email, password string) (string, *model.UserSummary, error) {
	account, err := s.accountRepo.FindByEmail(ctx, email)
	if err != nil {
		return "", nil, fmt.Errorf("failed to find account: %w", err)
	}
	if account == nil {
		return "", nil, model.NewUserNotFoundError()
	}

	if !s.verifier.Verify(account.Password, password) {
		return "", nil, model.NewWrongPasswordError()
	}

	token, err := s.tokens.NewToken()
	if err != nil {
		return "", nil, fmt.Errorf("failed to issue session token: %w", err)
	}

	session := &model.Session{
		Token:     token,
		UserID:    account.ID,
		Email:     account.Email,
		Name:      account.Name,
		CreatedAt: time.Now(),
	}

	if err := s.sessionRepo.Create(ctx, session); err != nil {
		return "", nil, fmt.Errorf("failed to save session: %w", err)
	}

	slog.Info("user logged in", slog.String("user_id", account.ID))

	return token, &model.UserSummary{ID: account.ID, Name: account.Name, Email: account.Email}, nil
}

// ResolveSession はトークンから現在のユーザーを解決する。
// セッションが存在しない場合、またはセッションが参照するアカウントが
// 既に存在しない場合はnilを返す。
func (s *Service) ResolveSession(ctx context.Context, token string) (*model.UserSummary, error) {
	if token == "" {
		return nil, nil
	}

	session, err := s.sessionRepo.FindByToken(ctx, token)
	if err != nil {
		return nil, fmt.Errorf("failed to find session: %w", err)
	}
	if session == nil {
		return nil, nil
	}

	account, err := s.accountRepo.FindByID(ctx, session.UserID)
	if err != nil {
		return nil, fmt.Errorf("failed to find account: %w", err)
	}
	if account == nil {
		return nil, nil
	}

	return &model.UserSummary{ID: account.ID, Name: account.Name, Email: account.Email}, nil
}

// EndSession はセッションを破棄する。トークンが存在しない場合もエラーにしない。
func (s *Service) EndSession(ctx context.Context, token string) error {
	if token == "" {
		return nil
	}

	if err := s.sessionRepo.DeleteByToken(ctx, token); err != nil {
		return fmt.Errorf("failed to delete session: %w", err)
	}

	slog.Info("user logged out")
	return nil
}
