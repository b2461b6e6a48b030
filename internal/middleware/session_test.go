package middleware

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/hitoshi/taskdeck/internal/model"
)

type mockSessionResolver struct {
	resolveFn func(ctx context.Context, token string) (*model.UserSummary, error)
}

func (m *mockSessionResolver) ResolveSession(ctx context.Context, token string) (*model.UserSummary, error) {
	if m.resolveFn != nil {
		return m.resolveFn(ctx, token)
	}
	return nil, nil
}

var _ SessionResolver = (*mockSessionResolver)(nil)

func sessionRequest(t *testing.T, resolver SessionResolver, cookie *http.Cookie) (*httptest.ResponseRecorder, string) {
	t.Helper()

	var gotUserID string
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotUserID, _ = UserIDFromContext(r.Context())
		w.WriteHeader(http.StatusOK)
	})

	req := httptest.NewRequest(http.MethodGet, "/api/tasks", nil)
	if cookie != nil {
		req.AddCookie(cookie)
	}
	rec := httptest.NewRecorder()
	NewSessionMiddleware(resolver)(next).ServeHTTP(rec, req)
	return rec, gotUserID
}

// 有効なトークンでユーザーIDがコンテキストに注入されることを検証
func TestSessionMiddleware_ValidToken(t *testing.T) {
	resolver := &mockSessionResolver{
		resolveFn: func(_ context.Context, token string) (*model.UserSummary, error) {
			if token != "session_123_abc" {
				t.Errorf("token = %q, want session_123_abc", token)
			}
			return &model.UserSummary{ID: "u1", Name: "Alice", Email: "alice@example.com"}, nil
		},
	}

	rec, userID := sessionRequest(t, resolver, &http.Cookie{Name: "sessionId", Value: "session_123_abc"})
	if rec.Code != http.StatusOK {
		t.Errorf("status = %d, want 200", rec.Code)
	}
	if userID != "u1" {
		t.Errorf("userID in context = %q, want u1", userID)
	}
}

// Cookieなしのリクエストは401で拒否されることを検証
func TestSessionMiddleware_MissingCookie(t *testing.T) {
	rec, _ := sessionRequest(t, &mockSessionResolver{}, nil)
	if rec.Code != http.StatusUnauthorized {
		t.Errorf("status = %d, want 401", rec.Code)
	}

	var body ErrorResponseBody
	if err := json.NewDecoder(rec.Body).Decode(&body); err != nil {
		t.Fatalf("failed to decode body: %v", err)
	}
	if body.Success || body.Error != "Unauthorized" {
		t.Errorf("body = %+v", body)
	}
}

// 失効トークンは401で拒否されることを検証
func TestSessionMiddleware_UnknownToken(t *testing.T) {
	rec, _ := sessionRequest(t, &mockSessionResolver{}, &http.Cookie{Name: "sessionId", Value: "session_stale"})
	if rec.Code != http.StatusUnauthorized {
		t.Errorf("status = %d, want 401", rec.Code)
	}
}

// セッション解決の失敗も401として扱われることを検証
func TestSessionMiddleware_ResolverError(t *testing.T) {
	resolver := &mockSessionResolver{
		resolveFn: func(_ context.Context, _ string) (*model.UserSummary, error) {
			return nil, errors.New("store unavailable")
		},
	}

	rec, _ := sessionRequest(t, resolver, &http.Cookie{Name: "sessionId", Value: "session_123_abc"})
	if rec.Code != http.StatusUnauthorized {
		t.Errorf("status = %d, want 401", rec.Code)
	}
}

// UserIDFromContextが未注入のコンテキストでエラーを返すことを検証
func TestUserIDFromContext_Missing(t *testing.T) {
	if _, err := UserIDFromContext(context.Background()); err == nil {
		t.Error("expected error for context without user ID")
	}

	ctx := ContextWithUserID(context.Background(), "u1")
	userID, err := UserIDFromContext(ctx)
	if err != nil {
		t.Fatalf("UserIDFromContext returned error: %v", err)
	}
	if userID != "u1" {
		t.Errorf("userID = %q, want u1", userID)
	}
}
