package handler

import (
	"bytes"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/hitoshi/taskdeck/internal/auth"
	"github.com/hitoshi/taskdeck/internal/repository"
	"github.com/hitoshi/taskdeck/internal/task"
)

// newTestRouter はインメモリストアの上に全スタックを組み立てる。
func newTestRouter() http.Handler {
	accountRepo := repository.NewMemoryAccountRepo()
	sessionRepo := repository.NewMemorySessionRepo()
	taskRepo := repository.NewMemoryTaskRepo()

	authService := auth.NewService(accountRepo, sessionRepo, auth.NewPlainVerifier(), auth.NewTimestampTokenIssuer())
	taskService := task.NewService(taskRepo)

	return NewRouter(&RouterDeps{
		SessionResolver:   authService,
		CORSAllowedOrigin: "http://localhost:3000",
		Logger:            slog.New(slog.NewJSONHandler(io.Discard, nil)),
		AuthService:       authService,
		TaskService:       taskService,
		AuthConfig:        AuthHandlerConfig{SessionMaxAge: 604800},
	})
}

func doJSON(router http.Handler, method, path, body string, cookie *http.Cookie) *httptest.ResponseRecorder {
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, path, nil)
	} else {
		req = httptest.NewRequest(method, path, bytes.NewBufferString(body))
		req.Header.Set("Content-Type", "application/json")
	}
	if cookie != nil {
		req.AddCookie(cookie)
	}
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func sessionCookieFrom(t *testing.T, rec *httptest.ResponseRecorder) *http.Cookie {
	t.Helper()
	for _, c := range rec.Result().Cookies() {
		if c.Name == "sessionId" && c.Value != "" {
			return c
		}
	}
	t.Fatal("sessionId cookie not found in response")
	return nil
}

// サインアップからタスクCRUDまでの一連のフローを検証する
func TestRouter_FullUserJourney(t *testing.T) {
	router := newTestRouter()

	// 1. サインアップ
	rec := doJSON(router, http.MethodPost, "/api/auth/signup",
		`{"name":"Alice","email":"alice@example.com","password":"pw123456"}`, nil)
	if rec.Code != http.StatusCreated {
		t.Fatalf("signup status = %d, want 201: %s", rec.Code, rec.Body.String())
	}

	// 2. ログイン
	rec = doJSON(router, http.MethodPost, "/api/auth/login",
		`{"email":"alice@example.com","password":"pw123456"}`, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("login status = %d, want 200: %s", rec.Code, rec.Body.String())
	}
	cookie := sessionCookieFrom(t, rec)

	// 3. タスク作成
	rec = doJSON(router, http.MethodPost, "/api/tasks", `{"title":"buy milk"}`, cookie)
	if rec.Code != http.StatusCreated {
		t.Fatalf("create status = %d, want 201: %s", rec.Code, rec.Body.String())
	}
	var created struct {
		Task struct {
			ID        string `json:"id"`
			Title     string `json:"title"`
			Completed bool   `json:"completed"`
		} `json:"task"`
	}
	if err := json.NewDecoder(rec.Body).Decode(&created); err != nil {
		t.Fatalf("failed to decode create response: %v", err)
	}
	if created.Task.Title != "buy milk" || created.Task.Completed {
		t.Errorf("created task = %+v", created.Task)
	}

	// 4. 完了状態に更新
	rec = doJSON(router, http.MethodPut, "/api/tasks/"+created.Task.ID, `{"completed":true}`, cookie)
	if rec.Code != http.StatusOK {
		t.Fatalf("update status = %d, want 200: %s", rec.Code, rec.Body.String())
	}
	var updated struct {
		Task struct {
			Completed bool    `json:"completed"`
			UpdatedAt *string `json:"updatedAt"`
		} `json:"task"`
	}
	if err := json.NewDecoder(rec.Body).Decode(&updated); err != nil {
		t.Fatalf("failed to decode update response: %v", err)
	}
	if !updated.Task.Completed {
		t.Error("task should be completed")
	}
	if updated.Task.UpdatedAt == nil {
		t.Error("updatedAt should be present after update")
	}

	// 5. 一覧
	rec = doJSON(router, http.MethodGet, "/api/tasks", "", cookie)
	if rec.Code != http.StatusOK {
		t.Fatalf("list status = %d, want 200", rec.Code)
	}
	var list struct {
		Data []struct {
			ID string `json:"id"`
		} `json:"data"`
	}
	if err := json.NewDecoder(rec.Body).Decode(&list); err != nil {
		t.Fatalf("failed to decode list response: %v", err)
	}
	if len(list.Data) != 1 || list.Data[0].ID != created.Task.ID {
		t.Errorf("list = %+v", list.Data)
	}

	// 6. 削除
	rec = doJSON(router, http.MethodDelete, "/api/tasks/"+created.Task.ID, "", cookie)
	if rec.Code != http.StatusOK {
		t.Fatalf("delete status = %d, want 200", rec.Code)
	}

	// 7. 一覧が空になる
	rec = doJSON(router, http.MethodGet, "/api/tasks", "", cookie)
	if err := json.NewDecoder(rec.Body).Decode(&list); err != nil {
		t.Fatalf("failed to decode list response: %v", err)
	}
	if len(list.Data) != 0 {
		t.Errorf("list after delete = %+v, want empty", list.Data)
	}
}

// Cookieなしの/api/tasksアクセスはガードが401で拒否することを検証
func TestRouter_UnauthenticatedAPI(t *testing.T) {
	router := newTestRouter()

	rec := doJSON(router, http.MethodGet, "/api/tasks", "", nil)
	if rec.Code != http.StatusUnauthorized {
		t.Errorf("status = %d, want 401", rec.Code)
	}
	var body struct {
		Error string `json:"error"`
	}
	if err := json.NewDecoder(rec.Body).Decode(&body); err != nil {
		t.Fatalf("failed to decode: %v", err)
	}
	if body.Error != "Unauthorized - Please log in" {
		t.Errorf("error = %q", body.Error)
	}
}

// 偽造トークンはガードを通過するがセッションミドルウェアが拒否することを検証
func TestRouter_BogusTokenRejectedDownstream(t *testing.T) {
	router := newTestRouter()

	bogus := &http.Cookie{Name: "sessionId", Value: "session_0_forged"}
	rec := doJSON(router, http.MethodGet, "/api/tasks", "", bogus)
	if rec.Code != http.StatusUnauthorized {
		t.Errorf("status = %d, want 401", rec.Code)
	}
	var body struct {
		Error string `json:"error"`
	}
	if err := json.NewDecoder(rec.Body).Decode(&body); err != nil {
		t.Fatalf("failed to decode: %v", err)
	}
	// ガードの拒否ではなくセッション検証の拒否であること
	if body.Error != "Unauthorized" {
		t.Errorf("error = %q, want %q", body.Error, "Unauthorized")
	}
}

// 別ユーザーのタスクは404として扱われ、存在が漏れないことを検証
func TestRouter_CrossUserIsolation(t *testing.T) {
	router := newTestRouter()

	// アリスがタスクを作成
	doJSON(router, http.MethodPost, "/api/auth/signup",
		`{"name":"Alice","email":"alice@example.com","password":"pw123456"}`, nil)
	rec := doJSON(router, http.MethodPost, "/api/auth/login",
		`{"email":"alice@example.com","password":"pw123456"}`, nil)
	aliceCookie := sessionCookieFrom(t, rec)

	rec = doJSON(router, http.MethodPost, "/api/tasks", `{"title":"secret"}`, aliceCookie)
	var created struct {
		Task struct {
			ID string `json:"id"`
		} `json:"task"`
	}
	if err := json.NewDecoder(rec.Body).Decode(&created); err != nil {
		t.Fatalf("failed to decode: %v", err)
	}

	// ボブがアリスのタスクを操作しようとする
	doJSON(router, http.MethodPost, "/api/auth/signup",
		`{"name":"Bob","email":"bob@example.com","password":"pw123456"}`, nil)
	rec = doJSON(router, http.MethodPost, "/api/auth/login",
		`{"email":"bob@example.com","password":"pw123456"}`, nil)
	bobCookie := sessionCookieFrom(t, rec)

	rec = doJSON(router, http.MethodPut, "/api/tasks/"+created.Task.ID, `{"completed":true}`, bobCookie)
	if rec.Code != http.StatusNotFound {
		t.Errorf("cross-user update status = %d, want 404", rec.Code)
	}

	rec = doJSON(router, http.MethodDelete, "/api/tasks/"+created.Task.ID, "", bobCookie)
	if rec.Code != http.StatusNotFound {
		t.Errorf("cross-user delete status = %d, want 404", rec.Code)
	}

	// ボブの一覧にはアリスのタスクが出ない
	rec = doJSON(router, http.MethodGet, "/api/tasks", "", bobCookie)
	var list struct {
		Data []any `json:"data"`
	}
	if err := json.NewDecoder(rec.Body).Decode(&list); err != nil {
		t.Fatalf("failed to decode: %v", err)
	}
	if len(list.Data) != 0 {
		t.Errorf("bob's list = %+v, want empty", list.Data)
	}

	// アリスのタスクは無傷
	rec = doJSON(router, http.MethodGet, "/api/tasks", "", aliceCookie)
	var aliceList struct {
		Data []struct {
			Completed bool `json:"completed"`
		} `json:"data"`
	}
	if err := json.NewDecoder(rec.Body).Decode(&aliceList); err != nil {
		t.Fatalf("failed to decode: %v", err)
	}
	if len(aliceList.Data) != 1 || aliceList.Data[0].Completed {
		t.Errorf("alice's list = %+v", aliceList.Data)
	}
}

// 同一メールアドレスでの再サインアップが409になることを検証
func TestRouter_DuplicateSignup(t *testing.T) {
	router := newTestRouter()

	body := `{"name":"Alice","email":"alice@example.com","password":"pw123456"}`
	if rec := doJSON(router, http.MethodPost, "/api/auth/signup", body, nil); rec.Code != http.StatusCreated {
		t.Fatalf("first signup status = %d", rec.Code)
	}
	if rec := doJSON(router, http.MethodPost, "/api/auth/signup", body, nil); rec.Code != http.StatusConflict {
		t.Errorf("second signup status = %d, want 409", rec.Code)
	}
}

// ログアウト後のトークンが無効になることを検証
func TestRouter_LogoutInvalidatesSession(t *testing.T) {
	router := newTestRouter()

	doJSON(router, http.MethodPost, "/api/auth/signup",
		`{"name":"Alice","email":"alice@example.com","password":"pw123456"}`, nil)
	rec := doJSON(router, http.MethodPost, "/api/auth/login",
		`{"email":"alice@example.com","password":"pw123456"}`, nil)
	cookie := sessionCookieFrom(t, rec)

	if rec := doJSON(router, http.MethodPost, "/api/auth/logout", "", cookie); rec.Code != http.StatusOK {
		t.Fatalf("logout status = %d, want 200", rec.Code)
	}

	// 破棄済みトークンでのアクセスは401
	if rec := doJSON(router, http.MethodGet, "/api/tasks", "", cookie); rec.Code != http.StatusUnauthorized {
		t.Errorf("status after logout = %d, want 401", rec.Code)
	}
}

// 保護ページとリダイレクトの挙動を検証
func TestRouter_PageRedirects(t *testing.T) {
	router := newTestRouter()

	// 未ログインのダッシュボードはログインへ
	rec := doJSON(router, http.MethodGet, "/dashboard", "", nil)
	if rec.Code != http.StatusFound {
		t.Fatalf("status = %d, want 302", rec.Code)
	}
	if loc := rec.Header().Get("Location"); loc != "/login?from=%2Fdashboard" {
		t.Errorf("Location = %q", loc)
	}

	// ログイン済みのログインページはダッシュボードへ
	doJSON(router, http.MethodPost, "/api/auth/signup",
		`{"name":"Alice","email":"alice@example.com","password":"pw123456"}`, nil)
	loginRec := doJSON(router, http.MethodPost, "/api/auth/login",
		`{"email":"alice@example.com","password":"pw123456"}`, nil)
	cookie := sessionCookieFrom(t, loginRec)

	rec = doJSON(router, http.MethodGet, "/login", "", cookie)
	if rec.Code != http.StatusFound {
		t.Fatalf("status = %d, want 302", rec.Code)
	}
	if loc := rec.Header().Get("Location"); loc != "/dashboard" {
		t.Errorf("Location = %q, want /dashboard", loc)
	}

	// ログイン済みのダッシュボードは200
	rec = doJSON(router, http.MethodGet, "/dashboard", "", cookie)
	if rec.Code != http.StatusOK {
		t.Errorf("dashboard status = %d, want 200", rec.Code)
	}
}

// /healthzがガードの外で応答することを検証
func TestRouter_Healthz(t *testing.T) {
	router := newTestRouter()

	rec := doJSON(router, http.MethodGet, "/healthz", "", nil)
	if rec.Code != http.StatusOK {
		t.Errorf("status = %d, want 200", rec.Code)
	}
	var body map[string]string
	if err := json.NewDecoder(rec.Body).Decode(&body); err != nil {
		t.Fatalf("failed to decode: %v", err)
	}
	if body["status"] != "ok" {
		t.Errorf("status field = %q, want ok", body["status"])
	}
}

// /api/auth/meがログイン状態を正しく反映することを検証
func TestRouter_MeReflectsLoginState(t *testing.T) {
	router := newTestRouter()

	// 未ログイン
	rec := doJSON(router, http.MethodGet, "/api/auth/me", "", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	var anon struct {
		Authenticated bool `json:"authenticated"`
	}
	if err := json.NewDecoder(rec.Body).Decode(&anon); err != nil {
		t.Fatalf("failed to decode: %v", err)
	}
	if anon.Authenticated {
		t.Error("authenticated should be false before login")
	}

	// ログイン後
	doJSON(router, http.MethodPost, "/api/auth/signup",
		`{"name":"Alice","email":"alice@example.com","password":"pw123456"}`, nil)
	loginRec := doJSON(router, http.MethodPost, "/api/auth/login",
		`{"email":"alice@example.com","password":"pw123456"}`, nil)
	cookie := sessionCookieFrom(t, loginRec)

	rec = doJSON(router, http.MethodGet, "/api/auth/me", "", cookie)
	var me struct {
		Authenticated bool `json:"authenticated"`
		User          struct {
			Email string `json:"email"`
		} `json:"user"`
	}
	if err := json.NewDecoder(rec.Body).Decode(&me); err != nil {
		t.Fatalf("failed to decode: %v", err)
	}
	if !me.Authenticated || me.User.Email != "alice@example.com" {
		t.Errorf("me = %+v", me)
	}
}
