package handler

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/hitoshi/taskdeck/internal/metrics"
	"github.com/hitoshi/taskdeck/internal/middleware"
)

// RouterDeps はNewRouterに必要な依存関係をまとめた構造体。
type RouterDeps struct {
	// ミドルウェア依存
	SessionResolver   middleware.SessionResolver
	CORSAllowedOrigin string
	Logger            *slog.Logger

	// メトリクス（nilの場合は記録しない）
	Collector      *metrics.Collector
	MetricsHandler http.Handler

	// サービス
	AuthService AuthServiceInterface
	TaskService TaskServiceInterface
	AuthConfig  AuthHandlerConfig
}

// NewRouter は全ルーティングとミドルウェアチェーンを構成したchi.Routerを返す。
//
// ミドルウェアスタックの実行順序:
//
//	Recovery → SecurityHeaders → CORS → Metrics → Logging → RouteGuard
//
// セッションミドルウェアは/api/tasks配下にのみ適用する。
// /healthzと/metricsはガードの外に配置する。
func NewRouter(deps *RouterDeps) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.NewRecoveryMiddleware())
	r.Use(middleware.NewSecurityHeadersMiddleware())
	r.Use(middleware.NewCORSMiddleware(deps.CORSAllowedOrigin))
	if deps.Collector != nil {
		r.Use(metrics.NewHTTPMiddleware(deps.Collector))
	}
	if deps.Logger != nil {
		r.Use(middleware.NewLoggingMiddleware(deps.Logger))
	}

	var authMetrics AuthMetrics
	var taskMetrics TaskMetrics
	var guardMetrics middleware.GuardMetrics
	if deps.Collector != nil {
		authMetrics = deps.Collector
		taskMetrics = deps.Collector
		guardMetrics = deps.Collector
	}

	authHandler := NewAuthHandler(deps.AuthService, deps.AuthConfig, authMetrics)
	taskHandler := NewTaskHandler(deps.TaskService, taskMetrics)
	pageHandler := NewPageHandler(deps.AuthService)

	// --- 運用エンドポイント（ガードの外） ---

	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})

	if deps.MetricsHandler != nil {
		r.Method(http.MethodGet, "/metrics", deps.MetricsHandler)
	}

	// --- ガード配下のルート ---

	guard := middleware.NewRouteGuard(guardMetrics)

	r.Group(func(r chi.Router) {
		r.Use(guard.Middleware())

		// ページ
		r.Get("/", pageHandler.Home)
		r.Get("/login", pageHandler.Login)
		r.Get("/signup", pageHandler.Signup)
		r.Get("/api-docs", pageHandler.APIDocs)
		r.Get("/dashboard", pageHandler.Dashboard)

		// 認証API（ガードは素通しする）
		r.Route("/api/auth", func(r chi.Router) {
			r.Post("/signup", authHandler.Signup)
			r.Post("/login", authHandler.Login)
			r.Post("/logout", authHandler.Logout)
			r.Get("/me", authHandler.Me)
		})

		// タスクAPI（認証必須）
		// ガードはCookieの存在チェックのみ。トークンの有効性はここで検証する。
		r.Route("/api/tasks", func(r chi.Router) {
			r.Use(middleware.NewSessionMiddleware(deps.SessionResolver))

			r.Get("/", taskHandler.ListTasks)
			r.Post("/", taskHandler.CreateTask)
			r.Put("/{taskId}", taskHandler.UpdateTask)
			r.Delete("/{taskId}", taskHandler.DeleteTask)
		})
	})

	return r
}
