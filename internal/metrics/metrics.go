// Package metrics はPrometheusメトリクスの収集と公開を提供する。
package metrics

import (
	"net/http"
	"strconv"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Collector はPrometheusメトリクスを収集する実装。
type Collector struct {
	guardVerdicts *prometheus.CounterVec
	httpStatus    *prometheus.CounterVec
	signups       prometheus.Counter
	logins        *prometheus.CounterVec
	taskOps       *prometheus.CounterVec
}

// NewCollector は新しいCollectorを生成し、指定されたレジストリにメトリクスを登録する。
func NewCollector(reg prometheus.Registerer) *Collector {
	c := &Collector{
		guardVerdicts: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "taskdeck_guard_verdict_total",
			Help: "ルートガードの判定結果別のリクエスト数",
		}, []string{"verdict"}),
		httpStatus: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "taskdeck_http_status_total",
			Help: "HTTPステータスコード別のレスポンス数",
		}, []string{"status_code"}),
		signups: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "taskdeck_signup_total",
			Help: "アカウント作成成功の合計数",
		}),
		logins: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "taskdeck_login_total",
			Help: "ログイン試行の結果別の合計数",
		}, []string{"outcome"}),
		taskOps: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "taskdeck_task_operation_total",
			Help: "タスク操作成功の種別別の合計数",
		}, []string{"operation"}),
	}

	reg.MustRegister(
		c.guardVerdicts,
		c.httpStatus,
		c.signups,
		c.logins,
		c.taskOps,
	)

	return c
}

// RecordGuardVerdict はルートガードの判定結果を記録する。
func (c *Collector) RecordGuardVerdict(verdict string) {
	c.guardVerdicts.WithLabelValues(verdict).Inc()
}

// RecordHTTPStatus はHTTPレスポンスのステータスコードを記録する。
func (c *Collector) RecordHTTPStatus(statusCode int) {
	c.httpStatus.WithLabelValues(strconv.Itoa(statusCode)).Inc()
}

// RecordSignup はアカウント作成成功を記録する。
func (c *Collector) RecordSignup() {
	c.signups.Inc()
}

// RecordLogin はログイン試行の結果を記録する。outcomeは"success"または"failure"。
func (c *Collector) RecordLogin(outcome string) {
	c.logins.WithLabelValues(outcome).Inc()
}

// RecordTaskOperation はタスク操作の成功を記録する。operationはcreate/update/delete/list。
func (c *Collector) RecordTaskOperation(operation string) {
	c.taskOps.WithLabelValues(operation).Inc()
}

// SetupMetricsRoute はPrometheusのエクスポジションハンドラーを返す。
func SetupMetricsRoute(reg *prometheus.Registry) http.Handler {
	return promhttp.HandlerFor(reg, promhttp.HandlerOpts{})
}
