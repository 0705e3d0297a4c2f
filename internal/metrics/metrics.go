// Package metrics はPrometheusメトリクスの収集と公開を提供する。
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Recorder はメトリクス収集のインターフェース。
// ハンドラーやミドルウェアから利用する。
type Recorder interface {
	RecordHTTPStatus(statusCode int)
	RecordRequestDuration(duration time.Duration)
	RecordAuthSuccess(operation string)
	RecordAuthFailure(operation string)
	RecordPlanCreated()
}

// Collector はPrometheusメトリクスを収集する実装。
type Collector struct {
	httpStatus      *prometheus.CounterVec
	requestDuration prometheus.Histogram
	authSuccess     *prometheus.CounterVec
	authFailure     *prometheus.CounterVec
	plansCreated    prometheus.Counter
}

// NewCollector は新しいCollectorを生成し、指定されたレジストリにメトリクスを登録する。
func NewCollector(reg prometheus.Registerer) *Collector {
	c := &Collector{
		httpStatus: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "flexfit_http_status_total",
			Help: "HTTPステータスコード別のレスポンス数",
		}, []string{"status_code"}),
		requestDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "flexfit_request_duration_seconds",
			Help:    "HTTPリクエスト処理時間（秒）",
			Buckets: prometheus.DefBuckets,
		}),
		authSuccess: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "flexfit_auth_success_total",
			Help: "認証成功（登録・ログイン別）の合計数",
		}, []string{"operation"}),
		authFailure: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "flexfit_auth_failure_total",
			Help: "認証失敗（登録・ログイン別）の合計数",
		}, []string{"operation"}),
		plansCreated: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "flexfit_plans_created_total",
			Help: "作成されたワークアウトプランの合計数",
		}),
	}

	reg.MustRegister(
		c.httpStatus,
		c.requestDuration,
		c.authSuccess,
		c.authFailure,
		c.plansCreated,
	)

	return c
}

// RecordHTTPStatus はHTTPステータスコードを記録する。
func (c *Collector) RecordHTTPStatus(statusCode int) {
	c.httpStatus.WithLabelValues(strconv.Itoa(statusCode)).Inc()
}

// RecordRequestDuration はリクエスト処理時間を記録する。
func (c *Collector) RecordRequestDuration(duration time.Duration) {
	c.requestDuration.Observe(duration.Seconds())
}

// RecordAuthSuccess は認証成功を記録する。operationは"register"または"login"。
func (c *Collector) RecordAuthSuccess(operation string) {
	c.authSuccess.WithLabelValues(operation).Inc()
}

// RecordAuthFailure は認証失敗を記録する。operationは"register"または"login"。
func (c *Collector) RecordAuthFailure(operation string) {
	c.authFailure.WithLabelValues(operation).Inc()
}

// RecordPlanCreated はプラン作成を記録する。
func (c *Collector) RecordPlanCreated() {
	c.plansCreated.Inc()
}

// Handler はPrometheusスクレイプ用のHTTPハンドラーを返す。
func Handler(gatherer prometheus.Gatherer) http.Handler {
	return promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{})
}

// SetupMetricsRoute は/metricsエンドポイントを提供するHTTPハンドラーを返す。
// Prometheusスクレイプに対応する。
func SetupMetricsRoute(gatherer prometheus.Gatherer) http.Handler {
	mux := http.NewServeMux()
	mux.Handle("/metrics", Handler(gatherer))
	return mux
}
