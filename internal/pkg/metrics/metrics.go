package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Metrics はアプリケーションのメトリクスを管理する
type Metrics struct {
	// HTTPリクエストの総数（method, path, status_code）
	HTTPRequestsTotal *prometheus.CounterVec

	// HTTPリクエストのレイテンシ（method, path）
	HTTPRequestDuration *prometheus.HistogramVec

	// 参加登録の試行数（result: success, full, duplicate, sold_out, lock_failed, closed, error）
	RegistrationsTotal *prometheus.CounterVec

	// チェックインの試行数（method: id/qr, result: success, already_checked_in, cancelled, error）
	CheckInsTotal *prometheus.CounterVec

	// 分散ロックの操作時間（operation: acquire/release, status: success/failed）
	DistributedLockDuration *prometheus.HistogramVec

	// 終了処理で完了にしたイベント数
	CompletedEventsTotal prometheus.Counter
}

// New は新しいMetricsインスタンスを作成し、デフォルトレジストリに登録する
func New() *Metrics {
	return NewWithRegistry(prometheus.DefaultRegisterer)
}

// NewWithRegistry は指定したレジストリにメトリクスを登録する
func NewWithRegistry(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		HTTPRequestsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "http_requests_total",
				Help: "Total number of HTTP requests",
			},
			[]string{"method", "path", "status_code"},
		),
		HTTPRequestDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "http_request_duration_seconds",
				Help:    "HTTP request latency in seconds",
				Buckets: []float64{.005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10},
			},
			[]string{"method", "path"},
		),
		RegistrationsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "event_registrations_total",
				Help: "Total number of event registration attempts",
			},
			[]string{"result"},
		),
		CheckInsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "event_checkins_total",
				Help: "Total number of attendee check-in attempts",
			},
			[]string{"method", "result"},
		),
		DistributedLockDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "distributed_lock_duration_seconds",
				Help:    "Time spent on distributed lock operations",
				Buckets: []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1},
			},
			[]string{"operation", "status"},
		),
		CompletedEventsTotal: prometheus.NewCounter(
			prometheus.CounterOpts{
				Name: "events_completed_total",
				Help: "Total number of events marked as completed after their end date",
			},
		),
	}

	// レジストリに登録
	reg.MustRegister(
		m.HTTPRequestsTotal,
		m.HTTPRequestDuration,
		m.RegistrationsTotal,
		m.CheckInsTotal,
		m.DistributedLockDuration,
		m.CompletedEventsTotal,
	)

	return m
}

// 以下の記録メソッドは nil レシーバでも安全に呼び出せる

// RecordRegistration は参加登録の結果を記録する
func (m *Metrics) RecordRegistration(result string) {
	if m == nil {
		return
	}
	m.RegistrationsTotal.WithLabelValues(result).Inc()
}

// RecordCheckIn はチェックインの結果を記録する
func (m *Metrics) RecordCheckIn(method, result string) {
	if m == nil {
		return
	}
	m.CheckInsTotal.WithLabelValues(method, result).Inc()
}

// ObserveLock は分散ロック操作の所要時間を記録する
func (m *Metrics) ObserveLock(operation string, success bool, d time.Duration) {
	if m == nil {
		return
	}
	status := "success"
	if !success {
		status = "failed"
	}
	m.DistributedLockDuration.WithLabelValues(operation, status).Observe(d.Seconds())
}

// AddCompletedEvents は完了にしたイベント数を加算する
func (m *Metrics) AddCompletedEvents(n int64) {
	if m == nil || n <= 0 {
		return
	}
	m.CompletedEventsTotal.Add(float64(n))
}

// デフォルトのメトリクスインスタンス
var defaultMetrics *Metrics

// Init はデフォルトのメトリクスインスタンスを初期化する
func Init() *Metrics {
	defaultMetrics = New()
	return defaultMetrics
}

// Get はデフォルトのメトリクスインスタンスを返す
func Get() *Metrics {
	return defaultMetrics
}
