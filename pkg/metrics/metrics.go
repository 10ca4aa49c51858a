// Package metrics 提供基于Prometheus的指标收集
//
// # 指标类型
//
// **1. Counter（计数器）**：只增不减的累计值
//   - 示例：HTTP请求总数、借出总数、扫码次数
//
// **2. Gauge（仪表盘）**：可增可减的瞬时值
//   - 示例：正在处理的HTTP请求数
//
// **3. Histogram（直方图）**：观测值的分布
//   - 示例：HTTP请求耗时、库存操作耗时
//
// # 库存服务的指标
//
//	┌────────────────────────────────────────────────────────────┐
//	│  inventory_operations_total{operation="lend",result="ok"}  │
//	│  inventory_operation_duration_seconds{operation="rack"}     │
//	│  books_lent_total                                           │
//	│  scan_attempts_total{result="detected"}                     │
//	│  cache_requests_total{result="hit"}                         │
//	└────────────────────────────────────────────────────────────┘
//	                         ↓  /metrics
//	                  Prometheus → Grafana
//
// # 使用示例
//
//	metrics.InitMetrics() // main中调用一次
//
//	start := time.Now()
//	err := svc.Lend(ctx, barcode)
//	metrics.ObserveOperation("lend", start, err)
//
// # 命名规范
//
// 1. Counter以`_total`结尾
// 2. Histogram以单位结尾（`_seconds`）
// 3. 标签只用有限取值（operation、result），不要用barcode做标签（高基数）
package metrics

import (
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// 操作结果标签取值
const (
	ResultOK    = "ok"
	ResultError = "error"
)

var (
	initOnce sync.Once

	// HTTP请求相关指标

	// HTTPRequestsTotal HTTP请求总数（Counter）
	// 标签：method、path（路由模板，如/api/v1/books/:barcode）、status
	HTTPRequestsTotal *prometheus.CounterVec

	// HTTPRequestDuration HTTP请求耗时（Histogram）
	HTTPRequestDuration *prometheus.HistogramVec

	// HTTPRequestsInProgress 正在处理的HTTP请求数（Gauge）
	HTTPRequestsInProgress prometheus.Gauge

	// 库存业务指标

	// InventoryOperationsTotal 库存操作总数
	// 标签：operation（add/delete/modify/retrieve/rack/lend）、result（ok/error）
	InventoryOperationsTotal *prometheus.CounterVec

	// InventoryOperationDuration 库存操作耗时
	InventoryOperationDuration *prometheus.HistogramVec

	// BooksLentTotal 成功借出的副本总数
	BooksLentTotal prometheus.Counter

	// ScanAttemptsTotal 扫码次数
	// 标签：result（detected/none_detected/device_error）
	ScanAttemptsTotal *prometheus.CounterVec

	// CacheRequestsTotal 图书视图缓存请求
	// 标签：result（hit/miss/stale/error）
	CacheRequestsTotal *prometheus.CounterVec

	// CircuitBreakerState 熔断器状态（0=closed 1=open 2=half_open）
	// 标签：name
	CircuitBreakerState *prometheus.GaugeVec

	// 消息队列指标

	// MessagesPublishedTotal 消息发布总数
	// 标签：exchange、routing_key、result
	MessagesPublishedTotal *prometheus.CounterVec

	// MessagesConsumedTotal 消息消费总数
	// 标签：queue、result
	MessagesConsumedTotal *prometheus.CounterVec
)

// InitMetrics 初始化所有Prometheus指标
//
// 进程启动时调用一次（cmd/api、inventoryctl、各包测试的TestMain）
// 重复调用只有第一次生效；未初始化就记录指标会panic
//
// 设计要点：
// 1. 使用promauto.New*自动注册到默认Registry
// 2. Histogram的Buckets按本地数据库操作耗时定制（毫秒级为主）
func InitMetrics() {
	initOnce.Do(func() {
		HTTPRequestsTotal = promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "http_requests_total",
				Help: "HTTP请求总数",
			},
			[]string{"method", "path", "status"},
		)

		HTTPRequestDuration = promauto.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "http_request_duration_seconds",
				Help:    "HTTP请求耗时（秒）",
				Buckets: []float64{0.001, 0.01, 0.1, 0.5, 1, 5, 10},
			},
			[]string{"method", "path"},
		)

		HTTPRequestsInProgress = promauto.NewGauge(
			prometheus.GaugeOpts{
				Name: "http_requests_in_progress",
				Help: "正在处理的HTTP请求数",
			},
		)

		InventoryOperationsTotal = promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "inventory_operations_total",
				Help: "库存操作总数",
			},
			[]string{"operation", "result"},
		)

		InventoryOperationDuration = promauto.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "inventory_operation_duration_seconds",
				Help:    "库存操作耗时（秒）",
				Buckets: []float64{0.0005, 0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1},
			},
			[]string{"operation"},
		)

		BooksLentTotal = promauto.NewCounter(
			prometheus.CounterOpts{
				Name: "books_lent_total",
				Help: "成功借出的副本总数",
			},
		)

		ScanAttemptsTotal = promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "scan_attempts_total",
				Help: "扫码次数",
			},
			[]string{"result"},
		)

		CacheRequestsTotal = promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "cache_requests_total",
				Help: "图书视图缓存请求数",
			},
			[]string{"result"},
		)

		CircuitBreakerState = promauto.NewGaugeVec(
			prometheus.GaugeOpts{
				Name: "circuit_breaker_state",
				Help: "熔断器状态（0=closed 1=open 2=half_open）",
			},
			[]string{"name"},
		)

		MessagesPublishedTotal = promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "messages_published_total",
				Help: "消息发布总数",
			},
			[]string{"exchange", "routing_key", "result"},
		)

		MessagesConsumedTotal = promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "messages_consumed_total",
				Help: "消息消费总数",
			},
			[]string{"queue", "result"},
		)
	})
}

// ObserveOperation 记录一次库存操作的结果与耗时
func ObserveOperation(operation string, start time.Time, err error) {
	result := ResultOK
	if err != nil {
		result = ResultError
	}
	IncCounterVec(InventoryOperationsTotal, map[string]string{"operation": operation, "result": result})
	ObserveHistogramVec(InventoryOperationDuration, map[string]string{"operation": operation}, time.Since(start).Seconds())
}

// IncCounter 递增Counter（便捷函数）
func IncCounter(counter prometheus.Counter) {
	counter.Inc()
}

// IncCounterVec 递增CounterVec（带标签）
func IncCounterVec(counter *prometheus.CounterVec, labels map[string]string) {
	counter.With(labels).Inc()
}

// IncGauge 递增Gauge
func IncGauge(gauge prometheus.Gauge) {
	gauge.Inc()
}

// DecGauge 递减Gauge
func DecGauge(gauge prometheus.Gauge) {
	gauge.Dec()
}

// SetGauge 设置Gauge值
func SetGauge(gauge prometheus.Gauge, value float64) {
	gauge.Set(value)
}

// SetGaugeVec 设置GaugeVec值（带标签）
func SetGaugeVec(gauge *prometheus.GaugeVec, labels map[string]string, value float64) {
	gauge.With(labels).Set(value)
}

// ObserveHistogram 记录Histogram观测值
func ObserveHistogram(histogram prometheus.Histogram, value float64) {
	histogram.Observe(value)
}

// ObserveHistogramVec 记录HistogramVec观测值（带标签）
func ObserveHistogramVec(histogram *prometheus.HistogramVec, labels map[string]string, value float64) {
	histogram.With(labels).Observe(value)
}
