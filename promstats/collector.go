// Package promstats exports engine metrics to Prometheus.
//
// One Collector is registered per process; each engine, map or table gets a
// view bound to its component label:
//
//	reg := prometheus.NewRegistry()
//	stats, err := promstats.New(reg, promstats.WithNamespace("dashboard"))
//	engine, err := series.NewEngine(cfg, series.WithMetrics(stats.Component("latency-chart")))
package promstats

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/arloliu/vizstream/internal/options"
	"github.com/arloliu/vizstream/series"
)

const (
	statusSuccess = "success"
	statusError   = "error"
)

// Config holds the settings of a Collector.
type Config struct {
	namespace string
	buckets   []float64
}

// Option configures a Collector.
type Option = options.Option[*Config]

// WithNamespace sets the metric namespace. The default is "vizstream".
func WithNamespace(ns string) Option {
	return options.NoError(func(c *Config) {
		c.namespace = ns
	})
}

// WithBuckets sets the histogram buckets of batch latencies, in seconds.
func WithBuckets(buckets []float64) Option {
	return options.NoError(func(c *Config) {
		if len(buckets) > 0 {
			c.buckets = buckets
		}
	})
}

// Collector holds the Prometheus metric vectors shared by all components.
type Collector struct {
	batchLatency *prometheus.HistogramVec
	batches      *prometheus.CounterVec
	rows         *prometheus.CounterVec
	series       *prometheus.GaugeVec
	resets       *prometheus.CounterVec
	frameBytes   *prometheus.HistogramVec
}

// New creates a Collector and registers its metrics with reg.
//
// Parameters:
//   - reg: Registerer receiving the metrics; prometheus.DefaultRegisterer when nil
//   - opts: Namespace and bucket options
//
// Returns:
//   - *Collector: Registered collector
//   - error: Registration error, for example when metrics are already registered
func New(reg prometheus.Registerer, opts ...Option) (*Collector, error) {
	cfg := &Config{namespace: "vizstream", buckets: prometheus.DefBuckets}
	if err := options.Apply(cfg, opts...); err != nil {
		return nil, err
	}
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}

	c := &Collector{
		batchLatency: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: cfg.namespace,
			Name:      "batch_duration_seconds",
			Help:      "Latency of batch updates",
			Buckets:   cfg.buckets,
		}, []string{"component", "status"}),
		batches: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: cfg.namespace,
			Name:      "batches_total",
			Help:      "Total batches delivered",
		}, []string{"component", "status"}),
		rows: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: cfg.namespace,
			Name:      "rows_total",
			Help:      "Total rows merged",
		}, []string{"component"}),
		series: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: cfg.namespace,
			Name:      "series",
			Help:      "Current number of series buffers",
		}, []string{"component"}),
		resets: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: cfg.namespace,
			Name:      "resets_total",
			Help:      "Total state resets",
		}, []string{"component"}),
		frameBytes: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: cfg.namespace,
			Name:      "frame_size_bytes",
			Help:      "Size of encoded render frames",
			Buckets:   prometheus.ExponentialBuckets(256, 4, 8),
		}, []string{"component"}),
	}

	for _, col := range []prometheus.Collector{c.batchLatency, c.batches, c.rows, c.series, c.resets, c.frameBytes} {
		if err := reg.Register(col); err != nil {
			return nil, err
		}
	}

	return c, nil
}

// Component returns a MetricsCollector reporting under the given component label.
func (c *Collector) Component(name string) *Component {
	return &Component{c: c, name: name}
}

// Component is a Collector bound to one component label.
type Component struct {
	c    *Collector
	name string
}

var _ series.MetricsCollector = (*Component)(nil)

// RecordBatch implements series.MetricsCollector.
func (m *Component) RecordBatch(rows, seriesCount int, duration time.Duration, err error) {
	status := statusSuccess
	if err != nil {
		status = statusError
	}
	m.c.batchLatency.WithLabelValues(m.name, status).Observe(duration.Seconds())
	m.c.batches.WithLabelValues(m.name, status).Inc()
	if err != nil {
		return
	}
	m.c.rows.WithLabelValues(m.name).Add(float64(rows))
	m.c.series.WithLabelValues(m.name).Set(float64(seriesCount))
}

// RecordReset implements series.MetricsCollector.
func (m *Component) RecordReset() {
	m.c.resets.WithLabelValues(m.name).Inc()
}

// RecordFrame records the size of an encoded render frame.
func (m *Component) RecordFrame(size int) {
	m.c.frameBytes.WithLabelValues(m.name).Observe(float64(size))
}
