package observability

import (
	"context"
	"io"
	"net/http"
	"strconv"
	"time"

	"gorm.io/gorm"

	"github.com/yungbote/competence-backend/internal/platform/logger"
)

type MetricsConfig struct {
	Enabled        bool          `yaml:"enabled"`
	ScrapeInterval time.Duration `yaml:"scrape_interval"`
}

// Metrics is a small Prometheus text-format registry. A nil *Metrics is valid
// and records nothing.
type Metrics struct {
	apiRequests  *CounterVec
	apiLatency   *HistogramVec
	apiInflight  *Gauge
	apiErrors    *Counter
	entityEvents *CounterVec
	dbStats      *GaugeVec

	scrapeInterval time.Duration
}

func NewMetrics(cfg MetricsConfig) *Metrics {
	if !cfg.Enabled {
		return nil
	}
	interval := cfg.ScrapeInterval
	if interval <= 0 {
		interval = 10 * time.Second
	}
	return &Metrics{
		apiRequests: NewCounterVec("competence_api_requests_total", "Total API requests by method/route/status.", []string{"method", "route", "status"}),
		apiLatency: NewHistogramVec(
			"competence_api_request_duration_seconds",
			"API request latency in seconds by method/route.",
			[]string{"method", "route"},
			[]float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2, 5},
		),
		apiInflight:    NewGauge("competence_api_inflight_requests", "In-flight API requests."),
		apiErrors:      NewCounter("competence_api_server_errors_total", "API requests answered with a 5xx status."),
		entityEvents:   NewCounterVec("competence_entity_events_total", "Entity change events by entity/action/result.", []string{"entity", "action", "result"}),
		dbStats:        NewGaugeVec("competence_db_pool", "database/sql pool statistics.", []string{"stat"}),
		scrapeInterval: interval,
	}
}

func (m *Metrics) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if m == nil {
		w.WriteHeader(http.StatusServiceUnavailable)
		return
	}
	w.Header().Set("Content-Type", "text/plain; version=0.0.4")
	_ = m.WritePrometheus(w)
}

func (m *Metrics) WritePrometheus(w io.Writer) error {
	if m == nil {
		return nil
	}
	for _, c := range []interface{ WritePrometheus(io.Writer) error }{
		m.apiRequests,
		m.apiLatency,
		m.apiInflight,
		m.apiErrors,
		m.entityEvents,
		m.dbStats,
	} {
		if err := c.WritePrometheus(w); err != nil {
			return err
		}
	}
	return nil
}

func (m *Metrics) ObserveAPI(method, route string, status int, dur time.Duration) {
	if m == nil {
		return
	}
	if method == "" {
		method = "UNKNOWN"
	}
	if route == "" {
		route = "unknown"
	}
	m.apiRequests.Inc(method, route, strconv.Itoa(status))
	m.apiLatency.Observe(dur.Seconds(), method, route)
	if status >= 500 {
		m.apiErrors.Inc()
	}
}

func (m *Metrics) APIInflightInc() {
	if m == nil {
		return
	}
	m.apiInflight.Inc()
}

func (m *Metrics) APIInflightDec() {
	if m == nil {
		return
	}
	m.apiInflight.Dec()
}

// ObserveEntityEvent counts a publish attempt on the entity event bus.
func (m *Metrics) ObserveEntityEvent(entity, action string, err error) {
	if m == nil {
		return
	}
	result := "ok"
	if err != nil {
		result = "error"
	}
	m.entityEvents.Inc(entity, action, result)
}

// RunDBCollector samples the connection pool until ctx is done.
func (m *Metrics) RunDBCollector(ctx context.Context, log *logger.Logger, db *gorm.DB) error {
	if m == nil || db == nil {
		return nil
	}
	ticker := time.NewTicker(m.scrapeInterval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
			m.collectDBStats(log, db)
		}
	}
}

func (m *Metrics) collectDBStats(log *logger.Logger, db *gorm.DB) {
	sqlDB, err := db.DB()
	if err != nil {
		if log != nil {
			log.Warn("metrics: db stats unavailable", "error", err)
		}
		return
	}
	stats := sqlDB.Stats()
	m.dbStats.Set(float64(stats.OpenConnections), "open_connections")
	m.dbStats.Set(float64(stats.InUse), "in_use")
	m.dbStats.Set(float64(stats.Idle), "idle")
	m.dbStats.Set(float64(stats.WaitCount), "wait_count")
	m.dbStats.Set(stats.WaitDuration.Seconds(), "wait_duration_seconds")
	m.dbStats.Set(float64(stats.MaxOpenConnections), "max_open_connections")
}
