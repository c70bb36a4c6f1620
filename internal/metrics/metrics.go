package metrics

import (
	"database/sql"
	"fmt"
	"net/http"
	"strconv"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	apiRequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "personnel_http_requests_total",
			Help: "Total number of API requests",
		},
		[]string{"method", "path", "status"},
	)

	apiRequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "personnel_http_request_duration_seconds",
			Help:    "API request duration in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path"},
	)

	statusTransitionsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "personnel_status_transitions_total",
			Help: "Employee status changes persisted by the reconciler",
		},
		[]string{"from", "to"},
	)

	retirementsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "personnel_retirements_total",
			Help: "Retirements processed, by kind (MANUAL, AUTOMATIC)",
		},
		[]string{"kind"},
	)

	leaveDecisionsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "personnel_leave_decisions_total",
			Help: "Leave status changes, by resulting status",
		},
		[]string{"status"},
	)

	outboxPublishedTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "personnel_outbox_events_total",
			Help: "Outbox relay results, by outcome (sent, failed)",
		},
		[]string{"outcome"},
	)

	databaseConnectionsActive = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "personnel_database_connections_active",
			Help: "Number of active database connections",
		},
	)

	databaseConnectionsIdle = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "personnel_database_connections_idle",
			Help: "Number of idle database connections",
		},
	)
)

func init() {
	prometheus.MustRegister(apiRequestsTotal)
	prometheus.MustRegister(apiRequestDuration)
	prometheus.MustRegister(statusTransitionsTotal)
	prometheus.MustRegister(retirementsTotal)
	prometheus.MustRegister(leaveDecisionsTotal)
	prometheus.MustRegister(outboxPublishedTotal)
	prometheus.MustRegister(databaseConnectionsActive)
	prometheus.MustRegister(databaseConnectionsIdle)

	// the default registry may already carry these
	_ = prometheus.Register(collectors.NewGoCollector())
	_ = prometheus.Register(collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
}

func Handler() http.Handler {
	return promhttp.Handler()
}

func RecordAPIRequest(method, path string, status int, seconds float64) {
	if path == "" {
		path = "unmatched"
	}
	apiRequestsTotal.WithLabelValues(method, path, strconv.Itoa(status)).Inc()
	apiRequestDuration.WithLabelValues(method, path).Observe(seconds)
}

func RecordStatusTransition(from, to string) {
	statusTransitionsTotal.WithLabelValues(from, to).Inc()
}

func RecordRetirement(kind string, n int) {
	if n <= 0 {
		return
	}
	retirementsTotal.WithLabelValues(kind).Add(float64(n))
}

func RecordLeaveDecision(status string) {
	leaveDecisionsTotal.WithLabelValues(status).Inc()
}

func RecordOutbox(sent, failed int) {
	outboxPublishedTotal.WithLabelValues("sent").Add(float64(sent))
	outboxPublishedTotal.WithLabelValues("failed").Add(float64(failed))
}

func UpdateDatabaseConnections(db *sql.DB) error {
	if db == nil {
		return fmt.Errorf("database connection is nil")
	}
	stats := db.Stats()
	databaseConnectionsActive.Set(float64(stats.InUse))
	databaseConnectionsIdle.Set(float64(stats.Idle))
	return nil
}
