package metrics

import (
	"time"

	"ratesboard/internal/domain"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const (
	resultSuccess = "success"
	resultError   = "error"
)

// Metrics holds the dashboard's prometheus collectors.
type Metrics struct {
	FetchTotal         *prometheus.CounterVec
	FetchDuration      prometheus.Histogram
	LoadedRows         prometheus.Gauge
	ExportsTotal       *prometheus.CounterVec
	NotificationsTotal *prometheus.CounterVec
}

// New registers the collectors on reg.
func New(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)
	return &Metrics{
		FetchTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "exchange_rates_fetch_total",
				Help: "Exchange rate fetches by result",
			},
			[]string{"result"},
		),
		FetchDuration: factory.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "exchange_rates_fetch_duration_seconds",
				Help:    "Duration of exchange rate fetches",
				Buckets: prometheus.DefBuckets,
			},
		),
		LoadedRows: factory.NewGauge(
			prometheus.GaugeOpts{
				Name: "exchange_rates_loaded_rows",
				Help: "Number of rate records currently loaded",
			},
		),
		ExportsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "exchange_rates_exports_total",
				Help: "Exports served by format",
			},
			[]string{"format"},
		),
		NotificationsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "notifications_total",
				Help: "Notifications emitted by severity",
			},
			[]string{"severity"},
		),
	}
}

func (m *Metrics) ObserveFetch(duration time.Duration, err error) {
	result := resultSuccess
	if err != nil {
		result = resultError
	}
	m.FetchTotal.WithLabelValues(result).Inc()
	m.FetchDuration.Observe(duration.Seconds())
}

func (m *Metrics) SetLoadedRows(n int) {
	m.LoadedRows.Set(float64(n))
}

func (m *Metrics) IncExport(format string) {
	m.ExportsTotal.WithLabelValues(format).Inc()
}

func (m *Metrics) IncNotification(severity domain.Severity) {
	m.NotificationsTotal.WithLabelValues(string(severity)).Inc()
}
