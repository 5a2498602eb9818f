package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds all Prometheus metrics
type Metrics struct {
	// Account metrics
	AccountsCreated   prometheus.Counter
	LoadedAccounts    prometheus.Gauge
	AccountOperations *prometheus.CounterVec
	OperationAmount   *prometheus.HistogramVec
	OperationErrors   *prometheus.CounterVec

	// Persistence metrics
	LoadDiagnostics *prometheus.CounterVec

	// Session metrics
	CardSwipes *prometheus.CounterVec
}

// New creates all metrics and registers them with reg.
func New(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)

	return &Metrics{
		AccountsCreated: factory.NewCounter(prometheus.CounterOpts{
			Name: "onlinebank_accounts_created_total",
			Help: "Total number of accounts opened",
		}),
		LoadedAccounts: factory.NewGauge(prometheus.GaugeOpts{
			Name: "onlinebank_accounts_loaded",
			Help: "Number of accounts loaded at startup",
		}),
		AccountOperations: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "onlinebank_account_operations_total",
				Help: "Total account operations by type",
			},
			[]string{"operation"},
		),
		OperationAmount: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "onlinebank_operation_amount",
				Help:    "Deposit, withdrawal and transfer amounts",
				Buckets: []float64{1, 10, 100, 1000, 10000, 100000, 1000000},
			},
			[]string{"operation"},
		),
		OperationErrors: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "onlinebank_operation_errors_total",
				Help: "Total rejected account operations by type",
			},
			[]string{"operation"},
		),
		LoadDiagnostics: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "onlinebank_load_diagnostics_total",
				Help: "Records skipped while loading accounts",
			},
			[]string{"kind"},
		),
		CardSwipes: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "onlinebank_card_swipes_total",
				Help: "Card swipes by result",
			},
			[]string{"result"},
		),
	}
}

// AccountCreated implements usecase.MetricsRecorder.
func (m *Metrics) AccountCreated() {
	m.AccountsCreated.Inc()
}

// AccountsLoaded implements usecase.MetricsRecorder.
func (m *Metrics) AccountsLoaded(n int) {
	m.LoadedAccounts.Set(float64(n))
}

// LoadDiagnostic implements usecase.MetricsRecorder.
func (m *Metrics) LoadDiagnostic(kind string) {
	m.LoadDiagnostics.WithLabelValues(kind).Inc()
}

// ObserveOperation records a completed account operation.
func (m *Metrics) ObserveOperation(op string, amount int64) {
	m.AccountOperations.WithLabelValues(op).Inc()
	if amount > 0 {
		m.OperationAmount.WithLabelValues(op).Observe(float64(amount))
	}
}

// OperationFailed records a rejected account operation.
func (m *Metrics) OperationFailed(op string) {
	m.OperationErrors.WithLabelValues(op).Inc()
}

// CardSwiped records a card lookup.
func (m *Metrics) CardSwiped(found bool) {
	result := "unknown"
	if found {
		result = "found"
	}
	m.CardSwipes.WithLabelValues(result).Inc()
}
