package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"

	"github.com/iho/onlinebank/internal/usecase"
)

var _ usecase.MetricsRecorder = (*Metrics)(nil)

func TestNewRegistersMetrics(t *testing.T) {
	registry := prometheus.NewRegistry()

	m := New(registry)

	if m.AccountsCreated == nil || m.AccountOperations == nil || m.LoadDiagnostics == nil {
		t.Fatalf("expected key metrics to be initialized: %+v", m)
	}

	m.AccountCreated()
	m.ObserveOperation("deposit", 10)

	metricFamilies, err := registry.Gather()
	if err != nil {
		t.Fatalf("failed to gather metrics: %v", err)
	}

	if len(metricFamilies) == 0 {
		t.Fatalf("expected registered metrics, got none")
	}
}

func TestRecorderMethods(t *testing.T) {
	m := New(prometheus.NewRegistry())

	m.AccountCreated()
	m.AccountCreated()
	m.AccountsLoaded(7)
	m.LoadDiagnostic(usecase.DiagnosticCorrupt)
	m.LoadDiagnostic(usecase.DiagnosticUnrecognized)
	m.LoadDiagnostic(usecase.DiagnosticUnrecognized)

	if got := testutil.ToFloat64(m.AccountsCreated); got != 2 {
		t.Fatalf("expected 2 accounts created, got %v", got)
	}
	if got := testutil.ToFloat64(m.LoadedAccounts); got != 7 {
		t.Fatalf("expected 7 accounts loaded, got %v", got)
	}
	if got := testutil.ToFloat64(m.LoadDiagnostics.WithLabelValues(usecase.DiagnosticUnrecognized)); got != 2 {
		t.Fatalf("expected 2 unrecognized diagnostics, got %v", got)
	}
}

func TestOperationMetrics(t *testing.T) {
	m := New(prometheus.NewRegistry())

	m.ObserveOperation("withdraw", 25)
	m.ObserveOperation("check_balance", 0)
	m.OperationFailed("transfer")
	m.CardSwiped(true)
	m.CardSwiped(false)
	m.CardSwiped(false)

	if got := testutil.ToFloat64(m.AccountOperations.WithLabelValues("withdraw")); got != 1 {
		t.Fatalf("expected 1 withdraw, got %v", got)
	}
	if got := testutil.ToFloat64(m.AccountOperations.WithLabelValues("check_balance")); got != 1 {
		t.Fatalf("expected 1 balance check, got %v", got)
	}
	if got := testutil.ToFloat64(m.OperationErrors.WithLabelValues("transfer")); got != 1 {
		t.Fatalf("expected 1 transfer error, got %v", got)
	}
	if got := testutil.ToFloat64(m.CardSwipes.WithLabelValues("unknown")); got != 2 {
		t.Fatalf("expected 2 unknown swipes, got %v", got)
	}
}
