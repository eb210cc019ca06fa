package metrics

import (
	"io"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/shopspring/decimal"
)

func TestObserveCalculation(t *testing.T) {
	m := New()

	m.ObserveCalculation("regular", OutcomeOK, decimal.RequireFromString("26.00"))
	m.ObserveCalculation("regular", OutcomeOK, decimal.RequireFromString("5.50"))
	m.ObserveCalculation("reduced", OutcomeRejected, decimal.Zero)

	if got := testutil.ToFloat64(m.calculations.WithLabelValues("regular", OutcomeOK)); got != 2 {
		t.Errorf("regular ok count = %v, want 2", got)
	}
	if got := testutil.ToFloat64(m.calculations.WithLabelValues("reduced", OutcomeRejected)); got != 1 {
		t.Errorf("reduced rejected count = %v, want 1", got)
	}
	if got := testutil.CollectAndCount(m.paymentAmount); got != 1 {
		t.Errorf("payment histogram series = %d, want 1", got)
	}
}

func TestNilMetrics(t *testing.T) {
	var m *Metrics
	m.ObserveCalculation("regular", OutcomeOK, decimal.Zero)
	m.ObserveRPC("/x", "ok", time.Millisecond)
}

func TestHandler(t *testing.T) {
	m := New()
	m.ObserveRPC("/farebonus.v1.FareService/Calculate", "ok", 3*time.Millisecond)

	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest("GET", "/metrics", nil))

	body, _ := io.ReadAll(rec.Body)
	if !strings.Contains(string(body), "farebonus_rpc_duration_seconds") {
		t.Errorf("metrics output missing rpc histogram:\n%s", body)
	}
}
