package metrics

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestRecorder_ObserveCall_Labels(t *testing.T) {
	r := NewRecorder()

	before := testutil.ToFloat64(ModelCallsTotal.WithLabelValues("analysis", "test-provider", "ok"))
	r.ObserveCall("analysis", "test-provider", 120*time.Millisecond, nil)
	after := testutil.ToFloat64(ModelCallsTotal.WithLabelValues("analysis", "test-provider", "ok"))
	if after-before != 1 {
		t.Fatalf("expected ok counter +1, got %v", after-before)
	}

	wrapped := fmt.Errorf("upstream: %w", context.DeadlineExceeded)
	r.ObserveCall("report", "test-provider", time.Second, wrapped)
	if got := testutil.ToFloat64(ModelCallsTotal.WithLabelValues("report", "test-provider", "timeout")); got < 1 {
		t.Fatalf("expected timeout counter, got %v", got)
	}

	r.ObserveCall("report", "test-provider", time.Second, errors.New("401"))
	if got := testutil.ToFloat64(ModelCallsTotal.WithLabelValues("report", "test-provider", "error")); got < 1 {
		t.Fatalf("expected error counter, got %v", got)
	}
}

func TestRecorder_ObserveRun(t *testing.T) {
	r := NewRecorder()
	before := testutil.ToFloat64(RunsTotal.WithLabelValues("failed_report"))
	r.ObserveRun("failed_report")
	if testutil.ToFloat64(RunsTotal.WithLabelValues("failed_report"))-before != 1 {
		t.Fatalf("expected failed_report +1")
	}
}

func TestRegister_Idempotent(t *testing.T) {
	Register()
	Register()
}
