package metrics

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	once sync.Once

	// ModelCallsTotal cuenta llamadas a modelos por stage, proveedor y resultado.
	ModelCallsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "petcare",
		Subsystem: "pipeline",
		Name:      "model_calls_total",
		Help:      "Total number of outbound model calls, labeled by stage, provider and result.",
	}, []string{"stage", "provider", "result"})

	// ModelCallDurationSeconds mide la latencia de cada llamada.
	ModelCallDurationSeconds = prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "petcare",
		Subsystem: "pipeline",
		Name:      "model_call_duration_seconds",
		Help:      "Latency of outbound model calls.",
		Buckets:   []float64{0.25, 0.5, 1, 2, 5, 10, 20, 30, 60, 120},
	}, []string{"stage", "provider"})

	// RunsTotal cuenta corridas completas por resultado terminal.
	RunsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "petcare",
		Subsystem: "pipeline",
		Name:      "runs_total",
		Help:      "Total number of pipeline runs, labeled by terminal outcome.",
	}, []string{"outcome"})
)

// Register registra las métricas en el registry default de Prometheus.
// Se puede llamar varias veces.
func Register() {
	once.Do(func() {
		prometheus.MustRegister(
			ModelCallsTotal,
			ModelCallDurationSeconds,
			RunsTotal,
		)
	})
}

// Recorder implementa carereport.Recorder sobre los vectores de arriba.
type Recorder struct{}

func NewRecorder() *Recorder { return &Recorder{} }

func (Recorder) ObserveCall(stage, provider string, d time.Duration, err error) {
	ModelCallsTotal.WithLabelValues(stage, provider, resultLabel(err)).Inc()
	ModelCallDurationSeconds.WithLabelValues(stage, provider).Observe(d.Seconds())
}

func (Recorder) ObserveRun(outcome string) {
	RunsTotal.WithLabelValues(outcome).Inc()
}

func resultLabel(err error) string {
	switch {
	case err == nil:
		return "ok"
	case errors.Is(err, context.DeadlineExceeded):
		return "timeout"
	case errors.Is(err, context.Canceled):
		return "canceled"
	default:
		return "error"
	}
}
