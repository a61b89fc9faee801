package observability

import (
	"context"
	"fmt"

	"github.com/aretw0/pushdown/internal/runtime"
	"github.com/aretw0/pushdown/pkg/domain"
	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "pushdown"

// Metrics groups the collectors describing automaton runs.
type Metrics struct {
	Runs        *prometheus.CounterVec
	Failures    *prometheus.CounterVec
	Transitions *prometheus.CounterVec
	Steps       *prometheus.HistogramVec
	InFlight    *prometheus.GaugeVec
}

// NewMetrics creates the collectors and registers them with reg.
// A nil reg falls back to prometheus.DefaultRegisterer.
func NewMetrics(reg prometheus.Registerer) (*Metrics, error) {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}

	m := &Metrics{
		Runs: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "runs_total",
				Help:      "Finished runs by verdict and reason.",
			},
			[]string{"automaton", "verdict", "reason"},
		),
		Failures: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "run_failures_total",
				Help:      "Runs aborted before halting, by failure kind.",
			},
			[]string{"automaton", "kind"},
		),
		Transitions: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "transitions_total",
				Help:      "Transitions applied across all runs.",
			},
			[]string{"automaton"},
		),
		Steps: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "run_steps",
				Help:      "Transitions applied per run.",
				Buckets:   prometheus.ExponentialBuckets(1, 2, 12),
			},
			[]string{"automaton"},
		),
		InFlight: prometheus.NewGaugeVec(
			prometheus.GaugeOpts{
				Namespace: namespace,
				Name:      "runs_in_flight",
				Help:      "Runs currently executing.",
			},
			[]string{"automaton"},
		),
	}

	for _, c := range []prometheus.Collector{m.Runs, m.Failures, m.Transitions, m.Steps, m.InFlight} {
		if err := reg.Register(c); err != nil {
			return nil, fmt.Errorf("failed to register metrics: %w", err)
		}
	}
	return m, nil
}

// Hooks returns lifecycle hooks that feed the step, failure and in-flight collectors.
func (m *Metrics) Hooks() domain.LifecycleHooks {
	return domain.LifecycleHooks{
		OnRunStart: func(ctx context.Context, e *domain.RunEvent) {
			m.InFlight.WithLabelValues(e.DefinitionID).Inc()
		},
		OnStep: func(ctx context.Context, e *domain.StepEvent) {
			m.Transitions.WithLabelValues(e.DefinitionID).Inc()
		},
		OnHalt: func(ctx context.Context, e *domain.RunEvent) {
			m.InFlight.WithLabelValues(e.DefinitionID).Dec()
			m.Steps.WithLabelValues(e.DefinitionID).Observe(float64(e.Snapshot.Step))
			if e.Err != nil {
				kind := string(runtime.FailureOf(e.Err))
				if kind == "" {
					kind = "unknown"
				}
				m.Failures.WithLabelValues(e.DefinitionID, kind).Inc()
			}
		},
	}
}

// Observe records the outcome of a finished run.
// Failed runs are counted under verdict "error" with the failure kind as reason.
func (m *Metrics) Observe(result *domain.Result) {
	verdict, reason := "reject", string(result.Verdict.Reason)
	switch {
	case result.Failed():
		verdict, reason = "error", result.Failure
	case result.Verdict.Accepted:
		verdict = "accept"
	}
	m.Runs.WithLabelValues(result.DefinitionID, verdict, reason).Inc()
}
