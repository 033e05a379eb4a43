// Package observability wires Prometheus collectors to the wizard's
// lifecycle hooks.
package observability

import (
	"context"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/opskit/slipway/pkg/domain"
)

// Metrics holds the collectors for wizard activity.
type Metrics struct {
	SlideVisits *prometheus.CounterVec
	Completions prometheus.Counter
	Lookups     *prometheus.CounterVec
	RowAppends  *prometheus.CounterVec
}

// NewMetrics creates the collectors and registers them on reg. Pass
// prometheus.DefaultRegisterer for the process-wide registry.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		SlideVisits: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "slipway_slide_visits_total",
				Help: "Total number of slide visits",
			},
			[]string{"slide_id"},
		),
		Completions: prometheus.NewCounter(
			prometheus.CounterOpts{
				Name: "slipway_completions_total",
				Help: "Total number of completed wizard sessions",
			},
		),
		Lookups: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "slipway_directory_lookups_total",
				Help: "Total number of directory lookups",
			},
			[]string{"outcome"},
		),
		RowAppends: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "slipway_row_appends_total",
				Help: "Total number of spreadsheet row appends",
			},
			[]string{"outcome"},
		),
	}
	reg.MustRegister(m.SlideVisits, m.Completions, m.Lookups, m.RowAppends)
	return m
}

// Hooks returns lifecycle hooks recording the collectors. Compose them with
// other hooks via domain.LifecycleHooks.Merge.
func (m *Metrics) Hooks() domain.LifecycleHooks {
	return domain.LifecycleHooks{
		OnSlideEnter: func(_ context.Context, e *domain.SlideEvent) {
			m.SlideVisits.WithLabelValues(e.SlideID).Inc()
		},
		OnComplete: func(_ context.Context, _ string, _ map[string]string) {
			m.Completions.Inc()
		},
		OnLookup: func(_ context.Context, e *domain.LookupEvent) {
			m.Lookups.WithLabelValues(outcome(e.IsError)).Inc()
		},
		OnRowAppend: func(_ context.Context, e *domain.AppendEvent) {
			m.RowAppends.WithLabelValues(outcome(e.IsError)).Inc()
		},
	}
}

func outcome(isError bool) string {
	if isError {
		return "error"
	}
	return "success"
}
