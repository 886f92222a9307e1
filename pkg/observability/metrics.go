package observability

import (
	"context"

	"github.com/aretw0/typeb/pkg/domain"
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics holds the machine's Prometheus collectors.
type Metrics struct {
	Letters  *prometheus.CounterVec
	Skipped  *prometheus.CounterVec
	Messages *prometheus.CounterVec
	Duration *prometheus.HistogramVec
}

// NewMetrics creates the collectors and registers them with reg.
// Pass prometheus.NewRegistry() in tests to avoid duplicate registration panics.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		Letters: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "typeb_letters_total",
				Help: "Letters processed, by direction and switch class",
			},
			[]string{"direction", "class"},
		),
		Skipped: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "typeb_skipped_characters_total",
				Help: "Non-letters passed through or stripped",
			},
			[]string{"direction"},
		),
		Messages: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "typeb_messages_total",
				Help: "Messages processed, by direction and outcome",
			},
			[]string{"direction", "outcome"},
		),
		Duration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "typeb_message_duration_seconds",
				Help:    "Time spent processing one message",
				Buckets: prometheus.ExponentialBuckets(0.00001, 4, 10),
			},
			[]string{"direction"},
		),
	}
	reg.MustRegister(m.Letters, m.Skipped, m.Messages, m.Duration)
	return m
}

// Hooks returns lifecycle hooks that record into the collectors.
func (m *Metrics) Hooks() domain.LifecycleHooks {
	return domain.LifecycleHooks{
		OnLetter: func(ctx context.Context, e *domain.LetterEvent) {
			m.Letters.WithLabelValues(e.Direction.String(), e.Class.String()).Inc()
		},
		OnMessage: func(ctx context.Context, e *domain.MessageEvent) {
			dir := e.Direction.String()
			outcome := "ok"
			if e.Err != nil {
				outcome = "error"
			}
			m.Messages.WithLabelValues(dir, outcome).Inc()
			m.Skipped.WithLabelValues(dir).Add(float64(e.Skipped))
			m.Duration.WithLabelValues(dir).Observe(e.Duration.Seconds())
		},
	}
}
