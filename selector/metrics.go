package selector

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/arloliu/encsel/fallback"
	"github.com/arloliu/encsel/format"
)

// Metrics counts selections and dictionary fallbacks. A nil *Metrics records nothing.
type Metrics struct {
	selections *prometheus.CounterVec
	fallbacks  *prometheus.CounterVec
}

// NewMetrics creates the selector counters and registers them with reg.
// A nil reg creates unregistered counters.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)

	return &Metrics{
		selections: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "encsel",
				Name:      "selections_total",
				Help:      "Number of value writers selected, by physical type and strategy",
			},
			[]string{"type", "strategy"},
		),
		fallbacks: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "encsel",
				Subsystem: "dictionary",
				Name:      "fallbacks_total",
				Help:      "Number of dictionary writers that fell back, by physical type and reason",
			},
			[]string{"type", "reason"},
		),
	}
}

func (m *Metrics) observeSelection(typ format.PhysicalType, strategy Strategy) {
	if m == nil {
		return
	}
	m.selections.WithLabelValues(typ.String(), strategy.String()).Inc()
}

func (m *Metrics) observeFallback(typ format.PhysicalType, reason fallback.Reason) {
	if m == nil {
		return
	}
	m.fallbacks.WithLabelValues(typ.String(), reason.String()).Inc()
}
