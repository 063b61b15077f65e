package featureflags

import (
	"errors"

	"github.com/prometheus/client_golang/prometheus"
)

type evaluationMetrics struct {
	evaluations *prometheus.CounterVec
}

func newEvaluationMetrics(reg prometheus.Registerer) *evaluationMetrics {
	m := &evaluationMetrics{
		evaluations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "easytrade",
			Subsystem: "feature_flag",
			Name:      "evaluations_total",
			Help:      "Number of feature flag evaluations by flag and reason.",
		}, []string{"flag", "reason"}),
	}
	if reg == nil {
		return m
	}
	if err := reg.Register(m.evaluations); err != nil {
		// Several providers may share one registry.
		var are prometheus.AlreadyRegisteredError
		if errors.As(err, &are) {
			if existing, ok := are.ExistingCollector.(*prometheus.CounterVec); ok {
				m.evaluations = existing
			}
		}
	}
	return m
}

func (m *evaluationMetrics) observe(key string, reason Reason) {
	if m == nil {
		return
	}
	m.evaluations.WithLabelValues(key, string(reason)).Inc()
}
