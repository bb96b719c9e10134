package metrics

import "github.com/prometheus/client_golang/prometheus"

// ChatMetrics exposes counters/histograms for conversation flows.
type ChatMetrics struct {
	scenarioTotal   *prometheus.CounterVec
	providerTotal   *prometheus.CounterVec
	providerLatency *prometheus.HistogramVec
}

func NewChatMetrics(reg prometheus.Registerer) *ChatMetrics {
	m := &ChatMetrics{
		scenarioTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "omnichat",
			Subsystem: "chat",
			Name:      "scenario_total",
			Help:      "Conversation turns by resolved scenario",
		}, []string{"scenario"}),
		providerTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "omnichat",
			Subsystem: "ai",
			Name:      "provider_requests_total",
			Help:      "LLM provider calls by provider and outcome",
		}, []string{"provider", "status"}),
		providerLatency: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "omnichat",
			Subsystem: "ai",
			Name:      "provider_latency_seconds",
			Help:      "Latency of LLM provider calls",
			Buckets:   prometheus.DefBuckets,
		}, []string{"provider"}),
	}
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	reg.MustRegister(m.scenarioTotal, m.providerTotal, m.providerLatency)
	return m
}

func (m *ChatMetrics) ObserveScenario(scenario string) {
	if m == nil {
		return
	}
	m.scenarioTotal.WithLabelValues(scenario).Inc()
}

func (m *ChatMetrics) ObserveProvider(provider, status string, seconds float64) {
	if m == nil {
		return
	}
	m.providerTotal.WithLabelValues(provider, status).Inc()
	m.providerLatency.WithLabelValues(provider).Observe(seconds)
}
