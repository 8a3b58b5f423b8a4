package metrics

import "github.com/prometheus/client_golang/prometheus"

// WizardMetrics exposes counters/histograms for the inquiry wizards.
type WizardMetrics struct {
	stepTransitions *prometheus.CounterVec
	draftRestores   *prometheus.CounterVec
	submissions     *prometheus.CounterVec
	submitLatency   *prometheus.HistogramVec
}

func NewWizardMetrics(reg prometheus.Registerer) *WizardMetrics {
	m := &WizardMetrics{
		stepTransitions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "maldives",
			Subsystem: "wizard",
			Name:      "step_transitions_total",
			Help:      "Step changes by wizard variant and destination step",
		}, []string{"variant", "step"}),
		draftRestores: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "maldives",
			Subsystem: "wizard",
			Name:      "draft_loads_total",
			Help:      "Draft loads by outcome (restored, fresh, corrupt)",
		}, []string{"variant", "outcome"}),
		submissions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "maldives",
			Subsystem: "wizard",
			Name:      "submissions_total",
			Help:      "Inquiry submissions by status",
		}, []string{"variant", "status"}),
		submitLatency: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "maldives",
			Subsystem: "wizard",
			Name:      "submit_latency_seconds",
			Help:      "Latency of inquiry submission",
			Buckets:   prometheus.DefBuckets,
		}, []string{"variant"}),
	}
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	reg.MustRegister(m.stepTransitions, m.draftRestores, m.submissions, m.submitLatency)
	return m
}

func (m *WizardMetrics) ObserveStep(variant, step string) {
	if m == nil {
		return
	}
	m.stepTransitions.WithLabelValues(variant, step).Inc()
}

func (m *WizardMetrics) ObserveDraftLoad(variant, outcome string) {
	if m == nil {
		return
	}
	m.draftRestores.WithLabelValues(variant, outcome).Inc()
}

func (m *WizardMetrics) ObserveSubmission(variant, status string, seconds float64) {
	if m == nil {
		return
	}
	m.submissions.WithLabelValues(variant, status).Inc()
	m.submitLatency.WithLabelValues(variant).Observe(seconds)
}

// NotificationMetrics counts e-mails sent by the inquiry worker.
type NotificationMetrics struct {
	sent *prometheus.CounterVec
}

func NewNotificationMetrics(reg prometheus.Registerer) *NotificationMetrics {
	m := &NotificationMetrics{
		sent: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "maldives",
			Subsystem: "notify",
			Name:      "emails_total",
			Help:      "Inquiry e-mails by recipient kind and status",
		}, []string{"recipient", "status"}),
	}
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	reg.MustRegister(m.sent)
	return m
}

func (m *NotificationMetrics) ObserveEmail(recipient, status string) {
	if m == nil {
		return
	}
	m.sent.WithLabelValues(recipient, status).Inc()
}
