package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics provides observability for the response module.
type Metrics struct {
	// Operation latency by operation name and outcome
	OperationLatency *prometheus.HistogramVec

	// Accepted submissions by resulting status
	Submissions *prometheus.CounterVec

	// Submissions rejected by error code
	Rejections *prometheus.CounterVec

	// Documents created by provisioning trigger
	DocumentsProvisioned *prometheus.CounterVec

	// Document cache lookups by result
	CacheLookups *prometheus.CounterVec
}

// New registers the response metrics on the default registry.
func New() *Metrics {
	return NewWithRegisterer(prometheus.DefaultRegisterer)
}

// NewWithRegisterer registers the response metrics on reg.
func NewWithRegisterer(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)
	return &Metrics{
		OperationLatency: factory.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "compliance_response_operation_duration_seconds",
			Help:    "Duration of response engine operations",
			Buckets: []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1},
		}, []string{"operation", "outcome"}), // outcome: "ok", "error"

		Submissions: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "compliance_response_submissions_total",
			Help: "Accepted answer page submissions by resulting document status",
		}, []string{"status"}),

		Rejections: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "compliance_response_rejections_total",
			Help: "Rejected answer page submissions by error code",
		}, []string{"code"}),

		DocumentsProvisioned: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "compliance_response_documents_provisioned_total",
			Help: "Response documents created by provisioning trigger",
		}, []string{"trigger"}), // trigger: "representative", "questionnaire"

		CacheLookups: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "compliance_response_cache_lookups_total",
			Help: "Response document cache lookups by result",
		}, []string{"result"}), // result: "hit", "miss", "error"
	}
}

// ObserveOperation records one operation's duration.
func (m *Metrics) ObserveOperation(operation string, d time.Duration, err error) {
	if m == nil {
		return
	}
	outcome := "ok"
	if err != nil {
		outcome = "error"
	}
	m.OperationLatency.WithLabelValues(operation, outcome).Observe(d.Seconds())
}

// IncrementSubmission records an accepted submission.
func (m *Metrics) IncrementSubmission(status string) {
	if m != nil {
		m.Submissions.WithLabelValues(status).Inc()
	}
}

// IncrementRejection records a rejected submission.
func (m *Metrics) IncrementRejection(code string) {
	if m != nil {
		m.Rejections.WithLabelValues(code).Inc()
	}
}

// AddProvisioned records created documents.
func (m *Metrics) AddProvisioned(trigger string, n int) {
	if m != nil && n > 0 {
		m.DocumentsProvisioned.WithLabelValues(trigger).Add(float64(n))
	}
}

// IncrementCacheLookup records a cache hit, miss or error.
func (m *Metrics) IncrementCacheLookup(result string) {
	if m != nil {
		m.CacheLookups.WithLabelValues(result).Inc()
	}
}
