package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds all Prometheus metrics for the gate.
type Metrics struct {
	EdgeDecisions *prometheus.CounterVec

	SessionFetches     prometheus.Counter
	SessionFetchErrors prometheus.Counter
	ThrottledFetches   prometheus.Counter
	SharedFetches      prometheus.Counter

	LoginFailures prometheus.Counter
	ForcedLogouts prometheus.Counter

	VerificationOutcomes *prometheus.CounterVec
	GateRenders          *prometheus.CounterVec

	IdentityLatency *prometheus.HistogramVec
}

// New creates and registers all Prometheus metrics.
func New() *Metrics {
	return &Metrics{
		EdgeDecisions: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "jobgate_edge_decisions_total",
			Help: "Edge gate decisions, labeled by outcome (pass, redirect_login, redirect_intent)",
		}, []string{"outcome"}),
		SessionFetches: promauto.NewCounter(prometheus.CounterOpts{
			Name: "jobgate_session_fetches_total",
			Help: "User snapshot fetches that reached the identity endpoint",
		}),
		SessionFetchErrors: promauto.NewCounter(prometheus.CounterOpts{
			Name: "jobgate_session_fetch_errors_total",
			Help: "User snapshot fetches that failed",
		}),
		ThrottledFetches: promauto.NewCounter(prometheus.CounterOpts{
			Name: "jobgate_session_fetches_throttled_total",
			Help: "Fetch calls skipped inside the throttle window",
		}),
		SharedFetches: promauto.NewCounter(prometheus.CounterOpts{
			Name: "jobgate_session_fetches_shared_total",
			Help: "Fetch calls that joined an in-flight round trip",
		}),
		LoginFailures: promauto.NewCounter(prometheus.CounterOpts{
			Name: "jobgate_login_failures_total",
			Help: "Login attempts rejected by the identity endpoint",
		}),
		ForcedLogouts: promauto.NewCounter(prometheus.CounterOpts{
			Name: "jobgate_forced_logouts_total",
			Help: "Sessions invalidated by an authoritative unauthenticated response",
		}),
		VerificationOutcomes: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "jobgate_verification_outcomes_total",
			Help: "Employer verification statuses observed, labeled by state",
		}, []string{"state"}),
		GateRenders: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "jobgate_gate_renders_total",
			Help: "Client gate render decisions, labeled by gate and mode",
		}, []string{"gate", "mode"}),
		IdentityLatency: promauto.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "jobgate_identity_latency_seconds",
			Help:    "Latency of identity endpoint calls in seconds",
			Buckets: prometheus.DefBuckets,
		}, []string{"endpoint"}),
	}
}
