package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds all Prometheus metrics for the application.
// A nil *Metrics is valid and records nothing.
type Metrics struct {
	LoginAttempts        *prometheus.CounterVec
	UsersRegistered      *prometheus.CounterVec
	PasswordResets       prometheus.Counter
	ApplicationsCreated  *prometheus.CounterVec
	ApplicationDecisions *prometheus.CounterVec
	DocumentsUploaded    prometheus.Counter
	DocumentBytes        prometheus.Counter
	ViewDenied           *prometheus.CounterVec
	RateLimited          *prometheus.CounterVec
	AuditDropped         prometheus.Counter
	HTTPDuration         *prometheus.HistogramVec
}

// New creates and registers all metrics with reg.
func New(reg prometheus.Registerer) *Metrics {
	f := promauto.With(reg)
	return &Metrics{
		LoginAttempts: f.NewCounterVec(prometheus.CounterOpts{
			Name: "dochub_login_attempts_total",
			Help: "Login attempts by role and outcome",
		}, []string{"role", "outcome"}),
		UsersRegistered: f.NewCounterVec(prometheus.CounterOpts{
			Name: "dochub_users_registered_total",
			Help: "Users created by registration or seeding",
		}, []string{"role"}),
		PasswordResets: f.NewCounter(prometheus.CounterOpts{
			Name: "dochub_password_reset_requests_total",
			Help: "Forgot-password requests accepted",
		}),
		ApplicationsCreated: f.NewCounterVec(prometheus.CounterOpts{
			Name: "dochub_applications_created_total",
			Help: "Applications created by service kind",
		}, []string{"service"}),
		ApplicationDecisions: f.NewCounterVec(prometheus.CounterOpts{
			Name: "dochub_application_transitions_total",
			Help: "Officer status transitions by target status",
		}, []string{"status"}),
		DocumentsUploaded: f.NewCounter(prometheus.CounterOpts{
			Name: "dochub_documents_uploaded_total",
			Help: "Document metadata records created",
		}),
		DocumentBytes: f.NewCounter(prometheus.CounterOpts{
			Name: "dochub_document_bytes_total",
			Help: "Declared size of uploaded documents",
		}),
		ViewDenied: f.NewCounterVec(prometheus.CounterOpts{
			Name: "dochub_view_denied_total",
			Help: "View navigations refused by the guard",
		}, []string{"view"}),
		RateLimited: f.NewCounterVec(prometheus.CounterOpts{
			Name: "dochub_rate_limited_total",
			Help: "Requests rejected by the rate limiter",
		}, []string{"class"}),
		AuditDropped: f.NewCounter(prometheus.CounterOpts{
			Name: "dochub_audit_events_dropped_total",
			Help: "Audit events dropped because the buffer was full",
		}),
		HTTPDuration: f.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "dochub_http_request_duration_seconds",
			Help:    "HTTP request latency by route pattern",
			Buckets: prometheus.DefBuckets,
		}, []string{"method", "route", "status"}),
	}
}

func (m *Metrics) ObserveLogin(role, outcome string) {
	if m == nil {
		return
	}
	m.LoginAttempts.WithLabelValues(role, outcome).Inc()
}

func (m *Metrics) IncrementUsersRegistered(role string) {
	if m == nil {
		return
	}
	m.UsersRegistered.WithLabelValues(role).Inc()
}

func (m *Metrics) IncrementPasswordResets() {
	if m == nil {
		return
	}
	m.PasswordResets.Inc()
}

func (m *Metrics) IncrementApplicationsCreated(service string) {
	if m == nil {
		return
	}
	m.ApplicationsCreated.WithLabelValues(service).Inc()
}

func (m *Metrics) IncrementTransitions(status string) {
	if m == nil {
		return
	}
	m.ApplicationDecisions.WithLabelValues(status).Inc()
}

func (m *Metrics) ObserveUpload(sizeBytes int64) {
	if m == nil {
		return
	}
	m.DocumentsUploaded.Inc()
	m.DocumentBytes.Add(float64(sizeBytes))
}

func (m *Metrics) IncrementViewDenied(view string) {
	if m == nil {
		return
	}
	m.ViewDenied.WithLabelValues(view).Inc()
}

func (m *Metrics) IncrementRateLimited(class string) {
	if m == nil {
		return
	}
	m.RateLimited.WithLabelValues(class).Inc()
}

// Middleware records request latency labelled with the chi route pattern.
func (m *Metrics) Middleware(next http.Handler) http.Handler {
	if m == nil {
		return next
	}
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)

		route := "unmatched"
		if rctx := chi.RouteContext(r.Context()); rctx != nil && rctx.RoutePattern() != "" {
			route = rctx.RoutePattern()
		}
		m.HTTPDuration.WithLabelValues(r.Method, route, strconv.Itoa(ww.Status())).
			Observe(time.Since(start).Seconds())
	})
}
