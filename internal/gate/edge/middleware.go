package edge

import (
	"log/slog"
	"net/http"
	"net/url"
	"time"

	"jobgate/internal/credentials"
	"jobgate/internal/platform/metrics"
	"jobgate/internal/platform/middleware"
)

// IntentTTL bounds the stashed "return to this path" cookie.
const IntentTTL = 300 * time.Second

// Middleware adapts the gate to the HTTP edge. Each invocation is
// stateless: it reads the session-presence cookie and the intent cookie
// from the request, and the only mutation is the single intent cookie it
// sets or deletes.
type Middleware struct {
	gate    *Gate
	secure  bool
	logger  *slog.Logger
	metrics *metrics.Metrics
}

type MiddlewareOption func(*Middleware)

func WithLogger(logger *slog.Logger) MiddlewareOption {
	return func(m *Middleware) { m.logger = logger }
}

func WithMetrics(mx *metrics.Metrics) MiddlewareOption {
	return func(m *Middleware) { m.metrics = mx }
}

// NewMiddleware wraps the gate. Intent cookies are marked Secure only when
// secure is set (production-like environments).
func NewMiddleware(gate *Gate, secure bool, opts ...MiddlewareOption) *Middleware {
	m := &Middleware{gate: gate, secure: secure}
	for _, opt := range opts {
		opt(m)
	}
	if m.logger == nil {
		m.logger = slog.Default()
	}
	return m
}

// Handler is the chi-compatible middleware.
func (m *Middleware) Handler(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, hasToken := readCookie(r, credentials.KeyAccessToken)
		intent, _ := readCookie(r, credentials.KeyRedirectTo)

		decision := m.gate.Decide(r.URL.Path, hasToken, intent)

		if decision.SetIntent != "" {
			m.writeIntent(w, decision.SetIntent)
		}
		if decision.ClearIntent {
			m.clearIntent(w)
		}

		switch decision.Action {
		case ActionPass:
			m.count("pass")
			next.ServeHTTP(w, r)
		case ActionRedirect:
			outcome := "redirect_login"
			if decision.ClearIntent {
				outcome = "redirect_intent"
			}
			m.count(outcome)
			m.logger.InfoContext(r.Context(), "edge redirect",
				"path", r.URL.Path,
				"location", decision.Location,
				"outcome", outcome,
				"request_id", middleware.GetRequestID(r.Context()),
			)
			http.Redirect(w, r, decision.Location, http.StatusTemporaryRedirect)
		}
	})
}

func (m *Middleware) writeIntent(w http.ResponseWriter, target string) {
	http.SetCookie(w, &http.Cookie{
		Name:     credentials.KeyRedirectTo,
		Value:    url.QueryEscape(target),
		Path:     "/",
		MaxAge:   int(IntentTTL.Seconds()),
		SameSite: http.SameSiteLaxMode,
		Secure:   m.secure,
	})
}

func (m *Middleware) clearIntent(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     credentials.KeyRedirectTo,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		SameSite: http.SameSiteLaxMode,
		Secure:   m.secure,
	})
}

func (m *Middleware) count(outcome string) {
	if m.metrics != nil {
		m.metrics.EdgeDecisions.WithLabelValues(outcome).Inc()
	}
}

func readCookie(r *http.Request, name string) (string, bool) {
	cookie, err := r.Cookie(name)
	if err != nil || cookie.Value == "" {
		return "", false
	}
	if decoded, derr := url.QueryUnescape(cookie.Value); derr == nil {
		return decoded, true
	}
	return cookie.Value, true
}
