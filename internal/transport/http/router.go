// Package httptransport is the thin HTTP layer of the gateway demo. It
// builds per-request session stores over the browser cookie jar, runs the
// gates, and translates render decisions into responses. Business rules
// live in the gate and session packages.
package httptransport

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/cors"

	"jobgate/internal/gate/edge"
	"jobgate/internal/identity"
	"jobgate/internal/platform/config"
	"jobgate/internal/platform/metrics"
	"jobgate/internal/platform/middleware"
)

// Handler carries the long-lived dependencies. Session stores are built per
// request because credentials live in the request's cookie jar.
type Handler struct {
	cfg     config.Server
	client  identity.Client
	logger  *slog.Logger
	metrics *metrics.Metrics
}

func NewHandler(cfg config.Server, client identity.Client, logger *slog.Logger, m *metrics.Metrics) *Handler {
	return &Handler{
		cfg:     cfg,
		client:  client,
		logger:  logger,
		metrics: m,
	}
}

// NewRouter wires the session API, the gated page routes and the operational
// endpoints. The edge pre-check wraps only the page routes; the session API
// manages credentials and must stay reachable either way.
func NewRouter(h *Handler, logger *slog.Logger) (http.Handler, error) {
	edgeGate, err := edge.New(edge.Config{
		Protected: []string{"/profile", "/resumes", "/applications", "/employer"},
		Auth:      []string{"/login", "/register", "/forgot-password"},
		LoginPath: h.cfg.LoginPath,
		RootPath:  h.cfg.RootPath,
	})
	if err != nil {
		return nil, err
	}
	edgeMw := edge.NewMiddleware(edgeGate, h.cfg.Production,
		edge.WithLogger(logger),
		edge.WithMetrics(h.metrics),
	)

	r := chi.NewRouter()
	r.Use(middleware.Recovery(logger))
	r.Use(middleware.RequestID)
	r.Use(middleware.Logger(logger))

	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})
	r.Handle("/metrics", promhttp.Handler())

	r.Route("/session", func(r chi.Router) {
		r.Post("/login", h.handleLogin)
		r.Post("/logout", h.handleLogout)
		r.Post("/refresh", h.handleRefresh)
		r.Post("/role", h.handleRoleChange)
		r.Get("/", h.handleSession)
	})

	r.Group(func(r chi.Router) {
		r.Use(edgeMw.Handler)

		r.Get("/", h.page("home"))
		r.Get("/login", h.page("login"))
		r.Get("/register", h.page("register"))
		r.Get("/forgot-password", h.page("forgot-password"))

		r.Get("/profile", h.authGated("profile"))
		r.Get("/resumes", h.authGated("resumes"))
		r.Get("/applications", h.authGated("applications"))

		r.Get("/employer/dashboard", h.employerGated("employer-dashboard"))
		r.Get("/employer/jobs", h.employerGated("employer-jobs"))
		r.Get("/employer/jobs/new", h.employerGated("employer-job-new"))
		r.Get("/employer/verification", h.employerGated("employer-verification"))
	})

	c := cors.New(cors.Options{
		AllowedOrigins:   []string{"http://localhost:3000"},
		AllowedMethods:   []string{http.MethodGet, http.MethodPost},
		AllowedHeaders:   []string{"Content-Type", "X-Request-ID"},
		AllowCredentials: true,
	})
	return c.Handler(r), nil
}
