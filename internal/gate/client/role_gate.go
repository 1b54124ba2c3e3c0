package client

import (
	"context"
	"log/slog"
	"sync"

	"jobgate/internal/credentials"
	"jobgate/internal/identity"
	"jobgate/internal/layout"
	"jobgate/internal/platform/metrics"
	"jobgate/internal/session"
)

// RoleGate specializes AuthGate for one role whose full access additionally
// depends on an asynchronous three-state verification status. One RoleGate
// corresponds to one mount; remounting means constructing a new gate.
type RoleGate struct {
	store    *session.Store
	creds    credentials.Store
	verifier identity.Client
	required identity.Role

	loginPath       string
	rootPath        string
	dashboardPath   string
	remediationPath string

	chrome  *layout.Signal
	logger  *slog.Logger
	metrics *metrics.Metrics

	mu sync.Mutex
	// sawInitialToken records whether a token existed when the gate
	// mounted. A session that held a token before mount must not bounce
	// through the login redirect just because re-validation is still
	// in flight.
	sawInitialToken bool
	status          *identity.VerificationStatus
	statusEpoch     uint64
	fetching        bool
	fetchFailed     bool
	fetchDone       chan struct{}
}

// RoleGateConfig wires one gated area.
type RoleGateConfig struct {
	Required        identity.Role
	LoginPath       string
	RootPath        string
	DashboardPath   string
	RemediationPath string
}

type RoleGateOption func(*RoleGate)

func WithChromeSignal(sig *layout.Signal) RoleGateOption {
	return func(g *RoleGate) { g.chrome = sig }
}

func WithLogger(logger *slog.Logger) RoleGateOption {
	return func(g *RoleGate) { g.logger = logger }
}

func WithMetrics(m *metrics.Metrics) RoleGateOption {
	return func(g *RoleGate) { g.metrics = m }
}

// NewRoleGate mounts a gate over the given session. The token-presence
// probe happens here, once, before any asynchronous resolution.
func NewRoleGate(store *session.Store, creds credentials.Store, verifier identity.Client, cfg RoleGateConfig, opts ...RoleGateOption) *RoleGate {
	g := &RoleGate{
		store:           store,
		creds:           creds,
		verifier:        verifier,
		required:        cfg.Required,
		loginPath:       cfg.LoginPath,
		rootPath:        cfg.RootPath,
		dashboardPath:   cfg.DashboardPath,
		remediationPath: cfg.RemediationPath,
	}
	if g.loginPath == "" {
		g.loginPath = "/login"
	}
	if g.rootPath == "" {
		g.rootPath = "/"
	}
	for _, opt := range opts {
		opt(g)
	}
	if g.logger == nil {
		g.logger = slog.Default()
	}

	_, g.sawInitialToken = creds.Get(credentials.KeyAccessToken)
	return g
}

// StatusResolved is closed when the in-flight verification fetch settles.
// Callers that got a Checking decision while a fetch was running can wait
// on it before re-evaluating. Nil when no fetch has started.
func (g *RoleGate) StatusResolved() <-chan struct{} {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.fetchDone
}

// Evaluate decides the render mode for the current path, in strict priority
// order once authentication has resolved:
//
//  1. never saw a token and not authenticated: redirect to login
//  2. wrong role: redirect to the site root
//  3. verification status unknown: begin the fetch, keep waiting
//  4. approved: render normally
//  5. pending or rejected: force-navigate to the dashboard and render the
//     content suppressed under a status modal
func (g *RoleGate) Evaluate(ctx context.Context, currentPath string) RenderDecision {
	d := g.evaluate(ctx, currentPath)
	if g.metrics != nil {
		g.metrics.GateRenders.WithLabelValues("role", d.Mode.String()).Inc()
	}
	if g.chrome != nil {
		if d.Mode == ModeRenderSuppressed {
			g.chrome.Set(layout.ChromeHidden)
		} else {
			g.chrome.Set(layout.ChromeVisible)
		}
	}
	return d
}

func (g *RoleGate) evaluate(ctx context.Context, currentPath string) RenderDecision {
	st := g.store.Snapshot()
	if st.Loading {
		return RenderDecision{Mode: ModeChecking}
	}

	if !st.Authenticated {
		if g.sawInitialToken {
			if _, stillThere := g.creds.Get(credentials.KeyAccessToken); stillThere {
				// Token held before mount and still present: the
				// async re-validation has not caught up. Wait
				// instead of flash-redirecting a logged-in user.
				return RenderDecision{Mode: ModeChecking}
			}
		}
		return RenderDecision{Mode: ModeRedirect, Location: g.loginPath}
	}

	if st.User == nil || st.User.Role != g.required {
		return RenderDecision{Mode: ModeRedirect, Location: g.rootPath}
	}

	g.mu.Lock()
	if g.status != nil && g.statusEpoch != g.store.Epoch() {
		// Session or role changed under us; the old status is void.
		g.status = nil
		g.fetching = false
		g.fetchFailed = false
	}
	status := g.status
	switch {
	case status == nil && !g.fetching && !g.fetchFailed:
		g.fetching = true
		g.fetchDone = make(chan struct{})
		done := g.fetchDone
		g.mu.Unlock()
		go g.fetchStatus(ctx, done)
		return RenderDecision{Mode: ModeChecking}
	case status == nil:
		// In flight, or failed: stay on the waiting indicator. A failed
		// fetch is never retried and surfaces no error.
		g.mu.Unlock()
		return RenderDecision{Mode: ModeChecking}
	}
	g.mu.Unlock()

	if g.metrics != nil {
		g.metrics.VerificationOutcomes.WithLabelValues(status.State.String()).Inc()
	}

	switch status.State {
	case identity.VerificationApproved:
		return RenderDecision{Mode: ModeRender}
	case identity.VerificationPending, identity.VerificationRejected:
		modal := &StatusModal{
			State:           status.State,
			AdminNotes:      status.AdminNotes,
			RemediationPath: g.remediationPath,
		}
		if g.dashboardPath != "" && currentPath != g.dashboardPath {
			return RenderDecision{Mode: ModeRedirect, Location: g.dashboardPath, Modal: modal}
		}
		return RenderDecision{Mode: ModeRenderSuppressed, Modal: modal}
	}
	// Unreachable: the enum is validated at decode time.
	return RenderDecision{Mode: ModeChecking}
}

func (g *RoleGate) fetchStatus(ctx context.Context, done chan struct{}) {
	defer close(done)

	accessToken, _ := g.creds.Get(credentials.KeyAccessToken)
	epoch := g.store.Epoch()

	status, err := g.verifier.EmployerVerificationStatus(ctx, accessToken)

	g.mu.Lock()
	defer g.mu.Unlock()
	g.fetching = false
	if err != nil {
		g.fetchFailed = true
		g.logger.WarnContext(ctx, "verification status fetch failed, gate stays waiting", "error", err)
		return
	}
	g.status = status
	g.statusEpoch = epoch
	g.logger.InfoContext(ctx, "verification status resolved", "state", status.State.String())
}
