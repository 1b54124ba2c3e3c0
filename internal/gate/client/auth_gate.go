package client

import (
	"jobgate/internal/platform/metrics"
	"jobgate/internal/session"
)

// AuthGate guards screens that require any authenticated session. It is a
// second line of defense behind the edge pre-check, for state that resolves
// only after the page has started mounting.
type AuthGate struct {
	loginPath string
	metrics   *metrics.Metrics
}

func NewAuthGate(loginPath string, m *metrics.Metrics) *AuthGate {
	if loginPath == "" {
		loginPath = "/login"
	}
	return &AuthGate{loginPath: loginPath, metrics: m}
}

// Evaluate maps the session state onto Checking -> {Render, Redirect}.
// While the store is still loading the decision is pending; gates never
// finalize a terminal state before the first resolution completes.
func (g *AuthGate) Evaluate(st session.State) RenderDecision {
	d := g.evaluate(st)
	if g.metrics != nil {
		g.metrics.GateRenders.WithLabelValues("auth", d.Mode.String()).Inc()
	}
	return d
}

func (g *AuthGate) evaluate(st session.State) RenderDecision {
	if st.Loading {
		return RenderDecision{Mode: ModeChecking}
	}
	if !st.Authenticated {
		return RenderDecision{Mode: ModeRedirect, Location: g.loginPath}
	}
	return RenderDecision{Mode: ModeRender}
}
