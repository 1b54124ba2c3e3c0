// Package client holds the client-resident gates that re-evaluate access as
// session state resolves after the edge pre-check has let a request through.
// Gates decide, they do not draw: each evaluation yields a RenderDecision
// that the rendering layer translates into output.
package client

import "jobgate/internal/identity"

// Mode is what the gate wants rendered right now.
type Mode int

const (
	// ModeChecking renders a neutral waiting indicator and nothing else.
	ModeChecking Mode = iota

	// ModeRender renders the wrapped content unconditionally.
	ModeRender

	// ModeRedirect navigates away and renders nothing.
	ModeRedirect

	// ModeRenderSuppressed renders the wrapped content dimmed and
	// non-interactive underneath a status modal.
	ModeRenderSuppressed
)

func (m Mode) String() string {
	switch m {
	case ModeChecking:
		return "checking"
	case ModeRender:
		return "render"
	case ModeRedirect:
		return "redirect"
	case ModeRenderSuppressed:
		return "render_suppressed"
	}
	return "unknown"
}

// StatusModal describes the overlay shown over suppressed content: why the
// user is blocked and where the remediation action leads.
type StatusModal struct {
	State           identity.VerificationState
	AdminNotes      string
	RemediationPath string
}

// RenderDecision is one gate verdict.
type RenderDecision struct {
	Mode     Mode
	Location string
	Modal    *StatusModal
}
