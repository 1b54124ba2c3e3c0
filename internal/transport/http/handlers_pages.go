package httptransport

import (
	"net/http"

	"jobgate/internal/gate/client"
	"jobgate/internal/identity"
	"jobgate/internal/layout"
	"jobgate/internal/session"
)

// page serves an ungated screen. The session still resolves so the shell
// knows whether to show the logged-in chrome.
func (h *Handler) page(name string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		store, _ := h.sessionFor(w, r)
		_ = store.FetchUserData(r.Context())
		st := store.Snapshot()

		payload := map[string]any{"page": name, "authenticated": st.Authenticated}
		if st.User != nil {
			payload["user"] = st.User
		}
		writeJSON(w, http.StatusOK, payload)
	}
}

// authGated serves a screen behind the authentication gate.
func (h *Handler) authGated(name string) http.HandlerFunc {
	gate := client.NewAuthGate(h.cfg.LoginPath, h.metrics)
	return func(w http.ResponseWriter, r *http.Request) {
		store, _ := h.sessionFor(w, r)
		_ = store.FetchUserData(r.Context())

		h.renderDecision(w, r, name, gate.Evaluate(store.Snapshot()), store, nil)
	}
}

// employerGated serves a screen behind the employer role gate. The gate is
// per request: credentials live in the request's cookie jar, and the mount
// probe must see this request's tokens.
func (h *Handler) employerGated(name string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		store, creds := h.sessionFor(w, r)
		chrome := layout.NewSignal()
		gate := client.NewRoleGate(store, creds, h.client, client.RoleGateConfig{
			Required:        identity.RoleEmployer,
			LoginPath:       h.cfg.LoginPath,
			RootPath:        h.cfg.RootPath,
			DashboardPath:   h.cfg.EmployerDashboardPath,
			RemediationPath: "/employer/verification",
		},
			client.WithChromeSignal(chrome),
			client.WithLogger(h.logger),
			client.WithMetrics(h.metrics),
		)

		_ = store.FetchUserData(r.Context())

		d := gate.Evaluate(r.Context(), r.URL.Path)
		if d.Mode == client.ModeChecking {
			// Server-side rendering can wait out the verification fetch
			// instead of returning a spinner shell.
			if ch := gate.StatusResolved(); ch != nil {
				select {
				case <-ch:
					d = gate.Evaluate(r.Context(), r.URL.Path)
				case <-r.Context().Done():
				}
			}
		}

		h.renderDecision(w, r, name, d, store, chrome)
	}
}

// renderDecision is the single place a gate verdict becomes a response.
func (h *Handler) renderDecision(w http.ResponseWriter, r *http.Request, name string, d client.RenderDecision, store *session.Store, chrome *layout.Signal) {
	switch d.Mode {
	case client.ModeRedirect:
		http.Redirect(w, r, d.Location, http.StatusTemporaryRedirect)

	case client.ModeChecking:
		writeJSON(w, http.StatusOK, map[string]any{"page": name, "status": "checking"})

	case client.ModeRenderSuppressed:
		st := store.Snapshot()
		payload := map[string]any{
			"page":       name,
			"suppressed": true,
			"chrome":     chromeValue(chrome),
			"modal": map[string]any{
				"state":            d.Modal.State,
				"admin_notes":      d.Modal.AdminNotes,
				"remediation_path": d.Modal.RemediationPath,
			},
		}
		if st.User != nil {
			payload["user"] = st.User
		}
		writeJSON(w, http.StatusOK, payload)

	default:
		st := store.Snapshot()
		payload := map[string]any{"page": name, "chrome": chromeValue(chrome)}
		if st.User != nil {
			payload["user"] = st.User
		}
		writeJSON(w, http.StatusOK, payload)
	}
}

func chromeValue(chrome *layout.Signal) string {
	if chrome == nil {
		return layout.ChromeVisible.String()
	}
	return chrome.Get().String()
}
