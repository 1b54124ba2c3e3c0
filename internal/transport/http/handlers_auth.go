package httptransport

import (
	"encoding/json"
	"net/http"

	"jobgate/internal/credentials"
	"jobgate/internal/identity"
	"jobgate/internal/session"
	dErrors "jobgate/pkg/domain-errors"
)

// sessionFor builds the session store bound to this exchange's cookie jar.
func (h *Handler) sessionFor(w http.ResponseWriter, r *http.Request) (*session.Store, credentials.Store) {
	creds := credentials.NewCookieStore(w, r, h.cfg.Production)
	store := session.New(creds, h.client,
		session.WithLogger(h.logger),
		session.WithMetrics(h.metrics),
		session.WithCredentialTTL(h.cfg.CredentialTTL),
		session.WithUserAgent(r.UserAgent()),
	)
	return store, creds
}

type loginRequest struct {
	Identifier string `json:"identifier"`
	Secret     string `json:"secret"`
}

func (h *Handler) handleLogin(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Identifier == "" || req.Secret == "" {
		writeError(w, dErrors.New(dErrors.CodeValidation, "identifier and secret are required"))
		return
	}

	store, _ := h.sessionFor(w, r)
	sess, err := store.Login(r.Context(), req.Identifier, req.Secret)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"user": sess.User})
}

func (h *Handler) handleLogout(w http.ResponseWriter, r *http.Request) {
	store, _ := h.sessionFor(w, r)
	store.Logout(r.Context())
	writeJSON(w, http.StatusOK, map[string]string{"status": "logged_out"})
}

// handleRefresh is the user-triggered refetch; it bypasses the throttle.
func (h *Handler) handleRefresh(w http.ResponseWriter, r *http.Request) {
	store, _ := h.sessionFor(w, r)
	if err := store.RefreshUserData(r.Context()); err != nil {
		writeError(w, err)
		return
	}
	writeSnapshot(w, store.Snapshot())
}

type roleChangeRequest struct {
	Role string `json:"role"`
}

func (h *Handler) handleRoleChange(w http.ResponseWriter, r *http.Request) {
	var req roleChangeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, dErrors.New(dErrors.CodeValidation, "malformed body"))
		return
	}
	role, err := identity.ParseRole(req.Role)
	if err != nil {
		writeError(w, err)
		return
	}

	store, _ := h.sessionFor(w, r)
	user, err := store.UpdateUserType(r.Context(), role)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"user": user})
}

func (h *Handler) handleSession(w http.ResponseWriter, r *http.Request) {
	store, _ := h.sessionFor(w, r)
	if err := store.FetchUserData(r.Context()); err != nil {
		writeError(w, err)
		return
	}
	writeSnapshot(w, store.Snapshot())
}

func writeSnapshot(w http.ResponseWriter, st session.State) {
	payload := map[string]any{"authenticated": st.Authenticated}
	if st.User != nil {
		payload["user"] = st.User
	}
	if st.Err != "" {
		payload["error"] = st.Err
	}
	writeJSON(w, http.StatusOK, payload)
}
