// A self-contained identity endpoint for local gateway development. It
// speaks the same wire contract as the production identity service: short
// role and verification codes, bearer-token protected snapshot endpoints,
// and a refresh exchange. State lives in memory and resets on restart.
package main

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"golang.org/x/time/rate"
)

const accessTokenTTL = 15 * time.Minute

type account struct {
	ID           string
	FullName     string
	Phone        string
	Email        string
	Role         string // short code: JS, EM, AD, SU
	PasswordHash []byte

	// Employer-only verification record, short code: P, A, R.
	VerificationStatus   string
	HasCompleteDocuments bool
	AdminNotes           string
	DecidedAt            *time.Time
}

type server struct {
	signingKey []byte
	logger     *slog.Logger

	mu            sync.Mutex
	accounts      map[string]*account // by ID
	byPhone       map[string]*account
	refreshTokens map[string]string // refresh token -> account ID
	loginLimiters map[string]*rate.Limiter
}

func main() {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))

	srv := &server{
		signingKey:    []byte(getenv("JWT_SIGNING_KEY", "dev-secret-key-change-in-production")),
		logger:        logger,
		accounts:      make(map[string]*account),
		byPhone:       make(map[string]*account),
		refreshTokens: make(map[string]string),
		loginLimiters: make(map[string]*rate.Limiter),
	}
	srv.seed()

	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})
	r.Route("/auth", func(r chi.Router) {
		r.Post("/login", srv.handleLogin)
		r.Post("/token/refresh", srv.handleRefresh)
		r.Get("/me", srv.handleMe)
		r.Patch("/me/role", srv.handleUpdateRole)
		r.Get("/employer-verification-status", srv.handleVerificationStatus)
	})
	// Unprotected by design: this server only ever runs on a developer
	// machine, and flipping statuses by hand is the whole point.
	r.Post("/admin/employer-verification", srv.handleAdminVerification)

	addr := ":" + getenv("PORT", "8000")
	logger.Info("lab identity server listening", "addr", addr)
	httpSrv := &http.Server{
		Addr:              addr,
		Handler:           r,
		ReadHeaderTimeout: 5 * time.Second,
	}
	if err := httpSrv.ListenAndServe(); err != nil {
		logger.Error("server stopped", "error", err)
		os.Exit(1)
	}
}

// seed installs one account per interesting gateway scenario. Every account
// uses the password "secret".
func (s *server) seed() {
	hash, err := bcrypt.GenerateFromPassword([]byte("secret"), bcrypt.MinCost)
	if err != nil {
		panic(err)
	}
	decided := time.Now().Add(-48 * time.Hour)

	seeds := []*account{
		{FullName: "Sara Mohammadi", Phone: "09120000001", Email: "sara@example.com", Role: "JS"},
		{FullName: "Pars Steel Co", Phone: "09120000002", Email: "hiring@parssteel.example.com", Role: "EM",
			VerificationStatus: "P", HasCompleteDocuments: true},
		{FullName: "Arman Logistics", Phone: "09120000003", Email: "jobs@armanlog.example.com", Role: "EM",
			VerificationStatus: "A", HasCompleteDocuments: true, DecidedAt: &decided},
		{FullName: "Unknown Trading", Phone: "09120000004", Email: "info@unknown.example.com", Role: "EM",
			VerificationStatus: "R", AdminNotes: "registration document is unreadable", DecidedAt: &decided},
		{FullName: "Site Admin", Phone: "09120000009", Email: "admin@example.com", Role: "AD"},
	}
	for _, a := range seeds {
		a.ID = uuid.NewString()
		a.PasswordHash = hash
		s.accounts[a.ID] = a
		s.byPhone[a.Phone] = a
	}
}

type loginRequest struct {
	Identifier string `json:"identifier"`
	Secret     string `json:"secret"`
}

func (s *server) handleLogin(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Identifier == "" {
		writeError(w, http.StatusBadRequest, "identifier and secret are required")
		return
	}

	if !s.limiterFor(req.Identifier).Allow() {
		s.logger.Warn("login throttled", "identifier", req.Identifier)
		writeError(w, http.StatusTooManyRequests, "too many login attempts")
		return
	}

	s.mu.Lock()
	acct := s.byPhone[req.Identifier]
	s.mu.Unlock()
	if acct == nil || bcrypt.CompareHashAndPassword(acct.PasswordHash, []byte(req.Secret)) != nil {
		writeError(w, http.StatusUnauthorized, "invalid credentials")
		return
	}

	access, refresh, err := s.issueTokens(acct)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "token issue failed")
		return
	}

	s.logger.Info("login", "account", acct.ID, "role", acct.Role)
	writeJSON(w, http.StatusOK, map[string]any{
		"tokens": map[string]string{"access": access, "refresh": refresh},
		"user":   userPayload(acct),
	})
}

type refreshRequest struct {
	Refresh string `json:"refresh"`
}

func (s *server) handleRefresh(w http.ResponseWriter, r *http.Request) {
	var req refreshRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Refresh == "" {
		writeError(w, http.StatusBadRequest, "refresh token is required")
		return
	}

	s.mu.Lock()
	accountID, ok := s.refreshTokens[req.Refresh]
	if ok {
		// Single use: the exchange rotates the refresh token.
		delete(s.refreshTokens, req.Refresh)
	}
	acct := s.accounts[accountID]
	s.mu.Unlock()

	if !ok || acct == nil {
		writeError(w, http.StatusUnauthorized, "refresh token rejected")
		return
	}

	access, refresh, err := s.issueTokens(acct)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "token issue failed")
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"access": access, "refresh": refresh})
}

func (s *server) handleMe(w http.ResponseWriter, r *http.Request) {
	acct := s.authenticate(r)
	if acct == nil {
		writeError(w, http.StatusUnauthorized, "unauthenticated")
		return
	}
	writeJSON(w, http.StatusOK, userPayload(acct))
}

type updateRoleRequest struct {
	Role string `json:"role"`
}

func (s *server) handleUpdateRole(w http.ResponseWriter, r *http.Request) {
	acct := s.authenticate(r)
	if acct == nil {
		writeError(w, http.StatusUnauthorized, "unauthenticated")
		return
	}

	var req updateRoleRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "malformed body")
		return
	}
	code, ok := roleCode(req.Role)
	if !ok {
		writeError(w, http.StatusBadRequest, fmt.Sprintf("unknown role %q", req.Role))
		return
	}

	s.mu.Lock()
	acct.Role = code
	if code == "EM" && acct.VerificationStatus == "" {
		// A fresh employer starts unreviewed.
		acct.VerificationStatus = "P"
	}
	s.mu.Unlock()

	s.logger.Info("role changed", "account", acct.ID, "role", code)
	writeJSON(w, http.StatusOK, userPayload(acct))
}

func (s *server) handleVerificationStatus(w http.ResponseWriter, r *http.Request) {
	acct := s.authenticate(r)
	if acct == nil {
		writeError(w, http.StatusUnauthorized, "unauthenticated")
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if acct.Role != "EM" {
		writeError(w, http.StatusBadRequest, "account is not an employer")
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"verification_status":    acct.VerificationStatus,
		"has_complete_documents": acct.HasCompleteDocuments,
		"admin_notes":            acct.AdminNotes,
		"decided_at":             acct.DecidedAt,
	})
}

type adminVerificationRequest struct {
	Phone      string `json:"phone"`
	Status     string `json:"status"` // P, A or R
	AdminNotes string `json:"admin_notes"`
}

// handleAdminVerification lets a developer move an employer through the
// review states without restarting the server.
func (s *server) handleAdminVerification(w http.ResponseWriter, r *http.Request) {
	var req adminVerificationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "malformed body")
		return
	}
	if req.Status != "P" && req.Status != "A" && req.Status != "R" {
		writeError(w, http.StatusBadRequest, fmt.Sprintf("unknown status %q", req.Status))
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	acct := s.byPhone[req.Phone]
	if acct == nil || acct.Role != "EM" {
		writeError(w, http.StatusNotFound, "no employer account with that phone")
		return
	}
	now := time.Now()
	acct.VerificationStatus = req.Status
	acct.AdminNotes = req.AdminNotes
	acct.DecidedAt = &now

	s.logger.Info("verification status set", "account", acct.ID, "status", req.Status)
	writeJSON(w, http.StatusOK, map[string]string{"status": req.Status})
}

func (s *server) issueTokens(acct *account) (access, refresh string, err error) {
	now := time.Now()
	claims := jwt.RegisteredClaims{
		Subject:   acct.ID,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(accessTokenTTL)),
	}
	access, err = jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.signingKey)
	if err != nil {
		return "", "", err
	}

	refresh = uuid.NewString()
	s.mu.Lock()
	s.refreshTokens[refresh] = acct.ID
	s.mu.Unlock()
	return access, refresh, nil
}

// authenticate resolves the bearer token to an account, or nil.
func (s *server) authenticate(r *http.Request) *account {
	raw := bearerToken(r.Header.Get("Authorization"))
	if raw == "" {
		return nil
	}

	parsed, err := jwt.ParseWithClaims(raw, &jwt.RegisteredClaims{}, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
		}
		return s.signingKey, nil
	})
	if err != nil || !parsed.Valid {
		return nil
	}
	claims, ok := parsed.Claims.(*jwt.RegisteredClaims)
	if !ok {
		return nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	return s.accounts[claims.Subject]
}

// limiterFor throttles login attempts per identifier: a small burst, then
// one attempt every few seconds.
func (s *server) limiterFor(identifier string) *rate.Limiter {
	s.mu.Lock()
	defer s.mu.Unlock()
	lim, ok := s.loginLimiters[identifier]
	if !ok {
		lim = rate.NewLimiter(rate.Every(5*time.Second), 5)
		s.loginLimiters[identifier] = lim
	}
	return lim
}

func userPayload(acct *account) map[string]any {
	return map[string]any{
		"id":        acct.ID,
		"full_name": acct.FullName,
		"phone":     acct.Phone,
		"email":     acct.Email,
		"role":      acct.Role,
	}
}

func roleCode(role string) (string, bool) {
	switch strings.ToLower(role) {
	case "js", "jobseeker":
		return "JS", true
	case "em", "employer":
		return "EM", true
	case "ad", "admin":
		return "AD", true
	case "su", "support":
		return "SU", true
	}
	return "", false
}

func bearerToken(value string) string {
	parts := strings.SplitN(value, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return ""
	}
	return strings.TrimSpace(parts[1])
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"error": message})
}

func getenv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
