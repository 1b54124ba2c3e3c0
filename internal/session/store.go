// Package session holds the single source of truth for "am I logged in, and
// as whom". It coordinates the credential store and the remote identity
// endpoint, and exposes passive state that gates consume.
package session

import (
	"context"
	"encoding/json"
	"log/slog"
	"sync"
	"time"

	"golang.org/x/sync/singleflight"

	"jobgate/internal/credentials"
	"jobgate/internal/identity"
	"jobgate/internal/platform/metrics"
	"jobgate/internal/token"
	dErrors "jobgate/pkg/domain-errors"
)

// InitState tracks process-wide initialization explicitly, instead of a
// global boolean. Logout resets it, so re-login re-triggers initialization.
type InitState int

const (
	InitUninitialized InitState = iota
	InitInitializing
	InitReady
)

// State is the passive session state gates observe. Loading is true only
// during the very first resolution; background refreshes never flip it back,
// so rendered screens do not flash a loading state.
type State struct {
	Loading       bool
	Authenticated bool
	User          *identity.UserRecord
	Err           string
}

const (
	// fetchThrottle is the minimum interval between snapshot fetches.
	// Calls inside the window since the last successful fetch are no-ops.
	fetchThrottle = 30 * time.Second

	// refreshWindow marks an access token stale when it expires this soon.
	refreshWindow = time.Minute
)

// Store owns the session. All mutation goes through its operations; gates
// only read snapshots.
type Store struct {
	creds   credentials.Store
	client  identity.Client
	logger  *slog.Logger
	metrics *metrics.Metrics
	clock   func() time.Time

	credTTL  time.Duration
	throttle time.Duration
	device   Device

	mu        sync.Mutex
	state     State
	initState InitState
	lastFetch time.Time
	epoch     uint64

	flight      singleflight.Group
	readyCh     chan struct{}
	readyClosed bool
}

type Option func(*Store)

func WithLogger(logger *slog.Logger) Option {
	return func(s *Store) { s.logger = logger }
}

func WithMetrics(m *metrics.Metrics) Option {
	return func(s *Store) { s.metrics = m }
}

func WithClock(now func() time.Time) Option {
	return func(s *Store) { s.clock = now }
}

// WithCredentialTTL overrides the 7 day default applied to persisted entries.
func WithCredentialTTL(ttl time.Duration) Option {
	return func(s *Store) {
		if ttl > 0 {
			s.credTTL = ttl
		}
	}
}

// WithThrottleWindow overrides the fetch throttle, mainly for tests.
func WithThrottleWindow(d time.Duration) Option {
	return func(s *Store) { s.throttle = d }
}

// WithUserAgent attaches device metadata parsed from the browser's
// User-Agent header to the session's log lines.
func WithUserAgent(userAgentString string) Option {
	return func(s *Store) { s.device = ParseDevice(userAgentString) }
}

// New constructs a Store warm-started from the credential store: a cached
// user snapshot seeds the state, but it is only trusted while an access
// token is present.
func New(creds credentials.Store, client identity.Client, opts ...Option) *Store {
	s := &Store{
		creds:    creds,
		client:   client,
		clock:    time.Now,
		credTTL:  credentials.DefaultTTL,
		throttle: fetchThrottle,
		device:   ParseDevice(""),
		readyCh:  make(chan struct{}),
		state:    State{Loading: true},
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.logger == nil {
		s.logger = slog.Default()
	}

	if _, hasToken := creds.Get(credentials.KeyAccessToken); hasToken {
		if raw, ok := creds.Get(credentials.KeyUserData); ok {
			var cached identity.UserRecord
			if err := json.Unmarshal([]byte(raw), &cached); err == nil && cached.Role.IsValid() {
				s.state.User = &cached
				s.state.Authenticated = true
			}
		}
	}
	return s
}

// Snapshot returns a copy of the current state.
func (s *Store) Snapshot() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	st := s.state
	if st.User != nil {
		user := *st.User
		st.User = &user
	}
	return st
}

// Ready is closed once the first session resolution completes, successfully
// or with a caught failure. Gates defer terminal decisions until then.
func (s *Store) Ready() <-chan struct{} {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.readyCh
}

// Epoch increments whenever the session identity changes (logout, role
// change). Gates use it to discard role-scoped state such as a cached
// verification status.
func (s *Store) Epoch() uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.epoch
}

// Login exchanges credentials for a session. On success both tokens and the
// user snapshot are persisted and the fetch clock is stamped, so the
// gate-triggered fetch right after login is a no-op. On failure nothing is
// mutated and the error is surfaced for inline display.
func (s *Store) Login(ctx context.Context, identifier, secret string) (identity.Session, error) {
	tokens, user, err := s.client.Login(ctx, identifier, secret)
	if err != nil {
		if s.metrics != nil {
			s.metrics.LoginFailures.Inc()
		}
		s.logger.WarnContext(ctx, "login rejected", "error", err)
		return identity.Session{}, err
	}

	s.persistSession(tokens, user)

	s.mu.Lock()
	s.state = State{Authenticated: true, User: user}
	s.initState = InitReady
	s.lastFetch = s.clock()
	s.mu.Unlock()
	s.markReady()

	s.logger.InfoContext(ctx, "login succeeded",
		"user_id", user.ID,
		"role", user.Role.String(),
		"device", s.device.String(),
		"device_fingerprint", s.device.Fingerprint(),
	)
	return identity.Session{AccessToken: tokens.Access, RefreshToken: tokens.Refresh, User: user}, nil
}

// Logout clears persisted credentials and resets in-memory state. It does
// not navigate; callers decide redirect behavior. The init state returns to
// Uninitialized so a later login re-initializes properly.
func (s *Store) Logout(ctx context.Context) {
	s.creds.ClearAll()

	s.mu.Lock()
	s.state = State{}
	s.initState = InitUninitialized
	s.lastFetch = time.Time{}
	s.epoch++
	s.readyCh = make(chan struct{})
	s.readyClosed = false
	s.mu.Unlock()

	s.logger.InfoContext(ctx, "session cleared")
}

// FetchUserData re-fetches the user snapshot, throttled: calls within the
// throttle window of the last successful fetch resolve immediately without
// a network call. Concurrent callers outside the window share one round
// trip.
func (s *Store) FetchUserData(ctx context.Context) error {
	s.mu.Lock()
	throttled := !s.lastFetch.IsZero() && s.clock().Sub(s.lastFetch) < s.throttle
	s.mu.Unlock()
	if throttled {
		if s.metrics != nil {
			s.metrics.ThrottledFetches.Inc()
		}
		s.logger.DebugContext(ctx, "fetch skipped inside throttle window")
		return nil
	}
	return s.resolve(ctx)
}

// RefreshUserData is the user-triggered variant: it bypasses the throttle
// and guarantees a round trip (still shared with concurrent callers).
func (s *Store) RefreshUserData(ctx context.Context) error {
	return s.resolve(ctx)
}

// resolve performs one shared session resolution: validate or refresh the
// token, then fetch the user snapshot. Network failures keep the last-known
// state; an authoritative rejection forces logout.
func (s *Store) resolve(ctx context.Context) error {
	s.mu.Lock()
	if s.initState == InitUninitialized {
		s.initState = InitInitializing
	}
	s.mu.Unlock()

	_, err, shared := s.flight.Do("resolve", func() (any, error) {
		return nil, s.doResolve(ctx)
	})
	if shared {
		if s.metrics != nil {
			s.metrics.SharedFetches.Inc()
		}
		s.logger.DebugContext(ctx, "fetch joined in-flight round trip")
	}
	return err
}

func (s *Store) doResolve(ctx context.Context) error {
	ok, err := s.ValidateAndRefreshTokenIfNeeded(ctx)
	if err != nil {
		s.settleError(err)
		return nil
	}
	if !ok {
		s.settleUnauthenticated()
		return nil
	}

	accessToken, _ := s.creds.Get(credentials.KeyAccessToken)
	if s.metrics != nil {
		s.metrics.SessionFetches.Inc()
	}

	user, err := s.client.Me(ctx, accessToken)
	if err != nil {
		if dErrors.HasCode(err, dErrors.CodeAuthRejected) {
			s.forceLogout(ctx)
			return nil
		}
		if s.metrics != nil {
			s.metrics.SessionFetchErrors.Inc()
		}
		s.logger.WarnContext(ctx, "user snapshot fetch failed, keeping last-known state", "error", err)
		s.settleError(err)
		return nil
	}

	raw, merr := json.Marshal(user)
	if merr == nil {
		s.creds.Set(credentials.KeyUserData, string(raw), s.credTTL)
	}

	s.mu.Lock()
	s.state = State{Authenticated: true, User: user}
	s.initState = InitReady
	s.lastFetch = s.clock()
	s.mu.Unlock()
	s.markReady()
	return nil
}

// ValidateAndRefreshTokenIfNeeded checks local token presence and expiry; a
// stale access token with a refresh token available is exchanged for a new
// pair. When no valid token can be produced it reports false without error.
func (s *Store) ValidateAndRefreshTokenIfNeeded(ctx context.Context) (bool, error) {
	accessToken, hasAccess := s.creds.Get(credentials.KeyAccessToken)
	refreshToken, hasRefresh := s.creds.Get(credentials.KeyRefreshToken)

	if hasAccess {
		claims, err := token.Inspect(accessToken)
		if err != nil {
			// Opaque tokens carry no local expiry; let the server judge.
			return true, nil
		}
		if !claims.ExpiresWithin(refreshWindow) {
			return true, nil
		}
	}
	if !hasRefresh {
		return false, nil
	}

	tokens, err := s.client.RefreshToken(ctx, refreshToken)
	if err != nil {
		if dErrors.HasCode(err, dErrors.CodeAuthRejected) {
			s.creds.ClearAll()
			return false, nil
		}
		s.logger.WarnContext(ctx, "token refresh failed", "error", err)
		return false, err
	}

	s.creds.Set(credentials.KeyAccessToken, tokens.Access, s.credTTL)
	if tokens.Refresh != "" {
		s.creds.Set(credentials.KeyRefreshToken, tokens.Refresh, s.credTTL)
	}
	return true, nil
}

// UpdateUserType round-trips a role change. On success the user record is
// replaced and the epoch bumped, so any role-scoped state held by gates is
// discarded.
func (s *Store) UpdateUserType(ctx context.Context, role identity.Role) (*identity.UserRecord, error) {
	accessToken, ok := s.creds.Get(credentials.KeyAccessToken)
	if !ok {
		return nil, dErrors.New(dErrors.CodeAuthRejected, "no session")
	}

	user, err := s.client.UpdateRole(ctx, accessToken, role)
	if err != nil {
		if dErrors.HasCode(err, dErrors.CodeAuthRejected) {
			s.forceLogout(ctx)
		}
		return nil, err
	}

	if raw, merr := json.Marshal(user); merr == nil {
		s.creds.Set(credentials.KeyUserData, string(raw), s.credTTL)
	}

	s.mu.Lock()
	s.state.User = user
	s.state.Authenticated = true
	s.state.Err = ""
	s.epoch++
	s.mu.Unlock()

	s.logger.InfoContext(ctx, "role changed", "user_id", user.ID, "role", user.Role.String())
	return user, nil
}

// forceLogout handles an authoritative unauthenticated response during an
// authenticated call. Callers redirect; the store only invalidates.
func (s *Store) forceLogout(ctx context.Context) {
	if s.metrics != nil {
		s.metrics.ForcedLogouts.Inc()
	}
	s.logger.WarnContext(ctx, "session rejected by identity endpoint, logging out")

	s.creds.ClearAll()
	s.mu.Lock()
	s.state = State{Err: "session expired"}
	s.initState = InitReady
	s.mu.Unlock()
	s.markReady()
}

func (s *Store) settleUnauthenticated() {
	s.mu.Lock()
	s.state = State{}
	s.initState = InitReady
	s.mu.Unlock()
	s.markReady()
}

// settleError records a simplified error string and keeps the last-known
// user state. The first resolution still completes so gates stop waiting.
func (s *Store) settleError(err error) {
	s.mu.Lock()
	s.state.Loading = false
	s.state.Err = err.Error()
	s.initState = InitReady
	s.mu.Unlock()
	s.markReady()
}

func (s *Store) persistSession(tokens identity.TokenPair, user *identity.UserRecord) {
	s.creds.Set(credentials.KeyAccessToken, tokens.Access, s.credTTL)
	s.creds.Set(credentials.KeyRefreshToken, tokens.Refresh, s.credTTL)
	if raw, err := json.Marshal(user); err == nil {
		s.creds.Set(credentials.KeyUserData, string(raw), s.credTTL)
	}
}

func (s *Store) markReady() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.readyClosed {
		close(s.readyCh)
		s.readyClosed = true
	}
}
