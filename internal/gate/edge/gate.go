// Package edge is the pre-check that runs on every matched request before
// any screen renders. It sees only a session-presence signal and the
// requested path; richer state belongs to the client-resident gates.
package edge

// Action is the edge gate's verdict on a request.
type Action int

const (
	ActionPass Action = iota
	ActionRedirect
)

// Decision is the complete outcome of one edge evaluation: where to send
// the request and what to do with the stashed redirect intent. At most one
// intent exists at a time; setting overwrites, clearing deletes.
type Decision struct {
	Action      Action
	Location    string
	SetIntent   string
	ClearIntent bool
}

// Gate classifies paths into a protected set (requires a session) and an
// auth set (must be avoided by an existing session).
type Gate struct {
	protected *Matcher
	auth      *Matcher
	loginPath string
	rootPath  string
}

type Config struct {
	Protected []string
	Auth      []string
	LoginPath string
	RootPath  string
}

func New(cfg Config) (*Gate, error) {
	protected, err := NewMatcher(cfg.Protected...)
	if err != nil {
		return nil, err
	}
	auth, err := NewMatcher(cfg.Auth...)
	if err != nil {
		return nil, err
	}
	loginPath := cfg.LoginPath
	if loginPath == "" {
		loginPath = "/login"
	}
	rootPath := cfg.RootPath
	if rootPath == "" {
		rootPath = "/"
	}
	return &Gate{protected: protected, auth: auth, loginPath: loginPath, rootPath: rootPath}, nil
}

// Decide evaluates one request. It is total, performs no I/O, and its only
// side channel is the intent instruction carried in the decision:
//
//  1. protected path without a session signal: redirect to login, stash the
//     requested path for after login.
//  2. auth path with a session signal: redirect to the stashed intent (or
//     the site root) and consume the intent.
//  3. otherwise: pass through unmodified.
func (g *Gate) Decide(requestedPath string, hasToken bool, intent string) Decision {
	if g.protected.Matches(requestedPath) && !hasToken {
		return Decision{
			Action:    ActionRedirect,
			Location:  g.loginPath,
			SetIntent: requestedPath,
		}
	}

	if g.auth.Matches(requestedPath) && hasToken {
		target := intent
		if target == "" {
			target = g.rootPath
		}
		return Decision{
			Action:      ActionRedirect,
			Location:    target,
			ClearIntent: true,
		}
	}

	return Decision{Action: ActionPass}
}
