package identity

import "context"

// TokenPair is the access/refresh token pair issued by the identity endpoint.
type TokenPair struct {
	Access  string `json:"access"`
	Refresh string `json:"refresh"`
}

// Client is the remote identity endpoint consumed by the session store and
// the role verification gate. Implementations map transport failures to
// domain error codes:
//
//   - unreachable endpoint / timeout -> CodeNetwork
//   - 401-equivalent on any authenticated call -> CodeAuthRejected
//   - rejected credentials at login -> CodeValidation
//   - any failure fetching verification status -> CodeVerificationFetch
type Client interface {
	// Login exchanges credentials for a token pair and the user record.
	Login(ctx context.Context, identifier, secret string) (TokenPair, *UserRecord, error)

	// RefreshToken exchanges a refresh token for a fresh token pair.
	RefreshToken(ctx context.Context, refreshToken string) (TokenPair, error)

	// Me fetches the current user snapshot.
	Me(ctx context.Context, accessToken string) (*UserRecord, error)

	// UpdateRole round-trips a role change and returns the updated record.
	UpdateRole(ctx context.Context, accessToken string, role Role) (*UserRecord, error)

	// EmployerVerificationStatus fetches the employer's three-state
	// verification outcome.
	EmployerVerificationStatus(ctx context.Context, accessToken string) (*VerificationStatus, error)
}
