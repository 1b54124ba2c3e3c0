// Package credentials mirrors session credentials to a durable per-browser
// store. It is a dumb key/value layer: no token validation happens here.
package credentials

import "time"

// Entry names used across the gate. The edge gate reads the same storage by
// key, so these are a stable contract.
const (
	KeyAccessToken  = "access_token"
	KeyRefreshToken = "refresh_token"
	KeyUserData     = "user_data"
	KeyRedirectTo   = "redirect_to"
)

// DefaultTTL applies to credential entries when the caller does not override
// the expiration.
const DefaultTTL = 7 * 24 * time.Hour

// Store is a synchronous key/value mirror of the browser's durable storage.
// Writes are fire-and-forget; every Set and Clear is visible to the edge
// gate on the next request.
type Store interface {
	Get(key string) (string, bool)
	Set(key, value string, ttl time.Duration)
	Clear(key string)
	ClearAll()
}
