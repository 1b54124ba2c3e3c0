package credentials

import (
	"net/http"
	"net/url"
	"time"
)

// CookieStore binds a Store to one request/response pair. Reads consult
// writes queued during this exchange first, then the request's cookie jar,
// so a Set is observable within the same request the way a browser-side
// write would be.
type CookieStore struct {
	r       *http.Request
	w       http.ResponseWriter
	secure  bool
	overlay map[string]*string // nil value marks a deletion
}

// NewCookieStore wraps the given exchange. Secure is set on every cookie in
// production-like environments only.
func NewCookieStore(w http.ResponseWriter, r *http.Request, secure bool) *CookieStore {
	return &CookieStore{
		r:       r,
		w:       w,
		secure:  secure,
		overlay: make(map[string]*string),
	}
}

func (s *CookieStore) Get(key string) (string, bool) {
	if v, ok := s.overlay[key]; ok {
		if v == nil {
			return "", false
		}
		return *v, true
	}
	cookie, err := s.r.Cookie(key)
	if err != nil || cookie.Value == "" {
		return "", false
	}
	if decoded, derr := url.QueryUnescape(cookie.Value); derr == nil {
		return decoded, true
	}
	return cookie.Value, true
}

func (s *CookieStore) Set(key, value string, ttl time.Duration) {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	v := value
	s.overlay[key] = &v
	// Values are URL-encoded on the wire; JSON snapshots contain bytes
	// that are not legal in a cookie value.
	http.SetCookie(s.w, &http.Cookie{
		Name:     key,
		Value:    url.QueryEscape(value),
		Path:     "/",
		MaxAge:   int(ttl.Seconds()),
		SameSite: http.SameSiteLaxMode,
		Secure:   s.secure,
	})
}

func (s *CookieStore) Clear(key string) {
	s.overlay[key] = nil
	http.SetCookie(s.w, &http.Cookie{
		Name:     key,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		SameSite: http.SameSiteLaxMode,
		Secure:   s.secure,
	})
}

func (s *CookieStore) ClearAll() {
	s.Clear(KeyAccessToken)
	s.Clear(KeyRefreshToken)
	s.Clear(KeyUserData)
}

var _ Store = (*CookieStore)(nil)
