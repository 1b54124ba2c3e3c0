package edge

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"jobgate/internal/credentials"
)

func testMiddleware(t *testing.T, secure bool) http.Handler {
	t.Helper()
	mw := NewMiddleware(testGate(t), secure)
	return mw.Handler(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("page"))
	}))
}

func findCookie(t *testing.T, resp *http.Response, name string) *http.Cookie {
	t.Helper()
	for _, c := range resp.Cookies() {
		if c.Name == name {
			return c
		}
	}
	return nil
}

func TestUnauthenticatedProtectedRequestStashesIntent(t *testing.T) {
	r := httptest.NewRequest(http.MethodGet, "/dashboard", nil)
	w := httptest.NewRecorder()

	testMiddleware(t, false).ServeHTTP(w, r)
	resp := w.Result()

	assert.Equal(t, http.StatusTemporaryRedirect, resp.StatusCode)
	assert.Equal(t, "/login", resp.Header.Get("Location"))

	intent := findCookie(t, resp, credentials.KeyRedirectTo)
	require.NotNil(t, intent)
	decoded, err := url.QueryUnescape(intent.Value)
	require.NoError(t, err)
	assert.Equal(t, "/dashboard", decoded)
	assert.Equal(t, 300, intent.MaxAge)
	assert.Equal(t, "/", intent.Path)
	assert.Equal(t, http.SameSiteLaxMode, intent.SameSite)
	assert.False(t, intent.Secure)
}

func TestIntentCookieSecureInProduction(t *testing.T) {
	r := httptest.NewRequest(http.MethodGet, "/dashboard", nil)
	w := httptest.NewRecorder()

	testMiddleware(t, true).ServeHTTP(w, r)

	intent := findCookie(t, w.Result(), credentials.KeyRedirectTo)
	require.NotNil(t, intent)
	assert.True(t, intent.Secure)
}

func TestAuthenticatedLoginVisitConsumesIntent(t *testing.T) {
	r := httptest.NewRequest(http.MethodGet, "/login", nil)
	r.AddCookie(&http.Cookie{Name: credentials.KeyAccessToken, Value: "acc-1"})
	r.AddCookie(&http.Cookie{Name: credentials.KeyRedirectTo, Value: url.QueryEscape("/dashboard")})
	w := httptest.NewRecorder()

	testMiddleware(t, false).ServeHTTP(w, r)
	resp := w.Result()

	assert.Equal(t, http.StatusTemporaryRedirect, resp.StatusCode)
	assert.Equal(t, "/dashboard", resp.Header.Get("Location"))

	intent := findCookie(t, resp, credentials.KeyRedirectTo)
	require.NotNil(t, intent, "deletion cookie must be sent")
	assert.Equal(t, -1, intent.MaxAge)
}

func TestAuthenticatedLoginVisitWithoutIntentGoesToRoot(t *testing.T) {
	r := httptest.NewRequest(http.MethodGet, "/login", nil)
	r.AddCookie(&http.Cookie{Name: credentials.KeyAccessToken, Value: "acc-1"})
	w := httptest.NewRecorder()

	testMiddleware(t, false).ServeHTTP(w, r)
	resp := w.Result()

	assert.Equal(t, http.StatusTemporaryRedirect, resp.StatusCode)
	assert.Equal(t, "/", resp.Header.Get("Location"))
}

func TestPassThroughServesPage(t *testing.T) {
	r := httptest.NewRequest(http.MethodGet, "/dashboard", nil)
	r.AddCookie(&http.Cookie{Name: credentials.KeyAccessToken, Value: "acc-1"})
	w := httptest.NewRecorder()

	testMiddleware(t, false).ServeHTTP(w, r)
	resp := w.Result()

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Empty(t, resp.Cookies(), "pass-through must not touch cookies")
}

// Full detour: blocked visit stashes the intent, then a post-login visit to
// the auth path replays and consumes it.
func TestLoginDetourRoundTrip(t *testing.T) {
	handler := testMiddleware(t, false)

	r := httptest.NewRequest(http.MethodGet, "/dashboard", nil)
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, r)

	intent := findCookie(t, w.Result(), credentials.KeyRedirectTo)
	require.NotNil(t, intent)

	// The visitor logs in (access token appears), then hits /login again.
	r2 := httptest.NewRequest(http.MethodGet, "/login", nil)
	r2.AddCookie(&http.Cookie{Name: credentials.KeyAccessToken, Value: "acc-1"})
	r2.AddCookie(&http.Cookie{Name: credentials.KeyRedirectTo, Value: intent.Value})
	w2 := httptest.NewRecorder()
	handler.ServeHTTP(w2, r2)

	resp := w2.Result()
	assert.Equal(t, "/dashboard", resp.Header.Get("Location"))
	cleared := findCookie(t, resp, credentials.KeyRedirectTo)
	require.NotNil(t, cleared)
	assert.Equal(t, -1, cleared.MaxAge, "redirect intent is now absent")
}
