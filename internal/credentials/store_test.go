package credentials

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCookieStoreRoundTrip(t *testing.T) {
	r := httptest.NewRequest(http.MethodGet, "/dashboard", nil)
	r.AddCookie(&http.Cookie{Name: KeyAccessToken, Value: "acc-1"})
	w := httptest.NewRecorder()

	store := NewCookieStore(w, r, false)

	got, ok := store.Get(KeyAccessToken)
	require.True(t, ok)
	assert.Equal(t, "acc-1", got)

	_, ok = store.Get(KeyRefreshToken)
	assert.False(t, ok)
}

func TestCookieStoreSetIsVisibleWithinExchange(t *testing.T) {
	r := httptest.NewRequest(http.MethodGet, "/", nil)
	w := httptest.NewRecorder()
	store := NewCookieStore(w, r, false)

	store.Set(KeyRefreshToken, "ref-1", time.Hour)

	got, ok := store.Get(KeyRefreshToken)
	require.True(t, ok)
	assert.Equal(t, "ref-1", got)

	cookies := w.Result().Cookies()
	require.Len(t, cookies, 1)
	assert.Equal(t, KeyRefreshToken, cookies[0].Name)
	assert.Equal(t, "ref-1", cookies[0].Value)
	assert.Equal(t, 3600, cookies[0].MaxAge)
	assert.Equal(t, "/", cookies[0].Path)
	assert.Equal(t, http.SameSiteLaxMode, cookies[0].SameSite)
	assert.False(t, cookies[0].Secure)
}

func TestCookieStoreEncodesUnsafeValues(t *testing.T) {
	r := httptest.NewRequest(http.MethodGet, "/", nil)
	w := httptest.NewRecorder()
	store := NewCookieStore(w, r, false)

	snapshot := `{"id":"u1","role":"employer"}`
	store.Set(KeyUserData, snapshot, time.Hour)

	got, ok := store.Get(KeyUserData)
	require.True(t, ok)
	assert.Equal(t, snapshot, got)

	cookies := w.Result().Cookies()
	require.Len(t, cookies, 1)
	assert.NotContains(t, cookies[0].Value, `"`)
}

func TestCookieStoreSecureInProduction(t *testing.T) {
	r := httptest.NewRequest(http.MethodGet, "/", nil)
	w := httptest.NewRecorder()
	store := NewCookieStore(w, r, true)

	store.Set(KeyAccessToken, "acc", 0)

	cookies := w.Result().Cookies()
	require.Len(t, cookies, 1)
	assert.True(t, cookies[0].Secure)
	// Zero TTL falls back to the 7 day default.
	assert.Equal(t, int(DefaultTTL.Seconds()), cookies[0].MaxAge)
}

func TestCookieStoreClearShadowsRequestCookie(t *testing.T) {
	r := httptest.NewRequest(http.MethodGet, "/", nil)
	r.AddCookie(&http.Cookie{Name: KeyUserData, Value: "cached"})
	w := httptest.NewRecorder()
	store := NewCookieStore(w, r, false)

	store.Clear(KeyUserData)

	_, ok := store.Get(KeyUserData)
	assert.False(t, ok)

	cookies := w.Result().Cookies()
	require.Len(t, cookies, 1)
	assert.Equal(t, -1, cookies[0].MaxAge)
}

func TestCookieStoreClearAllRemovesCredentialKeysOnly(t *testing.T) {
	r := httptest.NewRequest(http.MethodGet, "/", nil)
	r.AddCookie(&http.Cookie{Name: KeyAccessToken, Value: "a"})
	r.AddCookie(&http.Cookie{Name: KeyRedirectTo, Value: "/dashboard"})
	w := httptest.NewRecorder()
	store := NewCookieStore(w, r, false)

	store.ClearAll()

	_, ok := store.Get(KeyAccessToken)
	assert.False(t, ok)
	// The redirect intent belongs to the edge gate, not the credential set.
	got, ok := store.Get(KeyRedirectTo)
	require.True(t, ok)
	assert.Equal(t, "/dashboard", got)
}

func TestMemoryStoreExpiry(t *testing.T) {
	store := NewMemoryStore()
	now := time.Now()
	store.SetClock(func() time.Time { return now })

	store.Set(KeyAccessToken, "acc", time.Minute)

	_, ok := store.Get(KeyAccessToken)
	require.True(t, ok)

	now = now.Add(2 * time.Minute)
	_, ok = store.Get(KeyAccessToken)
	assert.False(t, ok)
}
