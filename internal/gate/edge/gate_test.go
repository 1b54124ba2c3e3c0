package edge

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testGate(t *testing.T) *Gate {
	t.Helper()
	gate, err := New(Config{
		Protected: []string{"/profile", "/dashboard", "/projects/{id}", "/settings", "/messages", "/employer"},
		Auth:      []string{"/login", "/register"},
		LoginPath: "/login",
		RootPath:  "/",
	})
	require.NoError(t, err)
	return gate
}

func TestMatcherPrefixAndParams(t *testing.T) {
	m := MustMatcher("/employer/jobs/{id}", "/dashboard")

	assert.True(t, m.Matches("/employer/jobs/42"))
	assert.True(t, m.Matches("/employer/jobs/42/edit"))
	assert.False(t, m.Matches("/employer/jobs"))
	assert.True(t, m.Matches("/dashboard"))
	assert.True(t, m.Matches("/dashboard/stats"))
	assert.False(t, m.Matches("/dash"))
	assert.False(t, m.Matches("/"))
}

func TestMatcherRejectsBadPattern(t *testing.T) {
	_, err := NewMatcher("dashboard")
	assert.Error(t, err)
	_, err = NewMatcher("")
	assert.Error(t, err)
}

func TestProtectedWithoutTokenRedirectsToLogin(t *testing.T) {
	gate := testGate(t)

	for _, path := range []string{"/dashboard", "/profile", "/projects/7", "/messages/inbox"} {
		d := gate.Decide(path, false, "")
		assert.Equal(t, ActionRedirect, d.Action, path)
		assert.Equal(t, "/login", d.Location, path)
		assert.Equal(t, path, d.SetIntent, "intent carries the requested path")
		assert.False(t, d.ClearIntent)
	}
}

func TestProtectedWithTokenPasses(t *testing.T) {
	gate := testGate(t)
	d := gate.Decide("/dashboard", true, "")
	assert.Equal(t, ActionPass, d.Action)
	assert.Empty(t, d.SetIntent)
}

func TestAuthPathWithTokenRedirectsToIntent(t *testing.T) {
	gate := testGate(t)

	d := gate.Decide("/login", true, "/dashboard")
	assert.Equal(t, ActionRedirect, d.Action)
	assert.Equal(t, "/dashboard", d.Location)
	assert.True(t, d.ClearIntent, "intent is consumed")

	d = gate.Decide("/login", true, "")
	assert.Equal(t, "/", d.Location, "defaults to site root without intent")
	assert.True(t, d.ClearIntent)
}

func TestAuthPathWithoutTokenPasses(t *testing.T) {
	gate := testGate(t)
	d := gate.Decide("/login", false, "/dashboard")
	assert.Equal(t, ActionPass, d.Action)
	assert.False(t, d.ClearIntent)
}

func TestPublicPathAlwaysPasses(t *testing.T) {
	gate := testGate(t)
	for _, hasToken := range []bool{true, false} {
		d := gate.Decide("/terms", hasToken, "/dashboard")
		assert.Equal(t, ActionPass, d.Action)
	}
}

func TestDecideIsPure(t *testing.T) {
	gate := testGate(t)
	first := gate.Decide("/dashboard", false, "")
	for i := 0; i < 3; i++ {
		assert.Equal(t, first, gate.Decide("/dashboard", false, ""))
	}
}
