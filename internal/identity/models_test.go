package identity

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	dErrors "jobgate/pkg/domain-errors"
)

func TestParseRole(t *testing.T) {
	cases := map[string]Role{
		"JS":        RoleJobSeeker,
		"EM":        RoleEmployer,
		"AD":        RoleAdmin,
		"SU":        RoleSupport,
		"employer":  RoleEmployer,
		"jobseeker": RoleJobSeeker,
	}
	for raw, want := range cases {
		got, err := ParseRole(raw)
		require.NoError(t, err, raw)
		assert.Equal(t, want, got)
	}

	_, err := ParseRole("XX")
	assert.True(t, dErrors.HasCode(err, dErrors.CodeValidation))
}

func TestParseVerificationStateRejectsUnknownCodes(t *testing.T) {
	for raw, want := range map[string]VerificationState{
		"P":        VerificationPending,
		"A":        VerificationApproved,
		"R":        VerificationRejected,
		"pending":  VerificationPending,
		"approved": VerificationApproved,
		"rejected": VerificationRejected,
	} {
		got, err := ParseVerificationState(raw)
		require.NoError(t, err, raw)
		assert.Equal(t, want, got)
	}

	for _, raw := range []string{"", "X", "Approved ", "p "} {
		_, err := ParseVerificationState(raw)
		assert.True(t, dErrors.HasCode(err, dErrors.CodeValidation), raw)
	}
}

func TestVerificationStatusDecode(t *testing.T) {
	decided := time.Date(2025, 11, 3, 10, 30, 0, 0, time.UTC)
	payload := `{"verification_status":"R","has_complete_documents":true,"admin_notes":"national card unreadable","decided_at":"2025-11-03T10:30:00Z"}`

	var status VerificationStatus
	require.NoError(t, json.Unmarshal([]byte(payload), &status))

	assert.Equal(t, VerificationRejected, status.State)
	assert.True(t, status.HasCompleteDocuments)
	assert.Equal(t, "national card unreadable", status.AdminNotes)
	require.NotNil(t, status.DecidedAt)
	assert.True(t, decided.Equal(*status.DecidedAt))

	// Round trip through the long-form encoding.
	encoded, err := json.Marshal(status)
	require.NoError(t, err)
	var again VerificationStatus
	require.NoError(t, json.Unmarshal(encoded, &again))
	assert.Equal(t, status.State, again.State)
}

func TestVerificationStatusDecodeUnknownState(t *testing.T) {
	var status VerificationStatus
	err := json.Unmarshal([]byte(`{"verification_status":"Z"}`), &status)
	assert.Error(t, err)
}

func TestSessionAuthenticated(t *testing.T) {
	user := &UserRecord{ID: "u1", Role: RoleJobSeeker}

	assert.False(t, Session{}.Authenticated())
	// Cached user without an access token counts as logged out.
	assert.False(t, Session{User: user}.Authenticated())
	assert.False(t, Session{AccessToken: "tok"}.Authenticated())
	assert.True(t, Session{AccessToken: "tok", User: user}.Authenticated())
}
