package identity

import (
	"encoding/json"
	"fmt"
	"time"

	dErrors "jobgate/pkg/domain-errors"
)

// Role represents the account type a user holds.
type Role string

const (
	RoleJobSeeker Role = "jobseeker"
	RoleEmployer  Role = "employer"
	RoleAdmin     Role = "admin"
	RoleSupport   Role = "support"
)

func (r Role) IsValid() bool {
	return r == RoleJobSeeker || r == RoleEmployer || r == RoleAdmin || r == RoleSupport
}

func (r Role) String() string {
	return string(r)
}

// ParseRole maps the wire encoding of a role to the closed enum.
// The identity backend abbreviates roles to two-letter codes; the long
// forms are accepted as well so cached snapshots stay decodable.
func ParseRole(raw string) (Role, error) {
	switch raw {
	case "JS", string(RoleJobSeeker):
		return RoleJobSeeker, nil
	case "EM", string(RoleEmployer):
		return RoleEmployer, nil
	case "AD", string(RoleAdmin):
		return RoleAdmin, nil
	case "SU", string(RoleSupport):
		return RoleSupport, nil
	}
	return "", dErrors.New(dErrors.CodeValidation, fmt.Sprintf("unknown role %q", raw))
}

// UserRecord is the identity endpoint's view of a user. It is replaced
// wholesale on every re-fetch and never partially mutated, except for the
// role swap performed by an explicit role-change action.
type UserRecord struct {
	ID       string `json:"id"`
	FullName string `json:"full_name"`
	Phone    string `json:"phone"`
	Email    string `json:"email"`
	Role     Role   `json:"role"`
}

// Session carries the token pair and the user it authenticates.
// The user is only trusted while an access token is present.
type Session struct {
	AccessToken  string
	RefreshToken string
	User         *UserRecord
}

// Authenticated reports whether the session represents a logged-in user.
// A cached user without an access token counts as logged out.
func (s Session) Authenticated() bool {
	return s.AccessToken != "" && s.User != nil
}

// VerificationState is the admin's three-state decision on an employer's
// identity documents.
type VerificationState string

const (
	VerificationPending  VerificationState = "pending"
	VerificationApproved VerificationState = "approved"
	VerificationRejected VerificationState = "rejected"
)

func (v VerificationState) IsValid() bool {
	return v == VerificationPending || v == VerificationApproved || v == VerificationRejected
}

func (v VerificationState) String() string {
	return string(v)
}

// ParseVerificationState decodes the backend's single-letter status codes.
// Unknown codes are rejected rather than defaulted; every consumer switches
// exhaustively over the three states.
func ParseVerificationState(raw string) (VerificationState, error) {
	switch raw {
	case "P", string(VerificationPending):
		return VerificationPending, nil
	case "A", string(VerificationApproved):
		return VerificationApproved, nil
	case "R", string(VerificationRejected):
		return VerificationRejected, nil
	}
	return "", dErrors.New(dErrors.CodeValidation, fmt.Sprintf("unknown verification state %q", raw))
}

// VerificationStatus is the employer-scoped verification outcome. It is
// fetched lazily once an employer session exists and never cached across
// sessions.
type VerificationStatus struct {
	State                VerificationState
	HasCompleteDocuments bool
	AdminNotes           string
	DecidedAt            *time.Time
}

type verificationStatusWire struct {
	Status               string     `json:"verification_status"`
	HasCompleteDocuments bool       `json:"has_complete_documents"`
	AdminNotes           string     `json:"admin_notes,omitempty"`
	DecidedAt            *time.Time `json:"decided_at,omitempty"`
}

// UnmarshalJSON decodes the wire representation, including the legacy
// single-letter status codes.
func (v *VerificationStatus) UnmarshalJSON(data []byte) error {
	var wire verificationStatusWire
	if err := json.Unmarshal(data, &wire); err != nil {
		return err
	}
	state, err := ParseVerificationState(wire.Status)
	if err != nil {
		return err
	}
	v.State = state
	v.HasCompleteDocuments = wire.HasCompleteDocuments
	v.AdminNotes = wire.AdminNotes
	v.DecidedAt = wire.DecidedAt
	return nil
}

// MarshalJSON emits the long-form status so cached copies round-trip.
func (v VerificationStatus) MarshalJSON() ([]byte, error) {
	return json.Marshal(verificationStatusWire{
		Status:               v.State.String(),
		HasCompleteDocuments: v.HasCompleteDocuments,
		AdminNotes:           v.AdminNotes,
		DecidedAt:            v.DecidedAt,
	})
}
