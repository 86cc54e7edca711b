package models

import (
	"time"

	"github.com/google/uuid"
)

// Profile is a registered user account. Profiles are looked up by email to
// resolve a member's payment handle during settlement; the ledger core never
// writes to a profile.
type Profile struct {
	// ID is the unique identifier for the profile (UUID format).
	ID string

	// Email is the profile's email address (unique). Used for login and
	// for linking group members to accounts.
	Email string

	// DisplayName is the user's display name. Member auto-linking matches
	// this against member names.
	DisplayName string

	// PaymentHandle is the external payment-network address (a UPI id,
	// e.g. "alice@upi"). May be empty.
	PaymentHandle string

	// PasswordHash is the bcrypt hash of the account password.
	PasswordHash string

	// CreatedAt is the Unix timestamp when the profile was created.
	CreatedAt int64

	// UpdatedAt is the Unix timestamp of the last profile update.
	UpdatedAt int64
}

// NewProfile creates a profile with a fresh ID and timestamps.
func NewProfile(email, displayName, passwordHash string) *Profile {
	now := time.Now().Unix()
	return &Profile{
		ID:           uuid.New().String(),
		Email:        email,
		DisplayName:  displayName,
		PasswordHash: passwordHash,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
}
