package models

// DefaultCurrency is assigned to groups created without an explicit currency.
const DefaultCurrency = "INR"

// Group is a named collection of members and shared expenses.
type Group struct {
	// ID is the unique identifier for the group (UUID format).
	ID string

	// Name is the display name of the group (e.g., "Trip Goa", "Roommates").
	Name string

	// Currency is the ISO currency code used for the group's expenses.
	// Defaults to DefaultCurrency when unset at creation time.
	Currency string

	// CreatedAt is the Unix timestamp when the group was created.
	CreatedAt int64
}

// Member is a participant within one group.
//
// A member is just a display name until it is linked to a registered profile
// by email. Email starts empty and may be back-filled later when the member's
// name matches a known profile (see the settlement package).
type Member struct {
	// ID is the unique identifier for the member (UUID format).
	ID string

	// GroupID is the group this member belongs to. Members are owned by
	// their group and are not shared across groups.
	GroupID string

	// Name is the member's display name. Never empty.
	Name string

	// Email links the member to a registered profile. May be empty.
	Email string

	// CreatedAt is the Unix timestamp when the member was added.
	CreatedAt int64
}
