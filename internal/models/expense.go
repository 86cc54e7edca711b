package models

// Expense is a single payment made by one member on behalf of a subset of
// the group's members.
type Expense struct {
	// ID is the unique identifier for the expense (UUID format).
	ID string

	// GroupID is the group this expense belongs to.
	GroupID string

	// Title is the human-readable description (e.g., "Dinner", "Taxi").
	Title string

	// Amount is the full amount paid. Always positive.
	Amount float64

	// PaidBy is the member ID of the payer.
	PaidBy string

	// Participants are the member IDs sharing this expense. The set is
	// captured when the expense is recorded: adding or removing group
	// members later does not rewrite it.
	Participants []string

	// CreatedAt is the Unix timestamp when the expense was recorded.
	CreatedAt int64
}

// Balance is a member's derived net position within a group.
// Positive means the group owes this member; negative means this member owes
// the group; zero means settled. Balances are recomputed from the current
// member and expense snapshots and are never stored.
type Balance struct {
	// MemberID identifies the member this balance belongs to.
	MemberID string

	// Amount is the net balance rounded to two decimal places.
	Amount float64
}
