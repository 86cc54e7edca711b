package models

// Notification status values. A notification is created unread by the
// settlement workflow and flipped to read by the recipient's own surface.
const (
	NotificationUnread = "unread"
	NotificationRead   = "read"
)

// RecipientUnknown is recorded as the recipient when the owing member has no
// linked email.
const RecipientUnknown = "unknown"

// Notification is a settlement record addressed to an owing member.
type Notification struct {
	// ID is the unique identifier for the notification (UUID format).
	ID string

	// From is the email of the user who triggered the settlement.
	From string

	// To is the email of the owing member, or RecipientUnknown when the
	// member has no linked email.
	To string

	// Amount is the amount owed.
	Amount float64

	// Message is the human-readable settlement message.
	Message string

	// GroupID is the group the debt belongs to.
	GroupID string

	// PaymentLink is a ready-to-use UPI deep-link, or empty when the
	// recipient has no payment handle on file.
	PaymentLink string

	// CreatedAt is the Unix timestamp when the notification was created.
	CreatedAt int64

	// Status is NotificationUnread or NotificationRead.
	Status string
}
