// Package settlement converts computed negative balances into notifications
// to the owing member, optionally carrying a ready-to-use UPI payment link.
// It also reconciles group members with registered profiles, since both
// paths share the profile-lookup collaborator.
package settlement

import (
	"context"
	"fmt"
	"log/slog"
	"strconv"
	"strings"

	"github.com/orbiapp/splitease/internal/models"
	"github.com/orbiapp/splitease/internal/storage"
)

// linkCurrency is the fixed currency code carried in payment links.
const linkCurrency = models.DefaultCurrency

// Workflow resolves payment handles and emits settlement notifications.
type Workflow struct {
	store storage.Store
}

// NewWorkflow creates a Workflow over the given store.
func NewWorkflow(store storage.Store) *Workflow {
	return &Workflow{store: store}
}

// Send notifies an owing member of a debt of amount within group.
//
// The member's linked profile is looked up by email. When the member has no
// email, no profile exists, or the profile carries no payment handle, a
// notification without a payment link is persisted; that is a normal terminal
// state, not an error. Otherwise the notification carries a UPI deep-link for
// immediate display. Either way the notification is only persisted once the
// terminal state is reached, so an abandoned attempt leaves no partial
// record. A failed lookup or persistence propagates to the caller without
// retry.
func (w *Workflow) Send(ctx context.Context, fromEmail, groupID string, member *models.Member, amount float64) (*models.Notification, error) {
	var handle string
	if member.Email != "" {
		profile, err := w.store.GetProfileByEmail(ctx, member.Email)
		if err != nil {
			return nil, fmt.Errorf("look up profile for %s: %w", member.Email, err)
		}
		if profile != nil {
			handle = profile.PaymentHandle
		}
	}

	recipient := member.Email
	if recipient == "" {
		recipient = models.RecipientUnknown
	}

	n := &models.Notification{
		From:    fromEmail,
		To:      recipient,
		Amount:  amount,
		Message: fmt.Sprintf("You owe ₹%s", strconv.FormatFloat(amount, 'f', -1, 64)),
		GroupID: groupID,
		Status:  models.NotificationUnread,
	}
	if handle != "" {
		n.PaymentLink = BuildUPILink(handle, member.Name, amount)
	}

	if err := w.store.CreateNotification(ctx, n); err != nil {
		return nil, fmt.Errorf("persist notification: %w", err)
	}
	return n, nil
}

// AutoLink back-fills member emails from the requesting user's profile: any
// member without an email whose name matches the profile's display name
// (case-insensitive, trimmed) is linked to the profile's email. A member
// that already carries an email is never overwritten.
//
// Linking is best-effort: individual update failures are logged and skipped
// so one bad record does not block the rest. Returns the number of members
// linked.
func (w *Workflow) AutoLink(ctx context.Context, members []models.Member, profile *models.Profile) int {
	if profile == nil || profile.Email == "" {
		return 0
	}
	want := strings.ToLower(strings.TrimSpace(profile.DisplayName))
	if want == "" {
		return 0
	}

	linked := 0
	for _, m := range members {
		if strings.TrimSpace(m.Email) != "" {
			continue
		}
		if strings.ToLower(strings.TrimSpace(m.Name)) != want {
			continue
		}
		if err := w.store.UpdateMemberEmail(ctx, m.ID, profile.Email); err != nil {
			slog.Warn("AutoLink: failed to update member email",
				"member_id", m.ID,
				"error", err,
			)
			continue
		}
		linked++
	}
	return linked
}
