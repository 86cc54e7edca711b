package service

import (
	"context"
	"fmt"
	"log/slog"

	"connectrpc.com/connect"

	"github.com/orbiapp/splitease/internal/ledger"
	"github.com/orbiapp/splitease/internal/metrics"
	"github.com/orbiapp/splitease/internal/middleware"
	"github.com/orbiapp/splitease/internal/models"
	"github.com/orbiapp/splitease/internal/settlement"
	"github.com/orbiapp/splitease/internal/storage"
)

// SettlementService exposes the settlement-notification workflow and the
// recipient-side notification surface.
type SettlementService struct {
	ledger   *ledger.Ledger
	workflow *settlement.Workflow
	store    storage.Store
}

// NewSettlementService creates a SettlementService.
func NewSettlementService(l *ledger.Ledger, w *settlement.Workflow, store storage.Store) *SettlementService {
	return &SettlementService{ledger: l, workflow: w, store: store}
}

// SendNotification notifies an owing member of their debt. When the member's
// linked profile carries a payment handle the response includes a UPI
// deep-link ready to display as a scannable code; otherwise the notification
// is text-only, which is a normal outcome rather than an error.
func (s *SettlementService) SendNotification(ctx context.Context, req *connect.Request[SendNotificationRequest]) (*connect.Response[SendNotificationResponse], error) {
	fromEmail := middleware.GetEmail(ctx)
	if fromEmail == "" {
		return nil, connect.NewError(connect.CodeUnauthenticated, fmt.Errorf("authentication required"))
	}

	slog.Info("SendNotification request received",
		"group_id", req.Msg.GroupID,
		"member_id", req.Msg.MemberID,
		"amount", req.Msg.Amount,
	)

	if req.Msg.Amount <= 0 {
		return nil, connect.NewError(connect.CodeInvalidArgument, fmt.Errorf("amount must be positive"))
	}

	group, err := s.ledger.Group(ctx, req.Msg.GroupID)
	if err != nil {
		slog.Error("SendNotification failed - group lookup", "group_id", req.Msg.GroupID, "error", err)
		return nil, rpcError(err)
	}

	members, err := s.ledger.Members(ctx, group.ID)
	if err != nil {
		slog.Error("SendNotification failed - member list", "group_id", group.ID, "error", err)
		return nil, rpcError(err)
	}
	member := findMember(members, req.Msg.MemberID)
	if member == nil {
		return nil, connect.NewError(connect.CodeNotFound,
			fmt.Errorf("member %s is not part of group %s", req.Msg.MemberID, group.ID))
	}

	n, err := s.workflow.Send(ctx, fromEmail, group.ID, member, req.Msg.Amount)
	if err != nil {
		slog.Error("SendNotification failed", "member_id", member.ID, "error", err)
		return nil, rpcError(err)
	}

	outcome := "no_handle"
	if n.PaymentLink != "" {
		outcome = "link"
	}
	metrics.NotificationsSent.WithLabelValues(outcome).Inc()

	slog.Info("Settlement notification sent",
		"notification_id", n.ID,
		"to", n.To,
		"outcome", outcome,
	)
	return connect.NewResponse(&SendNotificationResponse{
		Notification: toNotification(n),
		PaymentLink:  n.PaymentLink,
	}), nil
}

// ListNotifications retrieves the authenticated user's notifications,
// newest first.
func (s *SettlementService) ListNotifications(ctx context.Context, req *connect.Request[ListNotificationsRequest]) (*connect.Response[ListNotificationsResponse], error) {
	email := middleware.GetEmail(ctx)
	if email == "" {
		return nil, connect.NewError(connect.CodeUnauthenticated, fmt.Errorf("authentication required"))
	}

	notifications, err := s.store.ListNotificationsByRecipient(ctx, email)
	if err != nil {
		slog.Error("ListNotifications failed", "email", email, "error", err)
		return nil, rpcError(err)
	}

	out := make([]Notification, len(notifications))
	for i := range notifications {
		out[i] = toNotification(&notifications[i])
	}
	return connect.NewResponse(&ListNotificationsResponse{Notifications: out}), nil
}

// MarkNotificationRead flips a notification's status to read. This is the
// recipient-side acknowledgement; the settlement workflow itself never
// touches status after creation.
func (s *SettlementService) MarkNotificationRead(ctx context.Context, req *connect.Request[MarkNotificationReadRequest]) (*connect.Response[MarkNotificationReadResponse], error) {
	if middleware.GetEmail(ctx) == "" {
		return nil, connect.NewError(connect.CodeUnauthenticated, fmt.Errorf("authentication required"))
	}

	if err := s.store.MarkNotificationRead(ctx, req.Msg.NotificationID); err != nil {
		slog.Error("MarkNotificationRead failed", "notification_id", req.Msg.NotificationID, "error", err)
		return nil, rpcError(err)
	}
	return connect.NewResponse(&MarkNotificationReadResponse{}), nil
}

func findMember(members []models.Member, id string) *models.Member {
	for i := range members {
		if members[i].ID == id {
			return &members[i]
		}
	}
	return nil
}
