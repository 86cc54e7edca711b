package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/orbiapp/splitease/internal/models"
	"github.com/orbiapp/splitease/internal/storage"
)

// CreateNotification persists a new settlement notification.
func (s *SQLiteStore) CreateNotification(ctx context.Context, n *models.Notification) error {
	if n.ID == "" {
		n.ID = uuid.New().String()
	}
	if n.CreatedAt == 0 {
		n.CreatedAt = time.Now().Unix()
	}
	if n.Status == "" {
		n.Status = models.NotificationUnread
	}

	var link interface{} = nil
	if n.PaymentLink != "" {
		link = n.PaymentLink
	}

	_, err := s.db.ExecContext(ctx,
		`INSERT INTO notifications (id, from_email, to_email, amount, message, group_id, payment_link, created_at, status)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		n.ID, n.From, n.To, n.Amount, n.Message, n.GroupID, link, n.CreatedAt, n.Status,
	)
	if err != nil {
		return fmt.Errorf("failed to insert notification: %w", err)
	}
	return nil
}

// ListNotificationsByRecipient retrieves all notifications addressed to an
// email, newest first.
func (s *SQLiteStore) ListNotificationsByRecipient(ctx context.Context, email string) ([]models.Notification, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, from_email, to_email, amount, message, group_id, payment_link, created_at, status
		 FROM notifications WHERE to_email = ? ORDER BY created_at DESC, id ASC`,
		email,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list notifications: %w", err)
	}
	defer rows.Close()

	var notifications []models.Notification
	for rows.Next() {
		var n models.Notification
		var link sql.NullString
		if err := rows.Scan(&n.ID, &n.From, &n.To, &n.Amount, &n.Message, &n.GroupID, &link, &n.CreatedAt, &n.Status); err != nil {
			return nil, fmt.Errorf("failed to scan notification: %w", err)
		}
		if link.Valid {
			n.PaymentLink = link.String
		}
		notifications = append(notifications, n)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate notifications: %w", err)
	}
	return notifications, nil
}

// MarkNotificationRead flips a notification's status to read.
func (s *SQLiteStore) MarkNotificationRead(ctx context.Context, notificationID string) error {
	res, err := s.db.ExecContext(ctx,
		"UPDATE notifications SET status = ? WHERE id = ?",
		models.NotificationRead, notificationID,
	)
	if err != nil {
		return fmt.Errorf("failed to mark notification read: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check notification update: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("notification %s: %w", notificationID, storage.ErrNotFound)
	}
	return nil
}

// DeleteNotificationsByGroup removes all notifications referencing a group.
func (s *SQLiteStore) DeleteNotificationsByGroup(ctx context.Context, groupID string) error {
	_, err := s.db.ExecContext(ctx, "DELETE FROM notifications WHERE group_id = ?", groupID)
	if err != nil {
		return fmt.Errorf("failed to delete notifications: %w", err)
	}
	return nil
}
