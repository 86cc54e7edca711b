// Package storage provides abstractions for persistent data storage.
package storage

import (
	"context"
	"errors"

	"github.com/orbiapp/splitease/internal/models"
)

// ErrNotFound is returned when a referenced document does not exist.
var ErrNotFound = errors.New("not found")

// Store defines the interface for the document store backing SplitEase.
// This abstraction allows swapping storage backends (SQLite, PostgreSQL,
// a hosted document database, etc.) without changing the core packages.
//
// Delete operations on single documents are no-op successes when the target
// is already absent; the cascade in the ledger package relies on that to be
// retry-safe.
type Store interface {
	// Groups.
	CreateGroup(ctx context.Context, group *models.Group) error
	GetGroup(ctx context.Context, groupID string) (*models.Group, error)
	ListGroups(ctx context.Context) ([]*models.Group, error)
	// DeleteGroup removes the group document only; callers are expected to
	// delete the group's children first.
	DeleteGroup(ctx context.Context, groupID string) error

	// Members.
	CreateMember(ctx context.Context, member *models.Member) error
	ListMembers(ctx context.Context, groupID string) ([]models.Member, error)
	UpdateMemberEmail(ctx context.Context, memberID, email string) error
	DeleteMembersByGroup(ctx context.Context, groupID string) error

	// Expenses.
	CreateExpense(ctx context.Context, expense *models.Expense) error
	ListExpenses(ctx context.Context, groupID string) ([]models.Expense, error)
	DeleteExpense(ctx context.Context, groupID, expenseID string) error
	DeleteExpensesByGroup(ctx context.Context, groupID string) error

	// Notifications.
	CreateNotification(ctx context.Context, n *models.Notification) error
	ListNotificationsByRecipient(ctx context.Context, email string) ([]models.Notification, error)
	MarkNotificationRead(ctx context.Context, notificationID string) error
	DeleteNotificationsByGroup(ctx context.Context, groupID string) error

	// Profiles. GetProfileByEmail and GetProfileByID return (nil, nil)
	// when no profile exists; absence is not an error for lookups.
	CreateProfile(ctx context.Context, profile *models.Profile) error
	GetProfileByEmail(ctx context.Context, email string) (*models.Profile, error)
	GetProfileByID(ctx context.Context, id string) (*models.Profile, error)
	UpdatePaymentHandle(ctx context.Context, profileID, handle string) error

	// Close releases any resources held by the store.
	Close() error
}
