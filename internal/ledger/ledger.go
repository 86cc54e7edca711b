// Package ledger maintains the authoritative member and expense collections
// for expense-splitting groups and exposes validated mutation operations.
//
// All mutations are append or remove only: an expense is never edited in
// place, it is deleted and re-added. Group ids are threaded explicitly
// through every call so the package carries no ambient "selected group"
// state. Errors from the backing store propagate wrapped; the ledger does
// not retry.
package ledger

import (
	"context"
	"errors"
	"fmt"
	"math"
	"strings"

	"github.com/orbiapp/splitease/internal/calculator"
	"github.com/orbiapp/splitease/internal/models"
	"github.com/orbiapp/splitease/internal/storage"
)

// Ledger validates and applies mutations against the backing store.
type Ledger struct {
	store storage.Store
}

// New creates a Ledger over the given store.
func New(store storage.Store) *Ledger {
	return &Ledger{store: store}
}

// CreateGroup persists a new group with the default currency.
func (l *Ledger) CreateGroup(ctx context.Context, name string) (*models.Group, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, fmt.Errorf("%w: group name is required", ErrValidation)
	}

	group := &models.Group{
		Name:     name,
		Currency: models.DefaultCurrency,
	}
	if err := l.store.CreateGroup(ctx, group); err != nil {
		return nil, fmt.Errorf("create group: %w", err)
	}
	return group, nil
}

// Group retrieves a group by id.
func (l *Ledger) Group(ctx context.Context, groupID string) (*models.Group, error) {
	group, err := l.store.GetGroup(ctx, groupID)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return nil, fmt.Errorf("%w: group %s", ErrNotFound, groupID)
		}
		return nil, fmt.Errorf("get group: %w", err)
	}
	return group, nil
}

// Groups lists all groups, newest first.
func (l *Ledger) Groups(ctx context.Context) ([]*models.Group, error) {
	groups, err := l.store.ListGroups(ctx)
	if err != nil {
		return nil, fmt.Errorf("list groups: %w", err)
	}
	return groups, nil
}

// AddMember appends a member to a group. The new member starts with an
// empty email; auto-linking may back-fill it later.
func (l *Ledger) AddMember(ctx context.Context, groupID, name string) (*models.Member, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, fmt.Errorf("%w: member name is required", ErrValidation)
	}
	if groupID == "" {
		return nil, fmt.Errorf("%w: no group selected", ErrValidation)
	}
	if _, err := l.Group(ctx, groupID); err != nil {
		return nil, err
	}

	member := &models.Member{
		GroupID: groupID,
		Name:    name,
		Email:   "",
	}
	if err := l.store.CreateMember(ctx, member); err != nil {
		return nil, fmt.Errorf("create member: %w", err)
	}
	return member, nil
}

// Members lists a group's members in insertion order.
func (l *Ledger) Members(ctx context.Context, groupID string) ([]models.Member, error) {
	members, err := l.store.ListMembers(ctx, groupID)
	if err != nil {
		return nil, fmt.Errorf("list members: %w", err)
	}
	return members, nil
}

// AddExpense records an expense paid by one member on behalf of a subset of
// members. When participants is empty the current full member list is
// captured as a snapshot: members added to the group later do not join
// historical expenses.
func (l *Ledger) AddExpense(ctx context.Context, groupID, title string, amount float64, paidBy string, participants []string) (*models.Expense, error) {
	title = strings.TrimSpace(title)
	if title == "" {
		return nil, fmt.Errorf("%w: expense title is required", ErrValidation)
	}
	if amount <= 0 || math.IsNaN(amount) || math.IsInf(amount, 0) {
		return nil, fmt.Errorf("%w: amount must be a positive number", ErrValidation)
	}
	if paidBy == "" {
		return nil, fmt.Errorf("%w: payer is required", ErrValidation)
	}
	if _, err := l.Group(ctx, groupID); err != nil {
		return nil, err
	}

	members, err := l.store.ListMembers(ctx, groupID)
	if err != nil {
		return nil, fmt.Errorf("list members: %w", err)
	}
	known := make(map[string]bool, len(members))
	for _, m := range members {
		known[m.ID] = true
	}

	if !known[paidBy] {
		return nil, fmt.Errorf("%w: payer %s is not a member of group %s", ErrValidation, paidBy, groupID)
	}
	for _, p := range participants {
		if !known[p] {
			return nil, fmt.Errorf("%w: participant %s is not a member of group %s", ErrValidation, p, groupID)
		}
	}

	if len(participants) == 0 {
		participants = make([]string, len(members))
		for i, m := range members {
			participants[i] = m.ID
		}
	}

	expense := &models.Expense{
		GroupID:      groupID,
		Title:        title,
		Amount:       amount,
		PaidBy:       paidBy,
		Participants: participants,
	}
	if err := l.store.CreateExpense(ctx, expense); err != nil {
		return nil, fmt.Errorf("create expense: %w", err)
	}
	return expense, nil
}

// Expenses lists a group's expenses, newest first.
func (l *Ledger) Expenses(ctx context.Context, groupID string) ([]models.Expense, error) {
	expenses, err := l.store.ListExpenses(ctx, groupID)
	if err != nil {
		return nil, fmt.Errorf("list expenses: %w", err)
	}
	return expenses, nil
}

// RemoveExpense deletes an expense. Removing an expense that is already
// absent succeeds: the desired state, non-existence, holds either way.
func (l *Ledger) RemoveExpense(ctx context.Context, groupID, expenseID string) error {
	if err := l.store.DeleteExpense(ctx, groupID, expenseID); err != nil {
		return fmt.Errorf("delete expense: %w", err)
	}
	return nil
}

// DeleteGroup removes a group and everything it owns. Children are deleted
// before the parent so that a failure partway leaves a state where
// re-invoking the deletion completes the cleanup: deleting already-absent
// documents is a no-op success at the store level.
func (l *Ledger) DeleteGroup(ctx context.Context, groupID string) error {
	if err := l.store.DeleteMembersByGroup(ctx, groupID); err != nil {
		return fmt.Errorf("delete group members: %w", err)
	}
	if err := l.store.DeleteExpensesByGroup(ctx, groupID); err != nil {
		return fmt.Errorf("delete group expenses: %w", err)
	}
	if err := l.store.DeleteNotificationsByGroup(ctx, groupID); err != nil {
		return fmt.Errorf("delete group notifications: %w", err)
	}
	if err := l.store.DeleteGroup(ctx, groupID); err != nil {
		return fmt.Errorf("delete group: %w", err)
	}
	return nil
}

// Balances derives the current net balance for every member of a group from
// the latest member and expense snapshots.
func (l *Ledger) Balances(ctx context.Context, groupID string) ([]models.Balance, error) {
	members, err := l.store.ListMembers(ctx, groupID)
	if err != nil {
		return nil, fmt.Errorf("list members: %w", err)
	}
	expenses, err := l.store.ListExpenses(ctx, groupID)
	if err != nil {
		return nil, fmt.Errorf("list expenses: %w", err)
	}
	return calculator.ComputeBalances(members, expenses), nil
}
