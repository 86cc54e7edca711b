package ledger

import (
	"context"
	"errors"
	"os"
	"testing"

	"github.com/orbiapp/splitease/internal/models"
	"github.com/orbiapp/splitease/internal/storage"
	"github.com/orbiapp/splitease/internal/storage/sqlite"
)

// newTestLedger creates a Ledger backed by a temp-file SQLite database.
func newTestLedger(t *testing.T) (*Ledger, storage.Store) {
	t.Helper()

	tmpFile, err := os.CreateTemp("", "ledger-test-*.db")
	if err != nil {
		t.Fatalf("failed to create temp file: %v", err)
	}
	tmpFile.Close()

	store, err := sqlite.New(tmpFile.Name())
	if err != nil {
		os.Remove(tmpFile.Name())
		t.Fatalf("failed to create store: %v", err)
	}
	t.Cleanup(func() {
		store.Close()
		os.Remove(tmpFile.Name())
	})

	return New(store), store
}

func TestCreateGroup(t *testing.T) {
	l, _ := newTestLedger(t)
	ctx := context.Background()

	group, err := l.CreateGroup(ctx, "  Trip Goa  ")
	if err != nil {
		t.Fatalf("CreateGroup failed: %v", err)
	}
	if group.ID == "" {
		t.Error("expected group ID to be assigned")
	}
	if group.Name != "Trip Goa" {
		t.Errorf("group name = %q, want %q", group.Name, "Trip Goa")
	}
	if group.Currency != models.DefaultCurrency {
		t.Errorf("group currency = %q, want %q", group.Currency, models.DefaultCurrency)
	}
}

func TestCreateGroup_EmptyName(t *testing.T) {
	l, _ := newTestLedger(t)

	for _, name := range []string{"", "   ", "\t"} {
		_, err := l.CreateGroup(context.Background(), name)
		if !errors.Is(err, ErrValidation) {
			t.Errorf("CreateGroup(%q) error = %v, want ErrValidation", name, err)
		}
	}
}

func TestAddMember(t *testing.T) {
	l, _ := newTestLedger(t)
	ctx := context.Background()

	group, err := l.CreateGroup(ctx, "Trip")
	if err != nil {
		t.Fatalf("CreateGroup failed: %v", err)
	}

	member, err := l.AddMember(ctx, group.ID, "Alice")
	if err != nil {
		t.Fatalf("AddMember failed: %v", err)
	}
	if member.Email != "" {
		t.Errorf("new member email = %q, want empty", member.Email)
	}
	if member.GroupID != group.ID {
		t.Errorf("member group = %q, want %q", member.GroupID, group.ID)
	}

	// Validation failures
	if _, err := l.AddMember(ctx, group.ID, "   "); !errors.Is(err, ErrValidation) {
		t.Errorf("AddMember with blank name error = %v, want ErrValidation", err)
	}
	if _, err := l.AddMember(ctx, "", "Bob"); !errors.Is(err, ErrValidation) {
		t.Errorf("AddMember without group error = %v, want ErrValidation", err)
	}
	if _, err := l.AddMember(ctx, "missing-group", "Bob"); !errors.Is(err, ErrNotFound) {
		t.Errorf("AddMember on missing group error = %v, want ErrNotFound", err)
	}
}

func TestAddExpense_Validation(t *testing.T) {
	l, _ := newTestLedger(t)
	ctx := context.Background()

	group, _ := l.CreateGroup(ctx, "Trip")
	alice, _ := l.AddMember(ctx, group.ID, "Alice")

	tests := []struct {
		name    string
		title   string
		amount  float64
		paidBy  string
		wantErr error
	}{
		{"empty title", "  ", 10, alice.ID, ErrValidation},
		{"zero amount", "Dinner", 0, alice.ID, ErrValidation},
		{"negative amount", "Dinner", -5, alice.ID, ErrValidation},
		{"missing payer", "Dinner", 10, "", ErrValidation},
		{"payer not a member", "Dinner", 10, "stranger", ErrValidation},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := l.AddExpense(ctx, group.ID, tt.title, tt.amount, tt.paidBy, nil)
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("AddExpense error = %v, want %v", err, tt.wantErr)
			}
		})
	}

	if _, err := l.AddExpense(ctx, group.ID, "Dinner", 10, alice.ID, []string{"stranger"}); !errors.Is(err, ErrValidation) {
		t.Errorf("AddExpense with unknown participant error = %v, want ErrValidation", err)
	}
}

// TestAddExpense_DefaultParticipants verifies that an expense recorded
// without participants captures the member list as of creation time, and
// that members added later do not join it.
func TestAddExpense_DefaultParticipants(t *testing.T) {
	l, _ := newTestLedger(t)
	ctx := context.Background()

	group, _ := l.CreateGroup(ctx, "Trip")
	alice, _ := l.AddMember(ctx, group.ID, "Alice")
	bob, _ := l.AddMember(ctx, group.ID, "Bob")

	expense, err := l.AddExpense(ctx, group.ID, "Dinner", 50, alice.ID, nil)
	if err != nil {
		t.Fatalf("AddExpense failed: %v", err)
	}
	if len(expense.Participants) != 2 {
		t.Fatalf("participants = %v, want alice and bob", expense.Participants)
	}

	// A member added afterwards must not appear on the stored expense.
	if _, err := l.AddMember(ctx, group.ID, "Carol"); err != nil {
		t.Fatalf("AddMember failed: %v", err)
	}
	expenses, err := l.Expenses(ctx, group.ID)
	if err != nil {
		t.Fatalf("Expenses failed: %v", err)
	}
	if len(expenses) != 1 {
		t.Fatalf("expected 1 expense, got %d", len(expenses))
	}
	if len(expenses[0].Participants) != 2 {
		t.Errorf("stored participants = %v, want the creation-time snapshot of 2", expenses[0].Participants)
	}
	for _, p := range expenses[0].Participants {
		if p != alice.ID && p != bob.ID {
			t.Errorf("unexpected participant %q", p)
		}
	}
}

func TestRemoveExpense_Idempotent(t *testing.T) {
	l, _ := newTestLedger(t)
	ctx := context.Background()

	group, _ := l.CreateGroup(ctx, "Trip")
	alice, _ := l.AddMember(ctx, group.ID, "Alice")
	if _, err := l.AddMember(ctx, group.ID, "Bob"); err != nil {
		t.Fatalf("AddMember failed: %v", err)
	}
	expense, _ := l.AddExpense(ctx, group.ID, "Dinner", 50, alice.ID, nil)

	before, err := l.Balances(ctx, group.ID)
	if err != nil {
		t.Fatalf("Balances failed: %v", err)
	}

	// Removing an expense that never existed is a success and changes nothing.
	if err := l.RemoveExpense(ctx, group.ID, "no-such-expense"); err != nil {
		t.Errorf("RemoveExpense of absent id returned error: %v", err)
	}
	after, err := l.Balances(ctx, group.ID)
	if err != nil {
		t.Fatalf("Balances failed: %v", err)
	}
	for i := range before {
		if before[i] != after[i] {
			t.Errorf("balance changed after no-op removal: %+v vs %+v", before[i], after[i])
		}
	}

	// Real removal, then removal again.
	if err := l.RemoveExpense(ctx, group.ID, expense.ID); err != nil {
		t.Fatalf("RemoveExpense failed: %v", err)
	}
	if err := l.RemoveExpense(ctx, group.ID, expense.ID); err != nil {
		t.Errorf("second RemoveExpense returned error: %v", err)
	}

	balances, _ := l.Balances(ctx, group.ID)
	for _, b := range balances {
		if b.Amount != 0 {
			t.Errorf("balance for %s = %v after removing only expense, want 0", b.MemberID, b.Amount)
		}
	}
}

// TestDeleteGroup_Cascade verifies that after deletion no member, expense or
// notification referencing the group remains queryable.
func TestDeleteGroup_Cascade(t *testing.T) {
	l, store := newTestLedger(t)
	ctx := context.Background()

	group, _ := l.CreateGroup(ctx, "Trip")
	alice, _ := l.AddMember(ctx, group.ID, "Alice")
	if _, err := l.AddMember(ctx, group.ID, "Bob"); err != nil {
		t.Fatalf("AddMember failed: %v", err)
	}
	if _, err := l.AddExpense(ctx, group.ID, "Dinner", 90, alice.ID, nil); err != nil {
		t.Fatalf("AddExpense failed: %v", err)
	}
	err := store.CreateNotification(ctx, &models.Notification{
		From:    "alice@example.com",
		To:      "bob@example.com",
		Amount:  30,
		Message: "You owe ₹30",
		GroupID: group.ID,
	})
	if err != nil {
		t.Fatalf("CreateNotification failed: %v", err)
	}

	if err := l.DeleteGroup(ctx, group.ID); err != nil {
		t.Fatalf("DeleteGroup failed: %v", err)
	}

	if _, err := l.Group(ctx, group.ID); !errors.Is(err, ErrNotFound) {
		t.Errorf("Group after delete error = %v, want ErrNotFound", err)
	}
	members, _ := store.ListMembers(ctx, group.ID)
	if len(members) != 0 {
		t.Errorf("members remain after cascade: %v", members)
	}
	expenses, _ := store.ListExpenses(ctx, group.ID)
	if len(expenses) != 0 {
		t.Errorf("expenses remain after cascade: %v", expenses)
	}
	notifications, _ := store.ListNotificationsByRecipient(ctx, "bob@example.com")
	for _, n := range notifications {
		if n.GroupID == group.ID {
			t.Errorf("notification %s still references deleted group", n.ID)
		}
	}

	// Re-invoking the deletion completes cleanly.
	if err := l.DeleteGroup(ctx, group.ID); err != nil {
		t.Errorf("repeated DeleteGroup returned error: %v", err)
	}
}

func TestBalances(t *testing.T) {
	l, _ := newTestLedger(t)
	ctx := context.Background()

	group, _ := l.CreateGroup(ctx, "Trip")
	alice, _ := l.AddMember(ctx, group.ID, "Alice")
	bob, _ := l.AddMember(ctx, group.ID, "Bob")
	carol, _ := l.AddMember(ctx, group.ID, "Carol")

	if _, err := l.AddExpense(ctx, group.ID, "Dinner", 90, alice.ID, []string{alice.ID, bob.ID, carol.ID}); err != nil {
		t.Fatalf("AddExpense failed: %v", err)
	}
	if _, err := l.AddExpense(ctx, group.ID, "Taxi", 45, bob.ID, []string{bob.ID, carol.ID}); err != nil {
		t.Fatalf("AddExpense failed: %v", err)
	}

	balances, err := l.Balances(ctx, group.ID)
	if err != nil {
		t.Fatalf("Balances failed: %v", err)
	}

	want := map[string]float64{
		alice.ID: 60.00,
		bob.ID:   -7.50,
		carol.ID: -52.50,
	}
	if len(balances) != len(want) {
		t.Fatalf("expected %d balances, got %d", len(want), len(balances))
	}
	for _, b := range balances {
		if b.Amount != want[b.MemberID] {
			t.Errorf("balance for %s = %v, want %v", b.MemberID, b.Amount, want[b.MemberID])
		}
	}
}

func TestView_RecomputesFromLatestSnapshot(t *testing.T) {
	view := NewView()

	members := []models.Member{{ID: "alice"}, {ID: "bob"}}
	view.SetMembers(members)
	view.SetExpenses([]models.Expense{
		{Amount: 40, PaidBy: "alice", Participants: []string{"alice", "bob"}},
	})

	balances := view.Balances()
	if balances[0].Amount != 20.00 || balances[1].Amount != -20.00 {
		t.Errorf("balances = %+v, want +20/-20", balances)
	}

	// A fresh expense snapshot fully replaces the old one.
	view.SetExpenses(nil)
	for _, b := range view.Balances() {
		if b.Amount != 0 {
			t.Errorf("balance for %s = %v after empty snapshot, want 0", b.MemberID, b.Amount)
		}
	}
}
