package ledger

import (
	"github.com/orbiapp/splitease/internal/calculator"
	"github.com/orbiapp/splitease/internal/models"
)

// View is a snapshot-driven read model for one group. An adapter subscribed
// to the store (or any other event source) pushes fresh member and expense
// snapshots into the view; Balances always reflects the latest complete
// snapshot, never partial state.
//
// View is not safe for concurrent use. It is meant for the single dispatch
// loop that delivers subscription callbacks one at a time.
type View struct {
	members  []models.Member
	expenses []models.Expense
}

// NewView creates an empty view.
func NewView() *View {
	return &View{}
}

// SetMembers replaces the member snapshot.
func (v *View) SetMembers(members []models.Member) {
	v.members = members
}

// SetExpenses replaces the expense snapshot.
func (v *View) SetExpenses(expenses []models.Expense) {
	v.expenses = expenses
}

// Members returns the current member snapshot.
func (v *View) Members() []models.Member {
	return v.members
}

// Expenses returns the current expense snapshot.
func (v *View) Expenses() []models.Expense {
	return v.expenses
}

// Balances recomputes net balances from the current snapshots.
func (v *View) Balances() []models.Balance {
	return calculator.ComputeBalances(v.members, v.expenses)
}
