// Package calculator computes group balances from member and expense
// snapshots. It is pure: no storage access, no side effects.
package calculator

import (
	"math"

	"github.com/orbiapp/splitease/internal/models"
)

// ComputeBalances derives each member's net balance from the expense history.
//
// Algorithm:
//   - Every member starts at zero.
//   - For each expense, the payer is credited the full amount and every
//     participant is debited amount/len(participants). A payer who is also a
//     participant nets out automatically: +amount and -share.
//   - An expense with an empty participant list falls back to [paidBy] so a
//     malformed record cannot divide by zero.
//
// Accumulation is commutative, so expense order does not matter. Values are
// rounded to two decimal places once, at output; intermediate shares keep
// full precision so rounding error does not build up across expenses. When an
// amount does not divide evenly the rounded balances may not sum to exactly
// zero, which is accepted rather than redistributed.
//
// The result has one entry per member, in member order, including members
// with a zero net.
func ComputeBalances(members []models.Member, expenses []models.Expense) []models.Balance {
	acc := make(map[string]float64, len(members))
	for _, m := range members {
		acc[m.ID] = 0
	}

	for _, exp := range expenses {
		parts := exp.Participants
		if len(parts) == 0 {
			parts = []string{exp.PaidBy}
		}
		share := exp.Amount / float64(len(parts))
		acc[exp.PaidBy] += exp.Amount
		for _, p := range parts {
			acc[p] -= share
		}
	}

	balances := make([]models.Balance, len(members))
	for i, m := range members {
		balances[i] = models.Balance{
			MemberID: m.ID,
			Amount:   round2(acc[m.ID]),
		}
	}
	return balances
}

// round2 rounds to currency-minor-unit precision, halves away from zero.
func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
