package service

import (
	"errors"

	"connectrpc.com/connect"

	"github.com/orbiapp/splitease/internal/ledger"
	"github.com/orbiapp/splitease/internal/models"
	"github.com/orbiapp/splitease/internal/storage"
)

// rpcError maps core errors onto Connect codes: validation failures become
// InvalidArgument, missing references become NotFound, everything else (a
// collaborator failure) is Internal.
func rpcError(err error) *connect.Error {
	switch {
	case errors.Is(err, ledger.ErrValidation):
		return connect.NewError(connect.CodeInvalidArgument, err)
	case errors.Is(err, ledger.ErrNotFound), errors.Is(err, storage.ErrNotFound):
		return connect.NewError(connect.CodeNotFound, err)
	default:
		return connect.NewError(connect.CodeInternal, err)
	}
}

func toGroup(g *models.Group) Group {
	return Group{
		ID:        g.ID,
		Name:      g.Name,
		Currency:  g.Currency,
		CreatedAt: g.CreatedAt,
	}
}

func toMember(m *models.Member) Member {
	return Member{
		ID:        m.ID,
		GroupID:   m.GroupID,
		Name:      m.Name,
		Email:     m.Email,
		CreatedAt: m.CreatedAt,
	}
}

func toExpense(e *models.Expense) Expense {
	return Expense{
		ID:           e.ID,
		GroupID:      e.GroupID,
		Title:        e.Title,
		Amount:       e.Amount,
		PaidBy:       e.PaidBy,
		Participants: e.Participants,
		CreatedAt:    e.CreatedAt,
	}
}

func toNotification(n *models.Notification) Notification {
	return Notification{
		ID:          n.ID,
		From:        n.From,
		To:          n.To,
		Amount:      n.Amount,
		Message:     n.Message,
		GroupID:     n.GroupID,
		PaymentLink: n.PaymentLink,
		CreatedAt:   n.CreatedAt,
		Status:      n.Status,
	}
}

func toProfile(p *models.Profile) Profile {
	return Profile{
		ID:            p.ID,
		Email:         p.Email,
		DisplayName:   p.DisplayName,
		PaymentHandle: p.PaymentHandle,
		CreatedAt:     p.CreatedAt,
	}
}
