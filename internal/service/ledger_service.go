package service

import (
	"context"
	"log/slog"

	"connectrpc.com/connect"

	"github.com/orbiapp/splitease/internal/ledger"
	"github.com/orbiapp/splitease/internal/metrics"
	"github.com/orbiapp/splitease/internal/middleware"
	"github.com/orbiapp/splitease/internal/settlement"
	"github.com/orbiapp/splitease/internal/storage"
)

// LedgerService exposes group, member, expense and balance operations.
type LedgerService struct {
	ledger   *ledger.Ledger
	workflow *settlement.Workflow
	store    storage.Store
}

// NewLedgerService creates a LedgerService. The workflow is used for
// best-effort member auto-linking whenever a member list is read or changed.
func NewLedgerService(l *ledger.Ledger, w *settlement.Workflow, store storage.Store) *LedgerService {
	return &LedgerService{ledger: l, workflow: w, store: store}
}

// CreateGroup creates a new group and reports it back as the active one.
func (s *LedgerService) CreateGroup(ctx context.Context, req *connect.Request[CreateGroupRequest]) (*connect.Response[CreateGroupResponse], error) {
	slog.Info("CreateGroup request received", "name", req.Msg.Name)

	group, err := s.ledger.CreateGroup(ctx, req.Msg.Name)
	if err != nil {
		slog.Error("CreateGroup failed", "error", err)
		return nil, rpcError(err)
	}
	metrics.GroupsCreated.Inc()

	slog.Info("Group created", "group_id", group.ID)
	return connect.NewResponse(&CreateGroupResponse{Group: toGroup(group)}), nil
}

// ListGroups retrieves all groups, newest first.
func (s *LedgerService) ListGroups(ctx context.Context, req *connect.Request[ListGroupsRequest]) (*connect.Response[ListGroupsResponse], error) {
	groups, err := s.ledger.Groups(ctx)
	if err != nil {
		slog.Error("ListGroups failed", "error", err)
		return nil, rpcError(err)
	}

	out := make([]Group, len(groups))
	for i, g := range groups {
		out[i] = toGroup(g)
	}
	return connect.NewResponse(&ListGroupsResponse{Groups: out}), nil
}

// DeleteGroup removes a group and cascades to its members, expenses and
// notifications.
func (s *LedgerService) DeleteGroup(ctx context.Context, req *connect.Request[DeleteGroupRequest]) (*connect.Response[DeleteGroupResponse], error) {
	slog.Info("DeleteGroup request received", "group_id", req.Msg.GroupID)

	if err := s.ledger.DeleteGroup(ctx, req.Msg.GroupID); err != nil {
		slog.Error("DeleteGroup failed", "group_id", req.Msg.GroupID, "error", err)
		return nil, rpcError(err)
	}

	slog.Info("Group deleted", "group_id", req.Msg.GroupID)
	return connect.NewResponse(&DeleteGroupResponse{}), nil
}

// AddMember appends a member to a group.
func (s *LedgerService) AddMember(ctx context.Context, req *connect.Request[AddMemberRequest]) (*connect.Response[AddMemberResponse], error) {
	slog.Info("AddMember request received", "group_id", req.Msg.GroupID, "name", req.Msg.Name)

	member, err := s.ledger.AddMember(ctx, req.Msg.GroupID, req.Msg.Name)
	if err != nil {
		slog.Error("AddMember failed", "error", err)
		return nil, rpcError(err)
	}

	// The member list changed: try to link unlinked members to the
	// requesting user's profile.
	s.autoLinkMembers(ctx, req.Msg.GroupID)

	return connect.NewResponse(&AddMemberResponse{Member: toMember(member)}), nil
}

// ListMembers retrieves a group's members.
func (s *LedgerService) ListMembers(ctx context.Context, req *connect.Request[ListMembersRequest]) (*connect.Response[ListMembersResponse], error) {
	s.autoLinkMembers(ctx, req.Msg.GroupID)

	members, err := s.ledger.Members(ctx, req.Msg.GroupID)
	if err != nil {
		slog.Error("ListMembers failed", "group_id", req.Msg.GroupID, "error", err)
		return nil, rpcError(err)
	}

	out := make([]Member, len(members))
	for i := range members {
		out[i] = toMember(&members[i])
	}
	return connect.NewResponse(&ListMembersResponse{Members: out}), nil
}

// AddExpense records a new expense.
func (s *LedgerService) AddExpense(ctx context.Context, req *connect.Request[AddExpenseRequest]) (*connect.Response[AddExpenseResponse], error) {
	slog.Info("AddExpense request received",
		"group_id", req.Msg.GroupID,
		"title", req.Msg.Title,
		"amount", req.Msg.Amount,
		"participants_count", len(req.Msg.Participants),
	)

	expense, err := s.ledger.AddExpense(ctx, req.Msg.GroupID, req.Msg.Title, req.Msg.Amount, req.Msg.PaidBy, req.Msg.Participants)
	if err != nil {
		slog.Error("AddExpense failed", "error", err)
		return nil, rpcError(err)
	}
	metrics.ExpensesRecorded.Inc()

	slog.Info("Expense recorded", "expense_id", expense.ID, "group_id", expense.GroupID)
	return connect.NewResponse(&AddExpenseResponse{Expense: toExpense(expense)}), nil
}

// RemoveExpense deletes an expense; removing an absent expense succeeds.
func (s *LedgerService) RemoveExpense(ctx context.Context, req *connect.Request[RemoveExpenseRequest]) (*connect.Response[RemoveExpenseResponse], error) {
	if err := s.ledger.RemoveExpense(ctx, req.Msg.GroupID, req.Msg.ExpenseID); err != nil {
		slog.Error("RemoveExpense failed", "expense_id", req.Msg.ExpenseID, "error", err)
		return nil, rpcError(err)
	}
	return connect.NewResponse(&RemoveExpenseResponse{}), nil
}

// ListExpenses retrieves a group's expenses, newest first.
func (s *LedgerService) ListExpenses(ctx context.Context, req *connect.Request[ListExpensesRequest]) (*connect.Response[ListExpensesResponse], error) {
	expenses, err := s.ledger.Expenses(ctx, req.Msg.GroupID)
	if err != nil {
		slog.Error("ListExpenses failed", "group_id", req.Msg.GroupID, "error", err)
		return nil, rpcError(err)
	}

	out := make([]Expense, len(expenses))
	for i := range expenses {
		out[i] = toExpense(&expenses[i])
	}
	return connect.NewResponse(&ListExpensesResponse{Expenses: out}), nil
}

// GetBalances derives the current net balance for every member of a group.
func (s *LedgerService) GetBalances(ctx context.Context, req *connect.Request[GetBalancesRequest]) (*connect.Response[GetBalancesResponse], error) {
	balances, err := s.ledger.Balances(ctx, req.Msg.GroupID)
	if err != nil {
		slog.Error("GetBalances failed", "group_id", req.Msg.GroupID, "error", err)
		return nil, rpcError(err)
	}

	out := make([]Balance, len(balances))
	for i, b := range balances {
		out[i] = Balance{MemberID: b.MemberID, Amount: b.Amount}
	}
	return connect.NewResponse(&GetBalancesResponse{Balances: out}), nil
}

// autoLinkMembers back-fills member emails from the requesting user's
// profile. Best-effort: failures are logged, never surfaced to the caller.
func (s *LedgerService) autoLinkMembers(ctx context.Context, groupID string) {
	email := middleware.GetEmail(ctx)
	if email == "" {
		return
	}
	profile, err := s.store.GetProfileByEmail(ctx, email)
	if err != nil {
		slog.Warn("autoLinkMembers: failed to get profile", "email", email, "error", err)
		return
	}
	if profile == nil {
		return
	}
	members, err := s.store.ListMembers(ctx, groupID)
	if err != nil {
		slog.Warn("autoLinkMembers: failed to list members", "group_id", groupID, "error", err)
		return
	}
	if linked := s.workflow.AutoLink(ctx, members, profile); linked > 0 {
		slog.Info("Auto-linked members to profile", "group_id", groupID, "email", email, "linked", linked)
	}
}
