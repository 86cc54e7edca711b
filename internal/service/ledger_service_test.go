package service

import (
	"context"
	"testing"

	"connectrpc.com/connect"

	"github.com/orbiapp/splitease/internal/models"
)

func TestCreateGroupRPC(t *testing.T) {
	env := newTestEnv(t, "u1", "alice@example.com")

	res, err := call[CreateGroupRequest, CreateGroupResponse](t, env, LedgerCreateGroupProcedure,
		&CreateGroupRequest{Name: "Trip Goa"})
	if err != nil {
		t.Fatalf("CreateGroup failed: %v", err)
	}
	if res.Group.ID == "" || res.Group.Name != "Trip Goa" {
		t.Errorf("group = %+v", res.Group)
	}
	if res.Group.Currency != models.DefaultCurrency {
		t.Errorf("currency = %q, want %q", res.Group.Currency, models.DefaultCurrency)
	}

	_, err = call[CreateGroupRequest, CreateGroupResponse](t, env, LedgerCreateGroupProcedure,
		&CreateGroupRequest{Name: "   "})
	wantCode(t, err, connect.CodeInvalidArgument)
}

func TestExpenseFlowRPC(t *testing.T) {
	env := newTestEnv(t, "u1", "alice@example.com")

	group, err := call[CreateGroupRequest, CreateGroupResponse](t, env, LedgerCreateGroupProcedure,
		&CreateGroupRequest{Name: "Trip"})
	if err != nil {
		t.Fatalf("CreateGroup failed: %v", err)
	}
	groupID := group.Group.ID

	var memberIDs []string
	for _, name := range []string{"Alice", "Bob", "Carol"} {
		m, err := call[AddMemberRequest, AddMemberResponse](t, env, LedgerAddMemberProcedure,
			&AddMemberRequest{GroupID: groupID, Name: name})
		if err != nil {
			t.Fatalf("AddMember(%s) failed: %v", name, err)
		}
		memberIDs = append(memberIDs, m.Member.ID)
	}

	// Expense without a participant list splits across all current members.
	exp, err := call[AddExpenseRequest, AddExpenseResponse](t, env, LedgerAddExpenseProcedure,
		&AddExpenseRequest{GroupID: groupID, Title: "Dinner", Amount: 90, PaidBy: memberIDs[0]})
	if err != nil {
		t.Fatalf("AddExpense failed: %v", err)
	}
	if len(exp.Expense.Participants) != 3 {
		t.Errorf("participants = %v, want all 3 members", exp.Expense.Participants)
	}

	balances, err := call[GetBalancesRequest, GetBalancesResponse](t, env, LedgerGetBalancesProcedure,
		&GetBalancesRequest{GroupID: groupID})
	if err != nil {
		t.Fatalf("GetBalances failed: %v", err)
	}
	want := map[string]float64{memberIDs[0]: 60, memberIDs[1]: -30, memberIDs[2]: -30}
	for _, b := range balances.Balances {
		if b.Amount != want[b.MemberID] {
			t.Errorf("balance for %s = %v, want %v", b.MemberID, b.Amount, want[b.MemberID])
		}
	}

	// Removing the expense zeroes everything; removing again still succeeds.
	for i := 0; i < 2; i++ {
		_, err = call[RemoveExpenseRequest, RemoveExpenseResponse](t, env, LedgerRemoveExpenseProcedure,
			&RemoveExpenseRequest{GroupID: groupID, ExpenseID: exp.Expense.ID})
		if err != nil {
			t.Fatalf("RemoveExpense (attempt %d) failed: %v", i+1, err)
		}
	}
	expenses, err := call[ListExpensesRequest, ListExpensesResponse](t, env, LedgerListExpensesProcedure,
		&ListExpensesRequest{GroupID: groupID})
	if err != nil {
		t.Fatalf("ListExpenses failed: %v", err)
	}
	if len(expenses.Expenses) != 0 {
		t.Errorf("expected no expenses, got %d", len(expenses.Expenses))
	}
}

func TestAddExpenseRPC_Errors(t *testing.T) {
	env := newTestEnv(t, "u1", "alice@example.com")

	group, _ := call[CreateGroupRequest, CreateGroupResponse](t, env, LedgerCreateGroupProcedure,
		&CreateGroupRequest{Name: "Trip"})
	member, _ := call[AddMemberRequest, AddMemberResponse](t, env, LedgerAddMemberProcedure,
		&AddMemberRequest{GroupID: group.Group.ID, Name: "Alice"})

	_, err := call[AddExpenseRequest, AddExpenseResponse](t, env, LedgerAddExpenseProcedure,
		&AddExpenseRequest{GroupID: group.Group.ID, Title: "Dinner", Amount: -1, PaidBy: member.Member.ID})
	wantCode(t, err, connect.CodeInvalidArgument)

	_, err = call[AddExpenseRequest, AddExpenseResponse](t, env, LedgerAddExpenseProcedure,
		&AddExpenseRequest{GroupID: "missing", Title: "Dinner", Amount: 10, PaidBy: member.Member.ID})
	wantCode(t, err, connect.CodeNotFound)
}

func TestDeleteGroupRPC(t *testing.T) {
	env := newTestEnv(t, "u1", "alice@example.com")

	group, _ := call[CreateGroupRequest, CreateGroupResponse](t, env, LedgerCreateGroupProcedure,
		&CreateGroupRequest{Name: "Trip"})

	if _, err := call[DeleteGroupRequest, DeleteGroupResponse](t, env, LedgerDeleteGroupProcedure,
		&DeleteGroupRequest{GroupID: group.Group.ID}); err != nil {
		t.Fatalf("DeleteGroup failed: %v", err)
	}

	groups, err := call[ListGroupsRequest, ListGroupsResponse](t, env, LedgerListGroupsProcedure,
		&ListGroupsRequest{})
	if err != nil {
		t.Fatalf("ListGroups failed: %v", err)
	}
	if len(groups.Groups) != 0 {
		t.Errorf("expected no groups after delete, got %d", len(groups.Groups))
	}
}

// TestListMembersRPC_AutoLink verifies that reading the member list links
// members matching the caller's display name to the caller's email.
func TestListMembersRPC_AutoLink(t *testing.T) {
	env := newTestEnv(t, "u1", "alice@example.com")
	ctx := context.Background()

	profile := models.NewProfile("alice@example.com", "Alice", "hash")
	if err := env.store.CreateProfile(ctx, profile); err != nil {
		t.Fatalf("CreateProfile failed: %v", err)
	}

	group, _ := call[CreateGroupRequest, CreateGroupResponse](t, env, LedgerCreateGroupProcedure,
		&CreateGroupRequest{Name: "Trip"})
	if _, err := call[AddMemberRequest, AddMemberResponse](t, env, LedgerAddMemberProcedure,
		&AddMemberRequest{GroupID: group.Group.ID, Name: "Alice"}); err != nil {
		t.Fatalf("AddMember failed: %v", err)
	}

	members, err := call[ListMembersRequest, ListMembersResponse](t, env, LedgerListMembersProcedure,
		&ListMembersRequest{GroupID: group.Group.ID})
	if err != nil {
		t.Fatalf("ListMembers failed: %v", err)
	}
	if len(members.Members) != 1 {
		t.Fatalf("expected 1 member, got %d", len(members.Members))
	}
	if members.Members[0].Email != "alice@example.com" {
		t.Errorf("member email = %q, want auto-linked alice@example.com", members.Members[0].Email)
	}
}
