package service

import (
	"net/http"

	"connectrpc.com/connect"

	"github.com/orbiapp/splitease/internal/rpc"
)

// Procedure names follow the Connect convention of
// "/<package>.<version>.<Service>/<Method>".
const (
	LedgerCreateGroupProcedure   = "/splitease.v1.LedgerService/CreateGroup"
	LedgerListGroupsProcedure    = "/splitease.v1.LedgerService/ListGroups"
	LedgerDeleteGroupProcedure   = "/splitease.v1.LedgerService/DeleteGroup"
	LedgerAddMemberProcedure     = "/splitease.v1.LedgerService/AddMember"
	LedgerListMembersProcedure   = "/splitease.v1.LedgerService/ListMembers"
	LedgerAddExpenseProcedure    = "/splitease.v1.LedgerService/AddExpense"
	LedgerRemoveExpenseProcedure = "/splitease.v1.LedgerService/RemoveExpense"
	LedgerListExpensesProcedure  = "/splitease.v1.LedgerService/ListExpenses"
	LedgerGetBalancesProcedure   = "/splitease.v1.LedgerService/GetBalances"

	SettlementSendNotificationProcedure     = "/splitease.v1.SettlementService/SendNotification"
	SettlementListNotificationsProcedure    = "/splitease.v1.SettlementService/ListNotifications"
	SettlementMarkNotificationReadProcedure = "/splitease.v1.SettlementService/MarkNotificationRead"

	AuthRegisterProcedure            = "/splitease.v1.AuthService/Register"
	AuthLoginProcedure               = "/splitease.v1.AuthService/Login"
	AuthGetCurrentUserProcedure      = "/splitease.v1.AuthService/GetCurrentUser"
	AuthUpdatePaymentHandleProcedure = "/splitease.v1.AuthService/UpdatePaymentHandle"
)

// withCodec prepends the JSON codec so callers only pass interceptors.
func withCodec(opts []connect.HandlerOption) []connect.HandlerOption {
	return append([]connect.HandlerOption{rpc.Codec()}, opts...)
}

// NewLedgerServiceHandler mounts every LedgerService procedure on one
// http.Handler and returns the path prefix to register it under.
func NewLedgerServiceHandler(svc *LedgerService, opts ...connect.HandlerOption) (string, http.Handler) {
	opts = withCodec(opts)
	mux := http.NewServeMux()
	mux.Handle(LedgerCreateGroupProcedure, connect.NewUnaryHandler(LedgerCreateGroupProcedure, svc.CreateGroup, opts...))
	mux.Handle(LedgerListGroupsProcedure, connect.NewUnaryHandler(LedgerListGroupsProcedure, svc.ListGroups, opts...))
	mux.Handle(LedgerDeleteGroupProcedure, connect.NewUnaryHandler(LedgerDeleteGroupProcedure, svc.DeleteGroup, opts...))
	mux.Handle(LedgerAddMemberProcedure, connect.NewUnaryHandler(LedgerAddMemberProcedure, svc.AddMember, opts...))
	mux.Handle(LedgerListMembersProcedure, connect.NewUnaryHandler(LedgerListMembersProcedure, svc.ListMembers, opts...))
	mux.Handle(LedgerAddExpenseProcedure, connect.NewUnaryHandler(LedgerAddExpenseProcedure, svc.AddExpense, opts...))
	mux.Handle(LedgerRemoveExpenseProcedure, connect.NewUnaryHandler(LedgerRemoveExpenseProcedure, svc.RemoveExpense, opts...))
	mux.Handle(LedgerListExpensesProcedure, connect.NewUnaryHandler(LedgerListExpensesProcedure, svc.ListExpenses, opts...))
	mux.Handle(LedgerGetBalancesProcedure, connect.NewUnaryHandler(LedgerGetBalancesProcedure, svc.GetBalances, opts...))
	return "/splitease.v1.LedgerService/", mux
}

// NewSettlementServiceHandler mounts every SettlementService procedure.
func NewSettlementServiceHandler(svc *SettlementService, opts ...connect.HandlerOption) (string, http.Handler) {
	opts = withCodec(opts)
	mux := http.NewServeMux()
	mux.Handle(SettlementSendNotificationProcedure, connect.NewUnaryHandler(SettlementSendNotificationProcedure, svc.SendNotification, opts...))
	mux.Handle(SettlementListNotificationsProcedure, connect.NewUnaryHandler(SettlementListNotificationsProcedure, svc.ListNotifications, opts...))
	mux.Handle(SettlementMarkNotificationReadProcedure, connect.NewUnaryHandler(SettlementMarkNotificationReadProcedure, svc.MarkNotificationRead, opts...))
	return "/splitease.v1.SettlementService/", mux
}

// NewAuthServiceHandler mounts every AuthService procedure.
func NewAuthServiceHandler(svc *AuthService, opts ...connect.HandlerOption) (string, http.Handler) {
	opts = withCodec(opts)
	mux := http.NewServeMux()
	mux.Handle(AuthRegisterProcedure, connect.NewUnaryHandler(AuthRegisterProcedure, svc.Register, opts...))
	mux.Handle(AuthLoginProcedure, connect.NewUnaryHandler(AuthLoginProcedure, svc.Login, opts...))
	mux.Handle(AuthGetCurrentUserProcedure, connect.NewUnaryHandler(AuthGetCurrentUserProcedure, svc.GetCurrentUser, opts...))
	mux.Handle(AuthUpdatePaymentHandleProcedure, connect.NewUnaryHandler(AuthUpdatePaymentHandleProcedure, svc.UpdatePaymentHandle, opts...))
	return "/splitease.v1.AuthService/", mux
}
