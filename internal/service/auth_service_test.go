package service

import (
	"context"
	"testing"

	"connectrpc.com/connect"

	"github.com/orbiapp/splitease/internal/models"
)

func TestRegisterAndLoginRPC(t *testing.T) {
	env := newTestEnv(t, "", "")

	reg, err := call[RegisterRequest, RegisterResponse](t, env, AuthRegisterProcedure,
		&RegisterRequest{Email: "alice@example.com", DisplayName: "Alice", Password: "s3cret-pass"})
	if err != nil {
		t.Fatalf("Register failed: %v", err)
	}
	if reg.Token == "" {
		t.Error("expected a session token")
	}
	if reg.Profile.Email != "alice@example.com" || reg.Profile.DisplayName != "Alice" {
		t.Errorf("profile = %+v", reg.Profile)
	}

	// Same email again.
	_, err = call[RegisterRequest, RegisterResponse](t, env, AuthRegisterProcedure,
		&RegisterRequest{Email: "alice@example.com", DisplayName: "Alice", Password: "s3cret-pass"})
	wantCode(t, err, connect.CodeAlreadyExists)

	login, err := call[LoginRequest, LoginResponse](t, env, AuthLoginProcedure,
		&LoginRequest{Email: "alice@example.com", Password: "s3cret-pass"})
	if err != nil {
		t.Fatalf("Login failed: %v", err)
	}
	if login.Token == "" {
		t.Error("expected a session token")
	}
	if login.Profile.ID != reg.Profile.ID {
		t.Errorf("login profile %s, want %s", login.Profile.ID, reg.Profile.ID)
	}

	_, err = call[LoginRequest, LoginResponse](t, env, AuthLoginProcedure,
		&LoginRequest{Email: "alice@example.com", Password: "wrong"})
	wantCode(t, err, connect.CodeUnauthenticated)
}

func TestRegisterRPC_Validation(t *testing.T) {
	env := newTestEnv(t, "", "")

	_, err := call[RegisterRequest, RegisterResponse](t, env, AuthRegisterProcedure,
		&RegisterRequest{Email: "", DisplayName: "Alice", Password: "s3cret-pass"})
	wantCode(t, err, connect.CodeInvalidArgument)

	_, err = call[RegisterRequest, RegisterResponse](t, env, AuthRegisterProcedure,
		&RegisterRequest{Email: "a@example.com", DisplayName: "Alice", Password: "short"})
	wantCode(t, err, connect.CodeInvalidArgument)
}

func TestGetCurrentUserRPC_Unauthenticated(t *testing.T) {
	env := newTestEnv(t, "", "")
	_, err := call[GetCurrentUserRequest, GetCurrentUserResponse](t, env, AuthGetCurrentUserProcedure,
		&GetCurrentUserRequest{})
	wantCode(t, err, connect.CodeUnauthenticated)
}

func TestCurrentUserAndPaymentHandleRPC(t *testing.T) {
	profile := models.NewProfile("alice@example.com", "Alice", "hash")
	env := newTestEnv(t, profile.ID, profile.Email)
	if err := env.store.CreateProfile(context.Background(), profile); err != nil {
		t.Fatalf("CreateProfile failed: %v", err)
	}

	me, err := call[GetCurrentUserRequest, GetCurrentUserResponse](t, env, AuthGetCurrentUserProcedure,
		&GetCurrentUserRequest{})
	if err != nil {
		t.Fatalf("GetCurrentUser failed: %v", err)
	}
	if me.Profile.Email != "alice@example.com" {
		t.Errorf("profile email = %q", me.Profile.Email)
	}
	if me.Profile.PaymentHandle != "" {
		t.Errorf("payment handle = %q, want empty", me.Profile.PaymentHandle)
	}

	updated, err := call[UpdatePaymentHandleRequest, UpdatePaymentHandleResponse](t, env, AuthUpdatePaymentHandleProcedure,
		&UpdatePaymentHandleRequest{PaymentHandle: "alice@upi"})
	if err != nil {
		t.Fatalf("UpdatePaymentHandle failed: %v", err)
	}
	if updated.Profile.PaymentHandle != "alice@upi" {
		t.Errorf("payment handle = %q, want alice@upi", updated.Profile.PaymentHandle)
	}
}
