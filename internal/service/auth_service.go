package service

import (
	"context"
	"log/slog"

	"connectrpc.com/connect"

	"github.com/orbiapp/splitease/internal/auth"
	"github.com/orbiapp/splitease/internal/middleware"
	"github.com/orbiapp/splitease/internal/storage"
)

// AuthService implements registration, login and profile maintenance for the
// identity collaborator.
type AuthService struct {
	authenticator auth.Authenticator
	jwtManager    *auth.JWTManager
	store         storage.Store
}

// NewAuthService creates a new authentication service.
func NewAuthService(authenticator auth.Authenticator, jwtManager *auth.JWTManager, store storage.Store) *AuthService {
	return &AuthService{
		authenticator: authenticator,
		jwtManager:    jwtManager,
		store:         store,
	}
}

// Register creates a new profile and returns a session token.
func (s *AuthService) Register(ctx context.Context, req *connect.Request[RegisterRequest]) (*connect.Response[RegisterResponse], error) {
	slog.Info("Register request", "email", req.Msg.Email)

	if req.Msg.Email == "" || req.Msg.DisplayName == "" {
		return nil, connect.NewError(connect.CodeInvalidArgument, auth.ErrInvalidCredentials)
	}

	profile, err := s.authenticator.Register(ctx, req.Msg.Email, req.Msg.DisplayName, req.Msg.Password)
	if err != nil {
		slog.Error("Registration failed", "email", req.Msg.Email, "error", err)
		if err == auth.ErrEmailExists {
			return nil, connect.NewError(connect.CodeAlreadyExists, err)
		}
		if err == auth.ErrWeakPassword {
			return nil, connect.NewError(connect.CodeInvalidArgument, err)
		}
		return nil, connect.NewError(connect.CodeInternal, err)
	}

	token, err := s.jwtManager.Generate(profile)
	if err != nil {
		slog.Error("Failed to generate token", "user_id", profile.ID, "error", err)
		return nil, connect.NewError(connect.CodeInternal, err)
	}

	slog.Info("Profile registered", "user_id", profile.ID, "email", profile.Email)
	return connect.NewResponse(&RegisterResponse{
		Profile: toProfile(profile),
		Token:   token,
	}), nil
}

// Login authenticates a user and returns a session token.
func (s *AuthService) Login(ctx context.Context, req *connect.Request[LoginRequest]) (*connect.Response[LoginResponse], error) {
	slog.Info("Login request", "email", req.Msg.Email)

	if req.Msg.Email == "" || req.Msg.Password == "" {
		return nil, connect.NewError(connect.CodeInvalidArgument, auth.ErrInvalidCredentials)
	}

	profile, err := s.authenticator.Authenticate(ctx, req.Msg.Email, req.Msg.Password)
	if err != nil {
		slog.Warn("Login failed", "email", req.Msg.Email, "error", err)
		return nil, connect.NewError(connect.CodeUnauthenticated, auth.ErrInvalidCredentials)
	}

	token, err := s.jwtManager.Generate(profile)
	if err != nil {
		slog.Error("Failed to generate token", "user_id", profile.ID, "error", err)
		return nil, connect.NewError(connect.CodeInternal, err)
	}

	slog.Info("Login successful", "user_id", profile.ID, "email", profile.Email)
	return connect.NewResponse(&LoginResponse{
		Profile: toProfile(profile),
		Token:   token,
	}), nil
}

// GetCurrentUser returns the authenticated user's profile.
func (s *AuthService) GetCurrentUser(ctx context.Context, req *connect.Request[GetCurrentUserRequest]) (*connect.Response[GetCurrentUserResponse], error) {
	userID := middleware.GetUserID(ctx)
	if userID == "" {
		return nil, connect.NewError(connect.CodeUnauthenticated, auth.ErrMissingToken)
	}

	profile, err := s.store.GetProfileByID(ctx, userID)
	if err != nil {
		slog.Error("GetCurrentUser failed", "user_id", userID, "error", err)
		return nil, connect.NewError(connect.CodeInternal, err)
	}
	if profile == nil {
		return nil, connect.NewError(connect.CodeNotFound, storage.ErrNotFound)
	}

	return connect.NewResponse(&GetCurrentUserResponse{Profile: toProfile(profile)}), nil
}

// UpdatePaymentHandle sets the authenticated user's payment handle, which
// settlement uses to build payment links addressed to them.
func (s *AuthService) UpdatePaymentHandle(ctx context.Context, req *connect.Request[UpdatePaymentHandleRequest]) (*connect.Response[UpdatePaymentHandleResponse], error) {
	userID := middleware.GetUserID(ctx)
	if userID == "" {
		return nil, connect.NewError(connect.CodeUnauthenticated, auth.ErrMissingToken)
	}

	if err := s.store.UpdatePaymentHandle(ctx, userID, req.Msg.PaymentHandle); err != nil {
		slog.Error("UpdatePaymentHandle failed", "user_id", userID, "error", err)
		return nil, rpcError(err)
	}

	profile, err := s.store.GetProfileByID(ctx, userID)
	if err != nil {
		slog.Error("Failed to fetch updated profile", "user_id", userID, "error", err)
		return nil, connect.NewError(connect.CodeInternal, err)
	}

	slog.Info("Payment handle updated", "user_id", userID)
	return connect.NewResponse(&UpdatePaymentHandleResponse{Profile: toProfile(profile)}), nil
}
