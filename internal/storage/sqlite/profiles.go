package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/orbiapp/splitease/internal/models"
	"github.com/orbiapp/splitease/internal/storage"
)

// CreateProfile inserts a new user profile into the database.
func (s *SQLiteStore) CreateProfile(ctx context.Context, profile *models.Profile) error {
	query := `
		INSERT INTO profiles (id, email, display_name, payment_handle, password_hash, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`

	_, err := s.db.ExecContext(ctx, query,
		profile.ID,
		profile.Email,
		profile.DisplayName,
		profile.PaymentHandle,
		profile.PasswordHash,
		profile.CreatedAt,
		profile.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create profile: %w", err)
	}
	return nil
}

// GetProfileByEmail retrieves a profile by email address.
// Returns (nil, nil) when no profile exists for the email.
func (s *SQLiteStore) GetProfileByEmail(ctx context.Context, email string) (*models.Profile, error) {
	return s.getProfile(ctx, "email", email)
}

// GetProfileByID retrieves a profile by ID.
// Returns (nil, nil) when no profile exists for the ID.
func (s *SQLiteStore) GetProfileByID(ctx context.Context, id string) (*models.Profile, error) {
	return s.getProfile(ctx, "id", id)
}

func (s *SQLiteStore) getProfile(ctx context.Context, column, value string) (*models.Profile, error) {
	query := fmt.Sprintf(`
		SELECT id, email, display_name, payment_handle, password_hash, created_at, updated_at
		FROM profiles
		WHERE %s = ?
	`, column)

	profile := &models.Profile{}
	err := s.db.QueryRowContext(ctx, query, value).Scan(
		&profile.ID,
		&profile.Email,
		&profile.DisplayName,
		&profile.PaymentHandle,
		&profile.PasswordHash,
		&profile.CreatedAt,
		&profile.UpdatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, nil // Profile not found
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get profile by %s: %w", column, err)
	}
	return profile, nil
}

// UpdatePaymentHandle sets the payment handle on a profile.
func (s *SQLiteStore) UpdatePaymentHandle(ctx context.Context, profileID, handle string) error {
	res, err := s.db.ExecContext(ctx,
		"UPDATE profiles SET payment_handle = ?, updated_at = ? WHERE id = ?",
		handle, time.Now().Unix(), profileID,
	)
	if err != nil {
		return fmt.Errorf("failed to update payment handle: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check profile update: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("profile %s: %w", profileID, storage.ErrNotFound)
	}
	return nil
}
