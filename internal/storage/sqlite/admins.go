package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/mmynk/farebonus/internal/models"
	"github.com/mmynk/farebonus/internal/storage"
)

// CreateAdmin inserts a new admin into the database.
func (s *SQLiteStore) CreateAdmin(ctx context.Context, admin *models.Admin) error {
	query := `
		INSERT INTO admins (id, email, display_name, password_hash, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?)
	`

	_, err := s.db.ExecContext(ctx, query,
		admin.ID,
		admin.Email,
		admin.DisplayName,
		admin.PasswordHash,
		admin.CreatedAt,
		admin.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create admin: %w", err)
	}

	return nil
}

// GetAdminByEmail retrieves an admin by email address.
func (s *SQLiteStore) GetAdminByEmail(ctx context.Context, email string) (*models.Admin, error) {
	return s.getAdmin(ctx, "email", email)
}

// GetAdminByID retrieves an admin by ID.
func (s *SQLiteStore) GetAdminByID(ctx context.Context, id string) (*models.Admin, error) {
	return s.getAdmin(ctx, "id", id)
}

// getAdmin looks an admin up by column. column is never user input.
func (s *SQLiteStore) getAdmin(ctx context.Context, column, value string) (*models.Admin, error) {
	query := `
		SELECT id, email, display_name, password_hash, created_at, updated_at
		FROM admins
		WHERE ` + column + ` = ?`

	admin := &models.Admin{}
	err := s.db.QueryRowContext(ctx, query, value).Scan(
		&admin.ID,
		&admin.Email,
		&admin.DisplayName,
		&admin.PasswordHash,
		&admin.CreatedAt,
		&admin.UpdatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("admin %s: %w", value, storage.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get admin by %s: %w", column, err)
	}

	return admin, nil
}
