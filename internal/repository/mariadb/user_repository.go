package mariadb

import (
	"context"
	"database/sql"
	"log"
	"time"

	"github.com/fjallet/uploadbox-go/internal/db"
	"github.com/fjallet/uploadbox-go/internal/model"
	"github.com/fjallet/uploadbox-go/internal/port"
)

type UserRepository struct {
	db *sql.DB
}

// compile-time check: *UserRepository must satisfy port.UserRepository
var _ port.UserRepository = (*UserRepository)(nil)

func NewUserRepository(db *sql.DB) *UserRepository {
	return &UserRepository{db: db}
}

func (r *UserRepository) Create(ctx context.Context, user *model.User) error {
	log.Printf("creating database record for user %q...", user.Email)

	const query = `
      INSERT INTO users
        (id, email, password_hash, display_name, email_verified, verify_code_hash, verify_code_expires_at)
      VALUES (?, ?, ?, ?, ?, ?, ?)
    `
	_, err := r.db.ExecContext(ctx, query,
		user.ID, user.Email, user.PasswordHash,
		user.DisplayName, user.EmailVerified,
		user.VerifyCodeHash, user.VerifyCodeExpiresAt,
	)
	if err != nil {
		return err
	}

	return nil
}

func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*model.User, error) {
	log.Printf("fetching user %q from the database...", email)

	const query = `
      SELECT id, email, password_hash, display_name, email_verified, verify_code_hash, verify_code_expires_at, created_at, updated_at
      FROM users
      WHERE email = ?
    `
	return r.scanUser(r.db.QueryRowContext(ctx, query, email))
}

func (r *UserRepository) GetByID(ctx context.Context, ID db.UUID) (*model.User, error) {
	log.Printf("fetching user #%s from the database...", ID)

	const query = `
      SELECT id, email, password_hash, display_name, email_verified, verify_code_hash, verify_code_expires_at, created_at, updated_at
      FROM users
      WHERE id = ?
    `
	return r.scanUser(r.db.QueryRowContext(ctx, query, ID))
}

func (r *UserRepository) SetVerificationCode(ctx context.Context, ID db.UUID, codeHash string, expiresAt time.Time) error {
	log.Printf("setting a new verification code for user #%s...", ID)

	const query = `
      UPDATE users
      SET
        verify_code_hash       = ?,
        verify_code_expires_at = ?
      WHERE id = ?
    `
	_, err := r.db.ExecContext(ctx, query, codeHash, expiresAt, ID)
	if err != nil {
		return err
	}

	return nil
}

func (r *UserRepository) MarkVerified(ctx context.Context, ID db.UUID) error {
	log.Printf("marking user #%s as verified...", ID)

	const query = `
      UPDATE users
      SET
        email_verified         = TRUE,
        verify_code_hash       = NULL,
        verify_code_expires_at = NULL
      WHERE id = ?
    `
	_, err := r.db.ExecContext(ctx, query, ID)
	if err != nil {
		return err
	}

	return nil
}

func (r *UserRepository) scanUser(row *sql.Row) (*model.User, error) {
	var user model.User
	if err := row.Scan(
		&user.ID, &user.Email, &user.PasswordHash,
		&user.DisplayName, &user.EmailVerified,
		&user.VerifyCodeHash, &user.VerifyCodeExpiresAt,
		&user.CreatedAt, &user.UpdatedAt,
	); err != nil {
		return nil, err
	}
	return &user, nil
}
