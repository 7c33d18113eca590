package repository

import (
	"context"
	"database/sql"
	"log/slog"
	"strings"

	"github.com/sello-market/sello-backend/internal/apperrors"
	"github.com/sello-market/sello-backend/internal/models"
)

// PostgresUserRepository implements UserRepository using PostgreSQL.
type PostgresUserRepository struct {
	db     *sql.DB
	logger *slog.Logger
}

var _ UserRepository = (*PostgresUserRepository)(nil)

// NewPostgresUserRepository creates a new PostgreSQL user repository.
func NewPostgresUserRepository(db *sql.DB, logger *slog.Logger) *PostgresUserRepository {
	return &PostgresUserRepository{db: db, logger: logger}
}

const userColumns = `id, full_name, email, phone, city, role, is_verified,
	verification_code, verification_expires_at, created_at`

// FindByIdentity resolves a user by normalized email when present,
// otherwise by phone. Email comparison is case-insensitive.
func (r *PostgresUserRepository) FindByIdentity(ctx context.Context, email, phone string) (*models.User, error) {
	var row *sql.Row
	if email != "" {
		row = r.db.QueryRowContext(ctx, `
			SELECT `+userColumns+` FROM users WHERE lower(email) = lower($1)
		`, strings.TrimSpace(email))
	} else {
		row = r.db.QueryRowContext(ctx, `
			SELECT `+userColumns+` FROM users WHERE phone = $1
		`, strings.TrimSpace(phone))
	}

	user, err := scanUser(row)
	if err == sql.ErrNoRows {
		return nil, apperrors.ErrNotFound
	}
	if err != nil {
		r.logger.Error("failed to find user", "error", err)
		return nil, err
	}
	return user, nil
}

// Create inserts a new user record.
func (r *PostgresUserRepository) Create(ctx context.Context, user *models.User) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO users (id, full_name, email, phone, city, role, is_verified,
			verification_code, verification_expires_at, created_at)
		VALUES ($1, $2, NULLIF($3, ''), NULLIF($4, ''), $5, $6, $7, $8, $9, $10)
	`, user.ID, user.FullName, user.Email, user.Phone, user.City, user.Role,
		user.IsVerified, user.VerificationCode, user.VerificationExpiresAt, user.CreatedAt)
	if err != nil {
		r.logger.Error("failed to create user", "user_id", user.ID, "error", err)
		return err
	}

	r.logger.Info("user created", "user_id", user.ID, "role", user.Role)
	return nil
}

// UpdateForReissue overwrites profile fields and resets verification
// state for an existing identity. Latest request wins.
func (r *PostgresUserRepository) UpdateForReissue(ctx context.Context, user *models.User) error {
	result, err := r.db.ExecContext(ctx, `
		UPDATE users
		SET full_name = $2, phone = NULLIF($3, ''), city = $4, role = $5,
		    is_verified = false, verification_code = $6, verification_expires_at = $7
		WHERE id = $1
	`, user.ID, user.FullName, user.Phone, user.City, user.Role,
		user.VerificationCode, user.VerificationExpiresAt)
	if err != nil {
		r.logger.Error("failed to update user for reissue", "user_id", user.ID, "error", err)
		return err
	}

	if n, _ := result.RowsAffected(); n == 0 {
		return apperrors.ErrNotFound
	}

	r.logger.Info("verification reissued", "user_id", user.ID)
	return nil
}

// MarkVerified sets the verified flag and clears the one-time code.
func (r *PostgresUserRepository) MarkVerified(ctx context.Context, id string) error {
	result, err := r.db.ExecContext(ctx, `
		UPDATE users
		SET is_verified = true, verification_code = NULL, verification_expires_at = NULL
		WHERE id = $1
	`, id)
	if err != nil {
		r.logger.Error("failed to mark user verified", "user_id", id, "error", err)
		return err
	}

	if n, _ := result.RowsAffected(); n == 0 {
		return apperrors.ErrNotFound
	}

	r.logger.Info("user verified", "user_id", id)
	return nil
}

// List returns all users, newest first.
func (r *PostgresUserRepository) List(ctx context.Context) ([]*models.User, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT `+userColumns+` FROM users ORDER BY created_at DESC
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	users := make([]*models.User, 0)
	for rows.Next() {
		user, err := scanUser(rows)
		if err != nil {
			return nil, err
		}
		users = append(users, user)
	}
	return users, rows.Err()
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanUser(row rowScanner) (*models.User, error) {
	var user models.User
	var fullName, email, phone, city, code sql.NullString
	var expiresAt sql.NullTime

	err := row.Scan(&user.ID, &fullName, &email, &phone, &city, &user.Role,
		&user.IsVerified, &code, &expiresAt, &user.CreatedAt)
	if err != nil {
		return nil, err
	}

	user.FullName = fullName.String
	user.Email = email.String
	user.Phone = phone.String
	user.City = city.String
	user.VerificationCode = code.String
	if expiresAt.Valid {
		t := expiresAt.Time
		user.VerificationExpiresAt = &t
	}
	return &user, nil
}
