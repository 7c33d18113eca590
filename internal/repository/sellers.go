package repository

import (
	"context"
	"database/sql"
	"log/slog"
	"strings"

	"github.com/sello-market/sello-backend/internal/apperrors"
	"github.com/sello-market/sello-backend/internal/models"
)

// PostgresSellerRepository implements SellerRepository using PostgreSQL.
type PostgresSellerRepository struct {
	db     *sql.DB
	logger *slog.Logger
}

var _ SellerRepository = (*PostgresSellerRepository)(nil)

// NewPostgresSellerRepository creates a new PostgreSQL seller repository.
func NewPostgresSellerRepository(db *sql.DB, logger *slog.Logger) *PostgresSellerRepository {
	return &PostgresSellerRepository{db: db, logger: logger}
}

const sellerColumns = `id, name, contact_name, email, phone, city,
	description, instagram, website, status, created_at`

// Create inserts a seller registration.
func (r *PostgresSellerRepository) Create(ctx context.Context, seller *models.Seller) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO sellers (id, name, contact_name, email, phone, city,
			description, instagram, website, status, created_at)
		VALUES ($1, $2, $3, NULLIF($4, ''), $5, $6, $7, $8, $9, $10, $11)
	`, seller.ID, seller.Name, seller.ContactName, seller.Email, seller.Phone,
		seller.City, seller.Description, seller.Instagram, seller.Website,
		seller.Status, seller.CreatedAt)
	if err != nil {
		r.logger.Error("failed to create seller", "seller_id", seller.ID, "error", err)
		return err
	}

	r.logger.Info("seller registered", "seller_id", seller.ID, "name", seller.Name)
	return nil
}

// GetByID retrieves a seller by id.
func (r *PostgresSellerRepository) GetByID(ctx context.Context, id string) (*models.Seller, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT `+sellerColumns+` FROM sellers WHERE id = $1
	`, id)

	seller, err := scanSeller(row)
	if err == sql.ErrNoRows {
		return nil, apperrors.ErrNotFound
	}
	if err != nil {
		r.logger.Error("failed to fetch seller", "seller_id", id, "error", err)
		return nil, err
	}
	return seller, nil
}

// FindByEmail resolves a seller registration by contact email,
// case-insensitively.
func (r *PostgresSellerRepository) FindByEmail(ctx context.Context, email string) (*models.Seller, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT `+sellerColumns+` FROM sellers WHERE lower(email) = lower($1)
	`, strings.TrimSpace(email))

	seller, err := scanSeller(row)
	if err == sql.ErrNoRows {
		return nil, apperrors.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return seller, nil
}

// UpdateStatus sets the moderation status and returns the updated row.
func (r *PostgresSellerRepository) UpdateStatus(ctx context.Context, id string, status models.SellerStatus) (*models.Seller, error) {
	var returnedID string
	err := r.db.QueryRowContext(ctx, `
		UPDATE sellers SET status = $2 WHERE id = $1 RETURNING id
	`, id, status).Scan(&returnedID)
	if err == sql.ErrNoRows {
		return nil, apperrors.ErrNotFound
	}
	if err != nil {
		r.logger.Error("failed to update seller status",
			"seller_id", id, "status", status, "error", err)
		return nil, err
	}

	r.logger.Info("seller status updated", "seller_id", id, "status", status)
	return r.GetByID(ctx, id)
}

// List returns all sellers, newest first.
func (r *PostgresSellerRepository) List(ctx context.Context) ([]*models.Seller, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT `+sellerColumns+` FROM sellers ORDER BY created_at DESC
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	sellers := make([]*models.Seller, 0)
	for rows.Next() {
		seller, err := scanSeller(rows)
		if err != nil {
			return nil, err
		}
		sellers = append(sellers, seller)
	}
	return sellers, rows.Err()
}

func scanSeller(row rowScanner) (*models.Seller, error) {
	var seller models.Seller
	var contactName, email, phone, city, description, instagram, website sql.NullString

	err := row.Scan(&seller.ID, &seller.Name, &contactName, &email, &phone, &city,
		&description, &instagram, &website, &seller.Status, &seller.CreatedAt)
	if err != nil {
		return nil, err
	}

	seller.ContactName = contactName.String
	seller.Email = email.String
	seller.Phone = phone.String
	seller.City = city.String
	seller.Description = description.String
	seller.Instagram = instagram.String
	seller.Website = website.String
	return &seller, nil
}
