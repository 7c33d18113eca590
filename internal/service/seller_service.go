package service

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/sello-market/sello-backend/internal/apperrors"
	"github.com/sello-market/sello-backend/internal/models"
	"github.com/sello-market/sello-backend/internal/repository"
)

// SellerService handles seller registration and moderation.
type SellerService struct {
	sellerRepo repository.SellerRepository
	logger     *slog.Logger
}

// NewSellerService creates a new seller service.
func NewSellerService(sellerRepo repository.SellerRepository, logger *slog.Logger) *SellerService {
	return &SellerService{sellerRepo: sellerRepo, logger: logger}
}

// Register stores a new seller registration in pending status.
func (s *SellerService) Register(ctx context.Context, req *models.RegisterSellerRequest) (*models.Seller, error) {
	if strings.TrimSpace(req.Name) == "" {
		return nil, apperrors.NewValidationError("name", "store name is required")
	}
	if strings.TrimSpace(req.Email) == "" {
		return nil, apperrors.NewValidationError("email", "contact email is required")
	}

	seller := &models.Seller{
		ID:          uuid.NewString(),
		Name:        strings.TrimSpace(req.Name),
		ContactName: req.ContactName,
		Email:       strings.TrimSpace(req.Email),
		Phone:       req.Phone,
		City:        req.City,
		Description: req.Description,
		Instagram:   req.Instagram,
		Website:     req.Website,
		Status:      models.SellerStatusPending,
		CreatedAt:   time.Now(),
	}

	if err := s.sellerRepo.Create(ctx, seller); err != nil {
		return nil, err
	}

	s.logger.Info("seller registration received", "seller_id", seller.ID, "name", seller.Name)
	return seller, nil
}

// MyRegistration resolves a seller's own registration by contact email.
func (s *SellerService) MyRegistration(ctx context.Context, email string) (*models.Seller, error) {
	if strings.TrimSpace(email) == "" {
		return nil, apperrors.NewValidationError("email", "email is required")
	}
	return s.sellerRepo.FindByEmail(ctx, email)
}

// ListSellers returns all sellers for the admin console.
func (s *SellerService) ListSellers(ctx context.Context) ([]*models.Seller, error) {
	return s.sellerRepo.List(ctx)
}

// UpdateSellerStatus applies an admin moderation transition. Values
// outside {pending, approved, blocked} are rejected without touching
// the stored row.
func (s *SellerService) UpdateSellerStatus(ctx context.Context, id string, status models.SellerStatus) (*models.Seller, error) {
	if !models.IsAllowedSellerStatus(status) {
		return nil, apperrors.NewValidationError("status",
			fmt.Sprintf("status must be one of [%s %s %s]",
				models.SellerStatusPending, models.SellerStatusApproved, models.SellerStatusBlocked))
	}
	return s.sellerRepo.UpdateStatus(ctx, id, status)
}
