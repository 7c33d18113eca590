package service

import (
	"context"
	"log/slog"
	"strings"
	"testing"

	"github.com/sello-market/sello-backend/internal/apperrors"
	"github.com/sello-market/sello-backend/internal/models"
	"github.com/sello-market/sello-backend/internal/repository"
)

// fakeSellerRepo is an in-memory SellerRepository.
type fakeSellerRepo struct {
	sellers map[string]*models.Seller
}

var _ repository.SellerRepository = (*fakeSellerRepo)(nil)

func newFakeSellerRepo() *fakeSellerRepo {
	return &fakeSellerRepo{sellers: make(map[string]*models.Seller)}
}

func (f *fakeSellerRepo) Create(ctx context.Context, seller *models.Seller) error {
	copied := *seller
	f.sellers[seller.ID] = &copied
	return nil
}

func (f *fakeSellerRepo) GetByID(ctx context.Context, id string) (*models.Seller, error) {
	seller, ok := f.sellers[id]
	if !ok {
		return nil, apperrors.ErrNotFound
	}
	copied := *seller
	return &copied, nil
}

func (f *fakeSellerRepo) FindByEmail(ctx context.Context, email string) (*models.Seller, error) {
	for _, seller := range f.sellers {
		if strings.EqualFold(seller.Email, email) {
			copied := *seller
			return &copied, nil
		}
	}
	return nil, apperrors.ErrNotFound
}

func (f *fakeSellerRepo) UpdateStatus(ctx context.Context, id string, status models.SellerStatus) (*models.Seller, error) {
	seller, ok := f.sellers[id]
	if !ok {
		return nil, apperrors.ErrNotFound
	}
	seller.Status = status
	copied := *seller
	return &copied, nil
}

func (f *fakeSellerRepo) List(ctx context.Context) ([]*models.Seller, error) {
	out := make([]*models.Seller, 0, len(f.sellers))
	for _, seller := range f.sellers {
		copied := *seller
		out = append(out, &copied)
	}
	return out, nil
}

func TestRegisterSeller(t *testing.T) {
	repo := newFakeSellerRepo()
	svc := NewSellerService(repo, slog.Default())

	seller, err := svc.Register(context.Background(), &models.RegisterSellerRequest{
		Name:        "  Уютный дом  ",
		ContactName: "Анна",
		Email:       " shop@example.com ",
		City:        "Казань",
	})
	if err != nil {
		t.Fatalf("Register() unexpected error: %v", err)
	}

	if seller.Status != models.SellerStatusPending {
		t.Errorf("Status = %s, want pending", seller.Status)
	}
	if seller.Name != "Уютный дом" {
		t.Errorf("Name = %q, want trimmed", seller.Name)
	}
	if seller.Email != "shop@example.com" {
		t.Errorf("Email = %q, want trimmed", seller.Email)
	}
	if seller.ID == "" {
		t.Error("ID not assigned")
	}
	if _, ok := repo.sellers[seller.ID]; !ok {
		t.Error("seller not persisted")
	}
}

func TestRegisterSellerValidation(t *testing.T) {
	svc := NewSellerService(newFakeSellerRepo(), slog.Default())

	tests := []struct {
		name      string
		req       *models.RegisterSellerRequest
		wantField string
	}{
		{
			name:      "missing name",
			req:       &models.RegisterSellerRequest{Email: "shop@example.com"},
			wantField: "name",
		},
		{
			name:      "blank name",
			req:       &models.RegisterSellerRequest{Name: "   ", Email: "shop@example.com"},
			wantField: "name",
		},
		{
			name:      "missing email",
			req:       &models.RegisterSellerRequest{Name: "Store"},
			wantField: "email",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.Register(context.Background(), tt.req)
			verr, ok := err.(*apperrors.ValidationError)
			if !ok {
				t.Fatalf("error = %v, want ValidationError", err)
			}
			if verr.Field != tt.wantField {
				t.Errorf("Field = %s, want %s", verr.Field, tt.wantField)
			}
		})
	}
}

func TestMyRegistration(t *testing.T) {
	repo := newFakeSellerRepo()
	svc := NewSellerService(repo, slog.Default())

	created, err := svc.Register(context.Background(), &models.RegisterSellerRequest{
		Name:  "Store",
		Email: "shop@example.com",
	})
	if err != nil {
		t.Fatalf("Register() error: %v", err)
	}

	found, err := svc.MyRegistration(context.Background(), "shop@example.com")
	if err != nil {
		t.Fatalf("MyRegistration() unexpected error: %v", err)
	}
	if found.ID != created.ID {
		t.Errorf("ID = %s, want %s", found.ID, created.ID)
	}

	if _, err := svc.MyRegistration(context.Background(), ""); err == nil {
		t.Error("expected validation error for empty email")
	}

	if _, err := svc.MyRegistration(context.Background(), "other@example.com"); err != apperrors.ErrNotFound {
		t.Errorf("error = %v, want ErrNotFound", err)
	}
}

func TestUpdateSellerStatus(t *testing.T) {
	repo := newFakeSellerRepo()
	svc := NewSellerService(repo, slog.Default())

	created, err := svc.Register(context.Background(), &models.RegisterSellerRequest{
		Name:  "Store",
		Email: "shop@example.com",
	})
	if err != nil {
		t.Fatalf("Register() error: %v", err)
	}

	for _, status := range []models.SellerStatus{
		models.SellerStatusApproved,
		models.SellerStatusBlocked,
		models.SellerStatusPending,
	} {
		updated, err := svc.UpdateSellerStatus(context.Background(), created.ID, status)
		if err != nil {
			t.Fatalf("UpdateSellerStatus(%s) unexpected error: %v", status, err)
		}
		if updated.Status != status {
			t.Errorf("Status = %s, want %s", updated.Status, status)
		}
	}
}

func TestUpdateSellerStatusRejectsUnknownValue(t *testing.T) {
	repo := newFakeSellerRepo()
	svc := NewSellerService(repo, slog.Default())

	created, err := svc.Register(context.Background(), &models.RegisterSellerRequest{
		Name:  "Store",
		Email: "shop@example.com",
	})
	if err != nil {
		t.Fatalf("Register() error: %v", err)
	}

	if _, err := svc.UpdateSellerStatus(context.Background(), created.ID, "deleted"); err == nil {
		t.Fatal("expected validation error for unknown status")
	}
	stored, _ := repo.GetByID(context.Background(), created.ID)
	if stored.Status != models.SellerStatusPending {
		t.Errorf("stored status mutated to %s", stored.Status)
	}
}
