package service

import (
	"context"
	"fmt"
	"log/slog"
	"math/rand"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/sello-market/sello-backend/internal/apperrors"
	"github.com/sello-market/sello-backend/internal/clients"
	"github.com/sello-market/sello-backend/internal/models"
	"github.com/sello-market/sello-backend/internal/repository"
)

// Verification codes are valid for this long from issue.
const codeTTL = 10 * time.Minute

// UserService issues and checks one-time verification codes for
// buyer/seller onboarding.
type UserService struct {
	userRepo repository.UserRepository
	sender   clients.CodeSender
	logger   *slog.Logger
}

// NewUserService creates a new user service.
func NewUserService(userRepo repository.UserRepository, sender clients.CodeSender, logger *slog.Logger) *UserService {
	return &UserService{userRepo: userRepo, sender: sender, logger: logger}
}

// RequestCode upserts the user keyed by normalized email (phone when no
// email) and issues a fresh code. Re-issuing for an existing identity
// overwrites profile fields and resets verification state: latest
// request wins. The code is dispatched over every supplied channel;
// dispatch failures are logged, not surfaced, because the user row is
// already durable.
func (s *UserService) RequestCode(ctx context.Context, req *models.RequestCodeRequest) (*models.User, error) {
	email := strings.TrimSpace(req.Email)
	phone := strings.TrimSpace(req.Phone)
	if email == "" && phone == "" {
		return nil, apperrors.NewValidationError("email", "email or phone is required")
	}

	role := models.UserRoleBuyer
	if req.Role == string(models.UserRoleSeller) {
		role = models.UserRoleSeller
	}

	code := generateVerificationCode()
	expires := time.Now().Add(codeTTL)

	// Explicit two-path write keeps the one-active-record-per-identity
	// invariant visible: find by normalized identity, then insert or
	// update.
	user, err := s.userRepo.FindByIdentity(ctx, email, phone)
	switch {
	case err == apperrors.ErrNotFound:
		user = &models.User{
			ID:                    uuid.NewString(),
			FullName:              req.FullName,
			Email:                 email,
			Phone:                 phone,
			City:                  req.City,
			Role:                  role,
			IsVerified:            false,
			VerificationCode:      code,
			VerificationExpiresAt: &expires,
			CreatedAt:             time.Now(),
		}
		if err := s.userRepo.Create(ctx, user); err != nil {
			return nil, err
		}
	case err != nil:
		return nil, err
	default:
		user.FullName = req.FullName
		user.Phone = phone
		user.City = req.City
		user.Role = role
		user.IsVerified = false
		user.VerificationCode = code
		user.VerificationExpiresAt = &expires
		if err := s.userRepo.UpdateForReissue(ctx, user); err != nil {
			return nil, err
		}
	}

	msg := fmt.Sprintf("Код подтверждения SelloMarket: %s\nОн действует 10 минут.", code)

	if email != "" {
		if err := s.sender.SendEmail(ctx, email, "Код подтверждения SelloMarket", msg); err != nil {
			s.logger.Error("failed to send code email", "user_id", user.ID, "error", err)
		}
	}
	if phone != "" {
		if err := s.sender.SendSMS(ctx, phone, msg); err != nil {
			s.logger.Error("failed to send code sms", "user_id", user.ID, "error", err)
		}
	}

	s.logger.Info("verification code issued", "user_id", user.ID, "role", user.Role)
	return user, nil
}

// VerifyCode checks a submitted code against the stored one. On success
// the user is marked verified and the code is cleared; a consumed or
// expired code never validates again.
func (s *UserService) VerifyCode(ctx context.Context, req *models.VerifyCodeRequest) (*models.User, error) {
	email := strings.TrimSpace(req.Email)
	phone := strings.TrimSpace(req.Phone)
	if email == "" && phone == "" {
		return nil, apperrors.NewValidationError("email", "email or phone is required")
	}

	user, err := s.userRepo.FindByIdentity(ctx, email, phone)
	if err == apperrors.ErrNotFound {
		return nil, apperrors.ErrUserNotFound
	}
	if err != nil {
		return nil, err
	}

	if user.VerificationCode == "" || user.VerificationExpiresAt == nil {
		return nil, apperrors.ErrCodeNotRequested
	}

	if time.Now().After(*user.VerificationExpiresAt) {
		return nil, apperrors.ErrCodeExpired
	}

	if strings.TrimSpace(req.Code) != user.VerificationCode {
		return nil, apperrors.ErrCodeMismatch
	}

	if err := s.userRepo.MarkVerified(ctx, user.ID); err != nil {
		return nil, err
	}

	user.IsVerified = true
	user.VerificationCode = ""
	user.VerificationExpiresAt = nil

	s.logger.Info("user verified", "user_id", user.ID)
	return user, nil
}

// GetByIdentity resolves a user by email or phone.
func (s *UserService) GetByIdentity(ctx context.Context, email, phone string) (*models.User, error) {
	email = strings.TrimSpace(email)
	phone = strings.TrimSpace(phone)
	if email == "" && phone == "" {
		return nil, apperrors.NewValidationError("email", "email or phone is required")
	}
	return s.userRepo.FindByIdentity(ctx, email, phone)
}

// ListUsers returns all users for the admin console.
func (s *UserService) ListUsers(ctx context.Context) ([]*models.User, error) {
	return s.userRepo.List(ctx)
}

func generateVerificationCode() string {
	return fmt.Sprintf("%d", 100000+rand.Intn(900000))
}
