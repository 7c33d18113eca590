package service

import (
	"context"
	"log/slog"
	"strings"
	"testing"
	"time"

	"github.com/sello-market/sello-backend/internal/apperrors"
	"github.com/sello-market/sello-backend/internal/models"
	"github.com/sello-market/sello-backend/internal/repository"
)

// fakeUserRepo is an in-memory UserRepository.
type fakeUserRepo struct {
	users map[string]*models.User // keyed by id
}

var _ repository.UserRepository = (*fakeUserRepo)(nil)

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: make(map[string]*models.User)}
}

func (f *fakeUserRepo) FindByIdentity(ctx context.Context, email, phone string) (*models.User, error) {
	for _, user := range f.users {
		if email != "" && strings.EqualFold(user.Email, email) {
			copied := *user
			return &copied, nil
		}
		if email == "" && phone != "" && user.Phone == phone {
			copied := *user
			return &copied, nil
		}
	}
	return nil, apperrors.ErrNotFound
}

func (f *fakeUserRepo) Create(ctx context.Context, user *models.User) error {
	copied := *user
	f.users[user.ID] = &copied
	return nil
}

func (f *fakeUserRepo) UpdateForReissue(ctx context.Context, user *models.User) error {
	stored, ok := f.users[user.ID]
	if !ok {
		return apperrors.ErrNotFound
	}
	stored.FullName = user.FullName
	stored.Phone = user.Phone
	stored.City = user.City
	stored.Role = user.Role
	stored.IsVerified = false
	stored.VerificationCode = user.VerificationCode
	stored.VerificationExpiresAt = user.VerificationExpiresAt
	return nil
}

func (f *fakeUserRepo) MarkVerified(ctx context.Context, id string) error {
	stored, ok := f.users[id]
	if !ok {
		return apperrors.ErrNotFound
	}
	stored.IsVerified = true
	stored.VerificationCode = ""
	stored.VerificationExpiresAt = nil
	return nil
}

func (f *fakeUserRepo) List(ctx context.Context) ([]*models.User, error) {
	out := make([]*models.User, 0, len(f.users))
	for _, user := range f.users {
		copied := *user
		out = append(out, &copied)
	}
	return out, nil
}

// recordingSender captures dispatched codes.
type recordingSender struct {
	emails []string
	sms    []string
}

func (r *recordingSender) SendEmail(ctx context.Context, to, subject, body string) error {
	r.emails = append(r.emails, to)
	return nil
}

func (r *recordingSender) SendSMS(ctx context.Context, phone, body string) error {
	r.sms = append(r.sms, phone)
	return nil
}

func newTestUserService(repo *fakeUserRepo, sender *recordingSender) *UserService {
	return NewUserService(repo, sender, slog.Default())
}

func TestRequestCodeCreatesUser(t *testing.T) {
	repo := newFakeUserRepo()
	sender := &recordingSender{}
	svc := newTestUserService(repo, sender)

	user, err := svc.RequestCode(context.Background(), &models.RequestCodeRequest{
		FullName: "Ivan Petrov",
		Email:    "user@example.com",
		City:     "Москва",
		Role:     "seller",
	})
	if err != nil {
		t.Fatalf("RequestCode() unexpected error: %v", err)
	}

	if user.Role != models.UserRoleSeller {
		t.Errorf("Role = %s, want seller", user.Role)
	}
	if user.IsVerified {
		t.Error("new user should not be verified")
	}
	if len(user.VerificationCode) != 6 {
		t.Errorf("code length = %d, want 6", len(user.VerificationCode))
	}
	if user.VerificationExpiresAt == nil {
		t.Fatal("expiry not set")
	}
	if until := time.Until(*user.VerificationExpiresAt); until > 10*time.Minute || until < 9*time.Minute {
		t.Errorf("expiry window = %v, want about 10 minutes", until)
	}
	if len(sender.emails) != 1 || sender.emails[0] != "user@example.com" {
		t.Errorf("emails sent = %v", sender.emails)
	}
	if len(sender.sms) != 0 {
		t.Errorf("unexpected sms dispatch: %v", sender.sms)
	}
}

func TestRequestCodeUnknownRoleDefaultsToBuyer(t *testing.T) {
	svc := newTestUserService(newFakeUserRepo(), &recordingSender{})

	user, err := svc.RequestCode(context.Background(), &models.RequestCodeRequest{
		Email: "buyer@example.com",
		Role:  "admin",
	})
	if err != nil {
		t.Fatalf("RequestCode() unexpected error: %v", err)
	}
	if user.Role != models.UserRoleBuyer {
		t.Errorf("Role = %s, want buyer", user.Role)
	}
}

func TestRequestCodeRequiresIdentity(t *testing.T) {
	svc := newTestUserService(newFakeUserRepo(), &recordingSender{})

	_, err := svc.RequestCode(context.Background(), &models.RequestCodeRequest{FullName: "No Contact"})
	if _, ok := err.(*apperrors.ValidationError); !ok {
		t.Fatalf("error = %v, want ValidationError", err)
	}
}

func TestRequestCodeDispatchesBothChannels(t *testing.T) {
	sender := &recordingSender{}
	svc := newTestUserService(newFakeUserRepo(), sender)

	_, err := svc.RequestCode(context.Background(), &models.RequestCodeRequest{
		Email: "both@example.com",
		Phone: "+79990001122",
	})
	if err != nil {
		t.Fatalf("RequestCode() unexpected error: %v", err)
	}
	if len(sender.emails) != 1 || len(sender.sms) != 1 {
		t.Errorf("dispatches = %d email, %d sms; want 1 and 1", len(sender.emails), len(sender.sms))
	}
}

func TestRequestCodeReissueOverwrites(t *testing.T) {
	repo := newFakeUserRepo()
	svc := newTestUserService(repo, &recordingSender{})

	first, err := svc.RequestCode(context.Background(), &models.RequestCodeRequest{
		FullName: "Old Name",
		Email:    "user@example.com",
	})
	if err != nil {
		t.Fatalf("first RequestCode() error: %v", err)
	}

	// Same identity, different case. Latest request wins.
	second, err := svc.RequestCode(context.Background(), &models.RequestCodeRequest{
		FullName: "New Name",
		Email:    "USER@EXAMPLE.COM",
		City:     "Казань",
	})
	if err != nil {
		t.Fatalf("second RequestCode() error: %v", err)
	}

	if second.ID != first.ID {
		t.Errorf("reissue created a new record: %s vs %s", second.ID, first.ID)
	}
	if len(repo.users) != 1 {
		t.Fatalf("stored users = %d, want 1", len(repo.users))
	}

	stored := repo.users[first.ID]
	if stored.FullName != "New Name" {
		t.Errorf("FullName = %s, want New Name", stored.FullName)
	}
	if stored.IsVerified {
		t.Error("reissue should reset verification")
	}
	if stored.VerificationCode == first.VerificationCode && stored.VerificationCode == "" {
		t.Error("reissue did not set a code")
	}
}

func TestVerifyCode(t *testing.T) {
	repo := newFakeUserRepo()
	svc := newTestUserService(repo, &recordingSender{})

	user, err := svc.RequestCode(context.Background(), &models.RequestCodeRequest{
		Email: "user@example.com",
	})
	if err != nil {
		t.Fatalf("RequestCode() error: %v", err)
	}
	code := repo.users[user.ID].VerificationCode

	t.Run("wrong code", func(t *testing.T) {
		_, err := svc.VerifyCode(context.Background(), &models.VerifyCodeRequest{
			Email: "user@example.com",
			Code:  "000000",
		})
		if err != apperrors.ErrCodeMismatch {
			t.Fatalf("error = %v, want ErrCodeMismatch", err)
		}
	})

	t.Run("unknown user", func(t *testing.T) {
		_, err := svc.VerifyCode(context.Background(), &models.VerifyCodeRequest{
			Email: "nobody@example.com",
			Code:  code,
		})
		if err != apperrors.ErrUserNotFound {
			t.Fatalf("error = %v, want ErrUserNotFound", err)
		}
	})

	t.Run("correct code with surrounding spaces", func(t *testing.T) {
		verified, err := svc.VerifyCode(context.Background(), &models.VerifyCodeRequest{
			Email: "user@example.com",
			Code:  "  " + code + "  ",
		})
		if err != nil {
			t.Fatalf("VerifyCode() unexpected error: %v", err)
		}
		if !verified.IsVerified {
			t.Error("IsVerified = false, want true")
		}
		if verified.VerificationCode != "" || verified.VerificationExpiresAt != nil {
			t.Error("code fields not cleared")
		}
	})

	t.Run("code is one-time", func(t *testing.T) {
		_, err := svc.VerifyCode(context.Background(), &models.VerifyCodeRequest{
			Email: "user@example.com",
			Code:  code,
		})
		if err != apperrors.ErrCodeNotRequested {
			t.Fatalf("error = %v, want ErrCodeNotRequested", err)
		}
	})
}

func TestVerifyCodeExpired(t *testing.T) {
	repo := newFakeUserRepo()
	svc := newTestUserService(repo, &recordingSender{})

	user, err := svc.RequestCode(context.Background(), &models.RequestCodeRequest{
		Email: "user@example.com",
	})
	if err != nil {
		t.Fatalf("RequestCode() error: %v", err)
	}

	expired := time.Now().Add(-time.Minute)
	repo.users[user.ID].VerificationExpiresAt = &expired
	code := repo.users[user.ID].VerificationCode

	_, err = svc.VerifyCode(context.Background(), &models.VerifyCodeRequest{
		Email: "user@example.com",
		Code:  code,
	})
	if err != apperrors.ErrCodeExpired {
		t.Fatalf("error = %v, want ErrCodeExpired", err)
	}
}

func TestVerifyCodeByPhone(t *testing.T) {
	repo := newFakeUserRepo()
	svc := newTestUserService(repo, &recordingSender{})

	user, err := svc.RequestCode(context.Background(), &models.RequestCodeRequest{
		Phone: "+79990001122",
	})
	if err != nil {
		t.Fatalf("RequestCode() error: %v", err)
	}
	code := repo.users[user.ID].VerificationCode

	verified, err := svc.VerifyCode(context.Background(), &models.VerifyCodeRequest{
		Phone: "+79990001122",
		Code:  code,
	})
	if err != nil {
		t.Fatalf("VerifyCode() unexpected error: %v", err)
	}
	if !verified.IsVerified {
		t.Error("IsVerified = false, want true")
	}
}

func TestGenerateVerificationCodeFormat(t *testing.T) {
	for i := 0; i < 1000; i++ {
		code := generateVerificationCode()
		if len(code) != 6 {
			t.Fatalf("code %q length = %d, want 6", code, len(code))
		}
		for _, r := range code {
			if r < '0' || r > '9' {
				t.Fatalf("code %q contains non-digit", code)
			}
		}
	}
}
