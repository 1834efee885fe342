package services

import (
	"context"
	"strconv"
	"strings"
	"time"

	"github.com/cockroachdb/errors"

	"eventbooking/internal/domain"
	"eventbooking/internal/validation"
)

const minPasswordLen = 8

type authService struct {
	adminRepo   domain.AdminRepository
	hasher      domain.PasswordHasher
	tokenIssuer domain.TokenIssuer
	tokenExpiry time.Duration
}

// NewAuthService creates an AuthService with the given repository and auth ports.
func NewAuthService(adminRepo domain.AdminRepository, hasher domain.PasswordHasher, tokenIssuer domain.TokenIssuer, tokenExpiry time.Duration) domain.AuthService {
	return &authService{
		adminRepo:   adminRepo,
		hasher:      hasher,
		tokenIssuer: tokenIssuer,
		tokenExpiry: tokenExpiry,
	}
}

func (s *authService) Login(ctx context.Context, email, password string) (string, error) {
	email = strings.TrimSpace(strings.ToLower(email))
	admin, err := s.adminRepo.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return "", domain.ErrInvalidCredentials
		}
		return "", errors.Wrap(err, "get admin")
	}
	if err := s.hasher.Compare(admin.PasswordHash, admin.Salt, password); err != nil {
		return "", domain.ErrInvalidCredentials
	}
	token, err := s.tokenIssuer.Issue(strconv.FormatInt(admin.ID, 10), admin.Email, []string{admin.Role}, s.tokenExpiry)
	if err != nil {
		return "", errors.Wrap(err, "sign token")
	}
	return token, nil
}

func (s *authService) CreateAdmin(ctx context.Context, email, password string) (*domain.Admin, error) {
	email = strings.TrimSpace(strings.ToLower(email))
	var fields []domain.FieldError
	if !validation.ValidEmail(email) {
		fields = append(fields, domain.FieldError{Field: "email", Message: "Please enter a valid email address"})
	}
	if len(password) < minPasswordLen {
		fields = append(fields, domain.FieldError{Field: "password", Message: "Password must be at least 8 characters"})
	}
	if len(fields) > 0 {
		return nil, domain.NewValidationError(fields)
	}

	salt, err := s.hasher.GenerateSalt()
	if err != nil {
		return nil, errors.Wrap(err, "generate salt")
	}
	hash, err := s.hasher.Hash(salt, password)
	if err != nil {
		return nil, errors.Wrap(err, "hash password")
	}
	admin := domain.NewAdmin(email, hash, salt, time.Now())
	if err := s.adminRepo.Create(ctx, admin); err != nil {
		if errors.Is(err, domain.ErrDuplicateEmail) {
			return nil, domain.ErrDuplicateEmail
		}
		return nil, errors.Wrap(err, "create admin")
	}
	return admin, nil
}
