package domain

import (
	"context"
	"time"

	"github.com/samber/lo"
)

// RoleAdmin is the role code that grants access to the moderation endpoints.
const RoleAdmin = "admin"

// Admin is a back-office account allowed to moderate submissions.
// swagger:model Admin
type Admin struct {
	ID           int64     `json:"id"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	Salt         string    `json:"-"`
	Role         string    `json:"role"`
	CreatedAt    time.Time `json:"created_at"`
}

// NewAdmin returns a new Admin. ID is typically set by the repository on create.
func NewAdmin(email, passwordHash, salt string, createdAt time.Time) *Admin {
	return &Admin{
		Email:        email,
		PasswordHash: passwordHash,
		Salt:         salt,
		Role:         RoleAdmin,
		CreatedAt:    createdAt,
	}
}

// Identity is the verified caller attached to a request context.
type Identity struct {
	Subject string
	Email   string
	Roles   []string
}

// IsAdmin reports whether the identity carries the admin role.
func (i *Identity) IsAdmin() bool {
	return i != nil && lo.Contains(i.Roles, RoleAdmin)
}

// PasswordHasher handles salt generation, hashing, and verification.
// Implementations may use bcrypt, argon2, etc.
type PasswordHasher interface {
	GenerateSalt() (string, error)
	Hash(salt, password string) (hash string, err error)
	Compare(hash, salt, password string) error
}

// TokenIssuer issues tokens (e.g. JWT) for an authenticated admin.
type TokenIssuer interface {
	Issue(subject, email string, roles []string, expiry time.Duration) (string, error)
}

// TokenVerifier verifies a token and returns the identity it was issued for.
type TokenVerifier interface {
	Verify(token string) (*Identity, error)
}

// AdminRepository defines the interface for admin account storage.
type AdminRepository interface {
	Create(ctx context.Context, admin *Admin) error
	GetByEmail(ctx context.Context, email string) (*Admin, error)
}

// AuthService authenticates admins and provisions admin accounts.
type AuthService interface {
	Login(ctx context.Context, email, password string) (token string, err error)
	CreateAdmin(ctx context.Context, email, password string) (*Admin, error)
}
