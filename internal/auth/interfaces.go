package auth

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/redmonkez12/bookstore-api/internal/user"
)

// TokenService defines the interface for token creation and validation.
// Implementations include PasetoService (PASETO v4.local) and JWTService (HS256).
type TokenService interface {
	CreateToken(subject TokenSubject, duration time.Duration) (string, error)
	VerifyToken(tokenStr string) (*TokenClaims, error)
}

// UserRepository is the credential store used by the auth service.
// *user.Repository satisfies it.
type UserRepository interface {
	Create(ctx context.Context, name, email, passwordHash string) (*user.User, error)
	GetByEmail(ctx context.Context, email string) (*user.User, error)
	GetByID(ctx context.Context, id uuid.UUID) (*user.User, error)
}

// TokenSubject identifies whom a token is issued for
type TokenSubject struct {
	UserID uuid.UUID
	Email  string
	Role   user.Role
}

// TokenClaims represents the claims carried by an access token
type TokenClaims struct {
	UserID    string    `json:"user_id"` // UUID stored as string in token
	Email     string    `json:"email"`
	Role      string    `json:"role"`
	IssuedAt  time.Time `json:"iat"`
	ExpiresAt time.Time `json:"exp"`
}
