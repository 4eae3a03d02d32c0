package auth

import (
	"context"
	"errors"
	"fmt"
	"net/mail"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/redmonkez12/bookstore-api/internal/logging"
	"github.com/redmonkez12/bookstore-api/internal/user"
)

var (
	ErrValidation         = errors.New("validation failed")
	ErrInvalidCredentials = errors.New("invalid email or password")
)

const maxEmailLength = 254

// AuthResult is returned by a successful registration or login
type AuthResult struct {
	User  *user.User
	Token string
}

// Service handles authentication business logic
type Service struct {
	userRepo            UserRepository
	tokenService        TokenService
	logger              *logging.Logger
	accessTokenDuration time.Duration
}

func NewService(
	userRepo UserRepository,
	tokenService TokenService,
	logger *logging.Logger,
	accessTokenDuration time.Duration,
) *Service {
	return &Service{
		userRepo:            userRepo,
		tokenService:        tokenService,
		logger:              logger,
		accessTokenDuration: accessTokenDuration,
	}
}

// Register creates a new user account and issues a token for it.
//
// The email lookup before insert is only a fast path: two concurrent
// registrations can both pass it, and the unique constraint on users.email
// rejects the loser with user.ErrDuplicateEmail.
func (s *Service) Register(ctx context.Context, name, email, password string) (*AuthResult, error) {
	name = strings.TrimSpace(name)
	email = normalizeEmail(email)
	if name == "" || email == "" || password == "" {
		return nil, fmt.Errorf("%w: name, email and password are required", ErrValidation)
	}
	if !validEmail(email) {
		return nil, fmt.Errorf("%w: invalid email format", ErrValidation)
	}

	if _, err := s.userRepo.GetByEmail(ctx, email); err == nil {
		return nil, user.ErrDuplicateEmail
	} else if !errors.Is(err, user.ErrNotFound) {
		return nil, fmt.Errorf("failed to check existing user: %w", err)
	}

	passwordHash, err := hashPassword(password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	newUser, err := s.userRepo.Create(ctx, name, email, passwordHash)
	if err != nil {
		if errors.Is(err, user.ErrDuplicateEmail) {
			s.logger.Debug("concurrent registration rejected by unique email constraint", "email", email)
			return nil, user.ErrDuplicateEmail
		}
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	token, err := s.issueToken(newUser)
	if err != nil {
		return nil, err
	}

	return &AuthResult{User: newUser, Token: token}, nil
}

// Login authenticates a user and returns a fresh token.
// Unknown email and wrong password yield the same ErrInvalidCredentials.
func (s *Service) Login(ctx context.Context, email, password string) (*AuthResult, error) {
	email = normalizeEmail(email)
	if email == "" || password == "" {
		return nil, ErrInvalidCredentials
	}

	existingUser, err := s.userRepo.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, user.ErrNotFound) {
			burnPasswordCheck(password)
			return nil, ErrInvalidCredentials
		}
		return nil, fmt.Errorf("failed to get user: %w", err)
	}

	if !verifyPassword(existingUser.PasswordHash, password) {
		return nil, ErrInvalidCredentials
	}

	token, err := s.issueToken(existingUser)
	if err != nil {
		return nil, err
	}

	return &AuthResult{User: existingUser, Token: token}, nil
}

// GetCurrentUser loads the authenticated caller.
// Returns user.ErrNotFound if the account disappeared after the token was issued.
func (s *Service) GetCurrentUser(ctx context.Context, userID uuid.UUID) (*user.User, error) {
	existingUser, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, user.ErrNotFound) {
			return nil, user.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get user: %w", err)
	}

	return existingUser, nil
}

func (s *Service) issueToken(u *user.User) (string, error) {
	token, err := s.tokenService.CreateToken(TokenSubject{
		UserID: u.ID,
		Email:  u.Email,
		Role:   u.Role,
	}, s.accessTokenDuration)
	if err != nil {
		return "", fmt.Errorf("failed to create access token: %w", err)
	}

	return token, nil
}

// validEmail accepts a bare RFC 5322 address of at most 254 bytes
func validEmail(email string) bool {
	if len(email) > maxEmailLength {
		return false
	}
	addr, err := mail.ParseAddress(email)
	return err == nil && addr.Address == email
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
