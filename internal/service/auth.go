package service

import (
	"context"
	"errors"
	"fmt"
	"html"
	"strings"
	"time"
	"unicode"

	"github.com/nexodus/nexodus-api/internal/domain"
	"github.com/nexodus/nexodus-api/internal/security"
	"github.com/rs/zerolog/log"
)

// Authentication outcomes. Both wrap domain.ErrUnauthenticated so generic
// callers treat them the same; the user endpoint distinguishes them.
var (
	ErrMalformedAuthHeader = fmt.Errorf("malformed authorization header: %w", domain.ErrUnauthenticated)
	ErrUnknownToken        = fmt.Errorf("unknown token: %w", domain.ErrUnauthenticated)
)

// AuthService handles registration, login, and token authentication
type AuthService struct {
	userRepo domain.UserRepository
	hasher   *security.PasswordHasher
	tokens   *security.TokenService
}

// NewAuthService creates a new auth service
func NewAuthService(userRepo domain.UserRepository, hasher *security.PasswordHasher, tokens *security.TokenService) *AuthService {
	return &AuthService{
		userRepo: userRepo,
		hasher:   hasher,
		tokens:   tokens,
	}
}

// Register creates a new user account and issues its first bearer token.
func (s *AuthService) Register(ctx context.Context, input domain.UserCreate) (*domain.User, error) {
	name := strings.TrimSpace(input.Name)
	if len(name) < 3 || len(name) > 50 {
		return nil, fmt.Errorf("name must be between 3 and 50 characters: %w", domain.ErrInvalidInput)
	}

	email := NormalizeEmail(input.Email)
	if len(email) > 100 {
		return nil, fmt.Errorf("email is too long: %w", domain.ErrInvalidInput)
	}

	if !IsStrongPassword(input.Password) {
		return nil, fmt.Errorf("password must be at least 8 characters long and contain an uppercase letter, a lowercase letter, a number, and a special character: %w", domain.ErrInvalidInput)
	}

	exists, err := s.userRepo.EmailExists(ctx, email)
	if err != nil {
		return nil, fmt.Errorf("failed to check email: %w", err)
	}
	if exists {
		return nil, domain.ErrEmailTaken
	}

	hashed, err := s.hasher.Hash(input.Password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	token, err := s.tokens.Issue()
	if err != nil {
		return nil, fmt.Errorf("failed to issue token: %w", err)
	}

	now := time.Now().UTC()
	user := &domain.User{
		Name:         html.EscapeString(name),
		Email:        email,
		PasswordHash: hashed,
		Token:        token,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	// The unique index turns a concurrent duplicate insert into ErrEmailTaken.
	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, err
	}

	return user, nil
}

// Login verifies credentials and replaces the user's bearer token, which
// invalidates the previously issued one.
func (s *AuthService) Login(ctx context.Context, input domain.UserLogin) (string, error) {
	email := NormalizeEmail(input.Email)

	user, err := s.userRepo.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return "", domain.ErrUnauthenticated
		}
		return "", fmt.Errorf("failed to get user: %w", err)
	}

	ok, err := s.hasher.Verify(input.Password, user.PasswordHash)
	if err != nil {
		// A stored hash that cannot be decoded is a corrupted record, not a
		// wrong password.
		return "", fmt.Errorf("stored credential for user %s is unreadable: %w", user.ID.Hex(), err)
	}
	if !ok {
		return "", domain.ErrUnauthenticated
	}

	token, err := s.tokens.Issue()
	if err != nil {
		return "", fmt.Errorf("failed to issue token: %w", err)
	}

	if err := s.userRepo.ReplaceToken(ctx, user.ID, token); err != nil {
		return "", fmt.Errorf("failed to store token: %w", err)
	}

	return token, nil
}

// Authenticate resolves an Authorization header to the user it identifies.
func (s *AuthService) Authenticate(ctx context.Context, header string) (*domain.User, error) {
	token, ok := s.tokens.ParseHeader(header)
	if !ok {
		log.Debug().Msg("authorization header missing the Nexodus scheme")
		return nil, ErrMalformedAuthHeader
	}

	user, err := s.userRepo.GetByToken(ctx, token)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			log.Debug().Msg("well-formed token matched no user")
			return nil, ErrUnknownToken
		}
		return nil, fmt.Errorf("failed to look up token: %w", err)
	}

	return user, nil
}

// NormalizeEmail trims and lower-cases an email address. All storage and
// lookups go through this, so case-differing duplicates collide.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// IsStrongPassword reports whether the password has at least 8 characters
// including an upper-case letter, a lower-case letter, a digit, and a
// character that is none of those.
func IsStrongPassword(password string) bool {
	if len(password) < 8 {
		return false
	}
	var upper, lower, digit, special bool
	for _, r := range password {
		switch {
		case unicode.IsUpper(r):
			upper = true
		case unicode.IsLower(r):
			lower = true
		case unicode.IsDigit(r):
			digit = true
		default:
			special = true
		}
	}
	return upper && lower && digit && special
}
