// Package auth logs in the guesthouse operator. There is a single admin
// account whose email and bcrypt hash come from configuration.
package auth

import (
	"context"
	"crypto/subtle"
	"errors"
	"strings"
	"sync"
	"time"

	"guesthouse/internal/logging"
	"guesthouse/internal/pkg/jwt"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

const (
	maxFailedLoginAttempts = 5
	lockoutDuration        = 15 * time.Minute
)

var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrAccountLocked      = errors.New("account temporarily locked")
	ErrNotConfigured      = errors.New("admin login is not configured")
)

type tokenIssuer interface {
	GenerateToken(email, role string) (string, error)
	TTL() time.Duration
}

type LoginResult struct {
	AccessToken string
	ExpiresIn   time.Duration
	Email       string
}

type Service struct {
	email        string
	passwordHash []byte
	jwt          tokenIssuer
	log          *zap.Logger
	now          func() time.Time

	mu          sync.Mutex
	failed      int
	lockedUntil time.Time
}

func NewService(adminEmail, passwordHash string, issuer tokenIssuer, log *zap.Logger) *Service {
	return &Service{
		email:        strings.ToLower(strings.TrimSpace(adminEmail)),
		passwordHash: []byte(passwordHash),
		jwt:          issuer,
		log:          log.Named("auth"),
		now:          time.Now,
	}
}

// HashPassword returns a bcrypt hash suitable for ADMIN_PASSWORD_HASH.
func HashPassword(password string) (string, error) {
	b, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

// Login checks the admin credentials. After maxFailedLoginAttempts wrong
// passwords the account is locked for lockoutDuration.
func (s *Service) Login(ctx context.Context, email, password string) (*LoginResult, error) {
	if s.email == "" || len(s.passwordHash) == 0 {
		return nil, ErrNotConfigured
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	if now.Before(s.lockedUntil) {
		return nil, ErrAccountLocked
	}

	email = strings.ToLower(strings.TrimSpace(email))
	emailOK := subtle.ConstantTimeCompare([]byte(email), []byte(s.email)) == 1
	passOK := bcrypt.CompareHashAndPassword(s.passwordHash, []byte(password)) == nil
	if !emailOK || !passOK {
		s.failed++
		s.log.Warn("admin login failed", logging.Email("email", email), zap.Int("failed_attempts", s.failed))
		if s.failed >= maxFailedLoginAttempts {
			s.failed = 0
			s.lockedUntil = now.Add(lockoutDuration)
			return nil, ErrAccountLocked
		}
		return nil, ErrInvalidCredentials
	}

	s.failed = 0
	s.lockedUntil = time.Time{}

	token, err := s.jwt.GenerateToken(s.email, jwt.RoleAdmin)
	if err != nil {
		return nil, err
	}
	s.log.Info("admin logged in", logging.Email("email", s.email))
	return &LoginResult{AccessToken: token, ExpiresIn: s.jwt.TTL(), Email: s.email}, nil
}
