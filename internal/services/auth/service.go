package auth

import (
	"errors"

	"golang.org/x/crypto/bcrypt"
)

// Errors
var (
	ErrInvalidCredentials = errors.New("invalid admin credentials")
	ErrAdminDisabled      = errors.New("admin access is not configured")
)

// Config holds configuration for the auth service
type Config struct {
	// AdminPasswordHash is the bcrypt hash of the admin password.
	// Empty disables the administrative endpoints entirely.
	AdminPasswordHash string
}

// Service verifies the credential guarding administrative ledger
// operations (absolute balance/credits overwrites)
type Service struct {
	adminHash string
}

// New creates a new auth service
func New(cfg Config) *Service {
	return &Service{adminHash: cfg.AdminPasswordHash}
}

// VerifyAdmin checks a password against the configured admin hash
func (s *Service) VerifyAdmin(password string) error {
	if s.adminHash == "" {
		return ErrAdminDisabled
	}
	if err := bcrypt.CompareHashAndPassword([]byte(s.adminHash), []byte(password)); err != nil {
		return ErrInvalidCredentials
	}
	return nil
}

// HashPassword produces a bcrypt hash suitable for AdminPasswordHash
func HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}
