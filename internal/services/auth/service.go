// Package auth guards mutating operations with a single admin password.
package auth

import (
	"errors"
	"strings"

	"golang.org/x/crypto/bcrypt"
)

// Errors
var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrInvalidHash        = errors.New("invalid admin password hash")
	ErrEmptyPassword      = errors.New("password must not be empty")
)

// Service checks bearer tokens against a bcrypt hash of the admin password.
// A Service without a hash is disabled and accepts every request.
type Service struct {
	hash []byte
}

// New creates a Service from a bcrypt hash. An empty hash disables auth.
func New(hash string) (*Service, error) {
	hash = strings.TrimSpace(hash)
	if hash == "" {
		return &Service{}, nil
	}
	if _, err := bcrypt.Cost([]byte(hash)); err != nil {
		return nil, ErrInvalidHash
	}
	return &Service{hash: []byte(hash)}, nil
}

// Enabled reports whether a password is required
func (s *Service) Enabled() bool {
	return len(s.hash) > 0
}

// Authenticate checks a plaintext password
func (s *Service) Authenticate(password string) error {
	if !s.Enabled() {
		return nil
	}
	if err := bcrypt.CompareHashAndPassword(s.hash, []byte(password)); err != nil {
		return ErrInvalidCredentials
	}
	return nil
}

// AuthenticateHeader checks an Authorization header of the form "Bearer <password>"
func (s *Service) AuthenticateHeader(header string) error {
	if !s.Enabled() {
		return nil
	}
	token, ok := strings.CutPrefix(header, "Bearer ")
	if !ok {
		return ErrInvalidCredentials
	}
	return s.Authenticate(token)
}

// HashPassword returns a bcrypt hash suitable for ADMIN_PASSWORD_HASH
func HashPassword(password string) (string, error) {
	if password == "" {
		return "", ErrEmptyPassword
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}
