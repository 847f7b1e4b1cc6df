package service

import (
	"context"
	"errors"
	"strings"

	"taskmanager/internal/domain"
	"taskmanager/internal/repository"
)

// UserStore is the slice of the user repository the services need.
type UserStore interface {
	Create(ctx context.Context, u *domain.User) error
	GetByUsername(ctx context.Context, username string) (*domain.User, error)
	GetByID(ctx context.Context, id int64) (*domain.User, error)
}

type AuthService struct {
	users UserStore
}

func NewAuthService(users UserStore) *AuthService {
	return &AuthService{users: users}
}

// Signup hashes the password, stores the new user and returns a fresh
// token plus the display name. Username uniqueness is enforced by the
// store's unique constraint, not by a racy find-then-insert.
func (s *AuthService) Signup(ctx context.Context, username, password string) (string, string, error) {
	username = strings.TrimSpace(username)
	if verr := validateCredentials(username, password); verr != nil {
		return "", "", verr
	}

	hash, err := HashPassword(password)
	if err != nil {
		return "", "", err
	}

	u := &domain.User{Username: username, PasswordHash: hash}
	if err := s.users.Create(ctx, u); err != nil {
		if errors.Is(err, repository.ErrUsernameTaken) {
			return "", "", ErrUsernameTaken
		}
		return "", "", err
	}

	token, err := GenerateJWT(u.ID)
	if err != nil {
		return "", "", err
	}
	return token, u.Username, nil
}

// Login fails on unknown usernames before any password comparison.
func (s *AuthService) Login(ctx context.Context, username, password string) (string, string, error) {
	username = strings.TrimSpace(username)
	if verr := validateCredentials(username, password); verr != nil {
		return "", "", verr
	}

	u, err := s.users.GetByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return "", "", ErrUserNotFound
		}
		return "", "", err
	}

	if !CheckPassword(password, u.PasswordHash) {
		return "", "", ErrWrongPassword
	}

	token, err := GenerateJWT(u.ID)
	if err != nil {
		return "", "", err
	}
	return token, u.Username, nil
}

func validateCredentials(username, password string) *ValidationError {
	var fields []FieldError
	if username == "" {
		fields = append(fields, FieldError{Field: "username", Message: "Username must not be empty."})
	}
	if password == "" {
		fields = append(fields, FieldError{Field: "password", Message: "Password must not be empty."})
	}
	if len(fields) > 0 {
		return newValidationError(fields)
	}
	return nil
}
