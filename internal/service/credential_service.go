package service

import (
	"context"
	"errors"
	"regexp"
	"strings"

	"eventwave/internal/domain"
	"eventwave/internal/repository"
	"eventwave/internal/utils"

	"github.com/sirupsen/logrus"
)

var usernamePattern = regexp.MustCompile(`^[A-Za-z0-9_.-]{3,64}$`)

// SignUpInput is a new account request
type SignUpInput struct {
	Username string
	Email    string
	Password string
	Role     string
}

// CredentialService owns user records and password checks
type CredentialService struct {
	users  repository.UserRepository
	hasher *utils.PasswordHasher
}

func NewCredentialService(users repository.UserRepository, hasher *utils.PasswordHasher) *CredentialService {
	return &CredentialService{users: users, hasher: hasher}
}

// SignUp validates and stores a new user with a hashed password
func (s *CredentialService) SignUp(ctx context.Context, in SignUpInput) (*domain.User, error) {
	username := strings.TrimSpace(in.Username)
	email := strings.ToLower(strings.TrimSpace(in.Email))
	if err := validateUsername(username); err != nil {
		return nil, err
	}
	if err := validateEmail(email); err != nil {
		return nil, err
	}
	// bcrypt ignores everything past 72 bytes
	if len(in.Password) < 8 || len(in.Password) > 72 {
		return nil, domain.NewValidationError("Password must be 8-72 characters")
	}
	role, err := domain.ParseRole(in.Role)
	if err != nil {
		return nil, domain.NewValidationError("Role must be ATTENDEE or ORGANIZER")
	}

	if err := checkAvailable(ctx, s.users, 0, username, email); err != nil {
		return nil, err
	}

	hash, err := s.hasher.Hash(in.Password)
	if err != nil {
		return nil, err
	}
	user := &domain.User{Username: username, Email: email, Password: hash, Role: role}
	if err := s.users.Create(ctx, user); err != nil {
		return nil, err
	}

	logrus.WithFields(logrus.Fields{"user_id": user.ID, "role": user.Role}).Info("user signed up")
	return user, nil
}

// Authenticate returns the user when the password matches.
// Unknown usernames cost the same hashing work as wrong passwords.
func (s *CredentialService) Authenticate(ctx context.Context, username, password string) (*domain.User, error) {
	user, err := s.users.FindByUsername(ctx, strings.TrimSpace(username))
	if errors.Is(err, domain.ErrNotFound) {
		s.hasher.Burn(password)
		return nil, domain.ErrInvalidCredentials
	}
	if err != nil {
		return nil, err
	}
	if !s.hasher.Matches(user.Password, password) {
		return nil, domain.ErrInvalidCredentials
	}
	return user, nil
}

// checkAvailable reports which unique field is taken by a user other than self
func checkAvailable(ctx context.Context, users repository.UserRepository, self uint, username, email string) error {
	if u, err := users.FindByUsername(ctx, username); err == nil && u.ID != self {
		return domain.NewConflictError("Username already exists")
	} else if err != nil && !errors.Is(err, domain.ErrNotFound) {
		return err
	}
	if u, err := users.FindByEmail(ctx, email); err == nil && u.ID != self {
		return domain.NewConflictError("Email already exists")
	} else if err != nil && !errors.Is(err, domain.ErrNotFound) {
		return err
	}
	return nil
}

func validateUsername(username string) error {
	if !usernamePattern.MatchString(username) {
		return domain.NewValidationError("Username must be 3-64 letters, digits, dots, dashes or underscores")
	}
	return nil
}

func validateEmail(email string) error {
	at := strings.LastIndex(email, "@")
	if at < 1 || at == len(email)-1 || strings.ContainsAny(email, " \t") {
		return domain.NewValidationError("Email is invalid")
	}
	return nil
}
