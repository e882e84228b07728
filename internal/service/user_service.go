package service

import (
	"context"
	"strings"

	"eventwave/internal/domain"
	"eventwave/internal/repository"

	"github.com/sirupsen/logrus"
)

// ProfileUpdate carries optional new values; blank fields are left unchanged
type ProfileUpdate struct {
	Username string
	Email    string
}

type UserService struct {
	users repository.UserRepository
}

func NewUserService(users repository.UserRepository) *UserService {
	return &UserService{users: users}
}

// Resolve loads the user a token subject names
func (s *UserService) Resolve(ctx context.Context, username string) (*domain.User, error) {
	return s.users.FindByUsername(ctx, username)
}

// UpdateProfile changes username and email; renamed reports a username change
func (s *UserService) UpdateProfile(ctx context.Context, username string, in ProfileUpdate) (user *domain.User, renamed bool, err error) {
	user, err = s.users.FindByUsername(ctx, username)
	if err != nil {
		return nil, false, err
	}

	newUsername := strings.TrimSpace(in.Username)
	newEmail := strings.ToLower(strings.TrimSpace(in.Email))
	if newUsername == "" {
		newUsername = user.Username
	}
	if newEmail == "" {
		newEmail = user.Email
	}
	if err := validateUsername(newUsername); err != nil {
		return nil, false, err
	}
	if err := validateEmail(newEmail); err != nil {
		return nil, false, err
	}
	if err := checkAvailable(ctx, s.users, user.ID, newUsername, newEmail); err != nil {
		return nil, false, err
	}

	renamed = newUsername != user.Username
	user.Username, user.Email = newUsername, newEmail
	if err := s.users.Update(ctx, user); err != nil {
		return nil, false, err
	}

	logrus.WithFields(logrus.Fields{"user_id": user.ID, "renamed": renamed}).Info("profile updated")
	return user, renamed, nil
}
