package service

import (
	"context"
	"time"

	"usertable-api/internal/entities"
	"usertable-api/internal/repository"
)

// UserService defines the interface for reading users
type UserService interface {
	List(ctx context.Context) ([]entities.User, error)
}

type userService struct {
	repo    repository.UserRepository
	timeout time.Duration
}

// NewUserService creates a new user service. A zero timeout leaves the request context as is.
func NewUserService(repo repository.UserRepository, timeout time.Duration) UserService {
	return &userService{repo: repo, timeout: timeout}
}

// List returns every row of Users
func (s *userService) List(ctx context.Context) ([]entities.User, error) {
	ctx, cancel := withTimeout(ctx, s.timeout)
	defer cancel()

	users, err := s.repo.List(ctx)
	if err != nil {
		return nil, fail("list_users", "", err)
	}
	return users, nil
}

func withTimeout(ctx context.Context, d time.Duration) (context.Context, context.CancelFunc) {
	if d <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, d)
}
