package ports

import (
	"context"

	"github.com/hireloop/jobboard/internal/core/domain"
)

// RegisterInput carries a new account's details.
type RegisterInput struct {
	Name     string `validate:"required"`
	Email    string `validate:"required,email"`
	Password string `validate:"required,min=6"`
	Role     string `validate:"required,oneof=candidate employer"`
}

// MeResult is the authenticated user with the profile matching their role.
type MeResult struct {
	User    *domain.User `json:"user"`
	Profile any          `json:"profile"`
}

type AuthService interface {
	Register(ctx context.Context, in RegisterInput) (string, error)
	Login(ctx context.Context, email, password string) (string, error)
	Me(ctx context.Context, userID string) (*MeResult, error)
}

// LoginLimiter counts failed logins per key inside a sliding window.
type LoginLimiter interface {
	Blocked(ctx context.Context, key string) (bool, error)
	RecordFailure(ctx context.Context, key string) error
	Reset(ctx context.Context, key string) error
}
