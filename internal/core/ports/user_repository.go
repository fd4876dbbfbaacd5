package ports

import (
	"context"

	"github.com/hireloop/jobboard/internal/core/domain"
)

// UserRepository persists accounts. Email is unique at the storage layer.
type UserRepository interface {
	Create(ctx context.Context, user *domain.User) (*domain.User, error)
	FindByID(ctx context.Context, id string) (*domain.User, error)
	FindByEmail(ctx context.Context, email string) (*domain.User, error)
	FindByIDs(ctx context.Context, ids []string) (map[string]*domain.User, error)
	Delete(ctx context.Context, id string) error
}
