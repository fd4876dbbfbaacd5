package ports

import (
	"context"

	"github.com/hireloop/jobboard/internal/core/domain"
)

// CandidateRepository persists candidate profiles, at most one per user.
type CandidateRepository interface {
	Create(ctx context.Context, c *domain.Candidate) (*domain.Candidate, error)
	FindByUserID(ctx context.Context, userID string) (*domain.Candidate, error)
	FindByIDs(ctx context.Context, ids []string) (map[string]*domain.Candidate, error)
	// Update replaces the mutable fields of the profile owned by userID and
	// returns the stored result.
	Update(ctx context.Context, userID string, c *domain.Candidate) (*domain.Candidate, error)
}

// EmployerRepository persists employer profiles, at most one per user.
type EmployerRepository interface {
	Create(ctx context.Context, e *domain.Employer) (*domain.Employer, error)
	FindByID(ctx context.Context, id string) (*domain.Employer, error)
	FindByUserID(ctx context.Context, userID string) (*domain.Employer, error)
	FindByIDs(ctx context.Context, ids []string) (map[string]*domain.Employer, error)
	Update(ctx context.Context, userID string, e *domain.Employer) (*domain.Employer, error)
}
