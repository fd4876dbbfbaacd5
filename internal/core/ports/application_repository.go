package ports

import (
	"context"

	"github.com/hireloop/jobboard/internal/core/domain"
)

// ApplicationRepository persists applications.
type ApplicationRepository interface {
	// Create inserts the application. The (job, candidate) pair is unique at
	// the storage layer; a violation returns domain.ErrDuplicateApplication.
	Create(ctx context.Context, app *domain.Application) (*domain.Application, error)
	Exists(ctx context.Context, jobID, candidateID string) (bool, error)
	FindByID(ctx context.Context, id string) (*domain.Application, error)
	// ListByCandidate returns the candidate's applications, most recent first.
	ListByCandidate(ctx context.Context, candidateID string) ([]*domain.Application, error)
	ListByJob(ctx context.Context, jobID string) ([]*domain.Application, error)
	UpdateStatus(ctx context.Context, id string, status domain.ApplicationStatus) (*domain.Application, error)
}
