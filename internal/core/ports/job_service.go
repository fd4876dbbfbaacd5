package ports

import (
	"context"
	"time"

	"github.com/hireloop/jobboard/internal/core/domain"
)

// CreateJobInput carries a new posting.
type CreateJobInput struct {
	Title        string
	Description  string
	Requirements []string
	Skills       []string
	Location     string
	Type         domain.JobType
	Salary       *float64
	Deadline     time.Time
	IsActive     *bool // nil = active
}

// JobPatch carries the fields to merge into an existing posting. Nil fields
// are left untouched.
type JobPatch struct {
	Title        *string
	Description  *string
	Requirements []string
	Skills       []string
	Location     *string
	Type         *domain.JobType
	Salary       *float64
	Deadline     *time.Time
	IsActive     *bool
}

// JobSearch holds the optional public search filters.
type JobSearch struct {
	Title    string
	Location string
	Type     domain.JobType
}

// JobView is a job joined with its employer's public summary.
type JobView struct {
	*domain.Job
	Employer *domain.EmployerSummary `json:"employer"`
}

type JobService interface {
	Create(ctx context.Context, userID string, in CreateJobInput) (*domain.Job, error)
	Update(ctx context.Context, userID, jobID string, patch JobPatch) (*domain.Job, error)
	Delete(ctx context.Context, userID, jobID string) error
	Get(ctx context.Context, jobID string) (*JobView, error)
	ListActive(ctx context.Context) ([]JobView, error)
	ListFeatured(ctx context.Context) ([]JobView, error)
	Search(ctx context.Context, q JobSearch) ([]JobView, error)
	ListByEmployer(ctx context.Context, userID string) ([]*domain.Job, error)
}
