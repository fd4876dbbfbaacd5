package ports

import (
	"context"

	"github.com/hireloop/jobboard/internal/core/domain"
)

// JobFilter selects jobs. Zero-valued fields are not applied.
type JobFilter struct {
	ActiveOnly bool
	EmployerID string
	Title      string // case-insensitive substring
	Location   string // case-insensitive substring
	Type       domain.JobType
	Limit      int // 0 = no limit
}

// JobRepository persists job postings. List results are newest first.
type JobRepository interface {
	Create(ctx context.Context, job *domain.Job) (*domain.Job, error)
	FindByID(ctx context.Context, id string) (*domain.Job, error)
	FindByIDs(ctx context.Context, ids []string) (map[string]*domain.Job, error)
	List(ctx context.Context, filter JobFilter) ([]*domain.Job, error)
	Replace(ctx context.Context, job *domain.Job) (*domain.Job, error)
	Delete(ctx context.Context, id string) error
}

// FeaturedJobCache holds the featured-jobs listing between writes.
//
// Get also returns the cache generation it observed. Set stores the list
// only if no Invalidate happened since that generation was read, so a list
// computed before a write can never be cached after it.
type FeaturedJobCache interface {
	Get(ctx context.Context) (jobs []JobView, gen string, ok bool, err error)
	Set(ctx context.Context, gen string, jobs []JobView) error
	Invalidate(ctx context.Context) error
}
