package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/hireloop/jobboard/internal/core/domain"
	"github.com/hireloop/jobboard/internal/core/ports"
	"github.com/hireloop/jobboard/internal/pkg/metrics"
)

// JobService implements the job catalog: employer-owned writes and public
// listings joined with employer summaries.
type JobService struct {
	jobs      ports.JobRepository
	employers ports.EmployerRepository
	featured  ports.FeaturedJobCache
	log       zerolog.Logger
	now       func() time.Time
}

// NewJobService returns a JobService. featured may be nil, in which case the
// featured listing is always read from the repository.
func NewJobService(
	jobs ports.JobRepository,
	employers ports.EmployerRepository,
	featured ports.FeaturedJobCache,
	log zerolog.Logger,
) *JobService {
	return &JobService{
		jobs:      jobs,
		employers: employers,
		featured:  featured,
		log:       log,
		now:       func() time.Time { return time.Now().UTC() },
	}
}

// Create stores a new posting owned by the caller's employer profile.
func (s *JobService) Create(ctx context.Context, userID string, in ports.CreateJobInput) (*domain.Job, error) {
	employer, err := s.employers.FindByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}

	job := &domain.Job{
		Title:        strings.TrimSpace(in.Title),
		Description:  strings.TrimSpace(in.Description),
		Requirements: in.Requirements,
		Skills:       in.Skills,
		Location:     strings.TrimSpace(in.Location),
		Type:         in.Type,
		Salary:       in.Salary,
		EmployerID:   employer.ID,
		Deadline:     in.Deadline.UTC(),
		IsActive:     true,
		CreatedAt:    s.now(),
	}
	if in.IsActive != nil {
		job.IsActive = *in.IsActive
	}
	if err := job.Validate(); err != nil {
		return nil, err
	}

	created, err := s.jobs.Create(ctx, job)
	if err != nil {
		s.log.Error().Err(err).Msg("failed to create job")
		return nil, err
	}

	metrics.JobsCreatedTotal.WithLabelValues(string(created.Type)).Inc()
	s.invalidateFeatured(ctx)
	s.log.Info().Str("job_id", created.ID).Str("employer_id", employer.ID).Msg("job created")
	return created, nil
}

// Update merges patch into a job owned by the caller.
func (s *JobService) Update(ctx context.Context, userID, jobID string, patch ports.JobPatch) (*domain.Job, error) {
	job, err := s.ownedJob(ctx, userID, jobID)
	if err != nil {
		return nil, err
	}

	applyPatch(job, patch)
	if err := job.Validate(); err != nil {
		return nil, err
	}

	updated, err := s.jobs.Replace(ctx, job)
	if err != nil {
		return nil, err
	}

	s.invalidateFeatured(ctx)
	s.log.Info().Str("job_id", jobID).Msg("job updated")
	return updated, nil
}

// Delete removes a job owned by the caller. Its applications are kept.
func (s *JobService) Delete(ctx context.Context, userID, jobID string) error {
	if _, err := s.ownedJob(ctx, userID, jobID); err != nil {
		return err
	}
	if err := s.jobs.Delete(ctx, jobID); err != nil {
		return err
	}

	s.invalidateFeatured(ctx)
	s.log.Info().Str("job_id", jobID).Msg("job removed")
	return nil
}

func (s *JobService) Get(ctx context.Context, jobID string) (*ports.JobView, error) {
	job, err := s.jobs.FindByID(ctx, jobID)
	if err != nil {
		return nil, err
	}
	view := ports.JobView{Job: job}
	employer, err := s.employers.FindByID(ctx, job.EmployerID)
	switch {
	case err == nil:
		sum := employer.Summary()
		view.Employer = &sum
	case !errors.Is(err, domain.ErrProfileNotFound):
		return nil, err
	}
	return &view, nil
}

func (s *JobService) ListActive(ctx context.Context) ([]ports.JobView, error) {
	return s.list(ctx, ports.JobFilter{ActiveOnly: true})
}

// ListFeatured returns the newest active jobs, served from the cache when
// one is configured and warm.
func (s *JobService) ListFeatured(ctx context.Context) ([]ports.JobView, error) {
	var (
		gen       string
		cacheable bool
	)
	if s.featured != nil {
		views, g, ok, err := s.featured.Get(ctx)
		switch {
		case err != nil:
			s.log.Warn().Err(err).Msg("featured cache read failed")
		case ok:
			return views, nil
		default:
			gen, cacheable = g, true
		}
	}

	views, err := s.list(ctx, ports.JobFilter{ActiveOnly: true, Limit: domain.FeaturedJobsLimit})
	if err != nil {
		return nil, err
	}

	if cacheable {
		if err := s.featured.Set(ctx, gen, views); err != nil {
			s.log.Warn().Err(err).Msg("featured cache write failed")
		}
	}
	return views, nil
}

// Search returns active jobs matching every supplied filter.
func (s *JobService) Search(ctx context.Context, q ports.JobSearch) ([]ports.JobView, error) {
	// An exact filter on a type no job can have matches nothing.
	if q.Type != "" && !q.Type.Valid() {
		return []ports.JobView{}, nil
	}
	return s.list(ctx, ports.JobFilter{
		ActiveOnly: true,
		Title:      strings.TrimSpace(q.Title),
		Location:   strings.TrimSpace(q.Location),
		Type:       q.Type,
	})
}

// ListByEmployer returns every job the caller posted, active or not.
func (s *JobService) ListByEmployer(ctx context.Context, userID string) ([]*domain.Job, error) {
	employer, err := s.employers.FindByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}
	return s.jobs.List(ctx, ports.JobFilter{EmployerID: employer.ID})
}

func (s *JobService) list(ctx context.Context, filter ports.JobFilter) ([]ports.JobView, error) {
	jobs, err := s.jobs.List(ctx, filter)
	if err != nil {
		return nil, err
	}

	ids := make([]string, 0, len(jobs))
	for _, j := range jobs {
		ids = append(ids, j.EmployerID)
	}
	employers, err := s.employers.FindByIDs(ctx, uniqueIDs(ids))
	if err != nil {
		return nil, err
	}

	views := make([]ports.JobView, len(jobs))
	for i, j := range jobs {
		views[i] = ports.JobView{Job: j}
		if e, ok := employers[j.EmployerID]; ok {
			views[i].Employer = &domain.EmployerSummary{
				ID:          e.ID,
				CompanyName: e.CompanyName,
				Website:     e.Website,
			}
		}
	}
	return views, nil
}

// ownedJob loads jobID and checks that the caller's employer profile owns it.
func (s *JobService) ownedJob(ctx context.Context, userID, jobID string) (*domain.Job, error) {
	job, err := s.jobs.FindByID(ctx, jobID)
	if err != nil {
		return nil, err
	}
	employer, err := employerFor(ctx, s.employers, userID)
	if err != nil {
		return nil, err
	}
	if job.EmployerID != employer.ID {
		return nil, domain.ErrUnauthorized
	}
	return job, nil
}

func (s *JobService) invalidateFeatured(ctx context.Context) {
	if s.featured == nil {
		return
	}
	if err := s.featured.Invalidate(ctx); err != nil {
		s.log.Warn().Err(err).Msg("featured cache invalidation failed")
	}
}

func applyPatch(job *domain.Job, p ports.JobPatch) {
	if p.Title != nil {
		job.Title = strings.TrimSpace(*p.Title)
	}
	if p.Description != nil {
		job.Description = strings.TrimSpace(*p.Description)
	}
	if p.Requirements != nil {
		job.Requirements = p.Requirements
	}
	if p.Skills != nil {
		job.Skills = p.Skills
	}
	if p.Location != nil {
		job.Location = strings.TrimSpace(*p.Location)
	}
	if p.Type != nil {
		job.Type = *p.Type
	}
	if p.Salary != nil {
		job.Salary = p.Salary
	}
	if p.Deadline != nil {
		job.Deadline = p.Deadline.UTC()
	}
	if p.IsActive != nil {
		job.IsActive = *p.IsActive
	}
}
