package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	goerrors "github.com/go-errors/errors"
	"github.com/rs/zerolog"

	"github.com/hireloop/jobboard/internal/core/domain"
	"github.com/hireloop/jobboard/internal/core/ports"
	"github.com/hireloop/jobboard/internal/pkg/metrics"
)

// ApplicationService owns the application lifecycle: submission by a
// candidate and status changes by the job's employer.
type ApplicationService struct {
	apps       ports.ApplicationRepository
	jobs       ports.JobRepository
	candidates ports.CandidateRepository
	employers  ports.EmployerRepository
	users      ports.UserRepository
	notifier   ports.Notifier
	log        zerolog.Logger
	now        func() time.Time
}

// ApplicationDeps groups the collaborators of ApplicationService.
type ApplicationDeps struct {
	Applications ports.ApplicationRepository
	Jobs         ports.JobRepository
	Candidates   ports.CandidateRepository
	Employers    ports.EmployerRepository
	Users        ports.UserRepository
	Notifier     ports.Notifier
	Log          zerolog.Logger
}

func NewApplicationService(deps ApplicationDeps) *ApplicationService {
	return &ApplicationService{
		apps:       deps.Applications,
		jobs:       deps.Jobs,
		candidates: deps.Candidates,
		employers:  deps.Employers,
		users:      deps.Users,
		notifier:   deps.Notifier,
		log:        deps.Log,
		now:        func() time.Time { return time.Now().UTC() },
	}
}

// Submit records the caller's application to an active job and notifies both
// sides. The (job, candidate) uniqueness is ultimately enforced by the
// repository, so a concurrent duplicate still fails with
// ErrDuplicateApplication.
func (s *ApplicationService) Submit(ctx context.Context, userID string, in ports.SubmitApplicationInput) (*domain.Application, error) {
	in.JobID = strings.TrimSpace(in.JobID)
	in.Resume = strings.TrimSpace(in.Resume)
	if in.JobID == "" {
		return nil, domain.Invalid("job is required")
	}
	if in.Resume == "" {
		return nil, domain.Invalid("resume is required")
	}

	candidate, err := s.candidates.FindByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}

	job, err := s.jobs.FindByID(ctx, in.JobID)
	if err != nil {
		return nil, err
	}
	if !job.IsActive {
		return nil, domain.ErrJobInactive
	}

	exists, err := s.apps.Exists(ctx, job.ID, candidate.ID)
	if err != nil {
		return nil, goerrors.WrapPrefix(err, "check existing application", 0)
	}
	if exists {
		metrics.ApplicationsRejectedTotal.WithLabelValues("duplicate").Inc()
		return nil, domain.ErrDuplicateApplication
	}

	app, err := s.apps.Create(ctx, &domain.Application{
		JobID:       job.ID,
		CandidateID: candidate.ID,
		EmployerID:  job.EmployerID,
		Resume:      in.Resume,
		CoverLetter: in.CoverLetter,
		Status:      domain.StatusPending,
		AppliedAt:   s.now(),
	})
	if err != nil {
		if errors.Is(err, domain.ErrDuplicateApplication) {
			metrics.ApplicationsRejectedTotal.WithLabelValues("duplicate").Inc()
		}
		return nil, err
	}

	metrics.ApplicationsSubmittedTotal.Inc()
	s.log.Info().
		Str("application_id", app.ID).
		Str("job_id", job.ID).
		Str("candidate_id", candidate.ID).
		Msg("application submitted")

	s.notifySubmitted(ctx, userID, job)
	return app, nil
}

func (s *ApplicationService) notifySubmitted(ctx context.Context, candidateUserID string, job *domain.Job) {
	applicant, err := s.users.FindByID(ctx, candidateUserID)
	if err != nil {
		s.log.Warn().Err(err).Str("user_id", candidateUserID).Msg("applicant lookup failed, skipping notifications")
		return
	}

	employer, err := s.employers.FindByID(ctx, job.EmployerID)
	if err != nil {
		s.log.Warn().Err(err).Str("employer_id", job.EmployerID).Msg("employer lookup failed, skipping notifications")
		return
	}

	if owner, err := s.users.FindByID(ctx, employer.UserID); err != nil {
		s.log.Warn().Err(err).Str("employer_id", employer.ID).Msg("employer account lookup failed")
	} else {
		notify(ctx, s.notifier, s.log, domain.Notification{
			Kind:    domain.NotifyApplicationReceived,
			To:      owner.Email,
			Subject: "New Job Application Received",
			Message: fmt.Sprintf("You have received a new application for the job %q from %s.", job.Title, applicant.Name),
		})
	}

	notify(ctx, s.notifier, s.log, domain.Notification{
		Kind:    domain.NotifyApplicationSubmitted,
		To:      applicant.Email,
		Subject: "Job Application Submitted",
		Message: fmt.Sprintf("Thank you for applying to the job %q at %s.", job.Title, employer.CompanyName),
	})
}

// UpdateStatus moves an application to status on behalf of the employer that
// owns it and notifies the candidate. Any valid status may follow any other.
func (s *ApplicationService) UpdateStatus(ctx context.Context, userID, applicationID string, status domain.ApplicationStatus) (*domain.Application, error) {
	if !status.Valid() {
		return nil, domain.Invalid("status must be one of: pending reviewed rejected accepted")
	}

	app, err := s.apps.FindByID(ctx, applicationID)
	if err != nil {
		return nil, err
	}

	employer, err := employerFor(ctx, s.employers, userID)
	if err != nil {
		return nil, err
	}
	if app.EmployerID != employer.ID {
		s.log.Warn().
			Str("application_id", applicationID).
			Str("employer_id", employer.ID).
			Msg("status update by non-owning employer")
		return nil, domain.ErrUnauthorized
	}

	updated, err := s.apps.UpdateStatus(ctx, applicationID, status)
	if err != nil {
		return nil, err
	}

	metrics.ApplicationStatusChangesTotal.WithLabelValues(string(status)).Inc()
	s.log.Info().
		Str("application_id", applicationID).
		Str("from", string(app.Status)).
		Str("to", string(status)).
		Msg("application status updated")

	s.notifyStatusChanged(ctx, updated)
	return updated, nil
}

func (s *ApplicationService) notifyStatusChanged(ctx context.Context, app *domain.Application) {
	candidates, err := s.candidates.FindByIDs(ctx, []string{app.CandidateID})
	if err != nil || candidates[app.CandidateID] == nil {
		s.log.Warn().Err(err).Str("candidate_id", app.CandidateID).Msg("candidate lookup failed, skipping notification")
		return
	}
	recipient, err := s.users.FindByID(ctx, candidates[app.CandidateID].UserID)
	if err != nil {
		s.log.Warn().Err(err).Str("candidate_id", app.CandidateID).Msg("candidate account lookup failed, skipping notification")
		return
	}

	title := "a job"
	if job, err := s.jobs.FindByID(ctx, app.JobID); err == nil {
		title = fmt.Sprintf("the job %q", job.Title)
	}

	notify(ctx, s.notifier, s.log, domain.Notification{
		Kind:    domain.NotifyStatusChanged,
		To:      recipient.Email,
		Subject: "Application Status Updated",
		Message: fmt.Sprintf("Your application for %s has been updated to %s status.", title, app.Status),
	})
}

// ListByCandidate returns the caller's applications, most recent first, each
// joined with its job and employer summaries.
func (s *ApplicationService) ListByCandidate(ctx context.Context, userID string) ([]ports.CandidateApplicationView, error) {
	candidate, err := s.candidates.FindByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}

	apps, err := s.apps.ListByCandidate(ctx, candidate.ID)
	if err != nil {
		return nil, err
	}

	jobIDs := make([]string, 0, len(apps))
	employerIDs := make([]string, 0, len(apps))
	for _, a := range apps {
		jobIDs = append(jobIDs, a.JobID)
		employerIDs = append(employerIDs, a.EmployerID)
	}

	jobs, err := s.jobs.FindByIDs(ctx, uniqueIDs(jobIDs))
	if err != nil {
		return nil, err
	}
	employers, err := s.employers.FindByIDs(ctx, uniqueIDs(employerIDs))
	if err != nil {
		return nil, err
	}

	views := make([]ports.CandidateApplicationView, len(apps))
	for i, a := range apps {
		views[i] = ports.CandidateApplicationView{Application: a}
		if j, ok := jobs[a.JobID]; ok {
			sum := j.Summary()
			views[i].Job = &sum
		}
		if e, ok := employers[a.EmployerID]; ok {
			views[i].Employer = &domain.EmployerSummary{ID: e.ID, CompanyName: e.CompanyName}
		}
	}
	return views, nil
}

// ListByJob returns the applications for a job owned by the caller, each
// joined with the applicant's profile and account summary.
func (s *ApplicationService) ListByJob(ctx context.Context, userID, jobID string) ([]ports.JobApplicationView, error) {
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

	apps, err := s.apps.ListByJob(ctx, job.ID)
	if err != nil {
		return nil, err
	}

	candidateIDs := make([]string, 0, len(apps))
	for _, a := range apps {
		candidateIDs = append(candidateIDs, a.CandidateID)
	}
	candidates, err := s.candidates.FindByIDs(ctx, uniqueIDs(candidateIDs))
	if err != nil {
		return nil, err
	}

	userIDs := make([]string, 0, len(candidates))
	for _, c := range candidates {
		userIDs = append(userIDs, c.UserID)
	}
	users, err := s.users.FindByIDs(ctx, uniqueIDs(userIDs))
	if err != nil {
		return nil, err
	}

	views := make([]ports.JobApplicationView, len(apps))
	for i, a := range apps {
		views[i] = ports.JobApplicationView{Application: a}
		c, ok := candidates[a.CandidateID]
		if !ok {
			continue
		}
		sum := &domain.CandidateSummary{
			ID:         c.ID,
			Skills:     c.Skills,
			Experience: c.Experience,
			Education:  c.Education,
		}
		if u, ok := users[c.UserID]; ok {
			sum.Name = u.Name
			sum.Email = u.Email
		}
		views[i].Candidate = sum
	}
	return views, nil
}
