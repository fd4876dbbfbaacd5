package ports

import (
	"context"

	"github.com/hireloop/jobboard/internal/core/domain"
)

// SubmitApplicationInput carries a candidate's application to a job.
type SubmitApplicationInput struct {
	JobID       string
	Resume      string
	CoverLetter string
}

// CandidateApplicationView is one row of a candidate's application history.
// Job and Employer are nil when the referenced record no longer exists.
type CandidateApplicationView struct {
	*domain.Application
	Job      *domain.JobSummary      `json:"job"`
	Employer *domain.EmployerSummary `json:"employer"`
}

// JobApplicationView is one row of the applications an employer received for
// a job.
type JobApplicationView struct {
	*domain.Application
	Candidate *domain.CandidateSummary `json:"candidate"`
}

type ApplicationService interface {
	Submit(ctx context.Context, userID string, in SubmitApplicationInput) (*domain.Application, error)
	UpdateStatus(ctx context.Context, userID, applicationID string, status domain.ApplicationStatus) (*domain.Application, error)
	ListByCandidate(ctx context.Context, userID string) ([]CandidateApplicationView, error)
	ListByJob(ctx context.Context, userID, jobID string) ([]JobApplicationView, error)
}
