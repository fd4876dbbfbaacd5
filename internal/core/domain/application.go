package domain

import "time"

// ApplicationStatus is the review state of an application.
type ApplicationStatus string

const (
	StatusPending  ApplicationStatus = "pending"
	StatusReviewed ApplicationStatus = "reviewed"
	StatusRejected ApplicationStatus = "rejected"
	StatusAccepted ApplicationStatus = "accepted"
)

func (s ApplicationStatus) Valid() bool {
	switch s {
	case StatusPending, StatusReviewed, StatusRejected, StatusAccepted:
		return true
	}
	return false
}

// Application is a candidate's submission against one job. At most one
// exists per (JobID, CandidateID).
type Application struct {
	ID          string            `json:"id"`
	JobID       string            `json:"job"`
	CandidateID string            `json:"candidate"`
	EmployerID  string            `json:"employer"`
	Resume      string            `json:"resume"`
	CoverLetter string            `json:"coverLetter"`
	Status      ApplicationStatus `json:"status"`
	AppliedAt   time.Time         `json:"appliedAt"`
}

// CandidateSummary is the candidate slice joined onto an employer's view of
// the applications for a job.
type CandidateSummary struct {
	ID         string   `json:"id"`
	Skills     []string `json:"skills"`
	Experience string   `json:"experience"`
	Education  string   `json:"education"`
	Name       string   `json:"name"`
	Email      string   `json:"email"`
}
