package ports

import (
	"context"

	"github.com/hireloop/jobboard/internal/core/domain"
)

// CandidateUpdate replaces a candidate's mutable fields.
type CandidateUpdate struct {
	Skills     []string `validate:"required,min=1,dive,required"`
	Experience string   `validate:"omitempty,oneof=entry mid senior executive"`
	Education  string   `validate:"omitempty,oneof=highschool bachelor master phd"`
	Resume     string
	Location   string
	Phone      string
}

// EmployerUpdate replaces an employer's mutable fields.
type EmployerUpdate struct {
	CompanyName string `validate:"required"`
	Website     string
	Description string
	Address     string
	Phone       string
}

// CandidateProfile is a candidate joined with its account's name and email.
type CandidateProfile struct {
	*domain.Candidate
	User domain.UserSummary `json:"user"`
}

// EmployerProfile is an employer joined with its account's name and email.
type EmployerProfile struct {
	*domain.Employer
	User domain.UserSummary `json:"user"`
}

type ProfileService interface {
	GetCandidate(ctx context.Context, userID string) (*CandidateProfile, error)
	UpdateCandidate(ctx context.Context, userID string, in CandidateUpdate) (*CandidateProfile, error)
	GetEmployer(ctx context.Context, userID string) (*EmployerProfile, error)
	UpdateEmployer(ctx context.Context, userID string, in EmployerUpdate) (*EmployerProfile, error)
}
