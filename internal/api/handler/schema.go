package handler

import (
	"strings"
	"time"

	"github.com/hireloop/jobboard/internal/core/domain"
	"github.com/hireloop/jobboard/internal/core/ports"
)

// errorResponse is the standard error envelope returned on all 4xx/5xx responses.
type errorResponse struct {
	Error string `json:"error"`
}

type messageResponse struct {
	Message string `json:"message"`
}

// --- Auth ---

type registerRequest struct {
	Name     string `json:"name"     validate:"required"`
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required,min=6"`
	Role     string `json:"role"     validate:"required,oneof=candidate employer"`
}

type loginRequest struct {
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type tokenResponse struct {
	Token string `json:"token"`
}

// --- Profiles ---

type candidateUpdateRequest struct {
	Skills     []string `json:"skills"     validate:"required,min=1,dive,required"`
	Experience string   `json:"experience" validate:"omitempty,oneof=entry mid senior executive"`
	Education  string   `json:"education"  validate:"omitempty,oneof=highschool bachelor master phd"`
	Resume     string   `json:"resume"`
	Location   string   `json:"location"`
	Phone      string   `json:"phone"`
}

type employerUpdateRequest struct {
	CompanyName string `json:"companyName" validate:"required"`
	Website     string `json:"website"`
	Description string `json:"description"`
	Address     string `json:"address"`
	Phone       string `json:"phone"`
}

// --- Jobs ---

type createJobRequest struct {
	Title        string   `json:"title"        validate:"required"`
	Description  string   `json:"description"  validate:"required"`
	Requirements []string `json:"requirements" validate:"required,min=1,dive,required"`
	Skills       []string `json:"skills"       validate:"required,min=1,dive,required"`
	Location     string   `json:"location"     validate:"required"`
	Type         string   `json:"type"         validate:"required,oneof=full-time part-time contract internship remote"`
	Salary       *float64 `json:"salary"`
	Deadline     string   `json:"deadline"     validate:"required"`
	IsActive     *bool    `json:"isActive"`
}

type updateJobRequest struct {
	Title        *string   `json:"title"`
	Description  *string   `json:"description"`
	Requirements *[]string `json:"requirements"`
	Skills       *[]string `json:"skills"`
	Location     *string   `json:"location"`
	Type         *string   `json:"type"`
	Salary       *float64  `json:"salary"`
	Deadline     *string   `json:"deadline"`
	IsActive     *bool     `json:"isActive"`
}

type jobSearchQuery struct {
	Title    string `query:"title"`
	Location string `query:"location"`
	Type     string `query:"type"`
}

// --- Applications ---

type submitApplicationRequest struct {
	Job         string `json:"job"         validate:"required"`
	Resume      string `json:"resume"      validate:"required"`
	CoverLetter string `json:"coverLetter"`
}

type updateStatusRequest struct {
	Status string `json:"status" validate:"required,oneof=pending reviewed rejected accepted"`
}

// --- Mapping ---

// deadlineLayouts are the accepted deadline formats, most specific first.
var deadlineLayouts = []string{time.RFC3339, "2006-01-02T15:04", "2006-01-02"}

func parseDeadline(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	for _, layout := range deadlineLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t.UTC(), nil
		}
	}
	return time.Time{}, domain.Invalid("deadline must be a date (YYYY-MM-DD) or RFC 3339 timestamp")
}

func (r createJobRequest) toInput() (ports.CreateJobInput, error) {
	deadline, err := parseDeadline(r.Deadline)
	if err != nil {
		return ports.CreateJobInput{}, err
	}
	return ports.CreateJobInput{
		Title:        r.Title,
		Description:  r.Description,
		Requirements: r.Requirements,
		Skills:       r.Skills,
		Location:     r.Location,
		Type:         domain.JobType(r.Type),
		Salary:       r.Salary,
		Deadline:     deadline,
		IsActive:     r.IsActive,
	}, nil
}

func (r updateJobRequest) toPatch() (ports.JobPatch, error) {
	p := ports.JobPatch{
		Title:       r.Title,
		Description: r.Description,
		Location:    r.Location,
		Salary:      r.Salary,
		IsActive:    r.IsActive,
	}
	if r.Requirements != nil {
		p.Requirements = *r.Requirements
		if p.Requirements == nil {
			p.Requirements = []string{}
		}
	}
	if r.Skills != nil {
		p.Skills = *r.Skills
		if p.Skills == nil {
			p.Skills = []string{}
		}
	}
	if r.Type != nil {
		t := domain.JobType(*r.Type)
		p.Type = &t
	}
	if r.Deadline != nil {
		d, err := parseDeadline(*r.Deadline)
		if err != nil {
			return ports.JobPatch{}, err
		}
		p.Deadline = &d
	}
	return p, nil
}
