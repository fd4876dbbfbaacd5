package domain

import (
	"strings"
	"time"
)

// JobType is the employment arrangement of a posting.
type JobType string

const (
	JobFullTime   JobType = "full-time"
	JobPartTime   JobType = "part-time"
	JobContract   JobType = "contract"
	JobInternship JobType = "internship"
	JobRemote     JobType = "remote"
)

func (t JobType) Valid() bool {
	switch t {
	case JobFullTime, JobPartTime, JobContract, JobInternship, JobRemote:
		return true
	}
	return false
}

// FeaturedJobsLimit is how many of the newest active jobs are featured.
const FeaturedJobsLimit = 6

// Job is a posting owned by one employer.
type Job struct {
	ID           string    `json:"id"`
	Title        string    `json:"title"`
	Description  string    `json:"description"`
	Requirements []string  `json:"requirements"`
	Skills       []string  `json:"skills"`
	Location     string    `json:"location"`
	Type         JobType   `json:"type"`
	Salary       *float64  `json:"salary,omitempty"`
	EmployerID   string    `json:"employer"`
	Deadline     time.Time `json:"deadline"`
	IsActive     bool      `json:"isActive"`
	CreatedAt    time.Time `json:"createdAt"`
}

// Validate checks the posting invariants shared by create and update.
func (j *Job) Validate() error {
	switch {
	case j.Title == "":
		return Invalid("title is required")
	case j.Description == "":
		return Invalid("description is required")
	case len(j.Requirements) == 0 || hasBlank(j.Requirements):
		return Invalid("requirements are required")
	case len(j.Skills) == 0 || hasBlank(j.Skills):
		return Invalid("skills are required")
	case j.Location == "":
		return Invalid("location is required")
	case !j.Type.Valid():
		return Invalid("type must be one of: full-time part-time contract internship remote")
	case j.Deadline.IsZero():
		return Invalid("deadline is required")
	}
	return nil
}

func hasBlank(items []string) bool {
	for _, it := range items {
		if strings.TrimSpace(it) == "" {
			return true
		}
	}
	return false
}

// JobSummary is the job slice joined onto a candidate's application list.
type JobSummary struct {
	ID          string  `json:"id"`
	Title       string  `json:"title"`
	Description string  `json:"description"`
	Location    string  `json:"location"`
	Type        JobType `json:"type"`
}

func (j *Job) Summary() JobSummary {
	return JobSummary{
		ID:          j.ID,
		Title:       j.Title,
		Description: j.Description,
		Location:    j.Location,
		Type:        j.Type,
	}
}
