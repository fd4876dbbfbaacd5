package domain

import "time"

const (
	ExperienceEntry     = "entry"
	ExperienceMid       = "mid"
	ExperienceSenior    = "senior"
	ExperienceExecutive = "executive"

	EducationHighSchool = "highschool"
	EducationBachelor   = "bachelor"
	EducationMaster     = "master"
	EducationPhD        = "phd"
)

// Candidate is the job-seeker profile owned by exactly one candidate user.
type Candidate struct {
	ID         string    `json:"id"`
	UserID     string    `json:"user"`
	Skills     []string  `json:"skills"`
	Experience string    `json:"experience"`
	Education  string    `json:"education"`
	Resume     string    `json:"resume,omitempty"`
	Location   string    `json:"location,omitempty"`
	Phone      string    `json:"phone,omitempty"`
	CreatedAt  time.Time `json:"createdAt"`
}

// NewCandidate returns the empty profile created at registration.
func NewCandidate(userID string, now time.Time) *Candidate {
	return &Candidate{
		UserID:     userID,
		Skills:     []string{},
		Experience: ExperienceEntry,
		Education:  EducationHighSchool,
		CreatedAt:  now,
	}
}

// Employer is the hiring-organization profile owned by exactly one employer user.
type Employer struct {
	ID          string    `json:"id"`
	UserID      string    `json:"user"`
	CompanyName string    `json:"companyName"`
	Website     string    `json:"website,omitempty"`
	Description string    `json:"description,omitempty"`
	Address     string    `json:"address,omitempty"`
	Phone       string    `json:"phone,omitempty"`
	CreatedAt   time.Time `json:"createdAt"`
}

func NewEmployer(userID string, now time.Time) *Employer {
	return &Employer{UserID: userID, CreatedAt: now}
}

// EmployerSummary is the employer slice joined onto job and application reads.
type EmployerSummary struct {
	ID          string `json:"id"`
	CompanyName string `json:"companyName"`
	Website     string `json:"website,omitempty"`
	Description string `json:"description,omitempty"`
}

func (e *Employer) Summary() EmployerSummary {
	return EmployerSummary{
		ID:          e.ID,
		CompanyName: e.CompanyName,
		Website:     e.Website,
		Description: e.Description,
	}
}
