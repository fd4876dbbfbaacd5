package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"testing"
	"time"

	"github.com/hireloop/jobboard/internal/core/domain"
	"github.com/hireloop/jobboard/internal/core/ports"
)

type stubJobService struct {
	createFn func(ctx context.Context, userID string, in ports.CreateJobInput) (*domain.Job, error)
	updateFn func(ctx context.Context, userID, jobID string, patch ports.JobPatch) (*domain.Job, error)
	deleteFn func(ctx context.Context, userID, jobID string) error
	getFn    func(ctx context.Context, jobID string) (*ports.JobView, error)
	searchFn func(ctx context.Context, q ports.JobSearch) ([]ports.JobView, error)
}

func (s *stubJobService) Create(ctx context.Context, userID string, in ports.CreateJobInput) (*domain.Job, error) {
	return s.createFn(ctx, userID, in)
}

func (s *stubJobService) Update(ctx context.Context, userID, jobID string, patch ports.JobPatch) (*domain.Job, error) {
	return s.updateFn(ctx, userID, jobID, patch)
}

func (s *stubJobService) Delete(ctx context.Context, userID, jobID string) error {
	return s.deleteFn(ctx, userID, jobID)
}

func (s *stubJobService) Get(ctx context.Context, jobID string) (*ports.JobView, error) {
	return s.getFn(ctx, jobID)
}

func (s *stubJobService) ListActive(context.Context) ([]ports.JobView, error) {
	return []ports.JobView{}, nil
}

func (s *stubJobService) ListFeatured(context.Context) ([]ports.JobView, error) {
	return []ports.JobView{}, nil
}

func (s *stubJobService) Search(ctx context.Context, q ports.JobSearch) ([]ports.JobView, error) {
	return s.searchFn(ctx, q)
}

func (s *stubJobService) ListByEmployer(context.Context, string) ([]*domain.Job, error) {
	return []*domain.Job{}, nil
}

const validJobBody = `{
	"title": "Backend Engineer",
	"description": "Build services",
	"requirements": ["3 years"],
	"skills": ["go"],
	"location": "Berlin",
	"type": "full-time",
	"salary": 85000,
	"deadline": "2024-06-01"
}`

func TestJobHandler_Create(t *testing.T) {
	h := NewJobHandler(&stubJobService{
		createFn: func(_ context.Context, userID string, in ports.CreateJobInput) (*domain.Job, error) {
			if userID != "user-1" {
				t.Fatalf("unexpected user %s", userID)
			}
			if !in.Deadline.Equal(time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)) {
				t.Fatalf("deadline not parsed: %s", in.Deadline)
			}
			if in.Salary == nil || *in.Salary != 85000 || in.IsActive != nil {
				t.Fatalf("unexpected optional fields: %+v", in)
			}
			return &domain.Job{ID: "job-1", Title: in.Title, EmployerID: "emp-1", IsActive: true}, nil
		},
	})

	c, rec := newTestContext(http.MethodPost, "/api/jobs", validJobBody, "user-1")
	if err := h.Create(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}

	var resp map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if resp["id"] != "job-1" || resp["employer"] != "emp-1" || resp["isActive"] != true {
		t.Fatalf("unexpected payload: %v", resp)
	}
}

func TestJobHandler_Create_Validation(t *testing.T) {
	h := NewJobHandler(&stubJobService{
		createFn: func(context.Context, string, ports.CreateJobInput) (*domain.Job, error) {
			t.Fatalf("service must not be called")
			return nil, nil
		},
	})

	bodies := map[string]string{
		"no requirements":   strings.Replace(validJobBody, `["3 years"]`, `[]`, 1),
		"blank requirement": strings.Replace(validJobBody, `["3 years"]`, `[""]`, 1),
		"blank skill":       strings.Replace(validJobBody, `"skills": ["go"]`, `"skills": ["go", ""]`, 1),
		"bad type":          strings.Replace(validJobBody, `"full-time"`, `"gig"`, 1),
		"bad deadline":      strings.Replace(validJobBody, `"2024-06-01"`, `"next week"`, 1),
	}
	for name, body := range bodies {
		t.Run(name, func(t *testing.T) {
			c, _ := newTestContext(http.MethodPost, "/api/jobs", body, "user-1")
			if err := h.Create(c); !errors.Is(err, domain.ErrValidation) {
				t.Fatalf("expected ErrValidation, got %v", err)
			}
		})
	}
}

func TestJobHandler_Update_PassesOnlyProvidedFields(t *testing.T) {
	h := NewJobHandler(&stubJobService{
		updateFn: func(_ context.Context, _ string, jobID string, p ports.JobPatch) (*domain.Job, error) {
			if jobID != "job-9" {
				t.Fatalf("unexpected job id %s", jobID)
			}
			if p.Title == nil || *p.Title != "Staff Engineer" {
				t.Fatalf("title not patched: %+v", p)
			}
			if p.Description != nil || p.Requirements != nil || p.Type != nil || p.Deadline != nil {
				t.Fatalf("untouched fields set: %+v", p)
			}
			if p.IsActive == nil || *p.IsActive {
				t.Fatalf("isActive not patched")
			}
			return &domain.Job{ID: jobID}, nil
		},
	})

	c, _ := newTestContext(http.MethodPut, "/api/jobs/job-9", `{"title":"Staff Engineer","isActive":false}`, "user-1")
	c.SetParamNames("id")
	c.SetParamValues("job-9")
	if err := h.Update(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
}

func TestJobHandler_Delete_Unauthorized(t *testing.T) {
	h := NewJobHandler(&stubJobService{
		deleteFn: func(context.Context, string, string) error { return domain.ErrUnauthorized },
	})

	c, _ := newTestContext(http.MethodDelete, "/api/jobs/job-1", "", "user-2")
	c.SetParamNames("id")
	c.SetParamValues("job-1")
	if err := h.Delete(c); !errors.Is(err, domain.ErrUnauthorized) {
		t.Fatalf("expected ErrUnauthorized, got %v", err)
	}
}

func TestJobHandler_Search_BindsQuery(t *testing.T) {
	h := NewJobHandler(&stubJobService{
		searchFn: func(_ context.Context, q ports.JobSearch) ([]ports.JobView, error) {
			if q.Title != "engineer" || q.Location != "berlin" || q.Type != domain.JobRemote {
				t.Fatalf("unexpected query: %+v", q)
			}
			return []ports.JobView{{Job: &domain.Job{ID: "job-1"}, Employer: &domain.EmployerSummary{CompanyName: "Acme"}}}, nil
		},
	})

	c, rec := newTestContext(http.MethodGet, "/api/jobs/search?title=engineer&location=berlin&type=remote", "", "")
	if err := h.Search(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}

	var resp []map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	employer, ok := resp[0]["employer"].(map[string]any)
	if !ok || employer["companyName"] != "Acme" {
		t.Fatalf("employer summary should replace the employer id: %v", resp[0])
	}
}

func TestJobHandler_Get_NotFound(t *testing.T) {
	h := NewJobHandler(&stubJobService{
		getFn: func(context.Context, string) (*ports.JobView, error) { return nil, domain.ErrJobNotFound },
	})

	c, _ := newTestContext(http.MethodGet, "/api/jobs/nope", "", "")
	c.SetParamNames("id")
	c.SetParamValues("nope")
	if err := h.Get(c); !errors.Is(err, domain.ErrJobNotFound) {
		t.Fatalf("expected ErrJobNotFound, got %v", err)
	}
}
