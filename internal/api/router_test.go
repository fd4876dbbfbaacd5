package api

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/hireloop/jobboard/internal/api/handler"
	"github.com/hireloop/jobboard/internal/core/ports"
)

const testSecret = "router-test-secret"

// recordingJobService answers the public listings and records which one was
// hit. Unused methods fall through to the nil embedded interface.
type recordingJobService struct {
	ports.JobService
	called string
}

func (s *recordingJobService) ListActive(context.Context) ([]ports.JobView, error) {
	s.called = "list"
	return []ports.JobView{}, nil
}

func (s *recordingJobService) ListFeatured(context.Context) ([]ports.JobView, error) {
	s.called = "featured"
	return []ports.JobView{}, nil
}

func (s *recordingJobService) Search(context.Context, ports.JobSearch) ([]ports.JobView, error) {
	s.called = "search"
	return []ports.JobView{}, nil
}

func newTestServer(jobs ports.JobService) *echo.Echo {
	e := echo.New()
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(zerolog.Nop())
	RegisterRoutes(e, Services{Jobs: jobs}, testSecret, nil)
	return e
}

func token(t *testing.T, role string) string {
	t.Helper()
	tok := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub":  "507f1f77bcf86cd799439011",
		"role": role,
		"exp":  time.Now().Add(time.Hour).Unix(),
	})
	s, err := tok.SignedString([]byte(testSecret))
	if err != nil {
		t.Fatalf("sign token: %v", err)
	}
	return s
}

func TestRouter_StaticJobPathsBeatID(t *testing.T) {
	for path, want := range map[string]string{
		"/api/jobs":                   "list",
		"/api/jobs/featured":          "featured",
		"/api/jobs/search?title=rust": "search",
	} {
		jobs := &recordingJobService{}
		e := newTestServer(jobs)

		rec := httptest.NewRecorder()
		e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, path, nil))

		if rec.Code != http.StatusOK {
			t.Fatalf("%s: expected 200, got %d", path, rec.Code)
		}
		if jobs.called != want {
			t.Fatalf("%s: expected %q handler, got %q", path, want, jobs.called)
		}
	}
}

func TestRouter_ProtectedRoutesRequireToken(t *testing.T) {
	e := newTestServer(&recordingJobService{})

	routes := []struct{ method, path string }{
		{http.MethodGet, "/api/auth/me"},
		{http.MethodGet, "/api/candidates/me"},
		{http.MethodPut, "/api/employers/me"},
		{http.MethodPost, "/api/jobs"},
		{http.MethodDelete, "/api/jobs/507f1f77bcf86cd799439011"},
		{http.MethodGet, "/api/jobs/employer/my-jobs"},
		{http.MethodPost, "/api/applications"},
		{http.MethodGet, "/api/applications/my-applications"},
	}
	for _, r := range routes {
		rec := httptest.NewRecorder()
		e.ServeHTTP(rec, httptest.NewRequest(r.method, r.path, nil))
		if rec.Code != http.StatusUnauthorized {
			t.Fatalf("%s %s: expected 401, got %d", r.method, r.path, rec.Code)
		}
	}
}

func TestRouter_EmployerOnlyRoutesRejectCandidates(t *testing.T) {
	e := newTestServer(&recordingJobService{})
	bearer := "Bearer " + token(t, "candidate")

	routes := []struct{ method, path string }{
		{http.MethodPut, "/api/jobs/507f1f77bcf86cd799439011"},
		{http.MethodDelete, "/api/jobs/507f1f77bcf86cd799439011"},
		{http.MethodGet, "/api/jobs/507f1f77bcf86cd799439011/applications"},
		{http.MethodPut, "/api/applications/507f1f77bcf86cd799439011/status"},
	}
	for _, r := range routes {
		req := httptest.NewRequest(r.method, r.path, nil)
		req.Header.Set(echo.HeaderAuthorization, bearer)
		rec := httptest.NewRecorder()
		e.ServeHTTP(rec, req)
		if rec.Code != http.StatusUnauthorized {
			t.Fatalf("%s %s: expected 401, got %d", r.method, r.path, rec.Code)
		}
	}
}
