package service

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/hireloop/jobboard/internal/core/domain"
	"github.com/hireloop/jobboard/internal/core/ports"
)

type appFixture struct {
	svc        *ApplicationService
	apps       *stubApplicationRepo
	jobs       *stubJobRepo
	users      *stubUserRepo
	candidates *stubCandidateRepo
	employers  *stubEmployerRepo
	notifier   *stubNotifier

	employerUser  string
	candidateUser string
	job           *domain.Job
}

func newAppFixture(t *testing.T) *appFixture {
	t.Helper()
	f := &appFixture{
		apps:       newStubApplicationRepo(),
		jobs:       newStubJobRepo(),
		users:      newStubUserRepo(),
		candidates: newStubCandidateRepo(),
		employers:  newStubEmployerRepo(),
		notifier:   &stubNotifier{},
	}
	f.svc = NewApplicationService(ApplicationDeps{
		Applications: f.apps,
		Jobs:         f.jobs,
		Candidates:   f.candidates,
		Employers:    f.employers,
		Users:        f.users,
		Notifier:     f.notifier,
		Log:          discardLogger,
	})
	f.svc.now = fixedClock(time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC))

	f.employerUser = f.addEmployer(t, "acme")
	f.candidateUser = f.addCandidate(t, "Ada", "ada@example.com")
	f.job = f.addJob(t, f.employerUser, "Backend Engineer", true)
	return f
}

func (f *appFixture) addEmployer(t *testing.T, company string) string {
	t.Helper()
	u := f.users.add(company+" HR", "hr@"+company+".io", domain.RoleEmployer)
	e := domain.NewEmployer(u.ID, time.Now())
	e.CompanyName = company
	if _, err := f.employers.Create(context.Background(), e); err != nil {
		t.Fatalf("seed employer: %v", err)
	}
	return u.ID
}

func (f *appFixture) addCandidate(t *testing.T, name, email string) string {
	t.Helper()
	u := f.users.add(name, email, domain.RoleCandidate)
	c := domain.NewCandidate(u.ID, time.Now())
	c.Skills = []string{"go", "mongodb"}
	c.Experience = domain.ExperienceMid
	if _, err := f.candidates.Create(context.Background(), c); err != nil {
		t.Fatalf("seed candidate: %v", err)
	}
	return u.ID
}

func (f *appFixture) addJob(t *testing.T, employerUser, title string, active bool) *domain.Job {
	t.Helper()
	emp, err := f.employers.FindByUserID(context.Background(), employerUser)
	if err != nil {
		t.Fatalf("seed job: %v", err)
	}
	job, err := f.jobs.Create(context.Background(), &domain.Job{
		Title:        title,
		Description:  title + " role",
		Requirements: []string{"experience"},
		Skills:       []string{"go"},
		Location:     "Remote",
		Type:         domain.JobRemote,
		EmployerID:   emp.ID,
		Deadline:     time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC),
		IsActive:     active,
		CreatedAt:    time.Now(),
	})
	if err != nil {
		t.Fatalf("seed job: %v", err)
	}
	return job
}

func (f *appFixture) submit(userID, jobID string) (*domain.Application, error) {
	return f.svc.Submit(context.Background(), userID, ports.SubmitApplicationInput{
		JobID: jobID, Resume: "https://cv.example.com/ada.pdf", CoverLetter: "Hello",
	})
}

func TestApplicationService_Submit(t *testing.T) {
	f := newAppFixture(t)

	app, err := f.submit(f.candidateUser, f.job.ID)
	if err != nil {
		t.Fatalf("Submit returned error: %v", err)
	}
	if app.Status != domain.StatusPending {
		t.Fatalf("expected pending status, got %s", app.Status)
	}
	if app.EmployerID != f.job.EmployerID {
		t.Fatalf("employer not copied from job")
	}
	if app.AppliedAt.IsZero() {
		t.Fatalf("appliedAt not set")
	}

	received := f.notifier.to("hr@acme.io")
	if len(received) != 1 || received[0].Kind != domain.NotifyApplicationReceived {
		t.Fatalf("expected employer notification, got %+v", received)
	}
	if !strings.Contains(received[0].Message, "Backend Engineer") || !strings.Contains(received[0].Message, "Ada") {
		t.Fatalf("employer notification lacks job or applicant: %q", received[0].Message)
	}
	confirm := f.notifier.to("ada@example.com")
	if len(confirm) != 1 || !strings.Contains(confirm[0].Message, "acme") {
		t.Fatalf("expected candidate confirmation naming the company, got %+v", confirm)
	}
}

func TestApplicationService_Submit_Errors(t *testing.T) {
	f := newAppFixture(t)
	inactive := f.addJob(t, f.employerUser, "Closed", false)

	if _, err := f.submit(f.employerUser, f.job.ID); !errors.Is(err, domain.ErrProfileNotFound) {
		t.Fatalf("expected ErrProfileNotFound for employer account, got %v", err)
	}
	if _, err := f.submit(f.candidateUser, "job-missing"); !errors.Is(err, domain.ErrJobNotFound) {
		t.Fatalf("expected ErrJobNotFound, got %v", err)
	}
	if _, err := f.submit(f.candidateUser, inactive.ID); !errors.Is(err, domain.ErrJobInactive) {
		t.Fatalf("expected ErrJobInactive, got %v", err)
	}
	if _, err := f.svc.Submit(context.Background(), f.candidateUser, ports.SubmitApplicationInput{JobID: f.job.ID}); !errors.Is(err, domain.ErrValidation) {
		t.Fatalf("expected ErrValidation without resume, got %v", err)
	}
	if _, err := f.svc.Submit(context.Background(), f.candidateUser, ports.SubmitApplicationInput{Resume: "cv"}); !errors.Is(err, domain.ErrValidation) {
		t.Fatalf("expected ErrValidation without job, got %v", err)
	}
	if n := f.apps.count(); n != 0 {
		t.Fatalf("failed submissions stored %d applications", n)
	}
}

func TestApplicationService_Submit_Duplicate(t *testing.T) {
	f := newAppFixture(t)

	if _, err := f.submit(f.candidateUser, f.job.ID); err != nil {
		t.Fatalf("first Submit returned error: %v", err)
	}
	if _, err := f.submit(f.candidateUser, f.job.ID); !errors.Is(err, domain.ErrDuplicateApplication) {
		t.Fatalf("expected ErrDuplicateApplication, got %v", err)
	}
	if n := f.apps.count(); n != 1 {
		t.Fatalf("expected 1 application, got %d", n)
	}
}

func TestApplicationService_Submit_DuplicateCaughtByStore(t *testing.T) {
	f := newAppFixture(t)
	f.apps.staleExists = true

	if _, err := f.submit(f.candidateUser, f.job.ID); err != nil {
		t.Fatalf("first Submit returned error: %v", err)
	}
	if _, err := f.submit(f.candidateUser, f.job.ID); !errors.Is(err, domain.ErrDuplicateApplication) {
		t.Fatalf("expected ErrDuplicateApplication from the store, got %v", err)
	}
}

func TestApplicationService_Submit_ConcurrentDuplicates(t *testing.T) {
	f := newAppFixture(t)
	f.apps.staleExists = true

	const n = 16
	var (
		wg        sync.WaitGroup
		mu        sync.Mutex
		succeeded int
		dupes     int
	)
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := f.submit(f.candidateUser, f.job.ID)
			mu.Lock()
			defer mu.Unlock()
			switch {
			case err == nil:
				succeeded++
			case errors.Is(err, domain.ErrDuplicateApplication):
				dupes++
			default:
				t.Errorf("unexpected error: %v", err)
			}
		}()
	}
	wg.Wait()

	if succeeded != 1 || dupes != n-1 {
		t.Fatalf("expected 1 success and %d duplicates, got %d and %d", n-1, succeeded, dupes)
	}
	if c := f.apps.count(); c != 1 {
		t.Fatalf("expected exactly one stored application, got %d", c)
	}
}

func TestApplicationService_UpdateStatus(t *testing.T) {
	f := newAppFixture(t)
	ctx := context.Background()
	app, _ := f.submit(f.candidateUser, f.job.ID)

	updated, err := f.svc.UpdateStatus(ctx, f.employerUser, app.ID, domain.StatusReviewed)
	if err != nil {
		t.Fatalf("UpdateStatus returned error: %v", err)
	}
	if updated.Status != domain.StatusReviewed {
		t.Fatalf("expected reviewed, got %s", updated.Status)
	}

	// Transitions are unrestricted, including back to pending.
	if _, err := f.svc.UpdateStatus(ctx, f.employerUser, app.ID, domain.StatusPending); err != nil {
		t.Fatalf("UpdateStatus back to pending returned error: %v", err)
	}

	var changed []domain.Notification
	for _, n := range f.notifier.to("ada@example.com") {
		if n.Kind == domain.NotifyStatusChanged {
			changed = append(changed, n)
		}
	}
	if len(changed) != 2 || !strings.Contains(changed[0].Message, "reviewed") {
		t.Fatalf("expected status notifications to the candidate, got %+v", changed)
	}
}

func TestApplicationService_UpdateStatus_AnyOrder(t *testing.T) {
	f := newAppFixture(t)
	ctx := context.Background()
	app, _ := f.submit(f.candidateUser, f.job.ID)

	for _, next := range []domain.ApplicationStatus{
		domain.StatusAccepted, domain.StatusRejected, domain.StatusAccepted, domain.StatusPending,
	} {
		updated, err := f.svc.UpdateStatus(ctx, f.employerUser, app.ID, next)
		if err != nil {
			t.Fatalf("UpdateStatus to %s returned error: %v", next, err)
		}
		if updated.Status != next {
			t.Fatalf("expected %s, got %s", next, updated.Status)
		}
	}
}

func TestApplicationService_NotifierFailureDoesNotFailRequest(t *testing.T) {
	f := newAppFixture(t)
	ctx := context.Background()
	f.notifier.err = errors.New("queue full")

	app, err := f.submit(f.candidateUser, f.job.ID)
	if err != nil {
		t.Fatalf("Submit returned error: %v", err)
	}
	if got := f.apps.count(); got != 1 {
		t.Fatalf("expected application stored, got %d", got)
	}

	if _, err := f.svc.UpdateStatus(ctx, f.employerUser, app.ID, domain.StatusAccepted); err != nil {
		t.Fatalf("UpdateStatus returned error: %v", err)
	}
	stored, err := f.apps.FindByID(ctx, app.ID)
	if err != nil {
		t.Fatalf("FindByID returned error: %v", err)
	}
	if stored.Status != domain.StatusAccepted {
		t.Fatalf("expected accepted to be persisted, got %s", stored.Status)
	}
	if got := f.notifier.to("ada@example.com"); len(got) != 0 {
		t.Fatalf("expected nothing delivered, got %+v", got)
	}
}

func TestApplicationService_UpdateStatus_Errors(t *testing.T) {
	f := newAppFixture(t)
	ctx := context.Background()
	app, _ := f.submit(f.candidateUser, f.job.ID)
	other := f.addEmployer(t, "globex")

	if _, err := f.svc.UpdateStatus(ctx, f.employerUser, app.ID, "hired"); !errors.Is(err, domain.ErrValidation) {
		t.Fatalf("expected ErrValidation for unknown status, got %v", err)
	}
	if _, err := f.svc.UpdateStatus(ctx, f.employerUser, "app-missing", domain.StatusAccepted); !errors.Is(err, domain.ErrApplicationNotFound) {
		t.Fatalf("expected ErrApplicationNotFound, got %v", err)
	}
	if _, err := f.svc.UpdateStatus(ctx, other, app.ID, domain.StatusAccepted); !errors.Is(err, domain.ErrUnauthorized) {
		t.Fatalf("expected ErrUnauthorized for other employer, got %v", err)
	}
	if _, err := f.svc.UpdateStatus(ctx, f.candidateUser, app.ID, domain.StatusAccepted); !errors.Is(err, domain.ErrUnauthorized) {
		t.Fatalf("expected ErrUnauthorized for candidate, got %v", err)
	}

	stored, _ := f.apps.FindByID(ctx, app.ID)
	if stored.Status != domain.StatusPending {
		t.Fatalf("rejected updates changed the status to %s", stored.Status)
	}
}

func TestApplicationService_ListByCandidate_NewestFirst(t *testing.T) {
	f := newAppFixture(t)
	ctx := context.Background()
	second := f.addJob(t, f.employerUser, "Platform Engineer", true)
	third := f.addJob(t, f.employerUser, "SRE", true)

	for _, j := range []*domain.Job{f.job, second, third} {
		if _, err := f.submit(f.candidateUser, j.ID); err != nil {
			t.Fatalf("Submit returned error: %v", err)
		}
	}

	views, err := f.svc.ListByCandidate(ctx, f.candidateUser)
	if err != nil {
		t.Fatalf("ListByCandidate returned error: %v", err)
	}
	want := []string{"SRE", "Platform Engineer", "Backend Engineer"}
	if len(views) != len(want) {
		t.Fatalf("expected %d applications, got %d", len(want), len(views))
	}
	for i, v := range views {
		if v.Job == nil || v.Job.Title != want[i] {
			t.Fatalf("row %d: expected job %q, got %+v", i, want[i], v.Job)
		}
		if v.Employer == nil || v.Employer.CompanyName != "acme" {
			t.Fatalf("row %d: missing employer summary", i)
		}
	}

	if _, err := f.svc.ListByCandidate(ctx, f.employerUser); !errors.Is(err, domain.ErrProfileNotFound) {
		t.Fatalf("expected ErrProfileNotFound, got %v", err)
	}
}

func TestApplicationService_ListByCandidate_DeletedJob(t *testing.T) {
	f := newAppFixture(t)
	ctx := context.Background()
	if _, err := f.submit(f.candidateUser, f.job.ID); err != nil {
		t.Fatalf("Submit returned error: %v", err)
	}
	if err := f.jobs.Delete(ctx, f.job.ID); err != nil {
		t.Fatalf("Delete returned error: %v", err)
	}

	views, err := f.svc.ListByCandidate(ctx, f.candidateUser)
	if err != nil {
		t.Fatalf("ListByCandidate returned error: %v", err)
	}
	if len(views) != 1 || views[0].Job != nil {
		t.Fatalf("expected orphaned application without job summary, got %+v", views)
	}
}

func TestApplicationService_ListByJob(t *testing.T) {
	f := newAppFixture(t)
	ctx := context.Background()
	bob := f.addCandidate(t, "Bob", "bob@example.com")
	_, _ = f.submit(f.candidateUser, f.job.ID)
	_, _ = f.submit(bob, f.job.ID)

	views, err := f.svc.ListByJob(ctx, f.employerUser, f.job.ID)
	if err != nil {
		t.Fatalf("ListByJob returned error: %v", err)
	}
	if len(views) != 2 {
		t.Fatalf("expected 2 applications, got %d", len(views))
	}
	got := map[string]*domain.CandidateSummary{}
	for _, v := range views {
		got[v.Candidate.Email] = v.Candidate
	}
	ada := got["ada@example.com"]
	if ada == nil || ada.Name != "Ada" || ada.Experience != domain.ExperienceMid || len(ada.Skills) != 2 {
		t.Fatalf("candidate summary not joined: %+v", ada)
	}

	other := f.addEmployer(t, "globex")
	if _, err := f.svc.ListByJob(ctx, other, f.job.ID); !errors.Is(err, domain.ErrUnauthorized) {
		t.Fatalf("expected ErrUnauthorized, got %v", err)
	}
	if _, err := f.svc.ListByJob(ctx, f.employerUser, "job-missing"); !errors.Is(err, domain.ErrJobNotFound) {
		t.Fatalf("expected ErrJobNotFound, got %v", err)
	}
}
