package service

import (
	"context"
	"fmt"
	"sort"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/hireloop/jobboard/internal/core/domain"
	"github.com/hireloop/jobboard/internal/core/ports"
)

var discardLogger = zerolog.Nop()

// ---------------------------------------------------------------------------
// In-memory stub repositories
// ---------------------------------------------------------------------------

type stubUserRepo struct {
	mu      sync.Mutex
	byID    map[string]*domain.User
	seq     int
	deleted []string
}

func newStubUserRepo() *stubUserRepo {
	return &stubUserRepo{byID: make(map[string]*domain.User)}
}

func cloneUser(u *domain.User) *domain.User {
	c := *u
	return &c
}

func (r *stubUserRepo) Create(_ context.Context, u *domain.User) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, existing := range r.byID {
		if existing.Email == u.Email {
			return nil, domain.ErrUserExists
		}
	}
	r.seq++
	c := cloneUser(u)
	c.ID = fmt.Sprintf("user-%d", r.seq)
	r.byID[c.ID] = c
	return cloneUser(c), nil
}

func (r *stubUserRepo) FindByID(_ context.Context, id string) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.byID[id]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	return cloneUser(u), nil
}

func (r *stubUserRepo) FindByEmail(_ context.Context, email string) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.byID {
		if u.Email == email {
			return cloneUser(u), nil
		}
	}
	return nil, domain.ErrUserNotFound
}

func (r *stubUserRepo) FindByIDs(_ context.Context, ids []string) (map[string]*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make(map[string]*domain.User)
	for _, id := range ids {
		if u, ok := r.byID[id]; ok {
			out[id] = cloneUser(u)
		}
	}
	return out, nil
}

func (r *stubUserRepo) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.byID, id)
	r.deleted = append(r.deleted, id)
	return nil
}

// add stores a user directly, bypassing registration.
func (r *stubUserRepo) add(name, email, role string) *domain.User {
	u, err := r.Create(context.Background(), &domain.User{Name: name, Email: email, Role: role})
	if err != nil {
		panic(err)
	}
	return u
}

type stubCandidateRepo struct {
	mu        sync.Mutex
	byID      map[string]*domain.Candidate
	seq       int
	createErr error
}

func newStubCandidateRepo() *stubCandidateRepo {
	return &stubCandidateRepo{byID: make(map[string]*domain.Candidate)}
}

func (r *stubCandidateRepo) Create(_ context.Context, c *domain.Candidate) (*domain.Candidate, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.createErr != nil {
		return nil, r.createErr
	}
	r.seq++
	clone := *c
	clone.ID = fmt.Sprintf("cand-%d", r.seq)
	r.byID[clone.ID] = &clone
	out := clone
	return &out, nil
}

func (r *stubCandidateRepo) FindByUserID(_ context.Context, userID string) (*domain.Candidate, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, c := range r.byID {
		if c.UserID == userID {
			clone := *c
			return &clone, nil
		}
	}
	return nil, domain.ErrProfileNotFound
}

func (r *stubCandidateRepo) FindByIDs(_ context.Context, ids []string) (map[string]*domain.Candidate, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make(map[string]*domain.Candidate)
	for _, id := range ids {
		if c, ok := r.byID[id]; ok {
			clone := *c
			out[id] = &clone
		}
	}
	return out, nil
}

func (r *stubCandidateRepo) Update(_ context.Context, userID string, in *domain.Candidate) (*domain.Candidate, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, c := range r.byID {
		if c.UserID == userID {
			c.Skills = in.Skills
			c.Experience = in.Experience
			c.Education = in.Education
			c.Resume = in.Resume
			c.Location = in.Location
			c.Phone = in.Phone
			clone := *c
			return &clone, nil
		}
	}
	return nil, domain.ErrProfileNotFound
}

func (r *stubCandidateRepo) count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.byID)
}

type stubEmployerRepo struct {
	mu        sync.Mutex
	byID      map[string]*domain.Employer
	seq       int
	createErr error
}

func newStubEmployerRepo() *stubEmployerRepo {
	return &stubEmployerRepo{byID: make(map[string]*domain.Employer)}
}

func (r *stubEmployerRepo) Create(_ context.Context, e *domain.Employer) (*domain.Employer, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.createErr != nil {
		return nil, r.createErr
	}
	r.seq++
	clone := *e
	clone.ID = fmt.Sprintf("emp-%d", r.seq)
	r.byID[clone.ID] = &clone
	out := clone
	return &out, nil
}

func (r *stubEmployerRepo) FindByID(_ context.Context, id string) (*domain.Employer, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	e, ok := r.byID[id]
	if !ok {
		return nil, domain.ErrProfileNotFound
	}
	clone := *e
	return &clone, nil
}

func (r *stubEmployerRepo) FindByUserID(_ context.Context, userID string) (*domain.Employer, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, e := range r.byID {
		if e.UserID == userID {
			clone := *e
			return &clone, nil
		}
	}
	return nil, domain.ErrProfileNotFound
}

func (r *stubEmployerRepo) FindByIDs(_ context.Context, ids []string) (map[string]*domain.Employer, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make(map[string]*domain.Employer)
	for _, id := range ids {
		if e, ok := r.byID[id]; ok {
			clone := *e
			out[id] = &clone
		}
	}
	return out, nil
}

func (r *stubEmployerRepo) Update(_ context.Context, userID string, in *domain.Employer) (*domain.Employer, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, e := range r.byID {
		if e.UserID == userID {
			e.CompanyName = in.CompanyName
			e.Website = in.Website
			e.Description = in.Description
			e.Address = in.Address
			e.Phone = in.Phone
			clone := *e
			return &clone, nil
		}
	}
	return nil, domain.ErrProfileNotFound
}

func (r *stubEmployerRepo) count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.byID)
}

type stubJobRepo struct {
	mu   sync.Mutex
	byID map[string]*domain.Job
	seq  int

	// afterList runs once the result of a List call has been read, before it
	// is returned.
	afterList func()
}

func newStubJobRepo() *stubJobRepo {
	return &stubJobRepo{byID: make(map[string]*domain.Job)}
}

func cloneJob(j *domain.Job) *domain.Job {
	c := *j
	c.Requirements = append([]string(nil), j.Requirements...)
	c.Skills = append([]string(nil), j.Skills...)
	return &c
}

func (r *stubJobRepo) Create(_ context.Context, j *domain.Job) (*domain.Job, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.seq++
	c := cloneJob(j)
	c.ID = fmt.Sprintf("job-%d", r.seq)
	r.byID[c.ID] = c
	return cloneJob(c), nil
}

func (r *stubJobRepo) FindByID(_ context.Context, id string) (*domain.Job, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	j, ok := r.byID[id]
	if !ok {
		return nil, domain.ErrJobNotFound
	}
	return cloneJob(j), nil
}

func (r *stubJobRepo) FindByIDs(_ context.Context, ids []string) (map[string]*domain.Job, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make(map[string]*domain.Job)
	for _, id := range ids {
		if j, ok := r.byID[id]; ok {
			out[id] = cloneJob(j)
		}
	}
	return out, nil
}

// List applies the same filters the Mongo repository builds.
func (r *stubJobRepo) List(_ context.Context, f ports.JobFilter) ([]*domain.Job, error) {
	out := r.list(f)
	if r.afterList != nil {
		r.afterList()
	}
	return out, nil
}

func (r *stubJobRepo) list(f ports.JobFilter) []*domain.Job {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*domain.Job
	for _, j := range r.byID {
		if f.ActiveOnly && !j.IsActive {
			continue
		}
		if f.EmployerID != "" && j.EmployerID != f.EmployerID {
			continue
		}
		if f.Title != "" && !strings.Contains(strings.ToLower(j.Title), strings.ToLower(f.Title)) {
			continue
		}
		if f.Location != "" && !strings.Contains(strings.ToLower(j.Location), strings.ToLower(f.Location)) {
			continue
		}
		if f.Type != "" && j.Type != f.Type {
			continue
		}
		out = append(out, cloneJob(j))
	}
	sort.Slice(out, func(a, b int) bool { return out[a].CreatedAt.After(out[b].CreatedAt) })
	if f.Limit > 0 && len(out) > f.Limit {
		out = out[:f.Limit]
	}
	return out
}

func (r *stubJobRepo) Replace(_ context.Context, j *domain.Job) (*domain.Job, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.byID[j.ID]; !ok {
		return nil, domain.ErrJobNotFound
	}
	r.byID[j.ID] = cloneJob(j)
	return cloneJob(j), nil
}

func (r *stubJobRepo) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.byID[id]; !ok {
		return domain.ErrJobNotFound
	}
	delete(r.byID, id)
	return nil
}

// stubApplicationRepo enforces the (job, candidate) uniqueness inside Create,
// mirroring the unique index of the Mongo collection.
type stubApplicationRepo struct {
	mu   sync.Mutex
	byID map[string]*domain.Application
	seq  int
	// staleExists makes Exists always report false, as a pre-check racing
	// another insert would.
	staleExists bool
}

func newStubApplicationRepo() *stubApplicationRepo {
	return &stubApplicationRepo{byID: make(map[string]*domain.Application)}
}

func (r *stubApplicationRepo) Create(_ context.Context, a *domain.Application) (*domain.Application, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, existing := range r.byID {
		if existing.JobID == a.JobID && existing.CandidateID == a.CandidateID {
			return nil, domain.ErrDuplicateApplication
		}
	}
	r.seq++
	c := *a
	c.ID = fmt.Sprintf("app-%d", r.seq)
	r.byID[c.ID] = &c
	out := c
	return &out, nil
}

func (r *stubApplicationRepo) Exists(_ context.Context, jobID, candidateID string) (bool, error) {
	if r.staleExists {
		return false, nil
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, a := range r.byID {
		if a.JobID == jobID && a.CandidateID == candidateID {
			return true, nil
		}
	}
	return false, nil
}

func (r *stubApplicationRepo) FindByID(_ context.Context, id string) (*domain.Application, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	a, ok := r.byID[id]
	if !ok {
		return nil, domain.ErrApplicationNotFound
	}
	c := *a
	return &c, nil
}

func (r *stubApplicationRepo) ListByCandidate(_ context.Context, candidateID string) ([]*domain.Application, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*domain.Application
	for _, a := range r.byID {
		if a.CandidateID == candidateID {
			c := *a
			out = append(out, &c)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].AppliedAt.After(out[j].AppliedAt) })
	return out, nil
}

func (r *stubApplicationRepo) ListByJob(_ context.Context, jobID string) ([]*domain.Application, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*domain.Application
	for _, a := range r.byID {
		if a.JobID == jobID {
			c := *a
			out = append(out, &c)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r *stubApplicationRepo) UpdateStatus(_ context.Context, id string, status domain.ApplicationStatus) (*domain.Application, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	a, ok := r.byID[id]
	if !ok {
		return nil, domain.ErrApplicationNotFound
	}
	a.Status = status
	c := *a
	return &c, nil
}

func (r *stubApplicationRepo) count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.byID)
}

// ---------------------------------------------------------------------------
// Other stubs
// ---------------------------------------------------------------------------

type stubNotifier struct {
	mu   sync.Mutex
	sent []domain.Notification
	err  error
}

func (n *stubNotifier) Notify(_ context.Context, msg domain.Notification) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	if n.err != nil {
		return n.err
	}
	n.sent = append(n.sent, msg)
	return nil
}

func (n *stubNotifier) to(email string) []domain.Notification {
	n.mu.Lock()
	defer n.mu.Unlock()
	var out []domain.Notification
	for _, m := range n.sent {
		if m.To == email {
			out = append(out, m)
		}
	}
	return out
}

type stubLimiter struct {
	failures map[string]int
	max      int
}

func newStubLimiter(max int) *stubLimiter {
	return &stubLimiter{failures: make(map[string]int), max: max}
}

func (l *stubLimiter) Blocked(_ context.Context, key string) (bool, error) {
	return l.failures[key] >= l.max, nil
}

func (l *stubLimiter) RecordFailure(_ context.Context, key string) error {
	l.failures[key]++
	return nil
}

func (l *stubLimiter) Reset(_ context.Context, key string) error {
	delete(l.failures, key)
	return nil
}

// stubFeaturedCache mirrors the Redis cache's generation check: a Set made
// with a generation older than the last Invalidate is dropped.
type stubFeaturedCache struct {
	views       []ports.JobView
	warm        bool
	gen         int
	sets        int
	staleSets   int
	invalidated int
}

func (c *stubFeaturedCache) Get(context.Context) ([]ports.JobView, string, bool, error) {
	return c.views, strconv.Itoa(c.gen), c.warm, nil
}

func (c *stubFeaturedCache) Set(_ context.Context, gen string, v []ports.JobView) error {
	if gen != strconv.Itoa(c.gen) {
		c.staleSets++
		return nil
	}
	c.views, c.warm = v, true
	c.sets++
	return nil
}

func (c *stubFeaturedCache) Invalidate(context.Context) error {
	c.views, c.warm = nil, false
	c.gen++
	c.invalidated++
	return nil
}

// fixedClock returns a clock that advances one minute per call.
func fixedClock(start time.Time) func() time.Time {
	var mu sync.Mutex
	t := start
	return func() time.Time {
		mu.Lock()
		defer mu.Unlock()
		t = t.Add(time.Minute)
		return t
	}
}
