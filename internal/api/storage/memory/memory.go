// Package memory is an in-process Store used for tests and local demos.
// Every read returns copies so callers can never mutate stored records.
package memory

import (
	"cmp"
	"context"
	"encoding/json"
	"fmt"
	"os"
	"slices"
	"sync"

	"github.com/cuongbtq/jobboard/internal/api/domain"
	"github.com/cuongbtq/jobboard/internal/api/storage"
)

// Seed is the fixture file layout
type Seed struct {
	Jobs         []domain.Job         `json:"jobs"`
	Applications []domain.Application `json:"applications"`
	SavedJobs    []domain.SavedJob    `json:"saved_jobs"`
	Candidates   []domain.Candidate   `json:"candidates"`
}

// Store keeps every collection behind one RWMutex
type Store struct {
	mu           sync.RWMutex
	jobs         []domain.Job
	applications []domain.Application
	savedJobs    []domain.SavedJob
	candidates   []domain.Candidate
}

var _ storage.Store = (*Store)(nil)

// New returns an empty store
func New() *Store {
	return &Store{}
}

// NewFromSeed returns a store pre-populated with copies of the seed records
func NewFromSeed(seed Seed) *Store {
	s := New()
	for _, j := range seed.Jobs {
		s.jobs = append(s.jobs, j.Clone())
	}
	for _, a := range seed.Applications {
		s.applications = append(s.applications, a.Clone())
	}
	s.savedJobs = slices.Clone(seed.SavedJobs)
	for _, c := range seed.Candidates {
		s.candidates = append(s.candidates, c.Clone())
	}
	return s
}

// LoadSeedFile reads a JSON fixture file
func LoadSeedFile(path string) (Seed, error) {
	var seed Seed

	data, err := os.ReadFile(path)
	if err != nil {
		return seed, fmt.Errorf("failed to read seed file: %w", err)
	}
	if err := json.Unmarshal(data, &seed); err != nil {
		return seed, fmt.Errorf("failed to parse seed file: %w", err)
	}

	return seed, nil
}

func (s *Store) Ping(ctx context.Context) error { return ctx.Err() }

func (s *Store) Close() error { return nil }

func nextID[T any](items []T, id func(T) int64) int64 {
	var highest int64
	for _, it := range items {
		if v := id(it); v > highest {
			highest = v
		}
	}
	return highest + 1
}

func notFound(what string, id int64) error {
	return fmt.Errorf("%s %d: %w", what, id, domain.ErrNotFound)
}

// Jobs

func (s *Store) ListJobs(ctx context.Context, q storage.JobQuery) ([]domain.Job, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]domain.Job, 0, len(s.jobs))
	for _, j := range s.jobs {
		if q.FeaturedOnly && !j.Featured {
			continue
		}
		if !q.Filter.Matches(j) {
			continue
		}
		out = append(out, j.Clone())
	}

	domain.SortJobsNewestFirst(out)

	if q.Cursor != nil {
		out = slices.DeleteFunc(out, func(j domain.Job) bool { return !q.Cursor.After(j) })
	}
	if q.Limit > 0 && len(out) > q.Limit {
		out = out[:q.Limit]
	}

	return out, nil
}

func (s *Store) GetJob(ctx context.Context, id int64) (*domain.Job, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	i := slices.IndexFunc(s.jobs, func(j domain.Job) bool { return j.ID == id })
	if i < 0 {
		return nil, notFound("job", id)
	}
	job := s.jobs[i].Clone()
	return &job, nil
}

func (s *Store) CreateJob(ctx context.Context, job *domain.Job) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	job.ID = nextID(s.jobs, func(j domain.Job) int64 { return j.ID })
	s.jobs = append(s.jobs, job.Clone())
	return nil
}

func (s *Store) UpdateJob(ctx context.Context, job *domain.Job) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := slices.IndexFunc(s.jobs, func(j domain.Job) bool { return j.ID == job.ID })
	if i < 0 {
		return notFound("job", job.ID)
	}

	updated := job.Clone()
	updated.Applicants = s.jobs[i].Applicants
	s.jobs[i] = updated
	return nil
}

// DeleteJob removes the job with its applications and bookmarks
func (s *Store) DeleteJob(ctx context.Context, id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := slices.IndexFunc(s.jobs, func(j domain.Job) bool { return j.ID == id })
	if i < 0 {
		return notFound("job", id)
	}

	s.jobs = slices.Delete(s.jobs, i, i+1)
	s.applications = slices.DeleteFunc(s.applications, func(a domain.Application) bool { return a.JobID == id })
	s.savedJobs = slices.DeleteFunc(s.savedJobs, func(sj domain.SavedJob) bool { return sj.JobID == id })
	return nil
}

// Applications

func (s *Store) ListApplications(ctx context.Context, f storage.ApplicationFilter) ([]domain.Application, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]domain.Application, 0, len(s.applications))
	for _, a := range s.applications {
		if f.JobID != 0 && a.JobID != f.JobID {
			continue
		}
		if f.CandidateID != 0 && a.CandidateID != f.CandidateID {
			continue
		}
		if f.Status != "" && a.Status != f.Status {
			continue
		}
		out = append(out, a.Clone())
	}

	domain.SortApplicationsNewestFirst(out)
	return out, nil
}

func (s *Store) GetApplication(ctx context.Context, id int64) (*domain.Application, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	i := slices.IndexFunc(s.applications, func(a domain.Application) bool { return a.ID == id })
	if i < 0 {
		return nil, notFound("application", id)
	}
	app := s.applications[i].Clone()
	return &app, nil
}

// CreateApplication checks pair uniqueness under the write lock
func (s *Store) CreateApplication(ctx context.Context, app *domain.Application) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	dup := slices.IndexFunc(s.applications, func(a domain.Application) bool {
		return a.JobID == app.JobID && a.CandidateID == app.CandidateID
	})
	if dup >= 0 {
		return fmt.Errorf("candidate %d already applied to job %d: %w", app.CandidateID, app.JobID, domain.ErrConflict)
	}

	app.ID = nextID(s.applications, func(a domain.Application) int64 { return a.ID })
	s.applications = append(s.applications, app.Clone())
	return nil
}

func (s *Store) UpdateApplication(ctx context.Context, app *domain.Application) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := slices.IndexFunc(s.applications, func(a domain.Application) bool { return a.ID == app.ID })
	if i < 0 {
		return notFound("application", app.ID)
	}
	s.applications[i] = app.Clone()
	return nil
}

func (s *Store) DeleteApplication(ctx context.Context, id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := slices.IndexFunc(s.applications, func(a domain.Application) bool { return a.ID == id })
	if i < 0 {
		return notFound("application", id)
	}
	s.applications = slices.Delete(s.applications, i, i+1)
	return nil
}

// Saved jobs

func (s *Store) ListSavedJobs(ctx context.Context, candidateID int64) ([]domain.SavedJob, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]domain.SavedJob, 0)
	for _, sj := range s.savedJobs {
		if sj.CandidateID == candidateID {
			out = append(out, sj)
		}
	}

	slices.SortStableFunc(out, func(a, b domain.SavedJob) int {
		if c := b.SavedAt.Compare(a.SavedAt); c != 0 {
			return c
		}
		return cmp.Compare(b.ID, a.ID)
	})
	return out, nil
}

func (s *Store) GetSavedJob(ctx context.Context, id int64) (*domain.SavedJob, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	i := slices.IndexFunc(s.savedJobs, func(sj domain.SavedJob) bool { return sj.ID == id })
	if i < 0 {
		return nil, notFound("saved job", id)
	}
	sj := s.savedJobs[i]
	return &sj, nil
}

func (s *Store) FindSavedJob(ctx context.Context, candidateID, jobID int64) (*domain.SavedJob, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	i := slices.IndexFunc(s.savedJobs, func(sj domain.SavedJob) bool {
		return sj.CandidateID == candidateID && sj.JobID == jobID
	})
	if i < 0 {
		return nil, fmt.Errorf("job %d is not saved: %w", jobID, domain.ErrNotFound)
	}
	sj := s.savedJobs[i]
	return &sj, nil
}

func (s *Store) CreateSavedJob(ctx context.Context, saved *domain.SavedJob) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	dup := slices.IndexFunc(s.savedJobs, func(sj domain.SavedJob) bool {
		return sj.CandidateID == saved.CandidateID && sj.JobID == saved.JobID
	})
	if dup >= 0 {
		return fmt.Errorf("job %d already saved: %w", saved.JobID, domain.ErrConflict)
	}

	saved.ID = nextID(s.savedJobs, func(sj domain.SavedJob) int64 { return sj.ID })
	s.savedJobs = append(s.savedJobs, *saved)
	return nil
}

func (s *Store) DeleteSavedJob(ctx context.Context, id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := slices.IndexFunc(s.savedJobs, func(sj domain.SavedJob) bool { return sj.ID == id })
	if i < 0 {
		return notFound("saved job", id)
	}
	s.savedJobs = slices.Delete(s.savedJobs, i, i+1)
	return nil
}

// Candidates

func (s *Store) ListCandidates(ctx context.Context) ([]domain.Candidate, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]domain.Candidate, 0, len(s.candidates))
	for _, c := range s.candidates {
		out = append(out, c.Clone())
	}

	slices.SortStableFunc(out, func(a, b domain.Candidate) int {
		if c := b.CreatedAt.Compare(a.CreatedAt); c != 0 {
			return c
		}
		return cmp.Compare(b.ID, a.ID)
	})
	return out, nil
}

func (s *Store) GetCandidate(ctx context.Context, id int64) (*domain.Candidate, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	i := slices.IndexFunc(s.candidates, func(c domain.Candidate) bool { return c.ID == id })
	if i < 0 {
		return nil, notFound("candidate", id)
	}
	c := s.candidates[i].Clone()
	return &c, nil
}

func (s *Store) CreateCandidate(ctx context.Context, c *domain.Candidate) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	c.ID = nextID(s.candidates, func(c domain.Candidate) int64 { return c.ID })
	s.candidates = append(s.candidates, c.Clone())
	return nil
}

func (s *Store) UpdateCandidate(ctx context.Context, c *domain.Candidate) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := slices.IndexFunc(s.candidates, func(x domain.Candidate) bool { return x.ID == c.ID })
	if i < 0 {
		return notFound("candidate", c.ID)
	}
	s.candidates[i] = c.Clone()
	return nil
}

func (s *Store) DeleteCandidate(ctx context.Context, id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := slices.IndexFunc(s.candidates, func(c domain.Candidate) bool { return c.ID == id })
	if i < 0 {
		return notFound("candidate", id)
	}
	s.candidates = slices.Delete(s.candidates, i, i+1)
	return nil
}
