package storage

import (
	"context"

	"github.com/cuongbtq/jobboard/internal/api/domain"
)

// JobQuery selects a page of jobs in newest-first order
type JobQuery struct {
	Filter       domain.JobFilter
	FeaturedOnly bool
	Cursor       *domain.JobCursor
	Limit        int // 0 means no limit
}

// ApplicationFilter narrows application listings; zero fields are ignored
type ApplicationFilter struct {
	JobID       int64
	CandidateID int64
	Status      domain.ApplicationStatus
}

// JobStore persists jobs
type JobStore interface {
	ListJobs(ctx context.Context, q JobQuery) ([]domain.Job, error)
	GetJob(ctx context.Context, id int64) (*domain.Job, error)
	CreateJob(ctx context.Context, job *domain.Job) error
	UpdateJob(ctx context.Context, job *domain.Job) error
	DeleteJob(ctx context.Context, id int64) error
}

// ApplicationStore persists applications. CreateApplication returns
// domain.ErrConflict when the (job, candidate) pair already applied.
type ApplicationStore interface {
	ListApplications(ctx context.Context, f ApplicationFilter) ([]domain.Application, error)
	GetApplication(ctx context.Context, id int64) (*domain.Application, error)
	CreateApplication(ctx context.Context, app *domain.Application) error
	UpdateApplication(ctx context.Context, app *domain.Application) error
	DeleteApplication(ctx context.Context, id int64) error
}

// SavedJobStore persists bookmarks. CreateSavedJob returns domain.ErrConflict
// when the candidate already saved the job.
type SavedJobStore interface {
	ListSavedJobs(ctx context.Context, candidateID int64) ([]domain.SavedJob, error)
	GetSavedJob(ctx context.Context, id int64) (*domain.SavedJob, error)
	FindSavedJob(ctx context.Context, candidateID, jobID int64) (*domain.SavedJob, error)
	CreateSavedJob(ctx context.Context, saved *domain.SavedJob) error
	DeleteSavedJob(ctx context.Context, id int64) error
}

// CandidateStore persists candidates
type CandidateStore interface {
	ListCandidates(ctx context.Context) ([]domain.Candidate, error)
	GetCandidate(ctx context.Context, id int64) (*domain.Candidate, error)
	CreateCandidate(ctx context.Context, c *domain.Candidate) error
	UpdateCandidate(ctx context.Context, c *domain.Candidate) error
	DeleteCandidate(ctx context.Context, id int64) error
}

// Store is the full storage port used by the api-service.
// Missing records are reported as domain.ErrNotFound.
type Store interface {
	JobStore
	ApplicationStore
	SavedJobStore
	CandidateStore
	Ping(ctx context.Context) error
	Close() error
}
