// Package service holds the job board repositories. Each one owns the business
// rules for a single collection and talks to storage only through the port in
// internal/api/storage.
package service

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/cuongbtq/jobboard/internal/api/domain"
	"github.com/cuongbtq/jobboard/internal/api/storage"
)

const (
	DefaultPageSize      = 20
	MaxPageSize          = 100
	DefaultFeaturedLimit = 3
)

// timestamp is the stored form of a clock reading: UTC at microsecond
// precision, which is what TIMESTAMPTZ keeps
func timestamp(t time.Time) time.Time {
	return t.UTC().Truncate(time.Microsecond)
}

// JobRepository lists and maintains job postings
type JobRepository struct {
	store  storage.JobStore
	logger *slog.Logger
	now    func() time.Time
}

func NewJobRepository(store storage.JobStore, logger *slog.Logger) *JobRepository {
	return &JobRepository{
		store:  store,
		logger: logger,
		now:    time.Now,
	}
}

// JobPage is one page of a cursor listing. Next is nil on the last page.
type JobPage struct {
	Jobs []domain.Job
	Next *domain.JobCursor
}

// List returns every job matching the filter, newest first
func (r *JobRepository) List(ctx context.Context, filter domain.JobFilter) ([]domain.Job, error) {
	jobs, err := r.store.ListJobs(ctx, storage.JobQuery{Filter: filter})
	if err != nil {
		return nil, fmt.Errorf("failed to list jobs: %w", err)
	}
	return jobs, nil
}

// ListPage returns up to pageSize jobs after cursor
func (r *JobRepository) ListPage(ctx context.Context, filter domain.JobFilter, pageSize int, cursor *domain.JobCursor) (JobPage, error) {
	if pageSize <= 0 {
		pageSize = DefaultPageSize
	}
	if pageSize > MaxPageSize {
		pageSize = MaxPageSize
	}

	// one extra row tells us whether another page exists
	jobs, err := r.store.ListJobs(ctx, storage.JobQuery{
		Filter: filter,
		Cursor: cursor,
		Limit:  pageSize + 1,
	})
	if err != nil {
		return JobPage{}, fmt.Errorf("failed to list jobs: %w", err)
	}

	page := JobPage{Jobs: jobs}
	if len(jobs) > pageSize {
		page.Jobs = jobs[:pageSize]
		last := page.Jobs[pageSize-1]
		page.Next = &domain.JobCursor{PostedAt: last.PostedAt, JobID: last.ID}
	}

	return page, nil
}

func (r *JobRepository) GetByID(ctx context.Context, id int64) (*domain.Job, error) {
	return r.store.GetJob(ctx, id)
}

// ListFeatured returns at most limit featured jobs; limit <= 0 uses DefaultFeaturedLimit
func (r *JobRepository) ListFeatured(ctx context.Context, limit int) ([]domain.Job, error) {
	if limit <= 0 {
		limit = DefaultFeaturedLimit
	}

	jobs, err := r.store.ListJobs(ctx, storage.JobQuery{FeaturedOnly: true, Limit: limit})
	if err != nil {
		return nil, fmt.Errorf("failed to list featured jobs: %w", err)
	}
	return jobs, nil
}

func (r *JobRepository) Create(ctx context.Context, in domain.JobInput) (*domain.Job, error) {
	job, err := domain.NewJob(in, timestamp(r.now()))
	if err != nil {
		return nil, err
	}

	if err := r.store.CreateJob(ctx, job); err != nil {
		return nil, fmt.Errorf("failed to create job: %w", err)
	}

	r.logger.Info("Job created",
		slog.Int64("job_id", job.ID),
		slog.String("title", job.Title),
	)
	return job, nil
}

// Update merges patch into the stored job. The applicant counter is never touched.
func (r *JobRepository) Update(ctx context.Context, id int64, patch domain.JobPatch) (*domain.Job, error) {
	current, err := r.store.GetJob(ctx, id)
	if err != nil {
		return nil, err
	}

	updated, err := patch.Apply(*current)
	if err != nil {
		return nil, err
	}

	if err := r.store.UpdateJob(ctx, &updated); err != nil {
		return nil, fmt.Errorf("failed to update job: %w", err)
	}
	return &updated, nil
}

// Delete removes the job together with its applications and bookmarks
func (r *JobRepository) Delete(ctx context.Context, id int64) error {
	if err := r.store.DeleteJob(ctx, id); err != nil {
		return err
	}

	r.logger.Info("Job deleted", slog.Int64("job_id", id))
	return nil
}
