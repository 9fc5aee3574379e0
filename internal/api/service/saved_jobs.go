package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/cuongbtq/jobboard/internal/api/domain"
	"github.com/cuongbtq/jobboard/internal/api/storage"
)

// SavedJobRepository manages a candidate's bookmarks. Saving is idempotent.
type SavedJobRepository struct {
	store  storage.Store
	logger *slog.Logger
	now    func() time.Time
}

func NewSavedJobRepository(store storage.Store, logger *slog.Logger) *SavedJobRepository {
	return &SavedJobRepository{
		store:  store,
		logger: logger,
		now:    time.Now,
	}
}

// Create bookmarks the job, or returns the existing bookmark
func (r *SavedJobRepository) Create(ctx context.Context, candidateID, jobID int64, notes string) (*domain.SavedJob, error) {
	saved, err := domain.NewSavedJob(candidateID, jobID, notes, timestamp(r.now()))
	if err != nil {
		return nil, err
	}

	if _, err := r.store.GetJob(ctx, jobID); err != nil {
		return nil, err
	}

	existing, err := r.find(ctx, candidateID, jobID)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return existing, nil
	}

	if err := r.store.CreateSavedJob(ctx, saved); err != nil {
		if errors.Is(err, domain.ErrConflict) {
			// saved concurrently; hand back the winner
			return r.store.FindSavedJob(ctx, candidateID, jobID)
		}
		return nil, fmt.Errorf("failed to save job: %w", err)
	}

	r.logger.Debug("Job saved",
		slog.Int64("candidate_id", candidateID),
		slog.Int64("job_id", jobID),
	)
	return saved, nil
}

// DeleteByJobID removes the bookmark and reports whether one existed
func (r *SavedJobRepository) DeleteByJobID(ctx context.Context, candidateID, jobID int64) (bool, error) {
	existing, err := r.find(ctx, candidateID, jobID)
	if err != nil || existing == nil {
		return false, err
	}

	if err := r.store.DeleteSavedJob(ctx, existing.ID); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return false, nil
		}
		return false, fmt.Errorf("failed to remove saved job: %w", err)
	}
	return true, nil
}

func (r *SavedJobRepository) IsSaved(ctx context.Context, candidateID, jobID int64) (bool, error) {
	existing, err := r.find(ctx, candidateID, jobID)
	if err != nil {
		return false, err
	}
	return existing != nil, nil
}

// Toggle removes the bookmark if present, otherwise creates it. It returns the new state.
func (r *SavedJobRepository) Toggle(ctx context.Context, candidateID, jobID int64) (bool, error) {
	removed, err := r.DeleteByJobID(ctx, candidateID, jobID)
	if err != nil {
		return false, err
	}
	if removed {
		return false, nil
	}

	if _, err := r.Create(ctx, candidateID, jobID, ""); err != nil {
		return false, err
	}
	return true, nil
}

// List returns the candidate's bookmarks, most recent first
func (r *SavedJobRepository) List(ctx context.Context, candidateID int64) ([]domain.SavedJob, error) {
	saved, err := r.store.ListSavedJobs(ctx, candidateID)
	if err != nil {
		return nil, fmt.Errorf("failed to list saved jobs: %w", err)
	}
	return saved, nil
}

func (r *SavedJobRepository) GetByID(ctx context.Context, id int64) (*domain.SavedJob, error) {
	return r.store.GetSavedJob(ctx, id)
}

func (r *SavedJobRepository) Delete(ctx context.Context, id int64) error {
	return r.store.DeleteSavedJob(ctx, id)
}

// find returns nil without error when the job is not saved
func (r *SavedJobRepository) find(ctx context.Context, candidateID, jobID int64) (*domain.SavedJob, error) {
	saved, err := r.store.FindSavedJob(ctx, candidateID, jobID)
	if errors.Is(err, domain.ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to look up saved job: %w", err)
	}
	return saved, nil
}
