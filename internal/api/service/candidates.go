package service

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/cuongbtq/jobboard/internal/api/domain"
	"github.com/cuongbtq/jobboard/internal/api/storage"
)

// CandidateRepository is the recruiter-facing candidate registry
type CandidateRepository struct {
	store  storage.CandidateStore
	logger *slog.Logger
	now    func() time.Time
}

func NewCandidateRepository(store storage.CandidateStore, logger *slog.Logger) *CandidateRepository {
	return &CandidateRepository{
		store:  store,
		logger: logger,
		now:    time.Now,
	}
}

func (r *CandidateRepository) List(ctx context.Context) ([]domain.Candidate, error) {
	candidates, err := r.store.ListCandidates(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list candidates: %w", err)
	}
	return candidates, nil
}

func (r *CandidateRepository) GetByID(ctx context.Context, id int64) (*domain.Candidate, error) {
	return r.store.GetCandidate(ctx, id)
}

func (r *CandidateRepository) Create(ctx context.Context, in domain.CandidateInput) (*domain.Candidate, error) {
	c, err := domain.NewCandidate(in, timestamp(r.now()))
	if err != nil {
		return nil, err
	}

	if err := r.store.CreateCandidate(ctx, c); err != nil {
		return nil, fmt.Errorf("failed to create candidate: %w", err)
	}

	r.logger.Info("Candidate created", slog.Int64("candidate_id", c.ID))
	return c, nil
}

func (r *CandidateRepository) Update(ctx context.Context, id int64, patch domain.CandidatePatch) (*domain.Candidate, error) {
	current, err := r.store.GetCandidate(ctx, id)
	if err != nil {
		return nil, err
	}

	updated, err := patch.Apply(*current)
	if err != nil {
		return nil, err
	}
	updated.UpdatedAt = timestamp(r.now())

	if err := r.store.UpdateCandidate(ctx, &updated); err != nil {
		return nil, fmt.Errorf("failed to update candidate: %w", err)
	}
	return &updated, nil
}

func (r *CandidateRepository) Delete(ctx context.Context, id int64) error {
	if err := r.store.DeleteCandidate(ctx, id); err != nil {
		return err
	}

	r.logger.Info("Candidate deleted", slog.Int64("candidate_id", id))
	return nil
}
