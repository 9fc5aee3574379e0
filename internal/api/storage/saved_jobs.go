package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/cuongbtq/jobboard/internal/api/domain"
	"github.com/cuongbtq/jobboard/internal/api/model"
	"github.com/cuongbtq/jobboard/shared/database"
)

const savedJobColumns = `id, job_id, candidate_id, saved_at, notes`

func (s *Storage) ListSavedJobs(ctx context.Context, candidateID int64) ([]domain.SavedJob, error) {
	query := s.db.Rebind(`SELECT ` + savedJobColumns + ` FROM saved_jobs
		WHERE candidate_id = ?
		ORDER BY saved_at DESC, id DESC`)

	var rows []model.SavedJob
	if err := s.db.SelectContext(ctx, &rows, query, candidateID); err != nil {
		return nil, fmt.Errorf("failed to list saved jobs: %w", err)
	}

	saved := make([]domain.SavedJob, len(rows))
	for i := range rows {
		saved[i] = rows[i].ToDomain()
	}
	return saved, nil
}

func (s *Storage) GetSavedJob(ctx context.Context, id int64) (*domain.SavedJob, error) {
	var row model.SavedJob
	query := s.db.Rebind(`SELECT ` + savedJobColumns + ` FROM saved_jobs WHERE id = ?`)
	if err := s.db.GetContext(ctx, &row, query, id); err != nil {
		return nil, notFound(err, "saved job", id)
	}

	saved := row.ToDomain()
	return &saved, nil
}

func (s *Storage) FindSavedJob(ctx context.Context, candidateID, jobID int64) (*domain.SavedJob, error) {
	var row model.SavedJob
	query := s.db.Rebind(`SELECT ` + savedJobColumns + ` FROM saved_jobs WHERE candidate_id = ? AND job_id = ?`)
	if err := s.db.GetContext(ctx, &row, query, candidateID, jobID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("job %d is not saved: %w", jobID, domain.ErrNotFound)
		}
		return nil, fmt.Errorf("failed to find saved job: %w", err)
	}

	saved := row.ToDomain()
	return &saved, nil
}

func (s *Storage) CreateSavedJob(ctx context.Context, saved *domain.SavedJob) error {
	row := model.SavedJobFromDomain(saved)

	query := s.db.Rebind(`
		INSERT INTO saved_jobs (job_id, candidate_id, saved_at, notes)
		VALUES (?, ?, ?, ?)
		RETURNING id`)

	err := s.db.QueryRowxContext(ctx, query, row.JobID, row.CandidateID, row.SavedAt, row.Notes).Scan(&saved.ID)
	if err != nil {
		if database.IsUniqueViolation(err) {
			return fmt.Errorf("job %d already saved: %w", saved.JobID, domain.ErrConflict)
		}
		return fmt.Errorf("failed to create saved job: %w", err)
	}

	return nil
}

func (s *Storage) DeleteSavedJob(ctx context.Context, id int64) error {
	res, err := s.db.ExecContext(ctx, s.db.Rebind(`DELETE FROM saved_jobs WHERE id = ?`), id)
	if err != nil {
		return fmt.Errorf("failed to delete saved job: %w", err)
	}
	return expectOne(res, "saved job", id)
}
