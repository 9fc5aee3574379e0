package storage

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/cuongbtq/jobboard/internal/events"
	"github.com/cuongbtq/jobboard/internal/worker/domain"
	"github.com/cuongbtq/jobboard/shared/database"
	"github.com/jmoiron/sqlx"
)

// Storage handles all database operations for the worker
type Storage struct {
	client *database.Client
	logger *slog.Logger
	now    func() time.Time
}

// NewStorage creates a new Storage instance
func NewStorage(client *database.Client, logger *slog.Logger) *Storage {
	return &Storage{
		client: client,
		logger: logger,
		now:    time.Now,
	}
}

// RecordEvent stores the event in application_events and applies its side
// effects in the same transaction. A repeated event id returns
// domain.ErrEventAlreadyProcessed and changes nothing.
func (s *Storage) RecordEvent(ctx context.Context, e events.ApplicationEvent) error {
	tx, err := s.client.BeginTx(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	insert := tx.Rebind(`
		INSERT INTO application_events (
			event_id, event_type, application_id, job_id, candidate_id,
			status, occurred_at, processed_at
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?)`)

	_, err = tx.ExecContext(ctx, insert,
		e.EventID, string(e.Type), e.ApplicationID, e.JobID, e.CandidateID,
		string(e.Status), e.OccurredAt.UTC(), s.now().UTC(),
	)
	if err != nil {
		if database.IsUniqueViolation(err) {
			return fmt.Errorf("event %s: %w", e.EventID, domain.ErrEventAlreadyProcessed)
		}
		return fmt.Errorf("failed to record event: %w", err)
	}

	if e.Type == events.TypeApplicationCreated {
		if err := s.incrementApplicants(ctx, tx, e.JobID); err != nil {
			return err
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit event: %w", err)
	}

	s.logger.Info("Application event recorded",
		slog.String("event_id", e.EventID),
		slog.String("type", string(e.Type)),
		slog.Int64("application_id", e.ApplicationID),
	)
	return nil
}

// incrementApplicants bumps the job's counter; a job deleted since the event
// was published is skipped
func (s *Storage) incrementApplicants(ctx context.Context, tx *sqlx.Tx, jobID int64) error {
	res, err := tx.ExecContext(ctx,
		tx.Rebind(`UPDATE jobs SET applicants = applicants + 1 WHERE id = ?`), jobID)
	if err != nil {
		return fmt.Errorf("failed to increment applicants: %w", err)
	}

	rowsAffected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		s.logger.Warn("Applicant count not updated - job no longer exists",
			slog.Int64("job_id", jobID),
		)
	}

	return nil
}
