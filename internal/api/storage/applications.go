package storage

import (
	"context"
	"fmt"

	"github.com/cuongbtq/jobboard/internal/api/domain"
	"github.com/cuongbtq/jobboard/internal/api/model"
	"github.com/cuongbtq/jobboard/shared/database"
)

const applicationColumns = `id, job_id, candidate_id, applied_at, status, notes, interview`

func (s *Storage) ListApplications(ctx context.Context, f ApplicationFilter) ([]domain.Application, error) {
	query := `SELECT ` + applicationColumns + ` FROM applications WHERE 1=1`
	args := []any{}

	if f.JobID != 0 {
		query += " AND job_id = ?"
		args = append(args, f.JobID)
	}
	if f.CandidateID != 0 {
		query += " AND candidate_id = ?"
		args = append(args, f.CandidateID)
	}
	if f.Status != "" {
		query += " AND status = ?"
		args = append(args, string(f.Status))
	}

	query += " ORDER BY applied_at DESC, id DESC"

	var rows []model.Application
	if err := s.db.SelectContext(ctx, &rows, s.db.Rebind(query), args...); err != nil {
		return nil, fmt.Errorf("failed to list applications: %w", err)
	}

	apps := make([]domain.Application, 0, len(rows))
	for i := range rows {
		app, err := rows[i].ToDomain()
		if err != nil {
			return nil, err
		}
		apps = append(apps, app)
	}

	return apps, nil
}

func (s *Storage) GetApplication(ctx context.Context, id int64) (*domain.Application, error) {
	var row model.Application
	query := s.db.Rebind(`SELECT ` + applicationColumns + ` FROM applications WHERE id = ?`)
	if err := s.db.GetContext(ctx, &row, query, id); err != nil {
		return nil, notFound(err, "application", id)
	}

	app, err := row.ToDomain()
	if err != nil {
		return nil, err
	}
	return &app, nil
}

func (s *Storage) CreateApplication(ctx context.Context, app *domain.Application) error {
	row, err := model.ApplicationFromDomain(app)
	if err != nil {
		return err
	}

	query := s.db.Rebind(`
		INSERT INTO applications (job_id, candidate_id, applied_at, status, notes, interview)
		VALUES (?, ?, ?, ?, ?, ?)
		RETURNING id`)

	err = s.db.QueryRowxContext(ctx, query,
		row.JobID, row.CandidateID, row.AppliedAt, row.Status, row.Notes, row.Interview,
	).Scan(&app.ID)
	if err != nil {
		if database.IsUniqueViolation(err) {
			return fmt.Errorf("candidate %d already applied to job %d: %w", app.CandidateID, app.JobID, domain.ErrConflict)
		}
		return fmt.Errorf("failed to create application: %w", err)
	}

	return nil
}

func (s *Storage) UpdateApplication(ctx context.Context, app *domain.Application) error {
	row, err := model.ApplicationFromDomain(app)
	if err != nil {
		return err
	}

	query := s.db.Rebind(`UPDATE applications SET status = ?, notes = ?, interview = ? WHERE id = ?`)
	res, err := s.db.ExecContext(ctx, query, row.Status, row.Notes, row.Interview, row.ID)
	if err != nil {
		return fmt.Errorf("failed to update application: %w", err)
	}

	return expectOne(res, "application", app.ID)
}

func (s *Storage) DeleteApplication(ctx context.Context, id int64) error {
	res, err := s.db.ExecContext(ctx, s.db.Rebind(`DELETE FROM applications WHERE id = ?`), id)
	if err != nil {
		return fmt.Errorf("failed to delete application: %w", err)
	}
	return expectOne(res, "application", id)
}
