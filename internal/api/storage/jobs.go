package storage

import (
	"context"
	"fmt"

	"github.com/cuongbtq/jobboard/internal/api/domain"
	"github.com/cuongbtq/jobboard/internal/api/model"
)

const jobColumns = `
	id, title, company, location, job_type, industry, experience_level,
	salary_min, salary_max, description, requirements, benefits,
	featured, applicants, posted_at`

func (s *Storage) ListJobs(ctx context.Context, q JobQuery) ([]domain.Job, error) {
	query := `SELECT ` + jobColumns + ` FROM jobs WHERE 1=1`
	args := []any{}

	f := q.Filter
	if f.Location != "" {
		query += " AND " + s.likeColumn("location")
		args = append(args, likePattern(f.Location))
	}
	if f.Industry != "" {
		query += " AND industry = ?"
		args = append(args, string(f.Industry))
	}
	if f.Type != "" {
		query += " AND job_type = ?"
		args = append(args, string(f.Type))
	}
	if f.ExperienceLevel != "" {
		query += " AND experience_level = ?"
		args = append(args, string(f.ExperienceLevel))
	}
	if f.SalaryMin != nil {
		query += " AND salary_max >= ?"
		args = append(args, *f.SalaryMin)
	}
	if f.SalaryMax != nil {
		query += " AND salary_min <= ?"
		args = append(args, *f.SalaryMax)
	}
	if f.Search != "" {
		p := likePattern(f.Search)
		query += " AND (" + s.likeColumn("title") +
			" OR " + s.likeColumn("company") +
			" OR " + s.likeColumn("description") + ")"
		args = append(args, p, p, p)
	}
	if q.FeaturedOnly {
		query += " AND featured = ?"
		args = append(args, true)
	}

	if q.Cursor != nil {
		at := q.Cursor.PostedAt.UTC()
		query += " AND (posted_at < ? OR (posted_at = ? AND id < ?))"
		args = append(args, at, at, q.Cursor.JobID)
	}

	query += " ORDER BY posted_at DESC, id DESC"

	if q.Limit > 0 {
		query += " LIMIT ?"
		args = append(args, q.Limit)
	}

	var rows []model.Job
	if err := s.db.SelectContext(ctx, &rows, s.db.Rebind(query), args...); err != nil {
		return nil, fmt.Errorf("failed to list jobs: %w", err)
	}

	jobs := make([]domain.Job, 0, len(rows))
	for i := range rows {
		job, err := rows[i].ToDomain()
		if err != nil {
			return nil, err
		}
		jobs = append(jobs, job)
	}

	return jobs, nil
}

func (s *Storage) GetJob(ctx context.Context, id int64) (*domain.Job, error) {
	var row model.Job
	query := s.db.Rebind(`SELECT ` + jobColumns + ` FROM jobs WHERE id = ?`)
	if err := s.db.GetContext(ctx, &row, query, id); err != nil {
		return nil, notFound(err, "job", id)
	}

	job, err := row.ToDomain()
	if err != nil {
		return nil, err
	}
	return &job, nil
}

func (s *Storage) CreateJob(ctx context.Context, job *domain.Job) error {
	row, err := model.JobFromDomain(job)
	if err != nil {
		return err
	}

	query := s.db.Rebind(`
		INSERT INTO jobs (
			title, company, location, job_type, industry, experience_level,
			salary_min, salary_max, description, requirements, benefits,
			featured, applicants, posted_at
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		RETURNING id`)

	err = s.db.QueryRowxContext(ctx, query,
		row.Title, row.Company, row.Location, row.JobType, row.Industry, row.ExperienceLevel,
		row.SalaryMin, row.SalaryMax, row.Description, row.Requirements, row.Benefits,
		row.Featured, row.Applicants, row.PostedAt,
	).Scan(&job.ID)
	if err != nil {
		return fmt.Errorf("failed to create job: %w", err)
	}

	return nil
}

// UpdateJob writes every API-owned column; applicants belongs to the worker
func (s *Storage) UpdateJob(ctx context.Context, job *domain.Job) error {
	row, err := model.JobFromDomain(job)
	if err != nil {
		return err
	}

	query := s.db.Rebind(`
		UPDATE jobs SET
			title = ?, company = ?, location = ?, job_type = ?, industry = ?,
			experience_level = ?, salary_min = ?, salary_max = ?, description = ?,
			requirements = ?, benefits = ?, featured = ?
		WHERE id = ?`)

	res, err := s.db.ExecContext(ctx, query,
		row.Title, row.Company, row.Location, row.JobType, row.Industry,
		row.ExperienceLevel, row.SalaryMin, row.SalaryMax, row.Description,
		row.Requirements, row.Benefits, row.Featured,
		row.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update job: %w", err)
	}

	return expectOne(res, "job", job.ID)
}

// DeleteJob removes the job; applications and bookmarks cascade
func (s *Storage) DeleteJob(ctx context.Context, id int64) error {
	res, err := s.db.ExecContext(ctx, s.db.Rebind(`DELETE FROM jobs WHERE id = ?`), id)
	if err != nil {
		return fmt.Errorf("failed to delete job: %w", err)
	}
	return expectOne(res, "job", id)
}
