package storage

import (
	"context"
	"fmt"

	"github.com/cuongbtq/jobboard/internal/api/domain"
	"github.com/cuongbtq/jobboard/internal/api/model"
)

const candidateColumns = `
	id, name, email, phone, location, headline, position, status,
	experience_level, skills, experience, summary, availability,
	resume_url, created_at, updated_at`

func (s *Storage) ListCandidates(ctx context.Context) ([]domain.Candidate, error) {
	var rows []model.Candidate
	query := `SELECT ` + candidateColumns + ` FROM candidates ORDER BY created_at DESC, id DESC`
	if err := s.db.SelectContext(ctx, &rows, query); err != nil {
		return nil, fmt.Errorf("failed to list candidates: %w", err)
	}

	out := make([]domain.Candidate, 0, len(rows))
	for i := range rows {
		c, err := rows[i].ToDomain()
		if err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, nil
}

func (s *Storage) GetCandidate(ctx context.Context, id int64) (*domain.Candidate, error) {
	var row model.Candidate
	query := s.db.Rebind(`SELECT ` + candidateColumns + ` FROM candidates WHERE id = ?`)
	if err := s.db.GetContext(ctx, &row, query, id); err != nil {
		return nil, notFound(err, "candidate", id)
	}

	c, err := row.ToDomain()
	if err != nil {
		return nil, err
	}
	return &c, nil
}

func (s *Storage) CreateCandidate(ctx context.Context, c *domain.Candidate) error {
	row, err := model.CandidateFromDomain(c)
	if err != nil {
		return err
	}

	query := s.db.Rebind(`
		INSERT INTO candidates (
			name, email, phone, location, headline, position, status,
			experience_level, skills, experience, summary, availability,
			resume_url, created_at, updated_at
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		RETURNING id`)

	err = s.db.QueryRowxContext(ctx, query,
		row.Name, row.Email, row.Phone, row.Location, row.Headline, row.Position, row.Status,
		row.ExperienceLevel, row.Skills, row.Experience, row.Summary, row.Availability,
		row.ResumeURL, row.CreatedAt, row.UpdatedAt,
	).Scan(&c.ID)
	if err != nil {
		return fmt.Errorf("failed to create candidate: %w", err)
	}

	return nil
}

func (s *Storage) UpdateCandidate(ctx context.Context, c *domain.Candidate) error {
	row, err := model.CandidateFromDomain(c)
	if err != nil {
		return err
	}

	query := s.db.Rebind(`
		UPDATE candidates SET
			name = ?, email = ?, phone = ?, location = ?, headline = ?, position = ?,
			status = ?, experience_level = ?, skills = ?, experience = ?, summary = ?,
			availability = ?, resume_url = ?, updated_at = ?
		WHERE id = ?`)

	res, err := s.db.ExecContext(ctx, query,
		row.Name, row.Email, row.Phone, row.Location, row.Headline, row.Position,
		row.Status, row.ExperienceLevel, row.Skills, row.Experience, row.Summary,
		row.Availability, row.ResumeURL, row.UpdatedAt,
		row.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update candidate: %w", err)
	}

	return expectOne(res, "candidate", c.ID)
}

func (s *Storage) DeleteCandidate(ctx context.Context, id int64) error {
	res, err := s.db.ExecContext(ctx, s.db.Rebind(`DELETE FROM candidates WHERE id = ?`), id)
	if err != nil {
		return fmt.Errorf("failed to delete candidate: %w", err)
	}
	return expectOne(res, "candidate", id)
}
