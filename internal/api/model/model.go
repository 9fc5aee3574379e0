package model

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/cuongbtq/jobboard/internal/api/domain"
)

// Job is the jobs table row
type Job struct {
	ID              int64     `db:"id"`
	Title           string    `db:"title"`
	Company         string    `db:"company"`
	Location        string    `db:"location"`
	JobType         string    `db:"job_type"`
	Industry        string    `db:"industry"`
	ExperienceLevel string    `db:"experience_level"`
	SalaryMin       int64     `db:"salary_min"`
	SalaryMax       int64     `db:"salary_max"`
	Description     string    `db:"description"`
	Requirements    string    `db:"requirements"` // JSON array
	Benefits        string    `db:"benefits"`     // JSON array
	Featured        bool      `db:"featured"`
	Applicants      int       `db:"applicants"`
	PostedAt        time.Time `db:"posted_at"`
}

// JobFromDomain converts a domain job into its row
func JobFromDomain(j *domain.Job) (*Job, error) {
	reqs, err := marshalList(j.Requirements)
	if err != nil {
		return nil, fmt.Errorf("failed to encode requirements: %w", err)
	}
	benefits, err := marshalList(j.Benefits)
	if err != nil {
		return nil, fmt.Errorf("failed to encode benefits: %w", err)
	}

	return &Job{
		ID:              j.ID,
		Title:           j.Title,
		Company:         j.Company,
		Location:        j.Location,
		JobType:         string(j.Type),
		Industry:        string(j.Industry),
		ExperienceLevel: string(j.ExperienceLevel),
		SalaryMin:       j.Salary.Min,
		SalaryMax:       j.Salary.Max,
		Description:     j.Description,
		Requirements:    reqs,
		Benefits:        benefits,
		Featured:        j.Featured,
		Applicants:      j.Applicants,
		PostedAt:        j.PostedAt.UTC(),
	}, nil
}

// ToDomain converts the row into a domain job
func (r *Job) ToDomain() (domain.Job, error) {
	var reqs, benefits []string
	if err := unmarshalList(r.Requirements, &reqs); err != nil {
		return domain.Job{}, fmt.Errorf("job %d: failed to decode requirements: %w", r.ID, err)
	}
	if err := unmarshalList(r.Benefits, &benefits); err != nil {
		return domain.Job{}, fmt.Errorf("job %d: failed to decode benefits: %w", r.ID, err)
	}

	return domain.Job{
		ID:              r.ID,
		Title:           r.Title,
		Company:         r.Company,
		Location:        r.Location,
		Type:            domain.JobType(r.JobType),
		Industry:        domain.Industry(r.Industry),
		ExperienceLevel: domain.ExperienceLevel(r.ExperienceLevel),
		Salary:          domain.Salary{Min: r.SalaryMin, Max: r.SalaryMax},
		Description:     r.Description,
		Requirements:    reqs,
		Benefits:        benefits,
		Featured:        r.Featured,
		Applicants:      r.Applicants,
		PostedAt:        r.PostedAt.UTC(),
	}, nil
}

// Application is the applications table row
type Application struct {
	ID          int64          `db:"id"`
	JobID       int64          `db:"job_id"`
	CandidateID int64          `db:"candidate_id"`
	AppliedAt   time.Time      `db:"applied_at"`
	Status      string         `db:"status"`
	Notes       string         `db:"notes"`
	Interview   sql.NullString `db:"interview"` // JSON object
}

// ApplicationFromDomain converts a domain application into its row
func ApplicationFromDomain(a *domain.Application) (*Application, error) {
	row := &Application{
		ID:          a.ID,
		JobID:       a.JobID,
		CandidateID: a.CandidateID,
		AppliedAt:   a.AppliedAt.UTC(),
		Status:      string(a.Status),
		Notes:       a.Notes,
	}

	if a.Interview != nil {
		b, err := json.Marshal(a.Interview)
		if err != nil {
			return nil, fmt.Errorf("failed to encode interview: %w", err)
		}
		row.Interview = sql.NullString{String: string(b), Valid: true}
	}

	return row, nil
}

// ToDomain converts the row into a domain application
func (r *Application) ToDomain() (domain.Application, error) {
	app := domain.Application{
		ID:          r.ID,
		JobID:       r.JobID,
		CandidateID: r.CandidateID,
		AppliedAt:   r.AppliedAt.UTC(),
		Status:      domain.ApplicationStatus(r.Status),
		Notes:       r.Notes,
	}

	if r.Interview.Valid && r.Interview.String != "" {
		var iv domain.Interview
		if err := json.Unmarshal([]byte(r.Interview.String), &iv); err != nil {
			return domain.Application{}, fmt.Errorf("application %d: failed to decode interview: %w", r.ID, err)
		}
		app.Interview = &iv
	}

	return app, nil
}

// SavedJob is the saved_jobs table row
type SavedJob struct {
	ID          int64     `db:"id"`
	JobID       int64     `db:"job_id"`
	CandidateID int64     `db:"candidate_id"`
	SavedAt     time.Time `db:"saved_at"`
	Notes       string    `db:"notes"`
}

func SavedJobFromDomain(s *domain.SavedJob) *SavedJob {
	return &SavedJob{
		ID:          s.ID,
		JobID:       s.JobID,
		CandidateID: s.CandidateID,
		SavedAt:     s.SavedAt.UTC(),
		Notes:       s.Notes,
	}
}

func (r *SavedJob) ToDomain() domain.SavedJob {
	return domain.SavedJob{
		ID:          r.ID,
		JobID:       r.JobID,
		CandidateID: r.CandidateID,
		SavedAt:     r.SavedAt.UTC(),
		Notes:       r.Notes,
	}
}

// Candidate is the candidates table row
type Candidate struct {
	ID              int64          `db:"id"`
	Name            string         `db:"name"`
	Email           string         `db:"email"`
	Phone           string         `db:"phone"`
	Location        string         `db:"location"`
	Headline        string         `db:"headline"`
	Position        string         `db:"position"`
	Status          string         `db:"status"`
	ExperienceLevel string         `db:"experience_level"`
	Skills          string         `db:"skills"`     // JSON array
	Experience      string         `db:"experience"` // JSON array
	Summary         string         `db:"summary"`
	Availability    string         `db:"availability"`
	ResumeURL       sql.NullString `db:"resume_url"`
	CreatedAt       time.Time      `db:"created_at"`
	UpdatedAt       time.Time      `db:"updated_at"`
}

// CandidateFromDomain converts a domain candidate into its row
func CandidateFromDomain(c *domain.Candidate) (*Candidate, error) {
	skills, err := marshalList(c.Skills)
	if err != nil {
		return nil, fmt.Errorf("failed to encode skills: %w", err)
	}

	experience := c.Experience
	if experience == nil {
		experience = []domain.ExperienceEntry{}
	}
	expJSON, err := json.Marshal(experience)
	if err != nil {
		return nil, fmt.Errorf("failed to encode experience: %w", err)
	}

	row := &Candidate{
		ID:              c.ID,
		Name:            c.Name,
		Email:           c.Email,
		Phone:           c.Phone,
		Location:        c.Location,
		Headline:        c.Headline,
		Position:        c.Position,
		Status:          c.Status,
		ExperienceLevel: string(c.ExperienceLevel),
		Skills:          skills,
		Experience:      string(expJSON),
		Summary:         c.Summary,
		Availability:    c.Availability,
		CreatedAt:       c.CreatedAt.UTC(),
		UpdatedAt:       c.UpdatedAt.UTC(),
	}
	if c.ResumeURL != nil {
		row.ResumeURL = sql.NullString{String: *c.ResumeURL, Valid: true}
	}

	return row, nil
}

// ToDomain converts the row into a domain candidate
func (r *Candidate) ToDomain() (domain.Candidate, error) {
	var skills []string
	if err := unmarshalList(r.Skills, &skills); err != nil {
		return domain.Candidate{}, fmt.Errorf("candidate %d: failed to decode skills: %w", r.ID, err)
	}

	experience := []domain.ExperienceEntry{}
	if r.Experience != "" {
		if err := json.Unmarshal([]byte(r.Experience), &experience); err != nil {
			return domain.Candidate{}, fmt.Errorf("candidate %d: failed to decode experience: %w", r.ID, err)
		}
	}

	c := domain.Candidate{
		ID:              r.ID,
		Name:            r.Name,
		Email:           r.Email,
		Phone:           r.Phone,
		Location:        r.Location,
		Headline:        r.Headline,
		Position:        r.Position,
		Status:          r.Status,
		ExperienceLevel: domain.ExperienceLevel(r.ExperienceLevel),
		Skills:          skills,
		Experience:      experience,
		Summary:         r.Summary,
		Availability:    r.Availability,
		CreatedAt:       r.CreatedAt.UTC(),
		UpdatedAt:       r.UpdatedAt.UTC(),
	}
	if r.ResumeURL.Valid {
		u := r.ResumeURL.String
		c.ResumeURL = &u
	}

	return c, nil
}

func marshalList(items []string) (string, error) {
	if items == nil {
		items = []string{}
	}
	b, err := json.Marshal(items)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

func unmarshalList(raw string, dst *[]string) error {
	*dst = []string{}
	if raw == "" {
		return nil
	}
	return json.Unmarshal([]byte(raw), dst)
}
