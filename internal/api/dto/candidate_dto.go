package dto

import (
	"time"

	"github.com/cuongbtq/jobboard/internal/api/domain"
)

type ExperienceDTO struct {
	Title       string `json:"title"`
	Company     string `json:"company"`
	Duration    string `json:"duration"`
	Description string `json:"description"`
}

type CreateCandidateRequest struct {
	Name            string          `json:"name" binding:"required"`
	Email           string          `json:"email" binding:"required,email"`
	Phone           string          `json:"phone" binding:"required"`
	Location        string          `json:"location" binding:"required"`
	Headline        string          `json:"headline" binding:"required"`
	Position        string          `json:"position" binding:"required"`
	ExperienceLevel string          `json:"experience_level"`
	Skills          []string        `json:"skills" binding:"required,min=1"`
	Experience      []ExperienceDTO `json:"experience"`
	Summary         string          `json:"summary" binding:"required"`
	Availability    string          `json:"availability"`
	Status          string          `json:"status"`
}

func (r CreateCandidateRequest) ToInput() domain.CandidateInput {
	return domain.CandidateInput{
		Name:            r.Name,
		Email:           r.Email,
		Phone:           r.Phone,
		Location:        r.Location,
		Headline:        r.Headline,
		Position:        r.Position,
		ExperienceLevel: domain.ExperienceLevel(r.ExperienceLevel),
		Skills:          r.Skills,
		Experience:      toExperience(r.Experience),
		Summary:         r.Summary,
		Availability:    r.Availability,
		Status:          r.Status,
	}
}

// UpdateCandidateRequest serves both PATCH /profile and PATCH /candidates/:id
type UpdateCandidateRequest struct {
	Name            *string         `json:"name"`
	Email           *string         `json:"email"`
	Phone           *string         `json:"phone"`
	Location        *string         `json:"location"`
	Headline        *string         `json:"headline"`
	Position        *string         `json:"position"`
	Status          *string         `json:"status"`
	ExperienceLevel *string         `json:"experience_level"`
	Skills          []string        `json:"skills"`
	Experience      []ExperienceDTO `json:"experience"`
	Summary         *string         `json:"summary"`
	Availability    *string         `json:"availability"`
}

func (r UpdateCandidateRequest) ToPatch() domain.CandidatePatch {
	p := domain.CandidatePatch{
		Name:         r.Name,
		Email:        r.Email,
		Phone:        r.Phone,
		Location:     r.Location,
		Headline:     r.Headline,
		Position:     r.Position,
		Status:       r.Status,
		Skills:       r.Skills,
		Summary:      r.Summary,
		Availability: r.Availability,
	}
	if r.ExperienceLevel != nil {
		l := domain.ExperienceLevel(*r.ExperienceLevel)
		p.ExperienceLevel = &l
	}
	if r.Experience != nil {
		p.Experience = toExperience(r.Experience)
	}
	return p
}

func toExperience(in []ExperienceDTO) []domain.ExperienceEntry {
	if in == nil {
		return nil
	}
	out := make([]domain.ExperienceEntry, len(in))
	for i, e := range in {
		out[i] = domain.ExperienceEntry(e)
	}
	return out
}

type CandidateDTO struct {
	ID              int64           `json:"id"`
	Name            string          `json:"name"`
	Email           string          `json:"email"`
	Phone           string          `json:"phone"`
	Location        string          `json:"location"`
	Headline        string          `json:"headline"`
	Position        string          `json:"position"`
	Status          string          `json:"status"`
	ExperienceLevel string          `json:"experience_level,omitempty"`
	Skills          []string        `json:"skills"`
	Experience      []ExperienceDTO `json:"experience"`
	Summary         string          `json:"summary"`
	Availability    string          `json:"availability"`
	ResumeURL       *string         `json:"resume_url"`
	CreatedAt       string          `json:"created_at"`
	UpdatedAt       string          `json:"updated_at"`
}

func NewCandidateDTO(c domain.Candidate) CandidateDTO {
	experience := make([]ExperienceDTO, len(c.Experience))
	for i, e := range c.Experience {
		experience[i] = ExperienceDTO(e)
	}

	return CandidateDTO{
		ID:              c.ID,
		Name:            c.Name,
		Email:           c.Email,
		Phone:           c.Phone,
		Location:        c.Location,
		Headline:        c.Headline,
		Position:        c.Position,
		Status:          c.Status,
		ExperienceLevel: string(c.ExperienceLevel),
		Skills:          c.Skills,
		Experience:      experience,
		Summary:         c.Summary,
		Availability:    c.Availability,
		ResumeURL:       c.ResumeURL,
		CreatedAt:       c.CreatedAt.Format(time.RFC3339),
		UpdatedAt:       c.UpdatedAt.Format(time.RFC3339),
	}
}

type ListCandidatesResponse struct {
	Candidates []CandidateDTO `json:"candidates"`
}

// ResumeDescriptorRequest describes a resume without uploading its bytes
type ResumeDescriptorRequest struct {
	Name string `json:"name" binding:"required"`
	Size int64  `json:"size" binding:"required,gt=0"`
	Type string `json:"type"`
}

type ResumeUploadResponse struct {
	FileName string `json:"file_name"`
	URL      string `json:"url"`
	Size     int64  `json:"size"`
	Type     string `json:"type"`
}
