package dto

import (
	"time"

	"github.com/cuongbtq/jobboard/internal/api/domain"
)

type SalaryDTO struct {
	Min int64 `json:"min" binding:"gte=0"`
	Max int64 `json:"max" binding:"gte=0"`
}

type CreateJobRequest struct {
	Title           string    `json:"title" binding:"required"`
	Company         string    `json:"company" binding:"required"`
	Location        string    `json:"location" binding:"required"`
	Type            string    `json:"type" binding:"required"`
	Industry        string    `json:"industry" binding:"required"`
	ExperienceLevel string    `json:"experience_level" binding:"required"`
	Salary          SalaryDTO `json:"salary"`
	Description     string    `json:"description"`
	Requirements    []string  `json:"requirements"`
	Benefits        []string  `json:"benefits"`
	Featured        bool      `json:"featured"`
}

func (r CreateJobRequest) ToInput() domain.JobInput {
	return domain.JobInput{
		Title:           r.Title,
		Company:         r.Company,
		Location:        r.Location,
		Type:            domain.JobType(r.Type),
		Industry:        domain.Industry(r.Industry),
		ExperienceLevel: domain.ExperienceLevel(r.ExperienceLevel),
		Salary:          domain.Salary{Min: r.Salary.Min, Max: r.Salary.Max},
		Description:     r.Description,
		Requirements:    r.Requirements,
		Benefits:        r.Benefits,
		Featured:        r.Featured,
	}
}

// UpdateJobRequest only changes the fields that are present
type UpdateJobRequest struct {
	Title           *string    `json:"title"`
	Company         *string    `json:"company"`
	Location        *string    `json:"location"`
	Type            *string    `json:"type"`
	Industry        *string    `json:"industry"`
	ExperienceLevel *string    `json:"experience_level"`
	Salary          *SalaryDTO `json:"salary"`
	Description     *string    `json:"description"`
	Requirements    []string   `json:"requirements"`
	Benefits        []string   `json:"benefits"`
	Featured        *bool      `json:"featured"`
}

func (r UpdateJobRequest) ToPatch() domain.JobPatch {
	p := domain.JobPatch{
		Title:        r.Title,
		Company:      r.Company,
		Location:     r.Location,
		Description:  r.Description,
		Requirements: r.Requirements,
		Benefits:     r.Benefits,
		Featured:     r.Featured,
	}
	if r.Type != nil {
		t := domain.JobType(*r.Type)
		p.Type = &t
	}
	if r.Industry != nil {
		i := domain.Industry(*r.Industry)
		p.Industry = &i
	}
	if r.ExperienceLevel != nil {
		l := domain.ExperienceLevel(*r.ExperienceLevel)
		p.ExperienceLevel = &l
	}
	if r.Salary != nil {
		p.Salary = &domain.Salary{Min: r.Salary.Min, Max: r.Salary.Max}
	}
	return p
}

// ListJobsRequest holds the paging parameters; filters are read by domain.ParseJobFilter
type ListJobsRequest struct {
	PageSize int    `form:"page_size"`
	Cursor   string `form:"cursor"`
}

type FeaturedJobsRequest struct {
	Limit int `form:"limit"`
}

type ListJobsResponse struct {
	Jobs       []JobDTO `json:"jobs"`
	NextCursor string   `json:"next_cursor,omitempty"`
}

type JobDTO struct {
	ID              int64     `json:"id"`
	Title           string    `json:"title"`
	Company         string    `json:"company"`
	Location        string    `json:"location"`
	Type            string    `json:"type"`
	Industry        string    `json:"industry"`
	ExperienceLevel string    `json:"experience_level"`
	Salary          SalaryDTO `json:"salary"`
	Description     string    `json:"description"`
	Requirements    []string  `json:"requirements"`
	Benefits        []string  `json:"benefits"`
	Featured        bool      `json:"featured"`
	Applicants      int       `json:"applicants"`
	PostedAt        string    `json:"posted_at"`
}

func NewJobDTO(job domain.Job) JobDTO {
	return JobDTO{
		ID:              job.ID,
		Title:           job.Title,
		Company:         job.Company,
		Location:        job.Location,
		Type:            string(job.Type),
		Industry:        string(job.Industry),
		ExperienceLevel: string(job.ExperienceLevel),
		Salary:          SalaryDTO{Min: job.Salary.Min, Max: job.Salary.Max},
		Description:     job.Description,
		Requirements:    job.Requirements,
		Benefits:        job.Benefits,
		Featured:        job.Featured,
		Applicants:      job.Applicants,
		PostedAt:        job.PostedAt.Format(time.RFC3339),
	}
}

func NewJobDTOs(jobs []domain.Job) []JobDTO {
	out := make([]JobDTO, len(jobs))
	for i, job := range jobs {
		out[i] = NewJobDTO(job)
	}
	return out
}

// JobDetailResponse is a job as seen by the calling candidate
type JobDetailResponse struct {
	JobDTO
	Saved   bool `json:"saved"`
	Applied bool `json:"applied"`
}
