package dto

import (
	"time"

	"github.com/cuongbtq/jobboard/internal/api/domain"
)

type SaveJobRequest struct {
	JobID int64  `json:"job_id" binding:"required,gt=0"`
	Notes string `json:"notes"`
}

type SavedJobDTO struct {
	ID          int64  `json:"id"`
	JobID       int64  `json:"job_id"`
	CandidateID int64  `json:"candidate_id"`
	SavedAt     string `json:"saved_at"`
	Notes       string `json:"notes"`
}

func NewSavedJobDTO(sj domain.SavedJob) SavedJobDTO {
	return SavedJobDTO{
		ID:          sj.ID,
		JobID:       sj.JobID,
		CandidateID: sj.CandidateID,
		SavedAt:     sj.SavedAt.Format(time.RFC3339),
		Notes:       sj.Notes,
	}
}

type ListSavedJobsResponse struct {
	SavedJobs []SavedJobDTO `json:"saved_jobs"`
}

type SavedStateResponse struct {
	JobID int64 `json:"job_id"`
	Saved bool  `json:"saved"`
}
