package domain

import "time"

// SavedJob is a candidate's bookmark of a job
type SavedJob struct {
	ID          int64     `json:"id"`
	JobID       int64     `json:"job_id"`
	CandidateID int64     `json:"candidate_id"`
	SavedAt     time.Time `json:"saved_at"`
	Notes       string    `json:"notes"`
}

// NewSavedJob builds a bookmark saved at the given time
func NewSavedJob(candidateID, jobID int64, notes string, savedAt time.Time) (*SavedJob, error) {
	if jobID <= 0 {
		return nil, invalidf("job id must be positive")
	}
	if candidateID <= 0 {
		return nil, invalidf("candidate id must be positive")
	}

	return &SavedJob{
		JobID:       jobID,
		CandidateID: candidateID,
		SavedAt:     savedAt,
		Notes:       notes,
	}, nil
}
