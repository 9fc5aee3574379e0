package dto

import (
	"time"

	"github.com/cuongbtq/jobboard/internal/api/domain"
)

type CreateApplicationRequest struct {
	JobID int64  `json:"job_id" binding:"required,gt=0"`
	Notes string `json:"notes"`
}

type UpdateStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

type ScheduleInterviewRequest struct {
	Date        string `json:"date" binding:"required"`
	Time        string `json:"time" binding:"required"`
	Interviewer string `json:"interviewer" binding:"required"`
	Type        string `json:"type" binding:"required"`
	Notes       string `json:"notes"`
}

func (r ScheduleInterviewRequest) ToInterview() domain.Interview {
	return domain.Interview{
		Date:        r.Date,
		Time:        r.Time,
		Interviewer: r.Interviewer,
		Type:        domain.InterviewType(r.Type),
		Notes:       r.Notes,
	}
}

type UpdateInterviewRequest struct {
	Date        *string `json:"date"`
	Time        *string `json:"time"`
	Interviewer *string `json:"interviewer"`
	Type        *string `json:"type"`
	Notes       *string `json:"notes"`
}

func (r UpdateInterviewRequest) ToPatch() domain.InterviewPatch {
	p := domain.InterviewPatch{
		Date:        r.Date,
		Time:        r.Time,
		Interviewer: r.Interviewer,
		Notes:       r.Notes,
	}
	if r.Type != nil {
		t := domain.InterviewType(*r.Type)
		p.Type = &t
	}
	return p
}

type InterviewDTO struct {
	Date        string `json:"date"`
	Time        string `json:"time"`
	Interviewer string `json:"interviewer"`
	Type        string `json:"type"`
	Notes       string `json:"notes,omitempty"`
}

type ApplicationDTO struct {
	ID          int64         `json:"id"`
	JobID       int64         `json:"job_id"`
	CandidateID int64         `json:"candidate_id"`
	AppliedAt   string        `json:"applied_at"`
	Status      string        `json:"status"`
	Notes       string        `json:"notes"`
	Interview   *InterviewDTO `json:"interview,omitempty"`
}

func NewApplicationDTO(app domain.Application) ApplicationDTO {
	out := ApplicationDTO{
		ID:          app.ID,
		JobID:       app.JobID,
		CandidateID: app.CandidateID,
		AppliedAt:   app.AppliedAt.Format(time.RFC3339),
		Status:      string(app.Status),
		Notes:       app.Notes,
	}
	if iv := app.Interview; iv != nil {
		out.Interview = &InterviewDTO{
			Date:        iv.Date,
			Time:        iv.Time,
			Interviewer: iv.Interviewer,
			Type:        string(iv.Type),
			Notes:       iv.Notes,
		}
	}
	return out
}

func NewApplicationDTOs(apps []domain.Application) []ApplicationDTO {
	out := make([]ApplicationDTO, len(apps))
	for i, app := range apps {
		out[i] = NewApplicationDTO(app)
	}
	return out
}

type ListApplicationsResponse struct {
	Applications []ApplicationDTO `json:"applications"`
}
