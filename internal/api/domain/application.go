package domain

import (
	"slices"
	"strings"
	"time"
)

// ApplicationStatus is the stage an application has reached
type ApplicationStatus string

const (
	StatusApplied            ApplicationStatus = "applied"
	StatusScreening          ApplicationStatus = "screening"
	StatusInterviewScheduled ApplicationStatus = "interview_scheduled"
	StatusFinalReview        ApplicationStatus = "final_review"
	StatusHired              ApplicationStatus = "hired"
	StatusRejected           ApplicationStatus = "rejected"
)

// ApplicationStatuses lists the statuses in progression order
var ApplicationStatuses = []ApplicationStatus{
	StatusApplied, StatusScreening, StatusInterviewScheduled,
	StatusFinalReview, StatusHired, StatusRejected,
}

func (s ApplicationStatus) Valid() bool { return slices.Contains(ApplicationStatuses, s) }

// Terminal reports whether no further transition is expected
func (s ApplicationStatus) Terminal() bool {
	return s == StatusHired || s == StatusRejected
}

// ParseApplicationStatus accepts the canonical values case-insensitively, with
// spaces or hyphens in place of underscores. "under review" maps to screening.
func ParseApplicationStatus(raw string) (ApplicationStatus, error) {
	norm := strings.ToLower(strings.TrimSpace(raw))
	norm = strings.NewReplacer(" ", "_", "-", "_").Replace(norm)
	if norm == "under_review" {
		norm = string(StatusScreening)
	}

	status := ApplicationStatus(norm)
	if !status.Valid() {
		return "", invalidf("invalid status %q, valid statuses are: %s", raw, joinStatuses())
	}
	return status, nil
}

func joinStatuses() string {
	names := make([]string, len(ApplicationStatuses))
	for i, s := range ApplicationStatuses {
		names[i] = string(s)
	}
	return strings.Join(names, ", ")
}

// statusTransitions is the forward progression of the hiring pipeline.
var statusTransitions = map[ApplicationStatus][]ApplicationStatus{
	StatusApplied:            {StatusScreening, StatusRejected},
	StatusScreening:          {StatusInterviewScheduled, StatusRejected},
	StatusInterviewScheduled: {StatusFinalReview, StatusRejected},
	StatusFinalReview:        {StatusHired, StatusRejected},
}

// CanTransition reports whether the pipeline allows moving from one status to another.
// Rewriting the current status is always allowed.
func CanTransition(from, to ApplicationStatus) bool {
	if from == to {
		return true
	}
	return slices.Contains(statusTransitions[from], to)
}

// InterviewType is how an interview is held
type InterviewType string

const (
	InterviewPhone    InterviewType = "Phone"
	InterviewVideo    InterviewType = "Video"
	InterviewInPerson InterviewType = "In-person"
)

// InterviewTypes lists every accepted interview type
var InterviewTypes = []InterviewType{InterviewPhone, InterviewVideo, InterviewInPerson}

func (t InterviewType) Valid() bool { return slices.Contains(InterviewTypes, t) }

const (
	InterviewDateLayout = "2006-01-02"
	InterviewTimeLayout = "15:04"
)

// Interview is the scheduling sub-record of an application
type Interview struct {
	Date        string        `json:"date" validate:"required"`
	Time        string        `json:"time" validate:"required"`
	Interviewer string        `json:"interviewer" validate:"required"`
	Type        InterviewType `json:"type" validate:"required"`
	Notes       string        `json:"notes,omitempty"`
}

// Validate checks required fields, the type and the date/time formats
func (iv Interview) Validate() error {
	if err := validateStruct(iv); err != nil {
		return err
	}
	if !iv.Type.Valid() {
		return invalidf("invalid interview type %q", iv.Type)
	}
	if _, err := time.Parse(InterviewDateLayout, iv.Date); err != nil {
		return invalidf("interview date %q must use YYYY-MM-DD", iv.Date)
	}
	if _, err := time.Parse(InterviewTimeLayout, iv.Time); err != nil {
		return invalidf("interview time %q must use HH:MM", iv.Time)
	}
	return nil
}

// At combines date and time into an instant in loc
func (iv Interview) At(loc *time.Location) (time.Time, error) {
	if loc == nil {
		loc = time.Local
	}
	at, err := time.ParseInLocation(InterviewDateLayout+"T"+InterviewTimeLayout, iv.Date+"T"+iv.Time, loc)
	if err != nil {
		return time.Time{}, invalidf("interview date/time %sT%s: %v", iv.Date, iv.Time, err)
	}
	return at, nil
}

// InterviewPatch is a shallow update of an existing interview
type InterviewPatch struct {
	Date        *string
	Time        *string
	Interviewer *string
	Type        *InterviewType
	Notes       *string
}

// Apply merges the patch and validates the result
func (p InterviewPatch) Apply(iv Interview) (Interview, error) {
	if p.Date != nil {
		iv.Date = *p.Date
	}
	if p.Time != nil {
		iv.Time = *p.Time
	}
	if p.Interviewer != nil {
		iv.Interviewer = *p.Interviewer
	}
	if p.Type != nil {
		iv.Type = *p.Type
	}
	if p.Notes != nil {
		iv.Notes = *p.Notes
	}
	if err := iv.Validate(); err != nil {
		return Interview{}, err
	}
	return iv, nil
}

// Application is a candidate's submission against a job
type Application struct {
	ID          int64             `json:"id"`
	JobID       int64             `json:"job_id"`
	CandidateID int64             `json:"candidate_id"`
	AppliedAt   time.Time         `json:"applied_at"`
	Status      ApplicationStatus `json:"status"`
	Notes       string            `json:"notes"`
	Interview   *Interview        `json:"interview,omitempty"`
}

// Clone returns a copy that does not share the interview record
func (a Application) Clone() Application {
	if a.Interview != nil {
		iv := *a.Interview
		a.Interview = &iv
	}
	return a
}

// NewApplication builds a freshly submitted application
func NewApplication(jobID, candidateID int64, notes string, appliedAt time.Time) (*Application, error) {
	if jobID <= 0 {
		return nil, invalidf("job id must be positive")
	}
	if candidateID <= 0 {
		return nil, invalidf("candidate id must be positive")
	}

	return &Application{
		JobID:       jobID,
		CandidateID: candidateID,
		AppliedAt:   appliedAt,
		Status:      StatusApplied,
		Notes:       notes,
	}, nil
}

// ApplicationPatch is a shallow update of the mutable application fields
type ApplicationPatch struct {
	Status *ApplicationStatus
	Notes  *string
}

// SortApplicationsNewestFirst orders applications by submission time, newest first
func SortApplicationsNewestFirst(apps []Application) {
	slices.SortStableFunc(apps, func(a, b Application) int {
		if c := b.AppliedAt.Compare(a.AppliedAt); c != 0 {
			return c
		}
		switch {
		case a.ID > b.ID:
			return -1
		case a.ID < b.ID:
			return 1
		}
		return 0
	})
}
