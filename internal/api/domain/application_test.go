package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseApplicationStatus(t *testing.T) {
	tests := []struct {
		raw     string
		want    ApplicationStatus
		wantErr bool
	}{
		{raw: "applied", want: StatusApplied},
		{raw: "Interview Scheduled", want: StatusInterviewScheduled},
		{raw: "FINAL-REVIEW", want: StatusFinalReview},
		{raw: "Under Review", want: StatusScreening},
		{raw: " hired ", want: StatusHired},
		{raw: "archived", wantErr: true},
		{raw: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			got, err := ParseApplicationStatus(tt.raw)
			if tt.wantErr {
				require.Error(t, err)
				assert.ErrorIs(t, err, ErrInvalidArgument)
				assert.Contains(t, err.Error(), "valid statuses are")
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestCanTransition(t *testing.T) {
	tests := []struct {
		from, to ApplicationStatus
		want     bool
	}{
		{StatusApplied, StatusScreening, true},
		{StatusApplied, StatusRejected, true},
		{StatusApplied, StatusHired, false},
		{StatusScreening, StatusInterviewScheduled, true},
		{StatusInterviewScheduled, StatusFinalReview, true},
		{StatusFinalReview, StatusHired, true},
		{StatusHired, StatusRejected, false},
		{StatusRejected, StatusApplied, false},
		{StatusRejected, StatusRejected, true},
	}

	for _, tt := range tests {
		t.Run(string(tt.from)+"->"+string(tt.to), func(t *testing.T) {
			assert.Equal(t, tt.want, CanTransition(tt.from, tt.to))
		})
	}

	assert.True(t, StatusHired.Terminal())
	assert.False(t, StatusFinalReview.Terminal())
}

func TestInterview_Validate(t *testing.T) {
	valid := Interview{Date: "2026-11-02", Time: "14:30", Interviewer: "Dana Lee", Type: InterviewVideo}

	tests := []struct {
		name    string
		mutate  func(iv *Interview)
		errText string
	}{
		{name: "valid", mutate: func(iv *Interview) {}},
		{name: "missing date", mutate: func(iv *Interview) { iv.Date = "" }, errText: "date is required"},
		{name: "missing interviewer", mutate: func(iv *Interview) { iv.Interviewer = "" }, errText: "interviewer is required"},
		{name: "missing type", mutate: func(iv *Interview) { iv.Type = "" }, errText: "type is required"},
		{name: "unknown type", mutate: func(iv *Interview) { iv.Type = "Carrier pigeon" }, errText: "invalid interview type"},
		{name: "bad date", mutate: func(iv *Interview) { iv.Date = "02/11/2026" }, errText: "YYYY-MM-DD"},
		{name: "bad time", mutate: func(iv *Interview) { iv.Time = "2pm" }, errText: "HH:MM"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			iv := valid
			tt.mutate(&iv)
			err := iv.Validate()
			if tt.errText == "" {
				require.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.ErrorIs(t, err, ErrInvalidArgument)
			assert.Contains(t, err.Error(), tt.errText)
		})
	}
}

func TestInterview_At(t *testing.T) {
	loc := time.FixedZone("UTC+2", 2*60*60)
	iv := Interview{Date: "2026-11-02", Time: "14:30"}

	at, err := iv.At(loc)
	require.NoError(t, err)
	assert.True(t, at.Equal(time.Date(2026, 11, 2, 12, 30, 0, 0, time.UTC)))
}

func TestInterviewPatch_Apply(t *testing.T) {
	iv := Interview{Date: "2026-11-02", Time: "14:30", Interviewer: "Dana Lee", Type: InterviewVideo, Notes: "bring portfolio"}

	newTime := "16:00"
	got, err := InterviewPatch{Time: &newTime}.Apply(iv)
	require.NoError(t, err)
	assert.Equal(t, "16:00", got.Time)
	assert.Equal(t, "Dana Lee", got.Interviewer)
	assert.Equal(t, "bring portfolio", got.Notes)

	badType := InterviewType("Fax")
	_, err = InterviewPatch{Type: &badType}.Apply(iv)
	assert.ErrorIs(t, err, ErrInvalidArgument)
}

func TestNewApplication(t *testing.T) {
	now := time.Date(2026, 10, 1, 8, 0, 0, 0, time.UTC)

	app, err := NewApplication(4, 9, "excited", now)
	require.NoError(t, err)
	assert.Equal(t, StatusApplied, app.Status)
	assert.Equal(t, now, app.AppliedAt)
	assert.Nil(t, app.Interview)

	_, err = NewApplication(0, 9, "", now)
	assert.ErrorIs(t, err, ErrInvalidArgument)
}

func TestApplication_CloneCopiesInterview(t *testing.T) {
	app := Application{ID: 1, Interview: &Interview{Interviewer: "A"}}
	cp := app.Clone()
	cp.Interview.Interviewer = "B"
	assert.Equal(t, "A", app.Interview.Interviewer)
}
