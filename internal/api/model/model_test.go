package model

import (
	"testing"
	"time"

	"github.com/cuongbtq/jobboard/internal/api/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestJobRow(t *testing.T) {
	job := &domain.Job{
		ID: 3, Title: "Go Engineer", Company: "Acme", Location: "Remote",
		Type: domain.JobTypeFullTime, Industry: domain.IndustryTechnology, ExperienceLevel: domain.ExperienceMid,
		Salary:       domain.Salary{Min: 1, Max: 2},
		Requirements: []string{"Go", "SQL"},
		PostedAt:     time.Date(2026, 3, 1, 10, 0, 0, 0, time.FixedZone("X", 3600)),
	}

	row, err := JobFromDomain(job)
	require.NoError(t, err)
	assert.Equal(t, `["Go","SQL"]`, row.Requirements)
	assert.Equal(t, `[]`, row.Benefits)
	assert.Equal(t, time.UTC, row.PostedAt.Location())

	back, err := row.ToDomain()
	require.NoError(t, err)
	assert.Equal(t, []string{"Go", "SQL"}, back.Requirements)
	assert.Equal(t, []string{}, back.Benefits)
	assert.True(t, back.PostedAt.Equal(job.PostedAt))

	row.Requirements = "{not json"
	_, err = row.ToDomain()
	assert.Error(t, err)
}

func TestApplicationRow_Interview(t *testing.T) {
	app := &domain.Application{ID: 1, JobID: 2, CandidateID: 3, Status: domain.StatusApplied}

	row, err := ApplicationFromDomain(app)
	require.NoError(t, err)
	assert.False(t, row.Interview.Valid)

	back, err := row.ToDomain()
	require.NoError(t, err)
	assert.Nil(t, back.Interview)

	app.Interview = &domain.Interview{Date: "2026-11-02", Time: "09:00", Interviewer: "Kim", Type: domain.InterviewPhone}
	row, err = ApplicationFromDomain(app)
	require.NoError(t, err)
	require.True(t, row.Interview.Valid)

	back, err = row.ToDomain()
	require.NoError(t, err)
	require.NotNil(t, back.Interview)
	assert.Equal(t, *app.Interview, *back.Interview)
}

func TestCandidateRow_ResumeURL(t *testing.T) {
	url := "/documents/sam_resume_1.pdf"
	c := &domain.Candidate{ID: 1, Name: "Sam", Skills: []string{"Go"}, ResumeURL: &url}

	row, err := CandidateFromDomain(c)
	require.NoError(t, err)
	assert.Equal(t, `[]`, row.Experience)

	back, err := row.ToDomain()
	require.NoError(t, err)
	require.NotNil(t, back.ResumeURL)
	assert.Equal(t, url, *back.ResumeURL)
	assert.Equal(t, []domain.ExperienceEntry{}, back.Experience)
}
