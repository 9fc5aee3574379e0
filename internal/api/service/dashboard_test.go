package service

import (
	"context"
	"errors"
	"testing"

	"github.com/cuongbtq/jobboard/internal/api/domain"
	"github.com/cuongbtq/jobboard/internal/api/storage/memory"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// brokenSavedJobs fails every bookmark listing
type brokenSavedJobs struct {
	*memory.Store
}

func (brokenSavedJobs) ListSavedJobs(context.Context, int64) ([]domain.SavedJob, error) {
	return nil, errors.New("connection reset")
}

func newDashboard(store *memory.Store) (*Dashboard, *ApplicationRepository) {
	apps := newAppRepo(store, nil, ApplicationOptions{})
	return NewDashboard(newJobRepo(store), apps, newSavedRepo(store)), apps
}

func TestDashboard_Stats(t *testing.T) {
	ctx := context.Background()
	d, apps := newDashboard(testStore())

	stats, err := d.Stats(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, 1, stats.Applications)
	assert.Equal(t, 1, stats.SavedJobs)
	assert.Equal(t, 4, stats.TotalJobs)
	assert.Equal(t, 0, stats.Interviews)

	_, err = apps.ScheduleInterview(ctx, 1, validInterview())
	require.NoError(t, err)
	_, err = apps.Create(ctx, 3, 1, "")
	require.NoError(t, err)

	stats, err = d.Stats(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, 2, stats.Applications)
	assert.Equal(t, 1, stats.Interviews)
	assert.Equal(t, map[domain.ApplicationStatus]int{
		domain.StatusInterviewScheduled: 1,
		domain.StatusApplied:            1,
	}, stats.ByStatus)
}

func TestDashboard_StatsFailsAsAWhole(t *testing.T) {
	store := brokenSavedJobs{Store: testStore()}
	saved := NewSavedJobRepository(store, testLogger())
	apps := NewApplicationRepository(store, nil, ApplicationOptions{}, testLogger())
	d := NewDashboard(NewJobRepository(store, testLogger()), apps, saved)

	_, err := d.Stats(context.Background(), 1)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "connection reset")
}

func TestDashboard_ApplicationTracker(t *testing.T) {
	ctx := context.Background()
	d, apps := newDashboard(testStore())

	_, err := apps.Create(ctx, 4, 1, "")
	require.NoError(t, err)

	tracked, err := d.ApplicationTracker(ctx, 1)
	require.NoError(t, err)
	require.Len(t, tracked, 2)
	for _, ta := range tracked {
		assert.Equal(t, ta.JobID, ta.Job.ID)
	}
	assert.Equal(t, "Analyst", tracked[0].Job.Title, "newest application first")

	empty, err := d.ApplicationTracker(ctx, 2)
	require.NoError(t, err)
	assert.Empty(t, empty)
}

func TestDashboard_SavedList(t *testing.T) {
	d, _ := newDashboard(testStore())

	views, err := d.SavedList(context.Background(), 1)
	require.NoError(t, err)
	require.Len(t, views, 1)
	assert.Equal(t, "Designer", views[0].Job.Title)
}

func TestDashboard_JobDetail(t *testing.T) {
	ctx := context.Background()
	d, _ := newDashboard(testStore())

	tests := []struct {
		name        string
		jobID       int64
		wantSaved   bool
		wantApplied bool
		wantErr     error
	}{
		{name: "saved", jobID: 2, wantSaved: true},
		{name: "applied", jobID: 1, wantApplied: true},
		{name: "neither", jobID: 3},
		{name: "missing", jobID: 99, wantErr: domain.ErrNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			detail, err := d.JobDetail(ctx, 1, tt.jobID)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.jobID, detail.Job.ID)
			assert.Equal(t, tt.wantSaved, detail.Saved)
			assert.Equal(t, tt.wantApplied, detail.Applied)
		})
	}
}
