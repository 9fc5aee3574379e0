package memory

import (
	"context"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/cuongbtq/jobboard/internal/api/domain"
	"github.com/cuongbtq/jobboard/internal/api/storage"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var t0 = time.Date(2026, 5, 1, 12, 0, 0, 0, time.UTC)

func seeded() *Store {
	return NewFromSeed(Seed{
		Jobs: []domain.Job{
			{ID: 1, Title: "Go Engineer", Company: "Acme", Location: "Berlin", Featured: true, PostedAt: t0, Requirements: []string{"Go"}},
			{ID: 2, Title: "Designer", Company: "Pixel", Location: "Remote", PostedAt: t0.Add(time.Hour)},
			{ID: 5, Title: "Analyst", Company: "Acme", Location: "berlin", Featured: true, PostedAt: t0.Add(2 * time.Hour)},
		},
		Applications: []domain.Application{
			{ID: 1, JobID: 1, CandidateID: 10, AppliedAt: t0, Status: domain.StatusApplied},
		},
		SavedJobs: []domain.SavedJob{
			{ID: 1, JobID: 2, CandidateID: 10, SavedAt: t0},
		},
	})
}

func ids(jobs []domain.Job) []int64 {
	out := make([]int64, len(jobs))
	for i, j := range jobs {
		out[i] = j.ID
	}
	return out
}

func TestStore_ListJobs(t *testing.T) {
	ctx := context.Background()
	s := seeded()

	tests := []struct {
		name  string
		query storage.JobQuery
		want  []int64
	}{
		{name: "all newest first", query: storage.JobQuery{}, want: []int64{5, 2, 1}},
		{name: "filter", query: storage.JobQuery{Filter: domain.JobFilter{Location: "BERLIN"}}, want: []int64{5, 1}},
		{name: "featured", query: storage.JobQuery{FeaturedOnly: true}, want: []int64{5, 1}},
		{name: "limit", query: storage.JobQuery{Limit: 2}, want: []int64{5, 2}},
		{name: "cursor", query: storage.JobQuery{Cursor: &domain.JobCursor{PostedAt: t0.Add(time.Hour), JobID: 2}}, want: []int64{1}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := s.ListJobs(ctx, tt.query)
			require.NoError(t, err)
			assert.Equal(t, tt.want, ids(got))
		})
	}
}

func TestStore_ReturnsCopies(t *testing.T) {
	ctx := context.Background()
	s := seeded()

	job, err := s.GetJob(ctx, 1)
	require.NoError(t, err)
	job.Title = "changed"
	job.Requirements[0] = "Rust"

	again, err := s.GetJob(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, "Go Engineer", again.Title)
	assert.Equal(t, []string{"Go"}, again.Requirements)
}

func TestStore_CreateAssignsMaxPlusOne(t *testing.T) {
	ctx := context.Background()
	s := seeded()

	job := &domain.Job{Title: "New"}
	require.NoError(t, s.CreateJob(ctx, job))
	assert.Equal(t, int64(6), job.ID)

	require.NoError(t, s.DeleteJob(ctx, 6))
	job2 := &domain.Job{Title: "Newer"}
	require.NoError(t, s.CreateJob(ctx, job2))
	assert.Equal(t, int64(6), job2.ID)

	empty := New()
	c := &domain.Candidate{Name: "A"}
	require.NoError(t, empty.CreateCandidate(ctx, c))
	assert.Equal(t, int64(1), c.ID)
}

func TestStore_ApplicationUniqueness(t *testing.T) {
	ctx := context.Background()
	s := seeded()

	err := s.CreateApplication(ctx, &domain.Application{JobID: 1, CandidateID: 10})
	assert.ErrorIs(t, err, domain.ErrConflict)

	// concurrent submissions for one pair: exactly one wins
	var wg sync.WaitGroup
	results := make([]error, 20)
	for i := range results {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			results[i] = s.CreateApplication(ctx, &domain.Application{JobID: 2, CandidateID: 11})
		}(i)
	}
	wg.Wait()

	succeeded := 0
	for _, err := range results {
		if err == nil {
			succeeded++
		} else {
			assert.ErrorIs(t, err, domain.ErrConflict)
		}
	}
	assert.Equal(t, 1, succeeded)

	apps, err := s.ListApplications(ctx, storage.ApplicationFilter{JobID: 2, CandidateID: 11})
	require.NoError(t, err)
	assert.Len(t, apps, 1)
}

func TestStore_UpdateAndDeleteMissing(t *testing.T) {
	ctx := context.Background()
	s := seeded()

	assert.ErrorIs(t, s.UpdateJob(ctx, &domain.Job{ID: 99}), domain.ErrNotFound)
	assert.ErrorIs(t, s.DeleteJob(ctx, 99), domain.ErrNotFound)
	assert.ErrorIs(t, s.UpdateApplication(ctx, &domain.Application{ID: 99}), domain.ErrNotFound)
	assert.ErrorIs(t, s.DeleteApplication(ctx, 99), domain.ErrNotFound)
	assert.ErrorIs(t, s.DeleteSavedJob(ctx, 99), domain.ErrNotFound)
	assert.ErrorIs(t, s.UpdateCandidate(ctx, &domain.Candidate{ID: 99}), domain.ErrNotFound)
	assert.ErrorIs(t, s.DeleteCandidate(ctx, 99), domain.ErrNotFound)

	_, err := s.GetSavedJob(ctx, 99)
	assert.ErrorIs(t, err, domain.ErrNotFound)
	_, err = s.GetCandidate(ctx, 99)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestStore_DeleteJobCascades(t *testing.T) {
	ctx := context.Background()
	s := seeded()

	require.NoError(t, s.DeleteJob(ctx, 1))
	_, err := s.GetApplication(ctx, 1)
	assert.ErrorIs(t, err, domain.ErrNotFound)

	require.NoError(t, s.DeleteJob(ctx, 2))
	saved, err := s.ListSavedJobs(ctx, 10)
	require.NoError(t, err)
	assert.Empty(t, saved)
}

func TestStore_SavedJobs(t *testing.T) {
	ctx := context.Background()
	s := seeded()

	err := s.CreateSavedJob(ctx, &domain.SavedJob{JobID: 2, CandidateID: 10})
	assert.ErrorIs(t, err, domain.ErrConflict)

	sj := &domain.SavedJob{JobID: 1, CandidateID: 10, SavedAt: t0.Add(time.Hour)}
	require.NoError(t, s.CreateSavedJob(ctx, sj))
	assert.Equal(t, int64(2), sj.ID)

	list, err := s.ListSavedJobs(ctx, 10)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, int64(1), list[0].JobID, "newest bookmark first")

	found, err := s.FindSavedJob(ctx, 10, 1)
	require.NoError(t, err)
	assert.Equal(t, sj.ID, found.ID)

	_, err = s.FindSavedJob(ctx, 11, 1)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestLoadSeedFile(t *testing.T) {
	t.Run("repository fixture", func(t *testing.T) {
		seed, err := LoadSeedFile(filepath.Join("..", "..", "..", "..", "configs", "seed.json"))
		require.NoError(t, err)
		assert.NotEmpty(t, seed.Jobs)
		assert.NotEmpty(t, seed.Candidates)

		for _, j := range seed.Jobs {
			job := j
			assert.NoError(t, job.Validate(), "seed job %d", j.ID)
		}
	})

	t.Run("missing file", func(t *testing.T) {
		_, err := LoadSeedFile(filepath.Join(t.TempDir(), "nope.json"))
		require.Error(t, err)
		assert.Contains(t, err.Error(), "failed to read seed file")
	})

	t.Run("malformed", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "bad.json")
		require.NoError(t, os.WriteFile(path, []byte("{"), 0o600))
		_, err := LoadSeedFile(path)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "failed to parse seed file")
	})
}
