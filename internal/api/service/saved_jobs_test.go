package service

import (
	"context"
	"testing"

	"github.com/cuongbtq/jobboard/internal/api/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSavedJobRepository_SaveLifecycle(t *testing.T) {
	ctx := context.Background()
	repo := newSavedRepo(testStore())

	saved, err := repo.IsSaved(ctx, 1, 3)
	require.NoError(t, err)
	assert.False(t, saved)

	sj, err := repo.Create(ctx, 1, 3, "later")
	require.NoError(t, err)
	assert.True(t, fixedNow.Equal(sj.SavedAt))
	assert.Equal(t, "later", sj.Notes)

	saved, err = repo.IsSaved(ctx, 1, 3)
	require.NoError(t, err)
	assert.True(t, saved)

	removed, err := repo.DeleteByJobID(ctx, 1, 3)
	require.NoError(t, err)
	assert.True(t, removed)

	saved, err = repo.IsSaved(ctx, 1, 3)
	require.NoError(t, err)
	assert.False(t, saved)

	removed, err = repo.DeleteByJobID(ctx, 1, 3)
	require.NoError(t, err)
	assert.False(t, removed, "removing an absent bookmark is not an error")
}

func TestSavedJobRepository_CreateIsIdempotent(t *testing.T) {
	ctx := context.Background()
	repo := newSavedRepo(testStore())

	again, err := repo.Create(ctx, 1, 2, "dup")
	require.NoError(t, err)
	assert.Equal(t, int64(1), again.ID)

	list, err := repo.List(ctx, 1)
	require.NoError(t, err)
	assert.Len(t, list, 1)
}

func TestSavedJobRepository_CreateErrors(t *testing.T) {
	ctx := context.Background()
	repo := newSavedRepo(testStore())

	_, err := repo.Create(ctx, 1, 99, "")
	assert.ErrorIs(t, err, domain.ErrNotFound)

	_, err = repo.Create(ctx, 0, 1, "")
	assert.ErrorIs(t, err, domain.ErrInvalidArgument)
}

func TestSavedJobRepository_Toggle(t *testing.T) {
	ctx := context.Background()
	repo := newSavedRepo(testStore())

	tests := []struct {
		name  string
		jobID int64
		want  bool
	}{
		{name: "saves unsaved job", jobID: 4, want: true},
		{name: "unsaves it again", jobID: 4, want: false},
		{name: "unsaves seeded bookmark", jobID: 2, want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := repo.Toggle(ctx, 1, tt.jobID)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)

			saved, err := repo.IsSaved(ctx, 1, tt.jobID)
			require.NoError(t, err)
			assert.Equal(t, tt.want, saved)
		})
	}

	_, err := repo.Toggle(ctx, 1, 99)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestSavedJobRepository_ListAndDelete(t *testing.T) {
	ctx := context.Background()
	repo := newSavedRepo(testStore())

	_, err := repo.Create(ctx, 1, 4, "")
	require.NoError(t, err)
	_, err = repo.Create(ctx, 2, 1, "")
	require.NoError(t, err)

	list, err := repo.List(ctx, 1)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, int64(4), list[0].JobID, "newest first")

	got, err := repo.GetByID(ctx, list[1].ID)
	require.NoError(t, err)
	assert.Equal(t, int64(2), got.JobID)

	require.NoError(t, repo.Delete(ctx, got.ID))
	assert.ErrorIs(t, repo.Delete(ctx, got.ID), domain.ErrNotFound)

	_, err = repo.GetByID(ctx, got.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
