package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type mockCleanupRepo struct {
	mock.Mock
}

func (m *mockCleanupRepo) RemoveOldCompleted(ctx context.Context, completedBefore time.Time) (int64, error) {
	args := m.Called(ctx, completedBefore)
	return args.Get(0).(int64), args.Error(1)
}

func Test_NewCompletedJobsCleaner_RejectsNonPositiveRetention(t *testing.T) {

	_, err := NewCompletedJobsCleaner(&mockCleanupRepo{}, 0)
	assert.Error(t, err)

	_, err = NewCompletedJobsCleaner(&mockCleanupRepo{}, -3)
	assert.Error(t, err)
}

func Test_CleanOldJobs_UsesRetentionCutoff(t *testing.T) {

	repo := &mockCleanupRepo{}
	repo.On("RemoveOldCompleted", mock.Anything, mock.MatchedBy(func(cutoff time.Time) bool {
		expected := time.Now().Add(-30 * 24 * time.Hour)
		return cutoff.Sub(expected).Abs() < time.Minute
	})).Return(int64(2), nil)

	cleaner, err := NewCompletedJobsCleaner(repo, 30)
	require.NoError(t, err)
	defer cleaner.Stop()

	cleaner.cleanOldJobs()

	repo.AssertExpectations(t)
}
