package repository

import (
	"testing"
	"time"

	"github.com/questx-lab/rewards/internal/entity"
	"github.com/questx-lab/rewards/pkg/testutil"
	"github.com/stretchr/testify/require"
)

func Test_streakRepository_UpdateIfVersion(t *testing.T) {
	ctx := testutil.MockContext()
	repo := NewStreakRepository()
	day := time.Date(2024, 3, 10, 0, 0, 0, 0, time.UTC)

	created, err := repo.Create(ctx, &entity.Streak{
		UserID:           testutil.User1,
		CurrentStreak:    1,
		LongestStreak:    1,
		LastActivityDate: day,
	})
	require.NoError(t, err)
	require.True(t, created)

	created, err = repo.Create(ctx, &entity.Streak{UserID: testutil.User1})
	require.NoError(t, err)
	require.False(t, created)

	streak, err := repo.Get(ctx, testutil.User1)
	require.NoError(t, err)
	require.Equal(t, 0, streak.Version)

	streak.CurrentStreak = 2
	streak.LongestStreak = 2
	streak.LastActivityDate = day.AddDate(0, 0, 1)
	ok, err := repo.UpdateIfVersion(ctx, streak, 0)
	require.NoError(t, err)
	require.True(t, ok)

	// Stale version.
	ok, err = repo.UpdateIfVersion(ctx, streak, 0)
	require.NoError(t, err)
	require.False(t, ok)

	streak, err = repo.Get(ctx, testutil.User1)
	require.NoError(t, err)
	require.Equal(t, 1, streak.Version)
	require.Equal(t, 2, streak.CurrentStreak)
	require.True(t, streak.LastActivityDate.Equal(day.AddDate(0, 0, 1)))
}
