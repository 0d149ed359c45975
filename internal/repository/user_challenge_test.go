package repository

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/questx-lab/rewards/internal/entity"
	"github.com/questx-lab/rewards/pkg/testutil"
	"github.com/stretchr/testify/require"
)

func Test_userChallengeRepository(t *testing.T) {
	ctx := testutil.MockContext()
	repo := NewUserChallengeRepository()
	now := time.Now()

	uc := &entity.UserChallenge{
		Base:        entity.Base{ID: uuid.NewString()},
		UserID:      testutil.User1,
		ChallengeID: "weekly_explorer",
		JoinedAt:    now,
	}
	inserted, err := repo.Create(ctx, uc)
	require.NoError(t, err)
	require.True(t, inserted)

	inserted, err = repo.Create(ctx, &entity.UserChallenge{
		Base:        entity.Base{ID: uuid.NewString()},
		UserID:      testutil.User1,
		ChallengeID: "weekly_explorer",
		JoinedAt:    now,
	})
	require.NoError(t, err)
	require.False(t, inserted)

	require.NoError(t, repo.CreateTasks(ctx, uc.ID, []string{"attend_any_2", "different_categories"}))
	require.NoError(t, repo.CreateTasks(ctx, uc.ID, []string{"attend_any_2"}))

	// Progress is capped at target.
	for i := 0; i < 3; i++ {
		require.NoError(t, repo.IncreaseTaskProgress(ctx, uc.ID, "attend_any_2", 1, 2))
	}

	completed, err := repo.CompleteTask(ctx, uc.ID, "different_categories", 2, now)
	require.NoError(t, err)
	require.False(t, completed)

	completed, err = repo.CompleteTask(ctx, uc.ID, "attend_any_2", 2, now)
	require.NoError(t, err)
	require.True(t, completed)

	completed, err = repo.CompleteTask(ctx, uc.ID, "attend_any_2", 2, now)
	require.NoError(t, err)
	require.False(t, completed)

	got, err := repo.Get(ctx, testutil.User1, "weekly_explorer")
	require.NoError(t, err)
	require.Equal(t, uc.ID, got.ID)
	require.Equal(t, map[string]int{"attend_any_2": 2, "different_categories": 0}, got.ProgressMap())
	require.Equal(t, []string{"attend_any_2"}, got.CompletedTaskIDs())

	// Rewards cannot be claimed before completion.
	claimed, err := repo.ClaimRewards(ctx, uc.ID, now)
	require.NoError(t, err)
	require.False(t, claimed)

	done, err := repo.Complete(ctx, uc.ID, now)
	require.NoError(t, err)
	require.True(t, done)

	done, err = repo.Complete(ctx, uc.ID, now)
	require.NoError(t, err)
	require.False(t, done)

	claimed, err = repo.ClaimRewards(ctx, uc.ID, now)
	require.NoError(t, err)
	require.True(t, claimed)

	claimed, err = repo.ClaimRewards(ctx, uc.ID, now)
	require.NoError(t, err)
	require.False(t, claimed)

	added, err := repo.AddCategory(ctx, uc.ID, "different_categories", "tech")
	require.NoError(t, err)
	require.True(t, added)

	added, err = repo.AddCategory(ctx, uc.ID, "different_categories", "tech")
	require.NoError(t, err)
	require.False(t, added)

	list, err := repo.GetByChallengeID(ctx, "weekly_explorer")
	require.NoError(t, err)
	require.Len(t, list, 1)
	require.Len(t, list[0].Tasks, 2)
}
