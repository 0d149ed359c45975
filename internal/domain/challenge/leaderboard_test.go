package challenge

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/questx-lab/rewards/internal/catalog"
	"github.com/questx-lab/rewards/internal/common"
	"github.com/questx-lab/rewards/internal/entity"
	"github.com/questx-lab/rewards/internal/model"
	"github.com/questx-lab/rewards/pkg/testutil"
	"github.com/stretchr/testify/require"
)

func userChallenge(userID string, tasks ...entity.UserChallengeTask) entity.UserChallenge {
	return entity.UserChallenge{UserID: userID, ChallengeID: "c", Tasks: tasks}
}

func TestComputeLeaderboard(t *testing.T) {
	def := catalog.ChallengeDefinition{
		ID: "c",
		Tasks: []catalog.ChallengeTask{
			{ID: "a", Target: 2},
			{ID: "b", Target: 5},
		},
	}

	entries := ComputeLeaderboard(def, []entity.UserChallenge{
		userChallenge("partial",
			entity.UserChallengeTask{TaskID: "a", Progress: 2, Completed: true},
			entity.UserChallengeTask{TaskID: "b", Progress: 1},
		),
		userChallenge("done",
			entity.UserChallengeTask{TaskID: "a", Progress: 2, Completed: true},
			entity.UserChallengeTask{TaskID: "b", Progress: 5, Completed: true},
		),
		// The task b was added after this user joined.
		userChallenge("missing",
			entity.UserChallengeTask{TaskID: "a", Progress: 1},
		),
		userChallenge("tie",
			entity.UserChallengeTask{TaskID: "a", Progress: 2, Completed: true},
			entity.UserChallengeTask{TaskID: "b", Progress: 1},
		),
	})

	require.Equal(t, []model.LeaderboardEntry{
		{UserID: "done", CompletedTasks: 2, ProgressPct: 100},
		{UserID: "partial", CompletedTasks: 1, ProgressPct: 60},
		{UserID: "tie", CompletedTasks: 1, ProgressPct: 60},
		{UserID: "missing", CompletedTasks: 0, ProgressPct: 25},
	}, entries)

	require.Empty(t, ComputeLeaderboard(def, nil))
}

func TestTracker_Leaderboard(t *testing.T) {
	ctx := testutil.MockContext()
	redisClient := testutil.NewMemoryRedisClient()
	tracker := newTestTracker(redisClient)
	now := time.Now()

	var challengeID string
	for _, userID := range []string{testutil.User1, testutil.User2} {
		uc, err := tracker.Join(ctx, userID, "weekly_networker", now)
		require.NoError(t, err)
		challengeID = uc.Challenge.ID
	}

	_, err := tracker.AdvanceTask(ctx, testutil.User2, "weekly_networker", "connect_5", 5, now)
	require.NoError(t, err)
	_, err = tracker.AdvanceTask(ctx, testutil.User2, "weekly_networker", "post_3", 3, now)
	require.NoError(t, err)
	_, err = tracker.AdvanceTask(ctx, testutil.User1, "weekly_networker", "connect_5", 5, now)
	require.NoError(t, err)
	_, err = tracker.AdvanceTask(ctx, testutil.User1, "weekly_networker", "post_3", 1, now)
	require.NoError(t, err)

	entries, err := tracker.Leaderboard(ctx, "weekly_networker")
	require.NoError(t, err)
	require.Equal(t, []model.LeaderboardEntry{
		{UserID: testutil.User2, CompletedTasks: 2, ProgressPct: 100},
		{UserID: testutil.User1, CompletedTasks: 1, ProgressPct: 67},
	}, entries)

	key := common.RedisKeyChallengeLeaderboard(challengeID)
	require.True(t, redisClient.Has(key))

	// Served from cache.
	setCount := redisClient.SetCount
	_, err = tracker.Leaderboard(ctx, "weekly_networker")
	require.NoError(t, err)
	require.Equal(t, setCount, redisClient.SetCount)

	// An advance drops the cache.
	_, err = tracker.AdvanceTask(ctx, testutil.User1, "weekly_networker", "post_3", 2, now)
	require.NoError(t, err)
	require.False(t, redisClient.Has(key))

	entries, err = tracker.Leaderboard(ctx, "weekly_networker")
	require.NoError(t, err)
	require.Equal(t, 2, entries[0].CompletedTasks)
	require.Equal(t, 2, entries[1].CompletedTasks)

	_, err = tracker.Leaderboard(ctx, "unknown")
	require.Error(t, err)
}

func TestTracker_Leaderboard_RedisDown(t *testing.T) {
	ctx := testutil.MockContext()
	down := errors.New("connection refused")
	tracker := newTestTracker(&testutil.MockRedisClient{
		GetObjFunc: func(ctx context.Context, key string, v any) error { return down },
		SetObjFunc: func(ctx context.Context, key string, obj any, ttl time.Duration) error { return down },
		DelFunc:    func(ctx context.Context, key ...string) error { return down },
	})
	now := time.Now()

	_, err := tracker.Join(ctx, testutil.User1, "weekly_networker", now)
	require.NoError(t, err)
	_, err = tracker.AdvanceTask(ctx, testutil.User1, "weekly_networker", "post_3", 1, now)
	require.NoError(t, err)

	entries, err := tracker.Leaderboard(ctx, "weekly_networker")
	require.NoError(t, err)
	require.Equal(t, []model.LeaderboardEntry{{UserID: testutil.User1, CompletedTasks: 0, ProgressPct: 17}}, entries)
}
