package challenge

import (
	"testing"
	"time"

	"github.com/questx-lab/rewards/internal/catalog"
	"github.com/questx-lab/rewards/internal/domain/badge"
	"github.com/questx-lab/rewards/internal/domain/streak"
	"github.com/questx-lab/rewards/internal/domain/xp"
	"github.com/questx-lab/rewards/internal/repository"
	"github.com/questx-lab/rewards/pkg/errorx"
	"github.com/questx-lab/rewards/pkg/testutil"
	"github.com/questx-lab/rewards/pkg/xredis"
	"github.com/stretchr/testify/require"
	"golang.org/x/sync/errgroup"
)

var (
	exploreTypes = []catalog.TaskType{catalog.AttendEventTask, catalog.ExploreCategoryTask}
)

type testTracker struct {
	*Tracker
	ledgerRepo    repository.XPLedgerRepository
	userBadgeRepo repository.UserBadgeRepository
}

func newTestTracker(redisClient xredis.Client) *testTracker {
	cat := catalog.Default(time.UTC)
	ledgerRepo := repository.NewXPLedgerRepository()
	userBadgeRepo := repository.NewUserBadgeRepository()
	ledger := xp.NewLedger(ledgerRepo)
	manager := badge.NewManager(
		cat,
		userBadgeRepo,
		repository.NewActivityCounterRepository(),
		ledger,
		streak.NewTracker(repository.NewStreakRepository()),
		badge.DefaultScanners()...,
	)

	return &testTracker{
		Tracker:       NewTracker(cat, repository.NewUserChallengeRepository(), ledger, manager, redisClient),
		ledgerRepo:    ledgerRepo,
		userBadgeRepo: userBadgeRepo,
	}
}

func TestTracker_Join(t *testing.T) {
	ctx := testutil.MockContext()
	tracker := newTestTracker(nil)
	now := time.Now()

	uc, err := tracker.Join(ctx, testutil.User1, "weekly_explorer", now)
	require.NoError(t, err)
	require.Equal(t, map[string]int{"attend_any_2": 0, "different_categories": 0}, uc.Progress)
	require.False(t, uc.IsCompleted)

	again, err := tracker.Join(ctx, testutil.User1, "weekly_explorer", now.Add(time.Second))
	require.NoError(t, err)
	require.Equal(t, uc.ID, again.ID)
	require.True(t, uc.JoinedAt.Equal(again.JoinedAt))

	_, err = tracker.Join(ctx, testutil.User1, "unknown", now)
	require.Equal(t, errorx.NotFound, errorx.CodeOf(err))

	yesterday := catalog.DailyChallengeID(now.UTC().AddDate(0, 0, -1), 0)
	_, err = tracker.Join(ctx, testutil.User1, yesterday, now)
	require.Equal(t, errorx.FailedPrecondition, errorx.CodeOf(err))

	list, err := tracker.GetUserChallenges(ctx, testutil.User1, now)
	require.NoError(t, err)
	require.Len(t, list, 1)
}

func TestTracker_WeeklyExplorer(t *testing.T) {
	ctx := testutil.MockContext()
	tracker := newTestTracker(nil)
	now := time.Now()

	_, err := tracker.Join(ctx, testutil.User1, "weekly_explorer", now)
	require.NoError(t, err)

	updates, err := tracker.Progress(ctx, testutil.User1, exploreTypes, "technology", now)
	require.NoError(t, err)
	require.Len(t, updates, 2)
	for _, u := range updates {
		require.Equal(t, 1, u.Progress)
		require.False(t, u.TaskCompleted)
	}

	// The same category does not count twice for the explore task.
	updates, err = tracker.Progress(ctx, testutil.User1, exploreTypes, "technology", now)
	require.NoError(t, err)
	require.Len(t, updates, 1)
	require.Equal(t, "attend_any_2", updates[0].TaskID)
	require.True(t, updates[0].TaskCompleted)
	require.False(t, updates[0].ChallengeCompleted)

	updates, err = tracker.Progress(ctx, testutil.User1, exploreTypes, "music", now)
	require.NoError(t, err)
	require.Len(t, updates, 1)
	require.Equal(t, "different_categories", updates[0].TaskID)
	require.True(t, updates[0].TaskCompleted)
	require.True(t, updates[0].ChallengeCompleted)

	updates, err = tracker.Progress(ctx, testutil.User1, exploreTypes, "art", now)
	require.NoError(t, err)
	require.Empty(t, updates)

	list, err := tracker.GetUserChallenges(ctx, testutil.User1, now)
	require.NoError(t, err)
	require.Len(t, list, 1)
	require.True(t, list[0].IsCompleted)
	require.NotNil(t, list[0].CompletedAt)
	require.Equal(t, map[string]int{"attend_any_2": 2, "different_categories": 2}, list[0].Progress)
	require.ElementsMatch(t, []string{"attend_any_2", "different_categories"}, list[0].CompletedTasks)

	// Two task rewards of 50 xp.
	sum, err := tracker.ledgerRepo.SumTransactions(ctx, testutil.User1)
	require.NoError(t, err)
	require.Equal(t, 100, sum)
}

func TestTracker_WeeklyRejoin(t *testing.T) {
	ctx := testutil.MockContext()
	tracker := newTestTracker(nil)
	// Wednesday.
	week1 := time.Date(2024, 3, 13, 12, 0, 0, 0, time.UTC)
	week2 := week1.AddDate(0, 0, 7)

	first, err := tracker.Join(ctx, testutil.User1, "weekly_explorer", week1)
	require.NoError(t, err)
	require.Equal(t, "weekly_explorer_2024-03-10", first.Challenge.ID)

	_, err = tracker.AdvanceTask(ctx, testutil.User1, "weekly_explorer", "attend_any_2", 2, week1)
	require.NoError(t, err)
	_, err = tracker.AdvanceTask(ctx, testutil.User1, "weekly_explorer", "different_categories", 2, week1)
	require.NoError(t, err)
	_, err = tracker.ClaimRewards(ctx, testutil.User1, "weekly_explorer", week1)
	require.NoError(t, err)

	second, err := tracker.Join(ctx, testutil.User1, "weekly_explorer", week2)
	require.NoError(t, err)
	require.NotEqual(t, first.ID, second.ID)
	require.Equal(t, "weekly_explorer_2024-03-17", second.Challenge.ID)
	require.Equal(t, map[string]int{"attend_any_2": 0, "different_categories": 0}, second.Progress)
	require.False(t, second.IsCompleted)
	require.False(t, second.RewardsClaimed)

	updates, err := tracker.Progress(ctx, testutil.User1, exploreTypes, "technology", week2)
	require.NoError(t, err)
	require.Len(t, updates, 2)
	for _, u := range updates {
		require.Equal(t, "weekly_explorer_2024-03-17", u.ChallengeID)
	}

	list, err := tracker.GetUserChallenges(ctx, testutil.User1, week2)
	require.NoError(t, err)
	require.Len(t, list, 2)
	for _, uc := range list {
		switch uc.Challenge.ID {
		case "weekly_explorer_2024-03-10":
			require.True(t, uc.RewardsClaimed)
			require.Equal(t, map[string]int{"attend_any_2": 2, "different_categories": 2}, uc.Progress)
		case "weekly_explorer_2024-03-17":
			require.False(t, uc.RewardsClaimed)
			require.Equal(t, map[string]int{"attend_any_2": 1, "different_categories": 1}, uc.Progress)
		default:
			require.Fail(t, "unexpected challenge", uc.Challenge.ID)
		}
	}

	// The past week can still be addressed by its own id.
	_, err = tracker.ClaimRewards(ctx, testutil.User1, "weekly_explorer_2024-03-10", week2)
	require.Equal(t, errorx.FailedPrecondition, errorx.CodeOf(err))
}

func TestTracker_AdvanceTask_Cap(t *testing.T) {
	ctx := testutil.MockContext()
	tracker := newTestTracker(nil)
	now := time.Now()

	_, err := tracker.Join(ctx, testutil.User1, "weekly_networker", now)
	require.NoError(t, err)

	update, err := tracker.AdvanceTask(ctx, testutil.User1, "weekly_networker", "connect_5", 100, now)
	require.NoError(t, err)
	require.Equal(t, 5, update.Progress)
	require.True(t, update.TaskCompleted)
	require.False(t, update.ChallengeCompleted)

	update, err = tracker.AdvanceTask(ctx, testutil.User1, "weekly_networker", "connect_5", 3, now)
	require.NoError(t, err)
	require.Equal(t, 5, update.Progress)
	require.False(t, update.TaskCompleted)

	_, err = tracker.AdvanceTask(ctx, testutil.User1, "weekly_networker", "connect_5", 0, now)
	require.Equal(t, errorx.BadRequest, errorx.CodeOf(err))

	_, err = tracker.AdvanceTask(ctx, testutil.User1, "weekly_networker", "unknown", 1, now)
	require.Equal(t, errorx.NotFound, errorx.CodeOf(err))

	_, err = tracker.AdvanceTask(ctx, testutil.User2, "weekly_networker", "connect_5", 1, now)
	require.Equal(t, errorx.NotFound, errorx.CodeOf(err))
}

func TestTracker_AdvanceTask_Concurrent(t *testing.T) {
	ctx := testutil.MockContext()
	tracker := newTestTracker(nil)
	now := time.Now()

	_, err := tracker.Join(ctx, testutil.User1, "weekly_networker", now)
	require.NoError(t, err)

	eg, _ := errgroup.WithContext(ctx)
	for i := 0; i < 20; i++ {
		taskID := "connect_5"
		if i%2 == 1 {
			taskID = "post_3"
		}

		eg.Go(func() error {
			_, err := tracker.AdvanceTask(ctx, testutil.User1, "weekly_networker", taskID, 1, now)
			return err
		})
	}
	require.NoError(t, eg.Wait())

	list, err := tracker.GetUserChallenges(ctx, testutil.User1, now)
	require.NoError(t, err)
	require.Equal(t, map[string]int{"connect_5": 5, "post_3": 3}, list[0].Progress)
	require.True(t, list[0].IsCompleted)

	// Each task reward is granted once.
	sum, err := tracker.ledgerRepo.SumTransactions(ctx, testutil.User1)
	require.NoError(t, err)
	require.Equal(t, 80, sum)
}

func TestTracker_Progress_EventCategory(t *testing.T) {
	ctx := testutil.MockContext()
	tracker := newTestTracker(nil)
	now := time.Now()

	_, err := tracker.Join(ctx, testutil.User1, "community_kickoff", now)
	require.NoError(t, err)

	updates, err := tracker.Progress(ctx, testutil.User1, []catalog.TaskType{catalog.AttendEventTask}, "music", now)
	require.NoError(t, err)
	require.Empty(t, updates)

	updates, err = tracker.Progress(ctx, testutil.User1, []catalog.TaskType{catalog.AttendEventTask}, "technology", now)
	require.NoError(t, err)
	require.Len(t, updates, 1)
	require.Equal(t, "attend_tech", updates[0].TaskID)

	// Challenges which were not joined do not advance.
	updates, err = tracker.Progress(ctx, testutil.User2, []catalog.TaskType{catalog.AttendEventTask}, "technology", now)
	require.NoError(t, err)
	require.Empty(t, updates)
}

func TestTracker_ClaimRewards(t *testing.T) {
	ctx := testutil.MockContext()
	tracker := newTestTracker(nil)
	now := time.Now()

	_, err := tracker.Join(ctx, testutil.User1, "weekly_explorer", now)
	require.NoError(t, err)

	_, err = tracker.ClaimRewards(ctx, testutil.User1, "weekly_explorer", now)
	require.Equal(t, errorx.FailedPrecondition, errorx.CodeOf(err))

	sum, err := tracker.ledgerRepo.SumTransactions(ctx, testutil.User1)
	require.NoError(t, err)
	require.Equal(t, 0, sum)

	_, err = tracker.AdvanceTask(ctx, testutil.User1, "weekly_explorer", "attend_any_2", 2, now)
	require.NoError(t, err)
	update, err := tracker.AdvanceTask(ctx, testutil.User1, "weekly_explorer", "different_categories", 2, now)
	require.NoError(t, err)
	require.True(t, update.ChallengeCompleted)

	result, err := tracker.ClaimRewards(ctx, testutil.User1, "weekly_explorer", now)
	require.NoError(t, err)
	require.Equal(t, "Explorer", result.Title)
	require.NotNil(t, result.Badge)
	require.Equal(t, "explorer", result.Badge.ID)
	require.Equal(t, 300, result.XPAwarded)

	_, err = tracker.ClaimRewards(ctx, testutil.User1, "weekly_explorer", now)
	require.Equal(t, errorx.FailedPrecondition, errorx.CodeOf(err))

	// 100 from tasks, 200 from the challenge and 100 from the explorer badge.
	sum, err = tracker.ledgerRepo.SumTransactions(ctx, testutil.User1)
	require.NoError(t, err)
	require.Equal(t, 400, sum)

	ub, err := tracker.userBadgeRepo.Get(ctx, testutil.User1, "explorer")
	require.NoError(t, err)
	require.Equal(t, "explorer", ub.BadgeID)

	list, err := tracker.GetUserChallenges(ctx, testutil.User1, now)
	require.NoError(t, err)
	require.True(t, list[0].RewardsClaimed)

	_, err = tracker.ClaimRewards(ctx, testutil.User2, "weekly_explorer", now)
	require.Equal(t, errorx.NotFound, errorx.CodeOf(err))
}

func TestTracker_ClaimRewards_Concurrent(t *testing.T) {
	ctx := testutil.MockContext()
	tracker := newTestTracker(nil)
	now := time.Now()

	_, err := tracker.Join(ctx, testutil.User1, "weekly_networker", now)
	require.NoError(t, err)
	_, err = tracker.AdvanceTask(ctx, testutil.User1, "weekly_networker", "connect_5", 5, now)
	require.NoError(t, err)
	_, err = tracker.AdvanceTask(ctx, testutil.User1, "weekly_networker", "post_3", 3, now)
	require.NoError(t, err)

	eg, _ := errgroup.WithContext(ctx)
	results := make([]error, 5)
	for i := range results {
		i := i
		eg.Go(func() error {
			_, results[i] = tracker.ClaimRewards(ctx, testutil.User1, "weekly_networker", now)
			return nil
		})
	}
	require.NoError(t, eg.Wait())

	succeeded := 0
	for _, err := range results {
		if err == nil {
			succeeded++
		} else {
			require.Equal(t, errorx.FailedPrecondition, errorx.CodeOf(err))
		}
	}
	require.Equal(t, 1, succeeded)

	// 80 from tasks and 150 from the challenge.
	sum, err := tracker.ledgerRepo.SumTransactions(ctx, testutil.User1)
	require.NoError(t, err)
	require.Equal(t, 230, sum)
}

func TestTracker_ActiveChallenges(t *testing.T) {
	tracker := newTestTracker(nil)
	now := time.Date(2024, 3, 13, 12, 0, 0, 0, time.UTC)

	challenges := tracker.ActiveChallenges(now)
	ids := []string{}
	for _, c := range challenges {
		ids = append(ids, c.ID)
	}

	require.Equal(t, []string{
		"community_kickoff",
		"weekly_explorer_2024-03-10",
		"weekly_networker_2024-03-10",
		"daily_2024-03-13_0",
		"daily_2024-03-13_1",
		"daily_2024-03-13_2",
	}, ids)
	require.Equal(t, time.Date(2024, 3, 10, 0, 0, 0, 0, time.UTC), challenges[1].StartDate)
}
