package challenge

import (
	"context"
	"math"
	"sort"
	"time"

	"github.com/questx-lab/rewards/internal/catalog"
	"github.com/questx-lab/rewards/internal/common"
	"github.com/questx-lab/rewards/internal/entity"
	"github.com/questx-lab/rewards/internal/model"
	"github.com/questx-lab/rewards/pkg/errorx"
	"github.com/questx-lab/rewards/pkg/xcontext"
	"github.com/questx-lab/rewards/pkg/xredis"
)

// Leaderboard ranks the participants of a challenge by the number of
// completed tasks, then by the overall progress. Results are cached in redis
// until a task of the challenge advances or the cache expires.
func (t *Tracker) Leaderboard(ctx context.Context, challengeID string) ([]model.LeaderboardEntry, error) {
	def, ok := t.catalog.Challenge(challengeID, time.Now())
	if !ok {
		return nil, errorx.New(errorx.NotFound, "Not found challenge %s", challengeID)
	}

	ttl := xcontext.Configs(ctx).Gamification.LeaderboardCacheTTL
	key := common.RedisKeyChallengeLeaderboard(def.ID)
	if t.redisClient != nil && ttl > 0 {
		var cached []model.LeaderboardEntry
		err := t.redisClient.GetObj(ctx, key, &cached)
		if err == nil {
			return cached, nil
		}

		// If the key didn't exist in redis, load it from database.
		if !xredis.IsNil(err) {
			xcontext.Logger(ctx).Warnf("Cannot get leaderboard from redis: %v", err)
		}
	}

	return t.RefreshLeaderboard(ctx, def.ID)
}

// RefreshLeaderboard computes the leaderboard from database and stores it in
// the cache.
func (t *Tracker) RefreshLeaderboard(ctx context.Context, challengeID string) ([]model.LeaderboardEntry, error) {
	def, ok := t.catalog.Challenge(challengeID, time.Now())
	if !ok {
		return nil, errorx.New(errorx.NotFound, "Not found challenge %s", challengeID)
	}

	participants, err := t.userChallengeRepo.GetByChallengeID(ctx, def.ID)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot get participants of challenge: %v", err)
		return nil, errorx.New(errorx.Unavailable, "Cannot get leaderboard")
	}

	result := ComputeLeaderboard(def, participants)

	ttl := xcontext.Configs(ctx).Gamification.LeaderboardCacheTTL
	if t.redisClient != nil && ttl > 0 {
		key := common.RedisKeyChallengeLeaderboard(def.ID)
		if err := t.redisClient.SetObj(ctx, key, result, ttl); err != nil {
			xcontext.Logger(ctx).Warnf("Cannot set leaderboard to redis: %v", err)
		}
	}

	return result, nil
}

// ComputeLeaderboard sorts participants descending by completed tasks then by
// progress percentage. Ties keep the input order. A task without stored
// progress counts as zero.
func ComputeLeaderboard(def catalog.ChallengeDefinition, participants []entity.UserChallenge) []model.LeaderboardEntry {
	result := make([]model.LeaderboardEntry, 0, len(participants))
	for _, uc := range participants {
		entry := model.LeaderboardEntry{UserID: uc.UserID}

		progress := uc.ProgressMap()
		completed := common.ToSet(uc.CompletedTaskIDs())

		ratio := 0.0
		for _, task := range def.Tasks {
			if _, ok := completed[task.ID]; ok {
				entry.CompletedTasks++
			}

			ratio += math.Min(float64(progress[task.ID])/float64(task.Target), 1)
		}

		if len(def.Tasks) > 0 {
			entry.ProgressPct = int(math.Round(100 * ratio / float64(len(def.Tasks))))
		}

		result = append(result, entry)
	}

	sort.SliceStable(result, func(i, j int) bool {
		if result[i].CompletedTasks != result[j].CompletedTasks {
			return result[i].CompletedTasks > result[j].CompletedTasks
		}

		return result[i].ProgressPct > result[j].ProgressPct
	})

	return result
}

func (t *Tracker) dropLeaderboard(ctx context.Context, challengeID string) {
	if t.redisClient == nil {
		return
	}

	if err := t.redisClient.Del(ctx, common.RedisKeyChallengeLeaderboard(challengeID)); err != nil {
		xcontext.Logger(ctx).Warnf("Cannot drop leaderboard cache of %s: %v", challengeID, err)
	}
}
