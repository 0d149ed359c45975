package cron

import (
	"context"
	"time"

	"github.com/questx-lab/rewards/internal/domain/challenge"
	"github.com/questx-lab/rewards/pkg/xcontext"
	"github.com/robfig/cron/v3"
	"golang.org/x/sync/errgroup"
)

const maxConcurrentRefresh = 4

// LeaderboardCronJob recomputes the cached leaderboards of all active
// challenges.
type LeaderboardCronJob struct {
	challengeTracker *challenge.Tracker
	schedule         cron.Schedule
}

func NewLeaderboardCronJob(ctx context.Context, challengeTracker *challenge.Tracker) (*LeaderboardCronJob, error) {
	expr := xcontext.Configs(ctx).Gamification.LeaderboardCron
	schedule, err := cron.ParseStandard(expr)
	if err != nil {
		return nil, err
	}

	return &LeaderboardCronJob{challengeTracker: challengeTracker, schedule: schedule}, nil
}

func (job *LeaderboardCronJob) Do(ctx context.Context) {
	challenges := job.challengeTracker.ActiveChallenges(time.Now())

	eg := errgroup.Group{}
	eg.SetLimit(maxConcurrentRefresh)
	for _, c := range challenges {
		challengeID := c.ID
		eg.Go(func() error {
			if _, err := job.challengeTracker.RefreshLeaderboard(ctx, challengeID); err != nil {
				xcontext.Logger(ctx).Warnf("Cannot refresh leaderboard of %s: %v", challengeID, err)
				return err
			}
			return nil
		})
	}

	if err := eg.Wait(); err != nil {
		return
	}

	xcontext.Logger(ctx).Infof("Refreshed leaderboards of %d challenges", len(challenges))
}

func (job *LeaderboardCronJob) RunNow() bool {
	return true
}

func (job *LeaderboardCronJob) Next() time.Time {
	return job.schedule.Next(time.Now())
}
