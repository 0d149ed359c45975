package streak

import (
	"context"
	"errors"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/questx-lab/rewards/internal/common"
	"github.com/questx-lab/rewards/internal/entity"
	"github.com/questx-lab/rewards/internal/model"
	"github.com/questx-lab/rewards/internal/repository"
	"github.com/questx-lab/rewards/pkg/dateutil"
	"github.com/questx-lab/rewards/pkg/errorx"
	"github.com/questx-lab/rewards/pkg/xcontext"
	"gorm.io/gorm"
)

var errVersionConflict = errors.New("streak version conflict")

type Tracker struct {
	streakRepo repository.StreakRepository
}

func NewTracker(streakRepo repository.StreakRepository) *Tracker {
	return &Tracker{streakRepo: streakRepo}
}

// Record credits a qualifying activity happened at now. The streak counts
// consecutive calendar days of the reference timezone, so it changes at most
// once per day.
func (t *Tracker) Record(ctx context.Context, userID string, now time.Time) (*model.Streak, error) {
	cfg := xcontext.Configs(ctx).Gamification
	today := dateutil.StartOfDay(now, cfg.Location())

	var result *model.Streak
	err := backoff.RetryNotify(
		func() error {
			var err error
			result, err = t.apply(ctx, userID, today)
			if err != nil && !errors.Is(err, errVersionConflict) {
				return backoff.Permanent(err)
			}

			return err
		},
		backoff.WithContext(backoff.WithMaxRetries(newBackOff(), uint64(cfg.MaxRetries)), ctx),
		func(err error, d time.Duration) {
			common.PromCounters[common.StreakConflictTotal].WithLabelValues().Inc()
			xcontext.Logger(ctx).Debugf("Retry updating streak of %s after %v: %v", userID, d, err)
		},
	)
	if err != nil {
		if errors.Is(err, errVersionConflict) {
			xcontext.Logger(ctx).Errorf("Streak of %s kept conflicting: %v", userID, err)
			return nil, errorx.New(errorx.Unavailable, "Cannot update streak")
		}

		return nil, err
	}

	return result, nil
}

func (t *Tracker) apply(ctx context.Context, userID string, today time.Time) (*model.Streak, error) {
	streak, err := t.streakRepo.Get(ctx, userID)
	if err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			xcontext.Logger(ctx).Errorf("Cannot get streak: %v", err)
			return nil, errorx.New(errorx.Unavailable, "Cannot get streak")
		}

		streak = &entity.Streak{
			UserID:           userID,
			CurrentStreak:    1,
			LongestStreak:    1,
			LastActivityDate: today,
		}

		created, err := t.streakRepo.Create(ctx, streak)
		if err != nil {
			xcontext.Logger(ctx).Errorf("Cannot create streak: %v", err)
			return nil, errorx.New(errorx.Unavailable, "Cannot create streak")
		}

		if !created {
			return nil, errVersionConflict
		}

		result := model.ConvertStreak(*streak)
		result.Changed = true
		return &result, nil
	}

	lastActivity := dateutil.StartOfDay(streak.LastActivityDate, today.Location())
	diff := dateutil.DiffDays(today, lastActivity)

	switch {
	case diff == 0:
		result := model.ConvertStreak(*streak)
		return &result, nil

	case diff < 0:
		xcontext.Logger(ctx).Warnf("Activity of %s on %s is before the last activity date %s, streak is unchanged",
			userID, dateutil.ISODate(today, today.Location()), dateutil.ISODate(lastActivity, today.Location()))
		result := model.ConvertStreak(*streak)
		result.ClockAnomaly = true
		return &result, nil

	case diff == 1:
		streak.CurrentStreak++

	default:
		streak.CurrentStreak = 1
	}

	streak.LongestStreak = max(streak.LongestStreak, streak.CurrentStreak)
	streak.LastActivityDate = today

	updated, err := t.streakRepo.UpdateIfVersion(ctx, streak, streak.Version)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot update streak: %v", err)
		return nil, errorx.New(errorx.Unavailable, "Cannot update streak")
	}

	if !updated {
		return nil, errVersionConflict
	}

	result := model.ConvertStreak(*streak)
	result.Changed = true
	return &result, nil
}

// Get returns the streak of user, a user without any activity has an empty
// streak.
func (t *Tracker) Get(ctx context.Context, userID string) (*model.Streak, error) {
	streak, err := t.streakRepo.Get(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return &model.Streak{UserID: userID}, nil
		}

		xcontext.Logger(ctx).Errorf("Cannot get streak: %v", err)
		return nil, errorx.New(errorx.Unavailable, "Cannot get streak")
	}

	result := model.ConvertStreak(*streak)
	return &result, nil
}

func newBackOff() backoff.BackOff {
	b := backoff.NewExponentialBackOff()
	b.InitialInterval = 5 * time.Millisecond
	b.MaxInterval = 100 * time.Millisecond
	return b
}
