package action

import (
	"context"
	"strconv"
	"time"

	"github.com/fatih/structs"
	"github.com/google/uuid"
	"github.com/questx-lab/rewards/internal/common"
	"github.com/questx-lab/rewards/internal/domain/badge"
	"github.com/questx-lab/rewards/internal/domain/challenge"
	"github.com/questx-lab/rewards/internal/domain/streak"
	"github.com/questx-lab/rewards/internal/domain/xp"
	"github.com/questx-lab/rewards/internal/entity"
	"github.com/questx-lab/rewards/internal/model"
	"github.com/questx-lab/rewards/internal/repository"
	"github.com/questx-lab/rewards/pkg/enum"
	"github.com/questx-lab/rewards/pkg/errorx"
	"github.com/questx-lab/rewards/pkg/pubsub"
	"github.com/questx-lab/rewards/pkg/xcontext"
	"gorm.io/datatypes"
)

const (
	stepValidate   = "validate"
	stepXP         = "xp"
	stepCounters   = "counters"
	stepStats      = "stats"
	stepBadges     = "badges"
	stepChallenges = "challenges"
	stepStreak     = "streak"
)

type Dispatcher struct {
	ledger           *xp.Ledger
	streakTracker    *streak.Tracker
	badgeManager     *badge.Manager
	challengeTracker *challenge.Tracker

	counterRepo   repository.ActivityCounterRepository
	actionLogRepo repository.ActionLogRepository

	publisher pubsub.Publisher
	locker    UserLocker
}

func NewDispatcher(
	ledger *xp.Ledger,
	streakTracker *streak.Tracker,
	badgeManager *badge.Manager,
	challengeTracker *challenge.Tracker,
	counterRepo repository.ActivityCounterRepository,
	actionLogRepo repository.ActionLogRepository,
	publisher pubsub.Publisher,
	locker UserLocker,
) *Dispatcher {
	return &Dispatcher{
		ledger:           ledger,
		streakTracker:    streakTracker,
		badgeManager:     badgeManager,
		challengeTracker: challengeTracker,
		counterRepo:      counterRepo,
		actionLogRepo:    actionLogRepo,
		publisher:        publisher,
		locker:           locker,
	}
}

// ProcessAction converts an action of user into xp, badges, challenge progress
// and streak. It never returns an error, failing steps are reported in the
// result and do not stop the others.
func (d *Dispatcher) ProcessAction(
	ctx context.Context, userID, actionType string, metadata model.ActionMetadata,
) model.ActionResult {
	return d.ProcessActionAt(ctx, userID, actionType, metadata, time.Now())
}

// ProcessActionAt is ProcessAction for an action which happened at now.
func (d *Dispatcher) ProcessActionAt(
	ctx context.Context, userID, actionType string, metadata model.ActionMetadata, now time.Time,
) model.ActionResult {
	start := time.Now()
	result := model.ActionResult{
		BadgesEarned:      []model.Badge{},
		ChallengesUpdated: []model.ChallengeUpdate{},
	}

	action, err := enum.ToEnum[entity.ActionType](actionType)
	if err != nil || userID == "" {
		xcontext.Logger(ctx).Debugf("Invalid action %q of user %q: %v", actionType, userID, err)
		d.fail(ctx, &result, stepValidate, errorx.New(errorx.BadRequest, "Invalid action %s", actionType))
		d.finish(ctx, userID, actionType, metadata, &result, now, start)
		return result
	}

	if d.locker != nil {
		unlock, err := d.locker.Lock(ctx, userID)
		if err != nil {
			xcontext.Logger(ctx).Warnf("Cannot lock user %s, continue without lock: %v", userID, err)
		} else {
			defer unlock()
		}
	}

	levelStep := xcontext.Configs(ctx).Gamification.LevelXPStep
	levelBefore := 0
	if total, err := d.ledger.TotalXP(ctx, userID); err == nil {
		levelBefore = xp.Level(total, levelStep)
	}

	// Step 1: xp of the action itself.
	if amount := actionXP[action]; amount > 0 {
		grant, err := d.ledger.Grant(ctx, userID, amount, actionReason(action, metadata), entity.XPCategoryAction)
		if err != nil {
			d.fail(ctx, &result, stepXP, err)
		} else {
			result.XPAwarded += grant.Amount
		}
	}

	// Step 2: raw counters backing the statistics.
	for _, name := range actionCounters(action, metadata) {
		if err := d.counterRepo.Increase(ctx, userID, name, 1); err != nil {
			xcontext.Logger(ctx).Errorf("Cannot increase counter %s: %v", name, err)
			d.fail(ctx, &result, stepCounters, errorx.New(errorx.Unavailable, "Cannot increase counter %s", name))
		}
	}

	// Step 3 and 4: badges.
	d.evaluateBadges(ctx, userID, &result)

	// Step 5: challenges.
	if taskTypes, ok := actionTasks[action]; ok {
		updates, err := d.challengeTracker.Progress(ctx, userID, taskTypes, metadata.EventCategory, now)
		if err != nil {
			d.fail(ctx, &result, stepChallenges, err)
		}

		for _, u := range updates {
			result.XPAwarded += u.XPAwarded
		}
		result.ChallengesUpdated = append(result.ChallengesUpdated, updates...)
	}

	// Step 6: streak.
	if _, ok := streakActions[action]; ok {
		s, err := d.streakTracker.Record(ctx, userID, now)
		if err != nil {
			d.fail(ctx, &result, stepStreak, err)
		} else {
			result.Streak = s
			if s.ClockAnomaly {
				result.Warnings = append(result.Warnings, model.StepFailure{
					Step:    stepStreak,
					Code:    errorx.ClockAnomaly.String(),
					Message: "Activity is before the last activity date, streak is unchanged",
				})
			}

			// A longer streak may unlock streak badges right away.
			if s.Changed {
				d.evaluateBadges(ctx, userID, &result)
			}
		}
	}

	if total, err := d.ledger.TotalXP(ctx, userID); err == nil {
		result.Level = xp.Level(total, levelStep)
		result.LevelUp = levelBefore > 0 && result.Level > levelBefore
	}

	d.finish(ctx, userID, actionType, metadata, &result, now, start)
	return result
}

// BatchProcessActions processes actions one by one, in order.
func (d *Dispatcher) BatchProcessActions(
	ctx context.Context, userID string, actions []model.ActionRequest,
) []model.ActionResult {
	results := make([]model.ActionResult, 0, len(actions))
	for _, a := range actions {
		results = append(results, d.ProcessAction(ctx, userID, a.ActionType, a.Metadata))
	}

	return results
}

func (d *Dispatcher) evaluateBadges(ctx context.Context, userID string, result *model.ActionResult) {
	stats, err := d.badgeManager.Stats(ctx, userID)
	if err != nil {
		d.fail(ctx, result, stepStats, err)
		return
	}

	earned, err := d.badgeManager.EarnedBadgeIDs(ctx, userID)
	if err != nil {
		d.fail(ctx, result, stepBadges, err)
		return
	}

	badges, err := d.badgeManager.Evaluate(ctx, userID, stats, earned)
	if err != nil {
		d.fail(ctx, result, stepBadges, err)
	}

	for _, b := range badges {
		result.XPAwarded += b.XPReward
		result.BadgesEarned = append(result.BadgesEarned, model.ConvertBadge(b))
	}
}

func (d *Dispatcher) fail(ctx context.Context, result *model.ActionResult, step string, err error) {
	xcontext.Logger(ctx).Warnf("Step %s of action failed: %v", step, err)
	result.Failures = append(result.Failures, model.StepFailure{
		Step:    step,
		Code:    errorx.CodeOf(err).String(),
		Message: err.Error(),
	})
}

func (d *Dispatcher) finish(
	ctx context.Context,
	userID, actionType string,
	metadata model.ActionMetadata,
	result *model.ActionResult,
	now, start time.Time,
) {
	result.Success = len(result.Failures) == 0

	if userID != "" {
		err := d.actionLogRepo.Create(ctx, &entity.ActionLog{
			Base:       entity.Base{ID: uuid.NewString(), CreatedAt: now},
			UserID:     userID,
			ActionType: entity.ActionType(actionType),
			Metadata:   datatypes.JSONMap(structs.Map(metadata)),
			Success:    result.Success,
			XPAwarded:  result.XPAwarded,
		})
		if err != nil {
			xcontext.Logger(ctx).Warnf("Cannot write action log: %v", err)
		}
	}

	d.publish(ctx, rewardEvents(userID, *result, now))

	common.PromCounters[common.ActionProcessedTotal].
		WithLabelValues(actionType, strconv.FormatBool(result.Success)).Inc()
	common.PromHistograms[common.ActionDuration].
		WithLabelValues(actionType).Observe(time.Since(start).Seconds())
}
