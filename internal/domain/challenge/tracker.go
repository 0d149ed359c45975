package challenge

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/questx-lab/rewards/internal/catalog"
	"github.com/questx-lab/rewards/internal/common"
	"github.com/questx-lab/rewards/internal/domain/badge"
	"github.com/questx-lab/rewards/internal/domain/xp"
	"github.com/questx-lab/rewards/internal/entity"
	"github.com/questx-lab/rewards/internal/model"
	"github.com/questx-lab/rewards/internal/repository"
	"github.com/questx-lab/rewards/pkg/errorx"
	"github.com/questx-lab/rewards/pkg/xcontext"
	"github.com/questx-lab/rewards/pkg/xredis"
	"gorm.io/gorm"
)

type Tracker struct {
	catalog           *catalog.Catalog
	userChallengeRepo repository.UserChallengeRepository
	ledger            *xp.Ledger
	badgeManager      *badge.Manager
	redisClient       xredis.Client
}

func NewTracker(
	challengeCatalog *catalog.Catalog,
	userChallengeRepo repository.UserChallengeRepository,
	ledger *xp.Ledger,
	badgeManager *badge.Manager,
	redisClient xredis.Client,
) *Tracker {
	return &Tracker{
		catalog:           challengeCatalog,
		userChallengeRepo: userChallengeRepo,
		ledger:            ledger,
		badgeManager:      badgeManager,
		redisClient:       redisClient,
	}
}

// ActiveChallenges returns the challenges open at now.
func (t *Tracker) ActiveChallenges(now time.Time) []model.Challenge {
	result := []model.Challenge{}
	for _, c := range t.catalog.ActiveChallenges(now) {
		result = append(result, model.ConvertChallenge(c))
	}

	return result
}

// Join makes user participate in a challenge. Joining twice returns the
// existing participation unchanged.
func (t *Tracker) Join(ctx context.Context, userID, challengeID string, now time.Time) (*model.UserChallenge, error) {
	def, ok := t.catalog.Challenge(challengeID, now)
	if !ok {
		return nil, errorx.New(errorx.NotFound, "Not found challenge %s", challengeID)
	}

	if !def.IsOpenAt(now) {
		return nil, errorx.New(errorx.FailedPrecondition, "Challenge %s is not open", challengeID)
	}

	ctx = xcontext.WithDBTransaction(ctx)
	defer xcontext.WithRollbackDBTransaction(ctx)

	uc := &entity.UserChallenge{
		Base:        entity.Base{ID: uuid.NewString()},
		UserID:      userID,
		ChallengeID: def.ID,
		JoinedAt:    now,
	}

	inserted, err := t.userChallengeRepo.Create(ctx, uc)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot create user challenge: %v", err)
		return nil, errorx.New(errorx.Unavailable, "Cannot join challenge")
	}

	if inserted {
		taskIDs := []string{}
		for _, task := range def.Tasks {
			taskIDs = append(taskIDs, task.ID)
		}

		if err := t.userChallengeRepo.CreateTasks(ctx, uc.ID, taskIDs); err != nil {
			xcontext.Logger(ctx).Errorf("Cannot create user challenge tasks: %v", err)
			return nil, errorx.New(errorx.Unavailable, "Cannot join challenge")
		}
	}

	joined, err := t.userChallengeRepo.Get(ctx, userID, def.ID)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot get user challenge: %v", err)
		return nil, errorx.New(errorx.Unavailable, "Cannot join challenge")
	}

	if err := xcontext.WithCommitDBTransaction(ctx); err != nil {
		xcontext.Logger(ctx).Errorf("Cannot commit joining challenge: %v", err)
		return nil, errorx.New(errorx.Unavailable, "Cannot join challenge")
	}

	if inserted {
		t.dropLeaderboard(ctx, def.ID)
	}

	result := model.ConvertUserChallenge(def, *joined)
	return &result, nil
}

// AdvanceTask increases the progress of a task of a joined challenge by
// incrementBy.
func (t *Tracker) AdvanceTask(
	ctx context.Context, userID, challengeID, taskID string, incrementBy int, now time.Time,
) (*model.ChallengeUpdate, error) {
	if incrementBy <= 0 {
		return nil, errorx.New(errorx.BadRequest, "Increment must be positive")
	}

	def, ok := t.catalog.Challenge(challengeID, now)
	if !ok {
		return nil, errorx.New(errorx.NotFound, "Not found challenge %s", challengeID)
	}

	task, ok := def.Task(taskID)
	if !ok {
		return nil, errorx.New(errorx.NotFound, "Not found task %s of challenge %s", taskID, challengeID)
	}

	uc, err := t.userChallengeRepo.Get(ctx, userID, def.ID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errorx.New(errorx.NotFound, "User has not joined challenge %s", challengeID)
		}

		xcontext.Logger(ctx).Errorf("Cannot get user challenge: %v", err)
		return nil, errorx.New(errorx.Unavailable, "Cannot advance task")
	}

	return t.advance(ctx, uc, def, task, incrementBy, "", now)
}

// advance applies the increment, then fires the task completion and the
// challenge completion. Each completion is a conditional update, so it fires
// at most once even under concurrent advances. If category is not empty, the
// task only advances if the category was not credited to it before.
func (t *Tracker) advance(
	ctx context.Context,
	uc *entity.UserChallenge,
	def catalog.ChallengeDefinition,
	task catalog.ChallengeTask,
	incrementBy int,
	category string,
	now time.Time,
) (*model.ChallengeUpdate, error) {
	ctx = xcontext.WithDBTransaction(ctx)
	defer xcontext.WithRollbackDBTransaction(ctx)

	// The task may have been added to the definition after user joined.
	if err := t.userChallengeRepo.CreateTasks(ctx, uc.ID, []string{task.ID}); err != nil {
		xcontext.Logger(ctx).Errorf("Cannot create user challenge task: %v", err)
		return nil, errorx.New(errorx.Unavailable, "Cannot advance task")
	}

	if category != "" {
		isNew, err := t.userChallengeRepo.AddCategory(ctx, uc.ID, task.ID, category)
		if err != nil {
			xcontext.Logger(ctx).Errorf("Cannot add challenge category: %v", err)
			return nil, errorx.New(errorx.Unavailable, "Cannot advance task")
		}

		if !isNew {
			return nil, nil
		}
	}

	err := t.userChallengeRepo.IncreaseTaskProgress(ctx, uc.ID, task.ID, incrementBy, task.Target)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot increase task progress: %v", err)
		return nil, errorx.New(errorx.Unavailable, "Cannot advance task")
	}

	taskCompleted, err := t.userChallengeRepo.CompleteTask(ctx, uc.ID, task.ID, task.Target, now)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot complete task: %v", err)
		return nil, errorx.New(errorx.Unavailable, "Cannot advance task")
	}

	xpAwarded := 0
	if taskCompleted {
		grant, err := t.ledger.Grant(ctx, uc.UserID, task.XPReward,
			fmt.Sprintf("Completed task %s of %s", task.ID, def.Name), entity.XPCategoryChallenge)
		if err != nil {
			return nil, err
		}
		xpAwarded = grant.Amount
	}

	tasks, err := t.userChallengeRepo.GetTasks(ctx, uc.ID)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot get user challenge tasks: %v", err)
		return nil, errorx.New(errorx.Unavailable, "Cannot advance task")
	}

	progress := map[string]int{}
	for _, userTask := range tasks {
		progress[userTask.TaskID] = userTask.Progress
	}

	allReached := true
	for _, defTask := range def.Tasks {
		if progress[defTask.ID] < defTask.Target {
			allReached = false
			break
		}
	}

	challengeCompleted := false
	if allReached {
		challengeCompleted, err = t.userChallengeRepo.Complete(ctx, uc.ID, now)
		if err != nil {
			xcontext.Logger(ctx).Errorf("Cannot complete challenge: %v", err)
			return nil, errorx.New(errorx.Unavailable, "Cannot advance task")
		}
	}

	if err := xcontext.WithCommitDBTransaction(ctx); err != nil {
		xcontext.Logger(ctx).Errorf("Cannot commit task progress: %v", err)
		return nil, errorx.New(errorx.Unavailable, "Cannot advance task")
	}

	t.dropLeaderboard(ctx, def.ID)

	if taskCompleted {
		common.PromCounters[common.ChallengeEventTotal].WithLabelValues("task_completed").Inc()
	}

	if challengeCompleted {
		common.PromCounters[common.ChallengeEventTotal].WithLabelValues("challenge_completed").Inc()
	}

	return &model.ChallengeUpdate{
		ChallengeID:        def.ID,
		TaskID:             task.ID,
		Progress:           progress[task.ID],
		Target:             task.Target,
		TaskCompleted:      taskCompleted,
		ChallengeCompleted: challengeCompleted,
		XPAwarded:          xpAwarded,
	}, nil
}

// Progress advances by one every matching, not yet completed task of the
// challenges which user joined and which are open at now. A task matches if
// its type is in taskTypes and, when it has an event category, the category
// equals eventCategory. Explore-category tasks only advance for a category
// they have not seen yet. A failing challenge does not stop the others, the
// first error is returned along with the applied updates.
func (t *Tracker) Progress(
	ctx context.Context,
	userID string,
	taskTypes []catalog.TaskType,
	eventCategory string,
	now time.Time,
) ([]model.ChallengeUpdate, error) {
	joined, err := t.userChallengeRepo.GetByUserID(ctx, userID)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot get user challenges: %v", err)
		return nil, errorx.New(errorx.Unavailable, "Cannot get user challenges")
	}

	wanted := common.ToSet(taskTypes)

	var firstErr error
	result := []model.ChallengeUpdate{}
	for i := range joined {
		uc := &joined[i]
		if uc.IsCompleted {
			continue
		}

		def, ok := t.catalog.Challenge(uc.ChallengeID, now)
		if !ok || !def.IsOpenAt(now) {
			continue
		}

		progress := uc.ProgressMap()
		for _, task := range def.Tasks {
			if _, ok := wanted[task.Type]; !ok {
				continue
			}

			if task.EventCategory != "" && task.EventCategory != eventCategory {
				continue
			}

			if progress[task.ID] >= task.Target {
				continue
			}

			category := ""
			if task.Type == catalog.ExploreCategoryTask {
				if eventCategory == "" {
					continue
				}
				category = eventCategory
			}

			update, err := t.advance(ctx, uc, def, task, 1, category, now)
			if err != nil {
				if firstErr == nil {
					firstErr = err
				}
				continue
			}

			if update != nil {
				result = append(result, *update)
			}
		}
	}

	return result, firstErr
}

// ClaimRewards grants the rewards of a completed challenge. It fails without
// any write if the challenge is not completed or its rewards were already
// claimed.
func (t *Tracker) ClaimRewards(
	ctx context.Context, userID, challengeID string, now time.Time,
) (*model.ClaimRewardsResult, error) {
	def, ok := t.catalog.Challenge(challengeID, now)
	if !ok {
		return nil, errorx.New(errorx.NotFound, "Not found challenge %s", challengeID)
	}

	uc, err := t.userChallengeRepo.Get(ctx, userID, def.ID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errorx.New(errorx.NotFound, "User has not joined challenge %s", challengeID)
		}

		xcontext.Logger(ctx).Errorf("Cannot get user challenge: %v", err)
		return nil, errorx.New(errorx.Unavailable, "Cannot claim rewards")
	}

	if !uc.IsCompleted {
		return nil, errorx.New(errorx.FailedPrecondition, "Challenge %s is not completed", challengeID)
	}

	if uc.RewardsClaimed {
		return nil, errorx.New(errorx.FailedPrecondition, "Rewards of challenge %s were already claimed", challengeID)
	}

	ctx = xcontext.WithDBTransaction(ctx)
	defer xcontext.WithRollbackDBTransaction(ctx)

	claimed, err := t.userChallengeRepo.ClaimRewards(ctx, uc.ID, now)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot claim rewards: %v", err)
		return nil, errorx.New(errorx.Unavailable, "Cannot claim rewards")
	}

	if !claimed {
		return nil, errorx.New(errorx.FailedPrecondition, "Rewards of challenge %s were already claimed", challengeID)
	}

	result := &model.ClaimRewardsResult{Title: def.Rewards.Title}

	grant, err := t.ledger.Grant(ctx, userID, def.Rewards.XP,
		fmt.Sprintf("Completed challenge %s", def.Name), entity.XPCategoryChallenge)
	if err != nil {
		return nil, err
	}
	result.XPAwarded = grant.Amount

	if def.Rewards.BadgeID != "" {
		awarded, err := t.badgeManager.Award(ctx, userID, def.Rewards.BadgeID, "")
		if err != nil {
			return nil, err
		}

		if awarded {
			b, _ := t.catalog.Badge(def.Rewards.BadgeID)
			converted := model.ConvertBadge(b)
			result.Badge = &converted
			result.XPAwarded += b.XPReward
		}
	}

	if err := xcontext.WithCommitDBTransaction(ctx); err != nil {
		xcontext.Logger(ctx).Errorf("Cannot commit claiming rewards: %v", err)
		return nil, errorx.New(errorx.Unavailable, "Cannot claim rewards")
	}

	common.PromCounters[common.ChallengeEventTotal].WithLabelValues("rewards_claimed").Inc()
	return result, nil
}

// GetUserChallenges returns every challenge user joined.
func (t *Tracker) GetUserChallenges(ctx context.Context, userID string, now time.Time) ([]model.UserChallenge, error) {
	joined, err := t.userChallengeRepo.GetByUserID(ctx, userID)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot get user challenges: %v", err)
		return nil, errorx.New(errorx.Unavailable, "Cannot get user challenges")
	}

	result := []model.UserChallenge{}
	for _, uc := range joined {
		def, ok := t.catalog.Challenge(uc.ChallengeID, now)
		if !ok {
			xcontext.Logger(ctx).Warnf("User %s joined challenge %s which is not in catalog", userID, uc.ChallengeID)
			continue
		}

		result = append(result, model.ConvertUserChallenge(def, uc))
	}

	return result, nil
}
