package action

import (
	"context"
	"encoding/json"
	"time"

	"github.com/questx-lab/rewards/internal/model"
	"github.com/questx-lab/rewards/pkg/pubsub"
	"github.com/questx-lab/rewards/pkg/xcontext"
)

const (
	BadgeEarnedEvent        = "badge_earned"
	TaskCompletedEvent      = "task_completed"
	ChallengeCompletedEvent = "challenge_completed"
	LevelUpEvent            = "level_up"
)

// rewardEvents returns the events the notification layer is interested in.
func rewardEvents(userID string, result model.ActionResult, now time.Time) []model.RewardEvent {
	events := []model.RewardEvent{}
	for _, b := range result.BadgesEarned {
		events = append(events, model.RewardEvent{
			Type:      BadgeEarnedEvent,
			UserID:    userID,
			BadgeID:   b.ID,
			XP:        b.XPReward,
			CreatedAt: now,
		})
	}

	for _, u := range result.ChallengesUpdated {
		if u.TaskCompleted {
			events = append(events, model.RewardEvent{
				Type:        TaskCompletedEvent,
				UserID:      userID,
				ChallengeID: u.ChallengeID,
				TaskID:      u.TaskID,
				XP:          u.XPAwarded,
				CreatedAt:   now,
			})
		}

		if u.ChallengeCompleted {
			events = append(events, model.RewardEvent{
				Type:        ChallengeCompletedEvent,
				UserID:      userID,
				ChallengeID: u.ChallengeID,
				CreatedAt:   now,
			})
		}
	}

	if result.LevelUp {
		events = append(events, model.RewardEvent{
			Type:      LevelUpEvent,
			UserID:    userID,
			Level:     result.Level,
			CreatedAt: now,
		})
	}

	return events
}

func (d *Dispatcher) publish(ctx context.Context, events []model.RewardEvent) {
	if d.publisher == nil {
		return
	}

	topic := xcontext.Configs(ctx).Gamification.RewardTopic
	for _, e := range events {
		b, err := json.Marshal(e)
		if err != nil {
			xcontext.Logger(ctx).Errorf("Cannot marshal reward event: %v", err)
			continue
		}

		err = d.publisher.Publish(ctx, topic, &pubsub.Pack{Key: []byte(e.UserID), Msg: b})
		if err != nil {
			xcontext.Logger(ctx).Warnf("Cannot publish %s event of %s: %v", e.Type, e.UserID, err)
		}
	}
}
