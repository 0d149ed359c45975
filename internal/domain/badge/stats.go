package badge

import (
	"context"
	"strings"

	"github.com/questx-lab/rewards/internal/entity"
	"github.com/questx-lab/rewards/internal/model"
	"github.com/questx-lab/rewards/pkg/errorx"
	"github.com/questx-lab/rewards/pkg/xcontext"
)

// Stats recomputes the statistics of user from the activity counters, the xp
// ledger and the streak record.
func (m *Manager) Stats(ctx context.Context, userID string) (model.UserStats, error) {
	stats := model.UserStats{EventCategories: map[string]int{}}

	counters, err := m.counterRepo.GetByUserID(ctx, userID)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot get activity counters: %v", err)
		return stats, errorx.New(errorx.Unavailable, "Cannot get user stats")
	}

	categoryPrefix := entity.CounterEventsAttendedIn("")
	for _, c := range counters {
		switch c.Name {
		case entity.CounterEventsRegistered:
			stats.EventsRegistered = c.Value
		case entity.CounterEventsAttended:
			stats.EventsAttended = c.Value
		case entity.CounterConnections:
			stats.Connections = c.Value
		case entity.CounterPosts:
			stats.Posts = c.Value
		case entity.CounterCheckIns:
			stats.CheckIns = c.Value
		default:
			if category, ok := strings.CutPrefix(c.Name, categoryPrefix); ok {
				stats.EventCategories[category] = c.Value
			}
		}
	}

	stats.TotalPoints, err = m.ledger.TotalXP(ctx, userID)
	if err != nil {
		return stats, err
	}

	streak, err := m.streakTracker.Get(ctx, userID)
	if err != nil {
		return stats, err
	}
	stats.CurrentStreak = streak.CurrentStreak

	return stats, nil
}
