package testutil

import (
	"context"
	"time"

	"github.com/questx-lab/rewards/internal/entity"
	"github.com/questx-lab/rewards/pkg/xcontext"
)

const (
	User1 = "user1"
	User2 = "user2"
	User3 = "user3"
)

// InsertActivityCounters stores counters of user directly, bypassing the
// atomic increments.
func InsertActivityCounters(ctx context.Context, userID string, counters map[string]int) {
	for name, value := range counters {
		err := xcontext.DB(ctx).Create(&entity.ActivityCounter{
			UserID:    userID,
			Name:      name,
			Value:     value,
			UpdatedAt: time.Now(),
		}).Error
		if err != nil {
			panic(err)
		}
	}
}

// InsertStreak stores a streak record of user.
func InsertStreak(ctx context.Context, userID string, current, longest int, lastActivity time.Time) {
	err := xcontext.DB(ctx).Create(&entity.Streak{
		UserID:           userID,
		CurrentStreak:    current,
		LongestStreak:    longest,
		LastActivityDate: lastActivity,
	}).Error
	if err != nil {
		panic(err)
	}
}
