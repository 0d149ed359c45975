package repository

import (
	"context"
	"time"

	"github.com/questx-lab/rewards/internal/entity"
	"github.com/questx-lab/rewards/pkg/xcontext"
	"gorm.io/gorm/clause"
)

type StreakRepository interface {
	Get(ctx context.Context, userID string) (*entity.Streak, error)
	Create(ctx context.Context, data *entity.Streak) (bool, error)
	UpdateIfVersion(ctx context.Context, data *entity.Streak, version int) (bool, error)
}

type streakRepository struct{}

func NewStreakRepository() *streakRepository {
	return &streakRepository{}
}

func (r *streakRepository) Get(ctx context.Context, userID string) (*entity.Streak, error) {
	var result entity.Streak
	if err := xcontext.DB(ctx).Where("user_id=?", userID).Take(&result).Error; err != nil {
		return nil, err
	}

	return &result, nil
}

// Create inserts the first streak record of user. It returns false if another
// writer created it first.
func (r *streakRepository) Create(ctx context.Context, data *entity.Streak) (bool, error) {
	tx := xcontext.DB(ctx).
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(data)
	if tx.Error != nil {
		return false, tx.Error
	}

	return tx.RowsAffected == 1, nil
}

// UpdateIfVersion writes the streak only if its stored version still equals
// version, the stored version is increased by one. It returns false on a
// version conflict.
func (r *streakRepository) UpdateIfVersion(ctx context.Context, data *entity.Streak, version int) (bool, error) {
	tx := xcontext.DB(ctx).
		Model(&entity.Streak{}).
		Where("user_id=? AND version=?", data.UserID, version).
		Updates(map[string]any{
			"current_streak":     data.CurrentStreak,
			"longest_streak":     data.LongestStreak,
			"last_activity_date": data.LastActivityDate,
			"version":            version + 1,
			"updated_at":         time.Now(),
		})
	if tx.Error != nil {
		return false, tx.Error
	}

	return tx.RowsAffected == 1, nil
}
