package repository

import (
	"context"
	"errors"
	"time"

	"github.com/questx-lab/rewards/internal/entity"
	"github.com/questx-lab/rewards/pkg/xcontext"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type UserChallengeRepository interface {
	Create(ctx context.Context, data *entity.UserChallenge) (bool, error)
	Get(ctx context.Context, userID, challengeID string) (*entity.UserChallenge, error)
	GetByUserID(ctx context.Context, userID string) ([]entity.UserChallenge, error)
	GetByChallengeID(ctx context.Context, challengeID string) ([]entity.UserChallenge, error)
	CreateTasks(ctx context.Context, userChallengeID string, taskIDs []string) error
	GetTasks(ctx context.Context, userChallengeID string) ([]entity.UserChallengeTask, error)
	IncreaseTaskProgress(ctx context.Context, userChallengeID, taskID string, increment, target int) error
	CompleteTask(ctx context.Context, userChallengeID, taskID string, target int, now time.Time) (bool, error)
	Complete(ctx context.Context, userChallengeID string, now time.Time) (bool, error)
	ClaimRewards(ctx context.Context, userChallengeID string, now time.Time) (bool, error)
	AddCategory(ctx context.Context, userChallengeID, taskID, category string) (bool, error)
}

type userChallengeRepository struct{}

func NewUserChallengeRepository() *userChallengeRepository {
	return &userChallengeRepository{}
}

// Create inserts the user challenge if the user has not joined it yet. It
// returns true only if a new row was inserted.
func (r *userChallengeRepository) Create(ctx context.Context, data *entity.UserChallenge) (bool, error) {
	tx := xcontext.DB(ctx).
		Omit(clause.Associations).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "user_id"}, {Name: "challenge_id"}},
			DoNothing: true,
		}).
		Create(data)
	if tx.Error != nil {
		return false, tx.Error
	}

	return tx.RowsAffected == 1, nil
}

func (r *userChallengeRepository) Get(ctx context.Context, userID, challengeID string) (*entity.UserChallenge, error) {
	var result entity.UserChallenge
	err := xcontext.DB(ctx).
		Preload("Tasks").
		Where("user_id=? AND challenge_id=?", userID, challengeID).
		Take(&result).Error
	if err != nil {
		return nil, err
	}

	return &result, nil
}

func (r *userChallengeRepository) GetByUserID(ctx context.Context, userID string) ([]entity.UserChallenge, error) {
	var result []entity.UserChallenge
	err := xcontext.DB(ctx).
		Preload("Tasks").
		Where("user_id=?", userID).
		Order("joined_at ASC").
		Find(&result).Error
	if err != nil {
		return nil, err
	}

	return result, nil
}

func (r *userChallengeRepository) GetByChallengeID(ctx context.Context, challengeID string) ([]entity.UserChallenge, error) {
	var result []entity.UserChallenge
	err := xcontext.DB(ctx).
		Preload("Tasks").
		Where("challenge_id=?", challengeID).
		Order("joined_at ASC").
		Find(&result).Error
	if err != nil {
		return nil, err
	}

	return result, nil
}

// CreateTasks creates zero-progress rows of tasks which do not exist yet.
func (r *userChallengeRepository) CreateTasks(ctx context.Context, userChallengeID string, taskIDs []string) error {
	if len(taskIDs) == 0 {
		return nil
	}

	tasks := make([]entity.UserChallengeTask, 0, len(taskIDs))
	for _, id := range taskIDs {
		tasks = append(tasks, entity.UserChallengeTask{
			UserChallengeID: userChallengeID,
			TaskID:          id,
		})
	}

	return xcontext.DB(ctx).
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(&tasks).Error
}

func (r *userChallengeRepository) GetTasks(ctx context.Context, userChallengeID string) ([]entity.UserChallengeTask, error) {
	var result []entity.UserChallengeTask
	err := xcontext.DB(ctx).
		Where("user_challenge_id=?", userChallengeID).
		Find(&result).Error
	if err != nil {
		return nil, err
	}

	return result, nil
}

// IncreaseTaskProgress increases the progress of task, the result is capped
// at target. The task row must exist, see CreateTasks.
func (r *userChallengeRepository) IncreaseTaskProgress(
	ctx context.Context, userChallengeID, taskID string, increment, target int,
) error {
	tx := xcontext.DB(ctx).
		Model(&entity.UserChallengeTask{}).
		Where("user_challenge_id=? AND task_id=?", userChallengeID, taskID).
		Update("progress", gorm.Expr(
			"CASE WHEN progress+? > ? THEN ? ELSE progress+? END",
			increment, target, target, increment,
		))

	if tx.Error != nil {
		return tx.Error
	}

	// A capped row is not counted as affected by some drivers, so zero is not
	// an error here.
	if tx.RowsAffected > 1 {
		return errors.New("the number of affected rows is invalid")
	}

	return nil
}

// CompleteTask marks the task as completed if its progress reached target. It
// returns true only for the call which flipped the flag.
func (r *userChallengeRepository) CompleteTask(
	ctx context.Context, userChallengeID, taskID string, target int, now time.Time,
) (bool, error) {
	tx := xcontext.DB(ctx).
		Model(&entity.UserChallengeTask{}).
		Where("user_challenge_id=? AND task_id=? AND completed=? AND progress>=?",
			userChallengeID, taskID, false, target).
		Updates(map[string]any{
			"completed":    true,
			"completed_at": now,
		})
	if tx.Error != nil {
		return false, tx.Error
	}

	return tx.RowsAffected == 1, nil
}

// Complete marks the user challenge as completed. It returns true only for the
// call which flipped the flag.
func (r *userChallengeRepository) Complete(ctx context.Context, userChallengeID string, now time.Time) (bool, error) {
	tx := xcontext.DB(ctx).
		Model(&entity.UserChallenge{}).
		Where("id=? AND is_completed=?", userChallengeID, false).
		Updates(map[string]any{
			"is_completed": true,
			"completed_at": now,
			"updated_at":   now,
		})
	if tx.Error != nil {
		return false, tx.Error
	}

	return tx.RowsAffected == 1, nil
}

// ClaimRewards marks the rewards of a completed user challenge as claimed. It
// returns true only for the call which flipped the flag.
func (r *userChallengeRepository) ClaimRewards(ctx context.Context, userChallengeID string, now time.Time) (bool, error) {
	tx := xcontext.DB(ctx).
		Model(&entity.UserChallenge{}).
		Where("id=? AND is_completed=? AND rewards_claimed=?", userChallengeID, true, false).
		Updates(map[string]any{
			"rewards_claimed": true,
			"claimed_at":      now,
			"updated_at":      now,
		})
	if tx.Error != nil {
		return false, tx.Error
	}

	return tx.RowsAffected == 1, nil
}

// AddCategory records category as explored by the task. It returns false if
// the category was already recorded.
func (r *userChallengeRepository) AddCategory(ctx context.Context, userChallengeID, taskID, category string) (bool, error) {
	tx := xcontext.DB(ctx).
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(&entity.ChallengeCategory{
			UserChallengeID: userChallengeID,
			TaskID:          taskID,
			Category:        category,
			CreatedAt:       time.Now(),
		})
	if tx.Error != nil {
		return false, tx.Error
	}

	return tx.RowsAffected == 1, nil
}
