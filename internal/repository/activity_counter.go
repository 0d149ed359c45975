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

type ActivityCounterRepository interface {
	Increase(ctx context.Context, userID, name string, delta int) error
	GetByUserID(ctx context.Context, userID string) ([]entity.ActivityCounter, error)
}

type activityCounterRepository struct{}

func NewActivityCounterRepository() *activityCounterRepository {
	return &activityCounterRepository{}
}

func (r *activityCounterRepository) Increase(ctx context.Context, userID, name string, delta int) error {
	err := xcontext.DB(ctx).
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(&entity.ActivityCounter{UserID: userID, Name: name, UpdatedAt: time.Now()}).Error
	if err != nil {
		return err
	}

	tx := xcontext.DB(ctx).
		Model(&entity.ActivityCounter{}).
		Where("user_id=? AND name=?", userID, name).
		Updates(map[string]any{
			"value":      gorm.Expr("value+?", delta),
			"updated_at": time.Now(),
		})

	if tx.Error != nil {
		return tx.Error
	}

	if tx.RowsAffected > 1 {
		return errors.New("the number of affected rows is invalid")
	}

	if tx.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}

	return nil
}

func (r *activityCounterRepository) GetByUserID(ctx context.Context, userID string) ([]entity.ActivityCounter, error) {
	var result []entity.ActivityCounter
	if err := xcontext.DB(ctx).Where("user_id=?", userID).Find(&result).Error; err != nil {
		return nil, err
	}

	return result, nil
}
