package repository

import (
	"context"

	"github.com/questx-lab/rewards/internal/entity"
	"github.com/questx-lab/rewards/pkg/xcontext"
	"gorm.io/gorm/clause"
)

type UserBadgeRepository interface {
	Create(ctx context.Context, data *entity.UserBadge) (bool, error)
	Get(ctx context.Context, userID, badgeID string) (*entity.UserBadge, error)
	GetByUserID(ctx context.Context, userID string) ([]entity.UserBadge, error)
	MarkSeen(ctx context.Context, userID string) error
}

type userBadgeRepository struct{}

func NewUserBadgeRepository() *userBadgeRepository {
	return &userBadgeRepository{}
}

// Create inserts the badge if the user does not own it yet. It returns true
// only if a new row was inserted.
func (r *userBadgeRepository) Create(ctx context.Context, data *entity.UserBadge) (bool, error) {
	tx := xcontext.DB(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "user_id"}, {Name: "badge_id"}},
			DoNothing: true,
		}).
		Create(data)
	if tx.Error != nil {
		return false, tx.Error
	}

	return tx.RowsAffected == 1, nil
}

func (r *userBadgeRepository) Get(ctx context.Context, userID, badgeID string) (*entity.UserBadge, error) {
	var result entity.UserBadge
	err := xcontext.DB(ctx).
		Where("user_id=? AND badge_id=?", userID, badgeID).
		Take(&result).Error
	if err != nil {
		return nil, err
	}

	return &result, nil
}

func (r *userBadgeRepository) GetByUserID(ctx context.Context, userID string) ([]entity.UserBadge, error) {
	var result []entity.UserBadge
	err := xcontext.DB(ctx).
		Where("user_id=?", userID).
		Order("earned_at ASC").
		Find(&result).Error
	if err != nil {
		return nil, err
	}

	return result, nil
}

func (r *userBadgeRepository) MarkSeen(ctx context.Context, userID string) error {
	return xcontext.DB(ctx).
		Model(&entity.UserBadge{}).
		Where("user_id=? AND is_new=?", userID, true).
		Update("is_new", false).Error
}
