package repository

import (
	"context"

	"github.com/questx-lab/rewards/internal/entity"
	"github.com/questx-lab/rewards/pkg/xcontext"
)

type ActionLogRepository interface {
	Create(ctx context.Context, data *entity.ActionLog) error
	GetByUserID(ctx context.Context, userID string, limit int) ([]entity.ActionLog, error)
}

type actionLogRepository struct{}

func NewActionLogRepository() *actionLogRepository {
	return &actionLogRepository{}
}

func (r *actionLogRepository) Create(ctx context.Context, data *entity.ActionLog) error {
	return xcontext.DB(ctx).Create(data).Error
}

func (r *actionLogRepository) GetByUserID(ctx context.Context, userID string, limit int) ([]entity.ActionLog, error) {
	var result []entity.ActionLog
	tx := xcontext.DB(ctx).Where("user_id=?", userID).Order("created_at DESC")
	if limit > 0 {
		tx = tx.Limit(limit)
	}

	if err := tx.Find(&result).Error; err != nil {
		return nil, err
	}

	return result, nil
}
