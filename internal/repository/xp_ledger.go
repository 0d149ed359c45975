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

type XPLedgerRepository interface {
	CreateTransaction(ctx context.Context, data *entity.XPTransaction) error
	GetTransactions(ctx context.Context, userID string) ([]entity.XPTransaction, error)
	SumTransactions(ctx context.Context, userID string) (int, error)
	Get(ctx context.Context, userID string) (*entity.XPLedger, error)
	Upsert(ctx context.Context, userID string) error
	IncreaseTotal(ctx context.Context, userID string, amount int) error
	RaiseLevel(ctx context.Context, userID string, level int) (bool, error)
}

type xpLedgerRepository struct{}

func NewXPLedgerRepository() *xpLedgerRepository {
	return &xpLedgerRepository{}
}

func (r *xpLedgerRepository) CreateTransaction(ctx context.Context, data *entity.XPTransaction) error {
	return xcontext.DB(ctx).Create(data).Error
}

func (r *xpLedgerRepository) GetTransactions(ctx context.Context, userID string) ([]entity.XPTransaction, error) {
	var result []entity.XPTransaction
	err := xcontext.DB(ctx).
		Where("user_id=?", userID).
		Order("id ASC").
		Find(&result).Error
	if err != nil {
		return nil, err
	}

	return result, nil
}

func (r *xpLedgerRepository) SumTransactions(ctx context.Context, userID string) (int, error) {
	var result int
	err := xcontext.DB(ctx).
		Model(&entity.XPTransaction{}).
		Select("COALESCE(SUM(amount), 0)").
		Where("user_id=?", userID).
		Scan(&result).Error
	if err != nil {
		return 0, err
	}

	return result, nil
}

func (r *xpLedgerRepository) Get(ctx context.Context, userID string) (*entity.XPLedger, error) {
	var result entity.XPLedger
	if err := xcontext.DB(ctx).Where("user_id=?", userID).Take(&result).Error; err != nil {
		return nil, err
	}

	return &result, nil
}

// Upsert creates an empty ledger of the user if it does not exist yet.
func (r *xpLedgerRepository) Upsert(ctx context.Context, userID string) error {
	return xcontext.DB(ctx).
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(&entity.XPLedger{
			UserID:    userID,
			TotalXP:   0,
			Level:     1,
			UpdatedAt: time.Now(),
		}).Error
}

func (r *xpLedgerRepository) IncreaseTotal(ctx context.Context, userID string, amount int) error {
	tx := xcontext.DB(ctx).
		Model(&entity.XPLedger{}).
		Where("user_id=?", userID).
		Updates(map[string]any{
			"total_xp":   gorm.Expr("total_xp+?", amount),
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

// RaiseLevel sets the level of user if it is higher than the current one. It
// returns true if the level changed.
func (r *xpLedgerRepository) RaiseLevel(ctx context.Context, userID string, level int) (bool, error) {
	tx := xcontext.DB(ctx).
		Model(&entity.XPLedger{}).
		Where("user_id=? AND level<?", userID, level).
		Update("level", level)

	if tx.Error != nil {
		return false, tx.Error
	}

	return tx.RowsAffected == 1, nil
}
