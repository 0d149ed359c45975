package xp

import (
	"context"
	"errors"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/questx-lab/rewards/internal/common"
	"github.com/questx-lab/rewards/internal/entity"
	"github.com/questx-lab/rewards/internal/model"
	"github.com/questx-lab/rewards/internal/repository"
	"github.com/questx-lab/rewards/pkg/errorx"
	"github.com/questx-lab/rewards/pkg/idutil"
	"github.com/questx-lab/rewards/pkg/xcontext"
	"gorm.io/gorm"
)

const defaultLevelXPStep = 100

type Ledger struct {
	ledgerRepo repository.XPLedgerRepository
}

func NewLedger(ledgerRepo repository.XPLedgerRepository) *Ledger {
	return &Ledger{ledgerRepo: ledgerRepo}
}

// Level returns the level of a total xp. Level n needs step*(n-1)^2 xp.
func Level(totalXP, step int) int {
	if step <= 0 {
		step = defaultLevelXPStep
	}

	level := 1
	for step*level*level <= totalXP {
		level++
	}

	return level
}

// Grant appends a transaction of amount to the user's history and adds it to
// the running total. Both writes belong to the same database transaction, if
// ctx already carries one, the grant joins it.
func (l *Ledger) Grant(
	ctx context.Context, userID string, amount int, reason string, category entity.XPCategory,
) (*model.XPGrant, error) {
	if amount < 0 {
		return nil, errorx.New(errorx.BadRequest, "Xp amount must not be negative")
	}

	if amount == 0 {
		return &model.XPGrant{}, nil
	}

	if xcontext.InTransaction(ctx) {
		return l.grant(ctx, userID, amount, reason, category)
	}

	var result *model.XPGrant
	err := backoff.RetryNotify(
		func() error {
			var err error
			result, err = l.grant(ctx, userID, amount, reason, category)
			if err != nil && errorx.CodeOf(err) != errorx.Unavailable {
				return backoff.Permanent(err)
			}

			return err
		},
		backoff.WithContext(
			backoff.WithMaxRetries(newBackOff(), uint64(xcontext.Configs(ctx).Gamification.MaxRetries)),
			ctx,
		),
		func(err error, d time.Duration) {
			xcontext.Logger(ctx).Warnf("Retry granting xp to %s after %v: %v", userID, d, err)
		},
	)
	if err != nil {
		return nil, err
	}

	return result, nil
}

func (l *Ledger) grant(
	ctx context.Context, userID string, amount int, reason string, category entity.XPCategory,
) (*model.XPGrant, error) {
	ctx = xcontext.WithDBTransaction(ctx)
	defer xcontext.WithRollbackDBTransaction(ctx)

	if err := l.ledgerRepo.Upsert(ctx, userID); err != nil {
		xcontext.Logger(ctx).Errorf("Cannot upsert xp ledger: %v", err)
		return nil, errorx.New(errorx.Unavailable, "Cannot grant xp")
	}

	err := l.ledgerRepo.CreateTransaction(ctx, &entity.XPTransaction{
		ID:        idutil.NewSnowflakeID(),
		UserID:    userID,
		Amount:    amount,
		Reason:    reason,
		Category:  category,
		CreatedAt: time.Now(),
	})
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot create xp transaction: %v", err)
		return nil, errorx.New(errorx.Unavailable, "Cannot grant xp")
	}

	if err := l.ledgerRepo.IncreaseTotal(ctx, userID, amount); err != nil {
		xcontext.Logger(ctx).Errorf("Cannot increase total xp: %v", err)
		return nil, errorx.New(errorx.Unavailable, "Cannot grant xp")
	}

	ledger, err := l.ledgerRepo.Get(ctx, userID)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot get xp ledger: %v", err)
		return nil, errorx.New(errorx.Unavailable, "Cannot grant xp")
	}

	level := Level(ledger.TotalXP, xcontext.Configs(ctx).Gamification.LevelXPStep)
	levelUp, err := l.ledgerRepo.RaiseLevel(ctx, userID, level)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot raise level: %v", err)
		return nil, errorx.New(errorx.Unavailable, "Cannot grant xp")
	}

	if err := xcontext.WithCommitDBTransaction(ctx); err != nil {
		xcontext.Logger(ctx).Errorf("Cannot commit xp grant: %v", err)
		return nil, errorx.New(errorx.Unavailable, "Cannot grant xp")
	}

	common.PromCounters[common.XPAwardedTotal].WithLabelValues(string(category)).Add(float64(amount))

	return &model.XPGrant{
		Amount:  amount,
		TotalXP: ledger.TotalXP,
		Level:   max(level, ledger.Level),
		LevelUp: levelUp,
	}, nil
}

// Get returns the ledger of user with its full history. A user without any
// grant has an empty ledger at level 1.
func (l *Ledger) Get(ctx context.Context, userID string) (*model.XPLedger, error) {
	result := &model.XPLedger{UserID: userID, Level: 1, XPHistory: []model.XPTransaction{}}

	ledger, err := l.ledgerRepo.Get(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return result, nil
		}

		xcontext.Logger(ctx).Errorf("Cannot get xp ledger: %v", err)
		return nil, errorx.New(errorx.Unavailable, "Cannot get xp ledger")
	}

	txs, err := l.ledgerRepo.GetTransactions(ctx, userID)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot get xp transactions: %v", err)
		return nil, errorx.New(errorx.Unavailable, "Cannot get xp ledger")
	}

	result.TotalXP = ledger.TotalXP
	result.Level = ledger.Level
	for _, tx := range txs {
		result.XPHistory = append(result.XPHistory, model.ConvertXPTransaction(tx))
	}

	return result, nil
}

// TotalXP returns the running total of user, zero if the user has no ledger.
func (l *Ledger) TotalXP(ctx context.Context, userID string) (int, error) {
	ledger, err := l.ledgerRepo.Get(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return 0, nil
		}

		xcontext.Logger(ctx).Errorf("Cannot get xp ledger: %v", err)
		return 0, errorx.New(errorx.Unavailable, "Cannot get xp ledger")
	}

	return ledger.TotalXP, nil
}

func newBackOff() backoff.BackOff {
	b := backoff.NewExponentialBackOff()
	b.InitialInterval = 10 * time.Millisecond
	b.MaxInterval = 200 * time.Millisecond
	return b
}
