package migration

import (
	"context"

	"github.com/questx-lab/rewards/internal/entity"
	"github.com/questx-lab/rewards/pkg/xcontext"
)

// AutoMigrate creates or updates all tables to the latest entities.
func AutoMigrate(ctx context.Context) error {
	return xcontext.DB(ctx).AutoMigrate(
		&entity.UserBadge{},
		&entity.UserChallenge{},
		&entity.UserChallengeTask{},
		&entity.ChallengeCategory{},
		&entity.XPTransaction{},
		&entity.XPLedger{},
		&entity.Streak{},
		&entity.ActivityCounter{},
		&entity.ActionLog{},
	)
}
