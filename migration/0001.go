package migration

import (
	"context"
	"time"

	"github.com/questx-lab/rewards/pkg/xcontext"
)

const actionLogUserCreatedIndex = "idx_action_log_user_created"

type ActionLog0001 struct {
	UserID    string    `gorm:"index:idx_action_log_user_created,priority:1"`
	CreatedAt time.Time `gorm:"index:idx_action_log_user_created,priority:2"`
}

func (ActionLog0001) TableName() string {
	return "action_logs"
}

// migrate0001 speeds up listing the recent actions of a user.
func migrate0001(ctx context.Context) error {
	migrator := xcontext.DB(ctx).Migrator()
	if migrator.HasIndex(&ActionLog0001{}, actionLogUserCreatedIndex) {
		return nil
	}

	return migrator.CreateIndex(&ActionLog0001{}, actionLogUserCreatedIndex)
}
