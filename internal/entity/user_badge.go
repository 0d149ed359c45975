package entity

import (
	"database/sql"
	"time"
)

// UserBadge is unique on (UserID, BadgeID). It is never updated except for
// the IsNew flag and never deleted.
type UserBadge struct {
	UserID   string `gorm:"primaryKey"`
	BadgeID  string `gorm:"primaryKey"`
	ID       string `gorm:"uniqueIndex"`
	EarnedAt time.Time
	IsNew    bool
	EventID  sql.NullString
}
