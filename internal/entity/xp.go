package entity

import (
	"time"

	"github.com/questx-lab/rewards/pkg/enum"
)

type XPCategory string

var (
	XPCategoryAction    = enum.New(XPCategory("action"))
	XPCategoryBadge     = enum.New(XPCategory("badge"))
	XPCategoryChallenge = enum.New(XPCategory("challenge"))
)

// XPTransaction is append-only.
type XPTransaction struct {
	ID        int64  `gorm:"primaryKey;autoIncrement:false"`
	UserID    string `gorm:"index"`
	Amount    int
	Reason    string
	Category  XPCategory
	CreatedAt time.Time
}

// XPLedger holds the running total of a user. TotalXP always equals the sum
// of the user's XPTransaction amounts.
type XPLedger struct {
	UserID    string `gorm:"primaryKey"`
	TotalXP   int
	Level     int
	UpdatedAt time.Time
}
