package model

import "time"

type XPTransaction struct {
	ID        int64     `json:"id"`
	Amount    int       `json:"amount"`
	Reason    string    `json:"reason"`
	Category  string    `json:"category"`
	CreatedAt time.Time `json:"created_at"`
}

type XPLedger struct {
	UserID    string          `json:"user_id"`
	TotalXP   int             `json:"total_xp"`
	Level     int             `json:"level"`
	XPHistory []XPTransaction `json:"xp_history,omitempty"`
}

// XPGrant is the outcome of granting XP to a user.
type XPGrant struct {
	Amount  int  `json:"amount"`
	TotalXP int  `json:"total_xp"`
	Level   int  `json:"level"`
	LevelUp bool `json:"level_up"`
}

type Streak struct {
	UserID           string    `json:"user_id"`
	CurrentStreak    int       `json:"current_streak"`
	LongestStreak    int       `json:"longest_streak"`
	LastActivityDate time.Time `json:"last_activity_date"`
	Changed          bool      `json:"changed"`
	ClockAnomaly     bool      `json:"clock_anomaly,omitempty"`
}

// RewardEvent is published for the notification layer.
type RewardEvent struct {
	Type        string    `json:"type"`
	UserID      string    `json:"user_id"`
	BadgeID     string    `json:"badge_id,omitempty"`
	ChallengeID string    `json:"challenge_id,omitempty"`
	TaskID      string    `json:"task_id,omitempty"`
	Level       int       `json:"level,omitempty"`
	XP          int       `json:"xp,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
}
