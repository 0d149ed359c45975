package model

import "time"

type Badge struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Category    string `json:"category"`
	Rarity      string `json:"rarity"`
	XPReward    int    `json:"xp_reward"`
	IsHidden    bool   `json:"is_hidden"`
}

type UserBadge struct {
	Badge    Badge     `json:"badge"`
	EarnedAt time.Time `json:"earned_at"`
	IsNew    bool      `json:"is_new"`
	EventID  string    `json:"event_id,omitempty"`
}

type BadgeProgress struct {
	Badge    Badge `json:"badge"`
	Earned   bool  `json:"earned"`
	Current  int   `json:"current"`
	Target   int   `json:"target"`
	Progress int   `json:"progress"`
}

// UserStats is the projection of a user's activity used to evaluate badges.
type UserStats struct {
	EventsRegistered int            `json:"events_registered"`
	EventsAttended   int            `json:"events_attended"`
	Connections      int            `json:"connections"`
	Posts            int            `json:"posts"`
	CheckIns         int            `json:"check_ins"`
	CurrentStreak    int            `json:"current_streak"`
	TotalPoints      int            `json:"total_points"`
	EventCategories  map[string]int `json:"event_categories"`
}
