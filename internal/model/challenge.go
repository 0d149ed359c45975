package model

import "time"

type ChallengeTask struct {
	ID            string `json:"id"`
	Description   string `json:"description"`
	Type          string `json:"type"`
	Target        int    `json:"target"`
	XPReward      int    `json:"xp_reward"`
	EventCategory string `json:"event_category,omitempty"`
}

type ChallengeRewards struct {
	XP      int    `json:"xp"`
	BadgeID string `json:"badge_id,omitempty"`
	Title   string `json:"title,omitempty"`
}

type Challenge struct {
	ID          string           `json:"id"`
	Name        string           `json:"name"`
	Description string           `json:"description"`
	Type        string           `json:"type"`
	Category    string           `json:"category"`
	StartDate   time.Time        `json:"start_date"`
	EndDate     time.Time        `json:"end_date"`
	Tasks       []ChallengeTask  `json:"tasks"`
	Rewards     ChallengeRewards `json:"rewards"`
}

type UserChallenge struct {
	ID             string         `json:"id"`
	Challenge      Challenge      `json:"challenge"`
	JoinedAt       time.Time      `json:"joined_at"`
	Progress       map[string]int `json:"progress"`
	CompletedTasks []string       `json:"completed_tasks"`
	IsCompleted    bool           `json:"is_completed"`
	CompletedAt    *time.Time     `json:"completed_at,omitempty"`
	RewardsClaimed bool           `json:"rewards_claimed"`
}

// ChallengeUpdate is the outcome of advancing a task of a joined challenge.
type ChallengeUpdate struct {
	ChallengeID        string `json:"challenge_id"`
	TaskID             string `json:"task_id"`
	Progress           int    `json:"progress"`
	Target             int    `json:"target"`
	TaskCompleted      bool   `json:"task_completed"`
	ChallengeCompleted bool   `json:"challenge_completed"`
	XPAwarded          int    `json:"xp_awarded"`
}

type ClaimRewardsResult struct {
	XPAwarded int    `json:"xp_awarded"`
	Badge     *Badge `json:"badge,omitempty"`
	Title     string `json:"title,omitempty"`
}

type LeaderboardEntry struct {
	UserID         string `json:"user_id"`
	CompletedTasks int    `json:"completed_tasks"`
	ProgressPct    int    `json:"progress_pct"`
}
