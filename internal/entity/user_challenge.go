package entity

import (
	"database/sql"
	"time"
)

type UserChallenge struct {
	Base

	UserID      string `gorm:"uniqueIndex:idx_user_challenge"`
	ChallengeID string `gorm:"uniqueIndex:idx_user_challenge;index"`

	JoinedAt       time.Time
	IsCompleted    bool
	CompletedAt    sql.NullTime
	RewardsClaimed bool
	ClaimedAt      sql.NullTime

	Tasks []UserChallengeTask `gorm:"foreignKey:UserChallengeID"`
}

// UserChallengeTask is the progress of a task. Progress never exceeds the
// target of the task and never decreases.
type UserChallengeTask struct {
	UserChallengeID string `gorm:"primaryKey"`
	TaskID          string `gorm:"primaryKey"`
	Progress        int
	Completed       bool
	CompletedAt     sql.NullTime
}

// ChallengeCategory records event categories already credited to an
// explore-category task of a user challenge.
type ChallengeCategory struct {
	UserChallengeID string `gorm:"primaryKey"`
	TaskID          string `gorm:"primaryKey"`
	Category        string `gorm:"primaryKey"`
	CreatedAt       time.Time
}

// ProgressMap returns taskID -> progress.
func (c *UserChallenge) ProgressMap() map[string]int {
	result := map[string]int{}
	for _, t := range c.Tasks {
		result[t.TaskID] = t.Progress
	}
	return result
}

// CompletedTaskIDs returns the ids of completed tasks.
func (c *UserChallenge) CompletedTaskIDs() []string {
	result := []string{}
	for _, t := range c.Tasks {
		if t.Completed {
			result = append(result, t.TaskID)
		}
	}
	return result
}
