package entity

import "time"

type Streak struct {
	UserID           string `gorm:"primaryKey"`
	CurrentStreak    int
	LongestStreak    int
	LastActivityDate time.Time

	// Version is increased on every update, it guards read-modify-write
	// sequences.
	Version   int
	CreatedAt time.Time
	UpdatedAt time.Time
}
