package entity

import (
	"fmt"
	"time"

	"github.com/questx-lab/rewards/pkg/enum"
	"gorm.io/datatypes"
)

type ActionType string

var (
	EventRegistrationAction = enum.New(ActionType("event_registration"))
	EventCheckInAction      = enum.New(ActionType("event_check_in"))
	SessionAttendedAction   = enum.New(ActionType("session_attended"))
	PostCreatedAction       = enum.New(ActionType("post_created"))
	ConnectionMadeAction    = enum.New(ActionType("connection_made"))
	FeedbackSubmittedAction = enum.New(ActionType("feedback_submitted"))
	DailyLoginAction        = enum.New(ActionType("daily_login"))
)

const (
	CounterEventsRegistered = "events_registered"
	CounterEventsAttended   = "events_attended"
	CounterSessionsAttended = "sessions_attended"
	CounterCheckIns         = "check_ins"
	CounterPosts            = "posts"
	CounterConnections      = "connections"
	CounterFeedback         = "feedback"
	CounterLogins           = "logins"
)

// CounterEventsAttendedIn is the counter of attended events of a category.
func CounterEventsAttendedIn(category string) string {
	return fmt.Sprintf("%s:%s", CounterEventsAttended, category)
}

// ActivityCounter is a raw per-user counter backing the user statistics.
type ActivityCounter struct {
	UserID    string `gorm:"primaryKey"`
	Name      string `gorm:"primaryKey"`
	Value     int
	UpdatedAt time.Time
}

// ActionLog is an audit row of a processed action.
type ActionLog struct {
	Base

	UserID     string `gorm:"index"`
	ActionType ActionType
	Metadata   datatypes.JSONMap
	Success    bool
	XPAwarded  int
}
