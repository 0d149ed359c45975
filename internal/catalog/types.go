package catalog

import (
	"time"

	"github.com/questx-lab/rewards/pkg/enum"
)

type BadgeCategory string

var (
	AttendanceBadge  = enum.New(BadgeCategory("attendance"))
	NetworkingBadge  = enum.New(BadgeCategory("networking"))
	EngagementBadge  = enum.New(BadgeCategory("engagement"))
	AchievementBadge = enum.New(BadgeCategory("achievement"))
	SpecialBadge     = enum.New(BadgeCategory("special"))
)

type Rarity string

var (
	Common    = enum.New(Rarity("common"))
	Uncommon  = enum.New(Rarity("uncommon"))
	Rare      = enum.New(Rarity("rare"))
	Epic      = enum.New(Rarity("epic"))
	Legendary = enum.New(Rarity("legendary"))
)

type CriteriaType string

var (
	EventAttendanceCriteria = enum.New(CriteriaType("event_attendance"))
	ConnectionsCriteria     = enum.New(CriteriaType("connections"))
	PostsCriteria           = enum.New(CriteriaType("posts"))
	CheckInsCriteria        = enum.New(CriteriaType("check_ins"))
	StreakCriteria          = enum.New(CriteriaType("streak"))
	PointsCriteria          = enum.New(CriteriaType("points"))

	// SpecialCriteria badges are never evaluated automatically, they are only
	// given through the manual award path.
	SpecialCriteria = enum.New(CriteriaType("special"))
)

type ChallengeType string

var (
	DailyChallenge   = enum.New(ChallengeType("daily"))
	WeeklyChallenge  = enum.New(ChallengeType("weekly"))
	EventChallenge   = enum.New(ChallengeType("event"))
	SpecialChallenge = enum.New(ChallengeType("special"))
)

type TaskType string

var (
	AttendEventTask     = enum.New(TaskType("attend_event"))
	MakeConnectionsTask = enum.New(TaskType("make_connections"))
	PostContentTask     = enum.New(TaskType("post_content"))
	CheckInTask         = enum.New(TaskType("check_in"))
	ExploreCategoryTask = enum.New(TaskType("explore_category"))
	FeedbackTask        = enum.New(TaskType("feedback"))
)

type BadgeCriteria struct {
	Type          CriteriaType `yaml:"type" validate:"required"`
	Threshold     int          `yaml:"threshold" validate:"gt=0"`
	EventCategory string       `yaml:"event_category,omitempty"`
}

type BadgeDefinition struct {
	ID          string        `yaml:"id" validate:"required"`
	Name        string        `yaml:"name" validate:"required"`
	Description string        `yaml:"description"`
	Category    BadgeCategory `yaml:"category" validate:"required"`
	Rarity      Rarity        `yaml:"rarity" validate:"required"`
	XPReward    int           `yaml:"xp_reward" validate:"gte=0"`
	Criteria    BadgeCriteria `yaml:"criteria"`
	IsHidden    bool          `yaml:"is_hidden"`
}

type ChallengeTask struct {
	ID            string   `yaml:"id" validate:"required"`
	Description   string   `yaml:"description"`
	Type          TaskType `yaml:"type" validate:"required"`
	Target        int      `yaml:"target" validate:"gt=0"`
	XPReward      int      `yaml:"xp_reward" validate:"gte=0"`
	EventCategory string   `yaml:"event_category,omitempty"`
}

type ChallengeRewards struct {
	XP      int    `yaml:"xp" validate:"gte=0"`
	BadgeID string `yaml:"badge_id,omitempty"`
	Title   string `yaml:"title,omitempty"`
}

type ChallengeDefinition struct {
	ID          string           `yaml:"id" validate:"required"`
	Name        string           `yaml:"name" validate:"required"`
	Description string           `yaml:"description"`
	Type        ChallengeType    `yaml:"type" validate:"required"`
	Category    string           `yaml:"category"`
	StartDate   time.Time        `yaml:"start_date"`
	EndDate     time.Time        `yaml:"end_date"`
	Tasks       []ChallengeTask  `yaml:"tasks" validate:"required,min=1,dive"`
	Rewards     ChallengeRewards `yaml:"rewards"`
	IsActive    bool             `yaml:"is_active"`
}

// Task returns the task with the given id.
func (c ChallengeDefinition) Task(taskID string) (ChallengeTask, bool) {
	for _, t := range c.Tasks {
		if t.ID == taskID {
			return t, true
		}
	}

	return ChallengeTask{}, false
}

// IsOpenAt returns true if the challenge is active and t is in
// [StartDate, EndDate).
func (c ChallengeDefinition) IsOpenAt(t time.Time) bool {
	return c.IsActive && !t.Before(c.StartDate) && t.Before(c.EndDate)
}

func (c ChallengeDefinition) clone() ChallengeDefinition {
	c.Tasks = append([]ChallengeTask(nil), c.Tasks...)
	return c
}
