package model

type ActionMetadata struct {
	EventID       string `json:"event_id,omitempty" mapstructure:"event_id" structs:"event_id,omitempty"`
	EventCategory string `json:"event_category,omitempty" mapstructure:"event_category" structs:"event_category,omitempty"`
	SessionID     string `json:"session_id,omitempty" mapstructure:"session_id" structs:"session_id,omitempty"`
	TargetUserID  string `json:"target_user_id,omitempty" mapstructure:"target_user_id" structs:"target_user_id,omitempty"`
	PostID        string `json:"post_id,omitempty" mapstructure:"post_id" structs:"post_id,omitempty"`
}

type ActionRequest struct {
	ActionType string         `json:"action_type" mapstructure:"action_type"`
	Metadata   ActionMetadata `json:"metadata" mapstructure:"metadata"`
}

// StepFailure describes a sub-step of an action which did not succeed.
type StepFailure struct {
	Step    string `json:"step"`
	Code    string `json:"code"`
	Message string `json:"message"`
}

type ActionResult struct {
	Success           bool              `json:"success"`
	XPAwarded         int               `json:"xp_awarded"`
	BadgesEarned      []Badge           `json:"badges_earned"`
	ChallengesUpdated []ChallengeUpdate `json:"challenges_updated"`
	Streak            *Streak           `json:"streak,omitempty"`
	Level             int               `json:"level,omitempty"`
	LevelUp           bool              `json:"level_up,omitempty"`
	Failures          []StepFailure     `json:"failures,omitempty"`
	Warnings          []StepFailure     `json:"warnings,omitempty"`
}
