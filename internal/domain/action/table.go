package action

import (
	"fmt"

	"github.com/questx-lab/rewards/internal/catalog"
	"github.com/questx-lab/rewards/internal/entity"
	"github.com/questx-lab/rewards/internal/model"
)

var actionXP = map[entity.ActionType]int{
	entity.EventRegistrationAction: 10,
	entity.EventCheckInAction:      25,
	entity.SessionAttendedAction:   15,
	entity.PostCreatedAction:       5,
	entity.ConnectionMadeAction:    10,
	entity.FeedbackSubmittedAction: 15,
	entity.DailyLoginAction:        5,
}

var actionTasks = map[entity.ActionType][]catalog.TaskType{
	entity.EventRegistrationAction: {catalog.AttendEventTask, catalog.ExploreCategoryTask},
	entity.EventCheckInAction:      {catalog.CheckInTask},
	entity.PostCreatedAction:       {catalog.PostContentTask},
	entity.ConnectionMadeAction:    {catalog.MakeConnectionsTask},
	entity.FeedbackSubmittedAction: {catalog.FeedbackTask},
}

var streakActions = map[entity.ActionType]struct{}{
	entity.EventCheckInAction:    {},
	entity.DailyLoginAction:      {},
	entity.SessionAttendedAction: {},
}

// actionCounters returns the activity counters increased by an action.
func actionCounters(actionType entity.ActionType, metadata model.ActionMetadata) []string {
	switch actionType {
	case entity.EventRegistrationAction:
		return []string{entity.CounterEventsRegistered}
	case entity.EventCheckInAction:
		counters := []string{entity.CounterCheckIns, entity.CounterEventsAttended}
		if metadata.EventCategory != "" {
			counters = append(counters, entity.CounterEventsAttendedIn(metadata.EventCategory))
		}
		return counters
	case entity.SessionAttendedAction:
		return []string{entity.CounterSessionsAttended}
	case entity.PostCreatedAction:
		return []string{entity.CounterPosts}
	case entity.ConnectionMadeAction:
		return []string{entity.CounterConnections}
	case entity.FeedbackSubmittedAction:
		return []string{entity.CounterFeedback}
	case entity.DailyLoginAction:
		return []string{entity.CounterLogins}
	}

	return nil
}

func actionReason(actionType entity.ActionType, metadata model.ActionMetadata) string {
	switch actionType {
	case entity.EventRegistrationAction:
		return withID("Registered for event", metadata.EventID)
	case entity.EventCheckInAction:
		return withID("Checked in at event", metadata.EventID)
	case entity.SessionAttendedAction:
		return withID("Attended session", metadata.SessionID)
	case entity.PostCreatedAction:
		return withID("Created post", metadata.PostID)
	case entity.ConnectionMadeAction:
		return withID("Connected with user", metadata.TargetUserID)
	case entity.FeedbackSubmittedAction:
		return withID("Submitted feedback for event", metadata.EventID)
	case entity.DailyLoginAction:
		return "Daily login"
	}

	return string(actionType)
}

func withID(reason, id string) string {
	if id == "" {
		return reason
	}

	return fmt.Sprintf("%s %s", reason, id)
}
