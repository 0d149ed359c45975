package badge

import (
	"github.com/questx-lab/rewards/internal/catalog"
	"github.com/questx-lab/rewards/internal/model"
)

// eventAttendanceScanner reads the number of attended events, or the number of
// attended events of a category if the criteria has one.
type eventAttendanceScanner struct{}

func NewEventAttendanceScanner() *eventAttendanceScanner {
	return &eventAttendanceScanner{}
}

func (*eventAttendanceScanner) Type() catalog.CriteriaType {
	return catalog.EventAttendanceCriteria
}

func (*eventAttendanceScanner) Scan(stats model.UserStats, criteria catalog.BadgeCriteria) int {
	if criteria.EventCategory != "" {
		return stats.EventCategories[criteria.EventCategory]
	}

	return stats.EventsAttended
}
