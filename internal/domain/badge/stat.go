package badge

import (
	"github.com/questx-lab/rewards/internal/catalog"
	"github.com/questx-lab/rewards/internal/model"
)

// statScanner reads a single field of the user statistics.
type statScanner struct {
	criteriaType catalog.CriteriaType
	field        func(model.UserStats) int
}

func (s *statScanner) Type() catalog.CriteriaType {
	return s.criteriaType
}

func (s *statScanner) Scan(stats model.UserStats, _ catalog.BadgeCriteria) int {
	return s.field(stats)
}

func NewConnectionsScanner() *statScanner {
	return &statScanner{
		criteriaType: catalog.ConnectionsCriteria,
		field:        func(s model.UserStats) int { return s.Connections },
	}
}

func NewPostsScanner() *statScanner {
	return &statScanner{
		criteriaType: catalog.PostsCriteria,
		field:        func(s model.UserStats) int { return s.Posts },
	}
}

func NewCheckInsScanner() *statScanner {
	return &statScanner{
		criteriaType: catalog.CheckInsCriteria,
		field:        func(s model.UserStats) int { return s.CheckIns },
	}
}

func NewStreakScanner() *statScanner {
	return &statScanner{
		criteriaType: catalog.StreakCriteria,
		field:        func(s model.UserStats) int { return s.CurrentStreak },
	}
}

func NewPointsScanner() *statScanner {
	return &statScanner{
		criteriaType: catalog.PointsCriteria,
		field:        func(s model.UserStats) int { return s.TotalPoints },
	}
}

// DefaultScanners returns scanners of every automatically evaluated criteria.
// The special criteria has no scanner, those badges are only given through
// Manager.Award.
func DefaultScanners() []CriteriaScanner {
	return []CriteriaScanner{
		NewEventAttendanceScanner(),
		NewConnectionsScanner(),
		NewPostsScanner(),
		NewCheckInsScanner(),
		NewStreakScanner(),
		NewPointsScanner(),
	}
}
