package badge

import (
	"github.com/questx-lab/rewards/internal/catalog"
	"github.com/questx-lab/rewards/internal/model"
)

type CriteriaScanner interface {
	// Type returns the criteria type which this scanner handles.
	Type() catalog.CriteriaType

	// Scan returns the current value of the statistic the criteria compares to
	// its threshold.
	Scan(stats model.UserStats, criteria catalog.BadgeCriteria) int
}
