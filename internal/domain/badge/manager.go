package badge

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/questx-lab/rewards/internal/catalog"
	"github.com/questx-lab/rewards/internal/common"
	"github.com/questx-lab/rewards/internal/domain/streak"
	"github.com/questx-lab/rewards/internal/domain/xp"
	"github.com/questx-lab/rewards/internal/entity"
	"github.com/questx-lab/rewards/internal/model"
	"github.com/questx-lab/rewards/internal/repository"
	"github.com/questx-lab/rewards/pkg/errorx"
	"github.com/questx-lab/rewards/pkg/xcontext"
)

type Manager struct {
	catalog *catalog.Catalog

	// This field is only written at initialization. After that, it is readonly.
	// So no need to use sync map here.
	scanners map[catalog.CriteriaType]CriteriaScanner

	userBadgeRepo repository.UserBadgeRepository
	counterRepo   repository.ActivityCounterRepository
	ledger        *xp.Ledger
	streakTracker *streak.Tracker
}

func NewManager(
	badgeCatalog *catalog.Catalog,
	userBadgeRepo repository.UserBadgeRepository,
	counterRepo repository.ActivityCounterRepository,
	ledger *xp.Ledger,
	streakTracker *streak.Tracker,
	scanners ...CriteriaScanner,
) *Manager {
	manager := &Manager{
		catalog:       badgeCatalog,
		scanners:      make(map[catalog.CriteriaType]CriteriaScanner),
		userBadgeRepo: userBadgeRepo,
		counterRepo:   counterRepo,
		ledger:        ledger,
		streakTracker: streakTracker,
	}

	for _, s := range scanners {
		manager.scanners[s.Type()] = s
	}

	return manager
}

// EarnedBadgeIDs returns the set of badges the user already owns.
func (m *Manager) EarnedBadgeIDs(ctx context.Context, userID string) (map[string]struct{}, error) {
	badges, err := m.userBadgeRepo.GetByUserID(ctx, userID)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot get user badges: %v", err)
		return nil, errorx.New(errorx.Unavailable, "Cannot get user badges")
	}

	result := make(map[string]struct{}, len(badges))
	for _, b := range badges {
		result[b.BadgeID] = struct{}{}
	}

	return result, nil
}

// Evaluate awards every badge not in alreadyEarned whose criteria is reached
// by stats. It returns the badges which were newly awarded by this call. A
// failure of one badge does not stop the others, the first error is returned
// along with the awarded badges.
func (m *Manager) Evaluate(
	ctx context.Context, userID string, stats model.UserStats, alreadyEarned map[string]struct{},
) ([]catalog.BadgeDefinition, error) {
	var firstErr error
	result := []catalog.BadgeDefinition{}
	for _, badge := range m.catalog.Badges() {
		if _, ok := alreadyEarned[badge.ID]; ok {
			continue
		}

		scanner, ok := m.scanners[badge.Criteria.Type]
		if !ok {
			continue
		}

		if scanner.Scan(stats, badge.Criteria) < badge.Criteria.Threshold {
			continue
		}

		awarded, err := m.award(ctx, userID, badge, "")
		if err != nil {
			if firstErr == nil {
				firstErr = err
			}
			continue
		}

		if awarded {
			result = append(result, badge)
		}
	}

	return result, firstErr
}

// Award gives a badge to user without checking its criteria. It is the only
// way to obtain badges of the special criteria. It returns false if the user
// already owned the badge.
func (m *Manager) Award(ctx context.Context, userID, badgeID, eventID string) (bool, error) {
	badge, ok := m.catalog.Badge(badgeID)
	if !ok {
		return false, errorx.New(errorx.NotFound, "Not found badge %s", badgeID)
	}

	return m.award(ctx, userID, badge, eventID)
}

// award inserts the user badge and grants its xp in the same transaction. The
// xp is only granted if the row was inserted by this call.
func (m *Manager) award(ctx context.Context, userID string, badge catalog.BadgeDefinition, eventID string) (bool, error) {
	ctx = xcontext.WithDBTransaction(ctx)
	defer xcontext.WithRollbackDBTransaction(ctx)

	inserted, err := m.userBadgeRepo.Create(ctx, &entity.UserBadge{
		ID:       uuid.NewString(),
		UserID:   userID,
		BadgeID:  badge.ID,
		EarnedAt: time.Now(),
		IsNew:    true,
		EventID:  sql.NullString{String: eventID, Valid: eventID != ""},
	})
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot create user badge: %v", err)
		return false, errorx.New(errorx.Unavailable, "Cannot award badge %s", badge.ID)
	}

	if !inserted {
		return false, nil
	}

	_, err = m.ledger.Grant(ctx, userID, badge.XPReward,
		fmt.Sprintf("Earned badge %s", badge.Name), entity.XPCategoryBadge)
	if err != nil {
		return false, err
	}

	if err := xcontext.WithCommitDBTransaction(ctx); err != nil {
		xcontext.Logger(ctx).Errorf("Cannot commit badge award: %v", err)
		return false, errorx.New(errorx.Unavailable, "Cannot award badge %s", badge.ID)
	}

	common.PromCounters[common.BadgeAwardedTotal].WithLabelValues(badge.ID).Inc()
	return true, nil
}

// GetBadgeProgress returns the progress of every visible badge. Hidden badges
// are only listed once earned.
func (m *Manager) GetBadgeProgress(ctx context.Context, userID string) ([]model.BadgeProgress, error) {
	earned, err := m.EarnedBadgeIDs(ctx, userID)
	if err != nil {
		return nil, err
	}

	stats, err := m.Stats(ctx, userID)
	if err != nil {
		return nil, err
	}

	result := []model.BadgeProgress{}
	for _, badge := range m.catalog.Badges() {
		_, isEarned := earned[badge.ID]
		if badge.IsHidden && !isEarned {
			continue
		}

		progress := model.BadgeProgress{
			Badge:  model.ConvertBadge(badge),
			Earned: isEarned,
			Target: badge.Criteria.Threshold,
		}

		if scanner, ok := m.scanners[badge.Criteria.Type]; ok {
			progress.Current = scanner.Scan(stats, badge.Criteria)
			progress.Progress = min(100, progress.Current*100/badge.Criteria.Threshold)
		}

		if isEarned {
			progress.Progress = 100
		}

		result = append(result, progress)
	}

	return result, nil
}

// GetUserBadges returns the badges of user, then clears their new flag.
func (m *Manager) GetUserBadges(ctx context.Context, userID string) ([]model.UserBadge, error) {
	badges, err := m.userBadgeRepo.GetByUserID(ctx, userID)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot get user badges: %v", err)
		return nil, errorx.New(errorx.Unavailable, "Cannot get user badges")
	}

	result := []model.UserBadge{}
	for _, b := range badges {
		def, ok := m.catalog.Badge(b.BadgeID)
		if !ok {
			xcontext.Logger(ctx).Warnf("User %s owns badge %s which is not in catalog", userID, b.BadgeID)
			continue
		}

		result = append(result, model.ConvertUserBadge(def, b))
	}

	if err := m.userBadgeRepo.MarkSeen(ctx, userID); err != nil {
		xcontext.Logger(ctx).Errorf("Cannot mark user badges as seen: %v", err)
		return nil, errorx.New(errorx.Unavailable, "Cannot get user badges")
	}

	return result, nil
}
