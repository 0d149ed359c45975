package model

import (
	"github.com/questx-lab/rewards/internal/catalog"
	"github.com/questx-lab/rewards/internal/entity"
)

func ConvertBadge(b catalog.BadgeDefinition) Badge {
	return Badge{
		ID:          b.ID,
		Name:        b.Name,
		Description: b.Description,
		Category:    string(b.Category),
		Rarity:      string(b.Rarity),
		XPReward:    b.XPReward,
		IsHidden:    b.IsHidden,
	}
}

func ConvertUserBadge(def catalog.BadgeDefinition, b entity.UserBadge) UserBadge {
	return UserBadge{
		Badge:    ConvertBadge(def),
		EarnedAt: b.EarnedAt,
		IsNew:    b.IsNew,
		EventID:  b.EventID.String,
	}
}

func ConvertChallenge(c catalog.ChallengeDefinition) Challenge {
	tasks := []ChallengeTask{}
	for _, t := range c.Tasks {
		tasks = append(tasks, ChallengeTask{
			ID:            t.ID,
			Description:   t.Description,
			Type:          string(t.Type),
			Target:        t.Target,
			XPReward:      t.XPReward,
			EventCategory: t.EventCategory,
		})
	}

	return Challenge{
		ID:          c.ID,
		Name:        c.Name,
		Description: c.Description,
		Type:        string(c.Type),
		Category:    c.Category,
		StartDate:   c.StartDate,
		EndDate:     c.EndDate,
		Tasks:       tasks,
		Rewards: ChallengeRewards{
			XP:      c.Rewards.XP,
			BadgeID: c.Rewards.BadgeID,
			Title:   c.Rewards.Title,
		},
	}
}

// ConvertUserChallenge returns the view of a joined challenge. Tasks without
// a stored row are reported with zero progress.
func ConvertUserChallenge(c catalog.ChallengeDefinition, uc entity.UserChallenge) UserChallenge {
	progress := uc.ProgressMap()
	for _, t := range c.Tasks {
		if _, ok := progress[t.ID]; !ok {
			progress[t.ID] = 0
		}
	}

	result := UserChallenge{
		ID:             uc.ID,
		Challenge:      ConvertChallenge(c),
		JoinedAt:       uc.JoinedAt,
		Progress:       progress,
		CompletedTasks: uc.CompletedTaskIDs(),
		IsCompleted:    uc.IsCompleted,
		RewardsClaimed: uc.RewardsClaimed,
	}

	if uc.CompletedAt.Valid {
		completedAt := uc.CompletedAt.Time
		result.CompletedAt = &completedAt
	}

	return result
}

func ConvertXPTransaction(tx entity.XPTransaction) XPTransaction {
	return XPTransaction{
		ID:        tx.ID,
		Amount:    tx.Amount,
		Reason:    tx.Reason,
		Category:  string(tx.Category),
		CreatedAt: tx.CreatedAt,
	}
}

func ConvertStreak(s entity.Streak) Streak {
	return Streak{
		UserID:           s.UserID,
		CurrentStreak:    s.CurrentStreak,
		LongestStreak:    s.LongestStreak,
		LastActivityDate: s.LastActivityDate,
	}
}
