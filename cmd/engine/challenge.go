package main

import (
	"time"

	"github.com/questx-lab/rewards/internal/entity"
	"github.com/questx-lab/rewards/internal/model"
	"github.com/urfave/cli/v2"
)

func (s *srv) startJoin(cctx *cli.Context) error {
	if err := s.loadEngine(); err != nil {
		return err
	}

	uc, err := s.challengeTracker.Join(s.ctx, cctx.String("user"), cctx.String("challenge"), time.Now())
	if err != nil {
		return err
	}

	return printJSON(uc)
}

func (s *srv) startClaim(cctx *cli.Context) error {
	if err := s.loadEngine(); err != nil {
		return err
	}

	result, err := s.challengeTracker.ClaimRewards(
		s.ctx, cctx.String("user"), cctx.String("challenge"), time.Now())
	if err != nil {
		return err
	}

	return printJSON(result)
}

func (s *srv) startLeaderboard(cctx *cli.Context) error {
	if err := s.loadEngine(); err != nil {
		return err
	}

	entries, err := s.challengeTracker.Leaderboard(s.ctx, cctx.String("challenge"))
	if err != nil {
		return err
	}

	return printJSON(entries)
}

const recentActionLimit = 20

type profile struct {
	XP            *model.XPLedger       `json:"xp"`
	Streak        *model.Streak         `json:"streak"`
	Badges        []model.UserBadge     `json:"badges"`
	BadgeProgress []model.BadgeProgress `json:"badge_progress"`
	Challenges    []model.UserChallenge `json:"challenges"`
	RecentActions []entity.ActionLog    `json:"recent_actions"`
}

func (s *srv) startProfile(cctx *cli.Context) error {
	if err := s.loadEngine(); err != nil {
		return err
	}

	userID := cctx.String("user")

	var (
		p   profile
		err error
	)

	if p.XP, err = s.ledger.Get(s.ctx, userID); err != nil {
		return err
	}

	if p.Streak, err = s.streakTracker.Get(s.ctx, userID); err != nil {
		return err
	}

	if p.Badges, err = s.badgeManager.GetUserBadges(s.ctx, userID); err != nil {
		return err
	}

	if p.BadgeProgress, err = s.badgeManager.GetBadgeProgress(s.ctx, userID); err != nil {
		return err
	}

	if p.Challenges, err = s.challengeTracker.GetUserChallenges(s.ctx, userID, time.Now()); err != nil {
		return err
	}

	if p.RecentActions, err = s.actionLogRepo.GetByUserID(s.ctx, userID, recentActionLimit); err != nil {
		return err
	}

	return printJSON(p)
}
