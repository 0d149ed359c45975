package common

import "github.com/prometheus/client_golang/prometheus"

const (
	ActionProcessedTotal = "gamification_actions_processed_total"
	XPAwardedTotal       = "gamification_xp_awarded_total"
	BadgeAwardedTotal    = "gamification_badges_awarded_total"
	ChallengeEventTotal  = "gamification_challenge_events_total"
	StreakConflictTotal  = "gamification_streak_conflicts_total"
	ActionDuration       = "gamification_action_duration_seconds"
)

var (
	PromGauges = map[string]*prometheus.GaugeVec{}

	PromCounters = map[string]*prometheus.CounterVec{
		ActionProcessedTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: ActionProcessedTotal,
			Help: "Count of all processed user actions",
		}, []string{"action", "success"}),
		XPAwardedTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: XPAwardedTotal,
			Help: "Sum of all granted xp",
		}, []string{"category"}),
		BadgeAwardedTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: BadgeAwardedTotal,
			Help: "Count of all awarded badges",
		}, []string{"badge"}),
		ChallengeEventTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: ChallengeEventTotal,
			Help: "Count of challenge task and challenge completions",
		}, []string{"event"}),
		StreakConflictTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: StreakConflictTotal,
			Help: "Count of optimistic concurrency conflicts on streak records",
		}, []string{}),
	}

	PromHistograms = map[string]*prometheus.HistogramVec{
		ActionDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name: ActionDuration,
			Help: "Duration of processing a user action",
		}, []string{"action"}),
	}
)
