package catalog

import "time"

// DefaultDefinitions returns the built-in badges and challenges.
func DefaultDefinitions() Definitions {
	return Definitions{
		Badges: []BadgeDefinition{
			{
				ID: "first_event", Name: "First Steps", Description: "Attend your first event",
				Category: AttendanceBadge, Rarity: Common, XPReward: 50,
				Criteria: BadgeCriteria{Type: EventAttendanceCriteria, Threshold: 1},
			},
			{
				ID: "event_explorer", Name: "Event Explorer", Description: "Attend 5 events",
				Category: AttendanceBadge, Rarity: Uncommon, XPReward: 100,
				Criteria: BadgeCriteria{Type: EventAttendanceCriteria, Threshold: 5},
			},
			{
				ID: "event_veteran", Name: "Event Veteran", Description: "Attend 20 events",
				Category: AttendanceBadge, Rarity: Rare, XPReward: 250,
				Criteria: BadgeCriteria{Type: EventAttendanceCriteria, Threshold: 20},
			},
			{
				ID: "tech_enthusiast", Name: "Tech Enthusiast", Description: "Attend 3 technology events",
				Category: AttendanceBadge, Rarity: Uncommon, XPReward: 100,
				Criteria: BadgeCriteria{Type: EventAttendanceCriteria, Threshold: 3, EventCategory: "technology"},
			},
			{
				ID: "music_lover", Name: "Music Lover", Description: "Attend 3 music events",
				Category: AttendanceBadge, Rarity: Uncommon, XPReward: 100,
				Criteria: BadgeCriteria{Type: EventAttendanceCriteria, Threshold: 3, EventCategory: "music"},
			},
			{
				ID: "check_in_champion", Name: "Check-in Champion", Description: "Check in at 10 events",
				Category: AttendanceBadge, Rarity: Rare, XPReward: 150,
				Criteria: BadgeCriteria{Type: CheckInsCriteria, Threshold: 10},
			},
			{
				ID: "first_connection", Name: "Ice Breaker", Description: "Make your first connection",
				Category: NetworkingBadge, Rarity: Common, XPReward: 25,
				Criteria: BadgeCriteria{Type: ConnectionsCriteria, Threshold: 1},
			},
			{
				ID: "social_butterfly", Name: "Social Butterfly", Description: "Make 10 connections",
				Category: NetworkingBadge, Rarity: Rare, XPReward: 150,
				Criteria: BadgeCriteria{Type: ConnectionsCriteria, Threshold: 10},
			},
			{
				ID: "super_connector", Name: "Super Connector", Description: "Make 50 connections",
				Category: NetworkingBadge, Rarity: Epic, XPReward: 300,
				Criteria: BadgeCriteria{Type: ConnectionsCriteria, Threshold: 50},
			},
			{
				ID: "first_post", Name: "First Words", Description: "Publish your first post",
				Category: EngagementBadge, Rarity: Common, XPReward: 25,
				Criteria: BadgeCriteria{Type: PostsCriteria, Threshold: 1},
			},
			{
				ID: "content_creator", Name: "Content Creator", Description: "Publish 10 posts",
				Category: EngagementBadge, Rarity: Uncommon, XPReward: 100,
				Criteria: BadgeCriteria{Type: PostsCriteria, Threshold: 10},
			},
			{
				ID: "streak_starter", Name: "Streak Starter", Description: "Stay active 3 days in a row",
				Category: AchievementBadge, Rarity: Common, XPReward: 50,
				Criteria: BadgeCriteria{Type: StreakCriteria, Threshold: 3},
			},
			{
				ID: "week_warrior", Name: "Week Warrior", Description: "Stay active 7 days in a row",
				Category: AchievementBadge, Rarity: Rare, XPReward: 200,
				Criteria: BadgeCriteria{Type: StreakCriteria, Threshold: 7},
			},
			{
				ID: "unstoppable", Name: "Unstoppable", Description: "Stay active 30 days in a row",
				Category: AchievementBadge, Rarity: Legendary, XPReward: 1000,
				Criteria: BadgeCriteria{Type: StreakCriteria, Threshold: 30},
			},
			{
				ID: "xp_collector", Name: "XP Collector", Description: "Earn 1,000 XP",
				Category: AchievementBadge, Rarity: Uncommon, XPReward: 100,
				Criteria: BadgeCriteria{Type: PointsCriteria, Threshold: 1000},
			},
			{
				ID: "xp_master", Name: "XP Master", Description: "Earn 10,000 XP",
				Category: AchievementBadge, Rarity: Epic, XPReward: 500,
				Criteria: BadgeCriteria{Type: PointsCriteria, Threshold: 10000},
			},
			{
				ID: "explorer", Name: "Explorer", Description: "Complete the weekly explorer challenge",
				Category: SpecialBadge, Rarity: Rare, XPReward: 100,
				Criteria: BadgeCriteria{Type: SpecialCriteria, Threshold: 1},
			},
			{
				ID: "early_bird", Name: "Early Bird", Description: "Check in before an event starts",
				Category: SpecialBadge, Rarity: Rare, XPReward: 100,
				Criteria: BadgeCriteria{Type: SpecialCriteria, Threshold: 1}, IsHidden: true,
			},
			{
				ID: "night_owl", Name: "Night Owl", Description: "Attend a late night session",
				Category: SpecialBadge, Rarity: Rare, XPReward: 100,
				Criteria: BadgeCriteria{Type: SpecialCriteria, Threshold: 1}, IsHidden: true,
			},
			{
				ID: "perfect_attendance", Name: "Perfect Attendance", Description: "Attend every session of an event",
				Category: SpecialBadge, Rarity: Legendary, XPReward: 500,
				Criteria: BadgeCriteria{Type: SpecialCriteria, Threshold: 1}, IsHidden: true,
			},
		},

		Challenges: []ChallengeDefinition{
			{
				ID: "community_kickoff", Name: "Community Kickoff", Type: SpecialChallenge, Category: "community",
				Description: "Join a technology event and tell us how it went",
				StartDate:   time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
				EndDate:     time.Date(2030, 1, 1, 0, 0, 0, 0, time.UTC),
				Tasks: []ChallengeTask{
					{ID: "attend_tech", Type: AttendEventTask, Target: 1, XPReward: 50, EventCategory: "technology"},
					{ID: "give_feedback", Type: FeedbackTask, Target: 1, XPReward: 25},
				},
				Rewards:  ChallengeRewards{XP: 150, Title: "Pioneer"},
				IsActive: true,
			},
		},

		WeeklyTemplates: []ChallengeDefinition{
			{
				ID: "weekly_explorer", Name: "Weekly Explorer", Type: WeeklyChallenge, Category: "attendance",
				Description: "Attend two events from two different categories",
				Tasks: []ChallengeTask{
					{ID: "attend_any_2", Type: AttendEventTask, Target: 2, XPReward: 50},
					{ID: "different_categories", Type: ExploreCategoryTask, Target: 2, XPReward: 50},
				},
				Rewards:  ChallengeRewards{XP: 200, BadgeID: "explorer", Title: "Explorer"},
				IsActive: true,
			},
			{
				ID: "weekly_networker", Name: "Weekly Networker", Type: WeeklyChallenge, Category: "networking",
				Description: "Grow your network and share your thoughts",
				Tasks: []ChallengeTask{
					{ID: "connect_5", Type: MakeConnectionsTask, Target: 5, XPReward: 50},
					{ID: "post_3", Type: PostContentTask, Target: 3, XPReward: 30},
				},
				Rewards:  ChallengeRewards{XP: 150},
				IsActive: true,
			},
		},

		DailyTemplates: []ChallengeDefinition{
			{
				ID: "daily_check_in", Name: "Show Up", Type: DailyChallenge, Category: "attendance",
				Tasks: []ChallengeTask{
					{ID: "check_in_1", Type: CheckInTask, Target: 1, XPReward: 20},
				},
				Rewards:  ChallengeRewards{XP: 30},
				IsActive: true,
			},
			{
				ID: "daily_socializer", Name: "Socializer", Type: DailyChallenge, Category: "networking",
				Tasks: []ChallengeTask{
					{ID: "connect_1", Type: MakeConnectionsTask, Target: 1, XPReward: 10},
					{ID: "post_1", Type: PostContentTask, Target: 1, XPReward: 10},
				},
				Rewards:  ChallengeRewards{XP: 30},
				IsActive: true,
			},
			{
				ID: "daily_feedback", Name: "Voice Your Opinion", Type: DailyChallenge, Category: "engagement",
				Tasks: []ChallengeTask{
					{ID: "feedback_1", Type: FeedbackTask, Target: 1, XPReward: 15},
				},
				Rewards:  ChallengeRewards{XP: 20},
				IsActive: true,
			},
		},
	}
}

// Default returns the built-in catalog.
func Default(loc *time.Location) *Catalog {
	c, err := New(DefaultDefinitions(), loc)
	if err != nil {
		panic(err)
	}

	return c
}
