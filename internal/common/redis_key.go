package common

import "fmt"

func RedisKeyChallengeLeaderboard(challengeID string) string {
	return fmt.Sprintf("leaderboard:challenge:%s", challengeID)
}

func RedisKeyUserLock(userID string) string {
	return fmt.Sprintf("lock:gamification:%s", userID)
}
