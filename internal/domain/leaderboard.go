package domain

// LeaderboardEntry is one ranked row
type LeaderboardEntry struct {
	Rank          int    `json:"rank"`
	UserID        string `json:"user_id"`
	Username      string `json:"username"`
	AvatarURL     string `json:"avatar_url,omitempty"`
	TotalXP       int64  `json:"total_xp"`
	Level         int    `json:"level"`
	CurrentStreak int    `json:"current_streak"`
	BadgeCount    int    `json:"badge_count"`
}

// UserRank is a user's position on the XP leaderboard
type UserRank struct {
	UserID     string `json:"user_id"`
	Rank       int    `json:"rank"`
	TotalXP    int64  `json:"total_xp"`
	TotalUsers int    `json:"total_users"`
}
