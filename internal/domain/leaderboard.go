package domain

// LeaderboardEntry is one player's aggregate over solved exercises.
type LeaderboardEntry struct {
	Rank       int    `json:"rank"`
	PlayerName string `json:"player_name"`
	Solved     int    `json:"solved"`
	TotalScore int    `json:"total_score"`
	BestScore  int    `json:"best_score"`
}
