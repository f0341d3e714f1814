package database

// MatchResult is one finished match as stored in the results table.
type MatchResult struct {
	ID         string `json:"id"`
	CreatedAt  string `json:"created_at"`
	Player     string `json:"player"` // the human, always seated South
	North      string `json:"north"`
	East       string `json:"east"`
	South      string `json:"south"`
	West       string `json:"west"`
	NSScore    int    `json:"ns_score"`
	EWScore    int    `json:"ew_score"`
	WinnerTeam int    `json:"winner_team"` // 0 north-south, 1 east-west
	Rounds     int    `json:"rounds"`
}

// PlayerStats is the cumulative record of one player across matches.
type PlayerStats struct {
	Name       string `json:"name"`
	Matches    int    `json:"matches"`
	Wins       int    `json:"wins"`
	Losses     int    `json:"losses"`
	Points     int    `json:"points"` // sum of the player's team round deltas
	BidsMade   int    `json:"bids_made"`
	BidsFailed int    `json:"bids_failed"`
}
