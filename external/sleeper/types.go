package sleeper

// League is the upstream league object, trimmed to the fields the service
// reads.
type League struct {
	LeagueID         string         `json:"league_id"`
	Name             string         `json:"name"`
	Status           string         `json:"status"`
	Season           string         `json:"season"`
	TotalRosters     int            `json:"total_rosters"`
	PreviousLeagueID string         `json:"previous_league_id"`
	Settings         LeagueSettings `json:"settings"`
}

type LeagueSettings struct {
	NumTeams         int `json:"num_teams"`
	PlayoffTeams     int `json:"playoff_teams"`
	PlayoffWeekStart int `json:"playoff_week_start"`
	Leg              int `json:"leg"`
	LastScoredLeg    int `json:"last_scored_leg"`
}

// User is one league member. Custom team names live under metadata.
type User struct {
	UserID      string       `json:"user_id"`
	Username    string       `json:"username"`
	DisplayName string       `json:"display_name"`
	Metadata    UserMetadata `json:"metadata"`
}

type UserMetadata struct {
	TeamName string `json:"team_name"`
}

// Roster carries one team's season record. The feed splits fractional points
// into an integer base and a separate hundredths field.
type Roster struct {
	RosterID int            `json:"roster_id"`
	OwnerID  string         `json:"owner_id"`
	Settings RosterSettings `json:"settings"`
}

type RosterSettings struct {
	Wins                int `json:"wins"`
	Losses              int `json:"losses"`
	Ties                int `json:"ties"`
	FPTS                int `json:"fpts"`
	FPTSDecimal         int `json:"fpts_decimal"`
	FPTSAgainst         int `json:"fpts_against"`
	FPTSAgainstDecimal  int `json:"fpts_against_decimal"`
	TotalMoves          int `json:"total_moves"`
	WaiverPosition      int `json:"waiver_position"`
}

// Matchup is one roster's side of a weekly head-to-head.
type Matchup struct {
	RosterID  int     `json:"roster_id"`
	MatchupID int     `json:"matchup_id"`
	Points    float64 `json:"points"`
}

// BracketSource back-references an earlier bracket match by id.
type BracketSource struct {
	Winner int `json:"w"`
	Loser  int `json:"l"`
}

// BracketMatchup is one sparse playoff-bracket record. Team slots hold roster
// ids once known; until then the corresponding *From reference says which
// earlier match feeds the slot.
type BracketMatchup struct {
	Round     int            `json:"r"`
	MatchupID int            `json:"m"`
	Team1     int            `json:"t1"`
	Team2     int            `json:"t2"`
	Winner    int            `json:"w"`
	Loser     int            `json:"l"`
	Team1From *BracketSource `json:"t1_from,omitempty"`
	Team2From *BracketSource `json:"t2_from,omitempty"`
}
