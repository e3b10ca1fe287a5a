package bracket

import (
	"github.com/lzpck/tfl-snapshot/internal/domain/matchup"
	"github.com/lzpck/tfl-snapshot/internal/domain/standings"
)

// Slot references one participant of an elimination match. Either RosterID
// is set directly, or the participant is the winner/loser of an earlier match.
type Slot struct {
	RosterID int
	WinnerOf int
	LoserOf  int
}

func (s Slot) IsEmpty() bool {
	return s.RosterID == 0 && s.WinnerOf == 0 && s.LoserOf == 0
}

// Match is one sparse elimination-match record as the upstream feed reports
// it. Winner and Loser are 0 until the match is decided.
type Match struct {
	Round  int
	ID     int
	Home   Slot
	Away   Slot
	Winner int
	Loser  int
}

// ResolvedMatch is a bracket match with participants, scores, title and
// status filled in for display.
type ResolvedMatch struct {
	Round          int
	ID             int
	Title          string
	Home           standings.Team
	Away           standings.Team
	HomePoints     float64
	AwayPoints     float64
	WinnerRosterID int
	Status         matchup.Status
}

// Round groups the surfaced matches of one elimination round.
type Round struct {
	Number  int
	Matches []ResolvedMatch
}

// Titles assigned by a match's position relative to the final round.
const (
	TitleFinal        = "Final"
	TitleThirdPlace   = "3rd Place"
	TitleSemiFinal    = "Semi-Final"
	TitleQuarterFinal = "Quarter-Final"
)
