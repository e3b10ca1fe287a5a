package matchup

import "github.com/lzpck/tfl-snapshot/internal/domain/standings"

// Status represents where a head-to-head matchup stands.
type Status string

const (
	StatusScheduled  Status = "scheduled"
	StatusInProgress Status = "in_progress"
	StatusFinal      Status = "final"
)

var AllStatuses = map[Status]struct{}{
	StatusScheduled:  {},
	StatusInProgress: {},
	StatusFinal:      {},
}

// Pair is one head-to-head matchup between two ranked teams.
type Pair struct {
	Home   standings.Team
	Away   standings.Team
	Status Status
}

// StatusFromScores infers a matchup status when the feed does not declare one:
// no points on either side means the game has not started, points without a
// declared winner means it is live.
func StatusFromScores(homePoints, awayPoints float64, winnerDeclared bool) Status {
	if winnerDeclared {
		return StatusFinal
	}
	if homePoints != 0 || awayPoints != 0 {
		return StatusInProgress
	}
	return StatusScheduled
}
