package standings

import (
	"fmt"
	"math"
	"strings"
)

// Team is one ranked roster inside a league season.
type Team struct {
	RosterID      int
	OwnerID       string
	Name          string
	Wins          int
	Losses        int
	Ties          int
	PointsFor     float64
	PointsAgainst float64
	Rank          int
}

// WinPct returns (wins + 0.5*ties) / games played, 0 when no games played.
func (t Team) WinPct() float64 {
	played := t.Wins + t.Losses + t.Ties
	if played == 0 {
		return 0
	}
	return (float64(t.Wins) + 0.5*float64(t.Ties)) / float64(played)
}

// Points composes a score from the integer base and the fractional
// hundredths the upstream feed supplies separately, rounded to 2 decimals.
func Points(base, hundredths int) float64 {
	return math.Round(float64(base)*100+float64(hundredths)) / 100
}

// DisplayName resolves a team's display name through the fallback chain:
// team name, then the owner's display name, then their username, then a
// synthesized user label, then the roster id.
func DisplayName(teamName, displayName, username, ownerID string, rosterID int) string {
	if name := strings.TrimSpace(teamName); name != "" {
		return name
	}
	if name := strings.TrimSpace(displayName); name != "" {
		return name
	}
	if name := strings.TrimSpace(username); name != "" {
		return name
	}
	if owner := strings.TrimSpace(ownerID); owner != "" {
		return "User-" + suffix(owner, 4)
	}
	return fmt.Sprintf("Team-%d", rosterID)
}

func suffix(v string, n int) string {
	if len(v) <= n {
		return v
	}
	return v[len(v)-n:]
}
