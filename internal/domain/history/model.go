package history

import (
	"fmt"
	"time"

	"github.com/lzpck/tfl-snapshot/internal/domain/league"
)

// FinalStanding is one row of a season's final ranking, frozen at archive time.
type FinalStanding struct {
	Rank      int
	RosterID  int
	Name      string
	Wins      int
	Losses    int
	Ties      int
	PointsFor float64
}

// SeasonRecord captures the headline results of a finished season.
type SeasonRecord struct {
	LeagueID            string
	Format              league.Format
	Season              string
	Champion            string
	RunnerUp            string
	RegularSeasonWinner string
	PointsLeader        string
	PointsLeaderTotal   float64
	FinalStandings      []FinalStanding
	ArchivedAt          time.Time
}

func (r SeasonRecord) Validate() error {
	if r.LeagueID == "" {
		return fmt.Errorf("season record league id is required")
	}
	if r.Season == "" {
		return fmt.Errorf("season record season is required")
	}
	if _, ok := league.AllFormats[r.Format]; !ok {
		return fmt.Errorf("invalid season record format: %s", r.Format)
	}
	if len(r.FinalStandings) == 0 {
		return fmt.Errorf("season record final standings are required")
	}

	return nil
}
