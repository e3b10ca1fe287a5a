package usecase

import (
	"context"
	"fmt"

	"github.com/lzpck/tfl-snapshot/internal/domain/league"
)

// LeagueDataProvider is the upstream fantasy platform seen from the usecase
// layer. external/sleeper implements it over the Sleeper read API.
type LeagueDataProvider interface {
	FetchLeague(ctx context.Context, leagueID string) (ExternalLeague, error)
	FetchUsers(ctx context.Context, leagueID string) ([]ExternalUser, error)
	FetchRosters(ctx context.Context, leagueID string) ([]ExternalRoster, error)
	FetchMatchups(ctx context.Context, leagueID string, week int) ([]ExternalMatchup, error)
	FetchWinnersBracket(ctx context.Context, leagueID string) ([]ExternalBracketMatch, error)
}

type ExternalLeague struct {
	ID               string
	Name             string
	Season           string
	Status           string
	PreviousLeagueID string
	TotalRosters     int
	PlayoffWeekStart int
}

type ExternalUser struct {
	UserID      string
	Username    string
	DisplayName string
	TeamName    string
}

// ExternalRoster carries season records as the platform reports them: points
// split into a whole-point base and a hundredths remainder.
type ExternalRoster struct {
	RosterID                int
	OwnerID                 string
	Wins                    int
	Losses                  int
	Ties                    int
	PointsBase              int
	PointsHundredths        int
	PointsAgainstBase       int
	PointsAgainstHundredths int
}

type ExternalMatchup struct {
	RosterID  int
	MatchupID int
	Points    float64
}

type ExternalBracketMatch struct {
	Round         int
	MatchID       int
	Team1         int
	Team2         int
	Winner        int
	Loser         int
	Team1WinnerOf int
	Team1LoserOf  int
	Team2WinnerOf int
	Team2LoserOf  int
}

// LeagueDirectory maps each served format to its upstream league id.
type LeagueDirectory map[league.Format]string

func (d LeagueDirectory) IDFor(format league.Format) (string, error) {
	id, ok := d[format]
	if !ok || id == "" {
		return "", fmt.Errorf("%w: no league configured for format=%s", ErrNotFound, format)
	}
	return id, nil
}
