package usecase

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/sourcegraph/conc"

	"github.com/lzpck/tfl-snapshot/internal/domain/league"
	"github.com/lzpck/tfl-snapshot/internal/domain/standings"
)

// unknownOwnerID stands in for rosters the platform reports without an owner.
const unknownOwnerID = "unknown"

// RosterService joins the upstream roster and user feeds into ranked-ready
// teams. Orphaned owner ids and missing display names degrade to fallback
// names instead of erroring.
type RosterService struct {
	provider LeagueDataProvider
	leagues  LeagueDirectory
}

func NewRosterService(provider LeagueDataProvider, leagues LeagueDirectory) *RosterService {
	return &RosterService{
		provider: provider,
		leagues:  leagues,
	}
}

func (s *RosterService) Teams(ctx context.Context, format league.Format) ([]standings.Team, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.RosterService.Teams")
	defer span.End()

	if _, ok := league.AllFormats[format]; !ok {
		return nil, fmt.Errorf("%w: unknown league format %q", ErrInvalidInput, format)
	}

	leagueID, err := s.leagues.IDFor(format)
	if err != nil {
		return nil, err
	}

	var (
		rosters    []ExternalRoster
		users      []ExternalUser
		rosterErr  error
		userErr    error
		fetchGroup conc.WaitGroup
	)
	fetchGroup.Go(func() {
		rosters, rosterErr = s.provider.FetchRosters(ctx, leagueID)
	})
	fetchGroup.Go(func() {
		users, userErr = s.provider.FetchUsers(ctx, leagueID)
	})
	fetchGroup.Wait()

	if rosterErr != nil {
		return nil, fmt.Errorf("teams format=%s: %w", format, rosterErr)
	}
	if userErr != nil {
		return nil, fmt.Errorf("teams format=%s: %w", format, userErr)
	}

	usersByID := make(map[string]ExternalUser, len(users))
	for _, u := range users {
		usersByID[u.UserID] = u
	}

	teams := make([]standings.Team, 0, len(rosters))
	for _, r := range rosters {
		owner := usersByID[r.OwnerID]
		ownerID := strings.TrimSpace(r.OwnerID)
		if ownerID == "" {
			ownerID = unknownOwnerID
		}
		teams = append(teams, standings.Team{
			RosterID:      r.RosterID,
			OwnerID:       ownerID,
			Name:          standings.DisplayName(owner.TeamName, owner.DisplayName, owner.Username, r.OwnerID, r.RosterID),
			Wins:          r.Wins,
			Losses:        r.Losses,
			Ties:          r.Ties,
			PointsFor:     standings.Points(r.PointsBase, r.PointsHundredths),
			PointsAgainst: standings.Points(r.PointsAgainstBase, r.PointsAgainstHundredths),
		})
	}
	sort.Slice(teams, func(i, j int) bool { return teams[i].RosterID < teams[j].RosterID })

	return teams, nil
}
