package usecase

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"

	"github.com/lzpck/tfl-snapshot/internal/domain/league"
)

func TestRosterService_Teams_JoinsRostersAndUsers(t *testing.T) {
	t.Parallel()

	provider := &stubProvider{
		users: []ExternalUser{
			{UserID: "u1", DisplayName: "alice", TeamName: "Gridiron Gurus"},
			{UserID: "u2", DisplayName: "bob"},
		},
		rosters: []ExternalRoster{
			{RosterID: 2, OwnerID: "u2", Wins: 4, Losses: 5, PointsBase: 1001, PointsHundredths: 5, PointsAgainstBase: 998, PointsAgainstHundredths: 40},
			{RosterID: 1, OwnerID: "u1", Wins: 7, Losses: 2, PointsBase: 1200, PointsHundredths: 55},
			{RosterID: 3, OwnerID: "u9", Wins: 1, Losses: 8},
			{RosterID: 4, Wins: 0, Losses: 9},
		},
	}
	svc := NewRosterService(provider, testLeagues())

	teams, err := svc.Teams(context.Background(), league.FormatRedraft)
	if err != nil {
		t.Fatalf("Teams error: %v", err)
	}
	if len(teams) != 4 {
		t.Fatalf("expected 4 teams, got=%d", len(teams))
	}

	if teams[0].RosterID != 1 || teams[0].Name != "Gridiron Gurus" {
		t.Fatalf("unexpected first team: %+v", teams[0])
	}
	if teams[0].PointsFor != 1200.55 {
		t.Fatalf("expected points 1200.55, got=%v", teams[0].PointsFor)
	}
	if teams[1].Name != "bob" {
		t.Fatalf("expected display-name fallback for roster 2, got=%q", teams[1].Name)
	}
	if teams[1].PointsAgainst != 998.40 {
		t.Fatalf("expected points against 998.40, got=%v", teams[1].PointsAgainst)
	}

	// Orphaned owner id and missing owner id both degrade to fallback names.
	if teams[2].Name == "" || teams[3].Name != "Team-4" {
		t.Fatalf("unexpected fallback names: %q, %q", teams[2].Name, teams[3].Name)
	}
}

func TestRosterService_Teams_OwnerlessRoster(t *testing.T) {
	t.Parallel()

	provider := &stubProvider{
		rosters: []ExternalRoster{
			{RosterID: 1, OwnerID: "u1", Wins: 5, Losses: 4},
			{RosterID: 2, OwnerID: "  ", Wins: 4, Losses: 5},
			{RosterID: 3, Wins: 3, Losses: 6},
		},
		users: []ExternalUser{
			{UserID: "u1", Username: "alice99"},
		},
	}
	svc := NewRosterService(provider, testLeagues())

	teams, err := svc.Teams(context.Background(), league.FormatRedraft)
	if err != nil {
		t.Fatalf("Teams error: %v", err)
	}

	// Username is the last named step of the fallback chain.
	if teams[0].Name != "alice99" {
		t.Fatalf("expected username fallback for roster 1, got=%q", teams[0].Name)
	}
	for _, team := range teams[1:] {
		if team.OwnerID != "unknown" {
			t.Fatalf("expected owner id %q for roster %d, got=%q", "unknown", team.RosterID, team.OwnerID)
		}
		if team.Name != fmt.Sprintf("Team-%d", team.RosterID) {
			t.Fatalf("expected roster fallback name for roster %d, got=%q", team.RosterID, team.Name)
		}
	}
}

func TestRosterService_Teams_UnknownFormat(t *testing.T) {
	t.Parallel()

	svc := NewRosterService(&stubProvider{}, testLeagues())

	_, err := svc.Teams(context.Background(), league.Format("bestball"))
	if !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got=%v", err)
	}
}

func TestRosterService_Teams_UpstreamError(t *testing.T) {
	t.Parallel()

	provider := &stubProvider{rosterErr: errors.New("upstream down")}
	svc := NewRosterService(provider, testLeagues())

	_, err := svc.Teams(context.Background(), league.FormatDynasty)
	if err == nil {
		t.Fatal("expected error when roster fetch fails")
	}
}

func testLeagues() LeagueDirectory {
	return LeagueDirectory{
		league.FormatRedraft: "redraft-league-1",
		league.FormatDynasty: "dynasty-league-1",
	}
}

// stubProvider is a canned LeagueDataProvider shared by the service tests.
type stubProvider struct {
	league     ExternalLeague
	users      []ExternalUser
	rosters    []ExternalRoster
	matchups   map[int][]ExternalMatchup
	bracket    []ExternalBracketMatch
	leagueErr  error
	userErr    error
	rosterErr  error
	matchupErr error
	bracketErr error

	mu    sync.Mutex
	calls []string
}

func (p *stubProvider) record(call string) {
	p.mu.Lock()
	p.calls = append(p.calls, call)
	p.mu.Unlock()
}

func (p *stubProvider) callCount(call string) int {
	p.mu.Lock()
	defer p.mu.Unlock()
	n := 0
	for _, c := range p.calls {
		if c == call {
			n++
		}
	}
	return n
}

func (p *stubProvider) FetchLeague(_ context.Context, _ string) (ExternalLeague, error) {
	p.record("league")
	return p.league, p.leagueErr
}

func (p *stubProvider) FetchUsers(_ context.Context, _ string) ([]ExternalUser, error) {
	p.record("users")
	return p.users, p.userErr
}

func (p *stubProvider) FetchRosters(_ context.Context, _ string) ([]ExternalRoster, error) {
	p.record("rosters")
	return p.rosters, p.rosterErr
}

func (p *stubProvider) FetchMatchups(_ context.Context, _ string, week int) ([]ExternalMatchup, error) {
	p.record(fmt.Sprintf("matchups:%d", week))
	return p.matchups[week], p.matchupErr
}

func (p *stubProvider) FetchWinnersBracket(_ context.Context, _ string) ([]ExternalBracketMatch, error) {
	p.record("bracket")
	return p.bracket, p.bracketErr
}
