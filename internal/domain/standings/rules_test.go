package standings

import (
	"testing"

	"github.com/lzpck/tfl-snapshot/internal/domain/league"
)

func rosterIDs(teams []Team) []int {
	out := make([]int, 0, len(teams))
	for _, team := range teams {
		out = append(out, team.RosterID)
	}
	return out
}

func equalIDs(a, b []int) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func TestRankComparatorOrder(t *testing.T) {
	t.Parallel()

	teams := []Team{
		{RosterID: 1, Wins: 5, Losses: 5, PointsFor: 900, PointsAgainst: 800},
		{RosterID: 2, Wins: 8, Losses: 2, PointsFor: 1000, PointsAgainst: 950},
		{RosterID: 3, Wins: 8, Losses: 2, PointsFor: 1100, PointsAgainst: 900},
		{RosterID: 4, Wins: 5, Losses: 5, PointsFor: 900, PointsAgainst: 850},
		{RosterID: 5, Wins: 5, Losses: 5, PointsFor: 900, PointsAgainst: 850},
	}

	ranked := Rank(teams)

	// win% first, then points-for, then points-against, then roster id.
	want := []int{3, 2, 4, 5, 1}
	if got := rosterIDs(ranked); !equalIDs(got, want) {
		t.Fatalf("Rank() order = %v, want %v", got, want)
	}
	for i, team := range ranked {
		if team.Rank != i+1 {
			t.Fatalf("ranked[%d].Rank = %d, want %d", i, team.Rank, i+1)
		}
	}
	if teams[0].Rank != 0 {
		t.Fatalf("Rank() mutated its input")
	}
}

func TestRankForFormatIgnoresPointsAgainst(t *testing.T) {
	t.Parallel()

	// Identical records and points-for; points-against must not split them.
	teams := []Team{
		{RosterID: 2, Wins: 6, Losses: 4, PointsFor: 1000, PointsAgainst: 500},
		{RosterID: 1, Wins: 6, Losses: 4, PointsFor: 1000, PointsAgainst: 999},
	}

	for _, format := range []league.Format{league.FormatRedraft, league.FormatDynasty} {
		ranked := RankForFormat(teams, format)
		if got := rosterIDs(ranked); !equalIDs(got, []int{1, 2}) {
			t.Fatalf("RankForFormat(%s) order = %v, want [1 2]", format, got)
		}
	}
}

func TestRankForFormatRedraftPromotion(t *testing.T) {
	t.Parallel()

	teams := make([]Team, 0, 14)
	for i := 1; i <= 14; i++ {
		teams = append(teams, Team{
			RosterID:  i,
			Wins:      14 - i,
			Losses:    i,
			PointsFor: float64(1500 - i*10),
		})
	}
	// Roster 12 sits deep in the non-qualifier pool with the highest score.
	teams[11].PointsFor = 2000

	ranked := RankForFormat(teams, league.FormatRedraft)

	if ranked[6].RosterID != 12 {
		t.Fatalf("rank 7 roster = %d, want 12", ranked[6].RosterID)
	}
	if ranked[6].Rank != 7 {
		t.Fatalf("promoted team rank = %d, want 7", ranked[6].Rank)
	}
	// Top six keep their seats.
	for i := 0; i < 6; i++ {
		if ranked[i].RosterID != i+1 {
			t.Fatalf("rank %d roster = %d, want %d", i+1, ranked[i].RosterID, i+1)
		}
	}
	// Teams the promotion passed keep their relative order below it.
	want := []int{7, 8, 9, 10, 11, 13, 14}
	if got := rosterIDs(ranked[7:]); !equalIDs(got, want) {
		t.Fatalf("tail order = %v, want %v", got, want)
	}
}

func TestRankForFormatRedraftPromotionNoopWhenLeaderScoresMost(t *testing.T) {
	t.Parallel()

	teams := make([]Team, 0, 14)
	for i := 1; i <= 14; i++ {
		teams = append(teams, Team{
			RosterID:  i,
			Wins:      14 - i,
			Losses:    i,
			PointsFor: float64(1500 - i*10),
		})
	}

	ranked := RankForFormat(teams, league.FormatRedraft)

	for i, team := range ranked {
		if team.RosterID != i+1 {
			t.Fatalf("rank %d roster = %d, want %d", i+1, team.RosterID, i+1)
		}
	}
}

func TestRankForFormatDynastyNoPromotion(t *testing.T) {
	t.Parallel()

	teams := make([]Team, 0, 10)
	for i := 1; i <= 10; i++ {
		teams = append(teams, Team{
			RosterID:  i,
			Wins:      10 - i,
			Losses:    i,
			PointsFor: float64(1200 - i*10),
		})
	}
	teams[9].PointsFor = 3000

	ranked := RankForFormat(teams, league.FormatDynasty)

	if ranked[6].RosterID != 7 {
		t.Fatalf("rank 7 roster = %d, want 7 (dynasty has no promotion)", ranked[6].RosterID)
	}
}

func TestPointsRaceFreezesQualifiers(t *testing.T) {
	t.Parallel()

	teams := make([]Team, 0, 10)
	for i := 1; i <= 10; i++ {
		teams = append(teams, Team{
			RosterID:  i,
			Wins:      10 - i,
			Losses:    i,
			PointsFor: float64(1000 - i*10),
			Rank:      i,
		})
	}
	// Bottom seed outscores everyone; it may only climb to rank 7.
	teams[9].PointsFor = 5000

	raced := PointsRace(teams)

	for i := 0; i < 6; i++ {
		if raced[i].RosterID != i+1 {
			t.Fatalf("qualifier %d roster = %d, want %d", i+1, raced[i].RosterID, i+1)
		}
	}
	if raced[6].RosterID != 10 {
		t.Fatalf("rank 7 roster = %d, want 10", raced[6].RosterID)
	}
	if raced[6].Rank != 7 {
		t.Fatalf("rank 7 value = %d, want 7", raced[6].Rank)
	}
	if got := rosterIDs(raced[7:]); !equalIDs(got, []int{7, 8, 9}) {
		t.Fatalf("tail order = %v, want [7 8 9]", got)
	}
}

func TestPointsRaceSmallLeague(t *testing.T) {
	t.Parallel()

	teams := []Team{
		{RosterID: 1, Wins: 2, PointsFor: 100, Rank: 1},
		{RosterID: 2, Wins: 1, PointsFor: 300, Rank: 2},
	}

	raced := PointsRace(teams)

	// Fewer teams than qualifier seats: nothing moves.
	if got := rosterIDs(raced); !equalIDs(got, []int{1, 2}) {
		t.Fatalf("order = %v, want [1 2]", got)
	}
}

func TestRankAllZeroStats(t *testing.T) {
	t.Parallel()

	teams := []Team{
		{RosterID: 3},
		{RosterID: 1},
		{RosterID: 2},
	}

	ranked := Rank(teams)

	if got := rosterIDs(ranked); !equalIDs(got, []int{1, 2, 3}) {
		t.Fatalf("order = %v, want roster id ascending", got)
	}
}
