package history

import (
	"testing"
	"time"

	"github.com/lzpck/tfl-snapshot/internal/domain/league"
)

func validRecord() SeasonRecord {
	return SeasonRecord{
		LeagueID: "987654",
		Format:   league.FormatDynasty,
		Season:   "2025",
		Champion: "Club A",
		RunnerUp: "Club B",
		FinalStandings: []FinalStanding{
			{Rank: 1, RosterID: 1, Name: "Club A", Wins: 11, Losses: 3, PointsFor: 1600.5},
			{Rank: 2, RosterID: 2, Name: "Club B", Wins: 10, Losses: 4, PointsFor: 1540.25},
		},
		ArchivedAt: time.Date(2026, 1, 5, 9, 0, 0, 0, time.UTC),
	}
}

func TestSeasonRecordValidate(t *testing.T) {
	t.Parallel()

	if err := validRecord().Validate(); err != nil {
		t.Fatalf("Validate() error = %v", err)
	}

	cases := []struct {
		name   string
		mutate func(*SeasonRecord)
	}{
		{name: "missing league id", mutate: func(r *SeasonRecord) { r.LeagueID = "" }},
		{name: "missing season", mutate: func(r *SeasonRecord) { r.Season = "" }},
		{name: "bad format", mutate: func(r *SeasonRecord) { r.Format = "bestball" }},
		{name: "no standings", mutate: func(r *SeasonRecord) { r.FinalStandings = nil }},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			record := validRecord()
			tc.mutate(&record)
			if err := record.Validate(); err == nil {
				t.Fatalf("Validate() error = nil, want error")
			}
		})
	}
}
