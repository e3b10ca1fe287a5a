package matchup

import (
	"errors"
	"fmt"

	"github.com/lzpck/tfl-snapshot/internal/domain/league"
	"github.com/lzpck/tfl-snapshot/internal/domain/standings"
)

var (
	ErrInvalidSchedule = errors.New("invalid schedule")
	ErrUnsupportedWeek = errors.New("unsupported week")
)

// fixedTableTeamCount is the roster size the dynasty tables were written for.
const fixedTableTeamCount = 10

// dynastyTables is the hand-authored dynasty regular-season schedule.
// Each week maps rank positions (0-based) into five head-to-head pairs.
// This is schedule data agreed by the league, not a derived rotation.
var dynastyTables = map[int][][2]int{
	10: {{0, 1}, {3, 4}, {5, 6}, {7, 8}, {2, 9}},
	11: {{0, 2}, {1, 3}, {4, 6}, {5, 8}, {7, 9}},
	12: {{0, 3}, {1, 4}, {2, 5}, {6, 9}, {7, 8}},
	13: {{0, 4}, {1, 5}, {2, 6}, {3, 7}, {8, 9}},
}

// RuleName derives the stable identifier of the pairing rule that fires for a
// format and week. It is a pure function of its inputs.
func RuleName(format league.Format, week int) (string, error) {
	schedule := league.ScheduleFor(format)

	switch {
	case format == league.FormatRedraft && schedule.IsRegularWeek(week):
		return fmt.Sprintf("%s-top%d", format, schedule.TeamCount), nil
	case format == league.FormatDynasty && schedule.IsRegularWeek(week):
		return fmt.Sprintf("%s-week-%d", format, week), nil
	case schedule.IsPlayoffWeek(week):
		round := week - schedule.PlayoffStartWeek + 1
		return fmt.Sprintf("%s-playoff-round-%d", format, round), nil
	default:
		return "", fmt.Errorf("%w: format=%s week=%d", ErrUnsupportedWeek, format, week)
	}
}

// PairConsecutive pairs rank 1 vs 2, 3 vs 4 and so on. An unpaired trailing
// team on an odd count gets no matchup that week.
func PairConsecutive(teams []standings.Team) []Pair {
	pairs := make([]Pair, 0, len(teams)/2)
	for i := 0; i+1 < len(teams); i += 2 {
		pairs = append(pairs, Pair{
			Home:   teams[i],
			Away:   teams[i+1],
			Status: StatusScheduled,
		})
	}
	return pairs
}

// PairFixedTable pairs teams by the literal dynasty table for the week.
// Teams must be in rank order and the count must match the table size.
func PairFixedTable(teams []standings.Team, week int) ([]Pair, error) {
	table, ok := dynastyTables[week]
	if !ok {
		return nil, fmt.Errorf("%w: no fixed pairing table for week %d", ErrInvalidSchedule, week)
	}
	if len(teams) != fixedTableTeamCount {
		return nil, fmt.Errorf("%w: fixed pairing table needs %d teams, got %d", ErrInvalidSchedule, fixedTableTeamCount, len(teams))
	}

	pairs := make([]Pair, 0, len(table))
	for _, slot := range table {
		pairs = append(pairs, Pair{
			Home:   teams[slot[0]],
			Away:   teams[slot[1]],
			Status: StatusScheduled,
		})
	}
	return pairs, nil
}

// PairRegularSeason selects the regular-season strategy for format and week.
// Playoff weeks are bracket-derived and resolved by the caller against the
// reconstructed bracket.
func PairRegularSeason(teams []standings.Team, format league.Format, week int) ([]Pair, error) {
	schedule := league.ScheduleFor(format)
	if !schedule.IsRegularWeek(week) {
		return nil, fmt.Errorf("%w: format=%s week=%d", ErrUnsupportedWeek, format, week)
	}

	if format == league.FormatDynasty {
		return PairFixedTable(teams, week)
	}
	return PairConsecutive(teams), nil
}
