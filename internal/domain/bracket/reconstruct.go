package bracket

import (
	"fmt"
	"sort"

	"github.com/lzpck/tfl-snapshot/internal/domain/matchup"
	"github.com/lzpck/tfl-snapshot/internal/domain/standings"
)

// PlaceholderRank marks synthesized teams whose seed is not known yet.
const PlaceholderRank = 99

// Reconstruct builds the round-by-round bracket view from sparse match
// records. teams resolves roster ids to live teams; scoresByRound maps a
// round number to each roster's points for that round's week. Inputs are
// never mutated.
func Reconstruct(matches []Match, teams []standings.Team, scoresByRound map[int]map[int]float64) []Round {
	if len(matches) == 0 {
		return nil
	}

	byID := make(map[int]Match, len(matches))
	byRound := make(map[int][]Match)
	finalRound := 0
	for _, m := range matches {
		byID[m.ID] = m
		byRound[m.Round] = append(byRound[m.Round], m)
		if m.Round > finalRound {
			finalRound = m.Round
		}
	}

	roster := make(map[int]standings.Team, len(teams))
	for _, t := range teams {
		roster[t.RosterID] = t
	}

	numbers := make([]int, 0, len(byRound))
	for number := range byRound {
		numbers = append(numbers, number)
	}
	sort.Ints(numbers)

	rounds := make([]Round, 0, len(numbers))
	for _, number := range numbers {
		records := byRound[number]
		sort.SliceStable(records, func(i, j int) bool { return records[i].ID < records[j].ID })

		surfaced := surfaceRound(records, number, finalRound)
		resolved := make([]ResolvedMatch, 0, len(surfaced))
		for i, record := range surfaced {
			m := resolveMatch(record, byID, roster, scoresByRound[number])
			m.Title = titleFor(i, number, finalRound)
			resolved = append(resolved, m)
		}

		rounds = append(rounds, Round{Number: number, Matches: resolved})
	}

	return rounds
}

// RoundForWeek maps a playoff week onto its 1-based bracket round.
func RoundForWeek(week, playoffStartWeek int) int {
	return week - playoffStartWeek + 1
}

// PairsForRound flattens one reconstructed round into matchup pairs.
func PairsForRound(rounds []Round, number int) ([]matchup.Pair, error) {
	for _, round := range rounds {
		if round.Number != number {
			continue
		}

		pairs := make([]matchup.Pair, 0, len(round.Matches))
		for _, m := range round.Matches {
			pairs = append(pairs, matchup.Pair{
				Home:   m.Home,
				Away:   m.Away,
				Status: m.Status,
			})
		}
		return pairs, nil
	}

	return nil, fmt.Errorf("%w: bracket has no round %d", matchup.ErrUnsupportedWeek, number)
}

// surfaceRound applies the display policy with titles assigned relative to
// the final round: the final round keeps the championship and 3rd-place
// games, the penultimate round keeps its two semi-finals, earlier rounds are
// surfaced whole. Consolation matches beyond those positions are dropped.
func surfaceRound(records []Match, number, finalRound int) []Match {
	switch number {
	case finalRound:
		if len(records) > 2 {
			records = records[:2]
		}
	case finalRound - 1:
		if len(records) > 2 {
			records = records[:2]
		}
	}
	return records
}

func titleFor(position, number, finalRound int) string {
	switch number {
	case finalRound:
		if position == 0 {
			return TitleFinal
		}
		return TitleThirdPlace
	case finalRound - 1:
		return TitleSemiFinal
	default:
		return TitleQuarterFinal
	}
}

func resolveMatch(record Match, byID map[int]Match, roster map[int]standings.Team, scores map[int]float64) ResolvedMatch {
	home := resolveSlot(record.Home, byID, roster)
	away := resolveSlot(record.Away, byID, roster)

	homePoints := scores[home.RosterID]
	awayPoints := scores[away.RosterID]

	return ResolvedMatch{
		Round:          record.Round,
		ID:             record.ID,
		Home:           home,
		Away:           away,
		HomePoints:     homePoints,
		AwayPoints:     awayPoints,
		WinnerRosterID: record.Winner,
		Status:         matchup.StatusFromScores(homePoints, awayPoints, record.Winner != 0),
	}
}

func resolveSlot(slot Slot, byID map[int]Match, roster map[int]standings.Team) standings.Team {
	switch {
	case slot.RosterID != 0:
		return resolveRoster(slot.RosterID, roster)
	case slot.WinnerOf != 0:
		if upstream, ok := byID[slot.WinnerOf]; ok && upstream.Winner != 0 {
			return resolveRoster(upstream.Winner, roster)
		}
		return placeholder(fmt.Sprintf("Winner of Match %d", slot.WinnerOf))
	case slot.LoserOf != 0:
		if upstream, ok := byID[slot.LoserOf]; ok && upstream.Loser != 0 {
			return resolveRoster(upstream.Loser, roster)
		}
		return placeholder(fmt.Sprintf("Loser of Match %d", slot.LoserOf))
	default:
		return placeholder("TBD")
	}
}

func resolveRoster(rosterID int, roster map[int]standings.Team) standings.Team {
	if team, ok := roster[rosterID]; ok {
		return team
	}

	team := placeholder(fmt.Sprintf("Team-%d", rosterID))
	team.RosterID = rosterID
	return team
}

func placeholder(name string) standings.Team {
	return standings.Team{
		Name: name,
		Rank: PlaceholderRank,
	}
}
