package standings

import (
	"sort"

	"github.com/lzpck/tfl-snapshot/internal/domain/league"
)

// qualifierCount is how many teams make the playoff field on record alone.
// Seats below it are decided by the points race (dynasty) or the highest-points
// promotion (redraft).
const qualifierCount = 6

// Rank orders teams by the plain comparator (win% desc, points-for desc,
// points-against desc, roster id asc) and assigns dense ranks 1..N.
// The input slice is never mutated.
func Rank(teams []Team) []Team {
	out := clone(teams)
	sort.SliceStable(out, func(i, j int) bool { return lessPlain(out[i], out[j]) })
	return assignRanks(out)
}

// RankForFormat applies the format's comparator. Both formats skip the
// points-against step; redraft additionally promotes the highest-scoring
// non-qualifier into rank 7.
func RankForFormat(teams []Team, format league.Format) []Team {
	out := clone(teams)
	sort.SliceStable(out, func(i, j int) bool { return lessNoPointsAgainst(out[i], out[j]) })

	if format == league.FormatRedraft && len(out) > qualifierCount {
		promoteHighestScorer(out, qualifierCount)
	}

	return assignRanks(out)
}

// PointsRace re-ranks a list already sorted by the plain comparator: the top
// six keep their seats, everyone below is re-ordered purely by points-for.
func PointsRace(teams []Team) []Team {
	out := clone(teams)
	cut := qualifierCount
	if cut > len(out) {
		cut = len(out)
	}

	tail := out[cut:]
	sort.SliceStable(tail, func(i, j int) bool { return morePoints(tail[i], tail[j]) })

	return assignRanks(out)
}

func lessPlain(a, b Team) bool {
	if a.WinPct() != b.WinPct() {
		return a.WinPct() > b.WinPct()
	}
	if a.PointsFor != b.PointsFor {
		return a.PointsFor > b.PointsFor
	}
	if a.PointsAgainst != b.PointsAgainst {
		return a.PointsAgainst > b.PointsAgainst
	}
	return a.RosterID < b.RosterID
}

func lessNoPointsAgainst(a, b Team) bool {
	if a.WinPct() != b.WinPct() {
		return a.WinPct() > b.WinPct()
	}
	if a.PointsFor != b.PointsFor {
		return a.PointsFor > b.PointsFor
	}
	return a.RosterID < b.RosterID
}

func morePoints(a, b Team) bool {
	if a.PointsFor != b.PointsFor {
		return a.PointsFor > b.PointsFor
	}
	return a.RosterID < b.RosterID
}

// promoteHighestScorer splices the highest points-for team from sorted[cut:]
// into position cut, keeping the relative order of the teams it passes.
func promoteHighestScorer(sorted []Team, cut int) {
	best := cut
	for i := cut + 1; i < len(sorted); i++ {
		if morePoints(sorted[i], sorted[best]) {
			best = i
		}
	}

	promoted := sorted[best]
	copy(sorted[cut+1:best+1], sorted[cut:best])
	sorted[cut] = promoted
}

func assignRanks(teams []Team) []Team {
	for i := range teams {
		teams[i].Rank = i + 1
	}
	return teams
}

func clone(teams []Team) []Team {
	out := make([]Team, len(teams))
	copy(out, teams)
	return out
}
