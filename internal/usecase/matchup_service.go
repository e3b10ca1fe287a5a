package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/lzpck/tfl-snapshot/internal/domain/bracket"
	"github.com/lzpck/tfl-snapshot/internal/domain/league"
	"github.com/lzpck/tfl-snapshot/internal/domain/matchup"
	"github.com/lzpck/tfl-snapshot/internal/domain/standings"
	"github.com/lzpck/tfl-snapshot/internal/platform/cache"
)

// WeekMatchups is the pairing of one week: the deterministic regular-season
// projection, or the surfaced bracket round during the playoffs.
type WeekMatchups struct {
	Format league.Format
	Week   int
	Rule   string
	Pairs  []matchup.Pair
}

// MatchupService resolves who plays whom in a given week. Regular-season
// weeks are projected from the current standings; playoff weeks come from
// the reconstructed bracket.
type MatchupService struct {
	provider LeagueDataProvider
	rosters  *RosterService
	brackets *BracketService
	leagues  LeagueDirectory
	store    *cache.Store
	ttl      time.Duration
}

func NewMatchupService(provider LeagueDataProvider, rosters *RosterService, brackets *BracketService, leagues LeagueDirectory, store *cache.Store, ttl time.Duration) *MatchupService {
	return &MatchupService{
		provider: provider,
		rosters:  rosters,
		brackets: brackets,
		leagues:  leagues,
		store:    store,
		ttl:      ttl,
	}
}

func (s *MatchupService) Week(ctx context.Context, format league.Format, week int) (WeekMatchups, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.MatchupService.Week")
	defer span.End()

	if _, ok := league.AllFormats[format]; !ok {
		return WeekMatchups{}, fmt.Errorf("%w: unknown league format %q", ErrInvalidInput, format)
	}
	if week < 1 {
		return WeekMatchups{}, fmt.Errorf("%w: week must be greater than zero", ErrInvalidInput)
	}

	rule, err := matchup.RuleName(format, week)
	if err != nil {
		return WeekMatchups{}, err
	}

	key := fmt.Sprintf("matchups:%s:%d", format, week)
	value, err := s.store.GetOrLoad(ctx, key, s.ttl, func(ctx context.Context) (any, error) {
		schedule := league.ScheduleFor(format)
		if schedule.IsPlayoffWeek(week) {
			return s.playoffWeek(ctx, format, schedule, week)
		}
		return s.regularWeek(ctx, format, week)
	})
	if err != nil {
		return WeekMatchups{}, fmt.Errorf("matchups format=%s week=%d: %w", format, week, err)
	}

	pairs, ok := value.([]matchup.Pair)
	if !ok {
		return WeekMatchups{}, fmt.Errorf("matchups format=%s week=%d: unexpected cache entry %T", format, week, value)
	}

	return WeekMatchups{
		Format: format,
		Week:   week,
		Rule:   rule,
		Pairs:  pairs,
	}, nil
}

func (s *MatchupService) regularWeek(ctx context.Context, format league.Format, week int) ([]matchup.Pair, error) {
	teams, err := s.rosters.Teams(ctx, format)
	if err != nil {
		return nil, err
	}

	ranked := standings.RankForFormat(teams, format)
	pairs, err := matchup.PairRegularSeason(ranked, format, week)
	if err != nil {
		return nil, err
	}

	return s.applyLiveScores(ctx, format, week, pairs)
}

func (s *MatchupService) playoffWeek(ctx context.Context, format league.Format, schedule league.Schedule, week int) ([]matchup.Pair, error) {
	rounds, err := s.brackets.Bracket(ctx, format)
	if err != nil {
		return nil, err
	}
	return bracket.PairsForRound(rounds, bracket.RoundForWeek(week, schedule.PlayoffStartWeek))
}

// applyLiveScores upgrades projected pairings from scheduled to in_progress
// when the week's score feed already shows points for either side. A missing
// feed never fails the projection.
func (s *MatchupService) applyLiveScores(ctx context.Context, format league.Format, week int, pairs []matchup.Pair) ([]matchup.Pair, error) {
	leagueID, err := s.leagues.IDFor(format)
	if err != nil {
		return nil, err
	}

	live, err := s.provider.FetchMatchups(ctx, leagueID, week)
	if err != nil || len(live) == 0 {
		return pairs, nil
	}

	points := make(map[int]float64, len(live))
	for _, m := range live {
		points[m.RosterID] = m.Points
	}
	for i := range pairs {
		home := points[pairs[i].Home.RosterID]
		away := points[pairs[i].Away.RosterID]
		pairs[i].Status = matchup.StatusFromScores(home, away, false)
	}
	return pairs, nil
}
