package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/lzpck/tfl-snapshot/internal/domain/league"
	"github.com/lzpck/tfl-snapshot/internal/domain/standings"
	"github.com/lzpck/tfl-snapshot/internal/platform/cache"
)

// StandingsService serves ranked tables and the points-race view, cached per
// format so a burst of readers costs one upstream round trip.
type StandingsService struct {
	rosters *RosterService
	store   *cache.Store
	ttl     time.Duration
}

func NewStandingsService(rosters *RosterService, store *cache.Store, ttl time.Duration) *StandingsService {
	return &StandingsService{
		rosters: rosters,
		store:   store,
		ttl:     ttl,
	}
}

func (s *StandingsService) Standings(ctx context.Context, format league.Format) ([]standings.Team, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.StandingsService.Standings")
	defer span.End()

	key := "standings:" + string(format)
	return s.rankedTable(ctx, format, key, func(teams []standings.Team) []standings.Team {
		return standings.RankForFormat(teams, format)
	})
}

// PointsRace re-ranks the current table with the playoff field frozen and the
// remaining teams ordered by points scored. The frozen field comes from the
// plain comparator, not the format comparator, so it is ranked separately.
func (s *StandingsService) PointsRace(ctx context.Context, format league.Format) ([]standings.Team, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.StandingsService.PointsRace")
	defer span.End()

	key := "standings:plain:" + string(format)
	ranked, err := s.rankedTable(ctx, format, key, standings.Rank)
	if err != nil {
		return nil, err
	}
	return standings.PointsRace(ranked), nil
}

func (s *StandingsService) rankedTable(ctx context.Context, format league.Format, key string, rank func([]standings.Team) []standings.Team) ([]standings.Team, error) {
	value, err := s.store.GetOrLoad(ctx, key, s.ttl, func(ctx context.Context) (any, error) {
		teams, err := s.rosters.Teams(ctx, format)
		if err != nil {
			return nil, err
		}
		return rank(teams), nil
	})
	if err != nil {
		return nil, fmt.Errorf("standings format=%s: %w", format, err)
	}

	ranked, ok := value.([]standings.Team)
	if !ok {
		return nil, fmt.Errorf("standings format=%s: unexpected cache entry %T", format, value)
	}
	return ranked, nil
}
