package usecase

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/sourcegraph/conc"

	"github.com/lzpck/tfl-snapshot/internal/domain/bracket"
	"github.com/lzpck/tfl-snapshot/internal/domain/league"
	"github.com/lzpck/tfl-snapshot/internal/domain/standings"
	"github.com/lzpck/tfl-snapshot/internal/platform/cache"
)

// BracketService rebuilds the winners playoff bracket from the upstream
// bracket feed plus the weekly scores of each playoff week.
type BracketService struct {
	provider LeagueDataProvider
	rosters  *RosterService
	leagues  LeagueDirectory
	store    *cache.Store
	ttl      time.Duration
}

func NewBracketService(provider LeagueDataProvider, rosters *RosterService, leagues LeagueDirectory, store *cache.Store, ttl time.Duration) *BracketService {
	return &BracketService{
		provider: provider,
		rosters:  rosters,
		leagues:  leagues,
		store:    store,
		ttl:      ttl,
	}
}

func (s *BracketService) Bracket(ctx context.Context, format league.Format) ([]bracket.Round, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.BracketService.Bracket")
	defer span.End()

	if _, ok := league.AllFormats[format]; !ok {
		return nil, fmt.Errorf("%w: unknown league format %q", ErrInvalidInput, format)
	}

	key := "bracket:" + string(format)
	value, err := s.store.GetOrLoad(ctx, key, s.ttl, func(ctx context.Context) (any, error) {
		return s.rebuild(ctx, format)
	})
	if err != nil {
		return nil, fmt.Errorf("bracket format=%s: %w", format, err)
	}

	rounds, ok := value.([]bracket.Round)
	if !ok {
		return nil, fmt.Errorf("bracket format=%s: unexpected cache entry %T", format, value)
	}
	return rounds, nil
}

func (s *BracketService) rebuild(ctx context.Context, format league.Format) ([]bracket.Round, error) {
	leagueID, err := s.leagues.IDFor(format)
	if err != nil {
		return nil, err
	}

	var (
		records    []ExternalBracketMatch
		teams      []standings.Team
		recordErr  error
		teamErr    error
		fetchGroup conc.WaitGroup
	)
	fetchGroup.Go(func() {
		records, recordErr = s.provider.FetchWinnersBracket(ctx, leagueID)
	})
	fetchGroup.Go(func() {
		var raw []standings.Team
		raw, teamErr = s.rosters.Teams(ctx, format)
		if teamErr == nil {
			teams = standings.RankForFormat(raw, format)
		}
	})
	fetchGroup.Wait()

	if recordErr != nil {
		return nil, recordErr
	}
	if teamErr != nil {
		return nil, teamErr
	}

	scores, err := s.playoffScores(ctx, leagueID, league.ScheduleFor(format))
	if err != nil {
		return nil, err
	}

	matches := make([]bracket.Match, 0, len(records))
	for _, record := range records {
		matches = append(matches, bracket.Match{
			Round:  record.Round,
			ID:     record.MatchID,
			Home:   slotFromFeed(record.Team1, record.Team1WinnerOf, record.Team1LoserOf),
			Away:   slotFromFeed(record.Team2, record.Team2WinnerOf, record.Team2LoserOf),
			Winner: record.Winner,
			Loser:  record.Loser,
		})
	}

	return bracket.Reconstruct(matches, teams, scores), nil
}

// playoffScores fetches every playoff week in parallel and keys the points by
// bracket round, then roster id.
func (s *BracketService) playoffScores(ctx context.Context, leagueID string, schedule league.Schedule) (map[int]map[int]float64, error) {
	scores := make(map[int]map[int]float64)
	if schedule.PlayoffStartWeek <= 0 {
		return scores, nil
	}

	var (
		mu         sync.Mutex
		firstErr   error
		fetchGroup conc.WaitGroup
	)
	for week := schedule.PlayoffStartWeek; week <= schedule.FinalWeek; week++ {
		week := week
		fetchGroup.Go(func() {
			matchups, err := s.provider.FetchMatchups(ctx, leagueID, week)

			mu.Lock()
			defer mu.Unlock()
			if err != nil {
				if firstErr == nil {
					firstErr = fmt.Errorf("playoff scores week=%d: %w", week, err)
				}
				return
			}
			round := bracket.RoundForWeek(week, schedule.PlayoffStartWeek)
			byRoster := make(map[int]float64, len(matchups))
			for _, m := range matchups {
				byRoster[m.RosterID] = m.Points
			}
			scores[round] = byRoster
		})
	}
	fetchGroup.Wait()

	if firstErr != nil {
		return nil, firstErr
	}
	return scores, nil
}

func slotFromFeed(rosterID, winnerOf, loserOf int) bracket.Slot {
	switch {
	case rosterID > 0:
		return bracket.Slot{RosterID: rosterID}
	case winnerOf > 0:
		return bracket.Slot{WinnerOf: winnerOf}
	case loserOf > 0:
		return bracket.Slot{LoserOf: loserOf}
	default:
		return bracket.Slot{}
	}
}
