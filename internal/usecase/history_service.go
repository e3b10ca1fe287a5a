package usecase

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/panjf2000/ants/v2"

	"github.com/lzpck/tfl-snapshot/internal/domain/bracket"
	"github.com/lzpck/tfl-snapshot/internal/domain/history"
	"github.com/lzpck/tfl-snapshot/internal/domain/league"
	"github.com/lzpck/tfl-snapshot/internal/domain/matchup"
	"github.com/lzpck/tfl-snapshot/internal/domain/standings"
)

const archiveWorkerCount = 4

// HistoryService lists archived seasons and snapshots the current one once
// its championship is decided.
type HistoryService struct {
	repo     history.Repository
	provider LeagueDataProvider
	rosters  *RosterService
	brackets *BracketService
	leagues  LeagueDirectory
	now      func() time.Time
}

func NewHistoryService(repo history.Repository, provider LeagueDataProvider, rosters *RosterService, brackets *BracketService, leagues LeagueDirectory) *HistoryService {
	return &HistoryService{
		repo:     repo,
		provider: provider,
		rosters:  rosters,
		brackets: brackets,
		leagues:  leagues,
		now:      time.Now,
	}
}

func (s *HistoryService) List(ctx context.Context, format league.Format) ([]history.SeasonRecord, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.HistoryService.List")
	defer span.End()

	if _, ok := league.AllFormats[format]; !ok {
		return nil, fmt.Errorf("%w: unknown league format %q", ErrInvalidInput, format)
	}

	records, err := s.repo.ListByFormat(ctx, format)
	if err != nil {
		return nil, fmt.Errorf("list season history format=%s: %w", format, err)
	}
	return records, nil
}

// Archive freezes the season that the configured league currently reports:
// final standings, champion and runner-up from the decided championship game,
// and the points leader from the summed weekly scores.
func (s *HistoryService) Archive(ctx context.Context, format league.Format) (history.SeasonRecord, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.HistoryService.Archive")
	defer span.End()

	if _, ok := league.AllFormats[format]; !ok {
		return history.SeasonRecord{}, fmt.Errorf("%w: unknown league format %q", ErrInvalidInput, format)
	}

	leagueID, err := s.leagues.IDFor(format)
	if err != nil {
		return history.SeasonRecord{}, err
	}

	upstream, err := s.provider.FetchLeague(ctx, leagueID)
	if err != nil {
		return history.SeasonRecord{}, fmt.Errorf("archive season format=%s: %w", format, err)
	}

	teams, err := s.rosters.Teams(ctx, format)
	if err != nil {
		return history.SeasonRecord{}, fmt.Errorf("archive season format=%s: %w", format, err)
	}
	ranked := standings.RankForFormat(teams, format)

	rounds, err := s.brackets.Bracket(ctx, format)
	if err != nil {
		return history.SeasonRecord{}, fmt.Errorf("archive season format=%s: %w", format, err)
	}

	champion, runnerUp, err := championshipResult(rounds)
	if err != nil {
		return history.SeasonRecord{}, fmt.Errorf("archive season format=%s: %w", format, err)
	}

	leader, leaderTotal := s.pointsLeader(ctx, leagueID, league.ScheduleFor(format), ranked)

	record := history.SeasonRecord{
		LeagueID:            leagueID,
		Format:              format,
		Season:              upstream.Season,
		Champion:            champion,
		RunnerUp:            runnerUp,
		RegularSeasonWinner: regularSeasonWinner(ranked),
		PointsLeader:        leader,
		PointsLeaderTotal:   leaderTotal,
		FinalStandings:      finalStandings(ranked),
		ArchivedAt:          s.now().UTC(),
	}
	if err := record.Validate(); err != nil {
		return history.SeasonRecord{}, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	if err := s.repo.Upsert(ctx, record); err != nil {
		return history.SeasonRecord{}, fmt.Errorf("store season record format=%s season=%s: %w", format, record.Season, err)
	}
	return record, nil
}

// pointsLeader sums every week's scores with a bounded worker pool. When the
// weekly feed is unavailable the season totals from the rosters stand in.
func (s *HistoryService) pointsLeader(ctx context.Context, leagueID string, schedule league.Schedule, ranked []standings.Team) (string, float64) {
	totals := make(map[int]float64, len(ranked))

	pool, err := ants.NewPool(archiveWorkerCount)
	if err == nil {
		defer pool.Release()

		var (
			mu sync.Mutex
			wg sync.WaitGroup
		)
		for week := 1; week <= schedule.FinalWeek; week++ {
			week := week
			wg.Add(1)
			submitErr := pool.Submit(func() {
				defer wg.Done()
				matchups, fetchErr := s.provider.FetchMatchups(ctx, leagueID, week)
				if fetchErr != nil {
					return
				}
				mu.Lock()
				for _, m := range matchups {
					totals[m.RosterID] += m.Points
				}
				mu.Unlock()
			})
			if submitErr != nil {
				wg.Done()
			}
		}
		wg.Wait()
	}

	leader, leaderTotal := "", 0.0
	for _, team := range ranked {
		total, ok := totals[team.RosterID]
		if !ok {
			total = team.PointsFor
		}
		if leader == "" || total > leaderTotal {
			leader, leaderTotal = team.Name, total
		}
	}
	return leader, leaderTotal
}

// championshipResult reads the decided Final out of the last bracket round.
func championshipResult(rounds []bracket.Round) (champion, runnerUp string, err error) {
	for _, round := range rounds {
		for _, m := range round.Matches {
			if m.Title != bracket.TitleFinal {
				continue
			}
			if m.Status != matchup.StatusFinal {
				return "", "", fmt.Errorf("%w: championship game is not final yet", ErrInvalidInput)
			}
			if m.WinnerRosterID == m.Home.RosterID {
				return m.Home.Name, m.Away.Name, nil
			}
			return m.Away.Name, m.Home.Name, nil
		}
	}
	return "", "", fmt.Errorf("%w: bracket has no championship game", ErrInvalidInput)
}

func regularSeasonWinner(ranked []standings.Team) string {
	for _, team := range ranked {
		if team.Rank == 1 {
			return team.Name
		}
	}
	return ""
}

func finalStandings(ranked []standings.Team) []history.FinalStanding {
	out := make([]history.FinalStanding, 0, len(ranked))
	for _, team := range ranked {
		out = append(out, history.FinalStanding{
			Rank:      team.Rank,
			RosterID:  team.RosterID,
			Name:      team.Name,
			Wins:      team.Wins,
			Losses:    team.Losses,
			Ties:      team.Ties,
			PointsFor: team.PointsFor,
		})
	}
	return out
}
