package httpapi

import (
	"context"
	"time"

	"github.com/lzpck/tfl-snapshot/internal/domain/bracket"
	"github.com/lzpck/tfl-snapshot/internal/domain/history"
	"github.com/lzpck/tfl-snapshot/internal/domain/league"
	"github.com/lzpck/tfl-snapshot/internal/domain/standings"
	"github.com/lzpck/tfl-snapshot/internal/usecase"
)

type standingsDTO struct {
	Format string            `json:"format"`
	View   string            `json:"view"`
	Teams  []teamStandingDTO `json:"teams"`
}

type teamStandingDTO struct {
	Rank          int     `json:"rank"`
	RosterID      int     `json:"rosterId"`
	Name          string  `json:"name"`
	Wins          int     `json:"wins"`
	Losses        int     `json:"losses"`
	Ties          int     `json:"ties"`
	WinPct        float64 `json:"winPct"`
	PointsFor     float64 `json:"pointsFor"`
	PointsAgainst float64 `json:"pointsAgainst"`
}

type teamRefDTO struct {
	Rank     int    `json:"rank"`
	RosterID int    `json:"rosterId"`
	Name     string `json:"name"`
}

type matchupPairDTO struct {
	Home   teamRefDTO `json:"home"`
	Away   teamRefDTO `json:"away"`
	Status string     `json:"status"`
}

type weekMatchupsDTO struct {
	Format   string           `json:"format"`
	Week     int              `json:"week"`
	Rule     string           `json:"rule"`
	Matchups []matchupPairDTO `json:"matchups"`
}

type bracketDTO struct {
	Format string            `json:"format"`
	Rounds []bracketRoundDTO `json:"rounds"`
}

type bracketRoundDTO struct {
	Round   int               `json:"round"`
	Matches []bracketMatchDTO `json:"matches"`
}

type bracketMatchDTO struct {
	ID         int        `json:"id"`
	Title      string     `json:"title"`
	Home       teamRefDTO `json:"home"`
	Away       teamRefDTO `json:"away"`
	HomePoints float64    `json:"homePoints"`
	AwayPoints float64    `json:"awayPoints"`
	Status     string     `json:"status"`
}

type seasonRecordDTO struct {
	LeagueID            string             `json:"leagueId"`
	Format              string             `json:"format"`
	Season              string             `json:"season"`
	Champion            string             `json:"champion"`
	RunnerUp            string             `json:"runnerUp"`
	RegularSeasonWinner string             `json:"regularSeasonWinner"`
	PointsLeader        string             `json:"pointsLeader"`
	PointsLeaderTotal   float64            `json:"pointsLeaderTotal"`
	FinalStandings      []finalStandingDTO `json:"finalStandings"`
	ArchivedAt          string             `json:"archivedAt"`
}

type finalStandingDTO struct {
	Rank      int     `json:"rank"`
	RosterID  int     `json:"rosterId"`
	Name      string  `json:"name"`
	Wins      int     `json:"wins"`
	Losses    int     `json:"losses"`
	Ties      int     `json:"ties"`
	PointsFor float64 `json:"pointsFor"`
}

func standingsToDTO(ctx context.Context, format league.Format, view string, ranked []standings.Team) standingsDTO {
	ctx, span := startSpan(ctx, "httpapi.standingsToDTO")
	defer span.End()

	if view == "" {
		view = "standings"
	}

	teams := make([]teamStandingDTO, 0, len(ranked))
	for _, team := range ranked {
		teams = append(teams, teamStandingDTO{
			Rank:          team.Rank,
			RosterID:      team.RosterID,
			Name:          team.Name,
			Wins:          team.Wins,
			Losses:        team.Losses,
			Ties:          team.Ties,
			WinPct:        team.WinPct(),
			PointsFor:     team.PointsFor,
			PointsAgainst: team.PointsAgainst,
		})
	}

	return standingsDTO{
		Format: string(format),
		View:   view,
		Teams:  teams,
	}
}

func teamToRefDTO(team standings.Team) teamRefDTO {
	return teamRefDTO{
		Rank:     team.Rank,
		RosterID: team.RosterID,
		Name:     team.Name,
	}
}

func weekMatchupsToDTO(ctx context.Context, week usecase.WeekMatchups) weekMatchupsDTO {
	ctx, span := startSpan(ctx, "httpapi.weekMatchupsToDTO")
	defer span.End()

	pairs := make([]matchupPairDTO, 0, len(week.Pairs))
	for _, pair := range week.Pairs {
		pairs = append(pairs, matchupPairDTO{
			Home:   teamToRefDTO(pair.Home),
			Away:   teamToRefDTO(pair.Away),
			Status: string(pair.Status),
		})
	}

	return weekMatchupsDTO{
		Format:   string(week.Format),
		Week:     week.Week,
		Rule:     week.Rule,
		Matchups: pairs,
	}
}

func bracketToDTO(ctx context.Context, format league.Format, rounds []bracket.Round) bracketDTO {
	ctx, span := startSpan(ctx, "httpapi.bracketToDTO")
	defer span.End()

	roundItems := make([]bracketRoundDTO, 0, len(rounds))
	for _, round := range rounds {
		matches := make([]bracketMatchDTO, 0, len(round.Matches))
		for _, m := range round.Matches {
			matches = append(matches, bracketMatchDTO{
				ID:         m.ID,
				Title:      m.Title,
				Home:       teamToRefDTO(m.Home),
				Away:       teamToRefDTO(m.Away),
				HomePoints: m.HomePoints,
				AwayPoints: m.AwayPoints,
				Status:     string(m.Status),
			})
		}
		roundItems = append(roundItems, bracketRoundDTO{
			Round:   round.Number,
			Matches: matches,
		})
	}

	return bracketDTO{
		Format: string(format),
		Rounds: roundItems,
	}
}

func seasonRecordToDTO(ctx context.Context, record history.SeasonRecord) seasonRecordDTO {
	ctx, span := startSpan(ctx, "httpapi.seasonRecordToDTO")
	defer span.End()

	rows := make([]finalStandingDTO, 0, len(record.FinalStandings))
	for _, row := range record.FinalStandings {
		rows = append(rows, finalStandingDTO{
			Rank:      row.Rank,
			RosterID:  row.RosterID,
			Name:      row.Name,
			Wins:      row.Wins,
			Losses:    row.Losses,
			Ties:      row.Ties,
			PointsFor: row.PointsFor,
		})
	}

	return seasonRecordDTO{
		LeagueID:            record.LeagueID,
		Format:              string(record.Format),
		Season:              record.Season,
		Champion:            record.Champion,
		RunnerUp:            record.RunnerUp,
		RegularSeasonWinner: record.RegularSeasonWinner,
		PointsLeader:        record.PointsLeader,
		PointsLeaderTotal:   record.PointsLeaderTotal,
		FinalStandings:      rows,
		ArchivedAt:          record.ArchivedAt.UTC().Format(time.RFC3339),
	}
}

