package postgres

import (
	"context"
	"fmt"
	"strings"

	sonic "github.com/bytedance/sonic"
	"github.com/jmoiron/sqlx"

	"github.com/lzpck/tfl-snapshot/internal/domain/history"
	"github.com/lzpck/tfl-snapshot/internal/domain/league"
	qb "github.com/lzpck/tfl-snapshot/internal/platform/querybuilder"
)

type SeasonRecordRepository struct {
	db *sqlx.DB
}

func NewSeasonRecordRepository(db *sqlx.DB) *SeasonRecordRepository {
	return &SeasonRecordRepository{db: db}
}

func (r *SeasonRecordRepository) ListByFormat(ctx context.Context, format league.Format) ([]history.SeasonRecord, error) {
	query, args, err := qb.Select("*").From("season_records").
		Where(
			qb.Eq("format", string(format)),
			qb.IsNull("deleted_at"),
		).
		OrderBy("season DESC", "id").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build list season records query: %w", err)
	}

	var rows []seasonRecordTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("list season records: %w", err)
	}

	out := make([]history.SeasonRecord, 0, len(rows))
	for _, row := range rows {
		record, err := seasonRecordFromRow(row)
		if err != nil {
			return nil, err
		}
		out = append(out, record)
	}

	return out, nil
}

func (r *SeasonRecordRepository) Upsert(ctx context.Context, record history.SeasonRecord) error {
	standings, err := encodeFinalStandings(record.FinalStandings)
	if err != nil {
		return fmt.Errorf("encode final standings format=%s season=%s: %w", record.Format, record.Season, err)
	}

	insertModel := seasonRecordInsertModel{
		LeagueID:            strings.TrimSpace(record.LeagueID),
		Format:              string(record.Format),
		Season:              strings.TrimSpace(record.Season),
		Champion:            record.Champion,
		RunnerUp:            record.RunnerUp,
		RegularSeasonWinner: record.RegularSeasonWinner,
		PointsLeader:        record.PointsLeader,
		PointsLeaderTotal:   record.PointsLeaderTotal,
		FinalStandings:      standings,
		ArchivedAt:          record.ArchivedAt.UTC(),
	}

	query, args, err := qb.InsertModel("season_records", insertModel, `ON CONFLICT (format, season) WHERE deleted_at IS NULL
DO UPDATE SET
    league_id = EXCLUDED.league_id,
    champion = EXCLUDED.champion,
    runner_up = EXCLUDED.runner_up,
    regular_season_winner = EXCLUDED.regular_season_winner,
    points_leader = EXCLUDED.points_leader,
    points_leader_total = EXCLUDED.points_leader_total,
    final_standings = EXCLUDED.final_standings,
    archived_at = EXCLUDED.archived_at,
    updated_at = NOW()`)
	if err != nil {
		return fmt.Errorf("build upsert season record query: %w", err)
	}
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("upsert season record format=%s season=%s: %w", record.Format, record.Season, err)
	}

	return nil
}

func seasonRecordFromRow(row seasonRecordTableModel) (history.SeasonRecord, error) {
	standings, err := decodeFinalStandings(row.FinalStandings)
	if err != nil {
		return history.SeasonRecord{}, fmt.Errorf("decode final standings id=%d: %w", row.ID, err)
	}

	return history.SeasonRecord{
		LeagueID:            row.LeagueID,
		Format:              league.Format(row.Format),
		Season:              row.Season,
		Champion:            row.Champion,
		RunnerUp:            row.RunnerUp,
		RegularSeasonWinner: row.RegularSeasonWinner,
		PointsLeader:        row.PointsLeader,
		PointsLeaderTotal:   row.PointsLeaderTotal,
		FinalStandings:      standings,
		ArchivedAt:          row.ArchivedAt,
	}, nil
}

func encodeFinalStandings(standings []history.FinalStanding) ([]byte, error) {
	docs := make([]finalStandingDocument, 0, len(standings))
	for _, item := range standings {
		docs = append(docs, finalStandingDocument{
			Rank:      item.Rank,
			RosterID:  item.RosterID,
			Name:      item.Name,
			Wins:      item.Wins,
			Losses:    item.Losses,
			Ties:      item.Ties,
			PointsFor: item.PointsFor,
		})
	}

	return sonic.Marshal(docs)
}

func decodeFinalStandings(raw []byte) ([]history.FinalStanding, error) {
	if len(raw) == 0 {
		return nil, nil
	}

	var docs []finalStandingDocument
	if err := sonic.Unmarshal(raw, &docs); err != nil {
		return nil, err
	}

	out := make([]history.FinalStanding, 0, len(docs))
	for _, doc := range docs {
		out = append(out, history.FinalStanding{
			Rank:      doc.Rank,
			RosterID:  doc.RosterID,
			Name:      doc.Name,
			Wins:      doc.Wins,
			Losses:    doc.Losses,
			Ties:      doc.Ties,
			PointsFor: doc.PointsFor,
		})
	}

	return out, nil
}
