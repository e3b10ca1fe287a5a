package postgres

import (
	"time"
)

type seasonRecordTableModel struct {
	ID                  int64      `db:"id"`
	LeagueID            string     `db:"league_id"`
	Format              string     `db:"format"`
	Season              string     `db:"season"`
	Champion            string     `db:"champion"`
	RunnerUp            string     `db:"runner_up"`
	RegularSeasonWinner string     `db:"regular_season_winner"`
	PointsLeader        string     `db:"points_leader"`
	PointsLeaderTotal   float64    `db:"points_leader_total"`
	FinalStandings      []byte     `db:"final_standings"`
	ArchivedAt          time.Time  `db:"archived_at"`
	CreatedAt           time.Time  `db:"created_at"`
	UpdatedAt           time.Time  `db:"updated_at"`
	DeletedAt           *time.Time `db:"deleted_at"`
}

type seasonRecordInsertModel struct {
	LeagueID            string    `db:"league_id"`
	Format              string    `db:"format"`
	Season              string    `db:"season"`
	Champion            string    `db:"champion"`
	RunnerUp            string    `db:"runner_up"`
	RegularSeasonWinner string    `db:"regular_season_winner"`
	PointsLeader        string    `db:"points_leader"`
	PointsLeaderTotal   float64   `db:"points_leader_total"`
	FinalStandings      []byte    `db:"final_standings"`
	ArchivedAt          time.Time `db:"archived_at"`
}

type finalStandingDocument struct {
	Rank      int     `json:"rank"`
	RosterID  int     `json:"roster_id"`
	Name      string  `json:"name"`
	Wins      int     `json:"wins"`
	Losses    int     `json:"losses"`
	Ties      int     `json:"ties"`
	PointsFor float64 `json:"points_for"`
}
