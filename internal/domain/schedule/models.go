package schedule

import (
	"sort"

	"github.com/preston-bernstein/nba-edge-service/internal/domain/teams"
)

// HomeAway marks which side of a game a row describes.
type HomeAway string

const (
	Home HomeAway = "home"
	Away HomeAway = "away"
)

// SeasonStage identifies the part of the season a game belongs to.
type SeasonStage int

const (
	StagePreseason          SeasonStage = 1
	StageRegularSeason      SeasonStage = 2
	StageInSeasonTournament SeasonStage = 3
	StagePostseason         SeasonStage = 4
)

// Row is the canonical per-team, per-game schedule record. Every fully resolved game
// produces two rows that share DateKey and ISOTimestamp and have opposite HomeAway.
type Row struct {
	DateKey        string      `json:"dateKey"`
	ISOTimestamp   string      `json:"isoTimestamp,omitempty"`
	LocalTimeLabel string      `json:"localTimeLabel"`
	TeamCode       teams.Code  `json:"teamCode"`
	TeamName       string      `json:"teamName"`
	HomeAway       HomeAway    `json:"homeAway"`
	OpponentCode   teams.Code  `json:"opponentCode,omitempty"`
	OpponentName   string      `json:"opponentName"`
	SeasonStage    SeasonStage `json:"seasonStageId"`
	GameID         string      `json:"gameId,omitempty"`
	Broadcast      string      `json:"broadcast,omitempty"`
}

// RowKey identifies a row for deduplication across sources.
type RowKey struct {
	DateKey      string
	TeamCode     teams.Code
	OpponentName string
}

// Key returns the deduplication key for the row.
func (r Row) Key() RowKey {
	return RowKey{DateKey: r.DateKey, TeamCode: r.TeamCode, OpponentName: r.OpponentName}
}

// Less orders rows by date, tip-off instant, team code and opponent.
func Less(a, b Row) bool {
	if a.DateKey != b.DateKey {
		return a.DateKey < b.DateKey
	}
	if a.ISOTimestamp != b.ISOTimestamp {
		return a.ISOTimestamp < b.ISOTimestamp
	}
	if a.TeamCode != b.TeamCode {
		return a.TeamCode < b.TeamCode
	}
	return a.OpponentName < b.OpponentName
}

// SortRows sorts rows in place in canonical order.
func SortRows(rows []Row) {
	sort.SliceStable(rows, func(i, j int) bool {
		return Less(rows[i], rows[j])
	})
}

// Day groups rows sharing a date key.
type Day struct {
	Date string `json:"date"`
	Rows []Row  `json:"rows"`
}

// GroupByDay buckets sorted rows by DateKey, preserving order.
func GroupByDay(rows []Row) []Day {
	var days []Day
	for _, row := range rows {
		if n := len(days); n > 0 && days[n-1].Date == row.DateKey {
			days[n-1].Rows = append(days[n-1].Rows, row)
			continue
		}
		days = append(days, Day{Date: row.DateKey, Rows: []Row{row}})
	}
	return days
}

// DayResponse is the payload returned by /schedule?date=YYYY-MM-DD.
type DayResponse struct {
	Date string `json:"date"`
	Rows []Row  `json:"rows"`
}

// NewDayResponse builds a DayResponse payload.
func NewDayResponse(date string, rows []Row) DayResponse {
	if rows == nil {
		rows = []Row{}
	}
	return DayResponse{
		Date: date,
		Rows: rows,
	}
}
