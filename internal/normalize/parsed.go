package normalize

import (
	"bytes"
	"encoding/json"
	"strconv"
	"time"

	"github.com/preston-bernstein/nba-edge-service/internal/domain/schedule"
)

// Shape tags which upstream payload layout a schedule was parsed from.
type Shape string

const (
	ShapeUnknown        Shape = "unknown"
	ShapeLeagueSchedule Shape = "league_schedule"
	ShapeLegacy         Shape = "legacy"
	ShapeCalendar       Shape = "calendar"
)

// Side is one team of an upstream game before identity resolution.
type Side struct {
	Name    string
	Tricode string
	NBAID   int
	Score   string
}

// RawGame is an upstream game in a shape-independent form.
type RawGame struct {
	GameID    string
	Home      Side
	Away      Side
	Start     time.Time
	HasClock  bool
	Date      string
	Stage     schedule.SeasonStage
	Status    string
	Final     bool
	Broadcast string
}

// ParsedSchedule is the tagged result of probing a payload against the known shapes.
// Skipped counts individual records that matched the shape but could not be read.
type ParsedSchedule struct {
	Shape   Shape
	Games   []RawGame
	Skipped int
}

type shapeParser struct {
	shape Shape
	parse func([]byte) (ParsedSchedule, bool)
}

// parsers run in priority order; the first that recognises the payload wins.
var parsers = []shapeParser{
	{ShapeLeagueSchedule, parseLeagueSchedule},
	{ShapeLegacy, parseLegacy},
	{ShapeCalendar, parseCalendar},
}

// Parse detects the payload shape structurally and extracts its games. Payloads that match
// no known shape return ShapeUnknown with no games.
func Parse(payload []byte) ParsedSchedule {
	trimmed := bytes.TrimSpace(payload)
	if len(trimmed) == 0 || !json.Valid(trimmed) {
		return ParsedSchedule{Shape: ShapeUnknown}
	}
	for _, p := range parsers {
		if parsed, ok := p.parse(trimmed); ok {
			parsed.Shape = p.shape
			return parsed
		}
	}
	return ParsedSchedule{Shape: ShapeUnknown}
}

// flexString accepts JSON strings, numbers and null.
type flexString string

func (f *flexString) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		*f = ""
		return nil
	}
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*f = flexString(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return err
	}
	*f = flexString(n.String())
	return nil
}

// flexInt accepts JSON numbers, numeric strings and null.
type flexInt int

func (f *flexInt) UnmarshalJSON(data []byte) error {
	var s flexString
	if err := s.UnmarshalJSON(data); err != nil {
		return err
	}
	if s == "" {
		*f = 0
		return nil
	}
	n, err := strconv.Atoi(string(s))
	if err != nil {
		return err
	}
	*f = flexInt(n)
	return nil
}

// parseInstant reads the timestamp layouts upstream feeds use. Values without an
// offset are read in loc.
func parseInstant(value string, loc *time.Location) (time.Time, bool) {
	for _, layout := range []string{time.RFC3339Nano, "20060102T150405Z"} {
		if t, err := time.Parse(layout, value); err == nil {
			return t.UTC(), true
		}
	}
	if t, err := time.ParseInLocation("2006-01-02T15:04:05", value, loc); err == nil {
		return t.UTC(), true
	}
	return time.Time{}, false
}

// parseCivilDate reads YYYY-MM-DD (optionally with a trailing time) or YYYYMMDD.
func parseCivilDate(value string) (string, bool) {
	if len(value) >= 10 {
		if t, err := time.Parse("2006-01-02", value[:10]); err == nil {
			return t.Format("2006-01-02"), true
		}
	}
	if len(value) == 8 {
		if t, err := time.Parse("20060102", value); err == nil {
			return t.Format("2006-01-02"), true
		}
	}
	return "", false
}
