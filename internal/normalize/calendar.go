package normalize

import (
	"bytes"
	"encoding/json"
	"regexp"
	"strings"

	"github.com/preston-bernstein/nba-edge-service/internal/domain/schedule"
	"github.com/preston-bernstein/nba-edge-service/internal/timeutil"
)

type calendarEvent struct {
	ID          string          `json:"id"`
	UID         string          `json:"uid"`
	Summary     string          `json:"summary"`
	Title       string          `json:"title"`
	Description string          `json:"description"`
	Start       json.RawMessage `json:"start"`
	Broadcast   string          `json:"broadcast"`
}

type calendarStart struct {
	DateTime string `json:"dateTime"`
	Date     string `json:"date"`
}

type stageLabel struct {
	text  string
	stage schedule.SeasonStage
}

// stageLabels are matched case-insensitively against event text, most specific first.
var stageLabels = []stageLabel{
	{"preseason", schedule.StagePreseason},
	{"pre-season", schedule.StagePreseason},
	{"in-season tournament", schedule.StageInSeasonTournament},
	{"emirates nba cup", schedule.StageInSeasonTournament},
	{"nba cup", schedule.StageInSeasonTournament},
	{"in-season", schedule.StageInSeasonTournament},
	{"regular season", schedule.StageRegularSeason},
}

var (
	atPattern = regexp.MustCompile(`(?i)^(.+?)\s+(?:at|@)\s+(.+)$`)
	vsPattern = regexp.MustCompile(`(?i)^(.+?)\s+(?:vs\.?|v\.?)\s+(.+)$`)
)

const summarySeparators = " -:|,(–—"

func parseCalendar(payload []byte) (ParsedSchedule, bool) {
	items, ok := calendarItems(payload)
	if !ok {
		return ParsedSchedule{}, false
	}

	var (
		out        ParsedSchedule
		recognised bool
	)
	for _, raw := range items {
		var ev calendarEvent
		if err := json.Unmarshal(raw, &ev); err != nil {
			out.Skipped++
			continue
		}
		summary := ev.Summary
		if summary == "" {
			summary = ev.Title
		}
		if summary == "" || len(ev.Start) == 0 {
			out.Skipped++
			continue
		}
		recognised = true
		game, ok := ev.toRaw(summary)
		if !ok {
			out.Skipped++
			continue
		}
		out.Games = append(out.Games, game)
	}
	if !recognised {
		return ParsedSchedule{}, false
	}
	return out, true
}

// calendarItems accepts a bare array or an object wrapping one under events, items or games.
func calendarItems(payload []byte) ([]json.RawMessage, bool) {
	var items []json.RawMessage
	if len(payload) > 0 && payload[0] == '[' {
		if err := json.Unmarshal(payload, &items); err != nil {
			return nil, false
		}
		return items, true
	}
	var wrapper map[string]json.RawMessage
	if err := json.Unmarshal(payload, &wrapper); err != nil {
		return nil, false
	}
	for _, field := range []string{"events", "items", "games"} {
		raw, ok := wrapper[field]
		if !ok || !bytes.HasPrefix(bytes.TrimSpace(raw), []byte("[")) {
			continue
		}
		if err := json.Unmarshal(raw, &items); err == nil {
			return items, true
		}
	}
	return nil, false
}

func (ev calendarEvent) toRaw(summary string) (RawGame, bool) {
	home, away, ok := parseMatchup(stripStage(summary))
	if !ok {
		return RawGame{}, false
	}
	game := RawGame{
		GameID:    ev.ID,
		Home:      Side{Name: home},
		Away:      Side{Name: away},
		Stage:     detectStage(ev.Description + " " + summary),
		Broadcast: ev.Broadcast,
	}
	if game.GameID == "" {
		game.GameID = ev.UID
	}

	start, date := startValue(ev.Start)
	if t, ok := parseInstant(start, timeutil.Eastern()); ok {
		game.Start = t
		game.HasClock = true
	} else if d, ok := parseCivilDate(start); ok {
		game.Date = d
	}
	if d, ok := parseCivilDate(date); ok && game.Date == "" {
		game.Date = d
	}
	if !game.HasClock && game.Date == "" {
		return RawGame{}, false
	}
	return game, true
}

func startValue(raw json.RawMessage) (start, date string) {
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return strings.TrimSpace(s), ""
	}
	var obj calendarStart
	if err := json.Unmarshal(raw, &obj); err == nil {
		return strings.TrimSpace(obj.DateTime), strings.TrimSpace(obj.Date)
	}
	return "", ""
}

// stripStage cuts the summary at the first stage label so "Celtics at Knicks - Preseason"
// does not parse "Knicks - Preseason" as a team.
func stripStage(summary string) string {
	lower := asciiLower(summary)
	cut, width := len(summary), 0
	for _, label := range stageLabels {
		if idx := strings.Index(lower, label.text); idx >= 0 && (idx < cut || (idx == cut && len(label.text) > width)) {
			cut, width = idx, len(label.text)
		}
	}
	if cut == 0 {
		// Prefixed label such as "NBA Cup: Lakers at Suns".
		rest := strings.TrimLeft(summary[width:], summarySeparators)
		if width == 0 || rest == "" {
			return ""
		}
		return stripStage(rest)
	}
	return strings.TrimRight(summary[:cut], summarySeparators)
}

func detectStage(text string) schedule.SeasonStage {
	lower := strings.ToLower(text)
	for _, label := range stageLabels {
		if strings.Contains(lower, label.text) {
			return label.stage
		}
	}
	return schedule.StageRegularSeason
}

// parseMatchup reads "Away at Home", "Away @ Home" or "Home vs Away".
func parseMatchup(summary string) (home, away string, ok bool) {
	summary = strings.TrimSpace(summary)
	if m := atPattern.FindStringSubmatch(summary); m != nil {
		return strings.TrimSpace(m[2]), strings.TrimSpace(m[1]), true
	}
	if m := vsPattern.FindStringSubmatch(summary); m != nil {
		return strings.TrimSpace(m[1]), strings.TrimSpace(m[2]), true
	}
	return "", "", false
}

// asciiLower lowercases A-Z only so byte offsets match the input.
func asciiLower(s string) string {
	return strings.Map(func(r rune) rune {
		if r >= 'A' && r <= 'Z' {
			return r + ('a' - 'A')
		}
		return r
	}, s)
}
