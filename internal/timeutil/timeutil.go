package timeutil

import (
	"sync"
	"time"
	_ "time/tzdata"
)

// DateLayout defines the canonical date format (YYYY-MM-DD).
const DateLayout = "2006-01-02"

// ReferenceZone is the zone used for civil game dates and tip-off labels.
const ReferenceZone = "America/New_York"

// TBD marks a tip-off time that the upstream has not published yet.
const TBD = "TBD"

var (
	easternOnce sync.Once
	eastern     *time.Location
)

// ParseDate parses a YYYY-MM-DD date string.
func ParseDate(value string) (time.Time, error) {
	return time.Parse(DateLayout, value)
}

// FormatDate formats a time as YYYY-MM-DD in its current location.
func FormatDate(t time.Time) string {
	return t.Format(DateLayout)
}

// Eastern returns the reference location, falling back to a fixed UTC-5 zone when tzdata is missing.
func Eastern() *time.Location {
	easternOnce.Do(func() {
		loc, err := time.LoadLocation(ReferenceZone)
		if err != nil {
			loc = time.FixedZone("EST", -5*60*60)
		}
		eastern = loc
	})
	return eastern
}

// DateKey returns the civil date of t in the reference zone.
func DateKey(t time.Time) string {
	return FormatDate(t.In(Eastern()))
}

// TimeLabel renders a tip-off time such as "7:30 PM ET".
func TimeLabel(t time.Time) string {
	return t.In(Eastern()).Format("3:04 PM") + " ET"
}

// AddDays shifts a YYYY-MM-DD date by n days.
func AddDays(date string, n int) (string, error) {
	parsed, err := ParseDate(date)
	if err != nil {
		return "", err
	}
	return FormatDate(parsed.AddDate(0, 0, n)), nil
}

// SeasonWindow returns the inclusive civil-date window for the season ending in seasonEndYear:
// October 1 of the prior year through June 30.
func SeasonWindow(seasonEndYear int) (start, end string) {
	s := time.Date(seasonEndYear-1, time.October, 1, 0, 0, 0, 0, time.UTC)
	e := time.Date(seasonEndYear, time.June, 30, 0, 0, 0, 0, time.UTC)
	return FormatDate(s), FormatDate(e)
}

// LastCompletedSeasonEndYear returns the end year of the most recent season that finished
// before the anchor date.
func LastCompletedSeasonEndYear(anchor time.Time) int {
	if anchor.Month() >= time.July {
		return anchor.Year()
	}
	return anchor.Year() - 1
}

// CurrentSeasonStart returns the first civil date of the season in progress at the anchor.
func CurrentSeasonStart(anchor time.Time) string {
	return FormatDate(time.Date(LastCompletedSeasonEndYear(anchor), time.October, 1, 0, 0, 0, 0, time.UTC))
}
