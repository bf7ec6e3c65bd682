package providers

import (
	"strings"
	"sync"
	"time"
)

// zones memoizes loaded locations; FetchGames resolves the caller's tz on every request.
var zones sync.Map

// ResolveTimezone returns the IANA location for tz, or nil when tz is blank or unknown.
func ResolveTimezone(tz string) *time.Location {
	tz = strings.TrimSpace(tz)
	if tz == "" {
		return nil
	}
	if loc, ok := zones.Load(tz); ok {
		return loc.(*time.Location)
	}
	loc, err := time.LoadLocation(tz)
	if err != nil {
		return nil
	}
	zones.Store(tz, loc)
	return loc
}
