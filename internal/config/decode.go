package config

import (
	"strconv"
	"strings"
	"time"
)

// positiveDuration decodes a Go duration; unparsable or non-positive input decodes to zero.
type positiveDuration time.Duration

func (d *positiveDuration) Decode(value string) error {
	parsed, err := time.ParseDuration(strings.TrimSpace(value))
	if err != nil || parsed <= 0 {
		*d = 0
		return nil
	}
	*d = positiveDuration(parsed)
	return nil
}

func (d positiveDuration) or(def time.Duration) time.Duration {
	if d <= 0 {
		return def
	}
	return time.Duration(d)
}

// positiveInt decodes an integer; unparsable or non-positive input decodes to zero.
type positiveInt int

func (i *positiveInt) Decode(value string) error {
	parsed, err := strconv.Atoi(strings.TrimSpace(value))
	if err != nil || parsed <= 0 {
		*i = 0
		return nil
	}
	*i = positiveInt(parsed)
	return nil
}

func (i positiveInt) or(def int) int {
	if i <= 0 {
		return def
	}
	return int(i)
}

// optionalBool remembers whether a recognizable boolean was supplied.
type optionalBool struct {
	set   bool
	value bool
}

func (b *optionalBool) Decode(value string) error {
	raw := strings.TrimSpace(value)
	switch {
	case raw == "1" || strings.EqualFold(raw, "true") || strings.EqualFold(raw, "yes"):
		*b = optionalBool{set: true, value: true}
	case raw == "0" || strings.EqualFold(raw, "false") || strings.EqualFold(raw, "no"):
		*b = optionalBool{set: true, value: false}
	default:
		*b = optionalBool{}
	}
	return nil
}

func (b optionalBool) or(def bool) bool {
	if !b.set {
		return def
	}
	return b.value
}

// hourOfDay accepts 0-23; zero is a valid hour so validity is tracked separately.
type hourOfDay struct {
	set  bool
	hour int
}

func (h *hourOfDay) Decode(value string) error {
	parsed, err := strconv.Atoi(strings.TrimSpace(value))
	if err != nil || parsed < 0 || parsed > 23 {
		*h = hourOfDay{}
		return nil
	}
	*h = hourOfDay{set: true, hour: parsed}
	return nil
}

func (h hourOfDay) or(def int) int {
	if !h.set {
		return def
	}
	return h.hour
}
