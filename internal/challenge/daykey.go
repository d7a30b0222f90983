// Package challenge implements the run lifecycle rules: the challenge day,
// the ride event log, exclusions, and post text.
package challenge

import (
	"time"

	"github.com/akyairhashvil/everyride/internal/models"
)

const dayKeyLayout = "2006-01-02"

// DayKeyFor shifts t back by cutoffHour hours and formats the calendar date
// in t's own location.
func DayKeyFor(t time.Time, cutoffHour int) string {
	return t.Add(-time.Duration(cutoffHour) * time.Hour).Format(dayKeyLayout)
}

// IsCurrent reports whether rec belongs to the challenge day containing now.
func IsCurrent(rec models.Challenge, now time.Time, cutoffHour int) bool {
	return DayKeyFor(now, cutoffHour) == rec.DayKey
}

// ParseDayKey turns a day key back into midnight of that date in loc.
func ParseDayKey(key string, loc *time.Location) (time.Time, error) {
	return time.ParseInLocation(dayKeyLayout, key, loc)
}

// LongDayLabel renders a day key as "Thursday, July 4, 2024". Unparseable
// keys are returned unchanged.
func LongDayLabel(key string) string {
	t, err := ParseDayKey(key, time.UTC)
	if err != nil {
		return key
	}
	return t.Format("Monday, January 2, 2006")
}
