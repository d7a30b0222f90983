// Package history maintains the archive of finished runs: saved entries are
// kept forever, the rest are capped to the most recent few.
package history

import (
	"sort"
	"time"

	"github.com/akyairhashvil/everyride/internal/challenge"
	"github.com/akyairhashvil/everyride/internal/config"
	"github.com/akyairhashvil/everyride/internal/models"
	"github.com/akyairhashvil/everyride/internal/util"
)

// MaxRecent caps the unsaved entries kept after normalization.
const MaxRecent = config.MaxRecentHistory

// Archive stores a deep copy of rec at the front of hist and normalizes.
// An entry with the same id already in hist is replaced, keeping its saved
// mark. cutoffHour derives a missing day key from StartedAt.
func Archive(hist []models.Challenge, rec models.Challenge, saved bool, now time.Time, cutoffHour int) []models.Challenge {
	entry := rec.Clone()
	if entry.EndedAt == nil {
		entry.EndedAt = util.Ptr(now)
	}
	if entry.DayKey == "" {
		entry.DayKey = challenge.DayKeyFor(entry.StartedAt, cutoffHour)
	}
	if prev, ok := Find(hist, entry.ID); ok && prev.Saved {
		saved = true
		if entry.SavedAt == nil && prev.SavedAt != nil {
			entry.SavedAt = util.Ptr(*prev.SavedAt)
		}
	}
	entry.Saved = saved
	if saved && entry.SavedAt == nil {
		entry.SavedAt = util.Ptr(now)
	}
	if !saved {
		entry.SavedAt = nil
	}
	out := make([]models.Challenge, 0, len(hist)+1)
	out = append(out, entry)
	out = append(out, hist...)
	return Normalize(out)
}

// Normalize de-duplicates by id (first wins), keeps every saved entry, keeps
// the MaxRecent most recent unsaved ones, and orders the result newest first.
func Normalize(hist []models.Challenge) []models.Challenge {
	seen := make(map[string]struct{}, len(hist))
	var saved, recent []models.Challenge
	for _, h := range hist {
		if _, dup := seen[h.ID]; dup {
			continue
		}
		seen[h.ID] = struct{}{}
		if h.Saved {
			saved = append(saved, h)
		} else {
			recent = append(recent, h)
		}
	}
	sortNewestFirst(recent)
	if len(recent) > MaxRecent {
		recent = recent[:MaxRecent]
	}
	out := make([]models.Challenge, 0, len(saved)+len(recent))
	out = append(out, saved...)
	out = append(out, recent...)
	sortNewestFirst(out)
	return out
}

func sortNewestFirst(hist []models.Challenge) {
	sort.SliceStable(hist, func(i, j int) bool {
		a, b := hist[i].LastActivity(), hist[j].LastActivity()
		if !a.Equal(b) {
			return a.After(b)
		}
		return hist[i].ID < hist[j].ID
	})
}

// SetSaved promotes or demotes an entry. SavedAt is stamped on the first
// promotion and cleared on demotion. Unknown ids leave hist as is.
func SetSaved(hist []models.Challenge, id string, saved bool, now time.Time) ([]models.Challenge, bool) {
	out := make([]models.Challenge, len(hist))
	found := false
	for i, h := range hist {
		out[i] = h
		if h.ID != id {
			continue
		}
		found = true
		out[i] = h.Clone()
		out[i].Saved = saved
		switch {
		case !saved:
			out[i].SavedAt = nil
		case out[i].SavedAt == nil:
			out[i].SavedAt = util.Ptr(now)
		}
	}
	if !found {
		return hist, false
	}
	return Normalize(out), true
}

// Delete removes the entry with id.
func Delete(hist []models.Challenge, id string) ([]models.Challenge, bool) {
	out := make([]models.Challenge, 0, len(hist))
	for _, h := range hist {
		if h.ID != id {
			out = append(out, h)
		}
	}
	if len(out) == len(hist) {
		return hist, false
	}
	return Normalize(out), true
}

// Find returns the entry with id.
func Find(hist []models.Challenge, id string) (models.Challenge, bool) {
	for _, h := range hist {
		if h.ID == id {
			return h.Clone(), true
		}
	}
	return models.Challenge{}, false
}

// ForResort returns the resort's entries in archive order.
func ForResort(hist []models.Challenge, resortID string) []models.Challenge {
	var out []models.Challenge
	for _, h := range hist {
		if h.ResortID == resortID {
			out = append(out, h)
		}
	}
	return out
}

// MostRecentForResort returns the resort's entry with the latest activity.
func MostRecentForResort(hist []models.Challenge, resortID string) (models.Challenge, bool) {
	var best models.Challenge
	found := false
	for _, h := range hist {
		if h.ResortID != resortID {
			continue
		}
		if !found || h.LastActivity().After(best.LastActivity()) {
			best = h
			found = true
		}
	}
	if !found {
		return models.Challenge{}, false
	}
	return best.Clone(), true
}

// WithinWindow reports whether entry was active no longer than window ago.
func WithinWindow(entry models.Challenge, now time.Time, window time.Duration) bool {
	return now.Sub(entry.LastActivity()) <= window
}

// Resume turns an archived entry back into an active run keyed to dayKey.
// The id is kept so the next archive replaces the old entry.
func Resume(entry models.Challenge, dayKey string) models.Challenge {
	out := entry.Clone()
	out.EndedAt = nil
	out.Saved = false
	out.SavedAt = nil
	out.DayKey = dayKey
	if out.Events == nil {
		out.Events = []models.RideEvent{}
	}
	return out
}
