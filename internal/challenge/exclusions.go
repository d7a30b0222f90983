package challenge

import (
	"sort"

	"github.com/akyairhashvil/everyride/internal/models"
)

// RideSet is a set of ride ids. Drafts and active runs share this shape.
type RideSet map[string]struct{}

// NewRideSet builds a set from ids; duplicates collapse.
func NewRideSet(ids ...string) RideSet {
	s := make(RideSet, len(ids))
	for _, id := range ids {
		s[id] = struct{}{}
	}
	return s
}

func (s RideSet) Has(id string) bool {
	_, ok := s[id]
	return ok
}

// Slice returns the ids sorted, which is also the persisted form.
func (s RideSet) Slice() []string {
	out := make([]string, 0, len(s))
	for id := range s {
		out = append(out, id)
	}
	sort.Strings(out)
	return out
}

// Equal reports whether both sets hold the same ids.
func (s RideSet) Equal(other RideSet) bool {
	if len(s) != len(other) {
		return false
	}
	for id := range s {
		if !other.Has(id) {
			return false
		}
	}
	return true
}

// ToggleExclusion adds id if absent and removes it if present. It mutates
// and returns set; a nil set is allocated.
func ToggleExclusion(set RideSet, id string) RideSet {
	if set == nil {
		set = RideSet{}
	}
	if set.Has(id) {
		delete(set, id)
	} else {
		set[id] = struct{}{}
	}
	return set
}

// ExcludedSet is the run's exclusion list as a set.
func ExcludedSet(rec models.Challenge) RideSet {
	return NewRideSet(rec.ExcludedRideIDs...)
}

// IsExcluded reports whether rideID is excluded from rec.
func IsExcluded(rec models.Challenge, rideID string) bool {
	for _, id := range rec.ExcludedRideIDs {
		if id == rideID {
			return true
		}
	}
	return false
}

// CanExclude is false once the ride has a completion; undo it first.
func CanExclude(rec models.Challenge, rideID string) bool {
	_, done := CompletionMap(rec)[rideID]
	return !done
}

// ToggleActiveExclusion flips rideID in the run's exclusions. Adding an
// exclusion for a completed ride fails with AlreadyCompletedError; removing
// one always succeeds. It returns whether the ride is now excluded.
func ToggleActiveExclusion(rec *models.Challenge, rideID string) (bool, error) {
	set := ExcludedSet(*rec)
	if !set.Has(rideID) {
		if c, done := CompletionMap(*rec)[rideID]; done {
			return false, &AlreadyCompletedError{RideID: rideID, Number: c.Number()}
		}
	}
	set = ToggleExclusion(set, rideID)
	rec.ExcludedRideIDs = set.Slice()
	return set.Has(rideID), nil
}

// IsScopeComplete is true when every ride in scope is completed or excluded.
func IsScopeComplete(rides []models.Ride, completion map[string]Completion, excluded RideSet) bool {
	for _, r := range rides {
		if _, done := completion[r.ID]; done {
			continue
		}
		if excluded.Has(r.ID) {
			continue
		}
		return false
	}
	return true
}

// ScopeCounts summarises a scope for banners and counters.
type ScopeCounts struct {
	Total     int
	Completed int
	Excluded  int
}

// Remaining is the number of rides neither completed nor excluded.
func (c ScopeCounts) Remaining() int {
	return c.Total - c.Completed - c.Excluded
}

// CountScope counts completed and excluded rides among rides. A ride that is
// somehow both counts as completed.
func CountScope(rides []models.Ride, completion map[string]Completion, excluded RideSet) ScopeCounts {
	out := ScopeCounts{Total: len(rides)}
	for _, r := range rides {
		if _, done := completion[r.ID]; done {
			out.Completed++
		} else if excluded.Has(r.ID) {
			out.Excluded++
		}
	}
	return out
}

// ExclusionCounts returns how many of rides are excluded, and the scope size.
// Ids outside rides are ignored.
func ExclusionCounts(rides []models.Ride, excluded RideSet) (count, total int) {
	for _, r := range rides {
		if excluded.Has(r.ID) {
			count++
		}
	}
	return count, len(rides)
}
