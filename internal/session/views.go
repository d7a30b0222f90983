package session

import (
	"github.com/akyairhashvil/everyride/internal/challenge"
	"github.com/akyairhashvil/everyride/internal/models"
)

// Completion maps completed ride ids to their log position.
func (s *Session) Completion() map[string]challenge.Completion {
	if s.active == nil {
		return map[string]challenge.Completion{}
	}
	return challenge.CompletionMap(*s.active)
}

// ExcludedSet is the active run's exclusions.
func (s *Session) ExcludedSet() challenge.RideSet {
	if s.active == nil {
		return challenge.RideSet{}
	}
	return challenge.ExcludedSet(*s.active)
}

// ResortRides lists the active rides of the active run's resort.
func (s *Session) ResortRides() []models.Ride {
	if s.active == nil {
		return nil
	}
	return s.catalog.RidesByResort(s.active.ResortID)
}

// ParkRides lists the active rides of one park in the active run's resort.
func (s *Session) ParkRides(parkID string) []models.Ride {
	if s.active == nil {
		return nil
	}
	return s.catalog.RidesByPark(s.active.ResortID, parkID)
}

// ParkComplete reports whether every ride of the park is done or excluded.
func (s *Session) ParkComplete(parkID string) bool {
	if s.active == nil {
		return false
	}
	return challenge.IsScopeComplete(s.ParkRides(parkID), s.Completion(), s.ExcludedSet())
}

// ScopeComplete reports whether the whole resort is done.
func (s *Session) ScopeComplete() bool {
	if s.active == nil {
		return false
	}
	return challenge.IsScopeComplete(s.ResortRides(), s.Completion(), s.ExcludedSet())
}

// Counts summarises the resort scope of the active run.
func (s *Session) Counts() challenge.ScopeCounts {
	return challenge.CountScope(s.ResortRides(), s.Completion(), s.ExcludedSet())
}

// ParkCounts summarises one park of the active run.
func (s *Session) ParkCounts(parkID string) challenge.ScopeCounts {
	return challenge.CountScope(s.ParkRides(parkID), s.Completion(), s.ExcludedSet())
}

// ComposePost appends the active run's tags and link to main.
func (s *Session) ComposePost(main string) string {
	var settings models.Settings
	if s.active != nil {
		settings = s.active.Settings
	}
	return challenge.ComposePost(main, settings)
}
