package challenge

import (
	"fmt"

	"github.com/akyairhashvil/everyride/internal/models"
)

// AlreadyCompletedError reports a ride that already has an event in the run.
type AlreadyCompletedError struct {
	RideID string
	Number int
}

func (e *AlreadyCompletedError) Error() string {
	return fmt.Sprintf("ride %s already completed as ride %d", e.RideID, e.Number)
}

// ExcludedRideError reports an attempt to log a ride excluded from the run.
type ExcludedRideError struct {
	RideID string
}

func (e *ExcludedRideError) Error() string {
	return fmt.Sprintf("ride %s is excluded from this challenge", e.RideID)
}

// QueueUnavailableError reports a queue type the ride does not offer.
type QueueUnavailableError struct {
	RideID string
	Queue  models.QueueType
}

func (e *QueueUnavailableError) Error() string {
	return fmt.Sprintf("ride %s has no %s queue", e.RideID, e.Queue.Label())
}

// NotFoundError reports an id missing from the log or the catalog.
type NotFoundError struct {
	Kind string // "ride", "event" or "challenge"
	ID   string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s %s not found", e.Kind, e.ID)
}
