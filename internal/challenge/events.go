package challenge

import (
	"time"

	gonanoid "github.com/matoous/go-nanoid/v2"

	"github.com/akyairhashvil/everyride/internal/models"
)

// Completion locates a ride's event in the log. The ride number is derived
// from Index and never stored.
type Completion struct {
	Index int
	Event models.RideEvent
}

// Number is the 1-based ride number.
func (c Completion) Number() int { return c.Index + 1 }

// UndoResult describes what an undo removed. Renumbered counts the events
// after the removed one whose ride number dropped by one; callers must
// surface it to the user.
type UndoResult struct {
	Removed    bool
	Event      models.RideEvent
	Number     int
	Renumbered int
}

var newEventID = func() string { return gonanoid.Must() }

// AppendEvent logs ride as the next completion in rec.
func AppendEvent(rec *models.Challenge, ride models.Ride, q models.QueueType, now time.Time) (models.RideEvent, error) {
	if c, done := CompletionMap(*rec)[ride.ID]; done {
		return models.RideEvent{}, &AlreadyCompletedError{RideID: ride.ID, Number: c.Number()}
	}
	if IsExcluded(*rec, ride.ID) {
		return models.RideEvent{}, &ExcludedRideError{RideID: ride.ID}
	}
	if !ride.Supports(q) {
		return models.RideEvent{}, &QueueUnavailableError{RideID: ride.ID, Queue: q}
	}
	ev := models.RideEvent{
		ID:        newEventID(),
		RideID:    ride.ID,
		ParkID:    ride.ParkID,
		QueueType: q,
		Timestamp: now,
		RideName:  ride.Name,
	}
	rec.Events = append(rec.Events, ev)
	return ev, nil
}

// CompletionMap maps each completed ride id to its position in the log.
func CompletionMap(rec models.Challenge) map[string]Completion {
	m := make(map[string]Completion, len(rec.Events))
	for i, ev := range rec.Events {
		m[ev.RideID] = Completion{Index: i, Event: ev}
	}
	return m
}

// EventIndex returns the log position of an event id.
func EventIndex(rec models.Challenge, eventID string) (int, bool) {
	for i, ev := range rec.Events {
		if ev.ID == eventID {
			return i, true
		}
	}
	return -1, false
}

// RideNumber is the derived 1-based number of an event.
func RideNumber(rec models.Challenge, eventID string) (int, bool) {
	i, ok := EventIndex(rec, eventID)
	return i + 1, ok
}

// RenumberImpact is how many later rides would be renumbered by undoing eventID.
func RenumberImpact(rec models.Challenge, eventID string) (int, bool) {
	i, ok := EventIndex(rec, eventID)
	if !ok {
		return 0, false
	}
	return len(rec.Events) - i - 1, true
}

// UndoEvent removes eventID, keeping the relative order of the rest.
// An unknown id leaves rec untouched.
func UndoEvent(rec *models.Challenge, eventID string) UndoResult {
	i, ok := EventIndex(*rec, eventID)
	if !ok {
		return UndoResult{}
	}
	removed := rec.Events[i]
	events := make([]models.RideEvent, 0, len(rec.Events)-1)
	events = append(events, rec.Events[:i]...)
	events = append(events, rec.Events[i+1:]...)
	rec.Events = events
	return UndoResult{
		Removed:    true,
		Event:      removed,
		Number:     i + 1,
		Renumbered: len(events) - i,
	}
}

// EditEventQueueType changes only the queue type of eventID. It reports
// false and does nothing when the id is unknown.
func EditEventQueueType(rec *models.Challenge, eventID string, q models.QueueType) bool {
	i, ok := EventIndex(*rec, eventID)
	if !ok {
		return false
	}
	rec.Events[i].QueueType = q
	return true
}

// LightningLaneOrdinal counts LL events up to and including eventID. It is 0
// when the event is not an LL event.
func LightningLaneOrdinal(rec models.Challenge, eventID string) int {
	n := 0
	for _, ev := range rec.Events {
		if ev.QueueType == models.QueueLightningLane {
			n++
		}
		if ev.ID == eventID {
			if ev.QueueType != models.QueueLightningLane {
				return 0
			}
			return n
		}
	}
	return 0
}

// QueueCounts tallies events per queue type.
func QueueCounts(rec models.Challenge) map[models.QueueType]int {
	out := make(map[models.QueueType]int, 3)
	for _, ev := range rec.Events {
		out[ev.QueueType]++
	}
	return out
}
