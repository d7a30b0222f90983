package session

import (
	"context"

	"go.uber.org/zap"

	"github.com/akyairhashvil/everyride/internal/catalog"
	"github.com/akyairhashvil/everyride/internal/challenge"
	"github.com/akyairhashvil/everyride/internal/config"
	"github.com/akyairhashvil/everyride/internal/models"
)

// LogResult is what the UI needs after a ride is logged.
type LogResult struct {
	Event  models.RideEvent
	Number int
	Post   string

	// ParkComplete is set when this ride finished its park; ParkPost is the
	// celebration post for it.
	ParkComplete bool
	ParkPost     string
}

// LogRide appends a completion for rideID to the active run. Validation
// errors leave the run untouched. A *PersistenceError is returned together
// with a valid result.
func (s *Session) LogRide(ctx context.Context, rideID string, q models.QueueType) (LogResult, error) {
	if s.active == nil {
		return LogResult{}, ErrNoActiveChallenge
	}
	ride, err := s.currentRide(s.active.ResortID, rideID)
	if err != nil {
		return LogResult{}, err
	}
	ev, err := challenge.AppendEvent(s.active, ride, q, s.now())
	if err != nil {
		return LogResult{}, err
	}

	res := LogResult{Event: ev, Number: len(s.active.Events)}
	ordinal := challenge.LightningLaneOrdinal(*s.active, ev.ID)
	res.Post = s.ComposePost(challenge.RideLoggedText(res.Number, ev.RideName, q, ordinal, ev.Timestamp))
	if s.ParkComplete(ride.ParkID) {
		res.ParkComplete = true
		res.ParkPost = s.ComposePost(challenge.ParkCompleteText(catalog.ParkName(ride.ResortID, ride.ParkID)))
	}
	s.log.Debug("ride logged",
		zap.String("ride", ride.ID),
		zap.String("queue", string(q)),
		zap.Int("number", res.Number))

	return res, s.saveActive(ctx, "log ride")
}

// UndoRide removes an event. Renumbered in the result must be shown to the
// user. An unknown id returns a *NotFoundError and changes nothing.
func (s *Session) UndoRide(ctx context.Context, eventID string) (challenge.UndoResult, error) {
	if s.active == nil {
		return challenge.UndoResult{}, ErrNoActiveChallenge
	}
	res := challenge.UndoEvent(s.active, eventID)
	if !res.Removed {
		return res, &challenge.NotFoundError{Kind: "event", ID: eventID}
	}
	s.log.Debug("ride undone",
		zap.String("ride", res.Event.RideID),
		zap.Int("number", res.Number),
		zap.Int("renumbered", res.Renumbered))
	return res, s.saveActive(ctx, "undo ride")
}

// EditQueueType changes an event's queue type and returns the correction
// post. Setting the current queue again is a no-op with an empty post.
func (s *Session) EditQueueType(ctx context.Context, eventID string, q models.QueueType) (string, error) {
	if s.active == nil {
		return "", ErrNoActiveChallenge
	}
	i, ok := challenge.EventIndex(*s.active, eventID)
	if !ok {
		return "", &challenge.NotFoundError{Kind: "event", ID: eventID}
	}
	ev := s.active.Events[i]
	if !q.Valid() {
		return "", &challenge.QueueUnavailableError{RideID: ev.RideID, Queue: q}
	}
	if ride, known := s.catalog.RideByID(ev.RideID); known && !ride.Supports(q) {
		return "", &challenge.QueueUnavailableError{RideID: ev.RideID, Queue: q}
	}
	if ev.QueueType == q {
		return "", nil
	}
	challenge.EditEventQueueType(s.active, eventID, q)
	s.log.Debug("queue type edited",
		zap.String("ride", ev.RideID),
		zap.String("from", string(ev.QueueType)),
		zap.String("to", string(q)))

	post := s.ComposePost(challenge.CorrectionText(i+1, ev.RideName, q))
	return post, s.saveActive(ctx, "edit queue")
}

// NextQueueType cycles standby, LL, SR, skipping queues the ride lacks.
func (s *Session) NextQueueType(eventID string) (models.QueueType, bool) {
	if s.active == nil {
		return "", false
	}
	i, ok := challenge.EventIndex(*s.active, eventID)
	if !ok {
		return "", false
	}
	ev := s.active.Events[i]
	ride, known := s.catalog.RideByID(ev.RideID)
	order := []models.QueueType{models.QueueStandby, models.QueueLightningLane, models.QueueSingleRider}
	start := 0
	for j, q := range order {
		if q == ev.QueueType {
			start = j
		}
	}
	for step := 1; step <= len(order); step++ {
		q := order[(start+step)%len(order)]
		if !known || ride.Supports(q) {
			return q, q != ev.QueueType
		}
	}
	return ev.QueueType, false
}

// ToggleExclusion flips a ride's exclusion in the active run. Excluding a
// completed ride fails with *AlreadyCompletedError. Ids that are not active
// rides of the run's resort can only be removed.
func (s *Session) ToggleExclusion(ctx context.Context, rideID string) (bool, error) {
	if s.active == nil {
		return false, ErrNoActiveChallenge
	}
	if !challenge.IsExcluded(*s.active, rideID) {
		if _, err := s.currentRide(s.active.ResortID, rideID); err != nil {
			return false, err
		}
	}
	excluded, err := challenge.ToggleActiveExclusion(s.active, rideID)
	if err != nil {
		return false, err
	}
	s.log.Debug("exclusion toggled", zap.String("ride", rideID), zap.Bool("excluded", excluded))
	return excluded, s.saveActive(ctx, "toggle exclusion")
}

// DraftExclusions returns the pre-run exclusions for a resort.
func (s *Session) DraftExclusions(ctx context.Context, resortID string) (challenge.RideSet, error) {
	if set, ok := s.drafts[resortID]; ok {
		return challenge.NewRideSet(set.Slice()...), nil
	}
	key := config.DraftExclusionKey(resortID)
	blob, ok, err := s.store.Get(ctx, key)
	if err != nil {
		return nil, s.persistErr("load draft", key, err)
	}
	set := challenge.RideSet{}
	if ok {
		set = challenge.DecodeRideIDs(blob)
	}
	s.drafts[resortID] = set
	return challenge.NewRideSet(set.Slice()...), nil
}

// ToggleDraftExclusion flips a ride in a resort's draft. Drafts have no
// completions; only active rides of resortID can be added.
func (s *Session) ToggleDraftExclusion(ctx context.Context, resortID, rideID string) (bool, error) {
	set, err := s.DraftExclusions(ctx, resortID)
	if err != nil {
		return false, err
	}
	if !set.Has(rideID) {
		if _, err := s.currentRide(resortID, rideID); err != nil {
			return false, err
		}
	}
	set = challenge.ToggleExclusion(set, rideID)
	s.drafts[resortID] = set

	key := config.DraftExclusionKey(resortID)
	blob, err := challenge.EncodeRideIDs(set)
	if err != nil {
		return set.Has(rideID), s.persistErr("save draft", key, err)
	}
	return set.Has(rideID), s.set(ctx, "save draft", key, blob)
}

// UpdateSettings replaces the active run's post settings.
func (s *Session) UpdateSettings(ctx context.Context, settings models.Settings) error {
	if s.active == nil {
		return ErrNoActiveChallenge
	}
	s.active.Settings = settings
	return s.saveActive(ctx, "update settings")
}

// currentRide resolves an active ride of resortID. Inactive rides resolve
// by id only for display of old runs.
func (s *Session) currentRide(resortID, rideID string) (models.Ride, error) {
	ride, ok := s.catalog.RideByID(rideID)
	if !ok || !ride.Active || ride.ResortID != resortID {
		return models.Ride{}, &challenge.NotFoundError{Kind: "ride", ID: rideID}
	}
	return ride, nil
}
