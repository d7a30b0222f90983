package session

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.uber.org/multierr"
	"go.uber.org/zap"

	"github.com/akyairhashvil/everyride/internal/catalog"
	"github.com/akyairhashvil/everyride/internal/challenge"
	"github.com/akyairhashvil/everyride/internal/config"
	"github.com/akyairhashvil/everyride/internal/history"
	"github.com/akyairhashvil/everyride/internal/models"
)

// Active returns a copy of the active run.
func (s *Session) Active() (models.Challenge, bool) {
	if s.active == nil {
		return models.Challenge{}, false
	}
	return s.active.Clone(), true
}

// StartChallenge begins a new run at resortID. Any run still in the active
// slot is archived when it has rides and dropped otherwise. The resort's
// draft exclusions seed the run and the draft is cleared.
func (s *Session) StartChallenge(ctx context.Context, resortID string, settings models.Settings) (models.Challenge, error) {
	if !catalog.KnownResort(resortID) {
		return models.Challenge{}, &challenge.NotFoundError{Kind: "resort", ID: resortID}
	}
	draft, err := s.DraftExclusions(ctx, resortID)
	if err != nil {
		return models.Challenge{}, err
	}

	now := s.now()
	archived := s.retireActive(now)
	rec := models.Challenge{
		ID:              uuid.NewString(),
		ResortID:        resortID,
		DayKey:          challenge.DayKeyFor(now, s.cutoff),
		StartedAt:       now,
		Settings:        settings,
		ExcludedRideIDs: draft.Slice(),
		Events:          []models.RideEvent{},
	}
	s.active = &rec
	s.drafts[resortID] = challenge.RideSet{}
	s.log.Info("challenge started",
		zap.String("id", rec.ID),
		zap.String("resort", resortID),
		zap.String("day", rec.DayKey),
		zap.Int("excluded", len(rec.ExcludedRideIDs)))

	var errs error
	if archived {
		errs = multierr.Append(errs, s.saveHistory(ctx, "archive"))
	}
	errs = multierr.Append(errs, s.saveActive(ctx, "start"))
	errs = multierr.Append(errs, s.remove(ctx, "clear draft", config.DraftExclusionKey(resortID)))
	return rec.Clone(), errs
}

// EndChallenge archives the active run as unsaved and clears the slot. The
// run is archived even when it has no rides.
func (s *Session) EndChallenge(ctx context.Context) (models.Challenge, error) {
	if s.active == nil {
		return models.Challenge{}, ErrNoActiveChallenge
	}
	id := s.active.ID
	s.history = history.Archive(s.history, *s.active, false, s.now(), s.cutoff)
	s.active = nil
	entry, _ := history.Find(s.history, id)
	s.log.Info("challenge ended", zap.String("id", id), zap.Int("events", len(entry.Events)))

	errs := s.saveHistory(ctx, "end")
	errs = multierr.Append(errs, s.saveActive(ctx, "end"))
	return entry, errs
}

// retireActive moves the active run into history if it has rides.
func (s *Session) retireActive(now time.Time) bool {
	if s.active == nil {
		return false
	}
	rec := *s.active
	s.active = nil
	if len(rec.Events) == 0 {
		s.log.Info("discarded empty challenge", zap.String("id", rec.ID))
		return false
	}
	s.history = history.Archive(s.history, rec, false, now, s.cutoff)
	s.log.Info("archived challenge", zap.String("id", rec.ID), zap.Int("events", len(rec.Events)))
	return true
}

// History returns the archive, newest first.
func (s *Session) History() []models.Challenge {
	out := make([]models.Challenge, len(s.history))
	for i, h := range s.history {
		out[i] = h.Clone()
	}
	return out
}

// HistoryForResort returns the archive entries of one resort.
func (s *Session) HistoryForResort(resortID string) []models.Challenge {
	return history.ForResort(s.History(), resortID)
}

// HistoryEntry looks up an archived run by id.
func (s *Session) HistoryEntry(id string) (models.Challenge, bool) {
	return history.Find(s.history, id)
}

// SetSaved promotes or demotes a history entry.
func (s *Session) SetSaved(ctx context.Context, id string, saved bool) error {
	hist, ok := history.SetSaved(s.history, id, saved, s.now())
	if !ok {
		return &challenge.NotFoundError{Kind: "challenge", ID: id}
	}
	s.history = hist
	s.log.Debug("history saved flag", zap.String("id", id), zap.Bool("saved", saved))
	return s.saveHistory(ctx, "set saved")
}

// DeleteHistory removes a history entry.
func (s *Session) DeleteHistory(ctx context.Context, id string) error {
	hist, ok := history.Delete(s.history, id)
	if !ok {
		return &challenge.NotFoundError{Kind: "challenge", ID: id}
	}
	s.history = hist
	s.log.Debug("history entry deleted", zap.String("id", id))
	return s.saveHistory(ctx, "delete")
}

// ResumeCandidate is the resort's most recent archived run when no run is
// active and it was last touched within the resume window.
func (s *Session) ResumeCandidate(resortID string) (models.Challenge, bool) {
	if s.active != nil {
		return models.Challenge{}, false
	}
	entry, ok := history.MostRecentForResort(s.history, resortID)
	if !ok || !history.WithinWindow(entry, s.now(), s.resumeWindow) {
		return models.Challenge{}, false
	}
	return entry, true
}

// Resume makes an archived run active again under today's day key. The
// history entry stays until the run is archived again, which replaces it.
func (s *Session) Resume(ctx context.Context, id string) (models.Challenge, error) {
	entry, ok := history.Find(s.history, id)
	if !ok {
		return models.Challenge{}, &challenge.NotFoundError{Kind: "challenge", ID: id}
	}
	now := s.now()
	if !history.WithinWindow(entry, now, s.resumeWindow) {
		return models.Challenge{}, ErrResumeExpired
	}
	if entry.ResortID == "" {
		entry.ResortID = config.DefaultResortID
	}

	if s.active != nil && s.active.ID == id {
		return s.active.Clone(), nil
	}
	archived := s.retireActive(now)
	rec := history.Resume(entry, challenge.DayKeyFor(now, s.cutoff))
	s.active = &rec
	s.log.Info("challenge resumed", zap.String("id", id), zap.String("day", rec.DayKey), zap.Int("events", len(rec.Events)))

	var errs error
	if archived {
		errs = multierr.Append(errs, s.saveHistory(ctx, "archive"))
	}
	errs = multierr.Append(errs, s.saveActive(ctx, "resume"))
	return rec.Clone(), errs
}

// ResumeParkID is the park of the run's last ride, else the resort's first park.
func (s *Session) ResumeParkID() string {
	if s.active == nil {
		return ""
	}
	if n := len(s.active.Events); n > 0 {
		last := s.active.Events[n-1]
		if ride, ok := s.catalog.RideByID(last.RideID); ok {
			return ride.ParkID
		}
		if last.ParkID != "" {
			return last.ParkID
		}
	}
	parks := catalog.Resort(s.active.ResortID).Parks
	if len(parks) == 0 {
		return ""
	}
	return parks[0].ID
}
