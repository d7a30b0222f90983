// Package session owns the application state for one user: the active run,
// the history archive and draft exclusions. Every mutation is computed in
// memory first and then written through to the store.
package session

import (
	"bytes"
	"context"
	"time"

	"go.uber.org/multierr"
	"go.uber.org/zap"

	"github.com/akyairhashvil/everyride/internal/catalog"
	"github.com/akyairhashvil/everyride/internal/challenge"
	"github.com/akyairhashvil/everyride/internal/config"
	"github.com/akyairhashvil/everyride/internal/history"
	"github.com/akyairhashvil/everyride/internal/models"
)

// Store is the opaque blob store the session persists to.
//
//go:generate mockgen -source=session.go -destination=mock_store_test.go -package=session
type Store interface {
	Get(ctx context.Context, key string) ([]byte, bool, error)
	Set(ctx context.Context, key string, blob []byte) error
	Remove(ctx context.Context, key string) error
}

type Option func(*Session)

// WithClock replaces time.Now.
func WithClock(now func() time.Time) Option {
	return func(s *Session) { s.clock = now }
}

// WithLocation sets the zone challenge days are computed in.
func WithLocation(loc *time.Location) Option {
	return func(s *Session) {
		if loc != nil {
			s.loc = loc
		}
	}
}

func WithCutoffHour(hour int) Option {
	return func(s *Session) { s.cutoff = hour }
}

func WithLogger(log *zap.Logger) Option {
	return func(s *Session) {
		if log != nil {
			s.log = log
		}
	}
}

func WithResumeWindow(d time.Duration) Option {
	return func(s *Session) { s.resumeWindow = d }
}

type Session struct {
	store        Store
	catalog      *catalog.Catalog
	log          *zap.Logger
	clock        func() time.Time
	loc          *time.Location
	cutoff       int
	resumeWindow time.Duration

	active  *models.Challenge
	history []models.Challenge
	drafts  map[string]challenge.RideSet
}

// Open loads persisted state and applies the start-of-session rules: the
// legacy single-record slot is folded into history, and an active run from
// an earlier challenge day is archived (when it has rides) and cleared.
//
// A write failure during these steps is returned as a *PersistenceError
// together with a usable session. Read failures return a nil session.
func Open(ctx context.Context, store Store, cat *catalog.Catalog, opts ...Option) (*Session, error) {
	s := &Session{
		store:        store,
		catalog:      cat,
		log:          zap.NewNop(),
		clock:        time.Now,
		loc:          time.Local,
		cutoff:       config.DefaultCutoffHour,
		resumeWindow: config.ResumeWindow,
		drafts:       make(map[string]challenge.RideSet),
	}
	for _, opt := range opts {
		opt(s)
	}

	hist, err := s.loadHistory(ctx)
	if err != nil {
		return nil, err
	}
	s.history = hist

	var writeErr error
	historyDirty := false

	last, _, err := s.loadChallenge(ctx, config.KeyLastChallenge)
	if err != nil {
		return nil, err
	}
	if last != nil {
		if len(last.Events) > 0 {
			s.history = history.Archive(s.history, *last, false, s.now(), s.cutoff)
			historyDirty = true
		}
		s.log.Info("migrated legacy challenge slot", zap.String("id", last.ID), zap.Int("events", len(last.Events)))
		writeErr = multierr.Append(writeErr, s.remove(ctx, "migrate last", config.KeyLastChallenge))
	}

	active, raw, err := s.loadChallenge(ctx, config.KeyActiveChallenge)
	if err != nil {
		return nil, err
	}
	switch {
	case active == nil:
	case !challenge.IsCurrent(*active, s.now(), s.cutoff):
		if len(active.Events) > 0 {
			s.history = history.Archive(s.history, *active, false, s.now(), s.cutoff)
			historyDirty = true
		}
		s.log.Info("rolled over stale challenge",
			zap.String("id", active.ID),
			zap.String("day", active.DayKey),
			zap.Int("events", len(active.Events)))
		writeErr = multierr.Append(writeErr, s.remove(ctx, "rollover", config.KeyActiveChallenge))
	default:
		s.active = active
		if canonical, err := challenge.EncodeChallenge(*active); err == nil && !bytes.Equal(canonical, raw) {
			s.log.Info("rewrote migrated challenge", zap.String("id", active.ID))
			writeErr = multierr.Append(writeErr, s.set(ctx, "migrate", config.KeyActiveChallenge, canonical))
		}
	}

	if historyDirty {
		writeErr = multierr.Append(writeErr, s.saveHistory(ctx, "archive"))
	}
	return s, writeErr
}

// Catalog is the ride catalog the session resolves ids against.
func (s *Session) Catalog() *catalog.Catalog { return s.catalog }

// Now is the current instant in the session's location.
func (s *Session) Now() time.Time { return s.now() }

// DayKey is today's challenge day.
func (s *Session) DayKey() string {
	return challenge.DayKeyFor(s.now(), s.cutoff)
}

func (s *Session) now() time.Time {
	return s.clock().In(s.loc)
}

func (s *Session) loadHistory(ctx context.Context) ([]models.Challenge, error) {
	blob, ok, err := s.store.Get(ctx, config.KeyChallengeHistory)
	if err != nil {
		return nil, s.persistErr("load history", config.KeyChallengeHistory, err)
	}
	if !ok {
		return nil, nil
	}
	hist, err := challenge.DecodeHistory(blob)
	if err != nil {
		s.log.Warn("discarding unreadable history", zap.Error(err))
		return nil, nil
	}
	return history.Normalize(hist), nil
}

func (s *Session) loadChallenge(ctx context.Context, key string) (*models.Challenge, []byte, error) {
	blob, ok, err := s.store.Get(ctx, key)
	if err != nil {
		return nil, nil, s.persistErr("load", key, err)
	}
	if !ok {
		return nil, nil, nil
	}
	rec, err := challenge.DecodeChallenge(blob)
	if err != nil {
		s.log.Warn("discarding unreadable challenge", zap.String("key", key), zap.Error(err))
		return nil, nil, nil
	}
	return &rec, blob, nil
}

func (s *Session) saveActive(ctx context.Context, op string) error {
	if s.active == nil {
		return s.remove(ctx, op, config.KeyActiveChallenge)
	}
	blob, err := challenge.EncodeChallenge(*s.active)
	if err != nil {
		return s.persistErr(op, config.KeyActiveChallenge, err)
	}
	return s.set(ctx, op, config.KeyActiveChallenge, blob)
}

func (s *Session) saveHistory(ctx context.Context, op string) error {
	blob, err := challenge.EncodeHistory(s.history)
	if err != nil {
		return s.persistErr(op, config.KeyChallengeHistory, err)
	}
	return s.set(ctx, op, config.KeyChallengeHistory, blob)
}

func (s *Session) set(ctx context.Context, op, key string, blob []byte) error {
	if err := s.store.Set(ctx, key, blob); err != nil {
		return s.persistErr(op, key, err)
	}
	return nil
}

func (s *Session) remove(ctx context.Context, op, key string) error {
	if err := s.store.Remove(ctx, key); err != nil {
		return s.persistErr(op, key, err)
	}
	return nil
}

func (s *Session) persistErr(op, key string, err error) error {
	s.log.Warn("persistence failed", zap.String("op", op), zap.String("key", key), zap.Error(err))
	return &PersistenceError{Op: op, Key: key, Err: err}
}
