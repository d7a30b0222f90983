package session

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/golang/mock/gomock"

	"github.com/akyairhashvil/everyride/internal/config"
	"github.com/akyairhashvil/everyride/internal/models"
)

var errDiskFull = errors.New("disk full")

func TestWriteFailureKeepsStateUsable(t *testing.T) {
	ctx := context.Background()
	ctrl := gomock.NewController(t)
	store := NewMockStore(ctrl)

	store.EXPECT().Get(gomock.Any(), gomock.Any()).Return(nil, false, nil).AnyTimes()
	store.EXPECT().Remove(gomock.Any(), gomock.Any()).Return(nil).AnyTimes()
	store.EXPECT().Set(gomock.Any(), config.KeyActiveChallenge, gomock.Any()).Return(errDiskFull).AnyTimes()

	s := openSession(t, ctx, store, newTestClock())

	_, err := s.StartChallenge(ctx, "wdw", models.Settings{})
	var perr *PersistenceError
	if !errors.As(err, &perr) {
		t.Fatalf("expected PersistenceError, got %v", err)
	}
	if perr.Key != config.KeyActiveChallenge || !errors.Is(err, errDiskFull) {
		t.Fatalf("unexpected error detail: %+v", perr)
	}
	if _, ok := s.Active(); !ok {
		t.Fatalf("expected run active in memory despite write failure")
	}

	res, err := s.LogRide(ctx, "mk-1", models.QueueStandby)
	if !errors.As(err, &perr) {
		t.Fatalf("expected PersistenceError, got %v", err)
	}
	if res.Number != 1 || res.Post == "" {
		t.Fatalf("expected a valid result alongside the error, got %+v", res)
	}
	if got := s.Completion()["mk-1"].Number(); got != 1 {
		t.Fatalf("expected mk-1 completed in memory, got %d", got)
	}
}

func TestDraftWriteFailureKeepsToggle(t *testing.T) {
	ctx := context.Background()
	ctrl := gomock.NewController(t)
	store := NewMockStore(ctrl)

	store.EXPECT().Get(gomock.Any(), gomock.Any()).Return(nil, false, nil).AnyTimes()
	store.EXPECT().Set(gomock.Any(), config.DraftExclusionKey("wdw"), []byte(`["mk-2"]`)).Return(errDiskFull)

	s := openSession(t, ctx, store, newTestClock())
	excluded, err := s.ToggleDraftExclusion(ctx, "wdw", "mk-2")
	var perr *PersistenceError
	if !errors.As(err, &perr) || !excluded {
		t.Fatalf("expected PersistenceError with toggle applied, got excluded=%v err=%v", excluded, err)
	}
	draft, err := s.DraftExclusions(ctx, "wdw")
	if err != nil || !draft.Has("mk-2") {
		t.Fatalf("expected in-memory draft kept, got %v (%v)", draft.Slice(), err)
	}
}

func TestOpenReadFailure(t *testing.T) {
	ctx := context.Background()
	ctrl := gomock.NewController(t)
	store := NewMockStore(ctrl)

	store.EXPECT().Get(gomock.Any(), config.KeyChallengeHistory).Return(nil, false, errDiskFull)

	s, err := Open(ctx, store, testCatalog(t), WithClock(newTestClock().Now), WithLocation(time.UTC))
	var perr *PersistenceError
	if !errors.As(err, &perr) || s != nil {
		t.Fatalf("expected nil session and PersistenceError, got %v %v", s, err)
	}
}

func TestRolloverWriteFailureReturnsSession(t *testing.T) {
	ctx := context.Background()
	ctrl := gomock.NewController(t)
	store := NewMockStore(ctrl)

	stale := []byte(`{"id":"old","resortId":"wdw","dayKey":"2024-07-01","startedAt":"2024-07-01T12:00:00Z",
		"settings":{"tagsText":"","fundraisingLink":""},"excludedRideIds":null,
		"events":[{"id":"e1","rideId":"mk-1","parkId":"mk","queueType":"standby","timestamp":"2024-07-01T12:05:00Z","rideName":"Ride 01"}]}`)
	gomock.InOrder(
		store.EXPECT().Get(gomock.Any(), config.KeyChallengeHistory).Return(nil, false, nil),
		store.EXPECT().Get(gomock.Any(), config.KeyLastChallenge).Return(nil, false, nil),
		store.EXPECT().Get(gomock.Any(), config.KeyActiveChallenge).Return(stale, true, nil),
	)
	store.EXPECT().Remove(gomock.Any(), config.KeyActiveChallenge).Return(nil)
	store.EXPECT().Set(gomock.Any(), config.KeyChallengeHistory, gomock.Any()).Return(errDiskFull)

	s, err := Open(ctx, store, testCatalog(t), WithClock(newTestClock().Now), WithLocation(time.UTC))
	var perr *PersistenceError
	if !errors.As(err, &perr) || perr.Key != config.KeyChallengeHistory {
		t.Fatalf("expected history PersistenceError, got %v", err)
	}
	if s == nil {
		t.Fatalf("expected usable session")
	}
	if _, ok := s.HistoryEntry("old"); !ok {
		t.Fatalf("expected stale run archived in memory")
	}
}
