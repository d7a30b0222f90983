package challenge

import (
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/akyairhashvil/everyride/internal/models"
	"github.com/akyairhashvil/everyride/internal/testutil"
)

func sequentialIDs(t *testing.T) {
	t.Helper()
	prev := newEventID
	n := 0
	newEventID = func() string {
		n++
		return fmt.Sprintf("ev-%d", n)
	}
	t.Cleanup(func() { newEventID = prev })
}

func mustAppend(t *testing.T, rec *models.Challenge, ride models.Ride, q models.QueueType, at time.Time) models.RideEvent {
	t.Helper()
	ev, err := AppendEvent(rec, ride, q, at)
	if err != nil {
		t.Fatalf("AppendEvent(%s) failed: %v", ride.ID, err)
	}
	return ev
}

func TestAppendEventSnapshotsRide(t *testing.T) {
	sequentialIDs(t)
	rec := testutil.NewChallenge("c1").Build()
	ride := testutil.NewRide("ep-1").InPark("wdw", "ep").WithName("Soarin' Around the World").WithLightningLane().Build()

	ev := mustAppend(t, &rec, ride, models.QueueLightningLane, testutil.BaseTime)
	if ev.ID != "ev-1" {
		t.Fatalf("expected generated id ev-1, got %q", ev.ID)
	}
	if ev.ParkID != "ep" || ev.RideName != "Soarin' Around the World" {
		t.Fatalf("expected park and name snapshot, got %+v", ev)
	}
	if len(rec.Events) != 1 || rec.Events[0] != ev {
		t.Fatalf("expected event appended to record, got %+v", rec.Events)
	}
}

func TestAppendEventRejectsDuplicate(t *testing.T) {
	rides := testutil.MagicKingdom(2)
	rec := testutil.NewChallenge("c1").Build()
	mustAppend(t, &rec, rides[0], models.QueueStandby, testutil.BaseTime)
	mustAppend(t, &rec, rides[1], models.QueueStandby, testutil.BaseTime)

	_, err := AppendEvent(&rec, rides[0], models.QueueSingleRider, testutil.BaseTime)
	var dup *AlreadyCompletedError
	if !errors.As(err, &dup) {
		t.Fatalf("expected AlreadyCompletedError, got %v", err)
	}
	if dup.RideID != "mk-1" || dup.Number != 1 {
		t.Fatalf("unexpected error detail: %+v", dup)
	}
	if len(rec.Events) != 2 {
		t.Fatalf("expected log untouched, got %d events", len(rec.Events))
	}
}

func TestAppendEventRejectsUnavailableQueue(t *testing.T) {
	rec := testutil.NewChallenge("c1").Build()
	ride := testutil.NewRide("mk-9").Build()

	_, err := AppendEvent(&rec, ride, models.QueueLightningLane, testutil.BaseTime)
	var qe *QueueUnavailableError
	if !errors.As(err, &qe) {
		t.Fatalf("expected QueueUnavailableError, got %v", err)
	}
	if len(rec.Events) != 0 {
		t.Fatalf("expected no event appended")
	}
	mustAppend(t, &rec, ride, models.QueueStandby, testutil.BaseTime)
}

func TestCompletionMapInvariantsAfterMixedOperations(t *testing.T) {
	sequentialIDs(t)
	rides := testutil.MagicKingdom(6)
	rec := testutil.NewChallenge("c1").Build()
	for i, r := range rides {
		mustAppend(t, &rec, r, models.QueueStandby, testutil.BaseTime.Add(time.Duration(i)*time.Minute))
	}
	UndoEvent(&rec, "ev-2")
	UndoEvent(&rec, "ev-5")
	mustAppend(t, &rec, rides[1], models.QueueSingleRider, testutil.BaseTime.Add(time.Hour))

	cm := CompletionMap(rec)
	if len(cm) != len(rec.Events) {
		t.Fatalf("expected map size %d, got %d", len(rec.Events), len(cm))
	}
	seen := map[int]bool{}
	for id, c := range cm {
		if c.Event.RideID != id {
			t.Fatalf("completion for %s points at %s", id, c.Event.RideID)
		}
		if rec.Events[c.Index].ID != c.Event.ID {
			t.Fatalf("completion index for %s is stale", id)
		}
		if seen[c.Number()] {
			t.Fatalf("ride number %d used twice", c.Number())
		}
		seen[c.Number()] = true
	}
	if cm["mk-2"].Number() != 5 {
		t.Fatalf("expected re-logged mk-2 as ride 5, got %d", cm["mk-2"].Number())
	}
}

func TestUndoMiddleEventRenumbers(t *testing.T) {
	rec := testutil.NewChallenge("c1").
		WithEvent("mk-1", models.QueueStandby).
		WithEvent("mk-2", models.QueueStandby).
		WithEvent("mk-3", models.QueueLightningLane).
		WithEvent("mk-4", models.QueueStandby).
		Build()

	impact, ok := RenumberImpact(rec, "c1-e2")
	if !ok || impact != 2 {
		t.Fatalf("expected impact 2, got %d (ok=%v)", impact, ok)
	}

	res := UndoEvent(&rec, "c1-e2")
	if !res.Removed || res.Number != 2 || res.Renumbered != 2 {
		t.Fatalf("unexpected undo result: %+v", res)
	}
	if res.Event.RideID != "mk-2" {
		t.Fatalf("expected mk-2 removed, got %s", res.Event.RideID)
	}
	for _, tc := range []struct {
		rideID string
		want   int
	}{{"mk-1", 1}, {"mk-3", 2}, {"mk-4", 3}} {
		if got := CompletionMap(rec)[tc.rideID].Number(); got != tc.want {
			t.Fatalf("expected %s to be ride %d, got %d", tc.rideID, tc.want, got)
		}
	}
}

func TestUndoLastEventRenumbersNothing(t *testing.T) {
	rec := testutil.NewChallenge("c1").
		WithEvent("mk-1", models.QueueStandby).
		WithEvent("mk-2", models.QueueStandby).
		Build()
	res := UndoEvent(&rec, "c1-e2")
	if !res.Removed || res.Renumbered != 0 {
		t.Fatalf("unexpected undo result: %+v", res)
	}
}

func TestUndoUnknownEventIsNoop(t *testing.T) {
	rec := testutil.NewChallenge("c1").WithEvent("mk-1", models.QueueStandby).Build()
	before := rec.Clone()
	if res := UndoEvent(&rec, "missing"); res.Removed {
		t.Fatalf("expected no removal, got %+v", res)
	}
	if len(rec.Events) != len(before.Events) || rec.Events[0] != before.Events[0] {
		t.Fatalf("expected record untouched")
	}
}

func TestEditEventQueueTypeOnlyChangesQueue(t *testing.T) {
	rec := testutil.NewChallenge("c1").
		WithEvent("mk-1", models.QueueStandby).
		WithEvent("mk-2", models.QueueStandby).
		Build()
	before := rec.Events[1]

	if !EditEventQueueType(&rec, "c1-e2", models.QueueSingleRider) {
		t.Fatalf("expected edit to apply")
	}
	after := rec.Events[1]
	if after.QueueType != models.QueueSingleRider {
		t.Fatalf("expected queue sr, got %s", after.QueueType)
	}
	after.QueueType = before.QueueType
	if after != before {
		t.Fatalf("expected only queue type to change: %+v vs %+v", after, before)
	}
	if EditEventQueueType(&rec, "missing", models.QueueLightningLane) {
		t.Fatalf("expected unknown id to report false")
	}
}

func TestLightningLaneOrdinalAndCounts(t *testing.T) {
	rec := testutil.NewChallenge("c1").
		WithEvent("mk-1", models.QueueLightningLane).
		WithEvent("mk-2", models.QueueStandby).
		WithEvent("mk-3", models.QueueLightningLane).
		WithEvent("mk-4", models.QueueSingleRider).
		Build()

	if got := LightningLaneOrdinal(rec, "c1-e3"); got != 2 {
		t.Fatalf("expected second LL, got %d", got)
	}
	if got := LightningLaneOrdinal(rec, "c1-e2"); got != 0 {
		t.Fatalf("expected 0 for standby event, got %d", got)
	}
	counts := QueueCounts(rec)
	if counts[models.QueueLightningLane] != 2 || counts[models.QueueStandby] != 1 || counts[models.QueueSingleRider] != 1 {
		t.Fatalf("unexpected counts: %v", counts)
	}
}

func TestScenarioUndoFirstRide(t *testing.T) {
	rides := testutil.MagicKingdom(2)
	rec := testutil.NewChallenge("c1").WithDayKey("2024-07-04").Build()

	first := mustAppend(t, &rec, rides[0], models.QueueStandby, testutil.BaseTime)
	mustAppend(t, &rec, rides[1], models.QueueLightningLane, testutil.BaseTime.Add(time.Minute))
	UndoEvent(&rec, first.ID)

	cm := CompletionMap(rec)
	if len(cm) != 1 {
		t.Fatalf("expected one completion, got %d", len(cm))
	}
	c, ok := cm["mk-2"]
	if !ok || c.Number() != 1 {
		t.Fatalf("expected mk-2 as ride 1, got %+v (ok=%v)", c, ok)
	}
}
