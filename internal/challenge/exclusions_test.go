package challenge

import (
	"errors"
	"testing"

	"github.com/akyairhashvil/everyride/internal/models"
	"github.com/akyairhashvil/everyride/internal/testutil"
)

func TestToggleExclusionIsItsOwnInverse(t *testing.T) {
	set := NewRideSet("mk-1", "mk-2")
	orig := NewRideSet(set.Slice()...)

	for _, id := range []string{"mk-1", "mk-9"} {
		set = ToggleExclusion(set, id)
		set = ToggleExclusion(set, id)
		if !set.Equal(orig) {
			t.Fatalf("double toggle of %s changed the set: %v", id, set.Slice())
		}
	}
	if got := ToggleExclusion(nil, "mk-3"); !got.Has("mk-3") {
		t.Fatalf("expected toggle on nil set to add")
	}
}

func TestCanExcludeMatchesCompletion(t *testing.T) {
	rec := testutil.NewChallenge("c1").WithEvent("mk-1", models.QueueStandby).Build()
	if CanExclude(rec, "mk-1") {
		t.Fatalf("expected completed ride to be non-excludable")
	}
	if !CanExclude(rec, "mk-2") {
		t.Fatalf("expected uncompleted ride to be excludable")
	}
	UndoEvent(&rec, "c1-e1")
	if !CanExclude(rec, "mk-1") {
		t.Fatalf("expected ride excludable after undo")
	}
}

func TestToggleActiveExclusion(t *testing.T) {
	rec := testutil.NewChallenge("c1").WithEvent("mk-1", models.QueueStandby).Build()

	_, err := ToggleActiveExclusion(&rec, "mk-1")
	var done *AlreadyCompletedError
	if !errors.As(err, &done) {
		t.Fatalf("expected AlreadyCompletedError, got %v", err)
	}
	if len(rec.ExcludedRideIDs) != 0 {
		t.Fatalf("expected no exclusion recorded")
	}

	excluded, err := ToggleActiveExclusion(&rec, "mk-3")
	if err != nil || !excluded {
		t.Fatalf("ToggleActiveExclusion failed: excluded=%v err=%v", excluded, err)
	}
	excluded, err = ToggleActiveExclusion(&rec, "mk-3")
	if err != nil || excluded {
		t.Fatalf("expected removal, got excluded=%v err=%v", excluded, err)
	}
	if len(rec.ExcludedRideIDs) != 0 {
		t.Fatalf("expected exclusions empty, got %v", rec.ExcludedRideIDs)
	}
}

func TestScenarioExcludedRideCannotBeLogged(t *testing.T) {
	ride := testutil.NewRide("mk-3").Build()
	rec := testutil.NewChallenge("c1").Build()
	if _, err := ToggleActiveExclusion(&rec, "mk-3"); err != nil {
		t.Fatalf("ToggleActiveExclusion failed: %v", err)
	}

	_, err := AppendEvent(&rec, ride, models.QueueStandby, testutil.BaseTime)
	var ex *ExcludedRideError
	if !errors.As(err, &ex) || ex.RideID != "mk-3" {
		t.Fatalf("expected ExcludedRideError for mk-3, got %v", err)
	}

	if _, err := ToggleActiveExclusion(&rec, "mk-3"); err != nil {
		t.Fatalf("ToggleActiveExclusion failed: %v", err)
	}
	if _, err := AppendEvent(&rec, ride, models.QueueStandby, testutil.BaseTime); err != nil {
		t.Fatalf("expected append after un-excluding, got %v", err)
	}
}

func TestScopeCompletion(t *testing.T) {
	rides := testutil.MagicKingdom(3)
	rec := testutil.NewChallenge("c1").
		WithEvent("mk-1", models.QueueStandby).
		WithEvent("mk-2", models.QueueStandby).
		Build()

	if IsScopeComplete(rides, CompletionMap(rec), ExcludedSet(rec)) {
		t.Fatalf("expected scope incomplete with mk-3 open")
	}
	rec.ExcludedRideIDs = []string{"mk-3"}
	if !IsScopeComplete(rides, CompletionMap(rec), ExcludedSet(rec)) {
		t.Fatalf("expected scope complete once mk-3 excluded")
	}
	if !IsScopeComplete(nil, CompletionMap(rec), ExcludedSet(rec)) {
		t.Fatalf("expected empty scope to be complete")
	}

	counts := CountScope(rides, CompletionMap(rec), ExcludedSet(rec))
	if counts.Total != 3 || counts.Completed != 2 || counts.Excluded != 1 || counts.Remaining() != 0 {
		t.Fatalf("unexpected counts: %+v", counts)
	}
}

func TestExclusionCountsIgnoresOutOfScopeIDs(t *testing.T) {
	rides := testutil.MagicKingdom(4)
	n, total := ExclusionCounts(rides, NewRideSet("mk-2", "dl-1"))
	if n != 1 || total != 4 {
		t.Fatalf("expected 1 of 4, got %d of %d", n, total)
	}
}
