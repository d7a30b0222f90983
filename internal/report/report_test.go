package report

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/akyairhashvil/everyride/internal/catalog"
	"github.com/akyairhashvil/everyride/internal/models"
	"github.com/akyairhashvil/everyride/internal/testutil"
)

func TestFileName(t *testing.T) {
	rec := testutil.NewChallenge("c1").WithResort("dlr").WithDayKey("2024-07-04").Build()
	if got := FileName(rec); got != "everyride_dlr_2024-07-04.pdf" {
		t.Fatalf("unexpected file name %q", got)
	}
	rec.ResortID = ""
	if got := FileName(rec); got != "everyride_wdw_2024-07-04.pdf" {
		t.Fatalf("expected default resort in file name, got %q", got)
	}
}

func TestWriteRunSummary(t *testing.T) {
	cat, err := catalog.Default()
	if err != nil {
		t.Fatalf("catalog.Default failed: %v", err)
	}
	rec := testutil.NewChallenge("c1").
		WithSettings("#EveryRideWDW", "https://example.org/give").
		Excluding("mk-15").
		WithEvent("mk-1", models.QueueStandby).
		WithEvent("mk-2", models.QueueLightningLane).
		WithEvent("unknown-ride", models.QueueSingleRider).
		Build()

	var buf bytes.Buffer
	if err := WriteRunSummary(&buf, rec, cat, testutil.BaseTime.Add(time.Hour)); err != nil {
		t.Fatalf("WriteRunSummary failed: %v", err)
	}
	if !bytes.HasPrefix(buf.Bytes(), []byte("%PDF-")) {
		t.Fatalf("expected PDF output, got %q", buf.Bytes()[:min(16, buf.Len())])
	}
}

func TestWriteRunSummaryEmptyRun(t *testing.T) {
	var buf bytes.Buffer
	rec := testutil.NewChallenge("c1").Build()
	if err := WriteRunSummary(&buf, rec, nil, testutil.BaseTime); err != nil {
		t.Fatalf("WriteRunSummary failed: %v", err)
	}
	if buf.Len() == 0 {
		t.Fatalf("expected output for empty run")
	}
}

func TestSave(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "reports")
	rec := testutil.NewChallenge("c1").WithEvent("mk-1", models.QueueStandby).Build()

	path, err := Save(dir, rec, nil, testutil.BaseTime)
	if err != nil {
		t.Fatalf("Save failed: %v", err)
	}
	if filepath.Base(path) != FileName(rec) {
		t.Fatalf("unexpected path %s", path)
	}
	info, err := os.Stat(path)
	if err != nil {
		t.Fatalf("stat report failed: %v", err)
	}
	if info.Size() == 0 {
		t.Fatalf("expected non-empty report")
	}
}
