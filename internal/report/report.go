// Package report renders a run as a one-page PDF summary.
package report

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/go-pdf/fpdf"

	"github.com/akyairhashvil/everyride/internal/catalog"
	"github.com/akyairhashvil/everyride/internal/challenge"
	"github.com/akyairhashvil/everyride/internal/models"
)

const (
	colNumber = 14.0
	colRide   = 112.0
	colQueue  = 22.0
	colTime   = 32.0
	rowHeight = 7.0
)

// FileName is the default file name for a run's summary.
func FileName(rec models.Challenge) string {
	resort := rec.ResortID
	if resort == "" {
		resort = "wdw"
	}
	return fmt.Sprintf("everyride_%s_%s.pdf", resort, rec.DayKey)
}

// WriteRunSummary writes the PDF for rec as of asOf to w. Ride names prefer
// the catalog's medium name and fall back to the name stored on the event.
func WriteRunSummary(w io.Writer, rec models.Challenge, cat *catalog.Catalog, asOf time.Time) error {
	pdf := fpdf.New("P", "mm", "Letter", "")
	tr := pdf.UnicodeTranslatorFromDescriptor("")
	pdf.SetTitle(tr(fmt.Sprintf("EveryRide %s", rec.DayKey)), false)
	pdf.AddPage()

	resort := catalog.Resort(rec.ResortID)
	pdf.SetFont("Arial", "B", 18)
	pdf.Cell(0, 10, tr(resort.Name+" #EveryRide"))
	pdf.Ln(10)

	pdf.SetFont("Arial", "", 12)
	pdf.Cell(0, 8, tr(challenge.LongDayLabel(rec.DayKey)))
	pdf.Ln(7)
	pdf.Cell(0, 8, fmt.Sprintf("%d rides as of %s", len(rec.Events), challenge.FormatClock(asOf)))
	pdf.Ln(7)
	if n := len(rec.ExcludedRideIDs); n > 0 {
		pdf.Cell(0, 8, fmt.Sprintf("%d rides excluded", n))
		pdf.Ln(7)
	}
	pdf.Ln(4)

	pdf.SetFont("Arial", "B", 11)
	pdf.SetFillColor(230, 230, 240)
	pdf.CellFormat(colNumber, rowHeight, "#", "1", 0, "C", true, 0, "")
	pdf.CellFormat(colRide, rowHeight, "Ride", "1", 0, "L", true, 0, "")
	pdf.CellFormat(colQueue, rowHeight, "Queue", "1", 0, "C", true, 0, "")
	pdf.CellFormat(colTime, rowHeight, "Time", "1", 1, "C", true, 0, "")

	pdf.SetFont("Arial", "", 11)
	if len(rec.Events) == 0 {
		pdf.CellFormat(colNumber+colRide+colQueue+colTime, rowHeight, "No rides logged.", "1", 1, "C", false, 0, "")
	}
	for i, ev := range rec.Events {
		name := ev.RideName
		if cat != nil {
			if ride, ok := cat.RideByID(ev.RideID); ok {
				name = catalog.DisplayName(ride, catalog.NameMedium)
			}
		}
		pdf.CellFormat(colNumber, rowHeight, fmt.Sprintf("%d", i+1), "1", 0, "C", false, 0, "")
		pdf.CellFormat(colRide, rowHeight, tr(name), "1", 0, "L", false, 0, "")
		pdf.CellFormat(colQueue, rowHeight, ev.QueueType.Abbrev(), "1", 0, "C", false, 0, "")
		pdf.CellFormat(colTime, rowHeight, challenge.FormatClock(ev.Timestamp), "1", 1, "C", false, 0, "")
	}

	if rec.Settings.FundraisingLink != "" {
		pdf.Ln(6)
		pdf.SetFont("Arial", "I", 10)
		pdf.MultiCell(0, 6, tr(rec.Settings.FundraisingLink), "", "L", false)
	}

	if err := pdf.Output(w); err != nil {
		return fmt.Errorf("render run summary: %w", err)
	}
	return nil
}

// Save writes the summary into dir under FileName and returns the path.
func Save(dir string, rec models.Challenge, cat *catalog.Catalog, asOf time.Time) (string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("create report dir: %w", err)
	}
	path := filepath.Join(dir, FileName(rec))
	f, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("create report: %w", err)
	}
	if err := WriteRunSummary(f, rec, cat, asOf); err != nil {
		_ = f.Close()
		return "", err
	}
	if err := f.Close(); err != nil {
		return "", fmt.Errorf("close report: %w", err)
	}
	return path, nil
}
