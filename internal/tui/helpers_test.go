package tui

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/akyairhashvil/everyride/internal/catalog"
	"github.com/akyairhashvil/everyride/internal/database"
	"github.com/akyairhashvil/everyride/internal/session"
	"github.com/akyairhashvil/everyride/internal/testutil"
)

type testClock struct {
	now time.Time
}

func (c *testClock) Now() time.Time { return c.now }

// setupTestModel returns a model on the resort picker backed by a temp
// sqlite store. mk-1..mk-3 offer every queue; ep-1 is standby only.
func setupTestModel(t *testing.T) (Model, *session.Session) {
	t.Helper()
	ctx := context.Background()
	db, err := database.Open(ctx, filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	rides := testutil.MagicKingdom(3)
	rides = append(rides, testutil.NewRide("ep-1").InPark("wdw", "ep").WithName("Test Track").Build())
	cat, err := catalog.New(rides)
	if err != nil {
		t.Fatalf("catalog.New failed: %v", err)
	}

	clock := &testClock{now: testutil.BaseTime}
	sess, err := session.Open(ctx, db, cat,
		session.WithClock(clock.Now),
		session.WithLocation(time.UTC),
	)
	if err != nil {
		t.Fatalf("session Open failed: %v", err)
	}
	return NewModel(ctx, sess, Options{ReportDir: t.TempDir()}), sess
}

// startedModel picks Walt Disney World and starts a run on Magic Kingdom.
func startedModel(t *testing.T) (Model, *session.Session) {
	t.Helper()
	m, sess := setupTestModel(t)
	m = press(t, m, "enter", "enter")
	if m.screen != ScreenPark || m.parkID() != "mk" {
		t.Fatalf("expected Magic Kingdom page, got screen %d park %q", m.screen, m.parkID())
	}
	return m, sess
}

func keyMsg(k string) tea.KeyMsg {
	switch k {
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEsc}
	case "tab":
		return tea.KeyMsg{Type: tea.KeyTab}
	case "shift+tab":
		return tea.KeyMsg{Type: tea.KeyShiftTab}
	case "down":
		return tea.KeyMsg{Type: tea.KeyDown}
	case "up":
		return tea.KeyMsg{Type: tea.KeyUp}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(k)}
}

func press(t *testing.T, m Model, keys ...string) Model {
	t.Helper()
	for _, k := range keys {
		next, _ := m.Update(keyMsg(k))
		m = next.(Model)
	}
	return m
}
