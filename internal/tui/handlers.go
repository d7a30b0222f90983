package tui

import (
	"errors"
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"github.com/akyairhashvil/everyride/internal/catalog"
	"github.com/akyairhashvil/everyride/internal/challenge"
	"github.com/akyairhashvil/everyride/internal/models"
	"github.com/akyairhashvil/everyride/internal/report"
	"github.com/akyairhashvil/everyride/internal/session"
	"github.com/akyairhashvil/everyride/internal/util"
)

var (
	listScreens = []Screen{ScreenResort, ScreenStart, ScreenPark, ScreenHistory}
	rideScreens = []Screen{ScreenStart, ScreenPark}
)

func defaultRegistry() *HandlerRegistry {
	r := NewHandlerRegistry()
	r.Register(KeyBinding{Key: "q", Handler: handleQuit, Description: "quit"})
	for _, k := range []string{"up", "k"} {
		r.Register(KeyBinding{Key: k, Handler: handleMove(-1), Description: "up", Screens: listScreens})
	}
	for _, k := range []string{"down", "j"} {
		r.Register(KeyBinding{Key: k, Handler: handleMove(1), Description: "down", Screens: listScreens})
	}

	r.Register(KeyBinding{Key: "enter", Handler: handleChooseResort, Description: "choose", Screens: []Screen{ScreenResort}})

	r.Register(KeyBinding{Key: "enter", Handler: handleStart, Description: "start", Screens: []Screen{ScreenStart}})
	r.Register(KeyBinding{Key: "x", Handler: handleToggleDraft, Description: "exclude", Screens: []Screen{ScreenStart}})
	r.Register(KeyBinding{Key: "R", Handler: handleResumeCandidate, Description: "resume", Screens: []Screen{ScreenStart}})
	r.Register(KeyBinding{Key: "esc", Handler: handleBackToResorts, Description: "back", Screens: []Screen{ScreenStart}})
	r.Register(KeyBinding{Key: "t", Handler: handleEditTags, Description: "tags", Screens: rideScreens})
	r.Register(KeyBinding{Key: "f", Handler: handleEditLink, Description: "link", Screens: rideScreens})
	r.Register(KeyBinding{Key: "h", Handler: handleOpenHistory, Description: "history", Screens: rideScreens})

	r.Register(KeyBinding{Key: "s", Handler: handleLog(models.QueueStandby), Description: "standby", Screens: []Screen{ScreenPark}})
	r.Register(KeyBinding{Key: "l", Handler: handleLog(models.QueueLightningLane), Description: "LL", Screens: []Screen{ScreenPark}})
	r.Register(KeyBinding{Key: "r", Handler: handleLog(models.QueueSingleRider), Description: "SR", Screens: []Screen{ScreenPark}})
	r.Register(KeyBinding{Key: "u", Handler: handleUndo, Description: "undo", Screens: []Screen{ScreenPark}})
	r.Register(KeyBinding{Key: "e", Handler: handleCycleQueue, Description: "edit queue", Screens: []Screen{ScreenPark}})
	r.Register(KeyBinding{Key: "x", Handler: handleToggleExclusion, Description: "exclude", Screens: []Screen{ScreenPark}})
	r.Register(KeyBinding{Key: "tab", Handler: handleSwitchPark(1), Description: "park", Screens: []Screen{ScreenPark}})
	r.Register(KeyBinding{Key: "shift+tab", Handler: handleSwitchPark(-1), Screens: []Screen{ScreenPark}})
	r.Register(KeyBinding{Key: "p", Handler: handleReport, Description: "pdf", Screens: []Screen{ScreenPark, ScreenHistory}})
	r.Register(KeyBinding{Key: "E", Handler: handleEnd, Description: "end", Screens: []Screen{ScreenPark}})

	r.Register(KeyBinding{Key: "S", Handler: handleToggleSaved, Description: "save", Screens: []Screen{ScreenHistory}})
	r.Register(KeyBinding{Key: "d", Handler: handleDeleteHistory, Description: "delete", Screens: []Screen{ScreenHistory}})
	r.Register(KeyBinding{Key: "R", Handler: handleResumeHistory, Description: "resume", Screens: []Screen{ScreenHistory}})
	r.Register(KeyBinding{Key: "esc", Handler: handleCloseHistory, Description: "back", Screens: []Screen{ScreenHistory}})
	return r
}

func handleQuit(m Model, _ string) (Model, tea.Cmd, bool) {
	return m, tea.Quit, true
}

func handleMove(delta int) KeyHandler {
	return func(m Model, _ string) (Model, tea.Cmd, bool) {
		switch m.screen {
		case ScreenResort:
			m.resortIdx = clampIndex(m.resortIdx+delta, len(catalog.Resorts()))
		case ScreenHistory:
			m.histCursor = clampIndex(m.histCursor+delta, len(m.historyEntries()))
		default:
			m.cursor = clampIndex(m.cursor+delta, len(m.visibleRides()))
		}
		return m, nil, true
	}
}

func handleChooseResort(m Model, _ string) (Model, tea.Cmd, bool) {
	resorts := catalog.Resorts()
	if len(resorts) == 0 {
		return m, nil, true
	}
	return m.openStart(resorts[clampIndex(m.resortIdx, len(resorts))].ID), nil, true
}

// openStart shows the start page for a resort with its default tags filled in.
func (m Model) openStart(resortID string) Model {
	m.resortID = resortID
	m.screen = ScreenStart
	m.cursor = 0
	m.tagsInput.SetValue(catalog.Resort(resortID).DefaultTags)
	m.linkInput.SetValue("")
	return m
}

func handleBackToResorts(m Model, _ string) (Model, tea.Cmd, bool) {
	m.screen = ScreenResort
	return m, nil, true
}

func handleEditTags(m Model, _ string) (Model, tea.Cmd, bool) {
	if m.screen == ScreenPark {
		m = m.loadSettings()
	}
	next, cmd := m.startEditing(editTags)
	return next, cmd, true
}

func handleEditLink(m Model, _ string) (Model, tea.Cmd, bool) {
	if m.screen == ScreenPark {
		m = m.loadSettings()
	}
	next, cmd := m.startEditing(editLink)
	return next, cmd, true
}

func (m Model) loadSettings() Model {
	if rec, ok := m.session.Active(); ok {
		m.tagsInput.SetValue(rec.Settings.TagsText)
		m.linkInput.SetValue(rec.Settings.FundraisingLink)
	}
	return m
}

func (m Model) saveSettings() Model {
	if err := m.session.UpdateSettings(m.ctx, m.settings()); err != nil {
		return m.withError(err)
	}
	m.status = "Post settings updated."
	return m
}

func handleToggleDraft(m Model, _ string) (Model, tea.Cmd, bool) {
	ride, ok := m.selectedRide()
	if !ok {
		return m, nil, true
	}
	excluded, err := m.session.ToggleDraftExclusion(m.ctx, m.resortID, ride.ID)
	if err != nil && !isPersistence(err) {
		return m.withError(err), nil, true
	}
	m = m.withError(err)
	m.status = exclusionStatus(ride, excluded)
	return m, nil, true
}

func handleStart(m Model, _ string) (Model, tea.Cmd, bool) {
	rec, err := m.session.StartChallenge(m.ctx, m.resortID, m.settings())
	if err != nil && !isPersistence(err) {
		return m.withError(err), nil, true
	}
	m = m.withError(err)
	m.screen = ScreenPark
	m.parkIdx = 0
	m.cursor = 0
	m.post = ""
	m.status = "Challenge started for " + challenge.LongDayLabel(rec.DayKey) + "."
	return m, nil, true
}

func handleResumeCandidate(m Model, _ string) (Model, tea.Cmd, bool) {
	cand, ok := m.session.ResumeCandidate(m.resortID)
	if !ok {
		m.status = "Nothing recent to resume."
		return m, nil, true
	}
	return m.resume(cand.ID), nil, true
}

func (m Model) resume(id string) Model {
	rec, err := m.session.Resume(m.ctx, id)
	if err != nil && !isPersistence(err) {
		return m.withError(err)
	}
	m = m.withError(err)
	m.resortID = rec.ResortID
	m.screen = ScreenPark
	m.parkIdx = m.parkIndex(m.session.ResumeParkID())
	m.cursor = 0
	m.status = fmt.Sprintf("Resumed challenge with %d rides.", len(rec.Events))
	return m
}

func handleLog(q models.QueueType) KeyHandler {
	return func(m Model, _ string) (Model, tea.Cmd, bool) {
		ride, ok := m.selectedRide()
		if !ok {
			return m, nil, true
		}
		res, err := m.session.LogRide(m.ctx, ride.ID, q)
		m = m.withError(err)
		if res.Event.ID == "" {
			return m, nil, true
		}
		m.post = res.Post
		m.status = fmt.Sprintf("Logged ride %d.", res.Number)
		if res.ParkComplete {
			m.post = res.Post + "\n\n" + res.ParkPost
			m.status = challenge.ParkCompleteText(catalog.ParkName(m.resortID, ride.ParkID))
		}
		return m, nil, true
	}
}

func handleUndo(m Model, _ string) (Model, tea.Cmd, bool) {
	ride, ok := m.selectedRide()
	if !ok {
		return m, nil, true
	}
	done, ok := m.session.Completion()[ride.ID]
	if !ok {
		m.status = ride.Name + " is not logged yet."
		return m, nil, true
	}
	rec, _ := m.session.Active()
	impact, _ := challenge.RenumberImpact(rec, done.Event.ID)
	if impact == 0 {
		return m.undo(done.Event.ID), nil, true
	}
	eventID := done.Event.ID
	m.confirm = &confirmState{
		prompt: fmt.Sprintf("Undo ride %d. %s? This will renumber %d later rides. [y/N]", done.Number(), done.Event.RideName, impact),
		action: func(m Model) (Model, tea.Cmd) {
			return m.undo(eventID), nil
		},
	}
	return m, nil, true
}

func (m Model) undo(eventID string) Model {
	res, err := m.session.UndoRide(m.ctx, eventID)
	m = m.withError(err)
	if !res.Removed {
		return m
	}
	m.status = fmt.Sprintf("Removed ride %d. %s.", res.Number, res.Event.RideName)
	if res.Renumbered > 0 {
		m.status += fmt.Sprintf(" Renumbered %d rides.", res.Renumbered)
	}
	m.post = ""
	return m
}

func handleCycleQueue(m Model, _ string) (Model, tea.Cmd, bool) {
	ride, ok := m.selectedRide()
	if !ok {
		return m, nil, true
	}
	done, ok := m.session.Completion()[ride.ID]
	if !ok {
		m.status = ride.Name + " is not logged yet."
		return m, nil, true
	}
	next, changed := m.session.NextQueueType(done.Event.ID)
	if !changed {
		m.status = ride.Name + " only has a standby line."
		return m, nil, true
	}
	post, err := m.session.EditQueueType(m.ctx, done.Event.ID, next)
	m = m.withError(err)
	if post != "" {
		m.post = post
		m.status = fmt.Sprintf("Ride %d now %s.", done.Number(), next.Label())
	}
	return m, nil, true
}

func handleToggleExclusion(m Model, _ string) (Model, tea.Cmd, bool) {
	ride, ok := m.selectedRide()
	if !ok {
		return m, nil, true
	}
	excluded, err := m.session.ToggleExclusion(m.ctx, ride.ID)
	if err != nil && !isPersistence(err) {
		return m.withError(err), nil, true
	}
	m = m.withError(err)
	m.status = exclusionStatus(ride, excluded)
	return m, nil, true
}

func handleSwitchPark(delta int) KeyHandler {
	return func(m Model, _ string) (Model, tea.Cmd, bool) {
		n := len(m.parks())
		if n == 0 {
			return m, nil, true
		}
		m.parkIdx = ((m.parkIdx+delta)%n + n) % n
		m.cursor = 0
		return m, nil, true
	}
}

func handleOpenHistory(m Model, _ string) (Model, tea.Cmd, bool) {
	m.prevScreen = m.screen
	m.screen = ScreenHistory
	m.histCursor = 0
	return m, nil, true
}

func handleCloseHistory(m Model, _ string) (Model, tea.Cmd, bool) {
	if _, ok := m.session.Active(); ok {
		m.screen = ScreenPark
		return m, nil, true
	}
	if m.prevScreen == ScreenStart {
		m.screen = ScreenStart
		return m, nil, true
	}
	return m.openStart(m.resortID), nil, true
}

func handleReport(m Model, _ string) (Model, tea.Cmd, bool) {
	var rec models.Challenge
	if m.screen == ScreenHistory {
		entries := m.historyEntries()
		if len(entries) == 0 {
			return m, nil, true
		}
		rec = entries[clampIndex(m.histCursor, len(entries))]
	} else {
		active, ok := m.session.Active()
		if !ok {
			return m, nil, true
		}
		rec = active
	}
	m.status = "Writing PDF..."
	return m, writeReportCmd(m.reportDir, rec, m.session.Catalog(), m.session.Now()), true
}

func writeReportCmd(dir string, rec models.Challenge, cat *catalog.Catalog, asOf time.Time) tea.Cmd {
	return func() tea.Msg {
		path, err := report.Save(dir, rec, cat, asOf)
		return reportMsg{path: path, err: err}
	}
}

func handleEnd(m Model, _ string) (Model, tea.Cmd, bool) {
	m.confirm = &confirmState{
		prompt: "End this challenge and move it to history? [y/N]",
		action: func(m Model) (Model, tea.Cmd) {
			entry, err := m.session.EndChallenge(m.ctx)
			if err != nil && !isPersistence(err) {
				return m.withError(err), nil
			}
			m = m.withError(err).openStart(m.resortID)
			m.post = ""
			m.status = fmt.Sprintf("Challenge ended with %d rides.", len(entry.Events))
			return m, nil
		},
	}
	return m, nil, true
}

func handleToggleSaved(m Model, _ string) (Model, tea.Cmd, bool) {
	entries := m.historyEntries()
	if len(entries) == 0 {
		return m, nil, true
	}
	entry := entries[clampIndex(m.histCursor, len(entries))]
	m = m.withError(m.session.SetSaved(m.ctx, entry.ID, !entry.Saved))
	if entry.Saved {
		m.status = "Removed from saved."
	} else {
		m.status = "Saved."
	}
	return m, nil, true
}

func handleDeleteHistory(m Model, _ string) (Model, tea.Cmd, bool) {
	entries := m.historyEntries()
	if len(entries) == 0 {
		return m, nil, true
	}
	entry := entries[clampIndex(m.histCursor, len(entries))]
	m.confirm = &confirmState{
		prompt: fmt.Sprintf("Delete the %s run with %d rides? [y/N]", entry.DayKey, len(entry.Events)),
		action: func(m Model) (Model, tea.Cmd) {
			m = m.withError(m.session.DeleteHistory(m.ctx, entry.ID))
			m.histCursor = clampIndex(m.histCursor, len(m.historyEntries()))
			m.status = "Deleted."
			return m, nil
		},
	}
	return m, nil, true
}

func handleResumeHistory(m Model, _ string) (Model, tea.Cmd, bool) {
	entries := m.historyEntries()
	if len(entries) == 0 {
		return m, nil, true
	}
	return m.resume(entries[clampIndex(m.histCursor, len(entries))].ID), nil, true
}

// withError records err for display. Nil clears nothing.
func (m Model) withError(err error) Model {
	if err == nil {
		return m
	}
	m.err = describeError(err)
	m.log.Debug("operation failed", zap.Error(err))
	return m
}

func isPersistence(err error) bool {
	var perr *session.PersistenceError
	return errors.As(err, &perr)
}

func describeError(err error) string {
	var (
		done  *challenge.AlreadyCompletedError
		excl  *challenge.ExcludedRideError
		queue *challenge.QueueUnavailableError
		nf    *challenge.NotFoundError
		perr  *session.PersistenceError
	)
	switch {
	case errors.As(err, &done):
		return fmt.Sprintf("Already logged as ride %d. Undo it first.", done.Number)
	case errors.As(err, &excl):
		return "That ride is excluded. Press x to include it."
	case errors.As(err, &queue):
		return fmt.Sprintf("No %s for that ride.", queue.Queue.Label())
	case errors.As(err, &nf):
		return fmt.Sprintf("Unknown %s.", nf.Kind)
	case errors.Is(err, session.ErrResumeExpired):
		return "That run is too old to resume."
	case errors.Is(err, session.ErrNoActiveChallenge):
		return "No challenge in progress."
	case errors.As(err, &perr):
		return "Not saved to disk: " + perr.Err.Error()
	}
	return err.Error()
}

func exclusionStatus(ride models.Ride, excluded bool) string {
	if excluded {
		return "Excluded " + ride.Name + "."
	}
	return "Included " + ride.Name + "."
}

func clampIndex(i, n int) int {
	if n <= 0 {
		return 0
	}
	return util.Clamp(i, 0, n-1)
}
