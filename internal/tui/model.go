// Package tui is the terminal front-end. It renders session state and turns
// key presses into session operations; it keeps no run state of its own.
package tui

import (
	"context"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"github.com/akyairhashvil/everyride/internal/catalog"
	"github.com/akyairhashvil/everyride/internal/config"
	"github.com/akyairhashvil/everyride/internal/models"
	"github.com/akyairhashvil/everyride/internal/session"
)

// Screen is the page currently shown.
type Screen int

const (
	ScreenResort Screen = iota
	ScreenStart
	ScreenPark
	ScreenHistory
)

type editField int

const (
	editNone editField = iota
	editTags
	editLink
)

// confirmState is a pending yes/no question. Any key other than y cancels.
type confirmState struct {
	prompt string
	action func(Model) (Model, tea.Cmd)
}

// reportMsg is delivered when a PDF write finishes.
type reportMsg struct {
	path string
	err  error
}

type Options struct {
	ReportDir string
	Theme     string
	Logger    *zap.Logger
}

type Model struct {
	ctx     context.Context
	session *session.Session
	log     *zap.Logger
	keys    *HandlerRegistry
	help    help.Model

	screen     Screen
	prevScreen Screen
	resortIdx  int
	resortID   string
	parkIdx    int
	cursor     int
	histCursor int

	tagsInput textinput.Model
	linkInput textinput.Model
	editing   editField

	confirm *confirmState
	post    string
	status  string
	err     string

	themeName string
	reportDir string
	width     int
	height    int
}

func NewModel(ctx context.Context, sess *session.Session, opts Options) Model {
	tags := textinput.New()
	tags.Placeholder = "#EveryRideWDW @RideEvery"
	tags.CharLimit = config.MaxTagsLength
	tags.Width = 50

	link := textinput.New()
	link.Placeholder = "https://..."
	link.CharLimit = config.MaxLinkLength
	link.Width = 50

	log := opts.Logger
	if log == nil {
		log = zap.NewNop()
	}
	m := Model{
		ctx:       ctx,
		session:   sess,
		log:       log,
		keys:      defaultRegistry(),
		help:      help.New(),
		tagsInput: tags,
		linkInput: link,
		themeName: opts.Theme,
		reportDir: opts.ReportDir,
		width:     config.DefaultWidth,
	}

	if rec, ok := sess.Active(); ok {
		m.resortID = rec.ResortID
		m.screen = ScreenPark
		m.parkIdx = m.parkIndex(sess.ResumeParkID())
	}
	return m
}

func (m Model) Init() tea.Cmd { return textinput.Blink }

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		return m, nil
	case reportMsg:
		if msg.err != nil {
			m.err = msg.err.Error()
			m.log.Warn("report failed", zap.Error(msg.err))
		} else {
			m.status = "Saved " + msg.path
		}
		return m, nil
	case tea.KeyMsg:
		if msg.Type == tea.KeyCtrlC {
			return m, tea.Quit
		}
		if m.confirm != nil {
			return m.handleConfirm(msg)
		}
		if m.editing != editNone {
			return m.handleEditing(msg)
		}
		m.err = ""
		next, cmd, _ := m.keys.Handle(m, msg.String())
		return next, cmd
	}
	return m, nil
}

func (m Model) handleConfirm(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	pending := m.confirm
	m.confirm = nil
	if msg.String() != "y" {
		m.status = "Cancelled."
		return m, nil
	}
	return pending.action(m)
}

func (m Model) handleEditing(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEnter, tea.KeyEsc:
		m.editing = editNone
		m.tagsInput.Blur()
		m.linkInput.Blur()
		if m.screen == ScreenPark {
			m = m.saveSettings()
		}
		return m, nil
	}
	var cmd tea.Cmd
	if m.editing == editTags {
		m.tagsInput, cmd = m.tagsInput.Update(msg)
	} else {
		m.linkInput, cmd = m.linkInput.Update(msg)
	}
	return m, cmd
}

func (m Model) startEditing(field editField) (Model, tea.Cmd) {
	m.editing = field
	var cmd tea.Cmd
	if field == editTags {
		cmd = m.tagsInput.Focus()
	} else {
		cmd = m.linkInput.Focus()
	}
	return m, cmd
}

func (m Model) settings() models.Settings {
	return models.Settings{
		TagsText:        m.tagsInput.Value(),
		FundraisingLink: m.linkInput.Value(),
	}
}

func (m Model) parks() []models.Park {
	return catalog.Resort(m.resortID).Parks
}

func (m Model) parkID() string {
	parks := m.parks()
	if len(parks) == 0 {
		return ""
	}
	return parks[m.parkIdx%len(parks)].ID
}

func (m Model) parkIndex(parkID string) int {
	for i, p := range m.parks() {
		if p.ID == parkID {
			return i
		}
	}
	return 0
}

// selectedRide is the ride under the cursor on the park or start page.
func (m Model) selectedRide() (models.Ride, bool) {
	rides := m.visibleRides()
	if m.cursor < 0 || m.cursor >= len(rides) {
		return models.Ride{}, false
	}
	return rides[m.cursor], true
}

func (m Model) visibleRides() []models.Ride {
	switch m.screen {
	case ScreenPark:
		return m.session.ParkRides(m.parkID())
	case ScreenStart:
		return m.session.Catalog().RidesByResort(m.resortID)
	}
	return nil
}

func (m Model) historyEntries() []models.Challenge {
	return m.session.HistoryForResort(m.resortID)
}
