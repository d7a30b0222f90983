package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"

	"github.com/akyairhashvil/everyride/internal/catalog"
	"github.com/akyairhashvil/everyride/internal/challenge"
	"github.com/akyairhashvil/everyride/internal/config"
	"github.com/akyairhashvil/everyride/internal/models"
)

func (m Model) View() string {
	parkID := ""
	if m.screen == ScreenPark {
		parkID = m.parkID()
	}
	theme := ThemeFor(m.themeName, parkID)

	var body string
	switch m.screen {
	case ScreenResort:
		body = m.viewResorts(theme)
	case ScreenStart:
		body = m.viewStart(theme)
	case ScreenPark:
		body = m.viewPark(theme)
	case ScreenHistory:
		body = m.viewHistory(theme)
	}
	return theme.Base.Render(body + "\n" + m.viewFooter(theme))
}

func (m Model) viewResorts(theme Theme) string {
	var b strings.Builder
	b.WriteString(theme.Header.Render("#EveryRide") + "\n\n")
	for i, r := range catalog.Resorts() {
		line := "  " + r.Name
		if i == m.resortIdx {
			line = theme.Focused.Render("> " + r.Name)
		}
		b.WriteString(line + "\n")
	}
	return b.String()
}

func (m Model) viewStart(theme Theme) string {
	var b strings.Builder
	resort := catalog.Resort(m.resortID)
	rides := m.visibleRides()
	drafts, _ := m.session.DraftExclusions(m.ctx, m.resortID)

	b.WriteString(theme.Header.Render(resort.Name+" #EveryRide") + "\n")
	b.WriteString(theme.Dim.Render(challenge.LongDayLabel(m.session.DayKey())) + "\n\n")
	b.WriteString("Tags: " + m.tagsInput.View() + "\n")
	b.WriteString("Link: " + m.linkInput.View() + "\n\n")

	if cand, ok := m.session.ResumeCandidate(m.resortID); ok {
		b.WriteString(theme.Highlight.Render(fmt.Sprintf("Press R to resume %s (%d rides)",
			challenge.LongDayLabel(cand.DayKey), len(cand.Events))) + "\n\n")
	}

	count, total := challenge.ExclusionCounts(rides, drafts)
	b.WriteString(theme.Dim.Render(fmt.Sprintf("Excluded %d of %d rides", count, total)) + "\n")
	start, end := scrollWindow(m.cursor, len(rides), config.MaxVisibleRides)
	for i := start; i < end; i++ {
		r := rides[i]
		mark := "[ ]"
		style := theme.Ride
		if drafts.Has(r.ID) {
			mark = "[x]"
			style = theme.ExcludedRide
		}
		label := truncateLabel(catalog.ParkName(m.resortID, r.ParkID)+": "+r.Name, m.nameWidth(8))
		line := mark + " " + style.Render(label)
		b.WriteString(cursorPrefix(theme, i == m.cursor) + line + "\n")
	}
	return b.String()
}

func (m Model) viewPark(theme Theme) string {
	var b strings.Builder
	rec, ok := m.session.Active()
	if !ok {
		return theme.Dim.Render("No challenge in progress.") + "\n"
	}
	parkID := m.parkID()
	counts := m.session.Counts()
	park := m.session.ParkCounts(parkID)

	b.WriteString(theme.Header.Render(catalog.Resort(rec.ResortID).Name+" #EveryRide") + "  ")
	b.WriteString(theme.Dim.Render(fmt.Sprintf("%d rides, %d to go", len(rec.Events), counts.Remaining())) + "\n")
	b.WriteString(m.viewParkTabs(theme) + "\n")

	rides := m.visibleRides()
	count, total := challenge.ExclusionCounts(rides, m.session.ExcludedSet())
	summary := fmt.Sprintf("%d of %d done", park.Completed, park.Total-park.Excluded)
	if count > 0 {
		summary += fmt.Sprintf(", excluded %d of %d", count, total)
	}
	b.WriteString(theme.Dim.Render(summary) + "\n")
	if m.session.ParkComplete(parkID) {
		b.WriteString(theme.Banner.Render(challenge.ParkCompleteText(catalog.ParkName(rec.ResortID, parkID))) + "\n")
	}
	b.WriteString("\n")

	completion := m.session.Completion()
	excluded := m.session.ExcludedSet()
	start, end := scrollWindow(m.cursor, len(rides), config.MaxVisibleRides)
	for i := start; i < end; i++ {
		b.WriteString(cursorPrefix(theme, i == m.cursor) + m.rideRow(theme, rides[i], completion, excluded) + "\n")
	}

	if m.post != "" {
		b.WriteString("\n" + theme.Post.Width(m.postWidth()).Render(m.post) + "\n")
	}
	return b.String()
}

func (m Model) viewParkTabs(theme Theme) string {
	var tabs []string
	current := m.parkID()
	for _, p := range m.parks() {
		if p.ID == current {
			tabs = append(tabs, theme.Focused.Render("["+p.Name+"]"))
		} else {
			tabs = append(tabs, theme.Dim.Render(" "+p.Name+" "))
		}
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, tabs...)
}

// rideRow renders "NN. Name  QQ  h:mm AM" for a completed ride and the bare
// name otherwise.
func (m Model) rideRow(theme Theme, r models.Ride, completion map[string]challenge.Completion, excluded challenge.RideSet) string {
	name := truncateLabel(r.Name, m.nameWidth(22))
	if excluded.Has(r.ID) {
		return "    " + theme.ExcludedRide.Render(name) + theme.Dim.Render(" (excluded)")
	}
	done, ok := completion[r.ID]
	if !ok {
		return "    " + theme.Ride.Render(name)
	}
	abbrev := done.Event.QueueType.Abbrev()
	if abbrev == "" {
		abbrev = "  "
	}
	return fmt.Sprintf("%2d. %s  %s  %s",
		done.Number(),
		theme.CompletedRide.Render(name),
		theme.Highlight.Render(abbrev),
		theme.Dim.Render(challenge.FormatClock(done.Event.Timestamp.In(m.session.Now().Location()))))
}

func (m Model) viewHistory(theme Theme) string {
	var b strings.Builder
	b.WriteString(theme.Header.Render(catalog.Resort(m.resortID).Name+" history") + "\n\n")
	entries := m.historyEntries()
	if len(entries) == 0 {
		b.WriteString(theme.Dim.Render("No past runs yet.") + "\n")
		return b.String()
	}
	start, end := scrollWindow(m.histCursor, len(entries), config.MaxVisibleRides)
	for i := start; i < end; i++ {
		e := entries[i]
		star := " "
		if e.Saved {
			star = "★"
		}
		line := fmt.Sprintf("%s %s  %d rides", star, challenge.LongDayLabel(e.DayKey), len(e.Events))
		if e.EndedAt == nil {
			line += theme.Dim.Render("  (unfinished)")
		}
		b.WriteString(cursorPrefix(theme, i == m.histCursor) + line + "\n")
	}
	return b.String()
}

func (m Model) viewFooter(theme Theme) string {
	var b strings.Builder
	if m.confirm != nil {
		b.WriteString(theme.Focused.Render(m.confirm.prompt) + "\n")
		return b.String()
	}
	if m.editing != editNone {
		b.WriteString(theme.Dim.Render("enter to save, esc to finish") + "\n")
	}
	if m.err != "" {
		b.WriteString(theme.Error.Render(m.err) + "\n")
	}
	if m.status != "" {
		b.WriteString(theme.Dim.Render(m.status) + "\n")
	}
	if m.screen == ScreenPark && m.editing != editNone {
		b.WriteString("Tags: " + m.tagsInput.View() + "\n")
		b.WriteString("Link: " + m.linkInput.View() + "\n")
	}
	b.WriteString(m.help.ShortHelpView(m.keys.HelpKeys(m.screen)))
	return b.String()
}

func cursorPrefix(theme Theme, selected bool) string {
	if selected {
		return theme.Focused.Render("> ")
	}
	return "  "
}

// scrollWindow returns the [start, end) slice of n rows that keeps cursor
// visible in a window of size rows.
func scrollWindow(cursor, n, size int) (int, int) {
	if n <= size {
		return 0, n
	}
	start := cursor - size + 1
	if start < 0 {
		start = 0
	}
	return start, start + size
}

func (m Model) nameWidth(reserved int) int {
	w := m.width - reserved - 6
	if w < config.MinRideNameWidth {
		return config.MinRideNameWidth
	}
	return w
}

func (m Model) postWidth() int {
	w := m.width - 8
	if w < 20 {
		return 20
	}
	return w
}

// truncateLabel shortens s to width terminal cells.
func truncateLabel(s string, width int) string {
	if ansi.StringWidth(s) <= width {
		return s
	}
	return ansi.Truncate(s, width, config.TruncationSuffix)
}
