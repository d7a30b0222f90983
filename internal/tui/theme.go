package tui

import "github.com/charmbracelet/lipgloss"

type Theme struct {
	Name          string
	Base          lipgloss.Style
	Border        lipgloss.Color
	Header        lipgloss.Style
	Ride          lipgloss.Style
	CompletedRide lipgloss.Style
	ExcludedRide  lipgloss.Style
	Banner        lipgloss.Style
	Post          lipgloss.Style
	Error         lipgloss.Style
	Focused       lipgloss.Style
	Dim           lipgloss.Style
	Highlight     lipgloss.Style
}

var Themes = map[string]Theme{
	"default": {
		Name:          "Default",
		Base:          lipgloss.NewStyle().Margin(1, 2),
		Border:        lipgloss.Color("63"),
		Header:        lipgloss.NewStyle().Foreground(lipgloss.Color("205")).Bold(true),
		Ride:          lipgloss.NewStyle().Foreground(lipgloss.Color("252")),
		CompletedRide: lipgloss.NewStyle().Foreground(lipgloss.Color("78")),
		ExcludedRide:  lipgloss.NewStyle().Foreground(lipgloss.Color("240")).Strikethrough(true),
		Banner:        lipgloss.NewStyle().Foreground(lipgloss.Color("230")).Background(lipgloss.Color("63")).Bold(true).Padding(0, 1),
		Post:          lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(lipgloss.Color("63")).Padding(0, 1),
		Error:         lipgloss.NewStyle().Foreground(lipgloss.Color("9")).Bold(true),
		Focused:       lipgloss.NewStyle().Foreground(lipgloss.Color("205")).Bold(true),
		Dim:           lipgloss.NewStyle().Foreground(lipgloss.Color("240")),
		Highlight:     lipgloss.NewStyle().Foreground(lipgloss.Color("63")),
	},
	"dracula": {
		Name:          "Dracula",
		Base:          lipgloss.NewStyle().Margin(1, 2),
		Border:        lipgloss.Color("62"),
		Header:        lipgloss.NewStyle().Foreground(lipgloss.Color("50")).Bold(true),
		Ride:          lipgloss.NewStyle().Foreground(lipgloss.Color("255")),
		CompletedRide: lipgloss.NewStyle().Foreground(lipgloss.Color("120")),
		ExcludedRide:  lipgloss.NewStyle().Foreground(lipgloss.Color("60")).Strikethrough(true),
		Banner:        lipgloss.NewStyle().Foreground(lipgloss.Color("232")).Background(lipgloss.Color("141")).Bold(true).Padding(0, 1),
		Post:          lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(lipgloss.Color("62")).Padding(0, 1),
		Error:         lipgloss.NewStyle().Foreground(lipgloss.Color("210")).Bold(true),
		Focused:       lipgloss.NewStyle().Foreground(lipgloss.Color("212")).Bold(true),
		Dim:           lipgloss.NewStyle().Foreground(lipgloss.Color("60")),
		Highlight:     lipgloss.NewStyle().Foreground(lipgloss.Color("62")),
	},
}

// parkAccents tint the header and focus colors per park.
var parkAccents = map[string]lipgloss.Color{
	"mk":  lipgloss.Color("205"), // castle pink
	"ep":  lipgloss.Color("45"),
	"hs":  lipgloss.Color("196"),
	"ak":  lipgloss.Color("71"),
	"dl":  lipgloss.Color("213"),
	"dca": lipgloss.Color("33"),
}

// ThemeFor returns the named theme tinted for a park. Unknown names fall
// back to the default theme.
func ThemeFor(name, parkID string) Theme {
	t, ok := Themes[name]
	if !ok {
		t = Themes["default"]
	}
	accent, ok := parkAccents[parkID]
	if !ok {
		return t
	}
	t.Header = t.Header.Foreground(accent)
	t.Focused = t.Focused.Foreground(accent)
	t.Border = accent
	t.Post = t.Post.BorderForeground(accent)
	t.Banner = t.Banner.Background(accent)
	return t
}
