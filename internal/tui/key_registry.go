package tui

import (
	"sort"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
)

type KeyHandler func(m Model, key string) (Model, tea.Cmd, bool)

type KeyBinding struct {
	Key         string
	Handler     KeyHandler
	Description string
	Screens     []Screen
	Priority    int
}

func (b KeyBinding) AppliesTo(s Screen) bool {
	if len(b.Screens) == 0 {
		return true
	}
	for _, v := range b.Screens {
		if v == s {
			return true
		}
	}
	return false
}

type HandlerRegistry struct {
	bindings []KeyBinding
}

func NewHandlerRegistry() *HandlerRegistry {
	return &HandlerRegistry{}
}

func (r *HandlerRegistry) Register(b KeyBinding) {
	r.bindings = append(r.bindings, b)
	sort.SliceStable(r.bindings, func(i, j int) bool {
		return r.bindings[i].Priority > r.bindings[j].Priority
	})
}

func (r *HandlerRegistry) Handle(m Model, k string) (Model, tea.Cmd, bool) {
	for _, b := range r.bindings {
		if b.Key == k && b.AppliesTo(m.screen) {
			next, cmd, handled := b.Handler(m, k)
			if handled {
				return next, cmd, true
			}
		}
	}
	return m, nil, false
}

func (r *HandlerRegistry) BindingsFor(s Screen) []KeyBinding {
	var out []KeyBinding
	for _, b := range r.bindings {
		if b.AppliesTo(s) {
			out = append(out, b)
		}
	}
	return out
}

// HelpKeys converts a screen's described bindings for the bubbles help view.
// Keys registered more than once appear once.
func (r *HandlerRegistry) HelpKeys(s Screen) []key.Binding {
	seen := make(map[string]bool)
	var out []key.Binding
	for _, b := range r.BindingsFor(s) {
		if b.Description == "" || seen[b.Description] {
			continue
		}
		seen[b.Description] = true
		keys := []string{b.Key}
		for _, other := range r.BindingsFor(s) {
			if other.Description == b.Description && other.Key != b.Key {
				keys = append(keys, other.Key)
			}
		}
		out = append(out, key.NewBinding(
			key.WithKeys(keys...),
			key.WithHelp(keys[0], b.Description),
		))
	}
	return out
}
