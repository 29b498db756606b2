// Package theme holds the light/dark colour scheme. The scheme is chosen at
// start-up, toggled by the user and never persisted.
package theme

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

type Scheme int

const (
	Light Scheme = iota
	Dark
)

func (s Scheme) String() string {
	if s == Dark {
		return "dark"
	}
	return "light"
}

// Toggle returns the other scheme.
func (s Scheme) Toggle() Scheme {
	if s == Dark {
		return Light
	}
	return Dark
}

// Parse accepts "light" or "dark", case-insensitively.
func Parse(name string) (Scheme, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "light", "":
		return Light, nil
	case "dark":
		return Dark, nil
	}
	return Light, fmt.Errorf("unknown theme %q", name)
}

// Palette bundles the colours a scheme renders with.
type Palette struct {
	Text, Background, Muted, Accent, Success, Pending, Error lipgloss.Color
}

var palettes = map[Scheme]Palette{
	Light: {
		Text:       lipgloss.Color("#11181C"),
		Background: lipgloss.Color("#FFFFFF"),
		Muted:      lipgloss.Color("#687076"),
		Accent:     lipgloss.Color("#0A7EA4"),
		Success:    lipgloss.Color("#2E7D32"),
		Pending:    lipgloss.Color("#B26A00"),
		Error:      lipgloss.Color("#D32F2F"),
	},
	Dark: {
		Text:       lipgloss.Color("#ECEDEE"),
		Background: lipgloss.Color("#151718"),
		Muted:      lipgloss.Color("#9BA1A6"),
		Accent:     lipgloss.Color("#FFEFD5"), // papayawhip
		Success:    lipgloss.Color("#81C784"),
		Pending:    lipgloss.Color("#FFB74D"),
		Error:      lipgloss.Color("#EF5350"),
	},
}

func (s Scheme) Palette() Palette { return palettes[s] }

// Styles are the lipgloss styles the terminal views pull from.
type Styles struct {
	Title, Text, Muted, Accent, Success, Pending, Error lipgloss.Style
	Selected, Done, Help, Border                        lipgloss.Style

	BoxChecked, BoxUnchecked string
}

// Styles builds the style set for s.
func (s Scheme) Styles() Styles {
	p := s.Palette()
	return Styles{
		Title:    lipgloss.NewStyle().Bold(true).Foreground(p.Text),
		Text:     lipgloss.NewStyle().Foreground(p.Text),
		Muted:    lipgloss.NewStyle().Foreground(p.Muted),
		Accent:   lipgloss.NewStyle().Foreground(p.Accent),
		Success:  lipgloss.NewStyle().Foreground(p.Success),
		Pending:  lipgloss.NewStyle().Foreground(p.Pending),
		Error:    lipgloss.NewStyle().Foreground(p.Error).Bold(true),
		Selected: lipgloss.NewStyle().Bold(true).Reverse(true),
		Done:     lipgloss.NewStyle().Foreground(p.Muted).Strikethrough(true),
		Help:     lipgloss.NewStyle().Foreground(p.Muted),
		Border: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(p.Muted).
			BorderBackground(p.Background).
			Background(p.Background).
			Padding(0, 1),

		BoxChecked:   "☑",
		BoxUnchecked: "☐",
	}
}
