package tui

import (
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// SearchBar is the filter-text input, a reusable styled wrapper around
// bubbles/textinput matching the rest of gridcore's field components.
type SearchBar struct {
	input    textinput.Model
	isActive bool
	width    int
}

// NewSearchBar constructs an inactive, empty SearchBar.
func NewSearchBar() *SearchBar {
	ti := textinput.New()
	ti.Placeholder = "filter..."
	ti.CharLimit = 200
	ti.Width = 40
	return &SearchBar{input: ti}
}

// SetActive focuses or blurs the underlying input.
func (s *SearchBar) SetActive(active bool) {
	s.isActive = active
	if active {
		s.input.Focus()
	} else {
		s.input.Blur()
	}
}

func (s *SearchBar) Active() bool { return s.isActive }

func (s *SearchBar) Value() string { return s.input.Value() }

func (s *SearchBar) SetWidth(width int) {
	s.width = width
	s.input.Width = width - 12
}

func (s *SearchBar) Update(msg tea.Msg) (*SearchBar, tea.Cmd) {
	var cmd tea.Cmd
	s.input, cmd = s.input.Update(msg)
	return s, cmd
}

func (s *SearchBar) View() string {
	borderColor := "240"
	if s.isActive {
		borderColor = "170"
	}
	style := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color(borderColor)).
		Width(s.width - 4).
		Padding(0, 1)
	icon := lipgloss.NewStyle().Foreground(lipgloss.Color(borderColor)).Render("⌕ ")
	return style.Render(icon + s.input.View())
}
