package selector

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
)

const maxLabelWidth = 60

var (
	borderStyle   = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(lipgloss.Color("63")).Padding(0, 1)
	titleStyle    = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("63"))
	itemStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("252"))
	selectedStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("231")).Background(lipgloss.Color("62")).Bold(true)
	helpStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
)

// Model is a single-shot pick list: up/down move the highlight with no
// wraparound, enter accepts, esc cancels.
type Model struct {
	title     string
	items     []string
	cursor    int
	accepted  bool
	cancelled bool
}

func NewModel(title string, items []string, preselect string) Model {
	m := Model{title: title, items: items}
	for i, item := range items {
		if strings.EqualFold(item, preselect) {
			m.cursor = i
			break
		}
	}
	return m
}

func (m Model) Init() tea.Cmd {
	return nil
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	key, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}
	switch key.String() {
	case "up", "k":
		if m.cursor > 0 {
			m.cursor--
		}
	case "down", "j":
		if m.cursor < len(m.items)-1 {
			m.cursor++
		}
	case "enter":
		m.accepted = true
		return m, tea.Quit
	case "esc", "q", "ctrl+c":
		m.cancelled = true
		return m, tea.Quit
	}
	return m, nil
}

func (m Model) View() string {
	var b strings.Builder
	b.WriteString(titleStyle.Render(m.title))
	b.WriteString("\n")
	for i, item := range m.items {
		label := truncateToWidth(item, maxLabelWidth)
		if i == m.cursor {
			b.WriteString(selectedStyle.Render("> " + label))
		} else {
			b.WriteString(itemStyle.Render("  " + label))
		}
		b.WriteString("\n")
	}
	b.WriteString(helpStyle.Render("enter select · esc cancel"))
	return borderStyle.Render(b.String()) + "\n"
}

// Choice returns the highlighted item and whether the user accepted it.
func (m Model) Choice() (string, bool) {
	if !m.accepted || m.cursor < 0 || m.cursor >= len(m.items) {
		return "", false
	}
	return m.items[m.cursor], true
}

// Run blocks on the terminal until the user picks or cancels. The alt
// screen guarantees the previous terminal content and cursor come back
// on every exit path.
func Run(title string, items []string, preselect string) (string, bool, error) {
	program := tea.NewProgram(NewModel(title, items, preselect), tea.WithAltScreen())
	final, err := program.Run()
	if err != nil {
		return "", false, err
	}
	model, ok := final.(Model)
	if !ok {
		return "", false, fmt.Errorf("unexpected final model %T", final)
	}
	choice, accepted := model.Choice()
	return choice, accepted, nil
}

func truncateToWidth(text string, width int) string {
	if width <= 0 {
		return text
	}
	if ansi.StringWidth(text) <= width {
		return text
	}
	if width == 1 {
		return "…"
	}
	return ansi.Cut(text, 0, width-1) + "…"
}
