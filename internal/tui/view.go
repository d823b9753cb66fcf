package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"calcpad/internal/calculator"
)

var (
	expressionStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#71717a")).
			Width(gridWidth).
			Align(lipgloss.Right)

	displayStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("#3f3f46")).
			Foreground(lipgloss.Color("#f4f4f5")).
			Bold(true).
			Padding(0, 1).
			Width(gridWidth - 2).
			Align(lipgloss.Right)

	displayErrorStyle = displayStyle.
				Foreground(lipgloss.Color("#fca5a5"))

	keyStyle = lipgloss.NewStyle().
			Width(cellWidth).
			Height(cellHeight).
			Align(lipgloss.Center, lipgloss.Center).
			Background(lipgloss.Color("#27272a")).
			Foreground(lipgloss.Color("#d4d4d8"))

	operatorKeyStyle = keyStyle.
				Background(lipgloss.Color("#3f3f46")).
				Foreground(lipgloss.Color("#fde68a"))

	equalsKeyStyle = keyStyle.
			Background(lipgloss.Color("#b45309")).
			Foreground(lipgloss.Color("#fafafa"))

	clearKeyStyle = keyStyle.
			Foreground(lipgloss.Color("#fca5a5"))

	pressedKeyStyle = keyStyle.
			Background(lipgloss.Color("#94a3b8")).
			Foreground(lipgloss.Color("#18181b"))

	helpStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#52525b"))
)

const helpText = "0-9 , + - * / enter · esc clear · ctrl+c quit"

func (m Model) View() string {
	return lipgloss.JoinVertical(lipgloss.Left,
		m.header(),
		"",
		m.keypad(),
		"",
		helpStyle.Render(helpText),
	)
}

func (m Model) header() string {
	expr := m.state.Expression()
	if expr == "" {
		expr = " "
	}

	display := displayStyle
	if m.state.Failed() {
		display = displayErrorStyle
	}

	return lipgloss.JoinVertical(lipgloss.Left,
		expressionStyle.Render(expr),
		display.Render(m.state.Display()),
	)
}

// gridTop is the screen row of the first keypad row.
func (m Model) gridTop() int {
	return lipgloss.Height(m.header()) + 1
}

func (m Model) keypad() string {
	gap := strings.Repeat(" ", cellGap)

	rows := make([]string, 0, len(grid))
	for _, row := range grid {
		cells := make([]string, 0, 2*len(row))
		for i, b := range row {
			if i > 0 {
				cells = append(cells, gap)
			}
			cells = append(cells, m.keyStyle(b).Render(b.label))
		}
		rows = append(rows, lipgloss.JoinHorizontal(lipgloss.Top, cells...))
	}
	return lipgloss.JoinVertical(lipgloss.Left, rows...)
}

func (m Model) keyStyle(b button) lipgloss.Style {
	if b.event.String() == m.pressed {
		return pressedKeyStyle
	}

	switch b.event.Kind {
	case calculator.EventOperator:
		return operatorKeyStyle
	case calculator.EventEquals:
		return equalsKeyStyle
	case calculator.EventClear:
		return clearKeyStyle
	default:
		return keyStyle
	}
}
