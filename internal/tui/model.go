// Package tui is the interactive terminal front end of the calculator. It
// owns exactly one calculator.State and applies one event per key press or
// mouse click; Bubble Tea delivers messages one at a time.
package tui

import (
	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"calcpad/internal/calculator"
	"calcpad/internal/keymap"
)

type Model struct {
	state  calculator.State
	logger *zap.Logger

	// pressed is the label of the last key cap activated, for highlighting.
	pressed string
}

func New(logger *zap.Logger) Model {
	return Model{state: calculator.New(), logger: logger}
}

// State exposes the calculator for read-only observation.
func (m Model) State() calculator.State {
	return m.state
}

func (m Model) Init() tea.Cmd {
	return nil
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.Type {
		case tea.KeyCtrlC, tea.KeyCtrlD:
			return m, tea.Quit
		}

		ev, ok := keymap.Lookup(msg.String())
		if !ok {
			return m, nil
		}
		return m.apply(msg.String(), ev), nil

	case tea.MouseMsg:
		if msg.Action != tea.MouseActionPress || msg.Button != tea.MouseButtonLeft {
			return m, nil
		}
		b, ok := buttonAt(msg.X, msg.Y-m.gridTop())
		if !ok {
			return m, nil
		}
		return m.apply("click "+b.label, b.event), nil
	}

	return m, nil
}

func (m Model) apply(source string, ev calculator.Event) Model {
	prev := m.state
	m.state = calculator.Apply(m.state, ev)
	m.pressed = ev.String()

	if m.state.Failed() && !prev.Failed() {
		m.logger.Warn("calculation failed",
			zap.String("source", source),
			zap.String("display_before", prev.Display()),
		)
	}
	m.logger.Debug("event applied",
		zap.String("source", source),
		zap.Stringer("kind", ev.Kind),
		zap.String("display", m.state.Display()),
		zap.String("expression", m.state.Expression()),
	)
	return m
}
