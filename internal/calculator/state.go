// Package calculator implements the keypad state machine of an
// immediate-execution calculator: one pending operator at a time, chained
// evaluation, and a display value kept in display form.
//
// State is an immutable record. Every operation returns the next State and
// never fails; failures show up as the error marker on the display.
package calculator

import (
	"strings"

	"calcpad/internal/numfmt"
)

type pending struct {
	value string // raw form
	op    Operator
}

// State is the whole calculator. The zero value is the initial
// configuration.
type State struct {
	display         string
	pending         *pending
	operatorClicked bool
}

// New returns the initial configuration.
func New() State {
	return State{display: numfmt.Zero}
}

// Display returns the value on screen, in display form.
func (s State) Display() string {
	if s.display == "" {
		return numfmt.Zero
	}
	return s.display
}

// Pending returns the captured operand (raw form) and the operator waiting
// for a second operand. ok is false when nothing is pending.
func (s State) Pending() (value string, op Operator, ok bool) {
	if s.pending == nil {
		return "", 0, false
	}
	return s.pending.value, s.pending.op, true
}

// OperatorClicked reports whether the next digit starts a new operand.
func (s State) OperatorClicked() bool {
	return s.operatorClicked
}

// Failed reports whether the display holds the error marker.
func (s State) Failed() bool {
	return s.display == numfmt.ErrorMarker
}

// Expression renders the pending operand and operator, e.g. "1.234 +".
// It is empty when nothing is pending.
func (s State) Expression() string {
	if s.pending == nil {
		return ""
	}
	return numfmt.ToDisplay(s.pending.value) + " " + s.pending.op.Symbol()
}

// Digit types d. It starts a new operand after an operator, after equals,
// on the error marker or on a lone zero; otherwise it appends, up to
// numfmt.MaxDigits digits.
func (s State) Digit(d byte) State {
	if d < '0' || d > '9' {
		return s
	}

	if s.Display() == numfmt.Zero || s.operatorClicked || s.Failed() {
		s.display = string(d)
		s.operatorClicked = false
		return s
	}

	raw := numfmt.ToRaw(s.display)
	if numfmt.DigitCount(raw) >= numfmt.MaxDigits {
		return s
	}
	s.display = numfmt.ToDisplay(raw + string(d))
	return s
}

// Decimal adds the decimal separator unless the operand already has one.
func (s State) Decimal() State {
	if s.Failed() {
		s.display = numfmt.ToDisplay(numfmt.Zero + ".")
		s.operatorClicked = false
		return s
	}

	raw := numfmt.ToRaw(s.Display())
	if strings.Contains(raw, ".") {
		return s
	}
	s.display = numfmt.ToDisplay(raw + ".")
	return s
}

// Operator resolves any pending operation, then captures the display as
// the first operand of op. The display is left as is until the next digit.
func (s State) Operator(op Operator) State {
	if !op.Valid() {
		return s
	}
	if s.pending != nil {
		s = s.Equals()
	}

	s.pending = &pending{value: numfmt.ToRaw(s.Display()), op: op}
	s.operatorClicked = true
	return s
}

// Equals evaluates the pending operation against the display. Without a
// pending operation it does nothing.
func (s State) Equals() State {
	if s.pending == nil {
		return s
	}

	prev := numfmt.Parse(s.pending.value)
	curr := numfmt.Parse(numfmt.ToRaw(s.Display()))

	result, err := s.pending.op.Apply(prev, curr)
	if err != nil {
		s.display = numfmt.ErrorMarker
	} else {
		s.display = numfmt.FormatResult(result)
	}

	s.pending = nil
	s.operatorClicked = true
	return s
}

// Clear returns the initial configuration.
func (State) Clear() State {
	return New()
}

// Apply dispatches ev to the matching operation. Unknown events leave s
// unchanged.
func Apply(s State, ev Event) State {
	switch ev.Kind {
	case EventDigit:
		return s.Digit(ev.Digit)
	case EventDecimal:
		return s.Decimal()
	case EventOperator:
		return s.Operator(ev.Op)
	case EventEquals:
		return s.Equals()
	case EventClear:
		return s.Clear()
	default:
		return s
	}
}
