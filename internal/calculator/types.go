package calculator

import (
	"errors"
	"fmt"
)

// ErrDivisionByZero is returned by Operator.Apply when dividing by zero.
var ErrDivisionByZero = errors.New("division by zero")

// Operator is a pending binary operation. The zero value is not a valid
// operator; State never stores one.
type Operator uint8

const (
	Add Operator = iota + 1
	Sub
	Mul
	Div
)

// String returns the name used in logs, metrics and the JSON API.
func (op Operator) String() string {
	switch op {
	case Add:
		return "add"
	case Sub:
		return "sub"
	case Mul:
		return "mul"
	case Div:
		return "div"
	default:
		return fmt.Sprintf("operator(%d)", uint8(op))
	}
}

// Symbol returns the sign shown next to the pending operand.
func (op Operator) Symbol() string {
	switch op {
	case Add:
		return "+"
	case Sub:
		return "-"
	case Mul:
		return "×"
	case Div:
		return "÷"
	default:
		return "?"
	}
}

// Valid reports whether op is one of Add, Sub, Mul or Div.
func (op Operator) Valid() bool {
	return op >= Add && op <= Div
}

// Apply computes prev op curr.
func (op Operator) Apply(prev, curr float64) (float64, error) {
	switch op {
	case Add:
		return prev + curr, nil
	case Sub:
		return prev - curr, nil
	case Mul:
		return prev * curr, nil
	case Div:
		if curr == 0 {
			return 0, fmt.Errorf("%g / %g: %w", prev, curr, ErrDivisionByZero)
		}
		return prev / curr, nil
	default:
		return 0, fmt.Errorf("unknown %s", op)
	}
}

// EventKind classifies an input event.
type EventKind uint8

const (
	EventDigit EventKind = iota + 1
	EventDecimal
	EventOperator
	EventEquals
	EventClear
)

func (k EventKind) String() string {
	switch k {
	case EventDigit:
		return "digit"
	case EventDecimal:
		return "decimal"
	case EventOperator:
		return "operator"
	case EventEquals:
		return "equals"
	case EventClear:
		return "clear"
	default:
		return fmt.Sprintf("event(%d)", uint8(k))
	}
}

// Event is one pre-classified input. Digit is set for EventDigit and Op
// for EventOperator.
type Event struct {
	Kind  EventKind
	Digit byte
	Op    Operator
}

func DigitEvent(d byte) Event { return Event{Kind: EventDigit, Digit: d} }
func DecimalEvent() Event { return Event{Kind: EventDecimal} }
func OperatorEvent(op Operator) Event { return Event{Kind: EventOperator, Op: op} }
func EqualsEvent() Event { return Event{Kind: EventEquals} }
func ClearEvent() Event { return Event{Kind: EventClear} }

// String renders the event the way a key cap would show it.
func (e Event) String() string {
	switch e.Kind {
	case EventDigit:
		return string(e.Digit)
	case EventDecimal:
		return ","
	case EventOperator:
		return e.Op.Symbol()
	case EventEquals:
		return "="
	case EventClear:
		return "C"
	default:
		return e.Kind.String()
	}
}
