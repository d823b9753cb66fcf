package tui

import "calcpad/internal/calculator"

type button struct {
	label string
	event calculator.Event
}

func digit(d byte) button {
	return button{label: string(d), event: calculator.DigitEvent(d)}
}

func op(o calculator.Operator) button {
	return button{label: o.Symbol(), event: calculator.OperatorEvent(o)}
}

// grid is the keypad, row by row. Rows may be shorter than the widest one.
var grid = [][]button{
	{digit('7'), digit('8'), digit('9'), op(calculator.Div)},
	{digit('4'), digit('5'), digit('6'), op(calculator.Mul)},
	{digit('1'), digit('2'), digit('3'), op(calculator.Sub)},
	{digit('0'), {label: ",", event: calculator.DecimalEvent()}, {label: "=", event: calculator.EqualsEvent()}, op(calculator.Add)},
	{{label: "C", event: calculator.ClearEvent()}},
}

const (
	gridColumns = 4
	cellWidth   = 7
	cellHeight  = 3
	cellGap     = 1
	gridWidth   = gridColumns*(cellWidth+cellGap) - cellGap
)

// buttonAt returns the button under grid-relative cell (x, y).
func buttonAt(x, y int) (button, bool) {
	if x < 0 || y < 0 {
		return button{}, false
	}

	stride := cellWidth + cellGap
	if x%stride >= cellWidth {
		return button{}, false
	}
	col, row := x/stride, y/cellHeight

	if row >= len(grid) || col >= len(grid[row]) {
		return button{}, false
	}
	return grid[row][col], true
}
