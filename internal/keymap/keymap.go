// Package keymap translates key symbols into calculator events.
//
// Symbols are either a single character ("7", "+", ",") or a key name as
// reported by terminal libraries ("enter", "esc", "backspace"). Lookup is
// shared by the terminal interface and the HTTP API so both accept the same
// keys.
package keymap

import (
	"strings"

	"calcpad/internal/calculator"
)

var named = map[string]calculator.Event{
	"enter":     calculator.EqualsEvent(),
	"return":    calculator.EqualsEvent(),
	"esc":       calculator.ClearEvent(),
	"escape":    calculator.ClearEvent(),
	"backspace": calculator.ClearEvent(),
}

// Lookup returns the event bound to key. ok is false for keys the
// calculator ignores.
func Lookup(key string) (ev calculator.Event, ok bool) {
	if ev, ok := named[strings.ToLower(key)]; ok {
		return ev, true
	}

	switch key {
	case "0", "1", "2", "3", "4", "5", "6", "7", "8", "9":
		return calculator.DigitEvent(key[0]), true
	case ".", ",":
		return calculator.DecimalEvent(), true
	case "+":
		return calculator.OperatorEvent(calculator.Add), true
	case "-":
		return calculator.OperatorEvent(calculator.Sub), true
	case "*", "x", "X", "×":
		return calculator.OperatorEvent(calculator.Mul), true
	case "/", "÷":
		return calculator.OperatorEvent(calculator.Div), true
	case "=":
		return calculator.EqualsEvent(), true
	case "c", "C":
		return calculator.ClearEvent(), true
	}
	return calculator.Event{}, false
}
