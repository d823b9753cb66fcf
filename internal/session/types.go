package session

import "calcpad/internal/calculator"

// KeysRequest is the JSON body for POST /sessions/{id}/keys.
type KeysRequest struct {
	Keys []string `json:"keys"` // e.g. ["1", "+", "2", "enter"]
}

// Snapshot is the JSON view of one session's calculator.
type Snapshot struct {
	ID              string `json:"id"`
	Display         string `json:"display"`
	Expression      string `json:"expression,omitempty"`
	PreviousValue   string `json:"previous_value,omitempty"`
	Operator        string `json:"operator,omitempty"`
	OperatorClicked bool   `json:"operator_clicked"`
	Failed          bool   `json:"failed"`
}

func newSnapshot(id string, s calculator.State) Snapshot {
	snap := Snapshot{
		ID:              id,
		Display:         s.Display(),
		Expression:      s.Expression(),
		OperatorClicked: s.OperatorClicked(),
		Failed:          s.Failed(),
	}
	if value, op, ok := s.Pending(); ok {
		snap.PreviousValue = value
		snap.Operator = op.String()
	}
	return snap
}
