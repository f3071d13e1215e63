package engine

import "encoding/json"

// Event is one entry of a game log. Shot is the 1-based shot number, 0 for
// placement.
type Event struct {
	Shot    int            `json:"shot"`
	Type    string         `json:"type"`
	Payload map[string]any `json:"payload,omitempty"`
}

const (
	EventPlace      = "Place"
	EventShot       = "Shot"
	EventHit        = "Hit"
	EventMiss       = "Miss"
	EventEliminated = "Eliminated"
	EventGameOver   = "GameOver"
	EventLogLine    = "LogLine"
)

func MarshalPretty(v any) []byte {
	b, _ := json.MarshalIndent(v, "", "  ")
	return b
}
