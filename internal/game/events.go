package game

import "github.com/tomz197/handninja/internal/object"

// EventKind identifies something that happened during a tick.
type EventKind int

const (
	EventStart     EventKind = iota // Round started
	EventSlice                      // Fruit sliced
	EventPowerUp                    // Freeze, double or heart sliced
	EventBomb                       // Bomb sliced
	EventMiss                       // Fruit fell out in Classic mode (life lost)
	EventGameOver                   // Round ended
	EventPause                      // Round paused
	EventResume                     // Round resumed
	EventMenu                       // Returned to the menu
	EventHighScore                  // New high score saved
)

var eventNames = [...]string{
	EventStart:     "start",
	EventSlice:     "slice",
	EventPowerUp:   "powerup",
	EventBomb:      "bomb",
	EventMiss:      "miss",
	EventGameOver:  "gameover",
	EventPause:     "pause",
	EventResume:    "resume",
	EventMenu:      "menu",
	EventHighScore: "highscore",
}

func (k EventKind) String() string {
	if k < 0 || int(k) >= len(eventNames) {
		return "unknown"
	}
	return eventNames[k]
}

// Event is emitted by Tick in the order things happened.
type Event struct {
	Kind   EventKind   `json:"kind" msgpack:"kind"`
	Entity object.Kind `json:"entity" msgpack:"entity"` // Sliced or missed entity kind, when relevant
	X      float64     `json:"x" msgpack:"x"`           // Where it happened, when relevant
	Y      float64     `json:"y" msgpack:"y"`
	Points int         `json:"points" msgpack:"points"` // Score gained (slice) or final score (gameover, highscore)
}

// EndReason records why a round ended.
type EndReason int

const (
	EndNone  EndReason = iota
	EndLives           // Classic mode ran out of lives
	EndTime            // Time mode countdown expired
	EndBomb            // A bomb was sliced
)

func (r EndReason) String() string {
	switch r {
	case EndLives:
		return "lives"
	case EndTime:
		return "time"
	case EndBomb:
		return "bomb"
	default:
		return "none"
	}
}
