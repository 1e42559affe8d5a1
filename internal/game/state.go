// Package game holds the round controller and the game state machine.
package game

import (
	"github.com/tomz197/handninja/internal/config"
	"github.com/tomz197/handninja/internal/gesture"
)

// GameState represents the current game phase.
type GameState int

const (
	GameStateMenu    GameState = iota // Title screen, difficulty and mode selection
	GameStatePlaying                  // Active gameplay
	GameStatePaused                   // Round frozen
	GameStateOver                     // Round finished, show result
)

func (s GameState) String() string {
	switch s {
	case GameStateMenu:
		return "menu"
	case GameStatePlaying:
		return "playing"
	case GameStatePaused:
		return "paused"
	case GameStateOver:
		return "over"
	default:
		return "unknown"
	}
}

// Mode selects how a round ends.
type Mode int

const (
	ModeClassic Mode = iota // Lives
	ModeTime                // Countdown
)

func (m Mode) String() string {
	if m == ModeTime {
		return "time"
	}
	return "classic"
}

// Difficulty selects a tuning profile.
type Difficulty int

const (
	DifficultyEasy Difficulty = iota
	DifficultyMedium
	DifficultyHard
)

func (d Difficulty) String() string {
	switch d {
	case DifficultyMedium:
		return "medium"
	case DifficultyHard:
		return "hard"
	default:
		return "easy"
	}
}

// Profile returns the tuning profile for d.
func (d Difficulty) Profile(t config.Tuning) config.Profile {
	switch d {
	case DifficultyMedium:
		return t.Medium
	case DifficultyHard:
		return t.Hard
	default:
		return t.Easy
	}
}

// Command is a player command from any source (keyboard, network, gesture).
type Command int

const (
	CmdNone Command = iota
	CmdStart
	CmdPause
	CmdResume
	CmdMenu
	CmdEasy
	CmdMedium
	CmdHard
	CmdClassic
	CmdTime
	CmdQuit
	cmdEnd // Internal: the round ended
)

var commandNames = map[Command]string{
	CmdNone:    "none",
	CmdStart:   "start",
	CmdPause:   "pause",
	CmdResume:  "resume",
	CmdMenu:    "menu",
	CmdEasy:    "easy",
	CmdMedium:  "medium",
	CmdHard:    "hard",
	CmdClassic: "classic",
	CmdTime:    "time",
	CmdQuit:    "quit",
	cmdEnd:     "end",
}

func (c Command) String() string {
	if n, ok := commandNames[c]; ok {
		return n
	}
	return "unknown"
}

// ParseCommand maps a command name (as produced by String) to a Command.
func ParseCommand(name string) (Command, bool) {
	for c, n := range commandNames {
		if n == name && c != cmdEnd {
			return c, true
		}
	}
	return CmdNone, false
}

// CommandForAction translates a debounced gesture into a command.
func CommandForAction(a gesture.Action) Command {
	switch a {
	case gesture.ActionPause:
		return CmdPause
	case gesture.ActionResume:
		return CmdResume
	case gesture.ActionMenu:
		return CmdMenu
	default:
		return CmdNone
	}
}

// Machine is the game state machine. It owns the current state and the
// player's difficulty and mode selection.
type Machine struct {
	State      GameState
	Mode       Mode
	Difficulty Difficulty
}

// NewMachine returns a machine in the menu with Classic/Easy selected.
func NewMachine() Machine {
	return Machine{State: GameStateMenu}
}

// Transition returns the state cmd leads to from s, and whether cmd is legal
// in s. Selection commands are legal only in the menu and keep the state.
func Transition(s GameState, cmd Command) (GameState, bool) {
	switch cmd {
	case CmdStart:
		if s == GameStateMenu {
			return GameStatePlaying, true
		}
	case CmdPause:
		if s == GameStatePlaying {
			return GameStatePaused, true
		}
	case CmdResume:
		if s == GameStatePaused {
			return GameStatePlaying, true
		}
	case CmdMenu:
		if s == GameStatePlaying || s == GameStatePaused || s == GameStateOver {
			return GameStateMenu, true
		}
	case cmdEnd:
		if s == GameStatePlaying {
			return GameStateOver, true
		}
	case CmdEasy, CmdMedium, CmdHard, CmdClassic, CmdTime:
		if s == GameStateMenu {
			return s, true
		}
	}
	return s, false
}

// Apply applies cmd if legal. It returns the previous and new states and
// whether anything changed.
func (m *Machine) Apply(cmd Command) (from, to GameState, ok bool) {
	from = m.State
	to, ok = Transition(m.State, cmd)
	if !ok {
		return from, from, false
	}
	switch cmd {
	case CmdEasy:
		m.Difficulty = DifficultyEasy
	case CmdMedium:
		m.Difficulty = DifficultyMedium
	case CmdHard:
		m.Difficulty = DifficultyHard
	case CmdClassic:
		m.Mode = ModeClassic
	case CmdTime:
		m.Mode = ModeTime
	}
	m.State = to
	return from, to, true
}

// Playing reports whether gameplay is active.
func (m *Machine) Playing() bool {
	return m.State == GameStatePlaying
}
