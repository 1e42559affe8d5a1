package input

import (
	"github.com/tomz197/handninja/internal/game"
	"github.com/tomz197/handninja/internal/gesture"
)

// CommandForKey maps a key byte to a player command.
func CommandForKey(b byte) game.Command {
	switch b {
	case '1':
		return game.CmdEasy
	case '2':
		return game.CmdMedium
	case '3':
		return game.CmdHard
	case 'c', 'C':
		return game.CmdClassic
	case 't', 'T':
		return game.CmdTime
	case '\r', '\n', ' ':
		return game.CmdStart
	case 'r', 'R':
		return game.CmdMenu
	case 'q', 'Q', '\x1b', '\x03':
		return game.CmdQuit
	default:
		return game.CmdNone
	}
}

// GestureForKey maps the gesture emulation keys to a finger vector:
// f is a fist, v is index+middle, o is thumb+index+pinky.
func GestureForKey(b byte) (gesture.Fingers, bool) {
	switch b {
	case 'f', 'F':
		return gesture.PatternFist, true
	case 'v', 'V':
		return gesture.PatternTwo, true
	case 'o', 'O':
		return gesture.PatternOK, true
	default:
		return gesture.Fingers{}, false
	}
}
