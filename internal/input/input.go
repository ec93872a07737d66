// Package input maps host key presses onto engine intents.
package input

import (
	"github.com/KaiqueGovani/dinotris/internal/audio"
	"github.com/KaiqueGovani/dinotris/internal/engine"
)

type Intent int

const (
	None Intent = iota
	MoveLeft
	MoveRight
	SoftDrop
	Rotate
	HardDrop
	Start
	TogglePause
)

func (i Intent) String() string {
	switch i {
	case MoveLeft:
		return "moveLeft"
	case MoveRight:
		return "moveRight"
	case SoftDrop:
		return "softDrop"
	case Rotate:
		return "rotate"
	case HardDrop:
		return "hardDrop"
	case Start:
		return "start"
	case TogglePause:
		return "togglePause"
	default:
		return "none"
	}
}

// FromKey maps a terminal key name, as bubbletea reports it, to an intent.
func FromKey(key string) Intent {
	switch key {
	case "left", "h":
		return MoveLeft
	case "right", "l":
		return MoveRight
	case "down", "j":
		return SoftDrop
	case "up", "x":
		return Rotate
	case " ", "space":
		return HardDrop
	case "enter", "s":
		return Start
	case "p":
		return TogglePause
	default:
		return None
	}
}

// Allowed reports whether the engine state in s accepts the intent. Hosts check it
// before delivering so that refused intents never reach the engine.
func Allowed(s engine.Snapshot, i Intent) bool {
	switch i {
	case None:
		return false
	case Start:
		return !s.Running || s.Over
	case TogglePause:
		return s.Running && !s.Over
	default:
		return s.Running && !s.Paused && !s.Over && s.Current != nil
	}
}

// Apply forwards the intent to e and reports whether the engine accepted it. For
// TogglePause it reports the new paused state.
func Apply(e *engine.Engine, i Intent) bool {
	switch i {
	case MoveLeft:
		return e.MoveLeft()
	case MoveRight:
		return e.MoveRight()
	case SoftDrop:
		return e.SoftDrop()
	case Rotate:
		return e.RotatePiece()
	case HardDrop:
		return e.HardDrop()
	case Start:
		return e.Start()
	case TogglePause:
		return e.TogglePause()
	default:
		return false
	}
}

// Sound is the effect for an accepted intent. Pause sounds follow the engine's
// PauseChanged notification instead.
func Sound(i Intent) (audio.SoundEvent, bool) {
	switch i {
	case MoveLeft, MoveRight:
		return audio.SoundMove, true
	case Rotate:
		return audio.SoundRotate, true
	case HardDrop:
		return audio.SoundDrop, true
	case Start:
		return audio.SoundMenuSelect, true
	default:
		return 0, false
	}
}
