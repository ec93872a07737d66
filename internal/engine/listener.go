package engine

import "github.com/google/uuid"

type Stats struct {
	Score   int
	Level   int
	Lines   int
	Session uuid.UUID
}

// Snapshot is a detached copy of the game state. Mutating it never affects the engine.
type Snapshot struct {
	Board   Board
	Current *Piece
	Next    *Piece
	Stats   Stats
	Running bool
	Paused  bool
	Over    bool
}

// Listener receives engine notifications. Calls are made after the engine lock is
// released, so a listener may query the engine from inside a callback.
type Listener interface {
	BoardChanged(Snapshot)
	ScoreChanged(Stats)
	LinesCleared(n int)
	PauseChanged(paused bool)
	GameOver(Stats)
}

// NopListener ignores every notification. Embed it to implement a subset of Listener.
type NopListener struct{}

func (NopListener) BoardChanged(Snapshot) {}
func (NopListener) ScoreChanged(Stats)    {}
func (NopListener) LinesCleared(int)      {}
func (NopListener) PauseChanged(bool)     {}
func (NopListener) GameOver(Stats)        {}
