// Package engine implements the falling-block game state: board, pieces, movement,
// locking, line clears, scoring and the self-rescheduling fall loop.
//
// Every exported method is safe for concurrent use. Operations run to completion
// under a single lock, so the loop goroutine and an input goroutine never observe a
// half-applied move or clear.
package engine

import (
	"sync"

	"github.com/google/uuid"
)

const (
	linesPerLevel = 10
	pointsPerLine = 100
)

type Engine struct {
	mu       sync.Mutex
	board    Board
	current  *Piece
	next     *Piece
	score    int
	level    int
	lines    int
	over     bool
	paused   bool
	running  bool
	session  uuid.UUID
	gen      Generator
	sched    Scheduler
	listener Listener
	timer    Timer
	loopGen  uint64
	pending  []func(Listener)
	dirty    bool
}

type Option func(*Engine)

func WithGenerator(g Generator) Option {
	return func(e *Engine) {
		e.gen = g
	}
}

func WithScheduler(s Scheduler) Option {
	return func(e *Engine) {
		e.sched = s
	}
}

func WithListener(l Listener) Option {
	return func(e *Engine) {
		e.listener = l
	}
}

func New(opts ...Option) *Engine {
	e := &Engine{
		level:    1,
		listener: NopListener{},
		sched:    realScheduler{},
	}
	for _, opt := range opts {
		opt(e)
	}
	if e.gen == nil {
		e.gen = NewRandomGenerator(nil)
	}
	if e.listener == nil {
		e.listener = NopListener{}
	}
	return e
}

// exec runs fn under the lock and then delivers the notifications fn queued. A
// board change is published once, from the state fn left behind, so listeners never
// see the gap between a lock and the next spawn.
func (e *Engine) exec(fn func()) {
	e.mu.Lock()
	fn()
	if e.dirty {
		snap := e.snapshot()
		e.pending = append(e.pending, func(l Listener) { l.BoardChanged(snap) })
		e.dirty = false
	}
	pending := e.pending
	e.pending = nil
	listener := e.listener
	e.mu.Unlock()
	for _, notify := range pending {
		notify(listener)
	}
}

func (e *Engine) Reset() {
	e.exec(e.reset)
}

func (e *Engine) reset() {
	e.stopLoop()
	e.board.Reset()
	e.current = nil
	e.next = nil
	e.score = 0
	e.level = 1
	e.lines = 0
	e.over = false
	e.paused = false
	e.running = false
	e.notifyScore()
	e.notifyBoard()
}

// Start begins a game. A finished game is reset first. It returns false when a game
// is already in progress.
func (e *Engine) Start() bool {
	started := false
	e.exec(func() {
		if e.running && !e.over {
			return
		}
		if e.over {
			e.reset()
		}
		e.over = false
		e.paused = false
		e.running = true
		e.session = uuid.New()
		started = true
		e.spawnPiece()
		if !e.over {
			e.startLoop()
		}
	})
	return started
}

func (e *Engine) SpawnPiece() {
	e.exec(e.spawnPiece)
}

func (e *Engine) spawnPiece() {
	if e.next == nil {
		p := e.gen.Next()
		e.next = &p
	}
	current := e.next.Clone()
	e.current = &current
	next := e.gen.Next()
	e.next = &next
	if Collides(*e.current, &e.board) {
		e.over = true
		e.running = false
		e.stopLoop()
		stats := e.stats()
		e.pending = append(e.pending, func(l Listener) { l.GameOver(stats) })
	}
	e.notifyBoard()
}

func (e *Engine) active() bool {
	return !e.over && !e.paused && e.current != nil
}

func (e *Engine) MovePiece(dx, dy int) bool {
	moved := false
	e.exec(func() {
		moved = e.movePiece(dx, dy)
	})
	return moved
}

func (e *Engine) MoveLeft() bool  { return e.MovePiece(-1, 0) }
func (e *Engine) MoveRight() bool { return e.MovePiece(1, 0) }
func (e *Engine) SoftDrop() bool  { return e.MovePiece(0, 1) }

func (e *Engine) movePiece(dx, dy int) bool {
	if !e.active() {
		return false
	}
	e.current.X += dx
	e.current.Y += dy
	if Collides(*e.current, &e.board) {
		e.current.X -= dx
		e.current.Y -= dy
		return false
	}
	e.notifyBoard()
	return true
}

func (e *Engine) RotatePiece() bool {
	rotated := false
	e.exec(func() {
		rotated = e.rotatePiece()
	})
	return rotated
}

func (e *Engine) rotatePiece() bool {
	if !e.active() {
		return false
	}
	orig := e.current.Matrix
	e.current.Matrix = orig.Rotate()
	if Collides(*e.current, &e.board) {
		e.current.Matrix = orig
		return false
	}
	e.notifyBoard()
	return true
}

// LockPiece merges the current piece into the board, clears full rows and spawns
// the next piece.
func (e *Engine) LockPiece() {
	e.exec(e.lockPiece)
}

func (e *Engine) lockPiece() {
	if e.current == nil || e.over {
		return
	}
	for _, c := range e.current.Cells() {
		if c.Y >= 0 {
			e.board.Set(c.X, c.Y, e.current.Color)
		}
	}
	e.current = nil
	e.clearLines()
	e.spawnPiece()
}

func (e *Engine) ClearLines() int {
	cleared := 0
	e.exec(func() {
		cleared = e.clearLines()
	})
	return cleared
}

func (e *Engine) clearLines() int {
	cleared := e.board.ClearFullRows()
	if cleared == 0 {
		return 0
	}
	e.lines += cleared
	e.score += cleared * pointsPerLine * e.level
	e.level = e.lines/linesPerLevel + 1
	e.pending = append(e.pending, func(l Listener) { l.LinesCleared(cleared) })
	e.notifyScore()
	e.notifyBoard()
	return cleared
}

// TogglePause flips the pause flag and reports the new value. It does nothing once
// the game is over.
func (e *Engine) TogglePause() bool {
	paused := false
	e.exec(func() {
		paused = e.togglePause()
	})
	return paused
}

func (e *Engine) togglePause() bool {
	if e.over {
		return e.paused
	}
	e.paused = !e.paused
	if e.paused {
		e.stopLoop()
	} else if e.running {
		e.startLoop()
	}
	paused := e.paused
	e.pending = append(e.pending, func(l Listener) { l.PauseChanged(paused) })
	return paused
}

// Tick advances the falling piece by one row, locking it when it cannot move.
func (e *Engine) Tick() {
	e.exec(e.tick)
}

func (e *Engine) tick() {
	if !e.active() {
		return
	}
	if !e.movePiece(0, 1) {
		e.lockPiece()
	}
}

// HardDrop drops the current piece as far as it goes and locks it.
func (e *Engine) HardDrop() bool {
	dropped := false
	e.exec(func() {
		if !e.active() {
			return
		}
		for e.movePiece(0, 1) {
		}
		e.lockPiece()
		dropped = true
	})
	return dropped
}

func (e *Engine) Stats() Stats {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.stats()
}

func (e *Engine) stats() Stats {
	return Stats{
		Score:   e.score,
		Level:   e.level,
		Lines:   e.lines,
		Session: e.session,
	}
}

func (e *Engine) Snapshot() Snapshot {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.snapshot()
}

func (e *Engine) snapshot() Snapshot {
	s := Snapshot{
		Board:   e.board,
		Stats:   e.stats(),
		Running: e.running,
		Paused:  e.paused,
		Over:    e.over,
	}
	if e.current != nil {
		p := e.current.Clone()
		s.Current = &p
	}
	if e.next != nil {
		p := e.next.Clone()
		s.Next = &p
	}
	return s
}

func (e *Engine) notifyBoard() {
	e.dirty = true
}

func (e *Engine) notifyScore() {
	stats := e.stats()
	e.pending = append(e.pending, func(l Listener) { l.ScoreChanged(stats) })
}
