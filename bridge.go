package main

import (
	"sync"
	"sync/atomic"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/KaiqueGovani/dinotris/internal/engine"
)

type boardMsg struct{}

type scoreMsg struct {
	stats engine.Stats
}

type linesClearedMsg struct {
	count int
}

type pauseMsg struct {
	paused bool
}

type gameOverMsg struct {
	stats engine.Stats
}

// bridge relays engine notifications into the bubbletea program. Notifications can
// arrive from inside Update (input) or from the fall timer, so they are queued and
// forwarded by one goroutine instead of calling Program.Send inline.
type bridge struct {
	once         sync.Once
	queue        chan tea.Msg
	redrawQueued atomic.Bool
}

func newBridge() *bridge {
	return &bridge{queue: make(chan tea.Msg, 256)}
}

func (b *bridge) attach(program *tea.Program) {
	b.once.Do(func() {
		go func() {
			for msg := range b.queue {
				if _, ok := msg.(boardMsg); ok {
					b.redrawQueued.Store(false)
				}
				program.Send(msg)
			}
		}()
	})
}

func (b *bridge) BoardChanged(engine.Snapshot) {
	// View reads a fresh snapshot, so one pending redraw is enough
	if b.redrawQueued.Swap(true) {
		return
	}
	b.queue <- boardMsg{}
}

func (b *bridge) ScoreChanged(stats engine.Stats) {
	b.queue <- scoreMsg{stats: stats}
}

func (b *bridge) LinesCleared(n int) {
	b.queue <- linesClearedMsg{count: n}
}

func (b *bridge) PauseChanged(paused bool) {
	b.queue <- pauseMsg{paused: paused}
}

func (b *bridge) GameOver(stats engine.Stats) {
	b.queue <- gameOverMsg{stats: stats}
}
