package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/KaiqueGovani/dinotris/internal/engine"
)

func TestBridgeCoalescesRedraws(t *testing.T) {
	b := newBridge()
	b.BoardChanged(engine.Snapshot{})
	b.BoardChanged(engine.Snapshot{})
	b.ScoreChanged(engine.Stats{Score: 100})
	b.BoardChanged(engine.Snapshot{})
	require.Len(t, b.queue, 2)

	assert.Equal(t, boardMsg{}, <-b.queue)
	assert.Equal(t, scoreMsg{stats: engine.Stats{Score: 100}}, <-b.queue)
}

func TestBridgeForwardsEveryNotification(t *testing.T) {
	b := newBridge()
	stats := engine.Stats{Score: 300, Level: 2, Lines: 12}
	b.LinesCleared(3)
	b.PauseChanged(true)
	b.GameOver(stats)

	assert.Equal(t, linesClearedMsg{count: 3}, <-b.queue)
	assert.Equal(t, pauseMsg{paused: true}, <-b.queue)
	assert.Equal(t, gameOverMsg{stats: stats}, <-b.queue)
}

func TestBridgeDrivesEngineListener(t *testing.T) {
	b := newBridge()
	e := engine.New(
		engine.WithScheduler(idleScheduler{}),
		engine.WithGenerator(fixedGenerator{shape: engine.ShapeO}),
		engine.WithListener(b),
	)
	require.True(t, e.Start())
	require.True(t, e.TogglePause())

	var sawPause bool
	for len(b.queue) > 0 {
		if msg, ok := (<-b.queue).(pauseMsg); ok {
			sawPause = msg.paused
		}
	}
	assert.True(t, sawPause)
}
