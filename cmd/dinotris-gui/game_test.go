package main

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/KaiqueGovani/dinotris/internal/audio"
	"github.com/KaiqueGovani/dinotris/internal/engine"
	"github.com/KaiqueGovani/dinotris/internal/input"
	"github.com/KaiqueGovani/dinotris/internal/settings"
)

func testConfig(animations bool) settings.Config {
	config := settings.Default()
	config.Animations = animations
	config.Music = false
	return config
}

func TestShouldFire(t *testing.T) {
	t.Run("first tick always fires", func(t *testing.T) {
		assert.True(t, shouldFire(1, false))
		assert.True(t, shouldFire(1, true))
	})
	t.Run("released or held without repeat", func(t *testing.T) {
		assert.False(t, shouldFire(0, true))
		assert.False(t, shouldFire(repeatDelay, false))
	})
	t.Run("repeat after delay", func(t *testing.T) {
		assert.False(t, shouldFire(repeatDelay-1, true))
		assert.True(t, shouldFire(repeatDelay, true))
		assert.False(t, shouldFire(repeatDelay+1, true))
		assert.True(t, shouldFire(repeatDelay+repeatInterval, true))
	})
}

func TestKeyBindingsCoverEveryIntent(t *testing.T) {
	seen := map[input.Intent]bool{}
	for _, binding := range keyBindings {
		assert.False(t, seen[binding.intent], "intent %s bound twice", binding.intent)
		seen[binding.intent] = true
	}
	for _, intent := range []input.Intent{
		input.MoveLeft, input.MoveRight, input.SoftDrop, input.Rotate,
		input.HardDrop, input.Start, input.TogglePause,
	} {
		assert.True(t, seen[intent], "intent %s unbound", intent)
	}
}

func TestLayoutIsFixed(t *testing.T) {
	g := newGame(testConfig(true), audio.NewSoundEngine(nil, 0, false), nil, false)
	w, h := g.Layout(1920, 1080)
	assert.Equal(t, screenWidth, w)
	assert.Equal(t, screenHeight, h)
}

func TestEventsCelebrate(t *testing.T) {
	start := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)

	t.Run("line clear starts a celebration", func(t *testing.T) {
		ev := newEvents(audio.NewSoundEngine(nil, 0, false), nil, true)
		ev.now = func() time.Time { return start }
		ev.LinesCleared(2)
		cel := ev.celebration()
		require.True(t, cel.Active(start))
		assert.Equal(t, 2, cel.Lines)
		ev.clear()
		assert.False(t, ev.celebration().Active(start))
	})

	t.Run("animations off", func(t *testing.T) {
		ev := newEvents(audio.NewSoundEngine(nil, 0, false), nil, false)
		ev.now = func() time.Time { return start }
		ev.LinesCleared(1)
		assert.False(t, ev.celebration().Active(start))
	})

	t.Run("pause and game over without audio", func(t *testing.T) {
		ev := newEvents(nil, nil, true)
		ev.PauseChanged(true)
		ev.PauseChanged(false)
		ev.GameOver(engine.Stats{Score: 100, Level: 1, Lines: 1})
	})
}

func TestApplyStartClearsCelebration(t *testing.T) {
	g := newGame(testConfig(true), audio.NewSoundEngine(nil, 0, false), nil, false)
	g.events.LinesCleared(1)
	require.True(t, g.events.celebration().Active(time.Now()))

	g.apply(input.Start)
	assert.False(t, g.events.celebration().Active(time.Now()))
	snap := g.engine.Snapshot()
	assert.True(t, snap.Running)
	require.NotNil(t, snap.Current)

	g.apply(input.MoveLeft)
	assert.Equal(t, snap.Current.X-1, g.engine.Snapshot().Current.X)
	g.engine.Reset()
}
