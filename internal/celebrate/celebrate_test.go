package celebrate

import (
	"math/rand/v2"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestZeroCelebrationInactive(t *testing.T) {
	var c Celebration
	now := time.Now()
	assert.False(t, c.Active(now))
	_, ok := c.Color(now)
	assert.False(t, ok)
	assert.Zero(t, c.Offset(now))
	assert.False(t, c.Inverted(now))
}

func TestCelebrationWindow(t *testing.T) {
	start := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	c := New(rand.New(rand.NewPCG(1, 2)), 2, start)

	assert.True(t, c.Active(start))
	assert.True(t, c.Active(start.Add(Duration-time.Millisecond)))
	assert.False(t, c.Active(start.Add(Duration)))
	assert.False(t, c.Active(start.Add(-time.Millisecond)))
	assert.InDelta(t, 0.5, c.Progress(start.Add(Duration/2)), 1e-9)
}

func TestEffectChoiceCoversAll(t *testing.T) {
	rng := rand.New(rand.NewPCG(7, 7))
	seen := map[int]int{}
	for i := 0; i < 2000; i++ {
		c := New(rng, 1, time.Now())
		require.GreaterOrEqual(t, c.Effect, 0)
		require.Less(t, c.Effect, len(Effects))
		seen[c.Effect]++
	}
	assert.Len(t, seen, len(Effects))
	for effect, n := range seen {
		assert.Greater(t, n, 100, "effect %d", effect)
	}
}

func TestColorCyclesPalette(t *testing.T) {
	start := time.Now()
	c := Celebration{Effect: 0, Lines: 1, Start: start}
	palette := Effects[0].Palette

	for i := 0; i < 6; i++ {
		got, ok := c.Color(start.Add(time.Duration(i)*frame + frame/2))
		require.True(t, ok)
		assert.Equal(t, palette[i%len(palette)], got)
	}
}

func TestShakeAndInvertFollowEffect(t *testing.T) {
	start := time.Now()
	for i, effect := range Effects {
		c := Celebration{Effect: i, Start: start}
		at := start.Add(frame / 2)
		if effect.Shake {
			assert.Equal(t, 1, c.Offset(at), effect.Name)
		} else {
			assert.Zero(t, c.Offset(at), effect.Name)
		}
		assert.Equal(t, effect.Invert, c.Inverted(at), effect.Name)
	}
}

func TestLabel(t *testing.T) {
	c := Celebration{Effect: 4, Lines: 1}
	assert.Equal(t, "Volcano!", c.Label())
	c.Lines = 3
	assert.Equal(t, "Volcano x3!", c.Label())
}

func TestHex(t *testing.T) {
	assert.Equal(t, "#ff4500", Hex(Effects[0].Palette[0]))
}
