package audio

import (
	"bytes"
	"sync"
	"time"

	"github.com/ebitengine/oto/v3"

	"github.com/KaiqueGovani/dinotris/internal/debuglog"
)

type SoundEvent int

const (
	SoundMove SoundEvent = iota
	SoundRotate
	SoundDrop
	SoundLock
	SoundLaser
	SoundRoar
	SoundPause
	SoundResume
	SoundGameOver
	SoundMenuMove
	SoundMenuSelect
)

const toneGap = 10 * time.Millisecond

type SoundEngine struct {
	enabled    bool
	sampleRate int
	ctx        *oto.Context
	volume     float64
	mu         sync.RWMutex
}

// NewSoundEngine plays through ctx. A nil ctx gives a silent engine.
func NewSoundEngine(ctx *oto.Context, sampleRate int, enabled bool) *SoundEngine {
	if sampleRate <= 0 {
		sampleRate = DefaultSampleRate
	}
	return &SoundEngine{
		enabled:    enabled,
		sampleRate: sampleRate,
		ctx:        ctx,
		volume:     0.7,
	}
}

func (s *SoundEngine) SetEnabled(enabled bool) {
	s.mu.Lock()
	s.enabled = enabled
	s.mu.Unlock()
}

func (s *SoundEngine) SetVolume(volume float64) {
	s.mu.Lock()
	s.volume = clampVolume(volume)
	s.mu.Unlock()
}

// Play renders and starts the event asynchronously.
func (s *SoundEngine) Play(event SoundEvent) {
	if s == nil {
		return
	}
	s.mu.RLock()
	ctx := s.ctx
	enabled := s.enabled
	volume := s.volume
	s.mu.RUnlock()
	if !enabled || ctx == nil {
		return
	}
	go func() {
		buffer, err := renderEvent(event, s.sampleRate, volume)
		if err != nil {
			debuglog.Logf("sound %d render error: %v", event, err)
			return
		}
		if len(buffer) == 0 {
			return
		}
		player := ctx.NewPlayer(bytes.NewReader(buffer))
		player.Play()
		for player.IsPlaying() {
			time.Sleep(5 * time.Millisecond)
		}
		_ = player.Close()
	}()
}

// Celebrate plays the line-clear laser together with the roar.
func (s *SoundEngine) Celebrate(cleared int) {
	if cleared <= 0 {
		return
	}
	s.Play(SoundLaser)
	s.Play(SoundRoar)
}

func renderEvent(event SoundEvent, sampleRate int, volume float64) ([]byte, error) {
	if event == SoundRoar {
		return renderChord(sampleRate, roarVoices(), volume)
	}
	return renderSequence(sampleRate, tonesForEvent(event), toneGap, volume)
}

func tonesForEvent(event SoundEvent) []toneSpec {
	switch event {
	case SoundMove:
		return []toneSpec{{frequency: 380, duration: 25 * time.Millisecond, volume: 0.18}}
	case SoundRotate:
		return []toneSpec{{frequency: 520, duration: 40 * time.Millisecond, volume: 0.25}}
	case SoundDrop:
		return []toneSpec{{frequency: 240, duration: 55 * time.Millisecond, volume: 0.22}}
	case SoundLock:
		return []toneSpec{{frequency: 220, duration: 70 * time.Millisecond, volume: 0.3}}
	case SoundLaser:
		return laserSweep()
	case SoundPause:
		return []toneSpec{
			{frequency: 660, duration: 60 * time.Millisecond, volume: 0.2},
			{frequency: 440, duration: 80 * time.Millisecond, volume: 0.2},
		}
	case SoundResume:
		return []toneSpec{
			{frequency: 440, duration: 60 * time.Millisecond, volume: 0.2},
			{frequency: 660, duration: 80 * time.Millisecond, volume: 0.2},
		}
	case SoundGameOver:
		return []toneSpec{
			{frequency: 330, duration: 160 * time.Millisecond, volume: 0.28},
			{frequency: 247, duration: 160 * time.Millisecond, volume: 0.28},
			{frequency: 180, duration: 320 * time.Millisecond, volume: 0.28},
		}
	case SoundMenuMove:
		return []toneSpec{{frequency: 260, duration: 24 * time.Millisecond, volume: 0.16}}
	case SoundMenuSelect:
		return []toneSpec{{frequency: 520, duration: 70 * time.Millisecond, volume: 0.2}}
	default:
		return nil
	}
}

// laserSweep falls from a high pitch to a low one in short steps.
func laserSweep() []toneSpec {
	steps := make([]toneSpec, 0, 16)
	for f := 1800.0; f > 300; f *= 0.85 {
		steps = append(steps, toneSpec{frequency: f, duration: 14 * time.Millisecond, volume: 0.3})
	}
	return steps
}

// roarVoices layers two growling, slowly falling voices a fifth apart.
func roarVoices() [][]toneSpec {
	var low, high []toneSpec
	f := 150.0
	for i := 0; i < 12; i++ {
		wobble := 1.0
		if i%2 == 1 {
			wobble = 0.94
		}
		low = append(low, toneSpec{frequency: f * wobble, duration: 60 * time.Millisecond, volume: 0.9})
		high = append(high, toneSpec{frequency: f * wobble * 1.5, duration: 60 * time.Millisecond, volume: 0.5})
		f *= 0.95
	}
	return [][]toneSpec{low, high}
}
