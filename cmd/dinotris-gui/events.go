package main

import (
	"math/rand/v2"
	"sync"
	"time"

	"github.com/KaiqueGovani/dinotris/internal/audio"
	"github.com/KaiqueGovani/dinotris/internal/celebrate"
	"github.com/KaiqueGovani/dinotris/internal/debuglog"
	"github.com/KaiqueGovani/dinotris/internal/engine"
)

// events reacts to engine notifications with sound, music and celebrations. It runs on
// whichever goroutine the engine notifies from, so its state is locked for Draw.
type events struct {
	engine.NopListener

	sound      *audio.SoundEngine
	music      *audio.MusicPlayer
	animations bool
	now        func() time.Time

	mu  sync.Mutex
	rng *rand.Rand
	cel celebrate.Celebration
}

func newEvents(sound *audio.SoundEngine, music *audio.MusicPlayer, animations bool) *events {
	return &events{
		sound:      sound,
		music:      music,
		animations: animations,
		now:        time.Now,
		rng:        rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64())),
	}
}

func (ev *events) LinesCleared(n int) {
	debuglog.Logf("lines cleared n=%d", n)
	ev.sound.Celebrate(n)
	if !ev.animations {
		return
	}
	ev.mu.Lock()
	ev.cel = celebrate.New(ev.rng, n, ev.now())
	ev.mu.Unlock()
}

func (ev *events) PauseChanged(paused bool) {
	if paused {
		ev.music.Pause()
		ev.sound.Play(audio.SoundPause)
		return
	}
	ev.music.Resume()
	ev.sound.Play(audio.SoundResume)
}

func (ev *events) GameOver(stats engine.Stats) {
	debuglog.Logf("game over session=%s score=%d level=%d lines=%d",
		stats.Session, stats.Score, stats.Level, stats.Lines)
	ev.music.Stop()
	ev.sound.Play(audio.SoundGameOver)
}

func (ev *events) celebration() celebrate.Celebration {
	ev.mu.Lock()
	defer ev.mu.Unlock()
	return ev.cel
}

func (ev *events) clear() {
	ev.mu.Lock()
	ev.cel = celebrate.Celebration{}
	ev.mu.Unlock()
}
