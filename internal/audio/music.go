package audio

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"sync"
	"time"

	"github.com/ebitengine/oto/v3"
	"github.com/hajimehoshi/go-mp3"

	"github.com/KaiqueGovani/dinotris/internal/debuglog"
)

// MusicSource yields a fresh PCM stream for each pass of the background loop.
type MusicSource interface {
	Open() (io.Reader, error)
}

type MusicMode int

const (
	musicOff MusicMode = iota
	musicPlaying
	musicPaused
)

type MusicPlayer struct {
	ctx    *oto.Context
	source MusicSource
	mu     sync.Mutex
	mode   MusicMode
	player *oto.Player
	stop   chan struct{}
	volume float64
}

// NewMusicPlayer returns nil when there is no output context; a nil player ignores
// every call.
func NewMusicPlayer(ctx *oto.Context, source MusicSource, volume float64) *MusicPlayer {
	if ctx == nil || source == nil {
		return nil
	}
	return &MusicPlayer{
		ctx:    ctx,
		source: source,
		mode:   musicOff,
		volume: clampVolume(volume),
	}
}

func (m *MusicPlayer) SetVolume(volume float64) {
	if m == nil {
		return
	}
	m.mu.Lock()
	m.volume = clampVolume(volume)
	if m.player != nil {
		m.player.SetVolume(m.volume)
	}
	m.mu.Unlock()
}

// Start plays the loop from the beginning unless it is already playing.
func (m *MusicPlayer) Start() {
	if m == nil {
		return
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.mode == musicPlaying && m.player != nil {
		return
	}
	m.stopLocked()
	if err := m.openLocked(); err != nil {
		debuglog.Logf("music start error: %v", err)
		return
	}
	m.mode = musicPlaying
	m.stop = make(chan struct{})
	go m.watch(m.stop)
}

func (m *MusicPlayer) Pause() {
	if m == nil {
		return
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.mode != musicPlaying || m.player == nil {
		return
	}
	m.player.Pause()
	m.mode = musicPaused
}

func (m *MusicPlayer) Resume() {
	if m == nil {
		return
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.mode != musicPaused || m.player == nil {
		return
	}
	m.player.Play()
	m.mode = musicPlaying
}

func (m *MusicPlayer) Stop() {
	if m == nil {
		return
	}
	m.mu.Lock()
	m.stopLocked()
	m.mode = musicOff
	m.mu.Unlock()
}

func (m *MusicPlayer) Playing() bool {
	if m == nil {
		return false
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.mode == musicPlaying
}

func (m *MusicPlayer) openLocked() error {
	reader, err := m.source.Open()
	if err != nil {
		return err
	}
	player := m.ctx.NewPlayer(reader)
	player.SetVolume(m.volume)
	player.Play()
	m.player = player
	return nil
}

// watch restarts the source whenever a pass finishes while the music is meant to play.
func (m *MusicPlayer) watch(stop chan struct{}) {
	ticker := time.NewTicker(120 * time.Millisecond)
	defer ticker.Stop()
	for {
		select {
		case <-stop:
			return
		case <-ticker.C:
			m.mu.Lock()
			if m.mode == musicPlaying && m.player != nil && !m.player.IsPlaying() {
				_ = m.player.Close()
				m.player = nil
				if err := m.openLocked(); err != nil {
					debuglog.Logf("music loop error: %v", err)
					m.mode = musicOff
				}
			}
			m.mu.Unlock()
		}
	}
}

func (m *MusicPlayer) stopLocked() {
	if m.stop != nil {
		close(m.stop)
		m.stop = nil
	}
	if m.player != nil {
		_ = m.player.Close()
		m.player = nil
	}
}

// MelodySource is the built-in Korobeiniki loop, rendered once and replayed.
type MelodySource struct {
	once       sync.Once
	sampleRate int
	pcm        []byte
	err        error
}

func NewMelodySource(sampleRate int) *MelodySource {
	if sampleRate <= 0 {
		sampleRate = DefaultSampleRate
	}
	return &MelodySource{sampleRate: sampleRate}
}

func (s *MelodySource) Open() (io.Reader, error) {
	s.once.Do(func() {
		s.pcm, s.err = renderSequence(s.sampleRate, melodyTones(), 0, 1)
	})
	if s.err != nil {
		return nil, fmt.Errorf("render melody: %w", s.err)
	}
	return bytes.NewReader(s.pcm), nil
}

// FileSource decodes an mp3 file. The file is read once and decoded anew per pass.
type FileSource struct {
	path string
	once sync.Once
	data []byte
	err  error
}

func NewFileSource(path string) *FileSource {
	return &FileSource{path: path}
}

func (s *FileSource) Open() (io.Reader, error) {
	s.once.Do(func() {
		s.data, s.err = os.ReadFile(s.path)
	})
	if s.err != nil {
		return nil, fmt.Errorf("read music file: %w", s.err)
	}
	dec, err := newMP3Decoder(bytes.NewReader(s.data))
	if err != nil {
		return nil, err
	}
	return dec, nil
}

func newMP3Decoder(r io.Reader) (*mp3.Decoder, error) {
	dec, err := mp3.NewDecoder(r)
	if err != nil {
		return nil, fmt.Errorf("decode mp3: %w", err)
	}
	return dec, nil
}

// SourceFor picks the configured music file, falling back to the melody.
func SourceFor(musicFile string, sampleRate int) MusicSource {
	if musicFile != "" {
		return NewFileSource(musicFile)
	}
	return NewMelodySource(sampleRate)
}

const eighth = 160 * time.Millisecond

var noteFrequencies = map[string]float64{
	"A4": 440.00,
	"B4": 493.88,
	"C5": 523.25,
	"D5": 587.33,
	"E5": 659.25,
	"F5": 698.46,
	"G5": 783.99,
	"A5": 880.00,
	"-":  0,
}

type note struct {
	name    string
	eighths int
}

var korobeiniki = []note{
	{"E5", 2}, {"B4", 1}, {"C5", 1}, {"D5", 2}, {"C5", 1}, {"B4", 1},
	{"A4", 2}, {"A4", 1}, {"C5", 1}, {"E5", 2}, {"D5", 1}, {"C5", 1},
	{"B4", 3}, {"C5", 1}, {"D5", 2}, {"E5", 2},
	{"C5", 2}, {"A4", 2}, {"A4", 2}, {"-", 2},
	{"-", 1}, {"D5", 2}, {"F5", 1}, {"A5", 2}, {"G5", 1}, {"F5", 1},
	{"E5", 3}, {"C5", 1}, {"E5", 2}, {"D5", 1}, {"C5", 1},
	{"B4", 2}, {"B4", 1}, {"C5", 1}, {"D5", 2}, {"E5", 2},
	{"C5", 2}, {"A4", 2}, {"A4", 2}, {"-", 2},
}

func melodyTones() []toneSpec {
	tones := make([]toneSpec, 0, len(korobeiniki)*2)
	for _, n := range korobeiniki {
		d := time.Duration(n.eighths) * eighth
		// detach repeated notes with a short rest
		tones = append(tones,
			toneSpec{frequency: noteFrequencies[n.name], duration: d - 20*time.Millisecond, volume: 0.22},
			toneSpec{duration: 20 * time.Millisecond},
		)
	}
	return tones
}
