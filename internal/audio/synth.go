package audio

import (
	"fmt"
	"math"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"
	"github.com/gopxl/beep/generators"
)

const bytesPerFrame = 4

type toneSpec struct {
	frequency float64
	duration  time.Duration
	volume    float64
}

// fade ramps the first and last few milliseconds of a tone to avoid clicks.
type fade struct {
	streamer beep.Streamer
	position int
	total    int
	edge     int
}

func (f *fade) Stream(samples [][2]float64) (int, bool) {
	n, ok := f.streamer.Stream(samples)
	for i := 0; i < n; i++ {
		env := 1.0
		if f.edge > 0 {
			if f.position < f.edge {
				env = float64(f.position) / float64(f.edge)
			} else if remaining := f.total - f.position; remaining < f.edge {
				env = math.Max(0, float64(remaining)/float64(f.edge))
			}
		}
		samples[i][0] *= env
		samples[i][1] *= env
		f.position++
	}
	return n, ok
}

func (f *fade) Err() error {
	return f.streamer.Err()
}

func gain(s beep.Streamer, volume float64) beep.Streamer {
	if volume <= 0 {
		return &effects.Volume{Streamer: s, Base: 2, Volume: 0, Silent: true}
	}
	return &effects.Volume{Streamer: s, Base: 2, Volume: math.Log2(volume)}
}

func toneStreamer(sr beep.SampleRate, spec toneSpec) (beep.Streamer, error) {
	n := sr.N(spec.duration)
	if spec.frequency <= 0 {
		return beep.Silence(n), nil
	}
	sine, err := generators.SineTone(sr, spec.frequency)
	if err != nil {
		return nil, fmt.Errorf("tone %.1fHz: %w", spec.frequency, err)
	}
	shaped := &fade{
		streamer: beep.Take(n, sine),
		total:    n,
		edge:     sr.N(3 * time.Millisecond),
	}
	return gain(shaped, spec.volume), nil
}

// sequenceStreamer chains tones with a short gap between them, scaled by the master volume.
func sequenceStreamer(sr beep.SampleRate, sequence []toneSpec, gap time.Duration, master float64) (beep.Streamer, int, error) {
	parts := make([]beep.Streamer, 0, len(sequence)*2)
	total := 0
	for i, spec := range sequence {
		spec.volume *= clampVolume(master)
		s, err := toneStreamer(sr, spec)
		if err != nil {
			return nil, 0, err
		}
		parts = append(parts, s)
		total += sr.N(spec.duration)
		if gap > 0 && i < len(sequence)-1 {
			parts = append(parts, beep.Silence(sr.N(gap)))
			total += sr.N(gap)
		}
	}
	return beep.Seq(parts...), total, nil
}

// renderPCM drains s into signed 16-bit little-endian stereo frames.
func renderPCM(s beep.Streamer, frames int) []byte {
	const maxInt16 = 1<<15 - 1
	out := make([]byte, 0, frames*bytesPerFrame)
	buf := make([][2]float64, 512)
	for {
		n, ok := s.Stream(buf)
		for _, sample := range buf[:n] {
			for _, v := range sample {
				v = math.Max(-1, math.Min(1, v))
				value := int16(v * maxInt16)
				out = append(out, byte(value), byte(value>>8))
			}
		}
		if !ok || n == 0 {
			return out
		}
	}
}

func renderSequence(sampleRate int, sequence []toneSpec, gap time.Duration, master float64) ([]byte, error) {
	s, frames, err := sequenceStreamer(beep.SampleRate(sampleRate), sequence, gap, master)
	if err != nil {
		return nil, err
	}
	return renderPCM(s, frames), nil
}

// renderChord plays several sequences at once, trimmed to the longest of them.
func renderChord(sampleRate int, voices [][]toneSpec, master float64) ([]byte, error) {
	sr := beep.SampleRate(sampleRate)
	streamers := make([]beep.Streamer, 0, len(voices))
	longest := 0
	for _, voice := range voices {
		s, frames, err := sequenceStreamer(sr, voice, 0, master/float64(len(voices)))
		if err != nil {
			return nil, err
		}
		streamers = append(streamers, s)
		longest = max(longest, frames)
	}
	return renderPCM(beep.Take(longest, beep.Mix(streamers...)), longest), nil
}

func clampVolume(value float64) float64 {
	if value < 0 {
		return 0
	}
	if value > 1 {
		return 1
	}
	return value
}
