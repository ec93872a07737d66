// Package audio plays the game's sound effects, line-clear celebration and background
// music. Sounds are synthesised with beep and written to an oto output context.
package audio

import (
	"fmt"
	"os"
	"sync"

	"github.com/ebitengine/oto/v3"

	"github.com/KaiqueGovani/dinotris/internal/debuglog"
)

const DefaultSampleRate = 44100

var (
	contextOnce       sync.Once
	contextCtx        *oto.Context
	contextSampleRate int
	contextErr        error
)

// Init opens the process-wide output context. oto allows a single context per
// process, so later calls return the first result. When musicFile names a decodable
// mp3 the context adopts its sample rate.
func Init(musicFile string) (*oto.Context, int, error) {
	contextOnce.Do(func() {
		sampleRate := DefaultSampleRate
		if musicFile != "" {
			if rate, err := fileSampleRate(musicFile); err == nil {
				sampleRate = rate
			} else {
				debuglog.Logf("audio sample rate fallback: %v", err)
			}
		}
		ctx, ready, err := oto.NewContext(&oto.NewContextOptions{
			SampleRate:   sampleRate,
			ChannelCount: 2,
			Format:       oto.FormatSignedInt16LE,
		})
		if err != nil {
			contextErr = fmt.Errorf("open audio device: %w", err)
			return
		}
		<-ready
		contextCtx = ctx
		contextSampleRate = sampleRate
	})
	return contextCtx, contextSampleRate, contextErr
}

func fileSampleRate(path string) (int, error) {
	f, err := os.Open(path)
	if err != nil {
		return 0, err
	}
	defer f.Close()
	dec, err := newMP3Decoder(f)
	if err != nil {
		return 0, err
	}
	return dec.SampleRate(), nil
}
