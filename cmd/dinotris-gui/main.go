// Command dinotris-gui plays dinotris in a window.
package main

import (
	"errors"
	"flag"
	"fmt"
	"os"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/KaiqueGovani/dinotris/internal/audio"
	"github.com/KaiqueGovani/dinotris/internal/debuglog"
	"github.com/KaiqueGovani/dinotris/internal/settings"
)

func main() {
	debug := flag.Bool("debug", false, "enable debug logging and the TPS overlay")
	scale := flag.Int("scale", 0, "window scale 1-3 (defaults to the saved config)")
	flag.Parse()
	debuglog.Enable(*debug)
	debuglog.Logf("dinotris-gui start debug=%v", *debug)

	config, err := settings.Load()
	if err != nil {
		debuglog.Logf("config load error: %v", err)
	}
	musicFile := config.MusicFile
	if err := config.Validate(); err != nil {
		debuglog.Logf("config: %v, using the built-in melody", err)
		musicFile = ""
	}
	if *scale > 0 {
		config.Scale = *scale
	}
	config.Scale = settings.ClampScale(config.Scale)

	ctx, sampleRate, err := audio.Init(musicFile)
	if err != nil {
		debuglog.Logf("audio context init error: %v", err)
	}
	sound := audio.NewSoundEngine(ctx, sampleRate, config.Sound)
	sound.SetVolume(config.VolumeFraction())
	music := audio.NewMusicPlayer(ctx, audio.SourceFor(musicFile, sampleRate), config.VolumeFraction())

	game := newGame(config, sound, music, *debug)
	ebiten.SetWindowSize(screenWidth*config.Scale, screenHeight*config.Scale)
	ebiten.SetWindowTitle("Dinotris")
	err = ebiten.RunGame(game)
	music.Stop()
	_ = debuglog.Close()
	if err != nil && !errors.Is(err, ebiten.Termination) {
		fmt.Fprintf(os.Stderr, "dinotris-gui: %v\n", err)
		os.Exit(1)
	}
}
