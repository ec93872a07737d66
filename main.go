package main

import (
	"flag"
	"os"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/KaiqueGovani/dinotris/internal/audio"
	"github.com/KaiqueGovani/dinotris/internal/debuglog"
	"github.com/KaiqueGovani/dinotris/internal/engine"
	"github.com/KaiqueGovani/dinotris/internal/settings"
)

func main() {
	debug := flag.Bool("debug", false, "enable debug logging")
	flag.Parse()
	debuglog.Enable(*debug)
	defer debuglog.Close()
	debuglog.Logf("dinotris start debug=%v", *debug)

	config, err := settings.Load()
	if err != nil {
		debuglog.Logf("config load error: %v", err)
	}
	musicFile := config.MusicFile
	if err := config.Validate(); err != nil {
		debuglog.Logf("config: %v, using the built-in melody", err)
		musicFile = ""
	}
	ctx, sampleRate, err := audio.Init(musicFile)
	if err != nil {
		debuglog.Logf("audio context init error: %v", err)
	}
	sound := audio.NewSoundEngine(ctx, sampleRate, config.Sound)
	music := audio.NewMusicPlayer(ctx, audio.SourceFor(musicFile, sampleRate), config.VolumeFraction())

	relay := newBridge()
	game := engine.New(engine.WithListener(relay))
	program := tea.NewProgram(NewModel(config, game, sound, music), tea.WithAltScreen())
	relay.attach(program)
	if _, err := program.Run(); err != nil {
		debuglog.Logf("program error: %v", err)
		music.Stop()
		os.Exit(1)
	}
	game.Reset()
	music.Stop()
}
