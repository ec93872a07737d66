package main

import (
	"math/rand/v2"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/KaiqueGovani/dinotris/internal/audio"
	"github.com/KaiqueGovani/dinotris/internal/celebrate"
	"github.com/KaiqueGovani/dinotris/internal/debuglog"
	"github.com/KaiqueGovani/dinotris/internal/engine"
	"github.com/KaiqueGovani/dinotris/internal/input"
	"github.com/KaiqueGovani/dinotris/internal/settings"
)

type Screen int

const (
	screenMenu Screen = iota
	screenGame
	screenThemes
	screenConfig
)

type soundMsg struct{}
type celebrationTickMsg struct{}

const scoreEventDuration = 900 * time.Millisecond

type Model struct {
	screen       Screen
	width        int
	height       int
	menuIndex    int
	configIndex  int
	themeIndex   int
	config       settings.Config
	engine       *engine.Engine
	sound        *audio.SoundEngine
	music        *audio.MusicPlayer
	rng          *rand.Rand
	celebration  celebrate.Celebration
	lastStats    engine.Stats
	lastDelta    int
	lastEventTil time.Time
}

// NewModel wires the terminal host around an engine whose listener feeds this
// model's program.
func NewModel(config settings.Config, e *engine.Engine, sound *audio.SoundEngine, music *audio.MusicPlayer) Model {
	index := themeIndexByName(config.Theme)
	if index < 0 {
		index = 0
		config.Theme = themes[index].Name
	}
	if sound != nil {
		sound.SetEnabled(config.Sound)
		sound.SetVolume(config.VolumeFraction())
	}
	return Model{
		screen:     screenMenu,
		config:     config,
		themeIndex: index,
		engine:     e,
		sound:      sound,
		music:      music,
		rng:        rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64())),
	}
}

func (m Model) Init() tea.Cmd {
	return m.syncMusicForScreen()
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil
	case soundMsg, boardMsg:
		return m, nil
	case scoreMsg:
		// every new game is preceded by a zero score from the reset
		if msg.stats.Score > m.lastStats.Score {
			m.lastDelta = msg.stats.Score - m.lastStats.Score
			m.lastEventTil = time.Now().Add(scoreEventDuration)
		}
		m.lastStats = msg.stats
		return m, nil
	case linesClearedMsg:
		cmds := []tea.Cmd{m.celebrateCmd(msg.count)}
		if m.config.Animations {
			m.celebration = celebrate.New(m.rng, msg.count, time.Now())
			cmds = append(cmds, celebrationTickCmd())
		}
		return m, tea.Batch(cmds...)
	case celebrationTickMsg:
		if m.celebration.Active(time.Now()) {
			return m, celebrationTickCmd()
		}
		m.celebration = celebrate.Celebration{}
		return m, nil
	case pauseMsg:
		if msg.paused {
			m.music.Pause()
			return m, m.soundCmd(audio.SoundPause)
		}
		m.music.Resume()
		return m, m.soundCmd(audio.SoundResume)
	case gameOverMsg:
		debuglog.Logf("game over session=%s score=%d level=%d lines=%d",
			msg.stats.Session, msg.stats.Score, msg.stats.Level, msg.stats.Lines)
		m.music.Stop()
		return m, m.soundCmd(audio.SoundGameOver)
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c":
			return m, tea.Quit
		case "ctrl+=", "ctrl++":
			m.adjustScale(1)
			return m, nil
		case "ctrl+-", "ctrl+_":
			m.adjustScale(-1)
			return m, nil
		}
		switch m.screen {
		case screenMenu:
			return m, m.updateMenu(msg)
		case screenGame:
			return m, m.updateGame(msg)
		case screenThemes:
			return m, m.updateThemes(msg)
		case screenConfig:
			return m, m.updateConfig(msg)
		}
	}
	return m, nil
}

func (m Model) View() string {
	switch m.screen {
	case screenMenu:
		return viewMenu(m)
	case screenGame:
		return viewGame(m)
	case screenThemes:
		return viewThemes(m)
	case screenConfig:
		return viewConfig(m)
	default:
		return ""
	}
}

func celebrationTickCmd() tea.Cmd {
	return tea.Tick(50*time.Millisecond, func(time.Time) tea.Msg { return celebrationTickMsg{} })
}

func playSound(engine *audio.SoundEngine, event audio.SoundEvent) tea.Cmd {
	return func() tea.Msg {
		if engine != nil {
			engine.Play(event)
		}
		return soundMsg{}
	}
}

func (m *Model) soundCmd(event audio.SoundEvent) tea.Cmd {
	if !m.config.Sound {
		return nil
	}
	return playSound(m.sound, event)
}

func (m *Model) celebrateCmd(cleared int) tea.Cmd {
	if !m.config.Sound || m.sound == nil {
		return nil
	}
	sound := m.sound
	return func() tea.Msg {
		sound.Celebrate(cleared)
		return soundMsg{}
	}
}

func (m *Model) saveConfig() {
	if err := settings.Save(m.config); err != nil {
		debuglog.Logf("config save error: %v", err)
	}
}

func (m *Model) adjustScale(delta int) {
	newScale := settings.ClampScale(m.config.Scale + delta)
	if newScale != m.config.Scale {
		m.config.Scale = newScale
		m.saveConfig()
	}
}

func (m *Model) adjustVolume(delta int) {
	newVolume := settings.ClampVolume(m.config.Volume + delta)
	if newVolume == m.config.Volume {
		return
	}
	m.config.Volume = newVolume
	if m.sound != nil {
		m.sound.SetVolume(m.config.VolumeFraction())
	}
	m.music.SetVolume(m.config.VolumeFraction())
	m.saveConfig()
}

func (m *Model) setScreen(screen Screen) tea.Cmd {
	m.screen = screen
	return m.syncMusicForScreen()
}

func (m *Model) syncMusicForScreen() tea.Cmd {
	if m.music == nil {
		debuglog.Logf("music sync skipped: player nil")
		return nil
	}
	if !m.config.Music {
		debuglog.Logf("music sync stopped: disabled")
		m.music.Stop()
		return nil
	}
	if m.screen == screenGame {
		snap := m.engine.Snapshot()
		if snap.Running && !snap.Over {
			debuglog.Logf("music sync: start game")
			m.music.Start()
			if snap.Paused {
				m.music.Pause()
			}
		}
		return nil
	}
	debuglog.Logf("music sync: stop (non-game)")
	m.music.Stop()
	return nil
}

// leaveGame abandons the current game so the next start begins from an empty board.
func (m *Model) leaveGame() tea.Cmd {
	m.engine.Reset()
	m.celebration = celebrate.Celebration{}
	m.lastDelta = 0
	m.lastEventTil = time.Time{}
	return m.setScreen(screenMenu)
}

func (m *Model) updateMenu(msg tea.KeyMsg) tea.Cmd {
	var cmd tea.Cmd
	switch msg.String() {
	case "up", "k":
		if m.menuIndex > 0 {
			m.menuIndex--
			cmd = m.soundCmd(audio.SoundMenuMove)
		}
	case "down", "j":
		if m.menuIndex < len(menuItems)-1 {
			m.menuIndex++
			cmd = m.soundCmd(audio.SoundMenuMove)
		}
	case "enter":
		cmd = m.soundCmd(audio.SoundMenuSelect)
		switch m.menuIndex {
		case 0:
			m.engine.Start()
			return tea.Batch(cmd, m.setScreen(screenGame))
		case 1:
			return tea.Batch(cmd, m.setScreen(screenThemes))
		case 2:
			return tea.Batch(cmd, m.setScreen(screenConfig))
		case 3:
			return tea.Quit
		}
	case "q", "esc":
		return tea.Quit
	}
	return cmd
}

func (m *Model) updateGame(msg tea.KeyMsg) tea.Cmd {
	switch msg.String() {
	case "q", "esc":
		return m.leaveGame()
	}
	intent := input.FromKey(msg.String())
	if !input.Allowed(m.engine.Snapshot(), intent) {
		return nil
	}
	if !input.Apply(m.engine, intent) {
		return nil
	}
	if intent == input.Start {
		m.celebration = celebrate.Celebration{}
		cmd := m.syncMusicForScreen()
		return tea.Batch(cmd, m.soundCmd(audio.SoundMenuSelect))
	}
	if event, ok := input.Sound(intent); ok {
		return m.soundCmd(event)
	}
	return nil
}

func (m *Model) updateThemes(msg tea.KeyMsg) tea.Cmd {
	switch msg.String() {
	case "up", "k":
		if m.themeIndex > 0 {
			m.themeIndex--
			return m.soundCmd(audio.SoundMenuMove)
		}
	case "down", "j":
		if m.themeIndex < len(themes)-1 {
			m.themeIndex++
			return m.soundCmd(audio.SoundMenuMove)
		}
	case "enter":
		m.config.Theme = themes[m.themeIndex].Name
		m.saveConfig()
		cmd := m.setScreen(screenMenu)
		return tea.Batch(cmd, m.soundCmd(audio.SoundMenuSelect))
	case "q", "esc":
		return m.setScreen(screenMenu)
	}
	return nil
}

func (m *Model) updateConfig(msg tea.KeyMsg) tea.Cmd {
	switch msg.String() {
	case "up", "k":
		if m.configIndex > 0 {
			m.configIndex--
			return m.soundCmd(audio.SoundMenuMove)
		}
	case "down", "j":
		if m.configIndex < len(configItems)-1 {
			m.configIndex++
			return m.soundCmd(audio.SoundMenuMove)
		}
	case "enter":
		switch m.configIndex {
		case 0:
			m.config.Sound = !m.config.Sound
			if m.sound != nil {
				m.sound.SetEnabled(m.config.Sound)
			}
			m.saveConfig()
		case 1:
			m.config.Music = !m.config.Music
			m.saveConfig()
			return tea.Batch(m.syncMusicForScreen(), m.soundCmd(audio.SoundMenuSelect))
		case 2:
			m.adjustVolume(5)
		case 3:
			m.config.Animations = !m.config.Animations
			if !m.config.Animations {
				m.celebration = celebrate.Celebration{}
			}
			m.saveConfig()
		case 4:
			m.adjustScale(1)
		}
		return m.soundCmd(audio.SoundMenuSelect)
	case "left", "h":
		switch m.configIndex {
		case 2:
			m.adjustVolume(-5)
			return m.soundCmd(audio.SoundMenuMove)
		case 4:
			m.adjustScale(-1)
			return m.soundCmd(audio.SoundMenuMove)
		}
	case "right", "l":
		switch m.configIndex {
		case 2:
			m.adjustVolume(5)
			return m.soundCmd(audio.SoundMenuMove)
		case 4:
			m.adjustScale(1)
			return m.soundCmd(audio.SoundMenuMove)
		}
	case "q", "esc":
		return m.setScreen(screenMenu)
	}
	return nil
}

var menuItems = []string{
	"Start Game",
	"Themes",
	"Config",
	"Quit",
}

var configItems = []string{
	"Sound Effects",
	"Music",
	"Volume",
	"Line Clear Animation",
	"Game Scale",
}
