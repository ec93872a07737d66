package main

import (
	"fmt"
	"image/color"
	"strings"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/text"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"

	"github.com/KaiqueGovani/dinotris/internal/audio"
	"github.com/KaiqueGovani/dinotris/internal/celebrate"
	"github.com/KaiqueGovani/dinotris/internal/debuglog"
	"github.com/KaiqueGovani/dinotris/internal/engine"
	"github.com/KaiqueGovani/dinotris/internal/input"
	"github.com/KaiqueGovani/dinotris/internal/settings"
)

const (
	cellSize   = 24
	margin     = 24
	panelWidth = 200
	lineHeight = 16
	shakePx    = 4

	boardWidth  = engine.Cols * cellSize
	boardHeight = engine.Rows * cellSize

	screenWidth  = margin + boardWidth + margin + panelWidth
	screenHeight = margin + boardHeight + margin

	// key repeat, in ticks at 60 TPS
	repeatDelay    = 12
	repeatInterval = 4
)

var (
	background = color.RGBA{R: 0x10, G: 0x12, B: 0x18, A: 0xff}
	frameColor = color.RGBA{R: 0xe0, G: 0xe0, B: 0xe0, A: 0xff}
	gridColor  = color.RGBA{R: 0x1c, G: 0x20, B: 0x2a, A: 0xff}
	textColor  = color.RGBA{R: 0xd0, G: 0xd0, B: 0xd0, A: 0xff}
	accent     = color.RGBA{R: 0xf0, G: 0xf0, B: 0x00, A: 0xff}
	warning    = color.RGBA{R: 0xf0, G: 0x30, B: 0x30, A: 0xff}
)

type keyBinding struct {
	key    ebiten.Key
	intent input.Intent
	repeat bool
}

var keyBindings = []keyBinding{
	{key: ebiten.KeyArrowLeft, intent: input.MoveLeft, repeat: true},
	{key: ebiten.KeyArrowRight, intent: input.MoveRight, repeat: true},
	{key: ebiten.KeyArrowDown, intent: input.SoftDrop, repeat: true},
	{key: ebiten.KeyArrowUp, intent: input.Rotate},
	{key: ebiten.KeySpace, intent: input.HardDrop},
	{key: ebiten.KeyEnter, intent: input.Start},
	{key: ebiten.KeyP, intent: input.TogglePause},
}

type Game struct {
	engine *engine.Engine
	events *events
	sound  *audio.SoundEngine
	music  *audio.MusicPlayer
	config settings.Config
	face   font.Face
	debug  bool
}

func newGame(config settings.Config, sound *audio.SoundEngine, music *audio.MusicPlayer, debug bool) *Game {
	ev := newEvents(sound, music, config.Animations)
	return &Game{
		engine: engine.New(engine.WithListener(ev)),
		events: ev,
		sound:  sound,
		music:  music,
		config: config,
		face:   basicfont.Face7x13,
		debug:  debug,
	}
}

// shouldFire reports whether a key held for the given number of ticks triggers this tick.
func shouldFire(ticks int, repeat bool) bool {
	if ticks == 1 {
		return true
	}
	if !repeat || ticks < repeatDelay {
		return false
	}
	return (ticks-repeatDelay)%repeatInterval == 0
}

func (g *Game) Update() error {
	if inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		g.engine.Reset()
		g.music.Stop()
		return ebiten.Termination
	}
	for _, binding := range keyBindings {
		if shouldFire(inpututil.KeyPressDuration(binding.key), binding.repeat) {
			g.apply(binding.intent)
		}
	}
	return nil
}

func (g *Game) apply(intent input.Intent) {
	if !input.Allowed(g.engine.Snapshot(), intent) || !input.Apply(g.engine, intent) {
		return
	}
	if intent == input.Start {
		debuglog.Logf("game start session=%s", g.engine.Stats().Session)
		g.events.clear()
		if g.config.Music {
			g.music.Start()
		}
	}
	if event, ok := input.Sound(intent); ok {
		g.sound.Play(event)
	}
}

func (g *Game) Draw(screen *ebiten.Image) {
	now := time.Now()
	snap := g.engine.Snapshot()
	cel := g.events.celebration()
	screen.Fill(background)

	ox := float32(margin + cel.Offset(now)*shakePx)
	oy := float32(margin)
	border := color.Color(frameColor)
	if c, ok := cel.Color(now); ok {
		border = c
	}
	vector.StrokeRect(screen, ox-3, oy-3, boardWidth+6, boardHeight+6, 3, border, false)

	board := snap.Board
	if snap.Current != nil {
		for _, c := range snap.Current.Cells() {
			board.Set(c.X, c.Y, snap.Current.Color)
		}
	}
	empty := color.Color(gridColor)
	if cel.Inverted(now) {
		if c, ok := cel.Color(now); ok {
			empty = color.RGBA{R: c.R / 4, G: c.G / 4, B: c.B / 4, A: 0xff}
		}
	}
	for y := 0; y < engine.Rows; y++ {
		for x := 0; x < engine.Cols; x++ {
			fill := empty
			if val := board.At(x, y); val != engine.Empty {
				fill = val.RGBA()
			}
			px := ox + float32(x*cellSize)
			py := oy + float32(y*cellSize)
			vector.DrawFilledRect(screen, px+1, py+1, cellSize-2, cellSize-2, fill, false)
		}
	}

	g.drawPanel(screen, snap, cel, now)
	if g.debug {
		ebitenutil.DebugPrintAt(screen, fmt.Sprintf("TPS %0.1f FPS %0.1f", ebiten.ActualTPS(), ebiten.ActualFPS()), 4, 4)
	}
}

func (g *Game) drawPanel(screen *ebiten.Image, snap engine.Snapshot, cel celebrate.Celebration, now time.Time) {
	x := margin + boardWidth + margin
	y := margin + lineHeight
	text.Draw(screen, "NEXT", g.face, x, y, accent)
	y += lineHeight / 2
	if snap.Next != nil {
		mini := cellSize / 2
		for row, cells := range snap.Next.Matrix {
			for col, filled := range cells {
				if !filled {
					continue
				}
				vector.DrawFilledRect(screen, float32(x+col*mini), float32(y+row*mini), float32(mini-1), float32(mini-1), snap.Next.Color.RGBA(), false)
			}
		}
	}
	y += 3*cellSize + lineHeight

	for _, line := range []string{
		fmt.Sprintf("Score: %d", snap.Stats.Score),
		fmt.Sprintf("Level: %d", snap.Stats.Level),
		fmt.Sprintf("Lines: %d", snap.Stats.Lines),
	} {
		text.Draw(screen, line, g.face, x, y, textColor)
		y += lineHeight
	}
	y += lineHeight

	switch {
	case snap.Over:
		text.Draw(screen, "GAME OVER", g.face, x, y, warning)
		y += lineHeight
		text.Draw(screen, "Enter to play again", g.face, x, y, textColor)
	case snap.Paused:
		text.Draw(screen, "Paused", g.face, x, y, accent)
	case !snap.Running:
		text.Draw(screen, "Press Enter", g.face, x, y, accent)
	}
	y += 2 * lineHeight

	if cel.Active(now) {
		c, _ := cel.Color(now)
		text.Draw(screen, cel.Label(), g.face, x, y, c)
		y += lineHeight
		for _, line := range strings.Split(celebrate.Dino, "\n") {
			text.Draw(screen, line, g.face, x, y, textColor)
			y += lineHeight
		}
		y += lineHeight
	}

	for _, line := range []string{"Arrows: move/rotate", "Space: hard drop", "Enter: start", "P: pause", "Esc: quit"} {
		text.Draw(screen, line, g.face, x, y, textColor)
		y += lineHeight
	}
}

func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	return screenWidth, screenHeight
}
