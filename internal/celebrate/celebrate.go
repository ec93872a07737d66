// Package celebrate picks and times the line-clear effects shown by the hosts.
package celebrate

import (
	"fmt"
	"image/color"
	"math/rand/v2"
	"time"
)

const Duration = 1500 * time.Millisecond

// frame is how long each palette colour is held while an effect cycles.
const frame = 100 * time.Millisecond

type Effect struct {
	Name    string
	Palette []color.RGBA
	Shake   bool
	Invert  bool
}

func rgb(hex uint32) color.RGBA {
	return color.RGBA{R: uint8(hex >> 16), G: uint8(hex >> 8), B: uint8(hex), A: 0xff}
}

var Effects = [10]Effect{
	{Name: "Meteor Shower", Palette: []color.RGBA{rgb(0xff4500), rgb(0xffa500), rgb(0xffd700)}},
	{Name: "Stampede", Palette: []color.RGBA{rgb(0x8b4513), rgb(0xd2691e)}, Shake: true},
	{Name: "Jungle Flash", Palette: []color.RGBA{rgb(0x00ff00), rgb(0x006400)}, Invert: true},
	{Name: "Tar Pit", Palette: []color.RGBA{rgb(0x2f2f2f), rgb(0x696969), rgb(0x000000)}},
	{Name: "Volcano", Palette: []color.RGBA{rgb(0xff0000), rgb(0xff8c00)}, Shake: true},
	{Name: "Amber Glow", Palette: []color.RGBA{rgb(0xffbf00), rgb(0xffdc73)}},
	{Name: "Ice Age", Palette: []color.RGBA{rgb(0x00ffff), rgb(0xffffff)}, Invert: true},
	{Name: "Fern Spin", Palette: []color.RGBA{rgb(0x228b22), rgb(0x7cfc00), rgb(0xadff2f)}},
	{Name: "Fossil Dig", Palette: []color.RGBA{rgb(0xf5deb3), rgb(0xdeb887)}},
	{Name: "Rex Rage", Palette: []color.RGBA{rgb(0xff00ff), rgb(0xff1493), rgb(0x00f0f0)}, Shake: true, Invert: true},
}

// Celebration is one running effect. The zero value is inactive.
type Celebration struct {
	Effect int
	Lines  int
	Start  time.Time
}

// New picks an effect uniformly at random.
func New(rng *rand.Rand, lines int, now time.Time) Celebration {
	return Celebration{
		Effect: rng.IntN(len(Effects)),
		Lines:  lines,
		Start:  now,
	}
}

func (c Celebration) Active(now time.Time) bool {
	if c.Start.IsZero() {
		return false
	}
	return !now.Before(c.Start) && now.Before(c.Start.Add(Duration))
}

func (c Celebration) effect() Effect {
	return Effects[c.Effect%len(Effects)]
}

func (c Celebration) Name() string {
	return c.effect().Name
}

// Progress runs from 0 to 1 across the effect.
func (c Celebration) Progress(now time.Time) float64 {
	if !c.Active(now) {
		return 0
	}
	return float64(now.Sub(c.Start)) / float64(Duration)
}

// Color is the palette colour for the current frame.
func (c Celebration) Color(now time.Time) (color.RGBA, bool) {
	if !c.Active(now) {
		return color.RGBA{}, false
	}
	palette := c.effect().Palette
	i := int(now.Sub(c.Start)/frame) % len(palette)
	return palette[i], true
}

// Offset is the horizontal jitter of a shaking effect, in cells.
func (c Celebration) Offset(now time.Time) int {
	if !c.Active(now) || !c.effect().Shake {
		return 0
	}
	if int(now.Sub(c.Start)/frame)%2 == 0 {
		return 1
	}
	return 0
}

// Inverted reports whether empty cells take the effect colour on this frame.
func (c Celebration) Inverted(now time.Time) bool {
	if !c.Active(now) || !c.effect().Invert {
		return false
	}
	return int(now.Sub(c.Start)/(2*frame))%2 == 0
}

func (c Celebration) Label() string {
	switch c.Lines {
	case 1:
		return c.Name() + "!"
	default:
		return fmt.Sprintf("%s x%d!", c.Name(), c.Lines)
	}
}

func Hex(c color.RGBA) string {
	return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
}

const Dino = `               __
              / _)
     _.----._/ /
    /         /
 __/ (  | (  |
/__.-'|_|--|_|`
