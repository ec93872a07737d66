package main

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/KaiqueGovani/dinotris/internal/celebrate"
	"github.com/KaiqueGovani/dinotris/internal/engine"
	"github.com/KaiqueGovani/dinotris/internal/settings"
)

type Theme struct {
	Name        string
	BorderColor lipgloss.Color
	TextColor   lipgloss.Color
	AccentColor lipgloss.Color
	PieceColors []lipgloss.Color
}

var themes = []Theme{
	{
		Name:        "Classic",
		BorderColor: lipgloss.Color("15"),
		TextColor:   lipgloss.Color("250"),
		AccentColor: lipgloss.Color("226"),
		PieceColors: classicColors(),
	},
	{
		Name:        "Amber Terminal",
		BorderColor: lipgloss.Color("214"),
		TextColor:   lipgloss.Color("223"),
		AccentColor: lipgloss.Color("208"),
		PieceColors: []lipgloss.Color{"220", "214", "222", "208", "215", "216", "223"},
	},
	{
		Name:        "Ocean Neon",
		BorderColor: lipgloss.Color("33"),
		TextColor:   lipgloss.Color("159"),
		AccentColor: lipgloss.Color("39"),
		PieceColors: []lipgloss.Color{"45", "39", "51", "44", "50", "75", "81"},
	},
	{
		Name:        "Jurassic",
		BorderColor: lipgloss.Color("22"),
		TextColor:   lipgloss.Color("120"),
		AccentColor: lipgloss.Color("34"),
		PieceColors: []lipgloss.Color{"47", "64", "77", "48", "71", "35", "106"},
	},
	{
		Name:        "Mono Matrix",
		BorderColor: lipgloss.Color("250"),
		TextColor:   lipgloss.Color("245"),
		AccentColor: lipgloss.Color("82"),
		PieceColors: []lipgloss.Color{"236", "239", "242", "245", "248", "251", "254"},
	},
	{
		Name:        "Volcanic",
		BorderColor: lipgloss.Color("203"),
		TextColor:   lipgloss.Color("223"),
		AccentColor: lipgloss.Color("214"),
		PieceColors: []lipgloss.Color{"52", "88", "124", "160", "196", "202", "208"},
	},
}

func classicColors() []lipgloss.Color {
	colors := make([]lipgloss.Color, 0, engine.PaletteSize)
	for c := 1; c <= engine.PaletteSize; c++ {
		colors = append(colors, lipgloss.Color(engine.Color(c).Hex()))
	}
	return colors
}

func themeIndexByName(name string) int {
	for i, theme := range themes {
		if theme.Name == name {
			return i
		}
	}
	return -1
}

func (t Theme) pieceColor(c engine.Color) lipgloss.Color {
	if c == engine.Empty || len(t.PieceColors) == 0 {
		return lipgloss.Color("")
	}
	return t.PieceColors[(int(c)-1)%len(t.PieceColors)]
}

func viewMenu(m Model) string {
	theme := themes[m.themeIndex]
	content := renderMenu("DINOTRIS", menuItems, m.menuIndex, "Enter to select, Q to quit", theme)
	return center(m.width, m.height, content)
}

func viewThemes(m Model) string {
	theme := themes[m.themeIndex]
	items := make([]string, 0, len(themes))
	for _, t := range themes {
		items = append(items, t.Name)
	}
	preview := lipgloss.JoinVertical(
		lipgloss.Left,
		titleStyle(theme).Render("Theme Preview"),
		renderPreviewPieces(theme),
	)
	menu := renderMenu("Themes", items, m.themeIndex, "Enter to apply, Esc to back", theme)
	content := lipgloss.JoinVertical(lipgloss.Left, preview, "", menu)
	return center(m.width, m.height, content)
}

func renderPreviewPieces(theme Theme) string {
	items := make([]string, 0, len(engine.Shapes()))
	for _, shape := range engine.Shapes() {
		p := engine.NewPiece(shape, engine.Color(int(shape)+1))
		items = append(items, lipgloss.NewStyle().MarginRight(1).Render(renderMiniPiece(&p, theme, 1)))
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, items...)
}

func viewConfig(m Model) string {
	theme := themes[m.themeIndex]
	items := make([]string, 0, len(configItems))
	for i, item := range configItems {
		switch i {
		case 0:
			items = append(items, fmt.Sprintf("%s: %s", item, onOff(m.config.Sound)))
		case 1:
			items = append(items, fmt.Sprintf("%s: %s", item, onOff(m.config.Music)))
		case 2:
			items = append(items, fmt.Sprintf("%s: %d%%", item, settings.ClampVolume(m.config.Volume)))
		case 3:
			items = append(items, fmt.Sprintf("%s: %s", item, onOff(m.config.Animations)))
		case 4:
			items = append(items, fmt.Sprintf("%s: %dx", item, settings.ClampScale(m.config.Scale)))
		}
	}
	content := renderMenu("Config", items, m.configIndex, "Enter to toggle, Left/Right to adjust, Esc to back", theme)
	return center(m.width, m.height, content)
}

func onOff(value bool) string {
	if value {
		return "ON"
	}
	return "OFF"
}

func viewGame(m Model) string {
	theme := themes[m.themeIndex]
	scale := settings.ClampScale(m.config.Scale)
	minWidth, minHeight := minGameSize(scale)
	if m.width > 0 && m.height > 0 && (m.width < minWidth || m.height < minHeight) {
		message := fmt.Sprintf("Terminal too small. Need at least %dx%d. Current %dx%d.", minWidth, minHeight, m.width, m.height)
		return center(m.width, m.height, message)
	}
	now := time.Now()
	snap := m.engine.Snapshot()
	board := renderBoard(snap, theme, scale, m.celebration, now)
	info := renderInfo(snap, theme, scale, m.celebration, now, m.lastDelta, m.lastEventTil)
	content := lipgloss.JoinHorizontal(lipgloss.Top, board, info)
	if m.width > 0 && m.width < minWidth+24 {
		content = lipgloss.JoinVertical(lipgloss.Left, board, info)
	}
	if offset := m.celebration.Offset(now); offset > 0 {
		content = lipgloss.NewStyle().PaddingLeft(offset).Render(content)
	}
	return center(m.width, m.height, content)
}

func renderBoard(snap engine.Snapshot, theme Theme, scale int, cel celebrate.Celebration, now time.Time) string {
	borderColor := theme.BorderColor
	if c, ok := cel.Color(now); ok {
		borderColor = lipgloss.Color(celebrate.Hex(c))
	}
	border := lipgloss.NewStyle().Foreground(borderColor)
	cellEmpty := lipgloss.NewStyle()
	cellText := strings.Repeat(" ", cellWidth(scale))

	board := snap.Board
	if snap.Current != nil {
		for _, c := range snap.Current.Cells() {
			board.Set(c.X, c.Y, snap.Current.Color)
		}
	}
	invert := cel.Inverted(now)

	var b strings.Builder
	b.WriteString(border.Render("+" + strings.Repeat("-", engine.Cols*cellWidth(scale)) + "+"))
	b.WriteString("\n")
	for y := 0; y < engine.Rows; y++ {
		for repeat := 0; repeat < scale; repeat++ {
			b.WriteString(border.Render("|"))
			for x := 0; x < engine.Cols; x++ {
				val := board.At(x, y)
				if val == engine.Empty {
					if invert {
						b.WriteString(lipgloss.NewStyle().Background(borderColor).Faint(true).Render(cellText))
						continue
					}
					b.WriteString(cellEmpty.Render(cellText))
					continue
				}
				style := lipgloss.NewStyle().Background(theme.pieceColor(val))
				b.WriteString(style.Render(cellText))
			}
			b.WriteString(border.Render("|"))
			b.WriteString("\n")
		}
	}
	b.WriteString(border.Render("+" + strings.Repeat("-", engine.Cols*cellWidth(scale)) + "+"))
	return b.String()
}

func renderInfo(snap engine.Snapshot, theme Theme, scale int, cel celebrate.Celebration, now time.Time, lastDelta int, lastEventTil time.Time) string {
	var b strings.Builder
	pad := lipgloss.NewStyle().PaddingLeft(2)
	b.WriteString(pad.Render(titleStyle(theme).Render("Next")))
	b.WriteString("\n")
	if snap.Next != nil {
		b.WriteString(pad.Render(renderMiniPiece(snap.Next, theme, scale)))
	} else {
		b.WriteString(pad.Render("(none)"))
	}
	b.WriteString("\n\n")
	b.WriteString(pad.Render(fmt.Sprintf("Score: %d", snap.Stats.Score)))
	b.WriteString("\n")
	b.WriteString(pad.Render(fmt.Sprintf("Level: %d", snap.Stats.Level)))
	b.WriteString("\n")
	b.WriteString(pad.Render(fmt.Sprintf("Lines: %d", snap.Stats.Lines)))
	b.WriteString("\n\n")
	if lastDelta > 0 && now.Before(lastEventTil) {
		b.WriteString(pad.Render(highlightStyle(theme).Render(fmt.Sprintf("LINE CLEAR +%d", lastDelta))))
		b.WriteString("\n\n")
	}
	if cel.Active(now) {
		b.WriteString(pad.Render(highlightStyle(theme).Render(cel.Label())))
		b.WriteString("\n")
		b.WriteString(pad.Render(helpStyle(theme).Render(celebrate.Dino)))
		b.WriteString("\n\n")
	}
	keys := []string{
		"Arrows/HJL: move",
		"Up/X: rotate",
		"Space: hard drop",
		"Enter/S: start",
		"P: pause",
		"Q: menu",
	}
	for _, line := range keys {
		b.WriteString(pad.Render(helpStyle(theme).Render(line)))
		b.WriteString("\n")
	}
	switch {
	case snap.Over:
		b.WriteString("\n")
		b.WriteString(pad.Render(warningStyle().Render("GAME OVER")))
		b.WriteString("\n")
		b.WriteString(pad.Render(helpStyle(theme).Render("Enter to play again")))
	case snap.Paused:
		b.WriteString("\n")
		b.WriteString(pad.Render(highlightStyle(theme).Render("Paused")))
	case !snap.Running:
		b.WriteString("\n")
		b.WriteString(pad.Render(highlightStyle(theme).Render("Press Enter")))
	}
	return b.String()
}

func renderMiniPiece(p *engine.Piece, theme Theme, scale int) string {
	cellEmpty := lipgloss.NewStyle()
	cellText := strings.Repeat(" ", cellWidth(scale))
	style := lipgloss.NewStyle().Background(theme.pieceColor(p.Color))
	var b strings.Builder
	for _, row := range p.Matrix {
		for repeat := 0; repeat < scale; repeat++ {
			for _, filled := range row {
				if !filled {
					b.WriteString(cellEmpty.Render(cellText))
					continue
				}
				b.WriteString(style.Render(cellText))
			}
			b.WriteString("\n")
		}
	}
	return strings.TrimRight(b.String(), "\n")
}

func minGameSize(scale int) (int, int) {
	width := engine.Cols*cellWidth(scale) + 4
	height := engine.Rows*scale + 4
	return width, height
}

func titleStyle(theme Theme) lipgloss.Style {
	return lipgloss.NewStyle().Foreground(theme.AccentColor).Bold(true)
}

func highlightStyle(theme Theme) lipgloss.Style {
	return lipgloss.NewStyle().Foreground(theme.AccentColor).Bold(true)
}

func helpStyle(theme Theme) lipgloss.Style {
	return lipgloss.NewStyle().Foreground(theme.TextColor)
}

func warningStyle() lipgloss.Style {
	return lipgloss.NewStyle().Foreground(lipgloss.Color("196")).Bold(true)
}

func center(width, height int, content string) string {
	if width == 0 || height == 0 {
		return content
	}
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, content)
}

func cellWidth(scale int) int {
	if scale < 1 {
		scale = 1
	}
	return 2 * scale
}

func renderMenu(title string, items []string, selected int, footer string, theme Theme) string {
	maxWidth := lipgloss.Width(title)
	for _, item := range items {
		if width := lipgloss.Width(item); width > maxWidth {
			maxWidth = width
		}
	}
	if width := lipgloss.Width(footer); width > maxWidth {
		maxWidth = width
	}
	lineStyle := lipgloss.NewStyle().Width(maxWidth).Align(lipgloss.Center)
	var b strings.Builder
	b.WriteString(lineStyle.Render(titleStyle(theme).Render(title)))
	b.WriteString("\n\n")
	for i, line := range items {
		if i == selected {
			b.WriteString(lineStyle.Render(highlightStyle(theme).Render(line)))
		} else {
			b.WriteString(lineStyle.Render(line))
		}
		b.WriteString("\n")
	}
	b.WriteString("\n")
	b.WriteString(lineStyle.Render(helpStyle(theme).Render(footer)))
	return b.String()
}
