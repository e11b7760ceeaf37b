package snake

import (
	"fmt"

	"github.com/vovakirdan/tui-snake/internal/core"
)

// headGlyphs are the two runes of the head cell per direction; the
// pointed side faces the heading.
var headGlyphs = [...][2]rune{
	DirUp:    {'▲', '▲'},
	DirDown:  {'▼', '▼'},
	DirLeft:  {'◀', '█'},
	DirRight: {'█', '▶'},
}

// Render draws the game to the screen.
func (g *Game) Render(dst *core.Screen) {
	dst.Clear()

	g.renderHUD(dst)

	if g.tooSmall {
		g.renderOverlay(dst, "Window too small", "Resize to continue")
		return
	}

	g.renderBoard(dst)
	g.renderFood(dst)
	g.renderSnake(dst)

	switch {
	case g.loop.Won():
		g.renderOverlay(dst, "You Win!", fmt.Sprintf("Final Score: %d", g.loop.Score()))
	case g.loop.GameOver():
		g.renderOverlay(dst, fmt.Sprintf("Game Over  Score: %d", g.loop.Score()), "Press R to restart")
	case g.paused:
		g.renderOverlay(dst, "Paused", "Press P to continue")
	}
}

// renderHUD draws the top status bar.
func (g *Game) renderHUD(dst *core.Screen) {
	hud := fmt.Sprintf(" %s | Score: %d  Length: %d  Tick: %dms",
		g.title, g.loop.Score(), g.loop.Snake().Len(), g.loop.Interval().Milliseconds())
	dst.DrawText(0, 0, hud)
	if g.loop.Snake().Accelerating() {
		dst.DrawTextColored(len([]rune(hud))+2, 0, ">>", core.ColorYellow)
	}
	dst.DrawHLine(0, 1, dst.Width(), '─', core.ColorGray)
}

// renderBoard draws the border and a dot per cell.
func (g *Game) renderBoard(dst *core.Screen) {
	border := core.NewRect(g.board.X-1, g.board.Y-1, g.board.W+2, g.board.H+2)
	dst.DrawBox(border, core.ColorGray)

	for y := 0; y < g.cfg.Grid.Size; y++ {
		for x := 0; x < g.cfg.Grid.Size; x++ {
			dst.SetColored(g.board.X+x*cellWidth, g.board.Y+y, '·', core.ColorDarkGray)
		}
	}
}

// renderFood draws the food in its palette color.
func (g *Game) renderFood(dst *core.Screen) {
	food, ok := g.loop.Food()
	if !ok {
		return
	}
	c := core.ANSI(foodANSI[paletteIndex(food.Color, FoodPaletteSize)])
	sx, sy := g.cellOrigin(food.Pos)
	dst.SetColored(sx, sy, '(', c)
	dst.SetColored(sx+1, sy, ')', c)
}

// renderSnake draws the body tail first so the head is always on top.
func (g *Game) renderSnake(dst *core.Screen) {
	segs := g.loop.Snake().Segments()
	for i := len(segs) - 1; i >= 0; i-- {
		p := segs[i]
		if !p.In(g.cfg.Grid.Size) {
			continue
		}
		sx, sy := g.cellOrigin(p)
		c := core.ANSI(bodyANSI[paletteIndex(i, len(bodyANSI))])
		if i == 0 {
			glyph := headGlyphs[g.loop.Snake().Direction()]
			dst.SetColored(sx, sy, glyph[0], c)
			dst.SetColored(sx+1, sy, glyph[1], c)
			continue
		}
		dst.SetColored(sx, sy, '█', c)
		dst.SetColored(sx+1, sy, '█', c)
	}
}

// cellOrigin returns the screen position of a board cell's first column.
func (g *Game) cellOrigin(p Point) (int, int) {
	return g.board.X + p.X*cellWidth, g.board.Y + p.Y
}

// renderOverlay draws a centered overlay message.
func (g *Game) renderOverlay(dst *core.Screen, line1, line2 string) {
	maxLen := max(len([]rune(line1)), len([]rune(line2)))
	box := dst.Bounds().CenterIn(maxLen+4, 5)

	dst.DrawRect(core.NewRect(box.X+1, box.Y+1, box.W-2, box.H-2), ' ')
	dst.DrawBox(box, core.ColorWhite)
	dst.DrawTextCentered(box.Y+1, line1)
	dst.DrawTextCentered(box.Y+3, line2)
}
