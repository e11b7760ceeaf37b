// Package canvas draws snake frames as raster images for screenshots, the
// web API and headless renders.
package canvas

import (
	"fmt"
	"image"
	"image/color"
	"io"
	"os"
	"path/filepath"

	"github.com/disintegration/imaging"
	"github.com/fogleman/gg"

	"github.com/vovakirdan/tui-snake/internal/games/snake"
)

// DefaultTileSize is the pixel size of one board cell.
const DefaultTileSize = 20

// Render draws a frame of a gridSize x gridSize board with square tiles
// of tile pixels.
func Render(f snake.Frame, gridSize, tile int) image.Image {
	if tile <= 0 {
		tile = DefaultTileSize
	}
	side := gridSize * tile
	dc := gg.NewContext(side, side)

	dc.SetColor(color.White)
	dc.Clear()

	drawGrid(dc, gridSize, float64(tile))
	if f.HasFood {
		drawFood(dc, f.Food, float64(tile))
	}
	drawSnake(dc, f, float64(tile))

	return dc.Image()
}

func drawGrid(dc *gg.Context, gridSize int, tile float64) {
	side := float64(gridSize) * tile
	dc.SetColor(snake.GridColor)
	dc.SetLineWidth(0.5)
	for i := 0; i <= gridSize; i++ {
		p := float64(i) * tile
		dc.DrawLine(p, 0, p, side)
		dc.Stroke()
		dc.DrawLine(0, p, side, p)
		dc.Stroke()
	}
}

// drawFood draws a round fruit with a small highlight.
func drawFood(dc *gg.Context, food snake.Food, tile float64) {
	cx := (float64(food.Pos.X) + 0.5) * tile
	cy := (float64(food.Pos.Y) + 0.5) * tile
	r := tile / 2 * 0.8

	dc.SetColor(snake.FoodColor(food))
	dc.DrawCircle(cx, cy, r)
	dc.Fill()

	dc.SetRGBA(1, 1, 1, 0.3)
	dc.DrawCircle(cx-r/3, cy-r/3, r/4)
	dc.Fill()
}

// drawSnake draws rounded segments cycling through the body palette, then
// eyes on the head.
func drawSnake(dc *gg.Context, f snake.Frame, tile float64) {
	size := tile * 0.9
	offset := (tile - size) / 2

	for i, seg := range f.Segments {
		dc.SetColor(snake.SegmentColor(i))
		dc.DrawRoundedRectangle(float64(seg.X)*tile+offset, float64(seg.Y)*tile+offset, size, size, size/4)
		dc.Fill()
	}
	if len(f.Segments) > 0 {
		drawEyes(dc, f.Segments[0], f.Direction, tile)
	}
}

// drawEyes places two eyes on the leading side of the head.
func drawEyes(dc *gg.Context, head snake.Point, dir snake.Direction, tile float64) {
	x := float64(head.X) * tile
	y := float64(head.Y) * tile
	eye := tile / 6
	inset := tile / 4
	near := inset
	far := tile - inset - eye

	var lx, ly, rx, ry float64
	switch dir {
	case snake.DirUp:
		lx, ly, rx, ry = near, near, far, near
	case snake.DirDown:
		lx, ly, rx, ry = near, far, far, far
	case snake.DirLeft:
		lx, ly, rx, ry = near, near, near, far
	default:
		lx, ly, rx, ry = far, near, far, far
	}

	pupil := eye / 2
	po := (eye - pupil) / 2
	for _, e := range [][2]float64{{x + lx, y + ly}, {x + rx, y + ry}} {
		dc.SetColor(color.White)
		dc.DrawRectangle(e[0], e[1], eye, eye)
		dc.Fill()
		dc.SetColor(color.Black)
		dc.DrawRectangle(e[0]+po, e[1]+po, pupil, pupil)
		dc.Fill()
	}
}

// Thumbnail scales img to fit a size x size box. A non-positive size
// returns img unchanged.
func Thumbnail(img image.Image, size int) image.Image {
	if size <= 0 {
		return img
	}
	return imaging.Fit(img, size, size, imaging.Lanczos)
}

// EncodePNG writes img as PNG.
func EncodePNG(w io.Writer, img image.Image) error {
	if err := imaging.Encode(w, img, imaging.PNG); err != nil {
		return fmt.Errorf("canvas: cannot encode png: %w", err)
	}
	return nil
}

// SavePNG writes img to path, creating parent directories.
func SavePNG(path string, img image.Image) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("canvas: cannot create directory: %w", err)
	}
	if err := imaging.Save(img, path); err != nil {
		return fmt.Errorf("canvas: cannot save %s: %w", path, err)
	}
	return nil
}
