package snake

import "image/color"

// FoodPalette holds the food colors; Food.Color indexes it.
var FoodPalette = [FoodPaletteSize]color.RGBA{
	{0xFF, 0x52, 0x52, 0xFF}, // red
	{0xFF, 0x40, 0x81, 0xFF}, // pink
	{0x7C, 0x4D, 0xFF, 0xFF}, // deep purple
	{0x53, 0x6D, 0xFE, 0xFF}, // indigo
	{0x44, 0x8A, 0xFF, 0xFF}, // blue
	{0x40, 0xC4, 0xFF, 0xFF}, // light blue
	{0x18, 0xFF, 0xFF, 0xFF}, // cyan
	{0x64, 0xFF, 0xDA, 0xFF}, // teal
	{0x69, 0xF0, 0xAE, 0xFF}, // green
	{0xB2, 0xFF, 0x59, 0xFF}, // light green
	{0xEE, 0xFF, 0x41, 0xFF}, // lime
	{0xFF, 0xFF, 0x00, 0xFF}, // yellow
	{0xFF, 0xD7, 0x40, 0xFF}, // amber
	{0xFF, 0xAB, 0x40, 0xFF}, // orange
	{0xFF, 0x6E, 0x40, 0xFF}, // deep orange
}

// BodyPalette is cycled along the body, head first.
var BodyPalette = [4]color.RGBA{
	{0x4C, 0xAF, 0x50, 0xFF},
	{0x38, 0x8E, 0x3C, 0xFF},
	{0x2E, 0x7D, 0x32, 0xFF},
	{0x1B, 0x5E, 0x20, 0xFF},
}

// GridColor is the board's line color.
var GridColor = color.RGBA{0xF0, 0xF0, 0xF0, 0xFF}

// Nearest xterm-256 indexes for the palettes above.
var (
	foodANSI = [FoodPaletteSize]uint8{203, 204, 99, 63, 69, 75, 51, 86, 85, 155, 191, 226, 221, 215, 209}
	bodyANSI = [len(BodyPalette)]uint8{71, 65, 28, 22}
)

// FoodColor returns the palette color for a food item, wrapping
// out-of-range indexes.
func FoodColor(f Food) color.RGBA {
	return FoodPalette[paletteIndex(f.Color, FoodPaletteSize)]
}

// SegmentColor returns the body color for the i-th segment.
func SegmentColor(i int) color.RGBA {
	return BodyPalette[paletteIndex(i, len(BodyPalette))]
}

func paletteIndex(i, n int) int {
	i %= n
	if i < 0 {
		i += n
	}
	return i
}
