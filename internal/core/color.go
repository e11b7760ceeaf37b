package core

// Color is a foreground color for a screen cell.
// The zero value leaves the terminal default untouched; any other value
// carries an ANSI 256-color index shifted by one.
type Color uint16

// ColorDefault renders with the terminal's default foreground.
const ColorDefault Color = 0

// ANSI returns the Color for an ANSI 256-color palette index.
func ANSI(index uint8) Color {
	return Color(index) + 1
}

// Index returns the ANSI palette index and false for ColorDefault.
func (c Color) Index() (uint8, bool) {
	if c == ColorDefault {
		return 0, false
	}
	return uint8(c - 1), true
}

// Named colors used by the HUD and overlays.
var (
	ColorRed       = ANSI(1)
	ColorGreen     = ANSI(2)
	ColorYellow    = ANSI(3)
	ColorWhite     = ANSI(7)
	ColorGray      = ANSI(245)
	ColorDarkGray  = ANSI(238)
	ColorBrightRed = ANSI(9)
)
