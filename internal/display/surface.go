// Package display defines the drawing contract page renderers target and
// two implementations of it: an in-memory raster Framebuffer and a
// Recorder that captures draw calls.
package display

import "github.com/wcharczuk/go-chart/v2/drawing"

// Screen geometry of the 2.8" panel in landscape orientation
const (
	Width  = 320
	Height = 240
)

// Color is an 8-bit RGBA value
type Color = drawing.Color

// Palette
var (
	Black     = drawing.ColorBlack
	White     = drawing.ColorWhite
	Green     = drawing.ColorGreen
	Red       = drawing.ColorRed
	Yellow    = drawing.Color{R: 255, G: 255, B: 0, A: 255}
	Gold      = drawing.Color{R: 255, G: 215, B: 0, A: 255}
	LightGrey = drawing.Color{R: 211, G: 211, B: 211, A: 255}
	DarkGrey  = drawing.Color{R: 128, G: 128, B: 128, A: 255}
)

// Surface is the set of primitives a page is drawn with. Text positions
// give the top edge of the line, not the baseline.
type Surface interface {
	Clear(c Color)
	FillRect(x, y, w, h int, c Color)
	DrawRect(x, y, w, h int, c Color)
	DrawRoundRect(x, y, w, h, r int, c Color)
	Text(x, y int, s string, c Color)
	CenteredText(cx, y int, s string, c Color)
}
