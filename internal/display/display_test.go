package display

import (
	"bytes"
	"image/color"
	"image/png"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func rgba(c Color) color.RGBA {
	return color.RGBA{R: c.R, G: c.G, B: c.B, A: c.A}
}

func TestFramebufferStartsBlack(t *testing.T) {
	fb := NewFramebuffer(Width, Height)
	img := fb.Snapshot()
	assert.Equal(t, Width, img.Bounds().Dx())
	assert.Equal(t, Height, img.Bounds().Dy())
	assert.Equal(t, rgba(Black), img.RGBAAt(0, 0))
	assert.Equal(t, rgba(Black), img.RGBAAt(Width-1, Height-1))
}

func TestFramebufferFillRectClipped(t *testing.T) {
	fb := NewFramebuffer(20, 20)
	fb.FillRect(15, 15, 10, 10, Red)
	img := fb.Snapshot()
	assert.Equal(t, rgba(Red), img.RGBAAt(19, 19))
	assert.Equal(t, rgba(Red), img.RGBAAt(15, 15))
	assert.Equal(t, rgba(Black), img.RGBAAt(14, 14))

	// fully outside is a no-op
	fb.FillRect(100, 100, 5, 5, Green)
}

func TestFramebufferDrawRectOutline(t *testing.T) {
	fb := NewFramebuffer(20, 20)
	fb.DrawRect(2, 2, 10, 6, White)
	img := fb.Snapshot()
	assert.Equal(t, rgba(White), img.RGBAAt(2, 2))
	assert.Equal(t, rgba(White), img.RGBAAt(11, 2))
	assert.Equal(t, rgba(White), img.RGBAAt(2, 7))
	assert.Equal(t, rgba(White), img.RGBAAt(11, 7))
	assert.Equal(t, rgba(Black), img.RGBAAt(5, 5), "interior stays empty")
}

func TestFramebufferRoundRectCorners(t *testing.T) {
	fb := NewFramebuffer(40, 40)
	fb.DrawRoundRect(0, 0, 40, 40, 8, DarkGrey)
	img := fb.Snapshot()
	assert.Equal(t, rgba(Black), img.RGBAAt(0, 0), "corner pixel is cut")
	assert.Equal(t, rgba(DarkGrey), img.RGBAAt(20, 0))
	assert.Equal(t, rgba(DarkGrey), img.RGBAAt(0, 20))
	assert.Equal(t, rgba(DarkGrey), img.RGBAAt(39, 20))
	assert.Equal(t, rgba(DarkGrey), img.RGBAAt(20, 39))
}

func TestFramebufferTextPaintsPixels(t *testing.T) {
	fb := NewFramebuffer(Width, Height)
	fb.Text(10, 10, "MUF", Green)
	img := fb.Snapshot()

	painted := 0
	for y := 10; y < 10+13; y++ {
		for x := 10; x < 10+3*7; x++ {
			if img.RGBAAt(x, y) == rgba(Green) {
				painted++
			}
		}
	}
	assert.Greater(t, painted, 0)
	assert.Equal(t, 21, fb.TextWidth("MUF"))
}

func TestFramebufferCenteredText(t *testing.T) {
	fb := NewFramebuffer(100, 20)
	fb.CenteredText(50, 2, "DAY", White)
	img := fb.Snapshot()
	for x := 0; x < 35; x++ {
		for y := 0; y < 20; y++ {
			require.Equal(t, rgba(Black), img.RGBAAt(x, y), "pixel %d,%d left of text", x, y)
		}
	}
}

func TestFramebufferPNG(t *testing.T) {
	fb := NewFramebuffer(Width, Height)
	fb.FillRect(0, 0, 10, 10, Yellow)
	data, err := fb.PNG()
	require.NoError(t, err)

	img, err := png.Decode(bytes.NewReader(data))
	require.NoError(t, err)
	assert.Equal(t, Width, img.Bounds().Dx())
	r, g, b, _ := img.At(5, 5).RGBA()
	assert.Equal(t, uint32(0xffff), r)
	assert.Equal(t, uint32(0xffff), g)
	assert.Equal(t, uint32(0), b)
}

func TestRecorder(t *testing.T) {
	r := NewRecorder()
	r.Clear(Black)
	r.Text(1, 2, "a", White)
	r.CenteredText(3, 4, "b", Green)
	r.Text(5, 6, "a", Red)
	r.DrawRoundRect(0, 0, 10, 10, 2, DarkGrey)

	assert.Len(t, r.Ops(), 5)
	assert.Equal(t, []string{"a", "b", "a"}, r.Texts())

	op, ok := r.FindText("a")
	require.True(t, ok)
	assert.Equal(t, Red, op.Color, "last match wins")

	_, ok = r.FindText("missing")
	assert.False(t, ok)

	r.Reset()
	assert.Empty(t, r.Ops())
}
