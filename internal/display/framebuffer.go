package display

import (
	"bytes"
	"image"
	"image/color"
	"image/draw"
	"image/png"
	"io"
	"sync"

	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
)

// Framebuffer rasterises draw calls into an RGBA image using a fixed
// 7x13 bitmap face.
type Framebuffer struct {
	mu   sync.Mutex
	img  *image.RGBA
	face font.Face
}

// NewFramebuffer returns a black w x h framebuffer
func NewFramebuffer(w, h int) *Framebuffer {
	fb := &Framebuffer{
		img:  image.NewRGBA(image.Rect(0, 0, w, h)),
		face: basicfont.Face7x13,
	}
	fb.Clear(Black)
	return fb
}

// Bounds returns the framebuffer rectangle
func (f *Framebuffer) Bounds() image.Rectangle {
	return f.img.Bounds()
}

func (f *Framebuffer) Clear(c Color) {
	f.mu.Lock()
	defer f.mu.Unlock()
	draw.Draw(f.img, f.img.Bounds(), image.NewUniform(c), image.Point{}, draw.Src)
}

func (f *Framebuffer) FillRect(x, y, w, h int, c Color) {
	f.mu.Lock()
	defer f.mu.Unlock()
	r := image.Rect(x, y, x+w, y+h).Intersect(f.img.Bounds())
	if r.Empty() {
		return
	}
	draw.Draw(f.img, r, image.NewUniform(c), image.Point{}, draw.Src)
}

func (f *Framebuffer) DrawRect(x, y, w, h int, c Color) {
	f.DrawRoundRect(x, y, w, h, 0, c)
}

// DrawRoundRect outlines a rectangle whose corners are quarter circles of
// radius r. r is clamped to half the shorter side.
func (f *Framebuffer) DrawRoundRect(x, y, w, h, r int, c Color) {
	if w <= 0 || h <= 0 {
		return
	}
	if r < 0 {
		r = 0
	}
	if m := min(w, h) / 2; r > m {
		r = m
	}

	f.mu.Lock()
	defer f.mu.Unlock()

	x1, y1 := x+w-1, y+h-1
	for px := x + r; px <= x1-r; px++ {
		f.set(px, y, c)
		f.set(px, y1, c)
	}
	for py := y + r; py <= y1-r; py++ {
		f.set(x, py, c)
		f.set(x1, py, c)
	}
	if r == 0 {
		return
	}

	// Midpoint circle, one octant mirrored into the four corners
	cx0, cy0 := x+r, y+r
	cx1, cy1 := x1-r, y1-r
	dx, dy, d := r, 0, 1-r
	for dx >= dy {
		f.set(cx1+dx, cy1+dy, c)
		f.set(cx1+dy, cy1+dx, c)
		f.set(cx0-dx, cy1+dy, c)
		f.set(cx0-dy, cy1+dx, c)
		f.set(cx0-dx, cy0-dy, c)
		f.set(cx0-dy, cy0-dx, c)
		f.set(cx1+dx, cy0-dy, c)
		f.set(cx1+dy, cy0-dx, c)
		dy++
		if d < 0 {
			d += 2*dy + 1
		} else {
			dx--
			d += 2*(dy-dx) + 1
		}
	}
}

func (f *Framebuffer) Text(x, y int, s string, c Color) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.text(x, y, s, c)
}

func (f *Framebuffer) CenteredText(cx, y int, s string, c Color) {
	f.mu.Lock()
	defer f.mu.Unlock()
	w := font.MeasureString(f.face, s).Round()
	f.text(cx-w/2, y, s, c)
}

// TextWidth returns the advance of s in pixels
func (f *Framebuffer) TextWidth(s string) int {
	return font.MeasureString(f.face, s).Round()
}

func (f *Framebuffer) text(x, y int, s string, c Color) {
	d := font.Drawer{
		Dst:  f.img,
		Src:  image.NewUniform(c),
		Face: f.face,
		Dot:  fixed.Point26_6{X: fixed.I(x), Y: fixed.I(y) + f.face.Metrics().Ascent},
	}
	d.DrawString(s)
}

func (f *Framebuffer) set(x, y int, c Color) {
	if image.Pt(x, y).In(f.img.Rect) {
		f.img.SetRGBA(x, y, color.RGBA{R: c.R, G: c.G, B: c.B, A: c.A})
	}
}

// Snapshot returns a copy of the current frame
func (f *Framebuffer) Snapshot() *image.RGBA {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := image.NewRGBA(f.img.Bounds())
	copy(out.Pix, f.img.Pix)
	return out
}

// EncodePNG writes the current frame as PNG
func (f *Framebuffer) EncodePNG(w io.Writer) error {
	return png.Encode(w, f.Snapshot())
}

// PNG returns the current frame PNG-encoded
func (f *Framebuffer) PNG() ([]byte, error) {
	var buf bytes.Buffer
	if err := f.EncodePNG(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
