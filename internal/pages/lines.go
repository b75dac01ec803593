package pages

import (
	"hampropdisplay/internal/classify"
	"hampropdisplay/internal/display"
)

const (
	labelX   = 10
	valueX   = 120
	commentX = 200

	lineTop     = 4
	lineSpacing = 18
)

// lineWriter lays out "label : value (comment)" rows top to bottom
type lineWriter struct {
	s display.Surface
	y int
}

func newLineWriter(s display.Surface) *lineWriter {
	return &lineWriter{s: s, y: lineTop}
}

func (w *lineWriter) plain(label, value string) {
	w.line(label, value, display.White, "")
}

func (w *lineWriter) rated(label, value string, r classify.Rating) {
	w.line(label, value, LevelColor(r.Level), r.Label)
}

func (w *lineWriter) line(label, value string, c display.Color, comment string) {
	w.s.Text(labelX, w.y, label, c)
	w.s.Text(valueX, w.y, ": "+value, c)
	if comment != "" {
		w.s.Text(commentX, w.y, "("+comment+")", c)
	}
	w.y += lineSpacing
}
