package display

import "sync"

// OpKind names a recorded primitive
type OpKind string

const (
	OpClear        OpKind = "clear"
	OpFillRect     OpKind = "fill_rect"
	OpDrawRect     OpKind = "draw_rect"
	OpRoundRect    OpKind = "round_rect"
	OpText         OpKind = "text"
	OpCenteredText OpKind = "centered_text"
)

// Op is one recorded draw call
type Op struct {
	Kind  OpKind
	X, Y  int
	W, H  int
	R     int
	Text  string
	Color Color
}

// Recorder is a Surface that keeps every call in order. It draws nothing.
type Recorder struct {
	mu  sync.Mutex
	ops []Op
}

func NewRecorder() *Recorder {
	return &Recorder{}
}

func (r *Recorder) add(op Op) {
	r.mu.Lock()
	r.ops = append(r.ops, op)
	r.mu.Unlock()
}

func (r *Recorder) Clear(c Color) { r.add(Op{Kind: OpClear, Color: c}) }

func (r *Recorder) FillRect(x, y, w, h int, c Color) {
	r.add(Op{Kind: OpFillRect, X: x, Y: y, W: w, H: h, Color: c})
}

func (r *Recorder) DrawRect(x, y, w, h int, c Color) {
	r.add(Op{Kind: OpDrawRect, X: x, Y: y, W: w, H: h, Color: c})
}

func (r *Recorder) DrawRoundRect(x, y, w, h, radius int, c Color) {
	r.add(Op{Kind: OpRoundRect, X: x, Y: y, W: w, H: h, R: radius, Color: c})
}

func (r *Recorder) Text(x, y int, s string, c Color) {
	r.add(Op{Kind: OpText, X: x, Y: y, Text: s, Color: c})
}

func (r *Recorder) CenteredText(cx, y int, s string, c Color) {
	r.add(Op{Kind: OpCenteredText, X: cx, Y: y, Text: s, Color: c})
}

// Ops returns a copy of the recorded calls
func (r *Recorder) Ops() []Op {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]Op, len(r.ops))
	copy(out, r.ops)
	return out
}

// Texts returns the strings of all text calls in draw order
func (r *Recorder) Texts() []string {
	var out []string
	for _, op := range r.Ops() {
		if op.Kind == OpText || op.Kind == OpCenteredText {
			out = append(out, op.Text)
		}
	}
	return out
}

// FindText returns the last text call whose string equals s
func (r *Recorder) FindText(s string) (Op, bool) {
	ops := r.Ops()
	for i := len(ops) - 1; i >= 0; i-- {
		if (ops[i].Kind == OpText || ops[i].Kind == OpCenteredText) && ops[i].Text == s {
			return ops[i], true
		}
	}
	return Op{}, false
}

// Reset discards recorded calls
func (r *Recorder) Reset() {
	r.mu.Lock()
	r.ops = nil
	r.mu.Unlock()
}
