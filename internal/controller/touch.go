package controller

import "hampropdisplay/internal/display"

// TouchPanel reports the instantaneous touch state
type TouchPanel interface {
	Touched() (pressed bool, x, y int)
}

// ChannelTouch turns queued press requests into touch pulses. Each press
// reads as pressed for one poll and released for the next, so the
// controller sees a distinct rising edge per press.
type ChannelTouch struct {
	presses chan struct{}
	held    bool
}

// NewChannelTouch creates a touch source that queues up to buffer presses
func NewChannelTouch(buffer int) *ChannelTouch {
	if buffer < 1 {
		buffer = 1
	}
	return &ChannelTouch{presses: make(chan struct{}, buffer)}
}

// Press queues a touch. It is safe to call from any goroutine and reports
// false when the queue is full.
func (t *ChannelTouch) Press() bool {
	select {
	case t.presses <- struct{}{}:
		return true
	default:
		return false
	}
}

// Touched must only be called from the control loop
func (t *ChannelTouch) Touched() (bool, int, int) {
	if t.held {
		t.held = false
		return false, 0, 0
	}
	select {
	case <-t.presses:
		t.held = true
		return true, display.Width / 2, display.Height / 2
	default:
		return false, 0, 0
	}
}

// edgeDetector accepts a press only on the released-to-pressed transition
type edgeDetector struct {
	wasPressed bool
}

func (e *edgeDetector) rising(pressed bool) bool {
	edge := pressed && !e.wasPressed
	e.wasPressed = pressed
	return edge
}
