// Package pages draws the propagation snapshot onto a display surface, one
// renderer per page. Renderers only read the snapshot.
package pages

import (
	"hampropdisplay/internal/classify"
	"hampropdisplay/internal/display"
	"hampropdisplay/internal/models"
)

// Count is the number of pages in the touch rotation
const Count = 4

// Renderer draws one full page
type Renderer interface {
	Name() string
	Render(s display.Surface, snap *models.Snapshot)
}

var rotation = [Count]Renderer{
	Summary{},
	Indices{},
	Ionosphere{},
	VHF{},
}

// ForIndex returns the renderer for page i, wrapping i into the rotation
func ForIndex(i int) Renderer {
	i %= Count
	if i < 0 {
		i += Count
	}
	return rotation[i]
}

// LevelColor is the colour a classified value is drawn in
func LevelColor(l classify.Level) display.Color {
	switch l {
	case classify.Good:
		return display.Green
	case classify.Caution:
		return display.Yellow
	case classify.Alert:
		return display.Red
	default:
		return display.White
	}
}

func orEmpty(snap *models.Snapshot) *models.Snapshot {
	if snap == nil {
		return models.NewSnapshot()
	}
	return snap
}
