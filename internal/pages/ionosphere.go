package pages

import (
	"strconv"

	"hampropdisplay/internal/classify"
	"hampropdisplay/internal/display"
	"hampropdisplay/internal/models"
)

// Ionosphere is page 2: geomagnetic field and ionospheric figures
type Ionosphere struct{}

func (Ionosphere) Name() string { return "ionosphere" }

func (Ionosphere) Render(s display.Surface, snap *models.Snapshot) {
	snap = orEmpty(snap)
	s.Clear(display.Black)

	w := newLineWriter(s)
	w.plain("Mag Field", strconv.FormatFloat(snap.MagneticField, 'f', 1, 64))
	w.rated("Geo Field", snap.GeomagneticField, classify.Condition(snap.GeomagneticField))
	w.rated("S/N", snap.SignalNoise, classify.Condition(snap.SignalNoise))
	w.plain("foF2", snap.FoF2)
	w.plain("MUF Fact", snap.MUFFactor)
	w.plain("MUF", snap.MUF)
}
