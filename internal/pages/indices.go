package pages

import (
	"strconv"

	"hampropdisplay/internal/classify"
	"hampropdisplay/internal/display"
	"hampropdisplay/internal/models"
)

// Indices is page 1: solar and geomagnetic indices
type Indices struct{}

func (Indices) Name() string { return "indices" }

func (Indices) Render(s display.Surface, snap *models.Snapshot) {
	snap = orEmpty(snap)
	s.Clear(display.Black)

	w := newLineWriter(s)
	w.rated("Solar Flux", strconv.Itoa(snap.SolarFlux), classify.SolarFlux(snap.SolarFlux))
	w.rated("A Index", strconv.Itoa(snap.AIndex), classify.AIndex(snap.AIndex))
	w.rated("K Index", strconv.Itoa(snap.KIndex), classify.KIndex(snap.KIndex))
	w.plain("K Index NT", snap.KIndexNT)
	w.rated("X-Ray", snap.XRay, classify.XRay(snap.XRay))
	w.plain("Sunspots", strconv.Itoa(snap.Sunspots))
	w.plain("Helium Line", strconv.FormatFloat(snap.HeliumLine, 'f', 1, 64))
	w.plain("Proton Flux", snap.ProtonFlux)
	w.plain("Electron Flux", snap.ElectronFlux)
	w.plain("Aurora", strconv.Itoa(snap.Aurora))
	w.plain("Normalization", strconv.FormatFloat(snap.Normalization, 'f', 2, 64))
	w.plain("Lat Degree", strconv.FormatFloat(snap.LatDegree, 'f', 2, 64))
	w.plain("Solar Wind", strconv.FormatFloat(snap.SolarWind, 'f', 1, 64))
}
