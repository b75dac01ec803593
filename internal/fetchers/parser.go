package fetchers

import (
	"strings"

	"hampropdisplay/internal/logger"
	"hampropdisplay/internal/models"
)

// Parse decodes a feed document into a new Snapshot. Only an unreadable
// document or one without root/solardata fails; missing or malformed leaf
// fields fall back to zero values. Band and phenomenon elements lacking a
// required attribute or text are skipped. Bands are placed by their time
// label, day bands in slots 0-3 and night bands in 4-7.
func Parse(raw []byte) (*models.Snapshot, error) {
	doc, err := decodeDocument(raw)
	if err != nil {
		return nil, err
	}

	sd := doc.SolarData
	f := newLeafFields(sd.Leaves)
	snap := models.NewSnapshot()

	snap.Source = f.Text("source")
	snap.UpdatedRaw = f.Text("updated")
	snap.UpdatedNormalized = NormalizeTimestamp(snap.UpdatedRaw)
	snap.SolarFlux = f.Int("solarflux")
	snap.AIndex = f.Int("aindex")
	snap.KIndex = f.Int("kindex")
	snap.KIndexNT = f.Text("kindexnt")
	snap.XRay = f.Text("xray")
	snap.Sunspots = f.Int("sunspots")
	snap.HeliumLine = f.Float("heliumline")
	snap.ProtonFlux = f.Text("protonflux")
	snap.ElectronFlux = f.Text("electonflux") // sic, the feed's spelling
	snap.Aurora = f.Int("aurora")
	snap.Normalization = f.Float("normalization")
	snap.LatDegree = f.Float("latdegree")
	snap.SolarWind = f.Float("solarwind")
	snap.MagneticField = f.Float("magneticfield")
	snap.GeomagneticField = f.Text("geomagfield")
	snap.SignalNoise = f.Text("signalnoise")
	snap.FoF2 = f.Text("fof2")
	snap.MUFFactor = f.Text("muffactor")
	snap.MUF = f.Text("muf")

	log := logger.Component("parser")
	skipped := 0

	// Each band keeps its position within its half, so a skipped element
	// leaves a gap rather than pulling later bands into the wrong column.
	var seen [2]int
	for i, b := range sd.CalculatedConditions.Bands {
		half := bandHalf(b.Time, i)
		pos := seen[half]
		seen[half]++
		if pos >= models.DayBandCount {
			continue
		}
		entry := models.BandCondition{
			Name:      strings.TrimSpace(b.Name),
			Time:      strings.TrimSpace(b.Time),
			Condition: strings.TrimSpace(b.Condition),
		}
		if entry.Name == "" || entry.Time == "" || entry.Condition == "" {
			skipped++
			continue
		}
		snap.SetBand(half*models.DayBandCount+pos, entry)
	}

	for _, p := range sd.CalculatedVHFConditions.Phenomena {
		if snap.VHFFull() {
			break
		}
		entry := models.VHFCondition{
			Name:      strings.TrimSpace(p.Name),
			Location:  strings.TrimSpace(p.Location),
			Condition: strings.TrimSpace(p.Condition),
		}
		if entry.Name == "" || entry.Location == "" || entry.Condition == "" {
			skipped++
			continue
		}
		snap.AddVHF(entry)
	}

	if skipped > 0 {
		log.Warn("Skipped incomplete condition elements", logger.Fields{"count": skipped})
	}
	if log.Enabled(logger.DEBUG) {
		log.Debug("Parsed solar data", dumpFields(snap))
	}

	return snap, nil
}

// bandHalf returns 0 for a day band and 1 for a night band. Without a
// usable time label the feed's day-then-night order decides.
func bandHalf(time string, index int) int {
	switch {
	case models.NightBand(time):
		return 1
	case strings.EqualFold(strings.TrimSpace(time), "day"):
		return 0
	case index < models.DayBandCount:
		return 0
	default:
		return 1
	}
}

// dumpFields flattens a snapshot for a debug log entry
func dumpFields(s *models.Snapshot) logger.Fields {
	fields := logger.Fields{
		"source":            s.Source,
		"updated":           s.UpdatedNormalized,
		"solar_flux":        s.SolarFlux,
		"a_index":           s.AIndex,
		"k_index":           s.KIndex,
		"k_index_nt":        s.KIndexNT,
		"xray":              s.XRay,
		"sunspots":          s.Sunspots,
		"helium_line":       s.HeliumLine,
		"proton_flux":       s.ProtonFlux,
		"electron_flux":     s.ElectronFlux,
		"aurora":            s.Aurora,
		"normalization":     s.Normalization,
		"lat_degree":        s.LatDegree,
		"solar_wind":        s.SolarWind,
		"magnetic_field":    s.MagneticField,
		"geomagnetic_field": s.GeomagneticField,
		"signal_noise":      s.SignalNoise,
		"fof2":              s.FoF2,
		"muf_factor":        s.MUFFactor,
		"muf":               s.MUF,
	}

	bands := make([]string, 0, models.BandCapacity)
	for _, b := range s.Bands() {
		bands = append(bands, "["+b.Time+"] "+b.Name+": "+b.Condition)
	}
	vhf := make([]string, 0, models.VHFCapacity)
	for _, v := range s.VHFConditions() {
		vhf = append(vhf, v.Name+" ("+v.Location+"): "+v.Condition)
	}
	fields["bands"] = bands
	fields["vhf"] = vhf
	return fields
}
