package pages

import (
	"strings"

	"hampropdisplay/internal/classify"
	"hampropdisplay/internal/display"
	"hampropdisplay/internal/models"
)

const (
	vhfTitleX     = 10
	vhfResultX    = 20
	vhfTop        = 8
	vhfParagraph  = 6
	vhfLineHeight = lineSpacing
)

var locationLabels = map[string]string{
	"europe":        "Europe",
	"north_america": "North America",
	"northern_hemi": "Northern Hemisphere",
	"europe_6m":     "Europe 6m",
	"europe_4m":     "Europe 4m",
}

// BeautifyLocation maps the feed's region keys to display labels. Unknown
// keys are returned unchanged.
func BeautifyLocation(raw string) string {
	if label, ok := locationLabels[raw]; ok {
		return label
	}
	return raw
}

// AnnotatePhenomenon expands phenomenon names that need explanation
func AnnotatePhenomenon(name string) string {
	if strings.EqualFold(name, "E-Skip") {
		return "E-Skip (Sporadic-E)"
	}
	return name
}

// VHF is page 3: one block per VHF phenomenon
type VHF struct{}

func (VHF) Name() string { return "vhf" }

func (VHF) Render(s display.Surface, snap *models.Snapshot) {
	snap = orEmpty(snap)
	s.Clear(display.Black)

	y := vhfTop
	for i := 0; i < models.VHFCapacity; i++ {
		v := snap.VHF(i)
		if v.Name == "" {
			break
		}

		title := AnnotatePhenomenon(v.Name) + " (" + BeautifyLocation(v.Location) + ")"
		s.Text(vhfTitleX, y, title, display.White)
		y += vhfLineHeight

		r := classify.VHF(v.Condition)
		result := v.Condition
		if r.Label != "" {
			result += "   (" + r.Label + ")"
		}
		s.Text(vhfResultX, y, result, LevelColor(r.Level))
		y += vhfLineHeight + vhfParagraph
	}
}
