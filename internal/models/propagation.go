package models

import "strings"

// Capacity limits of the condition lists. Band slots 0-3 hold day bands and
// 4-7 night bands.
const (
	BandCapacity = 8
	VHFCapacity  = 5
	DayBandCount = BandCapacity / 2
)

// BandCondition is one HF band entry from calculatedconditions
type BandCondition struct {
	Name      string `json:"name"`
	Time      string `json:"time"`
	Condition string `json:"condition"`
}

// VHFCondition is one phenomenon entry from calculatedvhfconditions
type VHFCondition struct {
	Name      string `json:"name"`
	Location  string `json:"location"`
	Condition string `json:"condition"`
}

// Snapshot is the parsed propagation state for one successful refresh. A
// Snapshot is built completely before it is handed to the display and is not
// modified afterwards.
type Snapshot struct {
	Source            string `json:"source"`
	UpdatedRaw        string `json:"updated_raw"`
	UpdatedNormalized string `json:"updated"`

	SolarFlux     int     `json:"solar_flux"`
	AIndex        int     `json:"a_index"`
	KIndex        int     `json:"k_index"`
	KIndexNT      string  `json:"k_index_nt"`
	XRay          string  `json:"xray"`
	Sunspots      int     `json:"sunspots"`
	HeliumLine    float64 `json:"helium_line"`
	ProtonFlux    string  `json:"proton_flux"`
	ElectronFlux  string  `json:"electron_flux"`
	Aurora        int     `json:"aurora"`
	Normalization float64 `json:"normalization"`
	LatDegree     float64 `json:"lat_degree"`
	SolarWind     float64 `json:"solar_wind"`
	MagneticField float64 `json:"magnetic_field"`

	GeomagneticField string `json:"geomagnetic_field"`
	SignalNoise      string `json:"signal_noise"`
	FoF2             string `json:"fof2"`
	MUFFactor        string `json:"muf_factor"`
	MUF              string `json:"muf"`

	bands [BandCapacity]BandCondition
	vhf   []VHFCondition
}

// NewSnapshot returns an empty snapshot with list capacity reserved
func NewSnapshot() *Snapshot {
	return &Snapshot{vhf: make([]VHFCondition, 0, VHFCapacity)}
}

// NightBand reports whether a band time label belongs to the night half
func NightBand(time string) bool {
	return strings.EqualFold(strings.TrimSpace(time), "night")
}

// SetBand stores b in slot i. Slots 0..DayBandCount-1 are day, the rest
// night. It returns false when the slot is out of range or b has no name.
func (s *Snapshot) SetBand(i int, b BandCondition) bool {
	if i < 0 || i >= BandCapacity || strings.TrimSpace(b.Name) == "" {
		return false
	}
	s.bands[i] = b
	return true
}

// AddBand stores b in the next free slot of its half, chosen by b.Time. It
// returns false, storing nothing, when that half is full or b has no name.
func (s *Snapshot) AddBand(b BandCondition) bool {
	first := 0
	if NightBand(b.Time) {
		first = DayBandCount
	}
	for i := first; i < first+DayBandCount; i++ {
		if s.bands[i].Name == "" {
			return s.SetBand(i, b)
		}
	}
	return false
}

// AddVHF appends a VHF entry. It returns false, storing nothing, when the
// list is full or the entry has no name.
func (s *Snapshot) AddVHF(v VHFCondition) bool {
	if len(s.vhf) >= VHFCapacity || strings.TrimSpace(v.Name) == "" {
		return false
	}
	s.vhf = append(s.vhf, v)
	return true
}

// VHFFull reports whether no further VHF entries fit
func (s *Snapshot) VHFFull() bool { return len(s.vhf) >= VHFCapacity }

// Band returns slot i of the band list. Unpopulated slots return the zero
// value, whose empty Name marks "no data".
func (s *Snapshot) Band(i int) BandCondition {
	if s == nil || i < 0 || i >= BandCapacity {
		return BandCondition{}
	}
	return s.bands[i]
}

// VHF returns slot i of the VHF list, zero value when unpopulated
func (s *Snapshot) VHF(i int) VHFCondition {
	if s == nil || i < 0 || i >= len(s.vhf) {
		return VHFCondition{}
	}
	return s.vhf[i]
}

// Bands returns the populated band entries in slot order, day first
func (s *Snapshot) Bands() []BandCondition {
	if s == nil {
		return nil
	}
	var out []BandCondition
	for _, b := range s.bands {
		if b.Name != "" {
			out = append(out, b)
		}
	}
	return out
}

// VHFConditions returns a copy of the populated VHF entries in feed order
func (s *Snapshot) VHFConditions() []VHFCondition {
	if s == nil {
		return nil
	}
	return append([]VHFCondition(nil), s.vhf...)
}

// Clone returns a deep copy
func (s *Snapshot) Clone() *Snapshot {
	if s == nil {
		return nil
	}
	c := *s
	c.vhf = append(make([]VHFCondition, 0, VHFCapacity), s.vhf...)
	return &c
}
