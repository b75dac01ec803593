// Package classify maps raw propagation metrics to a display level and a
// short human label. Every function is total over its input.
package classify

import "strings"

// Level is the colour class a value is drawn in
type Level int

const (
	Neutral Level = iota
	Good
	Caution
	Alert
)

func (l Level) String() string {
	switch l {
	case Good:
		return "good"
	case Caution:
		return "caution"
	case Alert:
		return "alert"
	default:
		return "neutral"
	}
}

// Rating pairs a level with its annotation. Label may be empty.
type Rating struct {
	Level Level
	Label string
}

// KIndex rates the planetary K-index
func KIndex(k int) Rating {
	switch {
	case k >= 7:
		return Rating{Alert, "Severe"}
	case k >= 5:
		return Rating{Alert, "Storm Risk"}
	case k >= 4:
		return Rating{Caution, "Unsettled"}
	case k >= 2:
		return Rating{Caution, "Quiet"}
	default:
		return Rating{Good, "Very Quiet"}
	}
}

// AIndex rates the daily A-index
func AIndex(a int) Rating {
	switch {
	case a >= 30:
		return Rating{Alert, "Disturbed"}
	case a >= 20:
		return Rating{Caution, "Unsettled"}
	case a >= 10:
		return Rating{Caution, "Normal"}
	default:
		return Rating{Good, "Quiet"}
	}
}

// SolarFlux rates the 10.7cm solar flux index
func SolarFlux(sfi int) Rating {
	switch {
	case sfi >= 150:
		return Rating{Good, "Excellent"}
	case sfi >= 100:
		return Rating{Caution, "Good"}
	default:
		return Rating{Alert, "Poor"}
	}
}

// XRay rates an X-ray flare class such as "C1.5" by its first letter.
// The match is case-sensitive, as the feed emits upper case.
func XRay(class string) Rating {
	switch {
	case strings.HasPrefix(class, "X"):
		return Rating{Alert, "Extreme"}
	case strings.HasPrefix(class, "M"):
		return Rating{Caution, "Moderate"}
	case strings.HasPrefix(class, "C"):
		return Rating{Caution, "Low"}
	default:
		return Rating{Good, "Quiet"}
	}
}

// Condition rates free-text conditions such as the geomagnetic field or
// signal noise summary
func Condition(text string) Rating {
	switch {
	case strings.EqualFold(text, "Good"):
		return Rating{Good, "Good"}
	case strings.EqualFold(text, "Fair"):
		return Rating{Caution, "Fair"}
	case strings.EqualFold(text, "Poor"):
		return Rating{Alert, "Poor"}
	}

	lower := strings.ToLower(text)
	switch {
	case strings.Contains(lower, "storm"):
		return Rating{Alert, "Storm"}
	case strings.Contains(lower, "unsettled"):
		return Rating{Caution, "Unsettled"}
	default:
		return Rating{Neutral, ""}
	}
}

// VHF rates a VHF phenomenon status. "ES" is matched case-sensitively so
// that words merely containing "es" are not taken for Sporadic-E.
func VHF(text string) Rating {
	switch {
	case strings.EqualFold(text, "Band Open"):
		return Rating{Good, "Excellent"}
	case strings.EqualFold(text, "Band Weak"):
		return Rating{Caution, "Marginal"}
	case strings.EqualFold(text, "Band Closed"):
		return Rating{Alert, "No Propagation"}
	case strings.Contains(text, "ES"):
		return Rating{Good, "Sporadic-E Active"}
	default:
		return Rating{Neutral, ""}
	}
}

// Band rates an HF band condition for the summary grid. Anything that is
// not Good or Fair, including no data, is drawn as Alert.
func Band(condition string) Level {
	switch {
	case strings.EqualFold(condition, "Good"):
		return Good
	case strings.EqualFold(condition, "Fair"):
		return Caution
	default:
		return Alert
	}
}
