package fetchers

import "strings"

// NormalizeTimestamp rewrites the feed's "31 Jul 2025 1321 GMT" form into
// "31 Jul 2025 13:21 UTC". Input without four digits and a space before
// "GMT" is returned unchanged.
func NormalizeTimestamp(raw string) string {
	gmtPos := strings.Index(raw, "GMT")
	if gmtPos < 5 || raw[gmtPos-1] != ' ' {
		return raw
	}

	// HHMM sits between the date and the space before GMT. All four bytes
	// are ASCII digits, so the cut never splits a multi-byte rune.
	timePart := raw[gmtPos-5 : gmtPos-1]
	for i := 0; i < len(timePart); i++ {
		if timePart[i] < '0' || timePart[i] > '9' {
			return raw
		}
	}

	datePart := strings.TrimSpace(raw[:gmtPos-5])
	return datePart + " " + timePart[:2] + ":" + timePart[2:] + " UTC"
}
