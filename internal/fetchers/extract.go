package fetchers

import (
	"math"
	"strconv"
	"strings"
)

// LeafFields looks up scalar leaf elements of solardata by tag name. The
// first occurrence of a tag wins. Absent tags and unconvertible text yield
// zero values, never errors.
type LeafFields struct {
	values map[string]string
}

func newLeafFields(leaves []feedLeaf) LeafFields {
	values := make(map[string]string, len(leaves))
	for _, leaf := range leaves {
		if _, seen := values[leaf.XMLName.Local]; !seen {
			values[leaf.XMLName.Local] = strings.TrimSpace(leaf.Text)
		}
	}
	return LeafFields{values: values}
}

// Has reports whether tag was present in the document
func (f LeafFields) Has(tag string) bool {
	_, ok := f.values[tag]
	return ok
}

// Text returns the trimmed text of tag or ""
func (f LeafFields) Text(tag string) string {
	return f.values[tag]
}

// Int returns tag as an integer. Decimal text is truncated toward zero;
// anything else yields 0.
func (f LeafFields) Int(tag string) int {
	return parseInt(f.values[tag])
}

// Float returns tag as a float, 0 when absent, non-numeric or non-finite
func (f LeafFields) Float(tag string) float64 {
	return parseFloat(f.values[tag])
}

func parseInt(s string) int {
	if s == "" {
		return 0
	}
	if n, err := strconv.Atoi(s); err == nil {
		return n
	}
	if v := parseFloat(s); v != 0 && v >= math.MinInt32 && v <= math.MaxInt32 {
		return int(v)
	}
	return 0
}

func parseFloat(s string) float64 {
	if s == "" {
		return 0
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0
	}
	return v
}
