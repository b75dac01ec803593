package storage

import (
	"fmt"
	"path"
	"strings"
	"time"
)

// SnapshotDir is where rendered frames are kept
const SnapshotDir = "snapshots"

// GenerateSnapshotPath returns the storage path of a rendered page frame.
// Format: snapshots/YYYY/MM/DD/<page>-YYYYMMDD-HHMMSS.png
func GenerateSnapshotPath(timestamp time.Time, page string) string {
	ts := timestamp.UTC()
	return path.Join(SnapshotDir,
		fmt.Sprintf("%04d/%02d/%02d", ts.Year(), ts.Month(), ts.Day()),
		fmt.Sprintf("%s-%s.png", page, ts.Format("20060102-150405")))
}

// GetContentType determines the MIME content type based on file extension
func GetContentType(filename string) string {
	switch strings.ToLower(path.Ext(filename)) {
	case ".json":
		return "application/json"
	case ".txt":
		return "text/plain"
	case ".xml":
		return "application/xml"
	case ".png":
		return "image/png"
	case ".jpg", ".jpeg":
		return "image/jpeg"
	default:
		return "application/octet-stream"
	}
}
