package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"hampropdisplay/internal/controller"
	"hampropdisplay/internal/logger"
	"hampropdisplay/internal/models"
	"hampropdisplay/internal/storage"
)

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

// HandleRoot redirects to the current frame
func (s *Server) HandleRoot(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		http.NotFound(w, r)
		return
	}
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}
	w.Header().Set("Location", "/frame.png")
	w.WriteHeader(http.StatusFound)
}

// HandleHealth provides health check endpoint. A failing feed degrades
// the status but the process stays healthy since it keeps the last data.
func (s *Server) HandleHealth(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	st := s.Status.Status()
	status, feed := "healthy", "ok"
	switch {
	case st.LastSuccess.IsZero():
		status, feed = "degraded", "no data"
	case st.LastError != "":
		status, feed = "degraded", "stale"
	}

	health := map[string]interface{}{
		"status":    status,
		"version":   s.Version,
		"timestamp": time.Now().UTC().Format(time.RFC3339),
		"page":      st.PageName,
		"checks": map[string]string{
			"feed": feed,
		},
	}
	if !st.LastSuccess.IsZero() {
		health["last_refresh"] = st.LastSuccess.UTC().Format(time.RFC3339)
	}
	if st.LastError != "" {
		health["last_error"] = st.LastError
	}

	writeJSON(w, http.StatusOK, health)
}

// HandleStatus reports controller state and the snapshot on display
func (s *Server) HandleStatus(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	response := map[string]interface{}{
		"controller": s.Status.Status(),
	}
	if snap := s.Status.Model(); snap != nil {
		response["snapshot"] = snap
		response["bands"] = emptyIfNil(snap.Bands())
		response["vhf"] = emptyIfNil(snap.VHFConditions())
	}
	writeJSON(w, http.StatusOK, response)
}

func emptyIfNil[T models.BandCondition | models.VHFCondition](list []T) []T {
	if list == nil {
		return []T{}
	}
	return list
}

// HandleFrame serves the latest frame as PNG, or the last frame of one
// page with ?page=<name>
func (s *Server) HandleFrame(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}
	if s.Frames == nil {
		http.Error(w, "Frame capture disabled", http.StatusNotFound)
		return
	}

	var (
		data []byte
		ok   bool
		page string
	)
	if page = r.URL.Query().Get("page"); page != "" {
		data, ok = s.Frames.Page(page)
	} else {
		data, page, _, ok = s.Frames.Latest()
	}
	if !ok {
		http.Error(w, "No frame rendered yet", http.StatusServiceUnavailable)
		return
	}

	w.Header().Set("Content-Type", "image/png")
	w.Header().Set("Cache-Control", "no-store")
	w.Header().Set("X-Display-Page", page)
	w.Write(data)
}

// HandleTouch queues a simulated screen touch
func (s *Server) HandleTouch(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}
	if s.Touch == nil {
		http.Error(w, "Touch injection disabled", http.StatusNotFound)
		return
	}

	if !s.Touch.Press() {
		s.log.Warn("Touch queue full, rejecting touch")
		writeJSON(w, http.StatusTooManyRequests, map[string]string{
			"error":  "touch queue full",
			"status": "rejected",
		})
		return
	}

	s.log.Debug("Touch queued", logger.Fields{"remote": r.RemoteAddr})
	writeJSON(w, http.StatusAccepted, map[string]string{"status": "queued"})
}

// HandlePhoneTime stores the phone's local time ("time=HH:MM"). The
// offset derived from it takes effect on the next start.
func (s *Server) HandlePhoneTime(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}
	if s.Prefs == nil {
		http.Error(w, "Preferences disabled", http.StatusNotFound)
		return
	}

	hhmm := strings.TrimSpace(r.FormValue("time"))
	offset, ok := controller.DeriveUTCOffset(hhmm, time.Now())
	if !ok {
		http.Error(w, "time must be HH:MM", http.StatusBadRequest)
		return
	}

	if err := s.Prefs.SetPhoneTime(r.Context(), hhmm); err != nil {
		s.log.Error("Failed to store phone time", err)
		http.Error(w, "Failed to store phone time", http.StatusInternalServerError)
		return
	}

	writeJSON(w, http.StatusAccepted, map[string]interface{}{
		"status":     "stored",
		"phone_time": hhmm,
		"utc_offset": offset,
		"applies":    "next start",
	})
}

// HandleListSnapshots lists archived frames, newest first
func (s *Server) HandleListSnapshots(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}
	if s.Storage == nil {
		http.Error(w, "Storage disabled", http.StatusNotFound)
		return
	}

	// Get limit from query parameter (default 10)
	limit := 10
	if limitStr := r.URL.Query().Get("limit"); limitStr != "" {
		if parsed, err := fmt.Sscanf(limitStr, "%d", &limit); err != nil || parsed != 1 || limit < 1 {
			limit = 10
		}
		if limit > 100 {
			limit = 100 // Cap at 100
		}
	}

	files, err := s.Storage.ListDir(r.Context(), storage.SnapshotDir, true)
	if err != nil {
		s.log.Error("Failed to list snapshots", err)
		http.Error(w, "Failed to list snapshots: "+err.Error(), http.StatusInternalServerError)
		return
	}

	// Paths embed the timestamp, so reverse lexical order is newest first
	snapshots := make([]string, 0, limit)
	for i := len(files) - 1; i >= 0 && len(snapshots) < limit; i-- {
		snapshots = append(snapshots, files[i])
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"snapshots": snapshots,
		"count":     len(snapshots),
		"timestamp": time.Now().UTC().Format(time.RFC3339),
	})
}

// HandleSnapshotFile serves one archived frame from storage
func (s *Server) HandleSnapshotFile(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}
	if s.Storage == nil {
		http.Error(w, "Storage disabled", http.StatusNotFound)
		return
	}

	filePath := strings.TrimPrefix(r.URL.Path, "/")
	if filePath == storage.SnapshotDir+"/" {
		http.Error(w, "File path required", http.StatusBadRequest)
		return
	}

	// Security check: prevent directory traversal
	if strings.Contains(filePath, "..") {
		http.Error(w, "Invalid file path", http.StatusBadRequest)
		return
	}

	data, err := s.Storage.GetFile(r.Context(), filePath)
	if errors.Is(err, storage.ErrNotExist) {
		http.Error(w, "File not found", http.StatusNotFound)
		return
	}
	if err != nil {
		s.log.Error("Failed to get snapshot from storage", err, logger.Fields{"path": filePath})
		http.Error(w, "Failed to read file", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", storage.GetContentType(filePath))
	w.Write(data)
}
