package controller

import "time"

// Status is a point-in-time view of the controller for the status server
type Status struct {
	Page        int       `json:"page"`
	PageName    string    `json:"page_name"`
	AboutShown  bool      `json:"about_shown"`
	Updated     string    `json:"updated"`
	LocalTime   string    `json:"local_time"`
	UTCTime     string    `json:"utc_time"`
	UTCOffset   int       `json:"utc_offset"`
	LastAttempt time.Time `json:"last_attempt"`
	LastSuccess time.Time `json:"last_success"`
	LastError   string    `json:"last_error,omitempty"`
	Refreshes   int       `json:"refreshes"`
	Failures    int       `json:"failures"`
}
