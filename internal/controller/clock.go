package controller

import (
	"context"
	"strconv"
	"time"

	"hampropdisplay/internal/logger"
	"hampropdisplay/internal/prefs"
)

const clockLayout = "15:04:05"

// ClockStrings formats now as local and UTC wall-clock readouts. Local
// time is UTC shifted by offset whole hours, wrapping across midnight.
func ClockStrings(now time.Time, offset int) (local, utc string) {
	u := now.UTC()
	return u.Add(time.Duration(offset) * time.Hour).Format(clockLayout), u.Format(clockLayout)
}

// DeriveUTCOffset computes an hour offset from a phone's "HH:MM" local
// time taken at the same moment as utc. The result is wrapped into
// [-12, 12]. It reports false when localHHMM is unusable.
func DeriveUTCOffset(localHHMM string, utc time.Time) (int, bool) {
	if len(localHHMM) < 5 {
		return 0, false
	}
	hour, err := strconv.Atoi(localHHMM[:2])
	if err != nil || hour < 0 || hour > 23 {
		return 0, false
	}

	offset := hour - utc.UTC().Hour()
	if offset < -12 {
		offset += 24
	}
	if offset > 12 {
		offset -= 24
	}
	return offset, true
}

// ResolveUTCOffset picks the offset to display local time with. A stored
// offset wins. Otherwise one derived from the stored phone time is used
// and persisted. Otherwise fallback.
func ResolveUTCOffset(ctx context.Context, p *prefs.Prefs, utcNow time.Time, fallback int) int {
	log := logger.Component("controller")
	if p == nil {
		return fallback
	}

	if offset, ok := p.UTCOffset(); ok {
		log.Info("Loaded saved UTC offset", logger.Fields{"utc_offset": offset})
		return offset
	}

	phone := p.PhoneTime()
	offset, ok := DeriveUTCOffset(phone, utcNow)
	if !ok {
		log.Warn("No usable phone time, using default UTC offset", logger.Fields{"phone_time": phone, "utc_offset": fallback})
		return fallback
	}

	log.Info("Derived UTC offset from phone time", logger.Fields{
		"phone_time": phone,
		"utc":        utcNow.UTC().Format("15:04"),
		"utc_offset": offset,
	})
	if err := p.SetUTCOffset(ctx, offset); err != nil {
		log.Error("Failed to persist UTC offset", err)
	}
	return offset
}
