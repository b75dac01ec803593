package pages

import (
	"hampropdisplay/internal/classify"
	"hampropdisplay/internal/display"
	"hampropdisplay/internal/models"
)

const (
	dayCenterX   = 80
	nightCenterX = 240

	bandFrameY      = 12
	bandFrameWidth  = 140
	bandFrameHeight = 143
	bandRowY        = 28
	bandRowSpacing  = 32

	updatedY = 160

	clockFrameY      = 190
	clockFrameHeight = 48
	clockHeaderY     = 179
	clockTextY       = 207

	frameRadius = 8
)

// Summary is page 0: the day/night HF band grid, the feed timestamp and
// the local/UTC clock frames.
type Summary struct{}

func (Summary) Name() string { return "summary" }

func (Summary) Render(s display.Surface, snap *models.Snapshot) {
	snap = orEmpty(snap)
	s.Clear(display.Black)

	s.DrawRoundRect(dayCenterX-70, bandFrameY, bandFrameWidth, bandFrameHeight, frameRadius, display.DarkGrey)
	s.DrawRoundRect(nightCenterX-70, bandFrameY, bandFrameWidth, bandFrameHeight, frameRadius, display.DarkGrey)
	s.FillRect(dayCenterX-27, 0, 54, 20, display.Black)
	s.FillRect(nightCenterX-38, 0, 76, 20, display.Black)
	s.CenteredText(dayCenterX, 2, "DAY", display.LightGrey)
	s.CenteredText(nightCenterX, 2, "NIGHT", display.LightGrey)

	drawBandColumn(s, snap, 0, dayCenterX)
	drawBandColumn(s, snap, models.DayBandCount, nightCenterX)

	s.CenteredText(display.Width/2, updatedY, "Updated: "+snap.UpdatedNormalized, display.LightGrey)

	s.DrawRoundRect(dayCenterX-70, clockFrameY, bandFrameWidth, clockFrameHeight, frameRadius, display.DarkGrey)
	s.DrawRoundRect(nightCenterX-70, clockFrameY, bandFrameWidth, clockFrameHeight, frameRadius, display.DarkGrey)
	s.FillRect(dayCenterX-36, clockFrameY-15, 72, 35, display.Black)
	s.FillRect(nightCenterX-26, clockFrameY-15, 52, 35, display.Black)
	s.CenteredText(dayCenterX, clockHeaderY, "Local", display.LightGrey)
	s.CenteredText(nightCenterX, clockHeaderY, "UTC", display.LightGrey)
}

// drawBandColumn draws slots first..first+3, stopping at the first slot
// without a band name.
func drawBandColumn(s display.Surface, snap *models.Snapshot, first, cx int) {
	for i := 0; i < models.DayBandCount; i++ {
		band := snap.Band(first + i)
		if band.Name == "" {
			return
		}
		s.CenteredText(cx, bandRowY+i*bandRowSpacing, band.Name, LevelColor(classify.Band(band.Condition)))
	}
}

// DrawClock repaints only the two clock readouts. The previous glyphs are
// erased first so the rest of the page is left untouched.
func (Summary) DrawClock(s display.Surface, local, utc string) {
	s.FillRect(dayCenterX-60, clockTextY-2, 120, 17, display.Black)
	s.FillRect(nightCenterX-60, clockTextY-2, 120, 17, display.Black)
	s.CenteredText(dayCenterX, clockTextY, local, display.White)
	s.CenteredText(nightCenterX, clockTextY, utc, display.White)
}
