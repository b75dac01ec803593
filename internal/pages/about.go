package pages

import (
	"fmt"
	"time"

	"hampropdisplay/internal/display"
	"hampropdisplay/internal/models"
)

// AboutHint is the last line of the about page
const AboutHint = "Touch the screen now to hide this page"

// About credits the data source. It is shown once after boot and is not
// part of the touch rotation.
type About struct {
	RefreshInterval time.Duration
}

func (About) Name() string { return "about" }

func (a About) Render(s display.Surface, _ *models.Snapshot) {
	s.Clear(display.Black)

	y := 10
	line := func(text string, c display.Color) {
		if text != "" {
			s.Text(10, y, "   "+text, c)
		}
		y += 16
	}

	line("Solar & Band Data from:", display.White)
	line("https://www.hamqsl.com", display.Yellow)
	line("", display.White)
	line("Maintained by:", display.White)
	line("Dr. Paul Herrman, N0NBH", display.White)
	line("", display.White)
	line("Free for non-commercial use", display.White)
	line("Refreshes every "+describeInterval(a.RefreshInterval), display.White)
	line("", display.White)
	line("Courtesy of HB9IIU", display.White)
	line("Supporting the ham radio community!", display.White)
	line("", display.White)

	s.Text(1, y+10, AboutHint, display.Gold)
}

func describeInterval(d time.Duration) string {
	switch {
	case d <= 0:
		return "15 minutes"
	case d%time.Minute == 0 && d/time.Minute == 1:
		return "minute"
	case d%time.Minute == 0:
		return fmt.Sprintf("%d minutes", d/time.Minute)
	default:
		return d.String()
	}
}
