package render

import (
	"github.com/gdamore/tcell/v2"
)

// Scene palette
var (
	RgbBackground = tcell.NewRGBColor(10, 14, 28)    // Night sky
	RgbSnow       = tcell.NewRGBColor(170, 180, 200) // Cold gray-white
	RgbSnowFar    = tcell.NewRGBColor(90, 96, 120)   // Distant flakes
	RgbMote       = tcell.NewRGBColor(255, 214, 120) // Warm gold
	RgbMoteDim    = tcell.NewRGBColor(150, 120, 60)  // Small motes
	RgbBurst      = tcell.NewRGBColor(255, 250, 220) // Near white spark
	RgbStar       = tcell.NewRGBColor(255, 230, 0)   // Apex star
	RgbStarIdle   = tcell.NewRGBColor(140, 120, 40)  // Apex before finale
	RgbHoldLocked = tcell.NewRGBColor(80, 84, 100)   // Not yet reachable

	RgbStatusBar  = tcell.NewRGBColor(255, 255, 255)
	RgbStatusBg   = tcell.NewRGBColor(30, 36, 60)
	RgbHelpText   = tcell.NewRGBColor(140, 140, 160)
	RgbBannerText = tcell.NewRGBColor(0, 0, 0)
	RgbBannerBg   = tcell.NewRGBColor(255, 214, 120)
	RgbAttemptOK  = tcell.NewRGBColor(144, 238, 144)
	RgbAttemptBad = tcell.NewRGBColor(255, 80, 80)
)

// HoldColor converts a 0xRRGGBB hold color
func HoldColor(c uint32) tcell.Color {
	return tcell.NewHexColor(int32(c & 0xffffff))
}

// dimColor scales a color toward black by f in [0,1]
func dimColor(c tcell.Color, f float64) tcell.Color {
	r, g, b := c.RGB()
	return tcell.NewRGBColor(int32(float64(r)*f), int32(float64(g)*f), int32(float64(b)*f))
}
