package sceneutil

import (
	"math"
	"strconv"
)

const (
	// goldenAngle spaces consecutive hues as far apart as possible.
	goldenAngle = 137.508

	pastelSaturation = 70
	pastelLightness  = 80
)

// HSL is a colour in the hue/saturation/lightness model. Saturation and
// Lightness are percentages.
type HSL struct {
	Hue        float64
	Saturation float64
	Lightness  float64
}

// Color returns the pastel highlight colour for the scene created at index.
func Color(index int) HSL {
	hue := math.Mod(float64(index)*goldenAngle, 360)
	if hue < 0 {
		hue += 360
	}
	return HSL{Hue: hue, Saturation: pastelSaturation, Lightness: pastelLightness}
}

// String renders the colour in CSS form, e.g. "hsl(137.508, 70%, 80%)".
func (c HSL) String() string {
	return "hsl(" + formatComponent(c.Hue) + ", " +
		formatComponent(c.Saturation) + "%, " +
		formatComponent(c.Lightness) + "%)"
}

// formatComponent rounds away float noise from the modulo (52.52400000000003)
// while keeping the golden-angle fraction.
func formatComponent(v float64) string {
	return strconv.FormatFloat(math.Round(v*1e6)/1e6, 'f', -1, 64)
}
