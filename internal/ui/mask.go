package ui

import (
	"image/color"
	"math"
)

const (
	maxAlpha      = 140.0
	glowBase      = 0.35
	glowRange     = 0.65
	intensityBias = 0.75
)

// fillMaskRGBA tints buf by the per-cell intensity in mask. Intensities are
// clamped to [0,1]; zero leaves the pixel fully transparent.
func fillMaskRGBA(buf []byte, mask []float64, tint color.RGBA) {
	for i, v := range mask {
		base := i * 4
		intensity := min(max(v, 0), 1)
		if intensity == 0 {
			buf[base+0] = 0
			buf[base+1] = 0
			buf[base+2] = 0
			buf[base+3] = 0
			continue
		}

		alpha := uint8(math.Round(maxAlpha * math.Pow(intensity, intensityBias)))
		glow := glowBase + glowRange*math.Sqrt(intensity)

		buf[base+0] = scaleComponent(tint.R, glow)
		buf[base+1] = scaleComponent(tint.G, glow)
		buf[base+2] = scaleComponent(tint.B, glow)
		buf[base+3] = alpha
	}
}

func scaleComponent(c uint8, f float64) uint8 {
	return uint8(math.Round(min(float64(c)*f, 255)))
}
