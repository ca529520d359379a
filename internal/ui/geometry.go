package ui

import "image"

const (
	panelPadding   = 12
	headerBaseline = 6
	lineHeight     = 16
	groupSpacing   = 24
	swatchSize     = 10
)

// swatchRect is the legend swatch for the text line whose baseline is y.
func swatchRect(y int) image.Rectangle {
	return image.Rect(panelPadding, y-swatchSize, panelPadding+swatchSize, y)
}
