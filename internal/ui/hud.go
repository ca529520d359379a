//go:build ebiten

package ui

import (
	"fmt"
	"image/color"
	"strings"

	"pca-sim/internal/core"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text"
	"golang.org/x/image/font/basicfont"
)

type paletteProvider interface {
	Palette() []color.RGBA
}

var (
	titleColor = color.RGBA{R: 200, G: 200, B: 210, A: 255}
	groupColor = color.RGBA{R: 160, G: 160, B: 170, A: 255}
	valueColor = color.RGBA{R: 220, G: 220, B: 230, A: 255}
	panelColor = color.RGBA{R: 16, G: 16, B: 20, A: 255}
)

// HUD renders the legend and the parameter panel to the right of the
// simulation view.
type HUD struct {
	sim        core.Sim
	width      int
	panel      *ebiten.Image
	lastHeight int
	snapshot   core.ParameterSnapshot
	legend     []string
	palette    []color.RGBA
	counts     []int
	title      string
}

// NewHUD constructs a HUD for the provided simulation and panel width. The
// legend names one entry per palette colour.
func NewHUD(sim core.Sim, width int, legend []string) *HUD {
	h := &HUD{sim: sim, width: max(width, 0), legend: legend}
	if p, ok := sim.(paletteProvider); ok {
		h.palette = p.Palette()
	}
	h.counts = make([]int, len(h.palette))
	h.title = strings.ToUpper(sim.Name())
	return h
}

// Update refreshes the cached snapshot and the per-colour tallies.
func (h *HUD) Update(day int) {
	if h == nil {
		return
	}
	if provider, ok := h.sim.(core.ParameterSnapshotProvider); ok {
		h.snapshot = provider.Parameters()
	}
	clear(h.counts)
	for _, c := range h.sim.Cells() {
		if int(c) < len(h.counts) {
			h.counts[c]++
		}
	}
	h.title = fmt.Sprintf("%s  day %d", strings.ToUpper(h.sim.Name()), day)
}

// Draw paints the HUD panel anchored to the right edge of the simulation view.
func (h *HUD) Draw(screen *ebiten.Image, offsetX int, scale int) {
	if h == nil || h.width <= 0 {
		return
	}
	height := h.sim.Size().H * max(scale, 1)
	if height <= 0 {
		return
	}
	if h.panel == nil || h.lastHeight != height {
		h.panel = ebiten.NewImage(h.width, height)
		h.lastHeight = height
	}
	h.panel.Fill(panelColor)

	face := basicfont.Face7x13
	y := panelPadding + headerBaseline
	text.Draw(h.panel, h.title, face, panelPadding, y, titleColor)

	for i, col := range h.palette {
		y += lineHeight
		h.panel.SubImage(swatchRect(y)).(*ebiten.Image).Fill(col)
		name := fmt.Sprintf("#%d", i)
		if i < len(h.legend) {
			name = h.legend[i]
		}
		text.Draw(h.panel, fmt.Sprintf("%-12s %6d", name, h.counts[i]), face, panelPadding+swatchSize+6, y, valueColor)
	}

	for _, group := range h.snapshot.Groups {
		y += groupSpacing
		text.Draw(h.panel, group.Name, face, panelPadding, y, groupColor)
		for _, p := range group.Params {
			y += lineHeight
			if y > height {
				break
			}
			text.Draw(h.panel, fmt.Sprintf("%s: %s", p.Label, p.Value), face, panelPadding, y, valueColor)
		}
	}

	op := &ebiten.DrawImageOptions{}
	op.GeoM.Translate(float64(offsetX), 0)
	screen.DrawImage(h.panel, op)
}
