//go:build ebiten

package ui

import (
	"image/color"

	"pca-sim/internal/core"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

type loadFieldProvider interface {
	VirusField() []float64
	AntibodyField() []float64
}

var (
	virusTint    = color.RGBA{R: 255, G: 70, B: 40}
	antibodyTint = color.RGBA{R: 64, G: 164, B: 223}
)

// Overlay tints the category view with the continuous virus and antibody
// loads. Keys 1 and 2 toggle the layers.
type Overlay struct {
	sim          core.Sim
	scale        int
	showVirus    bool
	showAntibody bool
	maskImg      *ebiten.Image
	maskBuf      []byte
}

// NewOverlay constructs a new overlay instance.
func NewOverlay(sim core.Sim, scale int) *Overlay {
	return &Overlay{sim: sim, scale: max(scale, 1)}
}

// Update handles the layer toggles.
func (o *Overlay) Update() {
	if inpututil.IsKeyJustPressed(ebiten.KeyDigit1) {
		o.showVirus = !o.showVirus
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyDigit2) {
		o.showAntibody = !o.showAntibody
	}
}

// Draw renders the enabled layers onto the screen.
func (o *Overlay) Draw(screen *ebiten.Image) {
	provider, ok := o.sim.(loadFieldProvider)
	if !ok || (!o.showVirus && !o.showAntibody) {
		return
	}
	size := o.sim.Size()
	total := size.W * size.H
	if total == 0 {
		return
	}
	if o.maskImg == nil || o.maskImg.Bounds().Dx() != size.W || o.maskImg.Bounds().Dy() != size.H {
		o.maskImg = ebiten.NewImage(size.W, size.H)
		o.maskBuf = make([]byte, 4*total)
	}
	if o.showAntibody {
		o.drawMask(screen, provider.AntibodyField(), antibodyTint, total)
	}
	if o.showVirus {
		o.drawMask(screen, provider.VirusField(), virusTint, total)
	}
}

func (o *Overlay) drawMask(screen *ebiten.Image, mask []float64, tint color.RGBA, total int) {
	if len(mask) != total {
		return
	}
	fillMaskRGBA(o.maskBuf, mask, tint)
	o.maskImg.WritePixels(o.maskBuf)
	op := &ebiten.DrawImageOptions{}
	op.GeoM.Scale(float64(o.scale), float64(o.scale))
	screen.DrawImage(o.maskImg, op)
}
