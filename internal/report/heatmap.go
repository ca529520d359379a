package report

import (
	"bytes"
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"image/jpeg"
	"image/png"
	"io"

	"pca-sim/internal/epidemic"

	"github.com/icza/mjpeg"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
)

// Colormap maps a value in [0,1] to a color.
type Colormap []color.RGBA

// Approximations of matplotlib's inferno and viridis with five stops each.
var (
	Inferno = Colormap{
		{0, 0, 4, 255},
		{87, 16, 110, 255},
		{188, 55, 84, 255},
		{249, 142, 9, 255},
		{252, 255, 164, 255},
	}
	Viridis = Colormap{
		{68, 1, 84, 255},
		{59, 82, 139, 255},
		{33, 145, 140, 255},
		{94, 201, 98, 255},
		{253, 231, 37, 255},
	}
)

// At interpolates the colormap at v, clamping v to [0,1].
func (m Colormap) At(v float64) color.RGBA {
	if !(v > 0) {
		return m[0]
	}
	if v >= 1 {
		return m[len(m)-1]
	}
	pos := v * float64(len(m)-1)
	i := int(pos)
	t := pos - float64(i)
	a, b := m[i], m[i+1]
	lerp := func(x, y uint8) uint8 { return uint8(float64(x) + t*(float64(y)-float64(x)) + 0.5) }
	return color.RGBA{R: lerp(a.R, b.R), G: lerp(a.G, b.G), B: lerp(a.B, b.B), A: 255}
}

// FrameOptions controls heat map layout.
type FrameOptions struct {
	CellSize int // pixels per cell edge
	Gap      int // pixels between the virus and antibody panels
	FPS      int
	Quality  int // JPEG quality for animations
}

// DefaultFrameOptions returns the layout used by the command-line tools.
func DefaultFrameOptions() FrameOptions {
	return FrameOptions{CellSize: 4, Gap: 8, FPS: 20, Quality: 90}
}

func (o FrameOptions) normalized() FrameOptions {
	if o.CellSize <= 0 {
		o.CellSize = 1
	}
	if o.Gap < 0 {
		o.Gap = 0
	}
	if o.FPS <= 0 {
		o.FPS = 20
	}
	if o.Quality <= 0 || o.Quality > 100 {
		o.Quality = 90
	}
	return o
}

const labelHeight = 16

// frameSize returns the pixel dimensions of a frame for an n×n board. Both
// dimensions are even so the frames encode cleanly as video.
func (o FrameOptions) frameSize(n int) (int, int) {
	w := 2*n*o.CellSize + o.Gap
	h := n*o.CellSize + labelHeight
	return w + w%2, h + h%2
}

// Frame renders one day as two panels: virus (inferno) on the left and
// antibody (viridis) on the right, with a caption strip on top.
func Frame(virus, antibody [][]float64, caption string, opts FrameOptions) *image.RGBA {
	opts = opts.normalized()
	n := len(virus)
	w, h := opts.frameSize(n)
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	draw.Draw(img, img.Bounds(), image.NewUniform(color.Black), image.Point{}, draw.Src)

	paint := func(grid [][]float64, cmap Colormap, x0 int) {
		for r, row := range grid {
			for c, v := range row {
				rect := image.Rect(
					x0+c*opts.CellSize, labelHeight+r*opts.CellSize,
					x0+(c+1)*opts.CellSize, labelHeight+(r+1)*opts.CellSize,
				)
				draw.Draw(img, rect, image.NewUniform(cmap.At(v)), image.Point{}, draw.Src)
			}
		}
	}
	paint(virus, Inferno, 0)
	paint(antibody, Viridis, n*opts.CellSize+opts.Gap)

	d := &font.Drawer{
		Dst:  img,
		Src:  image.NewUniform(color.White),
		Face: basicfont.Face7x13,
		Dot:  fixed.P(2, labelHeight-4),
	}
	d.DrawString(caption)
	return img
}

// HeatmapPNG writes a single-day heat map.
func HeatmapPNG(w io.Writer, virus, antibody [][]float64, caption string, opts FrameOptions) error {
	if err := png.Encode(w, Frame(virus, antibody, caption, opts)); err != nil {
		return fmt.Errorf("report: heat map: %w", err)
	}
	return nil
}

// Animation writes every day of a trace as a frame of an MJPEG AVI file.
func Animation(path string, t *epidemic.Trace, opts FrameOptions) error {
	if t.Days() == 0 {
		return fmt.Errorf("report: trace has no frames")
	}
	opts = opts.normalized()
	w, h := opts.frameSize(len(t.Virus[0]))
	aw, err := mjpeg.New(path, int32(w), int32(h), int32(opts.FPS))
	if err != nil {
		return fmt.Errorf("report: animation: %w", err)
	}

	var buf bytes.Buffer
	jpegOpts := &jpeg.Options{Quality: opts.Quality}
	for d := range t.Virus {
		img := Frame(t.Virus[d], t.Antibody[d], fmt.Sprintf("day %d  virus | antibody", d), opts)
		if err := jpeg.Encode(&buf, img, jpegOpts); err != nil {
			aw.Close()
			return fmt.Errorf("report: animation day %d: %w", d, err)
		}
		if err := aw.AddFrame(buf.Bytes()); err != nil {
			aw.Close()
			return fmt.Errorf("report: animation day %d: %w", d, err)
		}
		buf.Reset()
	}
	if err := aw.Close(); err != nil {
		return fmt.Errorf("report: animation: %w", err)
	}
	return nil
}
