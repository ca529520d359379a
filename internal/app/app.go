//go:build ebiten

package app

import (
	"image/color"
	"time"

	"pca-sim/internal/core"
	"pca-sim/internal/render"
	"pca-sim/internal/ui"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

const hudWidth = 260

// paletted is implemented by sims whose Cells are palette indices.
type paletted interface {
	Palette() []color.RGBA
}

type legended interface {
	Legend() []string
}

// Game adapts a core simulation to the ebiten.Game interface.
type Game struct {
	sim     core.Sim
	painter *render.GridPainter
	pacer   *core.Pacer
	palette []color.RGBA
	hud     *ui.HUD
	overlay *ui.Overlay

	scale    int
	dps      float64
	seed     int64
	day      int
	paused   bool
	tickOnce bool
	err      error
}

// New constructs a Game for the provided simulation.
func New(sim core.Sim, cfg *Config) *Game {
	size := sim.Size()
	g := &Game{
		sim:     sim,
		painter: render.NewGridPainter(size.W, size.H),
		pacer:   core.NewPacer(cfg.DPS),
		overlay: ui.NewOverlay(sim, cfg.Scale),
		scale:   cfg.Scale,
		dps:     cfg.DPS,
		seed:    cfg.Seed,
	}
	if p, ok := sim.(paletted); ok {
		g.palette = p.Palette()
	}
	var legend []string
	if l, ok := sim.(legended); ok {
		legend = l.Legend()
	}
	g.hud = ui.NewHUD(sim, hudWidth, legend)
	g.hud.Update(0)
	return g
}

// Reset reinitializes the simulation state with the provided seed.
func (g *Game) Reset(seed int64) {
	g.seed = seed
	g.err = g.sim.Reset(seed)
	g.day = 0
	g.tickOnce = false
}

// Update handles per-frame logic and advances the simulation.
func (g *Game) Update() error {
	if inpututil.IsKeyJustPressed(ebiten.KeyQ) || inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		return ebiten.Termination
	}
	if inpututil.IsKeyJustPressed(ebiten.KeySpace) {
		g.paused = !g.paused
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyN) {
		g.tickOnce = true
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyEqual) {
		g.setSpeed(g.dps * 2)
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyMinus) {
		g.setSpeed(g.dps / 2)
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyR) {
		g.Reset(g.seed)
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyS) {
		g.Reset(time.Now().UnixNano())
	}
	if g.err != nil {
		return g.err
	}
	g.overlay.Update()

	if (!g.paused && g.pacer.Ready()) || g.tickOnce {
		g.sim.Step()
		g.day++
		g.tickOnce = false
	}
	g.hud.Update(g.day)
	return nil
}

func (g *Game) setSpeed(dps float64) {
	g.dps = min(max(dps, 0.25), 240)
	g.pacer.SetRate(g.dps)
}

// Draw renders the current simulation state.
func (g *Game) Draw(screen *ebiten.Image) {
	g.painter.Blit(screen, g.sim.Cells(), g.palette, g.scale)
	g.overlay.Draw(screen)
	g.hud.Draw(screen, g.sim.Size().W*g.scale, g.scale)
	if g.paused {
		ebitenutil.DebugPrint(screen, "paused  [N] step  [+/-] speed  [1] virus  [2] antibody")
	}
}

// Layout returns the logical screen size.
func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	s := g.sim.Size()
	return s.W*g.scale + hudWidth, s.H * g.scale
}
