package epidemic

import "image/color"

var categoryPalette = []color.RGBA{
	Susceptible: {R: 70, G: 110, B: 170, A: 255},
	Infected:    {R: 230, G: 120, B: 40, A: 255},
	Recovered:   {R: 80, G: 170, B: 90, A: 255},
}

// Palette exposes the colors used for rendering Cells, indexed by Category.
func (s *Sim) Palette() []color.RGBA {
	return categoryPalette
}

// CategoryColor returns the display color of c.
func CategoryColor(c Category) color.RGBA {
	if int(c) >= len(categoryPalette) {
		return color.RGBA{A: 255}
	}
	return categoryPalette[c]
}

// Legend names the palette entries.
func (s *Sim) Legend() []string {
	out := make([]string, len(Categories))
	for i, c := range Categories {
		out[i] = c.String()
	}
	return out
}
