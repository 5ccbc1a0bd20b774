package render

import "image/color"

// Style is the explicit chart styling passed to the renderer at
// construction. Nothing here mutates global state; two renderers with
// different styles can coexist in one process.
type Style struct {
	// Primary is the single-series bar color.
	Primary color.Color
	// Palette colors multi-series charts (pie slices, topic bars).
	Palette []color.Color
	// Background fills the word-cloud canvas.
	Background color.Color
	// WidthPx and HeightPx size raster outputs (pie, donut, word cloud).
	WidthPx  int
	HeightPx int
	// FontPath points at a TTF file; only the word cloud needs it.
	FontPath string
}

// DefaultStyle mirrors the dashboard's house palette.
func DefaultStyle() Style {
	return Style{
		Primary: color.RGBA{R: 0x25, G: 0x63, B: 0xeb, A: 0xff},
		Palette: []color.Color{
			color.RGBA{R: 0x25, G: 0x63, B: 0xeb, A: 0xff},
			color.RGBA{R: 0x16, G: 0xa3, B: 0x4a, A: 0xff},
			color.RGBA{R: 0xdc, G: 0x26, B: 0x26, A: 0xff},
			color.RGBA{R: 0xf5, G: 0x9e, B: 0x0b, A: 0xff},
			color.RGBA{R: 0x7c, G: 0x3a, B: 0xed, A: 0xff},
			color.RGBA{R: 0x0d, G: 0x94, B: 0x88, A: 0xff},
		},
		Background: color.White,
		WidthPx:    800,
		HeightPx:   500,
		FontPath:   "assets/fonts/Roboto-Regular.ttf",
	}
}

func (s Style) paletteAt(i int) color.Color {
	if len(s.Palette) == 0 {
		return s.Primary
	}
	return s.Palette[i%len(s.Palette)]
}
