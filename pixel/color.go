package pixel

import (
	"image/color"
	"math"

	"github.com/pkg/errors"
)

// ErrEmptyPalette is returned when a color is looked up in a palette with no
// entries.
var ErrEmptyPalette = errors.New("pixel: empty palette")

// Color is an opaque 8-bit RGB color.
type Color struct {
	R, G, B uint8
}

func clamp(v int) uint8 {
	switch {
	case v < 0:
		return 0
	case v > 0xff:
		return 0xff
	}
	return uint8(v)
}

// NewColor returns a Color with each channel clamped to [0, 255].
func NewColor(r, g, b int) Color {
	return Color{clamp(r), clamp(g), clamp(b)}
}

// RGBA implements the color.Color interface.
func (c Color) RGBA() (r, g, b, a uint32) {
	return color.NRGBA{R: c.R, G: c.G, B: c.B, A: 0xff}.RGBA()
}

func sqDiff(x, y uint8) uint32 {
	d := int32(x) - int32(y)
	return uint32(d * d)
}

func (c Color) sqDistance(r, g, b uint8) uint32 {
	return sqDiff(c.R, r) + sqDiff(c.G, g) + sqDiff(c.B, b)
}

// Distance returns the Euclidean distance between two colors in RGB space.
func (c Color) Distance(o Color) float64 {
	return math.Sqrt(float64(c.sqDistance(o.R, o.G, o.B)))
}

// Palette is an ordered list of colors.
type Palette []Color

// NewPalette builds a palette from RGB triples. Entries with fewer than three
// components are skipped, any extra components are ignored.
func NewPalette(rgb [][]int) Palette {
	p := make(Palette, 0, len(rgb))
	for _, c := range rgb {
		if len(c) < 3 {
			continue
		}
		p = append(p, NewColor(c[0], c[1], c[2]))
	}
	return p
}

// Nearest returns the palette entry closest to the given color. When several
// entries are equally close the first one wins.
func (p Palette) Nearest(r, g, b uint8) (Color, error) {
	if len(p) == 0 {
		return Color{}, ErrEmptyPalette
	}
	// Squared distance orders the same as the Euclidean distance
	best, bestSum := p[0], p[0].sqDistance(r, g, b)
	for _, c := range p[1:] {
		if sum := c.sqDistance(r, g, b); sum < bestSum {
			best, bestSum = c, sum
		}
	}
	return best, nil
}

// Clone returns a copy of the palette that shares no storage with p.
func (p Palette) Clone() Palette {
	if p == nil {
		return nil
	}
	return append(make(Palette, 0, len(p)), p...)
}

// Color returns the palette as a color.Palette, suitable for image.Paletted.
func (p Palette) Color() color.Palette {
	cp := make(color.Palette, len(p))
	for i, c := range p {
		cp[i] = c
	}
	return cp
}

// Retro is a nine color palette of muted tones.
var Retro = NewPalette([][]int{
	{26, 28, 44},
	{93, 39, 93},
	{177, 62, 83},
	{238, 108, 77},
	{255, 205, 117},
	{167, 219, 216},
	{68, 137, 26},
	{45, 45, 45},
	{255, 255, 255},
})

// GameBoy is the four shade green palette of the original handheld.
var GameBoy = NewPalette([][]int{
	{15, 56, 15},
	{48, 98, 48},
	{139, 172, 15},
	{155, 188, 15},
})
