package palette

import (
	"image"
	"image/color"
	"math"
	"sort"
	"strings"

	"github.com/bodgit/pixelit/pixel"
	"github.com/cenkalti/dominantcolor"
	"github.com/ericpauley/go-quantize/quantize"
	"github.com/lucasb-eyer/go-colorful"
	"github.com/muesli/clusters"
	"github.com/muesli/kmeans"
	"github.com/pkg/errors"
)

// Method selects how Extract picks colors.
type Method int

// Extraction methods.
const (
	MethodMedianCut Method = iota
	MethodKMeans
	MethodDominant
)

// Keeps k-means tractable on large images
const maxSamples = 12000

var methodNames = map[Method]string{
	MethodMedianCut: "auto",
	MethodKMeans:    "kmeans",
	MethodDominant:  "dominant",
}

func (m Method) String() string {
	if name, ok := methodNames[m]; ok {
		return name
	}
	return "unknown"
}

// ParseMethod returns the method with the given name.
func ParseMethod(s string) (Method, error) {
	for m, name := range methodNames {
		if strings.EqualFold(s, name) {
			return m, nil
		}
	}
	return 0, errors.Errorf("palette: unknown method %q", s)
}

// Extract derives a palette of at most n colors from m, ordered from darkest
// to brightest. Fully transparent pixels are ignored where the method allows.
func Extract(m image.Image, n int, method Method) (pixel.Palette, error) {
	if n < 1 {
		return nil, errors.Errorf("palette: invalid number of colors %d", n)
	}

	var (
		p   pixel.Palette
		err error
	)
	switch method {
	case MethodMedianCut:
		p = medianCut(m, n)
	case MethodKMeans:
		p, err = kMeans(m, n)
	case MethodDominant:
		p = dominant(m, n)
	default:
		return nil, errors.Errorf("palette: unknown method %d", method)
	}
	if err != nil {
		return nil, err
	}
	if len(p) == 0 {
		return nil, pixel.ErrEmptyPalette
	}

	SortByBrightness(p)
	return p, nil
}

func fromColor(c color.Color) pixel.Color {
	n := color.NRGBAModel.Convert(c).(color.NRGBA)
	return pixel.Color{R: n.R, G: n.G, B: n.B}
}

// dedupe drops repeated colors, keeping the first occurrence.
func dedupe(p pixel.Palette) pixel.Palette {
	seen := make(map[pixel.Color]struct{}, len(p))
	out := p[:0]
	for _, c := range p {
		if _, ok := seen[c]; ok {
			continue
		}
		seen[c] = struct{}{}
		out = append(out, c)
	}
	return out
}

func medianCut(m image.Image, n int) pixel.Palette {
	q := quantize.MedianCutQuantizer{}
	cp := q.Quantize(make(color.Palette, 0, n), m)
	p := make(pixel.Palette, 0, len(cp))
	for _, c := range cp {
		p = append(p, fromColor(c))
	}
	return dedupe(p)
}

func kMeans(m image.Image, n int) (pixel.Palette, error) {
	b := m.Bounds()
	width, height := b.Dx(), b.Dy()
	if width == 0 || height == 0 {
		return nil, nil
	}

	step := 1
	if width*height > maxSamples {
		step = int(math.Sqrt(float64(width*height)/maxSamples)) + 1
	}

	dataset := make(clusters.Observations, 0, maxSamples)
	for y := b.Min.Y; y < b.Max.Y; y += step {
		for x := b.Min.X; x < b.Max.X; x += step {
			c := color.NRGBAModel.Convert(m.At(x, y)).(color.NRGBA)
			if c.A == 0 {
				continue
			}
			dataset = append(dataset, clusters.Coordinates{
				float64(c.R) / 0xff,
				float64(c.G) / 0xff,
				float64(c.B) / 0xff,
			})
		}
	}
	if len(dataset) == 0 {
		return nil, nil
	}
	if n > len(dataset) {
		n = len(dataset)
	}

	cc, err := kmeans.New().Partition(dataset, n)
	if err != nil {
		return nil, errors.Wrap(err, "palette: k-means")
	}

	// Most populated clusters first
	sort.SliceStable(cc, func(i, j int) bool {
		return len(cc[i].Observations) > len(cc[j].Observations)
	})

	p := make(pixel.Palette, 0, len(cc))
	for _, c := range cc {
		if len(c.Observations) == 0 || len(c.Center) < 3 {
			continue
		}
		r, g, b := colorful.Color{R: c.Center[0], G: c.Center[1], B: c.Center[2]}.Clamped().RGB255()
		p = append(p, pixel.Color{R: r, G: g, B: b})
	}
	return dedupe(p), nil
}

func dominant(m image.Image, n int) pixel.Palette {
	colors := dominantcolor.FindWeight(m, n)
	p := make(pixel.Palette, 0, len(colors))
	for _, c := range colors {
		p = append(p, fromColor(c.RGBA))
	}
	return dedupe(p)
}

func luminance(c pixel.Color) float64 {
	lc, _ := colorful.MakeColor(c)
	r, g, b := lc.LinearRgb()
	return 0.2126*r + 0.7152*g + 0.0722*b
}

// SortByBrightness orders p from darkest to brightest by relative luminance.
// Colors of equal luminance keep their order.
func SortByBrightness(p pixel.Palette) {
	sort.SliceStable(p, func(i, j int) bool {
		return luminance(p[i]) < luminance(p[j])
	})
}
