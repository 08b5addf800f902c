package pixelit

import (
	"github.com/bodgit/pixelit/pixel"
)

// Builder is a fluent way of assembling a Config and running it over an
// image. Every method returns a modified copy so a Builder can be shared and
// extended freely:
//
//	b := pixelit.NewBuilder().Scale(8).MaxWidth(300).MaxHeight(300)
//	retro, err := b.Source(src).Palette(pixel.Retro).Process()
//	gray, err := b.Source(src).ConvertGrayscale()
type Builder struct {
	source    *pixel.Buffer
	pixelSize int
	maxWidth  int
	maxHeight int
	palette   pixel.Palette
	grayscale bool
}

// NewBuilder returns a Builder with the default block size and no source.
func NewBuilder() Builder {
	return Builder{
		pixelSize: DefaultConfig().PixelSize(),
	}
}

// Source sets the image to work on.
func (b Builder) Source(src *pixel.Buffer) Builder {
	b.source = src
	return b
}

// Scale sets the block size, clamped to [1, 50].
func (b Builder) Scale(n int) Builder {
	b.pixelSize = n
	return b
}

// MaxWidth bounds the width of the result.
func (b Builder) MaxWidth(n int) Builder {
	b.maxWidth = n
	return b
}

// MaxHeight bounds the height of the result.
func (b Builder) MaxHeight(n int) Builder {
	b.maxHeight = n
	return b
}

// Palette sets the colors used for quantization and replaces any earlier
// Grayscale.
func (b Builder) Palette(p pixel.Palette) Builder {
	b.palette = p.Clone()
	if b.palette == nil {
		b.palette = pixel.Palette{}
	}
	b.grayscale = false
	return b
}

// Grayscale asks for grayscale conversion and replaces any earlier Palette.
func (b Builder) Grayscale() Builder {
	b.palette = nil
	b.grayscale = true
	return b
}

// Config returns the configuration assembled so far.
func (b Builder) Config() (Config, error) {
	options := []Option{
		PixelSize(b.pixelSize),
		MaxWidth(b.maxWidth),
		MaxHeight(b.maxHeight),
	}
	if b.palette != nil {
		options = append(options, Palette(b.palette))
	}
	if b.grayscale {
		options = append(options, Grayscale())
	}
	return NewConfig(options...)
}

// Pixelate resizes and pixelates the source, ignoring any palette or
// grayscale setting.
func (b Builder) Pixelate() (*pixel.Buffer, error) {
	c, err := b.Config()
	if err != nil {
		return nil, err
	}
	return Pixelate(b.source, c)
}

// ConvertPalette quantizes the source to the palette without pixelating.
func (b Builder) ConvertPalette() (*pixel.Buffer, error) {
	if b.source == nil {
		return nil, ErrNoSource
	}
	if b.palette == nil {
		return nil, ErrNoPalette
	}
	return ApplyPalette(b.source, b.palette)
}

// ConvertGrayscale converts the source to grayscale without pixelating.
func (b Builder) ConvertGrayscale() (*pixel.Buffer, error) {
	return ConvertGrayscale(b.source)
}

// Process runs every configured stage over the source.
func (b Builder) Process() (*pixel.Buffer, error) {
	c, err := b.Config()
	if err != nil {
		return nil, err
	}
	return Process(b.source, c)
}
