package pixelit

import (
	"fmt"
	"strings"

	"github.com/bodgit/pixelit/palette"
	"github.com/bodgit/pixelit/pixel"
	"github.com/bodgit/pixelit/transform"
	"github.com/pkg/errors"
)

// ErrColorStageConflict is returned when a configuration asks for both
// palette quantization and grayscale conversion.
var ErrColorStageConflict = errors.New("pixelit: palette and grayscale are mutually exclusive")

// Config describes how an image is turned into pixel art. It cannot be
// changed once created; use NewConfig.
type Config struct {
	pixelSize int
	maxWidth  int
	maxHeight int

	palette    pixel.Palette
	hasPalette bool
	// Set when the palette is extracted from each image
	auto    bool
	extract int
	method  palette.Method

	grayscale bool
}

// Option configures a Config.
type Option func(*Config)

// PixelSize sets the block size, clamped to [1, 50].
func PixelSize(n int) Option {
	return func(c *Config) {
		c.pixelSize = transform.ClampPixelSize(n)
	}
}

// MaxWidth bounds the width of the result. Zero or less means unbounded.
func MaxWidth(n int) Option {
	return func(c *Config) {
		c.maxWidth = bound(n)
	}
}

// MaxHeight bounds the height of the result. Zero or less means unbounded.
func MaxHeight(n int) Option {
	return func(c *Config) {
		c.maxHeight = bound(n)
	}
}

func bound(n int) int {
	if n < 0 {
		return 0
	}
	return n
}

// Palette quantizes the result to the given colors. The palette is copied.
func Palette(p pixel.Palette) Option {
	return func(c *Config) {
		c.palette = p.Clone()
		if c.palette == nil {
			c.palette = pixel.Palette{}
		}
		c.hasPalette = true
		c.auto = false
	}
}

// AutoPalette quantizes the result to n colors extracted from the pixelated
// image with the given method.
func AutoPalette(n int, m palette.Method) Option {
	return func(c *Config) {
		c.palette = nil
		c.hasPalette = true
		c.auto = true
		c.extract = n
		c.method = m
	}
}

// Grayscale converts the result to shades of gray.
func Grayscale() Option {
	return func(c *Config) {
		c.grayscale = true
	}
}

// DefaultConfig returns a Config with a block size of 8 and no other stages.
func DefaultConfig() Config {
	return Config{
		pixelSize: transform.DefaultPixelSize,
	}
}

// NewConfig returns a Config with the options applied over DefaultConfig.
func NewConfig(options ...Option) (Config, error) {
	c := DefaultConfig()
	for _, option := range options {
		option(&c)
	}
	if c.hasPalette && c.grayscale {
		return Config{}, ErrColorStageConflict
	}
	if c.auto && c.extract < 1 {
		return Config{}, errors.Errorf("pixelit: invalid palette size %d", c.extract)
	}
	return c, nil
}

// PixelSize returns the block size.
func (c Config) PixelSize() int {
	return c.pixelSize
}

// MaxWidth returns the maximum width, zero if unbounded.
func (c Config) MaxWidth() int {
	return c.maxWidth
}

// MaxHeight returns the maximum height, zero if unbounded.
func (c Config) MaxHeight() int {
	return c.maxHeight
}

// Palette returns a copy of the fixed palette and whether quantization was
// requested. An extracted palette is reported as requested with a nil
// palette.
func (c Config) Palette() (pixel.Palette, bool) {
	return c.palette.Clone(), c.hasPalette
}

// AutoPalette returns the number of colors to extract and the method, zero
// if the palette is fixed or absent.
func (c Config) AutoPalette() (int, palette.Method) {
	if !c.auto {
		return 0, 0
	}
	return c.extract, c.method
}

// Grayscale reports whether grayscale conversion was requested.
func (c Config) Grayscale() bool {
	return c.grayscale
}

// String returns a canonical form of the configuration, two equal configs
// always produce the same string.
func (c Config) String() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "pixel-size=%d max-width=%d max-height=%d", c.pixelSize, c.maxWidth, c.maxHeight)
	switch {
	case c.auto:
		fmt.Fprintf(&sb, " palette=%s:%d", c.method, c.extract)
	case c.hasPalette:
		sb.WriteString(" palette=")
		for i, p := range c.palette {
			if i > 0 {
				sb.WriteByte(',')
			}
			fmt.Fprintf(&sb, "%02x%02x%02x", p.R, p.G, p.B)
		}
	}
	if c.grayscale {
		sb.WriteString(" grayscale")
	}
	return sb.String()
}
