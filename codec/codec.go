/*
Package codec converts between encoded image files and pixel buffers.

PNG, JPEG and GIF are handled by the standard library, BMP, TIFF and WebP by
golang.org/x/image. WebP can only be decoded. Animated GIFs are decoded as
their first frame.
*/
package codec

import (
	"image"
	"image/color"
	"image/draw"
	"image/gif"
	"image/jpeg"
	"image/png"
	"io"
	"path/filepath"
	"strings"

	"github.com/bodgit/pixelit/pixel"
	"github.com/ericpauley/go-quantize/quantize"
	"github.com/pkg/errors"
	"golang.org/x/image/bmp"
	"golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"
)

// Format is the name of an image file format.
type Format string

// Supported formats.
const (
	PNG  Format = "png"
	JPEG Format = "jpeg"
	GIF  Format = "gif"
	BMP  Format = "bmp"
	TIFF Format = "tiff"
	WebP Format = "webp"
)

const (
	jpegQuality = 95
	maxColors   = 256
)

// ErrUnsupported is returned for a format that cannot be read or written.
var ErrUnsupported = errors.New("codec: unsupported format")

var extensions = map[string]Format{
	".png":  PNG,
	".jpg":  JPEG,
	".jpeg": JPEG,
	".gif":  GIF,
	".bmp":  BMP,
	".tif":  TIFF,
	".tiff": TIFF,
	".webp": WebP,
}

// FormatFromFilename guesses the format from the file extension.
func FormatFromFilename(name string) (Format, error) {
	if f, ok := extensions[strings.ToLower(filepath.Ext(name))]; ok {
		return f, nil
	}
	return "", errors.Wrap(ErrUnsupported, name)
}

// ParseFormat returns the format with the given name or extension.
func ParseFormat(s string) (Format, error) {
	s = strings.ToLower(strings.TrimPrefix(s, "."))
	if f, ok := extensions["."+s]; ok {
		return f, nil
	}
	return "", errors.Wrap(ErrUnsupported, s)
}

// Extension returns the usual file extension, including the leading dot.
func (f Format) Extension() string {
	switch f {
	case JPEG:
		return ".jpg"
	case TIFF:
		return ".tif"
	}
	return "." + string(f)
}

// CanEncode reports whether Encode supports the format.
func (f Format) CanEncode() bool {
	switch f {
	case PNG, JPEG, GIF, BMP, TIFF:
		return true
	}
	return false
}

// Decode reads an image in any supported format.
func Decode(r io.Reader) (*pixel.Buffer, Format, error) {
	m, name, err := image.Decode(r)
	if err != nil {
		if err == image.ErrFormat {
			return nil, "", ErrUnsupported
		}
		return nil, "", err
	}
	b, err := pixel.FromImage(m)
	if err != nil {
		return nil, "", err
	}
	return b, Format(name), nil
}

// DecodeConfig returns the dimensions and format of an image without decoding
// all of it.
func DecodeConfig(r io.Reader) (int, int, Format, error) {
	c, name, err := image.DecodeConfig(r)
	if err != nil {
		if err == image.ErrFormat {
			return 0, 0, "", ErrUnsupported
		}
		return 0, 0, "", err
	}
	return c.Width, c.Height, Format(name), nil
}

// Encode writes b to w in the given format.
func Encode(w io.Writer, b *pixel.Buffer, f Format) error {
	if b == nil {
		return errors.New("codec: nil buffer")
	}
	m := b.Image()
	switch f {
	case PNG:
		return png.Encode(w, m)
	case JPEG:
		return jpeg.Encode(w, m, &jpeg.Options{Quality: jpegQuality})
	case GIF:
		return gif.Encode(w, paletted(m), nil)
	case BMP:
		return bmp.Encode(w, m)
	case TIFF:
		return tiff.Encode(w, m, &tiff.Options{Compression: tiff.Deflate})
	default:
		return errors.Wrap(ErrUnsupported, string(f))
	}
}

func uniqueColors(m *image.NRGBA, limit int) (color.Palette, bool) {
	seen := make(map[color.NRGBA]struct{})
	var p color.Palette
	for i := 0; i+4 <= len(m.Pix); i += 4 {
		c := color.NRGBA{R: m.Pix[i], G: m.Pix[i+1], B: m.Pix[i+2], A: m.Pix[i+3]}
		if _, ok := seen[c]; ok {
			continue
		}
		if len(p) == limit {
			return nil, false
		}
		seen[c] = struct{}{}
		p = append(p, c)
	}
	return p, true
}

// paletted converts m for GIF output. Pixel art rarely exceeds 256 colors so
// the exact colors are used when possible, otherwise a median cut palette.
func paletted(m *image.NRGBA) *image.Paletted {
	b := m.Bounds()
	p, ok := uniqueColors(m, maxColors)
	if !ok {
		q := quantize.MedianCutQuantizer{}
		p = q.Quantize(make(color.Palette, 0, maxColors), m)
	}
	pm := image.NewPaletted(b, p)
	draw.Draw(pm, b, m, b.Min, draw.Src)
	return pm
}
