/*
Package pixel implements the RGBA pixel buffer and the color and palette types
that every pixel art stage operates on.

A Buffer holds Width * Height pixels of four bytes each, red, green, blue and
alpha, stored row-major from the top-left corner. Alpha is not premultiplied.
*/
package pixel

import (
	"bytes"
	"image"
	"image/color"
	"image/draw"
	"math"

	"github.com/pkg/errors"
)

const bytesPerPixel = 4

var (
	// ErrAllocation is returned when a buffer of the requested dimensions
	// cannot be created.
	ErrAllocation = errors.New("pixel: cannot allocate buffer")
	// ErrBufferSize is returned when the pixel data does not match the
	// dimensions.
	ErrBufferSize = errors.New("pixel: pixel data does not match dimensions")

	errOutOfBounds = errors.New("pixel: coordinates out of bounds")
	errNilImage    = errors.New("pixel: nil image")
)

// Buffer is a width by height array of RGBA8 samples.
type Buffer struct {
	Width  int
	Height int
	Pix    []byte
}

func size(w, h int) (int, error) {
	if w <= 0 || h <= 0 {
		return 0, errors.Wrapf(ErrAllocation, "invalid dimensions %dx%d", w, h)
	}
	if w > math.MaxInt32 || h > math.MaxInt32 || w > math.MaxInt/bytesPerPixel/h {
		return 0, errors.Wrapf(ErrAllocation, "dimensions %dx%d too large", w, h)
	}
	return w * h * bytesPerPixel, nil
}

// New returns a zeroed (transparent black) buffer of the given dimensions.
func New(w, h int) (*Buffer, error) {
	n, err := size(w, h)
	if err != nil {
		return nil, err
	}
	return &Buffer{
		Width:  w,
		Height: h,
		Pix:    make([]byte, n),
	}, nil
}

// FromBytes wraps existing RGBA8 data. The slice is not copied; ownership
// passes to the returned buffer.
func FromBytes(w, h int, pix []byte) (*Buffer, error) {
	n, err := size(w, h)
	if err != nil {
		return nil, err
	}
	if len(pix) != n {
		return nil, errors.Wrapf(ErrBufferSize, "got %d bytes, want %d", len(pix), n)
	}
	return &Buffer{
		Width:  w,
		Height: h,
		Pix:    pix,
	}, nil
}

// FromImage converts any image.Image into a new buffer whose top-left corner
// is at (0, 0).
func FromImage(m image.Image) (*Buffer, error) {
	if m == nil {
		return nil, errNilImage
	}
	r := m.Bounds()
	b, err := New(r.Dx(), r.Dy())
	if err != nil {
		return nil, err
	}

	// Fast path, rows can be copied as is
	if nrgba, ok := m.(*image.NRGBA); ok {
		for y := 0; y < b.Height; y++ {
			i := nrgba.PixOffset(r.Min.X, r.Min.Y+y)
			copy(b.Pix[y*b.stride():(y+1)*b.stride()], nrgba.Pix[i:i+b.stride()])
		}
		return b, nil
	}

	dst := b.Image()
	draw.Draw(dst, dst.Bounds(), m, r.Min, draw.Src)
	return b, nil
}

func (b *Buffer) stride() int {
	return b.Width * bytesPerPixel
}

// Bounds returns the buffer bounding box.
func (b *Buffer) Bounds() image.Rectangle {
	return image.Rect(0, 0, b.Width, b.Height)
}

// Offset returns the index of the first byte of the pixel at (x, y).
func (b *Buffer) Offset(x, y int) (int, error) {
	if x < 0 || y < 0 || x >= b.Width || y >= b.Height {
		return 0, errors.Wrapf(errOutOfBounds, "(%d, %d) in %dx%d", x, y, b.Width, b.Height)
	}
	return y*b.stride() + x*bytesPerPixel, nil
}

// At returns the color of the pixel at (x, y), or transparent black outside
// the buffer.
func (b *Buffer) At(x, y int) color.NRGBA {
	i, err := b.Offset(x, y)
	if err != nil {
		return color.NRGBA{}
	}
	s := b.Pix[i : i+bytesPerPixel : i+bytesPerPixel]
	return color.NRGBA{R: s[0], G: s[1], B: s[2], A: s[3]}
}

// Set changes the pixel at (x, y). Coordinates outside the buffer are
// ignored.
func (b *Buffer) Set(x, y int, c color.NRGBA) {
	i, err := b.Offset(x, y)
	if err != nil {
		return
	}
	s := b.Pix[i : i+bytesPerPixel : i+bytesPerPixel]
	s[0], s[1], s[2], s[3] = c.R, c.G, c.B, c.A
}

// Clone returns a deep copy of the buffer.
func (b *Buffer) Clone() *Buffer {
	pix := make([]byte, len(b.Pix))
	copy(pix, b.Pix)
	return &Buffer{
		Width:  b.Width,
		Height: b.Height,
		Pix:    pix,
	}
}

// Equal reports whether both buffers have the same dimensions and pixels.
func (b *Buffer) Equal(o *Buffer) bool {
	if b == nil || o == nil {
		return b == o
	}
	return b.Width == o.Width && b.Height == o.Height && bytes.Equal(b.Pix, o.Pix)
}

// Image returns an image.NRGBA sharing the buffer's pixel data, writes to
// either are visible in both.
func (b *Buffer) Image() *image.NRGBA {
	return &image.NRGBA{
		Pix:    b.Pix,
		Stride: b.stride(),
		Rect:   b.Bounds(),
	}
}
