/*
Package transform implements the pixel art stages: resizing to fit within a
bounding box, block pixelation, nearest color palette quantization and
grayscale conversion.

Every function takes ownership of its source buffer for the duration of the
call and either returns a new buffer or, where the operation would not change
anything, the source buffer itself. A nil source yields ErrNoSource.
*/
package transform

import (
	"github.com/bodgit/pixelit/pixel"
	"github.com/pkg/errors"
)

const (
	// MinPixelSize is the smallest block size.
	MinPixelSize = 1
	// MaxPixelSize is the largest block size.
	MaxPixelSize = 50
	// DefaultPixelSize is the block size used when none is given.
	DefaultPixelSize = 8
)

// ErrNoSource is returned when a stage is given no image to work on.
var ErrNoSource = errors.New("transform: no source image")

// ClampPixelSize limits n to [MinPixelSize, MaxPixelSize].
func ClampPixelSize(n int) int {
	switch {
	case n < MinPixelSize:
		return MinPixelSize
	case n > MaxPixelSize:
		return MaxPixelSize
	}
	return n
}

// scaleNearest resamples src to w by h using nearest neighbor sampling. Each
// destination pixel copies the source pixel under its center so all four
// channels are carried over unchanged.
func scaleNearest(src *pixel.Buffer, w, h int) (*pixel.Buffer, error) {
	dst, err := pixel.New(w, h)
	if err != nil {
		return nil, err
	}

	xs := make([]int, w)
	for dx := range xs {
		xs[dx] = (2*dx + 1) * src.Width / (2 * w) * 4
	}

	srcStride, dstStride := src.Width*4, w*4
	for dy := 0; dy < h; dy++ {
		sy := (2*dy + 1) * src.Height / (2 * h)
		srcRow := src.Pix[sy*srcStride : (sy+1)*srcStride]
		dstRow := dst.Pix[dy*dstStride : (dy+1)*dstStride]
		for dx, sx := range xs {
			copy(dstRow[dx*4:dx*4+4], srcRow[sx:sx+4])
		}
	}

	return dst, nil
}
