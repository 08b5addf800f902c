package transform

import (
	"image/draw"

	"github.com/bodgit/pixelit/pixel"
	"github.com/nfnt/resize"
)

// FitSize returns the dimensions of a w by h image scaled down to fit within
// maxWidth by maxHeight while keeping its aspect ratio. A bound less than or
// equal to zero is ignored. Images are never enlarged; the returned bool is
// false when no scaling is required.
func FitSize(w, h, maxWidth, maxHeight int) (int, int, bool) {
	// The scale factor is kept as the exact fraction num/den
	num, den := 1, 1
	if maxWidth > 0 && maxWidth*den < w*num {
		num, den = maxWidth, w
	}
	if maxHeight > 0 && maxHeight*den < h*num {
		num, den = maxHeight, h
	}
	if num >= den {
		return w, h, false
	}

	nw, nh := w*num/den, h*num/den
	if nw < 1 {
		nw = 1
	}
	if nh < 1 {
		nh = 1
	}
	return nw, nh, true
}

// Resize scales src down to fit within maxWidth by maxHeight using Lanczos
// resampling. If src already fits it is returned as is.
func Resize(src *pixel.Buffer, maxWidth, maxHeight int) (*pixel.Buffer, error) {
	if src == nil {
		return nil, ErrNoSource
	}

	w, h, ok := FitSize(src.Width, src.Height, maxWidth, maxHeight)
	if !ok {
		return src, nil
	}

	dst, err := pixel.New(w, h)
	if err != nil {
		return nil, err
	}

	m := resize.Resize(uint(w), uint(h), src.Image(), resize.Lanczos3)
	draw.Draw(dst.Image(), dst.Bounds(), m, m.Bounds().Min, draw.Src)

	return dst, nil
}
