package transform

import "github.com/bodgit/pixelit/pixel"

// Pixelate replaces each pixelSize by pixelSize block of src with a single
// color. The image is shrunk to a grid of one pixel per block and then grown
// back to its original size, both with nearest neighbor sampling, so the
// result has the same dimensions as src.
//
// pixelSize is clamped to [MinPixelSize, MaxPixelSize]. If it is larger than
// either dimension there is no grid to sample and src is returned unchanged.
func Pixelate(src *pixel.Buffer, pixelSize int) (*pixel.Buffer, error) {
	if src == nil {
		return nil, ErrNoSource
	}

	pixelSize = ClampPixelSize(pixelSize)

	w, h := src.Width/pixelSize, src.Height/pixelSize
	if w == 0 || h == 0 {
		return src, nil
	}

	small, err := scaleNearest(src, w, h)
	if err != nil {
		return nil, err
	}

	return scaleNearest(small, src.Width, src.Height)
}
