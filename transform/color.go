package transform

import "github.com/bodgit/pixelit/pixel"

// Quantize replaces the RGB channels of every pixel in src with the nearest
// color in p, measured by Euclidean distance. Alpha is left alone. An empty
// palette fails with pixel.ErrEmptyPalette.
func Quantize(src *pixel.Buffer, p pixel.Palette) (*pixel.Buffer, error) {
	if src == nil {
		return nil, ErrNoSource
	}
	if len(p) == 0 {
		return nil, pixel.ErrEmptyPalette
	}

	dst := src.Clone()

	// Pixelated images have few distinct colors, remember each lookup
	seen := make(map[uint32]pixel.Color)
	for i := 0; i+4 <= len(dst.Pix); i += 4 {
		s := dst.Pix[i : i+3 : i+3]
		key := uint32(s[0])<<16 | uint32(s[1])<<8 | uint32(s[2])
		c, ok := seen[key]
		if !ok {
			var err error
			if c, err = p.Nearest(s[0], s[1], s[2]); err != nil {
				return nil, err
			}
			seen[key] = c
		}
		s[0], s[1], s[2] = c.R, c.G, c.B
	}

	return dst, nil
}

// Grayscale sets the RGB channels of every pixel in src to their truncated
// average. Alpha is left alone.
func Grayscale(src *pixel.Buffer) (*pixel.Buffer, error) {
	if src == nil {
		return nil, ErrNoSource
	}

	dst := src.Clone()
	for i := 0; i+4 <= len(dst.Pix); i += 4 {
		s := dst.Pix[i : i+3 : i+3]
		y := uint8((uint(s[0]) + uint(s[1]) + uint(s[2])) / 3)
		s[0], s[1], s[2] = y, y, y
	}

	return dst, nil
}
