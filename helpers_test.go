package pixelit

import (
	"bytes"
	"image/color"
	"testing"

	"github.com/bodgit/pixelit/codec"
	"github.com/bodgit/pixelit/pixel"
	"github.com/stretchr/testify/require"
)

var red = color.NRGBA{R: 255, A: 255}

func solid(t *testing.T, w, h int, c color.NRGBA) *pixel.Buffer {
	t.Helper()
	b, err := pixel.New(w, h)
	require.NoError(t, err)
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			b.Set(x, y, c)
		}
	}
	return b
}

func checker(t *testing.T, w, h int) *pixel.Buffer {
	t.Helper()
	b := solid(t, w, h, red)
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			if (x+y)%2 == 0 {
				b.Set(x, y, color.NRGBA{B: 255, A: 255})
			}
		}
	}
	return b
}

func encode(t *testing.T, b *pixel.Buffer, f codec.Format) []byte {
	t.Helper()
	buf := new(bytes.Buffer)
	require.NoError(t, codec.Encode(buf, b, f))
	return buf.Bytes()
}

func assertSolid(t *testing.T, b *pixel.Buffer, c color.NRGBA) {
	t.Helper()
	for y := 0; y < b.Height; y++ {
		for x := 0; x < b.Width; x++ {
			if got := b.At(x, y); got != c {
				t.Fatalf("pixel (%d, %d) = %v, want %v", x, y, got, c)
			}
		}
	}
}
