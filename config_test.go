package pixelit

import (
	"testing"

	"github.com/bodgit/pixelit/palette"
	"github.com/bodgit/pixelit/pixel"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultConfig(t *testing.T) {
	c := DefaultConfig()
	assert.Equal(t, 8, c.PixelSize())
	assert.Equal(t, 0, c.MaxWidth())
	assert.Equal(t, 0, c.MaxHeight())
	assert.False(t, c.Grayscale())
	_, ok := c.Palette()
	assert.False(t, ok)

	n, err := NewConfig()
	require.NoError(t, err)
	assert.Equal(t, c, n)
}

func TestConfigPixelSize(t *testing.T) {
	tests := []struct {
		in, want int
	}{
		{-5, 1},
		{0, 1},
		{1, 1},
		{13, 13},
		{50, 50},
		{100, 50},
	}
	for _, tt := range tests {
		c, err := NewConfig(PixelSize(tt.in))
		require.NoError(t, err)
		assert.Equal(t, tt.want, c.PixelSize(), "PixelSize(%d)", tt.in)
	}
}

func TestConfigBounds(t *testing.T) {
	c, err := NewConfig(MaxWidth(-10), MaxHeight(300))
	require.NoError(t, err)
	assert.Equal(t, 0, c.MaxWidth())
	assert.Equal(t, 300, c.MaxHeight())
}

func TestConfigPalette(t *testing.T) {
	p := pixel.Palette{{R: 1, G: 2, B: 3}}
	c, err := NewConfig(Palette(p))
	require.NoError(t, err)

	// Later changes to the caller's palette don't leak in
	p[0] = pixel.Color{}
	got, ok := c.Palette()
	assert.True(t, ok)
	assert.Equal(t, pixel.Palette{{R: 1, G: 2, B: 3}}, got)

	// Nor do changes to the returned copy
	got[0] = pixel.Color{}
	got, _ = c.Palette()
	assert.Equal(t, pixel.Color{R: 1, G: 2, B: 3}, got[0])

	c, err = NewConfig(Palette(nil))
	require.NoError(t, err)
	got, ok = c.Palette()
	assert.True(t, ok)
	assert.Empty(t, got)
}

func TestConfigAutoPalette(t *testing.T) {
	c, err := NewConfig(AutoPalette(16, palette.MethodKMeans))
	require.NoError(t, err)
	n, m := c.AutoPalette()
	assert.Equal(t, 16, n)
	assert.Equal(t, palette.MethodKMeans, m)
	_, ok := c.Palette()
	assert.True(t, ok)

	// A fixed palette replaces the extracted one
	c, err = NewConfig(AutoPalette(16, palette.MethodKMeans), Palette(pixel.GameBoy))
	require.NoError(t, err)
	n, _ = c.AutoPalette()
	assert.Equal(t, 0, n)

	_, err = NewConfig(AutoPalette(0, palette.MethodMedianCut))
	assert.Error(t, err)
}

func TestConfigConflict(t *testing.T) {
	_, err := NewConfig(Palette(pixel.Retro), Grayscale())
	assert.True(t, errors.Is(err, ErrColorStageConflict))

	_, err = NewConfig(Grayscale(), AutoPalette(4, palette.MethodDominant))
	assert.True(t, errors.Is(err, ErrColorStageConflict))
}

func TestConfigString(t *testing.T) {
	tests := []struct {
		name    string
		options []Option
		want    string
	}{
		{
			"default",
			nil,
			"pixel-size=8 max-width=0 max-height=0",
		},
		{
			"palette",
			[]Option{PixelSize(4), MaxWidth(300), Palette(pixel.GameBoy)},
			"pixel-size=4 max-width=300 max-height=0 palette=0f380f,306230,8bac0f,9bbc0f",
		},
		{
			"auto",
			[]Option{AutoPalette(8, palette.MethodKMeans)},
			"pixel-size=8 max-width=0 max-height=0 palette=kmeans:8",
		},
		{
			"grayscale",
			[]Option{Grayscale(), MaxHeight(10)},
			"pixel-size=8 max-width=0 max-height=10 grayscale",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, err := NewConfig(tt.options...)
			require.NoError(t, err)
			assert.Equal(t, tt.want, c.String())
		})
	}
}
