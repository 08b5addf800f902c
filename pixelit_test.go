package pixelit

import (
	"bytes"
	"image/color"
	"io/ioutil"
	"os"
	"path/filepath"
	"testing"

	"github.com/bodgit/pixelit/codec"
	"github.com/bodgit/pixelit/pixel"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func retroConfig(t *testing.T) Config {
	t.Helper()
	c, err := NewConfig(PixelSize(4), Palette(pixel.Retro))
	require.NoError(t, err)
	return c
}

func TestConvert(t *testing.T) {
	p := New(nil, nil)
	src := encode(t, solid(t, 32, 16, red), codec.PNG)

	buf := new(bytes.Buffer)
	require.NoError(t, p.Convert(bytes.NewReader(src), buf, retroConfig(t), codec.GIF))

	out, format, err := codec.Decode(buf)
	require.NoError(t, err)
	assert.Equal(t, codec.GIF, format)
	assert.Equal(t, 32, out.Width)
	assert.Equal(t, 16, out.Height)
	assertSolid(t, out, color.NRGBA{R: 177, G: 62, B: 83, A: 255})
}

func TestConvertErrors(t *testing.T) {
	p := New(nil, nil)

	err := p.Convert(bytes.NewReader(nil), ioutil.Discard, DefaultConfig(), codec.WebP)
	assert.True(t, errors.Is(err, codec.ErrUnsupported))

	err = p.Convert(bytes.NewReader([]byte("not an image")), ioutil.Discard, DefaultConfig(), codec.PNG)
	assert.True(t, errors.Is(err, codec.ErrUnsupported))
}

func TestConvertCache(t *testing.T) {
	cache := newTestCache(t)
	p := New(cache, nil)
	c := retroConfig(t)
	src := encode(t, checker(t, 16, 16), codec.PNG)

	first := new(bytes.Buffer)
	require.NoError(t, p.Convert(bytes.NewReader(src), first, c, codec.PNG))

	n, err := cache.Len()
	require.NoError(t, err)
	assert.Equal(t, 1, n)

	second := new(bytes.Buffer)
	require.NoError(t, p.Convert(bytes.NewReader(src), second, c, codec.PNG))
	assert.Equal(t, first.Bytes(), second.Bytes())

	// A hit is served straight from the cache
	require.NoError(t, cache.Store(checksum(src), c.String(), string(codec.PNG), []byte("cached")))
	third := new(bytes.Buffer)
	require.NoError(t, p.Convert(bytes.NewReader(src), third, c, codec.PNG))
	assert.Equal(t, "cached", third.String())

	// A different config misses
	fourth := new(bytes.Buffer)
	require.NoError(t, p.Convert(bytes.NewReader(src), fourth, DefaultConfig(), codec.PNG))
	assert.NotEqual(t, "cached", fourth.String())

	n, err = cache.Len()
	require.NoError(t, err)
	assert.Equal(t, 2, n)
}

func TestConvertFile(t *testing.T) {
	dir := t.TempDir()
	in := filepath.Join(dir, "in.png")
	require.NoError(t, ioutil.WriteFile(in, encode(t, solid(t, 8, 8, red), codec.PNG), 0666))

	p := New(nil, nil)
	out := filepath.Join(dir, "out.bmp")
	require.NoError(t, p.ConvertFile(in, out, retroConfig(t)))

	f, err := os.Open(out)
	require.NoError(t, err)
	defer f.Close()

	b, format, err := codec.Decode(f)
	require.NoError(t, err)
	assert.Equal(t, codec.BMP, format)
	assertSolid(t, b, color.NRGBA{R: 177, G: 62, B: 83, A: 255})

	assert.Error(t, p.ConvertFile(in, filepath.Join(dir, "out.txt"), retroConfig(t)))
	assert.Error(t, p.ConvertFile(filepath.Join(dir, "missing.png"), out, retroConfig(t)))
}

func writeFile(t *testing.T, file string, b []byte) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(file), 0777))
	require.NoError(t, ioutil.WriteFile(file, b, 0666))
}

func TestScan(t *testing.T) {
	src := t.TempDir()
	img := encode(t, solid(t, 8, 8, red), codec.PNG)

	writeFile(t, filepath.Join(src, "a.png"), img)
	writeFile(t, filepath.Join(src, "sub", "b.png"), img)
	writeFile(t, filepath.Join(src, "sub", "deeper", "c.jpg"), encode(t, solid(t, 8, 8, red), codec.JPEG))
	writeFile(t, filepath.Join(src, ".hidden", "d.png"), img)
	writeFile(t, filepath.Join(src, ".e.png"), img)
	writeFile(t, filepath.Join(src, "notes.txt"), []byte("not an image"))
	writeFile(t, filepath.Join(src, "broken.png"), []byte("not an image"))

	// Output inside the source tree is not rescanned
	dst := filepath.Join(src, "out")

	p := New(nil, nil)
	require.NoError(t, p.Scan(src, dst, retroConfig(t), codec.GIF))

	for _, file := range []string{"a.gif", filepath.Join("sub", "b.gif"), filepath.Join("sub", "deeper", "c.gif")} {
		f, err := os.Open(filepath.Join(dst, file))
		require.NoError(t, err, file)
		b, format, err := codec.Decode(f)
		f.Close()
		require.NoError(t, err, file)
		assert.Equal(t, codec.GIF, format)
		assertSolid(t, b, color.NRGBA{R: 177, G: 62, B: 83, A: 255})
	}

	for _, file := range []string{"broken.gif", "notes.gif", ".e.gif", filepath.Join(".hidden", "d.gif"), filepath.Join("out", "a.gif")} {
		_, err := os.Stat(filepath.Join(dst, file))
		assert.True(t, os.IsNotExist(err), file)
	}
}

func TestScanErrors(t *testing.T) {
	p := New(nil, nil)
	dir := t.TempDir()

	assert.True(t, errors.Is(p.Scan(dir, dir, DefaultConfig(), codec.WebP), codec.ErrUnsupported))
	assert.Error(t, p.Scan(filepath.Join(dir, "missing"), dir, DefaultConfig(), codec.PNG))

	file := filepath.Join(dir, "a.png")
	writeFile(t, file, encode(t, solid(t, 2, 2, red), codec.PNG))
	assert.Error(t, p.Scan(file, dir, DefaultConfig(), codec.PNG))
}
