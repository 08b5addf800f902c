/*
Package pixelit turns images into pixel art.

An image is optionally shrunk to fit a bounding box, reduced to square blocks
of a single color and finally either mapped onto a fixed palette or converted
to grayscale. The stages are described by a Config and run by a Pipeline; the
Builder offers the same operations as a chain of method calls.

The PixelIt type wraps the pipeline with file handling, an optional result
cache and concurrent batch conversion of whole directories.
*/
package pixelit

import (
	"bytes"
	"crypto/sha1"
	"fmt"
	"io"
	"io/ioutil"
	"log"
	"os"

	"github.com/bodgit/pixelit/codec"
	"github.com/pkg/errors"
)

// PixelIt converts encoded images, reusing results from the cache when one
// is configured.
type PixelIt struct {
	cache  *Cache
	logger *log.Logger
}

// New returns a PixelIt. cache may be nil to disable caching.
func New(cache *Cache, logger *log.Logger) *PixelIt {
	if logger == nil {
		logger = log.New(ioutil.Discard, "", 0)
	}
	return &PixelIt{
		cache:  cache,
		logger: logger,
	}
}

func checksum(b []byte) string {
	return fmt.Sprintf("%X", sha1.Sum(b))
}

// Convert reads an image from r, processes it according to c and writes the
// result to w in the given format.
func (p *PixelIt) Convert(r io.Reader, w io.Writer, c Config, format codec.Format) error {
	if !format.CanEncode() {
		return errors.Wrap(codec.ErrUnsupported, string(format))
	}

	src, err := ioutil.ReadAll(r)
	if err != nil {
		return err
	}

	b, err := p.convert(src, c, format)
	if err != nil {
		return err
	}

	_, err = w.Write(b)
	return err
}

func (p *PixelIt) convert(src []byte, c Config, format codec.Format) ([]byte, error) {
	var (
		sum    = checksum(src)
		config = c.String()
	)

	if p.cache != nil {
		b, err := p.cache.Find(sum, config, string(format))
		if err != nil {
			return nil, err
		}
		if b != nil {
			p.logger.Printf("Cache hit for \"%s\"\n", sum)
			return b, nil
		}
	}

	in, _, err := codec.Decode(bytes.NewReader(src))
	if err != nil {
		return nil, err
	}

	out, err := Process(in, c)
	if err != nil {
		return nil, err
	}

	buf := new(bytes.Buffer)
	if err := codec.Encode(buf, out, format); err != nil {
		return nil, err
	}

	if p.cache != nil {
		if err := p.cache.Store(sum, config, string(format), buf.Bytes()); err != nil {
			return nil, err
		}
	}

	return buf.Bytes(), nil
}

// ConvertFile processes the image in file in and writes it to file out. The
// output format is taken from the extension of out.
func (p *PixelIt) ConvertFile(in, out string, c Config) error {
	format, err := codec.FormatFromFilename(out)
	if err != nil {
		return err
	}
	return p.convertFile(in, out, c, format)
}

func (p *PixelIt) convertFile(in, out string, c Config, format codec.Format) error {
	src, err := os.Open(in)
	if err != nil {
		return err
	}
	defer src.Close()

	buf := new(bytes.Buffer)
	if err := p.Convert(src, buf, c, format); err != nil {
		return errors.Wrap(err, in)
	}

	return ioutil.WriteFile(out, buf.Bytes(), 0666)
}
