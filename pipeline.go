package pixelit

import (
	"github.com/bodgit/pixelit/palette"
	"github.com/bodgit/pixelit/pixel"
	"github.com/bodgit/pixelit/transform"
	"github.com/pkg/errors"
)

var (
	// ErrNoSource is returned when there is no image to process.
	ErrNoSource = transform.ErrNoSource
	// ErrNoPalette is returned when quantization is asked for without a
	// palette.
	ErrNoPalette = errors.New("pixelit: no palette")
)

// Pipeline applies an ordered list of stages to an image. Resizing always
// comes before pixelation, which always comes before quantization or
// grayscale conversion.
type Pipeline struct {
	config Config
	stages []Stage
}

// NewPipeline returns the pipeline described by c.
func NewPipeline(c Config) Pipeline {
	var stages []Stage
	if c.maxWidth > 0 || c.maxHeight > 0 {
		stages = append(stages, StageResize)
	}
	stages = append(stages, StagePixelate)
	switch {
	case c.hasPalette:
		stages = append(stages, StageQuantize)
	case c.grayscale:
		stages = append(stages, StageGrayscale)
	}
	return Pipeline{
		config: c,
		stages: stages,
	}
}

// Stages returns the stages in the order they are applied.
func (p Pipeline) Stages() []Stage {
	return append([]Stage(nil), p.stages...)
}

// Skip returns a copy of the pipeline without the given stages.
func (p Pipeline) Skip(skip ...Stage) Pipeline {
	stages := make([]Stage, 0, len(p.stages))
outer:
	for _, s := range p.stages {
		for _, k := range skip {
			if s == k {
				continue outer
			}
		}
		stages = append(stages, s)
	}
	return Pipeline{
		config: p.config,
		stages: stages,
	}
}

// Run applies every stage to src in turn. On failure no image is returned.
// src may itself be returned if no stage changes it.
func (p Pipeline) Run(src *pixel.Buffer) (*pixel.Buffer, error) {
	if src == nil {
		return nil, ErrNoSource
	}
	b := src
	for _, s := range p.stages {
		var err error
		if b, err = p.apply(s, b); err != nil {
			return nil, errors.Wrap(err, s.String())
		}
	}
	return b, nil
}

func (p Pipeline) apply(s Stage, b *pixel.Buffer) (*pixel.Buffer, error) {
	c := p.config
	switch s {
	case StageResize:
		return transform.Resize(b, c.maxWidth, c.maxHeight)
	case StagePixelate:
		return transform.Pixelate(b, c.pixelSize)
	case StageQuantize:
		if !c.hasPalette {
			return nil, ErrNoPalette
		}
		pal := c.palette
		if c.auto {
			var err error
			if pal, err = palette.Extract(b.Image(), c.extract, c.method); err != nil {
				return nil, err
			}
		}
		return transform.Quantize(b, pal)
	case StageGrayscale:
		return transform.Grayscale(b)
	default:
		return nil, errors.Errorf("pixelit: unknown stage %d", s)
	}
}

// Process runs every stage c describes over src.
func Process(src *pixel.Buffer, c Config) (*pixel.Buffer, error) {
	return NewPipeline(c).Run(src)
}

// Pixelate resizes and pixelates src, ignoring any color stage in c.
func Pixelate(src *pixel.Buffer, c Config) (*pixel.Buffer, error) {
	return NewPipeline(c).Skip(StageQuantize, StageGrayscale).Run(src)
}

// ApplyPalette maps every pixel of src to its nearest color in p.
func ApplyPalette(src *pixel.Buffer, p pixel.Palette) (*pixel.Buffer, error) {
	return transform.Quantize(src, p)
}

// ConvertGrayscale converts src to shades of gray.
func ConvertGrayscale(src *pixel.Buffer) (*pixel.Buffer, error) {
	return transform.Grayscale(src)
}
