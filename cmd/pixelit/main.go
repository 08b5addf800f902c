package main

import (
	"io/ioutil"
	"log"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/bodgit/pixelit"
	"github.com/bodgit/pixelit/codec"
	"github.com/bodgit/pixelit/palette"
	"github.com/bodgit/pixelit/pixel"
	"github.com/pkg/errors"
	"github.com/urfave/cli/v2"
)

const defaultColors = 8

func init() {
	cli.VersionFlag = &cli.BoolFlag{
		Name:    "version",
		Aliases: []string{"V"},
		Usage:   "print the version",
	}
}

var processingFlags = []cli.Flag{
	&cli.IntFlag{
		Name:  "pixel-size",
		Value: pixelit.DefaultConfig().PixelSize(),
		Usage: "size of each block, between 1 and 50",
	},
	&cli.IntFlag{
		Name:  "max-width",
		Usage: "shrink to at most this width, 0 for no limit",
	},
	&cli.IntFlag{
		Name:  "max-height",
		Usage: "shrink to at most this height, 0 for no limit",
	},
	&cli.StringFlag{
		Name:  "palette",
		Usage: "palette name (" + strings.Join(palette.Names(), ", ") + "), palette file, or METHOD:N to extract N colors",
	},
	&cli.BoolFlag{
		Name:  "grayscale",
		Usage: "convert to grayscale",
	},
}

func newLogger(c *cli.Context) *log.Logger {
	logger := log.New(ioutil.Discard, "", 0)
	if c.Bool("verbose") {
		logger.SetOutput(os.Stderr)
	}
	return logger
}

func newPixelIt(c *cli.Context) (*pixelit.PixelIt, func() error, error) {
	logger := newLogger(c)

	if c.String("db") == "" {
		return pixelit.New(nil, logger), func() error { return nil }, nil
	}

	cache, err := pixelit.NewCache(c.String("db"))
	if err != nil {
		return nil, nil, err
	}
	return pixelit.New(cache, logger), cache.Close, nil
}

// parseExtract parses METHOD:N, e.g. "kmeans:16".
func parseExtract(s string) (int, palette.Method, bool, error) {
	i := strings.IndexByte(s, ':')
	if i < 0 {
		return 0, 0, false, nil
	}
	m, err := palette.ParseMethod(s[:i])
	if err != nil {
		// Could still be a file path with a colon in it
		return 0, 0, false, nil
	}
	n, err := strconv.Atoi(s[i+1:])
	if err != nil {
		return 0, 0, true, errors.Wrapf(err, "palette %q", s)
	}
	return n, m, true, nil
}

func paletteOption(s string) (pixelit.Option, error) {
	if p, ok := palette.Lookup(s); ok {
		return pixelit.Palette(p), nil
	}

	n, m, ok, err := parseExtract(s)
	if err != nil {
		return nil, err
	}
	if ok {
		return pixelit.AutoPalette(n, m), nil
	}

	p, err := palette.Load(s)
	if err != nil {
		return nil, err
	}
	return pixelit.Palette(p), nil
}

func newConfig(c *cli.Context) (pixelit.Config, error) {
	options := []pixelit.Option{
		pixelit.PixelSize(c.Int("pixel-size")),
		pixelit.MaxWidth(c.Int("max-width")),
		pixelit.MaxHeight(c.Int("max-height")),
	}

	if s := c.String("palette"); s != "" {
		option, err := paletteOption(s)
		if err != nil {
			return pixelit.Config{}, err
		}
		options = append(options, option)
	}

	if c.Bool("grayscale") {
		options = append(options, pixelit.Grayscale())
	}

	return pixelit.NewConfig(options...)
}

func main() {
	app := cli.NewApp()

	app.Name = "pixelit"
	app.Usage = "Pixel art conversion utility"
	app.Version = "1.0.0"

	app.Flags = []cli.Flag{
		&cli.StringFlag{
			Name:    "db",
			EnvVars: []string{"PIXELIT_DB"},
			Usage:   "path to result cache database",
		},
		&cli.BoolFlag{
			Name:    "verbose",
			Aliases: []string{"v"},
			Usage:   "increase verbosity",
		},
	}

	app.Commands = []*cli.Command{
		{
			Name:        "convert",
			Usage:       "Convert an image to pixel art",
			Description: "The output format is taken from the extension of OUTPUT unless --format is given.",
			ArgsUsage:   "INPUT OUTPUT",
			Flags: append([]cli.Flag{
				&cli.StringFlag{
					Name:  "format",
					Usage: "output format",
				},
			}, processingFlags...),
			Action: func(c *cli.Context) error {
				if c.NArg() < 2 {
					cli.ShowCommandHelpAndExit(c, c.Command.FullName(), 1)
				}

				config, err := newConfig(c)
				if err != nil {
					return cli.NewExitError(err, 1)
				}

				p, closeFunc, err := newPixelIt(c)
				if err != nil {
					return cli.NewExitError(err, 1)
				}
				defer closeFunc()

				in, out := c.Args().Get(0), c.Args().Get(1)

				if c.String("format") == "" {
					err = p.ConvertFile(in, out, config)
				} else {
					err = convertFormat(p, in, out, config, c.String("format"))
				}
				if err != nil {
					return cli.NewExitError(err, 1)
				}

				return nil
			},
		},
		{
			Name:        "scan",
			Usage:       "Convert every image in a directory",
			Description: "",
			ArgsUsage:   "DIRECTORY OUTPUT",
			Flags: append([]cli.Flag{
				&cli.StringFlag{
					Name:  "format",
					Value: string(codec.PNG),
					Usage: "output format",
				},
			}, processingFlags...),
			Action: func(c *cli.Context) error {
				if c.NArg() < 2 {
					cli.ShowCommandHelpAndExit(c, c.Command.FullName(), 1)
				}

				format, err := codec.ParseFormat(c.String("format"))
				if err != nil {
					return cli.NewExitError(err, 1)
				}

				config, err := newConfig(c)
				if err != nil {
					return cli.NewExitError(err, 1)
				}

				p, closeFunc, err := newPixelIt(c)
				if err != nil {
					return cli.NewExitError(err, 1)
				}
				defer closeFunc()

				if err := p.Scan(c.Args().Get(0), c.Args().Get(1), config, format); err != nil {
					return cli.NewExitError(err, 1)
				}

				return nil
			},
		},
		{
			Name:        "palette",
			Usage:       "Extract a palette from an image",
			Description: "Writes a GIMP palette to standard output.",
			ArgsUsage:   "FILE",
			Flags: []cli.Flag{
				&cli.IntFlag{
					Name:  "colors",
					Value: defaultColors,
					Usage: "number of colors",
				},
				&cli.StringFlag{
					Name:  "method",
					Value: palette.MethodMedianCut.String(),
					Usage: "one of auto, kmeans or dominant",
				},
			},
			Action: func(c *cli.Context) error {
				if c.NArg() < 1 {
					cli.ShowCommandHelpAndExit(c, c.Command.FullName(), 1)
				}

				method, err := palette.ParseMethod(c.String("method"))
				if err != nil {
					return cli.NewExitError(err, 1)
				}

				file := c.Args().First()
				p, err := extractPalette(file, c.Int("colors"), method)
				if err != nil {
					return cli.NewExitError(err, 1)
				}

				name := strings.TrimSuffix(filepath.Base(file), filepath.Ext(file))
				if err := palette.Encode(os.Stdout, name, p); err != nil {
					return cli.NewExitError(err, 1)
				}

				newLogger(c).Printf("Extracted %d colors from \"%s\"\n", len(p), file)

				return nil
			},
		},
	}

	if err := app.Run(os.Args); err != nil {
		log.Fatal(err)
	}
}

func convertFormat(p *pixelit.PixelIt, in, out string, config pixelit.Config, name string) error {
	format, err := codec.ParseFormat(name)
	if err != nil {
		return err
	}

	src, err := os.Open(in)
	if err != nil {
		return err
	}
	defer src.Close()

	dst, err := os.Create(out)
	if err != nil {
		return err
	}

	if err := p.Convert(src, dst, config, format); err != nil {
		dst.Close()
		return err
	}

	return dst.Close()
}

func extractPalette(file string, n int, method palette.Method) (pixel.Palette, error) {
	f, err := os.Open(file)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	b, _, err := codec.Decode(f)
	if err != nil {
		return nil, errors.Wrap(err, file)
	}

	return palette.Extract(b.Image(), n, method)
}
