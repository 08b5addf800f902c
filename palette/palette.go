/*
Package palette reads and writes palette files and derives palettes from
images.

Two file formats are understood. GIMP palettes start with a "GIMP Palette"
line followed by optional Name and Columns headers, "#" comments and one
color per line as three decimal components and an optional name:

	GIMP Palette
	Name: Retro
	#
	 26  28  44	Untitled

Hex palettes list one RRGGBB color per line, with or without a leading "#".
Lines starting with ";" and blank lines are ignored.
*/
package palette

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/bodgit/pixelit/pixel"
	"github.com/pkg/errors"
)

const gimpHeader = "GIMP Palette"

var errSyntax = errors.New("palette: syntax error")

var presets = map[string]pixel.Palette{
	"retro":   pixel.Retro,
	"gameboy": pixel.GameBoy,
}

// Lookup returns a copy of the named built-in palette.
func Lookup(name string) (pixel.Palette, bool) {
	p, ok := presets[strings.ToLower(name)]
	return p.Clone(), ok
}

// Names returns the names of the built-in palettes.
func Names() []string {
	return []string{"gameboy", "retro"}
}

// Load reads a palette file.
func Load(file string) (pixel.Palette, error) {
	f, err := os.Open(file)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	p, err := Parse(f)
	if err != nil {
		return nil, errors.Wrap(err, file)
	}
	return p, nil
}

// Parse reads a GIMP or hex palette, detecting which from the first line.
func Parse(r io.Reader) (pixel.Palette, error) {
	s := bufio.NewScanner(r)

	var (
		p     = pixel.Palette{}
		line  int
		parse = parseHex
	)
	for s.Scan() {
		line++
		text := strings.TrimSpace(s.Text())
		if line == 1 && text == gimpHeader {
			parse = parseGIMP
			continue
		}
		c, ok, err := parse(text)
		if err != nil {
			return nil, errors.Wrapf(err, "line %d", line)
		}
		if ok {
			p = append(p, c)
		}
	}
	if err := s.Err(); err != nil {
		return nil, err
	}

	if len(p) == 0 {
		return nil, pixel.ErrEmptyPalette
	}

	return p, nil
}

func parseGIMP(text string) (pixel.Color, bool, error) {
	if text == "" || text[0] == '#' || strings.HasPrefix(text, "Name:") || strings.HasPrefix(text, "Columns:") {
		return pixel.Color{}, false, nil
	}

	fields := strings.Fields(text)
	if len(fields) < 3 {
		return pixel.Color{}, false, errSyntax
	}
	var rgb [3]int
	for i := range rgb {
		v, err := strconv.Atoi(fields[i])
		if err != nil || v < 0 || v > 0xff {
			return pixel.Color{}, false, errSyntax
		}
		rgb[i] = v
	}
	return pixel.NewColor(rgb[0], rgb[1], rgb[2]), true, nil
}

func isHex(s string) bool {
	if len(s) != 6 {
		return false
	}
	_, err := strconv.ParseUint(s, 16, 32)
	return err == nil
}

func parseHex(text string) (pixel.Color, bool, error) {
	if text == "" || text[0] == ';' {
		return pixel.Color{}, false, nil
	}

	s := strings.TrimPrefix(text, "#")
	if !isHex(s) {
		// "#" is also a comment unless a color follows
		if text[0] == '#' {
			return pixel.Color{}, false, nil
		}
		return pixel.Color{}, false, errSyntax
	}

	v, _ := strconv.ParseUint(s, 16, 32)
	return pixel.Color{R: uint8(v >> 16), G: uint8(v >> 8), B: uint8(v)}, true, nil
}

// Encode writes p to w as a GIMP palette.
func Encode(w io.Writer, name string, p pixel.Palette) error {
	bw := bufio.NewWriter(w)
	fmt.Fprintln(bw, gimpHeader)
	if name != "" {
		fmt.Fprintf(bw, "Name: %s\n", name)
	}
	fmt.Fprintln(bw, "#")
	for _, c := range p {
		fmt.Fprintf(bw, "%3d %3d %3d\t#%02x%02x%02x\n", c.R, c.G, c.B, c.R, c.G, c.B)
	}
	return bw.Flush()
}
