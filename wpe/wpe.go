/*
Package wpe implements a decoder for the WPE tileset palette.

The file is a flat list of 4-byte records, each holding the red, green and
blue components of one color followed by an unused padding byte. Tilesets
ship with 256 colors but any whole number of records is accepted.
*/
package wpe

import (
	"image/color"
	"io"
	"math"

	"github.com/bodgit/tileset/errs"
	"github.com/bodgit/tileset/internal/record"
)

const recordSize = 4

var format = record.Format{
	Name:   "wpe",
	Record: "4-byte RGB palette record",
	Size:   recordSize,
}

// Color is one palette entry.
type Color struct {
	R, G, B uint8
}

// RGB returns the raw components without gamma correction.
func (c Color) RGB() [3]uint8 {
	return [3]uint8{c.R, c.G, c.B}
}

// SRGB returns the components after gamma correction. The curve is applied
// to the raw 0-255 magnitude, not a normalized channel, so the results range
// from 0 to 255^(1/2.2).
func (c Color) SRGB() [3]float64 {
	return [3]float64{Gamma(c.R), Gamma(c.G), Gamma(c.B)}
}

// RGBA implements the color.Color interface. Colors are always opaque.
func (c Color) RGBA() (r, g, b, a uint32) {
	return color.RGBA{c.R, c.G, c.B, 0xff}.RGBA()
}

// Gamma applies x^(1/2.2) to a single raw component.
func Gamma(x uint8) float64 {
	return math.Pow(float64(x), 1/2.2)
}

// Palette is a decoded WPE file.
type Palette struct {
	colors []Color
}

func parseColor(b []byte) Color {
	return Color{b[0], b[1], b[2]}
}

// Parse decodes a WPE palette from b.
func Parse(b []byte) (*Palette, error) {
	colors, err := record.Decode(format, b, parseColor)
	if err != nil {
		return nil, err
	}
	return &Palette{colors: colors}, nil
}

// Decode reads a WPE palette from r.
func Decode(r io.Reader) (*Palette, error) {
	colors, err := record.ReadAll(format, r, parseColor)
	if err != nil {
		return nil, err
	}
	return &Palette{colors: colors}, nil
}

// Len returns the number of colors.
func (p *Palette) Len() int {
	return len(p.colors)
}

// Color returns the color at index i.
func (p *Palette) Color(i int) (Color, error) {
	if err := errs.CheckIndex(format.Name, i, len(p.colors)); err != nil {
		return Color{}, err
	}
	return p.colors[i], nil
}

// ColorPalette returns a copy of the palette for use with the image
// packages.
func (p *Palette) ColorPalette() color.Palette {
	cp := make(color.Palette, len(p.colors))
	for i, c := range p.colors {
		cp[i] = c
	}
	return cp
}
