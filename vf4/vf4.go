/*
Package vf4 implements a decoder for the VF4 minitile flag file.

The file is a list of blocks, one per megatile, each holding sixteen
little-endian 16-bit flag words describing the gameplay properties of the
sixteen minitiles that make up the megatile.
*/
package vf4

import (
	"io"

	"github.com/bodgit/tileset/errs"
	"github.com/bodgit/tileset/internal/record"
)

// BlockSize is the number of flag words per megatile.
const BlockSize = 16

var format = record.Format{
	Name:   "vf4",
	Record: "32-byte flag block",
	Size:   BlockSize * 2,
}

// Flag masks. Elevation is not an enum; each tier is tested by checking all
// of its bits are set so Low also reports Mid and High.
const (
	Walkable   Flags = 0x0001
	Mid        Flags = 0x0002
	High       Flags = 0x0004
	Low        Flags = High | Mid
	BlocksView Flags = 0x0008
	Ramp       Flags = 0x0010
)

// Flags holds the gameplay flags of one minitile.
type Flags uint16

// Has reports whether every bit in mask is set.
func (f Flags) Has(mask Flags) bool {
	return f&mask == mask
}

// IsWalkable reports whether units can walk on the minitile.
func (f Flags) IsWalkable() bool { return f.Has(Walkable) }

// IsElevationMid reports whether the minitile is at mid elevation.
func (f Flags) IsElevationMid() bool { return f.Has(Mid) }

// IsElevationHigh reports whether the minitile is at high elevation.
func (f Flags) IsElevationHigh() bool { return f.Has(High) }

// IsElevationLow reports whether the minitile is at low elevation.
func (f Flags) IsElevationLow() bool { return f.Has(Low) }

// BlocksView reports whether the minitile obstructs line of sight.
func (f Flags) BlocksView() bool { return f.Has(BlocksView) }

// IsRamp reports whether the minitile is a ramp.
func (f Flags) IsRamp() bool { return f.Has(Ramp) }

// Block is the flags of the sixteen minitiles of a megatile.
type Block [BlockSize]Flags

// Table is a decoded VF4 file.
type Table struct {
	blocks []Block
}

func parseBlock(b []byte) (blk Block) {
	var w [BlockSize]uint16
	record.Uint16s(w[:], b)
	for i, v := range w {
		blk[i] = Flags(v)
	}
	return
}

// Parse decodes a VF4 file from b.
func Parse(b []byte) (*Table, error) {
	blocks, err := record.Decode(format, b, parseBlock)
	if err != nil {
		return nil, err
	}
	return &Table{blocks: blocks}, nil
}

// Decode reads a VF4 file from r.
func Decode(r io.Reader) (*Table, error) {
	blocks, err := record.ReadAll(format, r, parseBlock)
	if err != nil {
		return nil, err
	}
	return &Table{blocks: blocks}, nil
}

// Len returns the number of blocks.
func (t *Table) Len() int {
	return len(t.blocks)
}

// Block returns the block at index i.
func (t *Table) Block(i int) (Block, error) {
	if err := errs.CheckIndex(format.Name, i, len(t.blocks)); err != nil {
		return Block{}, err
	}
	return t.blocks[i], nil
}
