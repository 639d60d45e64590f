/*
Package vx4 implements a decoder for the VX4 minitile image reference file.

The file is a list of blocks, one per megatile, each holding sixteen
little-endian 16-bit references. Bit 0 of a reference is set when the
minitile is drawn flipped horizontally and the remaining 15 bits are the
index of the image in the VR4 file.
*/
package vx4

import (
	"io"

	"github.com/bodgit/tileset/errs"
	"github.com/bodgit/tileset/internal/record"
)

// BlockSize is the number of references per megatile.
const BlockSize = 16

var format = record.Format{
	Name:   "vx4",
	Record: "32-byte image reference block",
	Size:   BlockSize * 2,
}

// Ref points at a minitile image.
type Ref uint16

// IsHorizontallyFlipped reports whether the image is drawn mirrored.
func (r Ref) IsHorizontallyFlipped() bool {
	return r&1 == 1
}

// Index returns the VR4 image index.
func (r Ref) Index() int {
	return int(r >> 1)
}

// Block is the image references of the sixteen minitiles of a megatile.
type Block [BlockSize]Ref

// Table is a decoded VX4 file.
type Table struct {
	blocks []Block
}

func parseBlock(b []byte) (blk Block) {
	var w [BlockSize]uint16
	record.Uint16s(w[:], b)
	for i, v := range w {
		blk[i] = Ref(v)
	}
	return
}

// Parse decodes a VX4 file from b.
func Parse(b []byte) (*Table, error) {
	blocks, err := record.Decode(format, b, parseBlock)
	if err != nil {
		return nil, err
	}
	return &Table{blocks: blocks}, nil
}

// Decode reads a VX4 file from r.
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
