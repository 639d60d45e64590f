/*
Package vr4 implements a decoder for the VR4 minitile image file.

Each minitile is 8 by 8 pixels stored as 64 single-byte palette indices in
row-major order. The file is nothing more than consecutive minitiles.
*/
package vr4

import (
	"context"
	"io"

	"github.com/bodgit/tileset/errs"
	"github.com/bodgit/tileset/internal/parallel"
	"github.com/bodgit/tileset/internal/record"
)

const (
	// Side is the width and height of a minitile in pixels.
	Side = 8
	// BlockSize is the number of pixels in a minitile.
	BlockSize = Side * Side
)

var format = record.Format{
	Name:   "vr4",
	Record: "64-byte minitile",
	Size:   BlockSize,
}

// Block is the palette index of every pixel in one minitile.
type Block [BlockSize]uint8

// ColorIndexAt returns the palette index of the pixel at (x, y).
func (b Block) ColorIndexAt(x, y int) (uint8, error) {
	if err := errs.CheckIndex("minitile x", x, Side); err != nil {
		return 0, err
	}
	if err := errs.CheckIndex("minitile y", y, Side); err != nil {
		return 0, err
	}
	return b[y*Side+x], nil
}

// Mirror returns the block reversed left to right.
func (b Block) Mirror() Block {
	var m Block
	for y := 0; y < Side; y++ {
		for x := 0; x < Side; x++ {
			m[y*Side+x] = b[y*Side+Side-1-x]
		}
	}
	return m
}

// Table is a decoded VR4 file.
type Table struct {
	blocks []Block
}

func parseBlock(b []byte) (blk Block) {
	copy(blk[:], b)
	return
}

// Parse decodes a VR4 file from b.
func Parse(b []byte) (*Table, error) {
	blocks, err := record.Decode(format, b, parseBlock)
	if err != nil {
		return nil, err
	}
	return &Table{blocks: blocks}, nil
}

// Decode reads a VR4 file from r.
func Decode(r io.Reader) (*Table, error) {
	blocks, err := record.ReadAll(format, r, parseBlock)
	if err != nil {
		return nil, err
	}
	return &Table{blocks: blocks}, nil
}

// Len returns the number of minitiles.
func (t *Table) Len() int {
	return len(t.blocks)
}

// Block returns the minitile at index i.
func (t *Table) Block(i int) (Block, error) {
	if err := errs.CheckIndex(format.Name, i, len(t.blocks)); err != nil {
		return Block{}, err
	}
	return t.blocks[i], nil
}

// Each calls fn for every minitile in order, stopping at the first error.
func (t *Table) Each(fn func(i int, b Block) error) error {
	for i, b := range t.blocks {
		if err := fn(i, b); err != nil {
			return err
		}
	}
	return nil
}

// ParallelEach calls fn for every minitile using up to workers goroutines,
// or GOMAXPROCS if workers is less than one. Calls happen in no particular
// order. The first error stops any calls not yet started and is returned.
func (t *Table) ParallelEach(ctx context.Context, workers int, fn func(i int, b Block) error) error {
	indices := make([]int, len(t.blocks))
	for i := range indices {
		indices[i] = i
	}
	_, err := parallel.Map(ctx, indices, workers, func(i int) (struct{}, error) {
		return struct{}{}, fn(i, t.blocks[i])
	})
	return err
}
