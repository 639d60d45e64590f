package tileset

import (
	"context"

	"github.com/bodgit/tileset/internal/parallel"
	"github.com/bodgit/tileset/vr4"
	"github.com/bodgit/tileset/wpe"
)

// PixelQuery names one pixel of a minitile.
type PixelQuery struct {
	MegaTile
	X, Y int
}

// Colors resolves every query using up to workers goroutines, or GOMAXPROCS
// if workers is less than one. Results are in query order. The first
// failing query cancels the rest and its error is returned.
func (ts *Tileset) Colors(ctx context.Context, queries []PixelQuery, workers int) ([]wpe.Color, error) {
	return parallel.Map(ctx, queries, workers, func(q PixelQuery) (wpe.Color, error) {
		return ts.Color(q.MegaTile, q.X, q.Y)
	})
}

// Minitiles is the batch form of Minitile.
func (ts *Tileset) Minitiles(ctx context.Context, coords []MegaTile, workers int) ([]vr4.Block, error) {
	return parallel.Map(ctx, coords, workers, ts.Minitile)
}
