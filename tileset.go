/*
Package tileset resolves StarCraft terrain coordinates into pixel colors and
gameplay flags.

A tileset is made of five files. A map cell names a megatile, a 32 by 32
pixel square made of 4 by 4 minitiles, by a CV5 group and a subtile within
that group. The CV5 reference selects a VX4 block and a VF4 block; the
subtile then picks the entry for one minitile. VX4 entries point at an 8 by 8
VR4 image, possibly mirrored, whose pixels index the WPE palette.

A Tileset is never modified once built and is safe for concurrent use.
*/
package tileset

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/bodgit/tileset/cv5"
	"github.com/bodgit/tileset/vf4"
	"github.com/bodgit/tileset/vr4"
	"github.com/bodgit/tileset/vx4"
	"github.com/bodgit/tileset/wpe"
)

// Extensions of the tileset files, in the order they are loaded.
var Extensions = []string{".cv5", ".vx4", ".vf4", ".vr4", ".wpe"}

// MegaTile identifies one minitile of a megatile.
type MegaTile struct {
	Group   int // CV5 group
	Subtile int // minitile within the megatile, 0-15 in row-major order
}

func (mt MegaTile) String() string {
	return fmt.Sprintf("%d/%d", mt.Group, mt.Subtile)
}

// Tileset is the set of decoded tables. It must be built with Parse, Open or
// AssetDB.Load.
type Tileset struct {
	cv5 *cv5.Table
	vx4 *vx4.Table
	vf4 *vf4.Table
	vr4 *vr4.Table
	wpe *wpe.Palette
}

// CV5 returns the megatile group table.
func (ts *Tileset) CV5() *cv5.Table { return ts.cv5 }

// VX4 returns the image reference table.
func (ts *Tileset) VX4() *vx4.Table { return ts.vx4 }

// VF4 returns the flag table.
func (ts *Tileset) VF4() *vf4.Table { return ts.vf4 }

// VR4 returns the minitile images.
func (ts *Tileset) VR4() *vr4.Table { return ts.vr4 }

// WPE returns the palette.
func (ts *Tileset) WPE() *wpe.Palette { return ts.wpe }

// Parse decodes a tileset from the raw contents of each file.
func Parse(cv5b, vx4b, vf4b, vr4b, wpeb []byte) (*Tileset, error) {
	var (
		ts  Tileset
		err error
	)

	if ts.cv5, err = cv5.Parse(cv5b); err != nil {
		return nil, err
	}
	if ts.vx4, err = vx4.Parse(vx4b); err != nil {
		return nil, err
	}
	if ts.vf4, err = vf4.Parse(vf4b); err != nil {
		return nil, err
	}
	if ts.vr4, err = vr4.Parse(vr4b); err != nil {
		return nil, err
	}
	if ts.wpe, err = wpe.Parse(wpeb); err != nil {
		return nil, err
	}

	return &ts, nil
}

// Open loads the tileset called name from dir, for example "badlands" reads
// badlands.cv5, badlands.vx4, and so on.
func Open(dir, name string) (*Tileset, error) {
	files, err := readFiles(dir, name)
	if err != nil {
		return nil, err
	}
	return Parse(files[0], files[1], files[2], files[3], files[4])
}

func readFiles(dir, name string) ([][]byte, error) {
	files := make([][]byte, len(Extensions))
	for i, ext := range Extensions {
		b, err := os.ReadFile(filepath.Join(dir, name+ext))
		if err != nil {
			return nil, err
		}
		files[i] = b
	}
	return files, nil
}

// Ref returns the CV5 reference for mt.
func (ts *Tileset) Ref(mt MegaTile) (cv5.Ref, error) {
	return ts.cv5.Ref(mt.Group, mt.Subtile)
}

// ImageRef returns the VX4 entry for mt.
func (ts *Tileset) ImageRef(mt MegaTile) (vx4.Ref, error) {
	r, err := ts.Ref(mt)
	if err != nil {
		return 0, err
	}
	blk, err := ts.vx4.Block(int(r))
	if err != nil {
		return 0, err
	}
	return blk[mt.Subtile], nil
}

// Minitile returns the image for mt, already mirrored if the VX4 entry is
// flipped.
func (ts *Tileset) Minitile(mt MegaTile) (vr4.Block, error) {
	ref, err := ts.ImageRef(mt)
	if err != nil {
		return vr4.Block{}, err
	}
	blk, err := ts.vr4.Block(ref.Index())
	if err != nil {
		return vr4.Block{}, err
	}
	if ref.IsHorizontallyFlipped() {
		return blk.Mirror(), nil
	}
	return blk, nil
}

// Color returns the color of pixel (x, y) of the minitile at mt.
func (ts *Tileset) Color(mt MegaTile, x, y int) (wpe.Color, error) {
	blk, err := ts.Minitile(mt)
	if err != nil {
		return wpe.Color{}, err
	}
	i, err := blk.ColorIndexAt(x, y)
	if err != nil {
		return wpe.Color{}, err
	}
	return ts.wpe.Color(int(i))
}

// SRGB is Color with gamma correction applied.
func (ts *Tileset) SRGB(mt MegaTile, x, y int) ([3]float64, error) {
	c, err := ts.Color(mt, x, y)
	if err != nil {
		return [3]float64{}, err
	}
	return c.SRGB(), nil
}

// Flags returns the gameplay flags of the minitile at mt.
func (ts *Tileset) Flags(mt MegaTile) (vf4.Flags, error) {
	r, err := ts.Ref(mt)
	if err != nil {
		return 0, err
	}
	blk, err := ts.vf4.Block(int(r))
	if err != nil {
		return 0, err
	}
	return blk[mt.Subtile], nil
}
