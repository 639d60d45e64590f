/*
Package cv5 implements a decoder for the CV5 megatile group file.

Each group starts with 20 bytes of terrain flags followed by sixteen
little-endian 16-bit megatile references. A map cell selects a group and one
of its sixteen references; the reference then selects a block in both the
VX4 and VF4 files.

The leading 20 bytes are skipped without being interpreted.
*/
package cv5

import (
	"io"

	"github.com/bodgit/tileset/errs"
	"github.com/bodgit/tileset/internal/record"
)

const (
	headerSize = 20
	// GroupSize is the number of references per group.
	GroupSize = 16
)

var format = record.Format{
	Name:   "cv5",
	Record: "52-byte megatile group",
	Size:   headerSize + GroupSize*2,
}

// Ref is the index of a VX4 and VF4 block.
type Ref uint16

// Group is the sixteen references of one group.
type Group [GroupSize]Ref

// Table is a decoded CV5 file.
type Table struct {
	groups []Group
}

func parseGroup(b []byte) (g Group) {
	var w [GroupSize]uint16
	record.Uint16s(w[:], b[headerSize:])
	for i, v := range w {
		g[i] = Ref(v)
	}
	return
}

// Parse decodes a CV5 file from b.
func Parse(b []byte) (*Table, error) {
	groups, err := record.Decode(format, b, parseGroup)
	if err != nil {
		return nil, err
	}
	return &Table{groups: groups}, nil
}

// Decode reads a CV5 file from r.
func Decode(r io.Reader) (*Table, error) {
	groups, err := record.ReadAll(format, r, parseGroup)
	if err != nil {
		return nil, err
	}
	return &Table{groups: groups}, nil
}

// Len returns the number of groups.
func (t *Table) Len() int {
	return len(t.groups)
}

// Group returns the group at index i.
func (t *Table) Group(i int) (Group, error) {
	if err := errs.CheckIndex(format.Name, i, len(t.groups)); err != nil {
		return Group{}, err
	}
	return t.groups[i], nil
}

// Ref returns reference j of group i.
func (t *Table) Ref(i, j int) (Ref, error) {
	g, err := t.Group(i)
	if err != nil {
		return 0, err
	}
	if err := errs.CheckIndex(format.Name+" group", j, GroupSize); err != nil {
		return 0, err
	}
	return g[j], nil
}
