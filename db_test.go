package tileset

import (
	"bytes"
	"io"
	"log"
	"os"
	"path/filepath"
	"testing"

	"github.com/bodgit/tileset/errs"
	"github.com/bodgit/tileset/wpe"
	"github.com/stretchr/testify/require"
)

func newAssetDB(t *testing.T, logger *log.Logger) *AssetDB {
	db, err := NewAssetDB(filepath.Join(t.TempDir(), "tileset.db"), logger)
	require.NoError(t, err)
	t.Cleanup(func() {
		require.NoError(t, db.Close())
	})
	return db
}

func countAssets(t *testing.T, db *AssetDB) (n int) {
	require.NoError(t, db.db.QueryRow("SELECT COUNT(*) FROM asset").Scan(&n))
	return
}

func TestAssetDB(t *testing.T) {
	dir := t.TempDir()
	newFiles(false).write(t, dir, "badlands")
	newFiles(true).write(t, dir, "jungle")

	var buf bytes.Buffer
	db := newAssetDB(t, log.New(&buf, "", 0))

	require.NoError(t, db.Import(dir, "badlands"))
	require.NoError(t, db.Import(dir, "jungle"))

	// Only the VX4 files differ
	require.Contains(t, buf.String(), "Reusing asset")
	require.Equal(t, 6, countAssets(t, db))
	require.NotContains(t, buf.String(), "unused assets")

	names, err := db.Names()
	require.NoError(t, err)
	require.Equal(t, []string{"badlands", "jungle"}, names)

	ts, err := db.Load("jungle")
	require.NoError(t, err)

	ref, err := ts.ImageRef(MegaTile{})
	require.NoError(t, err)
	require.True(t, ref.IsHorizontallyFlipped())

	c, err := ts.Color(MegaTile{}, 1, 0)
	require.NoError(t, err)
	require.Equal(t, wpe.Color{R: 10, G: 20, B: 30}, c)

	_, err = db.Load("desert")
	require.Error(t, err)
}

func TestAssetDBReplace(t *testing.T) {
	dir := t.TempDir()
	newFiles(false).write(t, dir, "badlands")

	var buf bytes.Buffer
	db := newAssetDB(t, log.New(&buf, "", 0))
	require.NoError(t, db.Import(dir, "badlands"))

	newFiles(true).write(t, dir, "badlands")
	require.NoError(t, db.Import(dir, "badlands"))
	require.Contains(t, buf.String(), "Replacing \"badlands\"")

	// The unflipped VX4 is no longer referenced
	require.Contains(t, buf.String(), "Removed 1 unused assets")
	require.Equal(t, 5, countAssets(t, db))

	names, err := db.Names()
	require.NoError(t, err)
	require.Equal(t, []string{"badlands"}, names)

	ts, err := db.Load("badlands")
	require.NoError(t, err)

	ref, err := ts.ImageRef(MegaTile{})
	require.NoError(t, err)
	require.True(t, ref.IsHorizontallyFlipped())
}

func TestAssetDBImportInvalid(t *testing.T) {
	dir := t.TempDir()
	f := newFiles(false)
	f.vf4 = append(f.vf4, 0)
	f.write(t, dir, "badlands")

	db := newAssetDB(t, log.New(io.Discard, "", 0))
	require.ErrorIs(t, db.Import(dir, "badlands"), errs.ErrTrailingData)

	require.NoError(t, os.Remove(filepath.Join(dir, "badlands.wpe")))
	require.ErrorIs(t, db.Import(dir, "badlands"), os.ErrNotExist)

	names, err := db.Names()
	require.NoError(t, err)
	require.Empty(t, names)
}
