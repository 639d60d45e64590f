package tileset

import (
	"database/sql"
	"fmt"
	"log"

	"github.com/cespare/xxhash/v2"
	"github.com/klauspost/compress/zstd"
	_ "github.com/mattn/go-sqlite3"
)

// AssetDB stores tileset files in an SQLite database. Files are validated
// before they are stored, compressed, and shared between tilesets that use
// identical content.
type AssetDB struct {
	db     *sql.DB
	logger *log.Logger

	enc *zstd.Encoder
	dec *zstd.Decoder
}

// NewAssetDB opens or creates the database in file.
func NewAssetDB(file string, logger *log.Logger) (*AssetDB, error) {
	db, err := sql.Open("sqlite3", fmt.Sprintf("%s?_foreign_keys=on", file))
	if err != nil {
		return nil, err
	}
	db.SetMaxOpenConns(10)

	if _, err = db.Exec("CREATE TABLE IF NOT EXISTS asset (id INTEGER PRIMARY KEY NOT NULL, hash TEXT NOT NULL UNIQUE, size INTEGER NOT NULL, data BLOB NOT NULL)"); err != nil {
		db.Close()
		return nil, err
	}

	if _, err = db.Exec("CREATE TABLE IF NOT EXISTS tileset (id INTEGER PRIMARY KEY NOT NULL, name TEXT NOT NULL UNIQUE)"); err != nil {
		db.Close()
		return nil, err
	}

	if _, err = db.Exec("CREATE TABLE IF NOT EXISTS tileset_file (tileset_id INTEGER NOT NULL, ext TEXT NOT NULL, asset_id INTEGER NOT NULL, PRIMARY KEY(tileset_id, ext), FOREIGN KEY(tileset_id) REFERENCES tileset(id), FOREIGN KEY(asset_id) REFERENCES asset(id))"); err != nil {
		db.Close()
		return nil, err
	}

	enc, err := zstd.NewWriter(nil, zstd.WithZeroFrames(true))
	if err != nil {
		db.Close()
		return nil, err
	}

	dec, err := zstd.NewReader(nil)
	if err != nil {
		enc.Close()
		db.Close()
		return nil, err
	}

	return &AssetDB{
		db:     db,
		logger: logger,
		enc:    enc,
		dec:    dec,
	}, nil
}

// Close closes the database.
func (db *AssetDB) Close() error {
	db.dec.Close()
	if err := db.enc.Close(); err != nil {
		db.db.Close()
		return err
	}
	return db.db.Close()
}

// Import reads the tileset called name from dir, checks every file decodes,
// and stores it, replacing any tileset already stored under that name.
func (db *AssetDB) Import(dir, name string) error {
	files, err := readFiles(dir, name)
	if err != nil {
		return err
	}

	ts, err := Parse(files[0], files[1], files[2], files[3], files[4])
	if err != nil {
		return err
	}

	tx, err := db.db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	id, err := db.addTileset(tx, name)
	if err != nil {
		return err
	}

	for i, ext := range Extensions {
		asset, err := db.addAsset(tx, files[i])
		if err != nil {
			return err
		}
		if _, err := tx.Exec("INSERT OR REPLACE INTO tileset_file (tileset_id, ext, asset_id) VALUES (?, ?, ?)", id, ext, asset); err != nil {
			return err
		}
	}

	result, err := tx.Exec("DELETE FROM asset WHERE id NOT IN (SELECT asset_id FROM tileset_file)")
	if err != nil {
		return err
	}
	if n, err := result.RowsAffected(); err == nil && n > 0 {
		db.logger.Printf("Removed %d unused assets\n", n)
	}

	if err := tx.Commit(); err != nil {
		return err
	}

	db.logger.Printf("Imported \"%s\" with %d megatile groups, %d minitiles, %d colors\n", name, ts.CV5().Len(), ts.VR4().Len(), ts.WPE().Len())

	return nil
}

func (db *AssetDB) addTileset(tx *sql.Tx, name string) (int64, error) {
	var id int64
	switch err := tx.QueryRow("SELECT id FROM tileset WHERE name = ?", name).Scan(&id); err {
	case sql.ErrNoRows:
		result, err := tx.Exec("INSERT INTO tileset (name) VALUES (?)", name)
		if err != nil {
			return 0, err
		}
		return result.LastInsertId()
	case nil:
		db.logger.Printf("Replacing \"%s\"\n", name)
		return id, nil
	default:
		return 0, err
	}
}

func (db *AssetDB) addAsset(tx *sql.Tx, b []byte) (int64, error) {
	hash := fmt.Sprintf("%016X", xxhash.Sum64(b))

	var id int64
	switch err := tx.QueryRow("SELECT id FROM asset WHERE hash = ?", hash).Scan(&id); err {
	case sql.ErrNoRows:
		result, err := tx.Exec("INSERT INTO asset (hash, size, data) VALUES (?, ?, ?)", hash, len(b), db.enc.EncodeAll(b, nil))
		if err != nil {
			return 0, err
		}
		return result.LastInsertId()
	case nil:
		db.logger.Printf("Reusing asset %s\n", hash)
		return id, nil
	default:
		return 0, err
	}
}

// Load decodes the tileset stored under name.
func (db *AssetDB) Load(name string) (*Tileset, error) {
	rows, err := db.db.Query("SELECT f.ext, a.size, a.data FROM tileset AS t JOIN tileset_file AS f ON f.tileset_id = t.id JOIN asset AS a ON f.asset_id = a.id WHERE t.name = ?", name)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	files := make(map[string][]byte, len(Extensions))
	for rows.Next() {
		var (
			ext  string
			size int
			data []byte
		)
		if err := rows.Scan(&ext, &size, &data); err != nil {
			return nil, err
		}
		b, err := db.dec.DecodeAll(data, make([]byte, 0, size))
		if err != nil {
			return nil, fmt.Errorf("tileset: %s%s: %w", name, ext, err)
		}
		files[ext] = b
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	if len(files) == 0 {
		return nil, fmt.Errorf("tileset: no tileset named \"%s\"", name)
	}

	for _, ext := range Extensions {
		if _, ok := files[ext]; !ok {
			return nil, fmt.Errorf("tileset: \"%s\" has no %s file", name, ext)
		}
	}

	return Parse(files[".cv5"], files[".vx4"], files[".vf4"], files[".vr4"], files[".wpe"])
}

// Names returns the names of every stored tileset in alphabetical order.
func (db *AssetDB) Names() ([]string, error) {
	rows, err := db.db.Query("SELECT name FROM tileset ORDER BY name")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var names []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, err
		}
		names = append(names, name)
	}
	return names, rows.Err()
}
