// Package store persists chunk columns and rendered tiles in a SQLite
// database. Payloads are zstd compressed.
package store

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/klauspost/compress/zstd"
	_ "modernc.org/sqlite"

	"github.com/OCharnyshevich/mapcache/internal/mapcache"
	"github.com/OCharnyshevich/mapcache/internal/world/gen"
)

// Store is a chunk and tile database.
type Store struct {
	db  *sql.DB
	enc *zstd.Encoder
	dec *zstd.Decoder
}

// Open opens or creates the database at path.
func Open(path string) (*Store, error) {
	if path == "" {
		return nil, errors.New("empty database path")
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("create database directory: %w", err)
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(0)

	if err := initPragmas(db); err != nil {
		_ = db.Close()
		return nil, err
	}
	if err := initSchema(db); err != nil {
		_ = db.Close()
		return nil, err
	}

	enc, err := zstd.NewWriter(nil, zstd.WithEncoderLevel(zstd.SpeedDefault))
	if err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("create zstd encoder: %w", err)
	}
	dec, err := zstd.NewReader(nil)
	if err != nil {
		_ = enc.Close()
		_ = db.Close()
		return nil, fmt.Errorf("create zstd decoder: %w", err)
	}
	return &Store{db: db, enc: enc, dec: dec}, nil
}

func initPragmas(db *sql.DB) error {
	pragmas := []string{
		"PRAGMA journal_mode=WAL;",
		"PRAGMA synchronous=NORMAL;",
		"PRAGMA busy_timeout=5000;",
		"PRAGMA temp_store=MEMORY;",
	}
	for _, p := range pragmas {
		if _, err := db.Exec(p); err != nil {
			return fmt.Errorf("set pragma %q: %w", p, err)
		}
	}
	return nil
}

func initSchema(db *sql.DB) error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS chunks (
			cx INTEGER NOT NULL,
			cz INTEGER NOT NULL,
			data BLOB NOT NULL,
			PRIMARY KEY (cx, cz)
		);`,
		`CREATE TABLE IF NOT EXISTS tiles (
			key TEXT PRIMARY KEY,
			data BLOB NOT NULL
		);`,
	}
	for _, s := range stmts {
		if _, err := db.Exec(s); err != nil {
			return fmt.Errorf("create schema: %w", err)
		}
	}
	return nil
}

// Close closes the database.
func (s *Store) Close() error {
	s.dec.Close()
	_ = s.enc.Close()
	return s.db.Close()
}

// SaveChunk writes a chunk column, replacing any previous copy.
func (s *Store) SaveChunk(pos mapcache.ChunkCoord, c *gen.ChunkData) error {
	payload := s.enc.EncodeAll(encodeChunk(c), nil)
	_, err := s.db.Exec(
		`INSERT INTO chunks (cx, cz, data) VALUES (?, ?, ?)
		 ON CONFLICT(cx, cz) DO UPDATE SET data = excluded.data;`,
		pos.X, pos.Z, payload,
	)
	if err != nil {
		return fmt.Errorf("save chunk %s: %w", pos, err)
	}
	return nil
}

// LoadChunk reads a chunk column, or returns nil if it was never saved.
func (s *Store) LoadChunk(pos mapcache.ChunkCoord) (*gen.ChunkData, error) {
	var payload []byte
	err := s.db.QueryRow(`SELECT data FROM chunks WHERE cx = ? AND cz = ?;`, pos.X, pos.Z).Scan(&payload)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("load chunk %s: %w", pos, err)
	}

	raw, err := s.dec.DecodeAll(payload, nil)
	if err != nil {
		return nil, fmt.Errorf("decompress chunk %s: %w", pos, err)
	}
	c, err := decodeChunk(raw)
	if err != nil {
		return nil, fmt.Errorf("decode chunk %s: %w", pos, err)
	}
	return c, nil
}

// ChunkCount returns the number of stored chunk columns.
func (s *Store) ChunkCount() (int, error) {
	var n int
	if err := s.db.QueryRow(`SELECT COUNT(*) FROM chunks;`).Scan(&n); err != nil {
		return 0, fmt.Errorf("count chunks: %w", err)
	}
	return n, nil
}

// SaveTile writes a rendered tile payload under key.
func (s *Store) SaveTile(key string, data []byte) error {
	_, err := s.db.Exec(
		`INSERT INTO tiles (key, data) VALUES (?, ?)
		 ON CONFLICT(key) DO UPDATE SET data = excluded.data;`,
		key, s.enc.EncodeAll(data, nil),
	)
	if err != nil {
		return fmt.Errorf("save tile %s: %w", key, err)
	}
	return nil
}

// LoadTile reads a tile payload, or returns nil if it was never saved.
func (s *Store) LoadTile(key string) ([]byte, error) {
	var payload []byte
	err := s.db.QueryRow(`SELECT data FROM tiles WHERE key = ?;`, key).Scan(&payload)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("load tile %s: %w", key, err)
	}
	data, err := s.dec.DecodeAll(payload, nil)
	if err != nil {
		return nil, fmt.Errorf("decompress tile %s: %w", key, err)
	}
	return data, nil
}
