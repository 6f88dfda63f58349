package storage

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	_ "modernc.org/sqlite"
)

// SQLiteGateway is a Gateway backed by a single kv table in a SQLite file.
type SQLiteGateway struct {
	path string
	db   *sql.DB
}

func NewSQLiteGateway(path string) *SQLiteGateway {
	return &SQLiteGateway{path: path}
}

func (g *SQLiteGateway) Init() error {
	dir := filepath.Dir(g.path)
	if err := os.MkdirAll(dir, 0700); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	db, err := sql.Open("sqlite", g.path)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	g.db = db

	_, err = g.db.Exec(`CREATE TABLE IF NOT EXISTS kv (
		key TEXT PRIMARY KEY,
		value TEXT NOT NULL
	)`)
	if err != nil {
		return fmt.Errorf("failed to create kv table: %w", err)
	}
	return nil
}

func (g *SQLiteGateway) open() error {
	if g.db != nil {
		return nil
	}
	return g.Init()
}

func (g *SQLiteGateway) Close() error {
	if g.db != nil {
		return g.db.Close()
	}
	return nil
}

func (g *SQLiteGateway) Get(key string) (string, error) {
	if err := g.open(); err != nil {
		return "", err
	}
	var value string
	err := g.db.QueryRow(`SELECT value FROM kv WHERE key = ?`, key).Scan(&value)
	if err == sql.ErrNoRows {
		return "", ErrNotFound
	}
	if err != nil {
		return "", fmt.Errorf("failed to get %q: %w", key, err)
	}
	return value, nil
}

func (g *SQLiteGateway) Set(key, value string) error {
	if err := g.open(); err != nil {
		return err
	}
	_, err := g.db.Exec(`INSERT INTO kv (key, value) VALUES (?, ?)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value`, key, value)
	if err != nil {
		return fmt.Errorf("failed to set %q: %w", key, err)
	}
	return nil
}

func (g *SQLiteGateway) Delete(key string) error {
	if err := g.open(); err != nil {
		return err
	}
	if _, err := g.db.Exec(`DELETE FROM kv WHERE key = ?`, key); err != nil {
		return fmt.Errorf("failed to delete %q: %w", key, err)
	}
	return nil
}

func (g *SQLiteGateway) List(prefix string) ([]string, error) {
	if err := g.open(); err != nil {
		return nil, err
	}
	rows, err := g.db.Query(`SELECT key FROM kv WHERE key LIKE ? || '%'`, prefix)
	if err != nil {
		return nil, fmt.Errorf("failed to list %q: %w", prefix, err)
	}
	defer rows.Close()

	var keys []string
	for rows.Next() {
		var k string
		if err := rows.Scan(&k); err != nil {
			return nil, fmt.Errorf("failed to scan key: %w", err)
		}
		keys = append(keys, k)
	}
	return keys, rows.Err()
}

var _ Gateway = (*SQLiteGateway)(nil)
