package storage

import (
	"database/sql"
	"fmt"

	_ "github.com/lib/pq"
)

// PostgresGateway is a Gateway backed by a single kv table in PostgreSQL,
// for users who keep their data on a shared database host.
type PostgresGateway struct {
	connStr string
	db      *sql.DB
}

func NewPostgresGateway(connStr string) *PostgresGateway {
	return &PostgresGateway{connStr: connStr}
}

func (g *PostgresGateway) Init() error {
	db, err := sql.Open("postgres", g.connStr)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	g.db = db

	if err := g.db.Ping(); err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}

	_, err = g.db.Exec(`CREATE TABLE IF NOT EXISTS kv (
		key TEXT PRIMARY KEY,
		value TEXT NOT NULL
	)`)
	if err != nil {
		return fmt.Errorf("failed to create kv table: %w", err)
	}
	return nil
}

func (g *PostgresGateway) open() error {
	if g.db != nil {
		return nil
	}
	return g.Init()
}

func (g *PostgresGateway) Close() error {
	if g.db != nil {
		return g.db.Close()
	}
	return nil
}

func (g *PostgresGateway) Get(key string) (string, error) {
	if err := g.open(); err != nil {
		return "", err
	}
	var value string
	err := g.db.QueryRow(`SELECT value FROM kv WHERE key = $1`, key).Scan(&value)
	if err == sql.ErrNoRows {
		return "", ErrNotFound
	}
	if err != nil {
		return "", fmt.Errorf("failed to get %q: %w", key, err)
	}
	return value, nil
}

func (g *PostgresGateway) Set(key, value string) error {
	if err := g.open(); err != nil {
		return err
	}
	_, err := g.db.Exec(`INSERT INTO kv (key, value) VALUES ($1, $2)
		ON CONFLICT (key) DO UPDATE SET value = EXCLUDED.value`, key, value)
	if err != nil {
		return fmt.Errorf("failed to set %q: %w", key, err)
	}
	return nil
}

func (g *PostgresGateway) Delete(key string) error {
	if err := g.open(); err != nil {
		return err
	}
	if _, err := g.db.Exec(`DELETE FROM kv WHERE key = $1`, key); err != nil {
		return fmt.Errorf("failed to delete %q: %w", key, err)
	}
	return nil
}

func (g *PostgresGateway) List(prefix string) ([]string, error) {
	if err := g.open(); err != nil {
		return nil, err
	}
	rows, err := g.db.Query(`SELECT key FROM kv WHERE key LIKE $1 || '%'`, prefix)
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

var _ Gateway = (*PostgresGateway)(nil)
