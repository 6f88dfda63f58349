package storage

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
)

// FileGateway is a Gateway backed by a single JSON file holding the full
// key-value map. Suited to a personal data set; every Set/Delete rewrites
// the file.
type FileGateway struct {
	path string

	mu      sync.Mutex
	entries map[string]string
	loaded  bool
}

func NewFileGateway(path string) *FileGateway {
	return &FileGateway{path: path}
}

func (g *FileGateway) Init() error {
	dir := filepath.Dir(g.path)
	if err := os.MkdirAll(dir, 0700); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	g.mu.Lock()
	defer g.mu.Unlock()
	if err := g.load(); err != nil {
		return err
	}
	return g.save()
}

// load reads the backing file into memory. Missing file means empty store.
func (g *FileGateway) load() error {
	if g.loaded {
		return nil
	}
	data, err := os.ReadFile(g.path)
	if err != nil {
		if os.IsNotExist(err) {
			g.entries = make(map[string]string)
			g.loaded = true
			return nil
		}
		return fmt.Errorf("failed to read storage: %w", err)
	}
	entries := make(map[string]string)
	if err := json.Unmarshal(data, &entries); err != nil {
		return fmt.Errorf("failed to parse storage: %w", err)
	}
	g.entries = entries
	g.loaded = true
	return nil
}

func (g *FileGateway) save() error {
	data, err := json.MarshalIndent(g.entries, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to serialize storage: %w", err)
	}
	if err := os.WriteFile(g.path, data, 0600); err != nil {
		return fmt.Errorf("failed to write storage: %w", err)
	}
	return nil
}

func (g *FileGateway) Close() error {
	return nil
}

func (g *FileGateway) Get(key string) (string, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	if err := g.load(); err != nil {
		return "", err
	}
	v, ok := g.entries[key]
	if !ok {
		return "", ErrNotFound
	}
	return v, nil
}

func (g *FileGateway) Set(key, value string) error {
	g.mu.Lock()
	defer g.mu.Unlock()
	if err := g.load(); err != nil {
		return err
	}
	g.entries[key] = value
	return g.save()
}

func (g *FileGateway) Delete(key string) error {
	g.mu.Lock()
	defer g.mu.Unlock()
	if err := g.load(); err != nil {
		return err
	}
	if _, ok := g.entries[key]; !ok {
		return nil
	}
	delete(g.entries, key)
	return g.save()
}

func (g *FileGateway) List(prefix string) ([]string, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	if err := g.load(); err != nil {
		return nil, err
	}
	var keys []string
	for k := range g.entries {
		if strings.HasPrefix(k, prefix) {
			keys = append(keys, k)
		}
	}
	return keys, nil
}

var _ Gateway = (*FileGateway)(nil)
