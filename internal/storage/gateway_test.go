package storage

import (
	"path/filepath"
	"sort"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
)

// exerciseGateway runs the shared contract checks against any Gateway.
func exerciseGateway(t *testing.T, gw Gateway) {
	t.Helper()

	if _, err := gw.Get("missing"); err != ErrNotFound {
		t.Errorf("Get on absent key: expected ErrNotFound, got %v", err)
	}

	if err := gw.Set("playbook:1", "one"); err != nil {
		t.Fatalf("Set failed: %v", err)
	}
	if err := gw.Set("playbook:2", "two"); err != nil {
		t.Fatalf("Set failed: %v", err)
	}
	if err := gw.Set("onboarding-seen", "true"); err != nil {
		t.Fatalf("Set failed: %v", err)
	}

	v, err := gw.Get("playbook:1")
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if v != "one" {
		t.Errorf("Expected 'one', got %q", v)
	}

	// Overwrite
	if err := gw.Set("playbook:1", "uno"); err != nil {
		t.Fatalf("Set failed: %v", err)
	}
	v, _ = gw.Get("playbook:1")
	if v != "uno" {
		t.Errorf("Expected overwrite to 'uno', got %q", v)
	}

	keys, err := gw.List("playbook:")
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	sort.Strings(keys)
	if len(keys) != 2 || keys[0] != "playbook:1" || keys[1] != "playbook:2" {
		t.Errorf("List returned unexpected keys: %v", keys)
	}

	if err := gw.Delete("playbook:1"); err != nil {
		t.Fatalf("Delete failed: %v", err)
	}
	if _, err := gw.Get("playbook:1"); err != ErrNotFound {
		t.Errorf("Get after delete: expected ErrNotFound, got %v", err)
	}

	// Deleting an absent key is not an error.
	if err := gw.Delete("playbook:1"); err != nil {
		t.Errorf("Delete on absent key: expected nil, got %v", err)
	}
}

func TestFileGateway(t *testing.T) {
	gw := NewFileGateway(filepath.Join(t.TempDir(), "playbook.json"))
	if err := gw.Init(); err != nil {
		t.Fatalf("Init failed: %v", err)
	}
	defer gw.Close()
	exerciseGateway(t, gw)
}

func TestFileGatewayPersistsAcrossReopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "playbook.json")

	gw := NewFileGateway(path)
	if err := gw.Init(); err != nil {
		t.Fatalf("Init failed: %v", err)
	}
	if err := gw.Set("playbook:1", "one"); err != nil {
		t.Fatalf("Set failed: %v", err)
	}

	reopened := NewFileGateway(path)
	v, err := reopened.Get("playbook:1")
	if err != nil {
		t.Fatalf("Get after reopen failed: %v", err)
	}
	if v != "one" {
		t.Errorf("Expected 'one' after reopen, got %q", v)
	}
}

func TestSQLiteGateway(t *testing.T) {
	gw := NewSQLiteGateway(filepath.Join(t.TempDir(), "playbook.db"))
	if err := gw.Init(); err != nil {
		t.Fatalf("Init failed: %v", err)
	}
	defer gw.Close()
	exerciseGateway(t, gw)
}

func TestRedisGateway(t *testing.T) {
	srv := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: srv.Addr()})
	gw := NewRedisGatewayWithClient(client)
	if err := gw.Init(); err != nil {
		t.Fatalf("Init failed: %v", err)
	}
	defer gw.Close()
	exerciseGateway(t, gw)
}
