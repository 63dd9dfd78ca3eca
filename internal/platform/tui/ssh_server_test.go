package tui

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/vovakirdan/tui-runner/internal/config"
)

func TestResolveHostKeyPathCreatesDir(t *testing.T) {
	want := filepath.Join(t.TempDir(), "keys", "nested", "host_key")
	got, err := resolveHostKeyPath(want)
	if err != nil {
		t.Fatalf("resolveHostKeyPath() = %v", err)
	}
	if got != want {
		t.Errorf("path = %q, expected %q", got, want)
	}
	if info, err := os.Stat(filepath.Dir(want)); err != nil || !info.IsDir() {
		t.Errorf("key directory not created: %v", err)
	}
}

func TestNewSSHServer(t *testing.T) {
	dir := t.TempDir()
	cfg := DefaultSSHServerConfig()
	cfg.Address = "127.0.0.1:0"
	cfg.HostKeyPath = filepath.Join(dir, "host_key")
	cfg.DBPath = filepath.Join(dir, "scores.db")

	srv, err := NewSSHServer(cfg, config.DefaultRunSettings(), nil)
	if err != nil {
		t.Fatalf("NewSSHServer() = %v", err)
	}
	if srv.store == nil {
		t.Error("scores database should be open")
	}
	if srv.Online() != 0 || srv.Addr() != cfg.Address {
		t.Errorf("Online() = %d, Addr() = %q", srv.Online(), srv.Addr())
	}
	if err := srv.Shutdown(); err != nil {
		t.Errorf("Shutdown() = %v", err)
	}
	if srv.store != nil {
		t.Error("Shutdown should close the store")
	}
}
