package app_test

import (
	"os"
	"path/filepath"
	"testing"

	"taskline/internal/app"
)

func TestLoadBootstrapsFreshWorkspace(t *testing.T) {
	dir := t.TempDir()
	env, err := app.Load(dir)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if err := env.Accounts.Authenticate("admin", "password"); err != nil {
		t.Fatalf("fresh workspace must have the default login: %v", err)
	}
	data, err := os.ReadFile(filepath.Join(dir, "user.txt"))
	if err != nil {
		t.Fatalf("account file not seeded: %v", err)
	}
	if string(data) != "admin;password\n" {
		t.Fatalf("unexpected seed contents: %q", data)
	}
	if _, err := os.Stat(filepath.Join(dir, "tasks.txt")); err != nil {
		t.Fatalf("task file not created: %v", err)
	}
	if env.Events.Path != filepath.Join(dir, ".taskline", "events.jsonl") {
		t.Fatalf("unexpected event log path: %s", env.Events.Path)
	}
}

func TestLoadSurfacesMalformedTaskFile(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "tasks.txt"), []byte("only;four;fields;here\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := app.Load(dir); err == nil {
		t.Fatalf("expected hard failure on malformed backing file")
	}
}
