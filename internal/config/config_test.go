package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"taskline/internal/config"
)

func TestDefaultIsValid(t *testing.T) {
	cfg := config.Default()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("default config invalid: %v", err)
	}
	if cfg.Files.Tasks != "tasks.txt" || cfg.Files.Users != "user.txt" {
		t.Fatalf("unexpected backing file names: %+v", cfg.Files)
	}
	if cfg.DefaultAccount.Username != "admin" || cfg.DefaultAccount.Password != "password" {
		t.Fatalf("unexpected default account: %+v", cfg.DefaultAccount)
	}
}

func TestFromYAMLRejectsIncomplete(t *testing.T) {
	_, err := config.FromYAML([]byte("files:\n  tasks: tasks.txt\n"))
	if err == nil {
		t.Fatalf("expected validation error for missing fields")
	}
}

func TestFromYAMLRejectsSharedBackingFile(t *testing.T) {
	data := []byte(`files:
  tasks: data.txt
  users: data.txt
reports:
  task_overview: a.txt
  user_overview: b.txt
default_account:
  username: admin
  password: password
`)
	if _, err := config.FromYAML(data); err == nil {
		t.Fatalf("expected rejection when tasks and users share a file")
	}
}

func TestLoadOptional(t *testing.T) {
	dir := t.TempDir()
	cfg, err := config.LoadOptional(dir)
	if err != nil {
		t.Fatalf("load without taskline.yml: %v", err)
	}
	if cfg.Files.Tasks != "tasks.txt" {
		t.Fatalf("expected default config, got %+v", cfg.Files)
	}

	custom := []byte(`files:
  tasks: work.txt
  users: people.txt
reports:
  task_overview: overview.txt
  user_overview: people_overview.txt
default_account:
  username: root
  password: hunter2
`)
	if err := os.WriteFile(filepath.Join(dir, "taskline.yml"), custom, 0o644); err != nil {
		t.Fatal(err)
	}
	cfg, err = config.LoadOptional(dir)
	if err != nil {
		t.Fatalf("load custom: %v", err)
	}
	if cfg.Files.Tasks != "work.txt" || cfg.DefaultAccount.Username != "root" {
		t.Fatalf("custom config not applied: %+v", cfg)
	}
}
