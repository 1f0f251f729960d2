package store_test

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"taskline/internal/domain"
	"taskline/internal/store"
)

var defaultAccount = domain.Account{Username: "admin", Password: "password"}

func openDir(t *testing.T, dir string) (*store.AccountDirectory, *bytes.Buffer) {
	t.Helper()
	diag := &bytes.Buffer{}
	d, err := store.OpenAccounts(filepath.Join(dir, "user.txt"), defaultAccount, diag)
	if err != nil {
		t.Fatalf("open accounts: %v", err)
	}
	return d, diag
}

func TestOpenAccountsMissingFile(t *testing.T) {
	d, _ := openDir(t, t.TempDir())
	if len(d.Usernames()) != 0 {
		t.Fatalf("expected empty directory, got %v", d.Usernames())
	}
}

func TestRegisterSeedsDefaultAccount(t *testing.T) {
	dir := t.TempDir()
	d, _ := openDir(t, dir)
	if err := d.Register("bob", "pw", "pw"); err != nil {
		t.Fatalf("register: %v", err)
	}
	data, err := os.ReadFile(filepath.Join(dir, "user.txt"))
	if err != nil {
		t.Fatal(err)
	}
	if string(data) != "admin;password\nbob;pw\n" {
		t.Fatalf("unexpected file contents: %q", data)
	}
	if got := d.Usernames(); len(got) != 2 || got[0] != "admin" || got[1] != "bob" {
		t.Fatalf("usernames: %v", got)
	}
	if err := d.Authenticate("admin", "password"); err != nil {
		t.Fatalf("default account not usable: %v", err)
	}
}

func TestRegisterCaseFoldsAndRejectsDuplicates(t *testing.T) {
	d, _ := openDir(t, t.TempDir())
	if err := d.Register("Alice", "pw", "pw"); err != nil {
		t.Fatalf("register: %v", err)
	}
	if !d.Exists("alice") {
		t.Fatalf("username not case-folded at entry")
	}
	if err := d.Register("ALICE", "other", "other"); !errors.Is(err, store.ErrDuplicateUsername) {
		t.Fatalf("want ErrDuplicateUsername, got %v", err)
	}
}

func TestRegisterPasswordMismatch(t *testing.T) {
	dir := t.TempDir()
	d, _ := openDir(t, dir)
	if err := d.Register("bob", "pw", "other"); !errors.Is(err, store.ErrPasswordMismatch) {
		t.Fatalf("want ErrPasswordMismatch, got %v", err)
	}
	if d.Exists("bob") {
		t.Fatalf("rejected registration still inserted")
	}
}

func TestAuthenticate(t *testing.T) {
	d, _ := openDir(t, t.TempDir())
	if err := d.Register("bob", "pw", "pw"); err != nil {
		t.Fatal(err)
	}
	if err := d.Authenticate("nobody", "x"); !errors.Is(err, store.ErrUnknownUser) {
		t.Fatalf("want ErrUnknownUser, got %v", err)
	}
	if err := d.Authenticate("bob", "wrong"); !errors.Is(err, store.ErrWrongPassword) {
		t.Fatalf("want ErrWrongPassword, got %v", err)
	}
	if err := d.Authenticate("bob", "pw"); err != nil {
		t.Fatalf("authenticate: %v", err)
	}
}

func TestLoadSkipsMalformedLinesWithDiagnostic(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "user.txt")
	content := "admin;password\nno delimiter here\nbob;pw\n"
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	d, diag := openDir(t, dir)
	if got := d.Usernames(); len(got) != 2 {
		t.Fatalf("expected 2 accounts, got %v", got)
	}
	if !strings.Contains(diag.String(), "skipping account record") {
		t.Fatalf("expected diagnostic for skipped line, got %q", diag.String())
	}
}
