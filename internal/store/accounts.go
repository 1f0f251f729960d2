package store

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"taskline/internal/codec"
	"taskline/internal/domain"
)

var (
	ErrDuplicateUsername = errors.New("username already exists")
	ErrPasswordMismatch  = errors.New("passwords do not match")
	ErrUnknownUser       = errors.New("user does not exist")
	ErrUnknownAssignee   = errors.New("assignee is not a registered user")
	ErrWrongPassword     = errors.New("wrong password")
)

// AccountDirectory owns the username to password mapping for the session.
// Usernames are case-folded at registration time. New entries append to the
// backing file; existing entries are never rewritten.
type AccountDirectory struct {
	Path    string
	Default domain.Account
	// Diag receives one line per skipped malformed account record.
	Diag io.Writer

	passwords map[string]string
	usernames []string
}

// OpenAccounts loads the account backing file if present. Malformed lines
// are skipped with a diagnostic rather than aborting the load.
func OpenAccounts(path string, def domain.Account, diag io.Writer) (*AccountDirectory, error) {
	if diag == nil {
		diag = io.Discard
	}
	d := &AccountDirectory{
		Path:      path,
		Default:   def,
		Diag:      diag,
		passwords: make(map[string]string),
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return d, nil
		}
		return nil, err
	}
	for i, line := range strings.Split(string(data), "\n") {
		if strings.TrimSpace(line) == "" {
			continue
		}
		a, err := codec.DecodeAccount(strings.TrimRight(line, "\r"))
		if err != nil {
			fmt.Fprintf(diag, "skipping account record %s:%d: %v\n", path, i+1, err)
			continue
		}
		d.put(a)
	}
	return d, nil
}

func (d *AccountDirectory) put(a domain.Account) {
	if _, ok := d.passwords[a.Username]; !ok {
		d.usernames = append(d.usernames, a.Username)
	}
	d.passwords[a.Username] = a.Password
}

// Usernames returns all usernames in backing-file order.
func (d *AccountDirectory) Usernames() []string {
	return d.usernames
}

// Exists reports whether the exact username is registered.
func (d *AccountDirectory) Exists(username string) bool {
	_, ok := d.passwords[username]
	return ok
}

// Authenticate checks a login pair against the directory.
func (d *AccountDirectory) Authenticate(username, password string) error {
	stored, ok := d.passwords[username]
	if !ok {
		return ErrUnknownUser
	}
	if stored != password {
		return ErrWrongPassword
	}
	return nil
}

// Register adds a new account. The username is case-folded before the
// duplicate check, so "Admin" collides with "admin". A fresh backing file
// is seeded with the default account record before the first append, so a
// new environment always has a working login.
func (d *AccountDirectory) Register(username, password, confirm string) error {
	username = strings.ToLower(username)
	if d.Exists(username) {
		return fmt.Errorf("%w: %s", ErrDuplicateUsername, username)
	}
	if password != confirm {
		return ErrPasswordMismatch
	}
	if err := d.Seed(); err != nil {
		return err
	}
	f, err := os.OpenFile(d.Path, os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return err
	}
	defer f.Close()
	a := domain.Account{Username: username, Password: password}
	if _, err := f.WriteString(codec.EncodeAccount(a) + "\n"); err != nil {
		return err
	}
	d.put(a)
	return nil
}

// Seed creates the backing file with the default account record when the
// file does not exist yet. It is a no-op otherwise.
func (d *AccountDirectory) Seed() error {
	if _, err := os.Stat(d.Path); err == nil {
		return nil
	} else if !os.IsNotExist(err) {
		return err
	}
	if err := os.WriteFile(d.Path, []byte(codec.EncodeAccount(d.Default)+"\n"), 0o644); err != nil {
		return fmt.Errorf("seed account file: %w", err)
	}
	d.put(d.Default)
	return nil
}
