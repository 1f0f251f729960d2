// Package workspace resolves the on-disk layout of a taskline workspace:
// the backing files live at the workspace root, bookkeeping (the event log)
// under a hidden .taskline directory.
package workspace

import (
	"os"
	"path/filepath"
)

const dataDirName = ".taskline"

// Ensure creates the workspace bookkeeping directory if missing.
func Ensure(workspace string) (string, error) {
	path := filepath.Join(root(workspace), dataDirName)
	if err := os.MkdirAll(path, 0o755); err != nil {
		return "", err
	}
	return path, nil
}

func root(workspace string) string {
	if workspace == "" {
		return "."
	}
	return workspace
}

// FilePath resolves a backing-file name against the workspace root.
func FilePath(workspace, name string) string {
	return filepath.Join(root(workspace), name)
}

// EventLogPath returns the audit log path for the workspace.
func EventLogPath(workspace string) string {
	return filepath.Join(root(workspace), dataDirName, "events.jsonl")
}

// WriteFileAtomic writes data to path via a temp file and rename, so an
// interrupted write never leaves a half-written backing file behind.
func WriteFileAtomic(path string, data []byte) error {
	dir := filepath.Dir(path)
	tmp, err := os.CreateTemp(dir, filepath.Base(path)+".tmp*")
	if err != nil {
		return err
	}
	tmpName := tmp.Name()
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return err
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return err
	}
	if err := os.Rename(tmpName, path); err != nil {
		os.Remove(tmpName)
		return err
	}
	return nil
}
