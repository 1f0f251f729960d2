// Package store owns the in-memory collections for one session and their
// text backing files: the ordered task collection and the username to
// password directory.
package store

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"taskline/internal/codec"
	"taskline/internal/domain"
	"taskline/internal/workspace"
)

var ErrIndexOutOfRange = errors.New("task index out of range")

// TaskStore owns the task collection for the process lifetime. Order is
// file order and only significant for display numbering.
type TaskStore struct {
	Path  string
	Tasks []domain.Task
}

// OpenTasks loads the task backing file, creating an empty one if absent.
// A line that fails to decode aborts the load: a malformed backing file is
// an environment error, not something to silently drop records over.
func OpenTasks(path string) (*TaskStore, error) {
	s := &TaskStore{Path: path}
	data, err := os.ReadFile(path)
	if err != nil {
		if !os.IsNotExist(err) {
			return nil, err
		}
		if err := os.WriteFile(path, nil, 0o644); err != nil {
			return nil, fmt.Errorf("create task file: %w", err)
		}
		return s, nil
	}
	for i, line := range strings.Split(string(data), "\n") {
		if line == "" {
			continue
		}
		t, err := codec.DecodeTask(line)
		if err != nil {
			return nil, fmt.Errorf("%s:%d: %w", path, i+1, err)
		}
		s.Tasks = append(s.Tasks, t)
	}
	return s, nil
}

// Add appends the task to the collection and rewrites the whole backing
// file. Full rewrite is the chosen durability strategy: O(n) per mutation,
// acceptable at this record volume.
func (s *TaskStore) Add(t domain.Task) error {
	s.Tasks = append(s.Tasks, t)
	return s.Save()
}

// Replace overwrites the task at position i (0-based). It does not persist;
// callers decide when to Save.
func (s *TaskStore) Replace(i int, t domain.Task) error {
	if i < 0 || i >= len(s.Tasks) {
		return fmt.Errorf("%w: %d", ErrIndexOutOfRange, i)
	}
	s.Tasks[i] = t
	return nil
}

// Save rewrites the backing file from the full collection.
func (s *TaskStore) Save() error {
	var b strings.Builder
	for i, t := range s.Tasks {
		if i > 0 {
			b.WriteString("\n")
		}
		b.WriteString(codec.EncodeTask(t))
	}
	return workspace.WriteFileAtomic(s.Path, []byte(b.String()))
}

// ForAssignee returns the 0-based indexes of tasks assigned to the user,
// in collection order.
func (s *TaskStore) ForAssignee(username string) []int {
	var idx []int
	for i, t := range s.Tasks {
		if t.Assignee == username {
			idx = append(idx, i)
		}
	}
	return idx
}
