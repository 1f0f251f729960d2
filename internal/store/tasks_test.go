package store_test

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"taskline/internal/codec"
	"taskline/internal/domain"
	"taskline/internal/store"
)

func sampleTask(assignee, title string) domain.Task {
	return domain.Task{
		Assignee:     assignee,
		Title:        title,
		Description:  "desc",
		DueDate:      time.Date(2024, 3, 10, 0, 0, 0, 0, time.UTC),
		AssignedDate: time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC),
	}
}

func TestOpenTasksCreatesMissingFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tasks.txt")
	s, err := store.OpenTasks(path)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	if len(s.Tasks) != 0 {
		t.Fatalf("expected empty collection, got %d", len(s.Tasks))
	}
	if _, err := os.Stat(path); err != nil {
		t.Fatalf("backing file not created: %v", err)
	}
}

func TestAddPersistsAndReloads(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tasks.txt")
	s, err := store.OpenTasks(path)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	if err := s.Add(sampleTask("alice", "one")); err != nil {
		t.Fatalf("add: %v", err)
	}
	if err := s.Add(sampleTask("bob", "two")); err != nil {
		t.Fatalf("add: %v", err)
	}

	reloaded, err := store.OpenTasks(path)
	if err != nil {
		t.Fatalf("reload: %v", err)
	}
	if len(reloaded.Tasks) != 2 {
		t.Fatalf("expected 2 tasks, got %d", len(reloaded.Tasks))
	}
	if reloaded.Tasks[0].Title != "one" || reloaded.Tasks[1].Title != "two" {
		t.Fatalf("order not preserved: %+v", reloaded.Tasks)
	}
}

func TestReplaceDoesNotPersistUntilSave(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tasks.txt")
	s, _ := store.OpenTasks(path)
	if err := s.Add(sampleTask("alice", "one")); err != nil {
		t.Fatalf("add: %v", err)
	}
	edited := s.Tasks[0]
	edited.Completed = true
	if err := s.Replace(0, edited); err != nil {
		t.Fatalf("replace: %v", err)
	}

	onDisk, _ := store.OpenTasks(path)
	if onDisk.Tasks[0].Completed {
		t.Fatalf("replace persisted without Save")
	}
	if err := s.Save(); err != nil {
		t.Fatalf("save: %v", err)
	}
	onDisk, _ = store.OpenTasks(path)
	if !onDisk.Tasks[0].Completed {
		t.Fatalf("save did not persist replacement")
	}
}

func TestReplaceOutOfRange(t *testing.T) {
	s, _ := store.OpenTasks(filepath.Join(t.TempDir(), "tasks.txt"))
	if err := s.Replace(0, sampleTask("a", "t")); !errors.Is(err, store.ErrIndexOutOfRange) {
		t.Fatalf("want ErrIndexOutOfRange, got %v", err)
	}
}

func TestLoadFailsOnMalformedLine(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tasks.txt")
	// Four of the six required fields.
	if err := os.WriteFile(path, []byte("alice;title;desc;2024-03-10\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := store.OpenTasks(path); !errors.Is(err, codec.ErrMalformedRecord) {
		t.Fatalf("want ErrMalformedRecord, got %v", err)
	}
}

func TestLoadSkipsBlankLines(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tasks.txt")
	line := codec.EncodeTask(sampleTask("alice", "one"))
	if err := os.WriteFile(path, []byte("\n"+line+"\n\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	s, err := store.OpenTasks(path)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	if len(s.Tasks) != 1 {
		t.Fatalf("expected 1 task, got %d", len(s.Tasks))
	}
}

func TestForAssignee(t *testing.T) {
	s, _ := store.OpenTasks(filepath.Join(t.TempDir(), "tasks.txt"))
	_ = s.Add(sampleTask("alice", "one"))
	_ = s.Add(sampleTask("bob", "two"))
	_ = s.Add(sampleTask("alice", "three"))
	got := s.ForAssignee("alice")
	if len(got) != 2 || got[0] != 0 || got[1] != 2 {
		t.Fatalf("got %v", got)
	}
	if s.ForAssignee("carol") != nil {
		t.Fatalf("expected no indexes for unknown assignee")
	}
}
