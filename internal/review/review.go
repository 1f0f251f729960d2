// Package review drives the interactive walk over a user's tasks: select a
// task by number, mark it complete, or edit its assignee and due date.
package review

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"taskline/internal/codec"
	"taskline/internal/domain"
	"taskline/internal/events"
	"taskline/internal/store"
)

// State is the current position in the review interaction.
type State int

const (
	StateListing State = iota
	StateAwaitingSelection
	StateAwaitingAction
	StateExited
)

const exitSentinel = "-1"

// Session reviews one user's view of the task collection. Task numbering at
// the prompt is 1-based over the whole collection, matching the numbers
// shown in the listing.
type Session struct {
	Store  *store.TaskStore
	Events *events.Writer
	User   string
	In     *bufio.Scanner
	Out    io.Writer
}

func New(ts *store.TaskStore, user string, in io.Reader, out io.Writer) *Session {
	return &Session{Store: ts, User: user, In: bufio.NewScanner(in), Out: out}
}

// Run executes the review state machine until the user exits or input ends.
func (s *Session) Run() error {
	state := StateListing
	selected := -1
	for state != StateExited {
		switch state {
		case StateListing:
			s.list()
			state = StateAwaitingSelection
		case StateAwaitingSelection:
			next, idx, err := s.promptSelection()
			if err != nil {
				return err
			}
			state = next
			selected = idx
		case StateAwaitingAction:
			next, err := s.promptAction(selected)
			if err != nil {
				return err
			}
			state = next
		}
	}
	return nil
}

func (s *Session) list() {
	fmt.Fprintln(s.Out, "My Tasks:")
	for _, i := range s.Store.ForAssignee(s.User) {
		WriteTaskDetails(s.Out, i+1, s.Store.Tasks[i])
	}
}

// promptSelection reads one task number. Anything that is not the exit
// sentinel or an in-range number is rejected and the state stays put.
func (s *Session) promptSelection() (State, int, error) {
	fmt.Fprintln(s.Out, "\nOptions:")
	fmt.Fprintln(s.Out, "  Enter task number to view details and perform actions.")
	fmt.Fprintln(s.Out, "  Enter -1 to return to the main menu.")
	fmt.Fprint(s.Out, "Your choice: ")
	choice, ok := s.readLine()
	if !ok || choice == exitSentinel {
		return StateExited, -1, nil
	}
	n, err := strconv.Atoi(choice)
	if err != nil {
		fmt.Fprintln(s.Out, "Invalid input. Please enter a valid task number.")
		return StateAwaitingSelection, -1, nil
	}
	if n < 1 || n > len(s.Store.Tasks) {
		fmt.Fprintln(s.Out, "Invalid task number. Please enter a valid number.")
		return StateAwaitingSelection, -1, nil
	}
	idx := n - 1
	WriteTaskDetails(s.Out, n, s.Store.Tasks[idx])
	return StateAwaitingAction, idx, nil
}

func (s *Session) promptAction(idx int) (State, error) {
	fmt.Fprint(s.Out, "Choose an action (1: Mark as complete, 2: Edit, -1: Return to task list): ")
	action, ok := s.readLine()
	if !ok {
		return StateExited, nil
	}
	switch action {
	case "1":
		return StateAwaitingSelection, s.complete(idx)
	case "2":
		return StateAwaitingSelection, s.edit(idx)
	case exitSentinel:
		return StateAwaitingSelection, nil
	default:
		fmt.Fprintln(s.Out, "Invalid action. Please choose a valid action.")
		return StateAwaitingAction, nil
	}
}

// complete flips the task's completed flag false to true. The transition is
// one-way: a completed task stays completed.
func (s *Session) complete(idx int) error {
	t := s.Store.Tasks[idx]
	if t.Completed {
		fmt.Fprintln(s.Out, "Task is already marked as complete.")
		return nil
	}
	t.Completed = true
	if err := s.Store.Replace(idx, t); err != nil {
		return err
	}
	if err := s.Store.Save(); err != nil {
		return err
	}
	s.logEvent("task.completed", t)
	fmt.Fprintln(s.Out, "Task marked as complete.")
	return nil
}

// edit optionally overwrites the assignee and due date. Title, description
// and assigned date are never touched here. A due date that fails
// validation is reported and left unchanged; the rest of the edit still
// applies.
func (s *Session) edit(idx int) error {
	t := s.Store.Tasks[idx]
	if t.Completed {
		fmt.Fprintln(s.Out, "Cannot edit a completed task.")
		return nil
	}
	fmt.Fprint(s.Out, "Enter the new username or press enter to keep the current username: ")
	username, ok := s.readLine()
	if !ok {
		return nil
	}
	fmt.Fprint(s.Out, "Enter the new due date (YYYY-MM-DD) or press enter to keep the current due date: ")
	dueText, _ := s.readLine()
	if username != "" {
		t.Assignee = username
	}
	if dueText != "" {
		due, err := codec.ParseDate(dueText)
		if err != nil {
			fmt.Fprintln(s.Out, "Invalid datetime format. Task due date not updated.")
		} else {
			t.DueDate = due
		}
	}
	if err := s.Store.Replace(idx, t); err != nil {
		return err
	}
	if err := s.Store.Save(); err != nil {
		return err
	}
	s.logEvent("task.edited", t)
	fmt.Fprintln(s.Out, "Task edited successfully.")
	return nil
}

func (s *Session) logEvent(evtType string, t domain.Task) {
	if s.Events == nil {
		return
	}
	// The audit log is best effort; a failed append never blocks the edit.
	_ = s.Events.Append(evtType, t.Title, s.User, map[string]any{"assignee": t.Assignee})
}

func (s *Session) readLine() (string, bool) {
	if !s.In.Scan() {
		return "", false
	}
	return strings.TrimSpace(s.In.Text()), true
}

// WriteTaskDetails renders one numbered task detail block.
func WriteTaskDetails(w io.Writer, n int, t domain.Task) {
	completed := "No"
	if t.Completed {
		completed = "Yes"
	}
	fmt.Fprintf(w, "%d. Task:          %s\n", n, t.Title)
	fmt.Fprintf(w, "Assigned to:      %s\n", t.Assignee)
	fmt.Fprintf(w, "Date Assigned:    %s\n", codec.FormatDate(t.AssignedDate))
	fmt.Fprintf(w, "Due Date:         %s\n", codec.FormatDate(t.DueDate))
	fmt.Fprintf(w, "Task Description: %s\n", t.Description)
	fmt.Fprintf(w, "Completed:        %s\n\n", completed)
}
