// Package session is the interactive surface: the login loop, the main
// menu dispatcher, and the prompt flows for registration and task creation.
// It holds no state of its own beyond the authenticated username; all task
// and account state lives in the stores passed in.
package session

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"taskline/internal/codec"
	"taskline/internal/domain"
	"taskline/internal/events"
	"taskline/internal/report"
	"taskline/internal/review"
	"taskline/internal/store"
)

type Session struct {
	Accounts *store.AccountDirectory
	Tasks    *store.TaskStore
	Reports  report.Generator
	Events   *events.Writer
	Now      func() time.Time

	In  *bufio.Scanner
	Out io.Writer

	user string
}

func New(accounts *store.AccountDirectory, tasks *store.TaskStore, reports report.Generator, in io.Reader, out io.Writer) *Session {
	return &Session{
		Accounts: accounts,
		Tasks:    tasks,
		Reports:  reports,
		In:       bufio.NewScanner(in),
		Out:      out,
	}
}

func (s *Session) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now()
}

// Run authenticates the user and then dispatches menu commands until the
// user exits or input ends.
func (s *Session) Run() error {
	if !s.login() {
		return nil
	}
	return s.menuLoop()
}

// login repeats until a username/password pair matches the directory.
func (s *Session) login() bool {
	for {
		fmt.Fprintln(s.Out, "LOGIN")
		fmt.Fprint(s.Out, "Username: ")
		username, ok := s.readLine()
		if !ok {
			return false
		}
		fmt.Fprint(s.Out, "Password: ")
		password, ok := s.readLine()
		if !ok {
			return false
		}
		switch err := s.Accounts.Authenticate(username, password); {
		case errors.Is(err, store.ErrUnknownUser):
			fmt.Fprintln(s.Out, "User does not exist")
		case errors.Is(err, store.ErrWrongPassword):
			fmt.Fprintln(s.Out, "Wrong password")
		case err == nil:
			fmt.Fprintln(s.Out, "Login Successful!")
			s.user = username
			return true
		}
	}
}

const menuText = `Select one of the following Options below:
    r -  Registering a user
    a -  Adding a task
    va - View all tasks
    vm - View my tasks
    gr - Generate reports
    ds - Display statistics
    e -  Exit
    : `

func (s *Session) menuLoop() error {
	for {
		fmt.Fprintln(s.Out)
		fmt.Fprint(s.Out, menuText)
		choice, ok := s.readLine()
		if !ok {
			return nil
		}
		switch strings.ToLower(choice) {
		case "r":
			if !s.isAdmin() {
				break
			}
			s.registerUser()
			continue
		case "a":
			if err := s.addTask(); err != nil {
				return err
			}
			continue
		case "va":
			s.viewAll()
			continue
		case "vm":
			if err := s.reviewMine(); err != nil {
				return err
			}
			continue
		case "gr":
			if err := s.generateReports(); err != nil {
				return err
			}
			continue
		case "ds":
			if !s.isAdmin() {
				break
			}
			if err := s.displayStatistics(); err != nil {
				return err
			}
			continue
		case "e":
			fmt.Fprintln(s.Out, "Goodbye!!!")
			return nil
		}
		fmt.Fprintln(s.Out, "Wrong choice or not admin, Please Try again")
	}
}

func (s *Session) isAdmin() bool {
	return s.user == s.Accounts.Default.Username
}

// registerUser collects a new username, password and confirmation and
// forwards them to the directory. All rejections re-prompt via the menu.
func (s *Session) registerUser() {
	fmt.Fprint(s.Out, "New Username: ")
	username, ok := s.readLine()
	if !ok {
		return
	}
	username = strings.ToLower(username)
	if s.Accounts.Exists(username) {
		fmt.Fprintln(s.Out, "Username already exists. Please choose a different username.")
		return
	}
	fmt.Fprint(s.Out, "New Password: ")
	password, ok := s.readLine()
	if !ok {
		return
	}
	fmt.Fprint(s.Out, "Confirm Password: ")
	confirm, ok := s.readLine()
	if !ok {
		return
	}
	switch err := s.Accounts.Register(username, password, confirm); {
	case errors.Is(err, store.ErrPasswordMismatch):
		fmt.Fprintln(s.Out, "Passwords do not match")
	case errors.Is(err, store.ErrDuplicateUsername):
		fmt.Fprintln(s.Out, "Username already exists. Please choose a different username.")
	case err != nil:
		fmt.Fprintln(s.Out, "error:", err)
	default:
		s.logEvent("user.registered", username, nil)
		fmt.Fprintln(s.Out, "New user added")
	}
}

// addTask collects a new task. The assignee must be a registered account
// and the due date is re-prompted until it parses.
func (s *Session) addTask() error {
	fmt.Fprint(s.Out, "Name of person assigned to task: ")
	assignee, ok := s.readLine()
	if !ok {
		return nil
	}
	if !s.Accounts.Exists(assignee) {
		fmt.Fprintln(s.Out, "User does not exist. Please enter a valid username")
		return nil
	}
	fmt.Fprint(s.Out, "Title of task: ")
	title, ok := s.readLine()
	if !ok {
		return nil
	}
	fmt.Fprint(s.Out, "Description of task: ")
	description, ok := s.readLine()
	if !ok {
		return nil
	}
	var due time.Time
	for {
		fmt.Fprint(s.Out, "Due date of task (YYYY-MM-DD): ")
		text, ok := s.readLine()
		if !ok {
			return nil
		}
		parsed, err := codec.ParseDate(text)
		if err != nil {
			fmt.Fprintln(s.Out, "Invalid datetime format. Please use the format specified")
			continue
		}
		due = parsed
		break
	}
	y, m, d := s.now().Date()
	t := domain.Task{
		Assignee:     assignee,
		Title:        title,
		Description:  description,
		DueDate:      due,
		AssignedDate: time.Date(y, m, d, 0, 0, 0, 0, time.UTC),
		Completed:    false,
	}
	if err := s.Tasks.Add(t); err != nil {
		return fmt.Errorf("persist task: %w", err)
	}
	s.logEvent("task.created", title, map[string]any{"assignee": assignee})
	fmt.Fprintln(s.Out, "Task successfully added.")
	return nil
}

func (s *Session) viewAll() {
	for i, t := range s.Tasks.Tasks {
		review.WriteTaskDetails(s.Out, i+1, t)
	}
}

func (s *Session) reviewMine() error {
	r := &review.Session{
		Store:  s.Tasks,
		Events: s.Events,
		User:   s.user,
		In:     s.In,
		Out:    s.Out,
	}
	return r.Run()
}

func (s *Session) generateReports() error {
	if err := s.Reports.Generate(s.Tasks.Tasks, s.Accounts.Usernames()); err != nil {
		return err
	}
	s.logEvent("report.generated", "", nil)
	fmt.Fprintln(s.Out, "Reports generated successfully.")
	return nil
}

// displayStatistics prints the two overview documents, generating them
// first if they do not exist yet.
func (s *Session) displayStatistics() error {
	for _, path := range []string{s.Reports.TaskOverviewPath, s.Reports.UserOverviewPath} {
		if _, err := os.Stat(path); os.IsNotExist(err) {
			if err := s.Reports.Generate(s.Tasks.Tasks, s.Accounts.Usernames()); err != nil {
				return err
			}
			break
		}
	}
	for _, path := range []string{s.Reports.TaskOverviewPath, s.Reports.UserOverviewPath} {
		data, err := os.ReadFile(path)
		if err != nil {
			return err
		}
		fmt.Fprintln(s.Out)
		fmt.Fprintln(s.Out, string(data))
		fmt.Fprintln(s.Out, "----------------------------------------")
	}
	return nil
}

func (s *Session) logEvent(evtType, entity string, payload map[string]any) {
	if s.Events == nil {
		return
	}
	_ = s.Events.Append(evtType, entity, s.user, payload)
}

func (s *Session) readLine() (string, bool) {
	if !s.In.Scan() {
		return "", false
	}
	return strings.TrimSpace(s.In.Text()), true
}
