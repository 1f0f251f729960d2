// Package codec converts task and account records between their in-memory
// form and the single-line semicolon-delimited text encoding used by the
// backing files.
//
// Known format limitation: the delimiter is not escaped, so a title or
// description containing ";" corrupts the record on reload. This is an
// accepted constraint of the format, not something the codec papers over.
package codec

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"taskline/internal/domain"
)

const (
	// FieldSep joins record fields on a line.
	FieldSep = ";"
	// DateFormat is the only accepted layout for dates in records and
	// user input.
	DateFormat = "2006-01-02"

	completedYes = "Yes"
	completedNo  = "No"

	taskFieldCount    = 6
	accountFieldCount = 2
)

var (
	ErrMalformedRecord   = errors.New("malformed record")
	ErrInvalidDateFormat = errors.New("invalid date format")
)

// ParseDate parses user- or file-supplied date text in DateFormat.
func ParseDate(s string) (time.Time, error) {
	t, err := time.Parse(DateFormat, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: %q (want YYYY-MM-DD)", ErrInvalidDateFormat, s)
	}
	return t, nil
}

// FormatDate renders a date in DateFormat.
func FormatDate(t time.Time) string {
	return t.Format(DateFormat)
}

// EncodeTask renders a task as one backing-file line (no trailing newline).
func EncodeTask(t domain.Task) string {
	completed := completedNo
	if t.Completed {
		completed = completedYes
	}
	return strings.Join([]string{
		t.Assignee,
		t.Title,
		t.Description,
		FormatDate(t.DueDate),
		FormatDate(t.AssignedDate),
		completed,
	}, FieldSep)
}

// DecodeTask parses one backing-file line into a task. It is the exact
// inverse of EncodeTask for any task satisfying the data-model invariants.
func DecodeTask(line string) (domain.Task, error) {
	fields := strings.Split(line, FieldSep)
	if len(fields) != taskFieldCount {
		return domain.Task{}, fmt.Errorf("%w: expected %d fields, got %d", ErrMalformedRecord, taskFieldCount, len(fields))
	}
	due, err := time.Parse(DateFormat, fields[3])
	if err != nil {
		return domain.Task{}, fmt.Errorf("%w: due date %q", ErrMalformedRecord, fields[3])
	}
	assigned, err := time.Parse(DateFormat, fields[4])
	if err != nil {
		return domain.Task{}, fmt.Errorf("%w: assigned date %q", ErrMalformedRecord, fields[4])
	}
	var completed bool
	switch fields[5] {
	case completedYes:
		completed = true
	case completedNo:
		completed = false
	default:
		return domain.Task{}, fmt.Errorf("%w: completion flag %q", ErrMalformedRecord, fields[5])
	}
	return domain.Task{
		Assignee:     fields[0],
		Title:        fields[1],
		Description:  fields[2],
		DueDate:      due,
		AssignedDate: assigned,
		Completed:    completed,
	}, nil
}

// EncodeAccount renders an account as one backing-file line.
func EncodeAccount(a domain.Account) string {
	return a.Username + FieldSep + a.Password
}

// DecodeAccount parses one backing-file line into an account.
func DecodeAccount(line string) (domain.Account, error) {
	fields := strings.Split(line, FieldSep)
	if len(fields) != accountFieldCount {
		return domain.Account{}, fmt.Errorf("%w: expected %d fields, got %d", ErrMalformedRecord, accountFieldCount, len(fields))
	}
	return domain.Account{Username: fields[0], Password: fields[1]}, nil
}
