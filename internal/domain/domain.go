package domain

import "time"

// Task is one unit of work assigned to an account. Dates carry calendar
// precision only; the time component is always midnight UTC.
type Task struct {
	Assignee     string    `json:"assignee"`
	Title        string    `json:"title"`
	Description  string    `json:"description"`
	DueDate      time.Time `json:"due_date"`
	AssignedDate time.Time `json:"assigned_date"`
	Completed    bool      `json:"completed"`
}

// Overdue reports whether the task is uncompleted with a due date strictly
// before the given day. Evaluated at read time, never stored.
func (t Task) Overdue(today time.Time) bool {
	if t.Completed {
		return false
	}
	y, m, d := today.Date()
	day := time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
	return t.DueDate.Before(day)
}

// Account is one login identity. Passwords are stored and compared as plain
// text; this tracker offers no real security guarantee.
type Account struct {
	Username string `json:"username"`
	Password string `json:"password"`
}
