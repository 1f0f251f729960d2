// Package report computes global and per-user task statistics and renders
// them as the two overview documents.
package report

import (
	"fmt"
	"strings"
	"time"

	"taskline/internal/domain"
	"taskline/internal/workspace"
)

// Generator renders the task and user overview documents. Overdue figures
// are evaluated against Now at generation time, so re-running on an
// unchanged store can legitimately change them as dates pass.
type Generator struct {
	TaskOverviewPath string
	UserOverviewPath string
	Now              func() time.Time
}

func (g Generator) now() time.Time {
	if g.Now != nil {
		return g.Now()
	}
	return time.Now()
}

// Generate recomputes both overview documents from the current collections
// and fully overwrites the two report files.
func (g Generator) Generate(tasks []domain.Task, usernames []string) error {
	today := g.now()
	if err := workspace.WriteFileAtomic(g.TaskOverviewPath, []byte(g.RenderTaskOverview(tasks, today))); err != nil {
		return fmt.Errorf("write task overview: %w", err)
	}
	if err := workspace.WriteFileAtomic(g.UserOverviewPath, []byte(g.RenderUserOverview(tasks, usernames, today))); err != nil {
		return fmt.Errorf("write user overview: %w", err)
	}
	return nil
}

type tally struct {
	total, completed, uncompleted, overdue int
}

func count(tasks []domain.Task, today time.Time) tally {
	var c tally
	c.total = len(tasks)
	for _, t := range tasks {
		if t.Completed {
			c.completed++
		}
		if t.Overdue(today) {
			c.overdue++
		}
	}
	c.uncompleted = c.total - c.completed
	return c
}

// RenderTaskOverview renders the global statistics document.
func (g Generator) RenderTaskOverview(tasks []domain.Task, today time.Time) string {
	c := count(tasks, today)
	var b strings.Builder
	b.WriteString("Task Overview\n")
	b.WriteString("--------------\n")
	fmt.Fprintf(&b, "Total tasks: %d\n", c.total)
	fmt.Fprintf(&b, "Completed tasks: %d\n", c.completed)
	fmt.Fprintf(&b, "Uncompleted tasks: %d\n", c.uncompleted)
	fmt.Fprintf(&b, "Overdue tasks: %d\n", c.overdue)
	if c.total == 0 {
		b.WriteString("No tasks assigned yet!")
		return b.String()
	}
	fmt.Fprintf(&b, "Percentage of tasks incomplete:%.2f%%\n", pct(c.uncompleted, c.total))
	fmt.Fprintf(&b, "Percentage of tasks overdue:%.2f%%", pct(c.overdue, c.total))
	return b.String()
}

// RenderUserOverview renders one statistics block per registered account,
// including accounts with no tasks.
//
// The "Percentage of total tasks" figure is the user's completed count over
// the global total. That reads like it should be the user's total count,
// but it matches the established report output, so it stays.
func (g Generator) RenderUserOverview(tasks []domain.Task, usernames []string, today time.Time) string {
	global := count(tasks, today)
	var b strings.Builder
	b.WriteString("User Overview\n")
	b.WriteString("--------------\n")
	fmt.Fprintf(&b, "Total users: %d\n", len(usernames))
	fmt.Fprintf(&b, "Total tasks: %d\n", global.total)
	for _, username := range usernames {
		var mine []domain.Task
		for _, t := range tasks {
			if t.Assignee == username {
				mine = append(mine, t)
			}
		}
		c := count(mine, today)
		fmt.Fprintf(&b, "\nUser: %s\n", username)
		fmt.Fprintf(&b, "Total tasks assigned: %d\n", c.total)
		if c.total == 0 {
			b.WriteString("No tasks assigned yet!")
		} else {
			fmt.Fprintf(&b, "Percentage of total tasks: %.2f%%\n", pct(c.completed, global.total))
			fmt.Fprintf(&b, "Percentage of completed tasks: %.2f%%\n", pct(c.completed, c.total))
			fmt.Fprintf(&b, "Percentage of uncompleted tasks: %.2f%%\n", pct(c.uncompleted, c.total))
			fmt.Fprintf(&b, "Percentage of overdue tasks: %.2f%%", pct(c.overdue, c.total))
		}
		b.WriteString("\n")
	}
	return b.String()
}

func pct(part, whole int) float64 {
	if whole == 0 {
		return 0
	}
	return float64(part) / float64(whole) * 100
}
