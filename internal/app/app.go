// Package app assembles the stores, report generator and event log for a
// workspace so commands share one loading path.
package app

import (
	"fmt"
	"os"

	"taskline/internal/config"
	"taskline/internal/domain"
	"taskline/internal/events"
	"taskline/internal/report"
	"taskline/internal/store"
	"taskline/internal/workspace"
)

type Env struct {
	Workspace string
	Config    *config.Config
	Accounts  *store.AccountDirectory
	Tasks     *store.TaskStore
	Reports   report.Generator
	Events    *events.Writer
}

// Load resolves the workspace config and opens both backing files. The
// account file is seeded with the default account when absent, so a fresh
// workspace always has a working login.
func Load(ws string) (*Env, error) {
	cfg, err := config.LoadOptional(ws)
	if err != nil {
		return nil, err
	}
	if _, err := workspace.Ensure(ws); err != nil {
		return nil, err
	}
	def := domain.Account{
		Username: cfg.DefaultAccount.Username,
		Password: cfg.DefaultAccount.Password,
	}
	accounts, err := store.OpenAccounts(workspace.FilePath(ws, cfg.Files.Users), def, os.Stderr)
	if err != nil {
		return nil, fmt.Errorf("load accounts: %w", err)
	}
	if err := accounts.Seed(); err != nil {
		return nil, err
	}
	tasks, err := store.OpenTasks(workspace.FilePath(ws, cfg.Files.Tasks))
	if err != nil {
		return nil, fmt.Errorf("load tasks: %w", err)
	}
	return &Env{
		Workspace: ws,
		Config:    cfg,
		Accounts:  accounts,
		Tasks:     tasks,
		Reports: report.Generator{
			TaskOverviewPath: workspace.FilePath(ws, cfg.Reports.TaskOverview),
			UserOverviewPath: workspace.FilePath(ws, cfg.Reports.UserOverview),
		},
		Events: &events.Writer{Path: workspace.EventLogPath(ws)},
	}, nil
}
