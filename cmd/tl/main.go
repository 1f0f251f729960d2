package main

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"taskline/internal/app"
	"taskline/internal/codec"
	"taskline/internal/domain"
	"taskline/internal/events"
	"taskline/internal/session"
	"taskline/internal/store"
	"taskline/internal/workspace"
)

var rootCmd = &cobra.Command{
	Use:   "tl",
	Short: "Taskline CLI",
	Long: `Taskline is a single-session task tracker backed by plain text files.
Accounts live in user.txt, tasks in tasks.txt, one semicolon-delimited record
per line. Run 'tl run' for the interactive login and menu, or use the
subcommands directly. Reports are rendered to task_overview.txt and
user_overview.txt in the workspace.`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		_, err := workspace.Ensure(viper.GetString("workspace"))
		return err
	},
}

func main() {
	cobra.OnInitialize(initConfig)
	addPersistentFlags()
	registerCommands()
	if err := rootCmd.Execute(); err != nil {
		fmt.Println("error:", err)
		os.Exit(1)
	}
}

func initConfig() {
	viper.SetEnvPrefix("TASKLINE")
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	viper.AutomaticEnv()
}

func addPersistentFlags() {
	rootCmd.PersistentFlags().StringP("workspace", "w", ".", "workspace directory")
	rootCmd.PersistentFlags().Bool("json", false, "output JSON")
	_ = viper.BindPFlag("workspace", rootCmd.PersistentFlags().Lookup("workspace"))
	_ = viper.BindPFlag("json", rootCmd.PersistentFlags().Lookup("json"))
}

func registerCommands() {
	rootCmd.AddCommand(runCmd())
	rootCmd.AddCommand(taskCmd())
	rootCmd.AddCommand(userCmd())
	rootCmd.AddCommand(reportCmd())
	rootCmd.AddCommand(statsCmd())
	rootCmd.AddCommand(logCmd())
}

func runCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "run",
		Short: "Start the interactive session",
		Long:  "Log in against the account directory, then drive the main menu: register users, add tasks, review your own, and generate reports.",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withEnv(func(env *app.Env) error {
				s := session.New(env.Accounts, env.Tasks, env.Reports, os.Stdin, os.Stdout)
				s.Events = env.Events
				return s.Run()
			})
		},
	}
	return cmd
}

func taskCmd() *cobra.Command {
	task := &cobra.Command{
		Use:   "task",
		Short: "Manage tasks",
	}
	task.AddCommand(taskAddCmd())
	task.AddCommand(taskListCmd())
	return task
}

func taskAddCmd() *cobra.Command {
	var assignee, title, description, due string
	cmd := &cobra.Command{
		Use:   "add",
		Short: "Create a task",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withEnv(func(env *app.Env) error {
				if !env.Accounts.Exists(assignee) {
					return fmt.Errorf("%w: %s", store.ErrUnknownAssignee, assignee)
				}
				dueDate, err := codec.ParseDate(due)
				if err != nil {
					return err
				}
				y, m, d := time.Now().Date()
				t := domain.Task{
					Assignee:     assignee,
					Title:        title,
					Description:  description,
					DueDate:      dueDate,
					AssignedDate: time.Date(y, m, d, 0, 0, 0, 0, time.UTC),
				}
				if err := env.Tasks.Add(t); err != nil {
					return err
				}
				_ = env.Events.Append("task.created", title, assignee, nil)
				return printJSONOrTable(t)
			})
		},
	}
	cmd.Flags().StringVar(&assignee, "assignee", "", "username of the person assigned")
	cmd.Flags().StringVar(&title, "title", "", "title")
	cmd.Flags().StringVar(&description, "description", "", "description")
	cmd.Flags().StringVar(&due, "due", "", "due date (YYYY-MM-DD)")
	_ = cmd.MarkFlagRequired("assignee")
	_ = cmd.MarkFlagRequired("title")
	_ = cmd.MarkFlagRequired("due")
	return cmd
}

func taskListCmd() *cobra.Command {
	var assignee string
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List tasks",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withEnv(func(env *app.Env) error {
				tasks := env.Tasks.Tasks
				if assignee != "" {
					var filtered []domain.Task
					for _, t := range tasks {
						if t.Assignee == assignee {
							filtered = append(filtered, t)
						}
					}
					tasks = filtered
				}
				if viper.GetBool("json") {
					return printJSON(tasks)
				}
				today := time.Now()
				tw := table.NewWriter()
				tw.SetOutputMirror(os.Stdout)
				tw.AppendHeader(table.Row{"#", "Assignee", "Title", "Due", "Assigned", "Completed", "Overdue"})
				for i, t := range tasks {
					completed := "No"
					if t.Completed {
						completed = "Yes"
					}
					overdue := "No"
					if t.Overdue(today) {
						overdue = "Yes"
					}
					tw.AppendRow(table.Row{i + 1, t.Assignee, t.Title, codec.FormatDate(t.DueDate), codec.FormatDate(t.AssignedDate), completed, overdue})
				}
				tw.Render()
				return nil
			})
		},
	}
	cmd.Flags().StringVar(&assignee, "assignee", "", "assignee filter")
	return cmd
}

func userCmd() *cobra.Command {
	user := &cobra.Command{
		Use:   "user",
		Short: "Manage accounts",
	}
	user.AddCommand(userRegisterCmd())
	user.AddCommand(userListCmd())
	return user
}

func userRegisterCmd() *cobra.Command {
	var username, password, confirm string
	cmd := &cobra.Command{
		Use:   "register",
		Short: "Register an account",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withEnv(func(env *app.Env) error {
				if err := env.Accounts.Register(username, password, confirm); err != nil {
					return err
				}
				_ = env.Events.Append("user.registered", strings.ToLower(username), "", nil)
				fmt.Println("New user added")
				return nil
			})
		},
	}
	cmd.Flags().StringVar(&username, "username", "", "new username (case-folded)")
	cmd.Flags().StringVar(&password, "password", "", "new password")
	cmd.Flags().StringVar(&confirm, "confirm", "", "password confirmation")
	_ = cmd.MarkFlagRequired("username")
	_ = cmd.MarkFlagRequired("password")
	_ = cmd.MarkFlagRequired("confirm")
	return cmd
}

func userListCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List account usernames",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withEnv(func(env *app.Env) error {
				usernames := env.Accounts.Usernames()
				if viper.GetBool("json") {
					return printJSON(usernames)
				}
				for _, u := range usernames {
					fmt.Println(u)
				}
				return nil
			})
		},
	}
	return cmd
}

func reportCmd() *cobra.Command {
	rep := &cobra.Command{
		Use:   "report",
		Short: "Generate overview reports",
	}
	rep.AddCommand(reportGenerateCmd())
	return rep
}

func reportGenerateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Recompute and write both overview files",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withEnv(func(env *app.Env) error {
				if err := env.Reports.Generate(env.Tasks.Tasks, env.Accounts.Usernames()); err != nil {
					return err
				}
				_ = env.Events.Append("report.generated", "", "", nil)
				fmt.Println("Reports generated successfully.")
				return nil
			})
		},
	}
	return cmd
}

func statsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "stats",
		Short: "Print the overview reports",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withEnv(func(env *app.Env) error {
				for _, path := range []string{env.Reports.TaskOverviewPath, env.Reports.UserOverviewPath} {
					data, err := os.ReadFile(path)
					if err != nil {
						if os.IsNotExist(err) {
							return fmt.Errorf("%s not found; run 'tl report generate' first", path)
						}
						return err
					}
					fmt.Println(string(data))
					fmt.Println("----------------------------------------")
				}
				return nil
			})
		},
	}
	return cmd
}

func logCmd() *cobra.Command {
	log := &cobra.Command{
		Use:   "log",
		Short: "Audit log",
	}
	log.AddCommand(logTailCmd())
	return log
}

func logTailCmd() *cobra.Command {
	var n int
	cmd := &cobra.Command{
		Use:   "tail",
		Short: "Show the latest audit events",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withEnv(func(env *app.Env) error {
				evts, err := events.Tail(env.Events.Path, n)
				if err != nil {
					return err
				}
				return printJSONOrTable(evts)
			})
		},
	}
	cmd.Flags().IntVar(&n, "n", 20, "number of events")
	return cmd
}

// --- helpers ---

func withEnv(fn func(*app.Env) error) error {
	env, err := app.Load(viper.GetString("workspace"))
	if err != nil {
		return err
	}
	return fn(env)
}

func printJSONOrTable(v any) error {
	if viper.GetBool("json") {
		return printJSON(v)
	}
	b, _ := json.MarshalIndent(v, "", "  ")
	fmt.Println(string(b))
	return nil
}

func printJSON(v any) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
