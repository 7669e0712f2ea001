package commands

import (
	"fmt"
	"os"
	"strconv"

	"github.com/akyairhashvil/mvno/internal/database"
	"github.com/akyairhashvil/mvno/internal/gantt"
	"github.com/akyairhashvil/mvno/internal/models"
	"github.com/akyairhashvil/mvno/internal/tui"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"
	"go.trai.ch/zerr"
)

// formatFor picks the explicit --format, else guesses from the file name.
func formatFor(flag, path string) (database.Format, error) {
	if flag != "" {
		return database.ParseFormat(flag)
	}
	if path == "" || path == "-" {
		return database.FormatJSON, nil
	}
	return database.FormatForPath(path), nil
}

func (c *CLI) newImportCmd() *cobra.Command {
	var format string
	var replace bool
	cmd := &cobra.Command{
		Use:   "import <file>",
		Short: "Load tasks from a JSON or YAML export",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := formatFor(format, args[0])
			if err != nil {
				return err
			}
			payload, err := os.ReadFile(args[0])
			if err != nil {
				return zerr.With(zerr.Wrap(err, "read import file"), "path", args[0])
			}
			s, err := c.open(cmd.Context(), cmd.ErrOrStderr())
			if err != nil {
				return err
			}
			defer s.close()

			n, err := s.db.ImportTasks(cmd.Context(), payload, f, replace)
			if err != nil {
				return err
			}
			s.logger.Info("tasks imported", "path", args[0], "count", n, "replace", replace)
			fmt.Fprintf(cmd.OutOrStdout(), "Imported %d tasks\n", n)
			return nil
		},
	}
	cmd.Flags().StringVarP(&format, "format", "f", "", "Input format: json or yaml (default from extension)")
	cmd.Flags().BoolVar(&replace, "replace", false, "Drop existing tasks before importing")
	return cmd
}

func (c *CLI) newExportCmd() *cobra.Command {
	var format, major, status string
	cmd := &cobra.Command{
		Use:   "export [file]",
		Short: "Write every task as JSON or YAML (stdout when no file is given)",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := ""
			if len(args) == 1 {
				path = args[0]
			}
			f, err := formatFor(format, path)
			if err != nil {
				return err
			}
			s, err := c.open(cmd.Context(), cmd.ErrOrStderr())
			if err != nil {
				return err
			}
			defer s.close()

			q, err := exportQuery(major, status)
			if err != nil {
				return err
			}
			tasks, err := s.db.ListTasks(cmd.Context(), q)
			if err != nil {
				return err
			}
			payload, err := database.NewTaskExport(tasks, c.clock.Now()).Encode(f)
			if err != nil {
				return err
			}
			if path == "" || path == "-" {
				_, err = cmd.OutOrStdout().Write(payload)
				return err
			}
			if err := os.WriteFile(path, payload, 0o644); err != nil {
				return zerr.With(zerr.Wrap(err, "write export"), "path", path)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Exported tasks to %s\n", path)
			return nil
		},
	}
	cmd.Flags().StringVarP(&format, "format", "f", "", "Output format: json or yaml (default from extension)")
	cmd.Flags().StringVar(&major, "major", "", "Only tasks in this major category")
	cmd.Flags().StringVar(&status, "status", "", "Only tasks with this status: not-started, in-progress or complete")
	return cmd
}

// exportQuery narrows an export; nil exports everything.
func exportQuery(major, status string) (*database.TaskQuery, error) {
	if major == "" && status == "" {
		return nil, nil
	}
	q := database.NewTaskQuery()
	if major != "" {
		q.WhereMajor(major)
	}
	if status != "" {
		st, ok := models.ParseStatus(status)
		if !ok {
			return nil, zerr.With(zerr.New("unknown status"), "status", status)
		}
		q.WhereStatus(st)
	}
	return q, nil
}

func (c *CLI) newStatsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "stats",
		Short: "Print completion statistics per major category",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			s, err := c.open(cmd.Context(), cmd.ErrOrStderr())
			if err != nil {
				return err
			}
			defer s.close()

			tasks, err := s.db.ListTasks(cmd.Context(), nil)
			if err != nil {
				return err
			}
			total, cats := gantt.Summarize(tasks)
			out := cmd.OutOrStdout()
			fmt.Fprintln(out, tui.FormatStats(total))
			if len(cats) == 0 {
				return nil
			}
			fmt.Fprintln(out, statsTable(cats))
			return nil
		},
	}
}

func statsTable(cats []gantt.CategoryStats) string {
	t := table.New().
		Border(lipgloss.NormalBorder()).
		Headers("Category", "Tasks", "Done", "Active", "Todo", "Avg")
	for _, c := range cats {
		t.Row(c.Category,
			strconv.Itoa(c.Total),
			strconv.Itoa(c.Complete),
			strconv.Itoa(c.InProgress),
			strconv.Itoa(c.NotStarted),
			tui.FormatPercent(c.AveragePercent))
	}
	return t.String()
}
