package commands

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/akyairhashvil/mvno/internal/config"
	"github.com/akyairhashvil/mvno/internal/database"
	"github.com/akyairhashvil/mvno/internal/gantt"
	"github.com/akyairhashvil/mvno/internal/models"
	"github.com/akyairhashvil/mvno/internal/render"
	"github.com/akyairhashvil/mvno/internal/tui"
	"github.com/akyairhashvil/mvno/internal/util"
	"github.com/spf13/cobra"
	"go.trai.ch/zerr"
)

func (c *CLI) newPDFCmd() *cobra.Command {
	var unit string
	var level int
	var title string
	cmd := &cobra.Command{
		Use:   "pdf [file]",
		Short: "Render the Gantt chart to a PDF file",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			s, err := c.open(ctx, cmd.ErrOrStderr())
			if err != nil {
				return err
			}
			defer s.close()

			u := gantt.ParseUnit(s.settings.Unit)
			if saved, ok, err := s.db.GetSetting(ctx, database.SettingUnit); err == nil && ok {
				u = gantt.ParseUnit(saved)
			}
			if unit != "" {
				if unit != config.UnitMonth && unit != config.UnitWeek {
					return zerr.With(zerr.New("unknown unit"), "unit", unit)
				}
				u = gantt.ParseUnit(unit)
			}

			tasks, err := s.db.ListTasks(ctx, nil)
			if err != nil {
				return err
			}
			rows := chartRows(tasks, level)

			path := ""
			if len(args) == 1 {
				path = args[0]
			} else {
				name := fmt.Sprintf("mvno-gantt-%s.pdf", c.clock.Now().Format("20060102-150405"))
				path = filepath.Join(util.ReportsDir(config.AppName), name)
			}
			if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
				return zerr.With(zerr.Wrap(err, "create pdf dir"), "path", path)
			}

			r := render.NewRenderer(c.clock, s.logger)
			r.Palette = tui.ThemeFor(s.settings.Theme).ChartPalette()
			r.Locale = s.settings.Locale

			f, err := os.Create(path)
			if err != nil {
				return zerr.With(zerr.Wrap(err, "create pdf"), "path", path)
			}
			if err := r.ExportPDF(f, rows, render.PDFOptions{Title: title, Unit: u}); err != nil {
				_ = f.Close()
				_ = os.Remove(path)
				return err
			}
			if err := f.Close(); err != nil {
				return zerr.With(zerr.Wrap(err, "close pdf"), "path", path)
			}
			s.logger.Info("pdf written", "path", path, "rows", len(rows), "unit", string(u))
			fmt.Fprintf(cmd.OutOrStdout(), "Wrote %s (%d rows)\n", path, len(rows))
			return nil
		},
	}
	cmd.Flags().StringVarP(&unit, "unit", "u", "", "Time unit: month or week (default: last used)")
	cmd.Flags().IntVar(&level, "level", gantt.LevelTask+1, "Tree levels to show (1 = major categories only)")
	cmd.Flags().StringVar(&title, "title", "MVNO Gantt", "Page title")
	return cmd
}

// chartRows builds the tree from valid tasks and flattens it so the top
// level tree levels are visible.
func chartRows(tasks []models.Task, level int) []gantt.Row {
	tree := gantt.BuildTree(models.ValidTasks(tasks))
	exp := gantt.NewExpansionState()
	exp.SetTreeData(tree)
	level = util.Clamp(level, 1, gantt.LevelTask+1)
	exp.ExpandToLevel(level - 1)
	return gantt.Flatten(tree, exp)
}
