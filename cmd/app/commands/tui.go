package commands

import (
	"context"
	"errors"

	"github.com/akyairhashvil/mvno/internal/backup"
	"github.com/akyairhashvil/mvno/internal/config"
	"github.com/akyairhashvil/mvno/internal/tui"
	"github.com/akyairhashvil/mvno/internal/util"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	"go.trai.ch/zerr"
)

func (c *CLI) newTUICmd() *cobra.Command {
	return &cobra.Command{
		Use:   "tui",
		Short: "Open the interactive Gantt chart (default)",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return c.runTUI(cmd.Context())
		},
	}
}

func (c *CLI) runTUI(ctx context.Context) error {
	s, err := c.open(ctx, nil)
	if err != nil {
		return err
	}
	defer s.close()

	var mgr *backup.Manager
	if s.settings.Backup.Enabled {
		mgr, err = c.backupManager(s, true)
		if err != nil {
			return err
		}
	}

	model := tui.NewMainModel(ctx, s.db, tui.Options{
		Settings:   s.settings,
		Backups:    mgr,
		Clock:      c.clock,
		Logger:     s.logger,
		ReportsDir: util.ReportsDir(config.AppName),
	})

	opts := append([]tea.ProgramOption{
		tea.WithContext(ctx),
		tea.WithAltScreen(),
		tea.WithMouseCellMotion(),
	}, c.teaOpts...)
	p := tea.NewProgram(model, opts...)

	s.logger.Info("tui started", "db", s.db.Path())
	if _, err := p.Run(); err != nil && !errors.Is(err, context.Canceled) {
		return zerr.Wrap(err, "run tui")
	}
	return nil
}
