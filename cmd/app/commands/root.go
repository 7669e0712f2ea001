// Package commands implements the mvno command line.
package commands

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/akyairhashvil/mvno/internal/tui"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/jonboulle/clockwork"
	"github.com/spf13/cobra"
)

// CLI represents the command line interface for mvno.
type CLI struct {
	rootCmd *cobra.Command

	clock   clockwork.Clock
	prompt  func(label string) (string, error)
	getenv  func(string) string
	teaOpts []tea.ProgramOption

	configPath string
	dbPath     string
	logJSON    bool
	verbose    bool
}

// New creates the CLI with every subcommand registered.
func New() *CLI {
	rootCmd := &cobra.Command{
		Use:           "mvno",
		Short:         "Gantt chart for MVNO project tasks",
		SilenceUsage:  true,
		SilenceErrors: true,
		Version:       tui.VersionLabel(),
		Args:          cobra.NoArgs,
	}

	rootCmd.InitDefaultVersionFlag()
	rootCmd.Flags().Lookup("version").Usage = "Print the application version"

	rootCmd.InitDefaultHelpFlag()
	rootCmd.Flags().Lookup("help").Usage = "Show help for command"

	c := &CLI{
		rootCmd: rootCmd,
		clock:   clockwork.NewRealClock(),
		prompt:  promptForKey,
		getenv:  os.Getenv,
	}

	pf := rootCmd.PersistentFlags()
	pf.StringVarP(&c.configPath, "config", "c", "", "Settings file (default $XDG_CONFIG_HOME/mvno/config.toml)")
	pf.StringVar(&c.dbPath, "db", "", "Database file (overrides database_path)")
	pf.BoolVar(&c.logJSON, "log-json", false, "Write logs as JSON")
	pf.BoolVar(&c.verbose, "verbose", false, "Log debug records")

	rootCmd.RunE = func(cmd *cobra.Command, _ []string) error {
		return c.runTUI(cmd.Context())
	}

	rootCmd.AddCommand(c.newTUICmd())
	rootCmd.AddCommand(c.newImportCmd())
	rootCmd.AddCommand(c.newExportCmd())
	rootCmd.AddCommand(c.newBackupCmd())
	rootCmd.AddCommand(c.newRestoreCmd())
	rootCmd.AddCommand(c.newPDFCmd())
	rootCmd.AddCommand(c.newStatsCmd())
	rootCmd.AddCommand(c.newVersionCmd())

	return c
}

// Execute runs the root command with the given context.
func (c *CLI) Execute(ctx context.Context) error {
	c.rootCmd.SetContext(ctx)
	return c.rootCmd.Execute()
}

// SetArgs sets the arguments for the root command. Used for testing.
func (c *CLI) SetArgs(args []string) {
	c.rootCmd.SetArgs(args)
}

// SetOutput redirects command output and errors. Used for testing.
func (c *CLI) SetOutput(out, errOut io.Writer) {
	c.rootCmd.SetOut(out)
	c.rootCmd.SetErr(errOut)
}

// WithTeaOptions appends options for the interactive program.
func (c *CLI) WithTeaOptions(opts ...tea.ProgramOption) *CLI {
	c.teaOpts = append(c.teaOpts, opts...)
	return c
}

func (c *CLI) newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the application version",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, _ []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "mvno version %s\n", tui.VersionLabel())
		},
	}
}
