package commands

import (
	"errors"
	"fmt"

	"github.com/akyairhashvil/mvno/internal/backup"
	"github.com/spf13/cobra"
)

func (c *CLI) newBackupCmd() *cobra.Command {
	var list bool
	cmd := &cobra.Command{
		Use:   "backup",
		Short: "Write a task snapshot into the backup directory",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			s, err := c.open(cmd.Context(), cmd.ErrOrStderr())
			if err != nil {
				return err
			}
			defer s.close()
			out := cmd.OutOrStdout()

			if list {
				mgr, err := c.backupManager(s, false)
				if err != nil {
					return err
				}
				infos, err := mgr.List()
				if err != nil {
					return err
				}
				if len(infos) == 0 {
					fmt.Fprintln(out, "No snapshots in", mgr.Dir())
					return nil
				}
				for _, info := range infos {
					lock := ""
					if info.Encrypted {
						lock = " (encrypted)"
					}
					fmt.Fprintf(out, "%s  %s  %d bytes%s\n",
						info.CreatedAt.Local().Format("2006-01-02 15:04:05"), info.Name(), info.Size, lock)
				}
				return nil
			}

			mgr, err := c.backupManager(s, true)
			if err != nil {
				return err
			}
			tasks, err := s.db.ListTasks(cmd.Context(), nil)
			if err != nil {
				return err
			}
			info, err := mgr.Write(cmd.Context(), tasks, "manual")
			if err != nil {
				return err
			}
			fmt.Fprintf(out, "Backup written: %s (%d tasks)\n", info.Path, len(tasks))
			return nil
		},
	}
	cmd.Flags().BoolVarP(&list, "list", "l", false, "List snapshots instead of writing one")
	return cmd
}

func (c *CLI) newRestoreCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "restore [snapshot]",
		Short: "Replace every task with a snapshot (latest when none is given)",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := c.open(cmd.Context(), cmd.ErrOrStderr())
			if err != nil {
				return err
			}
			defer s.close()

			mgr, err := c.backupManager(s, false)
			if err != nil {
				return err
			}
			path := ""
			if len(args) == 1 {
				path = args[0]
			} else {
				latest, err := mgr.Latest()
				if err != nil {
					return err
				}
				path = latest.Path
			}

			n, err := mgr.Restore(cmd.Context(), path, "", s.db)
			if errors.Is(err, backup.ErrPassphraseRequired) {
				pass, perr := c.passphrase("Snapshot passphrase: ")
				if perr != nil {
					return perr
				}
				n, err = mgr.Restore(cmd.Context(), path, pass, s.db)
			}
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Restored %d tasks from %s\n", n, path)
			return nil
		},
	}
}
