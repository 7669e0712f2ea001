package commands

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/akyairhashvil/mvno/internal/backup"
	"github.com/akyairhashvil/mvno/internal/config"
	"github.com/akyairhashvil/mvno/internal/database"
	"github.com/akyairhashvil/mvno/internal/util"
	"go.trai.ch/zerr"
	"golang.org/x/term"
)

// passphraseEnv supplies the backup passphrase without prompting.
const passphraseEnv = "MVNO_BACKUP_KEY"

// session is everything a command needs: settings, an open store and a logger.
type session struct {
	settings config.Settings
	db       *database.Database
	logger   *slog.Logger
	closers  []io.Closer
}

// open loads settings and opens the database. A nil logW sends logs to the
// log file in the data directory.
func (c *CLI) open(ctx context.Context, logW io.Writer) (*session, error) {
	path := c.configPath
	if path == "" {
		path = config.Path()
	}
	settings, err := config.Load(path)
	if err != nil {
		return nil, err
	}

	s := &session{settings: settings}
	if logW == nil {
		f, err := util.OpenLogFile(filepath.Join(util.DataDir(config.AppName), config.LogFileName))
		if err != nil {
			return nil, zerr.Wrap(err, "open log file")
		}
		s.closers = append(s.closers, f)
		logW = f
	}
	level := slog.LevelInfo
	if c.verbose {
		level = slog.LevelDebug
	}
	s.logger = util.NewLogger(logW, level, c.logJSON)

	db, err := database.Open(ctx, c.resolveDBPath(settings), database.Options{Logger: s.logger, Clock: c.clock})
	if err != nil {
		s.close()
		return nil, err
	}
	s.db = db
	s.closers = append(s.closers, db)
	return s, nil
}

func (c *CLI) resolveDBPath(s config.Settings) string {
	if c.dbPath != "" {
		return util.ExpandHome(c.dbPath)
	}
	return util.ResolveDir(s.DatabasePath, filepath.Join(util.DataDir(config.AppName), config.DBFileName))
}

func (s *session) close() {
	for i := len(s.closers) - 1; i >= 0; i-- {
		if err := s.closers[i].Close(); err != nil && s.logger != nil {
			util.LogError(s.logger, "close", err)
		}
	}
	s.closers = nil
}

func backupDir(s config.BackupSettings) string {
	return util.ResolveDir(s.Directory, filepath.Join(util.DataDir(config.AppName), config.BackupDirName))
}

// backupManager builds the snapshot manager from settings. With seal set
// and encryption configured, the passphrase comes from the environment or
// a prompt.
func (c *CLI) backupManager(s *session, seal bool) (*backup.Manager, error) {
	opts := backup.Options{
		Dir:    backupDir(s.settings.Backup),
		Keep:   s.settings.Backup.Keep,
		Clock:  c.clock,
		Logger: s.logger,
	}
	if seal && s.settings.Backup.Encrypt {
		pass, err := c.passphrase("Backup passphrase: ")
		if err != nil {
			return nil, err
		}
		opts.Passphrase = pass
	}
	return backup.New(opts)
}

func (c *CLI) passphrase(label string) (string, error) {
	if pass := strings.TrimSpace(c.getenv(passphraseEnv)); pass != "" {
		return pass, nil
	}
	pass, err := c.prompt(label)
	if err != nil {
		return "", zerr.Wrap(err, "read passphrase")
	}
	if pass == "" {
		return "", errors.New("empty passphrase")
	}
	return pass, nil
}

func promptForKey(label string) (string, error) {
	fmt.Fprint(os.Stderr, label)
	pass, err := term.ReadPassword(int(os.Stdin.Fd()))
	fmt.Fprintln(os.Stderr)
	return strings.TrimSpace(string(pass)), err
}
