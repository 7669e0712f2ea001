// Package database is the sqlite task source and mutation sink. It stores the
// flat task records the Gantt tree is built from, plus a small key/value
// settings table used for view state.
package database

import (
	"context"
	"database/sql"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/akyairhashvil/mvno/internal/util"
	"github.com/jonboulle/clockwork"
	_ "github.com/mattn/go-sqlite3"
	"go.trai.ch/zerr"
)

const defaultDBTimeout = 5 * time.Second

// schemaVersion is stored in PRAGMA user_version.
const schemaVersion = 2

var (
	ErrOpen    = zerr.New("open database")
	ErrMigrate = zerr.New("migrate database")
)

// Options configure Open.
type Options struct {
	Logger *slog.Logger
	Clock  clockwork.Clock
}

// Database wraps the sqlite handle.
type Database struct {
	DB     *sql.DB
	dbFile string
	logger *slog.Logger
	clock  clockwork.Clock
}

// Open opens (creating if needed) the database at path and brings the schema
// up to date.
func Open(ctx context.Context, path string, opts Options) (*Database, error) {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o700); err != nil {
			return nil, zerr.With(zerr.Wrap(err, ErrOpen.Error()), "path", path)
		}
	}
	dsn := "file:" + path + "?_busy_timeout=5000&_foreign_keys=on&_journal_mode=WAL"
	db, err := sql.Open("sqlite3", dsn)
	if err != nil {
		return nil, zerr.With(zerr.Wrap(err, ErrOpen.Error()), "path", path)
	}
	db.SetMaxOpenConns(1)

	clock := opts.Clock
	if clock == nil {
		clock = clockwork.NewRealClock()
	}
	d := &Database{DB: db, dbFile: path, logger: util.OrDiscard(opts.Logger), clock: clock}

	pingCtx, cancel := d.withTimeout(ctx, defaultDBTimeout)
	defer cancel()
	if err := db.PingContext(pingCtx); err != nil {
		_ = db.Close()
		return nil, zerr.With(zerr.Wrap(err, ErrOpen.Error()), "path", path)
	}
	if err := d.migrate(ctx); err != nil {
		_ = db.Close()
		return nil, err
	}
	d.logger.Debug("database opened", "path", path)
	return d, nil
}

func (d *Database) Close() error {
	if d == nil || d.DB == nil {
		return nil
	}
	return d.DB.Close()
}

// Path is the database file location.
func (d *Database) Path() string { return d.dbFile }

func (d *Database) withTimeout(ctx context.Context, timeout time.Duration) (context.Context, context.CancelFunc) {
	if ctx == nil {
		ctx = context.Background()
	}
	if _, ok := ctx.Deadline(); ok {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, timeout)
}

// withTx runs fn inside a transaction, rolling back unless fn succeeds and
// the commit goes through.
func (d *Database) withTx(ctx context.Context, fn func(tx *sql.Tx) error) error {
	tx, err := d.DB.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	commit := false
	defer func() {
		if !commit {
			_ = tx.Rollback()
		}
	}()
	if err := fn(tx); err != nil {
		return err
	}
	if err := tx.Commit(); err != nil {
		return err
	}
	commit = true
	return nil
}

var migrations = []string{
	// 1: tasks and settings
	`CREATE TABLE IF NOT EXISTS tasks (
		id TEXT PRIMARY KEY,
		name TEXT NOT NULL DEFAULT '',
		resource TEXT NOT NULL DEFAULT '',
		start_date TEXT,
		end_date TEXT,
		duration INTEGER,
		percent_complete INTEGER NOT NULL DEFAULT 0,
		dependency TEXT NOT NULL DEFAULT '',
		major TEXT NOT NULL DEFAULT '',
		middle TEXT NOT NULL DEFAULT '',
		minor TEXT NOT NULL DEFAULT '',
		rank INTEGER NOT NULL DEFAULT 0
	);
	CREATE TABLE IF NOT EXISTS settings (
		key TEXT PRIMARY KEY,
		value TEXT
	);`,
	// 2: change tracking and category index
	`ALTER TABLE tasks ADD COLUMN updated_at DATETIME;
	CREATE INDEX IF NOT EXISTS idx_tasks_category ON tasks(major, middle, minor, rank);`,
}

func (d *Database) migrate(ctx context.Context) error {
	ctx, cancel := d.withTimeout(ctx, defaultDBTimeout)
	defer cancel()
	var version int
	if err := d.DB.QueryRowContext(ctx, "PRAGMA user_version").Scan(&version); err != nil {
		return zerr.Wrap(err, ErrMigrate.Error())
	}
	for i := version; i < len(migrations) && i < schemaVersion; i++ {
		stmt := migrations[i]
		next := i + 1
		err := d.withTx(ctx, func(tx *sql.Tx) error {
			if _, err := tx.ExecContext(ctx, stmt); err != nil {
				return err
			}
			// PRAGMA does not take bind parameters.
			_, err := tx.ExecContext(ctx, "PRAGMA user_version = "+strconv.Itoa(next))
			return err
		})
		if err != nil {
			return zerr.With(zerr.Wrap(err, ErrMigrate.Error()), "version", next)
		}
		d.logger.Debug("schema migrated", "version", next)
	}
	return nil
}

// SchemaVersion reports the stored schema version.
func (d *Database) SchemaVersion(ctx context.Context) (int, error) {
	ctx, cancel := d.withTimeout(ctx, defaultDBTimeout)
	defer cancel()
	var v int
	err := d.DB.QueryRowContext(ctx, "PRAGMA user_version").Scan(&v)
	return v, err
}
