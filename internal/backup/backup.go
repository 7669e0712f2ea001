// Package backup writes timestamped snapshots of the task table, optionally
// sealed with a passphrase, and restores them.
package backup

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"slices"
	"strconv"
	"strings"
	"time"

	"github.com/akyairhashvil/mvno/internal/database"
	"github.com/akyairhashvil/mvno/internal/models"
	"github.com/akyairhashvil/mvno/internal/util"
	"github.com/jonboulle/clockwork"
	"go.trai.ch/zerr"
)

var (
	ErrNoSnapshots         = zerr.New("no backup snapshots")
	ErrCorruptSnapshot     = zerr.New("backup snapshot is corrupt")
	ErrWrongPassphrase     = zerr.New("wrong backup passphrase")
	ErrPassphraseRequired  = zerr.New("backup snapshot is encrypted")
	ErrSnapshotUnsupported = zerr.New("unsupported backup snapshot version")
)

const (
	filePrefix      = "snapshot-"
	plainSuffix     = ".json"
	encryptedSuffix = ".enc.json"
	stampLayout     = "20060102-150405"
	fileVersion     = 1
)

// Options configures a Manager.
type Options struct {
	Dir        string
	Keep       int    // snapshots retained after each write; 0 keeps all
	Passphrase string // non-empty seals new snapshots
	Clock      clockwork.Clock
	Logger     *slog.Logger
}

// Manager owns a snapshot directory.
type Manager struct {
	dir        string
	keep       int
	passphrase string
	clock      clockwork.Clock
	logger     *slog.Logger
}

// Info describes one snapshot file.
type Info struct {
	Path      string
	CreatedAt time.Time
	Encrypted bool
	Size      int64

	seq int
}

func (i Info) Name() string { return filepath.Base(i.Path) }

// snapshotFile is the on-disk document. Plain snapshots carry Export;
// sealed ones carry Salt, Nonce and Data (the encrypted Export JSON).
type snapshotFile struct {
	Version   int                  `json:"version"`
	CreatedAt string               `json:"created_at"`
	Reason    string               `json:"reason,omitempty"`
	Encrypted bool                 `json:"encrypted"`
	Salt      []byte               `json:"salt,omitempty"`
	Nonce     []byte               `json:"nonce,omitempty"`
	Data      []byte               `json:"data,omitempty"`
	Export    *database.TaskExport `json:"export,omitempty"`
}

// New creates the snapshot directory if needed.
func New(opts Options) (*Manager, error) {
	if strings.TrimSpace(opts.Dir) == "" {
		return nil, zerr.New("backup directory is required")
	}
	if opts.Passphrase != "" {
		if err := util.ValidatePassphrase(opts.Passphrase); err != nil {
			return nil, zerr.Wrap(err, "backup passphrase")
		}
	}
	if err := os.MkdirAll(opts.Dir, 0o700); err != nil {
		return nil, zerr.With(zerr.Wrap(err, "create backup directory"), "dir", opts.Dir)
	}
	clock := opts.Clock
	if clock == nil {
		clock = clockwork.NewRealClock()
	}
	return &Manager{
		dir:        opts.Dir,
		keep:       opts.Keep,
		passphrase: opts.Passphrase,
		clock:      clock,
		logger:     util.OrDiscard(opts.Logger),
	}, nil
}

func (m *Manager) Dir() string { return m.dir }

// Write snapshots tasks and prunes old snapshots down to the retention limit.
func (m *Manager) Write(ctx context.Context, tasks []models.Task, reason string) (Info, error) {
	if err := ctx.Err(); err != nil {
		return Info{}, err
	}
	now := m.clock.Now()
	export := database.NewTaskExport(tasks, now)
	doc := snapshotFile{
		Version:   fileVersion,
		CreatedAt: now.UTC().Format(time.RFC3339),
		Reason:    reason,
	}
	if m.passphrase == "" {
		doc.Export = &export
	} else {
		if err := m.seal(&doc, export); err != nil {
			return Info{}, err
		}
	}
	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return Info{}, zerr.Wrap(err, "encode backup snapshot")
	}

	path, f, err := m.create(now, doc.Encrypted)
	if err != nil {
		return Info{}, err
	}
	if _, err := f.Write(data); err != nil {
		f.Close()
		os.Remove(path)
		return Info{}, zerr.With(zerr.Wrap(err, "write backup snapshot"), "path", path)
	}
	if err := f.Close(); err != nil {
		return Info{}, zerr.With(zerr.Wrap(err, "write backup snapshot"), "path", path)
	}
	m.logger.Info("backup written", "path", path, "tasks", len(tasks), "reason", reason, "encrypted", doc.Encrypted)

	if m.keep > 0 {
		if _, err := m.Prune(m.keep); err != nil {
			util.LogError(m.logger, "backup prune failed", err)
		}
	}
	return Info{Path: path, CreatedAt: now.UTC().Truncate(time.Second), Encrypted: doc.Encrypted, Size: int64(len(data))}, nil
}

func (m *Manager) seal(doc *snapshotFile, export database.TaskExport) error {
	payload, err := json.Marshal(export)
	if err != nil {
		return zerr.Wrap(err, "encode backup payload")
	}
	salt, err := util.NewSalt()
	if err != nil {
		return zerr.Wrap(err, "generate backup salt")
	}
	key, err := util.DeriveKey(m.passphrase, salt)
	if err != nil {
		return zerr.Wrap(err, "derive backup key")
	}
	nonce, sealed, err := util.Seal(key, payload)
	if err != nil {
		return zerr.Wrap(err, "seal backup payload")
	}
	doc.Encrypted = true
	doc.Salt = salt
	doc.Nonce = nonce
	doc.Data = sealed
	return nil
}

// create opens a new snapshot file, adding a counter when two snapshots
// land in the same second.
func (m *Manager) create(now time.Time, encrypted bool) (string, *os.File, error) {
	suffix := plainSuffix
	if encrypted {
		suffix = encryptedSuffix
	}
	base := filePrefix + now.UTC().Format(stampLayout)
	for n := 1; n < 1000; n++ {
		name := base + suffix
		if n > 1 {
			name = fmt.Sprintf("%s-%d%s", base, n, suffix)
		}
		path := filepath.Join(m.dir, name)
		f, err := os.OpenFile(path, os.O_CREATE|os.O_EXCL|os.O_WRONLY, 0o600)
		if err == nil {
			return path, f, nil
		}
		if !errors.Is(err, fs.ErrExist) {
			return "", nil, zerr.With(zerr.Wrap(err, "create backup snapshot"), "path", path)
		}
	}
	return "", nil, zerr.With(zerr.New("too many snapshots in one second"), "base", base)
}

// List returns every snapshot, newest first. Files that do not look like
// snapshots are ignored.
func (m *Manager) List() ([]Info, error) {
	entries, err := os.ReadDir(m.dir)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil
		}
		return nil, zerr.With(zerr.Wrap(err, "read backup directory"), "dir", m.dir)
	}
	var out []Info
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		created, seq, encrypted, ok := parseName(entry.Name())
		if !ok {
			continue
		}
		info := Info{Path: filepath.Join(m.dir, entry.Name()), CreatedAt: created, Encrypted: encrypted, seq: seq}
		if fi, err := entry.Info(); err == nil {
			info.Size = fi.Size()
		}
		out = append(out, info)
	}
	slices.SortFunc(out, func(a, b Info) int {
		if c := b.CreatedAt.Compare(a.CreatedAt); c != 0 {
			return c
		}
		return b.seq - a.seq
	})
	return out, nil
}

// parseName extracts the timestamp and same-second counter from
// snapshot-YYYYMMDD-HHMMSS[-n][.enc].json.
func parseName(name string) (created time.Time, seq int, encrypted bool, ok bool) {
	if !strings.HasPrefix(name, filePrefix) || !strings.HasSuffix(name, plainSuffix) {
		return time.Time{}, 0, false, false
	}
	encrypted = strings.HasSuffix(name, encryptedSuffix)
	rest := strings.TrimPrefix(name, filePrefix)
	if encrypted {
		rest = strings.TrimSuffix(rest, encryptedSuffix)
	} else {
		rest = strings.TrimSuffix(rest, plainSuffix)
	}
	if len(rest) < len(stampLayout) {
		return time.Time{}, 0, false, false
	}
	created, err := time.Parse(stampLayout, rest[:len(stampLayout)])
	if err != nil {
		return time.Time{}, 0, false, false
	}
	seq = 1
	if tail := rest[len(stampLayout):]; tail != "" {
		n, err := strconv.Atoi(strings.TrimPrefix(tail, "-"))
		if err != nil || !strings.HasPrefix(tail, "-") || n < 2 {
			return time.Time{}, 0, false, false
		}
		seq = n
	}
	return created, seq, encrypted, true
}

// Latest returns the newest snapshot.
func (m *Manager) Latest() (Info, error) {
	all, err := m.List()
	if err != nil {
		return Info{}, err
	}
	if len(all) == 0 {
		return Info{}, zerr.With(zerr.Wrap(ErrNoSnapshots, "latest snapshot"), "dir", m.dir)
	}
	return all[0], nil
}

// Prune removes all but the newest keep snapshots and reports how many
// were deleted.
func (m *Manager) Prune(keep int) (int, error) {
	if keep <= 0 {
		return 0, nil
	}
	all, err := m.List()
	if err != nil {
		return 0, err
	}
	removed := 0
	for _, info := range all[min(keep, len(all)):] {
		if err := os.Remove(info.Path); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return removed, zerr.With(zerr.Wrap(err, "remove backup snapshot"), "path", info.Path)
		}
		removed++
	}
	if removed > 0 {
		m.logger.Debug("backups pruned", "removed", removed, "kept", keep)
	}
	return removed, nil
}

// Load reads a snapshot. Sealed snapshots are opened with passphrase, or
// with the manager's passphrase when that argument is empty.
func (m *Manager) Load(path, passphrase string) (database.TaskExport, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return database.TaskExport{}, zerr.With(zerr.Wrap(err, "read backup snapshot"), "path", path)
	}
	var doc snapshotFile
	if err := json.Unmarshal(data, &doc); err != nil {
		return database.TaskExport{}, zerr.With(zerr.Wrap(ErrCorruptSnapshot, err.Error()), "path", path)
	}
	if doc.Version != fileVersion {
		return database.TaskExport{}, zerr.With(zerr.Wrap(ErrSnapshotUnsupported, path), "version", doc.Version)
	}
	if !doc.Encrypted {
		if doc.Export == nil {
			return database.TaskExport{}, zerr.Wrap(ErrCorruptSnapshot, path)
		}
		return *doc.Export, nil
	}

	if passphrase == "" {
		passphrase = m.passphrase
	}
	if passphrase == "" {
		return database.TaskExport{}, zerr.Wrap(ErrPassphraseRequired, path)
	}
	if len(doc.Salt) == 0 || len(doc.Nonce) == 0 || len(doc.Data) == 0 {
		return database.TaskExport{}, zerr.Wrap(ErrCorruptSnapshot, path)
	}
	key, err := util.DeriveKey(passphrase, doc.Salt)
	if err != nil {
		return database.TaskExport{}, zerr.Wrap(err, "derive backup key")
	}
	payload, err := util.Open(key, doc.Nonce, doc.Data)
	if err != nil {
		return database.TaskExport{}, zerr.Wrap(ErrWrongPassphrase, path)
	}
	var export database.TaskExport
	if err := json.Unmarshal(payload, &export); err != nil {
		return database.TaskExport{}, zerr.With(zerr.Wrap(ErrCorruptSnapshot, err.Error()), "path", path)
	}
	return export, nil
}

// Restore replaces every stored task with the snapshot's tasks.
func (m *Manager) Restore(ctx context.Context, path, passphrase string, sink database.TaskSink) (int, error) {
	export, err := m.Load(path, passphrase)
	if err != nil {
		return 0, err
	}
	tasks := export.Models()
	kept := tasks[:0]
	for _, t := range tasks {
		if t.ID != "" {
			kept = append(kept, t)
		}
	}
	if err := sink.ReplaceAll(ctx, kept); err != nil {
		return 0, zerr.Wrap(err, "restore backup")
	}
	m.logger.Info("backup restored", "path", path, "tasks", len(kept))
	return len(kept), nil
}
