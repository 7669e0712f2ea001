package backup

import (
	"context"
	"strings"
	"time"

	"github.com/akyairhashvil/mvno/internal/config"
	"github.com/akyairhashvil/mvno/internal/database"
	"go.trai.ch/zerr"
)

// Policy decides when automatic snapshots are taken.
type Policy struct {
	Enabled  bool
	Interval time.Duration
}

// PolicyFromSettings maps the [backup] config section.
func PolicyFromSettings(s config.BackupSettings) Policy {
	interval := s.Interval.Std()
	if interval <= 0 {
		interval = config.BackupInterval
	}
	return Policy{Enabled: s.Enabled, Interval: interval}
}

// LastBackup reads the time of the previous automatic snapshot. A missing
// or unreadable value is reported as the zero time.
func LastBackup(ctx context.Context, st database.SettingsStore) (time.Time, error) {
	raw, ok, err := st.GetSetting(ctx, database.SettingLastBackup)
	if err != nil || !ok {
		return time.Time{}, err
	}
	last, perr := time.Parse(time.RFC3339, strings.TrimSpace(raw))
	if perr != nil {
		return time.Time{}, nil
	}
	return last, nil
}

// Due reports whether a snapshot should be taken at now.
func (p Policy) Due(last, now time.Time) bool {
	if !p.Enabled {
		return false
	}
	return last.IsZero() || now.Sub(last) >= p.Interval
}

// RunIfDue snapshots the task source when the policy says a snapshot is
// due and records the time in the settings store. It reports whether a
// snapshot was written.
func (m *Manager) RunIfDue(ctx context.Context, p Policy, src database.TaskSource, st database.SettingsStore) (Info, bool, error) {
	last, err := LastBackup(ctx, st)
	if err != nil {
		return Info{}, false, zerr.Wrap(err, "read last backup time")
	}
	now := m.clock.Now()
	if !p.Due(last, now) {
		return Info{}, false, nil
	}
	tasks, err := src.ListTasks(ctx, nil)
	if err != nil {
		return Info{}, false, zerr.Wrap(err, "load tasks for backup")
	}
	info, err := m.Write(ctx, tasks, "auto")
	if err != nil {
		return Info{}, false, err
	}
	if err := st.SetSetting(ctx, database.SettingLastBackup, now.UTC().Format(time.RFC3339)); err != nil {
		return info, true, zerr.Wrap(err, "record last backup time")
	}
	return info, true, nil
}
