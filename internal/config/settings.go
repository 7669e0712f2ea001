package config

import (
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/pelletier/go-toml/v2"
	"go.trai.ch/zerr"
)

var (
	// ErrConfigRead is returned when the settings file exists but cannot be read.
	ErrConfigRead = zerr.New("failed to read config file")

	// ErrConfigParse is returned when the settings file is not valid TOML.
	ErrConfigParse = zerr.New("failed to parse config file")

	// ErrConfigInvalid is returned when a setting holds an unsupported value.
	ErrConfigInvalid = zerr.New("invalid config value")

	// ErrConfigWrite is returned when the settings file cannot be saved.
	ErrConfigWrite = zerr.New("failed to write config file")
)

// Duration is a time.Duration that reads and writes as "30m", "100ms", ...
type Duration time.Duration

func (d Duration) MarshalText() ([]byte, error) {
	return []byte(time.Duration(d).String()), nil
}

func (d *Duration) UnmarshalText(b []byte) error {
	v, err := time.ParseDuration(strings.TrimSpace(string(b)))
	if err != nil {
		return err
	}
	*d = Duration(v)
	return nil
}

func (d Duration) Std() time.Duration { return time.Duration(d) }

// BackupSettings controls snapshotting of the task table.
type BackupSettings struct {
	Enabled   bool     `toml:"enabled"`
	Interval  Duration `toml:"interval"`
	Directory string   `toml:"directory"`
	Keep      int      `toml:"keep"`
	Encrypt   bool     `toml:"encrypt"`
}

// ScrollSettings tunes the scroll synchronizer.
type ScrollSettings struct {
	SyncInterval     Duration `toml:"sync_interval"`
	LayoutRetryDelay Duration `toml:"layout_retry_delay"`
	LayoutRetryLimit int      `toml:"layout_retry_limit"`
}

// RenderSettings tunes the render orchestrator.
type RenderSettings struct {
	Debounce    Duration `toml:"debounce"`
	HeaderDelay Duration `toml:"header_delay"`
}

// Settings is the application configuration. It is passed explicitly to
// the components that need it.
type Settings struct {
	DatabasePath string         `toml:"database_path"`
	Unit         string         `toml:"unit"`
	Locale       string         `toml:"locale"`
	Theme        string         `toml:"theme"`
	ListWidth    int            `toml:"list_width"`
	Backup       BackupSettings `toml:"backup"`
	Scroll       ScrollSettings `toml:"scroll"`
	Render       RenderSettings `toml:"render"`
}

// Default returns settings populated with the package defaults.
func Default() Settings {
	return Settings{
		Unit:      UnitMonth,
		Locale:    LocaleEnglish,
		Theme:     "default",
		ListWidth: DefaultListWidth,
		Backup: BackupSettings{
			Enabled:  true,
			Interval: Duration(BackupInterval),
			Keep:     BackupKeep,
		},
		Scroll: ScrollSettings{
			SyncInterval:     Duration(HorizontalSyncInterval),
			LayoutRetryDelay: Duration(LayoutRetryDelay),
			LayoutRetryLimit: LayoutRetryLimit,
		},
		Render: RenderSettings{
			Debounce:    Duration(RepaintDebounce),
			HeaderDelay: Duration(HeaderDelay),
		},
	}
}

// Path returns the standard settings file location.
func Path() string {
	if base := strings.TrimSpace(os.Getenv("XDG_CONFIG_HOME")); base != "" {
		return filepath.Join(base, AppName, ConfigFileName)
	}
	home, err := os.UserHomeDir()
	if err != nil || home == "" {
		return filepath.Join(".", AppName, ConfigFileName)
	}
	return filepath.Join(home, ".config", AppName, ConfigFileName)
}

// Load reads settings from path. A missing file yields the defaults.
func Load(path string) (Settings, error) {
	s := Default()
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return s, nil
	}
	if err != nil {
		return s, zerr.With(zerr.Wrap(err, ErrConfigRead.Error()), "path", path)
	}
	if err := toml.Unmarshal(data, &s); err != nil {
		return Default(), zerr.With(zerr.Wrap(err, ErrConfigParse.Error()), "path", path)
	}
	s.applyDefaults()
	return s, s.Validate()
}

// Save writes settings to path, creating the parent directory.
func Save(path string, s Settings) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return zerr.With(zerr.Wrap(err, ErrConfigWrite.Error()), "path", path)
	}
	data, err := toml.Marshal(s)
	if err != nil {
		return zerr.Wrap(err, ErrConfigWrite.Error())
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return zerr.With(zerr.Wrap(err, ErrConfigWrite.Error()), "path", path)
	}
	return nil
}

// Validate rejects values the rest of the application cannot honour.
func (s Settings) Validate() error {
	switch s.Unit {
	case UnitMonth, UnitWeek:
	default:
		return zerr.With(zerr.Wrap(ErrConfigInvalid, "unit"), "unit", s.Unit)
	}
	switch s.Locale {
	case LocaleEnglish, LocaleKorean, LocaleJapanese:
	default:
		return zerr.With(zerr.Wrap(ErrConfigInvalid, "locale"), "locale", s.Locale)
	}
	if s.Backup.Keep < 0 {
		return zerr.With(zerr.Wrap(ErrConfigInvalid, "backup.keep"), "backup.keep", s.Backup.Keep)
	}
	return nil
}

func (s *Settings) applyDefaults() {
	d := Default()
	if s.Unit == "" {
		s.Unit = d.Unit
	}
	if s.Locale == "" {
		s.Locale = d.Locale
	}
	if s.Theme == "" {
		s.Theme = d.Theme
	}
	if s.ListWidth < MinListWidth {
		s.ListWidth = d.ListWidth
	}
	if s.Backup.Interval <= 0 {
		s.Backup.Interval = d.Backup.Interval
	}
	if s.Scroll.SyncInterval <= 0 {
		s.Scroll.SyncInterval = d.Scroll.SyncInterval
	}
	if s.Scroll.LayoutRetryDelay <= 0 {
		s.Scroll.LayoutRetryDelay = d.Scroll.LayoutRetryDelay
	}
	if s.Scroll.LayoutRetryLimit <= 0 {
		s.Scroll.LayoutRetryLimit = d.Scroll.LayoutRetryLimit
	}
	if s.Render.Debounce <= 0 {
		s.Render.Debounce = d.Render.Debounce
	}
	if s.Render.HeaderDelay <= 0 {
		s.Render.HeaderDelay = d.Render.HeaderDelay
	}
}
