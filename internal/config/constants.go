package config

import "time"

// Render orchestration timings.
const (
	RepaintDebounce = 100 * time.Millisecond
	HeaderDelay     = 30 * time.Millisecond
)

// Scroll synchronization.
const (
	// HorizontalSyncInterval rate-limits header writes during continuous scrolling.
	HorizontalSyncInterval = 10 * time.Millisecond

	// BoundaryTolerance is the distance (px) from an edge treated as "at the edge".
	BoundaryTolerance = 1.0

	LayoutRetryDelay = 50 * time.Millisecond
	LayoutRetryLimit = 10

	// VerifyFrames is how many frames after initial positioning the header is re-checked.
	VerifyFrames = 2
)

// Date units.
const (
	UnitMonth = "month"
	UnitWeek  = "week"
)

// Locales with month name tables.
const (
	LocaleEnglish  = "en"
	LocaleKorean   = "ko"
	LocaleJapanese = "ja"
)

// Application settings.
const (
	AppName        = "mvno"
	DBFileName     = "mvno.db"
	ConfigFileName = "config.toml"
	LogFileName    = "mvno.log"
)

// Backup defaults.
const (
	BackupInterval = 30 * time.Minute
	BackupKeep     = 20
	BackupDirName  = "backups"
)
