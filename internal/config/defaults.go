package config

const (
	defaultWatchDir         = "~/Downloads"
	defaultLogDir           = "~/.local/share/sortd/logs"
	defaultFallbackCategory = "Other"
	defaultLogFormat        = "console"
	defaultLogLevel         = "info"
	defaultLargeThresholdMB = 500
)

// LargeFilesDir is the subfolder inside a category that receives files above
// the configured size threshold.
const LargeFilesDir = "LargeFiles"

// Default returns a Config populated with repository defaults.
func Default() Config {
	return Config{
		Paths: Paths{
			WatchDir: defaultWatchDir,
			LogDir:   defaultLogDir,
		},
		Categories: Categories{
			Rules: map[string][]string{
				"Documents":  {"pdf", "doc", "docx", "odt", "rtf", "txt", "md", "epub"},
				"Images":     {"jpg", "jpeg", "png", "gif", "bmp", "webp", "svg", "heic"},
				"Videos":     {"mp4", "mkv", "avi", "mov", "webm"},
				"Music":      {"mp3", "flac", "wav", "ogg", "m4a"},
				"Archives":   {"zip", "tar", "gz", "bz2", "xz", "7z", "rar"},
				"Installers": {"dmg", "pkg", "deb", "rpm", "msi", "exe", "appimage"},
				"Sheets":     {"xls", "xlsx", "ods", "csv"},
			},
			Fallback: defaultFallbackCategory,
		},
		Organize: Organize{
			Ignore:               []string{".DS_Store", "Thumbs.db"},
			LargeFileThresholdMB: defaultLargeThresholdMB,
		},
		Logging: Logging{
			Format: defaultLogFormat,
			Level:  defaultLogLevel,
		},
	}
}
