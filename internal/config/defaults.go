package config

const (
	defaultLibraryDir           = "~/library"
	defaultLogDir               = "~/.local/share/weft/logs"
	defaultConflictStrategy     = "skip"
	defaultSeasonFolderTemplate = "Season {season:02}"
	defaultPathMax              = 260
	defaultHistoryPath          = "~/.local/share/weft/history.db"
	defaultLogFormat            = "console"
	defaultLogLevel             = "info"
	defaultRingCapacity         = 1000
)

// Default returns a Config populated with repository defaults.
func Default() Config {
	return Config{
		Paths: Paths{
			LibraryDir: defaultLibraryDir,
			LogDir:     defaultLogDir,
		},
		Library: Library{
			ConflictStrategy:     defaultConflictStrategy,
			CreateSeasonFolders:  false,
			SeasonFolderTemplate: defaultSeasonFolderTemplate,
			PathMax:              defaultPathMax,
			Workers:              0,
		},
		History: History{
			Enabled: true,
			Path:    defaultHistoryPath,
		},
		Logging: Logging{
			Format:       defaultLogFormat,
			Level:        defaultLogLevel,
			RingCapacity: defaultRingCapacity,
		},
	}
}
