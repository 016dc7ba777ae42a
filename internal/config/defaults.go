package config

const (
	defaultLanguage        = "auto"
	defaultContentType     = "adult"
	defaultOutputSuffix    = "_processed"
	defaultViolationSuffix = "-violation"
	defaultLogFormat       = "auto"
	defaultLogLevel        = "info"
	defaultHistoryPath     = "~/.local/share/subfix/history.db"
	defaultBatchWorkers    = 4
	defaultBatchLockFile   = "~/.local/share/subfix/batch.lock"
)

// Default returns a Config populated with repository defaults.
func Default() Config {
	return Config{
		Defaults: Defaults{
			Language:        defaultLanguage,
			ContentType:     defaultContentType,
			RemoveSDH:       true,
			PunctFix:        true,
			CheckSpeed:      true,
			OutputSuffix:    defaultOutputSuffix,
			ViolationSuffix: defaultViolationSuffix,
		},
		Logging: Logging{
			Format: defaultLogFormat,
			Level:  defaultLogLevel,
		},
		History: History{
			Enabled: true,
			Path:    defaultHistoryPath,
		},
		Batch: Batch{
			Workers:  defaultBatchWorkers,
			LockFile: defaultBatchLockFile,
		},
	}
}
