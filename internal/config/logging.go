package config

import (
	"github.com/rshade/dataexplorer/internal/logging"
)

// ToLoggingConfig converts the logging section to a logging.Config.
//
// If File is set, Output becomes "file"; otherwise logs go to stderr.
// debug forces the debug level and adds caller information.
func (lc LoggingConfig) ToLoggingConfig(debug bool) logging.Config {
	out := logging.Config{
		Level:  lc.Level,
		Format: lc.Format,
		Output: logging.OutputStderr,
		File:   lc.File,
	}
	if lc.File != "" {
		out.Output = logging.OutputFile
	}
	if debug {
		out.Level = "debug"
		out.Caller = true
	}
	return out
}

// ForTUI returns the logging config used while the interactive browser owns the
// terminal. Logs always go to a file, DefaultLogPath unless one is configured.
func (lc LoggingConfig) ForTUI(debug bool) logging.Config {
	out := lc.ToLoggingConfig(debug)
	out.Output = logging.OutputFile
	if out.File == "" {
		out.File = DefaultLogPath()
	}
	return out
}
