package cli

import (
	"strings"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/rshade/dataexplorer/internal/config"
	"github.com/rshade/dataexplorer/internal/logging"
)

// setupLogging configures logging from the loaded config and the --debug flag.
//
// The interactive browser always logs to a file so the terminal stays clean.
// Other commands log to stderr, at warn or above unless --debug is set.
func setupLogging(cmd *cobra.Command, cfg *config.Config, tui bool) logging.LogPathResult {
	debug, _ := cmd.Flags().GetBool("debug")

	var loggingCfg logging.Config
	if tui {
		loggingCfg = cfg.Logging.ForTUI(debug)
	} else {
		loggingCfg = cfg.Logging.ToLoggingConfig(debug)
		if !debug && loggingCfg.Output == logging.OutputStderr {
			loggingCfg.Level = atLeastWarn(loggingCfg.Level)
			loggingCfg.Format = logging.FormatConsole
		}
	}

	result := logging.NewLoggerWithPath(loggingCfg)
	logger = logging.ComponentLogger(result.Logger, "cli")

	if result.UsingFile && !tui {
		logging.PrintLogPathMessage(cmd.ErrOrStderr(), result.FilePath)
	} else if result.FallbackUsed {
		logging.PrintFallbackWarning(cmd.ErrOrStderr(), result.FallbackReason)
	}

	ctx := cmd.Context()
	traceID := logging.GetOrGenerateTraceID(ctx)
	ctx = logging.ContextWithTraceID(ctx, traceID)
	ctx = logger.WithContext(ctx)
	cmd.SetContext(ctx)

	logger.Info().Ctx(ctx).Str("command", cmd.Name()).Str("api_url", cfg.API.URL).Msg("command started")

	return result
}

// atLeastWarn raises info, debug, and trace to warn.
func atLeastWarn(level string) string {
	lvl, err := zerolog.ParseLevel(strings.ToLower(level))
	if err != nil || lvl < zerolog.WarnLevel {
		return zerolog.WarnLevel.String()
	}
	return lvl.String()
}

// cleanupLogging closes the log file handle, if any.
func cleanupLogging(cmd *cobra.Command, logResult *logging.LogPathResult) error {
	if logResult == nil {
		return nil
	}
	logger.Debug().Ctx(cmd.Context()).Str("command", cmd.Name()).Msg("command finished")
	return logResult.Close()
}
