package cli

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/rshade/dataexplorer/internal/api"
	"github.com/rshade/dataexplorer/internal/config"
	"github.com/rshade/dataexplorer/internal/logging"
	"github.com/rshade/dataexplorer/internal/version"
)

// annotationTUI marks commands that take over the terminal. Their logs go to a file.
const annotationTUI = "dataexplorer/tui"

// isTerminal checks if the given file is a terminal.
func isTerminal(f *os.File) bool {
	return term.IsTerminal(int(f.Fd()))
}

// isTerminalWriter reports whether w is a terminal. Buffers and pipes are not.
func isTerminalWriter(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && isTerminal(f)
}

// logger is the package-level logger for CLI operations.
var logger zerolog.Logger //nolint:gochecknoglobals // Required for zerolog context integration

// app is the state shared by every command, built once per invocation by the
// root PersistentPreRunE.
type app struct {
	cfg       *config.Config
	client    *api.Client
	logResult *logging.LogPathResult
	version   string
}

// NewRootCmd creates the root Cobra command for the dataexplorer CLI.
// Without a subcommand it opens the interactive browser.
func NewRootCmd(ver string) *cobra.Command {
	a := &app{version: ver}

	cmd := &cobra.Command{
		Use:     "dataexplorer",
		Short:   "Browse, filter, sort, and page through user records",
		Long:    "Simple Data Explorer: a terminal client for the user-records API",
		Version: ver,
		Example: rootCmdExample,
		Annotations: map[string]string{
			annotationTUI: "true",
		},
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return a.setup(cmd)
		},
		PersistentPostRunE: func(cmd *cobra.Command, _ []string) error {
			return cleanupLogging(cmd, a.logResult)
		},
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runBrowse(cmd, a, browseParams{seedCount: api.DefaultSeedCount})
		},
	}

	cmd.PersistentFlags().Bool("debug", false, "enable debug logging")
	cmd.PersistentFlags().String("config", "", "config file (default ~/.dataexplorer/config.yaml)")
	cmd.PersistentFlags().String("api-url", "", "base URL of the user-records API (default "+config.DefaultAPIURL+")")
	cmd.PersistentFlags().String("timeout", "", "per-request timeout, e.g. 5s or 5 (default 10s)")

	cmd.AddCommand(
		newBrowseCmd(a),
		newListCmd(a),
		newDepartmentsCmd(a),
		newRolesCmd(a),
		newSeedCmd(a),
		newHealthCmd(a),
		newCacheCmd(a),
		newVersionCmd(a),
	)

	return cmd
}

const rootCmdExample = `  # Open the interactive browser
  dataexplorer

  # Print the second page of engineers sorted by join date, newest first
  dataexplorer list --department Engineering --sort date_joined:desc --page 2

  # Same page as JSON
  dataexplorer list --department Engineering --output json

  # Regenerate 250 users
  dataexplorer seed --count 250

  # Talk to a different API host
  dataexplorer --api-url http://api.internal:8000 health`

// setup loads configuration, applies flag overrides, starts logging, and builds the API client.
func (a *app) setup(cmd *cobra.Command) error {
	cfgPath, _ := cmd.Flags().GetString("config")
	cfg, err := config.Load(cfgPath)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}
	if err = applyFlagOverrides(cmd, cfg); err != nil {
		return err
	}
	a.cfg = cfg

	result := setupLogging(cmd, cfg, wantsTUI(cmd))
	a.logResult = &result

	client, err := api.NewClient(api.Options{
		BaseURL:   cfg.API.URL,
		Timeout:   cfg.API.Timeout,
		UserAgent: version.UserAgent(a.version),
	})
	if err != nil {
		return fmt.Errorf("creating API client: %w", err)
	}
	a.client = client
	return nil
}

// applyFlagOverrides applies the persistent flags that were set explicitly, then
// re-validates the result.
func applyFlagOverrides(cmd *cobra.Command, cfg *config.Config) error {
	if cmd.Flags().Changed("api-url") {
		v, _ := cmd.Flags().GetString("api-url")
		cfg.API.URL = strings.TrimSpace(v)
	}
	if cmd.Flags().Changed("timeout") {
		v, _ := cmd.Flags().GetString("timeout")
		d, err := config.ParseTimeout(v)
		if err != nil {
			return fmt.Errorf("--timeout: %w", err)
		}
		cfg.API.Timeout = d
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}
	return nil
}

// wantsTUI reports whether cmd will take over the terminal.
func wantsTUI(cmd *cobra.Command) bool {
	if cmd.Annotations[annotationTUI] != "true" {
		return false
	}
	if plain, _ := cmd.Flags().GetBool("plain"); plain {
		return false
	}
	return isTerminalWriter(cmd.OutOrStdout())
}
