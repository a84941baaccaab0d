package cli

import (
	"fmt"
	"time"

	"github.com/briandowns/spinner"
	"github.com/spf13/cobra"

	"github.com/rshade/dataexplorer/internal/api"
)

const spinnerInterval = 100 * time.Millisecond

// spinnerState starts and stops a spinner only when it is enabled.
type spinnerState struct {
	spinner *spinner.Spinner
	enabled bool
}

func (s *spinnerState) start() {
	if s.enabled {
		s.spinner.Start()
	}
}

func (s *spinnerState) stop() {
	if s.enabled && s.spinner.Active() {
		s.spinner.Stop()
	}
}

func newSeedCmd(a *app) *cobra.Command {
	var count int

	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Replace the server's users with generated sample data",
		Example: `  # Generate the default 100 users
  dataexplorer seed

  # Generate 1000 users
  dataexplorer seed --count 1000`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if count < api.MinSeedCount || count > api.MaxSeedCount {
				return fmt.Errorf("--count %d: %w", count, api.ErrInvalidSeedCount)
			}

			errOut := cmd.ErrOrStderr()
			spin := spinner.New(spinner.CharSets[14], spinnerInterval, spinner.WithWriter(errOut))
			spin.Suffix = fmt.Sprintf(" Seeding %d users...", count)
			state := spinnerState{spinner: spin, enabled: isTerminalWriter(errOut)}

			state.start()
			msg, err := a.client.Seed(cmd.Context(), count)
			state.stop()
			if err != nil {
				return fmt.Errorf("seeding users: %w", err)
			}

			logger.Info().Ctx(cmd.Context()).Int("count", count).Msg("seeded users")
			_, err = fmt.Fprintln(cmd.OutOrStdout(), msg)
			return err
		},
	}

	cmd.Flags().IntVarP(&count, "count", "n", api.DefaultSeedCount,
		fmt.Sprintf("number of users to generate (%d-%d)", api.MinSeedCount, api.MaxSeedCount))
	return cmd
}
