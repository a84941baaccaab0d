package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"
)

const statusHealthy = "healthy"

// ErrUnhealthy is returned when the API answers but does not report itself healthy.
var ErrUnhealthy = errors.New("API reported an unhealthy status")

func newHealthCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "health",
		Short: "Check that the API is reachable and healthy",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			status, err := a.client.Health(cmd.Context())
			if err != nil {
				return fmt.Errorf("checking health: %w", err)
			}
			if status != statusHealthy {
				return fmt.Errorf("%w: %q", ErrUnhealthy, status)
			}
			_, err = fmt.Fprintf(cmd.OutOrStdout(), "%s: %s\n", a.client.BaseURL(), status)
			return err
		},
	}
}

func newCacheCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "cache",
		Short: "Manage the API's response cache",
	}
	cmd.AddCommand(&cobra.Command{
		Use:   "clear",
		Short: "Drop every cached response on the server",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			msg, err := a.client.ClearCache(cmd.Context())
			if err != nil {
				return fmt.Errorf("clearing cache: %w", err)
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), msg)
			return err
		},
	})
	return cmd
}
