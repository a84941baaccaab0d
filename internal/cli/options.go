package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
)

func newDepartmentsCmd(a *app) *cobra.Command {
	return newOptionsCmd("departments", "List the distinct departments",
		func(ctx context.Context) ([]string, error) { return a.client.ListDepartments(ctx) })
}

func newRolesCmd(a *app) *cobra.Command {
	return newOptionsCmd("roles", "List the distinct roles",
		func(ctx context.Context) ([]string, error) { return a.client.ListRoles(ctx) })
}

// newOptionsCmd builds a command that prints one filter option list.
func newOptionsCmd(name, short string, fetch func(context.Context) ([]string, error)) *cobra.Command {
	var output string

	cmd := &cobra.Command{
		Use:   name,
		Short: short,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := validateOutputFormat(output); err != nil {
				return err
			}
			options, err := fetch(cmd.Context())
			if err != nil {
				return fmt.Errorf("listing %s: %w", name, err)
			}
			return renderOptions(cmd.OutOrStdout(), output, options)
		},
	}
	cmd.Flags().StringVarP(&output, "output", "o", outputFormatTable, "output format (table, json)")
	return cmd
}
