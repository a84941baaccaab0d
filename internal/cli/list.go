package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/rshade/dataexplorer/internal/pagination"
	"github.com/rshade/dataexplorer/internal/query"
)

type listParams struct {
	page   *pagination.Params
	output string
}

func newListCmd(a *app) *cobra.Command {
	params := listParams{page: pagination.NewParams()}

	cmd := &cobra.Command{
		Use:   "list",
		Short: "Print one page of users",
		Long: `Fetch a single page of users with optional search, filters, and sorting.

Sortable fields: id, name, email, role, department, date_joined.
Page size must be one of 10, 25, 50, or 100.`,
		Example: `  # First page with default settings
  dataexplorer list

  # Search and filter
  dataexplorer list --search smith --role Senior

  # Oldest members of Sales, 50 per page, as JSON
  dataexplorer list --department Sales --sort date_joined --page-size 50 --output json`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if !cmd.Flags().Changed("page-size") {
				params.page.PageSize = a.cfg.Display.PageSize
			}
			return runList(cmd, a, params)
		},
	}

	f := cmd.Flags()
	f.StringVar(&params.page.Search, "search", "", "free-text search across name, email, department, and role")
	f.StringVar(&params.page.Department, "department", "", "only users in this department")
	f.StringVar(&params.page.Role, "role", "", "only users with this role")
	f.StringVar(&params.page.Sort, "sort", pagination.DefaultSort, "sort as field or field:order, e.g. name:desc")
	f.IntVar(&params.page.Page, "page", pagination.DefaultPage, "page number, starting at 1")
	f.IntVar(&params.page.PageSize, "page-size", query.DefaultPageSize, "results per page (10, 25, 50, 100)")
	f.StringVarP(&params.output, "output", "o", outputFormatTable, "output format (table, json)")

	return cmd
}

func runList(cmd *cobra.Command, a *app, params listParams) error {
	if err := validateOutputFormat(params.output); err != nil {
		return err
	}
	state, err := params.page.State()
	if err != nil {
		return err
	}
	return printPage(cmd, a, state, params.output)
}

// printPage fetches the page described by state and writes it in the given format.
func printPage(cmd *cobra.Command, a *app, state query.State, format string) error {
	ctx := cmd.Context()
	offset, limit := state.Params()
	logger.Debug().Ctx(ctx).
		Int("offset", offset).
		Int("limit", limit).
		Str("sort_by", string(state.SortBy)).
		Str("sort_order", string(state.SortOrder)).
		Msg("listing users")

	page, err := a.client.ListUsers(ctx, state)
	if err != nil {
		return fmt.Errorf("listing users: %w", err)
	}

	meta := pagination.NewPageMeta(state.Page, state.PageSize, page.TotalItems, page.TotalPages)
	if format == outputFormatJSON {
		return renderUsersJSON(cmd.OutOrStdout(), page, meta)
	}
	return renderUsersTable(cmd.OutOrStdout(), page, meta)
}

// printFirstPage lists the first page with the configured page size.
func printFirstPage(cmd *cobra.Command, a *app) error {
	return printPage(cmd, a, query.New(a.cfg.Display.PageSize), outputFormatTable)
}
