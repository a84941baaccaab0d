package cli

import (
	"errors"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/rshade/dataexplorer/internal/api"
	"github.com/rshade/dataexplorer/internal/logging"
	"github.com/rshade/dataexplorer/internal/tui"
)

type browseParams struct {
	seedCount int
	plain     bool
}

func newBrowseCmd(a *app) *cobra.Command {
	var params browseParams

	cmd := &cobra.Command{
		Use:   "browse",
		Short: "Open the interactive browser (default)",
		Long: `Open the interactive user browser.

Search with /, filter with d and o, sort with 1-6, and page with h and l. The
help line lists the remaining keys. When stdout is not a terminal, or with --plain, the first
page is printed as a table instead.`,
		Annotations: map[string]string{
			annotationTUI: "true",
		},
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runBrowse(cmd, a, params)
		},
	}

	cmd.Flags().IntVar(&params.seedCount, "seed-count", api.DefaultSeedCount,
		fmt.Sprintf("users generated by the seed key (%d-%d)", api.MinSeedCount, api.MaxSeedCount))
	cmd.Flags().BoolVar(&params.plain, "plain", false, "print the first page instead of opening the browser")

	return cmd
}

func runBrowse(cmd *cobra.Command, a *app, params browseParams) error {
	if params.seedCount < api.MinSeedCount || params.seedCount > api.MaxSeedCount {
		return fmt.Errorf("--seed-count: %w", api.ErrInvalidSeedCount)
	}
	if !wantsTUI(cmd) {
		logger.Debug().Ctx(cmd.Context()).Msg("stdout is not a terminal, printing first page")
		return printFirstPage(cmd, a)
	}

	ctx := cmd.Context()
	log := logging.FromContext(ctx)

	model := tui.NewExplorerModel(ctx, a.client, tui.ExplorerOptions{
		PageSize:  a.cfg.Display.PageSize,
		SeedCount: params.seedCount,
	})

	p := tea.NewProgram(model,
		tea.WithAltScreen(),
		tea.WithContext(ctx),
		tea.WithInput(cmd.InOrStdin()),
		tea.WithOutput(cmd.OutOrStdout()),
	)

	log.Info().Ctx(ctx).Str("api_url", a.client.BaseURL()).Msg("starting browser")
	_, err := p.Run()
	if a.logResult != nil && a.logResult.UsingFile {
		logging.PrintLogPathMessage(cmd.ErrOrStderr(), a.logResult.FilePath)
	}
	if err != nil && !errors.Is(err, tea.ErrProgramKilled) {
		return fmt.Errorf("running browser: %w", err)
	}
	return nil
}
