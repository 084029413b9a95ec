package cmd

import (
	"fmt"

	"github.com/theirongolddev/costplan/internal/config"
	applog "github.com/theirongolddev/costplan/internal/log"
	"github.com/theirongolddev/costplan/internal/pipeline"
	"github.com/theirongolddev/costplan/internal/tui"
	"github.com/theirongolddev/costplan/internal/tui/theme"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
	"github.com/spf13/cobra"
)

var tuiCmd = &cobra.Command{
	Use:   "tui",
	Short: "Launch interactive portfolio dashboard",
	RunE:  runTUI,
}

func init() {
	rootCmd.AddCommand(tuiCmd)
}

func runTUI(_ *cobra.Command, _ []string) error {
	theme.SetActive(appConfig.Appearance.Theme)

	// Force TrueColor so background styling always emits ANSI codes;
	// lipgloss may otherwise pick the Ascii profile.
	lipgloss.SetColorProfile(termenv.TrueColor)

	// Log lines would corrupt the alt screen.
	eng := pipeline.NewEngine(
		pipeline.WithLogger(applog.Discard()),
		pipeline.WithWorkingDays(appConfig.Forecast.WorkingDaysPerMonth),
		pipeline.WithExternalDayRate(appConfig.Forecast.ExternalDayRate),
		pipeline.WithContingencyPercent(appConfig.Forecast.ContingencyPercent),
		pipeline.WithDocumentPreparer(resolveRates),
	)

	app := tui.NewApp(tui.Options{
		Engine:       eng,
		PortfolioDir: portfolioDir(),
		SortBy:       appConfig.General.DefaultSort,
		UseCache:     !flagNoCache,
		NeedSetup:    !config.Exists(),
	})
	p := tea.NewProgram(app, tea.WithAltScreen())

	if _, err := p.Run(); err != nil {
		return fmt.Errorf("TUI error: %w", err)
	}
	return nil
}
