package cmd

import (
	"fmt"

	"github.com/theirongolddev/costplan/internal/cli"
	"github.com/theirongolddev/costplan/internal/config"

	"github.com/spf13/cobra"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Show current configuration and rate cards",
	RunE:  runConfig,
}

func init() {
	rootCmd.AddCommand(configCmd)
}

func runConfig(_ *cobra.Command, _ []string) error {
	cfg := appConfig

	fmt.Printf("  Config file: %s\n", config.Path())
	if config.Exists() {
		fmt.Println("  Status: loaded")
	} else {
		fmt.Println("  Status: using defaults (no config file)")
	}
	fmt.Println()

	fmt.Println("  [General]")
	fmt.Printf("    Portfolio directory: %s\n", portfolioDir())
	fmt.Printf("    Default sort:        %s\n", cfg.General.DefaultSort)
	fmt.Println()

	fmt.Println("  [Forecast]")
	fmt.Printf("    Working days/month:  %s\n", cli.FormatDays(cfg.Forecast.WorkingDaysPerMonth))
	fmt.Printf("    External day rate:   %s\n", cli.FormatCost(cfg.Forecast.ExternalDayRate))
	fmt.Printf("    Contingency:         %.0f%%\n", cfg.Forecast.ContingencyPercent)
	fmt.Println()

	fmt.Println("  [Currency]")
	fmt.Printf("    Primary: %s (%s)\n", cfg.Currency.Primary, cfg.Currency.Symbol)
	if flagCurrency != "" {
		fmt.Printf("    Display: %s\n", displayCurrency())
	}
	fmt.Println()

	fmt.Println("  [Appearance]")
	fmt.Printf("    Theme: %s\n", cfg.Appearance.Theme)
	fmt.Println()

	cards := config.RateCards(cfg)
	rows := make([][]string, 0, len(cards))
	for _, c := range cards {
		mark := ""
		if _, ok := cfg.RateCards.Overrides[c.Role]; ok {
			mark = "*"
		}
		rows = append(rows, []string{c.Role + mark, c.Category, cli.FormatCost(c.Rate.Float())})
	}
	fmt.Print(cli.RenderTable(cli.Table{
		Title:   "Rate Cards",
		Headers: []string{"Role", "Category", "Daily Rate"},
		Rows:    rows,
	}))
	if len(cfg.RateCards.Overrides) > 0 {
		fmt.Println("  * overridden in config")
	}
	fmt.Println()

	fmt.Println("  Run `costplan setup` to reconfigure.")
	return nil
}
