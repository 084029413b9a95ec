package cmd

import (
	"errors"
	"fmt"

	"github.com/theirongolddev/costplan/internal/config"
	"github.com/theirongolddev/costplan/internal/tui"

	"github.com/charmbracelet/huh"
	"github.com/spf13/cobra"
)

var setupCmd = &cobra.Command{
	Use:   "setup",
	Short: "First-time setup wizard",
	RunE:  runSetup,
}

func init() {
	rootCmd.AddCommand(setupCmd)
}

func runSetup(_ *cobra.Command, _ []string) error {
	cfg := appConfig
	dir := portfolioDir()

	vals := tui.SetupValuesFrom(cfg)
	if vals.PortfolioDir == "" {
		vals.PortfolioDir = flagPortfolioDir
	}

	form := tui.NewSetupForm(tui.CountProjectFiles(dir), dir, &vals)
	if err := form.Run(); err != nil {
		if errors.Is(err, huh.ErrUserAborted) {
			fmt.Println("  Setup cancelled, nothing saved.")
			return nil
		}
		return fmt.Errorf("setup form: %w", err)
	}

	if err := vals.Apply(&cfg); err != nil {
		return err
	}
	if err := config.Save(cfg); err != nil {
		return fmt.Errorf("saving config: %w", err)
	}

	fmt.Println()
	fmt.Printf("  Saved to %s\n", config.Path())
	fmt.Println("  Run `costplan setup` anytime to reconfigure.")
	fmt.Println()
	return nil
}
