// Package cmd implements the costplan CLI commands.
package cmd

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/theirongolddev/costplan/internal/cli"
	"github.com/theirongolddev/costplan/internal/config"
	applog "github.com/theirongolddev/costplan/internal/log"
	"github.com/theirongolddev/costplan/internal/model"
	"github.com/theirongolddev/costplan/internal/pipeline"
	"github.com/theirongolddev/costplan/internal/store"

	"github.com/spf13/cobra"
)

var (
	flagPortfolioDir string
	flagNoCache      bool
	flagQuiet        bool
	flagVerbose      bool
	flagCurrency     string
)

// appConfig is loaded once per invocation before any command runs.
var appConfig = config.DefaultConfig()

var rootCmd = &cobra.Command{
	Use:          "costplan",
	Short:        "Project cost estimation CLI",
	Long:         "Forecast project costs month by month and roll a directory of project files up into a portfolio view.",
	SilenceUsage: true,
	PersistentPreRunE: func(_ *cobra.Command, _ []string) error {
		config.LoadEnv()
		cfg, err := config.Load()
		if err != nil {
			// A broken config file should not block read-only commands.
			newLogger(applog.ComponentCLI).Warn("using default config", applog.FieldError, err)
		}
		appConfig = cfg
		cli.CurrencySymbol = symbolFor(displayCurrency())
		return nil
	},
	RunE: runPortfolio,
}

// Execute is the main entry point called from main.go.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&flagPortfolioDir, "portfolio-dir", "d", "", "Directory of project files (default from config or $"+config.PortfolioDirEnv+")")
	rootCmd.PersistentFlags().BoolVar(&flagNoCache, "no-cache", false, "Skip SQLite cache, reparse everything")
	rootCmd.PersistentFlags().BoolVarP(&flagQuiet, "quiet", "q", false, "Suppress progress output")
	rootCmd.PersistentFlags().BoolVarP(&flagVerbose, "verbose", "v", false, "Log engine decisions to stderr")
	rootCmd.PersistentFlags().StringVar(&flagCurrency, "currency", "", "Display currency code (default from config)")
}

func newLogger(component string) *slog.Logger {
	return applog.New(applog.Config{
		Level:     applog.LevelFor(flagVerbose, flagQuiet),
		Component: component,
		Writer:    os.Stderr,
	})
}

// newEngine builds an engine from the loaded config.
func newEngine() *pipeline.Engine {
	return pipeline.NewEngine(
		pipeline.WithLogger(newLogger(applog.ComponentEngine)),
		pipeline.WithWorkingDays(appConfig.Forecast.WorkingDaysPerMonth),
		pipeline.WithExternalDayRate(appConfig.Forecast.ExternalDayRate),
		pipeline.WithContingencyPercent(appConfig.Forecast.ContingencyPercent),
		pipeline.WithDocumentPreparer(resolveRates),
	)
}

// resolveRates prices resources that carry no daily rate from the rate
// cards, so portfolio totals agree with `forecast`.
func resolveRates(data model.ProjectData) model.ProjectData {
	resolved, _ := config.ResolveDailyRates(data, config.RateCards(appConfig))
	return resolved
}

func portfolioDir() string {
	if flagPortfolioDir != "" {
		return flagPortfolioDir
	}
	return config.GetPortfolioDir(appConfig)
}

func displayCurrency() string {
	if flagCurrency != "" {
		return strings.ToUpper(flagCurrency)
	}
	return strings.ToUpper(appConfig.Currency.Primary)
}

// symbolFor prefers the configured symbol for the primary currency.
func symbolFor(code string) string {
	if strings.EqualFold(code, appConfig.Currency.Primary) && appConfig.Currency.Symbol != "" {
		return appConfig.Currency.Symbol
	}
	return config.Symbol(code)
}

// loadPortfolio is the shared data loading path used by portfolio commands.
// Uses SQLite cache when available for fast subsequent runs.
func loadPortfolio(ctx context.Context, eng *pipeline.Engine) (*pipeline.LoadResult, error) {
	dir := portfolioDir()
	if !flagQuiet {
		fmt.Fprintf(os.Stderr, "  Scanning %s...\n", dir)
	}

	progressFn := func(current, total int) {
		if flagQuiet {
			return
		}
		if current%10 == 0 || current == total {
			fmt.Fprintf(os.Stderr, "\r  Parsing %s", cli.RenderProgressBar(current, total, 30))
		}
	}

	if !flagNoCache {
		cache, err := store.Open(pipeline.CachePath())
		if err != nil {
			eng.Log.Warn("cache unavailable, doing full parse", applog.FieldError, err)
		} else {
			defer func() { _ = cache.Close() }()

			cr, err := eng.LoadWithCache(ctx, dir, cache, progressFn)
			if err != nil {
				eng.Log.Warn("cache error, falling back to full parse", applog.FieldError, err)
			} else {
				if !flagQuiet && cr.TotalFiles > 0 {
					if cr.Reparsed == 0 {
						fmt.Fprintf(os.Stderr, "\r  Loaded %d projects from cache    \n", len(cr.Projects))
					} else {
						fmt.Fprintf(os.Stderr, "\r  %d cached + %d reparsed (%d projects)    \n",
							cr.CacheHits, cr.Reparsed, len(cr.Projects))
					}
				}
				return &cr.LoadResult, nil
			}
		}
	}

	result, err := eng.Load(ctx, dir, progressFn)
	if err != nil {
		return nil, err
	}

	if !flagQuiet && result.TotalFiles > 0 {
		fmt.Fprintf(os.Stderr, "\r  Parsed %d of %d files    \n", result.ParsedFiles, result.TotalFiles)
	}

	return result, nil
}

// warnFileErrors reports unreadable project files after a table.
func warnFileErrors(result *pipeline.LoadResult) {
	if result.FileErrors == 0 {
		return
	}
	fmt.Fprintln(os.Stderr, cli.RenderWarning(fmt.Sprintf("%d project file(s) could not be parsed", result.FileErrors)))
}
