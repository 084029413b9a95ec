package tui

import (
	"errors"
	"fmt"
	"slices"
	"sort"
	"strconv"
	"strings"

	"github.com/theirongolddev/costplan/internal/config"
	"github.com/theirongolddev/costplan/internal/pipeline"
	"github.com/theirongolddev/costplan/internal/tui/theme"

	"github.com/charmbracelet/huh"
)

// SetupValues holds the answers of the setup form.
type SetupValues struct {
	PortfolioDir string
	Currency     string
	DefaultSort  string
	Theme        string
	Contingency  string
}

// SetupValuesFrom seeds the form from an existing config.
func SetupValuesFrom(cfg config.Config) SetupValues {
	return SetupValues{
		PortfolioDir: cfg.General.PortfolioDir,
		Currency:     strings.ToUpper(cfg.Currency.Primary),
		DefaultSort:  cfg.General.DefaultSort,
		Theme:        cfg.Appearance.Theme,
		Contingency:  strconv.FormatFloat(cfg.Forecast.ContingencyPercent, 'f', -1, 64),
	}
}

// Apply writes the answers into cfg.
func (v SetupValues) Apply(cfg *config.Config) error {
	pct, err := parseContingency(v.Contingency)
	if err != nil {
		return err
	}
	cfg.General.PortfolioDir = strings.TrimSpace(v.PortfolioDir)
	cfg.General.DefaultSort = v.DefaultSort
	cfg.Currency.Primary = strings.ToUpper(v.Currency)
	cfg.Currency.Symbol = config.Symbol(v.Currency)
	cfg.Appearance.Theme = v.Theme
	cfg.Forecast.ContingencyPercent = pct
	return nil
}

func parseContingency(s string) (float64, error) {
	pct, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return 0, errors.New("contingency must be a number")
	}
	if pct < 0 || pct > 100 {
		return 0, errors.New("contingency must be between 0 and 100")
	}
	return pct, nil
}

func validateContingency(s string) error {
	_, err := parseContingency(s)
	return err
}

// NewSetupForm builds the setup form. projectCount and dir describe what
// the current portfolio directory holds; a negative count hides the line.
func NewSetupForm(projectCount int, dir string, vals *SetupValues) *huh.Form {
	intro := "Let's set up a few things."
	if projectCount >= 0 {
		intro = fmt.Sprintf("Found %d project file(s) in %s.\n%s", projectCount, dir, intro)
	}

	codes := make([]string, 0, len(config.CurrencySymbols))
	for code := range config.CurrencySymbols {
		codes = append(codes, code)
	}
	sort.Strings(codes)
	if vals.Currency != "" && !slices.Contains(codes, vals.Currency) {
		codes = append(codes, vals.Currency)
	}

	return huh.NewForm(
		huh.NewGroup(
			huh.NewNote().
				Title("Welcome to costplan").
				Description(intro),
			huh.NewInput().
				Title("Portfolio directory").
				Description("Directory of .json/.yaml project files. Leave blank for the working directory.").
				Value(&vals.PortfolioDir),
		),
		huh.NewGroup(
			huh.NewSelect[string]().
				Title("Display currency").
				Options(huh.NewOptions(codes...)...).
				Value(&vals.Currency),
			huh.NewInput().
				Title("Contingency %").
				Description("Added on top of every project subtotal unless the file sets its own.").
				Validate(validateContingency).
				Value(&vals.Contingency),
		),
		huh.NewGroup(
			huh.NewSelect[string]().
				Title("Default comparison order").
				Options(huh.NewOptions(pipeline.SortOrders...)...).
				Value(&vals.DefaultSort),
			huh.NewSelect[string]().
				Title("Color theme").
				Options(huh.NewOptions(theme.Names()...)...).
				Value(&vals.Theme),
		),
	).WithTheme(huh.ThemeCharm())
}
