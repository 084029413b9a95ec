// Package pipeline is the cost aggregation engine: it derives project
// calendars, maps heterogeneous cost records onto them, and rolls single
// projects and whole portfolios up into monthly forecasts.
//
// Every computation is a pure function of its arguments. Malformed input
// never produces an error; numbers default to 0, bad dates fall back to a
// synthetic calendar, and anomalies are reported on the engine's logger.
package pipeline

import (
	"log/slog"
	"strconv"
	"strings"
	"time"

	"github.com/theirongolddev/costplan/internal/model"
)

const (
	// DefaultWorkingDaysPerMonth converts allocated days into FTE.
	DefaultWorkingDaysPerMonth = 22
	// DefaultExternalDayRate approximates vendor spend as consultant days.
	DefaultExternalDayRate = 1000
	// DefaultContingencyPercent applies when a project sets none.
	DefaultContingencyPercent = 10
)

// Engine carries the tunables of the aggregation engine. It holds no
// project state and is safe for concurrent use.
type Engine struct {
	Log                 *slog.Logger
	Now                 func() time.Time
	WorkingDaysPerMonth float64
	ExternalDayRate     float64
	ContingencyPercent  float64

	// PrepareDocument, when set, runs on every document before it is
	// summarized, e.g. to fill in daily rates from a rate-card table.
	PrepareDocument func(model.ProjectData) model.ProjectData
}

// Option configures an Engine.
type Option func(*Engine)

// WithLogger sets the diagnostic logger.
func WithLogger(l *slog.Logger) Option {
	return func(e *Engine) {
		if l != nil {
			e.Log = l
		}
	}
}

// WithClock overrides the clock used to tag synthetic calendars.
func WithClock(now func() time.Time) Option {
	return func(e *Engine) {
		if now != nil {
			e.Now = now
		}
	}
}

// WithWorkingDays sets the working days per month used for FTE estimates.
func WithWorkingDays(days float64) Option {
	return func(e *Engine) {
		if days > 0 {
			e.WorkingDaysPerMonth = days
		}
	}
}

// WithExternalDayRate sets the assumed vendor day rate.
func WithExternalDayRate(rate float64) Option {
	return func(e *Engine) {
		if rate > 0 {
			e.ExternalDayRate = rate
		}
	}
}

// WithContingencyPercent sets the default contingency percentage.
func WithContingencyPercent(pct float64) Option {
	return func(e *Engine) {
		if pct >= 0 {
			e.ContingencyPercent = pct
		}
	}
}

// WithDocumentPreparer sets Engine.PrepareDocument.
func WithDocumentPreparer(fn func(model.ProjectData) model.ProjectData) Option {
	return func(e *Engine) {
		e.PrepareDocument = fn
	}
}

// NewEngine returns an engine with default tunables and a discarding logger.
func NewEngine(opts ...Option) *Engine {
	e := &Engine{
		Log:                 slog.New(slog.DiscardHandler),
		Now:                 time.Now,
		WorkingDaysPerMonth: DefaultWorkingDaysPerMonth,
		ExternalDayRate:     DefaultExternalDayRate,
		ContingencyPercent:  DefaultContingencyPercent,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

var dateLayouts = []string{
	"2006-01-02",
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02T15:04",
}

// ParseDate parses a project date and returns it at UTC midnight.
// ok is false for empty or unparsable input.
func ParseDate(s string) (t time.Time, ok bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, false
	}
	for _, layout := range dateLayouts {
		if parsed, err := time.Parse(layout, s); err == nil {
			y, m, d := parsed.Date()
			return time.Date(y, m, d, 0, 0, 0, 0, time.UTC), true
		}
	}
	return time.Time{}, false
}

// MonthKey returns the calendar join key for a 1-based month index.
func MonthKey(index int) string {
	return "month" + strconv.Itoa(index)
}

// monthNumber parses the index out of a month key ("month5" -> 5).
// It returns 0 when the key is malformed.
func monthNumber(key string) int {
	digits, ok := strings.CutPrefix(key, "month")
	if !ok {
		return 0
	}
	n, err := strconv.Atoi(digits)
	if err != nil || n < 1 {
		return 0
	}
	return n
}
