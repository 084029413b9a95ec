package pipeline

import (
	"bytes"
	"log/slog"
	"strings"
	"testing"
	"time"

	"github.com/theirongolddev/costplan/internal/model"
)

func fixedNow() time.Time {
	return time.Date(2026, time.March, 10, 12, 0, 0, 0, time.UTC)
}

// testEngine returns an engine with a fixed clock whose log output is
// captured in the returned buffer.
func testEngine(t *testing.T) (*Engine, *bytes.Buffer) {
	t.Helper()
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))
	return NewEngine(WithLogger(logger), WithClock(fixedNow)), &buf
}

func assertCalendarShape(t *testing.T, info model.MonthInfo) {
	t.Helper()
	if len(info.Months) != info.Count || len(info.MonthKeys) != info.Count {
		t.Fatalf("count = %d, months = %d, keys = %d", info.Count, len(info.Months), len(info.MonthKeys))
	}
	for i, key := range info.MonthKeys {
		if want := MonthKey(i + 1); key != want {
			t.Errorf("MonthKeys[%d] = %q, want %q", i, key, want)
		}
	}
	var grouped []string
	total := 0
	for _, g := range info.YearGroups {
		if g.Count != len(g.Months) {
			t.Errorf("year group %d: count %d, months %d", g.Year, g.Count, len(g.Months))
		}
		total += g.Count
		grouped = append(grouped, g.Months...)
	}
	if total != info.Count {
		t.Errorf("year groups sum to %d, want %d", total, info.Count)
	}
	if strings.Join(grouped, ",") != strings.Join(info.MonthKeys, ",") {
		t.Errorf("year groups %v do not partition keys %v", grouped, info.MonthKeys)
	}
}

func TestCalendar_Span(t *testing.T) {
	e, _ := testEngine(t)
	info := e.Calendar("2024-11-15", "2025-02-20")

	assertCalendarShape(t, info)
	want := []string{"Nov 2024", "Dec 2024", "Jan 2025", "Feb 2025"}
	if strings.Join(info.Months, ",") != strings.Join(want, ",") {
		t.Errorf("Months = %v, want %v", info.Months, want)
	}
	if len(info.YearGroups) != 2 {
		t.Fatalf("YearGroups = %d, want 2", len(info.YearGroups))
	}
	if g := info.YearGroups[0]; g.Year != 2024 || g.Count != 2 {
		t.Errorf("first group = %+v, want 2024 x2", g)
	}
	if g := info.YearGroups[1]; g.Year != 2025 || g.Count != 2 {
		t.Errorf("second group = %+v, want 2025 x2", g)
	}
}

func TestCalendar_MonthEndStart(t *testing.T) {
	e, _ := testEngine(t)
	tests := []struct {
		start, end string
		want       []string
	}{
		{"2025-01-31", "2025-04-30", []string{"Jan 2025", "Feb 2025", "Mar 2025", "Apr 2025"}},
		{"2024-01-31", "2024-03-31", []string{"Jan 2024", "Feb 2024", "Mar 2024"}},
		// Feb 29 is on or before Mar 15, Mar 31 is not.
		{"2024-01-31", "2024-03-15", []string{"Jan 2024", "Feb 2024"}},
		{"2025-08-31", "2025-12-01", []string{"Aug 2025", "Sep 2025", "Oct 2025", "Nov 2025"}},
	}
	for _, tt := range tests {
		info := e.Calendar(tt.start, tt.end)
		assertCalendarShape(t, info)
		if strings.Join(info.Months, ",") != strings.Join(tt.want, ",") {
			t.Errorf("Calendar(%s, %s) = %v, want %v", tt.start, tt.end, info.Months, tt.want)
		}
	}
}

func TestCalendar_EndDayBeforeStartDay(t *testing.T) {
	e, _ := testEngine(t)
	// Cursor reaches Apr 15, which is after Apr 10.
	info := e.Calendar("2025-01-15", "2025-04-10")
	if info.Count != 3 {
		t.Errorf("Count = %d, want 3", info.Count)
	}
}

func TestCalendar_Monotonic(t *testing.T) {
	e, _ := testEngine(t)
	start := time.Date(2024, time.January, 1, 0, 0, 0, 0, time.UTC)
	for months := 0; months < MaxCalendarMonths; months++ {
		end := start.AddDate(0, months, 0)
		info := e.Calendar(start.Format("2006-01-02"), end.Format("2006-01-02"))
		assertCalendarShape(t, info)
		if info.Count != months+1 {
			t.Errorf("span of %d months: Count = %d, want %d", months, info.Count, months+1)
		}
	}
}

func TestCalendar_DefaultFallback(t *testing.T) {
	e, _ := testEngine(t)
	for _, tc := range []struct{ start, end string }{
		{"", ""},
		{"bad", "bad"},
		{"2025-01-01", ""},
		{"", "2025-06-01"},
	} {
		info := e.Calendar(tc.start, tc.end)
		assertCalendarShape(t, info)
		if info.Count != 4 {
			t.Errorf("Calendar(%q, %q).Count = %d, want 4", tc.start, tc.end, info.Count)
			continue
		}
		want := "Month 1,Month 2,Month 3,Month 4"
		if got := strings.Join(info.Months, ","); got != want {
			t.Errorf("Months = %s, want %s", got, want)
		}
		if len(info.YearGroups) != 1 || info.YearGroups[0].Year != 2026 {
			t.Errorf("YearGroups = %+v, want single 2026 group", info.YearGroups)
		}
	}
}

func TestCalendar_Cap(t *testing.T) {
	e, logs := testEngine(t)
	info := e.Calendar("2020-01-01", "2030-01-01")

	assertCalendarShape(t, info)
	if info.Count != MaxCalendarMonths {
		t.Errorf("Count = %d, want %d", info.Count, MaxCalendarMonths)
	}
	if !strings.Contains(logs.String(), "calendar truncated") {
		t.Errorf("expected truncation warning, got logs %q", logs.String())
	}
}

func TestCalendar_EndBeforeStart(t *testing.T) {
	e, _ := testEngine(t)
	info := e.Calendar("2025-06-01", "2025-01-01")

	assertCalendarShape(t, info)
	if info.Count != 1 || info.Months[0] != "Month 1" {
		t.Errorf("got %+v, want a single synthetic month", info)
	}
}

func TestParseDate(t *testing.T) {
	tests := []struct {
		in   string
		want string
		ok   bool
	}{
		{"2025-03-04", "2025-03-04", true},
		{" 2025-03-04 ", "2025-03-04", true},
		{"2025-03-04T15:30:00Z", "2025-03-04", true},
		{"2025-03-04T15:30:00", "2025-03-04", true},
		{"", "", false},
		{"03/04/2025", "", false},
	}
	for _, tt := range tests {
		got, ok := ParseDate(tt.in)
		if ok != tt.ok {
			t.Errorf("ParseDate(%q) ok = %v, want %v", tt.in, ok, tt.ok)
			continue
		}
		if ok && got.Format("2006-01-02") != tt.want {
			t.Errorf("ParseDate(%q) = %s, want %s", tt.in, got.Format("2006-01-02"), tt.want)
		}
	}
}
