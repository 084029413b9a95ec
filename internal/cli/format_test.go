package cli

import "testing"

func TestFormatCost(t *testing.T) {
	tests := []struct {
		in   float64
		want string
	}{
		{0, "$0.00"},
		{9.5, "$9.50"},
		{42.25, "$42.25"},
		{150.4, "$150"},
		{1234.5, "$1,235"},
		{11100, "$11,100"},
		{-2500, "-$2,500"},
	}
	for _, tt := range tests {
		if got := FormatCost(tt.in); got != tt.want {
			t.Errorf("FormatCost(%v) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestFormatCost_Symbol(t *testing.T) {
	orig := CurrencySymbol
	defer func() { CurrencySymbol = orig }()

	CurrencySymbol = "€"
	if got := FormatCost(1500); got != "€1,500" {
		t.Errorf("FormatCost = %q, want €1,500", got)
	}
}

func TestFormatCompactCost(t *testing.T) {
	tests := []struct {
		in   float64
		want string
	}{
		{999, "$999"},
		{1234, "$1.2K"},
		{2_500_000, "$2.5M"},
		{-1500, "-$1.5K"},
	}
	for _, tt := range tests {
		if got := FormatCompactCost(tt.in); got != tt.want {
			t.Errorf("FormatCompactCost(%v) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestFormatNumber(t *testing.T) {
	tests := []struct {
		in   int64
		want string
	}{
		{0, "0"},
		{999, "999"},
		{1000, "1,000"},
		{1234567, "1,234,567"},
		{-1234, "-1,234"},
	}
	for _, tt := range tests {
		if got := FormatNumber(tt.in); got != tt.want {
			t.Errorf("FormatNumber(%d) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestFormatMonthsAndFTE(t *testing.T) {
	if got := FormatMonths(0); got != "undated" {
		t.Errorf("FormatMonths(0) = %q", got)
	}
	if got := FormatMonths(1); got != "1 month" {
		t.Errorf("FormatMonths(1) = %q", got)
	}
	if got := FormatMonths(14); got != "14 months" {
		t.Errorf("FormatMonths(14) = %q", got)
	}
	if got := FormatFTE(2.04); got != "2.0 FTE" {
		t.Errorf("FormatFTE = %q", got)
	}
	if got := FormatDays(2.5); got != "2.5" {
		t.Errorf("FormatDays(2.5) = %q", got)
	}
	if got := FormatDays(3); got != "3" {
		t.Errorf("FormatDays(3) = %q", got)
	}
	if got := FormatShare(1, 4); got != "25.0%" {
		t.Errorf("FormatShare = %q", got)
	}
	if got := FormatShare(1, 0); got != "-" {
		t.Errorf("FormatShare(zero whole) = %q", got)
	}
}
