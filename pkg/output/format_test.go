package output

import (
	"strings"
	"testing"

	"github.com/oceanworks/vessel-forecast/internal/normalize"
)

func TestCsvString(t *testing.T) {
	results := []normalize.YearlyResult{
		{Year: 2025, NPV: -1000.5, Cumulative: -1000.5, Yearly: -1000.5,
			CurrentOpex: 500, CurrentFuel: 300.125},
		{Year: 2026, NPV: -900, Cumulative: -1900.5},
	}

	csv := CsvString(results)
	lines := strings.Split(strings.TrimRight(csv, "\n"), "\n")

	if len(lines) != 3 {
		t.Fatalf("expected header plus 2 rows, got %d lines", len(lines))
	}
	if !strings.HasPrefix(lines[0], `"year","npv"`) {
		t.Errorf("unexpected header: %s", lines[0])
	}
	if !strings.HasPrefix(lines[1], `"2025","-1000.50","-1000.50","-1000.50","500.00"`) {
		t.Errorf("unexpected first row: %s", lines[1])
	}
	if !strings.Contains(lines[1], `"300.13"`) {
		t.Errorf("expected rounded fuel value in row: %s", lines[1])
	}
}

func TestCsvStringEmpty(t *testing.T) {
	csv := CsvString(nil)
	lines := strings.Split(strings.TrimRight(csv, "\n"), "\n")
	if len(lines) != 1 {
		t.Errorf("expected header only for empty results, got %d lines", len(lines))
	}
}
