package normalize

import (
	"testing"

	"github.com/oceanworks/vessel-forecast/internal/scenario"
)

func TestNormalizeJoinsOnYear(t *testing.T) {
	doc := []byte(`{
		"result": [
			{"year": 2025, "npv": -1000.5, "cumulative": -1000.5, "result": -1000.5},
			{"year": 2026, "npv": -900.25, "cumulative": -1900.75, "result": -900.25}
		],
		"current_timeseries": [
			{"year": 2025, "current_opex": 500, "current_penalty": 50,
			 "total_fuel_current_inflated": -300, "total_maintenance_current_inflated": 80,
			 "total_spare_current_inflated": 8},
			{"year": 2026, "current_opex": 510, "current_penalty": 51,
			 "total_fuel_current_inflated": -310, "total_maintenance_current_inflated": 81,
			 "total_spare_current_inflated": 9}
		],
		"future_timeseries": [
			{"year": 2025, "future_opex": 400, "future_penalty": 0,
			 "total_fuel_future_inflated": -250, "total_maintenance_future_inflated": 70}
		]
	}`)

	results := Normalize(doc)

	if len(results) != 2 {
		t.Fatalf("expected 2 records, got %d", len(results))
	}

	first := results[0]
	if first.Year != 2025 {
		t.Errorf("expected year 2025, got %d", first.Year)
	}
	if first.NPV != -1000.5 {
		t.Errorf("expected npv -1000.5, got %v", first.NPV)
	}
	if first.CurrentOpex != 500 {
		t.Errorf("expected current opex 500, got %v", first.CurrentOpex)
	}
	if first.CurrentFuel != 300 {
		t.Errorf("expected fuel cost sign-normalized to 300, got %v", first.CurrentFuel)
	}
	if first.FutureOpex != 400 {
		t.Errorf("expected future opex 400, got %v", first.FutureOpex)
	}
	if first.FutureFuel != 250 {
		t.Errorf("expected future fuel 250, got %v", first.FutureFuel)
	}

	// 2026 has no future_timeseries match: future fields default to 0.
	second := results[1]
	if second.CurrentOpex != 510 {
		t.Errorf("expected current opex 510, got %v", second.CurrentOpex)
	}
	if second.FutureOpex != 0 || second.FutureFuel != 0 || second.FuturePenalty != 0 {
		t.Errorf("expected zeroed future fields for unmatched year, got %+v", second)
	}
}

func TestNormalizePreservesResultOrder(t *testing.T) {
	doc := []byte(`{
		"result": [
			{"year": 2030, "npv": 3},
			{"year": 2025, "npv": 1},
			{"year": 2027, "npv": 2}
		]
	}`)

	results := Normalize(doc)
	years := []int{results[0].Year, results[1].Year, results[2].Year}
	expected := []int{2030, 2025, 2027}
	for i := range expected {
		if years[i] != expected[i] {
			t.Fatalf("expected result order %v, got %v", expected, years)
		}
	}
}

func TestNormalizeFirstMatchWins(t *testing.T) {
	doc := []byte(`{
		"result": [{"year": 2025}],
		"current_timeseries": [
			{"year": 2025, "current_opex": 100},
			{"year": 2025, "current_opex": 999}
		]
	}`)

	results := Normalize(doc)
	if len(results) != 1 {
		t.Fatalf("expected 1 record, got %d", len(results))
	}
	if results[0].CurrentOpex != 100 {
		t.Errorf("expected first timeseries match to win, got %v", results[0].CurrentOpex)
	}
}

func TestNormalizeEmptyAndMalformedInput(t *testing.T) {
	tests := []struct {
		name string
		doc  string
	}{
		{"empty object", `{}`},
		{"null result", `{"result": null}`},
		{"empty result list", `{"result": []}`},
		{"result not a list", `{"result": "oops"}`},
		{"empty document", ``},
		{"not json", `garbage`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			results := Normalize([]byte(tt.doc))
			if len(results) != 0 {
				t.Errorf("expected empty sequence, got %d records", len(results))
			}
		})
	}
}

func TestNormalizeMissingFieldsDefaultToZero(t *testing.T) {
	doc := []byte(`{"result": [{"year": 2025}]}`)

	results := Normalize(doc)
	if len(results) != 1 {
		t.Fatalf("expected 1 record, got %d", len(results))
	}
	r := results[0]
	if r.NPV != 0 || r.Cumulative != 0 || r.Yearly != 0 ||
		r.CurrentOpex != 0 || r.CurrentFuel != 0 || r.CurrentSpares != 0 ||
		r.FutureOpex != 0 || r.FutureMaintenance != 0 {
		t.Errorf("expected all-zero fields, got %+v", r)
	}
}

func TestParseScenarios(t *testing.T) {
	doc := []byte(`{
		"scenarios": {
			"Current": [
				{"year": 2025, "opex": 10, "fuel_price": 100, "blend_percentage": 0,
				 "eu_ets": 1, "maintenance": 2, "penalty": 3, "spare": 4},
				{"year": 2026, "opex": 20}
			],
			"HVO": [
				{"year": 2025, "opex": 30},
				{"opex": 999}
			]
		}
	}`)

	set, order := ParseScenarios(doc)

	if len(set) != 2 {
		t.Fatalf("expected 2 scenarios, got %d", len(set))
	}
	if len(order) != 2 || order[0] != "Current" || order[1] != "HVO" {
		t.Errorf("expected document order [Current HVO], got %v", order)
	}

	current := set["Current"]
	if len(current) != 2 {
		t.Fatalf("expected 2 records for Current, got %d", len(current))
	}
	first := current[0]
	if first.Year != 2025 || first.Opex != 10 || first.FuelPrice != 100 ||
		first.EUETS != 1 || first.Maintenance != 2 || first.Penalty != 3 || first.Spare != 4 {
		t.Errorf("unexpected first record: %+v", first)
	}
	// Missing fields read as zero.
	if current[1].FuelPrice != 0 {
		t.Errorf("expected zero fuel price, got %v", current[1].FuelPrice)
	}

	// The record without a year key is skipped, not an error.
	if len(set["HVO"]) != 1 {
		t.Errorf("expected year-less record to be skipped, got %d records", len(set["HVO"]))
	}
}

func TestParseScenariosAbsent(t *testing.T) {
	set, order := ParseScenarios([]byte(`{}`))
	if len(set) != 0 || len(order) != 0 {
		t.Errorf("expected empty set for absent scenarios, got %v / %v", set, order)
	}
}

func TestParseCompliance(t *testing.T) {
	doc := []byte(`{
		"compliance": {
			"cii_attained": 9.0,
			"cii_required": 10.0,
			"eexi_attained": 8.0,
			"eexi_required": 10.0
		}
	}`)

	summary := ParseCompliance(doc)
	if !summary.Present {
		t.Fatal("expected compliance block to be detected")
	}
	if summary.CIIBand != scenario.BandB {
		t.Errorf("expected CII band B, got %q", summary.CIIBand)
	}
	if !summary.EEXICompliant {
		t.Error("expected EEXI compliance")
	}
}

func TestParseComplianceAbsent(t *testing.T) {
	summary := ParseCompliance([]byte(`{}`))
	if summary.Present {
		t.Error("expected Present false for missing compliance block")
	}
	if summary.CIIBand != scenario.BandNone {
		t.Errorf("expected no CII band, got %q", summary.CIIBand)
	}
}
