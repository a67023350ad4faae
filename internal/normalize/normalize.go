// Package normalize turns the modelling API's heterogeneous response into
// flat, fully-typed per-year records. The upstream shape is loose: keys may
// be missing, lists may be absent, and cost figures may arrive negative.
// Every record produced here is total (no missing fields) with zeros where
// the upstream was silent.
package normalize

import (
	"math"

	"github.com/tidwall/gjson"

	"github.com/oceanworks/vessel-forecast/internal/scenario"
)

// YearlyResult is one joined per-year record merging the financial result
// with the current and future cost breakdowns for the same year.
type YearlyResult struct {
	Year       int     `json:"year"`
	NPV        float64 `json:"npv"`
	Cumulative float64 `json:"cumulative"`
	Yearly     float64 `json:"result"`

	CurrentOpex        float64 `json:"currentOpex"`
	CurrentPenalty     float64 `json:"currentPenalty"`
	CurrentFuel        float64 `json:"currentFuel"`
	CurrentMaintenance float64 `json:"currentMaintenance"`
	CurrentSpares      float64 `json:"currentSpares"`

	FutureOpex        float64 `json:"futureOpex"`
	FuturePenalty     float64 `json:"futurePenalty"`
	FutureFuel        float64 `json:"futureFuel"`
	FutureMaintenance float64 `json:"futureMaintenance"`
}

// Normalize joins the response's result list with the current and future
// timeseries on year. Output order follows the result list; entries without
// a timeseries match get zeroed cost fields. An absent or empty result list
// yields an empty slice. Fuel costs are sign-normalized to absolute values
// since the upstream reports outflows as negative numbers.
func Normalize(doc []byte) []YearlyResult {
	parsed := gjson.ParseBytes(doc)

	current := indexByYear(parsed.Get("current_timeseries"))
	future := indexByYear(parsed.Get("future_timeseries"))

	entries := parsed.Get("result").Array()
	results := make([]YearlyResult, 0, len(entries))
	for _, entry := range entries {
		year := int(entry.Get("year").Int())
		result := YearlyResult{
			Year:       year,
			NPV:        entry.Get("npv").Float(),
			Cumulative: entry.Get("cumulative").Float(),
			Yearly:     entry.Get("result").Float(),
		}

		if ts, ok := current[year]; ok {
			result.CurrentOpex = ts.Get("current_opex").Float()
			result.CurrentPenalty = ts.Get("current_penalty").Float()
			result.CurrentFuel = math.Abs(ts.Get("total_fuel_current_inflated").Float())
			result.CurrentMaintenance = ts.Get("total_maintenance_current_inflated").Float()
			result.CurrentSpares = ts.Get("total_spare_current_inflated").Float()
		}

		if ts, ok := future[year]; ok {
			result.FutureOpex = ts.Get("future_opex").Float()
			result.FuturePenalty = ts.Get("future_penalty").Float()
			result.FutureFuel = math.Abs(ts.Get("total_fuel_future_inflated").Float())
			result.FutureMaintenance = ts.Get("total_maintenance_future_inflated").Float()
		}

		results = append(results, result)
	}

	return results
}

// indexByYear maps a timeseries list by year. The first entry for a year
// wins, matching the join's first-match semantics.
func indexByYear(list gjson.Result) map[int]gjson.Result {
	index := make(map[int]gjson.Result)
	for _, entry := range list.Array() {
		yearField := entry.Get("year")
		if !yearField.Exists() {
			continue
		}
		year := int(yearField.Int())
		if _, seen := index[year]; !seen {
			index[year] = entry
		}
	}
	return index
}

// ParseScenarios reads the response's scenarios object (name -> record list)
// into a scenario set, plus the names in document order for stable ranking.
// Records lacking a year key are skipped; all other missing fields read as 0.
func ParseScenarios(doc []byte) (scenario.Set, []string) {
	set := make(scenario.Set)
	var order []string

	gjson.GetBytes(doc, "scenarios").ForEach(func(name, list gjson.Result) bool {
		var records []scenario.Record
		for _, entry := range list.Array() {
			yearField := entry.Get("year")
			if !yearField.Exists() {
				continue
			}
			records = append(records, scenario.Record{
				Year:            int(yearField.Int()),
				BlendPercentage: entry.Get("blend_percentage").Float(),
				EUETS:           entry.Get("eu_ets").Float(),
				FuelPrice:       entry.Get("fuel_price").Float(),
				Maintenance:     entry.Get("maintenance").Float(),
				Opex:            entry.Get("opex").Float(),
				Penalty:         entry.Get("penalty").Float(),
				Spare:           entry.Get("spare").Float(),
			})
		}
		set[name.String()] = records
		order = append(order, name.String())
		return true
	})

	return set, order
}

// ComplianceSummary carries the CII and EEXI figures the model reports for
// the reporting year, when present.
type ComplianceSummary struct {
	Present bool `json:"present"`

	CIIAttained float64       `json:"ciiAttained"`
	CIIRequired float64       `json:"ciiRequired"`
	CIIBand     scenario.Band `json:"ciiBand"`

	EEXIAttained  float64 `json:"eexiAttained"`
	EEXIRequired  float64 `json:"eexiRequired"`
	EEXICompliant bool    `json:"eexiCompliant"`
}

// ParseCompliance extracts the compliance block from a model response and
// derives the CII band and EEXI verdict. An absent block yields a zero
// summary with Present false.
func ParseCompliance(doc []byte) ComplianceSummary {
	block := gjson.GetBytes(doc, "compliance")
	if !block.Exists() {
		return ComplianceSummary{}
	}

	summary := ComplianceSummary{
		Present:      true,
		CIIAttained:  block.Get("cii_attained").Float(),
		CIIRequired:  block.Get("cii_required").Float(),
		EEXIAttained: block.Get("eexi_attained").Float(),
		EEXIRequired: block.Get("eexi_required").Float(),
	}
	summary.CIIBand = scenario.CIIBand(summary.CIIAttained, summary.CIIRequired)
	summary.EEXICompliant = scenario.EEXICompliant(summary.EEXIAttained, summary.EEXIRequired)
	return summary
}
