// Package scenario implements the aggregation pipeline over per-scenario
// yearly cost records: range sums, cumulative series, percentage breakdowns,
// rankings, and the synthetic fallback data provider.
package scenario

import (
	"sort"

	"github.com/oceanworks/vessel-forecast/pkg/mathutil"
)

// Component names addressable in records.
const (
	ComponentBlendPercentage = "blend_percentage"
	ComponentEUETS           = "eu_ets"
	ComponentFuelPrice       = "fuel_price"
	ComponentMaintenance     = "maintenance"
	ComponentOpex            = "opex"
	ComponentPenalty         = "penalty"
	ComponentSpare           = "spare"
)

// Components lists every addressable component name.
var Components = []string{
	ComponentBlendPercentage,
	ComponentEUETS,
	ComponentFuelPrice,
	ComponentMaintenance,
	ComponentOpex,
	ComponentPenalty,
	ComponentSpare,
}

// Record is one scenario-year of cost components. All fields are always
// present; values the upstream omitted are zero.
type Record struct {
	Year            int     `json:"year"`
	BlendPercentage float64 `json:"blend_percentage"`
	EUETS           float64 `json:"eu_ets"`
	FuelPrice       float64 `json:"fuel_price"`
	Maintenance     float64 `json:"maintenance"`
	Opex            float64 `json:"opex"`
	Penalty         float64 `json:"penalty"`
	Spare           float64 `json:"spare"`
}

// Component returns the named component's value. Unknown names read as 0,
// mirroring the tolerant handling of the upstream's loose record shape.
func (r Record) Component(name string) float64 {
	switch name {
	case ComponentBlendPercentage:
		return r.BlendPercentage
	case ComponentEUETS:
		return r.EUETS
	case ComponentFuelPrice:
		return r.FuelPrice
	case ComponentMaintenance:
		return r.Maintenance
	case ComponentOpex:
		return r.Opex
	case ComponentPenalty:
		return r.Penalty
	case ComponentSpare:
		return r.Spare
	default:
		return 0
	}
}

// Set maps scenario names (e.g. "Current", "Future", "HVO") to their yearly
// records. Within one scenario years are unique; ordering is not assumed.
type Set map[string][]Record

// YearRange is an inclusive [Start, End] filter on record years.
type YearRange struct {
	Start int
	End   int
}

// Contains reports whether year falls inside the range.
func (yr YearRange) Contains(year int) bool {
	return year >= yr.Start && year <= yr.End
}

// SumComponent sums the named component over records within the year range,
// per scenario. Scenarios summing to exactly zero are dropped from the
// result: the dashboard hides empty slices rather than plotting them.
func SumComponent(set Set, component string, yr YearRange) map[string]float64 {
	sums := make(map[string]float64)
	for name, records := range set {
		var sum float64
		for _, record := range records {
			if yr.Contains(record.Year) {
				sum += record.Component(component)
			}
		}
		if sum != 0 {
			sums[name] = sum
		}
	}
	return sums
}

// CumulativeSeries computes the running sum of the named component over the
// year range, per scenario, in year-ascending order. Years missing from a
// scenario's records are simply absent from its series.
func CumulativeSeries(set Set, component string, yr YearRange) map[string][]float64 {
	series := make(map[string][]float64, len(set))
	for name, records := range set {
		sorted := make([]Record, len(records))
		copy(sorted, records)
		sort.Slice(sorted, func(i, j int) bool { return sorted[i].Year < sorted[j].Year })

		var running float64
		// Non-nil so an all-out-of-range scenario serializes as [] not null.
		points := []float64{}
		for _, record := range sorted {
			if !yr.Contains(record.Year) {
				continue
			}
			running += record.Component(component)
			points = append(points, running)
		}
		series[name] = points
	}
	return series
}

// PercentageBreakdown sums each named component across all records of one
// scenario and expresses it as a percentage of the total across the named
// components. A zero total yields all-zero percentages.
func PercentageBreakdown(set Set, components []string, scenarioName string) map[string]float64 {
	records := set[scenarioName]

	sums := make(map[string]float64, len(components))
	var total float64
	for _, component := range components {
		var sum float64
		for _, record := range records {
			sum += record.Component(component)
		}
		sums[component] = sum
		total += sum
	}

	breakdown := make(map[string]float64, len(components))
	for _, component := range components {
		breakdown[component] = mathutil.CalculatePercentage(sums[component], total)
	}
	return breakdown
}

// RankScenarios orders scenario names descending by the caller-supplied
// metric. The order slice supplies the tie-break: names earlier in it win
// ties (stable sort). Names absent from the set are skipped.
func RankScenarios(set Set, order []string, metric func([]Record) float64) []string {
	type scored struct {
		name  string
		score float64
	}

	ranked := make([]scored, 0, len(order))
	for _, name := range order {
		records, ok := set[name]
		if !ok {
			continue
		}
		ranked = append(ranked, scored{name: name, score: metric(records)})
	}

	sort.SliceStable(ranked, func(i, j int) bool { return ranked[i].score > ranked[j].score })

	names := make([]string, len(ranked))
	for i, s := range ranked {
		names[i] = s.name
	}
	return names
}

// FilterScenarios returns the sub-set holding only the selected names.
// Unknown names are silently ignored: the multi-select driving this can
// transiently reference scenarios that no longer exist.
func FilterScenarios(set Set, selected []string) Set {
	filtered := make(Set)
	for _, name := range selected {
		if records, ok := set[name]; ok {
			filtered[name] = records
		}
	}
	return filtered
}

// TotalCost is the default ranking metric: the sum of every cost component
// except the blend fraction across all records.
func TotalCost(records []Record) float64 {
	var total float64
	for _, record := range records {
		total += record.EUETS + record.FuelPrice + record.Maintenance +
			record.Opex + record.Penalty + record.Spare
	}
	return total
}

// SortedNames returns the set's scenario names in ascending alphabetical
// order, for callers that need a deterministic ordering over the map.
func SortedNames(set Set) []string {
	names := make([]string, 0, len(set))
	for name := range set {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
