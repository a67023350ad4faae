// Package output provides utilities for formatting and displaying forecast results.
package output

import (
	"fmt"
	"sort"
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/oceanworks/vessel-forecast/internal/normalize"
)

// PrettyFormat outputs a human-readable rather than machine-readable table.
func PrettyFormat(results []normalize.YearlyResult) {
	p := message.NewPrinter(language.English)
	fmt.Printf("Year | NPV             | Cumulative      | Current OPEX    | Future OPEX\n")
	fmt.Printf("____ | _______________ | _______________ | _______________ | _______________\n")
	for _, result := range results {
		_, _ = p.Printf("%d | %15.2f | %15.2f | %15.2f | %15.2f\n",
			result.Year, result.NPV, result.Cumulative, result.CurrentOpex, result.FutureOpex)
	}
}

// CsvFormat outputs in comma-separated value format.
func CsvFormat(results []normalize.YearlyResult) {
	fmt.Print(CsvString(results))
}

// CsvString renders the yearly results as CSV, one row per year in result
// order. The server embeds this string in forecast responses for download.
func CsvString(results []normalize.YearlyResult) string {
	var b strings.Builder
	b.WriteString(`"year","npv","cumulative","result",` +
		`"current_opex","current_penalty","current_fuel","current_maintenance","current_spares",` +
		`"future_opex","future_penalty","future_fuel","future_maintenance"` + "\n")
	for _, r := range results {
		fmt.Fprintf(&b, `"%d","%.2f","%.2f","%.2f","%.2f","%.2f","%.2f","%.2f","%.2f","%.2f","%.2f","%.2f","%.2f"`+"\n",
			r.Year, r.NPV, r.Cumulative, r.Yearly,
			r.CurrentOpex, r.CurrentPenalty, r.CurrentFuel, r.CurrentMaintenance, r.CurrentSpares,
			r.FutureOpex, r.FuturePenalty, r.FutureFuel, r.FutureMaintenance)
	}
	return b.String()
}

// PrettySums outputs per-scenario component sums, largest first.
func PrettySums(title string, sums map[string]float64) {
	p := message.NewPrinter(language.English)

	names := make([]string, 0, len(sums))
	for name := range sums {
		names = append(names, name)
	}
	sort.Slice(names, func(i, j int) bool {
		if sums[names[i]] != sums[names[j]] {
			return sums[names[i]] > sums[names[j]]
		}
		return names[i] < names[j]
	})

	fmt.Printf("--- %s ---\n", title)
	for _, name := range names {
		_, _ = p.Printf("%-20s %18.2f\n", name, sums[name])
	}
}
