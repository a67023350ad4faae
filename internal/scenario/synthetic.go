package scenario

import (
	"math/rand"
	"time"

	"github.com/oceanworks/vessel-forecast/pkg/constants"
)

// Provider supplies scenario data when no real model response is available,
// so the presentation layer always has plottable series.
type Provider interface {
	Scenarios(names []string) Set
}

// componentRange bounds a synthetic component's values over the horizon.
type componentRange struct {
	lo float64
	hi float64
}

var syntheticRanges = map[string]componentRange{
	ComponentFuelPrice:   {1e7, 2e7},
	ComponentOpex:        {5e6, 1e7},
	ComponentEUETS:       {0, 5e5},
	ComponentPenalty:     {0, 1e6},
	ComponentMaintenance: {1e5, 5e5},
	ComponentSpare:       {1e4, 1e5},
}

// SyntheticProvider generates pseudo-random per-year records with a mild
// upward trend, covering the full modelling horizon (2025-2050). Values are
// a structural stand-in only; nothing downstream may depend on them beyond
// shape and range.
type SyntheticProvider struct {
	rng *rand.Rand
}

// NewSyntheticProvider constructs a provider. A nil rng gets a time-seeded
// source; tests inject a fixed-seed rng for reproducibility.
func NewSyntheticProvider(rng *rand.Rand) *SyntheticProvider {
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	return &SyntheticProvider{rng: rng}
}

// Scenarios generates one record per horizon year for each named scenario.
func (p *SyntheticProvider) Scenarios(names []string) Set {
	set := make(Set, len(names))
	for _, name := range names {
		set[name] = p.series()
	}
	return set
}

func (p *SyntheticProvider) series() []Record {
	years := constants.HorizonEndYear - constants.HorizonStartYear + 1

	// Per-scenario base and slope keep each component inside its range while
	// trending upward across the horizon.
	base := make(map[string]float64, len(syntheticRanges))
	slope := make(map[string]float64, len(syntheticRanges))
	for component, r := range syntheticRanges {
		span := r.hi - r.lo
		base[component] = r.lo + p.rng.Float64()*span/2
		slope[component] = p.rng.Float64() * span / 2 / float64(years)
	}

	records := make([]Record, 0, years)
	for i := 0; i < years; i++ {
		value := func(component string) float64 {
			r := syntheticRanges[component]
			jitter := (p.rng.Float64() - 0.5) * slope[component]
			v := base[component] + slope[component]*float64(i) + jitter
			if v < r.lo {
				v = r.lo
			}
			if v > r.hi {
				v = r.hi
			}
			return v
		}

		records = append(records, Record{
			Year:            constants.HorizonStartYear + i,
			BlendPercentage: p.rng.Float64(),
			EUETS:           value(ComponentEUETS),
			FuelPrice:       value(ComponentFuelPrice),
			Maintenance:     value(ComponentMaintenance),
			Opex:            value(ComponentOpex),
			Penalty:         value(ComponentPenalty),
			Spare:           value(ComponentSpare),
		})
	}
	return records
}
