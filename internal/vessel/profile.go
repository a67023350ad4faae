// Package vessel defines the vessel profile record and the vessel-detail
// lookup client.
package vessel

import "github.com/oceanworks/vessel-forecast/pkg/constants"

// Profile holds the vessel and operating parameters fed into the request
// builder. A profile is fully populated: lookups overlay fields onto the
// default profile so no field is ever missing downstream.
type Profile struct {
	Name     string
	IMO      string
	Category string

	GrossTonnage float64
	Deadweight   float64
	YearBuilt    int

	MainEnginePowerKW float64
	AuxEnginePowerKW  float64
	MainEngineType    string
	MainFuelType      string
	AuxFuelType       string
	FutureFuelType    string

	SailingDays int
	WorkingDays int
	IdleDays    int
	ShoreDays   int

	SailingEngineLoad float64
	WorkingEngineLoad float64
	IdleEngineLoad    float64
	ParasiticLoad     float64

	MaintenanceCostPerHour float64
	SparesCostPerHour      float64
	FuelEUCurrentPenalty   float64
	FuelEUFuturePenalty    float64

	InflationRate float64
	DiscountRate  float64
	Capex         float64
	BiofuelBlend  float64

	ShoreEnable    bool
	ShorePortCount int

	ReportingYear int
}

// DefaultProfile returns the canonical fallback vessel. Every lookup failure
// and every request without a vessel resolves to this profile.
func DefaultProfile() Profile {
	return Profile{
		Name:                   "DEFAULT VESSEL",
		Category:               "Tanker",
		MainEnginePowerKW:      constants.DefaultMainEnginePowerKW,
		AuxEnginePowerKW:       constants.DefaultAuxEnginePowerKW,
		MainFuelType:           constants.DefaultMainFuelType,
		AuxFuelType:            constants.DefaultAuxFuelType,
		FutureFuelType:         constants.DefaultFutureFuelType,
		SailingDays:            constants.DefaultSailingDays,
		WorkingDays:            constants.DefaultWorkingDays,
		IdleDays:               constants.DefaultIdleDays,
		ShoreDays:              constants.DefaultShoreDays,
		SailingEngineLoad:      constants.DefaultSailingEngineLoad,
		WorkingEngineLoad:      constants.DefaultWorkingEngineLoad,
		IdleEngineLoad:         constants.DefaultIdleEngineLoad,
		ParasiticLoad:          constants.DefaultParasiticLoad,
		MaintenanceCostPerHour: constants.DefaultMaintenanceCostPerHour,
		SparesCostPerHour:      constants.DefaultSparesCostPerHour,
		FuelEUCurrentPenalty:   constants.DefaultFuelEUCurrentPenalty,
		Capex:                  constants.DefaultCapex,
		ReportingYear:          constants.DefaultReportingYear,
	}
}
