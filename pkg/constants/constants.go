// Package constants provides shared constants for the vessel-forecast application.
package constants

// Default vessel profile used whenever a lookup fails or no vessel is
// supplied. Values describe the reference vessel the modelling API was
// calibrated against.
const (
	// DefaultMainEnginePowerKW is the main engine rated power in kW
	DefaultMainEnginePowerKW = 38400.0

	// DefaultAuxEnginePowerKW is the auxiliary engine rated power in kW
	DefaultAuxEnginePowerKW = 2020.0

	// DefaultSailingDays is the number of sailing days per year
	DefaultSailingDays = 199

	// DefaultWorkingDays is the number of working days per year
	DefaultWorkingDays = 40

	// DefaultIdleDays is the number of idle days per year
	DefaultIdleDays = 126

	// DefaultShoreDays is the number of shore-power days per year
	DefaultShoreDays = 0

	// DefaultSailingEngineLoad is the engine load fraction while sailing
	DefaultSailingEngineLoad = 0.5

	// DefaultWorkingEngineLoad is the engine load fraction while working
	DefaultWorkingEngineLoad = 0.3

	// DefaultIdleEngineLoad is the engine load fraction while idle
	DefaultIdleEngineLoad = 0.395

	// DefaultMainFuelType is the current main engine fuel
	DefaultMainFuelType = "MDO"

	// DefaultAuxFuelType is the current auxiliary engine fuel
	DefaultAuxFuelType = "MDO"

	// DefaultFutureFuelType is the future fuel selection
	DefaultFutureFuelType = "Diesel-Bio-diesel"

	// DefaultReportingYear is the reporting year for compliance figures
	DefaultReportingYear = 2030

	// DefaultMaintenanceCostPerHour is the maintenance cost in EUR per engine-hour
	DefaultMaintenanceCostPerHour = 20.0

	// DefaultSparesCostPerHour is the spares cost in EUR per engine-hour
	DefaultSparesCostPerHour = 2.0

	// DefaultFuelEUCurrentPenalty is the annual FuelEU penalty in EUR for the
	// current fuel configuration
	DefaultFuelEUCurrentPenalty = 729348.5444

	// DefaultParasiticLoad is the parasitic load factor
	DefaultParasiticLoad = 0.95

	// DefaultInflationRate is the annual cost inflation fraction
	DefaultInflationRate = 0.02

	// DefaultDiscountRate is the NPV discount fraction
	DefaultDiscountRate = 0.07

	// DefaultCapex is the conversion CAPEX in EUR
	DefaultCapex = 19772750.0
)

// Forecast horizon constants
const (
	// HorizonStartYear is the first year of the modelling horizon
	HorizonStartYear = 2025

	// HorizonEndYear is the last year of the modelling horizon (inclusive)
	HorizonEndYear = 2050
)

// External API constants
const (
	// VesselLookupTimeoutSeconds bounds the vessel-detail lookup call
	VesselLookupTimeoutSeconds = 10

	// ModelTimeoutSeconds bounds the financial-modelling call
	ModelTimeoutSeconds = 15

	// ScenarioFetchConcurrency bounds concurrent per-fuel model calls
	ScenarioFetchConcurrency = 4
)

// Financial constants
const (
	// DecimalPrecision is the precision for currency rounding (2 decimal places)
	DecimalPrecision = 100

	// PercentageMultiplier is used for percentage conversions
	PercentageMultiplier = 100.0
)

// Output format constants
const (
	// OutputFormatPretty is the human-readable output format
	OutputFormatPretty = "pretty"

	// OutputFormatCSV is the CSV output format
	OutputFormatCSV = "csv"
)

// Configuration file constants
const (
	// DefaultConfigFile is the default configuration file name
	DefaultConfigFile = "config.yaml"

	// DefaultServerConfigFile is the default server configuration file name
	DefaultServerConfigFile = "server-config.yaml"
)

// Server configuration defaults
const (
	// DefaultServerAddress is the default HTTP listen address
	DefaultServerAddress = ":8080"

	// DefaultMaxBodySizeBytes is the default maximum request body size (256 KB)
	DefaultMaxBodySizeBytes int64 = 256 * 1024
)
