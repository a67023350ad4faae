// Package modelapi builds the parameter set for the external
// financial-modelling API and performs the outbound call.
package modelapi

import (
	"fmt"
	"net/url"
	"sort"
	"strconv"
	"strings"

	"github.com/oceanworks/vessel-forecast/internal/vessel"
	"github.com/oceanworks/vessel-forecast/pkg/constants"
)

// Parameter keys expected by the modelling API. The blend key is upper-case
// on the wire; the rest are lower-case. This mirrors the upstream contract.
const (
	KeyVesselName           = "vesselname"
	KeyIMO                  = "imo"
	KeyMainEnginePower      = "main_engine_power"
	KeyAuxEnginePower       = "aux_engine_power"
	KeyMainFuelType         = "main_fuel_type"
	KeyAuxFuelType          = "aux_fuel_type"
	KeyFutureMainFuelType   = "future_main_fuel_type"
	KeyFutureAuxFuelType    = "future_aux_fuel_type"
	KeyReportingYear        = "reporting_year"
	KeySailingDays          = "sailing_days"
	KeyWorkingDays          = "working_days"
	KeyIdleDays             = "idle_days"
	KeyShoreDays            = "shore_days"
	KeySailingEngineLoad    = "sailing_engine_load"
	KeyWorkingEngineLoad    = "working_engine_load"
	KeyIdleEngineLoad       = "idle_engine_load"
	KeyParasiticLoad        = "parasitic_load"
	KeyMaintenanceCost      = "maintenance_cost_per_hour"
	KeySparesCost           = "spares_cost_per_hour"
	KeyFuelEUCurrentPenalty = "fueleu_current_penalty"
	KeyFuelEUFuturePenalty  = "fueleu_future_penalty"
	KeyInflationRate        = "inflation_rate"
	KeyDiscountRate         = "npv_discount_rate"
	KeyCapex                = "capex"
	KeyBiofuelsBlend        = "BIOFUELS_BLEND_PERCENTAGE"
	KeyShoreEnable          = "shore_enable"
	KeyShorePortCount       = "shore_port_count"
)

// KeyBiofuelsBlendInput is the raw override key accepted from callers; its
// value may be a fraction or a percentage and is normalized into
// KeyBiofuelsBlend.
const KeyBiofuelsBlendInput = "biofuels_blend"

// ValidationError reports a user-supplied parameter violating a domain
// constraint. It blocks the request before any network call.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid parameter %s: %s", e.Field, e.Reason)
}

// Parameters is the flattened, fully-resolved key/value set sent to the
// modelling API.
type Parameters map[string]interface{}

// defaultParameters returns the canonical fallback parameter set.
func defaultParameters() Parameters {
	return Parameters{
		KeyMainEnginePower:      constants.DefaultMainEnginePowerKW,
		KeyAuxEnginePower:       constants.DefaultAuxEnginePowerKW,
		KeyMainFuelType:         constants.DefaultMainFuelType,
		KeyAuxFuelType:          constants.DefaultAuxFuelType,
		KeyFutureMainFuelType:   constants.DefaultFutureFuelType,
		KeyFutureAuxFuelType:    constants.DefaultFutureFuelType,
		KeyReportingYear:        constants.DefaultReportingYear,
		KeySailingDays:          constants.DefaultSailingDays,
		KeyWorkingDays:          constants.DefaultWorkingDays,
		KeyIdleDays:             constants.DefaultIdleDays,
		KeyShoreDays:            constants.DefaultShoreDays,
		KeySailingEngineLoad:    constants.DefaultSailingEngineLoad,
		KeyWorkingEngineLoad:    constants.DefaultWorkingEngineLoad,
		KeyIdleEngineLoad:       constants.DefaultIdleEngineLoad,
		KeyParasiticLoad:        constants.DefaultParasiticLoad,
		KeyMaintenanceCost:      constants.DefaultMaintenanceCostPerHour,
		KeySparesCost:           constants.DefaultSparesCostPerHour,
		KeyFuelEUCurrentPenalty: constants.DefaultFuelEUCurrentPenalty,
		KeyFuelEUFuturePenalty:  0.0,
		KeyInflationRate:        constants.DefaultInflationRate,
		KeyDiscountRate:         constants.DefaultDiscountRate,
		KeyCapex:                constants.DefaultCapex,
		KeyBiofuelsBlend:        0.0,
		KeyShoreEnable:          "false",
		KeyShorePortCount:       0,
	}
}

// Build assembles the request parameters by layered override: hardcoded
// defaults < vessel-derived fields < explicit user overrides. It normalizes
// the shore-power flag and the biofuel blend and validates day counts and the
// blend fraction before anything touches the network.
func Build(profile *vessel.Profile, overrides map[string]interface{}) (Parameters, error) {
	params := defaultParameters()

	if profile != nil {
		params[KeyVesselName] = profile.Name
		params[KeyIMO] = profile.IMO
		params[KeyMainEnginePower] = profile.MainEnginePowerKW
		params[KeyAuxEnginePower] = profile.AuxEnginePowerKW
		params[KeyMainFuelType] = profile.MainFuelType
		params[KeyAuxFuelType] = profile.AuxFuelType
		params[KeyReportingYear] = profile.ReportingYear
		if profile.InflationRate > 0 {
			params[KeyInflationRate] = profile.InflationRate
		}
		if profile.DiscountRate > 0 {
			params[KeyDiscountRate] = profile.DiscountRate
		}
	}

	for key, value := range overrides {
		if key == KeyBiofuelsBlendInput {
			key = KeyBiofuelsBlend
		}
		params[key] = value
	}

	params[KeyShoreEnable] = normalizeShoreEnable(params[KeyShoreEnable])

	blend, err := normalizeBlend(params[KeyBiofuelsBlend])
	if err != nil {
		return nil, err
	}
	params[KeyBiofuelsBlend] = blend

	for _, key := range []string{KeySailingDays, KeyWorkingDays, KeyIdleDays, KeyShoreDays} {
		days, ok := toFloat(params[key])
		if !ok {
			return nil, &ValidationError{Field: key, Reason: fmt.Sprintf("not a number: %v", params[key])}
		}
		if days < 0 {
			return nil, &ValidationError{Field: key, Reason: fmt.Sprintf("day count must not be negative, got %v", params[key])}
		}
	}

	return params, nil
}

// normalizeShoreEnable coerces the shore-power flag into the literal strings
// "true"/"false" the API expects.
func normalizeShoreEnable(value interface{}) string {
	switch v := value.(type) {
	case bool:
		if v {
			return "true"
		}
	case string:
		switch strings.ToLower(strings.TrimSpace(v)) {
		case "yes", "true":
			return "true"
		}
	}
	return "false"
}

// normalizeBlend interprets blend values above 1 as percentages and rejects
// fractions above 1.0 (i.e. raw values above 100%).
func normalizeBlend(value interface{}) (float64, error) {
	raw, ok := toFloat(value)
	if !ok {
		return 0, &ValidationError{Field: KeyBiofuelsBlend, Reason: fmt.Sprintf("not a number: %v", value)}
	}
	if raw < 0 {
		return 0, &ValidationError{Field: KeyBiofuelsBlend, Reason: fmt.Sprintf("blend must not be negative, got %v", raw)}
	}
	fraction := raw
	if raw > 1 {
		fraction = raw / constants.PercentageMultiplier
	}
	if fraction > 1 {
		return 0, &ValidationError{Field: KeyBiofuelsBlend, Reason: fmt.Sprintf("blend exceeds 100%%: %v", raw)}
	}
	return fraction, nil
}

func toFloat(value interface{}) (float64, bool) {
	switch v := value.(type) {
	case float64:
		return v, true
	case float32:
		return float64(v), true
	case int:
		return float64(v), true
	case int64:
		return float64(v), true
	case string:
		parsed, err := strconv.ParseFloat(strings.TrimSpace(v), 64)
		if err != nil {
			return 0, false
		}
		return parsed, true
	default:
		return 0, false
	}
}

// Values serializes the parameters into URL query values. List-valued
// parameters are encoded with repeated keys.
func (p Parameters) Values() url.Values {
	values := url.Values{}
	for key, value := range p {
		switch v := value.(type) {
		case []string:
			for _, item := range v {
				values.Add(key, item)
			}
		case []interface{}:
			for _, item := range v {
				values.Add(key, formatScalar(item))
			}
		default:
			values.Add(key, formatScalar(v))
		}
	}
	return values
}

// Clone returns a shallow copy so per-scenario variations do not mutate the
// caller's parameter set.
func (p Parameters) Clone() Parameters {
	clone := make(Parameters, len(p))
	for key, value := range p {
		clone[key] = value
	}
	return clone
}

// Keys returns the parameter keys sorted for stable logging.
func (p Parameters) Keys() []string {
	keys := make([]string, 0, len(p))
	for key := range p {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}

func formatScalar(value interface{}) string {
	switch v := value.(type) {
	case string:
		return v
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	case float32:
		return strconv.FormatFloat(float64(v), 'f', -1, 32)
	case int:
		return strconv.Itoa(v)
	case int64:
		return strconv.FormatInt(v, 10)
	case bool:
		return strconv.FormatBool(v)
	default:
		return fmt.Sprintf("%v", v)
	}
}
