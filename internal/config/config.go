// Package config defines the data structures related to configuration and
// includes functions for loading and parsing the config.
package config

import (
	"fmt"
	"io"

	"github.com/shopspring/decimal"
	"github.com/spf13/viper"

	"github.com/oceanworks/vessel-forecast/pkg/constants"
	"github.com/oceanworks/vessel-forecast/pkg/currency"
)

// Configuration holds all configuration for vessel-forecast. It is loaded
// once at startup and treated as read-only afterwards.
type Configuration struct {
	API        APIConfig        `yaml:"api"`
	Currencies []CurrencyConfig `yaml:"currencies,omitempty"`
	Scenarios  ScenarioConfig   `yaml:"scenarios,omitempty"`
	Logging    LoggingConfig    `yaml:"logging,omitempty"`
	Output     OutputConfig     `yaml:"output,omitempty"`
}

// APIConfig holds the outbound endpoints and their timeouts.
type APIConfig struct {
	VesselEndpoint       string `yaml:"vesselEndpoint"`
	ModelEndpoint        string `yaml:"modelEndpoint"`
	VesselTimeoutSeconds int    `yaml:"vesselTimeoutSeconds,omitempty"`
	ModelTimeoutSeconds  int    `yaml:"modelTimeoutSeconds,omitempty"`
}

// CurrencyConfig holds one display-currency entry. Rate is the multiplier
// from EUR into this currency.
type CurrencyConfig struct {
	Code   string  `yaml:"code"`
	Symbol string  `yaml:"symbol"`
	Rate   float64 `yaml:"rate"`
}

// ScenarioConfig holds the fuel-blend scenario names offered by the
// dashboard and compared against Current/Future.
type ScenarioConfig struct {
	Fuels []string `yaml:"fuels,omitempty"`
}

// LoggingConfig holds logging configuration options
type LoggingConfig struct {
	Level      string `yaml:"level,omitempty"`      // debug, info, warn, error
	Format     string `yaml:"format,omitempty"`     // json, console
	OutputFile string `yaml:"outputFile,omitempty"` // optional file output
}

// OutputConfig holds output format configuration options
type OutputConfig struct {
	Format   string `yaml:"format,omitempty"`   // pretty, csv
	Currency string `yaml:"currency,omitempty"` // display currency code
}

// LoadConfiguration takes a file path as input and loads the YAML-formatted
// configuration there.
func LoadConfiguration(configPath string) (*Configuration, error) {
	v := viper.New()
	v.SetConfigFile(configPath)
	v.SetConfigType("yml")
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("error reading config file, %s", err)
	}

	return unmarshalConfiguration(v)
}

// LoadConfigurationFromReader loads a YAML-formatted configuration from an
// arbitrary reader (used by the HTTP server and tests).
func LoadConfigurationFromReader(r io.Reader) (*Configuration, error) {
	v := viper.New()
	v.SetConfigType("yml")

	if err := v.ReadConfig(r); err != nil {
		return nil, fmt.Errorf("error reading config data, %s", err)
	}

	return unmarshalConfiguration(v)
}

func unmarshalConfiguration(v *viper.Viper) (*Configuration, error) {
	var configuration Configuration
	if err := v.Unmarshal(&configuration); err != nil {
		return nil, fmt.Errorf("unable to decode into struct, %s", err)
	}

	configuration.applyDefaults()
	return &configuration, nil
}

// DefaultConfiguration returns a configuration carrying only the built-in
// defaults, for callers running without a config file.
func DefaultConfiguration() *Configuration {
	conf := &Configuration{}
	conf.applyDefaults()
	return conf
}

func (conf *Configuration) applyDefaults() {
	if conf.API.VesselTimeoutSeconds <= 0 {
		conf.API.VesselTimeoutSeconds = constants.VesselLookupTimeoutSeconds
	}
	if conf.API.ModelTimeoutSeconds <= 0 {
		conf.API.ModelTimeoutSeconds = constants.ModelTimeoutSeconds
	}
	if len(conf.Currencies) == 0 {
		conf.Currencies = []CurrencyConfig{
			{Code: "EUR", Symbol: "€", Rate: 1.0},
			{Code: "USD", Symbol: "$", Rate: 1.08},
			{Code: "GBP", Symbol: "£", Rate: 0.86},
		}
	}
	if len(conf.Scenarios.Fuels) == 0 {
		conf.Scenarios.Fuels = []string{"BIO-DIESEL", "MDO", "HVO"}
	}
	if conf.Output.Currency == "" {
		conf.Output.Currency = "EUR"
	}
}

// CurrencyTable builds the display-currency table from the configured
// currency entries.
func (conf *Configuration) CurrencyTable() *currency.Table {
	currencies := make([]currency.Currency, 0, len(conf.Currencies))
	for _, c := range conf.Currencies {
		if c.Rate <= 0 {
			continue
		}
		currencies = append(currencies, currency.Currency{
			Code:   c.Code,
			Symbol: c.Symbol,
			Rate:   decimal.NewFromFloat(c.Rate),
		})
	}
	if len(currencies) == 0 {
		return currency.DefaultTable()
	}
	return currency.NewTable(currencies)
}

// ValidateConfiguration performs general validation of the configuration and
// returns warnings for conditions that do not prevent startup.
func (conf *Configuration) ValidateConfiguration() []string {
	var warnings []string

	if conf.API.VesselEndpoint == "" {
		warnings = append(warnings, "no vessel lookup endpoint configured; searches will return the default vessel")
	}
	if conf.API.ModelEndpoint == "" {
		warnings = append(warnings, "no financial-modelling endpoint configured; forecasts will return no data")
	}
	for _, c := range conf.Currencies {
		if c.Rate <= 0 {
			warnings = append(warnings, fmt.Sprintf("currency %s has non-positive rate %v and will be unusable", c.Code, c.Rate))
		}
	}

	return warnings
}
