package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"sort"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/oceanworks/vessel-forecast/internal/config"
	"github.com/oceanworks/vessel-forecast/internal/modelapi"
	"github.com/oceanworks/vessel-forecast/internal/normalize"
	"github.com/oceanworks/vessel-forecast/internal/vessel"
	"github.com/oceanworks/vessel-forecast/pkg/constants"
	"github.com/oceanworks/vessel-forecast/pkg/output"
	"github.com/oceanworks/vessel-forecast/pkg/validation"
)

// overrideFlags collects repeated -override key=value flags (comma-separated
// pairs accepted) into the request builder's override map.
type overrideFlags map[string]interface{}

func (o overrideFlags) String() string {
	pairs := make([]string, 0, len(o))
	for key, value := range o {
		pairs = append(pairs, fmt.Sprintf("%s=%v", key, value))
	}
	sort.Strings(pairs)
	return strings.Join(pairs, ",")
}

func (o overrideFlags) Set(value string) error {
	for _, pair := range strings.Split(value, ",") {
		pair = strings.TrimSpace(pair)
		if pair == "" {
			continue
		}
		key, val, ok := strings.Cut(pair, "=")
		key = strings.TrimSpace(key)
		if !ok || key == "" {
			return fmt.Errorf("override must be key=value, got %q", pair)
		}
		o[key] = strings.TrimSpace(val)
	}
	return nil
}

func main() {
	configLocation := flag.String("config", constants.DefaultConfigFile, "path to configuration file")
	outputFormatFlag := flag.String("output-format", "", "type of output override: pretty, csv")
	logLevel := flag.String("log-level", "", "log level override (debug, info, warn, error)")
	imo := flag.String("imo", "", "search vessel by IMO number")
	mmsi := flag.String("mmsi", "", "optional MMSI to narrow an IMO search")
	vesselName := flag.String("vesselname", "", "search vessel by name")
	blend := flag.Float64("blend", -1, "biofuel blend override (fraction or percentage)")
	overrides := make(overrideFlags)
	flag.Var(overrides, "override", "model parameter override key=value (repeatable, comma-separated pairs accepted)")
	flag.Parse()

	conf := config.DefaultConfiguration()
	if _, statErr := os.Stat(*configLocation); statErr == nil {
		var err error
		conf, err = config.LoadConfiguration(*configLocation)
		if err != nil {
			fmt.Printf("{\"op\": \"main\", \"level\": \"fatal\", \"msg\": \"failed to load configuration at %s\", \"error\": \"%v\"}\n", *configLocation, err)
			return
		}
	}

	logger, err := config.BuildLogger(conf.Logging, *logLevel)
	if err != nil {
		fmt.Printf("{\"op\": \"main\", \"level\": \"fatal\", \"msg\": \"failed to initialize logger\", \"error\": \"%v\"}\n", err)
		return
	}
	defer func() {
		_ = logger.Sync()
	}()

	outputFormat := conf.Output.Format
	if *outputFormatFlag != "" {
		outputFormat = *outputFormatFlag
	}
	if outputFormat == "" {
		outputFormat = constants.OutputFormatPretty
	}

	if err := validation.ValidateOutputFormat(outputFormat); err != nil {
		logger.Fatal(err.Error(),
			zap.String("op", "main"),
		)
	}

	warnings := conf.ValidateConfiguration()
	for _, warning := range warnings {
		logger.Warn("Configuration warning: "+warning,
			zap.String("op", "main"),
		)
	}

	ctx := context.Background()

	// Resolve the vessel, falling back to the default profile when no search
	// was requested or the lookup comes up empty.
	vessels := vessel.NewClient(conf.API.VesselEndpoint,
		time.Duration(conf.API.VesselTimeoutSeconds)*time.Second, logger)

	var profile vessel.Profile
	switch {
	case *imo != "":
		profile, _ = vessels.Lookup(ctx, vessel.ByIMO{IMO: *imo, MMSI: *mmsi})
	case *vesselName != "":
		profile, _ = vessels.Lookup(ctx, vessel.ByName{Name: strings.TrimSpace(*vesselName)})
	default:
		profile = vessel.DefaultProfile()
	}

	if *blend >= 0 {
		overrides[modelapi.KeyBiofuelsBlendInput] = *blend
	}

	params, err := modelapi.Build(&profile, overrides)
	if err != nil {
		logger.Fatal("failed to build model request",
			zap.String("op", "main"),
			zap.Error(err),
		)
	}

	model := modelapi.NewClient(conf.API.ModelEndpoint,
		time.Duration(conf.API.ModelTimeoutSeconds)*time.Second, logger)

	doc := model.Fetch(ctx, params)
	results := normalize.Normalize(doc)
	if len(results) == 0 {
		logger.Warn("no forecast data available",
			zap.String("op", "main"),
		)
	}

	switch outputFormat {
	case constants.OutputFormatPretty:
		fmt.Printf("--- Forecast for vessel %s ---\n", profile.Name)
		output.PrettyFormat(results)
		if len(results) > 0 {
			table := conf.CurrencyTable()
			final := results[len(results)-1].Cumulative
			fmt.Printf("Cumulative saving through %d: %s\n",
				results[len(results)-1].Year, table.Format(final, conf.Output.Currency))
		}
	case constants.OutputFormatCSV:
		output.CsvFormat(results)
	}
}
