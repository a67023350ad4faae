// Package server exposes the forecast pipeline to the dashboard front-end as
// a small JSON API.
package server

import (
	"errors"
	"net/http"
	"sort"
	"strings"
	"time"

	json "github.com/goccy/go-json"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/oceanworks/vessel-forecast/internal/modelapi"
	"github.com/oceanworks/vessel-forecast/internal/normalize"
	"github.com/oceanworks/vessel-forecast/internal/scenario"
	"github.com/oceanworks/vessel-forecast/internal/vessel"
	"github.com/oceanworks/vessel-forecast/pkg/constants"
	"github.com/oceanworks/vessel-forecast/pkg/currency"
	"github.com/oceanworks/vessel-forecast/pkg/output"
)

type handler struct {
	logger          *zap.Logger
	vessels         *vessel.Client
	model           *modelapi.Client
	provider        scenario.Provider
	fuels           []string
	currencies      *currency.Table
	displayCurrency string
	maxBodySize     int64
	version         string
}

// Options carries the collaborators the handler needs.
type Options struct {
	Logger          *zap.Logger
	Vessels         *vessel.Client
	Model           *modelapi.Client
	Provider        scenario.Provider
	Fuels           []string
	Currencies      *currency.Table
	DisplayCurrency string
	MaxBodySize     int64
	Version         string
}

// NewHandler constructs the HTTP handler serving the dashboard API.
func NewHandler(opts Options) http.Handler {
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	vessels := opts.Vessels
	if vessels == nil {
		vessels = vessel.NewClient("", 10*time.Second, logger)
	}

	model := opts.Model
	if model == nil {
		model = modelapi.NewClient("", 15*time.Second, logger)
	}

	provider := opts.Provider
	if provider == nil {
		provider = scenario.NewSyntheticProvider(nil)
	}

	currencies := opts.Currencies
	if currencies == nil {
		currencies = currency.DefaultTable()
	}

	displayCurrency := strings.TrimSpace(opts.DisplayCurrency)
	if displayCurrency == "" {
		displayCurrency = "EUR"
	}

	maxBodySize := opts.MaxBodySize
	if maxBodySize <= 0 {
		maxBodySize = 256 * 1024
	}

	version := strings.TrimSpace(opts.Version)
	if version == "" {
		version = "dev"
	}

	h := &handler{
		logger:          logger,
		vessels:         vessels,
		model:           model,
		provider:        provider,
		fuels:           opts.Fuels,
		currencies:      currencies,
		displayCurrency: displayCurrency,
		maxBodySize:     maxBodySize,
		version:         version,
	}

	mux := http.NewServeMux()
	mux.HandleFunc("/api/version", h.handleVersion)
	mux.HandleFunc("/api/currencies", h.handleCurrencies)
	mux.HandleFunc("/api/vessel/search", h.handleVesselSearch)
	mux.HandleFunc("/api/forecast", h.handleForecast)
	mux.HandleFunc("/api/scenarios/components", h.handleScenarioComponents)
	mux.HandleFunc("/api/scenarios/cumulative", h.handleScenarioCumulative)
	mux.HandleFunc("/api/scenarios/breakdown", h.handleScenarioBreakdown)
	mux.HandleFunc("/api/scenarios/rank", h.handleScenarioRank)

	return mux
}

type forecastRequest struct {
	IMO       string                 `json:"imo"`
	MMSI      string                 `json:"mmsi"`
	Name      string                 `json:"name"`
	Overrides map[string]interface{} `json:"overrides"`
	Fuels     []string               `json:"fuels"`
	Currency  string                 `json:"currency"`
}

type forecastResponse struct {
	RequestID   string                      `json:"requestId"`
	Vessel      *vessel.Profile             `json:"vessel,omitempty"`
	VesselFound bool                        `json:"vesselFound"`
	Rows        []normalize.YearlyResult    `json:"rows"`
	CSV         string                      `json:"csv"`
	Compliance  normalize.ComplianceSummary `json:"compliance"`
	Scenarios   scenario.Set                `json:"scenarios,omitempty"`
	Order       []string                    `json:"scenarioNames,omitempty"`
	Currency    string                      `json:"currency"`
	Total       string                      `json:"totalFormatted"`
	Duration    string                      `json:"duration"`
}

func (h *handler) handleVersion(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, http.StatusText(http.StatusMethodNotAllowed), http.StatusMethodNotAllowed)
		return
	}

	h.writeJSON(w, http.StatusOK, map[string]string{
		"version": h.version,
	})
}

func (h *handler) handleCurrencies(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, http.StatusText(http.StatusMethodNotAllowed), http.StatusMethodNotAllowed)
		return
	}

	codes := h.currencies.Codes()
	sort.Strings(codes)
	h.writeJSON(w, http.StatusOK, map[string]interface{}{
		"codes":   codes,
		"default": h.displayCurrency,
	})
}

func (h *handler) handleVesselSearch(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, http.StatusText(http.StatusMethodNotAllowed), http.StatusMethodNotAllowed)
		return
	}

	requestID := h.newRequestID(w)
	query, err := vesselQueryFromRequest(r)
	if err != nil {
		h.respondError(w, http.StatusBadRequest, err.Error(), "server.handleVesselSearch", requestID)
		return
	}

	profile, found := h.vessels.Lookup(r.Context(), query)
	h.logger.Info("vessel search",
		zap.String("op", "server.handleVesselSearch"),
		zap.String("requestId", requestID),
		zap.Bool("found", found),
	)

	h.writeJSON(w, http.StatusOK, map[string]interface{}{
		"requestId": requestID,
		"vessel":    profile,
		"found":     found,
	})
}

func vesselQueryFromRequest(r *http.Request) (vessel.Query, error) {
	q := r.URL.Query()
	imo := strings.TrimSpace(q.Get("imo"))
	name := strings.TrimSpace(q.Get("name"))

	switch {
	case imo != "":
		return vessel.ByIMO{IMO: imo, MMSI: strings.TrimSpace(q.Get("mmsi"))}, nil
	case name != "":
		return vessel.ByName{Name: name}, nil
	default:
		return nil, errors.New("either imo or name must be provided")
	}
}

func (h *handler) handleForecast(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, http.StatusText(http.StatusMethodNotAllowed), http.StatusMethodNotAllowed)
		return
	}

	start := time.Now()
	requestID := h.newRequestID(w)

	var payload forecastRequest
	r.Body = http.MaxBytesReader(w, r.Body, h.maxBodySize)
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		h.respondError(w, http.StatusBadRequest, "failed to decode request: "+err.Error(), "server.handleForecast", requestID)
		return
	}

	var profile *vessel.Profile
	var found bool
	if payload.IMO != "" || payload.Name != "" {
		var query vessel.Query
		if payload.IMO != "" {
			query = vessel.ByIMO{IMO: payload.IMO, MMSI: payload.MMSI}
		} else {
			query = vessel.ByName{Name: payload.Name}
		}
		p, ok := h.vessels.Lookup(r.Context(), query)
		profile, found = &p, ok
	}

	params, err := modelapi.Build(profile, payload.Overrides)
	if err != nil {
		var verr *modelapi.ValidationError
		if errors.As(err, &verr) {
			h.respondError(w, http.StatusUnprocessableEntity, verr.Error(), "server.handleForecast", requestID)
			return
		}
		h.respondError(w, http.StatusBadRequest, err.Error(), "server.handleForecast", requestID)
		return
	}

	doc := h.model.Fetch(r.Context(), params)
	rows := normalize.Normalize(doc)
	set, order := normalize.ParseScenarios(doc)
	compliance := normalize.ParseCompliance(doc)

	if len(payload.Fuels) > 0 {
		// One extra model run per requested fuel-blend scenario. Merged in
		// request order so scenarioNames is identical across identical
		// requests; the map's iteration order is not.
		docs := h.model.FetchScenarios(r.Context(), params, payload.Fuels)
		for _, fuel := range payload.Fuels {
			scenarioSet, scenarioOrder := normalize.ParseScenarios(docs[fuel])
			for _, name := range scenarioOrder {
				if _, exists := set[name]; !exists {
					set[name] = scenarioSet[name]
					order = append(order, name)
				}
			}
		}
	}

	displayCurrency := strings.ToUpper(strings.TrimSpace(payload.Currency))
	if displayCurrency == "" {
		displayCurrency = h.displayCurrency
	}
	var total string
	if len(rows) > 0 {
		total = h.currencies.Format(rows[len(rows)-1].Cumulative, displayCurrency)
	}

	elapsed := time.Since(start)
	h.logger.Info("forecast computed",
		zap.String("op", "server.handleForecast"),
		zap.String("requestId", requestID),
		zap.Int("rows", len(rows)),
		zap.Int("scenarios", len(set)),
		zap.Duration("duration", elapsed),
	)

	h.writeJSON(w, http.StatusOK, forecastResponse{
		RequestID:   requestID,
		Vessel:      profile,
		VesselFound: found,
		Rows:        rows,
		CSV:         output.CsvString(rows),
		Compliance:  compliance,
		Scenarios:   set,
		Order:       order,
		Currency:    displayCurrency,
		Total:       total,
		Duration:    elapsed.String(),
	})
}

// aggregateRequest is the shared body for the scenario aggregation
// endpoints. An empty scenario set falls back to the synthetic provider so
// the dashboard always has plottable data.
type aggregateRequest struct {
	Scenarios  scenario.Set `json:"scenarios"`
	Names      []string     `json:"names"`
	Component  string       `json:"component"`
	Components []string     `json:"components"`
	Scenario   string       `json:"scenario"`
	FromYear   int          `json:"fromYear"`
	ToYear     int          `json:"toYear"`
}

func (h *handler) decodeAggregate(w http.ResponseWriter, r *http.Request, requestID, op string) (*aggregateRequest, bool) {
	if r.Method != http.MethodPost {
		http.Error(w, http.StatusText(http.StatusMethodNotAllowed), http.StatusMethodNotAllowed)
		return nil, false
	}

	var payload aggregateRequest
	r.Body = http.MaxBytesReader(w, r.Body, h.maxBodySize)
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		h.respondError(w, http.StatusBadRequest, "failed to decode request: "+err.Error(), op, requestID)
		return nil, false
	}

	if len(payload.Scenarios) == 0 {
		names := payload.Names
		if len(names) == 0 {
			names = append([]string{"Current", "Future"}, h.fuels...)
		}
		payload.Scenarios = h.provider.Scenarios(names)
	} else if len(payload.Names) > 0 {
		payload.Scenarios = scenario.FilterScenarios(payload.Scenarios, payload.Names)
	}

	if payload.FromYear == 0 {
		payload.FromYear = constants.HorizonStartYear
	}
	if payload.ToYear == 0 {
		payload.ToYear = constants.HorizonEndYear
	}

	return &payload, true
}

func (h *handler) handleScenarioComponents(w http.ResponseWriter, r *http.Request) {
	requestID := h.newRequestID(w)
	payload, ok := h.decodeAggregate(w, r, requestID, "server.handleScenarioComponents")
	if !ok {
		return
	}

	sums := scenario.SumComponent(payload.Scenarios, payload.Component,
		scenario.YearRange{Start: payload.FromYear, End: payload.ToYear})

	h.writeJSON(w, http.StatusOK, map[string]interface{}{
		"requestId": requestID,
		"component": payload.Component,
		"sums":      sums,
	})
}

func (h *handler) handleScenarioCumulative(w http.ResponseWriter, r *http.Request) {
	requestID := h.newRequestID(w)
	payload, ok := h.decodeAggregate(w, r, requestID, "server.handleScenarioCumulative")
	if !ok {
		return
	}

	series := scenario.CumulativeSeries(payload.Scenarios, payload.Component,
		scenario.YearRange{Start: payload.FromYear, End: payload.ToYear})

	h.writeJSON(w, http.StatusOK, map[string]interface{}{
		"requestId": requestID,
		"component": payload.Component,
		"series":    series,
	})
}

func (h *handler) handleScenarioBreakdown(w http.ResponseWriter, r *http.Request) {
	requestID := h.newRequestID(w)
	payload, ok := h.decodeAggregate(w, r, requestID, "server.handleScenarioBreakdown")
	if !ok {
		return
	}

	components := payload.Components
	if len(components) == 0 {
		components = scenario.Components
	}

	breakdown := scenario.PercentageBreakdown(payload.Scenarios, components, payload.Scenario)

	h.writeJSON(w, http.StatusOK, map[string]interface{}{
		"requestId": requestID,
		"scenario":  payload.Scenario,
		"breakdown": breakdown,
	})
}

func (h *handler) handleScenarioRank(w http.ResponseWriter, r *http.Request) {
	requestID := h.newRequestID(w)
	payload, ok := h.decodeAggregate(w, r, requestID, "server.handleScenarioRank")
	if !ok {
		return
	}

	order := payload.Names
	if len(order) == 0 {
		order = scenario.SortedNames(payload.Scenarios)
	}

	ranked := scenario.RankScenarios(payload.Scenarios, order, scenario.TotalCost)

	h.writeJSON(w, http.StatusOK, map[string]interface{}{
		"requestId": requestID,
		"ranked":    ranked,
	})
}

func (h *handler) newRequestID(w http.ResponseWriter) string {
	requestID := uuid.NewString()
	w.Header().Set("X-Request-Id", requestID)
	return requestID
}

func (h *handler) respondError(w http.ResponseWriter, status int, msg, op, requestID string) {
	h.logger.Error("request failed",
		zap.String("op", op),
		zap.String("requestId", requestID),
		zap.Int("status", status),
		zap.String("error", msg),
	)

	h.writeJSON(w, status, map[string]string{
		"requestId": requestID,
		"error":     msg,
	})
}

func (h *handler) writeJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		h.logger.Error("failed to write JSON response", zap.Error(err))
	}
}
