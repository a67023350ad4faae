package vessel

import (
	"context"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/tidwall/gjson"
	"go.uber.org/zap"
)

// Query selects how a vessel is searched for. Exactly two kinds exist:
// ByIMO (IMO number, optionally with MMSI) and ByName.
type Query interface {
	values() url.Values
	cacheKey() string
}

// ByIMO searches by IMO number, optionally narrowed by MMSI.
type ByIMO struct {
	IMO  string
	MMSI string
}

func (q ByIMO) values() url.Values {
	v := url.Values{}
	v.Set("imo", q.IMO)
	if q.MMSI != "" {
		v.Set("mmsi", q.MMSI)
	}
	return v
}

func (q ByIMO) cacheKey() string { return "imo:" + q.IMO + ":" + q.MMSI }

// ByName searches by vessel name.
type ByName struct {
	Name string
}

func (q ByName) values() url.Values {
	v := url.Values{}
	v.Set("vesselname", q.Name)
	return v
}

func (q ByName) cacheKey() string { return "name:" + q.Name }

// Client looks vessels up against the vessel-detail endpoint. Lookups that
// fail for any reason resolve to the default profile so callers always get a
// usable vessel.
type Client struct {
	endpoint   string
	httpClient *http.Client
	logger     *zap.Logger
	cache      *cache
}

// NewClient constructs a lookup client. An empty endpoint is allowed and
// makes every lookup return the default profile.
func NewClient(endpoint string, timeout time.Duration, logger *zap.Logger) *Client {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Client{
		endpoint:   endpoint,
		httpClient: &http.Client{Timeout: timeout},
		logger:     logger,
		cache:      newCache(15 * time.Minute),
	}
}

// Lookup resolves a query into a vessel profile. The second return reports
// whether the upstream actually matched a vessel; false means the default
// profile was substituted.
func (c *Client) Lookup(ctx context.Context, query Query) (Profile, bool) {
	if c.endpoint == "" {
		return DefaultProfile(), false
	}

	if cached, ok := c.cache.get(query.cacheKey()); ok {
		return cached, true
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.endpoint+"?"+query.values().Encode(), nil)
	if err != nil {
		c.logger.Warn("failed to build vessel lookup request",
			zap.String("op", "vessel.Lookup"),
			zap.Error(err),
		)
		return DefaultProfile(), false
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.Warn("vessel lookup failed, using default vessel",
			zap.String("op", "vessel.Lookup"),
			zap.Error(err),
		)
		return DefaultProfile(), false
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	if resp.StatusCode != http.StatusOK {
		c.logger.Warn("vessel lookup returned non-200 status, using default vessel",
			zap.String("op", "vessel.Lookup"),
			zap.Int("status", resp.StatusCode),
		)
		return DefaultProfile(), false
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		c.logger.Warn("failed to read vessel lookup response, using default vessel",
			zap.String("op", "vessel.Lookup"),
			zap.Error(err),
		)
		return DefaultProfile(), false
	}

	profile, ok := parseLookupResponse(body)
	if !ok {
		c.logger.Warn("vessel lookup returned no vessels, using default vessel",
			zap.String("op", "vessel.Lookup"),
		)
		return DefaultProfile(), false
	}

	c.cache.set(query.cacheKey(), profile)
	return profile, true
}

// parseLookupResponse extracts the first vessel from a JSON array response,
// overlaying its fields onto the default profile. Absent fields keep their
// defaults.
func parseLookupResponse(body []byte) (Profile, bool) {
	doc := gjson.ParseBytes(body)
	if !doc.IsArray() {
		return Profile{}, false
	}
	entries := doc.Array()
	if len(entries) == 0 {
		return Profile{}, false
	}

	first := entries[0]
	profile := DefaultProfile()

	setString := func(field *string, keys ...string) {
		for _, key := range keys {
			if v := first.Get(key); v.Exists() && v.String() != "" {
				*field = v.String()
				return
			}
		}
	}
	setFloat := func(field *float64, keys ...string) {
		for _, key := range keys {
			if v := first.Get(key); v.Exists() && v.Float() != 0 {
				*field = v.Float()
				return
			}
		}
	}
	setInt := func(field *int, keys ...string) {
		for _, key := range keys {
			if v := first.Get(key); v.Exists() && v.Int() != 0 {
				*field = int(v.Int())
				return
			}
		}
	}

	setString(&profile.Name, "vesselname", "name")
	setString(&profile.IMO, "imo")
	setString(&profile.Category, "category", "vessel_type")
	setString(&profile.MainEngineType, "main_engine_type")
	setString(&profile.MainFuelType, "main_fuel_type")
	setString(&profile.AuxFuelType, "aux_fuel_type")
	setFloat(&profile.GrossTonnage, "gross_tonnage", "gt")
	setFloat(&profile.Deadweight, "deadweight", "dwt")
	setFloat(&profile.MainEnginePowerKW, "main_engine_power", "me_power_kw")
	setFloat(&profile.AuxEnginePowerKW, "aux_engine_power", "ae_power_kw")
	setInt(&profile.YearBuilt, "year_built")
	setInt(&profile.ReportingYear, "reporting_year")

	return profile, true
}
