package modelapi

import (
	"context"
	"io"
	"net/http"
	"sync"
	"time"

	"github.com/tidwall/gjson"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/oceanworks/vessel-forecast/pkg/constants"
)

var emptyDocument = []byte("{}")

// Client calls the financial-modelling endpoint. Transport errors, HTTP
// error statuses, and undecodable bodies all degrade to an empty document so
// the pipeline downstream always receives well-formed input.
type Client struct {
	endpoint   string
	httpClient *http.Client
	logger     *zap.Logger
}

// NewClient constructs a modelling client. An empty endpoint is allowed and
// makes every fetch return an empty document.
func NewClient(endpoint string, timeout time.Duration, logger *zap.Logger) *Client {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Client{
		endpoint:   endpoint,
		httpClient: &http.Client{Timeout: timeout},
		logger:     logger,
	}
}

// Fetch submits the parameters as an HTTP GET and returns the raw JSON
// response document. It never returns an error: any failure yields an empty
// document, which downstream treats as "no data".
func (c *Client) Fetch(ctx context.Context, params Parameters) []byte {
	if c.endpoint == "" {
		return emptyDocument
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.endpoint+"?"+params.Values().Encode(), nil)
	if err != nil {
		c.logger.Warn("failed to build model request",
			zap.String("op", "modelapi.Fetch"),
			zap.Error(err),
		)
		return emptyDocument
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.Warn("model request failed, returning empty result",
			zap.String("op", "modelapi.Fetch"),
			zap.Error(err),
		)
		return emptyDocument
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	if resp.StatusCode != http.StatusOK {
		c.logger.Warn("model request returned non-200 status, returning empty result",
			zap.String("op", "modelapi.Fetch"),
			zap.Int("status", resp.StatusCode),
		)
		return emptyDocument
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		c.logger.Warn("failed to read model response, returning empty result",
			zap.String("op", "modelapi.Fetch"),
			zap.Error(err),
		)
		return emptyDocument
	}

	if !gjson.ValidBytes(body) {
		c.logger.Warn("model response is not valid JSON, returning empty result",
			zap.String("op", "modelapi.Fetch"),
			zap.Int("bytes", len(body)),
		)
		return emptyDocument
	}

	return body
}

// FetchScenarios runs one model call per future-fuel selection and collects
// the raw documents by fuel name. Calls run concurrently with a bounded
// limit; individual failures degrade to empty documents without affecting
// the others.
func (c *Client) FetchScenarios(ctx context.Context, params Parameters, fuels []string) map[string][]byte {
	results := make(map[string][]byte, len(fuels))
	var mu sync.Mutex

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(constants.ScenarioFetchConcurrency)

	for _, fuel := range fuels {
		fuel := fuel
		g.Go(func() error {
			scenarioParams := params.Clone()
			scenarioParams[KeyFutureMainFuelType] = fuel
			scenarioParams[KeyFutureAuxFuelType] = fuel

			doc := c.Fetch(ctx, scenarioParams)

			mu.Lock()
			results[fuel] = doc
			mu.Unlock()
			return nil
		})
	}

	// Fetch never errors, so Wait only synchronizes.
	_ = g.Wait()

	return results
}
