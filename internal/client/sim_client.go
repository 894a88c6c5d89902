// Package client implements the Sim API data source: per-wallet balance and
// activity lookups for the EVM and SVM address families.
package client

import (
	"context"
	"fmt"
	"strings"
	"time"

	jsoniter "github.com/json-iterator/go"
	gocache "github.com/patrickmn/go-cache"
	"github.com/valyala/fasthttp"
	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"github.com/krissemmy/onchain-portfolio-tracker/internal/entity"
	"github.com/krissemmy/onchain-portfolio-tracker/internal/metrics"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

const apiKeyHeader = "X-Sim-Api-Key"

// BalanceActivitySource is the data source contract the aggregator consumes.
// Implementations return an error for any non-success outcome; the caller
// decides how failures degrade.
type BalanceActivitySource interface {
	EvmBalances(ctx context.Context, address string, includeHistorical bool) ([]entity.EvmTokenBalance, error)
	SvmBalances(ctx context.Context, address string) ([]entity.SvmTokenBalance, error)
	EvmActivity(ctx context.Context, address string, limit int) ([]entity.ActivityEvent, error)
}

// simClientImpl talks to the Sim API over fasthttp. Responses are cached for
// a short TTL so a multi-wallet page reload does not re-hit the upstream, and
// all calls share one rate limiter.
type simClientImpl struct {
	client  *fasthttp.Client
	baseURL string
	apiKey  string
	timeout time.Duration
	limiter *rate.Limiter
	cache   *gocache.Cache
	logger  *zap.Logger
}

// NewSimClient creates a Sim API client. The API key is injected here rather
// than read from the environment so the client stays testable with fakes.
func NewSimClient(baseURL, apiKey string, timeout time.Duration, limiter *rate.Limiter, cacheTTL time.Duration, logger *zap.Logger) BalanceActivitySource {
	return &simClientImpl{
		client:  &fasthttp.Client{},
		baseURL: strings.TrimRight(baseURL, "/"),
		apiKey:  apiKey,
		timeout: timeout,
		limiter: limiter,
		cache:   gocache.New(cacheTTL, 2*cacheTTL),
		logger:  logger.Named("SimClient"),
	}
}

// EvmBalances fetches token balances for one EVM wallet. includeHistorical
// additionally requests the 1/6/24h price series used for change badges.
func (c *simClientImpl) EvmBalances(ctx context.Context, address string, includeHistorical bool) ([]entity.EvmTokenBalance, error) {
	queryParts := []string{"metadata=url,logo", "exclude_spam_tokens"}
	if includeHistorical {
		queryParts = append(queryParts, "historical_prices=1,6,24")
	}
	requestURL := fmt.Sprintf("%s/v1/evm/balances/%s?%s", c.baseURL, address, strings.Join(queryParts, "&"))

	body, err := c.get(ctx, "evm_balances", requestURL)
	if err != nil {
		return nil, err
	}

	var resp entity.EvmBalancesResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		c.logger.Error("Failed to unmarshal EVM balances response",
			zap.String("address", address),
			zap.Error(err))
		return nil, fmt.Errorf("failed to unmarshal EVM balances response: %w", err)
	}
	return resp.Balances, nil
}

// SvmBalances fetches token balances for one SVM wallet.
func (c *simClientImpl) SvmBalances(ctx context.Context, address string) ([]entity.SvmTokenBalance, error) {
	requestURL := fmt.Sprintf("%s/v1/svm/balances/%s", c.baseURL, address)

	body, err := c.get(ctx, "svm_balances", requestURL)
	if err != nil {
		return nil, err
	}

	var resp entity.SvmBalancesResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		c.logger.Error("Failed to unmarshal SVM balances response",
			zap.String("address", address),
			zap.Error(err))
		return nil, fmt.Errorf("failed to unmarshal SVM balances response: %w", err)
	}
	return resp.Balances, nil
}

// EvmActivity fetches the most recent transaction events for one EVM wallet.
func (c *simClientImpl) EvmActivity(ctx context.Context, address string, limit int) ([]entity.ActivityEvent, error) {
	requestURL := fmt.Sprintf("%s/v1/evm/activity/%s?limit=%d", c.baseURL, address, limit)

	body, err := c.get(ctx, "evm_activity", requestURL)
	if err != nil {
		return nil, err
	}

	var resp entity.ActivityResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		c.logger.Error("Failed to unmarshal activity response",
			zap.String("address", address),
			zap.Error(err))
		return nil, fmt.Errorf("failed to unmarshal activity response: %w", err)
	}
	return resp.Activity, nil
}

// get performs one authenticated GET against the Sim API, honoring the
// context deadline when set and the client default timeout otherwise. The
// raw body is cached by URL.
func (c *simClientImpl) get(ctx context.Context, endpoint, requestURL string) ([]byte, error) {
	if cached, ok := c.cache.Get(requestURL); ok {
		metrics.UpstreamCacheHitsTotal.WithLabelValues(endpoint).Inc()
		return cached.([]byte), nil
	}

	if c.limiter != nil {
		if err := c.limiter.Wait(ctx); err != nil {
			return nil, fmt.Errorf("rate limiter wait: %w", err)
		}
	}

	metrics.UpstreamRequestsTotal.WithLabelValues(endpoint).Inc()
	c.logger.Debug("Requesting Sim API", zap.String("endpoint", endpoint), zap.String("url", requestURL))

	req := fasthttp.AcquireRequest()
	defer fasthttp.ReleaseRequest(req)
	req.SetRequestURI(requestURL)
	req.Header.SetMethod(fasthttp.MethodGet)
	req.Header.SetContentType("application/json")
	req.Header.Set(apiKeyHeader, c.apiKey)

	resp := fasthttp.AcquireResponse()
	defer fasthttp.ReleaseResponse(resp)

	var err error
	if deadline, ok := ctx.Deadline(); ok {
		err = c.client.DoDeadline(req, resp, deadline)
	} else {
		err = c.client.DoTimeout(req, resp, c.timeout)
	}
	if err != nil {
		metrics.UpstreamFailuresTotal.WithLabelValues(endpoint).Inc()
		c.logger.Error("Sim API request failed", zap.String("url", requestURL), zap.Error(err))
		return nil, fmt.Errorf("failed to execute request to %s: %w", requestURL, err)
	}

	if resp.StatusCode() != fasthttp.StatusOK {
		metrics.UpstreamFailuresTotal.WithLabelValues(endpoint).Inc()
		c.logger.Error("Sim API returned non-OK status",
			zap.String("url", requestURL),
			zap.Int("statusCode", resp.StatusCode()),
			zap.ByteString("responseBody", resp.Body()))
		return nil, fmt.Errorf("Sim API request to %s failed with status %d", requestURL, resp.StatusCode())
	}

	// resp.Body() is invalidated on release; keep a copy.
	body := append([]byte(nil), resp.Body()...)
	c.cache.SetDefault(requestURL, body)
	return body, nil
}
