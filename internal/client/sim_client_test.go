package client

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

const testWallet = "0xd8da6bf26964af9d7eed9e03e53415d37aa96045"

func newTestClient(t *testing.T, handler http.HandlerFunc) BalanceActivitySource {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	return NewSimClient(server.URL, "test-key", 5*time.Second, rate.NewLimiter(rate.Inf, 1), time.Minute, zap.NewNop())
}

func TestEvmBalancesParsesResponse(t *testing.T) {
	var gotPath, gotQuery, gotKey string
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotQuery = r.URL.RawQuery
		gotKey = r.Header.Get("X-Sim-Api-Key")
		w.Write([]byte(`{"balances":[{"address":"native","amount":"1000000000000000000","chain":"ethereum","chain_id":1,"decimals":18,"symbol":"ETH","price_usd":3000,"value_usd":3000}]}`))
	})

	balances, err := c.EvmBalances(context.Background(), testWallet, true)
	require.NoError(t, err)

	assert.Equal(t, "/v1/evm/balances/"+testWallet, gotPath)
	assert.Contains(t, gotQuery, "metadata=url,logo")
	assert.Contains(t, gotQuery, "exclude_spam_tokens")
	assert.Contains(t, gotQuery, "historical_prices=1,6,24")
	assert.Equal(t, "test-key", gotKey)

	require.Len(t, balances, 1)
	assert.Equal(t, "ETH", balances[0].Symbol)
	assert.Equal(t, int64(1), balances[0].ChainID)
	require.NotNil(t, balances[0].PriceUSD)
	assert.InDelta(t, 3000, *balances[0].PriceUSD, 1e-9)
}

func TestEvmBalancesOmitsHistoricalPricesWhenDisabled(t *testing.T) {
	var gotQuery string
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.RawQuery
		w.Write([]byte(`{"balances":[]}`))
	})

	_, err := c.EvmBalances(context.Background(), testWallet, false)
	require.NoError(t, err)
	assert.NotContains(t, gotQuery, "historical_prices")
}

func TestSvmBalancesParsesResponse(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.True(t, strings.HasPrefix(r.URL.Path, "/v1/svm/balances/"))
		w.Write([]byte(`{"balances":[{"mint":"EPjFWdd5AufqSSqeM2qN1xzybapC8G4wEGGkZwyTDt1v","amount":"5000000","chain":"solana","decimals":6,"symbol":"USDC","value_usd":5}]}`))
	})

	balances, err := c.SvmBalances(context.Background(), "So11111111111111111111111111111111111111112")
	require.NoError(t, err)
	require.Len(t, balances, 1)
	assert.Equal(t, "USDC", balances[0].Symbol)
	assert.Equal(t, "EPjFWdd5AufqSSqeM2qN1xzybapC8G4wEGGkZwyTDt1v", balances[0].Mint)
}

func TestEvmActivityParsesResponse(t *testing.T) {
	var gotQuery string
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.RawQuery
		w.Write([]byte(`{"activity":[{"type":"receive","chain_id":1,"from":"0xaaa","to":"0xbbb","tx_hash":"0xdead","block_time":"2024-06-01T00:00:00Z","value":"1000000000000000000"}]}`))
	})

	events, err := c.EvmActivity(context.Background(), testWallet, 25)
	require.NoError(t, err)

	assert.Equal(t, "limit=25", gotQuery)
	require.Len(t, events, 1)
	assert.Equal(t, "receive", events[0].Type)
	require.NotNil(t, events[0].Value)
	assert.Equal(t, "1000000000000000000", *events[0].Value)
}

func TestGetCachesResponseBody(t *testing.T) {
	var calls atomic.Int64
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.Write([]byte(`{"balances":[]}`))
	})

	for i := 0; i < 3; i++ {
		_, err := c.EvmBalances(context.Background(), testWallet, true)
		require.NoError(t, err)
	}

	assert.Equal(t, int64(1), calls.Load())
}

func TestGetReturnsErrorOnUpstreamFailure(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "nope", http.StatusTooManyRequests)
	})

	_, err := c.EvmBalances(context.Background(), testWallet, true)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "429")
}

func TestErrorResponsesAreNotCached(t *testing.T) {
	var calls atomic.Int64
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if calls.Add(1) == 1 {
			http.Error(w, "boom", http.StatusInternalServerError)
			return
		}
		w.Write([]byte(`{"balances":[]}`))
	})

	_, err := c.EvmBalances(context.Background(), testWallet, true)
	require.Error(t, err)

	balances, err := c.EvmBalances(context.Background(), testWallet, true)
	require.NoError(t, err)
	assert.Empty(t, balances)
	assert.Equal(t, int64(2), calls.Load())
}
