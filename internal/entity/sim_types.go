package entity

import "encoding/json"

// EvmBalancesResponse is the envelope returned by the Sim EVM balances endpoint.
type EvmBalancesResponse struct {
	Balances   []EvmTokenBalance `json:"balances"`
	NextOffset string            `json:"next_offset,omitempty"`
}

// SvmBalancesResponse is the envelope returned by the Sim SVM balances endpoint.
type SvmBalancesResponse struct {
	Balances []SvmTokenBalance `json:"balances"`
}

// ActivityResponse is the envelope returned by the Sim EVM activity endpoint.
type ActivityResponse struct {
	Activity []ActivityEvent `json:"activity"`
}

// EvmTokenBalance is one raw balance record from the Sim EVM balances endpoint.
// Numeric fields the provider sends inconsistently (amounts as integer strings,
// USD values as JSON numbers) are kept in their wire shape; the normalizer owns
// all parsing and fallback logic.
type EvmTokenBalance struct {
	Address          string            `json:"address"` // contract address, or "native"
	Amount           string            `json:"amount"`  // raw integer string, pre-decimals
	Chain            string            `json:"chain"`
	ChainID          int64             `json:"chain_id"`
	Decimals         *int32            `json:"decimals"`
	Symbol           string            `json:"symbol"`
	Name             string            `json:"name"`
	AssetType        string            `json:"asset_type"`
	PriceUSD         *float64          `json:"price_usd"`
	ValueUSD         json.Number       `json:"value_usd"`
	LowLiquidity     bool              `json:"low_liquidity"`
	HistoricalPrices []HistoricalPrice `json:"historical_prices"`
	TokenMetadata    *TokenMetadata    `json:"token_metadata"`
}

// SvmTokenBalance is one raw balance record from the Sim SVM balances endpoint.
// The provider is inconsistent about which identity fields are present, so all
// candidates are modeled; the normalizer picks the first non-empty one.
type SvmTokenBalance struct {
	ContractAddress string         `json:"contract_address"`
	Mint            string         `json:"mint"`
	Address         string         `json:"address"`
	Amount          string         `json:"amount"`
	Chain           string         `json:"chain"`
	ChainID         string         `json:"chain_id"`
	Decimals        *int32         `json:"decimals"`
	Symbol          string         `json:"symbol"`
	Name            string         `json:"name"`
	AssetType       string         `json:"asset_type"`
	PriceUSD        *float64       `json:"price_usd"`
	ValueUSD        json.Number    `json:"value_usd"`
	TokenMetadata   *TokenMetadata `json:"token_metadata"`
}

// HistoricalPrice is one point of the per-token price history series.
type HistoricalPrice struct {
	OffsetHours int     `json:"offset_hours"`
	PriceUSD    float64 `json:"price_usd"`
}

// TokenMetadata is the nested metadata object some records carry. Fields here
// back up the equivalent top-level fields when those are missing.
type TokenMetadata struct {
	Symbol           string            `json:"symbol"`
	Decimals         *int32            `json:"decimals"`
	PriceUSD         *float64          `json:"price_usd"`
	HistoricalPrices []HistoricalPrice `json:"historical_prices"`
	URL              string            `json:"url,omitempty"`
	Logo             string            `json:"logo,omitempty"`
}

// ActivityEvent is one raw transaction/call record from the Sim activity
// endpoint.
type ActivityEvent struct {
	Type          string         `json:"type"` // send, receive, call, ...
	ChainID       int64          `json:"chain_id"`
	AssetType     string         `json:"asset_type"`
	From          string         `json:"from"`
	To            string         `json:"to"`
	TxHash        string         `json:"tx_hash"`
	BlockNumber   int64          `json:"block_number"`
	BlockTime     string         `json:"block_time"` // ISO-8601
	Value         *string        `json:"value"`      // raw integer string, pre-decimals
	Function      *FunctionInfo  `json:"function"`
	TokenMetadata *TokenMetadata `json:"token_metadata"`
}

// FunctionInfo describes the decoded function of a contract call, when the
// provider could decode it.
type FunctionInfo struct {
	Name string `json:"name"`
}
