package entity

// TokenKey is the identity of a fungible holding for cross-wallet merging.
// Two normalized tokens are the same holding iff their keys are equal.
type TokenKey struct {
	ChainID         string
	ContractAddress string
	AssetType       string
	Symbol          string
}

// NormalizedToken is the common token shape produced by the per-family
// balance normalizers and consumed by the aggregator. Numeric fields are
// pointers so "unknown" survives until aggregation, where it is treated as
// zero.
type NormalizedToken struct {
	ChainID         string  `json:"chainId"`
	Chain           string  `json:"chain"`
	ContractAddress string  `json:"contractAddress"`
	AssetType       string  `json:"assetType"`
	Symbol          string  `json:"symbol"`
	Name            string  `json:"name,omitempty"`
	LogoURL         string  `json:"logoUrl,omitempty"`

	AmountNumeric *float64 `json:"amountNumeric"`
	ValueUSD      *float64 `json:"valueUSD"`
	PriceUSD      *float64 `json:"priceUSD,omitempty"`

	AmountFormatted   *string `json:"amountFormatted"`
	ValueUSDFormatted *string `json:"valueUSDFormatted"`
	ChainLabel        string  `json:"chainLabel"`

	Change1h  *float64 `json:"change1h,omitempty"`
	Change6h  *float64 `json:"change6h,omitempty"`
	Change24h *float64 `json:"change24h"`

	Change24hBadgeClass string `json:"change24hBadgeClass,omitempty"`
	Change24hBadgeLabel string `json:"change24hBadgeLabel,omitempty"`

	LowLiquidity  bool     `json:"lowLiquidity,omitempty"`
	SourceWallets []string `json:"source_wallets"`
}

// Key returns the merge identity of the token.
func (t *NormalizedToken) Key() TokenKey {
	return TokenKey{
		ChainID:         t.ChainID,
		ContractAddress: t.ContractAddress,
		AssetType:       t.AssetType,
		Symbol:          t.Symbol,
	}
}

// NormalizedActivity is one wallet event with all display fields computed.
type NormalizedActivity struct {
	Wallet    string `json:"wallet"`
	Type      string `json:"type"`
	TxHash    string `json:"txHash,omitempty"`
	BlockTime string `json:"blockTime"`

	Title      string `json:"activityTitle"`
	ColorClass string `json:"activityColorClass"`

	PartyLabel        string  `json:"partyLabel"`
	PartyAddress      string  `json:"partyAddress,omitempty"`
	PartyAddressShort *string `json:"partyAddressShort"`

	BlockTimeDisplay string  `json:"blockTimeDisplay,omitempty"`
	AmountDisplay    *string `json:"amountDisplay"`
	SymbolDisplay    *string `json:"symbolDisplay"`
	DirectionPrefix  string  `json:"directionPrefix"`
}

// PortfolioResult is the aggregator's output for one request.
type PortfolioResult struct {
	Tokens         []NormalizedToken    `json:"tokens"`
	Activities     []NormalizedActivity `json:"activities"`
	TotalValueUSD  float64              `json:"totalValueUSD"`
	TotalPnL24hUSD float64              `json:"totalPnL24hUSD"`
}
