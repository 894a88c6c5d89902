package normalize

import (
	"strconv"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/krissemmy/onchain-portfolio-tracker/internal/entity"
	"github.com/krissemmy/onchain-portfolio-tracker/internal/numfmt"
	"github.com/krissemmy/onchain-portfolio-tracker/internal/price"
)

// Known spam token surfaced by the provider despite its spam filter.
const spamSymbolRTFKT = "RTFKT"

// EvmBalance maps a raw EVM balance record into the common token shape.
// Returns nil when the record is dropped by the spam filter; the filter is a
// final exclusion, applied after all fields are computed.
func EvmBalance(raw entity.EvmTokenBalance) *entity.NormalizedToken {
	amount := numfmt.ScaleAmount(raw.Amount, raw.Decimals)

	var valueUSD *float64
	if s := raw.ValueUSD.String(); s != "" {
		if d, err := decimal.NewFromString(s); err == nil {
			v := d.InexactFloat64()
			valueUSD = &v
		}
	}

	// Current price and history each fall back to the nested metadata.
	current := raw.PriceUSD
	if current == nil && raw.TokenMetadata != nil {
		current = raw.TokenMetadata.PriceUSD
	}
	history := raw.HistoricalPrices
	if len(history) == 0 && raw.TokenMetadata != nil {
		history = raw.TokenMetadata.HistoricalPrices
	}

	change1h := price.Change1h(current, history)
	change6h := price.Change6h(current, history)
	change24h := price.Change24h(current, history)

	symbol := raw.Symbol
	if symbol == "" && raw.TokenMetadata != nil {
		symbol = raw.TokenMetadata.Symbol
	}

	assetType := raw.AssetType
	if assetType == "" {
		if strings.EqualFold(raw.Address, "native") {
			assetType = "native"
		} else {
			assetType = "erc20"
		}
	}

	tok := &entity.NormalizedToken{
		ChainID:         strconv.FormatInt(raw.ChainID, 10),
		Chain:           raw.Chain,
		ContractAddress: raw.Address,
		AssetType:       assetType,
		Symbol:          symbol,
		Name:            raw.Name,

		AmountNumeric: amount,
		ValueUSD:      valueUSD,
		PriceUSD:      current,

		AmountFormatted:   numfmt.FormatShort(amount),
		ValueUSDFormatted: numfmt.FormatUSD(valueUSD),
		ChainLabel:        ChainLabel(raw.Chain),

		Change1h:  change1h,
		Change6h:  change6h,
		Change24h: change24h,

		LowLiquidity: raw.LowLiquidity,
	}
	if raw.TokenMetadata != nil {
		tok.LogoURL = raw.TokenMetadata.Logo
	}

	// The badge is suppressed for low-liquidity tokens even when a numeric
	// change exists.
	if change24h != nil && !raw.LowLiquidity {
		if *change24h >= 0 {
			tok.Change24hBadgeClass = "badge-up"
		} else {
			tok.Change24hBadgeClass = "badge-down"
		}
		tok.Change24hBadgeLabel = price.FormatSignedPercent(change24h)
	}

	if raw.Symbol == spamSymbolRTFKT {
		return nil
	}
	return tok
}
