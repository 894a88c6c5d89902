package normalize

import (
	"github.com/samber/lo"
	"github.com/shopspring/decimal"

	"github.com/krissemmy/onchain-portfolio-tracker/internal/entity"
	"github.com/krissemmy/onchain-portfolio-tracker/internal/numfmt"
)

// Fallback identity literals for SVM records that carry no usable fields.
const (
	svmNativeContract = "svm-native"
	svmFallbackChain  = "svm"
)

// SvmBalance maps a raw SVM balance record into the common token shape. The
// provider's SVM records are looser than the EVM ones: identity fields are
// synthesized from whichever candidates are present, and there is no
// historical-price support, so the 24h change stays unknown with a neutral
// (absent) badge.
func SvmBalance(raw entity.SvmTokenBalance) *entity.NormalizedToken {
	contract := lo.CoalesceOrEmpty(raw.ContractAddress, raw.Mint, raw.Address)
	if contract == "" {
		contract = svmNativeContract
	}

	chainID := lo.CoalesceOrEmpty(raw.ChainID, raw.Chain)
	if chainID == "" {
		chainID = svmFallbackChain
	}

	assetType := raw.AssetType
	if assetType == "" {
		assetType = "svm"
	}

	symbol := raw.Symbol
	if symbol == "" && raw.TokenMetadata != nil {
		symbol = raw.TokenMetadata.Symbol
	}

	decimals := raw.Decimals
	if decimals == nil && raw.TokenMetadata != nil {
		decimals = raw.TokenMetadata.Decimals
	}
	amount := numfmt.ScaleAmount(raw.Amount, decimals)

	var valueUSD *float64
	if s := raw.ValueUSD.String(); s != "" {
		if d, err := decimal.NewFromString(s); err == nil {
			v := d.InexactFloat64()
			valueUSD = &v
		}
	}

	tok := &entity.NormalizedToken{
		ChainID:         chainID,
		Chain:           raw.Chain,
		ContractAddress: contract,
		AssetType:       assetType,
		Symbol:          symbol,
		Name:            raw.Name,

		AmountNumeric: amount,
		ValueUSD:      valueUSD,
		PriceUSD:      raw.PriceUSD,

		AmountFormatted:   numfmt.FormatShort(amount),
		ValueUSDFormatted: numfmt.FormatUSD(valueUSD),
		ChainLabel:        ChainLabel(lo.CoalesceOrEmpty(raw.Chain, chainID)),
	}
	if raw.TokenMetadata != nil {
		tok.LogoURL = raw.TokenMetadata.Logo
	}
	return tok
}
