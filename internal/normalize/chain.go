// Package normalize maps raw provider balance and activity records into the
// common shapes the aggregator works with. All "field missing, try the next
// source" logic lives here so downstream code never sees provider variance.
package normalize

import (
	"strconv"
	"strings"
	"unicode"
)

// Chains whose native asset displays as ETH. Extending coverage is a table
// change, not a logic change.
var ethNativeChainIDs = map[int64]struct{}{
	1:    {}, // Ethereum
	8453: {}, // Base
	10:   {}, // Optimism
}

// nativeSymbol resolves the display symbol for a native asset, falling back
// to the given placeholder off the known-chains table.
func nativeSymbol(chainID int64, fallback string) string {
	if _, ok := ethNativeChainIDs[chainID]; ok {
		return "ETH"
	}
	return fallback
}

// ChainLabel derives the human chain label from the provider's chain field:
// a non-numeric string is capitalized, anything else is unknown.
func ChainLabel(chain string) string {
	if chain == "" {
		return "Unknown chain"
	}
	if _, err := strconv.Atoi(chain); err == nil {
		return "Unknown chain"
	}
	return capitalize(chain)
}

// capitalize upper-cases the first rune and lower-cases the rest, matching
// how event types and chain names are titled in the UI.
func capitalize(s string) string {
	if s == "" {
		return s
	}
	r := []rune(strings.ToLower(s))
	r[0] = unicode.ToUpper(r[0])
	return string(r)
}
