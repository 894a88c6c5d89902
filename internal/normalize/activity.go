package normalize

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/krissemmy/onchain-portfolio-tracker/internal/entity"
	"github.com/krissemmy/onchain-portfolio-tracker/internal/numfmt"
)

const unknownParty = "Unknown"

// Display thresholds for activity amounts. Carried over as-is from the
// original UI rather than derived.
const (
	smallAmountFloor   = 0.0001
	largeAmountCeiling = 1e12
	maxAmountDisplay   = 12
)

// Activity maps a raw transaction event into a display-ready activity record
// tagged with its originating wallet.
func Activity(wallet string, raw entity.ActivityEvent) entity.NormalizedActivity {
	act := entity.NormalizedActivity{
		Wallet:    wallet,
		Type:      raw.Type,
		TxHash:    raw.TxHash,
		BlockTime: raw.BlockTime,
	}

	act.Title, act.ColorClass = titleAndColor(raw)
	act.PartyLabel, act.PartyAddress = party(raw)
	if act.PartyAddress != "" && act.PartyAddress != unknownParty {
		short := shortAddress(act.PartyAddress)
		act.PartyAddressShort = &short
	}
	act.BlockTimeDisplay = blockTimeDisplay(raw.BlockTime)

	if raw.Value != nil {
		decimals := activityDecimals(raw.TokenMetadata)
		if scaled := numfmt.ScaleAmount(*raw.Value, &decimals); scaled != nil {
			display := amountDisplay(*scaled)
			act.AmountDisplay = &display

			symbol := amountSymbol(raw)
			act.SymbolDisplay = &symbol

			switch raw.Type {
			case "receive":
				act.DirectionPrefix = "+"
			case "send":
				act.DirectionPrefix = "-"
			}
		}
	}

	return act
}

func titleAndColor(raw entity.ActivityEvent) (title, color string) {
	t := raw.Type
	title = capitalize(t)
	color = t

	switch {
	case t == "call" && raw.Function != nil && raw.Function.Name != "":
		title = "Call: " + raw.Function.Name
		color = "call"
	case t == "receive" || t == "send":
		symbol := ""
		if raw.TokenMetadata != nil {
			symbol = raw.TokenMetadata.Symbol
		}
		if symbol == "" {
			if raw.AssetType == "native" {
				symbol = nativeSymbol(raw.ChainID, "Native")
			} else {
				symbol = "Token"
			}
		}
		if t == "receive" {
			title = "Received " + symbol
		} else {
			title = "Sent " + symbol
		}
	}
	return title, color
}

func party(raw entity.ActivityEvent) (label, address string) {
	switch raw.Type {
	case "receive":
		return "From", raw.From
	case "send":
		return "To", raw.To
	case "call":
		return "Contract", raw.To
	default:
		address = raw.To
		if address == "" {
			address = raw.From
		}
		if address == "" {
			address = unknownParty
		}
		return "With", address
	}
}

// shortAddress renders "0x1234...abcd". Addresses shorter than the window
// keep whatever characters they have.
func shortAddress(addr string) string {
	head := addr
	if len(head) > 6 {
		head = head[:6]
	}
	tail := addr
	if len(tail) > 4 {
		tail = tail[len(tail)-4:]
	}
	return head + "..." + tail
}

// blockTimeDisplay formats an ISO-8601 timestamp as YYYY-MM-DD, passing the
// raw string through on parse failure.
func blockTimeDisplay(blockTime string) string {
	if blockTime == "" {
		return ""
	}
	for _, layout := range []string{time.RFC3339, "2006-01-02T15:04:05"} {
		if ts, err := time.Parse(layout, blockTime); err == nil {
			return ts.Format("2006-01-02")
		}
	}
	return blockTime
}

func activityDecimals(md *entity.TokenMetadata) int32 {
	if md != nil && md.Decimals != nil {
		return *md.Decimals
	}
	return 18 // native-asset default
}

func amountDisplay(scaled float64) string {
	abs := math.Abs(scaled)

	var display string
	if abs > 0 && abs < smallAmountFloor {
		display = "<0.0001"
	} else {
		display = strconv.FormatFloat(scaled, 'f', 6, 64)
		display = strings.TrimRight(display, "0")
		display = strings.TrimRight(display, ".")
	}

	// Extreme magnitudes fall back to scientific notation.
	if abs > largeAmountCeiling || len(display) > maxAmountDisplay {
		display = fmt.Sprintf("%.2e", scaled)
	}
	return display
}

func amountSymbol(raw entity.ActivityEvent) string {
	symbol := ""
	if raw.TokenMetadata != nil {
		symbol = raw.TokenMetadata.Symbol
	}
	if symbol == "" {
		if raw.AssetType == "native" {
			symbol = nativeSymbol(raw.ChainID, "NTV")
		} else {
			symbol = "Tokens"
		}
	}

	symbol = strings.ReplaceAll(symbol, "$", "")
	for _, sep := range []string{" ", "-", "["} {
		symbol, _, _ = strings.Cut(symbol, sep)
	}
	if r := []rune(symbol); len(r) > 8 {
		symbol = string(r[:8])
	}
	return symbol
}
