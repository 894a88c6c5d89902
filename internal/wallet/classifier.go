package wallet

import (
	"regexp"
	"strings"

	"github.com/ethereum/go-ethereum/common"
	"github.com/mr-tron/base58"
)

// Family is the address family a wallet address belongs to.
type Family int

const (
	// FamilyUnknown is returned for addresses matching neither family.
	FamilyUnknown Family = iota
	// FamilyEVM is the 20-byte hex address family (Ethereum and friends).
	FamilyEVM
	// FamilySVM is the base58 address family (Solana-style chains).
	FamilySVM
)

func (f Family) String() string {
	switch f {
	case FamilyEVM:
		return "evm"
	case FamilySVM:
		return "svm"
	default:
		return "unknown"
	}
}

// Plausible SVM addresses before decoding: base58 alphabet, 32-44 chars.
var base58Pattern = regexp.MustCompile(`^[1-9A-HJ-NP-Za-km-z]{32,44}$`)

// Classify determines the address family of a literal address string. It never
// fails: anything that is not a well-formed EVM or SVM address comes back as
// FamilyUnknown, including base58 strings that decode to the wrong length.
func Classify(address string) Family {
	address = strings.TrimSpace(address)

	if strings.HasPrefix(address, "0x") && common.IsHexAddress(address) {
		return FamilyEVM
	}

	if base58Pattern.MatchString(address) {
		raw, err := base58.Decode(address)
		// 32 bytes for plain addresses, 64 for program-derived ones.
		if err == nil && (len(raw) == 32 || len(raw) == 64) {
			return FamilySVM
		}
	}

	return FamilyUnknown
}

// Dedupe trims the given addresses, drops blanks, and removes
// case-insensitive duplicates while preserving input order and the casing of
// the first occurrence.
func Dedupe(addresses []string) []string {
	seen := make(map[string]struct{}, len(addresses))
	out := make([]string, 0, len(addresses))
	for _, a := range addresses {
		a = strings.TrimSpace(a)
		if a == "" {
			continue
		}
		key := strings.ToLower(a)
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}
		out = append(out, a)
	}
	return out
}
