package wallet

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClassify(t *testing.T) {
	tests := []struct {
		name    string
		address string
		want    Family
	}{
		{"evm lowercase", "0xd8da6bf26964af9d7eed9e03e53415d37aa96045", FamilyEVM},
		{"evm mixed case", "0xd8dA6BF26964aF9D7eEd9e03E53415D37aA96045", FamilyEVM},
		{"evm with whitespace", "  0xd8da6bf26964af9d7eed9e03e53415d37aa96045 ", FamilyEVM},
		{"evm missing prefix", "d8da6bf26964af9d7eed9e03e53415d37aa96045", FamilyUnknown},
		{"evm too short", "0xd8da6bf26964af9d7eed9e03e53415d37aa9604", FamilyUnknown},
		{"evm too long", "0xd8da6bf26964af9d7eed9e03e53415d37aa960450", FamilyUnknown},
		{"evm non-hex char", "0xg8da6bf26964af9d7eed9e03e53415d37aa96045", FamilyUnknown},
		{"svm wrapped sol mint", "So11111111111111111111111111111111111111112", FamilySVM},
		{"svm system program", "11111111111111111111111111111111", FamilySVM},
		{"svm token program", "TokenkegQfeZyiNwAJbNbGKPFXCWuBvf9Ss623VQ5DA", FamilySVM},
		// Bitcoin addresses fit the base58 charset but decode to 25 bytes.
		{"base58 wrong payload length", "1A1zP1eP5QGefi2DMPTfTL5SLmv7DivfNa", FamilyUnknown},
		{"base58 forbidden char zero", "0o11111111111111111111111111111111111111112", FamilyUnknown},
		{"base58 too short", "1111111111111111111111111111111", FamilyUnknown},
		{"empty", "", FamilyUnknown},
		{"garbage", "not-an-address", FamilyUnknown},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Classify(tt.address))
		})
	}
}

func TestFamilyString(t *testing.T) {
	assert.Equal(t, "evm", FamilyEVM.String())
	assert.Equal(t, "svm", FamilySVM.String())
	assert.Equal(t, "unknown", FamilyUnknown.String())
}

func TestDedupe(t *testing.T) {
	in := []string{
		"0xd8da6bf26964af9d7eed9e03e53415d37aa96045",
		"  ",
		"0xD8DA6BF26964AF9D7EED9E03E53415D37AA96045",
		"So11111111111111111111111111111111111111112",
		"",
		"0xd8da6bf26964af9d7eed9e03e53415d37aa96045",
	}

	got := Dedupe(in)

	assert.Equal(t, []string{
		"0xd8da6bf26964af9d7eed9e03e53415d37aa96045",
		"So11111111111111111111111111111111111111112",
	}, got)
}

func TestDedupeKeepsFirstCasing(t *testing.T) {
	got := Dedupe([]string{
		"0xD8DA6BF26964AF9D7EED9E03E53415D37AA96045",
		"0xd8da6bf26964af9d7eed9e03e53415d37aa96045",
	})
	assert.Equal(t, []string{"0xD8DA6BF26964AF9D7EED9E03E53415D37AA96045"}, got)
}

func TestDedupeEmpty(t *testing.T) {
	assert.Empty(t, Dedupe(nil))
	assert.Empty(t, Dedupe([]string{"", "   "}))
}
