package numfmt

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func i32(v int32) *int32     { return &v }
func f64(v float64) *float64 { return &v }

func TestScaleAmount(t *testing.T) {
	tests := []struct {
		name     string
		raw      string
		decimals *int32
		want     *float64
	}{
		{"one ether", "1000000000000000000", i32(18), f64(1.0)},
		{"usdc style", "1500000", i32(6), f64(1.5)},
		{"zero", "0", i32(18), f64(0)},
		{"no decimals", "12345", i32(0), f64(12345)},
		{"missing raw", "", i32(18), nil},
		{"missing decimals", "1000", nil, nil},
		{"negative decimals", "1000", i32(-1), nil},
		{"non numeric", "12abc", i32(6), nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ScaleAmount(tt.raw, tt.decimals)
			if tt.want == nil {
				assert.Nil(t, got)
				return
			}
			require.NotNil(t, got)
			assert.InDelta(t, *tt.want, *got, 1e-12)
		})
	}
}

// Raw amounts near uint64 overflow must not lose precision before scaling.
func TestScaleAmountLargeInteger(t *testing.T) {
	got := ScaleAmount("123456789012345678901234567890", i32(18))
	require.NotNil(t, got)
	assert.InDelta(t, 123456789012.345678901, *got, 1e-3)
}

func TestFormatUSD(t *testing.T) {
	assert.Nil(t, FormatUSD(nil))
	assert.Equal(t, "$1,234.50", *FormatUSD(f64(1234.5)))
	assert.Equal(t, "$0.00", *FormatUSD(f64(0)))
	assert.Equal(t, "$1,000,000.00", *FormatUSD(f64(1_000_000)))
	assert.Equal(t, "$-12.34", *FormatUSD(f64(-12.34)))
}

func TestFormatShort(t *testing.T) {
	tests := []struct {
		in   float64
		want string
	}{
		{1234, "1.23K"},
		{1_000_000, "1.00M"},
		{2_500_000_000, "2.50B"},
		{50, "50.00"},
		{150, "150"},
		{999_999, "1,000K"},
		{-1234, "-1.23K"},
		{0, "0.00"},
	}
	for _, tt := range tests {
		got := FormatShort(&tt.in)
		if assert.NotNil(t, got) {
			assert.Equal(t, tt.want, *got, "FormatShort(%v)", tt.in)
		}
	}
	assert.Nil(t, FormatShort(nil))
}

func TestFormatSignedUSD(t *testing.T) {
	assert.Nil(t, FormatSignedUSD(nil))
	assert.Equal(t, "+$12.00", *FormatSignedUSD(f64(12)))
	assert.Equal(t, "-$3.50", *FormatSignedUSD(f64(-3.5)))
	assert.Equal(t, "$0.00", *FormatSignedUSD(f64(0)))
	assert.Equal(t, "+$1,234.50", *FormatSignedUSD(f64(1234.5)))
}
