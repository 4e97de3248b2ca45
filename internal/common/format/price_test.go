package format

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestPrice(t *testing.T) {
	tests := []struct {
		name   string
		amount decimal.Decimal
		want   string
	}{
		{"grouped thousands", decimal.NewFromInt(1000), "1,000 ₿"},
		{"zero", decimal.Zero, "0 ₿"},
		{"small fraction", decimal.RequireFromString("0.0038"), "0.0038 ₿"},
		{"grouped with fraction", decimal.RequireFromString("1234567.5"), "1,234,567.5 ₿"},
		{"negative fraction", decimal.RequireFromString("-0.5"), "-0.5 ₿"},
		{"rounded", decimal.RequireFromString("0.123456789"), "0.12345679 ₿"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Price(tt.amount))
		})
	}
}

func TestTotal_IsExact(t *testing.T) {
	total := Total([]float64{0.0038, 0.0042})
	assert.True(t, total.Equal(decimal.RequireFromString("0.008")), total.String())
	assert.Equal(t, "0.008 ₿", Price(total))
	assert.True(t, Total(nil).IsZero())
}

func TestPriceFloat(t *testing.T) {
	assert.Equal(t, "1,000 ₿", PriceFloat(1000))
}
