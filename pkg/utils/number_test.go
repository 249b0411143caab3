package utils

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestFormatUSD(t *testing.T) {
	tests := []struct {
		name     string
		input    decimal.Decimal
		expected string
	}{
		{name: "Valor inteiro", input: decimal.NewFromInt(40), expected: "$40.00"},
		{name: "Zero", input: decimal.Zero, expected: "$0.00"},
		{name: "Uma casa decimal", input: decimal.RequireFromString("1234.5"), expected: "$1234.50"},
		{name: "Arredonda na apresentação", input: decimal.RequireFromString("10.005"), expected: "$10.01"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, FormatUSD(tt.input))
		})
	}
}

func TestFormatUSDGrouped(t *testing.T) {
	assert.Equal(t, "$0", FormatUSDGrouped(decimal.Zero, 0))
	assert.Equal(t, "$999", FormatUSDGrouped(decimal.NewFromInt(999), 0))
	assert.Equal(t, "$1,000", FormatUSDGrouped(decimal.NewFromInt(1000), 0))
	assert.Equal(t, "$12,345.50", FormatUSDGrouped(decimal.RequireFromString("12345.5"), 2))
	assert.Equal(t, "-$1,234,567", FormatUSDGrouped(decimal.NewFromInt(-1234567), 0))
}
