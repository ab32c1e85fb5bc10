package patterns

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAmounts(t *testing.T) {
	tests := []struct {
		name string
		line string
		want []string
	}{
		{name: "bare decimal", line: "Milk 4.99", want: []string{"4.99"}},
		{name: "dollar sign", line: "Total $8.62", want: []string{"8.62"}},
		{name: "thousands separators", line: "Total $1,234.56", want: []string{"1234.56"}},
		{name: "multiple values in order", line: "2 @ 2.79 5.58", want: []string{"2.79", "5.58"}},
		{name: "no amount", line: "Thank you", want: nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Amounts(tt.line)
			require.Len(t, got, len(tt.want))
			for i, want := range tt.want {
				assert.Equal(t, want, got[i].String())
			}
		})
	}
}

func TestLastAmount(t *testing.T) {
	amount, ok := LastAmount("SUBTOTAL 7.98 TAX 0.64")
	require.True(t, ok)
	assert.Equal(t, "0.64", amount.String())

	_, ok = LastAmount("no numbers here")
	assert.False(t, ok)
}

func TestTotalAnchorDoesNotMatchSubtotal(t *testing.T) {
	assert.True(t, TotalAnchor.MatchString("Total 8.62"))
	assert.True(t, TotalAnchor.MatchString("GRAND TOTAL 12.00"))
	assert.True(t, TotalAnchor.MatchString("Amount Due: 5.00"))
	assert.False(t, TotalAnchor.MatchString("Subtotal 7.98"))
	assert.False(t, TotalAnchor.MatchString("SUBTOTAL 7.98"))
}

func TestSubtotalAnchor(t *testing.T) {
	assert.True(t, SubtotalAnchor.MatchString("Subtotal 7.98"))
	assert.True(t, SubtotalAnchor.MatchString("SUB-TOTAL 7.98"))
	assert.True(t, SubtotalAnchor.MatchString("Sub Total 7.98"))
	assert.False(t, SubtotalAnchor.MatchString("Total 8.62"))
}

func TestTaxAnchor(t *testing.T) {
	assert.True(t, TaxAnchor.MatchString("Tax 0.64"))
	assert.True(t, TaxAnchor.MatchString("Sales Tax 1.20"))
	assert.True(t, TaxAnchor.MatchString("VAT 2.00"))
	assert.True(t, TaxAnchor.MatchString("GST 0.50"))
	assert.False(t, TaxAnchor.MatchString("Taxi fare 10.00"))
}

func TestMonthNumber(t *testing.T) {
	assert.Equal(t, 1, MonthNumber("January"))
	assert.Equal(t, 12, MonthNumber("dec"))
	assert.Equal(t, 3, MonthNumber("March"))
	assert.Equal(t, 0, MonthNumber("notamonth"))
}

func TestContainsKeyword(t *testing.T) {
	assert.True(t, ContainsKeyword("WALMART SUPERCENTER", []string{"supercenter"}))
	assert.False(t, ContainsKeyword("WALMART", []string{"restaurant"}))
}
