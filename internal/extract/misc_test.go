package extract

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPaymentMethod(t *testing.T) {
	tests := []struct {
		name string
		text string
		want string
	}{
		{"visa maps to credit card", "paid with visa ending 1234", "credit card"},
		{"cash", "cash tender 10.00", "cash"},
		{"apple pay maps to digital wallet", "apple pay approved", "digital wallet"},
		{"debit", "debit card sale", "debit card"},
		{"absent", "thank you come again", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := PaymentMethod(tt.text)
			assert.Equal(t, tt.want, got.Value)
			if tt.want != "" {
				assert.InDelta(t, 0.75, got.Confidence, 0.001)
			} else {
				assert.Zero(t, got.Confidence)
			}
		})
	}
}

func TestReceiptNumber(t *testing.T) {
	tests := []struct {
		name  string
		lines []string
		want  string
	}{
		{"hash anchored", []string{"Receipt #12345"}, "12345"},
		{"transaction id", []string{"Trans ID: TX-9981"}, "TX-9981"},
		{"prose after anchor is not an identifier", []string{"receipt for your records"}, ""},
		{"no anchor", []string{"Milk 4.99"}, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ReceiptNumber(tt.lines)
			assert.Equal(t, tt.want, got.Value)
		})
	}
}

func TestCurrency(t *testing.T) {
	tests := []struct {
		name         string
		text         string
		want         string
		wantStrategy string
	}{
		{"dollar symbol", "TOTAL $8.62", "USD", "currency_symbol"},
		{"euro symbol", "SUMME €12,50", "EUR", "currency_symbol"},
		{"iso code", "Total 10.00 eur", "EUR", "currency_code"},
		{"symbol wins over code", "Total $5.00 CAD", "USD", "currency_symbol"},
		{"absent", "TOTAL 8.62", "", "currency_symbol"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Currency(tt.text)
			assert.Equal(t, tt.want, got.Value)
			assert.Equal(t, tt.wantStrategy, got.Strategy)
		})
	}
}
