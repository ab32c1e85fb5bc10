package extract

import (
	"strings"

	"github.com/finsight/receipt-pipeline/internal/patterns"
)

// paymentVocabOrder fixes the lookup order so multi-word entries like
// "apple pay" win over their generic substrings.
var paymentVocabOrder = []string{
	"apple pay", "google pay", "paypal", "venmo", "wallet",
	"bank transfer", "wire", "ach",
	"mastercard", "visa", "amex", "discover",
	"debit", "credit", "gift card", "check", "cash",
}

// PaymentMethod looks the lowercase text up against the fixed payment
// vocabulary.
func PaymentMethod(lowerText string) StringResult {
	for _, kw := range paymentVocabOrder {
		if strings.Contains(lowerText, kw) {
			return StringResult{
				Value:      patterns.PaymentMethods[kw],
				Strategy:   "payment_vocabulary",
				Confidence: 0.75,
			}
		}
	}
	return StringResult{Strategy: "payment_vocabulary"}
}

// ReceiptNumber finds a keyword-anchored receipt or transaction identifier.
func ReceiptNumber(lines []string) StringResult {
	for _, line := range lines {
		m := patterns.ReceiptNumber.FindStringSubmatch(line)
		if m == nil {
			continue
		}
		candidate := m[1]
		// Anchor words followed by prose ("receipt for your records") are
		// not identifiers; require at least one digit.
		if !strings.ContainsAny(candidate, "0123456789") {
			continue
		}
		return StringResult{Value: candidate, Strategy: "receipt_number_anchor", Confidence: 0.7}
	}
	return StringResult{Strategy: "receipt_number_anchor"}
}

// currencySymbolOrder fixes lookup order so repeated parses of the same
// text resolve identically even when multiple symbols appear.
var currencySymbolOrder = []string{"$", "€", "£", "¥", "₹"}

// Currency resolves the currency from a symbol or an ISO code in the text.
func Currency(rawText string) StringResult {
	for _, symbol := range currencySymbolOrder {
		if strings.Contains(rawText, symbol) {
			return StringResult{Value: patterns.CurrencySymbols[symbol], Strategy: "currency_symbol", Confidence: 0.9}
		}
	}
	upper := strings.ToUpper(rawText)
	for _, code := range patterns.CurrencyCodes {
		if strings.Contains(upper, code) {
			return StringResult{Value: code, Strategy: "currency_code", Confidence: 0.8}
		}
	}
	return StringResult{Strategy: "currency_symbol"}
}
