// Package patterns holds the fixed regular expressions, keyword sets, and
// vocabulary tables the field extractors match against. Pure data plus
// matching helpers; no state.
package patterns

import "regexp"

// Amount and price patterns.
var (
	// Amount matches a currency value with optional symbol and thousands
	// separators, e.g. "$1,234.56" or "8.62".
	Amount = regexp.MustCompile(`[$€£¥₹]?\s*(\d{1,3}(?:,\d{3})*\.\d{2})`)

	// Price matches a bare decimal price as it appears on item lines.
	Price = regexp.MustCompile(`\d{1,5}\.\d{2}`)
)

// Date patterns, tried in order by the date strategy.
var (
	// DateNumeric matches MM/DD/YYYY and DD/MM/YYYY style dates.
	DateNumeric = regexp.MustCompile(`\b(\d{1,2})[/-](\d{1,2})[/-](\d{2,4})\b`)

	// DateISO matches YYYY-MM-DD.
	DateISO = regexp.MustCompile(`\b(\d{4})-(\d{1,2})-(\d{1,2})\b`)

	// DateTextual matches "Month DD, YYYY" with full or abbreviated month names.
	DateTextual = regexp.MustCompile(`(?i)\b(jan(?:uary)?|feb(?:ruary)?|mar(?:ch)?|apr(?:il)?|may|jun(?:e)?|jul(?:y)?|aug(?:ust)?|sep(?:tember)?|oct(?:ober)?|nov(?:ember)?|dec(?:ember)?)\.?\s+(\d{1,2}),?\s+(\d{4})\b`)
)

// Time patterns.
var (
	// Time12Hour matches "3:45 PM" style clock readings.
	Time12Hour = regexp.MustCompile(`\b(\d{1,2}):([0-5]\d)(?::[0-5]\d)?\s*([AaPp][Mm])\b`)

	// Time24Hour matches "15:45" style clock readings.
	Time24Hour = regexp.MustCompile(`\b([01]?\d|2[0-3]):([0-5]\d)(?::[0-5]\d)?\b`)
)

// Quantity marker patterns for item lines: "2x", "x3", "qty 5".
var (
	QuantityPrefix  = regexp.MustCompile(`^(\d{1,3})\s*[xX@]\s+`)
	QuantitySuffix  = regexp.MustCompile(`\b[xX](\d{1,3})\b`)
	QuantityKeyword = regexp.MustCompile(`(?i)\bqty[:.\s]*(\d{1,3})\b`)
)

// Keyword anchors for amount fields. Word boundaries keep "total" from
// matching inside "subtotal".
var (
	TotalAnchor    = regexp.MustCompile(`(?i)\b(grand\s*total|total|amount\s*due|balance\s*due|balance)\b`)
	SubtotalAnchor = regexp.MustCompile(`(?i)\bsub\s*-?\s*total\b`)
	TaxAnchor      = regexp.MustCompile(`(?i)\b(sales\s*tax|tax|vat|gst)\b`)
)

// ReceiptNumber matches anchored receipt/transaction identifiers.
var ReceiptNumber = regexp.MustCompile(`(?i)\b(?:receipt|rcpt|trans(?:action)?|invoice|order)\s*(?:no|num|number|id)?\.?\s*[:#]?\s*([A-Za-z0-9][A-Za-z0-9-]{2,19})\b`)

// MerchantKeywords suggest a line names a business.
var MerchantKeywords = []string{
	"market", "supermarket", "supercenter", "store", "shop", "mart",
	"restaurant", "cafe", "coffee", "grill", "diner", "bakery", "deli",
	"pharmacy", "station", "gas", "hotel", "inn", "bar", "pizza", "pizzeria",
	"liquor", "grocery", "foods", "wholesale", "outlet", "center", "salon",
}

// NonMerchantKeywords suggest a line is receipt boilerplate, not a name.
var NonMerchantKeywords = []string{
	"receipt", "invoice", "subtotal", "total", "tax", "change", "cash",
	"credit", "debit", "card", "date", "time", "tel", "phone", "fax",
	"cashier", "register", "thank", "welcome", "order", "customer", "www",
	"street", "ave", "avenue", "blvd", "suite",
}

// PaymentMethods maps receipt vocabulary to the canonical payment method.
var PaymentMethods = map[string]string{
	"cash":          "cash",
	"credit":        "credit card",
	"visa":          "credit card",
	"mastercard":    "credit card",
	"amex":          "credit card",
	"discover":      "credit card",
	"debit":         "debit card",
	"bank transfer": "bank transfer",
	"wire":          "bank transfer",
	"ach":           "bank transfer",
	"apple pay":     "digital wallet",
	"google pay":    "digital wallet",
	"paypal":        "digital wallet",
	"venmo":         "digital wallet",
	"wallet":        "digital wallet",
	"check":         "other",
	"gift card":     "other",
}

// CurrencySymbols maps currency symbols to ISO identifiers.
var CurrencySymbols = map[string]string{
	"$": "USD",
	"€": "EUR",
	"£": "GBP",
	"¥": "JPY",
	"₹": "INR",
}

// CurrencyCodes is the set of ISO codes recognized directly in the text.
var CurrencyCodes = []string{"USD", "EUR", "GBP", "JPY", "CAD", "AUD", "INR", "MXN", "CHF"}
