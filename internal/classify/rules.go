package classify

import (
	"sort"
	"strings"

	"github.com/finsight/receipt-pipeline/internal/model"
)

// Rule-stage scoring weights. A known merchant is a stronger signal than a
// free-text keyword.
const (
	merchantMatchWeight = 0.6
	keywordMatchWeight  = 0.4
	maxRuleConfidence   = 0.95
	noMatchConfidence   = 0.1
)

// merchantTable maps known merchant substrings to their category.
var merchantTable = map[string]string{
	"walmart":      model.CategoryGroceries,
	"kroger":       model.CategoryGroceries,
	"safeway":      model.CategoryGroceries,
	"aldi":         model.CategoryGroceries,
	"costco":       model.CategoryGroceries,
	"whole foods":  model.CategoryGroceries,
	"trader joe":   model.CategoryGroceries,
	"publix":       model.CategoryGroceries,
	"starbucks":    model.CategoryDining,
	"mcdonald":     model.CategoryDining,
	"chipotle":     model.CategoryDining,
	"subway":       model.CategoryDining,
	"domino":       model.CategoryDining,
	"dunkin":       model.CategoryDining,
	"uber":         model.CategoryTransport,
	"lyft":         model.CategoryTransport,
	"shell":        model.CategoryTransport,
	"chevron":      model.CategoryTransport,
	"exxon":        model.CategoryTransport,
	"amazon":       model.CategoryShopping,
	"target":       model.CategoryShopping,
	"best buy":     model.CategoryShopping,
	"ikea":         model.CategoryShopping,
	"netflix":      model.CategoryEntertainment,
	"spotify":      model.CategoryEntertainment,
	"amc":          model.CategoryEntertainment,
	"cvs":          model.CategoryHealthcare,
	"walgreens":    model.CategoryHealthcare,
	"rite aid":     model.CategoryHealthcare,
	"verizon":      model.CategoryUtilities,
	"at&t":         model.CategoryUtilities,
	"comcast":      model.CategoryUtilities,
	"hilton":       model.CategoryTravel,
	"marriott":     model.CategoryTravel,
	"airbnb":       model.CategoryTravel,
	"delta":        model.CategoryTravel,
	"united air":   model.CategoryTravel,
	"coursera":     model.CategoryEducation,
	"udemy":        model.CategoryEducation,
	"barnes noble": model.CategoryEducation,
	"supercuts":    model.CategoryPersonalCare,
	"sephora":      model.CategoryPersonalCare,
	"ulta":         model.CategoryPersonalCare,
}

// keywordTable maps each category to free-text keywords found in merchant
// names and descriptions.
var keywordTable = map[string][]string{
	model.CategoryGroceries: {
		"grocery", "groceries", "supermarket", "market", "produce", "food mart", "deli", "butcher",
	},
	model.CategoryDining: {
		"restaurant", "cafe", "coffee", "pizza", "burger", "diner", "bakery", "bar ", "grill", "takeout", "lunch", "dinner", "breakfast",
	},
	model.CategoryTransport: {
		"gas", "fuel", "taxi", "parking", "toll", "transit", "bus", "metro", "ride",
	},
	model.CategoryShopping: {
		"clothing", "apparel", "electronics", "hardware", "furniture", "department", "mall", "outlet",
	},
	model.CategoryEntertainment: {
		"cinema", "movie", "theater", "concert", "game", "streaming", "museum", "arcade",
	},
	model.CategoryHealthcare: {
		"pharmacy", "clinic", "hospital", "dental", "doctor", "medical", "optical", "prescription",
	},
	model.CategoryUtilities: {
		"electric", "water bill", "internet", "wireless", "utility", "energy", "telecom", "phone bill",
	},
	model.CategoryTravel: {
		"hotel", "airline", "flight", "motel", "resort", "rental car", "cruise", "travel",
	},
	model.CategoryEducation: {
		"tuition", "school", "university", "college", "course", "bookstore", "textbook",
	},
	model.CategoryPersonalCare: {
		"salon", "spa", "barber", "haircut", "cosmetics", "gym", "fitness",
	},
}

// ruleClassify scores the merchant name and description against the fixed
// category tables. It always produces a category: CategoryOther with a very
// low confidence when nothing matches.
func ruleClassify(merchantName, description string) (string, float64, map[string]float64) {
	text := strings.ToLower(merchantName + " " + description)
	scores := make(map[string]float64)

	for substr, category := range merchantTable {
		if strings.Contains(text, substr) {
			scores[category] += merchantMatchWeight
		}
	}
	for category, keywords := range keywordTable {
		for _, kw := range keywords {
			if strings.Contains(text, kw) {
				scores[category] += keywordMatchWeight
				break
			}
		}
	}

	if len(scores) == 0 {
		return model.CategoryOther, noMatchConfidence, map[string]float64{model.CategoryOther: noMatchConfidence}
	}

	// Deterministic winner: highest score, ties broken alphabetically.
	categories := make([]string, 0, len(scores))
	for c := range scores {
		categories = append(categories, c)
	}
	sort.Strings(categories)

	best := categories[0]
	for _, c := range categories[1:] {
		if scores[c] > scores[best] {
			best = c
		}
	}

	confidence := scores[best]
	if confidence > maxRuleConfidence {
		confidence = maxRuleConfidence
	}
	return best, confidence, scores
}

// normalizeMerchantKey produces the cache key for a merchant name.
func normalizeMerchantKey(merchantName string) string {
	key := strings.ToLower(strings.TrimSpace(merchantName))
	return strings.Join(strings.Fields(key), " ")
}
