package model

import "fmt"

// ClassificationMethod indicates how a category was decided.
type ClassificationMethod string

// Classification method constants.
const (
	MethodRuleBased   ClassificationMethod = "rule-based"
	MethodRemoteModel ClassificationMethod = "remote-model"
	MethodHybrid      ClassificationMethod = "hybrid"
)

// Spending categories form a fixed closed set; CategoryOther is the fallback
// when nothing else scores.
const (
	CategoryGroceries     = "Groceries"
	CategoryDining        = "Dining"
	CategoryTransport     = "Transportation"
	CategoryShopping      = "Shopping"
	CategoryEntertainment = "Entertainment"
	CategoryHealthcare    = "Healthcare"
	CategoryUtilities     = "Utilities"
	CategoryTravel        = "Travel"
	CategoryEducation     = "Education"
	CategoryPersonalCare  = "Personal Care"
	CategoryOther         = "Other"
)

// Categories returns the closed set of spending categories, fallback last.
func Categories() []string {
	return []string{
		CategoryGroceries,
		CategoryDining,
		CategoryTransport,
		CategoryShopping,
		CategoryEntertainment,
		CategoryHealthcare,
		CategoryUtilities,
		CategoryTravel,
		CategoryEducation,
		CategoryPersonalCare,
		CategoryOther,
	}
}

// ValidCategory reports whether name belongs to the closed category set.
func ValidCategory(name string) bool {
	for _, c := range Categories() {
		if c == name {
			return true
		}
	}
	return false
}

// ClassificationResult is the outcome of one classification request.
// Use the constructors below; they enforce the per-method required fields.
type ClassificationResult struct {
	CandidateScores  map[string]float64
	Category         string
	Method           ClassificationMethod
	RulePrediction   string
	RemotePrediction string
	Reasoning        string
	Confidence       float64
	RuleConfidence   float64
	RemoteConfidence float64
	ProcessingTimeMs int64
}

// NewRuleBasedResult builds a result decided purely by the rule stage.
func NewRuleBasedResult(category string, confidence float64, scores map[string]float64) ClassificationResult {
	return ClassificationResult{
		Category:        category,
		Confidence:      confidence,
		Method:          MethodRuleBased,
		RulePrediction:  category,
		RuleConfidence:  confidence,
		CandidateScores: scores,
	}
}

// NewRemoteResult builds a result decided purely by the remote model.
func NewRemoteResult(category string, confidence float64, reasoning string) ClassificationResult {
	return ClassificationResult{
		Category:         category,
		Confidence:       confidence,
		Method:           MethodRemoteModel,
		RemotePrediction: category,
		RemoteConfidence: confidence,
		Reasoning:        reasoning,
	}
}

// NewHybridResult builds a consensus result. Both the rule and remote
// predictions are required; the invariant is enforced here rather than
// left to callers.
func NewHybridResult(category string, confidence float64, rulePred string, ruleConf float64, remotePred string, remoteConf float64, reasoning string, scores map[string]float64) (ClassificationResult, error) {
	if rulePred == "" || remotePred == "" {
		return ClassificationResult{}, fmt.Errorf("hybrid result requires both rule and remote predictions (rule=%q remote=%q)", rulePred, remotePred)
	}
	return ClassificationResult{
		Category:         category,
		Confidence:       confidence,
		Method:           MethodHybrid,
		RulePrediction:   rulePred,
		RuleConfidence:   ruleConf,
		RemotePrediction: remotePred,
		RemoteConfidence: remoteConf,
		Reasoning:        reasoning,
		CandidateScores:  scores,
	}, nil
}
