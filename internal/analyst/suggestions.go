package analyst

import "strings"

const suggestionLimit = 4

var (
	priceKeywords      = []string{"price", "cost", "expensive", "cheap"}
	trendKeywords      = []string{"trend", "history", "historical"}
	validationKeywords = []string{"valid", "error", "warning", "issue"}

	priceSuggestions = []string{
		"Which SKUs have the highest price variance?",
		"Compare prices across distributors",
		"What's the overall price trend over the past year?",
	}
	trendSuggestions = []string{
		"Are there any seasonal pricing patterns?",
		"Which items have increased in price the most?",
		"Show price stability analysis",
	}
	validationSuggestions = []string{
		"What are the most common validation errors?",
		"Which records need immediate attention?",
		"Summarize data quality issues",
	}
	generalSuggestions = []string{
		"Is this quotation competitive compared to history?",
		"Which items should I negotiate on?",
		"Summarize pricing trends for top SKUs",
		"What's the total spend impact?",
	}
)

// Suggestions returns up to four follow-up questions keyed off the query's
// subject matter.
func Suggestions(query string) []string {
	q := strings.ToLower(query)

	var picked []string
	switch {
	case containsAny(q, priceKeywords):
		picked = priceSuggestions
	case containsAny(q, trendKeywords):
		picked = trendSuggestions
	case containsAny(q, validationKeywords):
		picked = validationSuggestions
	default:
		picked = generalSuggestions
	}

	if len(picked) > suggestionLimit {
		picked = picked[:suggestionLimit]
	}
	return picked
}

func containsAny(q string, keywords []string) bool {
	for _, kw := range keywords {
		if strings.Contains(q, kw) {
			return true
		}
	}
	return false
}
