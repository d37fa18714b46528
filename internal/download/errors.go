package download

import (
	"strings"

	"github.com/tubefetch/tubefetch/internal/model"
)

// extractionPatterns maps known engine failure substrings to error kinds.
// Matching is case-insensitive; the first match wins.
var extractionPatterns = []struct {
	kind       model.ExtractionErrorKind
	substrings []string
}{
	{model.ExtractionAgeRestricted, []string{
		"sign in to confirm your age",
		"age-restricted",
	}},
	{model.ExtractionRegionBlocked, []string{
		"available in your country",
		"geo restriction",
		"geo-restricted",
	}},
	{model.ExtractionCopyrightBlocked, []string{
		"copyright",
	}},
}

// ClassifyExtractionError maps an engine failure to a classified extraction
// error. Anything unmatched becomes Unknown, carrying the original message
// for logging.
func ClassifyExtractionError(err error) *model.ExtractionError {
	message := err.Error()
	lower := strings.ToLower(message)
	for _, pattern := range extractionPatterns {
		for _, sub := range pattern.substrings {
			if strings.Contains(lower, sub) {
				return &model.ExtractionError{Kind: pattern.kind, Message: message}
			}
		}
	}
	return &model.ExtractionError{Kind: model.ExtractionUnknown, Message: message}
}
