package intake

import (
	"intake-service/internal/pkg/form_dto"
	"strings"
)

// Alternate-language items are flagged by a marker inside their question
// text. The clinic authors templates with both language renditions inline;
// the filter derives the active sequence from the marker set.
var alternateLanguageMarkers = []string{"(spanish)", "(español)", "(espanol)"}

func containsAlternateMarker(questionText string) bool {
	text := strings.ToLower(questionText)
	for _, marker := range alternateLanguageMarkers {
		if strings.Contains(text, marker) {
			return true
		}
	}
	return false
}

// isLanguageSelector reports whether the item is the one question that lets
// the respondent pick the form language. It survives every filter pass.
func isLanguageSelector(item *form_dto.QuestionItem) bool {
	text := strings.ToLower(item.QuestionText)
	for _, phrase := range languagePrefPhrases {
		if strings.Contains(text, phrase) {
			return true
		}
	}
	return false
}

// FilterItems derives the active question sequence for the selected
// language. Section items and the language selector always survive; every
// other item is kept or dropped by its alternate-language marker. A single
// stable pass then moves demographics items to the front, preserving
// relative order otherwise. The function is pure and idempotent.
func FilterItems(items []form_dto.QuestionItem, language form_dto.Language) []form_dto.QuestionItem {
	filtered := make([]form_dto.QuestionItem, 0, len(items))
	for i := range items {
		item := items[i]
		if item.Variant == form_dto.VariantSection || isLanguageSelector(&item) {
			filtered = append(filtered, item)
			continue
		}

		marked := containsAlternateMarker(item.QuestionText)
		if language == form_dto.LanguageAlternate && !marked {
			continue
		}
		if language != form_dto.LanguageAlternate && marked {
			continue
		}
		filtered = append(filtered, item)
	}

	demographics := make([]form_dto.QuestionItem, 0, 1)
	others := make([]form_dto.QuestionItem, 0, len(filtered))
	for i := range filtered {
		if filtered[i].Variant == form_dto.VariantDemographics {
			demographics = append(demographics, filtered[i])
		} else {
			others = append(others, filtered[i])
		}
	}

	return append(demographics, others...)
}
