package intake

import (
	"intake-service/internal/pkg/exceptions"
	"intake-service/internal/pkg/form_dto"
	"strings"

	"github.com/goccy/go-json"
	"github.com/google/uuid"
)

const (
	defaultQuestionText       = "Untitled question"
	fallbackMaxUploadSizeInMB = 5
)

// Keyword cues for variant inference. Inference runs once, at normalization
// time, and only for items that arrive without an explicit variant tag; it is
// a best-effort classifier, not authoritative input.
var (
	sectionMarker       = "(section)"
	uploadKeywords      = []string{"upload", "image", "photo", "attach a file"}
	signatureKeywords   = []string{"signature", "sign here", "sign below"}
	multiSelectPhrases  = []string{"select all that apply", "check all that apply", "choose all that apply"}
	languagePrefPhrases = []string{"language preference", "preferred language"}
)

// NormalizeTemplate coerces a raw template document into the canonical,
// session-immutable form the rest of the engine operates on. A missing or
// non-array item list makes the whole template unusable; there is no partial
// rendering. defaultMaxUploadSizeInMB caps file-attachment items that arrive
// without their own size limit.
func NormalizeTemplate(raw *form_dto.RawTemplate, defaultMaxUploadSizeInMB int64) (*form_dto.FormTemplate, error) {
	if raw == nil || len(raw.Items) == 0 {
		return nil, exceptions.ErrMalformedTemplate(nil)
	}
	if defaultMaxUploadSizeInMB <= 0 {
		defaultMaxUploadSizeInMB = fallbackMaxUploadSizeInMB
	}

	var items []form_dto.QuestionItem
	err := json.Unmarshal(raw.Items, &items)
	if err != nil {
		return nil, exceptions.ErrMalformedTemplate(err)
	}
	if items == nil {
		return nil, exceptions.ErrMalformedTemplate(nil)
	}

	for i := range items {
		normalizeItem(&items[i], defaultMaxUploadSizeInMB)
	}

	return &form_dto.FormTemplate{
		ID:       raw.ID,
		Title:    raw.Title,
		IsActive: raw.IsActive,
		IsPublic: raw.IsPublic,
		Locale:   raw.Locale,
		Items:    items,
	}, nil
}

func normalizeItem(item *form_dto.QuestionItem, defaultMaxUploadSizeInMB int64) {
	if item.ID == "" {
		item.ID = uuid.New().String()
	}
	if item.QuestionText == "" {
		item.QuestionText = defaultQuestionText
	}
	if !isKnownVariant(item.Variant) {
		item.Variant = inferVariant(item.QuestionText)
	}
	applyVariantDefaults(item, defaultMaxUploadSizeInMB)
}

func isKnownVariant(v form_dto.Variant) bool {
	switch v {
	case form_dto.VariantSection,
		form_dto.VariantOpenAnswer,
		form_dto.VariantDemographics,
		form_dto.VariantPrimaryInsurance,
		form_dto.VariantSecondaryInsurance,
		form_dto.VariantMatrix,
		form_dto.VariantMatrixSingleAnswer,
		form_dto.VariantMultipleChoiceSingle,
		form_dto.VariantMultipleChoiceMultiple,
		form_dto.VariantFileAttachment,
		form_dto.VariantESignature,
		form_dto.VariantBodyMap,
		form_dto.VariantSmartEditor,
		form_dto.VariantDate,
		form_dto.VariantMixedControls:
		return true
	}
	return false
}

// inferVariant applies the keyword precedence: section marker, then upload,
// then signature, then multi-select, then language preference, then the
// open-answer fallback. First match wins.
func inferVariant(questionText string) form_dto.Variant {
	text := strings.ToLower(questionText)

	if strings.Contains(text, sectionMarker) {
		return form_dto.VariantSection
	}
	if containsAny(text, uploadKeywords) {
		return form_dto.VariantFileAttachment
	}
	if containsAny(text, signatureKeywords) {
		return form_dto.VariantESignature
	}
	if containsAny(text, multiSelectPhrases) {
		return form_dto.VariantMultipleChoiceMultiple
	}
	if containsAny(text, languagePrefPhrases) {
		return form_dto.VariantMultipleChoiceSingle
	}
	return form_dto.VariantOpenAnswer
}

func containsAny(text string, keywords []string) bool {
	for _, keyword := range keywords {
		if strings.Contains(text, keyword) {
			return true
		}
	}
	return false
}

// applyVariantDefaults fills variant-specific configuration that the raw
// item did not carry. Existing configuration is never overwritten.
func applyVariantDefaults(item *form_dto.QuestionItem, defaultMaxUploadSizeInMB int64) {
	switch item.Variant {
	case form_dto.VariantMultipleChoiceSingle, form_dto.VariantMultipleChoiceMultiple:
		if len(item.Options) == 0 {
			item.Options = []string{"Yes", "No"}
		}
	case form_dto.VariantFileAttachment:
		if len(item.AllowedExtensions) == 0 {
			item.AllowedExtensions = []string{".jpg", ".jpeg", ".png", ".pdf"}
		}
		if item.MaxFileSizeInMB <= 0 {
			item.MaxFileSizeInMB = defaultMaxUploadSizeInMB
		}
	case form_dto.VariantBodyMap:
		if item.BodyDiagram == "" {
			item.BodyDiagram = "fullBody"
			item.MarkingsEnabled = true
		}
	case form_dto.VariantDemographics:
		if len(item.SubFields) == 0 {
			item.SubFields = defaultDemographicSubFields()
		}
	case form_dto.VariantPrimaryInsurance, form_dto.VariantSecondaryInsurance:
		if len(item.SubFields) == 0 {
			item.SubFields = defaultInsuranceSubFields(item.Variant == form_dto.VariantPrimaryInsurance)
		}
	}
}

func defaultDemographicSubFields() []form_dto.SubField {
	return []form_dto.SubField{
		{Name: form_dto.DemographicFieldFirstName, Label: "First name", IsRequired: true},
		{Name: form_dto.DemographicFieldLastName, Label: "Last name", IsRequired: true},
		{Name: form_dto.DemographicFieldDateOfBirth, Label: "Date of birth", IsRequired: true},
		{Name: form_dto.DemographicFieldGender, Label: "Gender"},
		{Name: form_dto.DemographicFieldEmail, Label: "Email"},
		{Name: form_dto.DemographicFieldPhoneNumber, Label: "Phone number"},
		{Name: form_dto.DemographicFieldAddress, Label: "Address"},
		{Name: form_dto.DemographicFieldAssignedDoctor, Label: "Assigned doctor", IsRequired: true},
	}
}

func defaultInsuranceSubFields(isPrimary bool) []form_dto.SubField {
	return []form_dto.SubField{
		{Name: "provider", Label: "Insurance provider", IsRequired: isPrimary},
		{Name: "memberId", Label: "Member ID", IsRequired: isPrimary},
		{Name: "groupNumber", Label: "Group number"},
		{Name: "policyHolderName", Label: "Policy holder name"},
	}
}
