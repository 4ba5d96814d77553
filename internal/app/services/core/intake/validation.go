package intake

import (
	"fmt"
	"intake-service/internal/pkg/form_dto"
)

// Violation is one blocking validation failure. The engine surfaces only the
// first failing rule per item: one actionable message at a time is a
// deliberate strictness trade-off, not an oversight.
type Violation struct {
	QuestionID string `json:"question_id"`
	Field      string `json:"field,omitempty"`
	Message    string `json:"message"`
}

// ValidateItem is the pure gate applied before Next and before Submit. It
// only enforces anything when the item is required and is not a section.
func ValidateItem(item *form_dto.QuestionItem, store *ResponseStore) *Violation {
	if item == nil || !item.IsRequired || item.Variant == form_dto.VariantSection {
		return nil
	}

	switch item.Variant {
	case form_dto.VariantOpenAnswer, form_dto.VariantSmartEditor:
		return requireBareText(item, store, "Please answer: %s")
	case form_dto.VariantESignature:
		return requireBareText(item, store, "Please sign before continuing: %s")
	case form_dto.VariantDate:
		return requireBareText(item, store, "Please choose a date: %s")
	case form_dto.VariantDemographics:
		return validateDemographics(item, store)
	case form_dto.VariantPrimaryInsurance, form_dto.VariantSecondaryInsurance:
		return validateRequiredSubFields(item, store)
	case form_dto.VariantBodyMap:
		return validateBodyMap(item, store)
	case form_dto.VariantMultipleChoiceSingle:
		if answer, ok := currentStoreAnswer(item, store); !ok || answer.Text == "" {
			return &Violation{QuestionID: item.ID, Message: fmt.Sprintf("Please select an option: %s", item.QuestionText)}
		}
	case form_dto.VariantMultipleChoiceMultiple:
		if answer, ok := currentStoreAnswer(item, store); !ok || len(answer.Values) == 0 {
			return &Violation{QuestionID: item.ID, Message: fmt.Sprintf("Please select at least one option: %s", item.QuestionText)}
		}
	case form_dto.VariantFileAttachment:
		if answer, ok := currentStoreAnswer(item, store); !ok || len(answer.Files) == 0 {
			return &Violation{QuestionID: item.ID, Message: fmt.Sprintf("Please attach at least one file: %s", item.QuestionText)}
		}
	case form_dto.VariantMixedControls:
		return validateMixedControls(item, store)
	}
	return nil
}

func currentStoreAnswer(item *form_dto.QuestionItem, store *ResponseStore) (form_dto.Answer, bool) {
	return store.Get(item.ID, form_dto.RootKey())
}

func requireBareText(item *form_dto.QuestionItem, store *ResponseStore, format string) *Violation {
	answer, ok := store.Get(item.ID, form_dto.RootKey())
	if !ok || answer.Text == "" {
		return &Violation{QuestionID: item.ID, Message: fmt.Sprintf(format, item.QuestionText)}
	}
	return nil
}

func validateDemographics(item *form_dto.QuestionItem, store *ResponseStore) *Violation {
	for _, subField := range item.SubFields {
		if !subField.IsRequired {
			continue
		}
		answer, ok := store.Get(item.ID, form_dto.FieldKey(subField.Name))
		if !ok || answer.IsEmpty() {
			return &Violation{
				QuestionID: item.ID,
				Field:      subField.Name,
				Message:    fmt.Sprintf("Please fill in the required field: %s", subFieldLabel(subField)),
			}
		}
	}

	// An assigned doctor is always mandatory, whatever the sub-field's own
	// required flag says: the dependent patient record cannot be created
	// without one.
	answer, ok := store.Get(item.ID, form_dto.FieldKey(form_dto.DemographicFieldAssignedDoctor))
	if !ok || answer.IsEmpty() {
		return &Violation{
			QuestionID: item.ID,
			Field:      form_dto.DemographicFieldAssignedDoctor,
			Message:    "Please select an assigned doctor",
		}
	}
	return nil
}

func validateRequiredSubFields(item *form_dto.QuestionItem, store *ResponseStore) *Violation {
	for _, subField := range item.SubFields {
		if !subField.IsRequired {
			continue
		}
		answer, ok := store.Get(item.ID, form_dto.FieldKey(subField.Name))
		if !ok || answer.IsEmpty() {
			return &Violation{
				QuestionID: item.ID,
				Field:      subField.Name,
				Message:    fmt.Sprintf("Please fill in the required field: %s", subFieldLabel(subField)),
			}
		}
	}
	return nil
}

func validateBodyMap(item *form_dto.QuestionItem, store *ResponseStore) *Violation {
	markings, _ := store.Get(item.ID, form_dto.FieldKey(form_dto.BodyMapFieldMarkings))
	description, _ := store.Get(item.ID, form_dto.FieldKey(form_dto.BodyMapFieldDescription))
	if len(markings.Markings) == 0 && description.Text == "" {
		return &Violation{
			QuestionID: item.ID,
			Message:    fmt.Sprintf("Please mark the diagram or describe the area: %s", item.QuestionText),
		}
	}
	return nil
}

func validateMixedControls(item *form_dto.QuestionItem, store *ResponseStore) *Violation {
	for index, control := range item.Controls {
		if !control.IsRequired {
			continue
		}
		answer, ok := store.Get(item.ID, form_dto.ControlKey(index))
		if !ok || answer.IsEmpty() {
			label := control.Label
			if label == "" {
				label = item.QuestionText
			}
			return &Violation{
				QuestionID: item.ID,
				Field:      fmt.Sprintf("control %d", index),
				Message:    fmt.Sprintf("Please fill in the required field: %s", label),
			}
		}
	}
	return nil
}

func subFieldLabel(subField form_dto.SubField) string {
	if subField.Label != "" {
		return subField.Label
	}
	return subField.Name
}
