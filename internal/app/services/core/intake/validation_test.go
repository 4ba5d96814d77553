package intake

import (
	"intake-service/internal/pkg/form_dto"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidateItem_SkipsOptionalAndSections(t *testing.T) {
	store := NewResponseStore()

	t.Run("Nil Item", func(t *testing.T) {
		assert.Nil(t, ValidateItem(nil, store))
	})

	t.Run("Optional Item", func(t *testing.T) {
		item := &form_dto.QuestionItem{ID: "q1", Variant: form_dto.VariantOpenAnswer, IsRequired: false}
		assert.Nil(t, ValidateItem(item, store))
	})

	t.Run("Required Section", func(t *testing.T) {
		item := &form_dto.QuestionItem{ID: "s1", Variant: form_dto.VariantSection, IsRequired: true}
		assert.Nil(t, ValidateItem(item, store))
	})
}

func TestValidateItem_BareTextVariants(t *testing.T) {
	variants := []form_dto.Variant{
		form_dto.VariantOpenAnswer,
		form_dto.VariantSmartEditor,
		form_dto.VariantDate,
		form_dto.VariantESignature,
	}

	for _, variant := range variants {
		t.Run(string(variant), func(t *testing.T) {
			item := &form_dto.QuestionItem{ID: "q1", Variant: variant, QuestionText: "Q", IsRequired: true}

			store := NewResponseStore()
			violation := ValidateItem(item, store)
			assert.NotNil(t, violation)
			assert.Equal(t, "q1", violation.QuestionID)

			assert.NoError(t, store.Set("q1", form_dto.RootKey(), form_dto.Answer{Text: "answered"}))
			assert.Nil(t, ValidateItem(item, store))
		})
	}
}

func TestValidateItem_MultipleChoice(t *testing.T) {
	t.Run("Single Needs A Selection", func(t *testing.T) {
		item := &form_dto.QuestionItem{ID: "q1", Variant: form_dto.VariantMultipleChoiceSingle, QuestionText: "Q", IsRequired: true}
		store := NewResponseStore()

		assert.NotNil(t, ValidateItem(item, store))

		assert.NoError(t, store.Set("q1", form_dto.RootKey(), form_dto.Answer{Text: "Yes"}))
		assert.Nil(t, ValidateItem(item, store))
	})

	t.Run("Multiple Needs At Least One Value", func(t *testing.T) {
		item := &form_dto.QuestionItem{ID: "q1", Variant: form_dto.VariantMultipleChoiceMultiple, QuestionText: "Q", IsRequired: true}
		store := NewResponseStore()

		assert.NotNil(t, ValidateItem(item, store))

		assert.NoError(t, store.Set("q1", form_dto.RootKey(), form_dto.Answer{Values: []string{"Cough"}}))
		assert.Nil(t, ValidateItem(item, store))
	})
}

func TestValidateItem_MatrixVariantsHaveNoRule(t *testing.T) {
	// Matrix items pass even when required and empty. There is no blocking
	// rule for them; their answers are simply projected if present.
	store := NewResponseStore()

	matrix := &form_dto.QuestionItem{ID: "m1", Variant: form_dto.VariantMatrix, IsRequired: true}
	single := &form_dto.QuestionItem{ID: "m2", Variant: form_dto.VariantMatrixSingleAnswer, IsRequired: true}

	assert.Nil(t, ValidateItem(matrix, store))
	assert.Nil(t, ValidateItem(single, store))
}

func TestValidateItem_Demographics(t *testing.T) {
	item := &form_dto.QuestionItem{
		ID:           "demo",
		Variant:      form_dto.VariantDemographics,
		QuestionText: "About you",
		IsRequired:   true,
		SubFields: []form_dto.SubField{
			{Name: form_dto.DemographicFieldFirstName, Label: "First name", IsRequired: true},
			{Name: form_dto.DemographicFieldEmail, Label: "Email"},
		},
	}

	t.Run("First Missing Required Field Wins", func(t *testing.T) {
		store := NewResponseStore()
		violation := ValidateItem(item, store)
		assert.NotNil(t, violation)
		assert.Equal(t, form_dto.DemographicFieldFirstName, violation.Field)
	})

	t.Run("Assigned Doctor Mandatory Without Its Own Flag", func(t *testing.T) {
		store := NewResponseStore()
		assert.NoError(t, store.Set("demo", form_dto.FieldKey(form_dto.DemographicFieldFirstName), form_dto.Answer{Text: "Ada"}))

		violation := ValidateItem(item, store)
		assert.NotNil(t, violation)
		assert.Equal(t, form_dto.DemographicFieldAssignedDoctor, violation.Field)
		assert.Equal(t, "Please select an assigned doctor", violation.Message)
	})

	t.Run("Complete Demographics Pass", func(t *testing.T) {
		store := NewResponseStore()
		assert.NoError(t, store.Set("demo", form_dto.FieldKey(form_dto.DemographicFieldFirstName), form_dto.Answer{Text: "Ada"}))
		assert.NoError(t, store.Set("demo", form_dto.FieldKey(form_dto.DemographicFieldAssignedDoctor), form_dto.Answer{Text: "doc-9"}))
		assert.Nil(t, ValidateItem(item, store))
	})
}

func TestValidateItem_Insurance(t *testing.T) {
	item := &form_dto.QuestionItem{
		ID:         "ins",
		Variant:    form_dto.VariantPrimaryInsurance,
		IsRequired: true,
		SubFields: []form_dto.SubField{
			{Name: "provider", Label: "Insurance provider", IsRequired: true},
			{Name: "groupNumber", Label: "Group number"},
		},
	}

	store := NewResponseStore()
	violation := ValidateItem(item, store)
	assert.NotNil(t, violation)
	assert.Equal(t, "provider", violation.Field)

	assert.NoError(t, store.Set("ins", form_dto.FieldKey("provider"), form_dto.Answer{Text: "Acme Health"}))
	assert.Nil(t, ValidateItem(item, store), "optional sub-fields never block")
}

func TestValidateItem_BodyMap(t *testing.T) {
	item := &form_dto.QuestionItem{ID: "bm", Variant: form_dto.VariantBodyMap, QuestionText: "Pain areas", IsRequired: true}

	t.Run("Empty Fails", func(t *testing.T) {
		assert.NotNil(t, ValidateItem(item, NewResponseStore()))
	})

	t.Run("Markings Alone Pass", func(t *testing.T) {
		store := NewResponseStore()
		assert.NoError(t, store.Set("bm", form_dto.FieldKey(form_dto.BodyMapFieldMarkings), form_dto.Answer{
			Markings: []form_dto.BodyMarking{{X: 0.4, Y: 0.6}},
		}))
		assert.Nil(t, ValidateItem(item, store))
	})

	t.Run("Description Alone Passes", func(t *testing.T) {
		store := NewResponseStore()
		assert.NoError(t, store.Set("bm", form_dto.FieldKey(form_dto.BodyMapFieldDescription), form_dto.Answer{Text: "lower back"}))
		assert.Nil(t, ValidateItem(item, store))
	})
}

func TestValidateItem_FileAttachment(t *testing.T) {
	item := &form_dto.QuestionItem{ID: "fa", Variant: form_dto.VariantFileAttachment, QuestionText: "Card", IsRequired: true}

	store := NewResponseStore()
	assert.NotNil(t, ValidateItem(item, store))

	assert.NoError(t, store.AppendFile("fa", form_dto.FileMeta{FileName: "card.jpg", ObjectKey: "k"}))
	assert.Nil(t, ValidateItem(item, store))
}

func TestValidateItem_MixedControls(t *testing.T) {
	item := &form_dto.QuestionItem{
		ID:         "mc",
		Variant:    form_dto.VariantMixedControls,
		IsRequired: true,
		Controls: []form_dto.Control{
			{Kind: "text", Label: "Allergy name", IsRequired: true},
			{Kind: "dropdown", Label: "Severity"},
			{Kind: "text", Label: "Reaction", IsRequired: true},
		},
	}

	store := NewResponseStore()
	violation := ValidateItem(item, store)
	assert.NotNil(t, violation)
	assert.Contains(t, violation.Message, "Allergy name", "first failing control wins")

	assert.NoError(t, store.Set("mc", form_dto.ControlKey(0), form_dto.Answer{Text: "Penicillin"}))
	violation = ValidateItem(item, store)
	assert.NotNil(t, violation)
	assert.Contains(t, violation.Message, "Reaction")

	assert.NoError(t, store.Set("mc", form_dto.ControlKey(2), form_dto.Answer{Text: "Rash"}))
	assert.Nil(t, ValidateItem(item, store), "optional control never blocks")
}
