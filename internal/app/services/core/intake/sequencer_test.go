package intake

import (
	"intake-service/internal/pkg/form_dto"
	"testing"

	"github.com/stretchr/testify/assert"
)

func threeStepItems() []form_dto.QuestionItem {
	return []form_dto.QuestionItem{
		{ID: "q1", Variant: form_dto.VariantOpenAnswer, QuestionText: "One"},
		{ID: "q2", Variant: form_dto.VariantOpenAnswer, QuestionText: "Two"},
		{ID: "q3", Variant: form_dto.VariantOpenAnswer, QuestionText: "Three"},
	}
}

func TestSequencer_InitialState(t *testing.T) {
	seq := NewSequencer(threeStepItems(), form_dto.LanguagePrimary)

	assert.Equal(t, 3, seq.StepCount())
	assert.Equal(t, 0, seq.Index)
	assert.Equal(t, "q1", seq.Current().ID)
	assert.False(t, seq.IsTerminal())
	assert.False(t, seq.CanGoBack())
}

func TestSequencer_DefaultsToPrimaryLanguage(t *testing.T) {
	seq := NewSequencer(threeStepItems(), "")
	assert.Equal(t, form_dto.LanguagePrimary, seq.Language)
}

func TestSequencer_NextAndPrevious(t *testing.T) {
	seq := NewSequencer(threeStepItems(), form_dto.LanguagePrimary)

	assert.True(t, seq.Next())
	assert.Equal(t, "q2", seq.Current().ID)
	assert.True(t, seq.CanGoBack())

	assert.True(t, seq.Next())
	assert.Equal(t, "q3", seq.Current().ID)
	assert.True(t, seq.IsTerminal())

	// Forward motion stops on the terminal step.
	assert.False(t, seq.Next())
	assert.Equal(t, 2, seq.Index)

	assert.True(t, seq.Previous())
	assert.Equal(t, "q2", seq.Current().ID)
	assert.True(t, seq.Previous())
	assert.Equal(t, "q1", seq.Current().ID)
	assert.False(t, seq.Previous())
	assert.Equal(t, 0, seq.Index)
}

func TestSequencer_EmptySequence(t *testing.T) {
	seq := NewSequencer(nil, form_dto.LanguagePrimary)

	assert.True(t, seq.IsEmpty())
	assert.Nil(t, seq.Current())
	assert.False(t, seq.IsTerminal())
	assert.False(t, seq.Next())
	assert.False(t, seq.Previous())
}

func TestSequencer_SetLanguageResetsCursor(t *testing.T) {
	items := []form_dto.QuestionItem{
		{ID: "q1", Variant: form_dto.VariantOpenAnswer, QuestionText: "One"},
		{ID: "q1-es", Variant: form_dto.VariantOpenAnswer, QuestionText: "Uno (Spanish)"},
		{ID: "q2", Variant: form_dto.VariantOpenAnswer, QuestionText: "Two"},
	}

	seq := NewSequencer(items, form_dto.LanguagePrimary)
	assert.True(t, seq.Next())
	assert.Equal(t, 1, seq.Index)

	seq.SetLanguage(items, form_dto.LanguageAlternate)

	assert.Equal(t, form_dto.LanguageAlternate, seq.Language)
	assert.Equal(t, 0, seq.Index, "language change restarts the wizard")
	assert.Equal(t, 1, seq.StepCount())
	assert.Equal(t, "q1-es", seq.Current().ID)
}

func TestSequencer_SingleStepIsTerminal(t *testing.T) {
	seq := NewSequencer([]form_dto.QuestionItem{
		{ID: "only", Variant: form_dto.VariantOpenAnswer, QuestionText: "Only"},
	}, form_dto.LanguagePrimary)

	assert.True(t, seq.IsTerminal())
	assert.False(t, seq.CanGoBack())
	assert.False(t, seq.Next())
}
