package intake

import "intake-service/internal/pkg/form_dto"

// Sequencer is the finite-state cursor over the language-filtered item
// sequence. It owns the current position; validation gating on Next happens
// in the usecase before the cursor is asked to move.
type Sequencer struct {
	Items    []form_dto.QuestionItem `json:"items"`
	Index    int                     `json:"index"`
	Language form_dto.Language       `json:"language"`
}

func NewSequencer(items []form_dto.QuestionItem, language form_dto.Language) *Sequencer {
	if language == "" {
		language = form_dto.LanguagePrimary
	}
	return &Sequencer{
		Items:    FilterItems(items, language),
		Index:    0,
		Language: language,
	}
}

func (s *Sequencer) StepCount() int {
	return len(s.Items)
}

func (s *Sequencer) IsEmpty() bool {
	return len(s.Items) == 0
}

// Current returns the item under the cursor, or nil for an empty sequence.
func (s *Sequencer) Current() *form_dto.QuestionItem {
	if s.IsEmpty() || s.Index < 0 || s.Index >= len(s.Items) {
		return nil
	}
	return &s.Items[s.Index]
}

// IsTerminal reports whether the cursor sits on the last step, where the
// forward action is submit rather than next.
func (s *Sequencer) IsTerminal() bool {
	return !s.IsEmpty() && s.Index == len(s.Items)-1
}

func (s *Sequencer) CanGoBack() bool {
	return s.Index > 0
}

// Next advances the cursor. On the terminal step it is a no-op and reports
// false; the terminal item's affirmative action is Submit.
func (s *Sequencer) Next() bool {
	if s.IsEmpty() || s.IsTerminal() {
		return false
	}
	s.Index++
	return true
}

// Previous steps back. It is never blocked by validation.
func (s *Sequencer) Previous() bool {
	if !s.CanGoBack() {
		return false
	}
	s.Index--
	return true
}

// SetLanguage recomputes the filtered sequence from the unfiltered template
// items and resets the cursor to the first step.
func (s *Sequencer) SetLanguage(templateItems []form_dto.QuestionItem, language form_dto.Language) {
	s.Language = language
	s.Items = FilterItems(templateItems, language)
	s.Index = 0
}
