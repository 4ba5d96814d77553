package requests

import "intake-service/internal/pkg/form_dto"

type CreateIntakeSession struct {
	TemplateID string `json:"template_id" validate:"required"`
	Language   string `json:"language" validate:"omitempty,oneof=primary alternate"`
}

// CaptureAnswer addresses one response-store entry. The sub-key shape is
// resolved from which addressing fields are set: field name, row+col, row
// alone, control index, or none of them for a bare answer.
type CaptureAnswer struct {
	QuestionID string `json:"question_id" validate:"required"`

	Field   string `json:"field,omitempty"`
	Row     *int   `json:"row,omitempty" validate:"omitempty,min=0"`
	Col     *int   `json:"col,omitempty" validate:"omitempty,min=0"`
	Control *int   `json:"control,omitempty" validate:"omitempty,min=0"`

	Text     string                 `json:"text,omitempty"`
	Values   []string               `json:"values,omitempty"`
	Markings []form_dto.BodyMarking `json:"markings,omitempty"`
}

type ChangeLanguage struct {
	Language string `json:"language" validate:"required,oneof=primary alternate"`
}
