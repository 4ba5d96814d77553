package responses

import "intake-service/internal/pkg/form_dto"

// IntakeSessionState is the wizard view the client renders after every
// discrete action: the single current item plus progress bookkeeping.
type IntakeSessionState struct {
	SessionID   string                 `json:"session_id"`
	TemplateID  string                 `json:"template_id"`
	Language    form_dto.Language      `json:"language"`
	StepIndex   int                    `json:"step_index"`
	StepCount   int                    `json:"step_count"`
	IsTerminal  bool                   `json:"is_terminal"`
	CanGoBack   bool                   `json:"can_go_back"`
	CurrentItem *form_dto.QuestionItem `json:"current_item,omitempty"`
}

type SubmitIntakeSession struct {
	PatientID     string `json:"patient_id,omitempty"`
	ResponseCount int    `json:"response_count"`
	CompletedAt   string `json:"completed_at"`
}

type UploadAttachment struct {
	QuestionID string            `json:"question_id"`
	File       form_dto.FileMeta `json:"file"`
}
