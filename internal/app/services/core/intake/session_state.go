package intake

import (
	"intake-service/internal/pkg/form_dto"
	"time"
)

// SessionState is everything one fill-out session owns: the immutable
// normalized template, the cursor, and the captured answers. It is created
// empty at session start, mutated by discrete user actions, and discarded on
// successful submission or abandonment.
type SessionState struct {
	SessionID string                 `json:"session_id"`
	Template  *form_dto.FormTemplate `json:"template"`
	Sequencer *Sequencer             `json:"sequencer"`
	Store     *ResponseStore         `json:"store"`

	// PatientID is set once the dependent patient record has been created,
	// so a retry after a transport failure reuses it instead of creating a
	// duplicate patient.
	PatientID string    `json:"patient_id,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

func NewSessionState(sessionID string, template *form_dto.FormTemplate, language form_dto.Language) *SessionState {
	return &SessionState{
		SessionID: sessionID,
		Template:  template,
		Sequencer: NewSequencer(template.Items, language),
		Store:     NewResponseStore(),
		CreatedAt: time.Now().UTC(),
	}
}
