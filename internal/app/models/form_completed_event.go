package models

import "time"

// FormCompletedEvent is published to the completion queue after a successful
// submission so the clinic core can notify staff.
type FormCompletedEvent struct {
	SessionID   string    `json:"session_id"`
	TemplateID  string    `json:"template_id"`
	PatientID   string    `json:"patient_id,omitempty"`
	CompletedAt time.Time `json:"completed_at"`
}
