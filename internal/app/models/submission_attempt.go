package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// SubmissionAttempt is one audit document per submit action. Because patient
// creation and form-response persistence are a two-phase write with no
// compensation, this log is how orphaned patient records stay discoverable.
type SubmissionAttempt struct {
	ID            primitive.ObjectID `bson:"_id,omitempty" json:"id,omitempty"`
	SessionID     string             `bson:"session_id" json:"session_id"`
	TemplateID    string             `bson:"template_id" json:"template_id"`
	PatientID     string             `bson:"patient_id,omitempty" json:"patient_id,omitempty"`
	Outcome       string             `bson:"outcome" json:"outcome"`
	ErrorDetail   string             `bson:"error_detail,omitempty" json:"error_detail,omitempty"`
	ResponseCount int                `bson:"response_count" json:"response_count"`
	AttemptedAt   time.Time          `bson:"attempted_at" json:"attempted_at"`
}
