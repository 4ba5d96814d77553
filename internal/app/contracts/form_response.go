package contracts

import (
	"context"
	"intake-service/internal/pkg/form_dto"
)

// FormResponseClinicClient ships the terminal submission: one JSON payload
// part plus zero or more raw attachment parts in a single multipart request.
type FormResponseClinicClient interface {
	SubmitFormResponse(ctx context.Context, payload *form_dto.SubmissionPayload, attachments []form_dto.SubmissionAttachment) error
}
