package contracts

import (
	"context"
	"intake-service/internal/app/models"
)

type SubmissionAuditRepository interface {
	RecordAttempt(ctx context.Context, attempt *models.SubmissionAttempt) error
}
