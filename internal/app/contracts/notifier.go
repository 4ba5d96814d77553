package contracts

import (
	"context"
	"intake-service/internal/app/models"
)

type CompletionNotifier interface {
	PublishFormCompleted(ctx context.Context, event *models.FormCompletedEvent) error
}
