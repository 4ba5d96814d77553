package contracts

import (
	"context"
	"intake-service/internal/pkg/form_dto"
)

type TemplateClinicClient interface {
	FindTemplateByID(ctx context.Context, templateID string) (*form_dto.RawTemplate, error)
}
