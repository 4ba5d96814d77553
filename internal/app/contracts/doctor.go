package contracts

import (
	"context"
	"intake-service/internal/pkg/form_dto"
)

type DoctorClinicClient interface {
	FindAllDoctors(ctx context.Context) ([]form_dto.Doctor, error)
}
