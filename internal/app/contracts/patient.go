package contracts

import (
	"context"
	"intake-service/internal/pkg/form_dto"
)

type PatientClinicClient interface {
	CreatePatient(ctx context.Context, request *form_dto.CreatePatient) (*form_dto.Patient, error)
}
