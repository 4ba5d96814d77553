package patients

import (
	"bytes"
	"context"
	"fmt"
	"intake-service/internal/app/contracts"
	"intake-service/internal/pkg/constvars"
	"intake-service/internal/pkg/exceptions"
	"intake-service/internal/pkg/form_dto"
	"net/http"
	"sync"

	json "github.com/goccy/go-json"
	"go.uber.org/zap"
)

var (
	patientClinicClientInstance contracts.PatientClinicClient
	oncePatientClinicClient     sync.Once
)

type patientClinicClient struct {
	BaseUrl string
	Log     *zap.Logger
}

func NewPatientClinicClient(baseUrl string, logger *zap.Logger) contracts.PatientClinicClient {
	oncePatientClinicClient.Do(func() {
		client := &patientClinicClient{
			BaseUrl: fmt.Sprintf("%s/%s", baseUrl, constvars.ResourcePatients),
			Log:     logger,
		}
		patientClinicClientInstance = client
	})
	return patientClinicClientInstance
}

func (c *patientClinicClient) CreatePatient(ctx context.Context, request *form_dto.CreatePatient) (*form_dto.Patient, error) {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	c.Log.Info("patientClinicClient.CreatePatient called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
	)

	requestJSON, err := json.Marshal(request)
	if err != nil {
		c.Log.Error("patientClinicClient.CreatePatient error marshaling JSON",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		return nil, exceptions.ErrCannotMarshalJSON(err)
	}

	req, err := http.NewRequestWithContext(ctx, constvars.MethodPost, c.BaseUrl, bytes.NewBuffer(requestJSON))
	if err != nil {
		c.Log.Error("patientClinicClient.CreatePatient error creating HTTP request",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		return nil, exceptions.ErrCreateHTTPRequest(err)
	}
	req.Header.Set(constvars.HeaderContentType, constvars.MIMEApplicationJSON)

	client := &http.Client{}
	resp, err := client.Do(req)
	if err != nil {
		c.Log.Error("patientClinicClient.CreatePatient error sending HTTP request",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		return nil, exceptions.ErrSendHTTPRequest(err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != constvars.StatusOK && resp.StatusCode != constvars.StatusCreated {
		c.Log.Error("patientClinicClient.CreatePatient unexpected upstream status",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Int(constvars.LoggingStatusCodeKey, resp.StatusCode),
		)
		return nil, exceptions.ErrUpstreamStatus(constvars.ResourcePatients, resp.StatusCode)
	}

	result := new(form_dto.CreatePatientResult)
	err = json.NewDecoder(resp.Body).Decode(&result)
	if err != nil {
		c.Log.Error("patientClinicClient.CreatePatient error decoding response",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		return nil, exceptions.ErrDecodeResponse(err, constvars.ResourcePatients)
	}

	c.Log.Info("patientClinicClient.CreatePatient succeeded",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingPatientIDKey, result.Patient.ID),
	)
	return &result.Patient, nil
}
