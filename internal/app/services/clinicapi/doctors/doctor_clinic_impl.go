package doctors

import (
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
	doctorClinicClientInstance contracts.DoctorClinicClient
	onceDoctorClinicClient     sync.Once
)

type doctorClinicClient struct {
	BaseUrl string
	Log     *zap.Logger
}

func NewDoctorClinicClient(baseUrl string, logger *zap.Logger) contracts.DoctorClinicClient {
	onceDoctorClinicClient.Do(func() {
		client := &doctorClinicClient{
			BaseUrl: fmt.Sprintf("%s/%s", baseUrl, constvars.ResourceDoctors),
			Log:     logger,
		}
		doctorClinicClientInstance = client
	})
	return doctorClinicClientInstance
}

func (c *doctorClinicClient) FindAllDoctors(ctx context.Context) ([]form_dto.Doctor, error) {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	c.Log.Info("doctorClinicClient.FindAllDoctors called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
	)

	req, err := http.NewRequestWithContext(ctx, constvars.MethodGet, c.BaseUrl, nil)
	if err != nil {
		c.Log.Error("doctorClinicClient.FindAllDoctors error creating HTTP request",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		return nil, exceptions.ErrCreateHTTPRequest(err)
	}
	req.Header.Set(constvars.HeaderAccept, constvars.MIMEApplicationJSON)

	client := &http.Client{}
	resp, err := client.Do(req)
	if err != nil {
		c.Log.Error("doctorClinicClient.FindAllDoctors error sending HTTP request",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		return nil, exceptions.ErrSendHTTPRequest(err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != constvars.StatusOK {
		c.Log.Error("doctorClinicClient.FindAllDoctors unexpected upstream status",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Int(constvars.LoggingStatusCodeKey, resp.StatusCode),
		)
		return nil, exceptions.ErrUpstreamStatus(constvars.ResourceDoctors, resp.StatusCode)
	}

	doctors := make([]form_dto.Doctor, 0)
	err = json.NewDecoder(resp.Body).Decode(&doctors)
	if err != nil {
		c.Log.Error("doctorClinicClient.FindAllDoctors error decoding response",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		return nil, exceptions.ErrDecodeResponse(err, constvars.ResourceDoctors)
	}

	c.Log.Info("doctorClinicClient.FindAllDoctors succeeded",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.Int("doctor_count", len(doctors)),
	)
	return doctors, nil
}
