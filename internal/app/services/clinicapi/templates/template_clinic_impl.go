package templates

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
	templateClinicClientInstance contracts.TemplateClinicClient
	onceTemplateClinicClient     sync.Once
)

type templateClinicClient struct {
	BaseUrl string
	Log     *zap.Logger
}

func NewTemplateClinicClient(baseUrl string, logger *zap.Logger) contracts.TemplateClinicClient {
	onceTemplateClinicClient.Do(func() {
		client := &templateClinicClient{
			BaseUrl: fmt.Sprintf("%s/%s", baseUrl, constvars.ResourceTemplates),
			Log:     logger,
		}
		templateClinicClientInstance = client
	})
	return templateClinicClientInstance
}

func (c *templateClinicClient) FindTemplateByID(ctx context.Context, templateID string) (*form_dto.RawTemplate, error) {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	c.Log.Info("templateClinicClient.FindTemplateByID called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingTemplateIDKey, templateID),
	)

	req, err := http.NewRequestWithContext(ctx, constvars.MethodGet, fmt.Sprintf("%s/%s", c.BaseUrl, templateID), nil)
	if err != nil {
		c.Log.Error("templateClinicClient.FindTemplateByID error creating HTTP request",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		return nil, exceptions.ErrCreateHTTPRequest(err)
	}
	req.Header.Set(constvars.HeaderAccept, constvars.MIMEApplicationJSON)

	client := &http.Client{}
	resp, err := client.Do(req)
	if err != nil {
		c.Log.Error("templateClinicClient.FindTemplateByID error sending HTTP request",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		return nil, exceptions.ErrSendHTTPRequest(err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != constvars.StatusOK {
		c.Log.Error("templateClinicClient.FindTemplateByID unexpected upstream status",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Int(constvars.LoggingStatusCodeKey, resp.StatusCode),
		)
		return nil, exceptions.ErrUpstreamStatus(constvars.ResourceTemplates, resp.StatusCode)
	}

	rawTemplate := new(form_dto.RawTemplate)
	err = json.NewDecoder(resp.Body).Decode(&rawTemplate)
	if err != nil {
		c.Log.Error("templateClinicClient.FindTemplateByID error decoding response",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		return nil, exceptions.ErrDecodeResponse(err, constvars.ResourceTemplates)
	}

	c.Log.Info("templateClinicClient.FindTemplateByID succeeded",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingTemplateIDKey, templateID),
	)
	return rawTemplate, nil
}
