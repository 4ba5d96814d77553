package formresponses

import (
	"bytes"
	"context"
	"fmt"
	"intake-service/internal/app/contracts"
	"intake-service/internal/pkg/constvars"
	"intake-service/internal/pkg/exceptions"
	"intake-service/internal/pkg/form_dto"
	"io"
	"mime/multipart"
	"net/http"
	"net/textproto"
	"sync"

	json "github.com/goccy/go-json"
	"go.uber.org/zap"
)

var (
	formResponseClinicClientInstance contracts.FormResponseClinicClient
	onceFormResponseClinicClient     sync.Once
)

type formResponseClinicClient struct {
	BaseUrl string
	Log     *zap.Logger
}

func NewFormResponseClinicClient(baseUrl string, logger *zap.Logger) contracts.FormResponseClinicClient {
	onceFormResponseClinicClient.Do(func() {
		client := &formResponseClinicClient{
			BaseUrl: fmt.Sprintf("%s/%s", baseUrl, constvars.ResourceFormResponses),
			Log:     logger,
		}
		formResponseClinicClientInstance = client
	})
	return formResponseClinicClientInstance
}

// SubmitFormResponse writes the payload as one JSON part and streams each
// attachment blob as its own part keyed by question id. The payload's
// FileAttachments stay empty; the clinic core back-fills stored URLs from the
// parts it receives.
func (c *formResponseClinicClient) SubmitFormResponse(ctx context.Context, payload *form_dto.SubmissionPayload, attachments []form_dto.SubmissionAttachment) error {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	c.Log.Info("formResponseClinicClient.SubmitFormResponse called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.Int(constvars.LoggingResponseCount, len(payload.Responses)),
		zap.Int(constvars.LoggingAttachmentCount, len(attachments)),
	)

	payloadJSON, err := json.Marshal(payload)
	if err != nil {
		c.Log.Error("formResponseClinicClient.SubmitFormResponse error marshaling payload",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		return exceptions.ErrCannotMarshalJSON(err)
	}

	body := new(bytes.Buffer)
	writer := multipart.NewWriter(body)

	payloadHeader := make(textproto.MIMEHeader)
	payloadHeader.Set(constvars.HeaderContentDisposition, fmt.Sprintf(`form-data; name="%s"`, constvars.MultipartFieldPayload))
	payloadHeader.Set(constvars.HeaderContentType, constvars.MIMEApplicationJSON)
	payloadPart, err := writer.CreatePart(payloadHeader)
	if err != nil {
		return exceptions.ErrCreateHTTPRequest(err)
	}
	_, err = payloadPart.Write(payloadJSON)
	if err != nil {
		return exceptions.ErrCreateHTTPRequest(err)
	}

	for _, attachment := range attachments {
		partHeader := make(textproto.MIMEHeader)
		partHeader.Set(constvars.HeaderContentDisposition, fmt.Sprintf(
			`form-data; name="%s"; filename="%s"`,
			fmt.Sprintf(constvars.MultipartAttachmentFieldFormat, attachment.QuestionID),
			attachment.FileName,
		))
		contentType := attachment.ContentType
		if contentType == "" {
			contentType = constvars.MIMEOctetStream
		}
		partHeader.Set(constvars.HeaderContentType, contentType)

		part, err := writer.CreatePart(partHeader)
		if err != nil {
			return exceptions.ErrCreateHTTPRequest(err)
		}
		_, err = io.Copy(part, attachment.Content)
		if err != nil {
			c.Log.Error("formResponseClinicClient.SubmitFormResponse error copying attachment",
				zap.String(constvars.LoggingRequestIDKey, requestID),
				zap.String(constvars.LoggingQuestionIDKey, attachment.QuestionID),
				zap.Error(err),
			)
			return exceptions.ErrCreateHTTPRequest(err)
		}
	}

	err = writer.Close()
	if err != nil {
		return exceptions.ErrCreateHTTPRequest(err)
	}

	req, err := http.NewRequestWithContext(ctx, constvars.MethodPost, c.BaseUrl, body)
	if err != nil {
		c.Log.Error("formResponseClinicClient.SubmitFormResponse error creating HTTP request",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		return exceptions.ErrCreateHTTPRequest(err)
	}
	req.Header.Set(constvars.HeaderContentType, writer.FormDataContentType())

	client := &http.Client{}
	resp, err := client.Do(req)
	if err != nil {
		c.Log.Error("formResponseClinicClient.SubmitFormResponse error sending HTTP request",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		return exceptions.ErrSendHTTPRequest(err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != constvars.StatusOK && resp.StatusCode != constvars.StatusCreated {
		c.Log.Error("formResponseClinicClient.SubmitFormResponse unexpected upstream status",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Int(constvars.LoggingStatusCodeKey, resp.StatusCode),
		)
		return exceptions.ErrUpstreamStatus(constvars.ResourceFormResponses, resp.StatusCode)
	}

	c.Log.Info("formResponseClinicClient.SubmitFormResponse succeeded",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.Int(constvars.LoggingStatusCodeKey, resp.StatusCode),
	)
	return nil
}
