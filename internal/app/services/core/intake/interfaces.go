package intake

import (
	"context"
	"intake-service/internal/pkg/dto/requests"
	"intake-service/internal/pkg/dto/responses"
	"intake-service/internal/pkg/form_dto"
	"io"
)

// SessionRepository persists session state between the wizard's discrete
// user actions. Each session is fully owned by one respondent; there is no
// cross-session visibility.
type SessionRepository interface {
	SaveSession(ctx context.Context, state *SessionState) error
	FindSessionByID(ctx context.Context, sessionID string) (*SessionState, error)
	DeleteSession(ctx context.Context, sessionID string) error
}

type IntakeUsecase interface {
	CreateSession(ctx context.Context, request *requests.CreateIntakeSession) (*responses.IntakeSessionState, error)
	GetSession(ctx context.Context, sessionID string) (*responses.IntakeSessionState, error)
	CaptureAnswer(ctx context.Context, sessionID string, request *requests.CaptureAnswer) (*responses.IntakeSessionState, error)
	UploadAttachment(ctx context.Context, sessionID, questionID, fileName, contentType string, sizeInBytes int64, content io.Reader) (*responses.UploadAttachment, error)
	NextStep(ctx context.Context, sessionID string) (*responses.IntakeSessionState, error)
	PreviousStep(ctx context.Context, sessionID string) (*responses.IntakeSessionState, error)
	ChangeLanguage(ctx context.Context, sessionID string, request *requests.ChangeLanguage) (*responses.IntakeSessionState, error)
	Submit(ctx context.Context, sessionID string) (*responses.SubmitIntakeSession, error)
	ListDoctors(ctx context.Context) ([]form_dto.Doctor, error)
}
