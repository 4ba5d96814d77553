package intake

import (
	"context"
	"intake-service/internal/app/config"
	"intake-service/internal/app/contracts"
	"intake-service/internal/app/models"
	"intake-service/internal/pkg/constvars"
	"intake-service/internal/pkg/dto/requests"
	"intake-service/internal/pkg/dto/responses"
	"intake-service/internal/pkg/exceptions"
	"intake-service/internal/pkg/form_dto"
	"intake-service/internal/pkg/utils"
	"io"
	"path/filepath"
	"strings"
	"time"

	"go.uber.org/zap"
)

type intakeUsecase struct {
	SessionRepository         SessionRepository
	RedisRepository           contracts.RedisRepository
	TemplateClinicClient      contracts.TemplateClinicClient
	DoctorClinicClient        contracts.DoctorClinicClient
	PatientClinicClient       contracts.PatientClinicClient
	FormResponseClinicClient  contracts.FormResponseClinicClient
	AttachmentStorage         contracts.AttachmentStorage
	SubmissionAuditRepository contracts.SubmissionAuditRepository
	CompletionNotifier        contracts.CompletionNotifier
	InternalConfig            *config.InternalConfig
	Log                       *zap.Logger
}

func NewIntakeUsecase(
	sessionRepository SessionRepository,
	redisRepository contracts.RedisRepository,
	templateClinicClient contracts.TemplateClinicClient,
	doctorClinicClient contracts.DoctorClinicClient,
	patientClinicClient contracts.PatientClinicClient,
	formResponseClinicClient contracts.FormResponseClinicClient,
	attachmentStorage contracts.AttachmentStorage,
	submissionAuditRepository contracts.SubmissionAuditRepository,
	completionNotifier contracts.CompletionNotifier,
	internalConfig *config.InternalConfig,
	logger *zap.Logger,
) IntakeUsecase {
	return &intakeUsecase{
		SessionRepository:         sessionRepository,
		RedisRepository:           redisRepository,
		TemplateClinicClient:      templateClinicClient,
		DoctorClinicClient:        doctorClinicClient,
		PatientClinicClient:       patientClinicClient,
		FormResponseClinicClient:  formResponseClinicClient,
		AttachmentStorage:         attachmentStorage,
		SubmissionAuditRepository: submissionAuditRepository,
		CompletionNotifier:        completionNotifier,
		InternalConfig:            internalConfig,
		Log:                       logger,
	}
}

func (uc *intakeUsecase) CreateSession(ctx context.Context, request *requests.CreateIntakeSession) (*responses.IntakeSessionState, error) {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	uc.Log.Info("intakeUsecase.CreateSession called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingTemplateIDKey, request.TemplateID),
	)

	rawTemplate, err := uc.TemplateClinicClient.FindTemplateByID(ctx, request.TemplateID)
	if err != nil {
		return nil, err
	}

	template, err := NormalizeTemplate(rawTemplate, uc.InternalConfig.Intake.AttachmentDefaultMaxSizeInMB)
	if err != nil {
		return nil, err
	}

	language := form_dto.Language(request.Language)
	if language == "" {
		language = form_dto.LanguagePrimary
	}

	state := NewSessionState(utils.GenerateSessionID(), template, language)
	err = uc.SessionRepository.SaveSession(ctx, state)
	if err != nil {
		return nil, err
	}

	uc.Log.Info("intakeUsecase.CreateSession succeeded",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingSessionIDKey, state.SessionID),
		zap.Int("step_count", state.Sequencer.StepCount()),
	)
	return buildSessionResponse(state), nil
}

func (uc *intakeUsecase) GetSession(ctx context.Context, sessionID string) (*responses.IntakeSessionState, error) {
	state, err := uc.loadSession(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	return buildSessionResponse(state), nil
}

func (uc *intakeUsecase) CaptureAnswer(ctx context.Context, sessionID string, request *requests.CaptureAnswer) (*responses.IntakeSessionState, error) {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	uc.Log.Info("intakeUsecase.CaptureAnswer called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingSessionIDKey, sessionID),
		zap.String(constvars.LoggingQuestionIDKey, request.QuestionID),
	)

	state, err := uc.loadSession(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	item := state.Template.ItemByID(request.QuestionID)
	if item == nil {
		return nil, exceptions.ErrUnknownQuestion(request.QuestionID)
	}

	key := resolveSubKey(request)
	answer := form_dto.Answer{
		Text:     request.Text,
		Values:   request.Values,
		Markings: request.Markings,
	}

	err = state.Store.Set(request.QuestionID, key, answer)
	if err != nil {
		return nil, exceptions.ErrAnswerShapeMismatch(request.QuestionID)
	}

	err = uc.SessionRepository.SaveSession(ctx, state)
	if err != nil {
		return nil, err
	}
	return buildSessionResponse(state), nil
}

func (uc *intakeUsecase) UploadAttachment(ctx context.Context, sessionID, questionID, fileName, contentType string, sizeInBytes int64, content io.Reader) (*responses.UploadAttachment, error) {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	uc.Log.Info("intakeUsecase.UploadAttachment called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingSessionIDKey, sessionID),
		zap.String(constvars.LoggingQuestionIDKey, questionID),
		zap.Int64("size_in_bytes", sizeInBytes),
	)

	state, err := uc.loadSession(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	item := state.Template.ItemByID(questionID)
	if item == nil {
		return nil, exceptions.ErrUnknownQuestion(questionID)
	}
	if item.Variant != form_dto.VariantFileAttachment {
		return nil, exceptions.ErrAnswerShapeMismatch(questionID)
	}

	extension := strings.ToLower(filepath.Ext(fileName))
	if !extensionAllowed(extension, item.AllowedExtensions) {
		return nil, exceptions.ErrAttachmentTypeNotAllowed(extension)
	}

	// An oversized file never touches the store: the respondent gets the
	// alert and the previous answer set stays intact, no silent truncation.
	if sizeInBytes > item.MaxFileSizeInMB*1024*1024 {
		return nil, exceptions.ErrAttachmentTooLarge(sizeInBytes, item.MaxFileSizeInMB)
	}

	objectKey := utils.GenerateAttachmentObjectKey(sessionID, questionID, fileName)
	err = uc.AttachmentStorage.UploadAttachment(ctx, objectKey, content, sizeInBytes, contentType)
	if err != nil {
		return nil, err
	}

	file := form_dto.FileMeta{
		FileName:    fileName,
		ContentType: contentType,
		SizeInBytes: sizeInBytes,
		ObjectKey:   objectKey,
	}
	err = state.Store.AppendFile(questionID, file)
	if err != nil {
		return nil, exceptions.ErrAnswerShapeMismatch(questionID)
	}

	err = uc.SessionRepository.SaveSession(ctx, state)
	if err != nil {
		return nil, err
	}

	uc.Log.Info("intakeUsecase.UploadAttachment succeeded",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingObjectKeyKey, objectKey),
	)
	return &responses.UploadAttachment{QuestionID: questionID, File: file}, nil
}

func (uc *intakeUsecase) NextStep(ctx context.Context, sessionID string) (*responses.IntakeSessionState, error) {
	state, err := uc.loadSession(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	violation := ValidateItem(state.Sequencer.Current(), state.Store)
	if violation != nil {
		return nil, exceptions.ErrValidationViolation(violation.Message)
	}

	if state.Sequencer.Next() {
		err = uc.SessionRepository.SaveSession(ctx, state)
		if err != nil {
			return nil, err
		}
	}
	return buildSessionResponse(state), nil
}

func (uc *intakeUsecase) PreviousStep(ctx context.Context, sessionID string) (*responses.IntakeSessionState, error) {
	state, err := uc.loadSession(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	if state.Sequencer.Previous() {
		err = uc.SessionRepository.SaveSession(ctx, state)
		if err != nil {
			return nil, err
		}
	}
	return buildSessionResponse(state), nil
}

func (uc *intakeUsecase) ChangeLanguage(ctx context.Context, sessionID string, request *requests.ChangeLanguage) (*responses.IntakeSessionState, error) {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	uc.Log.Info("intakeUsecase.ChangeLanguage called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingSessionIDKey, sessionID),
		zap.String(constvars.LoggingLanguageKey, request.Language),
	)

	state, err := uc.loadSession(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	state.Sequencer.SetLanguage(state.Template.Items, form_dto.Language(request.Language))
	err = uc.SessionRepository.SaveSession(ctx, state)
	if err != nil {
		return nil, err
	}
	return buildSessionResponse(state), nil
}

func (uc *intakeUsecase) Submit(ctx context.Context, sessionID string) (*responses.SubmitIntakeSession, error) {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	uc.Log.Info("intakeUsecase.Submit called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingSessionIDKey, sessionID),
	)

	state, err := uc.loadSession(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	if !state.Sequencer.IsTerminal() {
		return nil, exceptions.ErrSubmitNotOnTerminalStep()
	}

	lockKey := constvars.RedisSubmitLockKeyPrefix + sessionID
	lockExpiry := time.Second * time.Duration(uc.InternalConfig.Intake.SubmitLockExpiryTimeInSeconds)
	acquired, err := uc.RedisRepository.SetIfNotExists(ctx, lockKey, "1", lockExpiry)
	if err != nil {
		return nil, err
	}
	if !acquired {
		return nil, exceptions.ErrSubmitInFlight()
	}
	defer uc.RedisRepository.Delete(ctx, lockKey)

	violation := ValidateItem(state.Sequencer.Current(), state.Store)
	if violation != nil {
		return nil, exceptions.ErrValidationViolation(violation.Message)
	}

	completedAt := time.Now().UTC()
	assembled, err := AssembleSubmission(state.Template, state.Store, state.PatientID, completedAt)
	if err != nil {
		uc.recordAttempt(ctx, state, constvars.SubmissionOutcomeNothingToSubmit, err.Error(), 0)
		return nil, err
	}

	// The dependent patient record is created before the form response and
	// is a hard dependency. A patient id from an earlier failed attempt is
	// reused rather than creating a duplicate.
	if state.PatientID == "" {
		patientRequest, hasDemographics := ProjectPatient(state.Template, state.Store)
		if hasDemographics {
			patient, err := uc.PatientClinicClient.CreatePatient(ctx, patientRequest)
			if err != nil {
				uc.recordAttempt(ctx, state, constvars.SubmissionOutcomePatientFailed, err.Error(), len(assembled.Payload.Responses))
				return nil, exceptions.ErrDependentRecordFailure(err)
			}
			if patient == nil || patient.ID == "" {
				uc.recordAttempt(ctx, state, constvars.SubmissionOutcomePatientFailed, constvars.ErrDevPatientIDMissing, len(assembled.Payload.Responses))
				return nil, exceptions.ErrDependentRecordNoID()
			}
			state.PatientID = patient.ID
			err = uc.SessionRepository.SaveSession(ctx, state)
			if err != nil {
				return nil, err
			}
		}
	}
	assembled.Payload.Patient = state.PatientID

	attachments, closeAttachments, err := uc.resolveAttachments(ctx, assembled.Attachments)
	if err != nil {
		return nil, err
	}
	defer closeAttachments()

	err = uc.FormResponseClinicClient.SubmitFormResponse(ctx, assembled.Payload, attachments)
	if err != nil {
		uc.recordAttempt(ctx, state, constvars.SubmissionOutcomeTransportFailed, err.Error(), len(assembled.Payload.Responses))
		return nil, exceptions.ErrSubmissionTransportFailure(err)
	}

	uc.recordAttempt(ctx, state, constvars.SubmissionOutcomeSubmitted, "", len(assembled.Payload.Responses))
	uc.publishCompletion(ctx, state, completedAt)
	uc.removeShippedAttachments(ctx, assembled.Attachments)

	err = uc.SessionRepository.DeleteSession(ctx, sessionID)
	if err != nil {
		uc.Log.Warn("intakeUsecase.Submit failed to delete session after success",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.String(constvars.LoggingSessionIDKey, sessionID),
			zap.Error(err),
		)
	}

	uc.Log.Info("intakeUsecase.Submit succeeded",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingSessionIDKey, sessionID),
		zap.String(constvars.LoggingPatientIDKey, state.PatientID),
		zap.Int(constvars.LoggingResponseCount, len(assembled.Payload.Responses)),
		zap.Int(constvars.LoggingAttachmentCount, len(attachments)),
	)
	return &responses.SubmitIntakeSession{
		PatientID:     state.PatientID,
		ResponseCount: len(assembled.Payload.Responses),
		CompletedAt:   completedAt.Format(time.RFC3339),
	}, nil
}

func (uc *intakeUsecase) ListDoctors(ctx context.Context) ([]form_dto.Doctor, error) {
	return uc.DoctorClinicClient.FindAllDoctors(ctx)
}

func (uc *intakeUsecase) loadSession(ctx context.Context, sessionID string) (*SessionState, error) {
	state, err := uc.SessionRepository.FindSessionByID(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if state == nil {
		return nil, exceptions.ErrSessionNotFound(sessionID)
	}
	return state, nil
}

func (uc *intakeUsecase) resolveAttachments(ctx context.Context, refs []form_dto.AttachmentRef) ([]form_dto.SubmissionAttachment, func(), error) {
	attachments := make([]form_dto.SubmissionAttachment, 0, len(refs))
	readers := make([]io.ReadCloser, 0, len(refs))
	closeAll := func() {
		for _, reader := range readers {
			reader.Close()
		}
	}

	for _, ref := range refs {
		reader, err := uc.AttachmentStorage.FetchAttachment(ctx, ref.File.ObjectKey)
		if err != nil {
			closeAll()
			return nil, nil, err
		}
		readers = append(readers, reader)
		attachments = append(attachments, form_dto.SubmissionAttachment{
			QuestionID:  ref.QuestionID,
			FileName:    ref.File.FileName,
			ContentType: ref.File.ContentType,
			Content:     reader,
		})
	}
	return attachments, closeAll, nil
}

// removeShippedAttachments clears staged blobs once the clinic core owns the
// submission. Blobs from failed attempts stay put so a retry can re-ship them.
func (uc *intakeUsecase) removeShippedAttachments(ctx context.Context, refs []form_dto.AttachmentRef) {
	for _, ref := range refs {
		err := uc.AttachmentStorage.RemoveAttachment(ctx, ref.File.ObjectKey)
		if err != nil {
			uc.Log.Warn("intakeUsecase failed to remove shipped attachment",
				zap.String(constvars.LoggingObjectKeyKey, ref.File.ObjectKey),
				zap.Error(err),
			)
		}
	}
}

// recordAttempt is best-effort bookkeeping: a failed audit write is logged
// and never blocks or fails the submission itself.
func (uc *intakeUsecase) recordAttempt(ctx context.Context, state *SessionState, outcome, errorDetail string, responseCount int) {
	attempt := &models.SubmissionAttempt{
		SessionID:     state.SessionID,
		TemplateID:    state.Template.ID,
		PatientID:     state.PatientID,
		Outcome:       outcome,
		ErrorDetail:   errorDetail,
		ResponseCount: responseCount,
		AttemptedAt:   time.Now().UTC(),
	}
	err := uc.SubmissionAuditRepository.RecordAttempt(ctx, attempt)
	if err != nil {
		uc.Log.Warn("intakeUsecase failed to record submission attempt",
			zap.String(constvars.LoggingSessionIDKey, state.SessionID),
			zap.String(constvars.LoggingOutcomeKey, outcome),
			zap.Error(err),
		)
	}
}

func (uc *intakeUsecase) publishCompletion(ctx context.Context, state *SessionState, completedAt time.Time) {
	event := &models.FormCompletedEvent{
		SessionID:   state.SessionID,
		TemplateID:  state.Template.ID,
		PatientID:   state.PatientID,
		CompletedAt: completedAt,
	}
	err := uc.CompletionNotifier.PublishFormCompleted(ctx, event)
	if err != nil {
		uc.Log.Warn("intakeUsecase failed to publish completion event",
			zap.String(constvars.LoggingSessionIDKey, state.SessionID),
			zap.Error(err),
		)
	}
}

func extensionAllowed(extension string, allowed []string) bool {
	for _, candidate := range allowed {
		if strings.EqualFold(candidate, extension) {
			return true
		}
	}
	return false
}

func resolveSubKey(request *requests.CaptureAnswer) form_dto.SubKey {
	switch {
	case request.Field != "":
		return form_dto.FieldKey(request.Field)
	case request.Row != nil && request.Col != nil:
		return form_dto.CellKey(*request.Row, *request.Col)
	case request.Row != nil:
		return form_dto.RowKey(*request.Row)
	case request.Control != nil:
		return form_dto.ControlKey(*request.Control)
	default:
		return form_dto.RootKey()
	}
}

func buildSessionResponse(state *SessionState) *responses.IntakeSessionState {
	return &responses.IntakeSessionState{
		SessionID:   state.SessionID,
		TemplateID:  state.Template.ID,
		Language:    state.Sequencer.Language,
		StepIndex:   state.Sequencer.Index,
		StepCount:   state.Sequencer.StepCount(),
		IsTerminal:  state.Sequencer.IsTerminal(),
		CanGoBack:   state.Sequencer.CanGoBack(),
		CurrentItem: state.Sequencer.Current(),
	}
}
