package intake_test

import (
	"bytes"
	"context"
	"errors"
	"intake-service/internal/app/config"
	"intake-service/internal/app/models"
	"intake-service/internal/app/services/core/intake"
	"intake-service/internal/app/services/core/sessions"
	"intake-service/internal/pkg/dto/requests"
	"intake-service/internal/pkg/exceptions"
	"intake-service/internal/pkg/form_dto"
	"io"
	"strings"
	"testing"
	"time"

	json "github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"go.uber.org/zap"
)

type MockRedisRepository struct {
	mock.Mock
}

func (m *MockRedisRepository) Set(ctx context.Context, key string, value interface{}, exp time.Duration) error {
	args := m.Called(ctx, key, value, exp)
	return args.Error(0)
}

func (m *MockRedisRepository) Get(ctx context.Context, key string) (string, error) {
	args := m.Called(ctx, key)
	return args.String(0), args.Error(1)
}

func (m *MockRedisRepository) Delete(ctx context.Context, key string) error {
	args := m.Called(ctx, key)
	return args.Error(0)
}

func (m *MockRedisRepository) SetIfNotExists(ctx context.Context, key string, value interface{}, exp time.Duration) (bool, error) {
	args := m.Called(ctx, key, value, exp)
	return args.Bool(0), args.Error(1)
}

type MockTemplateClinicClient struct {
	mock.Mock
}

func (m *MockTemplateClinicClient) FindTemplateByID(ctx context.Context, templateID string) (*form_dto.RawTemplate, error) {
	args := m.Called(ctx, templateID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*form_dto.RawTemplate), args.Error(1)
}

type MockDoctorClinicClient struct {
	mock.Mock
}

func (m *MockDoctorClinicClient) FindAllDoctors(ctx context.Context) ([]form_dto.Doctor, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]form_dto.Doctor), args.Error(1)
}

type MockPatientClinicClient struct {
	mock.Mock
}

func (m *MockPatientClinicClient) CreatePatient(ctx context.Context, request *form_dto.CreatePatient) (*form_dto.Patient, error) {
	args := m.Called(ctx, request)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*form_dto.Patient), args.Error(1)
}

type MockFormResponseClinicClient struct {
	mock.Mock
}

func (m *MockFormResponseClinicClient) SubmitFormResponse(ctx context.Context, payload *form_dto.SubmissionPayload, attachments []form_dto.SubmissionAttachment) error {
	args := m.Called(ctx, payload, attachments)
	return args.Error(0)
}

type MockAttachmentStorage struct {
	mock.Mock
}

func (m *MockAttachmentStorage) UploadAttachment(ctx context.Context, objectKey string, content io.Reader, sizeInBytes int64, contentType string) error {
	args := m.Called(ctx, objectKey, content, sizeInBytes, contentType)
	return args.Error(0)
}

func (m *MockAttachmentStorage) FetchAttachment(ctx context.Context, objectKey string) (io.ReadCloser, error) {
	args := m.Called(ctx, objectKey)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(io.ReadCloser), args.Error(1)
}

func (m *MockAttachmentStorage) RemoveAttachment(ctx context.Context, objectKey string) error {
	args := m.Called(ctx, objectKey)
	return args.Error(0)
}

type MockSubmissionAuditRepository struct {
	mock.Mock
}

func (m *MockSubmissionAuditRepository) RecordAttempt(ctx context.Context, attempt *models.SubmissionAttempt) error {
	args := m.Called(ctx, attempt)
	return args.Error(0)
}

type MockCompletionNotifier struct {
	mock.Mock
}

func (m *MockCompletionNotifier) PublishFormCompleted(ctx context.Context, event *models.FormCompletedEvent) error {
	args := m.Called(ctx, event)
	return args.Error(0)
}

type usecaseFixture struct {
	sessionRepository intake.SessionRepository
	redis             *MockRedisRepository
	templates         *MockTemplateClinicClient
	doctors           *MockDoctorClinicClient
	patients          *MockPatientClinicClient
	formResponses     *MockFormResponseClinicClient
	storage           *MockAttachmentStorage
	audit             *MockSubmissionAuditRepository
	notifier          *MockCompletionNotifier
	usecase           intake.IntakeUsecase
}

func newUsecaseFixture() *usecaseFixture {
	f := &usecaseFixture{
		sessionRepository: sessions.NewSessionMemoryRepository(),
		redis:             new(MockRedisRepository),
		templates:         new(MockTemplateClinicClient),
		doctors:           new(MockDoctorClinicClient),
		patients:          new(MockPatientClinicClient),
		formResponses:     new(MockFormResponseClinicClient),
		storage:           new(MockAttachmentStorage),
		audit:             new(MockSubmissionAuditRepository),
		notifier:          new(MockCompletionNotifier),
	}

	internalConfig := &config.InternalConfig{
		Intake: config.AppIntake{
			SessionExpiryTimeInHours:      24,
			SubmitLockExpiryTimeInSeconds: 30,
			AttachmentDefaultMaxSizeInMB:  5,
		},
	}

	f.usecase = intake.NewIntakeUsecase(
		f.sessionRepository,
		f.redis,
		f.templates,
		f.doctors,
		f.patients,
		f.formResponses,
		f.storage,
		f.audit,
		f.notifier,
		internalConfig,
		zap.NewNop(),
	)
	return f
}

func marshalItems(t *testing.T, items []map[string]interface{}) []byte {
	t.Helper()
	data, err := json.Marshal(items)
	assert.NoError(t, err)
	return data
}

func (f *usecaseFixture) createSession(t *testing.T, items []map[string]interface{}) string {
	t.Helper()
	f.templates.On("FindTemplateByID", mock.Anything, "tpl-1").Return(&form_dto.RawTemplate{
		ID:    "tpl-1",
		Title: "New Patient Intake",
		Items: marshalItems(t, items),
	}, nil).Once()

	state, err := f.usecase.CreateSession(context.Background(), &requests.CreateIntakeSession{TemplateID: "tpl-1"})
	assert.NoError(t, err)
	return state.SessionID
}

func TestIntakeUsecase_CreateSession(t *testing.T) {
	f := newUsecaseFixture()

	sessionID := f.createSession(t, []map[string]interface{}{
		{"id": "open", "variant": "openAnswer", "questionText": "Describe your symptoms"},
		{"id": "sig", "variant": "eSignature", "questionText": "Patient signature"},
	})

	assert.NotEmpty(t, sessionID)

	state, err := f.usecase.GetSession(context.Background(), sessionID)
	assert.NoError(t, err)
	assert.Equal(t, 2, state.StepCount)
	assert.Equal(t, 0, state.StepIndex)
	assert.Equal(t, "open", state.CurrentItem.ID)
}

func TestIntakeUsecase_SessionNotFound(t *testing.T) {
	f := newUsecaseFixture()

	_, err := f.usecase.GetSession(context.Background(), "missing")
	assert.Error(t, err)

	var customErr *exceptions.CustomError
	assert.True(t, errors.As(err, &customErr))
	assert.Equal(t, 404, customErr.StatusCode)
}

func TestIntakeUsecase_CaptureAnswer(t *testing.T) {
	f := newUsecaseFixture()
	sessionID := f.createSession(t, []map[string]interface{}{
		{"id": "open", "variant": "openAnswer", "questionText": "Describe your symptoms"},
	})

	t.Run("Unknown Question", func(t *testing.T) {
		_, err := f.usecase.CaptureAnswer(context.Background(), sessionID, &requests.CaptureAnswer{
			QuestionID: "ghost", Text: "hello",
		})
		assert.Error(t, err)
	})

	t.Run("Captured Answer Survives Reload", func(t *testing.T) {
		_, err := f.usecase.CaptureAnswer(context.Background(), sessionID, &requests.CaptureAnswer{
			QuestionID: "open", Text: "headache",
		})
		assert.NoError(t, err)

		state, err := f.sessionRepository.FindSessionByID(context.Background(), sessionID)
		assert.NoError(t, err)
		answer, ok := state.Store.Get("open", form_dto.RootKey())
		assert.True(t, ok)
		assert.Equal(t, "headache", answer.Text)
	})

	t.Run("Row Answer Overwrites", func(t *testing.T) {
		fx := newUsecaseFixture()
		id := fx.createSession(t, []map[string]interface{}{
			{"id": "grid", "variant": "matrixSingleAnswer", "questionText": "Per row", "rows": []string{"a", "b", "c"}},
		})

		row := 2
		_, err := fx.usecase.CaptureAnswer(context.Background(), id, &requests.CaptureAnswer{
			QuestionID: "grid", Row: &row, Text: "Sometimes",
		})
		assert.NoError(t, err)
		_, err = fx.usecase.CaptureAnswer(context.Background(), id, &requests.CaptureAnswer{
			QuestionID: "grid", Row: &row, Text: "Often",
		})
		assert.NoError(t, err)

		state, _ := fx.sessionRepository.FindSessionByID(context.Background(), id)
		answer, ok := state.Store.Get("grid", form_dto.RowKey(2))
		assert.True(t, ok)
		assert.Equal(t, "Often", answer.Text)
		assert.Equal(t, 1, state.Store.Len())
	})
}

func TestIntakeUsecase_NextBlockedByValidation(t *testing.T) {
	f := newUsecaseFixture()
	sessionID := f.createSession(t, []map[string]interface{}{
		{"id": "open", "variant": "openAnswer", "questionText": "Describe your symptoms", "isRequired": true},
		{"id": "sig", "variant": "eSignature", "questionText": "Patient signature"},
	})

	_, err := f.usecase.NextStep(context.Background(), sessionID)
	assert.Error(t, err)

	var customErr *exceptions.CustomError
	assert.True(t, errors.As(err, &customErr))
	assert.Equal(t, 422, customErr.StatusCode)

	// The cursor did not move.
	state, err := f.usecase.GetSession(context.Background(), sessionID)
	assert.NoError(t, err)
	assert.Equal(t, 0, state.StepIndex)

	// Answering unblocks the step.
	_, err = f.usecase.CaptureAnswer(context.Background(), sessionID, &requests.CaptureAnswer{
		QuestionID: "open", Text: "headache",
	})
	assert.NoError(t, err)

	state, err = f.usecase.NextStep(context.Background(), sessionID)
	assert.NoError(t, err)
	assert.Equal(t, 1, state.StepIndex)
}

func TestIntakeUsecase_PreviousNeverBlocked(t *testing.T) {
	f := newUsecaseFixture()
	sessionID := f.createSession(t, []map[string]interface{}{
		{"id": "open", "variant": "openAnswer", "questionText": "Q1"},
		{"id": "req", "variant": "openAnswer", "questionText": "Q2", "isRequired": true},
	})

	_, err := f.usecase.NextStep(context.Background(), sessionID)
	assert.NoError(t, err)

	// Q2 is required and unanswered, but going back is always allowed.
	state, err := f.usecase.PreviousStep(context.Background(), sessionID)
	assert.NoError(t, err)
	assert.Equal(t, 0, state.StepIndex)
}

func TestIntakeUsecase_ChangeLanguageRestartsWizard(t *testing.T) {
	f := newUsecaseFixture()
	sessionID := f.createSession(t, []map[string]interface{}{
		{"id": "open-en", "variant": "openAnswer", "questionText": "Describe your symptoms"},
		{"id": "open-es", "variant": "openAnswer", "questionText": "Describa sus sintomas (Spanish)"},
		{"id": "sig-en", "variant": "eSignature", "questionText": "Patient signature"},
	})

	_, err := f.usecase.CaptureAnswer(context.Background(), sessionID, &requests.CaptureAnswer{
		QuestionID: "open-en", Text: "headache",
	})
	assert.NoError(t, err)
	_, err = f.usecase.NextStep(context.Background(), sessionID)
	assert.NoError(t, err)

	state, err := f.usecase.ChangeLanguage(context.Background(), sessionID, &requests.ChangeLanguage{Language: "alternate"})
	assert.NoError(t, err)
	assert.Equal(t, 0, state.StepIndex, "language change restarts from the first step")
	assert.Equal(t, 1, state.StepCount)
	assert.Equal(t, "open-es", state.CurrentItem.ID)

	// Captured answers survive the language switch.
	stored, _ := f.sessionRepository.FindSessionByID(context.Background(), sessionID)
	answer, ok := stored.Store.Get("open-en", form_dto.RootKey())
	assert.True(t, ok)
	assert.Equal(t, "headache", answer.Text)
}

func TestIntakeUsecase_UploadAttachment(t *testing.T) {
	items := []map[string]interface{}{
		{"id": "file", "variant": "fileAttachment", "questionText": "Upload your insurance card"},
	}

	t.Run("Oversized File Leaves Store Untouched", func(t *testing.T) {
		f := newUsecaseFixture()
		sessionID := f.createSession(t, items)

		oversized := int64(6 * 1024 * 1024)
		_, err := f.usecase.UploadAttachment(context.Background(), sessionID, "file", "scan.jpg", "image/jpeg", oversized, strings.NewReader("x"))
		assert.Error(t, err)

		var customErr *exceptions.CustomError
		assert.True(t, errors.As(err, &customErr))
		assert.Equal(t, 413, customErr.StatusCode)

		state, _ := f.sessionRepository.FindSessionByID(context.Background(), sessionID)
		assert.False(t, state.Store.HasAnswers("file"))
		f.storage.AssertNotCalled(t, "UploadAttachment")
	})

	t.Run("Disallowed Extension Rejected", func(t *testing.T) {
		f := newUsecaseFixture()
		sessionID := f.createSession(t, items)

		_, err := f.usecase.UploadAttachment(context.Background(), sessionID, "file", "malware.exe", "application/octet-stream", 100, strings.NewReader("x"))
		assert.Error(t, err)
		f.storage.AssertNotCalled(t, "UploadAttachment")
	})

	t.Run("Valid Upload Stored And Recorded", func(t *testing.T) {
		f := newUsecaseFixture()
		sessionID := f.createSession(t, items)

		f.storage.On("UploadAttachment", mock.Anything, mock.AnythingOfType("string"), mock.Anything, int64(1024), "image/jpeg").Return(nil).Once()

		response, err := f.usecase.UploadAttachment(context.Background(), sessionID, "file", "card.JPG", "image/jpeg", 1024, strings.NewReader("binary"))
		assert.NoError(t, err)
		assert.Equal(t, "card.JPG", response.File.FileName)
		assert.NotEmpty(t, response.File.ObjectKey)

		state, _ := f.sessionRepository.FindSessionByID(context.Background(), sessionID)
		answer, ok := state.Store.Get("file", form_dto.RootKey())
		assert.True(t, ok)
		assert.Len(t, answer.Files, 1)
		f.storage.AssertExpectations(t)
	})
}

func submittableItems() []map[string]interface{} {
	return []map[string]interface{}{
		{"id": "demo", "variant": "demographics", "questionText": "About you", "isRequired": true},
		{"id": "open", "variant": "openAnswer", "questionText": "Describe your symptoms"},
	}
}

func (f *usecaseFixture) fillDemographics(t *testing.T, sessionID string) {
	t.Helper()
	fields := map[string]string{
		form_dto.DemographicFieldFirstName:      "Ada",
		form_dto.DemographicFieldLastName:       "Lovelace",
		form_dto.DemographicFieldDateOfBirth:    "1990-12-10",
		form_dto.DemographicFieldAssignedDoctor: "doc-9",
	}
	for name, value := range fields {
		_, err := f.usecase.CaptureAnswer(context.Background(), sessionID, &requests.CaptureAnswer{
			QuestionID: "demo", Field: name, Text: value,
		})
		assert.NoError(t, err)
	}
}

func (f *usecaseFixture) advanceToTerminal(t *testing.T, sessionID string) {
	t.Helper()
	_, err := f.usecase.NextStep(context.Background(), sessionID)
	assert.NoError(t, err)
}

func TestIntakeUsecase_Submit(t *testing.T) {
	t.Run("Rejected Before Terminal Step", func(t *testing.T) {
		f := newUsecaseFixture()
		sessionID := f.createSession(t, submittableItems())

		_, err := f.usecase.Submit(context.Background(), sessionID)
		assert.Error(t, err)
		f.patients.AssertNotCalled(t, "CreatePatient")
	})

	t.Run("Rejected While Another Submit In Flight", func(t *testing.T) {
		f := newUsecaseFixture()
		sessionID := f.createSession(t, submittableItems())
		f.fillDemographics(t, sessionID)
		f.advanceToTerminal(t, sessionID)

		f.redis.On("SetIfNotExists", mock.Anything, mock.AnythingOfType("string"), mock.Anything, mock.Anything).Return(false, nil).Once()

		_, err := f.usecase.Submit(context.Background(), sessionID)
		assert.Error(t, err)

		var customErr *exceptions.CustomError
		assert.True(t, errors.As(err, &customErr))
		assert.Equal(t, 409, customErr.StatusCode)
	})

	t.Run("Rejected When Terminal Answer Invalid", func(t *testing.T) {
		f := newUsecaseFixture()
		sessionID := f.createSession(t, []map[string]interface{}{
			{"id": "demo", "variant": "demographics", "questionText": "About you", "isRequired": true},
			{"id": "open", "variant": "openAnswer", "questionText": "Describe your symptoms", "isRequired": true},
		})
		f.fillDemographics(t, sessionID)
		f.advanceToTerminal(t, sessionID)

		f.redis.On("SetIfNotExists", mock.Anything, mock.Anything, mock.Anything, mock.Anything).Return(true, nil).Once()
		f.redis.On("Delete", mock.Anything, mock.Anything).Return(nil).Once()

		_, err := f.usecase.Submit(context.Background(), sessionID)
		assert.Error(t, err)

		var customErr *exceptions.CustomError
		assert.True(t, errors.As(err, &customErr))
		assert.Equal(t, 422, customErr.StatusCode)
		assert.Contains(t, customErr.ClientMessage, "Describe your symptoms")

		// The session survives on the terminal step, nothing was shipped.
		state, _ := f.sessionRepository.FindSessionByID(context.Background(), sessionID)
		assert.NotNil(t, state)
		assert.Equal(t, 1, state.Sequencer.Index)
		f.patients.AssertNotCalled(t, "CreatePatient")
		f.formResponses.AssertNotCalled(t, "SubmitFormResponse")
	})

	t.Run("Successful Submission", func(t *testing.T) {
		f := newUsecaseFixture()
		sessionID := f.createSession(t, submittableItems())
		f.fillDemographics(t, sessionID)
		_, err := f.usecase.CaptureAnswer(context.Background(), sessionID, &requests.CaptureAnswer{
			QuestionID: "open", Text: "headache",
		})
		assert.NoError(t, err)
		f.advanceToTerminal(t, sessionID)

		f.redis.On("SetIfNotExists", mock.Anything, mock.Anything, mock.Anything, mock.Anything).Return(true, nil).Once()
		f.redis.On("Delete", mock.Anything, mock.Anything).Return(nil).Once()
		f.patients.On("CreatePatient", mock.Anything, mock.MatchedBy(func(request *form_dto.CreatePatient) bool {
			return request.FirstName == "Ada" && request.AssignedDoctorID == "doc-9"
		})).Return(&form_dto.Patient{ID: "p1"}, nil).Once()
		f.formResponses.On("SubmitFormResponse", mock.Anything, mock.MatchedBy(func(payload *form_dto.SubmissionPayload) bool {
			return payload.Patient == "p1" && len(payload.Responses) == 2
		}), mock.Anything).Return(nil).Once()
		f.audit.On("RecordAttempt", mock.Anything, mock.Anything).Return(nil).Once()
		f.notifier.On("PublishFormCompleted", mock.Anything, mock.Anything).Return(nil).Once()

		response, err := f.usecase.Submit(context.Background(), sessionID)
		assert.NoError(t, err)
		assert.Equal(t, "p1", response.PatientID)
		assert.Equal(t, 2, response.ResponseCount)

		// The session is gone after success.
		state, _ := f.sessionRepository.FindSessionByID(context.Background(), sessionID)
		assert.Nil(t, state)

		f.patients.AssertExpectations(t)
		f.formResponses.AssertExpectations(t)
	})

	t.Run("Patient Creation Failure Preserves Session", func(t *testing.T) {
		f := newUsecaseFixture()
		sessionID := f.createSession(t, submittableItems())
		f.fillDemographics(t, sessionID)
		f.advanceToTerminal(t, sessionID)

		f.redis.On("SetIfNotExists", mock.Anything, mock.Anything, mock.Anything, mock.Anything).Return(true, nil).Once()
		f.redis.On("Delete", mock.Anything, mock.Anything).Return(nil).Once()
		f.patients.On("CreatePatient", mock.Anything, mock.Anything).Return(nil, errors.New("upstream down")).Once()
		f.audit.On("RecordAttempt", mock.Anything, mock.Anything).Return(nil).Once()

		_, err := f.usecase.Submit(context.Background(), sessionID)
		assert.Error(t, err)

		state, _ := f.sessionRepository.FindSessionByID(context.Background(), sessionID)
		assert.NotNil(t, state, "answers survive a failed dependent write")
		f.formResponses.AssertNotCalled(t, "SubmitFormResponse")
	})

	t.Run("Transport Failure Reuses Patient On Retry", func(t *testing.T) {
		f := newUsecaseFixture()
		sessionID := f.createSession(t, submittableItems())
		f.fillDemographics(t, sessionID)
		f.advanceToTerminal(t, sessionID)

		f.redis.On("SetIfNotExists", mock.Anything, mock.Anything, mock.Anything, mock.Anything).Return(true, nil).Twice()
		f.redis.On("Delete", mock.Anything, mock.Anything).Return(nil).Twice()
		f.patients.On("CreatePatient", mock.Anything, mock.Anything).Return(&form_dto.Patient{ID: "p1"}, nil).Once()
		f.formResponses.On("SubmitFormResponse", mock.Anything, mock.Anything, mock.Anything).Return(errors.New("gateway timeout")).Once()
		f.audit.On("RecordAttempt", mock.Anything, mock.Anything).Return(nil)
		f.notifier.On("PublishFormCompleted", mock.Anything, mock.Anything).Return(nil).Once()

		_, err := f.usecase.Submit(context.Background(), sessionID)
		assert.Error(t, err)

		state, _ := f.sessionRepository.FindSessionByID(context.Background(), sessionID)
		assert.NotNil(t, state)
		assert.Equal(t, "p1", state.PatientID, "the created patient id sticks to the session")

		// The retry succeeds without creating a second patient.
		f.formResponses.On("SubmitFormResponse", mock.Anything, mock.MatchedBy(func(payload *form_dto.SubmissionPayload) bool {
			return payload.Patient == "p1"
		}), mock.Anything).Return(nil).Once()

		response, err := f.usecase.Submit(context.Background(), sessionID)
		assert.NoError(t, err)
		assert.Equal(t, "p1", response.PatientID)
		f.patients.AssertNumberOfCalls(t, "CreatePatient", 1)
	})

	t.Run("Nothing To Submit", func(t *testing.T) {
		f := newUsecaseFixture()
		sessionID := f.createSession(t, []map[string]interface{}{
			{"id": "open", "variant": "openAnswer", "questionText": "Optional question"},
		})

		f.redis.On("SetIfNotExists", mock.Anything, mock.Anything, mock.Anything, mock.Anything).Return(true, nil).Once()
		f.redis.On("Delete", mock.Anything, mock.Anything).Return(nil).Once()
		f.audit.On("RecordAttempt", mock.Anything, mock.Anything).Return(nil).Once()

		_, err := f.usecase.Submit(context.Background(), sessionID)
		assert.Error(t, err)

		var customErr *exceptions.CustomError
		assert.True(t, errors.As(err, &customErr))
		assert.Equal(t, 422, customErr.StatusCode)
		f.patients.AssertNotCalled(t, "CreatePatient")
	})

	t.Run("Submission Ships Stored Attachments", func(t *testing.T) {
		f := newUsecaseFixture()
		sessionID := f.createSession(t, []map[string]interface{}{
			{"id": "file", "variant": "fileAttachment", "questionText": "Upload your insurance card"},
		})

		f.storage.On("UploadAttachment", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything).Return(nil).Once()
		_, err := f.usecase.UploadAttachment(context.Background(), sessionID, "file", "card.jpg", "image/jpeg", 512, strings.NewReader("bin"))
		assert.NoError(t, err)

		f.redis.On("SetIfNotExists", mock.Anything, mock.Anything, mock.Anything, mock.Anything).Return(true, nil).Once()
		f.redis.On("Delete", mock.Anything, mock.Anything).Return(nil).Once()
		f.storage.On("FetchAttachment", mock.Anything, mock.AnythingOfType("string")).Return(io.NopCloser(bytes.NewReader([]byte("bin"))), nil).Once()
		f.formResponses.On("SubmitFormResponse", mock.Anything, mock.Anything, mock.MatchedBy(func(attachments []form_dto.SubmissionAttachment) bool {
			return len(attachments) == 1 && attachments[0].QuestionID == "file"
		})).Return(nil).Once()
		f.storage.On("RemoveAttachment", mock.Anything, mock.AnythingOfType("string")).Return(nil).Once()
		f.audit.On("RecordAttempt", mock.Anything, mock.Anything).Return(nil).Once()
		f.notifier.On("PublishFormCompleted", mock.Anything, mock.Anything).Return(nil).Once()

		response, err := f.usecase.Submit(context.Background(), sessionID)
		assert.NoError(t, err)
		assert.Equal(t, 1, response.ResponseCount)

		// The staged blob is cleaned up once the clinic core owns the file.
		f.storage.AssertExpectations(t)
	})
}

func TestIntakeUsecase_ListDoctors(t *testing.T) {
	f := newUsecaseFixture()
	f.doctors.On("FindAllDoctors", mock.Anything).Return([]form_dto.Doctor{
		{ID: "doc-1", FirstName: "Grace", LastName: "Hopper"},
	}, nil).Once()

	doctors, err := f.usecase.ListDoctors(context.Background())
	assert.NoError(t, err)
	assert.Len(t, doctors, 1)
	assert.Equal(t, "doc-1", doctors[0].ID)
}
