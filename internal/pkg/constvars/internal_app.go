package constvars

type ContextKey string

const (
	CONTEXT_REQUEST_ID_KEY           ContextKey = "request_id"
	CONTEXT_IS_CLIENT_REQUEST_ID_KEY ContextKey = "is_client_request_id"
)

const (
	ResourceIntakeSessions = "intake-sessions"
	ResourceTemplates      = "templates"
	ResourceDoctors        = "doctors"
	ResourcePatients       = "patients"
	ResourceFormResponses  = "form-responses"
)

const (
	URLParamSessionID  = "sessionID"
	URLParamQuestionID = "questionID"
)

const (
	RedisIntakeSessionKeyPrefix = "intake:session:"
	RedisSubmitLockKeyPrefix    = "intake:submit-lock:"
)

const (
	MongoCollectionSubmissionAttempts = "submission_attempts"
)

const (
	SubmissionStatusCompleted = "completed"

	SubmissionOutcomeSubmitted       = "submitted"
	SubmissionOutcomePatientFailed   = "patient_creation_failed"
	SubmissionOutcomeTransportFailed = "transport_failed"
	SubmissionOutcomeNothingToSubmit = "nothing_to_submit"
)

const (
	MultipartFieldPayload          = "payload"
	MultipartFieldFile             = "file"
	MultipartAttachmentFieldFormat = "attachments[%s]"
)

const (
	AppPaginationUrlFormat = "%s?page=%d&page_size=%d"
)
