package constvars

const (
	LoggingRequestIDKey    = "request_id"
	LoggingSessionIDKey    = "session_id"
	LoggingTemplateIDKey   = "template_id"
	LoggingQuestionIDKey   = "question_id"
	LoggingPatientIDKey    = "patient_id"
	LoggingMethodKey       = "method"
	LoggingEndpointKey     = "endpoint"
	LoggingRemoteAddrKey   = "remote_addr"
	LoggingUserAgentKey    = "user_agent"
	LoggingQueryKey        = "query"
	LoggingStatusCodeKey   = "status_code"
	LoggingDurationKey     = "duration"
	LoggingSuccessKey      = "success"
	LoggingStepIndexKey    = "step_index"
	LoggingLanguageKey     = "language"
	LoggingObjectKeyKey    = "object_key"
	LoggingResponseKey     = "response"
	LoggingQueueKey        = "queue"
	LoggingOutcomeKey      = "outcome"
	LoggingResponseCount   = "response_count"
	LoggingAttachmentCount = "attachment_count"
)
