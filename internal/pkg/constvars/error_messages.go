package constvars

// Client-facing messages. These are the only strings an API consumer sees on
// failure; developer detail goes to DevMessage and the logs.
const (
	ErrClientSomethingWrongWithApplication = "Something went wrong with the application, please try again later"
	ErrClientCannotProcessRequest          = "Cannot process your request, please check your input"
	ErrClientMalformedTemplate             = "This intake form cannot be opened, please choose another form"
	ErrClientSessionNotFound               = "Intake session not found or expired, please start again"
	ErrClientNothingToSubmit               = "No answers were captured, there is nothing to submit"
	ErrClientPatientCreationFailed         = "We could not create the patient record, your answers are kept, please try again"
	ErrClientSubmissionFailed              = "We could not deliver your form, your answers are kept, please try again"
	ErrClientSubmitAlreadyInFlight         = "A submission is already in progress for this session"
	ErrClientFileTooLarge                  = "The selected file exceeds the maximum allowed size of %d MB"
	ErrClientFileTypeNotAllowed            = "This file type is not accepted for this question"
	ErrClientAnswerShapeMismatch           = "This answer does not match the shape of the question"
	ErrClientUnknownQuestion               = "The referenced question does not exist on this form"
	ErrClientServerLongRespond             = "Server takes too long to respond, please try again later"
)

// Developer messages.
const (
	ErrDevMalformedTemplate        = "template item list is missing or not a sequence"
	ErrDevValidationFailed         = "request body failed validation"
	ErrDevSessionNotFound          = "no session state found under key: %s"
	ErrDevSessionDecodeFailed      = "failed to decode session state"
	ErrDevNothingToSubmit          = "every submission record was empty after projection"
	ErrDevPatientCreationFailed    = "dependent patient creation call failed"
	ErrDevPatientIDMissing         = "patient creation returned no usable patient id"
	ErrDevFormResponseFailed       = "form-response submission call failed"
	ErrDevSubmitLockHeld           = "submit lock already held for session"
	ErrDevBuildRequest             = "failed to build outbound request"
	ErrDevCannotParseJSON          = "failed to parse JSON request body"
	ErrDevCannotMarshalJSON        = "failed to marshal value to JSON"
	ErrDevCannotParseMultipartForm = "failed to parse multipart form"
	ErrDevCreateHTTPRequest        = "failed to create HTTP request"
	ErrDevSendHTTPRequest          = "failed to send HTTP request"
	ErrDevDecodeResponse           = "failed to decode %s response body"
	ErrDevUpstreamStatus           = "upstream %s returned status %d"
	ErrDevURLParamValidationFailed = "URL parameter %s is missing or invalid"
	ErrDevRedisSet                 = "failed to set value on redis"
	ErrDevRedisGet                 = "failed to get value from redis, key: %s"
	ErrDevRedisDelete              = "failed to delete key on redis"
	ErrDevMinioCreateObject        = "failed to put object into bucket %s"
	ErrDevMinioGetObject           = "failed to get object from bucket %s"
	ErrDevMinioRemoveObject        = "failed to remove object from bucket %s"
	ErrDevMongoDBInsertDocument    = "failed to insert document into mongo"
	ErrDevRabbitMQPublish          = "failed to publish message to queue %s"
	ErrDevAttachmentTooLarge       = "attachment of %d bytes exceeds cap of %d MB"
	ErrDevAttachmentExtNotAllowed  = "attachment extension %s not in allow-list"
	ErrDevUnknownQuestion          = "question id %s not present on template"
	ErrDevAnswerShapeMismatch      = "answer key shape conflicts with existing answers for question %s"
	ErrDevSequencerOutOfRange      = "sequencer index out of range"
	ErrDevSubmitNotOnTerminalStep  = "submit invoked before the terminal step"
)
