package constvars

const (
	CreateIntakeSessionSuccessMessage = "Successfully created intake session"
	GetIntakeSessionSuccessMessage    = "Successfully fetched intake session"
	CaptureAnswerSuccessMessage       = "Successfully captured answer"
	UploadAttachmentSuccessMessage    = "Successfully uploaded attachment"
	AdvanceStepSuccessMessage         = "Successfully advanced to next step"
	StepBackSuccessMessage            = "Successfully moved to previous step"
	ChangeLanguageSuccessMessage      = "Successfully changed language"
	SubmitIntakeSessionSuccessMessage = "Successfully submitted intake form"
	GetDoctorDirectorySuccessMessage  = "Successfully fetched doctor directory"
)
