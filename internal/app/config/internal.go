package config

type InternalConfig struct {
	App       App         `mapstructure:"app"`
	ClinicAPI ClinicAPI   `mapstructure:"clinic_api"`
	Minio     AppMinio    `mapstructure:"minio"`
	RabbitMQ  AppRabbitMQ `mapstructure:"rabbitmq"`
	Intake    AppIntake   `mapstructure:"intake"`
}

type App struct {
	Env                        string `mapstructure:"env"`
	Port                       string `mapstructure:"port"`
	Version                    string `mapstructure:"version"`
	Timezone                   string `mapstructure:"timezone"`
	EndpointPrefix             string `mapstructure:"endpoint_prefix"`
	MaxRequests                int    `mapstructure:"max_requests"`
	ShutdownTimeoutInSeconds   int    `mapstructure:"shutdown_timeout_in_seconds"`
	RequestBodyLimitInMegabyte int    `mapstructure:"request_body_limit_in_megabyte"`
}

// ClinicAPI points at the clinic core backend that owns templates, the
// doctor directory, patients, and form-response persistence.
type ClinicAPI struct {
	BaseUrl                 string `mapstructure:"base_url"`
	RequestTimeoutInSeconds int    `mapstructure:"request_timeout_in_seconds"`
}

type AppMinio struct {
	BucketName string `mapstructure:"bucket_name"`
}

type AppRabbitMQ struct {
	CompletionQueue string `mapstructure:"completion_queue"`
}

type AppIntake struct {
	// SessionExpiryTimeInHours bounds how long an abandoned wizard keeps its
	// answers before the session key falls out of redis.
	SessionExpiryTimeInHours int `mapstructure:"session_expiry_time_in_hours"`
	// SubmitLockExpiryTimeInSeconds caps how long the in-flight submit guard
	// can stay held if a submission attempt dies mid-request.
	SubmitLockExpiryTimeInSeconds int   `mapstructure:"submit_lock_expiry_time_in_seconds"`
	AttachmentDefaultMaxSizeInMB  int64 `mapstructure:"attachment_default_max_size_in_mb"`
}
