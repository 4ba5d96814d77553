package main

import (
	"context"
	"intake-service/internal/app/config"
	"intake-service/internal/app/delivery/http/middlewares"
	"intake-service/internal/app/delivery/http/routers"
	"intake-service/internal/app/drivers/database"
	"intake-service/internal/app/drivers/logger"
	"intake-service/internal/app/drivers/messaging"
	"intake-service/internal/app/drivers/storage"
	"intake-service/internal/app/services/clinicapi/doctors"
	"intake-service/internal/app/services/clinicapi/formresponses"
	"intake-service/internal/app/services/clinicapi/patients"
	"intake-service/internal/app/services/clinicapi/templates"
	"intake-service/internal/app/services/core/intake"
	"intake-service/internal/app/services/core/sessions"
	"intake-service/internal/app/services/core/submissions"
	"intake-service/internal/app/services/shared/notifier"
	sharedRedis "intake-service/internal/app/services/shared/redis"
	sharedStorage "intake-service/internal/app/services/shared/storage"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/minio/minio-go/v7"
)

func main() {
	driverConfig := config.NewDriverConfig()
	internalConfig := config.NewInternalConfig()

	log := logger.NewLogrusLogger(internalConfig)
	zapLogger := logger.NewZapLogger(driverConfig, internalConfig)

	location, err := time.LoadLocation(internalConfig.App.Timezone)
	if err != nil {
		log.Fatalf("Error loading location: %v", err)
	}
	time.Local = location

	mongoDB := database.NewMongoDB(driverConfig)
	redisClient := database.NewRedisClient(driverConfig)
	minioClient := storage.NewMinio(driverConfig)
	rabbitMQConnection := messaging.NewRabbitMQ(driverConfig)
	chiRouter := chi.NewRouter()

	bootstrap := config.Bootstrap{
		Router:         chiRouter,
		MongoDB:        mongoDB,
		Redis:          redisClient,
		RabbitMQ:       rabbitMQConnection,
		Logger:         zapLogger,
		DriverConfig:   driverConfig,
		InternalConfig: internalConfig,
	}

	bootstrapingTheApp(bootstrap, minioClient)

	server := &http.Server{
		Addr:    internalConfig.App.Port,
		Handler: chiRouter,
	}

	go func() {
		log.Printf("Server listening on %s", internalConfig.App.Port)
		err := server.ListenAndServe()
		if err != nil && err != http.ErrServerClosed {
			log.Fatalf("Server failed to start: %v", err)
		}
	}()

	c := make(chan os.Signal, 1)
	signal.Notify(c, os.Interrupt, syscall.SIGTERM)

	<-c

	log.Println("Waiting for pending requests that already received by server to be processed..")

	shutdownCtx, cancel := context.WithTimeout(
		context.Background(),
		time.Second*time.Duration(internalConfig.App.ShutdownTimeoutInSeconds),
	)
	defer cancel()

	err = server.Shutdown(shutdownCtx)
	if err != nil {
		log.Fatalf("Server forced to shutdown: %v", err)
	}

	err = bootstrap.Shutdown(shutdownCtx)
	if err != nil {
		log.Fatalf("Error closing application resources: %v", err)
	}

	log.Println("Server exiting")
}

func bootstrapingTheApp(bootstrap config.Bootstrap, minioClient *minio.Client) {
	// Redis
	redisRepository := sharedRedis.NewRedisRepository(bootstrap.Redis)

	// Attachment storage
	attachmentStorage := sharedStorage.NewMinioStorage(minioClient, bootstrap.InternalConfig.Minio.BucketName)

	// Completion events
	completionNotifier := notifier.NewRabbitMQNotifier(bootstrap.RabbitMQ, bootstrap.InternalConfig.RabbitMQ.CompletionQueue, bootstrap.Logger)

	// Clinic core API clients
	templateClinicClient := templates.NewTemplateClinicClient(bootstrap.InternalConfig.ClinicAPI.BaseUrl, bootstrap.Logger)
	doctorClinicClient := doctors.NewDoctorClinicClient(bootstrap.InternalConfig.ClinicAPI.BaseUrl, bootstrap.Logger)
	patientClinicClient := patients.NewPatientClinicClient(bootstrap.InternalConfig.ClinicAPI.BaseUrl, bootstrap.Logger)
	formResponseClinicClient := formresponses.NewFormResponseClinicClient(bootstrap.InternalConfig.ClinicAPI.BaseUrl, bootstrap.Logger)

	// Session persistence
	sessionRepository := sessions.NewSessionRedisRepository(redisRepository, bootstrap.InternalConfig, bootstrap.Logger)

	// Submission audit log
	submissionAuditRepository := submissions.NewSubmissionAuditMongoRepository(
		bootstrap.MongoDB,
		bootstrap.DriverConfig.MongoDB.DbName,
		bootstrap.Logger,
	)

	// Intake
	intakeUsecase := intake.NewIntakeUsecase(
		sessionRepository,
		redisRepository,
		templateClinicClient,
		doctorClinicClient,
		patientClinicClient,
		formResponseClinicClient,
		attachmentStorage,
		submissionAuditRepository,
		completionNotifier,
		bootstrap.InternalConfig,
		bootstrap.Logger,
	)
	intakeController := intake.NewIntakeController(bootstrap.Logger, bootstrap.InternalConfig, intakeUsecase)

	// Middlewares
	appMiddlewares := &middlewares.Middlewares{
		Log:            bootstrap.Logger,
		InternalConfig: bootstrap.InternalConfig,
	}

	routers.SetupRoutes(bootstrap.Router, bootstrap.InternalConfig, appMiddlewares, intakeController)
}
