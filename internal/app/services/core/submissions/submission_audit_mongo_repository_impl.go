package submissions

import (
	"context"
	"intake-service/internal/app/contracts"
	"intake-service/internal/app/models"
	"intake-service/internal/pkg/constvars"
	"intake-service/internal/pkg/exceptions"

	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

type submissionAuditMongoRepository struct {
	Collection *mongo.Collection
	Log        *zap.Logger
}

func NewSubmissionAuditMongoRepository(client *mongo.Client, databaseName string, logger *zap.Logger) contracts.SubmissionAuditRepository {
	return &submissionAuditMongoRepository{
		Collection: client.Database(databaseName).Collection(constvars.MongoCollectionSubmissionAttempts),
		Log:        logger,
	}
}

func (r *submissionAuditMongoRepository) RecordAttempt(ctx context.Context, attempt *models.SubmissionAttempt) error {
	result, err := r.Collection.InsertOne(ctx, attempt)
	if err != nil {
		return exceptions.ErrMongoDBInsertDocument(err)
	}

	r.Log.Debug("submissionAuditMongoRepository.RecordAttempt inserted document",
		zap.String(constvars.LoggingSessionIDKey, attempt.SessionID),
		zap.String(constvars.LoggingOutcomeKey, attempt.Outcome),
		zap.Any("inserted_id", result.InsertedID),
	)
	return nil
}
