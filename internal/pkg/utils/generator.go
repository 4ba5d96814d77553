package utils

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

func GenerateRequestID() string {
	return uuid.New().String()
}

func GenerateSessionID() string {
	return uuid.New().String()
}

// GenerateAttachmentObjectKey builds a collision-free object key for a
// captured file. The session and question segments keep the bucket browsable.
func GenerateAttachmentObjectKey(sessionID, questionID, fileName string) string {
	timestamp := time.Now().Format("20060102_150405.000000000")
	return fmt.Sprintf("%s/%s/%s_%s", sessionID, questionID, timestamp, fileName)
}
