package sessions

import (
	"context"
	"intake-service/internal/app/config"
	"intake-service/internal/app/contracts"
	"intake-service/internal/app/services/core/intake"
	"intake-service/internal/pkg/constvars"
	"intake-service/internal/pkg/exceptions"
	"time"

	json "github.com/goccy/go-json"
	"go.uber.org/zap"
)

type sessionRedisRepository struct {
	RedisRepository contracts.RedisRepository
	Expiry          time.Duration
	Log             *zap.Logger
}

func NewSessionRedisRepository(redisRepository contracts.RedisRepository, internalConfig *config.InternalConfig, logger *zap.Logger) intake.SessionRepository {
	return &sessionRedisRepository{
		RedisRepository: redisRepository,
		Expiry:          time.Hour * time.Duration(internalConfig.Intake.SessionExpiryTimeInHours),
		Log:             logger,
	}
}

func (r *sessionRedisRepository) SaveSession(ctx context.Context, state *intake.SessionState) error {
	return r.RedisRepository.Set(ctx, sessionKey(state.SessionID), state, r.Expiry)
}

func (r *sessionRedisRepository) FindSessionByID(ctx context.Context, sessionID string) (*intake.SessionState, error) {
	data, err := r.RedisRepository.Get(ctx, sessionKey(sessionID))
	if err != nil {
		return nil, err
	}
	if data == "" {
		return nil, nil
	}

	state := new(intake.SessionState)
	err = json.Unmarshal([]byte(data), state)
	if err != nil {
		return nil, exceptions.ErrSessionDecode(err)
	}
	return state, nil
}

func (r *sessionRedisRepository) DeleteSession(ctx context.Context, sessionID string) error {
	return r.RedisRepository.Delete(ctx, sessionKey(sessionID))
}

func sessionKey(sessionID string) string {
	return constvars.RedisIntakeSessionKeyPrefix + sessionID
}
