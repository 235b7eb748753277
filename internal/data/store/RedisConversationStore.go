package store

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/akolanti/cogcompanion/internal/config"
	"github.com/akolanti/cogcompanion/internal/data/redisStore"
	"github.com/akolanti/cogcompanion/internal/domain/commonModels"
	"github.com/akolanti/cogcompanion/pkg/logger_i"
)

const redisKeyPrefix = "chat:"

// RedisConversationStore keeps one redis list per session, one JSON turn per entry.
type RedisConversationStore struct {
	store  *redisStore.Store
	logger *logger_i.Logger
}

func NewRedisConversationStore(store *redisStore.Store) *RedisConversationStore {
	return &RedisConversationStore{
		store:  store,
		logger: logger_i.NewLogger("ConversationStore"),
	}
}

func redisKey(sessionId string) string { return redisKeyPrefix + sessionId }

func (s *RedisConversationStore) Exists(ctx context.Context, sessionId string) (bool, error) {
	return s.store.Exists(ctx, redisKey(sessionId))
}

func (s *RedisConversationStore) Load(ctx context.Context, sessionId string) ([]commonModels.ConversationTurn, error) {
	log := s.logger.WithContext(ctx, config.TRACE_ID_KEY).With("sessionId", sessionId)
	raw, err := s.store.ListGetAll(ctx, redisKey(sessionId))
	if err != nil {
		log.Error("Error getting history", "error", err)
		return nil, err
	}
	turns := make([]commonModels.ConversationTurn, 0, len(raw))
	for _, entry := range raw {
		var turn commonModels.ConversationTurn
		if err := json.Unmarshal([]byte(entry), &turn); err != nil {
			log.Warn("Skipping unreadable turn", "error", err)
			continue
		}
		turns = append(turns, turn)
	}
	return turns, nil
}

func (s *RedisConversationStore) Append(ctx context.Context, sessionId string, turns ...commonModels.ConversationTurn) error {
	values := make([]interface{}, len(turns))
	for i, turn := range turns {
		data, err := json.Marshal(turn)
		if err != nil {
			return fmt.Errorf("marshalling turn: %w", err)
		}
		values[i] = data
	}
	if err := s.store.ListAppend(ctx, redisKey(sessionId), config.RedisConversationStoreTTL, values...); err != nil {
		s.logger.WithContext(ctx, config.TRACE_ID_KEY).Error("Error saving turns", "sessionId", sessionId, "error", err)
		return err
	}
	return nil
}

func (s *RedisConversationStore) Clear(ctx context.Context, sessionId string) error {
	return s.store.Del(ctx, redisKey(sessionId))
}
