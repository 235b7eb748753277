package store

import (
	"context"
	"fmt"
	"regexp"

	"github.com/akolanti/cogcompanion/internal/config"
	"github.com/akolanti/cogcompanion/internal/data/redisStore"
	"github.com/akolanti/cogcompanion/internal/domain/chatModel"
	"github.com/akolanti/cogcompanion/internal/domain/commonModels"
)

var sessionIdPattern = regexp.MustCompile(`^[A-Za-z0-9_-]{1,64}$`)

// ValidateSessionId rejects ids that could not be used as a file name or key.
func ValidateSessionId(id string) error {
	if !sessionIdPattern.MatchString(id) {
		return fmt.Errorf("%w: %q", commonModels.ErrInvalidSessionId, id)
	}
	return nil
}

// New builds the conversation store named by cfg.ChatStore.
func New(ctx context.Context, cfg *config.Config) (chatModel.ConversationStore, error) {
	switch cfg.ChatStore {
	case config.StoreMemory:
		return NewInMemoryConversationStore(), nil
	case config.StoreFile:
		return NewFileConversationStore(cfg.SessionDir)
	case config.StoreRedis:
		rs, err := redisStore.GetRedisStore(ctx, redisStore.Options{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
			DB:       config.RedisConversationStore,
		})
		if err != nil {
			return nil, err
		}
		return NewRedisConversationStore(rs), nil
	default:
		return nil, fmt.Errorf("unknown chat store %q", cfg.ChatStore)
	}
}
