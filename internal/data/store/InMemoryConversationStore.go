package store

import (
	"context"
	"slices"
	"sync"

	"github.com/akolanti/cogcompanion/internal/domain/commonModels"
	"github.com/akolanti/cogcompanion/pkg/logger_i"
)

var inMemLogger = logger_i.NewLogger("InMem ConversationStore")

type InMemoryConversationStore struct {
	chatLock *sync.RWMutex
	chatMap  map[string][]commonModels.ConversationTurn
}

func NewInMemoryConversationStore() *InMemoryConversationStore {
	return &InMemoryConversationStore{
		chatLock: new(sync.RWMutex),
		chatMap:  make(map[string][]commonModels.ConversationTurn),
	}
}

func (store *InMemoryConversationStore) Exists(_ context.Context, sessionId string) (bool, error) {
	store.chatLock.RLock()
	defer store.chatLock.RUnlock()
	_, ok := store.chatMap[sessionId]
	return ok, nil
}

func (store *InMemoryConversationStore) Load(_ context.Context, sessionId string) ([]commonModels.ConversationTurn, error) {
	store.chatLock.RLock()
	defer store.chatLock.RUnlock()
	return slices.Clone(store.chatMap[sessionId]), nil
}

func (store *InMemoryConversationStore) Append(_ context.Context, sessionId string, turns ...commonModels.ConversationTurn) error {
	store.chatLock.Lock()
	defer store.chatLock.Unlock()
	store.chatMap[sessionId] = append(store.chatMap[sessionId], turns...)
	inMemLogger.Debug("Saved turns", "sessionId", sessionId, "count", len(turns))
	return nil
}

func (store *InMemoryConversationStore) Clear(_ context.Context, sessionId string) error {
	store.chatLock.Lock()
	defer store.chatLock.Unlock()
	delete(store.chatMap, sessionId)
	return nil
}
