package session

import (
	"context"
	"slices"
	"sync"
	"time"

	"github.com/akolanti/cogcompanion/internal/adapter/utils"
	"github.com/akolanti/cogcompanion/internal/config"
	"github.com/akolanti/cogcompanion/internal/data/store"
	"github.com/akolanti/cogcompanion/internal/domain/chatModel"
	"github.com/akolanti/cogcompanion/internal/domain/commonModels"
	"github.com/akolanti/cogcompanion/internal/metrics"
	"github.com/akolanti/cogcompanion/pkg/logger_i"
)

// Manager owns every live SessionContext. Work on one session is serialized by a
// per-session lock; different sessions never share state.
type Manager struct {
	store    chatModel.ConversationStore
	mu       sync.Mutex
	sessions map[string]*entry
	now      func() time.Time
	logger   *logger_i.Logger
}

type entry struct {
	mu       sync.Mutex
	state    *chatModel.SessionContext
	lastUsed time.Time
}

func NewManager(conversations chatModel.ConversationStore) *Manager {
	return &Manager{
		store:    conversations,
		sessions: make(map[string]*entry),
		now:      time.Now,
		logger:   logger_i.NewLogger("session_manager"),
	}
}

// Do runs fn with exclusive access to the session. An empty id starts a new
// session; an unknown id is created and its persisted history, if any, loaded.
// The resolved id is returned.
func (m *Manager) Do(ctx context.Context, id string, fn func(s *Session) error) (string, error) {
	if id == "" {
		id = utils.GetNewUUID()
	} else if err := store.ValidateSessionId(id); err != nil {
		return "", err
	}

	e := m.lock(id)
	defer e.mu.Unlock()

	if e.state == nil {
		history, err := m.store.Load(ctx, id)
		if err != nil {
			m.drop(id, e)
			return id, err
		}
		e.state = &chatModel.SessionContext{Id: id, History: history}
		metrics.IncrementActiveSessions()
		m.logger.WithContext(ctx, config.TRACE_ID_KEY).Debug("Session opened", "sessionId", id, "turns", len(history))
	}
	e.lastUsed = m.now()
	return id, fn(&Session{state: e.state, store: m.store})
}

// Snapshot returns a copy of a session's state, loading persisted history for
// sessions not in memory. ErrSessionNotFound is returned when neither exists.
func (m *Manager) Snapshot(ctx context.Context, id string) (chatModel.SessionContext, error) {
	if err := store.ValidateSessionId(id); err != nil {
		return chatModel.SessionContext{}, err
	}
	m.mu.Lock()
	_, live := m.sessions[id]
	m.mu.Unlock()

	if !live {
		exists, err := m.store.Exists(ctx, id)
		if err != nil {
			return chatModel.SessionContext{}, err
		}
		if !exists {
			return chatModel.SessionContext{}, commonModels.ErrSessionNotFound
		}
	}

	var snapshot chatModel.SessionContext
	_, err := m.Do(ctx, id, func(s *Session) error {
		snapshot = s.Snapshot()
		return nil
	})
	return snapshot, err
}

// Sweep forgets sessions idle for longer than maxIdle. Persisted history stays in
// the store; uploaded files go away with the session.
func (m *Manager) Sweep(maxIdle time.Duration) int {
	cutoff := m.now().Add(-maxIdle)
	m.mu.Lock()
	defer m.mu.Unlock()
	removed := 0
	for id, e := range m.sessions {
		if !e.mu.TryLock() {
			continue
		}
		if e.lastUsed.Before(cutoff) {
			delete(m.sessions, id)
			if e.state != nil {
				metrics.DecrementActiveSessions()
			}
			removed++
		}
		e.mu.Unlock()
	}
	return removed
}

// RunJanitor sweeps idle sessions until ctx is done.
func (m *Manager) RunJanitor(ctx context.Context, interval, maxIdle time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if n := m.Sweep(maxIdle); n > 0 {
				m.logger.Info("Evicted idle sessions", "count", n)
			}
		}
	}
}

// lock returns the locked entry for id, retrying when a sweep evicted the entry
// between lookup and lock.
func (m *Manager) lock(id string) *entry {
	for {
		e := m.entry(id)
		e.mu.Lock()
		m.mu.Lock()
		current := m.sessions[id] == e
		m.mu.Unlock()
		if current {
			return e
		}
		e.mu.Unlock()
	}
}

func (m *Manager) entry(id string) *entry {
	m.mu.Lock()
	defer m.mu.Unlock()
	e, ok := m.sessions[id]
	if !ok {
		e = &entry{lastUsed: m.now()}
		m.sessions[id] = e
	}
	return e
}

func (m *Manager) drop(id string, e *entry) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.sessions[id] == e {
		delete(m.sessions, id)
	}
}

// Session is the handle fn receives inside Manager.Do. It must not be kept after
// fn returns.
type Session struct {
	state *chatModel.SessionContext
	store chatModel.ConversationStore
}

func (s *Session) Id() string { return s.state.Id }

func (s *Session) History() []commonModels.ConversationTurn { return s.state.History }

func (s *Session) Files() []commonModels.UploadedFile { return s.state.Files }

func (s *Session) HasFile(name string) bool { return s.state.HasFile(name) }

// File returns the upload with the given name.
func (s *Session) File(name string) (commonModels.UploadedFile, bool) {
	for _, f := range s.state.Files {
		if f.Name == name {
			return f, true
		}
	}
	return commonModels.UploadedFile{}, false
}

// Record persists turns and then appends them to the in-memory history, so memory
// never runs ahead of the store.
func (s *Session) Record(ctx context.Context, turns ...commonModels.ConversationTurn) error {
	if err := s.store.Append(ctx, s.state.Id, turns...); err != nil {
		return err
	}
	s.state.History = append(s.state.History, turns...)
	return nil
}

// AddFile attaches an upload unless one with the same name is already present.
func (s *Session) AddFile(f commonModels.UploadedFile) bool {
	if s.state.HasFile(f.Name) {
		return false
	}
	s.state.Files = append(s.state.Files, f)
	return true
}

func (s *Session) ClearHistory(ctx context.Context) error {
	if err := s.store.Clear(ctx, s.state.Id); err != nil {
		return err
	}
	s.state.History = nil
	return nil
}

func (s *Session) ClearFiles() int {
	n := len(s.state.Files)
	s.state.Files = nil
	return n
}

func (s *Session) Snapshot() chatModel.SessionContext {
	return chatModel.SessionContext{
		Id:      s.state.Id,
		History: slices.Clone(s.state.History),
		Files:   slices.Clone(s.state.Files),
	}
}
