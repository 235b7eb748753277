package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sync"

	"github.com/akolanti/cogcompanion/internal/domain/commonModels"
	"github.com/akolanti/cogcompanion/pkg/logger_i"
)

// FileConversationStore writes each session to <dir>/<id>.json. Every Append
// rewrites the file before returning.
type FileConversationStore struct {
	dir    string
	mu     sync.Mutex
	logger *logger_i.Logger
}

func NewFileConversationStore(dir string) (*FileConversationStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("creating session dir: %w", err)
	}
	return &FileConversationStore{dir: dir, logger: logger_i.NewLogger("FileConversationStore")}, nil
}

func (s *FileConversationStore) path(sessionId string) (string, error) {
	if err := ValidateSessionId(sessionId); err != nil {
		return "", err
	}
	return filepath.Join(s.dir, sessionId+".json"), nil
}

func (s *FileConversationStore) Exists(_ context.Context, sessionId string) (bool, error) {
	p, err := s.path(sessionId)
	if err != nil {
		return false, err
	}
	_, err = os.Stat(p)
	if errors.Is(err, fs.ErrNotExist) {
		return false, nil
	}
	return err == nil, err
}

func (s *FileConversationStore) Load(_ context.Context, sessionId string) ([]commonModels.ConversationTurn, error) {
	p, err := s.path(sessionId)
	if err != nil {
		return nil, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	turns, err := s.read(p)
	if err != nil {
		// shown as empty so the session can still be cleared; Append refuses it
		s.logger.Warn("Unreadable session file", "path", p, "error", err)
		return nil, nil
	}
	return turns, nil
}

func (s *FileConversationStore) Append(_ context.Context, sessionId string, turns ...commonModels.ConversationTurn) error {
	p, err := s.path(sessionId)
	if err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	existing, err := s.read(p)
	if err != nil {
		return err
	}
	return s.write(p, append(existing, turns...))
}

func (s *FileConversationStore) Clear(_ context.Context, sessionId string) error {
	p, err := s.path(sessionId)
	if err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := os.Remove(p); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return err
	}
	return nil
}

// read treats a missing file as an empty history.
func (s *FileConversationStore) read(p string) ([]commonModels.ConversationTurn, error) {
	data, err := os.ReadFile(p)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %w", commonModels.ErrCorruptSession, err)
	}
	var turns []commonModels.ConversationTurn
	if err := json.Unmarshal(data, &turns); err != nil {
		return nil, fmt.Errorf("%w: %w", commonModels.ErrCorruptSession, err)
	}
	return turns, nil
}

func (s *FileConversationStore) write(p string, turns []commonModels.ConversationTurn) error {
	data, err := json.MarshalIndent(turns, "", "  ")
	if err != nil {
		return err
	}
	tmp, err := os.CreateTemp(s.dir, ".session-*")
	if err != nil {
		return err
	}
	defer os.Remove(tmp.Name())
	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		return err
	}
	if err := tmp.Sync(); err != nil {
		_ = tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	return os.Rename(tmp.Name(), p)
}
