package chat

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"regexp"
	"sync"

	"github.com/ouwenyi03/Jay-Agent/internal/storage"
)

// ErrInvalidConversationID rejects ids that cannot be used as file names.
var ErrInvalidConversationID = errors.New("invalid conversation id")

var conversationIDPattern = regexp.MustCompile(`^[A-Za-z0-9_-]+$`)

// Store persists complete transcripts keyed by conversation id.
type Store interface {
	Load(ctx context.Context, conversationID string) ([]Turn, error)
	Save(ctx context.Context, conversationID string, turns []Turn) error
}

// FileStore keeps each conversation in <dir>/<id>.json.
type FileStore struct {
	layout storage.Layout
}

// NewFileStore returns a Store rooted at the layout's conversations directory.
func NewFileStore(layout storage.Layout) *FileStore {
	return &FileStore{layout: layout}
}

// Path resolves the file holding the given conversation.
func (s *FileStore) Path(conversationID string) (string, error) {
	if !conversationIDPattern.MatchString(conversationID) {
		return "", fmt.Errorf("%w: %q", ErrInvalidConversationID, conversationID)
	}
	return s.layout.ConversationFile(conversationID), nil
}

// Load returns every turn of the conversation. A missing file reads as an
// empty history; a corrupt file is an error.
func (s *FileStore) Load(_ context.Context, conversationID string) ([]Turn, error) {
	path, err := s.Path(conversationID)
	if err != nil {
		return nil, err
	}

	var turns []Turn
	if err := storage.ReadJSON(path, &turns); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("load conversation %s: %w", conversationID, err)
	}
	return turns, nil
}

// Save overwrites the conversation file with turns.
func (s *FileStore) Save(_ context.Context, conversationID string, turns []Turn) error {
	path, err := s.Path(conversationID)
	if err != nil {
		return err
	}
	if turns == nil {
		turns = []Turn{}
	}
	if err := storage.WriteJSON(path, turns); err != nil {
		return fmt.Errorf("save conversation %s: %w", conversationID, err)
	}
	return nil
}

// MemoryStore implements Store in memory, suitable for tests.
type MemoryStore struct {
	mu            sync.RWMutex
	conversations map[string][]Turn
}

// NewMemoryStore returns an empty MemoryStore.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{conversations: make(map[string][]Turn)}
}

func (s *MemoryStore) Load(_ context.Context, conversationID string) ([]Turn, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	turns := s.conversations[conversationID]
	copied := make([]Turn, len(turns))
	copy(copied, turns)
	return copied, nil
}

func (s *MemoryStore) Save(_ context.Context, conversationID string, turns []Turn) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.conversations[conversationID] = append([]Turn(nil), turns...)
	return nil
}
