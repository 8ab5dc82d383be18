package persona

import (
	"context"
	"errors"
	"io/fs"
	"os"
	"sync"

	"github.com/ouwenyi03/Jay-Agent/internal/storage"
)

// PostStore loads and replaces the full list of persona posts.
type PostStore interface {
	Load(ctx context.Context) ([]Post, error)
	Save(ctx context.Context, posts []Post) error
}

// FilePostStore keeps posts in a single JSON array file.
type FilePostStore struct {
	path string
}

// NewFilePostStore returns a store backed by the JSON file at path.
func NewFilePostStore(path string) *FilePostStore {
	return &FilePostStore{path: path}
}

// Path reports the backing file.
func (s *FilePostStore) Path() string {
	return s.path
}

// Load returns the stored posts. A missing or zero-length file reads as no
// posts.
func (s *FilePostStore) Load(_ context.Context) ([]Post, error) {
	info, err := os.Stat(s.path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	if err == nil && info.Size() == 0 {
		return nil, nil
	}

	var posts []Post
	if err := storage.ReadJSON(s.path, &posts); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil
		}
		return nil, err
	}
	return posts, nil
}

// Save overwrites the file with posts.
func (s *FilePostStore) Save(_ context.Context, posts []Post) error {
	if posts == nil {
		posts = []Post{}
	}
	return storage.WriteJSON(s.path, posts)
}

// MemoryPostStore implements PostStore with an in-memory slice, suitable for tests.
type MemoryPostStore struct {
	mu    sync.Mutex
	items []Post
	saves int
}

// NewMemoryPostStore returns a MemoryPostStore preloaded with the supplied posts.
func NewMemoryPostStore(items []Post) *MemoryPostStore {
	return &MemoryPostStore{items: append([]Post(nil), items...)}
}

func (s *MemoryPostStore) Load(_ context.Context) ([]Post, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]Post(nil), s.items...), nil
}

func (s *MemoryPostStore) Save(_ context.Context, posts []Post) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.items = append([]Post(nil), posts...)
	s.saves++
	return nil
}

// Saves reports how many times Save has been called.
func (s *MemoryPostStore) Saves() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.saves
}
