package persona

import (
	"context"
	"fmt"
	"log"
	"sync"

	"github.com/ouwenyi03/Jay-Agent/internal/model/persona"
)

// Service serves persona posts, seeding the store the first time it is empty.
type Service struct {
	mu    sync.Mutex
	store persona.PostStore
	seed  func() []persona.Post
}

// NewService wires the service to a post store using the built-in seed.
func NewService(store persona.PostStore) *Service {
	return &Service{store: store, seed: persona.Seed}
}

// Posts returns the stored posts unchanged when there are any. Otherwise it
// writes the seed list and returns it. Concurrent callers never seed twice.
func (s *Service) Posts(ctx context.Context) ([]persona.Post, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	posts, err := s.store.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("load persona posts: %w", err)
	}
	if len(posts) > 0 {
		return posts, nil
	}

	seed := s.seed()
	if err := s.store.Save(ctx, seed); err != nil {
		return nil, fmt.Errorf("seed persona posts: %w", err)
	}
	log.Printf("[persona] seeded %d posts", len(seed))
	return seed, nil
}
