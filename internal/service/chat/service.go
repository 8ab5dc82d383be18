package chat

import (
	"context"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/ouwenyi03/Jay-Agent/internal/model/chat"
	"github.com/ouwenyi03/Jay-Agent/internal/model/persona"
	"github.com/ouwenyi03/Jay-Agent/internal/service/ai"
)

// PostSource supplies the persona's activity feed.
type PostSource interface {
	Posts(ctx context.Context) ([]persona.Post, error)
}

// Completer turns a prompt into a reply outcome.
type Completer interface {
	Complete(ctx context.Context, prompt string) ai.Result
}

// Service runs one chat exchange end to end against a single conversation.
type Service struct {
	mu             sync.Mutex
	posts          PostSource
	store          chat.Store
	completer      Completer
	profile        persona.Profile
	conversationID string
	now            func() time.Time
}

// Option customises a Service.
type Option func(*Service)

// WithConversation binds the service to a conversation other than the default.
func WithConversation(id string) Option {
	return func(s *Service) { s.conversationID = id }
}

// WithClock overrides the clock used to stamp turns.
func WithClock(now func() time.Time) Option {
	return func(s *Service) { s.now = now }
}

// NewService wires the orchestration dependencies.
func NewService(posts PostSource, store chat.Store, completer Completer, profile persona.Profile, opts ...Option) *Service {
	s := &Service{
		posts:          posts,
		store:          store,
		completer:      completer,
		profile:        profile,
		conversationID: chat.DefaultConversationID,
		now:            time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Profile exposes the persona profile the service speaks with.
func (s *Service) Profile() persona.Profile {
	return s.profile
}

// Prompt builds the prompt a Reply for message would send right now.
func (s *Service) Prompt(ctx context.Context, message string) (string, error) {
	posts, err := s.posts.Posts(ctx)
	if err != nil {
		return "", err
	}
	history, err := s.store.Load(ctx, s.conversationID)
	if err != nil {
		return "", err
	}
	return ai.BuildPrompt(s.profile, message, posts, history), nil
}

// Reply answers message in character and appends the exchange to the
// conversation. Model failures come back as fallback text, not errors; only
// store failures are returned.
//
// The model call happens without holding the lock. The history is reloaded
// under the lock before the new turn is appended so concurrent replies never
// drop each other's turns.
func (s *Service) Reply(ctx context.Context, message string) (string, error) {
	prompt, err := s.Prompt(ctx, message)
	if err != nil {
		return "", err
	}

	result := s.completer.Complete(ctx, prompt)
	reply := result.Reply(s.profile.Fallbacks)
	if result.Outcome != ai.OutcomeSuccess {
		log.Printf("[chat] replying with fallback, outcome=%s", result.Outcome)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	// 重新读取，避免覆盖并发请求已写入的轮次
	history, err := s.store.Load(ctx, s.conversationID)
	if err != nil {
		return "", err
	}
	history = append(history, chat.NewTurn(message, reply, s.now()))
	if err := s.store.Save(ctx, s.conversationID, history); err != nil {
		return "", fmt.Errorf("append turn: %w", err)
	}

	return reply, nil
}

// History returns the full transcript of the bound conversation.
func (s *Service) History(ctx context.Context) ([]chat.Turn, error) {
	history, err := s.store.Load(ctx, s.conversationID)
	if err != nil {
		return nil, err
	}
	if history == nil {
		history = []chat.Turn{}
	}
	return history, nil
}
