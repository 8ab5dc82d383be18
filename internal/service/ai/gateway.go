package ai

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/cloudwego/eino/components/model"
	"github.com/cloudwego/eino/components/prompt"
	"github.com/cloudwego/eino/schema"

	"github.com/ouwenyi03/Jay-Agent/internal/model/persona"
)

// Outcome classifies how a completion attempt ended.
type Outcome int

const (
	OutcomeSuccess Outcome = iota
	OutcomeHTTPError
	OutcomeDecodeError
	OutcomeShapeError
	OutcomeTransportError
)

func (o Outcome) String() string {
	switch o {
	case OutcomeSuccess:
		return "success"
	case OutcomeHTTPError:
		return "http_error"
	case OutcomeDecodeError:
		return "decode_error"
	case OutcomeShapeError:
		return "shape_error"
	case OutcomeTransportError:
		return "transport_error"
	default:
		return fmt.Sprintf("outcome(%d)", int(o))
	}
}

// Result is the outcome of one completion attempt.
type Result struct {
	Outcome Outcome
	Text    string
	Status  int
	Err     error
}

// Reply returns the model text on success and the matching fallback otherwise.
func (r Result) Reply(fallbacks persona.Fallbacks) string {
	switch r.Outcome {
	case OutcomeSuccess:
		return r.Text
	case OutcomeHTTPError:
		return fallbacks.Unavailable
	case OutcomeShapeError:
		return fallbacks.Unclear
	default:
		return fallbacks.Hiccup
	}
}

// Options tunes sampling and the optional call deadline.
type Options struct {
	Temperature float32
	MaxTokens   int
	// Timeout bounds a single call. Zero means no deadline.
	Timeout time.Duration
}

// DefaultOptions mirrors the sampling parameters the persona was tuned with.
func DefaultOptions() Options {
	return Options{Temperature: 0.8, MaxTokens: 500}
}

// Gateway sends a built prompt to the chat model in a single attempt.
type Gateway struct {
	chatModel    model.BaseChatModel
	template     prompt.ChatTemplate
	systemPrompt string
	opts         Options
}

// NewGateway wraps chatModel. The system message comes from the profile and
// the user message is the prompt produced by BuildPrompt.
func NewGateway(chatModel model.BaseChatModel, profile persona.Profile, opts Options) *Gateway {
	template := prompt.FromMessages(
		schema.FString,
		schema.SystemMessage("{system}"),
		schema.UserMessage("{prompt}"),
	)

	return &Gateway{
		chatModel:    chatModel,
		template:     template,
		systemPrompt: profile.SystemPrompt,
		opts:         opts,
	}
}

// Complete performs one best-effort call. It never returns an error; every
// failure is folded into the Result and logged for diagnostics.
func (g *Gateway) Complete(ctx context.Context, promptText string) Result {
	if g.opts.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, g.opts.Timeout)
		defer cancel()
	}

	messages, err := g.template.Format(ctx, map[string]any{
		"system": g.systemPrompt,
		"prompt": promptText,
	})
	if err != nil {
		return g.fail(fmt.Errorf("format messages: %w", err))
	}

	reply, err := g.chatModel.Generate(ctx, messages,
		model.WithTemperature(g.opts.Temperature),
		model.WithMaxTokens(g.opts.MaxTokens),
	)
	if err != nil {
		return g.fail(err)
	}
	if reply == nil {
		return g.fail(ErrMissingText)
	}

	log.Printf("[ai] completion ok, length=%d", len(reply.Content))
	return Result{Outcome: OutcomeSuccess, Text: reply.Content}
}

func (g *Gateway) fail(err error) Result {
	result := classify(err)
	log.Printf("[ai] completion failed outcome=%s status=%d: %v", result.Outcome, result.Status, err)
	return result
}

func classify(err error) Result {
	var statusErr *StatusError
	switch {
	case errors.As(err, &statusErr):
		return Result{Outcome: OutcomeHTTPError, Status: statusErr.Code, Err: err}
	case errors.Is(err, ErrDecode):
		return Result{Outcome: OutcomeDecodeError, Err: err}
	case errors.Is(err, ErrMissingText):
		return Result{Outcome: OutcomeShapeError, Err: err}
	default:
		return Result{Outcome: OutcomeTransportError, Err: err}
	}
}
