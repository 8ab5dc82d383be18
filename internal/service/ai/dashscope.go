package ai

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/cloudwego/eino/components/model"
	"github.com/cloudwego/eino/schema"
	"github.com/tidwall/gjson"
)

const (
	// DefaultDashScopeURL is the native DashScope text-generation endpoint.
	DefaultDashScopeURL = "https://dashscope.aliyuncs.com/api/v1/services/aigc/text-generation/generation"
	// DefaultDashScopeModel is the Qwen model used when none is configured.
	DefaultDashScopeModel = "qwen-plus"
)

var _ model.BaseChatModel = (*DashScopeModel)(nil)

// DashScopeConfig configures the DashScope chat model.
type DashScopeConfig struct {
	URL         string
	APIKey      string
	Model       string
	Temperature float32
	MaxTokens   int
	HTTPClient  *http.Client
}

// DashScopeModel talks to the DashScope text-generation API and exposes it as
// an eino chat model. Failures are reported as *StatusError, ErrDecode or
// ErrMissingText so callers can tell them apart.
type DashScopeModel struct {
	url         string
	apiKey      string
	model       string
	temperature float32
	maxTokens   int
	client      *http.Client
}

// NewDashScopeModel fills unset fields with the DashScope defaults. An empty
// API key is kept as is; the endpoint rejects it.
func NewDashScopeModel(cfg DashScopeConfig) *DashScopeModel {
	m := &DashScopeModel{
		url:         cfg.URL,
		apiKey:      cfg.APIKey,
		model:       cfg.Model,
		temperature: cfg.Temperature,
		maxTokens:   cfg.MaxTokens,
		client:      cfg.HTTPClient,
	}
	if m.url == "" {
		m.url = DefaultDashScopeURL
	}
	if m.model == "" {
		m.model = DefaultDashScopeModel
	}
	if m.client == nil {
		m.client = &http.Client{}
	}
	return m
}

type dashScopeRequest struct {
	Model      string              `json:"model"`
	Input      dashScopeInput      `json:"input"`
	Parameters dashScopeParameters `json:"parameters"`
}

type dashScopeInput struct {
	Messages []dashScopeMessage `json:"messages"`
}

type dashScopeMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type dashScopeParameters struct {
	Temperature float32 `json:"temperature"`
	MaxTokens   int     `json:"max_tokens"`
}

// Generate sends one request and returns the reply found at output.text.
func (m *DashScopeModel) Generate(ctx context.Context, input []*schema.Message, opts ...model.Option) (*schema.Message, error) {
	options := model.GetCommonOptions(&model.Options{
		Model:       &m.model,
		Temperature: &m.temperature,
		MaxTokens:   &m.maxTokens,
	}, opts...)

	payload := dashScopeRequest{
		Model: *options.Model,
		Parameters: dashScopeParameters{
			Temperature: *options.Temperature,
			MaxTokens:   *options.MaxTokens,
		},
	}
	for _, msg := range input {
		payload.Input.Messages = append(payload.Input.Messages, dashScopeMessage{
			Role:    string(msg.Role),
			Content: msg.Content,
		})
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("encode dashscope request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, m.url, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("build dashscope request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+m.apiKey)

	resp, err := m.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("dashscope request: %w", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read dashscope response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return nil, &StatusError{Code: resp.StatusCode, Body: snippet(raw)}
	}
	if !gjson.ValidBytes(raw) {
		return nil, fmt.Errorf("%w: %s", ErrDecode, snippet(raw))
	}

	text := gjson.GetBytes(raw, "output.text")
	if !text.Exists() {
		return nil, fmt.Errorf("%w: %s", ErrMissingText, snippet(raw))
	}
	return schema.AssistantMessage(text.String(), nil), nil
}

// Stream has no incremental mode; it yields the full reply as a single chunk.
func (m *DashScopeModel) Stream(ctx context.Context, input []*schema.Message, opts ...model.Option) (*schema.StreamReader[*schema.Message], error) {
	msg, err := m.Generate(ctx, input, opts...)
	if err != nil {
		return nil, err
	}
	return schema.StreamReaderFromArray([]*schema.Message{msg}), nil
}
