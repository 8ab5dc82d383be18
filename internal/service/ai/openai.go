package ai

import (
	"context"
	"errors"
	"fmt"

	"github.com/cloudwego/eino/components/model"
	"github.com/cloudwego/eino/schema"
	"github.com/sashabaranov/go-openai"
)

var _ model.BaseChatModel = (*OpenAIModel)(nil)

// OpenAIModel adapts any OpenAI-compatible chat endpoint to an eino chat model.
type OpenAIModel struct {
	client      *openai.Client
	model       string
	temperature float32
	maxTokens   int
}

func NewOpenAIModel(apiKey, baseURL, modelName string, temperature float32, maxTokens int) *OpenAIModel {
	config := openai.DefaultConfig(apiKey)
	if baseURL != "" {
		config.BaseURL = baseURL
	}
	return &OpenAIModel{
		client:      openai.NewClientWithConfig(config),
		model:       modelName,
		temperature: temperature,
		maxTokens:   maxTokens,
	}
}

func (m *OpenAIModel) Generate(ctx context.Context, input []*schema.Message, opts ...model.Option) (*schema.Message, error) {
	options := model.GetCommonOptions(&model.Options{
		Model:       &m.model,
		Temperature: &m.temperature,
		MaxTokens:   &m.maxTokens,
	}, opts...)

	req := openai.ChatCompletionRequest{
		Model:       *options.Model,
		Temperature: *options.Temperature,
		MaxTokens:   *options.MaxTokens,
	}
	for _, msg := range input {
		req.Messages = append(req.Messages, openai.ChatCompletionMessage{Role: string(msg.Role), Content: msg.Content})
	}

	resp, err := m.client.CreateChatCompletion(ctx, req)
	if err != nil {
		var apiErr *openai.APIError
		if errors.As(err, &apiErr) && apiErr.HTTPStatusCode != 0 {
			return nil, &StatusError{Code: apiErr.HTTPStatusCode, Body: apiErr.Message, Err: err}
		}
		var reqErr *openai.RequestError
		if errors.As(err, &reqErr) && reqErr.HTTPStatusCode != 0 {
			return nil, &StatusError{Code: reqErr.HTTPStatusCode, Body: reqErr.Error(), Err: err}
		}
		return nil, fmt.Errorf("openai chat completion: %w", err)
	}

	if len(resp.Choices) == 0 {
		return nil, fmt.Errorf("%w: no choices returned", ErrMissingText)
	}
	if resp.Choices[0].Message.Content == "" {
		return nil, fmt.Errorf("%w: empty completion", ErrMissingText)
	}
	return schema.AssistantMessage(resp.Choices[0].Message.Content, nil), nil
}

func (m *OpenAIModel) Stream(ctx context.Context, input []*schema.Message, opts ...model.Option) (*schema.StreamReader[*schema.Message], error) {
	msg, err := m.Generate(ctx, input, opts...)
	if err != nil {
		return nil, err
	}
	return schema.StreamReaderFromArray([]*schema.Message{msg}), nil
}
