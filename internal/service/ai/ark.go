package ai

import (
	"context"
	"errors"

	"github.com/cloudwego/eino/components/model"
	"github.com/cloudwego/eino/schema"
	arkmodel "github.com/volcengine/volcengine-go-sdk/service/arkruntime/model"
)

var _ model.BaseChatModel = (*ArkModel)(nil)

// ArkModel wraps the eino-ext Ark chat model so that Ark API failures carrying
// an HTTP status surface as *StatusError.
type ArkModel struct {
	inner model.BaseChatModel
}

func NewArkModel(inner model.BaseChatModel) *ArkModel {
	return &ArkModel{inner: inner}
}

func (m *ArkModel) Generate(ctx context.Context, input []*schema.Message, opts ...model.Option) (*schema.Message, error) {
	msg, err := m.inner.Generate(ctx, input, opts...)
	if err != nil {
		return nil, arkStatusError(err)
	}
	return msg, nil
}

func (m *ArkModel) Stream(ctx context.Context, input []*schema.Message, opts ...model.Option) (*schema.StreamReader[*schema.Message], error) {
	stream, err := m.inner.Stream(ctx, input, opts...)
	if err != nil {
		return nil, arkStatusError(err)
	}
	return stream, nil
}

func arkStatusError(err error) error {
	var apiErr *arkmodel.APIError
	if errors.As(err, &apiErr) && apiErr.HTTPStatusCode != 0 {
		return &StatusError{Code: apiErr.HTTPStatusCode, Body: apiErr.Message, Err: err}
	}
	var reqErr *arkmodel.RequestError
	if errors.As(err, &reqErr) && reqErr.HTTPStatusCode != 0 {
		return &StatusError{Code: reqErr.HTTPStatusCode, Body: reqErr.Error(), Err: err}
	}
	return err
}
