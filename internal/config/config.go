package config

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/caarlos0/env/v6"
	"github.com/cloudwego/eino-ext/components/model/ark"
	"github.com/cloudwego/eino/components/model"

	"github.com/ouwenyi03/Jay-Agent/internal/service/ai"
	"github.com/ouwenyi03/Jay-Agent/internal/storage"
)

// Provider 选择对话模型的后端。
type Provider string

const (
	ProviderDashScope Provider = "dashscope"
	ProviderArk       Provider = "ark"
	ProviderOpenAI    Provider = "openai"
)

// defaultModels 是未设置 LLM_MODEL 时各 provider 使用的模型。
var defaultModels = map[Provider]string{
	ProviderDashScope: ai.DefaultDashScopeModel,
	ProviderOpenAI:    "gpt-3.5-turbo",
}

// Config 聚合整个服务的配置项。
type Config struct {
	Server  ServerConfig
	AI      AIConfig
	Storage StorageConfig
	Persona PersonaConfig
}

// Load 从环境变量加载配置。
func Load() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parse environment: %w", err)
	}

	addr, err := normalizeAddr(cfg.Server.Port)
	if err != nil {
		return nil, err
	}
	cfg.Server.Addr = addr

	if cfg.AI.DashScopeAPIKey == "" {
		cfg.AI.DashScopeAPIKey = strings.TrimSpace(cfg.AI.AliyunAPIKey)
	}
	cfg.AI.Provider = Provider(strings.ToLower(strings.TrimSpace(string(cfg.AI.Provider))))
	if cfg.AI.Provider == "" {
		cfg.AI.Provider = ProviderDashScope
	}
	cfg.AI.Model = strings.TrimSpace(cfg.AI.Model)
	if cfg.AI.Model == "" {
		cfg.AI.Model = defaultModels[cfg.AI.Provider]
	}

	return cfg, nil
}

// ServerConfig 描述 HTTP 服务配置。
type ServerConfig struct {
	Port string `env:"PORT" envDefault:"8080"`
	// Addr 由 Port 归一化得到。
	Addr string
}

func normalizeAddr(port string) (string, error) {
	port = strings.TrimSpace(port)
	if port == "" {
		port = "8080"
	}

	if strings.Contains(port, ":") {
		// 允许用户直接传入 ":8080" 或 "127.0.0.1:8080"。
		return port, nil
	}

	if strings.Contains(port, " ") {
		return "", fmt.Errorf("invalid PORT value: %q", port)
	}

	return ":" + port, nil
}

// AIConfig 描述大模型相关配置。
type AIConfig struct {
	Provider    Provider      `env:"LLM_PROVIDER" envDefault:"dashscope"`
	// Model 为空时按 provider 取默认值，Ark 没有默认值。
	Model       string        `env:"LLM_MODEL"`
	Temperature float32       `env:"LLM_TEMPERATURE" envDefault:"0.8"`
	MaxTokens   int           `env:"LLM_MAX_TOKENS" envDefault:"500"`
	Timeout     time.Duration `env:"LLM_TIMEOUT" envDefault:"0s"`

	DashScopeAPIKey string `env:"DASHSCOPE_API_KEY"`
	AliyunAPIKey    string `env:"ALIYUN_API_KEY"`
	DashScopeURL    string `env:"DASHSCOPE_URL" envDefault:"https://dashscope.aliyuncs.com/api/v1/services/aigc/text-generation/generation"`

	ArkAPIKey    string `env:"ARK_API_KEY"`
	ArkAccessKey string `env:"ARK_ACCESS_KEY"`
	ArkSecretKey string `env:"ARK_SECRET_KEY"`
	ArkBaseURL   string `env:"ARK_BASE_URL" envDefault:"https://ark.cn-beijing.volces.com/api/v3"`
	ArkRegion    string `env:"ARK_REGION" envDefault:"cn-beijing"`

	OpenAIAPIKey  string `env:"OPENAI_API_KEY"`
	OpenAIBaseURL string `env:"OPENAI_BASE_URL"`
}

// GatewayOptions 返回网关调用参数。
func (c AIConfig) GatewayOptions() ai.Options {
	return ai.Options{
		Temperature: c.Temperature,
		MaxTokens:   c.MaxTokens,
		Timeout:     c.Timeout,
	}
}

// NewChatModel 使用配置创建一个模型实例。
// 缺少凭证不会报错，请求照常发出，由远端拒绝。
func (c AIConfig) NewChatModel(ctx context.Context) (model.BaseChatModel, error) {
	switch c.Provider {
	case ProviderDashScope, "":
		return ai.NewDashScopeModel(ai.DashScopeConfig{
			URL:         c.DashScopeURL,
			APIKey:      c.DashScopeAPIKey,
			Model:       c.Model,
			Temperature: c.Temperature,
			MaxTokens:   c.MaxTokens,
		}), nil
	case ProviderArk:
		if c.Model == "" {
			return nil, fmt.Errorf("Ark 模型配置缺失，请设置 LLM_MODEL 为推理接入点 ID")
		}
		temperature := c.Temperature
		maxTokens := c.MaxTokens
		chatModel, err := ark.NewChatModel(ctx, &ark.ChatModelConfig{
			BaseURL:     c.ArkBaseURL,
			Region:      c.ArkRegion,
			APIKey:      c.ArkAPIKey,
			AccessKey:   c.ArkAccessKey,
			SecretKey:   c.ArkSecretKey,
			Model:       c.Model,
			MaxTokens:   &maxTokens,
			Temperature: &temperature,
		})
		if err != nil {
			return nil, err
		}
		return ai.NewArkModel(chatModel), nil
	case ProviderOpenAI:
		return ai.NewOpenAIModel(c.OpenAIAPIKey, c.OpenAIBaseURL, c.Model, c.Temperature, c.MaxTokens), nil
	default:
		return nil, fmt.Errorf("unknown LLM_PROVIDER %q (want dashscope, ark or openai)", c.Provider)
	}
}

// StorageConfig 描述数据文件位置。
type StorageConfig struct {
	Root string `env:"DATA_ROOT" envDefault:"."`
}

// Layout 返回数据根目录下的文件布局。
func (c StorageConfig) Layout() storage.Layout {
	return storage.Layout{Root: c.Root}
}

// PersonaConfig 描述人设配置。
type PersonaConfig struct {
	// ProfileFile 为空时使用内置人设。
	ProfileFile string `env:"PERSONA_FILE"`
}
