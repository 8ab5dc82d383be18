package config

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/ouwenyi03/Jay-Agent/internal/service/ai"
)

var configKeys = []string{
	"PORT", "LLM_PROVIDER", "LLM_MODEL", "LLM_TEMPERATURE", "LLM_MAX_TOKENS", "LLM_TIMEOUT",
	"DASHSCOPE_API_KEY", "ALIYUN_API_KEY", "DASHSCOPE_URL",
	"ARK_API_KEY", "ARK_ACCESS_KEY", "ARK_SECRET_KEY", "ARK_BASE_URL", "ARK_REGION",
	"OPENAI_API_KEY", "OPENAI_BASE_URL", "DATA_ROOT", "PERSONA_FILE",
}

func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range configKeys {
		// Setenv 负责在测试结束时恢复原值
		t.Setenv(key, "")
		os.Unsetenv(key)
	}
}

func TestLoadDefaults(t *testing.T) {
	clearEnv(t)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load err: %v", err)
	}

	if cfg.Server.Addr != ":8080" {
		t.Fatalf("unexpected addr %q", cfg.Server.Addr)
	}
	if cfg.AI.Provider != ProviderDashScope || cfg.AI.Model != "qwen-plus" {
		t.Fatalf("unexpected ai defaults %+v", cfg.AI)
	}
	if cfg.AI.Temperature != 0.8 || cfg.AI.MaxTokens != 500 || cfg.AI.Timeout != 0 {
		t.Fatalf("unexpected sampling defaults %+v", cfg.AI)
	}
	if cfg.AI.DashScopeURL != ai.DefaultDashScopeURL {
		t.Fatalf("unexpected dashscope url %q", cfg.AI.DashScopeURL)
	}
	if cfg.Storage.Root != "." {
		t.Fatalf("unexpected data root %q", cfg.Storage.Root)
	}
	if cfg.Persona.ProfileFile != "" {
		t.Fatalf("unexpected persona file %q", cfg.Persona.ProfileFile)
	}
}

func TestLoadServerAddr(t *testing.T) {
	cases := map[string]string{
		"9090":           ":9090",
		":7000":          ":7000",
		"127.0.0.1:8081": "127.0.0.1:8081",
	}
	for port, want := range cases {
		clearEnv(t)
		t.Setenv("PORT", port)

		cfg, err := Load()
		if err != nil {
			t.Fatalf("Load(%q) err: %v", port, err)
		}
		if cfg.Server.Addr != want {
			t.Fatalf("PORT=%q: expected %q, got %q", port, want, cfg.Server.Addr)
		}
	}
}

func TestLoadRejectsPortWithSpace(t *testing.T) {
	clearEnv(t)
	t.Setenv("PORT", "80 80")

	if _, err := Load(); err == nil {
		t.Fatal("expected error for PORT with a space")
	}
}

func TestLoadOverrides(t *testing.T) {
	clearEnv(t)
	t.Setenv("LLM_PROVIDER", "OpenAI")
	t.Setenv("LLM_TEMPERATURE", "0.3")
	t.Setenv("LLM_MAX_TOKENS", "128")
	t.Setenv("LLM_TIMEOUT", "15s")
	t.Setenv("DATA_ROOT", "/srv/jay")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load err: %v", err)
	}
	if cfg.AI.Provider != ProviderOpenAI {
		t.Fatalf("expected openai provider, got %q", cfg.AI.Provider)
	}
	opts := cfg.AI.GatewayOptions()
	if opts.Temperature != 0.3 || opts.MaxTokens != 128 || opts.Timeout != 15*time.Second {
		t.Fatalf("unexpected gateway options %+v", opts)
	}
	if cfg.Storage.Layout().PostsFile() != "/srv/jay/jay_data/posts.json" {
		t.Fatalf("unexpected posts path %q", cfg.Storage.Layout().PostsFile())
	}
}

func TestLoadRejectsBadNumber(t *testing.T) {
	clearEnv(t)
	t.Setenv("LLM_MAX_TOKENS", "many")

	if _, err := Load(); err == nil {
		t.Fatal("expected error for non-numeric LLM_MAX_TOKENS")
	}
}

func TestDashScopeKeyFallsBackToAliyunKey(t *testing.T) {
	clearEnv(t)
	t.Setenv("ALIYUN_API_KEY", "sk-aliyun")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load err: %v", err)
	}
	if cfg.AI.DashScopeAPIKey != "sk-aliyun" {
		t.Fatalf("expected fallback key, got %q", cfg.AI.DashScopeAPIKey)
	}

	t.Setenv("DASHSCOPE_API_KEY", "sk-dash")
	cfg, err = Load()
	if err != nil {
		t.Fatalf("Load err: %v", err)
	}
	if cfg.AI.DashScopeAPIKey != "sk-dash" {
		t.Fatalf("DASHSCOPE_API_KEY should win, got %q", cfg.AI.DashScopeAPIKey)
	}
}

func TestNewChatModelProviders(t *testing.T) {
	ctx := context.Background()

	dash, err := AIConfig{Provider: ProviderDashScope}.NewChatModel(ctx)
	if err != nil {
		t.Fatalf("dashscope err: %v", err)
	}
	if _, ok := dash.(*ai.DashScopeModel); !ok {
		t.Fatalf("expected *ai.DashScopeModel, got %T", dash)
	}

	oa, err := AIConfig{Provider: ProviderOpenAI, Model: "qwen-plus"}.NewChatModel(ctx)
	if err != nil {
		t.Fatalf("openai err: %v", err)
	}
	if _, ok := oa.(*ai.OpenAIModel); !ok {
		t.Fatalf("expected *ai.OpenAIModel, got %T", oa)
	}
}

func TestNewChatModelUnknownProvider(t *testing.T) {
	if _, err := (AIConfig{Provider: "unknown"}).NewChatModel(context.Background()); err == nil {
		t.Fatal("expected error for unknown provider")
	}
}

func TestLoadDefaultsModelPerProvider(t *testing.T) {
	cases := map[string]string{
		"dashscope": ai.DefaultDashScopeModel,
		"openai":    "gpt-3.5-turbo",
		"ark":       "",
	}
	for provider, want := range cases {
		clearEnv(t)
		t.Setenv("LLM_PROVIDER", provider)

		cfg, err := Load()
		if err != nil {
			t.Fatalf("Load err: %v", err)
		}
		if cfg.AI.Model != want {
			t.Fatalf("provider %s: expected model %q, got %q", provider, want, cfg.AI.Model)
		}
	}

	clearEnv(t)
	t.Setenv("LLM_PROVIDER", "openai")
	t.Setenv("LLM_MODEL", "qwen-max")
	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load err: %v", err)
	}
	if cfg.AI.Model != "qwen-max" {
		t.Fatalf("LLM_MODEL should win, got %q", cfg.AI.Model)
	}
}

func TestNewChatModelArk(t *testing.T) {
	ctx := context.Background()

	if _, err := (AIConfig{Provider: ProviderArk}).NewChatModel(ctx); err == nil {
		t.Fatal("expected error for ark without a model")
	}

	chatModel, err := AIConfig{
		Provider:   ProviderArk,
		Model:      "ep-20240101000000-test",
		ArkAPIKey:  "test-key",
		ArkBaseURL: "https://ark.cn-beijing.volces.com/api/v3",
		ArkRegion:  "cn-beijing",
	}.NewChatModel(ctx)
	if err != nil {
		t.Fatalf("ark err: %v", err)
	}
	if _, ok := chatModel.(*ai.ArkModel); !ok {
		t.Fatalf("expected *ai.ArkModel, got %T", chatModel)
	}
}
