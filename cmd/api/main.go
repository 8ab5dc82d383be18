package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/ouwenyi03/Jay-Agent/internal/config"
	"github.com/ouwenyi03/Jay-Agent/internal/handler"
	modelchat "github.com/ouwenyi03/Jay-Agent/internal/model/chat"
	"github.com/ouwenyi03/Jay-Agent/internal/model/persona"
	"github.com/ouwenyi03/Jay-Agent/internal/service/ai"
	"github.com/ouwenyi03/Jay-Agent/internal/service/chat"
	personaservice "github.com/ouwenyi03/Jay-Agent/internal/service/persona"
	"github.com/ouwenyi03/Jay-Agent/internal/storage"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Load .env file
	if err := godotenv.Load(); err != nil {
		log.Printf("warning: failed to load .env file: %v", err)
		log.Println("continuing with system environment variables only")
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load configuration: %v", err)
	}

	layout := cfg.Storage.Layout()
	if err := storage.Bootstrap(layout); err != nil {
		log.Fatalf("failed to prepare data files: %v", err)
	}

	profile, err := persona.LoadProfile(cfg.Persona.ProfileFile)
	if err != nil {
		log.Fatalf("failed to load persona profile: %v", err)
	}

	if cfg.AI.Provider == config.ProviderDashScope && cfg.AI.DashScopeAPIKey == "" {
		log.Println("DASHSCOPE_API_KEY 未配置，模型请求将被拒绝并返回兜底回复")
	}
	chatModel, err := cfg.AI.NewChatModel(ctx)
	if err != nil {
		log.Fatalf("failed to initialize chat model: %v", err)
	}
	log.Printf("chat model ready provider=%s model=%s", cfg.AI.Provider, cfg.AI.Model)

	postService := personaservice.NewService(persona.NewFilePostStore(layout.PostsFile()))
	gateway := ai.NewGateway(chatModel, profile, cfg.AI.GatewayOptions())
	chatService := chat.NewService(postService, modelchat.NewFileStore(layout), gateway, profile)

	router := handler.NewRouter(postService, chatService)

	startServer(ctx, cfg.Server, router)
}

func startServer(ctx context.Context, serverCfg config.ServerConfig, router http.Handler) {
	addr := serverCfg.Addr
	srv := &http.Server{
		Addr:              addr,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
		IdleTimeout:       120 * time.Second,
	}

	log.Printf("Jay Agent listening on %s", addr)
	if err := runServer(ctx, srv); err != nil {
		log.Fatalf("server error: %v", err)
	}
}

func runServer(ctx context.Context, srv *http.Server) error {
	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
		err := <-errCh
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	}
}
