package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"github.com/studybuddy/assistant/backend/internal/config"
	"github.com/studybuddy/assistant/backend/internal/handler"
	"github.com/studybuddy/assistant/backend/internal/logger"
	"github.com/studybuddy/assistant/backend/internal/service/ai"
	"github.com/studybuddy/assistant/backend/internal/service/chat"
	"github.com/studybuddy/assistant/backend/internal/service/gateway"
	"github.com/studybuddy/assistant/backend/internal/service/retrieval"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Load .env file
	envErr := godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load configuration: %v", err)
	}

	zl := logger.New(cfg.Debug)
	defer func() { _ = zl.Sync() }()
	zap.ReplaceGlobals(zl)

	if envErr != nil {
		zl.Info("no .env file loaded, using process environment", zap.Error(envErr))
	}

	chatService := chat.NewService()

	// 模型在首次调用时才构建；未配置凭证时直接走兜底回复
	llm := ai.NewService(cfg.AI, zl)
	if cfg.AI.Enabled() {
		zl.Info("generative provider configured", zap.String("model", cfg.AI.Model))
	} else {
		zl.Warn("ARK_API_KEY not set, generative requests will use the fallback reply")
	}

	rag := retrieval.NewClient(cfg.Retrieval.URL, nil, zl)
	zl.Info("retrieval provider configured", zap.String("url", cfg.Retrieval.URL))

	gw := gateway.New(rag, llm, cfg.ProviderTimeout, zl)
	router := handler.NewRouter(cfg.Server, chatService, gw, zl)

	if err := handler.Serve(ctx, cfg.Server.Addr, router, zl.Named("api")); err != nil {
		zl.Fatal("server error", zap.Error(err))
	}
}
