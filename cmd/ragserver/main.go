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
	"github.com/studybuddy/assistant/backend/internal/service/knowledge"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	_ = godotenv.Load()

	cfg, err := config.LoadRAGServer()
	if err != nil {
		log.Fatalf("failed to load configuration: %v", err)
	}

	zl := logger.New(cfg.Debug)
	defer func() { _ = zl.Sync() }()
	zap.ReplaceGlobals(zl)

	index := knowledge.DefaultIndex()
	if cfg.CorpusPath != "" {
		data, err := os.ReadFile(cfg.CorpusPath)
		if err != nil {
			zl.Fatal("failed to read corpus", zap.String("path", cfg.CorpusPath), zap.Error(err))
		}
		index = knowledge.NewIndex(string(data))
	}
	zl.Info("corpus indexed", zap.Int("sentences", index.Len()), zap.Int("topN", cfg.TopN))

	router := handler.NewRAGRouter(cfg.Server, index, cfg.TopN, zl)
	if err := handler.Serve(ctx, cfg.Server.Addr, router, zl.Named("rag")); err != nil {
		zl.Fatal("server error", zap.Error(err))
	}
}
