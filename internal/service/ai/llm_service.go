package ai

import (
	"context"
	"fmt"
	"strings"
	"sync/atomic"

	"github.com/cloudwego/eino/components/model"
	"github.com/cloudwego/eino/components/prompt"
	"go.uber.org/zap"

	"github.com/studybuddy/assistant/backend/internal/config"
	"github.com/studybuddy/assistant/backend/internal/model/chat"
	"github.com/studybuddy/assistant/backend/internal/model/provider"
)

// ModelFactory builds the chat model on first use.
type ModelFactory func(ctx context.Context) (model.BaseChatModel, error)

type modelHandle struct {
	model model.BaseChatModel
}

// Service answers study questions with a hosted generative model.
type Service struct {
	cfg      config.AIConfig
	factory  ModelFactory
	prompts  *PromptBuilder
	template prompt.ChatTemplate
	handle   atomic.Pointer[modelHandle]
	logger   *zap.Logger
}

// Option customizes a Service.
type Option func(*Service)

// WithModelFactory replaces the Ark-backed model constructor.
func WithModelFactory(factory ModelFactory) Option {
	return func(s *Service) {
		s.factory = factory
	}
}

// NewService creates the generative provider. No model is built until the first question.
func NewService(cfg config.AIConfig, logger *zap.Logger, opts ...Option) *Service {
	prompts := NewPromptBuilder(cfg.SystemPrompt, cfg.BulletInstruction)
	s := &Service{
		cfg:      cfg,
		prompts:  prompts,
		template: prompts.Template(),
		logger:   logger.Named("ai"),
		factory: func(ctx context.Context) (model.BaseChatModel, error) {
			return cfg.NewChatModel(ctx)
		},
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Answer sends question to the model with the normalized history as context.
// Failures come back as *provider.Error.
func (s *Service) Answer(ctx context.Context, question string, history []chat.Turn) (string, error) {
	if !s.cfg.Enabled() {
		return "", provider.NewError(provider.Generative, provider.KindConfigurationAbsent, errMissingCredential)
	}

	chatModel, err := s.chatModel(ctx)
	if err != nil {
		return "", provider.NewError(provider.Generative, provider.KindUnavailable, fmt.Errorf("create chat model: %w", err))
	}

	normalized := NormalizeHistory(history)
	if len(history) > 0 && len(normalized) == 0 {
		s.logger.Debug("history has no user turn, sending without context", zap.Int("turns", len(history)))
	}

	messages, err := s.template.Format(ctx, s.prompts.Input(question, toSchemaMessages(normalized)))
	if err != nil {
		return "", provider.NewError(provider.Generative, provider.KindUnavailable, fmt.Errorf("format prompt: %w", err))
	}

	response, err := chatModel.Generate(ctx, messages)
	if err != nil {
		return "", classifyError(err)
	}
	if response == nil || strings.TrimSpace(response.Content) == "" {
		return "", provider.NewError(provider.Generative, provider.KindUnavailable, errEmptyCompletion)
	}

	s.logger.Debug("generated answer",
		zap.Int("history_turns", len(normalized)),
		zap.Int("length", len(response.Content)),
	)
	return response.Content, nil
}

// chatModel returns the cached model, building it on first use. Two callers racing on the
// first request may both build one; whichever stores first is kept.
func (s *Service) chatModel(ctx context.Context) (model.BaseChatModel, error) {
	if h := s.handle.Load(); h != nil {
		return h.model, nil
	}

	built, err := s.factory(ctx)
	if err != nil {
		return nil, err
	}

	h := &modelHandle{model: built}
	if !s.handle.CompareAndSwap(nil, h) {
		return s.handle.Load().model, nil
	}
	s.logger.Info("chat model initialized", zap.String("model", s.cfg.Model))
	return built, nil
}
