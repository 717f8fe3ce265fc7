package gateway

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"go.uber.org/zap"

	"github.com/studybuddy/assistant/backend/internal/analysis/format"
	"github.com/studybuddy/assistant/backend/internal/metrics"
	"github.com/studybuddy/assistant/backend/internal/model/chat"
	"github.com/studybuddy/assistant/backend/internal/model/provider"
)

// ErrInvalidInput is the only error Respond returns.
var ErrInvalidInput = errors.New("invalid input")

const defaultTimeout = 30 * time.Second

// Answerer is implemented by each upstream provider strategy.
type Answerer interface {
	Answer(ctx context.Context, question string, history []chat.Turn) (string, error)
}

// Request is one orchestration call.
type Request struct {
	Message      string      `json:"message"`
	History      []chat.Turn `json:"history,omitempty"`
	UseRetrieval bool        `json:"useRetrieval,omitempty"`
}

func (r Request) validate() error {
	message := strings.TrimSpace(r.Message)
	return validation.Validate(message, validation.Required.Error("message is required"))
}

// Result is the resolved answer. Fallback is empty when the provider answered.
type Result struct {
	Reply        string        `json:"reply"`
	ProviderUsed provider.Name `json:"providerUsed"`
	Fallback     string        `json:"fallback,omitempty"`
}

// Gateway picks a provider per request and absorbs every upstream failure into a textual reply.
// It never touches the conversation store.
type Gateway struct {
	retrieval  Answerer
	generative Answerer
	timeout    time.Duration
	logger     *zap.Logger
}

// New creates a Gateway. A non-positive timeout uses 30s.
func New(retrieval, generative Answerer, timeout time.Duration, logger *zap.Logger) *Gateway {
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	return &Gateway{
		retrieval:  retrieval,
		generative: generative,
		timeout:    timeout,
		logger:     logger.Named("gateway"),
	}
}

// Respond answers req.Message. The only error is ErrInvalidInput for an empty message;
// provider failures resolve to fallback text.
func (g *Gateway) Respond(ctx context.Context, req Request) (Result, error) {
	if err := req.validate(); err != nil {
		return Result{}, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	name, answerer := g.selectProvider(req.UseRetrieval)
	result := Result{ProviderUsed: name}

	raw, err := g.call(ctx, name, answerer, req)
	if err != nil {
		kind := provider.KindOf(err)
		result.Fallback = kind.String()
		result.Reply = fallbackFor(kind, req.Message)

		logFn := g.logger.Warn
		if kind == provider.KindConfigurationAbsent {
			logFn = g.logger.Info
		}
		logFn("provider failed, using fallback",
			zap.String("provider", string(name)),
			zap.String("reason", result.Fallback),
			zap.Error(err),
		)
	}

	outcome := "ok"
	if result.Fallback != "" {
		outcome = result.Fallback
	} else {
		result.Reply = format.Format(raw)
	}
	metrics.ProviderRequests.WithLabelValues(string(name), outcome).Inc()
	return result, nil
}

func (g *Gateway) selectProvider(useRetrieval bool) (provider.Name, Answerer) {
	if useRetrieval {
		return provider.Retrieval, g.retrieval
	}
	return provider.Generative, g.generative
}

func (g *Gateway) call(ctx context.Context, name provider.Name, answerer Answerer, req Request) (string, error) {
	if answerer == nil {
		return "", provider.NewError(name, provider.KindConfigurationAbsent, errors.New("provider not wired"))
	}

	ctx, cancel := context.WithTimeout(ctx, g.timeout)
	defer cancel()

	start := time.Now()
	answer, err := answerer.Answer(ctx, req.Message, req.History)
	metrics.ProviderLatency.WithLabelValues(string(name)).Observe(time.Since(start).Seconds())
	if err != nil {
		return "", err
	}
	if strings.TrimSpace(answer) == "" {
		return "", provider.NewError(name, provider.KindUnavailable, errors.New("empty answer"))
	}
	return answer, nil
}

func fallbackFor(kind provider.Kind, message string) string {
	if kind == provider.KindQuotaExceeded {
		return QuotaFallback(message)
	}
	return EchoFallback(message)
}
