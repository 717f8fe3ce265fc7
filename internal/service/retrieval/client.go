package retrieval

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/tidwall/gjson"
	"go.uber.org/zap"

	"github.com/studybuddy/assistant/backend/internal/model/chat"
	"github.com/studybuddy/assistant/backend/internal/model/provider"
)

// answerFields lists the JSON fields a RAG service may use for its answer, in precedence order.
var answerFields = []string{"response", "answer", "reply"}

const maxBodyBytes = 1 << 20

var errNoAnswer = errors.New("response carries no answer")

// Client calls a retrieval-augmented generation service over HTTP.
type Client struct {
	url        string
	httpClient *http.Client
	logger     *zap.Logger
}

// NewClient creates a client for the RAG endpoint at url. A nil httpClient uses http.DefaultClient;
// timeouts come from the caller's context.
func NewClient(url string, httpClient *http.Client, logger *zap.Logger) *Client {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	return &Client{url: url, httpClient: httpClient, logger: logger.Named("retrieval")}
}

type askRequest struct {
	Question string `json:"question"`
}

// Answer posts the question to the RAG service. History is not sent; the service answers
// from its knowledge base alone. Every failure is a KindUnavailable *provider.Error.
func (c *Client) Answer(ctx context.Context, question string, _ []chat.Turn) (string, error) {
	payload, err := json.Marshal(askRequest{Question: question})
	if err != nil {
		return "", unavailable(fmt.Errorf("encode request: %w", err))
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.url, bytes.NewReader(payload))
	if err != nil {
		return "", unavailable(fmt.Errorf("build request: %w", err))
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", unavailable(err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return "", unavailable(fmt.Errorf("read response: %w", err))
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return "", unavailable(fmt.Errorf("unexpected status %d", resp.StatusCode))
	}

	answer, err := ResolveAnswer(body)
	if err != nil {
		return "", unavailable(err)
	}

	c.logger.Debug("retrieval answered", zap.Int("length", len(answer)))
	return answer, nil
}

// ResolveAnswer extracts the answer text from a RAG response body. The first non-empty of
// "response", "answer" and "reply" wins; a bare JSON string or a non-JSON body is taken as is.
func ResolveAnswer(body []byte) (string, error) {
	trimmed := bytes.TrimSpace(body)
	if len(trimmed) == 0 {
		return "", errNoAnswer
	}

	if !gjson.ValidBytes(trimmed) {
		return string(trimmed), nil
	}

	parsed := gjson.ParseBytes(trimmed)
	switch {
	case parsed.Type == gjson.String:
		if text := strings.TrimSpace(parsed.String()); text != "" {
			return text, nil
		}
	case parsed.IsObject():
		for _, field := range answerFields {
			value := parsed.Get(field)
			if value.Exists() && value.Type == gjson.String {
				if text := strings.TrimSpace(value.String()); text != "" {
					return text, nil
				}
			}
		}
	}
	return "", errNoAnswer
}

func unavailable(err error) error {
	return provider.NewError(provider.Retrieval, provider.KindUnavailable, err)
}
