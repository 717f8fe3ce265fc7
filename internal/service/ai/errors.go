package ai

import (
	"context"
	"errors"
	"net/http"
	"strings"

	arkmodel "github.com/volcengine/volcengine-go-sdk/service/arkruntime/model"

	"github.com/studybuddy/assistant/backend/internal/model/provider"
)

var (
	errMissingCredential = errors.New("no API credential configured")
	errEmptyCompletion   = errors.New("model returned an empty completion")
)

// classifyError maps Ark transport errors onto provider kinds.
func classifyError(err error) *provider.Error {
	if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
		return provider.NewError(provider.Generative, provider.KindUnavailable, err)
	}
	if isQuotaError(err) {
		return provider.NewError(provider.Generative, provider.KindQuotaExceeded, err)
	}
	return provider.NewError(provider.Generative, provider.KindUnavailable, err)
}

func isQuotaError(err error) bool {
	var apiErr *arkmodel.APIError
	if errors.As(err, &apiErr) {
		return apiErr.HTTPStatusCode == http.StatusTooManyRequests || isQuotaCode(apiErr.Code)
	}

	var reqErr *arkmodel.RequestError
	if errors.As(err, &reqErr) {
		return reqErr.HTTPStatusCode == http.StatusTooManyRequests
	}
	return false
}

func isQuotaCode(code string) bool {
	return strings.HasPrefix(code, "RateLimitExceeded") ||
		strings.HasPrefix(code, "QuotaExceeded") ||
		code == "ServerOverloaded"
}
