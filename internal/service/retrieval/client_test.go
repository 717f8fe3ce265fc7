package retrieval

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/studybuddy/assistant/backend/internal/model/provider"
)

func TestResolveAnswer(t *testing.T) {
	cases := map[string]string{
		`{"response": "from response", "status": "success"}`: "from response",
		`{"answer": "from answer"}`:                          "from answer",
		`{"reply": "from reply"}`:                            "from reply",
		`{"response": "", "answer": "second wins"}`:          "second wins",
		`{"answer": "a", "response": "r"}`:                   "r",
		`"bare json string"`:                                 "bare json string",
		"plain text answer\n":                                "plain text answer",
	}

	for body, want := range cases {
		got, err := ResolveAnswer([]byte(body))
		require.NoError(t, err, body)
		assert.Equal(t, want, got, body)
	}
}

func TestResolveAnswerRejectsUnusableBodies(t *testing.T) {
	for _, body := range []string{"", "   ", `{}`, `{"status": "ok"}`, `{"answer": 12}`, `""`, `[1,2]`} {
		_, err := ResolveAnswer([]byte(body))
		assert.Error(t, err, body)
	}
}

func TestClientAnswerPostsQuestion(t *testing.T) {
	var got askRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"answer": "- the heart has four chambers"}`))
	}))
	defer srv.Close()

	client := NewClient(srv.URL, srv.Client(), zap.NewNop())
	answer, err := client.Answer(context.Background(), "how does the heart work", nil)

	require.NoError(t, err)
	assert.Equal(t, "- the heart has four chambers", answer)
	assert.Equal(t, "how does the heart work", got.Question)
}

func TestClientAnswerNonSuccessStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, `{"detail": "boom"}`, http.StatusInternalServerError)
	}))
	defer srv.Close()

	_, err := NewClient(srv.URL, srv.Client(), zap.NewNop()).Answer(context.Background(), "q", nil)

	require.Error(t, err)
	var perr *provider.Error
	require.ErrorAs(t, err, &perr)
	assert.Equal(t, provider.Retrieval, perr.Provider)
	assert.Equal(t, provider.KindUnavailable, perr.Kind)
}

func TestClientAnswerConnectionRefused(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()

	_, err := NewClient(url, nil, zap.NewNop()).Answer(context.Background(), "q", nil)

	require.Error(t, err)
	assert.Equal(t, provider.KindUnavailable, provider.KindOf(err))
}

func TestClientAnswerHonoursContextDeadline(t *testing.T) {
	release := make(chan struct{})
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-release:
		case <-r.Context().Done():
		}
	}))
	defer srv.Close()
	defer close(release)

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	_, err := NewClient(srv.URL, srv.Client(), zap.NewNop()).Answer(ctx, "q", nil)

	require.Error(t, err)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
	assert.Equal(t, provider.KindUnavailable, provider.KindOf(err))
}
