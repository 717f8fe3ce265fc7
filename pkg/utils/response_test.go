package utils

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRespondError(t *testing.T) {
	rec := httptest.NewRecorder()

	RespondError(rec, http.StatusBadRequest, "message is required")

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
	var body ErrorBody
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "message is required", body.Error)
}

func TestDecodeJSON(t *testing.T) {
	var v struct {
		Message string `json:"message"`
	}

	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"message":"hi"}`))
	require.NoError(t, DecodeJSON(httptest.NewRecorder(), req, &v))
	assert.Equal(t, "hi", v.Message)

	req = httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"message":"hi"} {"message":"again"}`))
	assert.Error(t, DecodeJSON(httptest.NewRecorder(), req, &v))

	req = httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`not json`))
	assert.Error(t, DecodeJSON(httptest.NewRecorder(), req, &v))
}
