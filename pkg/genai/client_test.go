package genai

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type wireContent struct {
	Role  string `json:"role"`
	Parts []struct {
		Text string `json:"text"`
	} `json:"parts"`
}

type wireRequest struct {
	Contents          []wireContent `json:"contents"`
	SystemInstruction *wireContent  `json:"systemInstruction"`
	GenerationConfig  struct {
		Temperature     float64 `json:"temperature"`
		MaxOutputTokens int     `json:"maxOutputTokens"`
	} `json:"generationConfig"`
	SafetySettings []struct {
		Category  string `json:"category"`
		Threshold string `json:"threshold"`
	} `json:"safetySettings"`
}

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)
	client, err := NewClient(context.Background(), Options{BaseURL: server.URL, APIKey: "key", Model: "gemini-test"})
	require.NoError(t, err)
	return client
}

func TestNewClientRequiresKeyAndModel(t *testing.T) {
	_, err := NewClient(context.Background(), Options{Model: "m"})
	require.Error(t, err)
	_, err = NewClient(context.Background(), Options{APIKey: "k"})
	require.Error(t, err)
}

func TestGenerateContentSuccess(t *testing.T) {
	var captured wireRequest
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.True(t, strings.HasPrefix(r.URL.Path, "/"+DefaultAPIVersion+"/"), r.URL.Path)
		assert.True(t, strings.HasSuffix(r.URL.Path, "models/gemini-test:generateContent"), r.URL.Path)
		assert.Equal(t, "key", r.Header.Get("x-goog-api-key"))
		body, _ := io.ReadAll(r.Body)
		require.NoError(t, json.Unmarshal(body, &captured))
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"candidates":[{"content":{"parts":[{"text":"Olá "},{"text":"Maria"}]},"finishReason":"STOP"}]}`))
	})

	resp, err := client.GenerateContent(context.Background(), Request{
		Prompt:            "prompt",
		SystemInstruction: "system",
		Temperature:       0.1,
		MaxOutputTokens:   2000,
		SafetySettings:    []SafetySetting{{Category: CategoryHarassment, Threshold: ThresholdBlockNone}},
	})
	require.NoError(t, err)
	assert.Equal(t, "Olá Maria", resp.Text)
	assert.Equal(t, "STOP", resp.FinishReason)

	require.Len(t, captured.Contents, 1)
	assert.Equal(t, "prompt", captured.Contents[0].Parts[0].Text)
	require.NotNil(t, captured.SystemInstruction)
	assert.Equal(t, "system", captured.SystemInstruction.Parts[0].Text)
	assert.InDelta(t, 0.1, captured.GenerationConfig.Temperature, 1e-6)
	assert.Equal(t, 2000, captured.GenerationConfig.MaxOutputTokens)
	require.Len(t, captured.SafetySettings, 1)
	assert.Equal(t, "HARM_CATEGORY_HARASSMENT", captured.SafetySettings[0].Category)
	assert.Equal(t, "BLOCK_NONE", captured.SafetySettings[0].Threshold)
}

func TestGenerateContentFailures(t *testing.T) {
	tests := []struct {
		name   string
		status int
		body   string
		kind   FailureKind
	}{
		{name: "safety finish reason", status: http.StatusOK, body: `{"candidates":[{"finishReason":"SAFETY"}]}`, kind: SafetyBlocked},
		{name: "prompt blocked", status: http.StatusOK, body: `{"promptFeedback":{"blockReason":"OTHER"}}`, kind: SafetyBlocked},
		{name: "no candidates", status: http.StatusOK, body: `{"candidates":[]}`, kind: EmptyCompletion},
		{name: "blank text", status: http.StatusOK, body: `{"candidates":[{"content":{"parts":[{"text":"  "}]},"finishReason":"MAX_TOKENS"}]}`, kind: EmptyCompletion},
		{name: "upstream error", status: http.StatusBadRequest, body: `{"error":{"code":400,"message":"boom","status":"INVALID_ARGUMENT"}}`, kind: TransportError},
		{name: "malformed body", status: http.StatusOK, body: `{`, kind: TransportError},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
				w.Header().Set("Content-Type", "application/json")
				w.WriteHeader(tc.status)
				_, _ = w.Write([]byte(tc.body))
			})
			_, err := client.GenerateContent(context.Background(), Request{Prompt: "p"})
			failure, ok := AsFailure(err)
			require.True(t, ok)
			assert.Equal(t, tc.kind, failure.Kind)
		})
	}
}

func TestGenerateContentEmptyKeepsFinishReason(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"candidates":[{"finishReason":"RECITATION"}]}`))
	})
	_, err := client.GenerateContent(context.Background(), Request{Prompt: "p"})
	failure, ok := AsFailure(err)
	require.True(t, ok)
	assert.Equal(t, EmptyCompletion, failure.Kind)
	assert.Equal(t, "RECITATION", failure.Detail)
}

func TestGenerateContentHonoursContext(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-r.Context().Done():
		case <-time.After(2 * time.Second):
		}
	})
	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	_, err := client.GenerateContent(ctx, Request{Prompt: "p"})
	failure, ok := AsFailure(err)
	require.True(t, ok)
	assert.Equal(t, TransportError, failure.Kind)
}
