package chatgpt

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestNewClientRequiresAPIKey(t *testing.T) {
	_, err := NewClient("  ", "", 0)
	require.EqualError(t, err, "chatgpt api key cannot be empty")

	client, err := NewClient("sk", "", 0)
	require.NoError(t, err)
	require.Equal(t, defaultBaseURL, client.baseURL)
	require.Equal(t, defaultTimeout, client.httpClient.Timeout)
}

func TestCreateChatCompletion(t *testing.T) {
	var got ChatCompletionRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "/v1/chat/completions", r.URL.Path)
		require.Equal(t, "Bearer sk-test", r.Header.Get("Authorization"))
		require.Equal(t, "application/json", r.Header.Get("Content-Type"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{
			"id": "chatcmpl-1",
			"model": "gpt-3.5-turbo",
			"choices": [{"index": 0, "message": {"role": "assistant", "content": "{\"clothing\":[\"coat\"]}"}, "finish_reason": "stop"}],
			"usage": {"prompt_tokens": 210, "completion_tokens": 40, "total_tokens": 250}
		}`))
	}))
	defer srv.Close()

	client, err := NewClient("sk-test", srv.URL+"/v1/", 2*time.Second)
	require.NoError(t, err)

	resp, err := client.CreateChatCompletion(context.Background(), ChatCompletionRequest{
		Model:    "gpt-3.5-turbo",
		Messages: []Message{{Role: "user", Content: "hello"}},
	})
	require.NoError(t, err)
	require.Equal(t, "gpt-3.5-turbo", got.Model)
	require.Equal(t, []Message{{Role: "user", Content: "hello"}}, got.Messages)
	require.Len(t, resp.Choices, 1)
	require.Equal(t, `{"clothing":["coat"]}`, resp.Choices[0].Message.Content)
	require.NotNil(t, resp.Usage)
	require.Equal(t, 250, resp.Usage.TotalTokens)
}

func TestCreateChatCompletionOmitsZeroTemperature(t *testing.T) {
	var raw map[string]any
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, json.NewDecoder(r.Body).Decode(&raw))
		_, _ = w.Write([]byte(`{"choices":[]}`))
	}))
	defer srv.Close()

	client, err := NewClient("sk-test", srv.URL, time.Second)
	require.NoError(t, err)
	_, err = client.CreateChatCompletion(context.Background(), ChatCompletionRequest{Model: "m"})
	require.NoError(t, err)
	require.NotContains(t, raw, "temperature")
}

func TestCreateChatCompletionAPIError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte(`{"error":{"message":"invalid api key"}}`))
	}))
	defer srv.Close()

	client, err := NewClient("sk-bad", srv.URL, time.Second)
	require.NoError(t, err)

	_, err = client.CreateChatCompletion(context.Background(), ChatCompletionRequest{Model: "m"})
	var apiErr *APIError
	require.True(t, errors.As(err, &apiErr))
	require.Equal(t, http.StatusUnauthorized, apiErr.StatusCode)
	require.Contains(t, err.Error(), "invalid api key")
}

func TestCreateChatCompletionMalformedBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`not json`))
	}))
	defer srv.Close()

	client, err := NewClient("sk", srv.URL, time.Second)
	require.NoError(t, err)

	_, err = client.CreateChatCompletion(context.Background(), ChatCompletionRequest{Model: "m"})
	require.ErrorContains(t, err, "decode chat completion")
}
