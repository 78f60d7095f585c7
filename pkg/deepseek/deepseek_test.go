package deepseek_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/thedomainai/task-picker-agent/pkg/deepseek"
)

func TestGenerateContent(t *testing.T) {
	var got deepseek.Request
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Bearer k", r.Header.Get("Authorization"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		w.Write([]byte(`{"model":"deepseek-chat","choices":[{"message":{"role":"assistant","content":"{}"}}],"usage":{"total_tokens":9}}`))
	}))
	defer ts.Close()

	client, err := deepseek.New(deepseek.Config{APIKey: "k", BaseURL: ts.URL})
	require.NoError(t, err)
	assert.Equal(t, deepseek.DefaultModel, client.Model())

	resp, err := client.GenerateContent(context.Background(), &deepseek.Request{
		Messages: []deepseek.Message{{Role: "user", Content: "hi"}},
	})
	require.NoError(t, err)
	assert.Equal(t, "{}", resp.Choices[0].Message.Content)
	assert.Equal(t, deepseek.DefaultModel, got.Model)
}

func TestGenerateContent_ErrorBody(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusPaymentRequired)
		w.Write([]byte(`{"error":{"message":"Insufficient Balance"}}`))
	}))
	defer ts.Close()

	client, err := deepseek.New(deepseek.Config{APIKey: "k", BaseURL: ts.URL})
	require.NoError(t, err)

	_, err = client.GenerateContent(context.Background(), &deepseek.Request{})
	var apiErr *deepseek.APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, "Insufficient Balance", apiErr.Message)
	assert.False(t, apiErr.Retryable())
}
