package openai

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stake-plus/summarybot/src/ai/core"
)

func TestCompleteSendsChatRequest(t *testing.T) {
	var got chatRequest
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/chat/completions" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		if auth := r.Header.Get("Authorization"); auth != "Bearer sk-test" {
			t.Errorf("unexpected auth header %q", auth)
		}
		if err := json.NewDecoder(r.Body).Decode(&got); err != nil {
			t.Errorf("decode: %v", err)
		}
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]any{
			"choices": []map[string]any{
				{"message": map[string]any{"content": "- summary [source](https://discord.com/channels/1/2/3)"}},
			},
		})
	}))
	defer server.Close()

	client, err := core.NewClient(core.FactoryConfig{
		Provider:            "openai",
		OpenAIKey:           "sk-test",
		BaseURL:             server.URL,
		MaxCompletionTokens: 5000,
	})
	if err != nil {
		t.Fatal(err)
	}

	out, err := client.Complete(context.Background(), []core.Message{
		{Role: core.RoleSystem, Content: "sys"},
		{Role: core.RoleUser, Content: "user"},
	}, core.Options{})
	if err != nil {
		t.Fatal(err)
	}
	if !strings.HasPrefix(out, "- summary") {
		t.Errorf("unexpected output %q", out)
	}
	if got.Model != "gpt-4.1-mini" {
		t.Errorf("model = %q", got.Model)
	}
	if got.Temperature != 0 {
		t.Errorf("temperature = %v", got.Temperature)
	}
	if got.MaxTokens != 5000 {
		t.Errorf("max_tokens = %d", got.MaxTokens)
	}
	if len(got.Messages) != 2 || got.Messages[0].Role != "system" || got.Messages[1].Content != "user" {
		t.Errorf("messages = %+v", got.Messages)
	}
}

func TestCompleteHTTPError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
		w.Write([]byte(`{"error":{"message":"slow down","type":"rate_limit"}}`))
	}))
	defer server.Close()

	client, err := newClient(core.FactoryConfig{OpenAIKey: "sk-test", BaseURL: server.URL, RetryAttempts: 1})
	if err != nil {
		t.Fatal(err)
	}
	_, err = client.Complete(context.Background(), []core.Message{{Role: core.RoleUser, Content: "hi"}}, core.Options{})
	if err == nil {
		t.Fatal("expected error for 429 response")
	}
	if !strings.Contains(err.Error(), "429") {
		t.Errorf("error should carry the status: %v", err)
	}
}

func TestCompleteEmptyChoices(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"choices":[]}`))
	}))
	defer server.Close()

	client, _ := newClient(core.FactoryConfig{OpenAIKey: "sk-test", BaseURL: server.URL})
	if _, err := client.Complete(context.Background(), nil, core.Options{}); err == nil {
		t.Fatal("expected error for empty choices")
	}
}

func TestNewClientRequiresKey(t *testing.T) {
	if _, err := newClient(core.FactoryConfig{}); err == nil {
		t.Fatal("expected missing key error")
	}
}
