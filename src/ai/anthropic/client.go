package anthropic

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/stake-plus/summarybot/src/ai/core"
	"github.com/stake-plus/summarybot/src/webclient"
)

const (
	defaultBaseURL   = "https://api.anthropic.com/v1"
	defaultModel     = "claude-haiku-4-5"
	defaultMaxTokens = 5000
	apiVersion       = "2023-06-01"
	requestTimeout   = 120 * time.Second
)

func init() {
	core.RegisterProvider("claude", newClient, "anthropic", "sonnet45")
}

type client struct {
	apiKey     string
	baseURL    string
	attempts   int
	httpClient *http.Client
	defaults   core.Options
}

func newClient(cfg core.FactoryConfig) (core.Client, error) {
	if cfg.ClaudeKey == "" {
		return nil, fmt.Errorf("anthropic: API key not configured")
	}

	return &client{
		apiKey:     cfg.ClaudeKey,
		baseURL:    strings.TrimRight(valueOrDefault(cfg.BaseURL, defaultBaseURL), "/"),
		attempts:   cfg.RetryAttempts,
		httpClient: webclient.NewDefault(requestTimeout),
		defaults: core.Options{
			Model:               valueOrDefault(cfg.Model, defaultModel),
			Temperature:         cfg.Temperature,
			MaxCompletionTokens: orInt(cfg.MaxCompletionTokens, defaultMaxTokens),
		},
	}, nil
}

type contentBlock struct {
	Type string `json:"type"`
	Text string `json:"text"`
}

type message struct {
	Role    string         `json:"role"`
	Content []contentBlock `json:"content"`
}

type messagesRequest struct {
	Model       string    `json:"model"`
	System      string    `json:"system,omitempty"`
	MaxTokens   int       `json:"max_tokens"`
	Temperature float64   `json:"temperature"`
	Messages    []message `json:"messages"`
}

// Complete calls the Messages API. System turns are lifted into the top-level system field.
func (c *client) Complete(ctx context.Context, messages []core.Message, opts core.Options) (string, error) {
	merged := c.merge(opts)
	system, turns := core.SplitSystem(messages)

	req := messagesRequest{
		Model:       merged.Model,
		System:      system,
		MaxTokens:   merged.MaxCompletionTokens,
		Temperature: merged.Temperature,
	}
	for _, m := range turns {
		req.Messages = append(req.Messages, message{
			Role:    m.Role,
			Content: []contentBlock{{Type: "text", Text: m.Content}},
		})
	}
	bodyBytes, err := json.Marshal(req)
	if err != nil {
		return "", fmt.Errorf("anthropic: encode request: %w", err)
	}

	_, payload, err := webclient.DoWithRetry(ctx, c.attempts, 2*time.Second, func() (int, []byte, error) {
		httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/messages", bytes.NewReader(bodyBytes))
		if err != nil {
			return 0, nil, err
		}
		httpReq.Header.Set("Content-Type", "application/json")
		httpReq.Header.Set("x-api-key", c.apiKey)
		httpReq.Header.Set("anthropic-version", apiVersion)
		resp, err := c.httpClient.Do(httpReq)
		if err != nil {
			return 0, nil, err
		}
		defer resp.Body.Close()
		b, err := io.ReadAll(resp.Body)
		if err != nil {
			return resp.StatusCode, nil, err
		}
		if resp.StatusCode != http.StatusOK {
			return resp.StatusCode, b, fmt.Errorf("anthropic: status %d", resp.StatusCode)
		}
		return resp.StatusCode, b, nil
	})
	if err != nil {
		return "", err
	}

	var result struct {
		Content []contentBlock `json:"content"`
	}
	if err := json.Unmarshal(payload, &result); err != nil {
		return "", fmt.Errorf("anthropic: parse error: %w", err)
	}

	text := extractText(result.Content)
	if text == "" {
		return "", fmt.Errorf("anthropic: empty response")
	}
	return text, nil
}

func (c *client) merge(opts core.Options) core.Options {
	out := c.defaults
	if strings.TrimSpace(opts.Model) != "" {
		out.Model = opts.Model
	}
	if opts.Temperature != 0 {
		out.Temperature = opts.Temperature
	}
	if opts.MaxCompletionTokens != 0 {
		out.MaxCompletionTokens = opts.MaxCompletionTokens
	}
	return out
}

func extractText(blocks []contentBlock) string {
	var parts []string
	for _, block := range blocks {
		if block.Type == "text" && strings.TrimSpace(block.Text) != "" {
			parts = append(parts, block.Text)
		}
	}
	return strings.Join(parts, "\n")
}

func valueOrDefault(val, def string) string {
	if val != "" {
		return val
	}
	return def
}

func orInt(v, d int) int {
	if v != 0 {
		return v
	}
	return d
}
