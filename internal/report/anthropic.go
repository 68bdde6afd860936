package report

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/vaadly/vaadly/internal/catalog"
	"github.com/vaadly/vaadly/internal/config"
)

const (
	anthropicBaseURL = "https://api.anthropic.com"
	anthropicVersion = "2023-06-01"
)

// AnthropicProvider generates report text through the Anthropic Messages
// API.
type AnthropicProvider struct {
	client    *http.Client
	baseURL   string
	apiKey    string
	model     string
	maxTokens int
}

// NewAnthropicProvider builds a provider from the AI configuration
// section.
func NewAnthropicProvider(cfg config.AIConfig) *AnthropicProvider {
	return &AnthropicProvider{
		client:    &http.Client{Timeout: 60 * time.Second},
		baseURL:   anthropicBaseURL,
		apiKey:    cfg.APIKey,
		model:     cfg.Model,
		maxTokens: cfg.MaxTokens,
	}
}

type anthropicMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type anthropicRequest struct {
	Model     string             `json:"model"`
	MaxTokens int                `json:"max_tokens"`
	System    string             `json:"system,omitempty"`
	Messages  []anthropicMessage `json:"messages"`
}

type anthropicResponse struct {
	Content []struct {
		Type string `json:"type"`
		Text string `json:"text"`
	} `json:"content"`
	Error *struct {
		Type    string `json:"type"`
		Message string `json:"message"`
	} `json:"error"`
}

// Generate sends the prompt to the Messages API. System-role messages
// fold into the request's system field; everything else goes through as
// conversation turns.
func (p *AnthropicProvider) Generate(ctx context.Context, messages []catalog.PromptMessage) (string, error) {
	var system []string
	turns := make([]anthropicMessage, 0, len(messages))
	for _, m := range messages {
		if m.Role == "system" {
			system = append(system, m.Content.Text)
			continue
		}
		turns = append(turns, anthropicMessage{Role: m.Role, Content: m.Content.Text})
	}

	body, err := json.Marshal(anthropicRequest{
		Model:     p.model,
		MaxTokens: p.maxTokens,
		System:    strings.Join(system, "\n"),
		Messages:  turns,
	})
	if err != nil {
		return "", fmt.Errorf("report.AnthropicProvider.Generate: encode request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, p.baseURL+"/v1/messages", bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("report.AnthropicProvider.Generate: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Api-Key", p.apiKey)
	req.Header.Set("Anthropic-Version", anthropicVersion)

	resp, err := p.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("report.AnthropicProvider.Generate: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("report.AnthropicProvider.Generate: read response: %w", err)
	}

	var parsed anthropicResponse
	if err := json.Unmarshal(raw, &parsed); err != nil {
		return "", fmt.Errorf("report.AnthropicProvider.Generate: decode response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		msg := resp.Status
		if parsed.Error != nil {
			msg = parsed.Error.Message
		}
		return "", fmt.Errorf("report.AnthropicProvider.Generate: api error: %s", msg)
	}

	var out strings.Builder
	for _, block := range parsed.Content {
		if block.Type == "text" {
			out.WriteString(block.Text)
		}
	}
	return out.String(), nil
}
