package report

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vaadly/vaadly/internal/catalog"
	"github.com/vaadly/vaadly/internal/config"
)

func userMessage(text string) catalog.PromptMessage {
	return catalog.PromptMessage{
		Role:    "user",
		Content: catalog.PromptContent{Type: "text", Text: text},
	}
}

func TestMockProvider(t *testing.T) {
	t.Parallel()

	provider := NewMockProvider()

	out, err := provider.Generate(context.Background(), []catalog.PromptMessage{
		userMessage("list all tenants"),
	})
	require.NoError(t, err)
	assert.Equal(t, "# Report\n\nGenerated report for query: list all tenants", out)
}

func TestMockProvider_TruncatesLongQuery(t *testing.T) {
	t.Parallel()

	provider := NewMockProvider()
	long := strings.Repeat("x", 250)

	out, err := provider.Generate(context.Background(), []catalog.PromptMessage{userMessage(long)})
	require.NoError(t, err)
	assert.Equal(t, "# Report\n\nGenerated report for query: "+strings.Repeat("x", 100), out)
}

func TestMockProvider_NoUserMessage(t *testing.T) {
	t.Parallel()

	provider := NewMockProvider()

	out, err := provider.Generate(context.Background(), []catalog.PromptMessage{
		{Role: "system", Content: catalog.PromptContent{Type: "text", Text: "assistant setup"}},
	})
	require.NoError(t, err)
	assert.Equal(t, "No query provided.", out)
}

type fakePrompts struct {
	payload *catalog.PromptPayload
	err     error

	gotName string
	gotArgs map[string]any
}

func (f *fakePrompts) GeneratePrompt(name string, args map[string]any) (*catalog.PromptPayload, error) {
	f.gotName = name
	f.gotArgs = args
	return f.payload, f.err
}

func TestAgent_OccupancyReport(t *testing.T) {
	t.Parallel()

	prompts := &fakePrompts{payload: &catalog.PromptPayload{
		Messages: []catalog.PromptMessage{userMessage("occupancy please")},
	}}
	agent := NewAgent(prompts, NewMockProvider(), "markdown")

	building := 11
	result, err := agent.OccupancyReport(context.Background(), &building)
	require.NoError(t, err)

	assert.Equal(t, catalog.PromptOccupancyReport, prompts.gotName)
	assert.Equal(t, 11, prompts.gotArgs["building"])
	assert.NotEmpty(t, result.ID)
	assert.Equal(t, "markdown", result.Format)
	assert.Contains(t, result.Content, "occupancy please")
	assert.Equal(t, "occupancy", result.Metadata["report_type"])
}

func TestAgent_HistoryReport(t *testing.T) {
	t.Parallel()

	prompts := &fakePrompts{payload: &catalog.PromptPayload{
		Messages: []catalog.PromptMessage{userMessage("history")},
	}}
	agent := NewAgent(prompts, NewMockProvider(), "")

	result, err := agent.HistoryReport(context.Background(), 11, 3)
	require.NoError(t, err)

	assert.Equal(t, catalog.PromptHistoryReport, prompts.gotName)
	assert.Equal(t, 11, prompts.gotArgs["building"])
	assert.Equal(t, 3, prompts.gotArgs["apartment"])
	assert.Equal(t, "markdown", result.Format)
}

func TestAgent_PromptFailure(t *testing.T) {
	t.Parallel()

	prompts := &fakePrompts{err: errors.New("no such prompt")}
	agent := NewAgent(prompts, NewMockProvider(), "markdown")

	_, err := agent.CustomQuery(context.Background(), "anything")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no such prompt")
}

type failingProvider struct{}

func (failingProvider) Generate(context.Context, []catalog.PromptMessage) (string, error) {
	return "", errors.New("backend unavailable")
}

func TestAgent_ProviderFailure(t *testing.T) {
	t.Parallel()

	prompts := &fakePrompts{payload: &catalog.PromptPayload{
		Messages: []catalog.PromptMessage{userMessage("q")},
	}}
	agent := NewAgent(prompts, failingProvider{}, "markdown")

	_, err := agent.TenantListReport(context.Background(), nil, false)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "backend unavailable")
}

func TestAnthropicProvider_Generate(t *testing.T) {
	t.Parallel()

	var gotReq anthropicRequest
	var gotVersion, gotKey string

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotVersion = r.Header.Get("Anthropic-Version")
		gotKey = r.Header.Get("X-Api-Key")
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotReq))

		_ = json.NewEncoder(w).Encode(map[string]any{
			"content": []map[string]any{
				{"type": "text", "text": "# Occupancy\n\nAll good."},
			},
		})
	}))
	defer srv.Close()

	provider := NewAnthropicProvider(config.AIConfig{
		APIKey:    "test-key",
		Model:     "claude-3-5-sonnet-latest",
		MaxTokens: 1024,
	})
	provider.baseURL = srv.URL

	out, err := provider.Generate(context.Background(), []catalog.PromptMessage{
		{Role: "system", Content: catalog.PromptContent{Type: "text", Text: "be helpful"}},
		userMessage("occupancy?"),
	})
	require.NoError(t, err)
	assert.Equal(t, "# Occupancy\n\nAll good.", out)

	assert.Equal(t, "2023-06-01", gotVersion)
	assert.Equal(t, "test-key", gotKey)
	assert.Equal(t, "claude-3-5-sonnet-latest", gotReq.Model)
	assert.Equal(t, 1024, gotReq.MaxTokens)
	assert.Equal(t, "be helpful", gotReq.System)
	require.Len(t, gotReq.Messages, 1)
	assert.Equal(t, "user", gotReq.Messages[0].Role)
}

func TestAnthropicProvider_APIError(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		_ = json.NewEncoder(w).Encode(map[string]any{
			"error": map[string]any{"type": "authentication_error", "message": "invalid api key"},
		})
	}))
	defer srv.Close()

	provider := NewAnthropicProvider(config.AIConfig{APIKey: "bad", Model: "m", MaxTokens: 10})
	provider.baseURL = srv.URL

	_, err := provider.Generate(context.Background(), []catalog.PromptMessage{userMessage("q")})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid api key")
}
