// Package report generates tenant-management reports by rendering a
// catalogue prompt and handing it to an LLM backend. The backend is a
// single injected capability so tests run against a mock and production
// runs against the Anthropic API.
package report

import (
	"context"

	"github.com/vaadly/vaadly/internal/catalog"
)

// Provider turns a rendered prompt into generated text.
type Provider interface {
	Generate(ctx context.Context, messages []catalog.PromptMessage) (string, error)
}

// MockProvider is the offline backend: it echoes the first user message.
type MockProvider struct{}

func NewMockProvider() *MockProvider { return &MockProvider{} }

func (MockProvider) Generate(_ context.Context, messages []catalog.PromptMessage) (string, error) {
	for _, m := range messages {
		if m.Role != "user" {
			continue
		}
		text := m.Content.Text
		if len(text) > 100 {
			text = text[:100]
		}
		return "# Report\n\nGenerated report for query: " + text, nil
	}
	return "No query provided.", nil
}
