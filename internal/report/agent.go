package report

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/vaadly/vaadly/internal/catalog"
)

// Prompts renders catalogue prompts by name. *catalog.Service satisfies
// it; tests substitute a local fake.
type Prompts interface {
	GeneratePrompt(name string, args map[string]any) (*catalog.PromptPayload, error)
}

// Result is one generated report.
type Result struct {
	ID       string         `json:"report_id"`
	Content  string         `json:"content"`
	Format   string         `json:"format"`
	Metadata map[string]any `json:"metadata,omitempty"`
}

// Agent renders a catalogue prompt and generates report text through the
// injected provider.
type Agent struct {
	prompts  Prompts
	provider Provider
	format   string
}

func NewAgent(prompts Prompts, provider Provider, defaultFormat string) *Agent {
	if defaultFormat == "" {
		defaultFormat = "markdown"
	}
	return &Agent{prompts: prompts, provider: provider, format: defaultFormat}
}

// OccupancyReport generates the occupancy report, complex-wide or for one
// building.
func (a *Agent) OccupancyReport(ctx context.Context, building *int) (*Result, error) {
	args := map[string]any{}
	if building != nil {
		args["building"] = *building
	}
	return a.generate(ctx, catalog.PromptOccupancyReport, args, map[string]any{
		"report_type": "occupancy",
		"building":    building,
	})
}

// TenantListReport generates the tenant list report.
func (a *Agent) TenantListReport(ctx context.Context, building *int, includeContacts bool) (*Result, error) {
	args := map[string]any{"include_contacts": includeContacts}
	if building != nil {
		args["building"] = *building
	}
	return a.generate(ctx, catalog.PromptTenantListReport, args, map[string]any{
		"report_type": "tenant_list",
		"building":    building,
	})
}

// HistoryReport generates the tenancy history report for one apartment.
func (a *Agent) HistoryReport(ctx context.Context, building, apartment int) (*Result, error) {
	args := map[string]any{"building": building, "apartment": apartment}
	return a.generate(ctx, catalog.PromptHistoryReport, args, map[string]any{
		"report_type": "history",
		"building":    building,
		"apartment":   apartment,
	})
}

// CustomQuery answers a free-form natural language question.
func (a *Agent) CustomQuery(ctx context.Context, query string) (*Result, error) {
	return a.generate(ctx, catalog.PromptCustomQuery, map[string]any{"query": query}, map[string]any{
		"report_type": "custom",
		"query":       query,
	})
}

func (a *Agent) generate(ctx context.Context, prompt string, args, metadata map[string]any) (*Result, error) {
	payload, err := a.prompts.GeneratePrompt(prompt, args)
	if err != nil {
		return nil, fmt.Errorf("report.Agent: %w", err)
	}

	content, err := a.provider.Generate(ctx, payload.Messages)
	if err != nil {
		return nil, fmt.Errorf("report.Agent: generate %s: %w", prompt, err)
	}

	id := uuid.New().String()
	log.Info().Str("report_id", id).Str("prompt", prompt).Msg("report generated")

	return &Result{
		ID:       id,
		Content:  content,
		Format:   a.format,
		Metadata: metadata,
	}, nil
}
