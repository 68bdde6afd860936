package catalog

import (
	"fmt"
	"strings"

	"github.com/vaadly/vaadly/internal/domain"
)

// Prompt names in the catalogue.
const (
	PromptOccupancyReport  = "occupancy_report"
	PromptTenantListReport = "tenant_list_report"
	PromptHistoryReport    = "history_report"
	PromptCustomQuery      = "custom_query"
)

// PromptArgument describes one argument a prompt accepts.
type PromptArgument struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Required    bool   `json:"required"`
}

// PromptDefinition describes one report prompt for discovery.
type PromptDefinition struct {
	Name        string           `json:"name"`
	Description string           `json:"description"`
	Arguments   []PromptArgument `json:"arguments"`
}

// PromptContent is a single content block inside a prompt message.
type PromptContent struct {
	Type string `json:"type"`
	Text string `json:"text"`
}

// PromptMessage is one role-attributed message in a prompt payload.
type PromptMessage struct {
	Role    string        `json:"role"`
	Content PromptContent `json:"content"`
}

// PromptPayload is the rendered prompt, ready to hand to an LLM backend.
type PromptPayload struct {
	Messages []PromptMessage `json:"messages"`
}

// PromptDefinitions returns the fixed prompt catalogue.
func PromptDefinitions() []PromptDefinition {
	return []PromptDefinition{
		{
			Name:        PromptOccupancyReport,
			Description: "Generate occupancy report for buildings",
			Arguments: []PromptArgument{
				{Name: "building", Description: "Building number (optional)", Required: false},
			},
		},
		{
			Name:        PromptTenantListReport,
			Description: "Generate tenant list report",
			Arguments: []PromptArgument{
				{Name: "building", Description: "Building number (optional)", Required: false},
				{Name: "include_contacts", Description: "Include phone numbers", Required: false},
			},
		},
		{
			Name:        PromptHistoryReport,
			Description: "Generate tenant history report for an apartment",
			Arguments: []PromptArgument{
				{Name: "building", Description: "Building number", Required: true},
				{Name: "apartment", Description: "Apartment number", Required: true},
			},
		},
		{
			Name:        PromptCustomQuery,
			Description: "Process a natural language query about tenants",
			Arguments: []PromptArgument{
				{Name: "query", Description: "Natural language query", Required: true},
			},
		},
	}
}

// GeneratePrompt renders a prompt payload by name with a flat argument map.
func (s *Service) GeneratePrompt(name string, args map[string]any) (*PromptPayload, error) {
	switch name {
	case PromptOccupancyReport:
		var p struct {
			Building *int `json:"building"`
		}
		if err := decodeArgs(args, &p); err != nil {
			return nil, fmt.Errorf("catalog.GeneratePrompt: %w", err)
		}
		return s.OccupancyPrompt(p.Building), nil
	case PromptTenantListReport:
		var p struct {
			Building        *int `json:"building"`
			IncludeContacts bool `json:"include_contacts"`
		}
		if err := decodeArgs(args, &p); err != nil {
			return nil, fmt.Errorf("catalog.GeneratePrompt: %w", err)
		}
		return s.TenantListPrompt(p.Building, p.IncludeContacts), nil
	case PromptHistoryReport:
		var p struct {
			Building  int `json:"building"`
			Apartment int `json:"apartment"`
		}
		if err := decodeArgs(args, &p); err != nil {
			return nil, fmt.Errorf("catalog.GeneratePrompt: %w", err)
		}
		return s.HistoryPrompt(p.Building, p.Apartment), nil
	case PromptCustomQuery:
		var p struct {
			Query string `json:"query"`
		}
		if err := decodeArgs(args, &p); err != nil {
			return nil, fmt.Errorf("catalog.GeneratePrompt: %w", err)
		}
		if strings.TrimSpace(p.Query) == "" {
			return nil, fmt.Errorf("catalog.GeneratePrompt: %w",
				domain.NewValidationError("Query is required", nil))
		}
		return s.CustomQueryPrompt(p.Query), nil
	default:
		return nil, fmt.Errorf("catalog.GeneratePrompt: unknown prompt %q: %w", name, domain.ErrNotFound)
	}
}

// OccupancyPrompt renders the occupancy report prompt.
func (s *Service) OccupancyPrompt(building *int) *PromptPayload {
	context := "Generate occupancy report for all buildings."
	if building != nil {
		context = fmt.Sprintf("Generate occupancy report for building %d.", *building)
	}
	return userPrompt(fmt.Sprintf(occupancyTemplate, context))
}

// TenantListPrompt renders the tenant list report prompt.
func (s *Service) TenantListPrompt(building *int, includeContacts bool) *PromptPayload {
	context := "Generate tenant list for all buildings."
	if building != nil {
		context = fmt.Sprintf("Generate tenant list for building %d.", *building)
	}
	contactText := ""
	if includeContacts {
		contactText = "Include phone numbers."
	}
	return userPrompt(fmt.Sprintf(tenantListTemplate, context, contactText))
}

// HistoryPrompt renders the apartment history report prompt.
func (s *Service) HistoryPrompt(building, apartment int) *PromptPayload {
	return userPrompt(fmt.Sprintf(historyTemplate, building, apartment))
}

// CustomQueryPrompt renders a free-form query with a system message that
// lists the configured buildings.
func (s *Service) CustomQueryPrompt(query string) *PromptPayload {
	parts := make([]string, 0, len(s.store.Buildings()))
	for _, b := range s.store.Buildings() {
		parts = append(parts, fmt.Sprintf("Building %d (%d apartments)", b.Number, b.TotalApartments))
	}
	system := fmt.Sprintf(systemPromptTemplate, strings.Join(parts, ", "))

	return &PromptPayload{Messages: []PromptMessage{
		{Role: "system", Content: PromptContent{Type: "text", Text: system}},
		{Role: "user", Content: PromptContent{Type: "text", Text: query}},
	}}
}

func userPrompt(text string) *PromptPayload {
	return &PromptPayload{Messages: []PromptMessage{
		{Role: "user", Content: PromptContent{Type: "text", Text: text}},
	}}
}
