package v1

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	"github.com/vaadly/vaadly/internal/catalog"
)

type ListPromptsOutput struct {
	Body struct {
		Prompts []catalog.PromptDefinition `json:"prompts"`
	}
}

type GeneratePromptInput struct {
	Body struct {
		Name      string         `json:"name" minLength:"1" doc:"Prompt name"`
		Arguments map[string]any `json:"arguments,omitempty" doc:"Prompt arguments"`
	}
}

type GeneratePromptOutput struct {
	Body *catalog.PromptPayload
}

// RegisterPromptRoutes mounts prompt discovery and generation.
func RegisterPromptRoutes(api huma.API, catalogue Catalogue) {
	huma.Register(api, huma.Operation{
		OperationID: "list-prompts",
		Method:      http.MethodGet,
		Path:        "/prompts",
		Summary:     "List available report prompts",
		Tags:        []string{"Prompts"},
	}, func(_ context.Context, _ *struct{}) (*ListPromptsOutput, error) {
		out := &ListPromptsOutput{}
		out.Body.Prompts = catalog.PromptDefinitions()
		return out, nil
	})

	huma.Register(api, huma.Operation{
		OperationID: "generate-prompt",
		Method:      http.MethodPost,
		Path:        "/prompts/generate",
		Summary:     "Render a report prompt by name",
		Tags:        []string{"Prompts"},
	}, func(_ context.Context, input *GeneratePromptInput) (*GeneratePromptOutput, error) {
		args := input.Body.Arguments
		if args == nil {
			args = map[string]any{}
		}
		payload, err := catalogue.GeneratePrompt(input.Body.Name, args)
		if err != nil {
			return nil, mapError(err, "prompt generation failed")
		}
		return &GeneratePromptOutput{Body: payload}, nil
	})
}
