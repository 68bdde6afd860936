package v1

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/danielgtaylor/huma/v2"
	"github.com/rs/zerolog/log"

	"github.com/vaadly/vaadly/internal/catalog"
	"github.com/vaadly/vaadly/internal/notify"
)

type ListToolsOutput struct {
	Body struct {
		Tools []catalog.ToolDefinition `json:"tools"`
	}
}

type InvokeToolInput struct {
	Body struct {
		Name      string         `json:"name" minLength:"1" doc:"Tool name"`
		Arguments map[string]any `json:"arguments" doc:"Flat argument map"`
	}
}

// InvokeToolOutput carries the pre-encoded result of whichever tool ran;
// the result shape varies per tool so the body passes through as raw JSON.
type InvokeToolOutput struct {
	Body []byte `contentType:"application/json"`
}

// RegisterToolRoutes mounts tool discovery and invocation.
func RegisterToolRoutes(api huma.API, catalogue Catalogue, notifier notify.Notifier) {
	huma.Register(api, huma.Operation{
		OperationID: "list-tools",
		Method:      http.MethodGet,
		Path:        "/tools",
		Summary:     "List available tools",
		Tags:        []string{"Tools"},
	}, func(_ context.Context, _ *struct{}) (*ListToolsOutput, error) {
		out := &ListToolsOutput{}
		out.Body.Tools = catalog.ToolDefinitions()
		return out, nil
	})

	huma.Register(api, huma.Operation{
		OperationID: "invoke-tool",
		Method:      http.MethodPost,
		Path:        "/tools/invoke",
		Summary:     "Invoke a tool by name",
		Tags:        []string{"Tools"},
	}, func(ctx context.Context, input *InvokeToolInput) (*InvokeToolOutput, error) {
		result, err := catalogue.Invoke(ctx, input.Body.Name, input.Body.Arguments)
		if err != nil {
			return nil, mapError(err, "tool invocation failed")
		}

		if ended, ok := result.(*catalog.HistoryResult); ok && ended.History != nil {
			if notifyErr := notifier.TenancyEnded(ctx, ended.History); notifyErr != nil {
				log.Warn().Err(notifyErr).Msg("tenancy-ended announcement failed")
			}
		}

		raw, err := json.Marshal(result)
		if err != nil {
			return nil, huma.Error500InternalServerError("failed to encode tool result", err)
		}
		return &InvokeToolOutput{Body: raw}, nil
	})
}
