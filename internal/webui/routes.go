// Package webui serves the user-facing REST endpoints consumed by the web
// frontend. It talks to the catalogue service through the SDK client rather
// than touching the store directly, so the web tier can run as its own
// process.
package webui

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	"github.com/vaadly/vaadly/pkg/sdk"
)

// Directory is the SDK surface the web tier depends on. *sdk.Client
// satisfies it.
type Directory interface {
	CreateTenant(ctx context.Context, params sdk.CreateTenantParams) (*sdk.TenantInfo, error)
	GetTenant(ctx context.Context, building, apartment int) (*sdk.TenantInfo, error)
	UpdateTenant(ctx context.Context, building, apartment int, updates map[string]any) (*sdk.TenantInfo, error)
	EndTenancy(ctx context.Context, building, apartment int, moveOutDate string) (*sdk.HistoryRecord, error)
	Buildings(ctx context.Context) ([]sdk.BuildingInfo, error)
	BuildingOccupancy(ctx context.Context, building int) (*sdk.BuildingInfo, error)
	AllTenants(ctx context.Context, building *int) ([]sdk.TenantInfo, error)
	TenantHistory(ctx context.Context, building, apartment int) ([]sdk.HistoryRecord, error)
	OccupancyReportPrompt(ctx context.Context, building *int) ([]sdk.PromptMessage, error)
	TenantListReportPrompt(ctx context.Context, building *int, includeContacts bool) ([]sdk.PromptMessage, error)
}

// mapUpstreamError translates an SDK error into the matching huma status,
// passing the upstream detail through so the frontend can show the
// aggregated validation messages.
func mapUpstreamError(err error) error {
	var apiErr *sdk.APIError
	if !errors.As(err, &apiErr) {
		return huma.Error500InternalServerError("upstream service error", err)
	}
	switch apiErr.Status {
	case http.StatusBadRequest:
		return huma.Error400BadRequest(apiErr.Detail)
	case http.StatusUnauthorized:
		return huma.Error401Unauthorized(apiErr.Detail)
	case http.StatusNotFound:
		return huma.Error404NotFound(apiErr.Detail)
	case http.StatusConflict:
		return huma.Error409Conflict(apiErr.Detail)
	default:
		return huma.Error500InternalServerError("upstream service error", apiErr)
	}
}

type BuildingSummary struct {
	Number          int `json:"number"`
	TotalApartments int `json:"total_apartments"`
}

type ListBuildingsOutput struct {
	Body struct {
		Buildings []BuildingSummary `json:"buildings"`
	}
}

type GetBuildingInput struct {
	Building int `path:"building_number"`
}

type GetBuildingOutput struct {
	Body sdk.BuildingInfo
}

type ListTenantsInput struct {
	Building *int `query:"building"`
}

type ListTenantsOutput struct {
	Body struct {
		Tenants []sdk.TenantInfo `json:"tenants"`
	}
}

type apartmentPath struct {
	Building  int `path:"building"`
	Apartment int `path:"apartment"`
}

// TenantView is the flat tenant shape the frontend renders.
type TenantView struct {
	BuildingNumber  int    `json:"building_number"`
	ApartmentNumber int    `json:"apartment_number"`
	FirstName       string `json:"first_name"`
	LastName        string `json:"last_name"`
	FullName        string `json:"full_name"`
	Phone           string `json:"phone"`
	IsOwner         bool   `json:"is_owner"`
	MoveInDate      string `json:"move_in_date"`
}

type GetTenantOutput struct {
	Body TenantView
}

type CreateTenantInput struct {
	Body struct {
		BuildingNumber  int    `json:"building_number"`
		ApartmentNumber int    `json:"apartment_number"`
		FirstName       string `json:"first_name"`
		LastName        string `json:"last_name"`
		Phone           string `json:"phone"`
		IsOwner         *bool  `json:"is_owner,omitempty"`
		MoveInDate      string `json:"move_in_date,omitempty"`
		StorageNumber   string `json:"storage_number,omitempty"`
		ParkingSlot1    string `json:"parking_slot_1,omitempty"`
		ParkingSlot2    string `json:"parking_slot_2,omitempty"`
	}
}

type TenantMutationOutput struct {
	Body struct {
		Success bool            `json:"success"`
		Data    *sdk.TenantInfo `json:"data"`
	}
}

type UpdateTenantInput struct {
	Building  int `path:"building"`
	Apartment int `path:"apartment"`
	Body      struct {
		FirstName            *string `json:"first_name,omitempty"`
		LastName             *string `json:"last_name,omitempty"`
		Phone                *string `json:"phone,omitempty"`
		IsOwner              *bool   `json:"is_owner,omitempty"`
		StorageNumber        *string `json:"storage_number,omitempty"`
		ParkingSlot1         *string `json:"parking_slot_1,omitempty"`
		ParkingSlot2         *string `json:"parking_slot_2,omitempty"`
		WhatsAppGroupEnabled *bool   `json:"whatsapp_group_enabled,omitempty"`
		PalGateAccessEnabled *bool   `json:"palgate_access_enabled,omitempty"`
	}
}

type EndTenancyOutput struct {
	Body struct {
		Success bool               `json:"success"`
		Data    *sdk.HistoryRecord `json:"data"`
	}
}

type TenantHistoryOutput struct {
	Body struct {
		History []sdk.HistoryRecord `json:"history"`
	}
}

type OccupancyReportInput struct {
	Building *int `query:"building"`
}

type TenantListReportInput struct {
	Building        *int `query:"building"`
	IncludeContacts bool `query:"include_contacts"`
}

type ReportPromptOutput struct {
	Body struct {
		Messages []sdk.PromptMessage `json:"messages"`
	}
}

// updatesMap collects the non-nil fields of an update request.
func (in *UpdateTenantInput) updatesMap() map[string]any {
	updates := make(map[string]any)
	setString := func(key string, v *string) {
		if v != nil {
			updates[key] = *v
		}
	}
	setBool := func(key string, v *bool) {
		if v != nil {
			updates[key] = *v
		}
	}
	setString("first_name", in.Body.FirstName)
	setString("last_name", in.Body.LastName)
	setString("phone", in.Body.Phone)
	setBool("is_owner", in.Body.IsOwner)
	setString("storage_number", in.Body.StorageNumber)
	setString("parking_slot_1", in.Body.ParkingSlot1)
	setString("parking_slot_2", in.Body.ParkingSlot2)
	setBool("whatsapp_group_enabled", in.Body.WhatsAppGroupEnabled)
	setBool("palgate_access_enabled", in.Body.PalGateAccessEnabled)
	return updates
}

// Register mounts the web tier routes on api.
func Register(api huma.API, dir Directory) {
	huma.Register(api, huma.Operation{
		OperationID: "web-list-buildings",
		Method:      http.MethodGet,
		Path:        "/buildings",
		Summary:     "List buildings",
		Tags:        []string{"Web"},
	}, func(ctx context.Context, _ *struct{}) (*ListBuildingsOutput, error) {
		buildings, err := dir.Buildings(ctx)
		if err != nil {
			return nil, mapUpstreamError(err)
		}
		out := &ListBuildingsOutput{}
		out.Body.Buildings = make([]BuildingSummary, 0, len(buildings))
		for _, b := range buildings {
			out.Body.Buildings = append(out.Body.Buildings, BuildingSummary{
				Number:          b.Number,
				TotalApartments: b.TotalApartments,
			})
		}
		return out, nil
	})

	huma.Register(api, huma.Operation{
		OperationID: "web-get-building",
		Method:      http.MethodGet,
		Path:        "/buildings/{building_number}",
		Summary:     "Get building occupancy",
		Tags:        []string{"Web"},
	}, func(ctx context.Context, input *GetBuildingInput) (*GetBuildingOutput, error) {
		info, err := dir.BuildingOccupancy(ctx, input.Building)
		if err != nil {
			return nil, mapUpstreamError(err)
		}
		if info == nil {
			return nil, huma.Error404NotFound(fmt.Sprintf("Building %d not found", input.Building))
		}
		return &GetBuildingOutput{Body: *info}, nil
	})

	huma.Register(api, huma.Operation{
		OperationID: "web-list-tenants",
		Method:      http.MethodGet,
		Path:        "/tenants",
		Summary:     "List tenants",
		Tags:        []string{"Web"},
	}, func(ctx context.Context, input *ListTenantsInput) (*ListTenantsOutput, error) {
		tenants, err := dir.AllTenants(ctx, input.Building)
		if err != nil {
			return nil, mapUpstreamError(err)
		}
		if tenants == nil {
			tenants = []sdk.TenantInfo{}
		}
		out := &ListTenantsOutput{}
		out.Body.Tenants = tenants
		return out, nil
	})

	huma.Register(api, huma.Operation{
		OperationID: "web-get-tenant",
		Method:      http.MethodGet,
		Path:        "/tenants/{building}/{apartment}",
		Summary:     "Get tenant for an apartment",
		Tags:        []string{"Web"},
	}, func(ctx context.Context, input *apartmentPath) (*GetTenantOutput, error) {
		tenant, err := dir.GetTenant(ctx, input.Building, input.Apartment)
		if err != nil {
			return nil, mapUpstreamError(err)
		}
		if tenant == nil {
			return nil, huma.Error404NotFound(
				fmt.Sprintf("No tenant at Building %d, Apt %d", input.Building, input.Apartment))
		}
		return &GetTenantOutput{Body: TenantView{
			BuildingNumber:  tenant.BuildingNumber,
			ApartmentNumber: tenant.ApartmentNumber,
			FirstName:       tenant.FirstName,
			LastName:        tenant.LastName,
			FullName:        tenant.FullName(),
			Phone:           tenant.Phone,
			IsOwner:         tenant.IsOwner,
			MoveInDate:      tenant.MoveInDate,
		}}, nil
	})

	huma.Register(api, huma.Operation{
		OperationID: "web-create-tenant",
		Method:      http.MethodPost,
		Path:        "/tenants",
		Summary:     "Create tenant",
		Tags:        []string{"Web"},
	}, func(ctx context.Context, input *CreateTenantInput) (*TenantMutationOutput, error) {
		tenant, err := dir.CreateTenant(ctx, sdk.CreateTenantParams{
			BuildingNumber:  input.Body.BuildingNumber,
			ApartmentNumber: input.Body.ApartmentNumber,
			FirstName:       input.Body.FirstName,
			LastName:        input.Body.LastName,
			Phone:           input.Body.Phone,
			IsOwner:         input.Body.IsOwner,
			MoveInDate:      input.Body.MoveInDate,
			StorageNumber:   input.Body.StorageNumber,
			ParkingSlot1:    input.Body.ParkingSlot1,
			ParkingSlot2:    input.Body.ParkingSlot2,
		})
		if err != nil {
			return nil, mapUpstreamError(err)
		}
		out := &TenantMutationOutput{}
		out.Body.Success = true
		out.Body.Data = tenant
		return out, nil
	})

	updateHandler := func(ctx context.Context, input *UpdateTenantInput) (*TenantMutationOutput, error) {
		tenant, err := dir.UpdateTenant(ctx, input.Building, input.Apartment, input.updatesMap())
		if err != nil {
			return nil, mapUpstreamError(err)
		}
		out := &TenantMutationOutput{}
		out.Body.Success = true
		out.Body.Data = tenant
		return out, nil
	}

	huma.Register(api, huma.Operation{
		OperationID: "web-patch-tenant",
		Method:      http.MethodPatch,
		Path:        "/tenants/{building}/{apartment}",
		Summary:     "Partially update tenant",
		Tags:        []string{"Web"},
	}, updateHandler)

	huma.Register(api, huma.Operation{
		OperationID: "web-put-tenant",
		Method:      http.MethodPut,
		Path:        "/tenants/{building}/{apartment}",
		Summary:     "Update tenant",
		Tags:        []string{"Web"},
	}, updateHandler)

	huma.Register(api, huma.Operation{
		OperationID: "web-end-tenancy",
		Method:      http.MethodDelete,
		Path:        "/tenants/{building}/{apartment}",
		Summary:     "End tenancy",
		Tags:        []string{"Web"},
	}, func(ctx context.Context, input *apartmentPath) (*EndTenancyOutput, error) {
		record, err := dir.EndTenancy(ctx, input.Building, input.Apartment, "")
		if err != nil {
			return nil, mapUpstreamError(err)
		}
		out := &EndTenancyOutput{}
		out.Body.Success = true
		out.Body.Data = record
		return out, nil
	})

	huma.Register(api, huma.Operation{
		OperationID: "web-tenant-history",
		Method:      http.MethodGet,
		Path:        "/tenants/{building}/{apartment}/history",
		Summary:     "Get apartment tenancy history",
		Tags:        []string{"Web"},
	}, func(ctx context.Context, input *apartmentPath) (*TenantHistoryOutput, error) {
		history, err := dir.TenantHistory(ctx, input.Building, input.Apartment)
		if err != nil {
			return nil, mapUpstreamError(err)
		}
		if history == nil {
			history = []sdk.HistoryRecord{}
		}
		out := &TenantHistoryOutput{}
		out.Body.History = history
		return out, nil
	})

	huma.Register(api, huma.Operation{
		OperationID: "web-occupancy-report",
		Method:      http.MethodGet,
		Path:        "/reports/occupancy",
		Summary:     "Generate occupancy report prompt",
		Tags:        []string{"Web"},
	}, func(ctx context.Context, input *OccupancyReportInput) (*ReportPromptOutput, error) {
		messages, err := dir.OccupancyReportPrompt(ctx, input.Building)
		if err != nil {
			return nil, huma.Error500InternalServerError("Failed to generate report", err)
		}
		out := &ReportPromptOutput{}
		out.Body.Messages = messages
		return out, nil
	})

	huma.Register(api, huma.Operation{
		OperationID: "web-tenant-list-report",
		Method:      http.MethodGet,
		Path:        "/reports/tenant-list",
		Summary:     "Generate tenant list report prompt",
		Tags:        []string{"Web"},
	}, func(ctx context.Context, input *TenantListReportInput) (*ReportPromptOutput, error) {
		messages, err := dir.TenantListReportPrompt(ctx, input.Building, input.IncludeContacts)
		if err != nil {
			return nil, huma.Error500InternalServerError("Failed to generate report", err)
		}
		out := &ReportPromptOutput{}
		out.Body.Messages = messages
		return out, nil
	})
}
