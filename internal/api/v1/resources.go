package v1

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	"github.com/vaadly/vaadly/internal/catalog"
)

type ListResourcesOutput struct {
	Body struct {
		Resources []catalog.ResourceDefinition `json:"resources"`
	}
}

type BuildingsOutput struct {
	Body *catalog.BuildingsView
}

type BuildingDetailInput struct {
	Building int `path:"building_number" doc:"Building number"`
}

type BuildingDetailOutput struct {
	Body *catalog.BuildingDetailView
}

type TenantsInput struct {
	Building *int   `query:"building" doc:"Filter by building number"`
	Name     string `query:"name" doc:"Case-insensitive substring match on full name"`
	Phone    string `query:"phone" doc:"Substring match on phone number"`
}

type TenantsOutput struct {
	Body *catalog.TenantsView
}

type ApartmentInput struct {
	Building  int `path:"building" doc:"Building number"`
	Apartment int `path:"apartment" doc:"Apartment number"`
}

type HistoryOutput struct {
	Body *catalog.HistoryView
}

type OccupancyOutput struct {
	Body *catalog.OccupancyView
}

type BuildingFilterInput struct {
	Building *int `query:"building" doc:"Filter by building number"`
}

type ContactsOutput struct {
	Body *catalog.ContactsView
}

type ParkingOutput struct {
	Body *catalog.ParkingView
}

// RegisterResourceRoutes mounts the read-only view endpoints.
func RegisterResourceRoutes(api huma.API, catalogue Catalogue) {
	huma.Register(api, huma.Operation{
		OperationID: "list-resources",
		Method:      http.MethodGet,
		Path:        "/resources",
		Summary:     "List available resources",
		Tags:        []string{"Resources"},
	}, func(_ context.Context, _ *struct{}) (*ListResourcesOutput, error) {
		out := &ListResourcesOutput{}
		out.Body.Resources = catalog.ResourceDefinitions()
		return out, nil
	})

	huma.Register(api, huma.Operation{
		OperationID: "get-buildings",
		Method:      http.MethodGet,
		Path:        "/resources/buildings",
		Summary:     "List all buildings",
		Tags:        []string{"Resources"},
	}, func(ctx context.Context, _ *struct{}) (*BuildingsOutput, error) {
		return &BuildingsOutput{Body: catalogue.BuildingsResource(ctx)}, nil
	})

	huma.Register(api, huma.Operation{
		OperationID: "get-building-detail",
		Method:      http.MethodGet,
		Path:        "/resources/buildings/{building_number}",
		Summary:     "Building details with occupancy and tenants",
		Tags:        []string{"Resources"},
	}, func(ctx context.Context, input *BuildingDetailInput) (*BuildingDetailOutput, error) {
		view, err := catalogue.BuildingDetailResource(ctx, input.Building)
		if err != nil {
			return nil, mapError(err, "failed to load building details")
		}
		return &BuildingDetailOutput{Body: view}, nil
	})

	huma.Register(api, huma.Operation{
		OperationID: "get-tenants",
		Method:      http.MethodGet,
		Path:        "/resources/tenants",
		Summary:     "List active tenants",
		Tags:        []string{"Resources"},
	}, func(ctx context.Context, input *TenantsInput) (*TenantsOutput, error) {
		view, err := catalogue.TenantsResource(ctx, input.Name, input.Phone, input.Building)
		if err != nil {
			return nil, mapError(err, "failed to list tenants")
		}
		return &TenantsOutput{Body: view}, nil
	})

	huma.Register(api, huma.Operation{
		OperationID: "get-tenant-history",
		Method:      http.MethodGet,
		Path:        "/resources/tenants/{building}/{apartment}/history",
		Summary:     "Historical tenants for an apartment",
		Tags:        []string{"Resources"},
	}, func(ctx context.Context, input *ApartmentInput) (*HistoryOutput, error) {
		view, err := catalogue.HistoryResource(ctx, input.Building, input.Apartment)
		if err != nil {
			return nil, mapError(err, "failed to load tenant history")
		}
		return &HistoryOutput{Body: view}, nil
	})

	huma.Register(api, huma.Operation{
		OperationID: "get-occupancy",
		Method:      http.MethodGet,
		Path:        "/resources/occupancy",
		Summary:     "Occupancy statistics for all buildings",
		Tags:        []string{"Resources"},
	}, func(ctx context.Context, _ *struct{}) (*OccupancyOutput, error) {
		view, err := catalogue.OccupancyResource(ctx)
		if err != nil {
			return nil, mapError(err, "failed to compute occupancy")
		}
		return &OccupancyOutput{Body: view}, nil
	})

	huma.Register(api, huma.Operation{
		OperationID: "get-whatsapp-contacts",
		Method:      http.MethodGet,
		Path:        "/resources/whatsapp",
		Summary:     "WhatsApp group contact list",
		Tags:        []string{"Resources"},
	}, func(ctx context.Context, input *BuildingFilterInput) (*ContactsOutput, error) {
		view, err := catalogue.WhatsAppResource(ctx, input.Building)
		if err != nil {
			return nil, mapError(err, "failed to list contacts")
		}
		return &ContactsOutput{Body: view}, nil
	})

	huma.Register(api, huma.Operation{
		OperationID: "get-parking-authorizations",
		Method:      http.MethodGet,
		Path:        "/resources/parking",
		Summary:     "Parking access authorization list",
		Tags:        []string{"Resources"},
	}, func(ctx context.Context, input *BuildingFilterInput) (*ParkingOutput, error) {
		view, err := catalogue.ParkingResource(ctx, input.Building)
		if err != nil {
			return nil, mapError(err, "failed to list parking authorizations")
		}
		return &ParkingOutput{Body: view}, nil
	})
}
