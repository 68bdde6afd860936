// Package v1 exposes the operation catalogue over HTTP: tool invocation,
// resource reads, prompt generation, report generation, and admin login.
package v1

import (
	"context"
	"time"

	"github.com/vaadly/vaadly/internal/catalog"
	"github.com/vaadly/vaadly/internal/report"
)

// Catalogue abstracts the tools/resources/prompts facade for handler
// testing. *catalog.Service satisfies this interface.
type Catalogue interface {
	Invoke(ctx context.Context, name string, args map[string]any) (any, error)
	GeneratePrompt(name string, args map[string]any) (*catalog.PromptPayload, error)

	BuildingsResource(ctx context.Context) *catalog.BuildingsView
	BuildingDetailResource(ctx context.Context, building int) (*catalog.BuildingDetailView, error)
	TenantsResource(ctx context.Context, name, phone string, building *int) (*catalog.TenantsView, error)
	HistoryResource(ctx context.Context, building, apartment int) (*catalog.HistoryView, error)
	OccupancyResource(ctx context.Context) (*catalog.OccupancyView, error)
	WhatsAppResource(ctx context.Context, building *int) (*catalog.ContactsView, error)
	ParkingResource(ctx context.Context, building *int) (*catalog.ParkingView, error)
}

// AuthService abstracts admin login for handler testing. *auth.Service
// satisfies this interface.
type AuthService interface {
	Login(password string) (token string, expiresAt time.Time, err error)
}

// Reporter abstracts report generation for handler testing.
// *report.Agent satisfies this interface.
type Reporter interface {
	OccupancyReport(ctx context.Context, building *int) (*report.Result, error)
	TenantListReport(ctx context.Context, building *int, includeContacts bool) (*report.Result, error)
	HistoryReport(ctx context.Context, building, apartment int) (*report.Result, error)
	CustomQuery(ctx context.Context, query string) (*report.Result, error)
}
