package v1_test

import (
	"context"
	"time"

	"github.com/vaadly/vaadly/internal/catalog"
	"github.com/vaadly/vaadly/internal/domain"
	"github.com/vaadly/vaadly/internal/report"
)

// ---------------------------------------------------------------------------
// Mock Catalogue
// ---------------------------------------------------------------------------

type mockCatalogue struct {
	invokeFunc         func(ctx context.Context, name string, args map[string]any) (any, error)
	generatePromptFunc func(name string, args map[string]any) (*catalog.PromptPayload, error)
	buildingsFunc      func(ctx context.Context) *catalog.BuildingsView
	buildingDetailFunc func(ctx context.Context, building int) (*catalog.BuildingDetailView, error)
	tenantsFunc        func(ctx context.Context, name, phone string, building *int) (*catalog.TenantsView, error)
	historyFunc        func(ctx context.Context, building, apartment int) (*catalog.HistoryView, error)
	occupancyFunc      func(ctx context.Context) (*catalog.OccupancyView, error)
	whatsappFunc       func(ctx context.Context, building *int) (*catalog.ContactsView, error)
	parkingFunc        func(ctx context.Context, building *int) (*catalog.ParkingView, error)
}

func (m *mockCatalogue) Invoke(ctx context.Context, name string, args map[string]any) (any, error) {
	return m.invokeFunc(ctx, name, args)
}

func (m *mockCatalogue) GeneratePrompt(name string, args map[string]any) (*catalog.PromptPayload, error) {
	return m.generatePromptFunc(name, args)
}

func (m *mockCatalogue) BuildingsResource(ctx context.Context) *catalog.BuildingsView {
	return m.buildingsFunc(ctx)
}

func (m *mockCatalogue) BuildingDetailResource(ctx context.Context, building int) (*catalog.BuildingDetailView, error) {
	return m.buildingDetailFunc(ctx, building)
}

func (m *mockCatalogue) TenantsResource(ctx context.Context, name, phone string, building *int) (*catalog.TenantsView, error) {
	return m.tenantsFunc(ctx, name, phone, building)
}

func (m *mockCatalogue) HistoryResource(ctx context.Context, building, apartment int) (*catalog.HistoryView, error) {
	return m.historyFunc(ctx, building, apartment)
}

func (m *mockCatalogue) OccupancyResource(ctx context.Context) (*catalog.OccupancyView, error) {
	return m.occupancyFunc(ctx)
}

func (m *mockCatalogue) WhatsAppResource(ctx context.Context, building *int) (*catalog.ContactsView, error) {
	return m.whatsappFunc(ctx, building)
}

func (m *mockCatalogue) ParkingResource(ctx context.Context, building *int) (*catalog.ParkingView, error) {
	return m.parkingFunc(ctx, building)
}

// ---------------------------------------------------------------------------
// Mock AuthService
// ---------------------------------------------------------------------------

type mockAuthService struct {
	loginFunc func(password string) (string, time.Time, error)
}

func (m *mockAuthService) Login(password string) (string, time.Time, error) {
	return m.loginFunc(password)
}

// ---------------------------------------------------------------------------
// Mock Reporter
// ---------------------------------------------------------------------------

type mockReporter struct {
	occupancyFunc  func(ctx context.Context, building *int) (*report.Result, error)
	tenantListFunc func(ctx context.Context, building *int, includeContacts bool) (*report.Result, error)
	historyFunc    func(ctx context.Context, building, apartment int) (*report.Result, error)
	customFunc     func(ctx context.Context, query string) (*report.Result, error)
}

func (m *mockReporter) OccupancyReport(ctx context.Context, building *int) (*report.Result, error) {
	return m.occupancyFunc(ctx, building)
}

func (m *mockReporter) TenantListReport(ctx context.Context, building *int, includeContacts bool) (*report.Result, error) {
	return m.tenantListFunc(ctx, building, includeContacts)
}

func (m *mockReporter) HistoryReport(ctx context.Context, building, apartment int) (*report.Result, error) {
	return m.historyFunc(ctx, building, apartment)
}

func (m *mockReporter) CustomQuery(ctx context.Context, query string) (*report.Result, error) {
	return m.customFunc(ctx, query)
}

// ---------------------------------------------------------------------------
// Recording notifier
// ---------------------------------------------------------------------------

type recordingNotifier struct {
	endedHistories []*domain.TenantHistory
	reportIDs      []string
	err            error
}

func (r *recordingNotifier) TenancyEnded(_ context.Context, h *domain.TenantHistory) error {
	r.endedHistories = append(r.endedHistories, h)
	return r.err
}

func (r *recordingNotifier) ReportGenerated(_ context.Context, _, reportID string) error {
	r.reportIDs = append(r.reportIDs, reportID)
	return r.err
}
