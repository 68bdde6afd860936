package catalog

import (
	"context"
	"fmt"

	"github.com/vaadly/vaadly/internal/domain"
)

// ResourceDefinition describes one read-only view for discovery.
type ResourceDefinition struct {
	URI         string `json:"uri"`
	Name        string `json:"name"`
	Description string `json:"description"`
	MIMEType    string `json:"mimeType"`
}

// ResourceDefinitions returns the fixed read-view catalogue.
func ResourceDefinitions() []ResourceDefinition {
	return []ResourceDefinition{
		{
			URI:         "tenants://buildings",
			Name:        "All Buildings",
			Description: "List of all buildings with apartment counts",
			MIMEType:    "application/json",
		},
		{
			URI:         "tenants://buildings/{building_number}",
			Name:        "Building Details",
			Description: "Details and occupancy for a specific building",
			MIMEType:    "application/json",
		},
		{
			URI:         "tenants://tenants",
			Name:        "All Tenants",
			Description: "List of all active tenants",
			MIMEType:    "application/json",
		},
		{
			URI:         "tenants://tenants/{building}/{apartment}/history",
			Name:        "Tenant History",
			Description: "Historical tenants for an apartment",
			MIMEType:    "application/json",
		},
		{
			URI:         "tenants://occupancy",
			Name:        "Occupancy Statistics",
			Description: "Occupancy rates for all buildings",
			MIMEType:    "application/json",
		},
		{
			URI:         "tenants://whatsapp",
			Name:        "WhatsApp Contacts",
			Description: "Phone numbers for WhatsApp groups",
			MIMEType:    "application/json",
		},
		{
			URI:         "tenants://parking",
			Name:        "Parking Authorizations",
			Description: "List of parking access authorizations",
			MIMEType:    "application/json",
		},
	}
}

// BuildingsView lists the configured buildings.
type BuildingsView struct {
	Buildings []*domain.Building `json:"buildings"`
}

// BuildingDetailView is one building with its occupancy and active tenants.
type BuildingDetailView struct {
	Building  *domain.Building  `json:"building"`
	Occupancy *domain.Occupancy `json:"occupancy"`
	Tenants   []*domain.Tenant  `json:"tenants"`
}

// TenantsView lists active tenants.
type TenantsView struct {
	Tenants []*domain.Tenant `json:"tenants"`
}

// HistoryView lists archival records, most recent move-in first.
type HistoryView struct {
	History []*domain.TenantHistory `json:"history"`
}

// OccupancyTotals aggregates occupancy across every building.
type OccupancyTotals struct {
	Apartments    int     `json:"apartments"`
	Occupied      int     `json:"occupied"`
	Vacant        int     `json:"vacant"`
	OccupancyRate float64 `json:"occupancy_rate"`
}

// OccupancyView is per-building occupancy plus the complex-wide totals.
type OccupancyView struct {
	Buildings []*domain.Occupancy `json:"buildings"`
	Total     OccupancyTotals     `json:"total"`
}

// ContactsView is the flattened WhatsApp contact list.
type ContactsView struct {
	Contacts []*domain.Contact `json:"contacts"`
}

// ParkingView is the flattened parking authorization list.
type ParkingView struct {
	Authorizations []*domain.ParkingGrant `json:"authorizations"`
}

// BuildingsResource returns every configured building.
func (s *Service) BuildingsResource(_ context.Context) *BuildingsView {
	return &BuildingsView{Buildings: s.store.Buildings()}
}

// BuildingDetailResource returns one building with occupancy and tenants.
func (s *Service) BuildingDetailResource(ctx context.Context, building int) (*BuildingDetailView, error) {
	info := s.store.Building(building)
	if info == nil {
		return nil, fmt.Errorf("catalog.BuildingDetailResource: building %d: %w", building, domain.ErrNotFound)
	}

	occupancy, err := s.store.BuildingOccupancy(ctx, building)
	if err != nil {
		return nil, fmt.Errorf("catalog.BuildingDetailResource: %w", err)
	}
	tenants, err := s.store.AllTenants(ctx, &building)
	if err != nil {
		return nil, fmt.Errorf("catalog.BuildingDetailResource: %w", err)
	}
	if tenants == nil {
		tenants = []*domain.Tenant{}
	}

	return &BuildingDetailView{Building: info, Occupancy: occupancy, Tenants: tenants}, nil
}

// TenantsResource returns active tenants, optionally filtered by building
// and by name/phone substring search.
func (s *Service) TenantsResource(ctx context.Context, name, phone string, building *int) (*TenantsView, error) {
	var (
		tenants []*domain.Tenant
		err     error
	)
	if name != "" || phone != "" {
		tenants, err = s.store.SearchTenants(ctx, name, phone, building)
	} else {
		tenants, err = s.store.AllTenants(ctx, building)
	}
	if err != nil {
		return nil, fmt.Errorf("catalog.TenantsResource: %w", err)
	}
	if tenants == nil {
		tenants = []*domain.Tenant{}
	}
	return &TenantsView{Tenants: tenants}, nil
}

// HistoryResource returns the archival records for one apartment.
func (s *Service) HistoryResource(ctx context.Context, building, apartment int) (*HistoryView, error) {
	history, err := s.store.ApartmentHistory(ctx, building, apartment)
	if err != nil {
		return nil, fmt.Errorf("catalog.HistoryResource: %w", err)
	}
	if history == nil {
		history = []*domain.TenantHistory{}
	}
	return &HistoryView{History: history}, nil
}

// BuildingHistoryResource returns the archival records for a whole building.
func (s *Service) BuildingHistoryResource(ctx context.Context, building int) (*HistoryView, error) {
	history, err := s.store.BuildingHistory(ctx, building)
	if err != nil {
		return nil, fmt.Errorf("catalog.BuildingHistoryResource: %w", err)
	}
	if history == nil {
		history = []*domain.TenantHistory{}
	}
	return &HistoryView{History: history}, nil
}

// OccupancyResource returns per-building occupancy plus aggregate totals.
func (s *Service) OccupancyResource(ctx context.Context) (*OccupancyView, error) {
	stats, err := s.store.AllBuildingsOccupancy(ctx)
	if err != nil {
		return nil, fmt.Errorf("catalog.OccupancyResource: %w", err)
	}

	var totalApartments, totalOccupied int
	for _, s := range stats {
		totalApartments += s.TotalApartments
		totalOccupied += s.Occupied
	}

	return &OccupancyView{
		Buildings: stats,
		Total: OccupancyTotals{
			Apartments:    totalApartments,
			Occupied:      totalOccupied,
			Vacant:        totalApartments - totalOccupied,
			OccupancyRate: domain.OccupancyRate(totalOccupied, totalApartments),
		},
	}, nil
}

// WhatsAppResource returns the flattened WhatsApp contact list.
func (s *Service) WhatsAppResource(ctx context.Context, building *int) (*ContactsView, error) {
	contacts, err := s.store.WhatsAppContacts(ctx, building)
	if err != nil {
		return nil, fmt.Errorf("catalog.WhatsAppResource: %w", err)
	}
	if contacts == nil {
		contacts = []*domain.Contact{}
	}
	return &ContactsView{Contacts: contacts}, nil
}

// ParkingResource returns the flattened parking authorization list.
func (s *Service) ParkingResource(ctx context.Context, building *int) (*ParkingView, error) {
	grants, err := s.store.ParkingAuthorizations(ctx, building)
	if err != nil {
		return nil, fmt.Errorf("catalog.ParkingResource: %w", err)
	}
	if grants == nil {
		grants = []*domain.ParkingGrant{}
	}
	return &ParkingView{Authorizations: grants}, nil
}
