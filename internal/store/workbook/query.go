package workbook

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/vaadly/vaadly/internal/domain"
)

// AllTenants returns the active tenants in storage (insertion) order,
// optionally filtered to one building.
func (s *Store) AllTenants(_ context.Context, building *int) ([]*domain.Tenant, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	f, err := s.load()
	if err != nil {
		return nil, fmt.Errorf("workbook.AllTenants: %w", err)
	}
	defer func() { _ = f.Close() }()

	rows, err := f.GetRows(tenantsSheet)
	if err != nil {
		return nil, fmt.Errorf("workbook.AllTenants: read rows: %w", err)
	}

	var tenants []*domain.Tenant
	for _, row := range rows[1:] {
		if len(row) == 0 || cell(row, colMoveOut) != "" {
			continue
		}
		if building != nil && cell(row, colBuilding) != strconv.Itoa(*building) {
			continue
		}
		tenant, parseErr := parseTenant(row)
		if parseErr != nil {
			return nil, fmt.Errorf("workbook.AllTenants: %w", parseErr)
		}
		tenants = append(tenants, tenant)
	}

	return tenants, nil
}

// SearchTenants filters the active tenants by case-insensitive substring
// match on the full name and substring match on the phone number.
func (s *Store) SearchTenants(ctx context.Context, name, phone string, building *int) ([]*domain.Tenant, error) {
	tenants, err := s.AllTenants(ctx, building)
	if err != nil {
		return nil, fmt.Errorf("workbook.SearchTenants: %w", err)
	}

	var results []*domain.Tenant
	for _, tenant := range tenants {
		if name != "" && !strings.Contains(strings.ToLower(tenant.FullName()), strings.ToLower(name)) {
			continue
		}
		if phone != "" && !strings.Contains(tenant.Phone, phone) {
			continue
		}
		results = append(results, tenant)
	}

	return results, nil
}

// BuildingOccupancy computes occupancy statistics for one building. It
// fails with domain.ErrNotFound when the building is not configured.
func (s *Store) BuildingOccupancy(ctx context.Context, building int) (*domain.Occupancy, error) {
	info := s.Building(building)
	if info == nil {
		return nil, fmt.Errorf("workbook.BuildingOccupancy: building %d: %w", building, domain.ErrNotFound)
	}

	tenants, err := s.AllTenants(ctx, &building)
	if err != nil {
		return nil, fmt.Errorf("workbook.BuildingOccupancy: %w", err)
	}

	occupied := len(tenants)
	total := info.TotalApartments
	return &domain.Occupancy{
		Building:        building,
		TotalApartments: total,
		Occupied:        occupied,
		Vacant:          total - occupied,
		OccupancyRate:   domain.OccupancyRate(occupied, total),
	}, nil
}

// AllBuildingsOccupancy maps every configured building to its occupancy
// statistics, in building-number order.
func (s *Store) AllBuildingsOccupancy(ctx context.Context) ([]*domain.Occupancy, error) {
	buildings := s.Buildings()
	stats := make([]*domain.Occupancy, 0, len(buildings))
	for _, b := range buildings {
		occ, err := s.BuildingOccupancy(ctx, b.Number)
		if err != nil {
			return nil, fmt.Errorf("workbook.AllBuildingsOccupancy: %w", err)
		}
		stats = append(stats, occ)
	}
	return stats, nil
}

// WhatsAppContacts flattens each group-enabled tenant plus its WhatsApp
// members into one contact list.
func (s *Store) WhatsAppContacts(ctx context.Context, building *int) ([]*domain.Contact, error) {
	tenants, err := s.AllTenants(ctx, building)
	if err != nil {
		return nil, fmt.Errorf("workbook.WhatsAppContacts: %w", err)
	}

	var contacts []*domain.Contact
	for _, tenant := range tenants {
		if !tenant.WhatsAppGroupEnabled {
			continue
		}
		contacts = append(contacts, &domain.Contact{
			Name:      tenant.FullName(),
			Phone:     tenant.Phone,
			Building:  tenant.BuildingNumber,
			Apartment: tenant.ApartmentNumber,
		})
		for _, member := range tenant.WhatsAppMembers {
			contacts = append(contacts, &domain.Contact{
				Name:      member.FullName(),
				Phone:     member.Phone,
				Building:  tenant.BuildingNumber,
				Apartment: tenant.ApartmentNumber,
			})
		}
	}

	return contacts, nil
}

// ParkingAuthorizations flattens each gate-enabled tenant plus its guest
// authorizations. The primary occupant entry carries the apartment's two
// raw slot identifiers; guest entries carry an empty slot list.
func (s *Store) ParkingAuthorizations(ctx context.Context, building *int) ([]*domain.ParkingGrant, error) {
	tenants, err := s.AllTenants(ctx, building)
	if err != nil {
		return nil, fmt.Errorf("workbook.ParkingAuthorizations: %w", err)
	}

	var grants []*domain.ParkingGrant
	for _, tenant := range tenants {
		if !tenant.PalGateAccessEnabled {
			continue
		}
		grants = append(grants, &domain.ParkingGrant{
			Name:      tenant.FullName(),
			Phone:     tenant.Phone,
			Building:  tenant.BuildingNumber,
			Apartment: tenant.ApartmentNumber,
			Slots:     []string{tenant.ParkingSlot1, tenant.ParkingSlot2},
		})
		for _, auth := range tenant.ParkingAuthorizations {
			grants = append(grants, &domain.ParkingGrant{
				Name:      auth.FullName(),
				Phone:     auth.Phone,
				Building:  tenant.BuildingNumber,
				Apartment: tenant.ApartmentNumber,
				Slots:     []string{},
			})
		}
	}

	return grants, nil
}
