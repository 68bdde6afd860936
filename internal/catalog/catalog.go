// Package catalog is the naming and dispatch facade over the record
// store: a fixed catalogue of named tools (state-changing operations),
// named read-only resources, and report prompt builders. Transports
// invoke entries by name with a flat argument map and get back a
// JSON-shaped result or a typed failure.
package catalog

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"

	"github.com/vaadly/vaadly/internal/domain"
	"github.com/vaadly/vaadly/internal/validate"
)

// Store is the record-store surface the catalogue dispatches to.
type Store interface {
	CreateTenant(ctx context.Context, t *domain.Tenant) (*domain.Tenant, error)
	GetTenant(ctx context.Context, building, apartment int) (*domain.Tenant, error)
	UpdateTenant(ctx context.Context, t *domain.Tenant) (*domain.Tenant, error)
	EndTenancy(ctx context.Context, building, apartment int, moveOut domain.Date) (*domain.TenantHistory, error)

	AllTenants(ctx context.Context, building *int) ([]*domain.Tenant, error)
	SearchTenants(ctx context.Context, name, phone string, building *int) ([]*domain.Tenant, error)
	BuildingOccupancy(ctx context.Context, building int) (*domain.Occupancy, error)
	AllBuildingsOccupancy(ctx context.Context) ([]*domain.Occupancy, error)
	WhatsAppContacts(ctx context.Context, building *int) ([]*domain.Contact, error)
	ParkingAuthorizations(ctx context.Context, building *int) ([]*domain.ParkingGrant, error)

	ApartmentHistory(ctx context.Context, building, apartment int) ([]*domain.TenantHistory, error)
	BuildingHistory(ctx context.Context, building int) ([]*domain.TenantHistory, error)

	Buildings() []*domain.Building
	Building(number int) *domain.Building
}

// Service exposes the operation catalogue over a record store.
type Service struct {
	store     Store
	validator *validate.Validator
}

func New(store Store, validator *validate.Validator) *Service {
	return &Service{store: store, validator: validator}
}

// decodeArgs maps a flat argument map onto a typed parameter struct.
// Unknown keys are rejected: the catalogue accepts an explicit field set,
// never arbitrary attributes.
func decodeArgs(args map[string]any, dst any) error {
	raw, err := json.Marshal(args)
	if err != nil {
		return fmt.Errorf("catalog: encode arguments: %w", err)
	}
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.DisallowUnknownFields()
	if err := dec.Decode(dst); err != nil {
		return domain.NewValidationError(
			fmt.Sprintf("Invalid arguments: %v", err),
			map[string]any{"arguments": args},
		)
	}
	return nil
}
