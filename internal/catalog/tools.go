package catalog

import (
	"context"
	"fmt"
	"strings"

	"github.com/vaadly/vaadly/internal/domain"
)

// Tool names in the operation catalogue.
const (
	ToolCreateTenant  = "create_tenant"
	ToolUpdateTenant  = "update_tenant"
	ToolEndTenancy    = "end_tenancy"
	ToolGetTenant     = "get_tenant"
	ToolSearchTenants = "search_tenants"
)

// ToolDefinition describes one catalogue tool for discovery by clients.
type ToolDefinition struct {
	Name        string         `json:"name"`
	Description string         `json:"description"`
	InputSchema map[string]any `json:"inputSchema"`
}

// TenantResult wraps a tool result carrying a tenant. Tenant is nil for a
// get on a vacant apartment; that is a valid answer, not an error, so the
// field has no omitempty.
type TenantResult struct {
	Success bool           `json:"success"`
	Tenant  *domain.Tenant `json:"tenant"`
}

// TenantsResult wraps a search result.
type TenantsResult struct {
	Success bool             `json:"success"`
	Tenants []*domain.Tenant `json:"tenants"`
}

// HistoryResult wraps the archival snapshot produced by end_tenancy.
type HistoryResult struct {
	Success bool                  `json:"success"`
	History *domain.TenantHistory `json:"history"`
}

// ToolDefinitions returns the fixed tool catalogue.
func ToolDefinitions() []ToolDefinition {
	identity := map[string]any{
		"building_number":  map[string]any{"type": "integer"},
		"apartment_number": map[string]any{"type": "integer"},
	}
	withIdentity := func(extra map[string]any) map[string]any {
		props := map[string]any{}
		for k, v := range identity {
			props[k] = v
		}
		for k, v := range extra {
			props[k] = v
		}
		return props
	}

	return []ToolDefinition{
		{
			Name:        ToolCreateTenant,
			Description: "Register a new tenant in an apartment",
			InputSchema: map[string]any{
				"type": "object",
				"properties": withIdentity(map[string]any{
					"first_name": map[string]any{"type": "string"},
					"last_name":  map[string]any{"type": "string"},
					"phone":      map[string]any{"type": "string"},
					"is_owner":   map[string]any{"type": "boolean", "default": true},
					"owner_info": map[string]any{
						"type": "object",
						"properties": map[string]any{
							"first_name": map[string]any{"type": "string"},
							"last_name":  map[string]any{"type": "string"},
							"phone":      map[string]any{"type": "string"},
						},
					},
				}),
				"required": []string{
					"building_number", "apartment_number",
					"first_name", "last_name", "phone",
				},
			},
		},
		{
			Name:        ToolUpdateTenant,
			Description: "Update existing tenant information",
			InputSchema: map[string]any{
				"type": "object",
				"properties": withIdentity(map[string]any{
					"updates": map[string]any{"type": "object"},
				}),
				"required": []string{"building_number", "apartment_number", "updates"},
			},
		},
		{
			Name:        ToolEndTenancy,
			Description: "End a tenant's residency and move to history",
			InputSchema: map[string]any{
				"type": "object",
				"properties": withIdentity(map[string]any{
					"move_out_date": map[string]any{"type": "string", "format": "date"},
				}),
				"required": []string{"building_number", "apartment_number"},
			},
		},
		{
			Name:        ToolGetTenant,
			Description: "Get current tenant for an apartment",
			InputSchema: map[string]any{
				"type":       "object",
				"properties": identity,
				"required":   []string{"building_number", "apartment_number"},
			},
		},
		{
			Name:        ToolSearchTenants,
			Description: "Search active tenants by name, phone, or building",
			InputSchema: map[string]any{
				"type": "object",
				"properties": map[string]any{
					"name":     map[string]any{"type": "string"},
					"phone":    map[string]any{"type": "string"},
					"building": map[string]any{"type": "integer"},
				},
			},
		},
	}
}

// Invoke dispatches a tool call by name with a flat argument map.
func (s *Service) Invoke(ctx context.Context, name string, args map[string]any) (any, error) {
	switch name {
	case ToolCreateTenant:
		return s.createTenant(ctx, args)
	case ToolUpdateTenant:
		return s.updateTenant(ctx, args)
	case ToolEndTenancy:
		return s.endTenancy(ctx, args)
	case ToolGetTenant:
		return s.getTenant(ctx, args)
	case ToolSearchTenants:
		return s.searchTenants(ctx, args)
	default:
		return nil, fmt.Errorf("catalog.Invoke: unknown tool %q: %w", name, domain.ErrNotFound)
	}
}

type createTenantParams struct {
	BuildingNumber        int                    `json:"building_number"`
	ApartmentNumber       int                    `json:"apartment_number"`
	FirstName             string                 `json:"first_name"`
	LastName              string                 `json:"last_name"`
	Phone                 string                 `json:"phone"`
	StorageNumber         string                 `json:"storage_number"`
	ParkingSlot1          string                 `json:"parking_slot_1"`
	ParkingSlot2          string                 `json:"parking_slot_2"`
	IsOwner               *bool                  `json:"is_owner"`
	OwnerInfo             *domain.OwnerInfo      `json:"owner_info"`
	WhatsAppMembers       []domain.Member        `json:"whatsapp_members"`
	ParkingAuthorizations []domain.Member        `json:"parking_authorizations"`
	PalGateMembers        []domain.PalGateMember `json:"palgate_members"`
	MoveInDate            *domain.Date           `json:"move_in_date"`
	PalGateAccessEnabled  bool                   `json:"palgate_access_enabled"`
	WhatsAppGroupEnabled  bool                   `json:"whatsapp_group_enabled"`
}

func (s *Service) createTenant(ctx context.Context, args map[string]any) (*TenantResult, error) {
	var p createTenantParams
	if err := decodeArgs(args, &p); err != nil {
		return nil, fmt.Errorf("catalog.createTenant: %w", err)
	}

	isOwner := true
	if p.IsOwner != nil {
		isOwner = *p.IsOwner
	}
	moveIn := domain.Today()
	if p.MoveInDate != nil {
		moveIn = *p.MoveInDate
	}

	tenant := &domain.Tenant{
		BuildingNumber:        p.BuildingNumber,
		ApartmentNumber:       p.ApartmentNumber,
		FirstName:             p.FirstName,
		LastName:              p.LastName,
		Phone:                 p.Phone,
		StorageNumber:         p.StorageNumber,
		ParkingSlot1:          p.ParkingSlot1,
		ParkingSlot2:          p.ParkingSlot2,
		IsOwner:               isOwner,
		OwnerInfo:             p.OwnerInfo,
		WhatsAppMembers:       p.WhatsAppMembers,
		ParkingAuthorizations: p.ParkingAuthorizations,
		PalGateMembers:        p.PalGateMembers,
		MoveInDate:            moveIn,
		PalGateAccessEnabled:  p.PalGateAccessEnabled,
		WhatsAppGroupEnabled:  p.WhatsAppGroupEnabled,
	}

	if err := s.checkTenant(tenant); err != nil {
		return nil, fmt.Errorf("catalog.createTenant: %w", err)
	}

	created, err := s.store.CreateTenant(ctx, tenant)
	if err != nil {
		return nil, fmt.Errorf("catalog.createTenant: %w", err)
	}
	return &TenantResult{Success: true, Tenant: created}, nil
}

type updateTenantParams struct {
	BuildingNumber  int            `json:"building_number"`
	ApartmentNumber int            `json:"apartment_number"`
	Updates         map[string]any `json:"updates"`
}

// tenantUpdates is the explicit allow-list of updatable fields. Identity
// and the move dates are immutable through this tool; an unknown key in
// the updates map is a validation failure.
type tenantUpdates struct {
	FirstName             *string                 `json:"first_name"`
	LastName              *string                 `json:"last_name"`
	Phone                 *string                 `json:"phone"`
	StorageNumber         *string                 `json:"storage_number"`
	ParkingSlot1          *string                 `json:"parking_slot_1"`
	ParkingSlot2          *string                 `json:"parking_slot_2"`
	IsOwner               *bool                   `json:"is_owner"`
	OwnerInfo             *domain.OwnerInfo       `json:"owner_info"`
	WhatsAppMembers       *[]domain.Member        `json:"whatsapp_members"`
	ParkingAuthorizations *[]domain.Member        `json:"parking_authorizations"`
	PalGateMembers        *[]domain.PalGateMember `json:"palgate_members"`
	PalGateAccessEnabled  *bool                   `json:"palgate_access_enabled"`
	WhatsAppGroupEnabled  *bool                   `json:"whatsapp_group_enabled"`
}

func (u *tenantUpdates) apply(t *domain.Tenant) {
	if u.FirstName != nil {
		t.FirstName = *u.FirstName
	}
	if u.LastName != nil {
		t.LastName = *u.LastName
	}
	if u.Phone != nil {
		t.Phone = *u.Phone
	}
	if u.StorageNumber != nil {
		t.StorageNumber = *u.StorageNumber
	}
	if u.ParkingSlot1 != nil {
		t.ParkingSlot1 = *u.ParkingSlot1
	}
	if u.ParkingSlot2 != nil {
		t.ParkingSlot2 = *u.ParkingSlot2
	}
	if u.IsOwner != nil {
		t.IsOwner = *u.IsOwner
		if t.IsOwner {
			t.OwnerInfo = nil
		}
	}
	if u.OwnerInfo != nil {
		t.OwnerInfo = u.OwnerInfo
	}
	if u.WhatsAppMembers != nil {
		t.WhatsAppMembers = *u.WhatsAppMembers
	}
	if u.ParkingAuthorizations != nil {
		t.ParkingAuthorizations = *u.ParkingAuthorizations
	}
	if u.PalGateMembers != nil {
		t.PalGateMembers = *u.PalGateMembers
	}
	if u.PalGateAccessEnabled != nil {
		t.PalGateAccessEnabled = *u.PalGateAccessEnabled
	}
	if u.WhatsAppGroupEnabled != nil {
		t.WhatsAppGroupEnabled = *u.WhatsAppGroupEnabled
	}
}

func (s *Service) updateTenant(ctx context.Context, args map[string]any) (*TenantResult, error) {
	var p updateTenantParams
	if err := decodeArgs(args, &p); err != nil {
		return nil, fmt.Errorf("catalog.updateTenant: %w", err)
	}

	tenant, err := s.store.GetTenant(ctx, p.BuildingNumber, p.ApartmentNumber)
	if err != nil {
		return nil, fmt.Errorf("catalog.updateTenant: %w", err)
	}
	if tenant == nil {
		return nil, fmt.Errorf(
			"catalog.updateTenant: no active tenant for building %d apartment %d: %w",
			p.BuildingNumber, p.ApartmentNumber, domain.ErrNotFound,
		)
	}

	var updates tenantUpdates
	if err := decodeArgs(p.Updates, &updates); err != nil {
		return nil, fmt.Errorf("catalog.updateTenant: %w", err)
	}
	updates.apply(tenant)

	if err := s.checkTenant(tenant); err != nil {
		return nil, fmt.Errorf("catalog.updateTenant: %w", err)
	}

	updated, err := s.store.UpdateTenant(ctx, tenant)
	if err != nil {
		return nil, fmt.Errorf("catalog.updateTenant: %w", err)
	}
	return &TenantResult{Success: true, Tenant: updated}, nil
}

type endTenancyParams struct {
	BuildingNumber  int          `json:"building_number"`
	ApartmentNumber int          `json:"apartment_number"`
	MoveOutDate     *domain.Date `json:"move_out_date"`
}

func (s *Service) endTenancy(ctx context.Context, args map[string]any) (*HistoryResult, error) {
	var p endTenancyParams
	if err := decodeArgs(args, &p); err != nil {
		return nil, fmt.Errorf("catalog.endTenancy: %w", err)
	}

	moveOut := domain.Today()
	if p.MoveOutDate != nil {
		moveOut = *p.MoveOutDate
	}

	history, err := s.store.EndTenancy(ctx, p.BuildingNumber, p.ApartmentNumber, moveOut)
	if err != nil {
		return nil, fmt.Errorf("catalog.endTenancy: %w", err)
	}
	return &HistoryResult{Success: true, History: history}, nil
}

type getTenantParams struct {
	BuildingNumber  int `json:"building_number"`
	ApartmentNumber int `json:"apartment_number"`
}

func (s *Service) getTenant(ctx context.Context, args map[string]any) (*TenantResult, error) {
	var p getTenantParams
	if err := decodeArgs(args, &p); err != nil {
		return nil, fmt.Errorf("catalog.getTenant: %w", err)
	}

	tenant, err := s.store.GetTenant(ctx, p.BuildingNumber, p.ApartmentNumber)
	if err != nil {
		return nil, fmt.Errorf("catalog.getTenant: %w", err)
	}
	return &TenantResult{Success: true, Tenant: tenant}, nil
}

type searchTenantsParams struct {
	Name     string `json:"name"`
	Phone    string `json:"phone"`
	Building *int   `json:"building"`
}

func (s *Service) searchTenants(ctx context.Context, args map[string]any) (*TenantsResult, error) {
	var p searchTenantsParams
	if err := decodeArgs(args, &p); err != nil {
		return nil, fmt.Errorf("catalog.searchTenants: %w", err)
	}

	tenants, err := s.store.SearchTenants(ctx, p.Name, p.Phone, p.Building)
	if err != nil {
		return nil, fmt.Errorf("catalog.searchTenants: %w", err)
	}
	if tenants == nil {
		tenants = []*domain.Tenant{}
	}
	return &TenantsResult{Success: true, Tenants: tenants}, nil
}

// checkTenant runs the aggregate validator and folds every failure into a
// single validation error, so callers see all invalid fields at once.
func (s *Service) checkTenant(t *domain.Tenant) error {
	ok, errs := s.validator.TenantData(t)
	if strings.TrimSpace(t.Phone) == "" {
		ok = false
		errs = append(errs, "Phone is required")
	}
	if ok {
		return nil
	}
	return domain.NewValidationError(
		"Invalid tenant data",
		map[string]any{"errors": errs},
	)
}
