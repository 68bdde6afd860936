package workbook

import (
	"context"
	"fmt"

	"github.com/rs/zerolog/log"
	"github.com/xuri/excelize/v2"

	"github.com/vaadly/vaadly/internal/domain"
)

// CreateTenant appends a new active tenant row. It fails with
// domain.ErrConflict when the apartment already has an active record, and
// with a validation error when the building or apartment is not in the
// configured set.
func (s *Store) CreateTenant(_ context.Context, t *domain.Tenant) (*domain.Tenant, error) {
	if err := s.validator.BuildingNumber(t.BuildingNumber); err != nil {
		return nil, fmt.Errorf("workbook.CreateTenant: %w", err)
	}
	if err := s.validator.ApartmentNumber(t.BuildingNumber, t.ApartmentNumber); err != nil {
		return nil, fmt.Errorf("workbook.CreateTenant: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	f, err := s.load()
	if err != nil {
		return nil, fmt.Errorf("workbook.CreateTenant: %w", err)
	}
	defer func() { _ = f.Close() }()

	rows, err := f.GetRows(tenantsSheet)
	if err != nil {
		return nil, fmt.Errorf("workbook.CreateTenant: read rows: %w", err)
	}

	for _, row := range rows[1:] {
		if matchesActive(row, t.BuildingNumber, t.ApartmentNumber) {
			return nil, fmt.Errorf(
				"workbook.CreateTenant: active tenant already exists for building %d apartment %d: %w",
				t.BuildingNumber, t.ApartmentNumber, domain.ErrConflict,
			)
		}
	}

	values, err := tenantRow(t)
	if err != nil {
		return nil, fmt.Errorf("workbook.CreateTenant: %w", err)
	}
	if err := setRow(f, tenantsSheet, len(rows)+1, values); err != nil {
		return nil, fmt.Errorf("workbook.CreateTenant: %w", err)
	}
	if err := s.save(f); err != nil {
		return nil, fmt.Errorf("workbook.CreateTenant: %w", err)
	}

	log.Info().
		Int("building", t.BuildingNumber).
		Int("apartment", t.ApartmentNumber).
		Msg("tenant created")

	return t, nil
}

// GetTenant returns the active tenant for an apartment. An empty apartment
// is a valid negative result, not an error: it returns (nil, nil).
func (s *Store) GetTenant(_ context.Context, building, apartment int) (*domain.Tenant, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	f, err := s.load()
	if err != nil {
		return nil, fmt.Errorf("workbook.GetTenant: %w", err)
	}
	defer func() { _ = f.Close() }()

	rows, err := f.GetRows(tenantsSheet)
	if err != nil {
		return nil, fmt.Errorf("workbook.GetTenant: read rows: %w", err)
	}

	for _, row := range rows[1:] {
		if matchesActive(row, building, apartment) {
			tenant, parseErr := parseTenant(row)
			if parseErr != nil {
				return nil, fmt.Errorf("workbook.GetTenant: %w", parseErr)
			}
			return tenant, nil
		}
	}

	return nil, nil
}

// UpdateTenant overwrites all fields of the unique active row matching the
// tenant's (building, apartment) identity. Identity itself is immutable;
// there is no surrogate key.
func (s *Store) UpdateTenant(_ context.Context, t *domain.Tenant) (*domain.Tenant, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	f, err := s.load()
	if err != nil {
		return nil, fmt.Errorf("workbook.UpdateTenant: %w", err)
	}
	defer func() { _ = f.Close() }()

	rows, err := f.GetRows(tenantsSheet)
	if err != nil {
		return nil, fmt.Errorf("workbook.UpdateTenant: read rows: %w", err)
	}

	for i, row := range rows[1:] {
		if !matchesActive(row, t.BuildingNumber, t.ApartmentNumber) {
			continue
		}

		values, rowErr := tenantRow(t)
		if rowErr != nil {
			return nil, fmt.Errorf("workbook.UpdateTenant: %w", rowErr)
		}
		if setErr := setRow(f, tenantsSheet, i+2, values); setErr != nil {
			return nil, fmt.Errorf("workbook.UpdateTenant: %w", setErr)
		}
		if saveErr := s.save(f); saveErr != nil {
			return nil, fmt.Errorf("workbook.UpdateTenant: %w", saveErr)
		}

		log.Info().
			Int("building", t.BuildingNumber).
			Int("apartment", t.ApartmentNumber).
			Msg("tenant updated")

		return t, nil
	}

	return nil, fmt.Errorf(
		"workbook.UpdateTenant: no active tenant for building %d apartment %d: %w",
		t.BuildingNumber, t.ApartmentNumber, domain.ErrNotFound,
	)
}

// EndTenancy stamps the active row's move-out date and appends the
// archival history snapshot, persisting both sheets in a single save so
// neither change is observable without the other.
func (s *Store) EndTenancy(_ context.Context, building, apartment int, moveOut domain.Date) (*domain.TenantHistory, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	f, err := s.load()
	if err != nil {
		return nil, fmt.Errorf("workbook.EndTenancy: %w", err)
	}
	defer func() { _ = f.Close() }()

	rows, err := f.GetRows(tenantsSheet)
	if err != nil {
		return nil, fmt.Errorf("workbook.EndTenancy: read rows: %w", err)
	}

	for i, row := range rows[1:] {
		if !matchesActive(row, building, apartment) {
			continue
		}

		moveIn, parseErr := domain.ParseDate(cell(row, colMoveIn))
		if parseErr != nil {
			return nil, fmt.Errorf("workbook.EndTenancy: move_in_date: %w", parseErr)
		}
		if moveOut.Before(moveIn) {
			return nil, fmt.Errorf("workbook.EndTenancy: %w", domain.NewValidationError(
				"Move-out date cannot be before move-in date",
				map[string]any{"move_in": moveIn.String(), "move_out": moveOut.String()},
			))
		}

		history := &domain.TenantHistory{
			BuildingNumber:  building,
			ApartmentNumber: apartment,
			FirstName:       cell(row, colFirstName),
			LastName:        cell(row, colLastName),
			Phone:           cell(row, colPhone),
			MoveInDate:      moveIn,
			MoveOutDate:     moveOut,
			WasOwner:        parseBoolCell(cell(row, colIsOwner)),
			OwnerFirstName:  cell(row, colOwnerFirst),
			OwnerLastName:   cell(row, colOwnerLast),
			OwnerPhone:      cell(row, colOwnerPhone),
		}

		moveOutCell, cellErr := excelize.CoordinatesToCellName(colMoveOut+1, i+2)
		if cellErr != nil {
			return nil, fmt.Errorf("workbook.EndTenancy: %w", cellErr)
		}
		if setErr := f.SetCellValue(tenantsSheet, moveOutCell, moveOut.String()); setErr != nil {
			return nil, fmt.Errorf("workbook.EndTenancy: stamp move_out: %w", setErr)
		}

		if appendErr := appendHistory(f, history); appendErr != nil {
			return nil, fmt.Errorf("workbook.EndTenancy: %w", appendErr)
		}
		if saveErr := s.save(f); saveErr != nil {
			return nil, fmt.Errorf("workbook.EndTenancy: %w", saveErr)
		}

		log.Info().
			Int("building", building).
			Int("apartment", apartment).
			Str("move_out", moveOut.String()).
			Msg("tenancy ended")

		return history, nil
	}

	return nil, fmt.Errorf(
		"workbook.EndTenancy: no active tenant for building %d apartment %d: %w",
		building, apartment, domain.ErrNotFound,
	)
}
