package workbook

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/vaadly/vaadly/internal/domain"
)

// Tenant sheet column positions (zero-based within a parsed row). The
// 18-column order is the on-disk contract and must not change.
const (
	colBuilding = iota
	colApartment
	colFirstName
	colLastName
	colPhone
	colStorage
	colSlot1
	colSlot2
	colIsOwner
	colOwnerFirst
	colOwnerLast
	colOwnerPhone
	colWhatsAppMembers
	colParkingAuths
	colMoveIn
	colMoveOut
	colPalGateAccess
	colWhatsAppGroup
)

// cell returns the trimmed cell at index i, tolerating short rows: the
// xlsx reader drops trailing empty cells, so a row with no move-out date
// and false flags can come back with fewer than 18 columns.
func cell(row []string, i int) string {
	if i >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[i])
}

func parseIntCell(s string) (int, error) {
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, fmt.Errorf("parse int %q: %w", s, err)
	}
	return n, nil
}

func parseBoolCell(s string) bool {
	b, err := strconv.ParseBool(s)
	if err != nil {
		return false
	}
	return b
}

func tenantRow(t *domain.Tenant) ([]any, error) {
	whatsapp, err := json.Marshal(membersOrEmpty(t.WhatsAppMembers))
	if err != nil {
		return nil, fmt.Errorf("workbook: encode whatsapp members: %w", err)
	}
	parking, err := json.Marshal(membersOrEmpty(t.ParkingAuthorizations))
	if err != nil {
		return nil, fmt.Errorf("workbook: encode parking authorizations: %w", err)
	}

	ownerFirst, ownerLast, ownerPhone := "", "", ""
	if t.OwnerInfo != nil {
		ownerFirst = t.OwnerInfo.FirstName
		ownerLast = t.OwnerInfo.LastName
		ownerPhone = t.OwnerInfo.Phone
	}

	moveOut := ""
	if t.MoveOutDate != nil {
		moveOut = t.MoveOutDate.String()
	}

	return []any{
		t.BuildingNumber,
		t.ApartmentNumber,
		t.FirstName,
		t.LastName,
		t.Phone,
		t.StorageNumber,
		t.ParkingSlot1,
		t.ParkingSlot2,
		t.IsOwner,
		ownerFirst,
		ownerLast,
		ownerPhone,
		string(whatsapp),
		string(parking),
		t.MoveInDate.String(),
		moveOut,
		t.PalGateAccessEnabled,
		t.WhatsAppGroupEnabled,
	}, nil
}

func membersOrEmpty(members []domain.Member) []domain.Member {
	if members == nil {
		return []domain.Member{}
	}
	return members
}

func parseTenant(row []string) (*domain.Tenant, error) {
	building, err := parseIntCell(cell(row, colBuilding))
	if err != nil {
		return nil, fmt.Errorf("workbook: tenant row: %w", err)
	}
	apartment, err := parseIntCell(cell(row, colApartment))
	if err != nil {
		return nil, fmt.Errorf("workbook: tenant row: %w", err)
	}

	moveIn, err := domain.ParseDate(cell(row, colMoveIn))
	if err != nil {
		return nil, fmt.Errorf("workbook: tenant row: move_in_date: %w", err)
	}

	var moveOut *domain.Date
	if raw := cell(row, colMoveOut); raw != "" {
		parsed, parseErr := domain.ParseDate(raw)
		if parseErr != nil {
			return nil, fmt.Errorf("workbook: tenant row: move_out_date: %w", parseErr)
		}
		moveOut = &parsed
	}

	var whatsapp, parking []domain.Member
	if raw := cell(row, colWhatsAppMembers); raw != "" {
		if unmarshalErr := json.Unmarshal([]byte(raw), &whatsapp); unmarshalErr != nil {
			return nil, fmt.Errorf("workbook: tenant row: whatsapp_members: %w", unmarshalErr)
		}
	}
	if raw := cell(row, colParkingAuths); raw != "" {
		if unmarshalErr := json.Unmarshal([]byte(raw), &parking); unmarshalErr != nil {
			return nil, fmt.Errorf("workbook: tenant row: parking_authorizations: %w", unmarshalErr)
		}
	}

	isOwner := parseBoolCell(cell(row, colIsOwner))

	var ownerInfo *domain.OwnerInfo
	if !isOwner {
		ownerInfo = &domain.OwnerInfo{
			FirstName: cell(row, colOwnerFirst),
			LastName:  cell(row, colOwnerLast),
			Phone:     cell(row, colOwnerPhone),
		}
	}

	return &domain.Tenant{
		BuildingNumber:        building,
		ApartmentNumber:       apartment,
		FirstName:             cell(row, colFirstName),
		LastName:              cell(row, colLastName),
		Phone:                 cell(row, colPhone),
		StorageNumber:         cell(row, colStorage),
		ParkingSlot1:          cell(row, colSlot1),
		ParkingSlot2:          cell(row, colSlot2),
		IsOwner:               isOwner,
		OwnerInfo:             ownerInfo,
		WhatsAppMembers:       whatsapp,
		ParkingAuthorizations: parking,
		MoveInDate:            moveIn,
		MoveOutDate:           moveOut,
		PalGateAccessEnabled:  parseBoolCell(cell(row, colPalGateAccess)),
		WhatsAppGroupEnabled:  parseBoolCell(cell(row, colWhatsAppGroup)),
	}, nil
}

func historyRow(h *domain.TenantHistory) []any {
	return []any{
		h.BuildingNumber,
		h.ApartmentNumber,
		h.FirstName,
		h.LastName,
		h.Phone,
		h.MoveInDate.String(),
		h.MoveOutDate.String(),
		h.WasOwner,
		h.OwnerFirstName,
		h.OwnerLastName,
		h.OwnerPhone,
	}
}

func parseHistory(row []string) (*domain.TenantHistory, error) {
	building, err := parseIntCell(cell(row, 0))
	if err != nil {
		return nil, fmt.Errorf("workbook: history row: %w", err)
	}
	apartment, err := parseIntCell(cell(row, 1))
	if err != nil {
		return nil, fmt.Errorf("workbook: history row: %w", err)
	}
	moveIn, err := domain.ParseDate(cell(row, 5))
	if err != nil {
		return nil, fmt.Errorf("workbook: history row: move_in_date: %w", err)
	}
	moveOut, err := domain.ParseDate(cell(row, 6))
	if err != nil {
		return nil, fmt.Errorf("workbook: history row: move_out_date: %w", err)
	}

	return &domain.TenantHistory{
		BuildingNumber:  building,
		ApartmentNumber: apartment,
		FirstName:       cell(row, 2),
		LastName:        cell(row, 3),
		Phone:           cell(row, 4),
		MoveInDate:      moveIn,
		MoveOutDate:     moveOut,
		WasOwner:        parseBoolCell(cell(row, 7)),
		OwnerFirstName:  cell(row, 8),
		OwnerLastName:   cell(row, 9),
		OwnerPhone:      cell(row, 10),
	}, nil
}

// matchesActive reports whether a raw tenant row is the live record for
// the given apartment: identity columns match and the move-out cell is
// empty. Comparing raw cells avoids parsing every row during scans.
func matchesActive(row []string, building, apartment int) bool {
	return cell(row, colBuilding) == strconv.Itoa(building) &&
		cell(row, colApartment) == strconv.Itoa(apartment) &&
		cell(row, colMoveOut) == ""
}
