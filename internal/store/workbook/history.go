package workbook

import (
	"context"
	"fmt"
	"sort"
	"strconv"

	"github.com/xuri/excelize/v2"

	"github.com/vaadly/vaadly/internal/domain"
)

// AddHistoryRecord appends one archival row. There is deliberately no
// uniqueness check: history is append-only and the caller controls when a
// tenancy produces its single snapshot.
func (s *Store) AddHistoryRecord(_ context.Context, h *domain.TenantHistory) (*domain.TenantHistory, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	f, err := s.load()
	if err != nil {
		return nil, fmt.Errorf("workbook.AddHistoryRecord: %w", err)
	}
	defer func() { _ = f.Close() }()

	if appendErr := appendHistory(f, h); appendErr != nil {
		return nil, fmt.Errorf("workbook.AddHistoryRecord: %w", appendErr)
	}
	if saveErr := s.save(f); saveErr != nil {
		return nil, fmt.Errorf("workbook.AddHistoryRecord: %w", saveErr)
	}

	return h, nil
}

// ApartmentHistory returns all archival rows for one apartment, most
// recent move-in first. Rows with equal move-in dates keep scan order.
func (s *Store) ApartmentHistory(ctx context.Context, building, apartment int) ([]*domain.TenantHistory, error) {
	return s.scanHistory(ctx, func(row []string) bool {
		return cell(row, 0) == strconv.Itoa(building) && cell(row, 1) == strconv.Itoa(apartment)
	})
}

// BuildingHistory returns all archival rows for a building, most recent
// move-in first.
func (s *Store) BuildingHistory(ctx context.Context, building int) ([]*domain.TenantHistory, error) {
	return s.scanHistory(ctx, func(row []string) bool {
		return cell(row, 0) == strconv.Itoa(building)
	})
}

func (s *Store) scanHistory(_ context.Context, match func([]string) bool) ([]*domain.TenantHistory, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	f, err := s.load()
	if err != nil {
		return nil, fmt.Errorf("workbook: history scan: %w", err)
	}
	defer func() { _ = f.Close() }()

	rows, err := f.GetRows(historySheet)
	if err != nil {
		return nil, fmt.Errorf("workbook: history scan: read rows: %w", err)
	}

	var history []*domain.TenantHistory
	for _, row := range rows[1:] {
		if len(row) == 0 || !match(row) {
			continue
		}
		record, parseErr := parseHistory(row)
		if parseErr != nil {
			return nil, fmt.Errorf("workbook: history scan: %w", parseErr)
		}
		history = append(history, record)
	}

	sort.SliceStable(history, func(i, j int) bool {
		return history[i].MoveInDate.After(history[j].MoveInDate)
	})

	return history, nil
}

func appendHistory(f *excelize.File, h *domain.TenantHistory) error {
	rows, err := f.GetRows(historySheet)
	if err != nil {
		return fmt.Errorf("read history rows: %w", err)
	}
	return setRow(f, historySheet, len(rows)+1, historyRow(h))
}
