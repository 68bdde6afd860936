// Package workbook implements the spreadsheet-backed record store. One
// .xlsx file holds three sheets — Tenants, History, Buildings — and every
// operation is a whole-file load, in-memory mutation, and whole-file save.
// The file stays human-editable and inspectable on purpose; this store
// trades throughput for that property.
package workbook

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"sync"

	"github.com/xuri/excelize/v2"

	"github.com/vaadly/vaadly/internal/config"
	"github.com/vaadly/vaadly/internal/domain"
	"github.com/vaadly/vaadly/internal/validate"
)

const (
	tenantsSheet   = "Tenants"
	historySheet   = "History"
	buildingsSheet = "Buildings"
)

var tenantHeaders = []string{
	"building_number", "apartment_number", "first_name", "last_name",
	"phone", "storage_number", "parking_slot_1", "parking_slot_2",
	"is_owner", "owner_first_name", "owner_last_name", "owner_phone",
	"whatsapp_members", "parking_authorizations", "move_in_date",
	"move_out_date", "palgate_access", "whatsapp_group",
}

var historyHeaders = []string{
	"building_number", "apartment_number", "first_name", "last_name",
	"phone", "move_in_date", "move_out_date", "was_owner",
	"owner_first_name", "owner_last_name", "owner_phone",
}

// Store owns the backing workbook file exclusively. All operations —
// reads included, since every read re-opens the file — serialize behind a
// single mutex so concurrent load/mutate/save cycles cannot interleave and
// lose writes.
type Store struct {
	mu        sync.Mutex
	path      string
	cfg       *config.Config
	validator *validate.Validator
}

// Open creates a Store over the configured workbook path, creating the
// file with its three sheets (and the Buildings sheet seeded from
// configuration) when it does not exist yet.
func Open(cfg *config.Config, validator *validate.Validator) (*Store, error) {
	s := &Store{
		path:      cfg.Database.Path,
		cfg:       cfg,
		validator: validator,
	}
	if err := s.ensureExists(); err != nil {
		return nil, err
	}
	return s, nil
}

func (s *Store) ensureExists() error {
	_, err := os.Stat(s.path)
	if err == nil {
		return nil
	}
	if !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("workbook.Open: stat %s: %w", s.path, errors.Join(domain.ErrStorage, err))
	}

	if dir := filepath.Dir(s.path); dir != "." {
		if mkErr := os.MkdirAll(dir, 0o750); mkErr != nil {
			return fmt.Errorf("workbook.Open: mkdir %s: %w", dir, errors.Join(domain.ErrStorage, mkErr))
		}
	}

	f := excelize.NewFile()
	defer func() { _ = f.Close() }()

	if renameErr := f.SetSheetName(f.GetSheetName(0), tenantsSheet); renameErr != nil {
		return fmt.Errorf("workbook.Open: %w", renameErr)
	}
	if writeErr := writeHeader(f, tenantsSheet, tenantHeaders); writeErr != nil {
		return writeErr
	}

	if _, newErr := f.NewSheet(historySheet); newErr != nil {
		return fmt.Errorf("workbook.Open: %w", newErr)
	}
	if writeErr := writeHeader(f, historySheet, historyHeaders); writeErr != nil {
		return writeErr
	}

	if _, newErr := f.NewSheet(buildingsSheet); newErr != nil {
		return fmt.Errorf("workbook.Open: %w", newErr)
	}
	if writeErr := writeHeader(f, buildingsSheet, []string{"number", "total_apartments"}); writeErr != nil {
		return writeErr
	}
	for i, b := range s.Buildings() {
		row := []any{b.Number, b.TotalApartments}
		if setErr := setRow(f, buildingsSheet, i+2, row); setErr != nil {
			return setErr
		}
	}

	if saveErr := f.SaveAs(s.path); saveErr != nil {
		return fmt.Errorf("workbook.Open: create %s: %w", s.path, errors.Join(domain.ErrStorage, saveErr))
	}
	return nil
}

// Path returns the backing file location.
func (s *Store) Path() string { return s.path }

// Buildings returns the configured buildings, sorted by number.
// Configuration, not the Buildings sheet, is the runtime source of truth;
// the sheet is seeded at creation time for inspectability only.
func (s *Store) Buildings() []*domain.Building {
	buildings := make([]*domain.Building, 0, len(s.cfg.Buildings))
	for _, b := range s.cfg.Buildings {
		buildings = append(buildings, &domain.Building{
			Number:          b.Number,
			TotalApartments: b.TotalApartments,
		})
	}
	sort.Slice(buildings, func(i, j int) bool { return buildings[i].Number < buildings[j].Number })
	return buildings
}

// Building returns one configured building, or nil when unknown.
func (s *Store) Building(number int) *domain.Building {
	for _, b := range s.cfg.Buildings {
		if b.Number == number {
			return &domain.Building{Number: b.Number, TotalApartments: b.TotalApartments}
		}
	}
	return nil
}

func (s *Store) load() (*excelize.File, error) {
	f, err := excelize.OpenFile(s.path)
	if err != nil {
		return nil, fmt.Errorf("workbook: load %s: %w", s.path, errors.Join(domain.ErrStorage, err))
	}
	return f, nil
}

func (s *Store) save(f *excelize.File) error {
	if err := f.SaveAs(s.path); err != nil {
		return fmt.Errorf("workbook: save %s: %w", s.path, errors.Join(domain.ErrStorage, err))
	}
	return nil
}

func writeHeader(f *excelize.File, sheet string, headers []string) error {
	row := make([]any, len(headers))
	for i, h := range headers {
		row[i] = h
	}
	return setRow(f, sheet, 1, row)
}

func setRow(f *excelize.File, sheet string, rowNum int, values []any) error {
	cell, err := excelize.CoordinatesToCellName(1, rowNum)
	if err != nil {
		return fmt.Errorf("workbook: row %d: %w", rowNum, err)
	}
	if err := f.SetSheetRow(sheet, cell, &values); err != nil {
		return fmt.Errorf("workbook: write %s row %d: %w", sheet, rowNum, err)
	}
	return nil
}
