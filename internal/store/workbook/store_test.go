package workbook_test

import (
	"context"
	"errors"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vaadly/vaadly/internal/config"
	"github.com/vaadly/vaadly/internal/domain"
	"github.com/vaadly/vaadly/internal/store/workbook"
	"github.com/vaadly/vaadly/internal/validate"
)

func testConfig(t *testing.T) *config.Config {
	t.Helper()

	return &config.Config{
		Database: config.DatabaseConfig{
			Path: filepath.Join(t.TempDir(), "tenants.xlsx"),
		},
		Validation: config.ValidationConfig{
			PhoneMinLength:           9,
			PhoneMaxLength:           15,
			MaxParkingAuthorizations: 4,
			MaxWhatsAppMembers:       10,
			MaxPalGateMembers:        10,
		},
		Buildings: []config.BuildingConfig{
			{Number: 11, TotalApartments: 17},
			{Number: 12, TotalApartments: 20},
			{Number: 13, TotalApartments: 0},
		},
	}
}

func newTestStore(t *testing.T) *workbook.Store {
	t.Helper()

	cfg := testConfig(t)
	store, err := workbook.Open(cfg, validate.New(cfg))
	require.NoError(t, err)
	return store
}

func sampleTenant() *domain.Tenant {
	return &domain.Tenant{
		BuildingNumber:  11,
		ApartmentNumber: 1,
		FirstName:       "Jane",
		LastName:        "Smith",
		Phone:           "0509876543",
		StorageNumber:   "S-3",
		ParkingSlot1:    "P-14",
		IsOwner:         true,
		WhatsAppMembers: []domain.Member{
			{FirstName: "Tom", LastName: "Smith", Phone: "0521234567"},
		},
		ParkingAuthorizations: []domain.Member{
			{FirstName: "Guest", LastName: "Driver", Phone: "0534445566"},
		},
		MoveInDate:           domain.NewDate(2025, time.January, 1),
		PalGateAccessEnabled: true,
		WhatsAppGroupEnabled: true,
	}
}

// ---------------------------------------------------------------------------
// Create / Get round-trip
// ---------------------------------------------------------------------------

func TestCreateTenant_RoundTrip(t *testing.T) {
	t.Parallel()

	store := newTestStore(t)
	ctx := context.Background()

	in := sampleTenant()
	_, err := store.CreateTenant(ctx, in)
	require.NoError(t, err)

	got, err := store.GetTenant(ctx, 11, 1)
	require.NoError(t, err)
	require.NotNil(t, got)

	assert.Equal(t, in.BuildingNumber, got.BuildingNumber)
	assert.Equal(t, in.ApartmentNumber, got.ApartmentNumber)
	assert.Equal(t, "Jane", got.FirstName)
	assert.Equal(t, "Smith", got.LastName)
	assert.Equal(t, "0509876543", got.Phone)
	assert.Equal(t, "S-3", got.StorageNumber)
	assert.Equal(t, "P-14", got.ParkingSlot1)
	assert.Empty(t, got.ParkingSlot2)
	assert.True(t, got.IsOwner)
	assert.Nil(t, got.OwnerInfo)
	assert.Equal(t, in.WhatsAppMembers, got.WhatsAppMembers)
	assert.Equal(t, in.ParkingAuthorizations, got.ParkingAuthorizations)
	assert.True(t, in.MoveInDate.Equal(got.MoveInDate))
	assert.Nil(t, got.MoveOutDate)
	assert.True(t, got.PalGateAccessEnabled)
	assert.True(t, got.WhatsAppGroupEnabled)
}

func TestCreateTenant_RenterOwnerInfoRoundTrip(t *testing.T) {
	t.Parallel()

	store := newTestStore(t)
	ctx := context.Background()

	in := sampleTenant()
	in.IsOwner = false
	in.OwnerInfo = &domain.OwnerInfo{FirstName: "David", LastName: "Cohen", Phone: "0521112233"}

	_, err := store.CreateTenant(ctx, in)
	require.NoError(t, err)

	got, err := store.GetTenant(ctx, 11, 1)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.False(t, got.IsOwner)
	require.NotNil(t, got.OwnerInfo)
	assert.Equal(t, "David", got.OwnerInfo.FirstName)
	assert.Equal(t, "Cohen", got.OwnerInfo.LastName)
	assert.Equal(t, "0521112233", got.OwnerInfo.Phone)
}

func TestCreateTenant_Conflict(t *testing.T) {
	t.Parallel()

	store := newTestStore(t)
	ctx := context.Background()

	_, err := store.CreateTenant(ctx, sampleTenant())
	require.NoError(t, err)

	second := sampleTenant()
	second.FirstName = "Other"
	_, err = store.CreateTenant(ctx, second)
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrConflict))
}

func TestCreateTenant_InvalidBuilding(t *testing.T) {
	t.Parallel()

	store := newTestStore(t)

	tenant := sampleTenant()
	tenant.BuildingNumber = 99
	_, err := store.CreateTenant(context.Background(), tenant)
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrInvalidInput))
}

func TestCreateTenant_InvalidApartment(t *testing.T) {
	t.Parallel()

	store := newTestStore(t)
	ctx := context.Background()

	tenant := sampleTenant()
	tenant.ApartmentNumber = 0
	_, err := store.CreateTenant(ctx, tenant)
	assert.True(t, errors.Is(err, domain.ErrInvalidInput))

	tenant = sampleTenant()
	tenant.ApartmentNumber = 18
	_, err = store.CreateTenant(ctx, tenant)
	assert.True(t, errors.Is(err, domain.ErrInvalidInput))

	// Apartment 17 is the configured boundary for building 11.
	tenant = sampleTenant()
	tenant.ApartmentNumber = 17
	_, err = store.CreateTenant(ctx, tenant)
	assert.NoError(t, err)
}

func TestGetTenant_Absent(t *testing.T) {
	t.Parallel()

	store := newTestStore(t)

	got, err := store.GetTenant(context.Background(), 11, 5)
	require.NoError(t, err)
	assert.Nil(t, got)
}

// ---------------------------------------------------------------------------
// Update
// ---------------------------------------------------------------------------

func TestUpdateTenant(t *testing.T) {
	t.Parallel()

	store := newTestStore(t)
	ctx := context.Background()

	_, err := store.CreateTenant(ctx, sampleTenant())
	require.NoError(t, err)

	updated := sampleTenant()
	updated.Phone = "0501112222"
	updated.ParkingSlot2 = "P-15"
	updated.WhatsAppGroupEnabled = false

	_, err = store.UpdateTenant(ctx, updated)
	require.NoError(t, err)

	got, err := store.GetTenant(ctx, 11, 1)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "0501112222", got.Phone)
	assert.Equal(t, "P-15", got.ParkingSlot2)
	assert.False(t, got.WhatsAppGroupEnabled)
}

func TestUpdateTenant_NotFound(t *testing.T) {
	t.Parallel()

	store := newTestStore(t)

	_, err := store.UpdateTenant(context.Background(), sampleTenant())
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrNotFound))
}

// ---------------------------------------------------------------------------
// End tenancy
// ---------------------------------------------------------------------------

func TestEndTenancy(t *testing.T) {
	t.Parallel()

	store := newTestStore(t)
	ctx := context.Background()

	_, err := store.CreateTenant(ctx, sampleTenant())
	require.NoError(t, err)

	moveOut := domain.NewDate(2025, time.December, 31)
	history, err := store.EndTenancy(ctx, 11, 1, moveOut)
	require.NoError(t, err)

	assert.Equal(t, 11, history.BuildingNumber)
	assert.Equal(t, 1, history.ApartmentNumber)
	assert.Equal(t, "Jane", history.FirstName)
	assert.True(t, history.WasOwner)
	assert.True(t, moveOut.Equal(history.MoveOutDate))
	assert.Equal(t, 364, history.TenancyDurationDays())

	// Active record gone.
	got, err := store.GetTenant(ctx, 11, 1)
	require.NoError(t, err)
	assert.Nil(t, got)

	// Exactly one archival row with the stamped date.
	records, err := store.ApartmentHistory(ctx, 11, 1)
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.True(t, moveOut.Equal(records[0].MoveOutDate))

	// The slot is reusable: a fresh create succeeds.
	next := sampleTenant()
	next.FirstName = "Noa"
	next.MoveInDate = domain.NewDate(2026, time.January, 15)
	_, err = store.CreateTenant(ctx, next)
	assert.NoError(t, err)
}

func TestEndTenancy_NotFound(t *testing.T) {
	t.Parallel()

	store := newTestStore(t)

	_, err := store.EndTenancy(context.Background(), 11, 1, domain.Today())
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrNotFound))
}

func TestEndTenancy_MoveOutBeforeMoveIn(t *testing.T) {
	t.Parallel()

	store := newTestStore(t)
	ctx := context.Background()

	_, err := store.CreateTenant(ctx, sampleTenant())
	require.NoError(t, err)

	_, err = store.EndTenancy(ctx, 11, 1, domain.NewDate(2024, time.June, 1))
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrInvalidInput))
}

// ---------------------------------------------------------------------------
// History
// ---------------------------------------------------------------------------

func TestApartmentHistory_SortedByMoveInDesc(t *testing.T) {
	t.Parallel()

	store := newTestStore(t)
	ctx := context.Background()

	older := &domain.TenantHistory{
		BuildingNumber: 11, ApartmentNumber: 1,
		FirstName: "First", LastName: "Tenant", Phone: "0501111111",
		MoveInDate:  domain.NewDate(2020, time.January, 1),
		MoveOutDate: domain.NewDate(2022, time.January, 1),
		WasOwner:    true,
	}
	newer := &domain.TenantHistory{
		BuildingNumber: 11, ApartmentNumber: 1,
		FirstName: "Second", LastName: "Tenant", Phone: "0502222222",
		MoveInDate:  domain.NewDate(2023, time.January, 1),
		MoveOutDate: domain.NewDate(2024, time.January, 1),
		WasOwner:    false,
	}
	other := &domain.TenantHistory{
		BuildingNumber: 12, ApartmentNumber: 1,
		FirstName: "Elsewhere", LastName: "Tenant", Phone: "0503333333",
		MoveInDate:  domain.NewDate(2021, time.January, 1),
		MoveOutDate: domain.NewDate(2021, time.June, 1),
		WasOwner:    true,
	}

	for _, h := range []*domain.TenantHistory{older, newer, other} {
		_, err := store.AddHistoryRecord(ctx, h)
		require.NoError(t, err)
	}

	records, err := store.ApartmentHistory(ctx, 11, 1)
	require.NoError(t, err)
	require.Len(t, records, 2)
	assert.Equal(t, "Second", records[0].FirstName)
	assert.Equal(t, "First", records[1].FirstName)

	buildingRecords, err := store.BuildingHistory(ctx, 12)
	require.NoError(t, err)
	require.Len(t, buildingRecords, 1)
	assert.Equal(t, "Elsewhere", buildingRecords[0].FirstName)
}

// ---------------------------------------------------------------------------
// Queries
// ---------------------------------------------------------------------------

func seedTenants(t *testing.T, store *workbook.Store) {
	t.Helper()
	ctx := context.Background()

	tenants := []*domain.Tenant{
		{
			BuildingNumber: 11, ApartmentNumber: 1,
			FirstName: "Jane", LastName: "Smith", Phone: "0509876543",
			IsOwner: true, MoveInDate: domain.NewDate(2025, time.January, 1),
			WhatsAppGroupEnabled: true, PalGateAccessEnabled: true,
			ParkingSlot1: "P-1",
			WhatsAppMembers: []domain.Member{
				{FirstName: "Tom", LastName: "Smith", Phone: "0521234567"},
			},
			ParkingAuthorizations: []domain.Member{
				{FirstName: "Guest", LastName: "Driver", Phone: "0534445566"},
			},
		},
		{
			BuildingNumber: 11, ApartmentNumber: 2,
			FirstName: "Avi", LastName: "Levi", Phone: "0541112233",
			IsOwner: true, MoveInDate: domain.NewDate(2025, time.February, 1),
		},
		{
			BuildingNumber: 12, ApartmentNumber: 3,
			FirstName: "Dana", LastName: "Mizrahi", Phone: "0556667788",
			IsOwner: true, MoveInDate: domain.NewDate(2025, time.March, 1),
			WhatsAppGroupEnabled: true,
		},
	}
	for _, tenant := range tenants {
		_, err := store.CreateTenant(ctx, tenant)
		require.NoError(t, err)
	}
}

func TestAllTenants(t *testing.T) {
	t.Parallel()

	store := newTestStore(t)
	seedTenants(t, store)
	ctx := context.Background()

	all, err := store.AllTenants(ctx, nil)
	require.NoError(t, err)
	assert.Len(t, all, 3)

	building := 11
	filtered, err := store.AllTenants(ctx, &building)
	require.NoError(t, err)
	require.Len(t, filtered, 2)
	assert.Equal(t, "Jane", filtered[0].FirstName)
	assert.Equal(t, "Avi", filtered[1].FirstName)
}

func TestAllTenants_Idempotent(t *testing.T) {
	t.Parallel()

	store := newTestStore(t)
	seedTenants(t, store)
	ctx := context.Background()

	first, err := store.AllTenants(ctx, nil)
	require.NoError(t, err)
	second, err := store.AllTenants(ctx, nil)
	require.NoError(t, err)

	assert.Equal(t, first, second)
}

func TestSearchTenants(t *testing.T) {
	t.Parallel()

	store := newTestStore(t)
	seedTenants(t, store)
	ctx := context.Background()

	byName, err := store.SearchTenants(ctx, "jane smith", "", nil)
	require.NoError(t, err)
	require.Len(t, byName, 1)
	assert.Equal(t, "Jane", byName[0].FirstName)

	byPartialName, err := store.SearchTenants(ctx, "LEV", "", nil)
	require.NoError(t, err)
	require.Len(t, byPartialName, 1)
	assert.Equal(t, "Avi", byPartialName[0].FirstName)

	byPhone, err := store.SearchTenants(ctx, "", "666", nil)
	require.NoError(t, err)
	require.Len(t, byPhone, 1)
	assert.Equal(t, "Dana", byPhone[0].FirstName)

	building := 11
	scoped, err := store.SearchTenants(ctx, "", "666", &building)
	require.NoError(t, err)
	assert.Empty(t, scoped)
}

func TestBuildingOccupancy(t *testing.T) {
	t.Parallel()

	store := newTestStore(t)
	seedTenants(t, store)
	ctx := context.Background()

	occ, err := store.BuildingOccupancy(ctx, 11)
	require.NoError(t, err)
	assert.Equal(t, 17, occ.TotalApartments)
	assert.Equal(t, 2, occ.Occupied)
	assert.Equal(t, 15, occ.Vacant)
	assert.Equal(t, occ.TotalApartments, occ.Occupied+occ.Vacant)
	assert.InDelta(t, 11.8, occ.OccupancyRate, 0.001)
}

func TestBuildingOccupancy_ZeroTotal(t *testing.T) {
	t.Parallel()

	store := newTestStore(t)

	occ, err := store.BuildingOccupancy(context.Background(), 13)
	require.NoError(t, err)
	assert.Equal(t, 0, occ.TotalApartments)
	assert.InDelta(t, 0, occ.OccupancyRate, 0.001)
}

func TestBuildingOccupancy_UnknownBuilding(t *testing.T) {
	t.Parallel()

	store := newTestStore(t)

	_, err := store.BuildingOccupancy(context.Background(), 99)
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrNotFound))
}

func TestAllBuildingsOccupancy(t *testing.T) {
	t.Parallel()

	store := newTestStore(t)
	seedTenants(t, store)

	stats, err := store.AllBuildingsOccupancy(context.Background())
	require.NoError(t, err)
	require.Len(t, stats, 3)
	assert.Equal(t, 11, stats[0].Building)
	assert.Equal(t, 12, stats[1].Building)
	assert.Equal(t, 13, stats[2].Building)
}

func TestWhatsAppContacts(t *testing.T) {
	t.Parallel()

	store := newTestStore(t)
	seedTenants(t, store)
	ctx := context.Background()

	contacts, err := store.WhatsAppContacts(ctx, nil)
	require.NoError(t, err)
	// Jane + her member + Dana; Avi has the group disabled.
	require.Len(t, contacts, 3)
	assert.Equal(t, "Jane Smith", contacts[0].Name)
	assert.Equal(t, "Tom Smith", contacts[1].Name)
	assert.Equal(t, 1, contacts[1].Apartment)
	assert.Equal(t, "Dana Mizrahi", contacts[2].Name)

	building := 12
	scoped, err := store.WhatsAppContacts(ctx, &building)
	require.NoError(t, err)
	require.Len(t, scoped, 1)
	assert.Equal(t, "Dana Mizrahi", scoped[0].Name)
}

func TestParkingAuthorizations(t *testing.T) {
	t.Parallel()

	store := newTestStore(t)
	seedTenants(t, store)

	grants, err := store.ParkingAuthorizations(context.Background(), nil)
	require.NoError(t, err)
	// Only Jane has gate access enabled: herself plus one guest.
	require.Len(t, grants, 2)
	assert.Equal(t, "Jane Smith", grants[0].Name)
	assert.Equal(t, []string{"P-1", ""}, grants[0].Slots)
	assert.Equal(t, "Guest Driver", grants[1].Name)
	assert.Empty(t, grants[1].Slots)
}

// ---------------------------------------------------------------------------
// Durability and concurrency
// ---------------------------------------------------------------------------

func TestStore_PersistsAcrossReopen(t *testing.T) {
	t.Parallel()

	cfg := testConfig(t)
	store, err := workbook.Open(cfg, validate.New(cfg))
	require.NoError(t, err)

	ctx := context.Background()
	_, err = store.CreateTenant(ctx, sampleTenant())
	require.NoError(t, err)

	reopened, err := workbook.Open(cfg, validate.New(cfg))
	require.NoError(t, err)

	got, err := reopened.GetTenant(ctx, 11, 1)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "Jane", got.FirstName)
}

func TestCreateTenant_ConcurrentSingleWinner(t *testing.T) {
	t.Parallel()

	store := newTestStore(t)
	ctx := context.Background()

	const writers = 8
	var wg sync.WaitGroup
	errs := make([]error, writers)

	for i := 0; i < writers; i++ {
		i := i
		wg.Add(1)
		go func() {
			defer wg.Done()
			tenant := sampleTenant()
			_, errs[i] = store.CreateTenant(ctx, tenant)
		}()
	}
	wg.Wait()

	var ok, conflicts int
	for _, err := range errs {
		switch {
		case err == nil:
			ok++
		case errors.Is(err, domain.ErrConflict):
			conflicts++
		default:
			t.Fatalf("unexpected error: %v", err)
		}
	}
	assert.Equal(t, 1, ok)
	assert.Equal(t, writers-1, conflicts)

	all, err := store.AllTenants(ctx, nil)
	require.NoError(t, err)
	assert.Len(t, all, 1)
}

// ---------------------------------------------------------------------------
// End-to-end scenario: building 11 apartment 1 full lifecycle
// ---------------------------------------------------------------------------

func TestTenancyLifecycle(t *testing.T) {
	t.Parallel()

	store := newTestStore(t)
	ctx := context.Background()

	moveIn := domain.NewDate(2025, time.June, 1)
	tenant := sampleTenant()
	tenant.MoveInDate = moveIn

	_, err := store.CreateTenant(ctx, tenant)
	require.NoError(t, err)

	moveOut := domain.NewDate(2025, time.December, 31)
	_, err = store.EndTenancy(ctx, 11, 1, moveOut)
	require.NoError(t, err)

	got, err := store.GetTenant(ctx, 11, 1)
	require.NoError(t, err)
	assert.Nil(t, got)

	records, err := store.ApartmentHistory(ctx, 11, 1)
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, moveOut.DaysSince(moveIn), records[0].TenancyDurationDays())
}
