package validate_test

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vaadly/vaadly/internal/config"
	"github.com/vaadly/vaadly/internal/domain"
	"github.com/vaadly/vaadly/internal/validate"
)

func testConfig() *config.Config {
	return &config.Config{
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
		},
	}
}

func TestValidator_BuildingNumber(t *testing.T) {
	t.Parallel()

	v := validate.New(testConfig())

	assert.NoError(t, v.BuildingNumber(11))
	assert.NoError(t, v.BuildingNumber(12))

	err := v.BuildingNumber(99)
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrInvalidInput))
	assert.Contains(t, err.Error(), "Invalid building number: 99")
}

func TestValidator_ApartmentNumber(t *testing.T) {
	t.Parallel()

	v := validate.New(testConfig())

	tests := []struct {
		name      string
		building  int
		apartment int
		wantErr   bool
	}{
		{name: "first_apartment", building: 11, apartment: 1},
		{name: "last_apartment_boundary", building: 11, apartment: 17},
		{name: "zero_apartment", building: 11, apartment: 0, wantErr: true},
		{name: "past_boundary", building: 11, apartment: 18, wantErr: true},
		{name: "unknown_building", building: 99, apartment: 1, wantErr: true},
		{name: "other_building_size", building: 12, apartment: 20},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			err := v.ApartmentNumber(tt.building, tt.apartment)
			if tt.wantErr {
				require.Error(t, err)
				assert.True(t, errors.Is(err, domain.ErrInvalidInput))
				return
			}
			assert.NoError(t, err)
		})
	}
}

func TestValidator_Phone(t *testing.T) {
	t.Parallel()

	v := validate.New(testConfig())

	tests := []struct {
		name    string
		phone   string
		wantErr string
	}{
		{name: "israeli_mobile", phone: "0501234567"},
		{name: "with_separators", phone: "050-123-4567"},
		{name: "international_prefix", phone: "+972 50 123 4567"},
		{name: "too_short", phone: "123", wantErr: "Phone must be 9-15 digits"},
		{name: "letters", phone: "050-ABC-1234", wantErr: "Phone number must contain only digits"},
		{name: "too_long", phone: "1234567890123456", wantErr: "Phone must be 9-15 digits"},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			err := v.Phone(tt.phone)
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestValidator_Dates(t *testing.T) {
	t.Parallel()

	v := validate.New(testConfig())
	moveIn := domain.NewDate(2025, time.January, 15)

	assert.NoError(t, v.Dates(moveIn, nil))

	sameDay := moveIn
	assert.NoError(t, v.Dates(moveIn, &sameDay))

	later := domain.NewDate(2025, time.June, 1)
	assert.NoError(t, v.Dates(moveIn, &later))

	earlier := domain.NewDate(2025, time.January, 1)
	err := v.Dates(moveIn, &earlier)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Move-out date cannot be before move-in date")
}

func TestValidator_ParkingSlots(t *testing.T) {
	t.Parallel()

	v := validate.New(testConfig())

	assert.NoError(t, v.ParkingSlots("", ""))
	assert.NoError(t, v.ParkingSlots("P-14", ""))

	err := v.ParkingSlots("  ", "")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Parking slot cannot be empty string")
}

func TestValidator_MemberLists(t *testing.T) {
	t.Parallel()

	v := validate.New(testConfig())

	members := make([]domain.Member, 5)
	tenant := &domain.Tenant{ParkingAuthorizations: members}

	err := v.MemberLists(tenant)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Maximum 4 parking authorizations")

	tenant.ParkingAuthorizations = members[:4]
	assert.NoError(t, v.MemberLists(tenant))
}

func TestValidator_TenantData(t *testing.T) {
	t.Parallel()

	v := validate.New(testConfig())

	valid := func() *domain.Tenant {
		return &domain.Tenant{
			BuildingNumber:  11,
			ApartmentNumber: 1,
			FirstName:       "Jane",
			LastName:        "Smith",
			Phone:           "0509876543",
			IsOwner:         true,
			MoveInDate:      domain.NewDate(2025, time.January, 1),
		}
	}

	t.Run("valid_owner", func(t *testing.T) {
		t.Parallel()

		ok, errs := v.TenantData(valid())
		assert.True(t, ok)
		assert.Empty(t, errs)
	})

	t.Run("renter_without_owner_info", func(t *testing.T) {
		t.Parallel()

		tenant := valid()
		tenant.IsOwner = false

		ok, errs := v.TenantData(tenant)
		assert.False(t, ok)
		assert.Contains(t, errs, "Owner info required for renters")
	})

	t.Run("renter_with_complete_owner_info", func(t *testing.T) {
		t.Parallel()

		tenant := valid()
		tenant.IsOwner = false
		tenant.OwnerInfo = &domain.OwnerInfo{
			FirstName: "David",
			LastName:  "Cohen",
			Phone:     "0521112233",
		}

		ok, errs := v.TenantData(tenant)
		assert.True(t, ok)
		assert.Empty(t, errs)
	})

	t.Run("collects_all_errors", func(t *testing.T) {
		t.Parallel()

		tenant := valid()
		tenant.BuildingNumber = 99
		tenant.FirstName = " "
		tenant.Phone = "123"

		ok, errs := v.TenantData(tenant)
		assert.False(t, ok)
		// One failure per rule, not fail-fast on the first.
		assert.Contains(t, errs, "Invalid building number: 99")
		assert.Contains(t, errs, "First name is required")
		assert.Contains(t, errs, "Phone must be 9-15 digits")
		assert.GreaterOrEqual(t, len(errs), 3)
	})

	t.Run("owner_name_checks", func(t *testing.T) {
		t.Parallel()

		tenant := valid()
		tenant.IsOwner = false
		tenant.OwnerInfo = &domain.OwnerInfo{FirstName: "", LastName: "Cohen", Phone: "0521112233"}

		ok, errs := v.TenantData(tenant)
		assert.False(t, ok)
		assert.Contains(t, errs, "Owner first name required")
	})
}
