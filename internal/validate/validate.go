// Package validate implements the configuration-driven rule checks for
// tenant data. Every threshold (valid buildings, apartment counts, phone
// lengths, member-list caps) comes from the injected configuration; nothing
// is hardcoded.
package validate

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/vaadly/vaadly/internal/config"
	"github.com/vaadly/vaadly/internal/domain"
)

// Validator checks tenant data against the configured rule set. It is
// stateless apart from the configuration reference and safe for concurrent
// use.
type Validator struct {
	cfg *config.Config
}

func New(cfg *config.Config) *Validator {
	return &Validator{cfg: cfg}
}

// BuildingNumbers returns the configured building numbers, sorted.
func (v *Validator) BuildingNumbers() []int {
	numbers := make([]int, 0, len(v.cfg.Buildings))
	for _, b := range v.cfg.Buildings {
		numbers = append(numbers, b.Number)
	}
	sort.Ints(numbers)
	return numbers
}

// ApartmentCount returns the configured apartment count for a building, or
// 0 when the building is unknown.
func (v *Validator) ApartmentCount(building int) int {
	for _, b := range v.cfg.Buildings {
		if b.Number == building {
			return b.TotalApartments
		}
	}
	return 0
}

// BuildingNumber fails when the number is not in the configured set.
func (v *Validator) BuildingNumber(building int) error {
	valid := v.BuildingNumbers()
	for _, n := range valid {
		if n == building {
			return nil
		}
	}
	return domain.NewValidationError(
		fmt.Sprintf("Invalid building number: %d", building),
		map[string]any{"valid_buildings": valid},
	)
}

// ApartmentNumber fails when the apartment is outside [1, total] for the
// building; the building itself is validated first.
func (v *Validator) ApartmentNumber(building, apartment int) error {
	if err := v.BuildingNumber(building); err != nil {
		return err
	}
	maxApartments := v.ApartmentCount(building)
	if apartment < 1 || apartment > maxApartments {
		return domain.NewValidationError(
			fmt.Sprintf("Invalid apartment number: %d", apartment),
			map[string]any{"building": building, "max_apartments": maxApartments},
		)
	}
	return nil
}

// Phone strips separators and the leading plus, then checks that the rest
// is all digits within the configured length bounds.
func (v *Validator) Phone(phone string) error {
	cleaned := strings.NewReplacer("-", "", " ", "", "+", "").Replace(phone)
	for _, r := range cleaned {
		if r < '0' || r > '9' {
			return domain.NewValidationError(
				"Phone number must contain only digits",
				map[string]any{"phone": phone},
			)
		}
	}
	minLen := v.cfg.Validation.PhoneMinLength
	maxLen := v.cfg.Validation.PhoneMaxLength
	if len(cleaned) < minLen || len(cleaned) > maxLen {
		return domain.NewValidationError(
			fmt.Sprintf("Phone must be %d-%d digits", minLen, maxLen),
			map[string]any{"phone": phone, "length": len(cleaned)},
		)
	}
	return nil
}

// Dates fails when a present move-out date precedes the move-in date.
func (v *Validator) Dates(moveIn domain.Date, moveOut *domain.Date) error {
	if moveOut != nil && moveOut.Before(moveIn) {
		return domain.NewValidationError(
			"Move-out date cannot be before move-in date",
			map[string]any{"move_in": moveIn.String(), "move_out": moveOut.String()},
		)
	}
	return nil
}

// ParkingSlots fails when a provided slot is blank after trimming. Absent
// slots (empty strings) are fine.
func (v *Validator) ParkingSlots(slots ...string) error {
	for _, slot := range slots {
		if slot != "" && strings.TrimSpace(slot) == "" {
			return domain.NewValidationError(
				"Parking slot cannot be empty string",
				map[string]any{"slot": slot},
			)
		}
	}
	return nil
}

// MemberLists enforces the configured caps on the embedded member lists.
func (v *Validator) MemberLists(t *domain.Tenant) error {
	if maxAuth := v.cfg.Validation.MaxParkingAuthorizations; len(t.ParkingAuthorizations) > maxAuth {
		return domain.NewValidationError(
			fmt.Sprintf("Maximum %d parking authorizations", maxAuth),
			map[string]any{"count": len(t.ParkingAuthorizations)},
		)
	}
	if maxMembers := v.cfg.Validation.MaxWhatsAppMembers; len(t.WhatsAppMembers) > maxMembers {
		return domain.NewValidationError(
			fmt.Sprintf("Maximum %d WhatsApp members", maxMembers),
			map[string]any{"count": len(t.WhatsAppMembers)},
		)
	}
	if maxPalGate := v.cfg.Validation.MaxPalGateMembers; len(t.PalGateMembers) > maxPalGate {
		return domain.NewValidationError(
			fmt.Sprintf("Maximum %d PalGate members", maxPalGate),
			map[string]any{"count": len(t.PalGateMembers)},
		)
	}
	return nil
}

// TenantData runs every rule over a complete tenant record and collects all
// failures instead of stopping at the first, so callers (the web tier in
// particular) can report every invalid field in one response.
func (v *Validator) TenantData(t *domain.Tenant) (bool, []string) {
	var errs []string

	appendErr := func(err error) {
		if err != nil {
			var ve *domain.ValidationError
			if errors.As(err, &ve) {
				errs = append(errs, ve.Message)
			} else {
				errs = append(errs, err.Error())
			}
		}
	}

	appendErr(v.BuildingNumber(t.BuildingNumber))
	appendErr(v.ApartmentNumber(t.BuildingNumber, t.ApartmentNumber))
	if t.Phone != "" {
		appendErr(v.Phone(t.Phone))
	}
	appendErr(v.Dates(t.MoveInDate, t.MoveOutDate))
	appendErr(v.ParkingSlots(t.ParkingSlot1, t.ParkingSlot2))
	appendErr(v.MemberLists(t))

	if strings.TrimSpace(t.FirstName) == "" {
		errs = append(errs, "First name is required")
	}
	if strings.TrimSpace(t.LastName) == "" {
		errs = append(errs, "Last name is required")
	}

	if !t.IsOwner {
		switch {
		case t.OwnerInfo == nil:
			errs = append(errs, "Owner info required for renters")
		case strings.TrimSpace(t.OwnerInfo.FirstName) == "":
			errs = append(errs, "Owner first name required")
		case strings.TrimSpace(t.OwnerInfo.LastName) == "":
			errs = append(errs, "Owner last name required")
		default:
			appendErr(v.Phone(t.OwnerInfo.Phone))
		}
	}

	return len(errs) == 0, errs
}
