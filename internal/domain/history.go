package domain

// TenantHistory is the immutable archival snapshot written exactly once
// when a tenancy ends. It is never updated or deleted.
type TenantHistory struct {
	BuildingNumber  int    `json:"building_number"`
	ApartmentNumber int    `json:"apartment_number"`
	FirstName       string `json:"first_name"`
	LastName        string `json:"last_name"`
	Phone           string `json:"phone"`
	MoveInDate      Date   `json:"move_in_date"`
	MoveOutDate     Date   `json:"move_out_date"`
	WasOwner        bool   `json:"was_owner"`
	OwnerFirstName  string `json:"owner_first_name,omitempty"`
	OwnerLastName   string `json:"owner_last_name,omitempty"`
	OwnerPhone      string `json:"owner_phone,omitempty"`
}

func (h *TenantHistory) FullName() string {
	return h.FirstName + " " + h.LastName
}

// TenancyDurationDays is the whole-day span of the tenancy.
func (h *TenantHistory) TenancyDurationDays() int {
	return h.MoveOutDate.DaysSince(h.MoveInDate)
}
