package domain

// OwnerInfo is the owner's contact details, required when the occupant is a
// renter rather than the apartment's owner.
type OwnerInfo struct {
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Phone     string `json:"phone"`
}

func (o OwnerInfo) FullName() string {
	return o.FirstName + " " + o.LastName
}

// Member is a flat contact record embedded in a tenant row. It backs both
// the WhatsApp group list and the parking authorization list.
type Member struct {
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Phone     string `json:"phone"`
}

func (m Member) FullName() string {
	return m.FirstName + " " + m.LastName
}

// PalGateMember is a gate-access grant, optionally tied to a vehicle.
type PalGateMember struct {
	FirstName    string `json:"first_name"`
	LastName     string `json:"last_name"`
	Phone        string `json:"phone"`
	VehiclePlate string `json:"vehicle_plate,omitempty"`
}

// Tenant is an occupancy record for one apartment. A tenant with no
// move-out date is the apartment's single active record; stamping a
// move-out date retires the row (soft delete) and archives it to history.
type Tenant struct {
	BuildingNumber        int             `json:"building_number"`
	ApartmentNumber       int             `json:"apartment_number"`
	FirstName             string          `json:"first_name"`
	LastName              string          `json:"last_name"`
	Phone                 string          `json:"phone"`
	StorageNumber         string          `json:"storage_number,omitempty"`
	ParkingSlot1          string          `json:"parking_slot_1,omitempty"`
	ParkingSlot2          string          `json:"parking_slot_2,omitempty"`
	IsOwner               bool            `json:"is_owner"`
	OwnerInfo             *OwnerInfo      `json:"owner_info,omitempty"`
	WhatsAppMembers       []Member        `json:"whatsapp_members"`
	ParkingAuthorizations []Member        `json:"parking_authorizations"`
	PalGateMembers        []PalGateMember `json:"palgate_members,omitempty"`
	MoveInDate            Date            `json:"move_in_date"`
	MoveOutDate           *Date           `json:"move_out_date,omitempty"`
	PalGateAccessEnabled  bool            `json:"palgate_access_enabled"`
	WhatsAppGroupEnabled  bool            `json:"whatsapp_group_enabled"`
}

func (t *Tenant) FullName() string {
	return t.FirstName + " " + t.LastName
}

// IsActive reports whether this is the apartment's live occupancy record.
func (t *Tenant) IsActive() bool {
	return t.MoveOutDate == nil
}
