package sdk

// TenantInfo is the client-side view of an occupancy record. Dates travel
// as ISO strings (2006-01-02).
type TenantInfo struct {
	BuildingNumber  int    `json:"building_number"`
	ApartmentNumber int    `json:"apartment_number"`
	FirstName       string `json:"first_name"`
	LastName        string `json:"last_name"`
	Phone           string `json:"phone"`
	IsOwner         bool   `json:"is_owner"`
	MoveInDate      string `json:"move_in_date"`
	StorageNumber   string `json:"storage_number,omitempty"`
	ParkingSlot1    string `json:"parking_slot_1,omitempty"`
	ParkingSlot2    string `json:"parking_slot_2,omitempty"`
}

func (t *TenantInfo) FullName() string {
	return t.FirstName + " " + t.LastName
}

// BuildingInfo merges a building's identity with its occupancy stats.
// Occupancy fields are zero when only the building list was fetched.
type BuildingInfo struct {
	Number          int     `json:"number"`
	TotalApartments int     `json:"total_apartments"`
	Occupied        int     `json:"occupied"`
	Vacant          int     `json:"vacant"`
	OccupancyRate   float64 `json:"occupancy_rate"`
}

// HistoryRecord is one archived tenancy.
type HistoryRecord struct {
	BuildingNumber  int    `json:"building_number"`
	ApartmentNumber int    `json:"apartment_number"`
	FirstName       string `json:"first_name"`
	LastName        string `json:"last_name"`
	Phone           string `json:"phone"`
	MoveInDate      string `json:"move_in_date"`
	MoveOutDate     string `json:"move_out_date"`
	WasOwner        bool   `json:"was_owner"`
}

// PromptContent is the text block inside a prompt message.
type PromptContent struct {
	Type string `json:"type"`
	Text string `json:"text"`
}

// PromptMessage is one chat message of a generated report prompt.
type PromptMessage struct {
	Role    string        `json:"role"`
	Content PromptContent `json:"content"`
}

// CreateTenantParams are the arguments for CreateTenant. IsOwner defaults
// to true and MoveInDate to today when left unset.
type CreateTenantParams struct {
	BuildingNumber  int    `json:"building_number"`
	ApartmentNumber int    `json:"apartment_number"`
	FirstName       string `json:"first_name"`
	LastName        string `json:"last_name"`
	Phone           string `json:"phone"`
	IsOwner         *bool  `json:"is_owner,omitempty"`
	MoveInDate      string `json:"move_in_date,omitempty"`
	StorageNumber   string `json:"storage_number,omitempty"`
	ParkingSlot1    string `json:"parking_slot_1,omitempty"`
	ParkingSlot2    string `json:"parking_slot_2,omitempty"`
}
