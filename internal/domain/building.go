package domain

import "math"

// Building describes one building in the complex. The configured building
// list is the source of truth; buildings are immutable at runtime.
type Building struct {
	Number          int `json:"number"`
	TotalApartments int `json:"total_apartments"`
}

// Occupancy is the per-building occupancy view.
type Occupancy struct {
	Building        int     `json:"building"`
	TotalApartments int     `json:"total_apartments"`
	Occupied        int     `json:"occupied"`
	Vacant          int     `json:"vacant"`
	OccupancyRate   float64 `json:"occupancy_rate"`
}

// OccupancyRate is occupied/total as a percentage rounded to one decimal,
// defined as 0 when total is 0.
func OccupancyRate(occupied, total int) float64 {
	if total <= 0 {
		return 0
	}
	return math.Round(float64(occupied)/float64(total)*1000) / 10
}

// Contact is a flattened WhatsApp contact entry.
type Contact struct {
	Name      string `json:"name"`
	Phone     string `json:"phone"`
	Building  int    `json:"building"`
	Apartment int    `json:"apartment"`
}

// ParkingGrant is a flattened parking authorization entry. The primary
// occupant carries its assigned slot identifiers; guest authorizations
// carry an empty slot list.
type ParkingGrant struct {
	Name      string   `json:"name"`
	Phone     string   `json:"phone"`
	Building  int      `json:"building"`
	Apartment int      `json:"apartment"`
	Slots     []string `json:"slots"`
}
