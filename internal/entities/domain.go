package entities

import "time"

// Hostel is a tenant unit owning members, payments and meal pricing.
type Hostel struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	Address      string    `json:"address"`
	ContactEmail string    `json:"contactEmail"`
	ContactPhone string    `json:"contactPhone"`
	Capacity     int       `json:"capacity"`
	CreatedAt    time.Time `json:"createdAt"`
}

// CorporateOffice is the corporate flavour of a tenant unit.
type CorporateOffice struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	Address      string    `json:"address"`
	ContactEmail string    `json:"contactEmail"`
	ContactPhone string    `json:"contactPhone"`
	CreatedAt    time.Time `json:"createdAt"`
}
