package models

import (
	"time"

	"github.com/google/uuid"
)

// DefaultTimezone is assigned to newly registered foodbanks that do not
// choose a zone themselves.
const DefaultTimezone = "America/Los_Angeles"

// Foodbank is one pantry/food-truck operator. Every Visit and Patron
// belongs to exactly one Foodbank; cross-tenant reads are forbidden.
type Foodbank struct {
	ID               uuid.UUID  `json:"id" db:"id"`
	UserID           uuid.UUID  `json:"user_id" db:"user_id"`
	OrganizationID   *uuid.UUID `json:"organization_id" db:"organization_id"`
	Name             string     `json:"name" db:"name"`
	Address          string     `json:"address" db:"address"`
	City             string     `json:"city" db:"city"`
	State            string     `json:"state" db:"state"`
	Zipcode          string     `json:"zipcode" db:"zipcode"`
	Phone            string     `json:"phone" db:"phone"`
	Email            string     `json:"email" db:"email"`
	Timezone         string     `json:"timezone" db:"timezone"`
	FoodTruckEnabled bool       `json:"food_truck_enabled" db:"food_truck_enabled"`
	AllowByName      bool       `json:"allow_by_name" db:"allow_by_name"`
	AllowAnonymous   bool       `json:"allow_anonymous" db:"allow_anonymous"`
	Description      *string    `json:"description" db:"description"`
	IsPublic         bool       `json:"is_public" db:"is_public"`
	Latitude         *float64   `json:"latitude" db:"latitude"`
	Longitude        *float64   `json:"longitude" db:"longitude"`
	CreatedAt        time.Time  `json:"created_at" db:"created_at"`
	UpdatedAt        time.Time  `json:"updated_at" db:"updated_at"`
}

// Geocoded reports whether coordinates have been resolved for this record
func (f *Foodbank) Geocoded() bool {
	return f.Latitude != nil && f.Longitude != nil
}

// HasAddress reports whether there is anything worth geocoding
func (f *Foodbank) HasAddress() bool {
	return f.Address != "" || f.City != "" || f.State != "" || f.Zipcode != ""
}
