package models

import (
	"time"

	"github.com/google/uuid"
)

// Organization is an optional parent grouping of foodbanks with its own
// public profile. Organization-level rollups are bucketed by the
// organization's own timezone (default UTC), never by an arbitrary
// member foodbank's zone.
type Organization struct {
	ID          uuid.UUID `json:"id" db:"id"`
	Name        string    `json:"name" db:"name"`
	Slug        string    `json:"slug" db:"slug"`
	Region      *string   `json:"region" db:"region"`
	Address     string    `json:"address" db:"address"`
	City        string    `json:"city" db:"city"`
	State       string    `json:"state" db:"state"`
	Zipcode     string    `json:"zipcode" db:"zipcode"`
	Phone       string    `json:"phone" db:"phone"`
	Email       string    `json:"email" db:"email"`
	Website     *string   `json:"website" db:"website"`
	Timezone    string    `json:"timezone" db:"timezone"`
	Description *string   `json:"description" db:"description"`
	IsPublic    bool      `json:"is_public" db:"is_public"`
	Latitude    *float64  `json:"latitude" db:"latitude"`
	Longitude   *float64  `json:"longitude" db:"longitude"`
	CreatedAt   time.Time `json:"created_at" db:"created_at"`
	UpdatedAt   time.Time `json:"updated_at" db:"updated_at"`
}

// Geocoded reports whether coordinates have been resolved for this record
func (o *Organization) Geocoded() bool {
	return o.Latitude != nil && o.Longitude != nil
}

// HasAddress reports whether there is anything worth geocoding
func (o *Organization) HasAddress() bool {
	return o.Address != "" || o.City != "" || o.State != "" || o.Zipcode != ""
}

// OrganizationAdmin links a user to the organization whose data they
// may see across all member foodbanks.
type OrganizationAdmin struct {
	ID             uuid.UUID `json:"id" db:"id"`
	UserID         uuid.UUID `json:"user_id" db:"user_id"`
	OrganizationID uuid.UUID `json:"organization_id" db:"organization_id"`
	CreatedAt      time.Time `json:"created_at" db:"created_at"`
}
