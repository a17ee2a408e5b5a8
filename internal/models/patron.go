package models

import (
	"time"

	"github.com/google/uuid"
)

// Patron is a household record scoped to one foodbank. Visits may
// reference a patron but never require one.
type Patron struct {
	ID        uuid.UUID `json:"id" db:"id"`
	TenantID  uuid.UUID `json:"tenant_id" db:"tenant_id"`
	FirstName string    `json:"first_name" db:"first_name"`
	LastName  string    `json:"last_name" db:"last_name"`
	Address   *string   `json:"address" db:"address"`
	City      *string   `json:"city" db:"city"`
	State     *string   `json:"state" db:"state"`
	Zipcode   string    `json:"zipcode" db:"zipcode"`
	Phone     *string   `json:"phone" db:"phone"`
	Comments  *string   `json:"comments" db:"comments"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
	UpdatedAt time.Time `json:"updated_at" db:"updated_at"`
}

// PatronSearchFilter holds search criteria for the patron directory.
// Query matches as a case-insensitive substring across first name, last
// name, address, zip and phone; Letter independently filters on the
// last-name initial. The two compose.
type PatronSearchFilter struct {
	Query  string `json:"query,omitempty" query:"q"`
	Letter string `json:"letter,omitempty" query:"letter"`
	Limit  int    `json:"limit,omitempty" query:"limit"`
	Offset int    `json:"offset,omitempty" query:"offset"`
}
