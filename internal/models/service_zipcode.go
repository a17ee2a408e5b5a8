package models

import (
	"time"

	"github.com/google/uuid"
)

// ServiceZipcode declares one (zip, city, state) tuple in a foodbank's
// service area. Informational only: visit entries are never validated
// against it.
type ServiceZipcode struct {
	ID        uuid.UUID `json:"id" db:"id"`
	TenantID  uuid.UUID `json:"tenant_id" db:"tenant_id"`
	Zipcode   string    `json:"zipcode" db:"zipcode"`
	City      string    `json:"city" db:"city"`
	State     string    `json:"state" db:"state"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
}
