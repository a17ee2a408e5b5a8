package models

import (
	"time"

	"github.com/google/uuid"
)

// Visit is one recorded instance of a household receiving service, dated
// to the foodbank's local calendar day at creation time (not the commit
// instant). The patron name/address fields are a snapshot taken when the
// visit was recorded and survive later patron edits and deletion.
type Visit struct {
	ID                  uuid.UUID  `json:"id" db:"id"`
	TenantID            uuid.UUID  `json:"tenant_id" db:"tenant_id"`
	PatronID            *uuid.UUID `json:"patron_id" db:"patron_id"`
	VisitDate           time.Time  `json:"visit_date" db:"visit_date"`
	IsFoodTruck         bool       `json:"is_food_truck" db:"is_food_truck"`
	Zipcode             string     `json:"zipcode" db:"zipcode"`
	City                *string    `json:"city" db:"city"`
	State               *string    `json:"state" db:"state"`
	HouseholdSize       int        `json:"household_size" db:"household_size"`
	Age0To18            int        `json:"age_0_18" db:"age_0_18"`
	Age19To59           int        `json:"age_19_59" db:"age_19_59"`
	Age60Plus           int        `json:"age_60_plus" db:"age_60_plus"`
	FirstVisitThisMonth bool       `json:"first_visit_this_month" db:"first_visit_this_month"`
	Comments            *string    `json:"comments" db:"comments"`
	PatronFirstName     *string    `json:"patron_first_name" db:"patron_first_name"`
	PatronLastName      *string    `json:"patron_last_name" db:"patron_last_name"`
	PatronAddress       *string    `json:"patron_address" db:"patron_address"`
	PatronCity          *string    `json:"patron_city" db:"patron_city"`
	PatronState         *string    `json:"patron_state" db:"patron_state"`
	PatronZipcode       *string    `json:"patron_zipcode" db:"patron_zipcode"`
	CreatedAt           time.Time  `json:"created_at" db:"created_at"`
}

// Anonymous reports whether the visit carries no patron reference
func (v *Visit) Anonymous() bool {
	return v.PatronID == nil
}

// VisitFilter narrows visit listings to a date window.
type VisitFilter struct {
	From  *time.Time
	To    *time.Time
	Limit int
}
