package models

import (
	"time"

	"github.com/google/uuid"
)

// User is an authentication principal. The actor kind (foodbank operator
// or organization admin) is resolved from the foodbanks and
// organization_admins tables, not stored here.
type User struct {
	ID           uuid.UUID `json:"id" db:"id"`
	Email        string    `json:"email" db:"email"`
	PasswordHash string    `json:"-" db:"password_hash"`
	CreatedAt    time.Time `json:"created_at" db:"created_at"`
	UpdatedAt    time.Time `json:"updated_at" db:"updated_at"`
}

// RegistrationCode is a single-use code controlling who can sign up.
type RegistrationCode struct {
	ID          uuid.UUID  `json:"id" db:"id"`
	Code        string     `json:"code" db:"code"`
	IsUsed      bool       `json:"is_used" db:"is_used"`
	UsedBy      *uuid.UUID `json:"used_by" db:"used_by"`
	UsedDate    *time.Time `json:"used_date" db:"used_date"`
	Notes       *string    `json:"notes" db:"notes"`
	CreatedDate time.Time  `json:"created_date" db:"created_date"`
}

// TokenResponse represents an issued token pair
type TokenResponse struct {
	AccessToken  string    `json:"access_token"`
	TokenType    string    `json:"token_type"`
	ExpiresIn    int       `json:"expires_in"`
	RefreshToken string    `json:"refresh_token"`
	UserID       string    `json:"user_id"`
	IssuedAt     time.Time `json:"issued_at"`
}
