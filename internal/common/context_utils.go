package common

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

type contextKey string

const (
	ActorKey contextKey = "actor"
)

// ActorKind distinguishes the two principal types resolved at the
// authentication boundary.
type ActorKind string

const (
	ActorFoodbank     ActorKind = "foodbank"
	ActorOrganization ActorKind = "organization"
	// ActorUnassigned is an authenticated account that has not onboarded
	// a foodbank yet and holds no organization admin seat.
	ActorUnassigned ActorKind = "unassigned"
)

// Actor is the authenticated principal, resolved exactly once by the JWT
// middleware. Exactly one of FoodbankID/OrganizationID is meaningful,
// selected by Kind.
type Actor struct {
	Kind           ActorKind
	UserID         uuid.UUID
	FoodbankID     uuid.UUID
	OrganizationID uuid.UUID
}

// WithActor stores the resolved actor on the request context
func WithActor(ctx context.Context, actor *Actor) context.Context {
	return context.WithValue(ctx, ActorKey, actor)
}

// ActorFromContext retrieves the resolved actor from the request context
func ActorFromContext(ctx context.Context) (*Actor, bool) {
	actor, ok := ctx.Value(ActorKey).(*Actor)
	return actor, ok
}

// FoodbankIDFromContext returns the tenant scope for foodbank actors
func FoodbankIDFromContext(ctx context.Context) (uuid.UUID, bool) {
	actor, ok := ActorFromContext(ctx)
	if !ok || actor.Kind != ActorFoodbank {
		return uuid.Nil, false
	}
	return actor.FoodbankID, true
}

// OrganizationIDFromContext returns the organization scope for org admins
func OrganizationIDFromContext(ctx context.Context) (uuid.UUID, bool) {
	actor, ok := ActorFromContext(ctx)
	if !ok || actor.Kind != ActorOrganization {
		return uuid.Nil, false
	}
	return actor.OrganizationID, true
}

// ErrorResponse represents a standardized error response
type ErrorResponse struct {
	Error struct {
		Code    string            `json:"code"`
		Message string            `json:"message"`
		Details map[string]string `json:"details,omitempty"`
	} `json:"error"`
}

// CreateErrorResponse creates a standardized error response
func CreateErrorResponse(code string, message string, details map[string]string) *ErrorResponse {
	var resp ErrorResponse
	resp.Error.Code = code
	resp.Error.Message = message
	resp.Error.Details = details
	return &resp
}

// SendValidationError sends a validation error response
func SendValidationError(c echo.Context, field, message string) error {
	details := map[string]string{
		field: message,
	}
	return c.JSON(http.StatusBadRequest, CreateErrorResponse("VALIDATION_ERROR", "Validation failed", details))
}

// SendClientError sends a client error response
func SendClientError(c echo.Context, message string) error {
	return c.JSON(http.StatusBadRequest, CreateErrorResponse("CLIENT_ERROR", message, nil))
}

// SendServerError sends a server error response
func SendServerError(c echo.Context, message string) error {
	return c.JSON(http.StatusInternalServerError, CreateErrorResponse("SERVER_ERROR", message, nil))
}

// SendNotFoundError sends a not found error response
func SendNotFoundError(c echo.Context, resource string) error {
	return c.JSON(http.StatusNotFound, CreateErrorResponse("NOT_FOUND", fmt.Sprintf("%s not found", resource), nil))
}

// SendUnauthorizedError sends an unauthorized error response
func SendUnauthorizedError(c echo.Context) error {
	return c.JSON(http.StatusUnauthorized, CreateErrorResponse("UNAUTHORIZED", "Unauthorized access", nil))
}

// ValidateUUID validates UUID format
func ValidateUUID(idStr string, fieldName string) (uuid.UUID, error) {
	idStr = strings.TrimSpace(idStr)
	if idStr == "" {
		return uuid.Nil, fmt.Errorf("%s is required", fieldName)
	}
	id, err := uuid.Parse(idStr)
	if err != nil {
		return uuid.Nil, fmt.Errorf("%s is not a valid UUID", fieldName)
	}
	return id, nil
}

// ValidateRequiredString validates required string fields
func ValidateRequiredString(value, fieldName string) error {
	if strings.TrimSpace(value) == "" {
		return fmt.Errorf("%s is required", fieldName)
	}
	return nil
}

// ParseDate parses a YYYY-MM-DD date string
func ParseDate(dateStr, fieldName string) (time.Time, error) {
	date, err := time.Parse("2006-01-02", strings.TrimSpace(dateStr))
	if err != nil {
		return time.Time{}, fmt.Errorf("%s must be in YYYY-MM-DD format", fieldName)
	}
	return date, nil
}
