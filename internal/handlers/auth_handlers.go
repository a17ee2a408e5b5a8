package handlers

import (
	"net/http"

	"foodbanked/internal/common"
	"foodbanked/internal/services"

	"github.com/labstack/echo/v4"
)

// AuthHandlers handles signup, login and token lifecycle requests
type AuthHandlers struct {
	authService     services.AuthService
	foodbankService services.FoodbankService
}

// NewAuthHandlers creates a new auth handlers instance
func NewAuthHandlers(authService services.AuthService, foodbankService services.FoodbankService) *AuthHandlers {
	return &AuthHandlers{
		authService:     authService,
		foodbankService: foodbankService,
	}
}

// SignupRequest represents the account creation payload. Foodbank is
// optional; accounts created without one onboard later via
// POST /v1/foodbank.
type SignupRequest struct {
	Email            string                          `json:"email" validate:"required"`
	Password         string                          `json:"password" validate:"required"`
	RegistrationCode string                          `json:"registration_code" validate:"required"`
	Foodbank         *services.CreateFoodbankRequest `json:"foodbank,omitempty"`
}

// Signup handles account creation gated on a registration code
func (h *AuthHandlers) Signup(c echo.Context) error {
	ctx := c.Request().Context()

	var req SignupRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request format")
	}

	user, err := h.authService.Signup(ctx, req.Email, req.Password, req.RegistrationCode)
	if err != nil {
		return sendServiceError(c, err, "Registration code")
	}

	resp := map[string]interface{}{
		"user_id": user.ID,
		"email":   user.Email,
	}

	if req.Foodbank != nil {
		req.Foodbank.UserID = user.ID
		foodbank, err := h.foodbankService.Create(ctx, req.Foodbank)
		if err != nil {
			// The account exists at this point; report the profile
			// failure without discarding it.
			return sendServiceError(c, err, "Foodbank")
		}
		resp["foodbank_id"] = foodbank.ID
	}

	return c.JSON(http.StatusCreated, resp)
}

// LoginRequest represents the login payload
type LoginRequest struct {
	Email    string `json:"email" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// Login handles credential verification and token issuance
func (h *AuthHandlers) Login(c echo.Context) error {
	ctx := c.Request().Context()

	var req LoginRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request format")
	}
	if req.Email == "" || req.Password == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "Email and password are required")
	}

	tokens, err := h.authService.Login(ctx, req.Email, req.Password)
	if err != nil {
		return sendServiceError(c, err, "User")
	}

	return c.JSON(http.StatusOK, tokens)
}

// RefreshRequest represents the token refresh payload
type RefreshRequest struct {
	RefreshToken string `json:"refresh_token" validate:"required"`
}

// Refresh handles refresh token rotation
func (h *AuthHandlers) Refresh(c echo.Context) error {
	ctx := c.Request().Context()

	var req RefreshRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request format")
	}
	if req.RefreshToken == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "Refresh token is required")
	}

	tokens, err := h.authService.RefreshToken(ctx, req.RefreshToken)
	if err != nil {
		return common.SendUnauthorizedError(c)
	}

	return c.JSON(http.StatusOK, tokens)
}

// Logout revokes the presented refresh token
func (h *AuthHandlers) Logout(c echo.Context) error {
	ctx := c.Request().Context()

	var req RefreshRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request format")
	}
	if req.RefreshToken == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "Refresh token is required")
	}

	if err := h.authService.Logout(ctx, req.RefreshToken); err != nil {
		return common.SendServerError(c, "Failed to revoke token")
	}

	return c.JSON(http.StatusOK, map[string]string{
		"message": "Logged out successfully",
	})
}

// Me returns the resolved actor for the presented token
func (h *AuthHandlers) Me(c echo.Context) error {
	actor, ok := common.ActorFromContext(c.Request().Context())
	if !ok {
		return common.SendUnauthorizedError(c)
	}

	resp := map[string]interface{}{
		"kind":    actor.Kind,
		"user_id": actor.UserID,
	}
	switch actor.Kind {
	case common.ActorFoodbank:
		resp["foodbank_id"] = actor.FoodbankID
	case common.ActorOrganization:
		resp["organization_id"] = actor.OrganizationID
	}
	return c.JSON(http.StatusOK, resp)
}
