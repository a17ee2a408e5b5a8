package middleware

import (
	"context"
	"errors"
	"net/http"

	"foodbanked/internal/common"
	"foodbanked/internal/repositories"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

// ActorMiddleware resolves the authenticated principal from the token
// already validated by the JWT middleware: the user either owns a
// foodbank (tenant scope) or administers an organization. The lookup
// happens exactly once per request; handlers downstream read the actor
// from context.
func ActorMiddleware(foodbankRepo repositories.FoodbankRepository, orgRepo repositories.OrganizationRepository) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			token, ok := c.Get("user").(*jwt.Token)
			if !ok {
				return echo.NewHTTPError(http.StatusUnauthorized, "Missing token")
			}

			claims, ok := token.Claims.(jwt.MapClaims)
			if !ok {
				return echo.NewHTTPError(http.StatusUnauthorized, "Invalid claims")
			}

			sub, ok := claims["sub"].(string)
			if !ok {
				return echo.NewHTTPError(http.StatusUnauthorized, "Missing user_id in token")
			}
			userID, err := uuid.Parse(sub)
			if err != nil {
				return echo.NewHTTPError(http.StatusUnauthorized, "Invalid user_id format")
			}

			actor, err := resolveActor(c.Request().Context(), foodbankRepo, orgRepo, userID)
			if err != nil {
				return echo.NewHTTPError(http.StatusUnauthorized, "Failed to resolve account")
			}

			ctx := common.WithActor(c.Request().Context(), actor)
			c.SetRequest(c.Request().WithContext(ctx))

			return next(c)
		}
	}
}

func resolveActor(ctx context.Context, foodbankRepo repositories.FoodbankRepository, orgRepo repositories.OrganizationRepository, userID uuid.UUID) (*common.Actor, error) {
	foodbank, err := foodbankRepo.GetByUserID(ctx, userID)
	if err == nil {
		return &common.Actor{
			Kind:       common.ActorFoodbank,
			UserID:     userID,
			FoodbankID: foodbank.ID,
		}, nil
	}
	if !errors.Is(err, common.ErrNotFound) {
		return nil, err
	}

	admin, err := orgRepo.GetAdminByUserID(ctx, userID)
	if err == nil {
		return &common.Actor{
			Kind:           common.ActorOrganization,
			UserID:         userID,
			OrganizationID: admin.OrganizationID,
		}, nil
	}
	if !errors.Is(err, common.ErrNotFound) {
		return nil, err
	}

	// Fresh account: authenticated but not yet onboarded.
	return &common.Actor{
		Kind:   common.ActorUnassigned,
		UserID: userID,
	}, nil
}

// RequireFoodbank rejects requests whose actor is not a foodbank.
func RequireFoodbank(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		if _, ok := common.FoodbankIDFromContext(c.Request().Context()); !ok {
			return echo.NewHTTPError(http.StatusForbidden, "Foodbank account required")
		}
		return next(c)
	}
}

// RequireOrganization rejects requests whose actor is not an
// organization admin.
func RequireOrganization(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		if _, ok := common.OrganizationIDFromContext(c.Request().Context()); !ok {
			return echo.NewHTTPError(http.StatusForbidden, "Organization account required")
		}
		return next(c)
	}
}
