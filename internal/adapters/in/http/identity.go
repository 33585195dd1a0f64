package http

import (
	"net/http"

	"cafeteria/internal/core/domain/model/identity"
	"cafeteria/internal/core/domain/model/kernel"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
)

const (
	HeaderUserID   = "X-User-ID"
	HeaderUserRole = "X-User-Role"

	actorContextKey = "actor"
)

// IdentityConfig configures the Identity middleware.
type IdentityConfig struct {
	Skipper middleware.Skipper
}

// Identity resolves the caller from the headers set by the upstream gateway and stores it
// on the context. Requests without a valid identity are rejected with 401.
func Identity(config IdentityConfig) echo.MiddlewareFunc {
	if config.Skipper == nil {
		config.Skipper = middleware.DefaultSkipper
	}

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if config.Skipper(c) {
				return next(c)
			}

			header := c.Request().Header
			id, err := kernel.UUIDFromString(header.Get(HeaderUserID))
			if err != nil {
				return echo.NewHTTPError(http.StatusUnauthorized, "missing or invalid "+HeaderUserID+" header").SetInternal(err)
			}

			role, err := identity.ParseRole(header.Get(HeaderUserRole))
			if err != nil {
				return echo.NewHTTPError(http.StatusUnauthorized, "missing or invalid "+HeaderUserRole+" header").SetInternal(err)
			}

			actor, err := identity.NewActor(id, role)
			if err != nil {
				return echo.NewHTTPError(http.StatusUnauthorized, "invalid identity").SetInternal(err)
			}

			c.Set(actorContextKey, actor)
			return next(c)
		}
	}
}

func actorFrom(c echo.Context) (identity.Actor, error) {
	actor, ok := c.Get(actorContextKey).(identity.Actor)
	if !ok {
		return identity.Actor{}, echo.NewHTTPError(http.StatusUnauthorized, "identity is required")
	}
	return actor, nil
}
