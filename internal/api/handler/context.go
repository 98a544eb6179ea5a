package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/unmatched/taskboard/internal/core/domain"
	"github.com/unmatched/taskboard/internal/core/ports"
)

// ctxActor extracts the identity claims injected by the Auth middleware and
// fast-fails before any service call: both the user id and a known role must
// be present, otherwise the token is structurally valid but operationally
// unusable — reject with 401.
func ctxActor(c echo.Context) (ports.Actor, error) {
	userID, ok := c.Get("user_id").(int64)
	if !ok {
		return ports.Actor{}, echo.NewHTTPError(http.StatusUnauthorized, "missing authentication claims")
	}

	roleStr, _ := c.Get("role").(string)
	role := domain.Role(roleStr)
	if !role.Valid() {
		return ports.Actor{}, echo.NewHTTPError(http.StatusUnauthorized, "token missing role claim")
	}

	return ports.Actor{ID: userID, Role: role}, nil
}
