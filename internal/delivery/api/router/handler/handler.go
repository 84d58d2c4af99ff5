// Package handler contains the HTTP handlers of the storefront API.
package handler

import (
	"net/http"
	"strconv"

	"brewhouse/internal/delivery/api/response"
	deliverycontext "brewhouse/internal/delivery/context"
	domainerrors "brewhouse/internal/domain/errors"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

// HealthCheck is a simple handler to check if the service is up.
func HealthCheck(c echo.Context) error {
	return response.Success(c, http.StatusOK, map[string]string{"status": "ok"})
}

// currentSessionID is only empty when a route skipped the session middleware.
func currentSessionID(c echo.Context) (uuid.UUID, error) {
	id, ok := deliverycontext.GetSessionID(c)
	if !ok {
		return uuid.Nil, domainerrors.ErrUnauthorized
	}

	return id, nil
}

func uuidParam(c echo.Context, name string) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param(name))
	return id, err == nil
}

func intParam(c echo.Context, name string) (int, bool) {
	n, err := strconv.Atoi(c.Param(name))
	return n, err == nil
}
