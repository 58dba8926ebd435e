package run

import (
	"net/http"

	"github.com/almanac-cloud/almanac/api/rest/service/automation"
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

func Last(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.ErrBadRequest.SetInternal(err)
	}

	r, err := automation.Service(c.Request().Context()).GetLastRun(id)

	switch {
	case err != nil:
		return echo.ErrInternalServerError.SetInternal(err)
	case r == nil:
		return echo.ErrNotFound
	default:
		return c.JSON(http.StatusOK, r)
	}
}
